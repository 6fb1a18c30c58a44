// Package feature 提供打分用的特征缩放工具。
package feature

import "github.com/rushteam/recmix/core"

// MaxScaler 按目录最大值缩放一项指标：Scale(v) = v / Max。
// Max <= 0 时恒返回 0——既避免除零，也正确覆盖"全目录该指标为零"的场景。
// 缩放结果是相对于目录的，不是绝对量。
type MaxScaler struct {
	Max float64
}

func (s MaxScaler) Scale(v float64) float64 {
	if s.Max <= 0 {
		return 0
	}
	return v / s.Max
}

// ViewScaler 扫描目录一次，得到按最大浏览数缩放的 MaxScaler。
func ViewScaler(works []core.Work) MaxScaler {
	var max float64
	for _, w := range works {
		if w.ViewCount > max {
			max = w.ViewCount
		}
	}
	return MaxScaler{Max: max}
}

// TimeScaler 扫描目录一次，得到按最大交互时长缩放的 MaxScaler。
func TimeScaler(works []core.Work) MaxScaler {
	var max float64
	for _, w := range works {
		if w.InteractionTime > max {
			max = w.InteractionTime
		}
	}
	return MaxScaler{Max: max}
}
