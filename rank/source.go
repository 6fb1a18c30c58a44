package rank

import (
	"context"
	"sort"

	"github.com/rushteam/recmix/core"
)

// Source 表示一路可复用的打分源（内容/协同/...）。
// 每路独立产出一份降序排序的结果，供 FuseNode 并发 fan-out 后按权重融合。
type Source interface {
	Name() string
	Rank(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}

// sortDescending 按分数稳定降序排序：同分项保持排序前的相对顺序
// （即目录/首次出现顺序），保证输出对给定输入完全确定。
func sortDescending(items []*core.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
}
