package rerank

import (
	"context"

	"github.com/rushteam/recmix/core"
	"github.com/rushteam/recmix/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，用于在融合之后截取前 N 条。
// 与 DiversityNode 不同，它不引入随机性，保持输入顺序。
//
// 使用场景：
//   - 不需要多样性时直接截断融合结果
//   - 在 DiversityNode 之前先收窄候选规模
type TopNNode struct {
	// N 要保留的条数
	// 如果 N <= 0 或 N >= len(items)，则返回所有条目（不截断）
	N int
}

func (n *TopNNode) Name() string        { return "rerank.topn" }
func (n *TopNNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 || len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}

var _ pipeline.Node = (*TopNNode)(nil)
