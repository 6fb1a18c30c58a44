package pipeline

import (
	"context"

	"github.com/rushteam/recmix/core"
)

// Pipeline 是 Recmix 的核心抽象：把打分逻辑拆成可组合的 Node 链。
// 数据严格向前流动：fuse(rank...) → filter → rerank → 输出。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
