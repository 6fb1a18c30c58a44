package recmix

import (
	"context"

	"github.com/rushteam/recmix/core"
	"github.com/rushteam/recmix/rank"
	"github.com/rushteam/recmix/rerank"
)

// Options 控制一次标准打分的参数。
type Options struct {
	// ContentWeight / CollabWeight 是融合权重。
	// 两者同时为 0 时按 0.5/0.5 的策略默认值处理；其余取值原样生效。
	ContentWeight float64
	CollabWeight  float64

	// Metrics 控制内容路的用量指标参与方式
	Metrics core.MetricsConfig

	// Count 最终推荐条数；<= 0 时输出为空
	Count int

	// RandomFactor 随机条目占比
	RandomFactor float64

	// Pool 随机池策略，零值按 rerank.PoolTop（兼容历史行为）
	Pool rerank.Pool

	// Seed 采样随机种子；0 表示每次调用取时间熵
	Seed int64
}

// Recommend 执行标准的两路融合 + 多样性采样流程，返回最终推荐列表。
//
// 等价于手工装配 Pipeline{FuseNode(content, collab), DiversityNode}。
// profile 与 snap 只读；并发调用各自持有输入即可安全并行。
func Recommend(ctx context.Context, profile *core.UserProfile, snap *core.Snapshot, opts Options) ([]*core.Item, error) {
	rctx := &core.RecommendContext{
		User:     profile,
		Snapshot: snap,
	}
	if profile != nil {
		rctx.UserID = profile.UserID
	}

	p := &Pipeline{
		Nodes: []Node{
			rank.NewFuseNode(
				&rank.ContentSource{Config: opts.Metrics},
				&rank.CollabSource{},
				opts.ContentWeight,
				opts.CollabWeight,
			),
			&rerank.DiversityNode{
				Count:        opts.Count,
				RandomFactor: opts.RandomFactor,
				Pool:         opts.Pool,
				Seed:         opts.Seed,
			},
		},
	}

	return p.Run(ctx, rctx, nil)
}
