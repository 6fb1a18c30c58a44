package pipeline

import (
	"context"

	"github.com/rushteam/recmix/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindRank   Kind = "rank"   // 打分阶段：对候选目录产出一路排序结果
	KindFuse   Kind = "fuse"   // 融合阶段：多路排序结果按权重合并
	KindFilter Kind = "filter" // 过滤阶段：剔除不符合约束的候选（仅限融合之后）
	KindReRank Kind = "rerank" // 重排阶段：截断/多样性采样等最终修饰
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用"输入 items -> 输出 items"的形态，方便打分产出、融合合并、重排截断等操作。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}

// NodeBuilder 根据 config 构建 Node，供配置驱动的 Pipeline 装配使用。
type NodeBuilder = func(map[string]interface{}) (Node, error)
