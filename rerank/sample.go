package rerank

import (
	"context"
	"math/rand"
	"time"

	"github.com/rushteam/recmix/core"
	"github.com/rushteam/recmix/pipeline"
	"github.com/rushteam/recmix/pkg/conv"
	"github.com/rushteam/recmix/pkg/utils"
)

// Pool 指定多样性采样的随机池来源。
type Pool string

const (
	// PoolTop 与历史行为兼容：随机部分从与保底部分相同的前 numTop 条中
	// 无放回抽取，两段之间可能重复。保留此行为是刻意的兼容选择。
	PoolTop Pool = "top"

	// PoolTail 是修正后的策略：随机部分从排名低于 numTop 的剩余条目中
	// 抽取，不产生重复，输出不超过 count。
	PoolTail Pool = "tail"
)

// NewRand 构造采样用的随机源。seed 为 0 时取当前时间熵，每次调用各不相同；
// 需要可复现结果的调用方显式传入非零种子。
// 返回的 *rand.Rand 不做并发保护，并发调用各自持有一份。
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Sample 从降序排序的融合结果中产出最终的 count 条推荐：
//
//  1. count <= 0 时返回空。
//  2. numRandom = floor(count × randomFactor)，numTop = count − numRandom。
//  3. 保底段取 recs 的前 numTop 条。
//  4. 随机段按 pool 策略无放回抽取 numRandom 条
//     （PoolTop：从同样的前 numTop 条；PoolTail：从第 numTop 条之后）。
//  5. 两段拼接后整体均匀洗牌。
//
// 输出长度受 count、len(recs) 与两段实际可取条数共同封顶。
// 输入切片及其中的 Item 均不被修改。
func Sample(recs []*core.Item, count int, randomFactor float64, pool Pool, rng *rand.Rand) []*core.Item {
	if count <= 0 || len(recs) == 0 {
		return nil
	}
	if rng == nil {
		rng = NewRand(0)
	}

	numRandom := int(float64(count) * randomFactor)
	numTop := count - numRandom
	if numTop < 0 {
		numTop = 0
	}

	top := recs
	if numTop < len(top) {
		top = top[:numTop]
	}

	var poolSlice []*core.Item
	switch pool {
	case PoolTail:
		if numRandom > count {
			numRandom = count
		}
		if numTop < len(recs) {
			poolSlice = recs[numTop:]
		}
	default: // PoolTop
		poolSlice = top
	}

	// 无放回抽取：洗牌池的副本后取前 numRandom 条
	drawn := make([]*core.Item, len(poolSlice))
	copy(drawn, poolSlice)
	rng.Shuffle(len(drawn), func(i, j int) {
		drawn[i], drawn[j] = drawn[j], drawn[i]
	})
	if numRandom < len(drawn) {
		drawn = drawn[:numRandom]
	}

	out := make([]*core.Item, 0, len(top)+len(drawn))
	out = append(out, top...)
	out = append(out, drawn...)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// DiversityNode 是多样性采样 Node：把融合后的排序结果混入受控随机性，
// 避免每次刷新看到一成不变的结果。
//
// 请求级覆盖：rctx.Params 中的 count / random_factor / seed 优先于 Node 字段。
// Seed 为 0 时每次调用取新熵（结果不可复现）；测试或回放场景注入非零种子。
type DiversityNode struct {
	// Count 最终推荐条数；<= 0 时输出为空
	Count int

	// RandomFactor 随机条目占比（如 0.2 表示 20% 随机）
	RandomFactor float64

	// Pool 随机池策略，零值按 PoolTop（兼容历史行为）
	Pool Pool

	// Seed 随机种子；0 表示每次调用取时间熵
	Seed int64
}

func (n *DiversityNode) Name() string        { return "rerank.diversity" }
func (n *DiversityNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *DiversityNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	count := n.Count
	randomFactor := n.RandomFactor
	seed := n.Seed
	if rctx != nil && rctx.Params != nil {
		count = int(conv.ConfigGetInt64(rctx.Params, "count", int64(count)))
		randomFactor = conv.ConfigGetFloat64(rctx.Params, "random_factor", randomFactor)
		seed = conv.ConfigGetInt64(rctx.Params, "seed", seed)
	}

	out := Sample(items, count, randomFactor, n.Pool, NewRand(seed))
	for _, it := range out {
		if _, ok := it.Labels["picked"]; ok {
			continue
		}
		it.PutLabel("picked", utils.Label{Value: string(n.poolOrDefault()), Source: "rerank"})
	}
	return out, nil
}

func (n *DiversityNode) poolOrDefault() Pool {
	if n.Pool == "" {
		return PoolTop
	}
	return n.Pool
}

var _ pipeline.Node = (*DiversityNode)(nil)
