package rank

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/recmix/core"
	"github.com/rushteam/recmix/pipeline"
	"github.com/rushteam/recmix/pkg/utils"
)

// Combine 把两路排序结果线性加权融合为一份：
//
//	final(id) = contentWeight × contentScore(id, 缺省 0) + collabWeight × collabScore(id, 缺省 0)
//
// 只出现在一路中的作品仍进入输出，缺席的一路贡献 0。
// ID 按首次出现顺序（先 content 后 collab）参与稳定降序排序。
// 权重不做校验：负值或 >1 用于放大/压制某一路，由调用方负责。
func Combine(content, collab []*core.Item, contentWeight, collabWeight float64) []*core.Item {
	return fuseWeighted(
		[][]*core.Item{content, collab},
		[]float64{contentWeight, collabWeight},
	)
}

// fuseWeighted 按声明顺序对多路结果做加权求和后稳定降序排序。
func fuseWeighted(lists [][]*core.Item, weights []float64) []*core.Item {
	scores := make(map[string]float64, 64)
	order := make([]string, 0, 64)
	labels := make(map[string][]utils.Label, 64)

	for li, list := range lists {
		w := weights[li]
		for _, it := range list {
			if it == nil {
				continue
			}
			if _, ok := scores[it.ID]; !ok {
				order = append(order, it.ID)
			}
			scores[it.ID] += w * it.Score
			if lbl, ok := it.Labels["rank_source"]; ok {
				labels[it.ID] = append(labels[it.ID], lbl)
			}
		}
	}

	out := make([]*core.Item, 0, len(order))
	for _, id := range order {
		it := core.NewItem(id)
		it.Score = scores[id]
		for _, lbl := range labels[id] {
			it.PutLabel("rank_source", lbl)
		}
		it.PutLabel("fused", utils.Label{Value: "true", Source: "fuse"})
		out = append(out, it)
	}

	sortDescending(out)
	return out
}

// WeightedSource 是一路带融合权重的打分源。
type WeightedSource struct {
	Source Source
	Weight float64
}

// FuseNode 是融合 Node：并发执行各打分源，再按权重线性合并为一份降序结果。
//
// 各源结果按声明槽位收集，合并顺序与 Sources 顺序一致，输出对给定输入
// 完全确定（并发只影响耗时，不影响结果）。
//
// 两路标准源（content + collab）加默认权重时与 Combine 完全等价：
//
//	fuse := rank.NewFuseNode(&rank.ContentSource{...}, &rank.CollabSource{}, 0.5, 0.5)
type FuseNode struct {
	Sources []WeightedSource
}

// NewFuseNode 构建标准的双路融合 Node。
// 两个权重同时为 0 时按 0.5/0.5 的策略默认值处理。
func NewFuseNode(content, collab Source, contentWeight, collabWeight float64) *FuseNode {
	if contentWeight == 0 && collabWeight == 0 {
		contentWeight = core.DefaultContentWeight
		collabWeight = core.DefaultCollabWeight
	}
	return &FuseNode{
		Sources: []WeightedSource{
			{Source: content, Weight: contentWeight},
			{Source: collab, Weight: collabWeight},
		},
	}
}

func (n *FuseNode) Name() string        { return "rank.fuse" }
func (n *FuseNode) Kind() pipeline.Kind { return pipeline.KindFuse }

func (n *FuseNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	lists := make([][]*core.Item, len(n.Sources))
	weights := make([]float64, len(n.Sources))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, ws := range n.Sources {
		slot, s, w := i, ws.Source, ws.Weight
		weights[slot] = w
		eg.Go(func() error {
			items, err := s.Rank(egCtx, rctx)
			if err != nil {
				return err
			}
			lists[slot] = items
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return fuseWeighted(lists, weights), nil
}

var _ pipeline.Node = (*FuseNode)(nil)
