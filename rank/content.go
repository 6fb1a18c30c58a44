package rank

import (
	"context"

	"github.com/rushteam/recmix/core"
	"github.com/rushteam/recmix/feature"
	"github.com/rushteam/recmix/pkg/utils"
)

// ContentSource 是内容打分源（Content-Based）。
//
// 核心思想："用户喜欢具有某些标签的作品，按标签匹配度加用量热度打分"。
//
// 行为契约：
//   - 目录每个作品恰好产出一条结果，不过滤、不丢弃（无论分数正负大小）
//   - 指标缩放相对于本次目录的最大值（扫描一次预计算）
//   - 结果稳定降序；空目录得空结果
type ContentSource struct {
	// Config 控制用量指标的参与方式；零值表示只看标签相似度
	Config core.MetricsConfig
}

func (s *ContentSource) Name() string {
	return "rank.content"
}

func (s *ContentSource) Rank(
	_ context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if rctx == nil {
		return nil, nil
	}
	works := rctx.Catalog()
	if len(works) == 0 {
		return nil, nil
	}

	views := feature.ViewScaler(works)
	times := feature.TimeScaler(works)

	out := make([]*core.Item, 0, len(works))
	for i := range works {
		it := core.NewItem(works[i].ID)
		it.Score = ContentScore(rctx.User, &works[i], s.Config, views, times)
		it.PutLabel("rank_source", utils.Label{Value: "content", Source: "rank"})
		out = append(out, it)
	}

	sortDescending(out)
	return out, nil
}

var _ Source = (*ContentSource)(nil)
