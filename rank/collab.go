package rank

import (
	"context"

	"github.com/rushteam/recmix/core"
	"github.com/rushteam/recmix/pkg/utils"
)

// CollabSource 是协同过滤打分源（User-Based CF）。
//
// 每个作品的分数是喜欢过它的相似用户的 Similarity 之和。
//
// 行为契约：
//   - 结果是稀疏的：从未被任何相似用户喜欢的作品不出现
//     （与 ContentSource 的"目录全覆盖"刻意不对称——这里没有目录参照）
//   - 聚合顺序按首次出现，同分项排序后保持该顺序，输出完全确定
//   - 空输入得空结果
type CollabSource struct{}

func (s *CollabSource) Name() string {
	return "rank.collab"
}

func (s *CollabSource) Rank(
	_ context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if rctx == nil {
		return nil, nil
	}
	users := rctx.SimilarUsers()
	if len(users) == 0 {
		return nil, nil
	}

	scores := make(map[string]float64, 64)
	order := make([]string, 0, 64)
	for _, u := range users {
		for _, workID := range u.LikedWorks {
			if _, ok := scores[workID]; !ok {
				order = append(order, workID)
			}
			scores[workID] += u.Similarity
		}
	}

	out := make([]*core.Item, 0, len(order))
	for _, id := range order {
		it := core.NewItem(id)
		it.Score = scores[id]
		it.PutLabel("rank_source", utils.Label{Value: "collab", Source: "rank"})
		out = append(out, it)
	}

	sortDescending(out)
	return out, nil
}

var _ Source = (*CollabSource)(nil)
