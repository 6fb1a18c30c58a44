package core

import "github.com/rushteam/recmix/pkg/utils"

// RecommendContext 承载一次打分请求的用户/场景/快照信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	UserID string
	Scene  string

	// User 是本次请求的用户画像快照
	User *UserProfile

	// Snapshot 是候选目录与相似用户的全量快照
	Snapshot *Snapshot

	// Labels 是用户级标签，可驱动整个 Pipeline 行为
	Labels map[string]utils.Label

	// Params 请求级上下文参数，例如：
	// - count / random_factor：采样参数覆盖
	// - seed：采样随机种子（需要可复现结果时注入）
	Params map[string]any
}

// Catalog 返回候选目录；快照缺失时返回 nil。
func (rctx *RecommendContext) Catalog() []Work {
	if rctx == nil || rctx.Snapshot == nil {
		return nil
	}
	return rctx.Snapshot.Works
}

// SimilarUsers 返回相似用户列表；快照缺失时返回 nil。
func (rctx *RecommendContext) SimilarUsers() []SimilarUser {
	if rctx == nil || rctx.Snapshot == nil {
		return nil
	}
	return rctx.Snapshot.SimilarUsers
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
