package rank

import (
	"math"

	"github.com/rushteam/recmix/core"
	"github.com/rushteam/recmix/feature"
)

// TagSimilarity 计算用户画像与单个作品的标签余弦相似度。
//
// 两侧标签集视为按名称索引的稀疏向量：
//   - 点积只累加名称匹配的项，作品侧每个标签至多匹配画像侧的首个同名标签；
//     作品侧未匹配的标签只参与自身范数。
//   - 范数各自独立计算（与对侧是否含该标签无关），同名重复标签独立累加。
//
// 任一侧范数为 0（空向量或全零向量）时返回 0，不产生除零错误。
// 非负权重下结果落在 [0,1]。
//
// 复杂度 O(|user.Tags| × |work.Tags|)，小标签集下足够；
// 大词表场景可换成 name→value 映射，契约不变。
func TagSimilarity(user *core.UserProfile, work *core.Work) float64 {
	if user == nil || work == nil {
		return 0
	}

	var dot, normUser, normWork float64
	for _, tag := range user.Tags {
		normUser += tag.Value * tag.Value
	}
	for _, tag := range work.Tags {
		normWork += tag.Value * tag.Value
		for _, utag := range user.Tags {
			if utag.Name == tag.Name {
				dot += utag.Value * tag.Value
				break
			}
		}
	}

	normUser = math.Sqrt(normUser)
	normWork = math.Sqrt(normWork)
	if normUser == 0 || normWork == 0 {
		return 0
	}
	return dot / (normUser * normWork)
}

// ContentScore 计算单个作品的内容分：
//
//	score = cfg.WeightTags × TagSimilarity(user, work)
//	      + [cfg.UseMetrics] cfg.WeightViews × views.Scale(...) + cfg.WeightTime × time.Scale(...)
//
// 指标缩放相对于全目录最大值（由调用方扫描目录一次后传入），
// 对应的 Max <= 0 时该项为 0。权重不做校验，越界取值原样生效。
func ContentScore(user *core.UserProfile, work *core.Work, cfg core.MetricsConfig, views, times feature.MaxScaler) float64 {
	score := cfg.WeightTags * TagSimilarity(user, work)
	if cfg.UseMetrics {
		score += cfg.WeightViews*views.Scale(work.ViewCount) + cfg.WeightTime*times.Scale(work.InteractionTime)
	}
	return score
}
