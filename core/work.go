package core

// Work 是候选物品（作品）：唯一 ID、标签向量、两项用量指标。
// 打分期间不可变；目录（catalog）即一次请求的全部候选集。
type Work struct {
	ID              string  `json:"id"`
	Tags            []Tag   `json:"tags"`
	ViewCount       float64 `json:"view_count"`       // 累计浏览数（>=0）
	InteractionTime float64 `json:"interaction_time"` // 平均交互时长（>=0）
}

// SimilarUser 是协同过滤的输入单元：与目标用户的相似度 + 喜欢过的作品 ID 列表。
// 喜欢列表不带权重，每个作品对该用户等价计数。
type SimilarUser struct {
	ID         string   `json:"id"`
	Similarity float64  `json:"similarity"` // 通常在 [0,1]，不强制
	LikedWorks []string `json:"liked_works"`
}

// MetricsConfig 控制内容打分中用量指标的参与方式。
// 属于调用方契约：核心不校验取值范围，越界权重原样生效。
type MetricsConfig struct {
	UseMetrics  bool    `json:"use_metrics"`
	WeightViews float64 `json:"weight_views"`
	WeightTime  float64 `json:"weight_time"`
	WeightTags  float64 `json:"weight_tags"`
}

// Snapshot 是一次打分请求的全量输入快照：候选目录 + 相似用户。
// 每次调用各自持有一份，核心从不修改。
type Snapshot struct {
	Works        []Work        `json:"works"`
	SimilarUsers []SimilarUser `json:"similar_users"`
}
