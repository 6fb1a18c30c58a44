package core

// 融合与采样的默认参数。
// 0.5/0.5 是策略默认值而非硬约束：调用方可传任意实数权重（含负值或 >1）
// 来放大/压制某一路打分。
const (
	DefaultContentWeight = 0.5
	DefaultCollabWeight  = 0.5
)

// ScoringConfig 是打分相关的配置接口，用于提供默认值。
type ScoringConfig interface {
	// DefaultCount 返回默认的推荐条数
	DefaultCount() int

	// DefaultRandomFactor 返回默认的随机比例
	DefaultRandomFactor() float64
}

// DefaultScoringConfig 是默认的打分配置实现。
type DefaultScoringConfig struct{}

func (c *DefaultScoringConfig) DefaultCount() int {
	return 10
}

func (c *DefaultScoringConfig) DefaultRandomFactor() float64 {
	return 0.2
}
