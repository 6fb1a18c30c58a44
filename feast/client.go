package feast

import "context"

// Client 是 Feast Feature Store 的客户端接口。
//
// Recmix 只依赖在线特征读取：把用户的标签权重作为在线特征存进 Feast，
// 打分进程按 userID 拉取并还原为画像（见 ProfileSource）。
//
// 参考：https://github.com/feast-dev/feast
type Client interface {
	// GetOnlineFeatures 获取在线特征（用于实时画像装载）
	//
	// 参数：
	//   - Features: 特征名称列表，例如 ["user_tags:scifi", "user_tags:drama"]
	//   - EntityRows: 实体行，例如 [{"user_id": "u42"}]
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求
type GetOnlineFeaturesRequest struct {
	// Features 特征名称列表
	Features []string

	// EntityRows 实体行
	EntityRows []map[string]interface{}

	// Project 项目名称（可选，缺省用客户端默认项目）
	Project string
}

// GetOnlineFeaturesResponse 获取在线特征响应
type GetOnlineFeaturesResponse struct {
	// FeatureVectors 特征向量列表，每个元素对应一个实体行
	FeatureVectors []FeatureVector
}

// FeatureVector 特征向量
type FeatureVector struct {
	// Values 特征值，key 为特征名称
	Values map[string]interface{}

	// EntityRow 对应的实体行
	EntityRow map[string]interface{}
}
