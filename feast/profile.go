package feast

import (
	"context"
	"strings"

	"github.com/rushteam/recmix/core"
	"github.com/rushteam/recmix/pkg/conv"
)

// ProfileSource 从 Feast 在线特征还原用户画像：
// 每个特征是一个标签权重，特征名的 "view:name" 后缀作为标签名。
//
// 示例：特征 ["user_tags:scifi", "user_tags:drama"]，实体 {"user_id": "u42"}
// → UserProfile{Tags: [{scifi, 0.9}, {drama, 0.1}]}。
type ProfileSource struct {
	Client Client

	// Features 要拉取的特征名称列表
	Features []string

	// EntityKey 实体主键名，默认 "user_id"
	EntityKey string

	// Project 项目名称（可选）
	Project string
}

// FetchProfile 按 userID 拉取在线特征并还原为画像。
// 非数值特征值被跳过；特征全部缺失时返回空标签集的画像，而非错误。
func (s *ProfileSource) FetchProfile(ctx context.Context, userID string) (*core.UserProfile, error) {
	entityKey := s.EntityKey
	if entityKey == "" {
		entityKey = "user_id"
	}

	resp, err := s.Client.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features:   s.Features,
		EntityRows: []map[string]interface{}{{entityKey: userID}},
		Project:    s.Project,
	})
	if err != nil {
		return nil, err
	}

	profile := core.NewUserProfile(userID)
	if len(resp.FeatureVectors) == 0 {
		return profile, nil
	}

	// 按声明顺序还原，保证画像标签顺序确定
	values := resp.FeatureVectors[0].Values
	for _, featureName := range s.Features {
		raw, ok := values[featureName]
		if !ok {
			continue
		}
		value, ok := conv.ToFloat64(raw)
		if !ok {
			continue
		}
		profile.AddTag(tagName(featureName), value)
	}
	return profile, nil
}

// tagName 取特征名 "view:name" 的 name 部分；无冒号时原样返回。
func tagName(featureName string) string {
	if idx := strings.LastIndex(featureName, ":"); idx >= 0 {
		return featureName[idx+1:]
	}
	return featureName
}
