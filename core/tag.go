package core

// Tag 是稀疏标签向量的一个分量：名称 + 权重。
// 同一实体内允许重复名称，重复项在点积与范数中独立累加（可加语义，见 UserProfile 注释）。
type Tag struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// UserProfile 是一次打分请求的用户画像快照：一组标签权重。
// 打分期间不可变；所有 Node 只读不写。
//
// 重复标签名的语义是"可加"：每个出现项都参与范数与点积。
// 需要唯一性的调用方应在构建画像时自行合并。
type UserProfile struct {
	UserID string `json:"user_id"`
	Tags   []Tag  `json:"tags"`
}

// NewUserProfile 创建一个空画像。
func NewUserProfile(userID string) *UserProfile {
	return &UserProfile{
		UserID: userID,
		Tags:   make([]Tag, 0),
	}
}

// AddTag 追加一个标签权重。不去重，同名标签按可加语义处理。
func (p *UserProfile) AddTag(name string, value float64) {
	p.Tags = append(p.Tags, Tag{Name: name, Value: value})
}

// TagValue 返回首个同名标签的权重；不存在时返回 0。
func (p *UserProfile) TagValue(name string) float64 {
	for _, t := range p.Tags {
		if t.Name == name {
			return t.Value
		}
	}
	return 0
}
