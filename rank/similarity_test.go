package rank

import (
	"math"
	"testing"

	"github.com/rushteam/recmix/core"
	"github.com/rushteam/recmix/feature"
)

func TestTagSimilarity(t *testing.T) {
	tests := []struct {
		name string
		user []core.Tag
		work []core.Tag
		want float64
	}{
		{
			name: "exact match single tag",
			user: []core.Tag{{Name: "scifi", Value: 1.0}},
			work: []core.Tag{{Name: "scifi", Value: 1.0}},
			want: 1.0,
		},
		{
			name: "no overlap",
			user: []core.Tag{{Name: "scifi", Value: 1.0}},
			work: []core.Tag{{Name: "drama", Value: 1.0}},
			want: 0.0,
		},
		{
			name: "empty user tags",
			user: nil,
			work: []core.Tag{{Name: "drama", Value: 1.0}},
			want: 0.0,
		},
		{
			name: "empty work tags",
			user: []core.Tag{{Name: "scifi", Value: 1.0}},
			work: nil,
			want: 0.0,
		},
		{
			name: "all-zero vector yields zero, no divide fault",
			user: []core.Tag{{Name: "scifi", Value: 0}},
			work: []core.Tag{{Name: "scifi", Value: 1.0}},
			want: 0.0,
		},
		{
			name: "partial overlap",
			user: []core.Tag{{Name: "scifi", Value: 1.0}, {Name: "drama", Value: 1.0}},
			work: []core.Tag{{Name: "scifi", Value: 1.0}},
			// dot = 1, normUser = sqrt(2), normWork = 1
			want: 1.0 / math.Sqrt2,
		},
		{
			name: "unmatched work tag only contributes to work norm",
			user: []core.Tag{{Name: "scifi", Value: 1.0}},
			work: []core.Tag{{Name: "scifi", Value: 1.0}, {Name: "space", Value: 1.0}},
			want: 1.0 / math.Sqrt2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &core.UserProfile{Tags: tt.user}
			work := &core.Work{ID: "w", Tags: tt.work}
			got := TagSimilarity(user, work)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("TagSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

// 余弦相似度对任一侧整体正缩放不变
func TestTagSimilarity_ScaleInvariance(t *testing.T) {
	user := &core.UserProfile{Tags: []core.Tag{{Name: "a", Value: 0.4}, {Name: "b", Value: 0.7}}}
	work := &core.Work{ID: "w", Tags: []core.Tag{{Name: "a", Value: 1.0}, {Name: "c", Value: 0.2}}}
	base := TagSimilarity(user, work)

	for _, k := range []float64{0.5, 3, 100} {
		scaledUser := &core.UserProfile{Tags: []core.Tag{{Name: "a", Value: 0.4 * k}, {Name: "b", Value: 0.7 * k}}}
		if got := TagSimilarity(scaledUser, work); math.Abs(got-base) > 1e-12 {
			t.Errorf("user scaled by %v: got %v, want %v", k, got, base)
		}
		scaledWork := &core.Work{ID: "w", Tags: []core.Tag{{Name: "a", Value: 1.0 * k}, {Name: "c", Value: 0.2 * k}}}
		if got := TagSimilarity(user, scaledWork); math.Abs(got-base) > 1e-12 {
			t.Errorf("work scaled by %v: got %v, want %v", k, got, base)
		}
	}
}

// 同名重复标签独立累加（可加语义）
func TestTagSimilarity_DuplicateTagNames(t *testing.T) {
	user := &core.UserProfile{Tags: []core.Tag{{Name: "a", Value: 1.0}}}
	work := &core.Work{ID: "w", Tags: []core.Tag{
		{Name: "a", Value: 1.0},
		{Name: "a", Value: 1.0},
	}}
	// dot = 1 + 1 = 2（作品侧每个重复项都匹配画像首个 a）
	// normWork = sqrt(2), normUser = 1
	want := 2.0 / math.Sqrt2
	if got := TagSimilarity(user, work); math.Abs(got-want) > 1e-12 {
		t.Errorf("TagSimilarity() = %v, want %v", got, want)
	}
}

func TestContentScore(t *testing.T) {
	user := &core.UserProfile{Tags: []core.Tag{{Name: "scifi", Value: 1.0}}}
	work := &core.Work{ID: "w", Tags: []core.Tag{{Name: "scifi", Value: 1.0}}, ViewCount: 50, InteractionTime: 10}

	tests := []struct {
		name  string
		cfg   core.MetricsConfig
		views feature.MaxScaler
		times feature.MaxScaler
		want  float64
	}{
		{
			name:  "metrics disabled",
			cfg:   core.MetricsConfig{UseMetrics: false, WeightTags: 1.0, WeightViews: 0.5, WeightTime: 0.5},
			views: feature.MaxScaler{Max: 100},
			times: feature.MaxScaler{Max: 20},
			want:  1.0,
		},
		{
			name:  "metrics enabled",
			cfg:   core.MetricsConfig{UseMetrics: true, WeightTags: 1.0, WeightViews: 0.4, WeightTime: 0.2},
			views: feature.MaxScaler{Max: 100},
			times: feature.MaxScaler{Max: 20},
			// 1.0 + 0.4*(50/100) + 0.2*(10/20)
			want: 1.3,
		},
		{
			name:  "zero maxima give zero metric ratios",
			cfg:   core.MetricsConfig{UseMetrics: true, WeightTags: 1.0, WeightViews: 0.4, WeightTime: 0.2},
			views: feature.MaxScaler{Max: 0},
			times: feature.MaxScaler{Max: 0},
			want:  1.0,
		},
		{
			name:  "out-of-range weights pass through unvalidated",
			cfg:   core.MetricsConfig{UseMetrics: true, WeightTags: -2.0, WeightViews: 3.0, WeightTime: 0},
			views: feature.MaxScaler{Max: 100},
			times: feature.MaxScaler{Max: 20},
			// -2*1.0 + 3*(50/100)
			want: -0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ContentScore(user, work, tt.cfg, tt.views, tt.times)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("ContentScore() = %v, want %v", got, tt.want)
			}
		})
	}
}
