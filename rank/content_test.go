package rank

import (
	"context"
	"math"
	"testing"

	"github.com/rushteam/recmix/core"
)

func newRctx(profile *core.UserProfile, snap *core.Snapshot) *core.RecommendContext {
	return &core.RecommendContext{User: profile, Snapshot: snap}
}

func TestContentSource_Rank(t *testing.T) {
	profile := &core.UserProfile{Tags: []core.Tag{{Name: "scifi", Value: 1.0}}}
	works := []core.Work{
		{ID: "A", Tags: []core.Tag{{Name: "scifi", Value: 1.0}}, ViewCount: 10, InteractionTime: 5},
		{ID: "B", Tags: []core.Tag{{Name: "drama", Value: 1.0}}, ViewCount: 0, InteractionTime: 0},
	}

	src := &ContentSource{Config: core.MetricsConfig{WeightTags: 1.0, UseMetrics: false}}
	items, err := src.Rank(context.Background(), newRctx(profile, &core.Snapshot{Works: works}))
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}

	// 目录每个作品恰好一条，不过滤
	if len(items) != len(works) {
		t.Fatalf("got %d items, want %d", len(items), len(works))
	}
	if items[0].ID != "A" || math.Abs(items[0].Score-1.0) > 1e-12 {
		t.Errorf("items[0] = (%s, %v), want (A, 1.0)", items[0].ID, items[0].Score)
	}
	if items[1].ID != "B" || items[1].Score != 0 {
		t.Errorf("items[1] = (%s, %v), want (B, 0)", items[1].ID, items[1].Score)
	}
}

func TestContentSource_SortedDescendingAndComplete(t *testing.T) {
	profile := &core.UserProfile{Tags: []core.Tag{{Name: "x", Value: 1.0}}}
	works := []core.Work{
		{ID: "low", Tags: []core.Tag{{Name: "y", Value: 1.0}}},
		{ID: "high", Tags: []core.Tag{{Name: "x", Value: 1.0}}},
		{ID: "mid", Tags: []core.Tag{{Name: "x", Value: 1.0}, {Name: "y", Value: 1.0}}},
	}

	src := &ContentSource{Config: core.MetricsConfig{WeightTags: 1.0}}
	items, err := src.Rank(context.Background(), newRctx(profile, &core.Snapshot{Works: works}))
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}

	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i-1].Score < items[i].Score {
			t.Errorf("not sorted descending at %d: %v < %v", i, items[i-1].Score, items[i].Score)
		}
	}
	if items[0].ID != "high" {
		t.Errorf("items[0].ID = %s, want high", items[0].ID)
	}
}

// 指标缩放相对于目录最大值
func TestContentSource_MetricsNormalization(t *testing.T) {
	profile := &core.UserProfile{Tags: nil}
	works := []core.Work{
		{ID: "hot", ViewCount: 100, InteractionTime: 20},
		{ID: "cold", ViewCount: 50, InteractionTime: 0},
	}

	src := &ContentSource{Config: core.MetricsConfig{
		UseMetrics:  true,
		WeightViews: 1.0,
		WeightTime:  1.0,
		WeightTags:  1.0,
	}}
	items, err := src.Rank(context.Background(), newRctx(profile, &core.Snapshot{Works: works}))
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}

	// hot: 100/100 + 20/20 = 2.0；cold: 50/100 + 0 = 0.5
	if items[0].ID != "hot" || math.Abs(items[0].Score-2.0) > 1e-12 {
		t.Errorf("items[0] = (%s, %v), want (hot, 2.0)", items[0].ID, items[0].Score)
	}
	if items[1].ID != "cold" || math.Abs(items[1].Score-0.5) > 1e-12 {
		t.Errorf("items[1] = (%s, %v), want (cold, 0.5)", items[1].ID, items[1].Score)
	}
}

// 同分保持目录顺序（稳定排序）
func TestContentSource_StableTies(t *testing.T) {
	profile := &core.UserProfile{Tags: nil}
	works := []core.Work{{ID: "first"}, {ID: "second"}, {ID: "third"}}

	src := &ContentSource{Config: core.MetricsConfig{WeightTags: 1.0}}
	items, err := src.Rank(context.Background(), newRctx(profile, &core.Snapshot{Works: works}))
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}

	wantOrder := []string{"first", "second", "third"}
	for i, want := range wantOrder {
		if items[i].ID != want {
			t.Errorf("items[%d].ID = %s, want %s", i, items[i].ID, want)
		}
	}
}

func TestContentSource_EmptyCatalog(t *testing.T) {
	src := &ContentSource{Config: core.MetricsConfig{WeightTags: 1.0}}
	items, err := src.Rank(context.Background(), newRctx(&core.UserProfile{}, &core.Snapshot{}))
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("got %d items, want 0", len(items))
	}
}
