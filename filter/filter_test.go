package filter

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rushteam/recmix/core"
	"github.com/rushteam/recmix/store"
)

func item(id string, score float64) *core.Item {
	it := core.NewItem(id)
	it.Score = score
	return it
}

func TestSeenFilter_MemoryList(t *testing.T) {
	f := NewSeenFilter([]string{"seen1", "seen2"}, nil, "")

	tests := []struct {
		id   string
		want bool
	}{
		{"seen1", true},
		{"seen2", true},
		{"fresh", false},
	}
	for _, tt := range tests {
		got, err := f.ShouldFilter(context.Background(), nil, item(tt.id, 1))
		if err != nil {
			t.Fatalf("ShouldFilter(%s) error = %v", tt.id, err)
		}
		if got != tt.want {
			t.Errorf("ShouldFilter(%s) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestSeenFilter_StoreBacked(t *testing.T) {
	ms := store.NewMemoryStore()
	defer ms.Close()

	seen, _ := json.Marshal([]string{"w1"})
	if err := ms.Set(context.Background(), "seen:u42", seen); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	f := NewSeenFilter(nil, NewStoreAdapter(ms), "seen:")
	rctx := &core.RecommendContext{UserID: "u42"}

	if got, _ := f.ShouldFilter(context.Background(), rctx, item("w1", 1)); !got {
		t.Error("w1 should be filtered")
	}
	if got, _ := f.ShouldFilter(context.Background(), rctx, item("w2", 1)); got {
		t.Error("w2 should pass")
	}

	// 存储中无记录的用户不过滤
	fresh := &core.RecommendContext{UserID: "nobody"}
	if got, _ := f.ShouldFilter(context.Background(), fresh, item("w1", 1)); got {
		t.Error("unknown user should not filter")
	}
}

func TestExprFilter(t *testing.T) {
	f := &ExprFilter{Expr: `item.score < 0.3`}

	if got, err := f.ShouldFilter(context.Background(), nil, item("low", 0.1)); err != nil || !got {
		t.Errorf("low score: got %v, %v; want filtered", got, err)
	}
	if got, err := f.ShouldFilter(context.Background(), nil, item("high", 0.9)); err != nil || got {
		t.Errorf("high score: got %v, %v; want kept", got, err)
	}

	// 空表达式不过滤
	empty := &ExprFilter{}
	if got, _ := empty.ShouldFilter(context.Background(), nil, item("x", 0)); got {
		t.Error("empty expr should not filter")
	}
}

func TestFilterNode(t *testing.T) {
	node := &FilterNode{Filters: []Filter{
		NewSeenFilter([]string{"b"}, nil, ""),
		&ExprFilter{Expr: `item.score < 0.0`},
	}}

	items := []*core.Item{item("a", 0.5), item("b", 0.9), item("c", -1)}
	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 1 || out[0].ID != "a" {
		t.Fatalf("got %d items, want only a", len(out))
	}
}
