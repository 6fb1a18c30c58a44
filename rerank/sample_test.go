package rerank

import (
	"context"
	"testing"

	"github.com/rushteam/recmix/core"
)

func fused(ids ...string) []*core.Item {
	items := make([]*core.Item, 0, len(ids))
	for i, id := range ids {
		it := core.NewItem(id)
		it.Score = float64(len(ids) - i) // 降序
		items = append(items, it)
	}
	return items
}

func idMultiset(items []*core.Item) map[string]int {
	got := make(map[string]int, len(items))
	for _, it := range items {
		got[it.ID]++
	}
	return got
}

func TestSample_CountZero(t *testing.T) {
	recs := fused("a", "b", "c")
	for _, count := range []int{0, -1, -100} {
		if out := Sample(recs, count, 0.5, PoolTop, NewRand(1)); len(out) != 0 {
			t.Errorf("count=%d: got %d items, want 0", count, len(out))
		}
	}
}

// randomFactor=0 时输出恰好是前 N 条（顺序被洗牌，但 ID 集合一致）
func TestSample_NoRandomShare(t *testing.T) {
	recs := fused("a", "b", "c", "d", "e")
	for _, pool := range []Pool{PoolTop, PoolTail} {
		out := Sample(recs, 3, 0, pool, NewRand(7))
		got := idMultiset(out)
		want := map[string]int{"a": 1, "b": 1, "c": 1}
		if len(out) != 3 {
			t.Fatalf("pool=%s: got %d items, want 3", pool, len(out))
		}
		for id, n := range want {
			if got[id] != n {
				t.Errorf("pool=%s: id multiset = %v, want %v", pool, got, want)
				break
			}
		}
	}
}

// PoolTop（兼容行为）：随机段从与保底段相同的前 numTop 条中抽取，
// 两段之间可能重复且绝不触及排名靠后的条目
func TestSample_PoolTopDrawsFromTopSlice(t *testing.T) {
	recs := fused("a", "b", "c", "d", "e", "f")
	// count=4, randomFactor=0.5 → numRandom=2, numTop=2
	// 保底段 = {a,b}，随机池 = 同样的 {a,b} → 输出恰为 a、b 各两次
	out := Sample(recs, 4, 0.5, PoolTop, NewRand(42))
	if len(out) != 4 {
		t.Fatalf("got %d items, want 4", len(out))
	}
	got := idMultiset(out)
	if got["a"] != 2 || got["b"] != 2 {
		t.Errorf("id multiset = %v, want a×2 b×2", got)
	}
}

// PoolTail（修正行为）：随机段从第 numTop 条之后抽取，无重复
func TestSample_PoolTailDrawsBelowTop(t *testing.T) {
	recs := fused("a", "b", "c", "d", "e", "f")
	out := Sample(recs, 4, 0.5, PoolTail, NewRand(42))
	if len(out) != 4 {
		t.Fatalf("got %d items, want 4", len(out))
	}
	got := idMultiset(out)
	// 保底 {a,b} 必在且各一次
	if got["a"] != 1 || got["b"] != 1 {
		t.Fatalf("top ids missing or duplicated: %v", got)
	}
	// 随机段只来自 {c,d,e,f}，且无重复
	randTotal := 0
	for _, id := range []string{"c", "d", "e", "f"} {
		if got[id] > 1 {
			t.Errorf("tail id %s duplicated: %v", id, got)
		}
		randTotal += got[id]
	}
	if randTotal != 2 {
		t.Errorf("tail share = %d, want 2 (multiset %v)", randTotal, got)
	}
}

func TestSample_CountExceedsInput(t *testing.T) {
	recs := fused("a", "b")
	out := Sample(recs, 10, 0, PoolTop, NewRand(3))
	got := idMultiset(out)
	if len(out) != 2 || got["a"] != 1 || got["b"] != 1 {
		t.Errorf("got %v, want exactly a and b once each", got)
	}
}

// randomFactor=1 时 PoolTop 的保底段与随机池都为空（兼容行为），
// PoolTail 则整个列表都是随机池
func TestSample_AllRandom(t *testing.T) {
	recs := fused("a", "b", "c", "d")

	if out := Sample(recs, 2, 1.0, PoolTop, NewRand(5)); len(out) != 0 {
		t.Errorf("PoolTop: got %d items, want 0", len(out))
	}

	out := Sample(recs, 2, 1.0, PoolTail, NewRand(5))
	if len(out) != 2 {
		t.Fatalf("PoolTail: got %d items, want 2", len(out))
	}
	for id, n := range idMultiset(out) {
		if n != 1 {
			t.Errorf("PoolTail: id %s drawn %d times", id, n)
		}
	}
}

// 相同种子给出相同输出序列；不同种子（几乎必然）打乱不同
func TestSample_SeedDeterminism(t *testing.T) {
	recs := fused("a", "b", "c", "d", "e", "f", "g", "h")

	first := Sample(recs, 6, 0.5, PoolTail, NewRand(99))
	second := Sample(recs, 6, 0.5, PoolTail, NewRand(99))
	if len(first) != len(second) {
		t.Fatalf("length mismatch: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("same seed diverged at %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
}

func TestSample_InputNotMutated(t *testing.T) {
	recs := fused("a", "b", "c", "d")
	Sample(recs, 4, 0.5, PoolTop, NewRand(11))
	wantOrder := []string{"a", "b", "c", "d"}
	for i, want := range wantOrder {
		if recs[i].ID != want {
			t.Fatalf("input slice mutated: %v", recs)
		}
	}
}

func TestDiversityNode_ParamsOverride(t *testing.T) {
	node := &DiversityNode{Count: 10, RandomFactor: 0.5, Seed: 1}
	rctx := &core.RecommendContext{Params: map[string]any{
		"count":         int64(2),
		"random_factor": 0.0,
		"seed":          int64(7),
	}}

	out, err := node.Process(context.Background(), rctx, fused("a", "b", "c", "d"))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	got := idMultiset(out)
	if len(out) != 2 || got["a"] != 1 || got["b"] != 1 {
		t.Errorf("got %v, want top-2 {a, b}", got)
	}
	for _, it := range out {
		if _, ok := it.Labels["picked"]; !ok {
			t.Errorf("item %s missing picked label", it.ID)
		}
	}
}

func TestTopNNode(t *testing.T) {
	tests := []struct {
		name string
		n    int
		in   []*core.Item
		want int
	}{
		{"truncates", 2, fused("a", "b", "c"), 2},
		{"n zero keeps all", 0, fused("a", "b"), 2},
		{"n beyond length keeps all", 9, fused("a", "b"), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &TopNNode{N: tt.n}
			out, err := node.Process(context.Background(), nil, tt.in)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if len(out) != tt.want {
				t.Errorf("got %d items, want %d", len(out), tt.want)
			}
		})
	}
}
