package filter

import (
	"context"

	"github.com/rushteam/recmix/core"
	"github.com/rushteam/recmix/pkg/dsl"
)

// ExprFilter 是基于 CEL 表达式的过滤器：表达式对某条目求值为 true 时过滤该条目。
//
// 示例：
//   - `item.score < 0.1` → 过滤低分条目
//   - `label.rank_source == "collab" && item.score < 0.5` → 只压制协同路低分
type ExprFilter struct {
	// Expr 是 CEL 表达式；空表达式不过滤任何条目
	Expr string
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.Expr == "" || item == nil {
		return false, nil
	}
	return dsl.NewEval(item, rctx).Evaluate(f.Expr)
}

var _ Filter = (*ExprFilter)(nil)
