package filter

import (
	"context"

	"github.com/ludokit/ludokit/core"
	"github.com/ludokit/ludokit/pkg/dsl"
)

// Expr 是表达式过滤器：用 CEL 表达式描述保留条件，表达式为 false 的候选被过滤。
//
// 示例：
//   - `game.rating >= 4.0`
//   - `"Puzzle" in game.genres && game.year >= 2010`
//   - `item.score > 0.5`
type Expr struct {
	// Expression 是 CEL 保留条件；为空时不过滤任何候选
	Expression string
}

func (f *Expr) Name() string {
	return "filter.expr"
}

func (f *Expr) ShouldFilter(_ context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error) {
	if f.Expression == "" {
		return false, nil
	}
	keep, err := dsl.NewEval(item, rctx).Evaluate(f.Expression)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
