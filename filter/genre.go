package filter

import (
	"context"

	"github.com/ludokit/ludokit/core"
)

// Genre 只保留含指定类型标签的候选（精确匹配）。
type Genre struct {
	Genre string
}

func (f *Genre) Name() string {
	return "filter.genre"
}

func (f *Genre) ShouldFilter(_ context.Context, _ *core.RecommendContext, item *core.Item) (bool, error) {
	if f.Genre == "" {
		return false, nil
	}
	if item.Game == nil {
		return true, nil
	}
	return !item.Game.HasGenre(f.Genre), nil
}
