package filter

import (
	"context"

	"github.com/ludokit/ludokit/core"
)

// MinRating 过滤掉评分低于阈值的候选（边界含入：rating >= Min 保留）。
// 缺失 Game 记录的候选一并过滤，评分无从判断。
type MinRating struct {
	Min float64
}

func (f *MinRating) Name() string {
	return "filter.min_rating"
}

func (f *MinRating) ShouldFilter(_ context.Context, _ *core.RecommendContext, item *core.Item) (bool, error) {
	if item.Game == nil {
		return true, nil
	}
	return item.Game.Rating < f.Min, nil
}
