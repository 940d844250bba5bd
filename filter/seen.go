package filter

import (
	"context"

	"github.com/ludokit/ludokit/core"
)

// Seen 过滤掉最近历史里已经出现过的候选（按名字匹配）。
// 推荐引擎内部已有同样的排除逻辑；该过滤器用于引擎之外组装的
// 召回源（例如按类型召回）同样遵守“不推最近看过的”约束。
type Seen struct{}

func (f *Seen) Name() string {
	return "filter.seen"
}

func (f *Seen) ShouldFilter(_ context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error) {
	if rctx == nil || len(rctx.RecentGames) == 0 {
		return false, nil
	}
	for _, g := range rctx.RecentGames {
		if g != nil && g.Name == item.ID {
			return true, nil
		}
	}
	return false, nil
}
