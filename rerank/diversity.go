package rerank

import (
	"context"

	"github.com/ludokit/ludokit/core"
	"github.com/ludokit/ludokit/pipeline"
)

// Diversity 是一个简单的多样性 ReRank：按首个类型标签去重，
// 避免推荐列表被同一类型刷屏（保留每个类型最靠前的候选）。
// 没有类型标签的候选直接保留。
type Diversity struct{}

func (n *Diversity) Name() string {
	return "rerank.diversity"
}

func (n *Diversity) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *Diversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	seen := make(map[string]bool, len(items))
	out := make([]*core.Item, 0, len(items))

	for _, it := range items {
		if it == nil {
			continue
		}

		genre := ""
		if it.Game != nil && len(it.Game.Genres) > 0 {
			genre = it.Game.Genres[0]
		}

		if genre == "" {
			out = append(out, it)
			continue
		}
		if seen[genre] {
			continue
		}
		seen[genre] = true
		out = append(out, it)
	}

	return out, nil
}
