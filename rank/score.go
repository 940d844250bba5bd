// Package rank 提供排序阶段的 Node。
// 本工具包中候选的分数在召回阶段就已算好（画像余弦相似度），
// 排序阶段负责把多来源合并后的候选排成稳定的最终顺序。
package rank

import (
	"context"
	"sort"

	"github.com/ludokit/ludokit/core"
	"github.com/ludokit/ludokit/pipeline"
)

// Score 按 item.Score 降序排序，分数相同时按 ID 升序（确定性输出）。
// 典型用法放在 recall.fanout 之后：fanout 的合并只保证来源顺序，
// 跨来源的分数高低需要一次全局排序。
type Score struct{}

func (n *Score) Name() string        { return "rank.score" }
func (n *Score) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *Score) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) <= 1 {
		return items, nil
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i] == nil {
			return false
		}
		if items[j] == nil {
			return true
		}
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}
