package recommend

import (
	"sort"

	"github.com/ludokit/ludokit/core"
)

// 按类型推荐路径的固定参数，与相似度推荐路径相互独立。
const (
	// DefaultMinRating 是类型过滤的默认评分下限（含边界）
	DefaultMinRating = 4.0

	// DefaultCategoryTopN 是 RecommendByCategory 默认返回的候选数
	DefaultCategoryTopN = 5

	// categorySeedSize 是作为相似度参考集的头部过滤结果数
	categorySeedSize = 3
)

// FilterByCategory 返回库中所有含指定类型标签且评分不低于 minRating 的游戏，
// 按评分降序排序（评分相等时按名字升序）。返回的是记录拷贝。
// 类型不存在或无匹配时返回空，不报错。
func (e *Engine) FilterByCategory(category string, minRating float64) []*core.Game {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]*core.Game, 0)
	for _, g := range e.games {
		if g.HasGenre(category) && g.Rating >= minRating {
			out = append(out, g.Clone())
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// RecommendByCategory 返回指定类型下的高分推荐。
//
// 组合路径：按类型过滤（阈值固定 4.0）→ 投影出最小记录喂回模型 →
// 取过滤结果的前 3 名作为"最近历史"参考集做相似度推荐 →
// 结果再按评分 >= 4.0 过滤一遍。类型无匹配时返回空。
// n <= 0 时取 DefaultCategoryTopN。
func (e *Engine) RecommendByCategory(category string, n int) []*Recommendation {
	if n <= 0 {
		n = DefaultCategoryTopN
	}

	filtered := e.FilterByCategory(category, DefaultMinRating)
	if len(filtered) == 0 {
		return nil
	}

	// 最小投影：与相似度模型相关的字段
	seeds := make([]*core.Game, 0, len(filtered))
	for _, g := range filtered {
		seeds = append(seeds, &core.Game{
			Name:     g.Name,
			Genres:   g.Genres,
			Rating:   g.Rating,
			Released: g.Released,
		})
	}

	e.UpdateModel(seeds)

	base := seeds
	if len(base) > categorySeedSize {
		base = base[:categorySeedSize]
	}

	recs := e.Recommend(base, n)

	out := recs[:0]
	for _, r := range recs {
		if r.Rating >= DefaultMinRating {
			out = append(out, r)
		}
	}
	return out
}
