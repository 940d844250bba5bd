package feature

import (
	"sort"

	"github.com/ludokit/ludokit/core"
)

// Vocabulary 是已观测到的类型/平台标签全集，决定特征向量的维度布局。
//
// 设计要点：
//   - 只增不减：标签一旦加入永不移除（单调增长）
//   - 任一时刻按字典序排序后的标签顺序，固定了该时刻生成的向量中每个维度的含义
//   - Generation 在词表尺寸变化时递增，向量可据此判断是否过期
//
// Vocabulary 自身不做并发保护，由持有它的 Engine 统一加锁。
type Vocabulary struct {
	genres    map[string]struct{}
	platforms map[string]struct{}

	// 排序结果缓存，词表变化时失效
	sortedGenres    []string
	sortedPlatforms []string

	generation uint64
}

// NewVocabulary 创建空词表。
func NewVocabulary() *Vocabulary {
	return &Vocabulary{
		genres:    make(map[string]struct{}),
		platforms: make(map[string]struct{}),
	}
}

// Observe 将给定游戏的类型/平台标签并入词表。
// 幂等：重复观测同一批游戏不会改变词表。
func (v *Vocabulary) Observe(games ...*core.Game) {
	changed := false
	for _, g := range games {
		if g == nil {
			continue
		}
		for _, genre := range g.Genres {
			if _, ok := v.genres[genre]; !ok {
				v.genres[genre] = struct{}{}
				changed = true
			}
		}
		for _, platform := range g.Platforms {
			if _, ok := v.platforms[platform]; !ok {
				v.platforms[platform] = struct{}{}
				changed = true
			}
		}
	}
	if changed {
		v.sortedGenres = nil
		v.sortedPlatforms = nil
		v.generation++
	}
}

// Genres 返回字典序排序后的类型标签，决定向量前段各维的含义。
// 返回的 slice 为内部缓存，调用方不得修改。
func (v *Vocabulary) Genres() []string {
	if v.sortedGenres == nil {
		v.sortedGenres = sortedKeys(v.genres)
	}
	return v.sortedGenres
}

// Platforms 返回字典序排序后的平台标签。
func (v *Vocabulary) Platforms() []string {
	if v.sortedPlatforms == nil {
		v.sortedPlatforms = sortedKeys(v.platforms)
	}
	return v.sortedPlatforms
}

// GenreCount 返回类型标签数。
func (v *Vocabulary) GenreCount() int { return len(v.genres) }

// PlatformCount 返回平台标签数。
func (v *Vocabulary) PlatformCount() int { return len(v.platforms) }

// Dim 返回当前词表下特征向量的长度：|genres| + |platforms| + 2（评分、年份）。
func (v *Vocabulary) Dim() int {
	return len(v.genres) + len(v.platforms) + 2
}

// Generation 返回词表代数，词表每次增长递增一次。
func (v *Vocabulary) Generation() uint64 { return v.generation }

// HasGenre 判断类型标签是否已在词表中。
func (v *Vocabulary) HasGenre(genre string) bool {
	_, ok := v.genres[genre]
	return ok
}

// HasPlatform 判断平台标签是否已在词表中。
func (v *Vocabulary) HasPlatform(platform string) bool {
	_, ok := v.platforms[platform]
	return ok
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
