package feature

import "github.com/ludokit/ludokit/core"

// 数值特征的归一化参数：评分满分 5 分，年份以 1990 为基准、40 年为跨度，
// 两者都压到 [0,1] 附近，避免 one-hot 维度被数值特征淹没。
const (
	ratingScale = 5.0
	yearBase    = 1990.0
	yearScale   = 40.0
)

// Vectorizer 按当前词表将游戏记录编码为定长特征向量。
//
// 向量布局（顺序固定）：
//  1. 类型 one-hot：词表类型按字典序排列，命中为 1.0，否则 0.0
//  2. 平台 one-hot：同上
//  3. 归一化评分：rating / 5.0
//  4. 归一化年份：(year - 1990) / 40.0
//
// Vector 是 (game, 当前词表状态) 的纯函数：词表增长后对同一游戏
// 会得到不同长度的向量，这正是全量重建机制存在的原因。
type Vectorizer struct {
	Vocab *Vocabulary
}

// NewVectorizer 创建绑定词表的向量化器。
func NewVectorizer(vocab *Vocabulary) *Vectorizer {
	return &Vectorizer{Vocab: vocab}
}

// Vector 将游戏编码为特征向量，长度等于 Vocab.Dim()。
// 缺失评分/日期走默认值，空的类型/平台产生全零子向量，均不报错。
func (z *Vectorizer) Vector(g *core.Game) []float64 {
	genres := z.Vocab.Genres()
	platforms := z.Vocab.Platforms()

	vec := make([]float64, 0, len(genres)+len(platforms)+2)

	has := make(map[string]struct{}, len(g.Genres))
	for _, x := range g.Genres {
		has[x] = struct{}{}
	}
	for _, genre := range genres {
		if _, ok := has[genre]; ok {
			vec = append(vec, 1.0)
		} else {
			vec = append(vec, 0.0)
		}
	}

	has = make(map[string]struct{}, len(g.Platforms))
	for _, x := range g.Platforms {
		has[x] = struct{}{}
	}
	for _, platform := range platforms {
		if _, ok := has[platform]; ok {
			vec = append(vec, 1.0)
		} else {
			vec = append(vec, 0.0)
		}
	}

	vec = append(vec,
		g.Rating/ratingScale,
		(float64(g.Year())-yearBase)/yearScale,
	)

	return vec
}
