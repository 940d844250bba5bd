package recommend

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ludokit/ludokit/core"
	"github.com/ludokit/ludokit/feature"
)

// DefaultTopN 是 Recommend 默认返回的候选数。
const DefaultTopN = 3

// Recommendation 是一条推荐结果：游戏记录的拷贝加上相似度标注。
// Similarity 是整数百分比字符串（如 "73%"），Score 是原始余弦相似度。
type Recommendation struct {
	*core.Game

	Score      float64 `json:"-"`
	Similarity string  `json:"similarity"`
}

// Engine 是在线增量更新的内容推荐引擎：为观测到的游戏构建特征向量，
// 在词表增长时全量重建以保持向量空间一致，并按用户画像
// （最近查询历史的平均向量）对全部已知游戏做相似度排序。
//
// 生命周期：一个用户会话对应一个 Engine 实例，会话结束即弃，
// 模型不跨进程持久化。
//
// 并发：单会话单调用方场景下无竞争；但 rebuild 进行中绝不能与
// 相似度扫描交错（会比较不同长度的向量），故所有状态统一用
// RWMutex 保护，多 goroutine 共享同一会话时也安全。
type Engine struct {
	mu sync.RWMutex

	vocab      *feature.Vocabulary
	vectorizer *feature.Vectorizer

	// games 与 vectors 是按游戏名对齐的双映射：
	// 一边存在的名字必在另一边，且向量由当前词表生成。
	games   map[string]*core.Game
	vectors map[string][]float64
}

// NewEngine 创建空的推荐引擎。
func NewEngine() *Engine {
	vocab := feature.NewVocabulary()
	return &Engine{
		vocab:      vocab,
		vectorizer: feature.NewVectorizer(vocab),
		games:      make(map[string]*core.Game),
		vectors:    make(map[string][]float64),
	}
}

// UpdateModel 将一批新观测到的游戏并入模型。
//
// 步骤：
//  1. 记录当前词表尺寸
//  2. 将新记录的类型/平台标签并入词表
//  3. 任一标签集增长则全量重建所有已存向量（修复共同维度不变量）
//  4. 仅为名字尚未入库的记录建档并向量化
//
// 已存在的名字不会被重新向量化，即使传入内容与库中不同——
// 首写生效；只有词表触发的全量重建会刷新旧向量，且重建读取的是
// 最初入库的记录而非本次传入的记录。空输入为 no-op。
func (e *Engine) UpdateModel(games []*core.Game) {
	if len(games) == 0 {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.updateModel(games)
}

// updateModel 是 UpdateModel 的无锁内部实现，调用方必须持有写锁。
func (e *Engine) updateModel(games []*core.Game) {
	oldGenres := e.vocab.GenreCount()
	oldPlatforms := e.vocab.PlatformCount()

	e.vocab.Observe(games...)

	if e.vocab.GenreCount() != oldGenres || e.vocab.PlatformCount() != oldPlatforms {
		e.rebuildAll()
	}

	for _, g := range games {
		if g == nil || g.Name == "" {
			continue
		}
		if _, ok := e.vectors[g.Name]; ok {
			continue
		}
		stored := g.Clone()
		e.games[g.Name] = stored
		e.vectors[g.Name] = e.vectorizer.Vector(stored)
	}
}

// rebuildAll 丢弃全部已存向量并按当前词表从入库记录重新计算。
// 必须对所有游戏无一例外地跑完，否则存量向量与新向量长度不一致。
// 调用方必须持有写锁。
func (e *Engine) rebuildAll() {
	e.vectors = make(map[string][]float64, len(e.games))
	for name, g := range e.games {
		e.vectors[name] = e.vectorizer.Vector(g)
	}
}

// Recommend 基于最近查询历史返回最多 n 条推荐。
//
// 历史不足 2 条时返回空（两个参考点以下的推荐没有意义），不报错。
// 候选为库中所有不在 recent 名单里的游戏，按与用户画像
// （recent 向量的逐分量平均）的余弦相似度降序排序；
// 相似度相等时按名字升序，保证结果确定。
// n <= 0 时取 DefaultTopN。
func (e *Engine) Recommend(recent []*core.Game, n int) []*Recommendation {
	if len(recent) < 2 {
		return nil
	}
	if n <= 0 {
		n = DefaultTopN
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// 先保证所有参考游戏都已在当前词表下向量化
	e.updateModel(recent)

	exclude := make(map[string]struct{}, len(recent))
	profileVecs := make([][]float64, 0, len(recent))
	for _, g := range recent {
		if g == nil || g.Name == "" {
			continue
		}
		exclude[g.Name] = struct{}{}
		if vec, ok := e.vectors[g.Name]; ok {
			profileVecs = append(profileVecs, vec)
		}
	}
	if len(profileVecs) == 0 {
		return nil
	}

	profile := meanVector(profileVecs)

	type scored struct {
		name  string
		score float64
	}
	candidates := make([]scored, 0, len(e.vectors))
	for name, vec := range e.vectors {
		if _, ok := exclude[name]; ok {
			continue
		}
		candidates = append(candidates, scored{name: name, score: Cosine(profile, vec)})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].name < candidates[j].name
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}

	out := make([]*Recommendation, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, &Recommendation{
			Game:       e.games[c.name].Clone(),
			Score:      c.score,
			Similarity: FormatSimilarity(c.score),
		})
	}
	return out
}

// FormatSimilarity 将余弦相似度格式化为整数百分比字符串（如 "73%"）。
// 舍入采用 fmt 的就近偶数舍入（0.725 → "72%"，0.735 → "74%"）。
func FormatSimilarity(score float64) string {
	return fmt.Sprintf("%.0f%%", score*100)
}

// Len 返回模型中已知游戏数。
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.games)
}

// Has 判断游戏是否已入库。
func (e *Engine) Has(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.games[name]
	return ok
}

// Game 返回已入库记录的拷贝。
func (e *Engine) Game(name string) (*core.Game, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	g, ok := e.games[name]
	if !ok {
		return nil, false
	}
	return g.Clone(), true
}

// Vector 返回某游戏当前特征向量的拷贝。
func (e *Engine) Vector(name string) ([]float64, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	vec, ok := e.vectors[name]
	if !ok {
		return nil, false
	}
	return append([]float64(nil), vec...), true
}

// Dim 返回当前词表下的向量维度。
func (e *Engine) Dim() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.vocab.Dim()
}

// Generation 返回词表代数，用于观测模型何时发生过重建。
func (e *Engine) Generation() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.vocab.Generation()
}

// CheckConsistency 校验双映射与维度不变量：
// 每个入库游戏都有向量、每个向量都有记录、且所有向量长度等于当前词表维度。
// 违反即为内部缺陷，返回 INTERNAL_ERROR 级别的领域错误。
func (e *Engine) CheckConsistency() error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	dim := e.vocab.Dim()
	for name := range e.games {
		vec, ok := e.vectors[name]
		if !ok {
			return core.NewDomainError(core.ModuleRecommend, core.ErrorCodeInternalError,
				"recommend: game without vector: "+name)
		}
		if len(vec) != dim {
			return core.NewDomainError(core.ModuleRecommend, core.ErrorCodeInternalError,
				fmt.Sprintf("recommend: stale vector for %s: len=%d, want %d", name, len(vec), dim))
		}
	}
	for name := range e.vectors {
		if _, ok := e.games[name]; !ok {
			return core.NewDomainError(core.ModuleRecommend, core.ErrorCodeInternalError,
				"recommend: vector without game: "+name)
		}
	}
	return nil
}
