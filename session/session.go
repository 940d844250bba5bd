// Package session 实现助手的会话层：一次用户会话持有一个推荐引擎实例、
// 一个滚动的最近查询历史，以及到目录/OCR 等外部协作方的出口。
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ludokit/ludokit/catalog"
	"github.com/ludokit/ludokit/core"
	"github.com/ludokit/ludokit/ocr"
	"github.com/ludokit/ludokit/query"
	"github.com/ludokit/ludokit/recommend"
)

// DefaultMaxRecent 是最近历史的默认上限（原型观测值：3）。
const DefaultMaxRecent = 3

// Session 是一次用户会话。
//
// 生命周期：会话开始时构造，结束即弃；推荐模型随会话存亡，
// 不存在进程级单例。历史淘汰（超过上限挤掉最旧一条）由本层负责，
// 推荐引擎只消费历史。
//
// Session 面向单调用方，串行使用；内部引擎自身是并发安全的。
type Session struct {
	// ID 会话标识，用于历史存储的 key 前缀
	ID string

	// Catalog 外部目录服务（必填）
	Catalog core.CatalogService

	// OCR 图片文字识别客户端（可选，不配则 LookupImage 报 NOT_SUPPORTED）
	OCR *ocr.SpaceClient

	// History 历史存储（可选）：配置后最近历史在跨进程间共享
	History core.Store

	// Exporter 查询落地（可选）：每次成功查询追加到 CSV/JSON
	Exporter *catalog.Exporter

	// Interpreter 查询解释器，零值用默认关键词表
	Interpreter query.Interpreter

	// MaxRecent 最近历史上限，<= 0 时取 DefaultMaxRecent
	MaxRecent int

	engine *recommend.Engine
	recent []*core.Game
}

// New 创建会话并尝试从 History 恢复最近历史（恢复失败按空历史开始）。
func New(ctx context.Context, id string, cat core.CatalogService, opts ...Option) *Session {
	s := &Session{
		ID:      id,
		Catalog: cat,
		engine:  recommend.NewEngine(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.History != nil {
		if recent, err := s.loadHistory(ctx); err == nil && len(recent) > 0 {
			s.recent = recent
			s.engine.UpdateModel(recent)
		}
	}
	return s
}

// Option 配置 Session 的可选项。
type Option func(*Session)

// WithOCR 配置图片识别客户端。
func WithOCR(client *ocr.SpaceClient) Option {
	return func(s *Session) { s.OCR = client }
}

// WithHistory 配置历史存储。
func WithHistory(store core.Store) Option {
	return func(s *Session) { s.History = store }
}

// WithExporter 配置查询落地。
func WithExporter(e *catalog.Exporter) Option {
	return func(s *Session) { s.Exporter = e }
}

// WithMaxRecent 配置最近历史上限。
func WithMaxRecent(n int) Option {
	return func(s *Session) { s.MaxRecent = n }
}

// LookupResult 是一次查询的完整结果：命中的游戏 + 基于最新历史的推荐。
type LookupResult struct {
	Game            *core.Game                  `json:"game"`
	Filters         query.Filters               `json:"filters"`
	Recommendations []*recommend.Recommendation `json:"recommendations,omitempty"`
}

// Lookup 处理一次自由文本查询：
// 解释查询 → 目录检索 → 记入历史并更新模型 → 返回游戏与当前推荐。
// 目录无结果时返回 core.ErrCatalogNoResults。
func (s *Session) Lookup(ctx context.Context, text string) (*LookupResult, error) {
	filters := s.Interpreter.Interpret(text)
	if filters.Empty() {
		return nil, core.NewDomainError(core.ModuleQuery, core.ErrorCodeInvalidInput, "query: nothing to search for")
	}

	searchText := filters.Name
	if searchText == "" {
		// 只有类型/平台/年份时，仍用原始文本做站内检索
		searchText = text
	}

	game, err := s.Catalog.Search(ctx, searchText)
	if err != nil {
		return nil, fmt.Errorf("session lookup: %w", err)
	}

	s.track(ctx, game)
	s.engine.UpdateModel([]*core.Game{game})

	if s.Exporter != nil {
		// 落地失败不影响查询结果
		_ = s.Exporter.AppendCSV(game)
		_ = s.Exporter.AppendJSON([]*core.Game{game})
	}

	return &LookupResult{
		Game:            game,
		Filters:         filters,
		Recommendations: s.Recommendations(0),
	}, nil
}

// LookupImage 处理一次图片查询：OCR 提取文字后走 Lookup。
func (s *Session) LookupImage(ctx context.Context, image []byte) (*LookupResult, error) {
	if s.OCR == nil {
		return nil, core.NewDomainError(core.ModuleSession, core.ErrorCodeNotSupported, "session: ocr not configured")
	}
	text, err := s.OCR.ExtractText(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("session lookup image: %w", err)
	}
	return s.Lookup(ctx, text)
}

// Recommendations 基于当前历史返回推荐，n <= 0 用引擎默认值。
// 历史不足 2 条时为空。
func (s *Session) Recommendations(n int) []*recommend.Recommendation {
	return s.engine.Recommend(s.recent, n)
}

// ByCategory 返回指定类型下的高分推荐。
func (s *Session) ByCategory(category string, n int) []*recommend.Recommendation {
	return s.engine.RecommendByCategory(category, n)
}

// Recent 返回最近历史的拷贝（最旧在前）。
func (s *Session) Recent() []*core.Game {
	out := make([]*core.Game, len(s.recent))
	for i, g := range s.recent {
		out[i] = g.Clone()
	}
	return out
}

// Engine 暴露底层推荐引擎，供 pipeline 召回源等高级用法挂接。
func (s *Session) Engine() *recommend.Engine {
	return s.engine
}

// Context 构造当前会话的 RecommendContext，供 pipeline 使用。
func (s *Session) Context() *core.RecommendContext {
	return &core.RecommendContext{
		SessionID:   s.ID,
		RecentGames: s.Recent(),
		Params:      make(map[string]any),
	}
}

// track 将游戏记入最近历史：同名去重，超过上限挤掉最旧一条。
func (s *Session) track(ctx context.Context, g *core.Game) {
	if g == nil || g.Name == "" {
		return
	}
	for _, old := range s.recent {
		if old.Name == g.Name {
			return
		}
	}

	maxRecent := s.MaxRecent
	if maxRecent <= 0 {
		maxRecent = DefaultMaxRecent
	}

	s.recent = append(s.recent, g.Clone())
	if len(s.recent) > maxRecent {
		s.recent = s.recent[len(s.recent)-maxRecent:]
	}

	if s.History != nil {
		// 历史持久化尽力而为，失败不影响会话
		_ = s.saveHistory(ctx)
		s.bumpPopularity(ctx, g.Name)
	}
}

// PopularityKey 是全局查询热度有序集合的 key（score = 查询次数），
// 供 recall.Popular 做热门召回。
const PopularityKey = "popular:games"

func (s *Session) bumpPopularity(ctx context.Context, name string) {
	kv, ok := s.History.(core.KeyValueStore)
	if !ok {
		return
	}
	count, err := kv.ZScore(ctx, PopularityKey, name)
	if err != nil {
		count = 0
	}
	_ = kv.ZAdd(ctx, PopularityKey, count+1, name)
}

func (s *Session) historyKey() string {
	return "session:recent:" + s.ID
}

func (s *Session) saveHistory(ctx context.Context) error {
	data, err := json.Marshal(s.recent)
	if err != nil {
		return err
	}
	return s.History.Set(ctx, s.historyKey(), data)
}

func (s *Session) loadHistory(ctx context.Context) ([]*core.Game, error) {
	data, err := s.History.Get(ctx, s.historyKey())
	if err != nil {
		return nil, err
	}
	var recent []*core.Game
	if err := json.Unmarshal(data, &recent); err != nil {
		return nil, err
	}
	return recent, nil
}
