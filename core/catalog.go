package core

import "context"

// CatalogService 是外部游戏目录服务的接口边界。
// 目录按自由文本检索游戏并返回标准化的 Game 记录；
// 实现见 catalog 包（RAWG 风格 HTTP API）。
type CatalogService interface {
	// Search 检索并返回最佳匹配的游戏（含完整详情）。
	// 无结果时返回 ErrCatalogNoResults。
	Search(ctx context.Context, query string) (*Game, error)

	// SearchAll 检索并返回前 limit 个匹配的游戏（含完整详情）。
	SearchAll(ctx context.Context, query string, limit int) ([]*Game, error)
}

// ErrCatalogNoResults 表示目录中没有匹配的游戏
var ErrCatalogNoResults = NewDomainError(ModuleCatalog, ErrorCodeNotFound, "catalog: no games found")
