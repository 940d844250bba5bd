// Package builders 提供内置 Node 的配置构建逻辑。
// 无状态 Node 在 init 中注册到 config 注册表；
// 依赖推荐引擎的召回 Node 通过 NewFactory(engine) 绑定。
package builders

import (
	"fmt"
	"time"

	"github.com/ludokit/ludokit/config"
	"github.com/ludokit/ludokit/filter"
	"github.com/ludokit/ludokit/pipeline"
	"github.com/ludokit/ludokit/pkg/conv"
	"github.com/ludokit/ludokit/rank"
	"github.com/ludokit/ludokit/recall"
	"github.com/ludokit/ludokit/recommend"
	"github.com/ludokit/ludokit/rerank"
)

func init() {
	config.Register("filter", BuildFilterNode)
	config.Register("filter.min_rating", BuildMinRatingNode)
	config.Register("filter.genre", BuildGenreNode)
	config.Register("filter.seen", BuildSeenNode)
	config.Register("filter.expr", BuildExprNode)
	config.Register("filter.blocklist", BuildBlocklistNode)
	config.Register("rank.score", BuildScoreNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("rerank.diversity", BuildDiversityNode)
}

// NewFactory 返回完整的 Node 工厂：注册表里的无状态 Node，
// 加上绑定指定引擎的召回 Node（recall.profile / recall.category / recall.fanout）。
func NewFactory(engine *recommend.Engine) *pipeline.NodeFactory {
	f := config.DefaultFactory()
	f.Register("recall.profile", BuildProfileNode(engine))
	f.Register("recall.category", BuildCategoryNode(engine))
	f.Register("recall.popular", BuildPopularNode(engine))
	f.Register("recall.fanout", BuildFanoutNode(engine))
	return f
}

// BuildProfileNode 返回绑定引擎的画像召回构建器。
// 配置项：top_k。
func BuildProfileNode(engine *recommend.Engine) config.NodeBuilder {
	return func(cfg map[string]any) (pipeline.Node, error) {
		return &recall.Profile{
			Engine: engine,
			TopK:   int(conv.ConfigGetInt64(cfg, "top_k", 0)),
		}, nil
	}
}

// BuildCategoryNode 返回绑定引擎的类型召回构建器。
// 配置项：category（可空，运行时从 Params 取）、top_k。
func BuildCategoryNode(engine *recommend.Engine) config.NodeBuilder {
	return func(cfg map[string]any) (pipeline.Node, error) {
		return &recall.Category{
			Engine:   engine,
			Category: conv.ConfigGet(cfg, "category", ""),
			TopK:     int(conv.ConfigGetInt64(cfg, "top_k", 0)),
		}, nil
	}
}

// BuildPopularNode 返回绑定引擎的热门召回构建器。
// 配置项：key（存储 key，Store 由调用方注入，纯配置场景只用 names）、names、top_k。
func BuildPopularNode(engine *recommend.Engine) config.NodeBuilder {
	return func(cfg map[string]any) (pipeline.Node, error) {
		return &recall.Popular{
			Key:    conv.ConfigGet(cfg, "key", ""),
			Names:  conv.SliceAnyToString(cfg["names"]),
			Engine: engine,
			TopK:   int(conv.ConfigGetInt64(cfg, "top_k", 0)),
		}, nil
	}
}

// BuildFanoutNode 返回绑定引擎的并发召回构建器。
// 配置项：sources（元素 type: profile|category|popular）、dedup、timeout（秒）、max_concurrent。
func BuildFanoutNode(engine *recommend.Engine) config.NodeBuilder {
	return func(cfg map[string]any) (pipeline.Node, error) {
		sourcesConfig, ok := cfg["sources"].([]any)
		if !ok {
			return nil, fmt.Errorf("sources not found or invalid")
		}
		sources := make([]recall.Source, 0, len(sourcesConfig))
		for _, sc := range sourcesConfig {
			sourceMap, ok := sc.(map[string]any)
			if !ok {
				continue
			}
			switch sourceType := conv.ConfigGet(sourceMap, "type", ""); sourceType {
			case "profile":
				sources = append(sources, &recall.Profile{
					Engine: engine,
					TopK:   int(conv.ConfigGetInt64(sourceMap, "top_k", 0)),
				})
			case "category":
				sources = append(sources, &recall.Category{
					Engine:   engine,
					Category: conv.ConfigGet(sourceMap, "category", ""),
					TopK:     int(conv.ConfigGetInt64(sourceMap, "top_k", 0)),
				})
			case "popular":
				sources = append(sources, &recall.Popular{
					Key:    conv.ConfigGet(sourceMap, "key", ""),
					Names:  conv.SliceAnyToString(sourceMap["names"]),
					Engine: engine,
					TopK:   int(conv.ConfigGetInt64(sourceMap, "top_k", 0)),
				})
			default:
				return nil, fmt.Errorf("unknown source type: %s", sourceType)
			}
		}
		fanout := &recall.Fanout{
			Sources: sources,
			Dedup:   conv.ConfigGet(cfg, "dedup", true),
		}
		if sec := conv.ConfigGetInt64(cfg, "timeout", 0); sec > 0 {
			fanout.Timeout = time.Duration(sec) * time.Second
		}
		if n := conv.ConfigGetInt64(cfg, "max_concurrent", 0); n > 0 {
			fanout.MaxConcurrent = int(n)
		}
		return fanout, nil
	}
}

// BuildFilterNode 构建组合过滤 Node。
// 配置项：filters（元素 type: min_rating|genre|seen|expr 及各自参数）。
func BuildFilterNode(cfg map[string]any) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]any)
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}
	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]any)
		if !ok {
			continue
		}
		f, err := buildFilter(filterMap)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return &filter.Node{Filters: filters}, nil
}

func buildFilter(cfg map[string]any) (filter.Filter, error) {
	switch filterType := conv.ConfigGet(cfg, "type", ""); filterType {
	case "min_rating":
		return &filter.MinRating{Min: conv.ConfigGetFloat64(cfg, "min", 0)}, nil
	case "genre":
		return &filter.Genre{Genre: conv.ConfigGet(cfg, "genre", "")}, nil
	case "seen":
		return &filter.Seen{}, nil
	case "expr":
		return &filter.Expr{Expression: conv.ConfigGet(cfg, "expression", "")}, nil
	case "blocklist":
		return &filter.Blocklist{Names: conv.SliceAnyToString(cfg["names"])}, nil
	default:
		return nil, fmt.Errorf("unknown filter type: %s", filterType)
	}
}

// BuildMinRatingNode 构建评分阈值过滤 Node。配置项：min。
func BuildMinRatingNode(cfg map[string]any) (pipeline.Node, error) {
	return &filter.Node{Filters: []filter.Filter{
		&filter.MinRating{Min: conv.ConfigGetFloat64(cfg, "min", 0)},
	}}, nil
}

// BuildGenreNode 构建类型过滤 Node。配置项：genre。
func BuildGenreNode(cfg map[string]any) (pipeline.Node, error) {
	return &filter.Node{Filters: []filter.Filter{
		&filter.Genre{Genre: conv.ConfigGet(cfg, "genre", "")},
	}}, nil
}

// BuildSeenNode 构建已读过滤 Node（排除最近历史里的游戏）。
func BuildSeenNode(_ map[string]any) (pipeline.Node, error) {
	return &filter.Node{Filters: []filter.Filter{&filter.Seen{}}}, nil
}

// BuildExprNode 构建 CEL 表达式过滤 Node。配置项：expression。
func BuildExprNode(cfg map[string]any) (pipeline.Node, error) {
	expression := conv.ConfigGet(cfg, "expression", "")
	if expression == "" {
		return nil, fmt.Errorf("expression not found or empty")
	}
	return &filter.Node{Filters: []filter.Filter{&filter.Expr{Expression: expression}}}, nil
}

// BuildBlocklistNode 构建屏蔽列表过滤 Node。配置项：names。
// 存储驱动的屏蔽列表需要注入 Store，由调用方直接构造 filter.Blocklist。
func BuildBlocklistNode(cfg map[string]any) (pipeline.Node, error) {
	return &filter.Node{Filters: []filter.Filter{
		&filter.Blocklist{Names: conv.SliceAnyToString(cfg["names"])},
	}}, nil
}

// BuildScoreNode 构建分数排序 Node。
func BuildScoreNode(_ map[string]any) (pipeline.Node, error) {
	return &rank.Score{}, nil
}

// BuildTopNNode 构建截断 Node。配置项：n。
func BuildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.TopN{N: int(conv.ConfigGetInt64(cfg, "n", 0))}, nil
}

// BuildDiversityNode 构建多样性重排 Node。
func BuildDiversityNode(_ map[string]any) (pipeline.Node, error) {
	return &rerank.Diversity{}, nil
}
