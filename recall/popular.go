package recall

import (
	"context"
	"encoding/json"

	"github.com/ludokit/ludokit/core"
	"github.com/ludokit/ludokit/pipeline"
	"github.com/ludokit/ludokit/pkg/utils"
	"github.com/ludokit/ludokit/recommend"
)

// Popular 是热门召回源：从 Store 读取被查询最多的游戏名。
//   - Store 实现了 KeyValueStore 时优先 ZRange（有序集合，score = 查询次数）
//   - 否则从普通 key 读取 JSON 数组
//   - Store 为空或读不到时，使用内存中的 Names 作为 fallback
//
// 配有 Engine 时候选会带上完整的游戏记录。
// Popular 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type Popular struct {
	Store core.Store
	Key   string // 存储 key，例如 "popular:games"

	// Names fallback 内存列表（例如编辑精选）
	Names []string

	// Engine 可选，用于补全候选的游戏记录
	Engine *recommend.Engine

	// TopK 最多返回的候选数，<= 0 时取 100
	TopK int
}

func (r *Popular) Name() string        { return "recall.popular" }
func (r *Popular) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *Popular) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *Popular) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	topK := r.TopK
	if topK <= 0 {
		topK = 100
	}

	var names []string

	if r.Store != nil && r.Key != "" {
		if kvStore, ok := r.Store.(core.KeyValueStore); ok {
			members, err := kvStore.ZRange(ctx, r.Key, 0, int64(topK)-1)
			if err == nil && len(members) > 0 {
				names = members
			}
		} else {
			data, err := r.Store.Get(ctx, r.Key)
			if err == nil {
				var parsed []string
				if json.Unmarshal(data, &parsed) == nil {
					names = parsed
				}
			}
		}
	}

	// Fallback：使用内存列表
	if len(names) == 0 {
		names = r.Names
	}
	if len(names) > topK {
		names = names[:topK]
	}

	out := make([]*core.Item, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		it := core.NewItem(name)
		if r.Engine != nil {
			if g, ok := r.Engine.Game(name); ok {
				it.WithGame(g)
			}
		}
		it.PutLabel("recall_source", utils.Label{Value: "popular", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
