package recall

import (
	"context"

	"github.com/ludokit/ludokit/core"
	"github.com/ludokit/ludokit/pipeline"
	"github.com/ludokit/ludokit/pkg/conv"
	"github.com/ludokit/ludokit/pkg/utils"
	"github.com/ludokit/ludokit/recommend"
)

// Category 是按类型的召回源：从 rctx.Params["category"] 取目标类型，
// 走引擎的类型过滤 + 相似度组合路径。
//
// 目标类型也可以固定在 Node 配置里（Category 字段优先于 Params）。
type Category struct {
	Engine *recommend.Engine

	// Category 固定目标类型；为空时从 rctx.Params["category"] 读取
	Category string

	// TopK 返回 TopK 个候选，<= 0 时取引擎默认值
	TopK int
}

func (r *Category) Name() string {
	return "recall.category"
}

func (r *Category) Kind() pipeline.Kind {
	return pipeline.KindRecall
}

func (r *Category) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

func (r *Category) Recall(
	_ context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Engine == nil {
		return nil, nil
	}

	category := r.Category
	if category == "" && rctx != nil {
		category, _ = conv.ToString(rctx.Params["category"])
	}
	if category == "" {
		return nil, nil
	}

	recs := r.Engine.RecommendByCategory(category, r.TopK)

	out := make([]*core.Item, 0, len(recs))
	for _, rec := range recs {
		it := core.NewItem(rec.Name).WithGame(rec.Game)
		it.Score = rec.Score
		it.Meta["similarity"] = rec.Similarity
		it.PutLabel("recall_source", utils.Label{Value: "category", Source: "recall"})
		it.PutLabel("category", utils.Label{Value: category, Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
