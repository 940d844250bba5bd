package recall

import (
	"context"

	"github.com/ludokit/ludokit/core"
	"github.com/ludokit/ludokit/pipeline"
	"github.com/ludokit/ludokit/pkg/utils"
	"github.com/ludokit/ludokit/recommend"
)

// Profile 是基于用户画像（最近查询历史的平均向量）的召回源，
// 包装 recommend.Engine 的相似度扫描。
//
// 历史不足 2 条时召回为空：这是引擎的最小历史约束，不是错误。
type Profile struct {
	Engine *recommend.Engine

	// TopK 返回 TopK 个候选，<= 0 时取引擎默认值
	TopK int
}

func (r *Profile) Name() string {
	return "recall.profile"
}

func (r *Profile) Kind() pipeline.Kind {
	return pipeline.KindRecall
}

func (r *Profile) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

func (r *Profile) Recall(
	_ context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Engine == nil || rctx == nil {
		return nil, nil
	}

	recs := r.Engine.Recommend(rctx.RecentGames, r.TopK)

	out := make([]*core.Item, 0, len(recs))
	for _, rec := range recs {
		it := core.NewItem(rec.Name).WithGame(rec.Game)
		it.Score = rec.Score
		it.Meta["similarity"] = rec.Similarity
		it.PutLabel("recall_source", utils.Label{Value: "profile", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
