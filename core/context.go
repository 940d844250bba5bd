package core

import "github.com/ludokit/ludokit/pkg/utils"

// RecommendContext 承载会话/用户/请求信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	// SessionID 标识一次用户会话（一个会话对应一个推荐引擎实例）
	SessionID string

	// RecentGames 是最近查询过的游戏滚动历史（有界，默认 3 条）。
	// 历史淘汰由调用方（session 层）负责，推荐引擎只读取。
	RecentGames []*Game

	// Labels 是会话级标签，可驱动整个 Pipeline 行为
	Labels map[string]utils.Label

	// Params 请求级上下文参数，例如：
	// - category: 按类型召回时的目标类型
	// - min_rating: 过滤阈值
	Params map[string]any
}

// RecentNames 返回最近历史中的游戏名集合，用于排除已看过的候选。
func (rctx *RecommendContext) RecentNames() map[string]struct{} {
	names := make(map[string]struct{}, len(rctx.RecentGames))
	for _, g := range rctx.RecentGames {
		if g != nil && g.Name != "" {
			names[g.Name] = struct{}{}
		}
	}
	return names
}

// PutLabel 写入会话级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取会话级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
