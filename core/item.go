package core

import "github.com/ludokit/ludokit/pkg/utils"

// Item 是推荐链路中的统一承载结构：候选游戏、分数、元信息、标签。
// ID 即游戏名（会话内唯一主键）；Score 用于排序决策；Labels 用于解释与策略驱动。
type Item struct {
	ID     string
	Score  float64
	Game   *Game
	Meta   map[string]any
	Labels map[string]utils.Label
}

func NewItem(id string) *Item {
	return &Item{
		ID:     id,
		Score:  0,
		Meta:   make(map[string]any),
		Labels: make(map[string]utils.Label),
	}
}

// WithGame 绑定候选对应的游戏记录，返回自身便于链式构造。
func (it *Item) WithGame(g *Game) *Item {
	it.Game = g
	return it
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}
