package filter

import (
	"context"
	"encoding/json"

	"github.com/ludokit/ludokit/core"
)

// Blocklist 过滤掉屏蔽列表中的游戏（用户标记过"不再推荐"的）。
// 列表来源有两处，任一命中即过滤：
//   - Names：内存列表
//   - Store + Key：存储中的 JSON 数组（跨会话共享）
type Blocklist struct {
	Names []string

	Store core.Store
	Key   string // 例如 "blocklist:" + sessionID
}

func (f *Blocklist) Name() string {
	return "filter.blocklist"
}

func (f *Blocklist) ShouldFilter(
	ctx context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	for _, name := range f.Names {
		if item.ID == name {
			return true, nil
		}
	}

	if f.Store != nil && f.Key != "" {
		data, err := f.Store.Get(ctx, f.Key)
		// 列表读不到时不拦截，屏蔽是尽力而为的策略
		if err == nil {
			var blocked []string
			if json.Unmarshal(data, &blocked) == nil {
				for _, name := range blocked {
					if item.ID == name {
						return true, nil
					}
				}
			}
		}
	}

	return false, nil
}
