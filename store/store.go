package store

// 此包只包含实现，接口定义在 core 包（依赖倒置）。
// 使用 core.Store 和 core.KeyValueStore 接口：
//
//   var s core.Store = NewMemoryStore()
//   var kv core.KeyValueStore = NewMemoryStore()
//
// 在本项目中存储承载的是会话历史（最近查询的游戏列表）与
// 目录结果缓存；推荐模型本身不经过 Store。
