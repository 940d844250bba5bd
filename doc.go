// Package ludokit 是一个内容式游戏推荐工具包（Ludo Kit）。
//
// 设计要点：
// - Session-first: 推荐模型随会话增长（查询即学习），不依赖离线训练
// - Pipeline 可组合: 召回 → 过滤 → 重排，每个阶段都是可插拔 Node
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测 / 策略驱动
package ludokit

import "github.com/ludokit/ludokit/pipeline"

// 轻量 facade：便于用户直接 import "ludokit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
