package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/ludokit/ludokit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量和函数
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		// 定义变量类型
		cel.Variable("item", cel.DynType),
		cel.Variable("game", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("rctx", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Eval 是候选过滤 DSL 解释器，使用 CEL (Common Expression Language) 实现。
// CEL 是 Google 开发的表达式语言，具有类型安全、高性能、线程安全等特性。
//
// 表达式语法（CEL 标准语法）：
//   - 游戏字段：game.rating >= 4.0 / game.released != ""
//   - 标签包含："Puzzle" in game.genres / "PC" in game.platforms
//   - 分数：item.score > 0.7
//   - 解释标签：label.recall_source.value == "profile"
//   - 逻辑组合："Puzzle" in game.genres && game.rating >= 4.0
type Eval struct {
	item *core.Item
	rctx *core.RecommendContext
	env  *cel.Env
}

// NewEval 创建一个新的 DSL 解释器。
func NewEval(item *core.Item, rctx *core.RecommendContext) *Eval {
	env, _ := getCELEnv()
	return &Eval{
		item: item,
		rctx: rctx,
		env:  env,
	}
}

// Evaluate 解析并执行 DSL 表达式，返回布尔结果。
// 空表达式恒为 true。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}
	if e.env == nil {
		return false, fmt.Errorf("cel env not initialized")
	}

	// 编译表达式
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("compile error: %v", issues.Err())
	}

	// 创建程序
	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("program error: %v", err)
	}

	// 执行表达式
	out, _, err := prg.Eval(e.buildInput())
	if err != nil {
		// 对于不存在的 key，CEL 会返回错误；
		// 用户应使用 has() 或 != null 检查存在性
		return false, fmt.Errorf("eval error: %v", err)
	}

	// 转换为布尔值
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}

	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func (e *Eval) buildInput() map[string]any {
	labels := make(map[string]any)
	for k, v := range e.item.Labels {
		labels[k] = map[string]any{
			"value":  v.Value,
			"source": v.Source,
		}
	}

	item := map[string]any{
		"id":     e.item.ID,
		"score":  e.item.Score,
		"meta":   e.item.Meta,
		"labels": labels,
	}

	game := map[string]any{}
	if g := e.item.Game; g != nil {
		game = map[string]any{
			"name":      g.Name,
			"genres":    g.Genres,
			"platforms": g.Platforms,
			"rating":    g.Rating,
			"released":  g.Released,
			"year":      g.Year(),
		}
	}

	rctx := map[string]any{}
	if e.rctx != nil {
		recent := make([]string, 0, len(e.rctx.RecentGames))
		for _, g := range e.rctx.RecentGames {
			if g != nil {
				recent = append(recent, g.Name)
			}
		}
		rctx = map[string]any{
			"session_id": e.rctx.SessionID,
			"recent":     recent,
			"params":     e.rctx.Params,
		}
	}

	return map[string]any{
		"item":  item,
		"game":  game,
		"label": labels,
		"rctx":  rctx,
	}
}
