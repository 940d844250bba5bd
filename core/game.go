package core

import (
	"strconv"
	"time"
)

// 评分与年份的静默默认值：目录元数据是尽力而为的外部数据，
// 解析失败一律取默认值，不产生错误。
const (
	// DefaultRating 是缺失/非法评分的默认值
	DefaultRating = 0.0

	// DefaultYear 是缺失/无法解析发售日期时的哨兵年份
	DefaultYear = 2000
)

// Game 是一条游戏元数据记录，来自外部目录服务（RAWG 风格 API）。
// Name 在会话内唯一，是推荐模型的主键；入库后视为不可变。
type Game struct {
	ID        int64    `json:"id,omitempty"`
	Name      string   `json:"name"`
	Genres    []string `json:"genres"`
	Platforms []string `json:"platforms"`

	// Rating 取值 [0,5]，缺失时为 0
	Rating float64 `json:"rating"`

	// Released 是 ISO 风格日期字符串（"2007-10-10"），可能为空
	Released string `json:"released,omitempty"`

	// 目录返回的补充信息，不参与向量化
	Description     string   `json:"description,omitempty"`
	Developers      []string `json:"developers,omitempty"`
	Publishers      []string `json:"publishers,omitempty"`
	BackgroundImage string   `json:"background_image,omitempty"`
	Metacritic      int      `json:"metacritic,omitempty"`
	ESRBRating      string   `json:"esrb_rating,omitempty"`
}

// Clone 返回 Game 的深拷贝，slice 字段不共享底层数组。
// 推荐结果对外返回拷贝，避免调用方改写模型内部记录。
func (g *Game) Clone() *Game {
	if g == nil {
		return nil
	}
	out := *g
	out.Genres = append([]string(nil), g.Genres...)
	out.Platforms = append([]string(nil), g.Platforms...)
	out.Developers = append([]string(nil), g.Developers...)
	out.Publishers = append([]string(nil), g.Publishers...)
	return &out
}

// HasGenre 判断该游戏是否含有指定类型标签（精确匹配）。
func (g *Game) HasGenre(genre string) bool {
	for _, x := range g.Genres {
		if x == genre {
			return true
		}
	}
	return false
}

// ParseRating 将任意取值转为 [0,5] 的评分，解析失败返回 DefaultRating。
// 兼容 float64/float32/int/json.Number/string 等目录返回的各种形态。
func ParseRating(v any) float64 {
	switch r := v.(type) {
	case float64:
		return r
	case float32:
		return float64(r)
	case int:
		return float64(r)
	case int64:
		return float64(r)
	case string:
		if f, err := strconv.ParseFloat(r, 64); err == nil {
			return f
		}
		return DefaultRating
	default:
		return DefaultRating
	}
}

// ReleaseYear 从发售日期字符串提取年份，解析失败返回 DefaultYear。
// 接受 "2006-01-02" 完整日期或单独的 "2006" 年份。
func ReleaseYear(released string) int {
	if released == "" {
		return DefaultYear
	}
	if t, err := time.Parse("2006-01-02", released); err == nil {
		return t.Year()
	}
	if y, err := strconv.Atoi(released); err == nil && y > 0 {
		return y
	}
	return DefaultYear
}

// Year 返回该记录的发售年份（含默认值语义）。
func (g *Game) Year() int {
	return ReleaseYear(g.Released)
}
