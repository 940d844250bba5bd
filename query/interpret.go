// Package query 把自由文本查询解释为目录检索过滤器。
// 纯规则实现：前导套话剥离 + 关键词表匹配，无 NLP 依赖，结果确定。
package query

import (
	"net/url"
	"regexp"
	"strings"
)

// Filters 是从一句查询中提取出的检索条件。
// 零值字段表示该条件未出现。
type Filters struct {
	Name        string // 游戏名（落不进其他条件的词）
	Genre       string // 类型关键词
	Platform    string // 平台关键词
	ReleaseYear string // 4 位年份
}

// Values 将过滤器渲染为目录 API 的查询参数。
func (f Filters) Values() url.Values {
	params := url.Values{}
	if f.Name != "" {
		params.Set("search", f.Name)
	}
	if f.Genre != "" {
		params.Set("genres", f.Genre)
	}
	if f.Platform != "" {
		params.Set("platforms", f.Platform)
	}
	if f.ReleaseYear != "" {
		params.Set("dates", f.ReleaseYear+"-01-01,"+f.ReleaseYear+"-12-31")
	}
	return params
}

// Empty 判断是否什么条件都没提取出来。
func (f Filters) Empty() bool {
	return f.Name == "" && f.Genre == "" && f.Platform == "" && f.ReleaseYear == ""
}

// 默认关键词表，均为小写。可通过 Interpreter 自定义。
var (
	defaultGenreKeywords = []string{
		"action", "adventure", "strategy", "rpg", "sports", "racing",
		"simulation", "mystery", "horror", "platformer", "puzzle", "shooter",
	}

	defaultPlatformKeywords = []string{
		"playstation", "xbox", "pc", "nintendo", "switch", "steam", "mobile",
		"android", "ios", "mac", "linux", "browser",
		"playstation 4", "playstation 5", "xbox one", "xbox series x|s",
		"nintendo switch", "wii u", "playstation vita",
	}

	// 对过滤没有贡献的套话词
	defaultStopWords = []string{
		"a", "an", "the", "of", "in", "on", "for", "with", "and", "to",
		"me", "all", "games", "game", "give", "want", "info", "information",
		"could", "would", "know", "please", "about", "around", "that",
	}
)

// 查询常见的前导句式，命中后取其后的内容继续解析
var leadInRe = regexp.MustCompile(
	`(?i)^(?:tell me about|what do you know about|i want to know about|search for|search|find|show me|games of|games for)\s+(.+)$`)

var yearRe = regexp.MustCompile(`^\d{4}$`)

// Interpreter 按关键词表解释查询，零值即用默认表。
type Interpreter struct {
	GenreKeywords    []string
	PlatformKeywords []string
	StopWords        []string
}

// Interpret 用默认关键词表解释查询。
func Interpret(text string) Filters {
	return (&Interpreter{}).Interpret(text)
}

// Interpret 解析查询文本并提取过滤条件。
//
// 规则与优先级：
//  1. 剥离前导套话（"tell me about ..." 等）
//  2. 逐词扫描：命中类型表记 Genre、平台表记 Platform、4 位数字记年份
//  3. 停用词丢弃，剩余词按出现顺序拼成 Name
//
// 多词平台名（"playstation 4"）优先于单词匹配。
func (ip *Interpreter) Interpret(text string) Filters {
	genres := ip.GenreKeywords
	if genres == nil {
		genres = defaultGenreKeywords
	}
	platforms := ip.PlatformKeywords
	if platforms == nil {
		platforms = defaultPlatformKeywords
	}
	stop := ip.StopWords
	if stop == nil {
		stop = defaultStopWords
	}

	text = strings.ToLower(strings.TrimSpace(text))
	if m := leadInRe.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	// 先整体匹配多词平台名，避免 "playstation 4" 被拆成平台 + 年份
	var f Filters
	for _, p := range platforms {
		if !strings.Contains(p, " ") {
			continue
		}
		if strings.Contains(text, p) {
			f.Platform = p
			text = strings.Replace(text, p, "", 1)
			break
		}
	}

	stopSet := make(map[string]struct{}, len(stop))
	for _, w := range stop {
		stopSet[w] = struct{}{}
	}
	genreSet := make(map[string]struct{}, len(genres))
	for _, w := range genres {
		genreSet[w] = struct{}{}
	}
	platformSet := make(map[string]struct{}, len(platforms))
	for _, w := range platforms {
		platformSet[w] = struct{}{}
	}

	var nameWords []string
	for _, word := range strings.Fields(text) {
		word = strings.Trim(word, ".,!?:;\"'()")
		if word == "" {
			continue
		}
		if _, ok := stopSet[word]; ok {
			continue
		}

		switch {
		case hasWord(genreSet, word) && f.Genre == "":
			f.Genre = word
		case hasWord(platformSet, word) && f.Platform == "":
			f.Platform = word
		case yearRe.MatchString(word) && f.ReleaseYear == "":
			f.ReleaseYear = word
		default:
			nameWords = append(nameWords, word)
		}
	}

	f.Name = strings.Join(nameWords, " ")
	return f
}

func hasWord(set map[string]struct{}, word string) bool {
	_, ok := set[word]
	return ok
}
