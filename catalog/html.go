package catalog

import (
	"html"
	"regexp"
	"strings"
)

var (
	// 换行类标签替换为换行，其余标签直接删除
	breakTagRe = regexp.MustCompile(`(?i)<br\s*/?>|<p>|</p>`)
	anyTagRe   = regexp.MustCompile(`<[^>]+>`)
	blankRunRe = regexp.MustCompile(`\n\s*\n`)
)

// StripHTML 将目录返回的富文本描述清洗为纯文本：
// <br>/<p> 转换行，其余标签删除，HTML 实体转义还原，压缩多余空行。
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	s = breakTagRe.ReplaceAllString(s, "\n")
	s = anyTagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
