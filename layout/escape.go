package layout

import "strings"

var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeMarkup 转义 XML/SVG 中的五个保留字符，供渲染器嵌入标题文本。
func EscapeMarkup(text string) string {
	return markupEscaper.Replace(text)
}
