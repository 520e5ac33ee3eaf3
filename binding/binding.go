// Package binding fills ${...} placeholders in a caption from JSON data.
package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// placeholder 匹配 ${path} 或 ${path|默认值}，第 2 组为路径，第 3 组为默认值。
var placeholder = regexp.MustCompile(`\$\{\s*([^}|]*?)\s*(\|[^}]*)?\}`)

// Interpolate 将标题中的 ${path.to.value} 替换为 data 中的值。
// 可写作 ${path|默认值}：路径不存在（或 data 为空）时使用默认值；
// 没有默认值的未解析占位符原样保留。
func Interpolate(text string, data any) string {
	matches := placeholder.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m[0]])
		last = m[1]

		path := text[m[2]:m[3]]
		if val, ok := Lookup(data, path); ok {
			b.WriteString(stringify(val))
			continue
		}
		if m[4] >= 0 {
			b.WriteString(text[m[4]+1 : m[5]])
			continue
		}
		b.WriteString(text[m[0]:m[1]])
	}
	b.WriteString(text[last:])
	return b.String()
}

// Placeholders 返回 text 中出现的全部占位符路径（按出现顺序，不去重）。
func Placeholders(text string) []string {
	var out []string
	for _, groups := range placeholder.FindAllStringSubmatch(text, -1) {
		out = append(out, groups[1])
	}
	return out
}

// Lookup 按 "a.b[0].c" 形式的路径在 JSON 解码结果中取值。
func Lookup(data any, path string) (any, bool) {
	if data == nil {
		return nil, false
	}
	steps, ok := parsePath(path)
	if !ok {
		return nil, false
	}
	cur := data
	for _, s := range steps {
		switch c := cur.(type) {
		case map[string]any:
			if s.index >= 0 {
				return nil, false
			}
			v, found := c[s.key]
			if !found {
				return nil, false
			}
			cur = v
		case []any:
			if s.index < 0 || s.index >= len(c) {
				return nil, false
			}
			cur = c[s.index]
		default:
			return nil, false
		}
	}
	return cur, true
}

// step 是路径中的一级：对象键，或 index >= 0 时的数组下标。
type step struct {
	key   string
	index int
}

func parsePath(path string) ([]step, bool) {
	if path == "" {
		return nil, false
	}
	var steps []step
	for _, part := range strings.Split(path, ".") {
		key, rest, hasIndex := strings.Cut(part, "[")
		if key == "" && !hasIndex {
			return nil, false
		}
		if key != "" {
			steps = append(steps, step{key: key, index: -1})
		}
		if !hasIndex {
			continue
		}
		for _, raw := range strings.Split(rest, "[") {
			num, closed := strings.CutSuffix(raw, "]")
			n, err := strconv.Atoi(num)
			if !closed || err != nil || n < 0 {
				return nil, false
			}
			steps = append(steps, step{index: n})
		}
	}
	return steps, true
}

// stringify 避免 JSON 数字以 1e+06 之类的形式出现在图标上。
func stringify(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
