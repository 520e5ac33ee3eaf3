package fonts

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// 默认字体：标题统一使用粗体无衬线。
const (
	Bold    = "Go-Bold"
	Regular = "Go-Regular"
	Default = Bold
)

var builtin = map[string][]byte{
	Bold:    gobold.TTF,
	Regular: goregular.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "embed:Go-Bold" 或直接 "Go-Bold"，大小写不敏感。
func Load(name string) ([]byte, error) {
	name = strings.TrimPrefix(strings.TrimSpace(name), "embed:")
	for key, data := range builtin {
		if strings.EqualFold(key, name) {
			return data, nil
		}
	}
	return nil, fmt.Errorf("读取内置字体 %s 失败: 可用字体 %v", name, Names())
}

// Names 返回全部内置字体名。
func Names() []string {
	names := make([]string, 0, len(builtin))
	for key := range builtin {
		names = append(names, key)
	}
	slices.Sort(names)
	return names
}
