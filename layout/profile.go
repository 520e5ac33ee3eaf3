package layout

import (
	"fmt"
	"maps"
	"slices"
)

// CanvasSize 是画布的标称边长（像素）。
type CanvasSize int

// 内置的两种画布尺寸。
const (
	Small CanvasSize = 192
	Large CanvasSize = 512
)

func (s CanvasSize) String() string { return fmt.Sprintf("%dx%d", int(s), int(s)) }

// BaselinePair 记录主行与副行的基线 y 坐标。单行时 Secondary 为 0。
type BaselinePair struct {
	Primary   int `json:"primary"`
	Secondary int `json:"secondary,omitempty"`
}

// GlyphGeometry 描述背景装饰图标（收银机）的尺寸与位置参数。
type GlyphGeometry struct {
	Size    int `json:"size"`
	Top     int `json:"top"`
	Spacing int `json:"spacing"`
}

// CanvasProfile 是某一画布尺寸的静态排版参数。
type CanvasProfile struct {
	Name          string        `json:"name"`
	Size          CanvasSize    `json:"size"`
	TextWidth     float64       `json:"textWidth"` // 文本区宽度占画布的比例
	PrimaryFont   int           `json:"primaryFont"`
	SecondaryFont int           `json:"secondaryFont"`
	Single        BaselinePair  `json:"single"`
	Double        BaselinePair  `json:"double"`
	Glyph         GlyphGeometry `json:"glyph"`
	Emphasis      float64       `json:"emphasis"` // 副行渲染时的字号倍数
	Palette       Palette       `json:"palette"`
}

// TextAreaWidth 返回文本安全区的宽度（像素）。
func (p CanvasProfile) TextAreaWidth() float64 { return float64(p.Size) * p.TextWidth }

// Baselines 按是否有副行返回基线。
func (p CanvasProfile) Baselines(twoLines bool) BaselinePair {
	if twoLines {
		return p.Double
	}
	return p.Single
}

// ProfileTable 以尺寸为键保存画布配置。建表后只读。
type ProfileTable map[CanvasSize]CanvasProfile

var builtinProfiles = ProfileTable{
	Small: {
		Name:          "small",
		Size:          Small,
		TextWidth:     0.90,
		PrimaryFont:   50,
		SecondaryFont: 38,
		Single:        BaselinePair{Primary: 108},
		Double:        BaselinePair{Primary: 88, Secondary: 128},
		Glyph:         GlyphGeometry{Size: 28, Top: 20, Spacing: 56},
		Emphasis:      1.05,
		Palette:       DefaultPalette(),
	},
	Large: {
		Name:          "large",
		Size:          Large,
		TextWidth:     0.90,
		PrimaryFont:   130,
		SecondaryFont: 100,
		Single:        BaselinePair{Primary: 275},
		Double:        BaselinePair{Primary: 225, Secondary: 315},
		Glyph:         GlyphGeometry{Size: 75, Top: 50, Spacing: 150},
		Emphasis:      1.05,
		Palette:       DefaultPalette(),
	},
}

// DefaultProfiles 返回内置配置表的副本。
func DefaultProfiles() ProfileTable { return maps.Clone(builtinProfiles) }

// Lookup 返回 size 对应的配置。
func (t ProfileTable) Lookup(size CanvasSize) (CanvasProfile, error) {
	p, ok := t[size]
	if !ok {
		return CanvasProfile{}, fmt.Errorf("不支持的画布尺寸 %d（可用：%v）", int(size), t.Sizes())
	}
	return p, nil
}

// Sizes 按从小到大返回表中的所有尺寸。
func (t ProfileTable) Sizes() []CanvasSize {
	return slices.Sorted(maps.Keys(t))
}
