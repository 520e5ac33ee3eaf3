package layout

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ByLCY/capicon/dsl"
)

// BuildProfiles 将配置表 AST 合并到内置配置之上，返回新的配置表。
//
// 已有尺寸的 canvas 块只覆盖其写出的属性；新尺寸以 Large 配置按边长等比缩放
// 作为起点。
func BuildProfiles(sheet *dsl.Sheet) (ProfileTable, error) {
	if sheet == nil {
		return nil, fmt.Errorf("配置表为空")
	}
	table := DefaultProfiles()
	seen := map[CanvasSize]bool{}
	for _, block := range sheet.Canvases {
		size, err := parseCanvasSize(block.Size)
		if err != nil {
			return nil, fmt.Errorf("%s: canvas %s: %w", block.Pos, block.Name, err)
		}
		if seen[size] {
			return nil, fmt.Errorf("%s: 尺寸 %d 重复定义", block.Pos, int(size))
		}
		seen[size] = true

		profile, ok := table[size]
		if !ok {
			profile = scaleProfile(builtinProfiles[Large], size)
		}
		profile.Name = block.Name
		for _, prop := range block.Properties {
			if err := applyProperty(&profile, prop); err != nil {
				return nil, fmt.Errorf("%s: canvas %s: %w", prop.Pos, block.Name, err)
			}
		}
		if err := validateProfile(profile); err != nil {
			return nil, fmt.Errorf("%s: canvas %s: %w", block.Pos, block.Name, err)
		}
		table[size] = profile
	}
	return table, nil
}

func parseCanvasSize(raw string) (CanvasSize, error) {
	q, err := ParseQuantity(raw)
	if err != nil {
		return 0, err
	}
	if q.Unit != UnitNone && q.Unit != UnitPX {
		return 0, fmt.Errorf("画布尺寸 %s 必须以像素表示", raw)
	}
	if q.Value <= 0 || q.Value != math.Trunc(q.Value) {
		return 0, fmt.Errorf("画布尺寸 %s 必须为正整数", raw)
	}
	return CanvasSize(q.Value), nil
}

// scaleProfile 按 size/ref.Size 缩放 ref 的所有像素参数。
func scaleProfile(ref CanvasProfile, size CanvasSize) CanvasProfile {
	k := float64(size) / float64(ref.Size)
	scale := func(v int) int { return int(math.Round(float64(v) * k)) }
	out := ref
	out.Size = size
	out.PrimaryFont = scale(ref.PrimaryFont)
	out.SecondaryFont = scale(ref.SecondaryFont)
	out.Single = BaselinePair{Primary: scale(ref.Single.Primary)}
	out.Double = BaselinePair{Primary: scale(ref.Double.Primary), Secondary: scale(ref.Double.Secondary)}
	out.Glyph = GlyphGeometry{Size: scale(ref.Glyph.Size), Top: scale(ref.Glyph.Top), Spacing: scale(ref.Glyph.Spacing)}
	return out
}

func applyProperty(p *CanvasProfile, prop *dsl.Property) error {
	switch prop.Key {
	case "text-width":
		v, err := fractionValues(prop, 1)
		if err != nil {
			return err
		}
		p.TextWidth = v[0]
	case "emphasis":
		v, err := fractionValues(prop, 1)
		if err != nil {
			return err
		}
		p.Emphasis = v[0]
	case "primary-font":
		v, err := pixelValues(prop, 1)
		if err != nil {
			return err
		}
		p.PrimaryFont = v[0]
	case "secondary-font":
		v, err := pixelValues(prop, 1)
		if err != nil {
			return err
		}
		p.SecondaryFont = v[0]
	case "baseline-single":
		v, err := pixelValues(prop, 1)
		if err != nil {
			return err
		}
		p.Single = BaselinePair{Primary: v[0]}
	case "baseline-double":
		v, err := pixelValues(prop, 2)
		if err != nil {
			return err
		}
		p.Double = BaselinePair{Primary: v[0], Secondary: v[1]}
	case "glyph":
		v, err := pixelValues(prop, 3)
		if err != nil {
			return err
		}
		p.Glyph = GlyphGeometry{Size: v[0], Top: v[1], Spacing: v[2]}
	case "gradient":
		v, err := colorValues(prop, 3)
		if err != nil {
			return err
		}
		p.Palette.Gradient = [3]Color{v[0], v[1], v[2]}
	case "primary-color":
		v, err := colorValues(prop, 1)
		if err != nil {
			return err
		}
		p.Palette.Primary = v[0]
	case "secondary-color":
		v, err := colorValues(prop, 1)
		if err != nil {
			return err
		}
		p.Palette.Secondary = v[0]
	case "glyph-color":
		v, err := colorValues(prop, 1)
		if err != nil {
			return err
		}
		p.Palette.Glyph = v[0]
	default:
		return fmt.Errorf("未知属性 %s", prop.Key)
	}
	return nil
}

func validateProfile(p CanvasProfile) error {
	switch {
	case p.TextWidth <= 0 || p.TextWidth > 1:
		return fmt.Errorf("text-width 必须在 (0, 100%%] 之间，当前 %g", p.TextWidth)
	case p.PrimaryFont <= 0 || p.SecondaryFont <= 0:
		return fmt.Errorf("字号必须为正数")
	case p.Single.Primary <= 0 || p.Double.Primary <= 0 || p.Double.Secondary <= 0:
		return fmt.Errorf("基线必须为正数")
	case p.Emphasis <= 0:
		return fmt.Errorf("emphasis 必须为正数")
	}
	return nil
}

func expectCount(prop *dsl.Property, n int) error {
	if len(prop.Values) != n {
		return fmt.Errorf("属性 %s 需要 %d 个值，实际 %d 个", prop.Key, n, len(prop.Values))
	}
	return nil
}

func quantities(prop *dsl.Property, n int) ([]Quantity, error) {
	if err := expectCount(prop, n); err != nil {
		return nil, err
	}
	out := make([]Quantity, 0, n)
	for _, v := range prop.Values {
		if v.Number == nil {
			return nil, fmt.Errorf("属性 %s 需要数值，得到 %s", prop.Key, v.Raw())
		}
		q, err := ParseQuantity(*v.Number)
		if err != nil {
			return nil, fmt.Errorf("属性 %s: %w", prop.Key, err)
		}
		out = append(out, q)
	}
	return out, nil
}

func fractionValues(prop *dsl.Property, n int) ([]float64, error) {
	qs, err := quantities(prop, n)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(qs))
	for i, q := range qs {
		out[i] = q.Fraction()
	}
	return out, nil
}

func pixelValues(prop *dsl.Property, n int) ([]int, error) {
	qs, err := quantities(prop, n)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(qs))
	for i, q := range qs {
		if q.Unit == UnitPercent || q.Unit == UnitFactor {
			return nil, fmt.Errorf("属性 %s 的值 %s 必须为像素", prop.Key, q)
		}
		px := q.Pixels()
		if px < 0 {
			return nil, fmt.Errorf("属性 %s 的值不能为负: %s", prop.Key, strconv.FormatFloat(px, 'f', -1, 64))
		}
		out[i] = int(math.Round(px))
	}
	return out, nil
}

func colorValues(prop *dsl.Property, n int) ([]Color, error) {
	if err := expectCount(prop, n); err != nil {
		return nil, err
	}
	out := make([]Color, 0, n)
	for _, v := range prop.Values {
		if v.Color == nil {
			return nil, fmt.Errorf("属性 %s 需要颜色，得到 %s", prop.Key, v.Raw())
		}
		c, err := ParseColor(*v.Color)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
