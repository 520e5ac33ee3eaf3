package layout

import "math"

// FittedLine 是一行文本在某个画布配置下的字号与基线。
type FittedLine struct {
	Text     string `json:"text"`
	FontSize int    `json:"fontSize"`
	Baseline int    `json:"baseline"`
	// RenderSize 是实际绘制时使用的字号，副行会乘以强调倍数。
	RenderSize int  `json:"renderSize"`
	Secondary  bool `json:"secondary,omitempty"`
}

// Layout 为 lines 计算每行的字号与基线，主行在前。
// 主行总会输出；副行仅在非空时输出。
func Layout(lines LineSet, profile CanvasProfile) []FittedLine {
	width := profile.TextAreaWidth()
	twoLines := lines.HasSecondary()
	baselines := profile.Baselines(twoLines)

	primarySize := EstimateFontSize(lines.Primary, width, profile.PrimaryFont)
	fitted := []FittedLine{{
		Text:       lines.Primary,
		FontSize:   primarySize,
		Baseline:   baselines.Primary,
		RenderSize: primarySize,
	}}
	if !twoLines {
		return fitted
	}

	secondarySize := EstimateFontSize(lines.Secondary, width, profile.SecondaryFont)
	return append(fitted, FittedLine{
		Text:       lines.Secondary,
		FontSize:   secondarySize,
		Baseline:   baselines.Secondary,
		RenderSize: emphasize(secondarySize, profile.Emphasis),
		Secondary:  true,
	})
}

// LayoutCaption 拆分标题并按 size 对应的内置配置排版。
func LayoutCaption(caption string, size CanvasSize) ([]FittedLine, error) {
	profile, err := builtinProfiles.Lookup(size)
	if err != nil {
		return nil, err
	}
	return Layout(Split(caption), profile), nil
}

func emphasize(size int, factor float64) int {
	if factor <= 0 {
		return size
	}
	return int(math.Floor(float64(size) * factor))
}
