package layout

// 装饰与投影的固定比例。
const (
	glyphOpacity        = 0.25
	glyphAspect         = 0.7 // 收银机高宽比
	glyphBodyStrokeOp   = 0.5
	glyphDetailStrokeOp = 0.7
	shadowOpacity       = 0.3
)

// BuildScene 拆分标题、排版并生成 profile 尺寸下完整的图标场景。
func BuildScene(caption string, profile CanvasProfile) *Scene {
	lines := Split(caption)
	fitted := Layout(lines, profile)
	size := int(profile.Size)

	scene := &Scene{
		Caption:    caption,
		Size:       size,
		Profile:    profile.Name,
		Lines:      lines,
		Fitted:     fitted,
		Background: buildBackground(size, profile.Palette),
		Glyph:      buildGlyph(size, profile.Glyph, profile.Palette.Glyph),
		Shadow: Shadow{
			DY:      size / 64,
			StdDev:  size / 128,
			Opacity: shadowOpacity,
		},
	}

	for _, fl := range fitted {
		if fl.RenderSize <= 0 {
			continue
		}
		fill := profile.Palette.Primary
		if fl.Secondary {
			fill = profile.Palette.Secondary
		}
		scene.Texts = append(scene.Texts, TextRun{
			Content:       fl.Text,
			X:             float64(size / 2),
			Y:             float64(fl.Baseline),
			FontSize:      fl.RenderSize,
			Color:         fill,
			LetterSpacing: size / 384,
			Bold:          true,
		})
	}
	return scene
}

func buildBackground(size int, palette Palette) Background {
	return Background{
		Size:         size,
		CornerRadius: size / 8,
		Stops: []GradientStop{
			{Offset: 0, Color: palette.Gradient[0]},
			{Offset: 0.5, Color: palette.Gradient[1]},
			{Offset: 1, Color: palette.Gradient[2]},
		},
	}
}

// buildGlyph 计算收银机图标：机身、显示屏、三个按键与出钞口。
// 水平位置以 Top 与 Spacing 推算，与竖直方向共用 Top。
func buildGlyph(size int, geo GlyphGeometry, col Color) Glyph {
	stroke := float64(max(1, size/192))
	w := float64(geo.Size)
	h := float64(geo.Size) * glyphAspect
	x := float64(geo.Top + geo.Spacing/2 - geo.Size/2)
	y := float64(geo.Top + 5)

	detail := func(cx float64) Circle {
		return Circle{
			CX:            x + w*cx,
			CY:            y + h*0.65,
			R:             float64(size / 64),
			StrokeWidth:   stroke * 0.5,
			StrokeOpacity: glyphDetailStrokeOp,
		}
	}

	return Glyph{
		Opacity:     glyphOpacity,
		Color:       col,
		StrokeWidth: stroke,
		Body: Rect{
			X: x, Y: y, Width: w, Height: h,
			Radius:        float64(size / 48),
			StrokeWidth:   stroke,
			StrokeOpacity: glyphBodyStrokeOp,
		},
		Display: Rect{
			X: x + w*0.15, Y: y + h*0.2, Width: w * 0.7, Height: h * 0.25,
			Radius:        float64(size / 96),
			StrokeWidth:   stroke * 0.5,
			StrokeOpacity: glyphDetailStrokeOp,
		},
		Buttons: []Circle{detail(0.25), detail(0.5), detail(0.75)},
		Slot: Rect{
			X: x + w*0.1, Y: y + h*0.9, Width: w * 0.8, Height: float64(size / 96),
			Radius:        float64(size / 192),
			StrokeWidth:   stroke * 0.5,
			StrokeOpacity: glyphDetailStrokeOp,
		},
	}
}
