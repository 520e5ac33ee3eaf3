package canvasrenderer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"golang.org/x/image/draw"

	"github.com/ByLCY/capicon/fonts"
	"github.com/ByLCY/capicon/layout"
	"github.com/ByLCY/capicon/renderer"
)

// Renderer rasterizes icons in process.
//
// The SVG markup (background, gradient, glyph) is rasterized with oksvg,
// which does not draw <text>; caption lines are then drawn from the scene
// with github.com/tdewolff/canvas and composited on top.
type Renderer struct {
	font string

	fontMu   sync.Mutex
	families map[string]*fontFamilyEntry
}

var _ renderer.Rasterizer = (*Renderer)(nil)

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// Options configures the canvas renderer.
type Options struct {
	Font string // 内置字体名，见 fonts.Names；为空时使用 fonts.Default
}

// NewRenderer creates a renderer with the default font.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer with the given options.
func NewRendererWithOptions(opts Options) *Renderer {
	font := opts.Font
	if font == "" {
		font = fonts.Default
	}
	return &Renderer{
		font:     font,
		families: map[string]*fontFamilyEntry{},
	}
}

// Rasterize implements renderer.Rasterizer and returns PNG bytes.
func (r *Renderer) Rasterize(ctx context.Context, job renderer.Job) ([]byte, error) {
	img, err := r.Image(ctx, job)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: 编码 PNG: %v", renderer.ErrRasterize, err)
	}
	return buf.Bytes(), nil
}

// Image rasterizes job into an RGBA image of job.Width × job.Height pixels.
func (r *Renderer) Image(ctx context.Context, job renderer.Job) (*image.RGBA, error) {
	if job.Width <= 0 || job.Height <= 0 {
		return nil, fmt.Errorf("%w: 目标尺寸无效 %dx%d", renderer.ErrRasterize, job.Width, job.Height)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, job.Width, job.Height))
	if len(job.Markup) > 0 {
		if err := drawMarkup(img, job.Markup); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if job.Scene != nil && len(job.Scene.Texts) > 0 {
		layer, err := r.drawTexts(job.Scene, job.Width, job.Height)
		if err != nil {
			return nil, err
		}
		draw.Draw(img, img.Bounds(), layer, image.Point{}, draw.Over)
	}
	return img, nil
}

// drawMarkup 用 oksvg 栅格化 SVG；不支持的元素（text、filter）被忽略。
func drawMarkup(dst *image.RGBA, markup []byte) error {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(markup), oksvg.IgnoreErrorMode)
	if err != nil {
		return fmt.Errorf("%w: 解析 SVG: %v", renderer.ErrRasterize, err)
	}
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return nil
}

// drawTexts 在透明画布上绘制标题行（含投影），画布 1 单位对应 1 像素。
func (r *Renderer) drawTexts(scene *layout.Scene, width, height int) (*image.RGBA, error) {
	scaleX := float64(width) / float64(scene.Size)
	scaleY := float64(height) / float64(scene.Size)

	c := canvas.New(float64(width), float64(height))
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 与场景一致：左上角为原点，y 向下

	shadow := canvas.RGBA(0, 0, 0, scene.Shadow.Opacity)
	for _, run := range scene.Texts {
		sizePx := float64(run.FontSize) * scaleY
		face, err := r.fontFace(sizePx, colorFromLayout(run.Color))
		if err != nil {
			return nil, err
		}
		x := run.X * scaleX
		// 场景中的 y 是行的垂直中线，基线在其下方半个 x-height 处。
		baseline := run.Y*scaleY + face.Metrics().XHeight/2

		if scene.Shadow.DY > 0 {
			shadowFace, err := r.fontFace(sizePx, shadow)
			if err != nil {
				return nil, err
			}
			dy := float64(scene.Shadow.DY) * scaleY
			ctx.DrawText(x, baseline+dy, canvas.NewTextLine(shadowFace, run.Content, canvas.Center))
		}
		ctx.DrawText(x, baseline, canvas.NewTextLine(face, run.Content, canvas.Center))
	}
	return rasterizer.Draw(c, canvas.DPMM(1.0), canvas.DefaultColorSpace), nil
}

// MeasureText 返回 content 在 fontSize（像素）下的实际排版宽度（像素）。
func (r *Renderer) MeasureText(content string, fontSize int) (float64, error) {
	face, err := r.fontFace(float64(fontSize), canvas.Black)
	if err != nil {
		return 0, err
	}
	return face.TextWidth(content), nil
}

// Proof 将已栅格化的图标逐页写入 PDF，页面尺寸与图像像素一一对应（1px = 1mm）。
func (r *Renderer) Proof(images []image.Image) ([]byte, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("缺少可写入的图标")
	}
	var buf bytes.Buffer
	first := images[0].Bounds()
	writer := pdf.New(&buf, float64(first.Dx()), float64(first.Dy()), nil)
	writer.SetInfo("capicon proof", "", "", "", "capicon")
	for i, img := range images {
		w, h := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
		if i > 0 {
			writer.NewPage(w, h)
		}
		c := canvas.New(w, h)
		ctx := canvas.NewContext(c)
		ctx.DrawImage(0, 0, img, canvas.DPMM(1.0))
		c.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// fontFace 以像素字号创建字体面；canvas 单位为 mm，这里做一次 px(=mm)→pt。
func (r *Renderer) fontFace(sizePx float64, col color.Color) (*canvas.FontFace, error) {
	family, style, err := r.ensureFontFamily()
	if err != nil {
		return nil, err
	}
	return family.Face(sizePx*layout.MmToPt, col, style, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily() (*canvas.FontFamily, canvas.FontStyle, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if entry, ok := r.families[r.font]; ok {
		return entry.family, entry.style, nil
	}
	data, err := fonts.Load(r.font)
	if err != nil {
		return nil, canvas.FontRegular, err
	}
	style := canvas.FontRegular
	if strings.EqualFold(r.font, fonts.Bold) {
		style = canvas.FontBold
	}
	family := canvas.NewFontFamily(r.font)
	if err := family.LoadFont(data, 0, style); err != nil {
		return nil, canvas.FontRegular, fmt.Errorf("加载字体 %s 失败: %w", r.font, err)
	}
	r.families[r.font] = &fontFamilyEntry{family: family, style: style}
	return family, style, nil
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}
