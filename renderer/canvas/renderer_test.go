package canvasrenderer

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/ByLCY/capicon/layout"
	"github.com/ByLCY/capicon/renderer"
	svgrenderer "github.com/ByLCY/capicon/renderer/svg"
)

func smallJob(t *testing.T, caption string) renderer.Job {
	t.Helper()
	scene := layout.BuildScene(caption, layout.DefaultProfiles()[layout.Small])
	markup, err := svgrenderer.NewRenderer().Render(scene)
	if err != nil {
		t.Fatalf("render markup: %v", err)
	}
	return renderer.Job{Scene: scene, Markup: markup, Width: scene.Size, Height: scene.Size}
}

// brightPixels 统计 y 区间内接近白色或浅黄（绿色通道很高）的像素数。
func brightPixels(img image.Image, y0, y1 int) int {
	n := 0
	b := img.Bounds()
	for y := y0; y < y1; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, g, _, a := img.At(x, y).RGBA()
			if a > 0xc000 && g > 0xc800 {
				n++
			}
		}
	}
	return n
}

func TestRasterizeProducesSizedPNG(t *testing.T) {
	r := NewRenderer()
	data, err := r.Rasterize(context.Background(), smallJob(t, "NRD CONTROL DE CAJAS"))
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 192 || b.Dy() != 192 {
		t.Fatalf("unexpected size %v", b)
	}

	// 圆角外是透明的。
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Fatalf("corner pixel should be transparent, alpha=%d", a)
	}
	// 背景为红色渐变。
	rr, g, bb, a := img.At(160, 20).RGBA()
	if a == 0 || rr <= g || rr <= bb {
		t.Fatalf("expected red background, got r=%d g=%d b=%d a=%d", rr, g, bb, a)
	}
	// 两行文字都被绘制。
	if n := brightPixels(img, 78, 98); n == 0 {
		t.Fatalf("primary line not drawn")
	}
	if n := brightPixels(img, 118, 138); n == 0 {
		t.Fatalf("secondary line not drawn")
	}
}

func TestRasterizeMarkupOnlyHasNoText(t *testing.T) {
	job := smallJob(t, "CAJA")
	job.Scene = nil
	img, err := NewRenderer().Image(context.Background(), job)
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if n := brightPixels(img, 95, 120); n != 0 {
		t.Fatalf("oksvg layer should not draw text, found %d bright pixels", n)
	}
}

func TestRasterizeErrors(t *testing.T) {
	r := NewRenderer()
	job := smallJob(t, "CAJA")

	bad := job
	bad.Width = 0
	if _, err := r.Rasterize(context.Background(), bad); !errors.Is(err, renderer.ErrRasterize) {
		t.Fatalf("expected ErrRasterize, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Rasterize(ctx, job); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	broken := NewRendererWithOptions(Options{Font: "Missing"})
	if _, err := broken.Rasterize(context.Background(), job); err == nil {
		t.Fatalf("expected font error")
	}
}

func TestMeasureText(t *testing.T) {
	r := NewRenderer()
	short, err := r.MeasureText("CAJA", 50)
	if err != nil {
		t.Fatalf("MeasureText: %v", err)
	}
	long, err := r.MeasureText("CAJA CAJA", 50)
	if err != nil {
		t.Fatalf("MeasureText: %v", err)
	}
	if short <= 0 || long <= short {
		t.Fatalf("unexpected widths short=%g long=%g", short, long)
	}
}

func TestProof(t *testing.T) {
	r := NewRenderer()
	small, err := r.Image(context.Background(), smallJob(t, "CAJA"))
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	data, err := r.Proof([]image.Image{small, small})
	if err != nil {
		t.Fatalf("Proof: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("proof is not a PDF")
	}
	if _, err := r.Proof(nil); err == nil {
		t.Fatalf("expected error for empty proof")
	}
}
