// Package generate runs the full icon pipeline: caption preparation, layout,
// SVG markup, rasterization and output files.
package generate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/ByLCY/capicon/binding"
	"github.com/ByLCY/capicon/config"
	"github.com/ByLCY/capicon/layout"
	"github.com/ByLCY/capicon/logging"
	"github.com/ByLCY/capicon/renderer"
	canvasrenderer "github.com/ByLCY/capicon/renderer/canvas"
	"github.com/ByLCY/capicon/renderer/rsvg"
	svgrenderer "github.com/ByLCY/capicon/renderer/svg"
)

var (
	// ErrNoCaption 表示命令行上没有给出标题参数；空字符串标题是合法输入。
	ErrNoCaption = errors.New("缺少图标标题")
	ErrWorkspace = errors.New("临时工作目录出错")
)

// Prover 把栅格化结果汇总为一份校样文档。
type Prover interface {
	Proof(images []image.Image) ([]byte, error)
}

// Options 配置一次生成。零值可用：输出到当前目录，生成 192 与 512 两个尺寸，
// 使用进程内的 canvas 栅格化。
type Options struct {
	OutputDir  string
	Sizes      []layout.CanvasSize
	Build      layout.BuildOptions // 配置表；Debug.Path 非空时输出场景 JSON
	Data       any                 // 标题占位符的绑定数据
	Markup     renderer.Renderer
	Rasterizer renderer.Rasterizer
	Timeout    time.Duration
	KeepSVG    bool
	ProofPath  string
	Prover     Prover
	Logger     *slog.Logger
}

// Report 列出本次写入的文件。
type Report struct {
	Caption string
	PNGs    []string
	SVGs    []string
	Debug   string
	Proof   string
	Scenes  []*layout.Scene
}

// Files 按写入顺序返回全部输出文件。
func (r Report) Files() []string {
	var files []string
	for i, p := range r.PNGs {
		files = append(files, p)
		if i < len(r.SVGs) {
			files = append(files, r.SVGs[i])
		}
	}
	if r.Debug != "" {
		files = append(files, r.Debug)
	}
	if r.Proof != "" {
		files = append(files, r.Proof)
	}
	return files
}

// DefaultSizes 是未指定尺寸时生成的图标。
var DefaultSizes = []layout.CanvasSize{layout.Small, layout.Large}

// PrepareCaption 做 NFC 规范化，组合字符序列因此按一个字符参与拆行。
// 仅在给出绑定数据时替换 ${path|默认值} 占位符，否则标题原样保留。
func PrepareCaption(caption string, data any) string {
	if data != nil {
		caption = binding.Interpolate(caption, data)
	}
	return norm.NFC.String(caption)
}

// uniqueSizes 去掉重复尺寸，保留首次出现的顺序。
func uniqueSizes(sizes []layout.CanvasSize) []layout.CanvasSize {
	seen := make(map[layout.CanvasSize]bool, len(sizes))
	out := make([]layout.CanvasSize, 0, len(sizes))
	for _, s := range sizes {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// textMeasurer 由能取得真实字体度量的栅格化后端实现。
type textMeasurer interface {
	MeasureText(content string, fontSize int) (float64, error)
}

// NewRasterizer 按名称创建栅格化后端：canvas（默认）或 rsvg。
func NewRasterizer(name, font string) (renderer.Rasterizer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", config.RasterizerCanvas:
		return canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{Font: font}), nil
	case config.RasterizerRSVG:
		r := rsvg.New()
		if !r.Available() {
			return nil, fmt.Errorf("%w: 未在 PATH 中找到 %s", renderer.ErrRasterizerUnavailable, r.Binary)
		}
		return r, nil
	default:
		return nil, fmt.Errorf("未知的栅格化后端 %q（可用：%s、%s）", name, config.RasterizerCanvas, config.RasterizerRSVG)
	}
}

type sizeResult struct {
	scene   *layout.Scene
	pngPath string
	svgPath string
	png     []byte
}

// Run 为每个尺寸生成 icon-<size>.png。中间 SVG 写在临时目录中，
// 无论成功与否返回前都会删除。
func Run(ctx context.Context, caption string, opts Options) (Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.WithComponent("generate")
	}
	caption = PrepareCaption(caption, opts.Data)
	if opts.Data != nil {
		if missing := binding.Placeholders(caption); len(missing) > 0 {
			logger.Warn("标题中有未解析的占位符", "paths", missing)
		}
	}

	sizes := uniqueSizes(opts.Sizes)
	if len(sizes) == 0 {
		sizes = DefaultSizes
	}
	table := opts.Build.ProfileTable()
	profiles := make([]layout.CanvasProfile, len(sizes))
	for i, size := range sizes {
		p, err := table.Lookup(size)
		if err != nil {
			return Report{}, err
		}
		profiles[i] = p
	}

	markup := opts.Markup
	if markup == nil {
		markup = svgrenderer.NewRenderer()
	}
	rast := opts.Rasterizer
	if rast == nil {
		rast = canvasrenderer.NewRenderer()
	}
	outDir := opts.OutputDir
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Report{}, fmt.Errorf("创建输出目录失败: %w", err)
	}

	workspace, err := os.MkdirTemp("", "capicon-*")
	if err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrWorkspace, err)
	}
	defer func() {
		if err := os.RemoveAll(workspace); err != nil {
			logger.Warn("删除临时目录失败", "dir", workspace, "err", err)
		}
	}()

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	results := make([]sizeResult, len(profiles))
	g, gctx := errgroup.WithContext(ctx)
	for i, profile := range profiles {
		g.Go(func() error {
			res, err := renderSize(gctx, caption, profile, workspace, outDir, opts.KeepSVG, markup, rast, logger)
			if err != nil {
				return fmt.Errorf("生成 %s 图标失败: %w", profile.Size, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := Report{Caption: caption}
	for _, res := range results {
		report.Scenes = append(report.Scenes, res.scene)
		report.PNGs = append(report.PNGs, res.pngPath)
		if res.svgPath != "" {
			report.SVGs = append(report.SVGs, res.svgPath)
		}
	}

	if path := opts.Build.Debug.Path; path != "" {
		if err := writeDebug(report.Scenes, path); err != nil {
			return report, err
		}
		report.Debug = path
		logger.Info("已写入调试 JSON", "file", path)
	}

	if opts.ProofPath != "" {
		prover := opts.Prover
		if prover == nil {
			prover = canvasrenderer.NewRenderer()
		}
		if err := writeProof(prover, results, opts.ProofPath); err != nil {
			return report, err
		}
		report.Proof = opts.ProofPath
		logger.Info("已写入 PDF 校样", "file", opts.ProofPath)
	}
	return report, nil
}

func renderSize(ctx context.Context, caption string, profile layout.CanvasProfile, workspace, outDir string, keepSVG bool, markup renderer.Renderer, rast renderer.Rasterizer, logger *slog.Logger) (sizeResult, error) {
	scene := layout.BuildScene(caption, profile)
	logFitted(scene, profile, rast, logger)

	doc, err := markup.Render(scene)
	if err != nil {
		return sizeResult{}, err
	}
	name := fmt.Sprintf("icon-%d", scene.Size)
	tmpSVG := filepath.Join(workspace, name+".svg")
	if err := os.WriteFile(tmpSVG, doc, 0o644); err != nil {
		return sizeResult{}, fmt.Errorf("%w: %v", ErrWorkspace, err)
	}

	data, err := rast.Rasterize(ctx, renderer.Job{
		Scene:      scene,
		Markup:     doc,
		MarkupPath: tmpSVG,
		Width:      scene.Size,
		Height:     scene.Size,
	})
	if err != nil {
		return sizeResult{}, err
	}

	res := sizeResult{scene: scene, png: data, pngPath: filepath.Join(outDir, name+".png")}
	if err := os.WriteFile(res.pngPath, data, 0o644); err != nil {
		return sizeResult{}, fmt.Errorf("写入 %s 失败: %w", res.pngPath, err)
	}
	logger.Info("已生成图标", "file", res.pngPath, "size", scene.Size)

	if keepSVG {
		res.svgPath = filepath.Join(outDir, name+".svg")
		if err := os.WriteFile(res.svgPath, doc, 0o644); err != nil {
			return sizeResult{}, fmt.Errorf("写入 %s 失败: %w", res.svgPath, err)
		}
		logger.Info("已保留 SVG", "file", res.svgPath)
	}
	return res, nil
}

// logFitted 记录每行的排版结果；后端能测量文字时，实际宽度超出文本区会给出警告。
func logFitted(scene *layout.Scene, profile layout.CanvasProfile, rast renderer.Rasterizer, logger *slog.Logger) {
	measurer, _ := rast.(textMeasurer)
	area := profile.TextAreaWidth()
	for _, fl := range scene.Fitted {
		logger.Debug("排版",
			"size", scene.Size,
			"text", fl.Text,
			"font_size", fl.FontSize,
			"render_size", fl.RenderSize,
			"baseline", fl.Baseline,
			"estimated_width", layout.EstimateTextWidth(fl.Text, float64(fl.RenderSize)),
		)
		if measurer == nil {
			continue
		}
		width, err := measurer.MeasureText(fl.Text, fl.RenderSize)
		if err != nil {
			logger.Debug("测量文字失败", "text", fl.Text, "err", err)
			continue
		}
		if width > area {
			logger.Warn("标题行超出文本区",
				"size", scene.Size,
				"text", fl.Text,
				"width", width,
				"text_area", area,
			)
		}
	}
}

func writeDebug(scenes []*layout.Scene, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(scenes, path); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

func writeProof(prover Prover, results []sizeResult, path string) error {
	images := make([]image.Image, 0, len(results))
	for _, res := range results {
		img, err := png.Decode(bytes.NewReader(res.png))
		if err != nil {
			return fmt.Errorf("读取 %s 失败: %w", res.pngPath, err)
		}
		images = append(images, img)
	}
	data, err := prover.Proof(images)
	if err != nil {
		return fmt.Errorf("生成 PDF 校样失败: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建校样目录失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 校样失败: %w", err)
	}
	return nil
}
