package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/ByLCY/capicon/config"
	"github.com/ByLCY/capicon/dsl"
	"github.com/ByLCY/capicon/generate"
	"github.com/ByLCY/capicon/layout"
	"github.com/ByLCY/capicon/logging"
	"github.com/ByLCY/capicon/renderer"
)

// errUsage 标记命令行用法错误，退出码为 2。
var errUsage = errors.New("用法错误")

type cliOptions struct {
	configPath string
	out        string
	profiles   string
	sizes      string
	rasterizer string
	timeout    time.Duration
	keepSVG    bool
	proof      string
	debug      string
	data       string
	caption    string
	set        map[string]bool // 显式给出的 flag，优先于配置文件
}

func main() {
	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := run(ctx, opts)
	if err != nil {
		stop()
		if errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(2)
		}
		log.Fatalf("生成图标失败: %v", err)
	}
	for _, f := range report.Files() {
		fmt.Printf("已生成：%s\n", f)
	}
}

func parseArgs(args []string, stderr io.Writer) (cliOptions, error) {
	fs := flag.NewFlagSet("capicon", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, `用法: capicon [flags] "图标标题"`)
		fmt.Fprintln(stderr, `示例: capicon "NRD CONTROL DE CAJAS"`)
		fs.PrintDefaults()
	}

	var o cliOptions
	fs.StringVar(&o.configPath, "config", "", "YAML 配置文件路径")
	fs.StringVar(&o.out, "out", "", "PNG 输出目录（默认当前目录）")
	fs.StringVar(&o.profiles, "profiles", "", "画布配置表文件路径")
	fs.StringVar(&o.sizes, "sizes", "", "逗号分隔的尺寸列表，例如 192,512")
	fs.StringVar(&o.rasterizer, "rasterizer", "", "栅格化后端：canvas 或 rsvg")
	fs.DurationVar(&o.timeout, "timeout", 0, "栅格化超时，例如 30s")
	fs.BoolVar(&o.keepSVG, "keep-svg", false, "在输出目录中保留 SVG")
	fs.StringVar(&o.proof, "proof", "", "PDF 校样输出路径")
	fs.StringVar(&o.debug, "debug", "", "布局调试 JSON 输出路径")
	fs.StringVar(&o.data, "data", "", "绑定到标题占位符的 JSON 数据")
	if err := fs.Parse(args); err != nil {
		return o, err
	}

	o.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	switch fs.NArg() {
	case 1:
	case 0:
		fs.Usage()
		return o, fmt.Errorf("%w: %w", errUsage, generate.ErrNoCaption)
	default:
		fs.Usage()
		return o, fmt.Errorf("%w: 需要且只需要一个图标标题参数，实际为 %d 个", errUsage, fs.NArg())
	}
	o.caption = fs.Arg(0)
	return o, nil
}

// run 串联配置、日志、配置表与生成流程。
func run(ctx context.Context, o cliOptions) (generate.Report, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return generate.Report{}, fmt.Errorf("加载配置失败: %w", err)
	}
	if err := applyFlags(&cfg, o); err != nil {
		return generate.Report{}, err
	}
	logging.Init(logging.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})

	var inputData any
	if o.data != "" {
		if err := json.Unmarshal([]byte(o.data), &inputData); err != nil {
			return generate.Report{}, fmt.Errorf("%w: 解析 data JSON 失败: %v", errUsage, err)
		}
	}

	build := layout.BuildOptions{Debug: layout.DebugOptions{Path: cfg.Output.Debug}}
	if cfg.Render.Profiles != "" {
		sheet, err := dsl.ParseFile(cfg.Render.Profiles)
		if err != nil {
			return generate.Report{}, fmt.Errorf("解析画布配置表失败: %w", err)
		}
		if build.Profiles, err = layout.BuildProfiles(sheet); err != nil {
			return generate.Report{}, fmt.Errorf("画布配置表无效: %w", err)
		}
	}

	rast, err := generate.NewRasterizer(cfg.Render.Rasterizer, cfg.Render.Font)
	if errors.Is(err, renderer.ErrRasterizerUnavailable) {
		return generate.Report{}, err
	}
	if err != nil {
		return generate.Report{}, fmt.Errorf("%w: %v", errUsage, err)
	}

	sizes := make([]layout.CanvasSize, 0, len(cfg.Output.Sizes))
	for _, s := range cfg.Output.Sizes {
		sizes = append(sizes, layout.CanvasSize(s))
	}

	return generate.Run(ctx, o.caption, generate.Options{
		OutputDir:  cfg.Output.Dir,
		Sizes:      sizes,
		Build:      build,
		Data:       inputData,
		Rasterizer: rast,
		Timeout:    cfg.Render.Timeout(),
		KeepSVG:    cfg.Output.KeepSVG,
		ProofPath:  cfg.Output.Proof,
		Logger:     logging.WithComponent("generate"),
	})
}

// applyFlags 将显式给出的 flag 覆盖到配置上。
func applyFlags(cfg *config.AppConfig, o cliOptions) error {
	if o.set["out"] {
		cfg.Output.Dir = o.out
	}
	if o.set["sizes"] {
		sizes, err := config.ParseSizes(o.sizes)
		if err != nil {
			return fmt.Errorf("%w: -sizes: %v", errUsage, err)
		}
		cfg.Output.Sizes = sizes
	}
	if o.set["keep-svg"] {
		cfg.Output.KeepSVG = o.keepSVG
	}
	if o.set["proof"] {
		cfg.Output.Proof = o.proof
	}
	if o.set["debug"] {
		cfg.Output.Debug = o.debug
	}
	if o.set["profiles"] {
		cfg.Render.Profiles = o.profiles
	}
	if o.set["rasterizer"] {
		cfg.Render.Rasterizer = o.rasterizer
	}
	if o.set["timeout"] {
		cfg.Render.TimeoutMs = int(o.timeout / time.Millisecond)
	}
	return nil
}
