// Package config loads the optional YAML configuration for capicon.
// Order of precedence: defaults, config file, CAPICON_* environment
// variables, then command-line flags (applied by main).
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON []byte

// 可选的栅格化后端。
const (
	RasterizerCanvas = "canvas"
	RasterizerRSVG   = "rsvg"
)

type OutputConfig struct {
	Dir     string `yaml:"dir" json:"dir"`
	Sizes   []int  `yaml:"sizes" json:"sizes"`
	KeepSVG bool   `yaml:"keep_svg" json:"keep_svg"`
	Proof   string `yaml:"proof" json:"proof"` // PDF 校样路径，空为不输出
	Debug   string `yaml:"debug" json:"debug"` // 布局调试 JSON 路径，空为不输出
}

type RenderConfig struct {
	Rasterizer string `yaml:"rasterizer" json:"rasterizer"` // "canvas" | "rsvg"
	TimeoutMs  int    `yaml:"timeout_ms" json:"timeout_ms"`
	Profiles   string `yaml:"profiles" json:"profiles"`
	Font       string `yaml:"font" json:"font"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"` // "auto" | "console" | "json"
	Source bool   `yaml:"source" json:"source"`
	File   string `yaml:"file" json:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version" json:"config_version"`
	Output        OutputConfig  `yaml:"output" json:"output"`
	Render        RenderConfig  `yaml:"render" json:"render"`
	Logging       LoggingConfig `yaml:"logging" json:"logging"`
}

// Defaults returns the built-in configuration.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Output:        OutputConfig{Dir: ".", Sizes: []int{192, 512}},
		Render:        RenderConfig{Rasterizer: RasterizerCanvas, TimeoutMs: 30000},
		Logging:       LoggingConfig{Level: "info", Format: "auto"},
	}
}

// Env var names used as overrides.
const (
	EnvOutputDir  = "CAPICON_OUT"
	EnvSizes      = "CAPICON_SIZES"
	EnvRasterizer = "CAPICON_RASTERIZER"
	EnvTimeoutMs  = "CAPICON_TIMEOUT_MS"
	EnvProfiles   = "CAPICON_PROFILES"
	EnvFont       = "CAPICON_FONT"
	EnvLogLevel   = "CAPICON_LOG_LEVEL"
	EnvLogFormat  = "CAPICON_LOG_FORMAT"
	EnvLogSource  = "CAPICON_LOG_SOURCE"
	EnvLogFile    = "CAPICON_LOG_FILE"
)

// Load 读取 path 指向的 YAML（path 为空时只用默认值），校验后合并环境变量覆盖。
func Load(path string) (AppConfig, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
		}
		if err := validateDocument(data); err != nil {
			return cfg, fmt.Errorf("配置文件 %s 无效: %w", path, err)
		}
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if strings.TrimSpace(src.Output.Dir) != "" {
		dst.Output.Dir = strings.TrimSpace(src.Output.Dir)
	}
	if len(src.Output.Sizes) > 0 {
		dst.Output.Sizes = append([]int(nil), src.Output.Sizes...)
	}
	dst.Output.KeepSVG = src.Output.KeepSVG
	if strings.TrimSpace(src.Output.Proof) != "" {
		dst.Output.Proof = strings.TrimSpace(src.Output.Proof)
	}
	if strings.TrimSpace(src.Output.Debug) != "" {
		dst.Output.Debug = strings.TrimSpace(src.Output.Debug)
	}
	if strings.TrimSpace(src.Render.Rasterizer) != "" {
		dst.Render.Rasterizer = strings.ToLower(strings.TrimSpace(src.Render.Rasterizer))
	}
	if src.Render.TimeoutMs != 0 {
		dst.Render.TimeoutMs = src.Render.TimeoutMs
	}
	if strings.TrimSpace(src.Render.Profiles) != "" {
		dst.Render.Profiles = strings.TrimSpace(src.Render.Profiles)
	}
	if strings.TrimSpace(src.Render.Font) != "" {
		dst.Render.Font = strings.TrimSpace(src.Render.Font)
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) error {
	if v := strings.TrimSpace(os.Getenv(EnvOutputDir)); v != "" {
		cfg.Output.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSizes)); v != "" {
		sizes, err := ParseSizes(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSizes, err)
		}
		cfg.Output.Sizes = sizes
	}
	if v := strings.TrimSpace(os.Getenv(EnvRasterizer)); v != "" {
		cfg.Render.Rasterizer = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvTimeoutMs)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: 不是整数: %q", EnvTimeoutMs, v)
		}
		cfg.Render.TimeoutMs = n
	}
	if v := strings.TrimSpace(os.Getenv(EnvProfiles)); v != "" {
		cfg.Render.Profiles = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvFont)); v != "" {
		cfg.Render.Font = v
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
	return nil
}

func truthy(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

// ParseSizes 解析逗号分隔的尺寸列表，例如 "192,512"。重复的尺寸只保留第一次。
func ParseSizes(value string) ([]int, error) {
	var sizes []int
	seen := map[int]bool{}
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("尺寸无效: %q", part)
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		return nil, errors.New("尺寸列表为空")
	}
	return sizes, nil
}

// Timeout returns the rasterization timeout; zero or negative means none.
func (r RenderConfig) Timeout() time.Duration {
	if r.TimeoutMs <= 0 {
		return 0
	}
	return time.Duration(r.TimeoutMs) * time.Millisecond
}

// Validate 用内嵌的 JSON Schema 校验合并后的配置。
func Validate(cfg AppConfig) error {
	return validate(gojsonschema.NewGoLoader(cfg))
}

// validateDocument 校验原始 YAML 文档，未知字段在这里就会被拒绝。
func validateDocument(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("解析 YAML 失败: %w", err)
	}
	if doc == nil {
		return nil
	}
	return validate(gojsonschema.NewGoLoader(doc))
}

func validate(doc gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), doc)
	if err != nil {
		return fmt.Errorf("配置校验失败: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("配置不符合 schema: %s", strings.Join(msgs, "; "))
}
