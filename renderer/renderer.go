package renderer

import (
	"context"
	"errors"

	"github.com/ByLCY/capicon/layout"
)

// 栅格化阶段的错误分类，调用方可用 errors.Is 区分。
var (
	ErrRasterizerUnavailable = errors.New("栅格化工具不可用")
	ErrRasterize             = errors.New("栅格化失败")
)

// Renderer 将场景输出为矢量标记文档（SVG）。
type Renderer interface {
	Render(scene *layout.Scene) ([]byte, error)
}

// Job 描述一次栅格化：标记文档及其落盘路径，外加目标像素尺寸。
// Scene 供能直接绘制文字的后端使用。
type Job struct {
	Scene      *layout.Scene
	Markup     []byte
	MarkupPath string
	Width      int
	Height     int
}

// Rasterizer 把标记文档转换为固定尺寸的 PNG 字节。
type Rasterizer interface {
	Rasterize(ctx context.Context, job Job) ([]byte, error)
}
