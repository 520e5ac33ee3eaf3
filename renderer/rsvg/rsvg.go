// Package rsvg rasterizes SVG markup with the external rsvg-convert tool.
package rsvg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/ByLCY/capicon/renderer"
)

// DefaultBinary 是在 PATH 中查找的可执行文件名。
const DefaultBinary = "rsvg-convert"

// Rasterizer 调用 rsvg-convert，将 PNG 写到标准输出后读回。
type Rasterizer struct {
	Binary string
}

var _ renderer.Rasterizer = (*Rasterizer)(nil)

// New returns a Rasterizer using DefaultBinary.
func New() *Rasterizer { return &Rasterizer{Binary: DefaultBinary} }

// Available reports whether the binary can be found on PATH.
func (r *Rasterizer) Available() bool {
	_, err := exec.LookPath(r.binary())
	return err == nil
}

// Rasterize implements renderer.Rasterizer. Job.MarkupPath is preferred;
// without it the markup is piped through stdin.
func (r *Rasterizer) Rasterize(ctx context.Context, job renderer.Job) ([]byte, error) {
	if job.Width <= 0 || job.Height <= 0 {
		return nil, fmt.Errorf("%w: 目标尺寸无效 %dx%d", renderer.ErrRasterize, job.Width, job.Height)
	}
	path, err := exec.LookPath(r.binary())
	if err != nil {
		return nil, fmt.Errorf("%w: 未在 PATH 中找到 %s: %v", renderer.ErrRasterizerUnavailable, r.binary(), err)
	}

	args := []string{
		"-w", strconv.Itoa(job.Width),
		"-h", strconv.Itoa(job.Height),
		"-f", "png",
	}
	cmd := exec.CommandContext(ctx, path, args...)
	switch {
	case job.MarkupPath != "":
		cmd.Args = append(cmd.Args, job.MarkupPath)
	case len(job.Markup) > 0:
		cmd.Stdin = bytes.NewReader(job.Markup)
	default:
		return nil, fmt.Errorf("%w: 缺少 SVG 输入", renderer.ErrRasterize)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %s 被中止: %w", renderer.ErrRasterize, r.binary(), ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: %s 退出码 %d\n%s", renderer.ErrRasterize, r.binary(), exitErr.ExitCode(), stderr.Bytes())
		}
		return nil, fmt.Errorf("%w: 执行 %s: %v", renderer.ErrRasterize, r.binary(), err)
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("%w: %s 未输出任何数据", renderer.ErrRasterize, r.binary())
	}
	return stdout.Bytes(), nil
}

func (r *Rasterizer) binary() string {
	if r.Binary == "" {
		return DefaultBinary
	}
	return r.Binary
}
