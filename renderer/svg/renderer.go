// Package svgrenderer emits the icon scene as an SVG document.
package svgrenderer

import (
	"bytes"
	"fmt"
	"strconv"
	"text/template"

	"github.com/ByLCY/capicon/layout"
	"github.com/ByLCY/capicon/renderer"
)

const fontFamily = "Arial, sans-serif"

var _ renderer.Renderer = (*Renderer)(nil)

// Renderer writes scenes as SVG markup. Caption text goes through
// layout.EscapeMarkup; every other value is numeric or a fixed literal.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer creates an SVG renderer.
func NewRenderer() *Renderer {
	return &Renderer{tmpl: documentTemplate}
}

// Render renders scene into an SVG document.
func (r *Renderer) Render(scene *layout.Scene) ([]byte, error) {
	if scene == nil {
		return nil, fmt.Errorf("渲染场景为空")
	}
	if scene.Size <= 0 {
		return nil, fmt.Errorf("画布尺寸无效: %d", scene.Size)
	}
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view{Scene: scene, FontFamily: fontFamily}); err != nil {
		return nil, fmt.Errorf("生成 SVG 失败: %w", err)
	}
	return buf.Bytes(), nil
}

type view struct {
	*layout.Scene
	FontFamily string
}

var documentTemplate = template.Must(template.New("icon").Funcs(template.FuncMap{
	"num":    num,
	"pct":    func(f float64) string { return num(f*100) + "%" },
	"hex":    func(c layout.Color) string { return c.Hex() },
	"mul":    func(a, b float64) float64 { return a * b },
	"escape": layout.EscapeMarkup,
}).Parse(`<svg width="{{.Size}}" height="{{.Size}}" viewBox="0 0 {{.Size}} {{.Size}}" xmlns="http://www.w3.org/2000/svg">
  <defs>
    <linearGradient id="bgGradient" x1="0%" y1="0%" x2="100%" y2="100%">
{{- range .Background.Stops}}
      <stop offset="{{pct .Offset}}" stop-color="{{hex .Color}}" stop-opacity="1"/>
{{- end}}
    </linearGradient>
    <filter id="shadow">
      <feDropShadow dx="0" dy="{{.Shadow.DY}}" stdDeviation="{{.Shadow.StdDev}}" flood-opacity="{{num .Shadow.Opacity}}"/>
    </filter>
  </defs>

  <!-- Background with rounded corners -->
  <rect width="{{.Size}}" height="{{.Size}}" fill="url(#bgGradient)" rx="{{.Background.CornerRadius}}" ry="{{.Background.CornerRadius}}"/>

  <!-- Cash register glyph -->
  <g>
{{- $g := .Glyph}}{{$fill := hex $g.Color}}
    <rect x="{{num $g.Body.X}}" y="{{num $g.Body.Y}}" width="{{num $g.Body.Width}}" height="{{num $g.Body.Height}}" rx="{{num $g.Body.Radius}}" fill="{{$fill}}" fill-opacity="{{num $g.Opacity}}" stroke="{{$fill}}" stroke-width="{{num $g.Body.StrokeWidth}}" stroke-opacity="{{num (mul $g.Opacity $g.Body.StrokeOpacity)}}"/>
    <rect x="{{num $g.Display.X}}" y="{{num $g.Display.Y}}" width="{{num $g.Display.Width}}" height="{{num $g.Display.Height}}" rx="{{num $g.Display.Radius}}" fill="{{$fill}}" fill-opacity="{{num $g.Opacity}}" stroke="{{$fill}}" stroke-width="{{num $g.Display.StrokeWidth}}" stroke-opacity="{{num (mul $g.Opacity $g.Display.StrokeOpacity)}}"/>
{{- range $g.Buttons}}
    <circle cx="{{num .CX}}" cy="{{num .CY}}" r="{{num .R}}" fill="{{$fill}}" fill-opacity="{{num $g.Opacity}}" stroke="{{$fill}}" stroke-width="{{num .StrokeWidth}}" stroke-opacity="{{num (mul $g.Opacity .StrokeOpacity)}}"/>
{{- end}}
    <rect x="{{num $g.Slot.X}}" y="{{num $g.Slot.Y}}" width="{{num $g.Slot.Width}}" height="{{num $g.Slot.Height}}" rx="{{num $g.Slot.Radius}}" fill="{{$fill}}" fill-opacity="{{num $g.Opacity}}" stroke="{{$fill}}" stroke-width="{{num $g.Slot.StrokeWidth}}" stroke-opacity="{{num (mul $g.Opacity $g.Slot.StrokeOpacity)}}"/>
  </g>

  <!-- Caption -->
{{- $family := .FontFamily}}
{{- range .Texts}}
  <text x="{{num .X}}" y="{{num .Y}}" font-family="{{$family}}" font-size="{{.FontSize}}" font-weight="{{if .Bold}}bold{{else}}normal{{end}}" fill="{{hex .Color}}" text-anchor="middle" dominant-baseline="middle" filter="url(#shadow)" letter-spacing="{{.LetterSpacing}}">{{escape .Content}}</text>
{{- end}}
</svg>
`))

// num formats v with the shortest representation that round-trips.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
