package layout

// 该文件定义场景描述，供 SVG 渲染、栅格化与调试 JSON 共用。
// 坐标单位均为画布像素，原点在左上角。

// Scene 是一个尺寸下完整可绘制的图标。
type Scene struct {
	Caption    string       `json:"caption"`
	Size       int          `json:"size"`
	Profile    string       `json:"profile"`
	Lines      LineSet      `json:"lines"`
	Fitted     []FittedLine `json:"fitted"`
	Background Background   `json:"background"`
	Glyph      Glyph        `json:"glyph"`
	Shadow     Shadow       `json:"shadow"`
	Texts      []TextRun    `json:"texts"`
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Palette 是图标使用的颜色组。
type Palette struct {
	Gradient  [3]Color `json:"gradient"` // 背景渐变的起、中、止三个色标
	Primary   Color    `json:"primary"`
	Secondary Color    `json:"secondary"`
	Glyph     Color    `json:"glyph"`
}

// DefaultPalette 返回红底白字、副行浅黄的默认配色。
func DefaultPalette() Palette {
	return Palette{
		Gradient: [3]Color{
			mustColor("#dc2626"),
			mustColor("#ef4444"),
			mustColor("#b91c1c"),
		},
		Primary:   mustColor("#ffffff"),
		Secondary: mustColor("#fef08a"),
		Glyph:     mustColor("#ffffff"),
	}
}

// GradientStop 是线性渐变中的一个色标，Offset 取 0..1。
type GradientStop struct {
	Offset float64 `json:"offset"`
	Color  Color   `json:"color"`
}

// Background 是带圆角的方形底板，渐变从左上到右下。
type Background struct {
	Size         int            `json:"size"`
	CornerRadius int            `json:"cornerRadius"`
	Stops        []GradientStop `json:"stops"`
}

// Glyph 是半透明的收银机装饰图标。
type Glyph struct {
	Opacity     float64  `json:"opacity"`
	Color       Color    `json:"color"`
	StrokeWidth float64  `json:"strokeWidth"`
	Body        Rect     `json:"body"`
	Display     Rect     `json:"display"`
	Buttons     []Circle `json:"buttons"`
	Slot        Rect     `json:"slot"`
}

// Rect 表示一个圆角矩形。
type Rect struct {
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Radius        float64 `json:"radius"`
	StrokeWidth   float64 `json:"strokeWidth"`
	StrokeOpacity float64 `json:"strokeOpacity"`
}

// Circle 表示一个圆。
type Circle struct {
	CX            float64 `json:"cx"`
	CY            float64 `json:"cy"`
	R             float64 `json:"r"`
	StrokeWidth   float64 `json:"strokeWidth"`
	StrokeOpacity float64 `json:"strokeOpacity"`
}

// Shadow 是文字投影参数。
type Shadow struct {
	DY      int     `json:"dy"`
	StdDev  int     `json:"stdDev"`
	Opacity float64 `json:"opacity"`
}

// TextRun 是一行已定位、可直接绘制的文本。Y 为行的垂直中线。
type TextRun struct {
	Content       string  `json:"content"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	FontSize      int     `json:"fontSize"`
	Color         Color   `json:"color"`
	LetterSpacing int     `json:"letterSpacing"`
	Bold          bool    `json:"bold"`
}
