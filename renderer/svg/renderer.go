package svgrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/Hazer/text2svg/font"
	"github.com/Hazer/text2svg/layout"
	"github.com/Hazer/text2svg/renderer"
)

// Renderer draws layout results via github.com/tdewolff/canvas.
type Renderer struct {
	cfg *font.Config

	fontMu   sync.Mutex
	families map[font.FontStyle]*canvas.FontFamily
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer creates an SVG renderer that draws with the faces held by cfg.
func NewRenderer(cfg *font.Config) *Renderer {
	return &Renderer{
		cfg:      cfg,
		families: map[font.FontStyle]*canvas.FontFamily{},
	}
}

// Render renders the result into an SVG byte slice.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if result.Width <= 0 || result.Height <= 0 {
		return nil, fmt.Errorf("画布尺寸无效：%g x %g", result.Width, result.Height)
	}

	c := canvas.New(result.Width, result.Height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

	if fill := r.cfg.FillColor(); fill != "" {
		ctx.SetFillColor(hexColor(fill, canvas.White))
		ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
		ctx.DrawPath(0, 0, canvas.Rectangle(result.Width, result.Height))
	}

	for _, box := range result.Boxes {
		if err := r.drawTextBox(ctx, box); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	writer := svg.New(&buf, result.Width, result.Height, nil)
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 SVG 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawTextBox(ctx *canvas.Context, tb layout.TextBox) error {
	// 画布单位就是布局像素。canvas 以 pt 接收字号并按 pt→mm 换算存储，
	// 因此这里用 mm→pt 抵消，使字形在画布单位下恰为 FontSize；
	// face.Metrics() 随之也以画布单位（即像素）表达。
	face, err := r.fontFace(tb.Style, tb.FontSize*layout.MmToPt)
	if err != nil {
		return err
	}

	cursorY := tb.Y
	for _, line := range tb.Lines {
		if line.Content != "" {
			textLine := canvas.NewTextLine(face, line.Content, canvas.Left)
			// 基线位置：行顶部加上字体上升部
			metrics := face.Metrics()
			baseline := cursorY + metrics.Ascent
			ctx.DrawText(tb.X, baseline, textLine)
		}
		cursorY += tb.LineHeight
	}
	return nil
}

func (r *Renderer) fontFace(style font.FontStyle, sizePt float64) (*canvas.FontFace, error) {
	family, err := r.ensureFontFamily(style)
	if err != nil {
		return nil, err
	}
	col := hexColor(r.cfg.Color(), canvas.Black)
	return family.Face(sizePt, col, canvasStyle(style), canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(style font.FontStyle) (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if family, ok := r.families[style]; ok {
		return family, nil
	}
	face := r.cfg.FaceByStyle(style)
	if face == nil {
		face = r.cfg.RegularFace()
	}
	if face == nil {
		return nil, fmt.Errorf("家族 %q 没有可用于渲染的字面", r.cfg.Name())
	}
	family := canvas.NewFontFamily(r.cfg.Name())
	if err := family.LoadFont(face.Data, face.Index, canvasStyle(style)); err != nil {
		return nil, fmt.Errorf("载入字面 %s 失败: %w", face.Name, err)
	}
	r.families[style] = family
	return family, nil
}

// canvasStyle 将内部风格映射为 canvas 的字重/斜体标志。
func canvasStyle(style font.FontStyle) canvas.FontStyle {
	switch style {
	case font.Thin:
		return canvas.FontThin
	case font.ExtraLight:
		return canvas.FontExtraLight
	case font.Light:
		return canvas.FontLight
	case font.Medium:
		return canvas.FontMedium
	case font.SemiBold:
		return canvas.FontSemiBold
	case font.Bold:
		return canvas.FontBold
	case font.ExtraBold:
		return canvas.FontExtraBold
	case font.Black:
		return canvas.FontBlack
	case font.Italic:
		return canvas.FontItalic
	default:
		return canvas.FontRegular
	}
}

// hexColor 解析 #rrggbb 颜色串，空串或明显不合法时退回 fallback。
func hexColor(s string, fallback color.RGBA) color.RGBA {
	if s == "" {
		return fallback
	}
	if s[0] != '#' || (len(s) != 4 && len(s) != 5 && len(s) != 7 && len(s) != 9) {
		return fallback
	}
	return canvas.Hex(s)
}
