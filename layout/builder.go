package layout

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Hazer/text2svg/font"
	"github.com/Hazer/text2svg/wrap"
)

const (
	defaultMaxWidth = 800.0
	// 段落间距，按行高的倍数计算。
	blockSpacing = 0.5
)

// Build 根据段落、字体配置与宽度度量器生成布局结果。
// 每个段落折行为一个 TextBox，自上而下堆叠；画布宽度取最宽行加留白。
func Build(paragraphs []Paragraph, cfg *font.Config, m wrap.TextMeasurer, opts BuildOptions) (*Result, error) {
	if cfg == nil {
		return nil, fmt.Errorf("layout: 缺少字体配置")
	}
	if m == nil {
		return nil, fmt.Errorf("layout: 缺少宽度度量器")
	}

	maxWidth := opts.MaxWidth
	if maxWidth <= 0 {
		maxWidth = defaultMaxWidth
	}
	fontSize := float64(cfg.Size())
	lineHeight := opts.LineHeight.Resolve(Length{Value: fontSize, Unit: UnitPX}, UnitPX)
	if lineHeight <= 0 {
		lineHeight = fontSize * 1.2
	}
	padding := opts.Padding
	if padding < 0 {
		padding = fontSize / 2
	}

	res := &Result{}
	cursorY := padding
	contentWidth := 0.0
	for i, p := range paragraphs {
		if i > 0 {
			cursorY += lineHeight * blockSpacing
		}
		box := TextBox{
			X:          padding,
			Y:          cursorY,
			FontSize:   fontSize,
			LineHeight: lineHeight,
			Style:      p.Style,
		}
		for _, content := range splitParagraph(p, maxWidth, opts.MaxChars, m) {
			w := lineWidth(content, p.Style, fontSize, m)
			if w > box.Width {
				box.Width = w
			}
			box.Lines = append(box.Lines, TextLine{Content: content, Width: w})
		}
		if box.Width > contentWidth {
			contentWidth = box.Width
		}
		cursorY += lineHeight * float64(len(box.Lines))
		res.Boxes = append(res.Boxes, box)
	}

	res.Width = contentWidth + 2*padding
	res.Height = cursorY + padding
	return res, nil
}

// splitParagraph 将段落折成行。段落内的换行符先按硬换行处理，
// 再对每个逻辑行应用字符或像素折行。
func splitParagraph(p Paragraph, maxWidth float64, maxChars int, m wrap.TextMeasurer) []string {
	var out []string
	for _, line := range strings.Split(p.Text, "\n") {
		line = strings.TrimRight(line, "\r")
		if maxChars > 0 {
			out = append(out, wrap.ByCharacters(strings.NewReader(line), maxChars)...)
			continue
		}
		out = append(out, wrap.TextByPixelWidth(line, maxWidth, m, p.Style)...)
	}
	if len(out) == 0 {
		out = []string{""}
	}
	return out
}

// lineWidth 度量单行宽度，度量不可用时用字符数粗估。
func lineWidth(content string, style font.FontStyle, fontSize float64, m wrap.TextMeasurer) float64 {
	if w, ok := m.TextWidth(content, style); ok {
		return w
	}
	return float64(utf8.RuneCountInString(content)) * fontSize * 0.6
}
