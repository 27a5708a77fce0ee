// Package wrap 提供两种行折行引擎：按 Unicode 标量数折行与按渲染像素
// 宽度折行，后者通过整形引擎取得真实字形步进。两种折行器都是单线程的
// 拉取式迭代器。
package wrap

import (
	"unicode/utf8"

	"github.com/Hazer/text2svg/font"
	"github.com/Hazer/text2svg/shape"
)

// TextMeasurer 把一段文本在给定风格下归约为单一像素宽度。
// 第二个返回值为 false 表示无法度量（没有可用字面或整形失败）。
type TextMeasurer interface {
	TextWidth(text string, style font.FontStyle) (float64, bool)
}

// Measurer 基于 Config 与整形引擎实现 TextMeasurer。度量是可复现的：
// 相同文本与相同 Config 状态恒得到相同宽度。
type Measurer struct {
	cfg    *font.Config
	engine shape.Engine
}

var _ TextMeasurer = (*Measurer)(nil)

// NewMeasurer 构造宽度度量器。
func NewMeasurer(cfg *font.Config, engine shape.Engine) *Measurer {
	return &Measurer{cfg: cfg, engine: engine}
}

// TextWidth 计算文本在指定风格下的渲染像素宽度：
// 空文本立即返回 0；请求风格缺失时回退到常规字面，常规字面也缺失或
// 整形不可用时返回 false。宽度为全部字形步进之和乘以
// size/max(1, ascent-descent) 的缩放系数，再加上字距贡献
// letterSpace·scale·upem·(字符数-1)。
func (m *Measurer) TextWidth(text string, style font.FontStyle) (float64, bool) {
	if text == "" {
		return 0, true
	}

	face := m.cfg.FaceByStyle(style)
	if face == nil {
		face = m.cfg.RegularFace()
	}
	if face == nil {
		return 0, false
	}

	glyphs, err := m.engine.Shape(face, []rune(text), m.cfg.Features())
	if err != nil {
		return 0, false
	}
	metrics, err := m.engine.Metrics(face)
	if err != nil {
		return 0, false
	}

	// 以 ascent-descent 跨度缩放到目标字号，防御退化的零跨度
	span := metrics.Ascent - metrics.Descent
	if span < 1 {
		span = 1
	}
	scale := float64(m.cfg.Size()) / span

	var total float64
	for _, g := range glyphs {
		total += g.XAdvance * scale
	}

	// 字距作用于字符之间，末字符之后不再追加
	if count := utf8.RuneCountInString(text); count > 1 {
		total += m.cfg.LetterSpace() * scale * metrics.UnitsPerEm * float64(count-1)
	}
	return total, true
}
