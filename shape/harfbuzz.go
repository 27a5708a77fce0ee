package shape

import (
	"errors"

	"github.com/go-text/typesetting/di"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/Hazer/text2svg/font"
)

// HarfBuzz 用 go-text/typesetting 的 HarfBuzz 移植实现 Engine。
// 整形尺寸固定为字面的 upem，因此输出步进即原生单位。
// 仅支持横排 LTR；双向文本与竖排不在范围内。
type HarfBuzz struct {
	shaper shaping.HarfbuzzShaper
}

var _ Engine = (*HarfBuzz)(nil)

// NewHarfBuzz 构造整形引擎。引擎无状态缓存，可跨度量调用复用。
func NewHarfBuzz() *HarfBuzz { return &HarfBuzz{} }

var errNoFaceData = errors.New("字面缺少可整形的数据")

// Shape 整形一段码点串，返回每个字形的横向步进（原生单位）。
func (h *HarfBuzz) Shape(face *font.Face, text []rune, features []font.Feature) ([]Glyph, error) {
	if face == nil || face.Font == nil {
		return nil, errNoFaceData
	}
	if len(text) == 0 {
		return nil, nil
	}

	input := shaping.Input{
		Text:      text,
		RunStart:  0,
		RunEnd:    len(text),
		Direction: di.DirectionLTR,
		Face:      face.Font,
		Size:      fixed.I(int(face.Font.Upem())),
		Script:    scriptOf(text),
		Language:  language.DefaultLanguage(),
	}
	for _, f := range features {
		// 标签长度在 FeatureSet 不变式下恒为 4，MustNewTag 不会 panic
		input.FontFeatures = append(input.FontFeatures, shaping.FontFeature{
			Tag:   ot.MustNewTag(f.Tag),
			Value: f.Value,
		})
	}

	out := h.shaper.Shape(input)
	glyphs := make([]Glyph, len(out.Glyphs))
	for i, g := range out.Glyphs {
		glyphs[i].XAdvance = fromFixed(g.XAdvance)
	}
	return glyphs, nil
}

// Metrics 返回字面的水平度量与 upem（原生单位）。
func (h *HarfBuzz) Metrics(face *font.Face) (Metrics, error) {
	if face == nil || face.Font == nil {
		return Metrics{}, errNoFaceData
	}
	ext, ok := face.Font.FontHExtents()
	if !ok {
		return Metrics{}, errors.New("字面缺少水平度量")
	}
	return Metrics{
		Ascent:     float64(ext.Ascender),
		Descent:    float64(ext.Descender),
		UnitsPerEm: float64(face.Font.Upem()),
	}, nil
}

// scriptOf 取首个非 Common 码点的书写系统，全 Common 时按 Common 处理。
func scriptOf(text []rune) language.Script {
	for _, r := range text {
		if s := language.LookupScript(r); s != language.Common {
			return s
		}
	}
	return language.Common
}

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }
