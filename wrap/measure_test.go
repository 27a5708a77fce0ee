package wrap

import (
	"errors"
	"math"
	"testing"

	"github.com/Hazer/text2svg/font"
	"github.com/Hazer/text2svg/shape"
)

// stubHandle/stubProvider 提供不依赖系统字体的 Config 构造路径。
type stubHandle struct {
	name   string
	weight float64
}

func (h stubHandle) FullName() string      { return h.name }
func (h stubHandle) Posture() font.Posture { return font.PostureNormal }
func (h stubHandle) Weight() float64       { return h.weight }
func (h stubHandle) Load() (*font.Face, error) {
	return &font.Face{Name: h.name}, nil
}

type stubProvider struct {
	handles []font.FaceHandle
}

func (p stubProvider) Families() []string { return []string{"Stub"} }
func (p stubProvider) ResolveFamily(string) ([]font.FaceHandle, error) {
	return p.handles, nil
}

// fixedEngine 每个字符产出固定步进的字形，并返回固定的字面度量。
type fixedEngine struct {
	advance  float64
	metrics  shape.Metrics
	shapeErr error
}

func (e *fixedEngine) Shape(_ *font.Face, text []rune, _ []font.Feature) ([]shape.Glyph, error) {
	if e.shapeErr != nil {
		return nil, e.shapeErr
	}
	glyphs := make([]shape.Glyph, len(text))
	for i := range glyphs {
		glyphs[i].XAdvance = e.advance
	}
	return glyphs, nil
}

func (e *fixedEngine) Metrics(*font.Face) (shape.Metrics, error) {
	if e.shapeErr != nil {
		return shape.Metrics{}, e.shapeErr
	}
	return e.metrics, nil
}

func stubConfig(t *testing.T, size int) *font.Config {
	t.Helper()
	cfg, err := font.NewConfig(stubProvider{handles: []font.FaceHandle{
		stubHandle{name: "Stub Regular", weight: 400},
	}}, "Stub", size, "", "", false)
	if err != nil {
		t.Fatalf("构造 Config 失败: %v", err)
	}
	return cfg
}

// TestMeasurerTextWidth 验证宽度公式：步进和乘 size/(ascent-descent) 缩放。
func TestMeasurerTextWidth(t *testing.T) {
	// 步进 10、跨度 100、字号 10 → 每字符恰好 1 像素
	engine := &fixedEngine{
		advance: 10,
		metrics: shape.Metrics{Ascent: 80, Descent: -20, UnitsPerEm: 100},
	}
	m := NewMeasurer(stubConfig(t, 10), engine)

	width, ok := m.TextWidth("abcd", font.Regular)
	if !ok || math.Abs(width-4) > 1e-9 {
		t.Fatalf("期望宽度 4，实际 %g ok=%v", width, ok)
	}
}

// TestMeasurerEmptyText 验证空文本宽度为 0 且可度量。
func TestMeasurerEmptyText(t *testing.T) {
	m := NewMeasurer(stubConfig(t, 10), &fixedEngine{})
	width, ok := m.TextWidth("", font.Regular)
	if !ok || width != 0 {
		t.Fatalf("空文本期望 (0, true)，实际 (%g, %v)", width, ok)
	}
}

// TestMeasurerLetterSpace 验证字距只作用于字符之间。
func TestMeasurerLetterSpace(t *testing.T) {
	engine := &fixedEngine{
		advance: 10,
		metrics: shape.Metrics{Ascent: 80, Descent: -20, UnitsPerEm: 100},
	}
	cfg := stubConfig(t, 10).SetLetterSpace(0.5)
	m := NewMeasurer(cfg, engine)

	// 4 字符：4 + 0.5*0.1*100*3 = 19
	width, ok := m.TextWidth("abcd", font.Regular)
	if !ok || math.Abs(width-19) > 1e-9 {
		t.Fatalf("期望宽度 19，实际 %g", width)
	}

	// 单字符不追加字距
	width, ok = m.TextWidth("a", font.Regular)
	if !ok || math.Abs(width-1) > 1e-9 {
		t.Fatalf("单字符期望宽度 1，实际 %g", width)
	}
}

// TestMeasurerStyleFallback 验证请求风格缺失时回退到常规字面。
func TestMeasurerStyleFallback(t *testing.T) {
	engine := &fixedEngine{
		advance: 10,
		metrics: shape.Metrics{Ascent: 80, Descent: -20, UnitsPerEm: 100},
	}
	m := NewMeasurer(stubConfig(t, 10), engine)
	if _, ok := m.TextWidth("abc", font.Bold); !ok {
		t.Fatal("缺失风格应回退到常规字面")
	}
}

// TestMeasurerNoFaces 验证没有任何字面时不可度量。
func TestMeasurerNoFaces(t *testing.T) {
	cfg, err := font.NewConfig(stubProvider{}, "Stub", 10, "", "", false)
	if err != nil {
		t.Fatalf("构造 Config 失败: %v", err)
	}
	m := NewMeasurer(cfg, &fixedEngine{})
	if _, ok := m.TextWidth("abc", font.Regular); ok {
		t.Fatal("没有字面时应返回 false")
	}
}

// TestMeasurerShapeFailure 验证整形失败时不可度量。
func TestMeasurerShapeFailure(t *testing.T) {
	m := NewMeasurer(stubConfig(t, 10), &fixedEngine{shapeErr: errors.New("boom")})
	if _, ok := m.TextWidth("abc", font.Regular); ok {
		t.Fatal("整形失败时应返回 false")
	}
}

// TestMeasurerDegenerateSpan 验证零跨度被钳制而不是除零。
func TestMeasurerDegenerateSpan(t *testing.T) {
	engine := &fixedEngine{
		advance: 10,
		metrics: shape.Metrics{Ascent: 0, Descent: 0, UnitsPerEm: 100},
	}
	m := NewMeasurer(stubConfig(t, 10), engine)
	width, ok := m.TextWidth("ab", font.Regular)
	if !ok || math.IsInf(width, 0) || math.IsNaN(width) {
		t.Fatalf("退化跨度应产出有限宽度，实际 %g", width)
	}
	// 跨度钳制为 1：每字符 10*10 = 100
	if math.Abs(width-200) > 1e-9 {
		t.Fatalf("期望宽度 200，实际 %g", width)
	}
}
