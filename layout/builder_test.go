package layout

import (
	"math"
	"testing"
	"unicode/utf8"

	"github.com/Hazer/text2svg/font"
)

type stubHandle struct{ name string }

func (h stubHandle) FullName() string      { return h.name }
func (h stubHandle) Posture() font.Posture { return font.PostureNormal }
func (h stubHandle) Weight() float64       { return 400 }
func (h stubHandle) Load() (*font.Face, error) {
	return &font.Face{Name: h.name}, nil
}

type stubProvider struct{}

func (stubProvider) Families() []string { return []string{"Stub"} }
func (stubProvider) ResolveFamily(string) ([]font.FaceHandle, error) {
	return []font.FaceHandle{stubHandle{name: "Stub Regular"}}, nil
}

// runeMeasurer 按标量数度量，每个标量 1 像素。
type runeMeasurer struct{}

func (runeMeasurer) TextWidth(text string, _ font.FontStyle) (float64, bool) {
	return float64(utf8.RuneCountInString(text)), true
}

func stubConfig(t *testing.T, size int) *font.Config {
	t.Helper()
	cfg, err := font.NewConfig(stubProvider{}, "Stub", size, "", "", false)
	if err != nil {
		t.Fatalf("构造 Config 失败: %v", err)
	}
	return cfg
}

// TestBuildCharWrap 验证字符折行路径下的行拆分与画布尺寸。
func TestBuildCharWrap(t *testing.T) {
	res, err := Build([]Paragraph{{Text: "hello world"}}, stubConfig(t, 10), runeMeasurer{}, BuildOptions{
		MaxChars: 5,
		Padding:  2,
	})
	if err != nil {
		t.Fatalf("布局失败: %v", err)
	}
	if len(res.Boxes) != 1 {
		t.Fatalf("文本块数期望 1，实际 %d", len(res.Boxes))
	}

	box := res.Boxes[0]
	if len(box.Lines) != 2 || box.Lines[0].Content != "hello" || box.Lines[1].Content != "world" {
		t.Fatalf("折行结果不符: %+v", box.Lines)
	}
	if box.X != 2 || box.Y != 2 {
		t.Fatalf("文本块坐标不符: (%g, %g)", box.X, box.Y)
	}
	if math.Abs(box.LineHeight-12) > 1e-9 {
		t.Fatalf("默认行高期望 12，实际 %g", box.LineHeight)
	}

	// 宽 5+2*2，高 2+2*12+2
	if math.Abs(res.Width-9) > 1e-9 || math.Abs(res.Height-28) > 1e-9 {
		t.Fatalf("画布尺寸不符: %g x %g", res.Width, res.Height)
	}
}

// TestBuildPixelWrap 验证像素折行路径。
func TestBuildPixelWrap(t *testing.T) {
	res, err := Build([]Paragraph{{Text: "abcdefg"}}, stubConfig(t, 10), runeMeasurer{}, BuildOptions{
		MaxWidth: 5,
		Padding:  0,
	})
	if err != nil {
		t.Fatalf("布局失败: %v", err)
	}
	box := res.Boxes[0]
	if len(box.Lines) != 2 || box.Lines[0].Content != "abcde" || box.Lines[1].Content != "fg" {
		t.Fatalf("折行结果不符: %+v", box.Lines)
	}
	if math.Abs(box.Lines[0].Width-5) > 1e-9 || math.Abs(box.Width-5) > 1e-9 {
		t.Fatalf("行宽不符: %+v", box.Lines)
	}
}

// TestBuildParagraphSpacing 验证段落之间追加半行高的间距。
func TestBuildParagraphSpacing(t *testing.T) {
	res, err := Build([]Paragraph{
		{Text: "one"},
		{Text: "two"},
	}, stubConfig(t, 10), runeMeasurer{}, BuildOptions{MaxWidth: 100, Padding: 0})
	if err != nil {
		t.Fatalf("布局失败: %v", err)
	}
	if len(res.Boxes) != 2 {
		t.Fatalf("文本块数期望 2，实际 %d", len(res.Boxes))
	}
	// 第二块起点 = 第一块一行 12 + 间距 6
	if math.Abs(res.Boxes[1].Y-18) > 1e-9 {
		t.Fatalf("第二块 Y 期望 18，实际 %g", res.Boxes[1].Y)
	}
}

// TestBuildHardNewline 验证段落内换行符按硬换行处理。
func TestBuildHardNewline(t *testing.T) {
	res, err := Build([]Paragraph{{Text: "a\nb"}}, stubConfig(t, 10), runeMeasurer{}, BuildOptions{MaxWidth: 100})
	if err != nil {
		t.Fatalf("布局失败: %v", err)
	}
	box := res.Boxes[0]
	if len(box.Lines) != 2 || box.Lines[0].Content != "a" || box.Lines[1].Content != "b" {
		t.Fatalf("硬换行结果不符: %+v", box.Lines)
	}
}

// TestBuildEmptyParagraph 验证空段落产出单个空行而不是消失。
func TestBuildEmptyParagraph(t *testing.T) {
	res, err := Build([]Paragraph{{Text: ""}}, stubConfig(t, 10), runeMeasurer{}, BuildOptions{MaxWidth: 100})
	if err != nil {
		t.Fatalf("布局失败: %v", err)
	}
	if len(res.Boxes) != 1 || len(res.Boxes[0].Lines) != 1 {
		t.Fatalf("空段落应产出单个空行: %+v", res.Boxes)
	}
}

// TestBuildStylePropagation 验证段落风格进入文本块与折行度量。
func TestBuildStylePropagation(t *testing.T) {
	res, err := Build([]Paragraph{{Text: "bold", Style: font.Bold}}, stubConfig(t, 10), runeMeasurer{}, BuildOptions{MaxWidth: 100})
	if err != nil {
		t.Fatalf("布局失败: %v", err)
	}
	if res.Boxes[0].Style != font.Bold {
		t.Fatalf("风格不符: %v", res.Boxes[0].Style)
	}
}

// TestBuildMissingDependencies 验证缺少配置或度量器时报错。
func TestBuildMissingDependencies(t *testing.T) {
	if _, err := Build(nil, nil, runeMeasurer{}, BuildOptions{}); err == nil {
		t.Fatal("缺少 Config 应报错")
	}
	if _, err := Build(nil, stubConfig(t, 10), nil, BuildOptions{}); err == nil {
		t.Fatal("缺少度量器应报错")
	}
}

// TestBuildLineHeightSpec 验证显式行高设定覆盖默认倍数。
func TestBuildLineHeightSpec(t *testing.T) {
	res, err := Build([]Paragraph{{Text: "x"}}, stubConfig(t, 10), runeMeasurer{}, BuildOptions{
		MaxWidth:   100,
		LineHeight: LineHeightSpec{Kind: LineHeightFactor, Factor: 2},
	})
	if err != nil {
		t.Fatalf("布局失败: %v", err)
	}
	if math.Abs(res.Boxes[0].LineHeight-20) > 1e-9 {
		t.Fatalf("行高期望 20，实际 %g", res.Boxes[0].LineHeight)
	}
}
