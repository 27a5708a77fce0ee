package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Hazer/text2svg/dsl"
	"github.com/Hazer/text2svg/font"
	"github.com/Hazer/text2svg/layout"
	"github.com/Hazer/text2svg/renderer"
	svgrenderer "github.com/Hazer/text2svg/renderer/svg"
	"github.com/Hazer/text2svg/shape"
	"github.com/Hazer/text2svg/wrap"
)

func main() {
	text := flag.String("text", "", "要渲染的文本（与 -in / -doc 三选一）")
	input := flag.String("in", "", "纯文本输入文件路径，每行一个段落")
	doc := flag.String("doc", "", "样式文档路径（可声明字体、特性与段落）")
	output := flag.String("out", "output.svg", "SVG 输出路径")
	family := flag.String("font", "DejaVu Sans", "字体家族名")
	size := flag.Int("size", 32, "字号（像素）")
	styleName := flag.String("style", "regular", "字体风格，如 regular/bold/italic")
	features := flag.String("features", "", `OpenType 特性描述串，如 "liga=0,cv01=2"`)
	letterSpace := flag.Float64("letter-space", 0, "字距（字号的倍数）")
	textColor := flag.String("color", "#000000", "文本颜色")
	fillColor := flag.String("fill-color", "", "背景颜色，留空则透明")
	maxWidth := flag.String("max-width", "", "折行预算，可带 px/pt/mm 单位，留空或为零使用默认值")
	maxChars := flag.Int("max-chars", 0, "字符数折行预算，>0 时优先于像素折行")
	debugPath := flag.String("debug", "", "布局调试 JSON 输出路径")
	listFonts := flag.Bool("list-fonts", false, "列出系统字体家族后退出")
	verbose := flag.Bool("v", false, "输出字体选择与特性诊断日志")
	flag.Parse()

	provider := font.NewSystemProvider()
	if *listFonts {
		for _, name := range provider.Families() {
			fmt.Println(name)
		}
		return
	}

	opts := cliOptions{
		text:        *text,
		input:       *input,
		doc:         *doc,
		output:      *output,
		family:      *family,
		size:        *size,
		styleName:   *styleName,
		features:    *features,
		letterSpace: *letterSpace,
		color:       *textColor,
		fillColor:   *fillColor,
		maxWidth:    *maxWidth,
		maxChars:    *maxChars,
		debugPath:   *debugPath,
		verbose:     *verbose,
	}
	if err := run(provider, opts); err != nil {
		log.Fatalf("生成 SVG 失败: %v", err)
	}
	fmt.Printf("已生成 SVG：%s\n", opts.output)
}

type cliOptions struct {
	text        string
	input       string
	doc         string
	output      string
	family      string
	size        int
	styleName   string
	features    string
	letterSpace float64
	color       string
	fillColor   string
	maxWidth    string
	maxChars    int
	debugPath   string
	verbose     bool
}

// run 串联字体解析、折行布局与渲染。
func run(provider font.Provider, opts cliOptions) error {
	paragraphs, err := collectParagraphs(&opts)
	if err != nil {
		return err
	}
	if len(paragraphs) == 0 {
		return fmt.Errorf("没有可渲染的文本，请使用 -text、-in 或 -doc 提供输入")
	}

	style, err := font.ParseStyle(opts.styleName)
	if err != nil {
		return err
	}

	cfg, err := font.NewConfig(provider, opts.family, opts.size, opts.fillColor, opts.color, opts.verbose)
	if err != nil {
		return err
	}
	if opts.features != "" {
		if err := cfg.ApplyFeatureSpec(opts.features); err != nil {
			return err
		}
	}
	cfg.SetLetterSpace(opts.letterSpace)

	// 命令行 -style 作用于没有显式风格的段落
	for i := range paragraphs {
		if paragraphs[i].explicit {
			continue
		}
		paragraphs[i].para.Style = style
	}

	engine := shape.NewHarfBuzz()
	measurer := wrap.NewMeasurer(cfg, engine)

	maxWidth, err := parseBudget(opts.maxWidth)
	if err != nil {
		return err
	}

	input := make([]layout.Paragraph, 0, len(paragraphs))
	for _, p := range paragraphs {
		input = append(input, p.para)
	}
	result, err := layout.Build(input, cfg, measurer, layout.BuildOptions{
		MaxWidth: maxWidth,
		MaxChars: opts.maxChars,
		Padding:  -1,
	})
	if err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}

	if opts.debugPath != "" {
		if err := writeDebug(result, opts.debugPath); err != nil {
			return err
		}
	}

	var r renderer.Renderer = svgrenderer.NewRenderer(cfg)
	svgBytes, err := r.Render(result)
	if err != nil {
		return fmt.Errorf("渲染 SVG 失败: %w", err)
	}

	if dir := filepath.Dir(opts.output); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	if err := os.WriteFile(opts.output, svgBytes, 0o644); err != nil {
		return fmt.Errorf("写入 SVG 文件失败: %w", err)
	}
	return nil
}

// cliParagraph 记录段落及其风格是否由文档显式指定。
type cliParagraph struct {
	para     layout.Paragraph
	explicit bool
}

// collectParagraphs 按 -doc > -text > -in 的优先级收集输入段落。
// 文档输入同时把其中的字体指令回填到命令行选项上。
func collectParagraphs(opts *cliOptions) ([]cliParagraph, error) {
	switch {
	case opts.doc != "":
		file, err := os.Open(opts.doc)
		if err != nil {
			return nil, fmt.Errorf("无法打开样式文档 %s: %w", opts.doc, err)
		}
		defer file.Close()

		parsed, err := dsl.Parse(file)
		if err != nil {
			return nil, fmt.Errorf("解析样式文档失败: %w", err)
		}
		script, err := dsl.Evaluate(parsed)
		if err != nil {
			return nil, err
		}
		applyDirective(opts, script.Font)

		out := make([]cliParagraph, 0, len(script.Paragraphs))
		for _, p := range script.Paragraphs {
			out = append(out, cliParagraph{
				para:     layout.Paragraph{Text: p.Text, Style: p.Style},
				explicit: true,
			})
		}
		return out, nil
	case opts.text != "":
		var out []cliParagraph
		for _, line := range strings.Split(opts.text, "\n") {
			out = append(out, cliParagraph{para: layout.Paragraph{Text: line}})
		}
		return out, nil
	case opts.input != "":
		lines, err := wrap.FileByLines(opts.input)
		if err != nil {
			return nil, err
		}
		out := make([]cliParagraph, 0, len(lines))
		for _, line := range lines {
			out = append(out, cliParagraph{para: layout.Paragraph{Text: line}})
		}
		return out, nil
	}
	return nil, nil
}

// parseBudget 解析 -max-width 的长度串并换算为像素。
// 空串与零长度返回 0，由布局层改用默认预算。
func parseBudget(value string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	length := layout.ParseRawLengthStr(value)
	if length.Unit == layout.UnitNone {
		return 0, fmt.Errorf("折行预算 %q 无效，支持 px/pt/mm 单位", value)
	}
	if length.IsZero() {
		return 0, nil
	}
	if length.Value < 0 {
		return 0, fmt.Errorf("折行预算 %q 无效，必须为正数", value)
	}
	return length.ToPX(), nil
}

// applyDirective 用文档里的字体指令覆盖命令行默认值。
func applyDirective(opts *cliOptions, d dsl.Directive) {
	if d.Family != "" {
		opts.family = d.Family
	}
	if d.Size > 0 {
		opts.size = d.Size
	}
	if d.Features != "" {
		opts.features = d.Features
	}
	if d.LetterSpace != 0 {
		opts.letterSpace = d.LetterSpace
	}
	if d.Color != "" {
		opts.color = d.Color
	}
	if d.FillColor != "" {
		opts.fillColor = d.FillColor
	}
}

func writeDebug(result *layout.Result, debugPath string) error {
	if dir := filepath.Dir(debugPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建调试目录失败: %w", err)
		}
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
