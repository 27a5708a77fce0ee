package dsl

import (
	"fmt"
	"strconv"

	"github.com/Hazer/text2svg/font"
)

// Directive 是求值后的字体状态。整个文档共用一个家族与字号：重复的
// font 指令覆盖先前设置，其 style 属性只对其后的段落生效。
type Directive struct {
	Family      string
	Size        int
	Style       font.FontStyle
	Features    string
	LetterSpace float64
	Color       string
	FillColor   string
}

// Paragraph 是一个待渲染的段落及其出现时刻的风格。
type Paragraph struct {
	Text  string
	Style font.FontStyle
}

// Script 是文档求值的结果。
type Script struct {
	Font       Directive
	Paragraphs []Paragraph
}

// Evaluate 顺序求值文档语句，把 font 指令折叠进字体状态并收集段落。
func Evaluate(doc *Document) (*Script, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}

	script := &Script{Font: Directive{Style: font.Regular}}
	for _, stmt := range doc.Statements {
		switch {
		case stmt.Font != nil:
			if err := applyFontCommand(&script.Font, stmt.Font); err != nil {
				return nil, err
			}
		case stmt.Text != nil:
			script.Paragraphs = append(script.Paragraphs, Paragraph{
				Text:  string(stmt.Text.Value),
				Style: script.Font.Style,
			})
		}
	}
	return script, nil
}

func applyFontCommand(d *Directive, cmd *FontCommand) error {
	d.Family = string(cmd.Family)
	if cmd.Size != nil {
		size, err := strconv.Atoi(*cmd.Size)
		if err != nil || size <= 0 {
			return fmt.Errorf("%s: 字号 %q 无效，必须是正整数", cmd.Pos, *cmd.Size)
		}
		d.Size = size
	}
	if cmd.Block == nil {
		return nil
	}
	for _, entry := range cmd.Block.Entries {
		value := entry.Value.Text()
		switch entry.Key {
		case "style":
			style, err := font.ParseStyle(value)
			if err != nil {
				return fmt.Errorf("%s: %v", cmd.Pos, err)
			}
			d.Style = style
		case "features":
			d.Features = value
		case "letter-space":
			space, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("%s: 字距 %q 无效", cmd.Pos, value)
			}
			d.LetterSpace = space
		case "color":
			d.Color = value
		case "fill-color":
			d.FillColor = value
		default:
			return fmt.Errorf("%s: 未知的字体属性 %q", cmd.Pos, entry.Key)
		}
	}
	return nil
}
