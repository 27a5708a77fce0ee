// Package dsl 解析 text2svg 的样式文本文档：font 指令设定家族、字号与
// 渲染属性，裸字符串语句是按当前状态渲染的段落。
package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{8})`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[:;,]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment"),
	)
)

// Document 是一个样式文本文档的根 AST 节点。
type Document struct {
	Pos        lexer.Position `parser:"" json:"-"`
	Statements []*Statement   `parser:"Newline* ( @@ ( ';' | Newline )* )*"`
}

// Statement 是文档中的一条语句：font 指令或段落文本。
type Statement struct {
	Font *FontCommand `parser:"  @@"`
	Text *TextLiteral `parser:"| @@"`
}

// FontCommand 设定其后段落使用的字体状态。
type FontCommand struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Family StringLiteral  `parser:"'font' @String"`
	Size   *string        `parser:"@Number?"`
	Block  *Block         `parser:"( Newline* @@ )?"`
}

// Block 是 font 指令的属性块。
type Block struct {
	Entries []*Assignment `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Assignment 使用冒号语法（key: value）。
type Assignment struct {
	Key   string `parser:"@Ident"`
	Value *Value `parser:"':' Newline* @@"`
}

// Value 表示属性取值。
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	Ident  *string        `parser:"| @Ident"`
}

// Text 返回取值的字符串形式，供求值阶段统一处理。
func (v *Value) Text() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return *v.Number
	case v.Color != nil:
		return *v.Color
	case v.Ident != nil:
		return *v.Ident
	}
	return ""
}

// TextLiteral 封装裸字符串语句（一个段落）。
type TextLiteral struct {
	Value StringLiteral `parser:"@String"`
}

// StringLiteral 在捕获时按 Go 字符串语法反转义。
type StringLiteral string

// Capture 实现 participle.Capture。
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("字符串字面量捕获缺少取值")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse 从 io.Reader 解析文档。
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString 从字符串解析文档。
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}
