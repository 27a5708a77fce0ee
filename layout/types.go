package layout

import "github.com/Hazer/text2svg/font"

// 该文件定义布局结果的数据结构，供布局计算、渲染与调试 JSON 共用。
// 所有坐标与长度均以像素为单位。

// Result 保存布局后的画布尺寸与文本块。
type Result struct {
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Boxes  []TextBox `json:"boxes"`
}

// TextBox 表示一个已经排好坐标的段落：若干行加上统一的字号与风格。
type TextBox struct {
	Lines      []TextLine     `json:"lines"`
	X          float64        `json:"x"`
	Y          float64        `json:"y"`
	Width      float64        `json:"width"`
	FontSize   float64        `json:"fontSize"`
	LineHeight float64        `json:"lineHeight"`
	Style      font.FontStyle `json:"style"`
}

// TextLine 是折行后的单行文本及其度量宽度。
type TextLine struct {
	Content string  `json:"content"`
	Width   float64 `json:"width"`
}

// Paragraph 是布局的输入单元：一段文本与它要使用的字体风格。
type Paragraph struct {
	Text  string
	Style font.FontStyle
}
