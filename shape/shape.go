// Package shape 定义把码点串整形为字形步进的引擎契约，并提供基于
// go-text/typesetting HarfBuzz 移植的实现。步进与度量均以字面原生
// 单位（font unit）表达，换算为像素由调用方负责。
package shape

import (
	"github.com/Hazer/text2svg/font"
)

// Glyph 是整形结果中的单个字形，仅保留横向步进。
type Glyph struct {
	XAdvance float64
}

// Metrics 是字面的整形度量（原生单位）。Descent 通常为负值。
type Metrics struct {
	Ascent     float64
	Descent    float64
	UnitsPerEm float64
}

// Engine 是整形引擎契约：给定字面、码点串与特性列表，返回每个字形的
// 横向步进；Metrics 返回字面度量。实现必须是可复现的——相同输入
// 恒产生相同输出，换行器的贪心搜索依赖这一点收敛。
type Engine interface {
	Shape(face *font.Face, text []rune, features []font.Feature) ([]Glyph, error)
	Metrics(face *font.Face) (Metrics, error)
}
