package font

import (
	"fmt"
	"strings"
)

// FontStyle 是字体风格的封闭枚举：九个字重档位加上正交的斜体。
// 一个字面只会被归入斜体或某个字重档位，不会同时属于两者。
type FontStyle int

const (
	// 字重档位，对应 CSS 字重 100–900。
	Thin FontStyle = iota
	ExtraLight
	Light
	Regular
	Medium
	SemiBold
	Bold
	ExtraBold
	Black
	// 姿态档位，与字重互斥。
	Italic
)

// 标准字重界标（CSS / OS2 usWeightClass 习惯值）。
const (
	weightThin       = 100.0
	weightExtraLight = 200.0
	weightLight      = 300.0
	weightNormal     = 400.0
	weightMedium     = 500.0
	weightSemiBold   = 600.0
	weightBold       = 700.0
	weightExtraBold  = 800.0
	weightBlack      = 900.0
)

// String 返回风格的稳定名称，用于日志与 CLI 输出。
func (s FontStyle) String() string {
	switch s {
	case Thin:
		return "thin"
	case ExtraLight:
		return "extra_light"
	case Light:
		return "light"
	case Regular:
		return "regular"
	case Medium:
		return "medium"
	case SemiBold:
		return "semi_bold"
	case Bold:
		return "bold"
	case ExtraBold:
		return "extra_bold"
	case Black:
		return "black"
	case Italic:
		return "italic"
	default:
		return fmt.Sprintf("FontStyle(%d)", int(s))
	}
}

// ParseStyle 解析 CLI/DSL 中的风格名称，接受紧凑形式（extralight）
// 与下划线形式（extra_light），大小写不敏感。
func ParseStyle(name string) (FontStyle, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "") {
	case "thin":
		return Thin, nil
	case "extralight":
		return ExtraLight, nil
	case "light":
		return Light, nil
	case "regular", "":
		return Regular, nil
	case "medium":
		return Medium, nil
	case "semibold":
		return SemiBold, nil
	case "bold":
		return Bold, nil
	case "extrabold":
		return ExtraBold, nil
	case "black":
		return Black, nil
	case "italic":
		return Italic, nil
	}
	return Regular, fmt.Errorf("未知的字体风格 %q", name)
}
