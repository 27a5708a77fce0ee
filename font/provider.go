package font

import (
	"fmt"

	gtfont "github.com/go-text/typesetting/font"
)

// Posture 表示字面的姿态：直立、斜体或其他（如 oblique）。
type Posture int

const (
	PostureNormal Posture = iota
	PostureItalic
	PostureOther
)

func (p Posture) String() string {
	switch p {
	case PostureNormal:
		return "normal"
	case PostureItalic:
		return "italic"
	default:
		return "other"
	}
}

// Face 是加载完成的字面：保留可读全名、原始字节与解析后的
// go-text 字面，供整形引擎与渲染器直接使用。Index 是字面在字节数据
// 中的下标（单字体文件恒为 0，TTC 集合中可能非零）。
type Face struct {
	Name  string
	Data  []byte
	Index int
	Font  *gtfont.Face
}

// FaceHandle 是字体来源提供的未加载字面句柄。
type FaceHandle interface {
	// FullName 返回字面的可读全名（如 "DejaVu Sans Bold"）。
	FullName() string
	// Posture 返回字面的姿态轴取值。
	Posture() Posture
	// Weight 返回数值字重（100–900 区间的习惯值）。
	Weight() float64
	// Load 将句柄物化为可整形的字面。
	Load() (*Face, error)
}

// Provider 抽象字体来源：枚举家族名并把家族名解析为字面句柄集合。
// 核心只在 Config 构造时调用它，不在别处缓存或修改全局状态。
type Provider interface {
	Families() []string
	ResolveFamily(name string) ([]FaceHandle, error)
}

// SelectionError 表示字体来源中不存在请求的家族。
type SelectionError struct {
	Family string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("找不到字体家族 %q", e.Family)
}

// LoadingError 表示某个字面句柄无法物化。
type LoadingError struct {
	Name string
	Err  error
}

func (e *LoadingError) Error() string {
	return fmt.Sprintf("加载字面 %s 失败: %v", e.Name, e.Err)
}

func (e *LoadingError) Unwrap() error { return e.Err }
