package layout

import (
	"strconv"
	"strings"
)

// This file defines unit-safe types and helpers for length and line-height.

// Unit represents the original unit of a length value as specified by the caller.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers like factors
	UnitPX               // CSS reference pixels (96dpi)
	UnitPT               // points
	UnitMM               // millimeters
)

// Conversion constants between px, pt and mm. Pixels follow the CSS
// reference of 96 per inch, points 72 per inch.
const (
	PxToPt = 72.0 / 96.0
	PtToPx = 96.0 / 72.0
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitPX:
		return "px"
	case UnitPT:
		return "pt"
	case UnitMM:
		return "mm"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64
	Unit  Unit
}

func (l Length) IsZero() bool { return l.Value == 0 }

// To converts this length to target unit. Supported targets: UnitPX, UnitPT.
func (l Length) To(target Unit) float64 {
	switch l.Unit {
	case UnitPX:
		if target == UnitPT {
			return l.Value * PxToPt
		}
		return l.Value
	case UnitPT:
		if target == UnitPX || target == UnitNone {
			return l.Value * PtToPx
		}
		return l.Value
	case UnitMM:
		pt := l.Value * MmToPt
		if target == UnitPT {
			return pt
		}
		return pt * PtToPx
	case UnitNone:
		return l.Value
	}
	return l.Value
}

func (l Length) ToPX() float64 { return l.To(UnitPX) }
func (l Length) ToPT() float64 { return l.To(UnitPT) }

// ParseRawLengthStr parses a length string preserving its unit.
// 无单位后缀时按像素处理。
func ParseRawLengthStr(value string) Length {
	v := strings.TrimSpace(strings.ToLower(value))
	if v == "" {
		return Length{Value: 0, Unit: UnitNone}
	}
	unit := UnitPX
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"px", UnitPX}, {"pt", UnitPT}, {"mm", UnitMM}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{Value: 0, Unit: UnitNone}
	}
	return Length{Value: f, Unit: unit}
}

// LineHeightKind distinguishes factor-based vs absolute line-height specification.
type LineHeightKind int

const (
	LineHeightFactor LineHeightKind = iota
	LineHeightAbsolute
)

// LineHeightSpec preserves original caller intent: either a factor (e.g., 1.2x)
// or an absolute length (e.g., 18pt).
type LineHeightSpec struct {
	Kind   LineHeightKind
	Factor float64
	Len    Length
}

// Resolve computes the absolute line height in target unit using the given fontSize.
func (s LineHeightSpec) Resolve(fontSize Length, target Unit) float64 {
	switch s.Kind {
	case LineHeightFactor:
		return fontSize.To(target) * s.Factor
	case LineHeightAbsolute:
		return s.Len.To(target)
	default:
		// 未指定时退回 1.2 倍字号
		return fontSize.To(target) * 1.2
	}
}
