package layout

// BuildOptions 配置布局阶段的折行预算与画布留白。
type BuildOptions struct {
	// MaxWidth 是像素折行预算；<=0 时使用 defaultMaxWidth。
	MaxWidth float64
	// MaxChars >0 时改用字符数折行，忽略 MaxWidth。
	MaxChars int
	// Padding 是画布四周的留白（像素）；<0 时按字号的一半计算。
	Padding float64
	// LineHeight 控制行高；零值时退回 1.2 倍字号。
	LineHeight LineHeightSpec
}
