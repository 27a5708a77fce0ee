package wrap

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Hazer/text2svg/font"
)

// 像素度量不可用时字符折行的回退预算
const fallbackCharBudget = 50

// SourceError 表示文本来源不可读或不存在。
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: 不存在或不是常规文件", e.Path)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// isASCIIWhitespace 对应 ASCII 空白集合：空格、\t、\n、\r 与换页符。
func isASCIIWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\x0c':
		return true
	}
	return false
}

// SplitLine 在 maxWidth 个 Unicode 标量处拆分一行，优先回退到最近的
// ASCII 空白边界。行本身不超预算时原样返回（仅去掉尾部空白），第二个
// 返回值为空串。前缀中完全没有空白时在预算边界硬切，保证至少消费一个
// 字符。头部去尾部空白，尾部去头部空白。
func SplitLine(line string, maxWidth int) (string, string) {
	runes := []rune(line)
	if len(runes) <= maxWidth {
		return strings.TrimRightFunc(line, unicode.IsSpace), ""
	}

	// 从预算位置向前找最近的 ASCII 空白
	wrapIdx := -1
	for i := maxWidth - 1; i >= 0; i-- {
		if isASCIIWhitespace(runes[i]) {
			wrapIdx = i
			break
		}
	}

	if wrapIdx >= 0 {
		head := strings.TrimRightFunc(string(runes[:wrapIdx]), unicode.IsSpace)
		tail := strings.TrimLeftFunc(string(runes[wrapIdx:]), unicode.IsSpace)
		return head, tail
	}

	// 无空白：在预算边界硬切
	head := string(runes[:maxWidth])
	tail := strings.TrimLeftFunc(string(runes[maxWidth:]), unicode.IsSpace)
	return head, tail
}

// CharWrapper 从文本来源流式产出行，超过标量数预算的行会被拆分。
// 不变式：buffer 非空时总是先于任何新读取被耗尽，因此无需折行时
// 产出与物理行完全一致。
type CharWrapper struct {
	reader   *bufio.Reader
	maxWidth int
	buffer   string // 上一行未消费的剩余部分
}

// NewCharWrapper 构造按字符数折行的迭代器。
func NewCharWrapper(r io.Reader, maxWidth int) *CharWrapper {
	return &CharWrapper{reader: bufio.NewReader(r), maxWidth: maxWidth}
}

// Next 产出下一逻辑行；来源与缓冲都耗尽后第二个返回值为 false。
// 读取错误按流结束处理并输出诊断，已产出的行不受影响。
func (w *CharWrapper) Next() (string, bool) {
	// 缓冲超预算时先拆缓冲
	if utf8.RuneCountInString(w.buffer) > w.maxWidth {
		head, rest := SplitLine(w.buffer, w.maxWidth)
		w.buffer = rest
		return head, true
	}

	// 缓冲未超预算且非空：整体产出
	if w.buffer != "" {
		line := w.buffer
		w.buffer = ""
		return line, true
	}

	line, err := w.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		log.Printf("读取行失败: %v", err)
		return "", false
	}
	if line == "" {
		return "", false // EOF
	}

	trimmed := strings.TrimRight(line, "\r\n")
	if utf8.RuneCountInString(trimmed) > w.maxWidth {
		head, rest := SplitLine(trimmed, w.maxWidth)
		w.buffer = rest
		return head, true
	}
	// 预算内的行不做任何内部或首尾修剪
	return trimmed, true
}

// PixelWrapper 与 CharWrapper 同构，但宽度谓词换成像素度量，
// 拆分策略见 SplitLineByPixelWidth。
type PixelWrapper struct {
	reader   *bufio.Reader
	maxWidth float64
	measurer TextMeasurer
	style    font.FontStyle
	buffer   string
}

// NewPixelWrapper 构造按像素宽度折行的迭代器。
func NewPixelWrapper(r io.Reader, maxWidth float64, m TextMeasurer, style font.FontStyle) *PixelWrapper {
	return &PixelWrapper{
		reader:   bufio.NewReader(r),
		maxWidth: maxWidth,
		measurer: m,
		style:    style,
	}
}

// Next 产出下一逻辑行；语义与 CharWrapper.Next 一致。
// 度量不可用的行不拆分，整体产出。
func (p *PixelWrapper) Next() (string, bool) {
	if width, ok := p.measurer.TextWidth(p.buffer, p.style); ok && width > p.maxWidth {
		head, rest := SplitLineByPixelWidth(p.buffer, p.maxWidth, p.measurer, p.style)
		p.buffer = rest
		return head, true
	}

	if p.buffer != "" {
		line := p.buffer
		p.buffer = ""
		return line, true
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		log.Printf("读取行失败: %v", err)
		return "", false
	}
	if line == "" {
		return "", false
	}

	trimmed := strings.TrimRight(line, "\r\n")
	if width, ok := p.measurer.TextWidth(trimmed, p.style); ok && width > p.maxWidth {
		head, rest := SplitLineByPixelWidth(trimmed, p.maxWidth, p.measurer, p.style)
		p.buffer = rest
		return head, true
	}
	return trimmed, true
}

// SplitLineByPixelWidth 按像素预算拆分一行。与 SplitLine 的区别在于
// 字形步进不等宽，需要逐前缀度量：
//  1. 整行在预算内直接返回；度量不可用时回退到 50 字符的字符拆分。
//  2. 递增扫描前缀长度，记录仍在预算内的最长前缀 best，以及其中最后
//     一个紧跟 ASCII 空白的位置 wrap；一旦某前缀超出预算即停止。
//  3. wrap 存在且与 best 的距离不超过 best 的 25% 时采用 wrap，否则从
//     best 向前找最近空白，找不到（或落在位置 0）时用 best 硬切。
//  4. 拆分点为 0 时强制为 1，保证至少消费一个字符以终止。
func SplitLineByPixelWidth(line string, maxWidth float64, m TextMeasurer, style font.FontStyle) (string, string) {
	if width, ok := m.TextWidth(line, style); ok {
		if width <= maxWidth {
			return strings.TrimRightFunc(line, unicode.IsSpace), ""
		}
	} else {
		return SplitLine(line, fallbackCharBudget)
	}

	chars := []rune(line)
	best := 0
	wrapSplit := -1

	for i := 1; i <= len(chars); i++ {
		width, ok := m.TextWidth(string(chars[:i]), style)
		if !ok {
			continue
		}
		if width > maxWidth {
			break
		}
		best = i
		if i < len(chars) && isASCIIWhitespace(chars[i-1]) {
			wrapSplit = i - 1
		}
	}

	splitPoint := best
	if wrapSplit >= 0 {
		// 空白边界离最长前缀太远时宁可硬切（25% 阈值为既有的经验常数）
		if best-wrapSplit > best/4 {
			splitPoint = best
		} else {
			splitPoint = wrapSplit
		}
	} else {
		search := best
		for search > 0 {
			search--
			if isASCIIWhitespace(chars[search]) {
				break
			}
		}
		if search > 0 && isASCIIWhitespace(chars[search]) {
			splitPoint = search
		}
	}

	if splitPoint == 0 {
		splitPoint = 1
		if len(chars) < 1 {
			splitPoint = len(chars)
		}
	}

	head := strings.TrimRightFunc(string(chars[:splitPoint]), unicode.IsSpace)
	tail := strings.TrimLeftFunc(string(chars[splitPoint:]), unicode.IsSpace)
	return head, tail
}

// TextByPixelWidth 把单个字符串按像素预算折成多行：反复应用
// SplitLineByPixelWidth 直到剩余为空；某一步产出空头部时中止以避免
// 死循环。空输入返回单个空行。
func TextByPixelWidth(text string, maxWidth float64, m TextMeasurer, style font.FontStyle) []string {
	if text == "" {
		return []string{""}
	}

	var lines []string
	remaining := text
	for remaining != "" {
		if width, ok := m.TextWidth(remaining, style); ok && width <= maxWidth {
			lines = append(lines, remaining)
			break
		}
		head, rest := SplitLineByPixelWidth(remaining, maxWidth, m, style)
		if head == "" {
			break
		}
		lines = append(lines, head)
		remaining = rest
	}
	return lines
}

// ByCharacters 消费整个来源并收集按字符数折行后的全部行。
func ByCharacters(r io.Reader, maxChars int) []string {
	w := NewCharWrapper(r, maxChars)
	var lines []string
	for {
		line, ok := w.Next()
		if !ok {
			return lines
		}
		lines = append(lines, line)
	}
}

// ByPixels 消费整个来源并收集按像素宽度折行后的全部行。
func ByPixels(r io.Reader, maxWidth float64, m TextMeasurer, style font.FontStyle) []string {
	w := NewPixelWrapper(r, maxWidth, m, style)
	var lines []string
	for {
		line, ok := w.Next()
		if !ok {
			return lines
		}
		lines = append(lines, line)
	}
}

// FileByLines 逐行读取文件，不做任何宽度约束。
func FileByLines(path string) ([]string, error) {
	f, err := openRegular(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	var lines []string
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			lines = append(lines, strings.TrimRight(line, "\r\n"))
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, &SourceError{Path: path, Err: err}
		}
	}
}

// FileByLinesWidth 逐行读取文件，超过 maxChars 个标量的行按字符数拆分。
func FileByLinesWidth(path string, maxChars int) ([]string, error) {
	f, err := openRegular(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ByCharacters(f, maxChars), nil
}

// FileByLinesPixelWidth 逐行读取文件，用真实字体度量按像素宽度拆分。
func FileByLinesPixelWidth(path string, maxWidth float64, m TextMeasurer, style font.FontStyle) ([]string, error) {
	f, err := openRegular(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ByPixels(f, maxWidth, m, style), nil
}

func openRegular(path string) (*os.File, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, &SourceError{Path: path}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceError{Path: path, Err: err}
	}
	return f, nil
}
