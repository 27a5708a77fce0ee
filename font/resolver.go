package font

import (
	"log"
	"strings"
)

// styleFromFullName 根据全名中的关键词判断风格。
// 匹配按固定优先级进行，较长的词在前；thin、extrabold、black 与 italic
// 不参与名称匹配，只能经由字重/姿态回退归类——这一不对称继承自既有行为，
// 视为固定契约。
func styleFromFullName(name string) (FontStyle, bool) {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "extralight"):
		return ExtraLight, true
	case strings.Contains(n, "light"):
		return Light, true
	case strings.Contains(n, "medium"):
		return Medium, true
	case strings.Contains(n, "regular"):
		return Regular, true
	case strings.Contains(n, "semibold"):
		return SemiBold, true
	case strings.Contains(n, "bold"):
		return Bold, true
	}
	// 名称无法判断时由调用方用字重近似
	return Regular, false
}

// styleFromWeight 把数值字重按九个标准界标做向下取整式归档：
// 字重 w 落入 [landmark_i, landmark_{i+1}) 即归入第 i 档，
// 大于等于 black 界标（含顶端）归入 Black。
func styleFromWeight(w float64) FontStyle {
	switch {
	case w >= weightThin && w < weightExtraLight:
		return Thin
	case w >= weightExtraLight && w < weightLight:
		return ExtraLight
	case w >= weightLight && w < weightNormal:
		return Light
	case w >= weightNormal && w < weightMedium:
		return Regular
	case w >= weightMedium && w < weightSemiBold:
		return Medium
	case w >= weightSemiBold && w < weightBold:
		return SemiBold
	case w >= weightBold && w < weightExtraBold:
		return Bold
	case w >= weightExtraBold && w < weightBlack:
		return ExtraBold
	}
	return Black
}

// ResolveFaces 把一个家族的全部字面归入风格桶。每个字面恰好归入一个
// FontStyle；两个字面归入同一桶时后处理者静默覆盖先处理者。任何一个
// 字面加载失败都会使整个解析失败（全有或全无）。
func ResolveFaces(handles []FaceHandle, debug bool) (map[FontStyle]*Face, error) {
	faces := make(map[FontStyle]*Face, len(handles))
	for _, h := range handles {
		face, err := h.Load()
		if err != nil {
			return nil, err
		}

		if debug {
			log.Printf("字面全名: %s", face.Name)
			log.Printf("字面属性: posture=%s weight=%g", h.Posture(), h.Weight())
		}

		if style, ok := styleFromFullName(face.Name); ok {
			faces[style] = face
			continue
		}

		switch h.Posture() {
		case PostureNormal:
			faces[styleFromWeight(h.Weight())] = face
		case PostureItalic:
			faces[Italic] = face
		default:
			// oblique 等姿态不受支持：丢弃并提示，不存入桶
			log.Printf("不支持的字面姿态 %s，跳过 %s", h.Posture(), face.Name)
		}
	}
	return faces, nil
}
