package font

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Feature 表示一个启用中的 OpenType 特性：4 字符标签与正整数取值。
type Feature struct {
	Tag   string
	Value uint32
}

// FeatureSpecError 表示特性描述串中的一个非法 token。
type FeatureSpecError struct {
	Tag string
	msg string
}

func (e *FeatureSpecError) Error() string { return e.msg }

// FeatureSet 维护 tag→value 的覆盖集合。不变式：集合中所有取值均大于 0，
// 取值为 0 的项表示显式禁用，会被移除而不是存储。
type FeatureSet struct {
	values map[string]uint32
	list   []Feature // 派生的有序列表，每次变更后重建
}

// NewFeatureSet 返回一个空的特性集合。
func NewFeatureSet() *FeatureSet {
	return &FeatureSet{values: map[string]uint32{}}
}

// DefaultFeatureSet 返回横排文本的默认特性集合：
// kern、liga、calt、clig 各取值 1。
func DefaultFeatureSet() *FeatureSet {
	fs := NewFeatureSet()
	for _, tag := range []string{"kern", "liga", "calt", "clig"} {
		fs.values[tag] = 1
	}
	fs.rebuild()
	return fs
}

// Has 报告标签是否在集合中启用。
func (fs *FeatureSet) Has(tag string) bool {
	_, ok := fs.values[tag]
	return ok
}

// Add 以默认取值 1 启用标签。
func (fs *FeatureSet) Add(tag string) {
	fs.values[tag] = 1
	fs.rebuild()
}

// Remove 移除标签（若存在）。
func (fs *FeatureSet) Remove(tag string) {
	if fs.Has(tag) {
		delete(fs.values, tag)
		fs.rebuild()
	}
}

// ApplySpec 解析形如 "cv01=1,calt=0,liga" 的特性描述串并叠加到集合上。
// 取值为 0 的项会被移除（显式禁用），大于 0 的项插入或覆盖；未提及的
// 标签保持不变，因此这是一次稀疏覆盖而非重置。遇到非法 token 时立即
// 返回错误，该 token 之前已应用的 token 保持应用状态（允许部分应用）。
func (fs *FeatureSet) ApplySpec(spec string) error {
	// 部分应用也要反映到派生列表：出错返回前同样重建
	defer fs.rebuild()

	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		tag := token
		value := uint32(1)
		if eq := strings.Index(token, "="); eq >= 0 {
			tag = strings.TrimSpace(token[:eq])
			raw := strings.TrimSpace(token[eq+1:])
			parsed, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				return &FeatureSpecError{
					Tag: tag,
					msg: fmt.Sprintf("特性 '%s' 的取值 '%s' 无效：必须是非负整数", tag, raw),
				}
			}
			value = uint32(parsed)
		}

		// OpenType 特性标签定长 4 字符
		if len(tag) != 4 {
			return &FeatureSpecError{
				Tag: tag,
				msg: fmt.Sprintf("特性标签 '%s' 无效：标签长度必须恰好为 4 个字符", tag),
			}
		}

		if value == 0 {
			delete(fs.values, tag)
		} else {
			fs.values[tag] = value
		}
	}
	return nil
}

// Summary 返回当前启用特性的摘要：空集合为 "none"，
// 否则为逗号连接的 tag=value 列表（按标签排序）。
func (fs *FeatureSet) Summary() string {
	if len(fs.list) == 0 {
		return "none"
	}
	parts := make([]string, len(fs.list))
	for i, f := range fs.list {
		parts[i] = fmt.Sprintf("%s=%d", f.Tag, f.Value)
	}
	return strings.Join(parts, ",")
}

// List 返回派生的有序特性列表，供整形引擎直接使用。
// 调用方不得修改返回的切片。
func (fs *FeatureSet) List() []Feature {
	return fs.list
}

func (fs *FeatureSet) rebuild() {
	fs.list = fs.list[:0]
	for tag, value := range fs.values {
		fs.list = append(fs.list, Feature{Tag: tag, Value: value})
	}
	sort.Slice(fs.list, func(i, j int) bool { return fs.list[i].Tag < fs.list[j].Tag })
}
