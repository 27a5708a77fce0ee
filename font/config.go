package font

import (
	"log"
)

// Config 聚合一次渲染会话所需的全部字体状态：按风格归桶的字面集合、
// OpenType 特性集合与渲染参数。字面集合在构造后不可变，特性集合与
// 字距在构造后可变。Config 不做并发保护：多个度量方共享读取是安全的，
// 但在换行流进行中修改特性集合属于未定义行为。
type Config struct {
	name        string
	size        int
	features    *FeatureSet
	faces       map[FontStyle]*Face
	letterSpace float64
	fillColor   string
	color       string
	debug       bool
}

// NewConfig 通过字体来源解析家族并构造 Config。构造是全有或全无的：
// 家族不存在（SelectionError）或任一字面加载失败（LoadingError）都会
// 使整个构造失败，不会暴露部分初始化的 Config。
func NewConfig(provider Provider, name string, size int, fillColor, color string, debug bool) (*Config, error) {
	handles, err := provider.ResolveFamily(name)
	if err != nil {
		return nil, err
	}
	faces, err := ResolveFaces(handles, debug)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		name:      name,
		size:      size,
		features:  DefaultFeatureSet(),
		faces:     faces,
		fillColor: fillColor,
		color:     color,
		debug:     debug,
	}

	if debug {
		for style, face := range faces {
			log.Printf("风格桶 %s -> %s", style, face.Name)
		}
	}
	return cfg, nil
}

// HasFeature 报告特性标签当前是否启用。
func (c *Config) HasFeature(tag string) bool { return c.features.Has(tag) }

// AddFeature 以默认取值 1 启用特性。
func (c *Config) AddFeature(tag string) { c.features.Add(tag) }

// RemoveFeature 移除特性（若存在）。
func (c *Config) RemoveFeature(tag string) { c.features.Remove(tag) }

// ApplyFeatureSpec 把形如 "cv01=1,calt=0,liga=1" 的描述串叠加到
// 当前特性集合上（稀疏覆盖，见 FeatureSet.ApplySpec）。
func (c *Config) ApplyFeatureSpec(spec string) error {
	if err := c.features.ApplySpec(spec); err != nil {
		return err
	}
	if c.debug {
		log.Printf("特性集合: %s", c.features.Summary())
	}
	return nil
}

// FeatureSummary 返回当前启用特性的摘要串。
func (c *Config) FeatureSummary() string { return c.features.Summary() }

// Features 返回供整形引擎使用的有序特性列表。
func (c *Config) Features() []Feature { return c.features.List() }

// FaceByStyle 返回指定风格的字面，没有时返回 nil。
func (c *Config) FaceByStyle(style FontStyle) *Face { return c.faces[style] }

// RegularFace 返回常规字面，它是度量与渲染的回退目标。
func (c *Config) RegularFace() *Face { return c.faces[Regular] }

// SetLetterSpace 设置字距（可为负以收紧），返回自身便于链式调用。
func (c *Config) SetLetterSpace(space float64) *Config {
	c.letterSpace = space
	return c
}

// LetterSpace 返回当前字距。
func (c *Config) LetterSpace() float64 { return c.letterSpace }

// Name 返回家族名。
func (c *Config) Name() string { return c.name }

// Size 返回目标字号（正整数，点）。
func (c *Config) Size() int { return c.size }

// Color 返回文本颜色串（对核心不透明）。
func (c *Config) Color() string { return c.color }

// FillColor 返回填充颜色串（对核心不透明）。
func (c *Config) FillColor() string { return c.fillColor }

// Debug 报告是否开启诊断输出。
func (c *Config) Debug() bool { return c.debug }
