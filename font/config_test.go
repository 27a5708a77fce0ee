package font

import (
	"errors"
	"testing"
)

// fakeProvider 是测试用的字体来源。
type fakeProvider struct {
	families map[string][]FaceHandle
}

func (p *fakeProvider) Families() []string {
	names := make([]string, 0, len(p.families))
	for name := range p.families {
		names = append(names, name)
	}
	return names
}

func (p *fakeProvider) ResolveFamily(name string) ([]FaceHandle, error) {
	handles, ok := p.families[name]
	if !ok {
		return nil, &SelectionError{Family: name}
	}
	return handles, nil
}

func demoProvider() *fakeProvider {
	return &fakeProvider{families: map[string][]FaceHandle{
		"Demo Sans": {
			&fakeHandle{name: "Demo Sans Regular", weight: 400},
			&fakeHandle{name: "Demo Sans Bold", weight: 700},
		},
	}}
}

// TestNewConfig 验证构造后的默认状态：默认特性集合、风格桶与渲染参数。
func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig(demoProvider(), "Demo Sans", 32, "#ffffff", "#000000", false)
	if err != nil {
		t.Fatalf("构造失败: %v", err)
	}
	if cfg.Name() != "Demo Sans" || cfg.Size() != 32 {
		t.Fatalf("家族/字号不符: %s %d", cfg.Name(), cfg.Size())
	}
	if cfg.Color() != "#000000" || cfg.FillColor() != "#ffffff" {
		t.Fatalf("颜色不符: %s %s", cfg.Color(), cfg.FillColor())
	}
	for _, tag := range []string{"kern", "liga", "calt", "clig"} {
		if !cfg.HasFeature(tag) {
			t.Fatalf("默认特性 %s 缺失", tag)
		}
	}
	if cfg.RegularFace() == nil || cfg.RegularFace().Name != "Demo Sans Regular" {
		t.Fatalf("常规字面不符: %+v", cfg.RegularFace())
	}
	if cfg.FaceByStyle(Bold) == nil {
		t.Fatal("Bold 桶缺失")
	}
	if cfg.FaceByStyle(Italic) != nil {
		t.Fatal("不存在的桶应返回 nil")
	}
	if cfg.LetterSpace() != 0 {
		t.Fatalf("初始字距应为 0，实际 %g", cfg.LetterSpace())
	}
}

// TestNewConfigUnknownFamily 验证家族不存在时构造整体失败。
func TestNewConfigUnknownFamily(t *testing.T) {
	_, err := NewConfig(demoProvider(), "No Such Family", 32, "", "", false)
	if err == nil {
		t.Fatal("不存在的家族应使构造失败")
	}
	var selErr *SelectionError
	if !errors.As(err, &selErr) {
		t.Fatalf("期望 SelectionError，实际 %T", err)
	}
	if selErr.Family != "No Such Family" {
		t.Fatalf("错误应携带家族名，实际 %q", selErr.Family)
	}
}

// TestNewConfigLoadFailure 验证任一字面加载失败时不暴露部分初始化的 Config。
func TestNewConfigLoadFailure(t *testing.T) {
	provider := &fakeProvider{families: map[string][]FaceHandle{
		"Broken": {
			&fakeHandle{name: "Broken Regular", weight: 400},
			&fakeHandle{name: "Broken Bold", weight: 700, loadErr: errors.New("坏文件")},
		},
	}}
	cfg, err := NewConfig(provider, "Broken", 32, "", "", false)
	if err == nil {
		t.Fatal("加载失败应使构造失败")
	}
	if cfg != nil {
		t.Fatal("构造失败时不应返回 Config")
	}
}

// TestConfigFeatureMutation 验证构造后的特性增删与描述串叠加。
func TestConfigFeatureMutation(t *testing.T) {
	cfg, err := NewConfig(demoProvider(), "Demo Sans", 32, "", "", false)
	if err != nil {
		t.Fatalf("构造失败: %v", err)
	}

	cfg.AddFeature("cv01")
	if !cfg.HasFeature("cv01") {
		t.Fatal("AddFeature 未生效")
	}
	cfg.RemoveFeature("liga")
	if cfg.HasFeature("liga") {
		t.Fatal("RemoveFeature 未生效")
	}
	if err := cfg.ApplyFeatureSpec("calt=0,ss01=2"); err != nil {
		t.Fatalf("叠加描述串失败: %v", err)
	}
	if cfg.HasFeature("calt") || !cfg.HasFeature("ss01") {
		t.Fatalf("叠加结果不符: %s", cfg.FeatureSummary())
	}
	if err := cfg.ApplyFeatureSpec("bad"); err == nil {
		t.Fatal("非法描述串应报错")
	}
}

// TestConfigSetLetterSpace 验证字距的链式设置。
func TestConfigSetLetterSpace(t *testing.T) {
	cfg, err := NewConfig(demoProvider(), "Demo Sans", 32, "", "", false)
	if err != nil {
		t.Fatalf("构造失败: %v", err)
	}
	if got := cfg.SetLetterSpace(0.5).LetterSpace(); got != 0.5 {
		t.Fatalf("字距期望 0.5，实际 %g", got)
	}
	if got := cfg.SetLetterSpace(-0.25).LetterSpace(); got != -0.25 {
		t.Fatalf("字距期望 -0.25，实际 %g", got)
	}
}
