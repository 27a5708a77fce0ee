package font

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/fontscan"
	"golang.org/x/image/font/sfnt"
)

// SystemProvider 基于 go-text/typesetting 的 fontscan 枚举系统字体。
// 扫描是惰性的且只执行一次，结果缓存在 provider 上。
type SystemProvider struct {
	scanOnce   sync.Once
	footprints []fontscan.Footprint
	scanErr    error
}

var _ Provider = (*SystemProvider)(nil)

// NewSystemProvider 构造系统字体 provider。构造本身不触发扫描。
func NewSystemProvider() *SystemProvider { return &SystemProvider{} }

func (p *SystemProvider) scan() {
	p.scanOnce.Do(func() {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			cacheDir = os.TempDir()
		}
		p.footprints, p.scanErr = fontscan.SystemFonts(nil, cacheDir)
	})
}

// Families 返回系统中全部字体家族名（去重并排序）。
// 扫描失败时返回空列表，与上游“尽力而为”的枚举语义一致。
func (p *SystemProvider) Families() []string {
	p.scan()
	if p.scanErr != nil {
		return nil
	}
	seen := map[string]struct{}{}
	var families []string
	for _, fp := range p.footprints {
		if _, ok := seen[fp.Family]; ok {
			continue
		}
		seen[fp.Family] = struct{}{}
		families = append(families, fp.Family)
	}
	sort.Strings(families)
	return families
}

// ResolveFamily 返回指定家族（大小写不敏感）的全部字面句柄。
func (p *SystemProvider) ResolveFamily(name string) ([]FaceHandle, error) {
	p.scan()
	if p.scanErr != nil {
		return nil, &SelectionError{Family: name}
	}
	var handles []FaceHandle
	for _, fp := range p.footprints {
		if strings.EqualFold(fp.Family, name) {
			handles = append(handles, &systemFace{fp: fp})
		}
	}
	if len(handles) == 0 {
		return nil, &SelectionError{Family: name}
	}
	return handles, nil
}

// systemFace 是 fontscan footprint 上的惰性字面句柄。
type systemFace struct {
	fp     fontscan.Footprint
	once   sync.Once
	loaded *Face
	err    error
}

func (f *systemFace) FullName() string {
	f.load()
	if f.loaded != nil {
		return f.loaded.Name
	}
	return f.fp.Family
}

func (f *systemFace) Posture() Posture {
	switch f.fp.Aspect.Style {
	case gtfont.StyleNormal:
		return PostureNormal
	case gtfont.StyleItalic:
		return PostureItalic
	default:
		return PostureOther
	}
}

func (f *systemFace) Weight() float64 { return float64(f.fp.Aspect.Weight) }

func (f *systemFace) Load() (*Face, error) {
	f.load()
	return f.loaded, f.err
}

func (f *systemFace) load() {
	f.once.Do(func() {
		path := f.fp.Location.File
		index := int(f.fp.Location.Index)

		data, err := os.ReadFile(path)
		if err != nil {
			f.err = &LoadingError{Name: f.fp.Family, Err: err}
			return
		}
		faces, err := gtfont.ParseTTC(bytes.NewReader(data))
		if err != nil {
			f.err = &LoadingError{Name: f.fp.Family, Err: err}
			return
		}
		if index < 0 || index >= len(faces) {
			f.err = &LoadingError{
				Name: f.fp.Family,
				Err:  fmt.Errorf("字面索引 %d 超出范围（共 %d 个字面）", index, len(faces)),
			}
			return
		}
		f.loaded = &Face{
			Name:  fullName(data, index, f.fp.Family),
			Data:  data,
			Index: index,
			Font:  faces[index],
		}
	})
}

// fullName 从 name 表取字面全名（NameIDFull），取不到时退回家族名。
func fullName(data []byte, index int, fallback string) string {
	coll, err := sfnt.ParseCollection(data)
	if err != nil {
		return fallback
	}
	fnt, err := coll.Font(index)
	if err != nil {
		return fallback
	}
	name, err := fnt.Name(nil, sfnt.NameIDFull)
	if err != nil || name == "" {
		return fallback
	}
	return name
}
