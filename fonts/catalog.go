// Package fonts 管理进程级的字体注册表：启动时一次性加载字体文件，之后只读共享。
package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/font/sfnt"

	"github.com/ByLCY/transpage/layout"
)

const probeSize = 24

// Source 描述字体来源：Bytes 优先，其次 Path（支持 "embed:<name>" 内置字体）。
type Source struct {
	Bytes []byte
	Path  string
}

// Options 配置字体注册表。
type Options struct {
	BaseDir string            // 相对字体路径的根目录
	Fonts   map[string]Source // 按逻辑名称注册的字体
	Script  *unicode.RangeTable
	Logger  logrus.FieldLogger
}

type face struct {
	name   string
	data   []byte
	font   *sfnt.Font
	covers bool // 是否覆盖目标书写系统
}

// Catalog 是构造完成后不可变的字体注册表，可被多个 goroutine 并发读取。
type Catalog struct {
	faces map[string]*face
	log   logrus.FieldLogger
}

var _ layout.FontResolver = (*Catalog)(nil)

// NewCatalog 加载并注册字体。无法读取或解析的字体会记录警告并跳过，
// DefaultFont 总会被注册，保证回退可用。
func NewCatalog(opts Options) *Catalog {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	c := &Catalog{
		faces: map[string]*face{},
		log:   log,
	}
	probe := []rune(nil)
	if opts.Script != nil {
		probe = sampleRunes(opts.Script, probeSize)
	}

	if f, err := newFace(DefaultFont, builtin[DefaultFont], probe); err == nil {
		c.faces[DefaultFont] = f
	} else {
		// 内置字体解析失败说明构建产物已损坏
		panic(fmt.Sprintf("fonts: 内置字体 %s 无法解析: %v", DefaultFont, err))
	}

	for _, name := range sortedKeys(opts.Fonts) {
		if name == "" {
			continue
		}
		entry := log.WithField("font", name)
		data, err := loadSource(opts.Fonts[name], opts.BaseDir)
		if err != nil {
			entry.WithError(err).Warn("字体未注册，将使用回退字体")
			continue
		}
		f, err := newFace(name, data, probe)
		if err != nil {
			entry.WithError(err).Warn("字体解析失败，将使用回退字体")
			continue
		}
		if !f.covers {
			entry.Warn("字体未覆盖目标书写系统")
		}
		c.faces[name] = f
	}
	return c
}

func newFace(name string, data []byte, probe []rune) (*face, error) {
	parsed, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("解析字体 %s 失败: %w", name, err)
	}
	f := &face{name: name, data: data, font: parsed}
	f.covers = coverage(parsed, probe)
	return f, nil
}

// coverage 当至少一半探测字符存在字形时认为字体覆盖该书写系统；没有探测字符时视为覆盖。
func coverage(f *sfnt.Font, probe []rune) bool {
	if len(probe) == 0 {
		return true
	}
	var buf sfnt.Buffer
	hits := 0
	for _, r := range probe {
		if idx, err := f.GlyphIndex(&buf, r); err == nil && idx != 0 {
			hits++
		}
	}
	return hits*2 >= len(probe)
}

func loadSource(src Source, baseDir string) ([]byte, error) {
	if len(src.Bytes) > 0 {
		return src.Bytes, nil
	}
	if src.Path == "" {
		return nil, fmt.Errorf("字体缺少 src")
	}
	if strings.HasPrefix(src.Path, "embed:") {
		return Load(src.Path)
	}
	path := src.Path
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体文件 %s 失败: %w", src.Path, err)
	}
	return data, nil
}

// Resolve 实现 layout.FontResolver：字体已注册且覆盖目标书写系统时原样返回，
// 否则保留字号与行高并替换为 DefaultFont。该方法从不失败，降级只记录日志。
func (c *Catalog) Resolve(preferred layout.FontSpec) layout.FontSpec {
	f, ok := c.faces[preferred.Name]
	if ok && (f.covers || preferred.Name == DefaultFont) {
		return preferred
	}
	reason := "未注册"
	if ok {
		reason = "未覆盖目标书写系统"
	}
	c.log.WithFields(logrus.Fields{
		"font":     preferred.Name,
		"fallback": DefaultFont,
		"reason":   reason,
	}).Warn("字体不可用，使用回退字体")
	preferred.Name = DefaultFont
	return preferred
}

// Bytes 返回已注册字体的原始数据，供渲染器嵌入。
func (c *Catalog) Bytes(name string) ([]byte, bool) {
	f, ok := c.faces[name]
	if !ok {
		return nil, false
	}
	return f.data, true
}

// Covers 报告字体 name 是否包含字符 r 的字形。
func (c *Catalog) Covers(name string, r rune) bool {
	f, ok := c.faces[name]
	if !ok {
		return false
	}
	var buf sfnt.Buffer
	idx, err := f.font.GlyphIndex(&buf, r)
	return err == nil && idx != 0
}

// Names 返回所有已注册字体名称（已排序）。
func (c *Catalog) Names() []string {
	return sortedKeys(c.faces)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
