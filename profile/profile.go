// Package profile 将配置文件（dsl）解析为一次翻译任务的完整设置：
// 页面几何、正文字体、字体来源、语言对、输出文件名与 PDF 元信息。
package profile

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/ByLCY/transpage/binding"
	"github.com/ByLCY/transpage/dsl"
	"github.com/ByLCY/transpage/fonts"
	"github.com/ByLCY/transpage/layout"
)

// DefaultOutput 生成 "<源文件名>_hindi.pdf" 形式的文件名。
const DefaultOutput = "${name}_${lang}.pdf"

// Profile 是一次翻译任务的设置。
type Profile struct {
	Name       string
	BaseDir    string // 相对字体路径的根目录
	Geometry   layout.PageGeometry
	Font       layout.FontSpec
	CharBudget int
	Fonts      map[string]fonts.Source
	From       string
	To         string
	Output     string
	Meta       layout.DocumentMeta
}

var pagePresets = map[string][2]layout.Length{
	"A4":     {{Value: 210, Unit: layout.UnitMM}, {Value: 297, Unit: layout.UnitMM}},
	"A5":     {{Value: 148, Unit: layout.UnitMM}, {Value: 210, Unit: layout.UnitMM}},
	"LETTER": {{Value: 8.5, Unit: layout.UnitIN}, {Value: 11, Unit: layout.UnitIN}},
	"LEGAL":  {{Value: 8.5, Unit: layout.UnitIN}, {Value: 14, Unit: layout.UnitIN}},
}

// Default 返回内置设置：A4，左右边距 40pt，上下偏移 60pt，Deva 12pt 加 6pt 行距，
// 每行 80 字符，英语译为印地语。
func Default() *Profile {
	a4 := pagePresets["A4"]
	return &Profile{
		Name: "default",
		Geometry: layout.PageGeometry{
			Width:        a4[0].ToPT(),
			Height:       a4[1].ToPT(),
			MarginLeft:   40,
			MarginRight:  40,
			TopOffset:    60,
			BottomOffset: 60,
		},
		Font:       layout.NewFontSpec("Deva", 12, 6),
		CharBudget: layout.DefaultCharBudget,
		Fonts: map[string]fonts.Source{
			"Deva": {Path: "NotoSansDevanagari-Regular.ttf"},
		},
		From:   "en",
		To:     "hi",
		Output: DefaultOutput,
		Meta:   layout.DocumentMeta{Creator: "transpage"},
	}
}

// Load 解析配置文件，未出现的设置沿用 Default 的值。
func Load(r io.Reader, baseDir string) (*Profile, error) {
	doc, err := dsl.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	return FromAST(doc, baseDir)
}

// FromAST 将已解析的配置转换为 Profile。
func FromAST(doc *dsl.Profile, baseDir string) (*Profile, error) {
	if doc == nil {
		return nil, fmt.Errorf("配置为空")
	}
	p := Default()
	p.Name = doc.Name
	p.BaseDir = baseDir

	b := builder{
		size:       layout.Pt(p.Font.Size),
		lineHeight: layout.LineHeightSpec{Kind: layout.LineHeightLeading, Len: layout.Pt(p.Font.LineHeight - p.Font.Size)},
	}
	for _, section := range doc.Sections {
		var err error
		switch {
		case section.Meta != nil:
			err = applyMeta(p, section.Meta.Block)
		case section.Fonts != nil:
			err = applyFonts(p, section.Fonts.Block)
		case section.Page != nil:
			err = b.applyPage(p, section.Page)
		case section.Translate != nil:
			err = applyTranslate(p, section.Translate.Block)
		}
		if err != nil {
			return nil, fmt.Errorf("%s 段落: %w", section.Kind(), err)
		}
	}
	p.Font.Size = b.size.ToPT()
	p.Font.LineHeight = b.lineHeight.Resolve(b.size)

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate 检查几何、字体与语言设置。
func (p *Profile) Validate() error {
	if err := p.Geometry.Validate(); err != nil {
		return err
	}
	if err := p.Font.Validate(); err != nil {
		return err
	}
	if p.CharBudget <= 0 {
		return fmt.Errorf("wrap 必须为正整数，实际为 %d", p.CharBudget)
	}
	for _, code := range []string{p.From, p.To} {
		if _, err := language.Parse(code); err != nil {
			return fmt.Errorf("无效的语言标签 %q: %w", code, err)
		}
	}
	return nil
}

// Script 返回目标语言所用书写系统的 Unicode 表，用于字体覆盖检测。
func (p *Profile) Script() *unicode.RangeTable {
	tag, err := language.Parse(p.To)
	if err != nil {
		return nil
	}
	return fonts.ScriptFor(tag)
}

// FontOptions 构造字体注册表的选项。
func (p *Profile) FontOptions() fonts.Options {
	return fonts.Options{
		BaseDir: p.BaseDir,
		Fonts:   p.Fonts,
		Script:  p.Script(),
	}
}

// OutputName 根据输入文件路径展开输出文件名模板。可用变量：
// name（不含扩展名的源文件名）、from、to、lang（目标语言英文名的小写形式）、profile。
func (p *Profile) OutputName(inputPath string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	pattern := p.Output
	if pattern == "" {
		pattern = DefaultOutput
	}
	return binding.Interpolate(pattern, binding.Vars{
		"name":    stem,
		"from":    p.From,
		"to":      p.To,
		"lang":    languageSlug(p.To),
		"profile": p.Name,
	})
}

func languageSlug(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	name := display.English.Languages().Name(tag)
	if name == "" {
		return code
	}
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

func applyMeta(p *Profile, block *dsl.Block) error {
	for _, stmt := range statements(block) {
		a := stmt.Assignment
		if a == nil {
			return fmt.Errorf("第 %d 行: meta 只接受 key: value", stmt.Command.Pos.Line)
		}
		if a.Key == "keywords" {
			kw, err := stringList(a.Value)
			if err != nil {
				return fmt.Errorf("第 %d 行: %w", a.Pos.Line, err)
			}
			p.Meta.Keywords = kw
			continue
		}
		val, ok := a.Value.Raw()
		if !ok {
			return fmt.Errorf("第 %d 行: %s 需要单个值", a.Pos.Line, a.Key)
		}
		switch a.Key {
		case "title":
			p.Meta.Title = val
		case "author":
			p.Meta.Author = val
		case "subject":
			p.Meta.Subject = val
		case "creator":
			p.Meta.Creator = val
		default:
			return fmt.Errorf("第 %d 行: 未知的 meta 字段 %s", a.Pos.Line, a.Key)
		}
	}
	return nil
}

// applyFonts 用配置中声明的字体替换默认字体表。
func applyFonts(p *Profile, block *dsl.Block) error {
	declared := map[string]fonts.Source{}
	for _, stmt := range statements(block) {
		cmd := stmt.Command
		if cmd == nil || cmd.Name != "font" || len(cmd.Args) != 1 {
			return fmt.Errorf("%s: 字体声明格式为 font <名称> { src: \"...\" }", stmtPos(stmt))
		}
		name := cmd.Args[0].Value
		src := ""
		for _, inner := range statements(cmd.Block) {
			if inner.Assignment == nil || inner.Assignment.Key != "src" {
				return fmt.Errorf("%s: 字体 %s 只支持 src 字段", stmtPos(inner), name)
			}
			src, _ = inner.Assignment.Value.Raw()
		}
		if src == "" {
			return fmt.Errorf("第 %d 行: 字体 %s 缺少 src", cmd.Pos.Line, name)
		}
		declared[name] = fonts.Source{Path: src}
	}
	p.Fonts = declared
	return nil
}

func applyTranslate(p *Profile, block *dsl.Block) error {
	for _, stmt := range statements(block) {
		a := stmt.Assignment
		if a == nil {
			return fmt.Errorf("第 %d 行: translate 只接受 key: value", stmt.Command.Pos.Line)
		}
		val, ok := a.Value.Raw()
		if !ok {
			return fmt.Errorf("第 %d 行: %s 需要单个值", a.Pos.Line, a.Key)
		}
		switch a.Key {
		case "from":
			p.From = val
		case "to":
			p.To = val
		case "output":
			p.Output = val
		default:
			return fmt.Errorf("第 %d 行: 未知的 translate 字段 %s", a.Pos.Line, a.Key)
		}
	}
	return nil
}

// builder 暂存字号与行高的原始写法，所有段落处理完后再换算。
type builder struct {
	size       layout.Length
	lineHeight layout.LineHeightSpec
}

func (b *builder) applyPage(p *Profile, page *dsl.PageSection) error {
	width, height, err := resolvePageSize(page.Spec)
	if err != nil {
		return err
	}
	p.Geometry.Width = width
	p.Geometry.Height = height

	for _, stmt := range statements(page.Block) {
		if cmd := stmt.Command; cmd != nil {
			if err := applyPageCommand(p, cmd); err != nil {
				return fmt.Errorf("第 %d 行: %w", cmd.Pos.Line, err)
			}
			continue
		}
		a := stmt.Assignment
		val, ok := a.Value.Raw()
		if !ok {
			return fmt.Errorf("第 %d 行: %s 需要单个值", a.Pos.Line, a.Key)
		}
		if err := b.applyPageAssignment(p, a.Key, val); err != nil {
			return fmt.Errorf("第 %d 行: %w", a.Pos.Line, err)
		}
	}
	return nil
}

func (b *builder) applyPageAssignment(p *Profile, key, val string) error {
	switch key {
	case "font":
		p.Font.Name = val
	case "size":
		l, err := layout.ParseLength(val)
		if err != nil {
			return err
		}
		b.size = l
	case "leading":
		l, err := layout.ParseLength(val)
		if err != nil {
			return err
		}
		b.lineHeight = layout.LineHeightSpec{Kind: layout.LineHeightLeading, Len: l}
	case "line-height":
		lh, err := layout.ParseLineHeight(val)
		if err != nil {
			return err
		}
		b.lineHeight = lh
	case "wrap":
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("wrap 需要整数: %w", err)
		}
		p.CharBudget = n
	default:
		return fmt.Errorf("未知的页面字段 %s", key)
	}
	return nil
}

// applyPageCommand 处理 margin <左> [右] 与 offset <上> [下]，只给一个值时两侧相同。
func applyPageCommand(p *Profile, cmd *dsl.Command) error {
	if len(cmd.Args) == 0 || len(cmd.Args) > 2 {
		return fmt.Errorf("%s 需要 1 到 2 个长度", cmd.Name)
	}
	vals := make([]float64, 0, 2)
	for _, arg := range cmd.Args {
		l, err := layout.ParseLength(arg.Value)
		if err != nil {
			return err
		}
		vals = append(vals, l.ToPT())
	}
	if len(vals) == 1 {
		vals = append(vals, vals[0])
	}
	switch cmd.Name {
	case "margin":
		p.Geometry.MarginLeft, p.Geometry.MarginRight = vals[0], vals[1]
	case "offset":
		p.Geometry.TopOffset, p.Geometry.BottomOffset = vals[0], vals[1]
	default:
		return fmt.Errorf("未知的页面指令 %s", cmd.Name)
	}
	return nil
}

// resolvePageSize 支持预设纸张（可加 landscape）以及 custom <宽> <高>。
func resolvePageSize(spec dsl.PageSpec) (float64, float64, error) {
	if strings.EqualFold(spec.Size, "custom") {
		if len(spec.Params) != 2 {
			return 0, 0, fmt.Errorf("custom 页面需要宽和高两个长度")
		}
		w, err := layout.ParseLength(spec.Params[0].Value)
		if err != nil {
			return 0, 0, err
		}
		h, err := layout.ParseLength(spec.Params[1].Value)
		if err != nil {
			return 0, 0, err
		}
		return w.ToPT(), h.ToPT(), nil
	}

	base, ok := pagePresets[strings.ToUpper(spec.Size)]
	if !ok {
		return 0, 0, fmt.Errorf("暂不支持的纸张尺寸：%s", spec.Size)
	}
	width, height := base[0].ToPT(), base[1].ToPT()
	for _, token := range spec.Params {
		switch token.Value {
		case "landscape":
			width, height = height, width
		case "portrait":
		default:
			return 0, 0, fmt.Errorf("未知的页面参数 %s", token.Value)
		}
	}
	return width, height, nil
}

func statements(block *dsl.Block) []*dsl.Statement {
	if block == nil {
		return nil
	}
	return block.Statements
}

func stmtPos(stmt *dsl.Statement) string {
	switch {
	case stmt.Assignment != nil:
		return fmt.Sprintf("第 %d 行", stmt.Assignment.Pos.Line)
	case stmt.Command != nil:
		return fmt.Sprintf("第 %d 行", stmt.Command.Pos.Line)
	default:
		return "未知位置"
	}
}

func stringList(v *dsl.Value) ([]string, error) {
	if v == nil {
		return nil, fmt.Errorf("缺少值")
	}
	if s, ok := v.Raw(); ok {
		return []string{s}, nil
	}
	if v.Array == nil {
		return nil, fmt.Errorf("需要字符串或数组")
	}
	out := make([]string, 0, len(v.Array.Values))
	for _, item := range v.Array.Values {
		s, ok := item.Raw()
		if !ok {
			return nil, fmt.Errorf("数组中只能包含标量值")
		}
		out = append(out, s)
	}
	return out, nil
}
