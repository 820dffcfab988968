package canvasrenderer

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/transpage/fonts"
	"github.com/ByLCY/transpage/layout"
	"github.com/ByLCY/transpage/renderer"
)

// FontSource 按名称提供字体数据，通常由 *fonts.Catalog 实现。
type FontSource interface {
	Bytes(name string) ([]byte, bool)
}

// Renderer draws layout documents into PDF via github.com/tdewolff/canvas.
type Renderer struct {
	fonts FontSource

	fontMu         sync.Mutex
	fontFamilies   map[string]*canvas.FontFamily
	fallbackFamily *canvas.FontFamily
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer creates a canvas-based renderer that embeds fonts from src.
// A nil src renders everything with the built-in fallback font.
func NewRenderer(src FontSource) *Renderer {
	return &Renderer{
		fonts:        src,
		fontFamilies: map[string]*canvas.FontFamily{},
	}
}

// Render 将文档编码为 PDF：每个 RenderedPage 对应一页，页与页之间显式分页。
// 排版坐标以 pt 表示，canvas 使用 mm，这里在边界处换算。
func (r *Renderer) Render(doc *layout.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: 文档为空", renderer.ErrEncoding)
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("%w: 缺少可渲染的页面", renderer.ErrEncoding)
	}

	var buf bytes.Buffer
	first := doc.Pages[0]
	writer := pdf.New(&buf, toMm(first.Width), toMm(first.Height), nil)
	applyMeta(writer, doc.Meta)
	for i, page := range doc.Pages {
		if i > 0 {
			writer.NewPage(toMm(page.Width), toMm(page.Height))
		}
		c := canvas.New(toMm(page.Width), toMm(page.Height))
		ctx := canvas.NewContext(c)
		if err := r.drawPage(ctx, page); err != nil {
			return nil, fmt.Errorf("%w: 第 %d 页: %w", renderer.ErrEncoding, i+1, err)
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("%w: 写入 PDF 失败: %w", renderer.ErrEncoding, err)
	}
	return buf.Bytes(), nil
}

func applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

func (r *Renderer) drawPage(ctx *canvas.Context, page layout.RenderedPage) error {
	for _, cmd := range page.Commands {
		face, err := r.fontFace(cmd.Font, cmd.Size)
		if err != nil {
			return err
		}
		// canvas 默认坐标系原点在左下角，与排版坐标一致；y 为基线
		ctx.DrawText(toMm(cmd.X), toMm(cmd.Y), canvas.NewTextLine(face, cmd.Text, canvas.Left))
	}
	return nil
}

// fontFace 的 size 单位为 pt。
func (r *Renderer) fontFace(name string, size float64) (*canvas.FontFace, error) {
	family, err := r.ensureFontFamily(name)
	if err != nil {
		return nil, err
	}
	return family.Face(size, canvas.Black, canvas.FontRegular, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(name string) (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if family, ok := r.fontFamilies[name]; ok {
		return family, nil
	}

	var data []byte
	if r.fonts != nil {
		data, _ = r.fonts.Bytes(name)
	}
	if len(data) == 0 {
		family, err := r.fallback()
		if err != nil {
			return nil, err
		}
		r.fontFamilies[name] = family
		return family, nil
	}

	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载字体 %s 失败: %w", name, err)
	}
	r.fontFamilies[name] = family
	return family, nil
}

func (r *Renderer) fallback() (*canvas.FontFamily, error) {
	if r.fallbackFamily != nil {
		return r.fallbackFamily, nil
	}
	data, err := fonts.Load(fonts.DefaultFont)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily(fonts.DefaultFont)
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载回退字体失败: %w", err)
	}
	r.fallbackFamily = family
	return family, nil
}

// toMm 将点(pt)转换为毫米(mm)。
func toMm(pt float64) float64 { return pt * layout.PtToMm }
