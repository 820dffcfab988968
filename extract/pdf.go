package extract

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFReader 使用 pdfcpu 校验文件结构，再用 ledongthuc/pdf 逐页提取文本。
type PDFReader struct {
	conf *model.Configuration
}

var _ Reader = (*PDFReader)(nil)

// NewPDFReader 创建 PDF 文本提取器。校验使用宽松模式，
// 常见的轻微不合规文件仍可读取。
func NewPDFReader() *PDFReader {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFReader{conf: conf}
}

// ExtractPages 返回每一页的纯文本。
func (r *PDFReader) ExtractPages(ctx context.Context, data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: 文件为空", ErrUnreadableDocument)
	}
	if !bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("%PDF")) {
		return nil, fmt.Errorf("%w: 缺少 PDF 文件头", ErrUnreadableDocument)
	}
	if err := api.Validate(bytes.NewReader(data), r.conf); err != nil {
		return nil, fmt.Errorf("%w: 结构校验失败: %w", ErrUnreadableDocument, err)
	}

	doc, err := openPDF(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableDocument, err)
	}

	total := doc.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pages = append(pages, pageText(doc, i))
	}
	return pages, nil
}

// openPDF 解析文件结构；ledongthuc/pdf 遇到损坏的交叉引用表时可能 panic。
func openPDF(data []byte) (doc *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			doc, err = nil, fmt.Errorf("解析 PDF 失败: %v", rec)
		}
	}()
	doc, err = pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("打开 PDF 失败: %w", err)
	}
	return doc, nil
}

// pageText 提取第 i 页（从 1 开始）的文本。内容流无法解码的页按空页处理。
func pageText(doc *pdf.Reader, i int) (text string) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
		}
	}()
	page := doc.Page(i)
	if page.V.IsNull() {
		return ""
	}
	content, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return content
}
