// Package pipeline 串联提取、翻译、排版与渲染：源文档字节进，译文 PDF 字节出。
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ByLCY/transpage/extract"
	"github.com/ByLCY/transpage/layout"
	"github.com/ByLCY/transpage/renderer"
	"github.com/ByLCY/transpage/translate"
)

// Pipeline 持有一次转换所需的协作者与排版参数。
type Pipeline struct {
	Reader     extract.Reader
	Translator translate.Translator
	Renderer   renderer.Renderer
	Fonts      layout.FontResolver

	Geometry   layout.PageGeometry
	Font       layout.FontSpec
	CharBudget int
	Meta       layout.DocumentMeta
	From       string
	To         string

	Logger logrus.FieldLogger
}

// Result 是一次转换的产物，Document 可用于输出调试 JSON。
type Result struct {
	PDF      []byte
	Document *layout.Document
}

// Run 执行完整转换，失败时返回 *Error，不产生部分输出。
func (p *Pipeline) Run(ctx context.Context, data []byte) ([]byte, error) {
	res, err := p.Convert(ctx, data)
	if err != nil {
		return nil, err
	}
	return res.PDF, nil
}

// Convert 与 Run 相同，但同时返回排版结果。
func (p *Pipeline) Convert(ctx context.Context, data []byte) (*Result, error) {
	log := p.logger()
	start := time.Now()

	pages, err := p.Reader.ExtractPages(ctx, data)
	if err != nil {
		return nil, &Error{Stage: StageRead, Err: err}
	}
	if len(pages) == 0 {
		return nil, &Error{Stage: StageRead, Err: fmt.Errorf("%w: 文档没有页面", extract.ErrUnreadableDocument)}
	}
	log.WithField("pages", len(pages)).Info("已提取源文档文本")

	translated, err := p.translatePages(ctx, pages)
	if err != nil {
		return nil, err
	}

	doc, err := layout.Compose(translated, p.Geometry, p.Font, layout.ComposeOptions{
		Fonts:      p.Fonts,
		CharBudget: p.CharBudget,
		Meta:       p.Meta,
	})
	if err != nil {
		return nil, &Error{Stage: StageCompose, Err: err}
	}
	log.WithFields(logrus.Fields{
		"sourcePages": len(translated),
		"outputPages": len(doc.Pages),
		"font":        doc.Font.Name,
	}).Info("排版完成")

	out, err := p.Renderer.Render(doc)
	if err != nil {
		return nil, &Error{Stage: StageRender, Err: err}
	}
	log.WithFields(logrus.Fields{
		"bytes":    len(out),
		"duration": time.Since(start).String(),
	}).Info("已生成译文 PDF")
	return &Result{PDF: out, Document: doc}, nil
}

// translatePages 逐页翻译并在页与页之间检查取消。空白页不调用翻译器，保持为空串，
// 以保留页数。
func (p *Pipeline) translatePages(ctx context.Context, pages []string) ([]string, error) {
	log := p.logger()
	out := make([]string, 0, len(pages))
	for i, text := range pages {
		if err := ctx.Err(); err != nil {
			return nil, &Error{Stage: StageTranslate, Page: i + 1, Err: err}
		}
		if strings.TrimSpace(text) == "" {
			out = append(out, "")
			log.WithField("page", i+1).Debug("空白页，跳过翻译")
			continue
		}
		result, err := p.Translator.Translate(ctx, text, p.From, p.To)
		if err != nil {
			return nil, &Error{Stage: StageTranslate, Page: i + 1, Err: err}
		}
		log.WithFields(logrus.Fields{
			"page":  i + 1,
			"chars": len([]rune(result)),
		}).Debug("页面翻译完成")
		out = append(out, result)
	}
	return out, nil
}

func (p *Pipeline) logger() logrus.FieldLogger {
	if p.Logger == nil {
		return logrus.StandardLogger()
	}
	return p.Logger
}
