package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/ByLCY/transpage/extract"
	"github.com/ByLCY/transpage/layout"
	"github.com/ByLCY/transpage/renderer"
	"github.com/ByLCY/transpage/translate"
)

type stubReader struct {
	pages []string
	err   error
}

func (s stubReader) ExtractPages(context.Context, []byte) ([]string, error) {
	return s.pages, s.err
}

type stubTranslator struct {
	calls  []string
	failOn int // 第几次调用失败（从 1 开始），0 表示不失败
	cancel context.CancelFunc
}

func (s *stubTranslator) Translate(_ context.Context, text, src, dst string) (string, error) {
	s.calls = append(s.calls, text)
	if s.failOn > 0 && len(s.calls) == s.failOn {
		return "", translate.ErrTranslationUnavailable
	}
	if s.cancel != nil {
		s.cancel()
	}
	return strings.ToUpper(text) + " [" + src + "→" + dst + "]", nil
}

type stubRenderer struct {
	doc *layout.Document
	err error
}

func (s *stubRenderer) Render(doc *layout.Document) ([]byte, error) {
	s.doc = doc
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF-stub"), nil
}

func newPipeline(r extract.Reader, tr translate.Translator, rd renderer.Renderer) (*Pipeline, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return &Pipeline{
		Reader:     r,
		Translator: tr,
		Renderer:   rd,
		Geometry:   layout.PageGeometry{Width: 595, Height: 842, MarginLeft: 40, MarginRight: 40, TopOffset: 60, BottomOffset: 60},
		Font:       layout.NewFontSpec("Deva", 12, 6),
		From:       "en",
		To:         "hi",
		Logger:     logger,
	}, hook
}

func TestRunKeepsEmptyPagesEmpty(t *testing.T) {
	tr := &stubTranslator{}
	rd := &stubRenderer{}
	p, hook := newPipeline(stubReader{pages: []string{"hello", "  \n ", "", "world"}}, tr, rd)

	out, err := p.Run(context.Background(), []byte("%PDF"))
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if string(out) != "%PDF-stub" {
		t.Fatalf("unexpected output %q", out)
	}
	if len(tr.calls) != 2 {
		t.Fatalf("blank pages should not be translated, got calls %q", tr.calls)
	}
	doc := rd.doc
	if len(doc.Pages) != 4 {
		t.Fatalf("expected 4 pages, got %d", len(doc.Pages))
	}
	for _, i := range []int{1, 2} {
		if len(doc.Pages[i].Commands) != 0 {
			t.Fatalf("page %d should be empty, got %+v", i+1, doc.Pages[i].Commands)
		}
	}
	if got := doc.Pages[0].Commands[0].Text; got != "HELLO [en→hi]" {
		t.Fatalf("unexpected first line %q", got)
	}
	if doc.Pages[3].Source != 3 {
		t.Fatalf("last page should come from source page 3, got %d", doc.Pages[3].Source)
	}
	if entry := hook.LastEntry(); entry == nil || entry.Level != logrus.InfoLevel {
		t.Fatalf("expected a final info log entry, got %+v", entry)
	}
}

func TestRunStageErrors(t *testing.T) {
	readErr := errors.New("bad xref")
	renderErr := errors.New("disk full")

	cases := []struct {
		name    string
		reader  stubReader
		tr      *stubTranslator
		rd      *stubRenderer
		mutate  func(*Pipeline)
		stage   Stage
		page    int
		message string
		target  error
	}{
		{
			name:    "read",
			reader:  stubReader{err: readErr},
			tr:      &stubTranslator{},
			rd:      &stubRenderer{},
			stage:   StageRead,
			message: "could not read document",
			target:  readErr,
		},
		{
			name:    "no pages",
			reader:  stubReader{pages: nil},
			tr:      &stubTranslator{},
			rd:      &stubRenderer{},
			stage:   StageRead,
			message: "could not read document",
			target:  extract.ErrUnreadableDocument,
		},
		{
			name:    "translate",
			reader:  stubReader{pages: []string{"one", "two"}},
			tr:      &stubTranslator{failOn: 2},
			rd:      &stubRenderer{},
			stage:   StageTranslate,
			page:    2,
			message: "could not translate page 2",
			target:  translate.ErrTranslationUnavailable,
		},
		{
			name:    "compose",
			reader:  stubReader{pages: []string{"one"}},
			tr:      &stubTranslator{},
			rd:      &stubRenderer{},
			mutate:  func(p *Pipeline) { p.Geometry.MarginLeft = 600 },
			stage:   StageCompose,
			message: "invalid page layout configuration",
		},
		{
			name:    "render",
			reader:  stubReader{pages: []string{"one"}},
			tr:      &stubTranslator{},
			rd:      &stubRenderer{err: renderErr},
			stage:   StageRender,
			message: "could not produce output document",
			target:  renderErr,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, _ := newPipeline(tc.reader, tc.tr, tc.rd)
			if tc.mutate != nil {
				tc.mutate(p)
			}
			out, err := p.Run(context.Background(), nil)
			if out != nil {
				t.Fatalf("expected no output on failure")
			}
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("expected *Error, got %T %v", err, err)
			}
			if perr.Stage != tc.stage || perr.Page != tc.page {
				t.Fatalf("unexpected stage/page: %s %d", perr.Stage, perr.Page)
			}
			if perr.Message() != tc.message {
				t.Fatalf("unexpected message %q", perr.Message())
			}
			if tc.target != nil && !errors.Is(err, tc.target) {
				t.Fatalf("expected %v in chain, got %v", tc.target, err)
			}
			if tc.stage == StageCompose {
				var cfg *layout.ConfigurationError
				if !errors.As(err, &cfg) {
					t.Fatalf("compose failure should carry a ConfigurationError, got %v", err)
				}
			}
		})
	}
}

func TestRunStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tr := &stubTranslator{cancel: cancel}
	p, _ := newPipeline(stubReader{pages: []string{"one", "two", "three"}}, tr, &stubRenderer{})

	_, err := p.Run(ctx, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(tr.calls) != 1 {
		t.Fatalf("translation should stop after cancellation, got %d calls", len(tr.calls))
	}
	var perr *Error
	if !errors.As(err, &perr) || perr.Stage != StageTranslate || perr.Page != 2 {
		t.Fatalf("unexpected error %+v", err)
	}
}
