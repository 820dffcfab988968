package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/transpage/dsl"
)

const sampleProfile = `
// Hindi rendition of English reports
profile Report v1 {
  meta {
    title: "Translated report"
    keywords: [
      "hindi"
      "translation"
    ]
  }

  fonts {
    font Deva {
      src: "fonts/NotoSansDevanagari-Regular.ttf"
    }
    font Mono { src: "embed:Go-Mono" }
  }

  page A4 {
    margin 40pt 40pt
    offset 60pt 60pt
    font: Deva; size: 12pt
    leading: 6pt
    wrap: 80
  }

  translate {
    from: "en"
    to: "hi"
    output: "${name}_${to}.pdf"
  }
}
`

func TestParseProfile(t *testing.T) {
	doc, err := dsl.ParseString(sampleProfile)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if doc.Name != "Report" {
		t.Fatalf("expected profile name Report, got %s", doc.Name)
	}
	if doc.Version != "v1" {
		t.Fatalf("expected version v1, got %s", doc.Version)
	}

	if len(doc.Sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(doc.Sections))
	}
	kinds := make([]string, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		kinds = append(kinds, s.Kind())
	}
	if got := strings.Join(kinds, ","); got != "meta,fonts,page,translate" {
		t.Fatalf("unexpected section order: %s", got)
	}

	meta := doc.Sections[0].Meta
	title := meta.Block.Statements[0].Assignment
	if title == nil || title.Key != "title" {
		t.Fatalf("expected title assignment, got %+v", meta.Block.Statements[0])
	}
	if got, _ := title.Value.Raw(); got != "Translated report" {
		t.Fatalf("expected title, got %s", got)
	}
	keywords := meta.Block.Statements[1].Assignment
	if keywords == nil || keywords.Value.Array == nil || len(keywords.Value.Array.Values) != 2 {
		t.Fatalf("expected keywords array with 2 entries, got %+v", keywords)
	}

	fonts := doc.Sections[1].Fonts
	if len(fonts.Block.Statements) != 2 {
		t.Fatalf("expected 2 font declarations, got %d", len(fonts.Block.Statements))
	}
	deva := fonts.Block.Statements[0].Command
	if deva == nil || deva.Name != "font" || len(deva.Args) != 1 || deva.Args[0].Value != "Deva" {
		t.Fatalf("unexpected font command: %+v", fonts.Block.Statements[0])
	}
	if deva.Block == nil || deva.Block.Statements[0].Assignment == nil {
		t.Fatalf("font command missing src assignment")
	}
	if got, _ := deva.Block.Statements[0].Assignment.Value.Raw(); got != "fonts/NotoSansDevanagari-Regular.ttf" {
		t.Fatalf("unexpected font src %q", got)
	}

	page := doc.Sections[2].Page
	if page.Spec.Size != "A4" || len(page.Spec.Params) != 0 {
		t.Fatalf("unexpected page spec: %+v", page.Spec)
	}
	if len(page.Block.Statements) != 6 {
		t.Fatalf("expected 6 page statements, got %d", len(page.Block.Statements))
	}
	margin := page.Block.Statements[0].Command
	if margin == nil || margin.Name != "margin" || len(margin.Args) != 2 || margin.Args[1].Value != "40pt" {
		t.Fatalf("unexpected margin command: %+v", page.Block.Statements[0])
	}
	font := page.Block.Statements[2].Assignment
	if font == nil || font.Value.Ident == nil || *font.Value.Ident != "Deva" {
		t.Fatalf("font should be an identifier, got %+v", page.Block.Statements[2])
	}
	size := page.Block.Statements[3].Assignment
	if size == nil || size.Value.Number == nil || *size.Value.Number != "12pt" {
		t.Fatalf("unexpected size assignment: %+v", page.Block.Statements[3])
	}

	translate := doc.Sections[3].Translate
	output := translate.Block.Statements[2].Assignment
	if got, _ := output.Value.Raw(); !strings.Contains(got, "${to}") {
		t.Fatalf("expected interpolation in output pattern, got %s", got)
	}
}

func TestParseCustomPageSize(t *testing.T) {
	doc, err := dsl.ParseString(`profile Custom v1 { page custom 100mm 200mm { line-height: 1.5x } }`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	page := doc.Sections[0].Page
	if page == nil || page.Spec.Size != "custom" {
		t.Fatalf("expected custom page, got %+v", doc.Sections[0])
	}
	if len(page.Spec.Params) != 2 || page.Spec.Params[0].Value != "100mm" {
		t.Fatalf("unexpected params: %+v", page.Spec.Params)
	}
	lh := page.Block.Statements[0].Assignment
	if lh == nil || lh.Key != "line-height" || *lh.Value.Number != "1.5x" {
		t.Fatalf("unexpected line-height assignment: %+v", page.Block.Statements[0])
	}
}

func TestParseRejectsUnknownSection(t *testing.T) {
	if _, err := dsl.ParseString(`profile Bad v1 { styles { } }`); err == nil {
		t.Fatalf("expected error for unknown section")
	}
}
