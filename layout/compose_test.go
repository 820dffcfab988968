package layout

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// stubResolver 记录调用次数，并把所有字体替换为固定的回退字体。
type stubResolver struct {
	calls    int
	fallback string
}

func (s *stubResolver) Resolve(preferred FontSpec) FontSpec {
	s.calls++
	if s.fallback == "" {
		return preferred
	}
	preferred.Name = s.fallback
	return preferred
}

func TestComposeScenario(t *testing.T) {
	doc, err := Compose([]string{"Hello world", ""}, a4, body, ComposeOptions{CharBudget: 80})
	if err != nil {
		t.Fatalf("Compose error: %v", err)
	}
	want := []RenderedPage{
		{Width: 595, Height: 842, Source: 0, Commands: []DrawCommand{{Text: "Hello world", X: 40, Y: 782, Font: "Deva", Size: 12}}},
		{Width: 595, Height: 842, Source: 1, Commands: []DrawCommand{}},
	}
	if diff := cmp.Diff(want, doc.Pages); diff != "" {
		t.Fatalf("pages mismatch (-want +got):\n%s", diff)
	}
}

func TestComposeEmptyPageFidelity(t *testing.T) {
	doc, err := Compose([]string{""}, a4, body, ComposeOptions{})
	if err != nil {
		t.Fatalf("Compose error: %v", err)
	}
	if len(doc.Pages) != 1 || len(doc.Pages[0].Commands) != 0 {
		t.Fatalf("expected one empty page, got %+v", doc.Pages)
	}
}

// 每个源页都从新页开始，即使上一页仍有剩余空间。
func TestComposePageParity(t *testing.T) {
	long := strings.Repeat("word ", 900)
	src := []string{"short", long, "", "A\n\nB", "tail"}
	doc, err := Compose(src, a4, body, ComposeOptions{CharBudget: 40})
	if err != nil {
		t.Fatalf("Compose error: %v", err)
	}
	if len(doc.Pages) < len(src) {
		t.Fatalf("expected at least %d pages, got %d", len(src), len(doc.Pages))
	}
	seen := map[int]bool{}
	prev := -1
	for i, p := range doc.Pages {
		if p.Source < prev {
			t.Fatalf("page %d: source order went backwards (%d after %d)", i, p.Source, prev)
		}
		if !seen[p.Source] {
			seen[p.Source] = true
			if len(p.Commands) > 0 && p.Commands[0].Y != a4.Top() {
				t.Fatalf("first page of source %d does not start at the top", p.Source)
			}
		}
		prev = p.Source
	}
	for i := range src {
		if !seen[i] {
			t.Fatalf("source page %d produced no output page", i)
		}
	}
	assertVerticalBound(t, doc.Pages, a4)
}

func TestComposeOverflowSplitsPage(t *testing.T) {
	text := strings.Repeat("overflowing line of text\n", 60)
	doc, err := Compose([]string{text}, a4, body, ComposeOptions{})
	if err != nil {
		t.Fatalf("Compose error: %v", err)
	}
	if len(doc.Pages) < 2 {
		t.Fatalf("expected at least 2 pages, got %d", len(doc.Pages))
	}
	total := 0
	for _, p := range doc.Pages {
		if p.Source != 0 {
			t.Fatalf("unexpected source %d", p.Source)
		}
		total += len(p.Commands)
	}
	if total != 60 {
		t.Fatalf("expected 60 draw commands in total, got %d", total)
	}
	assertVerticalBound(t, doc.Pages, a4)
}

func TestComposeResolvesFontOnce(t *testing.T) {
	r := &stubResolver{fallback: "Go-Regular"}
	doc, err := Compose([]string{"a", "b", "c"}, a4, body, ComposeOptions{Fonts: r})
	if err != nil {
		t.Fatalf("Compose error: %v", err)
	}
	if r.calls != 1 {
		t.Fatalf("expected 1 resolve call, got %d", r.calls)
	}
	if doc.Font.Name != "Go-Regular" {
		t.Fatalf("document font not resolved: %+v", doc.Font)
	}
	for _, p := range doc.Pages {
		for _, c := range p.Commands {
			if c.Font != "Go-Regular" {
				t.Fatalf("command uses unresolved font %q", c.Font)
			}
		}
	}
}

func TestComposeRejectsInvalidConfiguration(t *testing.T) {
	cases := []struct {
		name  string
		geom  PageGeometry
		font  FontSpec
		opts  ComposeOptions
		field string
	}{
		{"narrow", PageGeometry{Width: 80, Height: 842, MarginLeft: 40, MarginRight: 40}, body, ComposeOptions{}, "width"},
		{"short", PageGeometry{Width: 595, Height: 100, TopOffset: 60, BottomOffset: 60}, body, ComposeOptions{}, "height"},
		{"negative margin", PageGeometry{Width: 595, Height: 842, MarginLeft: -1}, body, ComposeOptions{}, "marginLeft"},
		{"zero line height", a4, FontSpec{Name: "Deva", Size: 12}, ComposeOptions{}, "font.lineHeight"},
		{"negative budget", a4, body, ComposeOptions{CharBudget: -3}, "charBudget"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := Compose([]string{"x"}, tc.geom, tc.font, tc.opts)
			if doc != nil {
				t.Fatalf("expected no document on configuration error")
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigurationError, got %v", err)
			}
			if cfgErr.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, cfgErr.Field)
			}
		})
	}
}
