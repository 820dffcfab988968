package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度。
func TestPtMmRoundTrip(t *testing.T) {
	for _, pt := range []float64{0, 0.001, 1, 12, 14.4, 72, 595, 842} {
		back := pt * PtToMm * MmToPt
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%gpt back=%g diff=%g", pt, back, diff)
		}
	}
}

func TestParseLength(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"12pt", 12},
		{"1in", 72},
		{"25.4mm", 72},
		{"2.54cm", 72},
		{"40", 40},
	}
	for _, tc := range cases {
		l, err := ParseLength(tc.in)
		if err != nil {
			t.Fatalf("ParseLength(%q) error: %v", tc.in, err)
		}
		if got := l.ToPT(); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("ParseLength(%q).ToPT() = %g, want %g", tc.in, got, tc.want)
		}
	}
	if _, err := ParseLength("abc"); err == nil {
		t.Fatalf("expected error for non-numeric length")
	}
}

// TestLineHeightResolve 覆盖行距、倍数与绝对值三种语义。
func TestLineHeightResolve(t *testing.T) {
	size := Pt(12)
	leading := LineHeightSpec{Kind: LineHeightLeading, Len: Pt(6)}
	if got := leading.Resolve(size); got != 18 {
		t.Fatalf("leading 6pt: got %g want 18", got)
	}
	factor, err := ParseLineHeight("1.5x")
	if err != nil {
		t.Fatalf("ParseLineHeight error: %v", err)
	}
	if got := factor.Resolve(size); got != 18 {
		t.Fatalf("1.5x: got %g want 18", got)
	}
	abs, err := ParseLineHeight("20pt")
	if err != nil {
		t.Fatalf("ParseLineHeight error: %v", err)
	}
	if got := abs.Resolve(size); got != 20 {
		t.Fatalf("20pt: got %g want 20", got)
	}
}
