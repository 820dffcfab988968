package binding

import "testing"

func TestInterpolate(t *testing.T) {
	vars := Vars{
		"name": "report",
		"to":   "hi",
		"meta": map[string]any{"title": "Quarterly"},
		"tags": map[string]string{"lang": "hindi"},
		"none": "",
	}
	cases := []struct {
		in, want string
	}{
		{"${name}_${to}.pdf", "report_hi.pdf"},
		{"${ name }", "report"},
		{"${meta.title}.pdf", "Quarterly.pdf"},
		{"${tags.lang}", "hindi"},
		{"${missing:-fallback}", "fallback"},
		{"${none:-empty}", "empty"},
		{"${name:-unused}", "report"},
		{"${missing}", "${missing}"},
		{"${meta.missing.deep}", "${meta.missing.deep}"},
		{"plain.pdf", "plain.pdf"},
	}
	for _, tc := range cases {
		if got := Interpolate(tc.in, vars); got != tc.want {
			t.Fatalf("Interpolate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestInterpolateNilVars(t *testing.T) {
	if got := Interpolate("${name:-doc}_${to}", nil); got != "doc_${to}" {
		t.Fatalf("unexpected result %q", got)
	}
}
