package svgsanitize

import (
	"errors"
	"strings"
	"testing"
)

const simpleIcon = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="M4 4h16v16H4z" fill="currentColor"/></svg>`

func TestSanitize_KeepsDrawing(t *testing.T) {
	got, err := Sanitize(simpleIcon)
	if err != nil {
		t.Fatalf("Sanitize() error = %v", err)
	}
	for _, want := range []string{"<svg", "<path", `d="M4 4h16v16H4z"`, `fill="currentColor"`} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestSanitize_StripsDangerousContent(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		exclude []string
	}{
		{
			"script element",
			`<svg viewBox="0 0 1 1"><script>alert(1)</script><path d="M0 0"/></svg>`,
			[]string{"<script", "alert(1)"},
		},
		{
			"event handler attribute",
			`<svg viewBox="0 0 1 1"><path d="M0 0" onclick="alert(1)"/></svg>`,
			[]string{"onclick", "alert(1)"},
		},
		{
			"onload on the root",
			`<svg onload="alert(1)" viewBox="0 0 1 1"><circle cx="1" cy="1" r="1"/></svg>`,
			[]string{"onload"},
		},
		{
			"foreignObject",
			`<svg viewBox="0 0 1 1"><foreignObject><iframe src="https://evil.test"></iframe></foreignObject><path d="M0 0"/></svg>`,
			[]string{"foreignobject", "iframe", "evil.test"},
		},
		{
			"embed and object",
			`<svg viewBox="0 0 1 1"><embed src="x"/><object data="y"></object><path d="M0 0"/></svg>`,
			[]string{"<embed", "<object"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sanitize(tt.input)
			if err != nil {
				t.Fatalf("Sanitize() error = %v", err)
			}
			lower := strings.ToLower(got)
			for _, bad := range tt.exclude {
				if strings.Contains(lower, strings.ToLower(bad)) {
					t.Errorf("output still contains %q:\n%s", bad, got)
				}
			}
			if !strings.Contains(lower, "<svg") {
				t.Errorf("drawing lost entirely:\n%s", got)
			}
		})
	}
}

func TestSanitize_SizeCap(t *testing.T) {
	big := `<svg viewBox="0 0 1 1"><path d="` + strings.Repeat("M0 0 L1 1 ", 8*1024) + `"/></svg>`
	if len(big) <= DefaultMaxBytes {
		t.Fatal("fixture should exceed the default cap")
	}

	if _, err := Sanitize(big); !errors.Is(err, ErrTooLarge) {
		t.Errorf("error = %v, want ErrTooLarge", err)
	}

	// A larger configured cap admits the same payload.
	if _, err := New(len(big) + 1).Sanitize(big); err != nil {
		t.Errorf("raised cap should accept the payload, got %v", err)
	}
}

func TestSanitize_RejectsNonSVG(t *testing.T) {
	for _, input := range []string{
		"",
		"just text",
		`<div>not an svg</div>`,
		`<script>alert(1)</script>`,
	} {
		if _, err := Sanitize(input); !errors.Is(err, ErrNotSVG) {
			t.Errorf("Sanitize(%q) error = %v, want ErrNotSVG", input, err)
		}
	}
}

func TestSanitize_GradientSurvives(t *testing.T) {
	input := `<svg viewBox="0 0 10 10"><linearGradient id="g"><stop offset="0" stop-color="#fff"/><stop offset="1" stop-color="#000"/></linearGradient><rect width="10" height="10" fill="url(#g)"/></svg>`
	got, err := Sanitize(input)
	if err != nil {
		t.Fatalf("Sanitize() error = %v", err)
	}
	lower := strings.ToLower(got)
	for _, want := range []string{"lineargradient", "stop-color", "<rect"} {
		if !strings.Contains(lower, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}
