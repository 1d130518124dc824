package normalize

import "testing"

func TestLoginID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"editor", "editor"},
		{"EDITOR", "editor"},
		{"  Editor  ", "editor"},
		{"\teditor\n", "editor"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := LoginID(tt.input); got != tt.want {
				t.Errorf("LoginID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"getting-started", "getting-started"},
		{"Getting-Started", "getting-started"},
		{"  spacing  ", "spacing"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Slug(tt.input); got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRoleAndStatus(t *testing.T) {
	if got := Role(" Admin "); got != "admin" {
		t.Errorf("Role() = %q, want %q", got, "admin")
	}
	if got := Status(" PUBLISHED "); got != "published" {
		t.Errorf("Status() = %q, want %q", got, "published")
	}
}

func TestLabelKeepsCase(t *testing.T) {
	if got := Label("  Design Tokens  "); got != "Design Tokens" {
		t.Errorf("Label() = %q, want %q", got, "Design Tokens")
	}
	if got := Fold("  Design Tokens  "); got != "design tokens" {
		t.Errorf("Fold() = %q, want %q", got, "design tokens")
	}
}
