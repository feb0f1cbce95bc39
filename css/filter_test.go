package css_test

import (
	"testing"

	"themec/css"
)

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		decl string
		safe bool
	}{
		{"plain color", "color: #f00", true},
		{"custom property", "--wp--preset--color--red: #f00", true},
		{"var indirection", "color: var(--wp--preset--color--primary)", true},
		{"gradient", "background: linear-gradient(135deg, #fff 0%, #000 100%)", true},
		{"font stack", `font-family: "Helvetica Neue", sans-serif`, true},
		{"http url", "background-image: url(https://example.com/bg.png)", true},
		{"relative url", "background-image: url(images/bg.png)", true},
		{"javascript scheme", "background-image: url(javascript:alert(1))", false},
		{"data scheme", "background-image: url(data:text/html;base64,x)", false},
		{"expression", "width: expression(alert(1))", false},
		{"smuggled declaration", "color: red;position: fixed", false},
		{"smuggled ruleset", "color: red} body{display: none", false},
		{"comment opener", "color: red/*", false},
		{"backslash escape", `color: \72 ed`, false},
		{"angle bracket", "color: red<script>", false},
		{"control char", "color: red\x00", false},
		{"unterminated string", `font-family: "Open Sans`, false},
		{"unbalanced paren", "color: rgb(255, 0, 0", false},
		{"no colon", "colorred", false},
		{"bad property", "co lor: red", false},
		{"moz binding", "-moz-binding: url(https://example.com/x.xml)", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := css.Filter(tt.decl)
			if tt.safe && got != tt.decl {
				t.Errorf("Filter(%q) = %q, want unchanged", tt.decl, got)
			}
			if !tt.safe && got == tt.decl {
				t.Errorf("Filter(%q) passed, want rejected", tt.decl)
			}
		})
	}
}

func TestSanitizeHTMLClass(t *testing.T) {
	tests := []struct{ in, want string }{
		{"primary", "primary"},
		{"brand-blue_2", "brand-blue_2"},
		{"Upper", "Upper"},
		{"bad slug!", "badslug"},
		{"a%20b", "ab"},
		{"<script>", "script"},
	}
	for _, tt := range tests {
		if got := css.SanitizeHTMLClass(tt.in); got != tt.want {
			t.Errorf("SanitizeHTMLClass(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeHTML(t *testing.T) {
	if got := css.EscapeHTML("Vivid red"); got != "Vivid red" {
		t.Errorf("safe name changed: %q", got)
	}
	if got := css.EscapeHTML(`<img onerror=x>`); got == `<img onerror=x>` {
		t.Error("unsafe name passed unchanged")
	}
}
