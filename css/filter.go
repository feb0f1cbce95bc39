package css

import (
	"regexp"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	cssparse "github.com/tdewolff/parse/v2/css"
	"golang.org/x/net/html"
)

// suspectValue matches value fragments that have no place in generated
// declarations regardless of token structure. Checked case-insensitively
// on the whole declaration before lexing.
var suspectValue = regexp.MustCompile(`(?i)expression\s*\(|javascript\s*:|vbscript\s*:|data\s*:|-moz-binding|behavior\s*:`)

// percentOctet matches percent-encoded octets removed by class-name
// sanitization.
var percentOctet = regexp.MustCompile(`%[a-fA-F0-9]{2}`)

// Filter vets a single generated declaration of the form
// "property: value". It returns the input unchanged when the
// declaration is safe and the empty string otherwise; callers treat a
// declaration as safe iff Filter(s) == s. The filter is a defense
// against CSS injection through preset and style values, not a CSS
// validator.
func Filter(decl string) string {
	prop, _, ok := strings.Cut(decl, ":")
	if !ok {
		return ""
	}
	if !safeProperty(strings.TrimSpace(prop)) {
		return ""
	}
	if !safeValue(decl) {
		return ""
	}
	return decl
}

// safeProperty accepts regular property names and --prefixed custom
// properties.
func safeProperty(name string) bool {
	if name == "" {
		return false
	}
	rest := name
	if strings.HasPrefix(name, "--") {
		rest = name[2:]
		if rest == "" {
			return false
		}
	}
	for _, r := range rest {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return false
		}
	}
	return true
}

func safeValue(decl string) bool {
	for _, r := range decl {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	if strings.ContainsAny(decl, `<>\`) {
		return false
	}
	if strings.Contains(decl, "/*") {
		return false
	}
	if strings.Count(decl, `"`)%2 == 1 || strings.Count(decl, `'`)%2 == 1 {
		return false
	}
	if suspectValue.MatchString(decl) {
		return false
	}
	return lexOK(decl)
}

// lexOK tokenizes the declaration and rejects malformed or smuggled
// constructs the substring checks cannot see: unterminated strings and
// urls, stray braces or semicolons, unbalanced parentheses, urls with
// remote-code schemes.
func lexOK(decl string) bool {
	l := cssparse.NewLexer(parse.NewInputString(decl))
	depth := 0
	for {
		tt, data := l.Next()
		switch tt {
		case cssparse.ErrorToken:
			return depth == 0
		case cssparse.BadStringToken, cssparse.BadURLToken,
			cssparse.LeftBraceToken, cssparse.RightBraceToken,
			cssparse.SemicolonToken, cssparse.CommentToken:
			return false
		case cssparse.FunctionToken, cssparse.LeftParenthesisToken:
			depth++
		case cssparse.RightParenthesisToken:
			depth--
			if depth < 0 {
				return false
			}
		case cssparse.URLToken:
			if !safeURL(string(data)) {
				return false
			}
		}
	}
}

// safeURL accepts relative references and http(s) urls inside url().
func safeURL(tok string) bool {
	inner := strings.TrimPrefix(strings.ToLower(tok), "url(")
	inner = strings.TrimSuffix(inner, ")")
	inner = strings.Trim(inner, ` "'`)
	colon := strings.Index(inner, ":")
	if colon < 0 {
		return true
	}
	scheme := inner[:colon]
	return scheme == "http" || scheme == "https"
}

// EscapeHTML escapes HTML-significant characters. A value is safe for
// use as a human-readable label iff EscapeHTML(v) == v.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

// SanitizeHTMLClass strips percent-encoded octets and every character
// outside [A-Za-z0-9_-]. A slug is class-safe iff the sanitized form
// equals the input.
func SanitizeHTMLClass(s string) string {
	s = percentOctet.ReplaceAllString(s, "")
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}
