// Package css holds the small CSS model the theme engine emits
// (declarations grouped into rulesets) and the safety primitives used
// to vet generated values: a single-pass declaration filter, HTML
// escaping and class-name sanitization.
package css

import (
	"fmt"
	"io"
	"strings"
)

// Declaration is a single "property: value" pair.
type Declaration struct {
	Property string
	Value    string
}

// Render returns the declaration text used by the safety filter and by
// ruleset serialization: "property: value".
func (d Declaration) Render() string {
	return d.Property + ": " + d.Value
}

// Ruleset is one selector with its declarations, in emission order.
type Ruleset struct {
	Selector     string
	Declarations []Declaration
}

// IsEmpty reports whether the ruleset would serialize to nothing.
func (r Ruleset) IsEmpty() bool {
	return len(r.Declarations) == 0
}

// Stylesheet is an ordered list of rulesets. Order is significant:
// later rulesets win on equal specificity, so callers must append in
// cascade order.
type Stylesheet struct {
	Rulesets []Ruleset

	// Pretty selects the multi-line debug form; the default is the
	// minified single-line form.
	Pretty bool
}

// Append adds a ruleset unless it is empty.
func (s *Stylesheet) Append(r Ruleset) {
	if r.IsEmpty() {
		return
	}
	s.Rulesets = append(s.Rulesets, r)
}

// WriteTo writes the stylesheet to w in ruleset order, implementing
// io.WriterTo.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, r := range s.Rulesets {
		var (
			n   int
			err error
		)
		if s.Pretty {
			n, err = writeRulesetPretty(w, r)
		} else {
			n, err = writeRulesetMinified(w, r)
		}
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

func writeRulesetPretty(w io.Writer, r Ruleset) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s {\n", r.Selector)
	total += n
	if err != nil {
		return total, err
	}
	for _, d := range r.Declarations {
		n, err = fmt.Fprintf(w, "\t%s;\n", d.Render())
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}

func writeRulesetMinified(w io.Writer, r Ruleset) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s{", r.Selector)
	total += n
	if err != nil {
		return total, err
	}
	for _, d := range r.Declarations {
		n, err = fmt.Fprintf(w, "%s:%s;", d.Property, d.Value)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprint(w, "}")
	total += n
	return total, err
}
