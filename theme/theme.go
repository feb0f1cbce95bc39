// Package theme implements the design-token engine: it ingests a
// versioned theme configuration document, migrates and sanitizes it
// into the canonical version-1 shape, and compiles it into a CSS
// stylesheet of custom properties, per-element style rules and preset
// utility classes. Derived read-only views (settings, custom
// templates, template parts) are exposed alongside.
package theme

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"themec/blocks"
	"themec/tree"
)

// Style selects which part of the stylesheet GetStylesheet emits.
type Style string

const (
	StyleAll          Style = "all"
	StyleBlockStyles  Style = "block_styles"
	StyleCSSVariables Style = "css_variables"
)

// CustomTemplate is the resolved view of one customTemplates entry.
type CustomTemplate struct {
	Title     string
	PostTypes []string
}

// TemplatePart is the resolved view of one templateParts entry.
type TemplatePart struct {
	Area string
}

// Theme owns one canonical configuration tree. The tree is mutated in
// place by Merge and RemoveInsecureProperties and read by everything
// else; a Theme is not safe for concurrent use.
type Theme struct {
	doc    tree.Node
	md     blocks.Metadata
	order  []string
	pretty bool
	log    *zap.Logger
}

// Option adjusts engine construction.
type Option func(*Theme)

// WithPretty switches stylesheet output to the multi-line debug form.
func WithPretty() Option {
	return func(t *Theme) { t.pretty = true }
}

// New builds a Theme from raw input. The document version is resolved
// once, here: version 0 input is sanitized and upgraded, version 1
// input is sanitized, anything else is discarded down to the version
// marker. New never fails; malformed subtrees collapse to empty ones.
func New(raw tree.Node, resolver *blocks.Resolver, log *zap.Logger, opts ...Option) *Theme {
	if log == nil {
		log = zap.NewNop()
	}
	t := &Theme{
		md:    resolver.Metadata(),
		order: resolver.Order(),
		log:   log.Named("theme"),
	}
	for _, o := range opts {
		o(t)
	}
	t.doc = canonicalize(raw, t.md)
	t.log.Debug("Theme constructed",
		zap.Int("input version", documentVersion(raw)),
		zap.Bool("has settings", t.doc["settings"] != nil),
		zap.Bool("has styles", t.doc["styles"] != nil))
	return t
}

// FromJSON decodes a JSON theme document and builds a Theme from it.
// Only the decode can fail; document content never does.
func FromJSON(data []byte, resolver *blocks.Resolver, log *zap.Logger, opts ...Option) (*Theme, error) {
	var raw tree.Node
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode theme document: %w", err)
	}
	return New(raw, resolver, log, opts...), nil
}

// GetRawData returns the canonical tree itself, for persistence and
// merge interchange. Callers must not alias it across engine
// instances.
func (t *Theme) GetRawData() tree.Node {
	return t.doc
}

// GetSettings returns the settings subtree, or an empty mapping.
func (t *Theme) GetSettings() tree.Node {
	if s := tree.GetNode(t.doc, []string{"settings"}); s != nil {
		return s
	}
	return tree.Node{}
}

// GetCustomTemplates resolves the customTemplates entries into a
// per-name view. Missing titles default to "", missing post types to
// ["page"]. Entries without a name are dropped.
func (t *Theme) GetCustomTemplates() map[string]CustomTemplate {
	out := map[string]CustomTemplate{}
	items, ok := t.doc["customTemplates"].([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		n, ok := tree.AsNode(item)
		if !ok {
			continue
		}
		name, _ := n["name"].(string)
		if name == "" {
			continue
		}
		ct := CustomTemplate{PostTypes: []string{"page"}}
		if title, ok := n["title"].(string); ok {
			ct.Title = title
		}
		if raw, ok := n["postTypes"].([]any); ok {
			types := make([]string, 0, len(raw))
			for _, v := range raw {
				if s, ok := v.(string); ok {
					types = append(types, s)
				}
			}
			ct.PostTypes = types
		}
		out[name] = ct
	}
	return out
}

// GetTemplateParts resolves the templateParts entries into a per-name
// view with the area defaulting to "".
func (t *Theme) GetTemplateParts() map[string]TemplatePart {
	out := map[string]TemplatePart{}
	items, ok := t.doc["templateParts"].([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		n, ok := tree.AsNode(item)
		if !ok {
			continue
		}
		name, _ := n["name"].(string)
		if name == "" {
			continue
		}
		tp := TemplatePart{}
		if area, ok := n["area"].(string); ok {
			tp.Area = area
		}
		out[name] = tp
	}
	return out
}
