package theme

import (
	"go.uber.org/zap"

	"themec/blocks"
	"themec/css"
	"themec/tree"
)

// RemoveInsecureProperties rebuilds the settings and styles subtrees
// from scratch, keeping only values whose generated declarations pass
// the CSS safety filter unchanged and only preset entries whose slug
// and name survive sanitization unchanged. Everything else is dropped
// silently. The live tree is swapped only after both passes complete.
func (t *Theme) RemoveInsecureProperties() {
	styles := t.sanitizeStyles()
	settings := t.sanitizeSettings()

	if _, had := t.doc["styles"]; had {
		if len(styles) > 0 {
			t.doc["styles"] = styles
		} else {
			delete(t.doc, "styles")
		}
	}
	if _, had := t.doc["settings"]; had {
		if len(settings) > 0 {
			t.doc["settings"] = settings
		} else {
			delete(t.doc, "settings")
		}
	}
}

// styleSanitizeNodes lists every node carrying style content: the
// root, each element under the root, each block, and each element
// under each block. Paths are relative to the document root.
func (t *Theme) styleSanitizeNodes() [][]string {
	nodes := [][]string{{"styles"}}
	nodes = append(nodes, t.elementNodes([]string{"styles"})...)
	for _, name := range t.order {
		if name == blocks.Root || name == blocks.Defaults {
			continue
		}
		path := []string{"styles", "blocks", name}
		if tree.GetNode(t.doc, path) == nil {
			continue
		}
		nodes = append(nodes, path)
		nodes = append(nodes, t.elementNodes(path)...)
	}
	return nodes
}

func (t *Theme) elementNodes(base []string) [][]string {
	var nodes [][]string
	for _, e := range elementNames {
		path := append(append([]string{}, base...), "elements", e)
		if tree.GetNode(t.doc, path) != nil {
			nodes = append(nodes, path)
		}
	}
	return nodes
}

// sanitizeStyles recomputes every node's declarations the way the
// compiler does and copies back, per declaration, the original source
// value — but only when the rendered "property: value" text passes the
// safety filter unchanged.
func (t *Theme) sanitizeStyles() tree.Node {
	out := tree.Node{}
	for _, path := range t.styleSanitizeNodes() {
		input := tree.GetNode(t.doc, path)
		if len(input) == 0 {
			continue
		}
		kept := tree.Node{}
		for _, d := range styleDeclarations(input) {
			rendered := d.Render()
			if css.Filter(rendered) != rendered {
				t.log.Debug("Dropping unsafe style declaration", zap.String("property", d.Property))
				continue
			}
			orig := tree.Get(input, d.path, nil)
			if orig == nil {
				continue
			}
			tree.Set(kept, d.path, tree.Clone(orig))
		}
		if len(kept) > 0 {
			placeAt(out, path[1:], kept)
		}
	}
	return out
}

// settingsSanitizeNodes lists every node carrying settings content:
// the root, the elements subtree if present, and each block.
func (t *Theme) settingsSanitizeNodes() [][]string {
	nodes := [][]string{{"settings"}}
	if tree.GetNode(t.doc, []string{"settings", "elements"}) != nil {
		nodes = append(nodes, []string{"settings", "elements"})
	}
	for _, name := range t.order {
		if name == blocks.Root || name == blocks.Defaults {
			continue
		}
		path := []string{"settings", "blocks", name}
		if tree.GetNode(t.doc, path) != nil {
			nodes = append(nodes, path)
		}
	}
	return nodes
}

// sanitizeSettings keeps, per node and preset category, only the
// entries whose name, slug and generated declarations all survive
// their respective checks unchanged.
func (t *Theme) sanitizeSettings() tree.Node {
	out := tree.Node{}
	for _, path := range t.settingsSanitizeNodes() {
		input := tree.GetNode(t.doc, path)
		if len(input) == 0 {
			continue
		}
		kept := tree.Node{}
		for _, cat := range presetsMetadata {
			var safe []any
			for _, entry := range presetEntries(input, cat) {
				if !t.safePresetEntry(entry, cat) {
					continue
				}
				safe = append(safe, tree.Clone(entry))
			}
			if len(safe) > 0 {
				tree.Set(kept, cat.Path, safe)
			}
		}
		if len(kept) > 0 {
			placeAt(out, path[1:], kept)
		}
	}
	return out
}

func (t *Theme) safePresetEntry(entry tree.Node, cat PresetMetadata) bool {
	slug := tree.ScalarString(entry["slug"])
	value := tree.ScalarString(entry[cat.ValueKey])
	if slug == "" || value == "" {
		return false
	}
	if css.SanitizeHTMLClass(slug) != slug {
		t.log.Debug("Dropping preset with unsafe slug", zap.String("slug", slug))
		return false
	}
	if name := tree.ScalarString(entry["name"]); css.EscapeHTML(name) != name {
		t.log.Debug("Dropping preset with unsafe name", zap.String("slug", slug))
		return false
	}
	decls := []css.Declaration{}
	if len(cat.Classes) > 0 {
		for _, class := range cat.Classes {
			decls = append(decls, css.Declaration{Property: class.Property, Value: value})
		}
	} else {
		decls = append(decls, css.Declaration{Property: presetVarPrefix + cat.CSSVarInfix + "--" + slug, Value: value})
	}
	for _, d := range decls {
		rendered := d.Render()
		if css.Filter(rendered) != rendered {
			t.log.Debug("Dropping preset with unsafe value", zap.String("slug", slug))
			return false
		}
	}
	return true
}

// placeAt writes sub into out at rel; an empty rel means sub's keys
// belong at the top level.
func placeAt(out tree.Node, rel []string, sub tree.Node) {
	if len(rel) == 0 {
		for k, v := range sub {
			out[k] = v
		}
		return
	}
	existing := tree.GetNode(out, rel)
	if existing == nil {
		tree.Set(out, rel, sub)
		return
	}
	for k, v := range sub {
		existing[k] = v
	}
}
