package theme

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"themec/blocks"
	"themec/css"
	"themec/tree"
)

const (
	presetVarPrefix = "--wp--preset--"
	customVarPrefix = "--wp--custom--"
	varIndirection  = "var:"
)

// docNode is one addressable settings or styles node together with the
// selector its output targets.
type docNode struct {
	path     []string
	selector string
}

// settingsNodes lists the root settings node plus one node per block
// whose name resolves to a selector, in block-registry order.
func (t *Theme) settingsNodes() []docNode {
	return t.subtreeNodes("settings")
}

// stylesNodes is settingsNodes for the styles subtree.
func (t *Theme) stylesNodes() []docNode {
	return t.subtreeNodes("styles")
}

func (t *Theme) subtreeNodes(top string) []docNode {
	nodes := []docNode{{path: []string{top}, selector: blocks.RootSelector}}
	blockNodes := tree.GetNode(t.doc, []string{top, "blocks"})
	if blockNodes == nil {
		return nodes
	}
	for _, name := range t.order {
		if name == blocks.Root || name == blocks.Defaults {
			continue
		}
		if _, ok := tree.AsNode(blockNodes[name]); !ok {
			continue
		}
		entry, ok := t.md[name]
		if !ok || entry.Selector == "" {
			t.log.Debug("Dropping block without selector", zap.String("block", name))
			continue
		}
		nodes = append(nodes, docNode{path: []string{top, "blocks", name}, selector: entry.Selector})
	}
	return nodes
}

// GetStylesheet compiles the tree into CSS text. For StyleAll the
// cascade order is fixed: custom properties first (root, then blocks),
// then style rules, then preset utility classes — later rules win on
// equal specificity, so this order is part of the contract. Unknown
// modes behave as StyleAll.
func (t *Theme) GetStylesheet(mode Style) string {
	sheet := &css.Stylesheet{Pretty: t.pretty}
	switch mode {
	case StyleBlockStyles:
		t.appendBlockStyles(sheet)
	case StyleCSSVariables:
		t.appendCSSVariables(sheet)
	default:
		t.appendCSSVariables(sheet)
		t.appendBlockStyles(sheet)
	}
	return sheet.String()
}

// appendCSSVariables emits one ruleset per settings node holding the
// preset custom properties followed by the flattened custom values.
func (t *Theme) appendCSSVariables(sheet *css.Stylesheet) {
	for _, n := range t.settingsNodes() {
		node := tree.GetNode(t.doc, n.path)
		if node == nil {
			continue
		}
		decls := presetDeclarations(node)
		decls = append(decls, customDeclarations(node)...)
		sheet.Append(css.Ruleset{Selector: n.selector, Declarations: decls})
	}
}

// appendBlockStyles emits the per-node style rules followed by every
// preset utility class.
func (t *Theme) appendBlockStyles(sheet *css.Stylesheet) {
	for _, n := range t.stylesNodes() {
		node := tree.GetNode(t.doc, n.path)
		if node == nil {
			continue
		}
		sheet.Append(css.Ruleset{Selector: n.selector, Declarations: declarationsOf(styleDeclarations(node))})
	}
	for _, n := range t.settingsNodes() {
		node := tree.GetNode(t.doc, n.path)
		if node == nil {
			continue
		}
		appendPresetClasses(sheet, n, node)
	}
}

// presetDeclarations extracts "--wp--preset--<infix>--<slug>"
// declarations from every preset list of the node, in category table
// order, entries in list order.
func presetDeclarations(node tree.Node) []css.Declaration {
	var decls []css.Declaration
	for _, cat := range presetsMetadata {
		for _, entry := range presetEntries(node, cat) {
			slug := tree.ScalarString(entry["slug"])
			value := tree.ScalarString(entry[cat.ValueKey])
			if slug == "" || value == "" {
				continue
			}
			decls = append(decls, css.Declaration{
				Property: presetVarPrefix + cat.CSSVarInfix + "--" + slug,
				Value:    value,
			})
		}
	}
	return decls
}

// presetEntries returns the mapping-shaped entries of the node's
// preset list for one category.
func presetEntries(node tree.Node, cat PresetMetadata) []tree.Node {
	list, ok := tree.Get(node, cat.Path, nil).([]any)
	if !ok {
		return nil
	}
	entries := make([]tree.Node, 0, len(list))
	for _, e := range list {
		if en, ok := tree.AsNode(e); ok {
			entries = append(entries, en)
		}
	}
	return entries
}

// customDeclarations flattens the free-form custom subtree into
// "--wp--custom--" properties. Flattened names are emitted sorted so
// output is deterministic.
func customDeclarations(node tree.Node) []css.Declaration {
	custom := tree.GetNode(node, []string{"custom"})
	if custom == nil {
		return nil
	}
	flat := tree.Flatten(custom, customVarPrefix, "--")
	names := make([]string, 0, len(flat))
	for name := range flat {
		names = append(names, name)
	}
	sort.Strings(names)

	var decls []css.Declaration
	for _, name := range names {
		value := tree.ScalarString(flat[name])
		if value == "" {
			continue
		}
		decls = append(decls, css.Declaration{Property: name, Value: value})
	}
	return decls
}

// styleDecl carries a generated declaration together with the source
// path it was read from, so the sanitizer can copy the original value
// rather than the rendered one.
type styleDecl struct {
	css.Declaration
	path []string
}

func declarationsOf(decls []styleDecl) []css.Declaration {
	out := make([]css.Declaration, 0, len(decls))
	for _, d := range decls {
		out = append(out, d.Declaration)
	}
	return out
}

// styleDeclarations walks the property table over one styles node.
// Shorthands expand to longhands; "var:a|b|c" values are rewritten to
// their var() form.
func styleDeclarations(node tree.Node) []styleDecl {
	var decls []styleDecl
	for _, pm := range propertiesMetadata {
		if len(pm.Subproperties) > 0 {
			for _, sub := range pm.Subproperties {
				path := append(append([]string{}, pm.Path...), sub)
				value := resolveValue(tree.Get(node, path, nil))
				if value == "" {
					continue
				}
				decls = append(decls, styleDecl{
					Declaration: css.Declaration{Property: pm.Name + "-" + sub, Value: value},
					path:        path,
				})
			}
			continue
		}
		value := resolveValue(tree.Get(node, pm.Path, nil))
		if value == "" {
			continue
		}
		decls = append(decls, styleDecl{
			Declaration: css.Declaration{Property: pm.Name, Value: value},
			path:        pm.Path,
		})
	}
	return decls
}

// resolveValue renders a style leaf, resolving the "var:a|b|c" preset
// indirection to "var(--wp--a--b--c)".
func resolveValue(v any) string {
	s := tree.ScalarString(v)
	if strings.HasPrefix(s, varIndirection) {
		return "var(--wp--" + strings.ReplaceAll(s[len(varIndirection):], "|", "--") + ")"
	}
	return s
}

// appendPresetClasses emits one utility-class ruleset per preset entry
// and configured class. The node's own selector prefixes the class
// except at :root, where the bare class keeps specificity low.
func appendPresetClasses(sheet *css.Stylesheet, n docNode, node tree.Node) {
	prefix := n.selector
	if prefix == blocks.RootSelector {
		prefix = ""
	}
	for _, cat := range presetsMetadata {
		for _, entry := range presetEntries(node, cat) {
			slug := tree.ScalarString(entry["slug"])
			value := tree.ScalarString(entry[cat.ValueKey])
			if slug == "" || value == "" {
				continue
			}
			for _, class := range cat.Classes {
				sheet.Append(css.Ruleset{
					Selector: appendToSelector(prefix, ".has-"+slug+"-"+class.Suffix),
					Declarations: []css.Declaration{
						{Property: class.Property, Value: value + " !important"},
					},
				})
			}
		}
	}
}

// appendToSelector concatenates suffix to each comma-separated part of
// selector; an empty selector yields the bare suffix.
func appendToSelector(selector, suffix string) string {
	if selector == "" {
		return suffix
	}
	parts := strings.Split(selector, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p) + suffix
	}
	return strings.Join(parts, ",")
}
