package theme

import (
	"encoding/json"
	"math"

	"themec/blocks"
	"themec/tree"
)

// Exactly two document versions exist. Version 0 documents are
// sanitized against the flat per-block schema and restructured into
// the version-1 shape; version 1 documents are only sanitized. Any
// other version discards all content.

// consolidatedVariants lists the per-variant block names the
// version-0 upgrade folds into their parent block.
var consolidatedVariants = []struct {
	parent   string
	variants []string
}{
	{"core/heading", []string{"h1", "h2", "h3", "h4", "h5", "h6"}},
	{"core/post-title", []string{"h1", "h2", "h3", "h4", "h5", "h6"}},
	{"core/query-title", []string{"h1", "h2", "h3", "h4", "h5", "h6"}},
}

// documentVersion reads the version marker. Absent means 0; anything
// non-integral means unsupported (-1).
func documentVersion(raw tree.Node) int {
	v, ok := raw["version"]
	if !ok {
		return 0
	}
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		if t == math.Trunc(t) {
			return int(t)
		}
		return -1
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i)
		}
		return -1
	default:
		return -1
	}
}

// canonicalize dispatches raw input to the matching version handler
// and always yields a well-formed version-1 tree.
func canonicalize(raw tree.Node, md blocks.Metadata) tree.Node {
	if raw == nil {
		raw = tree.Node{}
	}
	switch documentVersion(raw) {
	case 0:
		return migrateV0(raw, md)
	case 1:
		return sanitizeV1(raw, md)
	default:
		return tree.Node{"version": 1}
	}
}

// sanitizeV1 schema-intersects a version-1 document, keeping block
// subtrees only for registered names.
func sanitizeV1(raw tree.Node, md blocks.Metadata) tree.Node {
	clean := tree.Intersect(raw, schemaV1(md))
	out := tree.Node{"version": 1}
	for _, key := range []string{"settings", "styles", "customTemplates", "templateParts"} {
		if v, ok := clean[key]; ok {
			out[key] = v
		}
	}
	return out
}

// migrateV0 sanitizes a version-0 document against its flat schema and
// restructures it into the version-1 shape.
func migrateV0(raw tree.Node, md blocks.Metadata) tree.Node {
	clean := tree.Intersect(raw, schemaV0(md))
	out := tree.Node{"version": 1}
	if s := upgradeSettingsV0(tree.GetNode(clean, []string{"settings"})); len(s) > 0 {
		out["settings"] = s
	}
	if s := upgradeStylesV0(tree.GetNode(clean, []string{"styles"})); len(s) > 0 {
		out["styles"] = s
	}
	for _, key := range []string{"customTemplates", "templateParts"} {
		if v, ok := clean[key]; ok {
			out[key] = v
		}
	}
	return out
}

// upgradeSettingsV0 promotes the defaults subtree to the top level,
// overlays the root subtree on it, moves remaining per-block entries
// under "blocks" and folds consolidated variants into their parent.
func upgradeSettingsV0(settings tree.Node) tree.Node {
	if len(settings) == 0 {
		return nil
	}

	base := tree.Node{}
	if d, ok := tree.AsNode(settings[blocks.Defaults]); ok {
		base = tree.Merge(base, d)
	}
	if r, ok := tree.AsNode(settings[blocks.Root]); ok {
		base = mergeSettings(base, r)
	}

	blockNodes := tree.Node{}
	for name, sub := range settings {
		if name == blocks.Root || name == blocks.Defaults {
			continue
		}
		if sn, ok := tree.AsNode(sub); ok {
			blockNodes[name], _ = tree.Clone(sn).(tree.Node)
		}
	}

	for _, c := range consolidatedVariants {
		for _, v := range c.variants {
			vn, ok := tree.AsNode(blockNodes[c.parent+"/"+v])
			if !ok {
				continue
			}
			parent, ok := tree.AsNode(blockNodes[c.parent])
			if !ok {
				parent = tree.Node{}
			}
			blockNodes[c.parent] = mergeSettings(parent, vn)
			delete(blockNodes, c.parent+"/"+v)
		}
	}

	if len(blockNodes) > 0 {
		base["blocks"] = blockNodes
	}
	if len(base) == 0 {
		return nil
	}
	return base
}

// mergeSettings deep-merges incoming over base and re-copies the
// list-valued settings paths so preset lists replace instead of
// combining.
func mergeSettings(base, incoming tree.Node) tree.Node {
	out := tree.Merge(base, incoming)
	for _, p := range listSettingsPaths {
		if v := tree.Get(incoming, p, nil); v != nil {
			tree.Set(out, p, tree.Clone(v))
		}
	}
	return out
}

// upgradeStylesV0 promotes the root subtree to the top level,
// relocates legacy link colors, moves remaining per-block entries
// under "blocks" and nests consolidated variants as elements of their
// parent.
func upgradeStylesV0(styles tree.Node) tree.Node {
	if len(styles) == 0 {
		return nil
	}

	base := tree.Node{}
	if r, ok := tree.AsNode(styles[blocks.Root]); ok {
		base, _ = tree.Clone(r).(tree.Node)
		relocateLinkColor(base)
	}

	blockNodes := tree.Node{}
	for name, sub := range styles {
		if name == blocks.Root || name == blocks.Defaults {
			continue
		}
		sn, ok := tree.AsNode(sub)
		if !ok {
			continue
		}
		bn, _ := tree.Clone(sn).(tree.Node)
		relocateLinkColor(bn)
		blockNodes[name] = bn
	}

	for _, c := range consolidatedVariants {
		for _, v := range c.variants {
			vn, ok := tree.AsNode(blockNodes[c.parent+"/"+v])
			if !ok {
				continue
			}
			parent, ok := tree.AsNode(blockNodes[c.parent])
			if !ok {
				parent = tree.Node{}
			}
			tree.Set(parent, []string{"elements", v}, vn)
			blockNodes[c.parent] = parent
			delete(blockNodes, c.parent+"/"+v)
		}
	}

	if len(blockNodes) > 0 {
		base["blocks"] = blockNodes
	}
	if len(base) == 0 {
		return nil
	}
	return base
}

// relocateLinkColor moves a legacy color.link value into the
// elements.link.color.text slot, in place.
func relocateLinkColor(n tree.Node) {
	v := tree.Get(n, []string{"color", "link"}, nil)
	if v == nil {
		return
	}
	tree.Set(n, []string{"elements", "link", "color", "text"}, v)
	tree.Remove(n, []string{"color", "link"})
	if c, ok := tree.AsNode(n["color"]); ok && len(c) == 0 {
		delete(n, "color")
	}
}
