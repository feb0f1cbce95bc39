package theme

import (
	"themec/blocks"
	"themec/tree"
)

// Merge combines incoming into the receiver: a deep merge where
// mapping values recurse and everything else is replaced. The generic
// merge already replaces lists, but the known list-valued settings
// paths are re-copied explicitly afterwards, at the root settings node
// and at every block node present after the merge, so preset lists can
// never end up element-merged whatever shape the inputs had.
func (t *Theme) Merge(incoming *Theme) {
	if incoming == nil {
		return
	}
	t.doc = tree.Merge(t.doc, incoming.doc)

	nodes := [][]string{{"settings"}}
	if blockNodes := tree.GetNode(t.doc, []string{"settings", "blocks"}); blockNodes != nil {
		for _, name := range t.order {
			if name == blocks.Root || name == blocks.Defaults {
				continue
			}
			if _, ok := tree.AsNode(blockNodes[name]); ok {
				nodes = append(nodes, []string{"settings", "blocks", name})
			}
		}
	}

	for _, node := range nodes {
		src := tree.GetNode(incoming.doc, node)
		if src == nil {
			continue
		}
		for _, p := range listSettingsPaths {
			v := tree.Get(src, p, nil)
			if v == nil {
				continue
			}
			full := append(append([]string{}, node...), p...)
			tree.Set(t.doc, full, tree.Clone(v))
		}
	}
}
