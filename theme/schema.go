package theme

import (
	"themec/blocks"
	"themec/tree"
)

// Schema trees for the intersection pass. A nil value accepts any
// value under that key; a nested tree restricts the keys below it.

// settingsSchema is the per-node settings vocabulary, shared by both
// versions.
var settingsSchema = tree.Node{
	"border": tree.Node{
		"customRadius": nil,
		"customColor":  nil,
		"customStyle":  nil,
		"customWidth":  nil,
	},
	"color": tree.Node{
		"custom":         nil,
		"customGradient": nil,
		"gradients":      nil,
		"link":           nil,
		"palette":        nil,
	},
	"spacing": tree.Node{
		"customPadding": nil,
		"units":         nil,
	},
	"typography": tree.Node{
		"customFontSize":        nil,
		"customLineHeight":      nil,
		"dropCap":               nil,
		"fontFamilies":          nil,
		"fontSizes":             nil,
		"customFontStyle":       nil,
		"customFontWeight":      nil,
		"customTextDecorations": nil,
		"customTextTransforms":  nil,
	},
	"custom": nil,
	"layout": nil,
}

// stylesSchema is the per-node style-leaf vocabulary, shared by both
// versions.
var stylesSchema = tree.Node{
	"border": tree.Node{
		"radius": nil,
		"color":  nil,
		"style":  nil,
		"width":  nil,
	},
	"color": tree.Node{
		"background": nil,
		"gradient":   nil,
		"link":       nil,
		"text":       nil,
	},
	"spacing": tree.Node{
		"padding": tree.Node{
			"top":    nil,
			"right":  nil,
			"bottom": nil,
			"left":   nil,
		},
	},
	"typography": tree.Node{
		"fontFamily":     nil,
		"fontSize":       nil,
		"fontStyle":      nil,
		"fontWeight":     nil,
		"lineHeight":     nil,
		"textDecoration": nil,
		"textTransform":  nil,
	},
}

// schemaV0 builds the whole-document schema for version-0 input.
// Settings and styles children sit directly under their top-level key,
// keyed by registered block name or sentinel.
func schemaV0(md blocks.Metadata) tree.Node {
	settings := tree.Node{}
	styles := tree.Node{}
	for name := range md {
		settings[name] = settingsSchema
		styles[name] = stylesSchema
	}
	return tree.Node{
		"settings":        settings,
		"styles":          styles,
		"customTemplates": nil,
		"templateParts":   nil,
	}
}

// schemaV1 builds the whole-document schema for version-1 input. Block
// subtrees live under a "blocks" wrapper restricted to registered
// names; styles additionally permit an "elements" subtree, top-level
// and per block.
func schemaV1(md blocks.Metadata) tree.Node {
	stylesWithElements := tree.Node{
		"elements": tree.Node{"link": stylesSchema},
	}
	for k, v := range stylesSchema {
		stylesWithElements[k] = v
	}

	settingsBlocks := tree.Node{}
	stylesBlocks := tree.Node{}
	for name := range md {
		if name == blocks.Root || name == blocks.Defaults {
			continue
		}
		settingsBlocks[name] = settingsSchema
		stylesBlocks[name] = stylesWithElements
	}

	settings := tree.Node{"blocks": settingsBlocks}
	for k, v := range settingsSchema {
		settings[k] = v
	}
	styles := tree.Node{"blocks": stylesBlocks}
	for k, v := range stylesWithElements {
		styles[k] = v
	}

	return tree.Node{
		"settings":        settings,
		"styles":          styles,
		"customTemplates": nil,
		"templateParts":   nil,
	}
}
