package theme

// The compiler and sanitizer are generic over the design-token
// vocabulary; these tables are the vocabulary. Adding a preset
// category or style property is a data change here, not a code change.

// PresetClass describes one utility class generated per preset entry:
// ".has-<slug>-<Suffix> { <Property>: <value> !important; }".
type PresetClass struct {
	Suffix   string
	Property string
}

// PresetMetadata describes one preset category: where its entries live
// under a settings node, which entry key carries the value, the infix
// of the generated "--wp--preset--<infix>--<slug>" custom property,
// and the utility classes each entry produces.
type PresetMetadata struct {
	Path        []string
	ValueKey    string
	CSSVarInfix string
	Classes     []PresetClass
}

// presetsMetadata drives preset extraction in table order.
var presetsMetadata = []PresetMetadata{
	{
		Path:        []string{"color", "palette"},
		ValueKey:    "color",
		CSSVarInfix: "color",
		Classes: []PresetClass{
			{Suffix: "color", Property: "color"},
			{Suffix: "background-color", Property: "background-color"},
		},
	},
	{
		Path:        []string{"color", "gradients"},
		ValueKey:    "gradient",
		CSSVarInfix: "gradient",
		Classes: []PresetClass{
			{Suffix: "gradient-background", Property: "background"},
		},
	},
	{
		Path:        []string{"typography", "fontSizes"},
		ValueKey:    "size",
		CSSVarInfix: "font-size",
		Classes: []PresetClass{
			{Suffix: "font-size", Property: "font-size"},
		},
	},
	{
		Path:        []string{"typography", "fontFamilies"},
		ValueKey:    "fontFamily",
		CSSVarInfix: "font-family",
		Classes:     nil,
	},
}

// PropertyMetadata maps one final CSS property name to the path that
// feeds it within a styles node. Subproperties expands a shorthand
// into "<name>-<sub>" longhands read from path+sub.
type PropertyMetadata struct {
	Name          string
	Path          []string
	Subproperties []string
}

// linkColorProperty is the synthetic custom property carrying the link
// element color; it leads the table so it is emitted before regular
// declarations.
const linkColorProperty = "--wp--style--color--link"

// propertiesMetadata drives style-declaration extraction in table
// order, which is also emission order.
var propertiesMetadata = []PropertyMetadata{
	{Name: linkColorProperty, Path: []string{"elements", "link", "color", "text"}},
	{Name: "background", Path: []string{"color", "gradient"}},
	{Name: "background-color", Path: []string{"color", "background"}},
	{Name: "border-radius", Path: []string{"border", "radius"}},
	{Name: "border-color", Path: []string{"border", "color"}},
	{Name: "border-width", Path: []string{"border", "width"}},
	{Name: "border-style", Path: []string{"border", "style"}},
	{Name: "color", Path: []string{"color", "text"}},
	{Name: "font-family", Path: []string{"typography", "fontFamily"}},
	{Name: "font-size", Path: []string{"typography", "fontSize"}},
	{Name: "font-style", Path: []string{"typography", "fontStyle"}},
	{Name: "font-weight", Path: []string{"typography", "fontWeight"}},
	{Name: "line-height", Path: []string{"typography", "lineHeight"}},
	{Name: "padding", Path: []string{"spacing", "padding"}, Subproperties: []string{"top", "right", "bottom", "left"}},
	{Name: "text-decoration", Path: []string{"typography", "textDecoration"}},
	{Name: "text-transform", Path: []string{"typography", "textTransform"}},
}

// elementNames is the style-element vocabulary: "link" plus the
// heading levels the version-0 upgrade consolidates into elements.
var elementNames = []string{"link", "h1", "h2", "h3", "h4", "h5", "h6"}

// listSettingsPaths are the settings paths holding preset lists or
// free-form custom values; on merge the incoming value replaces the
// base one wholesale instead of being combined.
var listSettingsPaths = [][]string{
	{"color", "palette"},
	{"color", "gradients"},
	{"spacing", "units"},
	{"typography", "fontSizes"},
	{"typography", "fontFamilies"},
	{"custom"},
}
