package theme

import (
	"reflect"
	"testing"

	"themec/tree"
)

func TestMergeListReplacement(t *testing.T) {
	base := New(tree.Node{
		"version": 1,
		"settings": tree.Node{
			"color": tree.Node{
				"palette": []any{
					tree.Node{"slug": "a", "name": "A", "color": "#a00"},
					tree.Node{"slug": "b", "name": "B", "color": "#b00"},
				},
			},
		},
	}, testResolver(), nil)

	incoming := New(tree.Node{
		"version": 1,
		"settings": tree.Node{
			"color": tree.Node{
				"palette": []any{
					tree.Node{"slug": "c", "name": "C", "color": "#c00"},
				},
			},
		},
	}, testResolver(), nil)

	base.Merge(incoming)

	palette, _ := tree.Get(base.GetRawData(), []string{"settings", "color", "palette"}, nil).([]any)
	if len(palette) != 1 {
		t.Fatalf("palette length = %d, want 1 (%v)", len(palette), palette)
	}
	if slug := palette[0].(tree.Node)["slug"]; slug != "c" {
		t.Errorf("palette slug = %v, want c", slug)
	}
}

func TestMergeScalarsAndDisjointKeys(t *testing.T) {
	base := New(tree.Node{
		"version": 1,
		"settings": tree.Node{
			"color":      tree.Node{"custom": true},
			"typography": tree.Node{"dropCap": true},
		},
	}, testResolver(), nil)

	incoming := New(tree.Node{
		"version": 1,
		"settings": tree.Node{
			"color": tree.Node{"custom": false},
		},
		"styles": tree.Node{
			"color": tree.Node{"text": "#222"},
		},
	}, testResolver(), nil)

	base.Merge(incoming)
	doc := base.GetRawData()

	if got := tree.Get(doc, []string{"settings", "color", "custom"}, nil); got != false {
		t.Errorf("custom = %v, want false", got)
	}
	if got := tree.Get(doc, []string{"settings", "typography", "dropCap"}, nil); got != true {
		t.Errorf("dropCap = %v, want true", got)
	}
	if got := tree.Get(doc, []string{"styles", "color", "text"}, nil); got != "#222" {
		t.Errorf("styles text = %v, want #222", got)
	}
}

func TestMergePerBlockListReplacement(t *testing.T) {
	mk := func(sizes []any) *Theme {
		return New(tree.Node{
			"version": 1,
			"settings": tree.Node{
				"blocks": tree.Node{
					"core/paragraph": tree.Node{
						"typography": tree.Node{"fontSizes": sizes},
					},
				},
			},
		}, testResolver(), nil)
	}
	base := mk([]any{
		tree.Node{"slug": "s", "name": "S", "size": "12px"},
		tree.Node{"slug": "m", "name": "M", "size": "16px"},
	})
	incoming := mk([]any{
		tree.Node{"slug": "l", "name": "L", "size": "20px"},
	})

	base.Merge(incoming)

	sizes, _ := tree.Get(base.GetRawData(), []string{"settings", "blocks", "core/paragraph", "typography", "fontSizes"}, nil).([]any)
	want := []any{tree.Node{"slug": "l", "name": "L", "size": "20px"}}
	if !reflect.DeepEqual(sizes, want) {
		t.Errorf("fontSizes = %v, want %v", sizes, want)
	}
}

func TestMergeCustomReplacement(t *testing.T) {
	base := New(tree.Node{
		"version": 1,
		"settings": tree.Node{
			"custom": tree.Node{"spacing": tree.Node{"small": "4px", "large": "32px"}},
		},
	}, testResolver(), nil)
	incoming := New(tree.Node{
		"version": 1,
		"settings": tree.Node{
			"custom": tree.Node{"spacing": tree.Node{"small": "2px"}},
		},
	}, testResolver(), nil)

	base.Merge(incoming)

	// custom is one of the replace-don't-append paths: the whole
	// subtree comes from incoming.
	got := tree.GetNode(base.GetRawData(), []string{"settings", "custom"})
	want := tree.Node{"spacing": tree.Node{"small": "2px"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("custom = %v, want %v", got, want)
	}
}
