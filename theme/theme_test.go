package theme

import (
	"reflect"
	"testing"

	"themec/tree"
)

func TestFromJSON(t *testing.T) {
	data := []byte(`{
		"version": 1,
		"settings": {
			"color": {
				"palette": [{"slug": "red", "name": "Red", "color": "#f00"}]
			}
		}
	}`)
	th, err := FromJSON(data, testResolver(), nil)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	want := ":root{--wp--preset--color--red:#f00;}"
	if got := th.GetStylesheet(StyleCSSVariables); got != want {
		t.Errorf("css_variables = %q, want %q", got, want)
	}

	if _, err := FromJSON([]byte("{"), testResolver(), nil); err == nil {
		t.Error("malformed JSON accepted")
	}
}

func TestGetSettings(t *testing.T) {
	th := New(tree.Node{
		"version":  1,
		"settings": tree.Node{"color": tree.Node{"custom": true}},
	}, testResolver(), nil)
	if got := tree.Get(th.GetSettings(), []string{"color", "custom"}, nil); got != true {
		t.Errorf("settings custom = %v", got)
	}

	empty := New(tree.Node{"version": 1}, testResolver(), nil)
	if s := empty.GetSettings(); s == nil || len(s) != 0 {
		t.Errorf("empty settings = %v, want empty mapping", s)
	}
}

func TestGetCustomTemplates(t *testing.T) {
	th := New(tree.Node{
		"version": 1,
		"customTemplates": []any{
			tree.Node{"name": "blank", "title": "Blank", "postTypes": []any{"page", "post"}},
			tree.Node{"name": "bare"},
			tree.Node{"title": "nameless, dropped"},
		},
	}, testResolver(), nil)

	got := th.GetCustomTemplates()
	want := map[string]CustomTemplate{
		"blank": {Title: "Blank", PostTypes: []string{"page", "post"}},
		"bare":  {Title: "", PostTypes: []string{"page"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("custom templates = %v, want %v", got, want)
	}
}

func TestGetTemplateParts(t *testing.T) {
	th := New(tree.Node{
		"version": 1,
		"templateParts": []any{
			tree.Node{"name": "header", "area": "header"},
			tree.Node{"name": "aside"},
		},
	}, testResolver(), nil)

	got := th.GetTemplateParts()
	want := map[string]TemplatePart{
		"header": {Area: "header"},
		"aside":  {Area: ""},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("template parts = %v, want %v", got, want)
	}
}

func TestNilRawInput(t *testing.T) {
	th := New(nil, testResolver(), nil)
	if got := documentVersion(th.GetRawData()); got != 1 {
		t.Errorf("version = %d, want 1", got)
	}
	if got := th.GetStylesheet(StyleAll); got != "" {
		t.Errorf("stylesheet = %q, want empty", got)
	}
}
