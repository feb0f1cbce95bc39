package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rupor-github/gencfg"
)

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}

	if cfg.Document.Stylesheet.Styles != "all" {
		t.Errorf("Default styles mode = %q, want %q", cfg.Document.Stylesheet.Styles, "all")
	}

	if cfg.Document.Stylesheet.Pretty {
		t.Error("Default stylesheet output should be compact")
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
document:
  output_name_template: "{{ .SourceFile }}-{{ .Styles }}"
  file_name_transliterate: true
  stylesheet:
    styles: css_variables
    pretty: true
logging:
  console:
    level: normal
  file:
    level: debug
    destination: /tmp/test.log
    mode: append
reporting:
  destination: /tmp/test-report.zip
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}

	if !cfg.Document.FileNameTransliterate {
		t.Error("Expected FileNameTransliterate to be true")
	}

	if cfg.Document.OutputNameTemplate != "{{ .SourceFile }}-{{ .Styles }}" {
		t.Errorf("OutputNameTemplate = %q, template field should not be expanded", cfg.Document.OutputNameTemplate)
	}

	if cfg.Document.Stylesheet.Styles != "css_variables" {
		t.Errorf("Styles = %q, want css_variables", cfg.Document.Stylesheet.Styles)
	}

	if !cfg.Document.Stylesheet.Pretty {
		t.Error("Expected Pretty to be true")
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	_, err := LoadConfiguration("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `version: 1
document:
  file_name_transliterate: true
  invalid indent
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestLoadConfiguration_UnknownFields(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "unknown.yaml")

	configWithUnknown := `version: 1
unknown_field: value
document:
  file_name_transliterate: true
`

	if err := os.WriteFile(configPath, []byte(configWithUnknown), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Error("Expected error for unknown fields")
	}
}

func TestLoadConfiguration_ValidationError(t *testing.T) {
	tmpDir := t.TempDir()

	for name, content := range map[string]string{
		"bad_version.yaml": `version: 2
document:
  file_name_transliterate: true
`,
		"bad_styles.yaml": `version: 1
document:
  stylesheet:
    styles: everything
`,
	} {
		configPath := filepath.Join(tmpDir, name)
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write config file: %v", err)
		}

		if _, err := LoadConfiguration(configPath); err == nil {
			t.Errorf("Expected validation error for %s", name)
		}
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {
		// Options are opaque, just test that we can pass them
	}

	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	if len(data) == 0 {
		t.Error("Prepare() returned empty data")
	}

	// Verify it's valid YAML by trying to unmarshal
	cfg := &Config{}
	_, err = unmarshalConfig(data, cfg, true)
	if err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg := &Config{
		Version: 1,
		Document: DocumentConfig{
			OutputNameTemplate:    "{{ .SourceFile }}",
			FileNameTransliterate: true,
			Stylesheet: StylesheetConfig{
				Styles: "block_styles",
				Pretty: true,
			},
		},
	}

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	roundTrip := &Config{}
	if _, err := unmarshalConfig(data, roundTrip, false); err != nil {
		t.Fatalf("Dumped config is not valid: %v", err)
	}
	if roundTrip.Document.Stylesheet.Styles != "block_styles" {
		t.Errorf("Styles after round trip = %q, want block_styles", roundTrip.Document.Stylesheet.Styles)
	}
}
