// Package compile implements document processing behind the CLI
// subcommands: loading theme configuration documents, driving the
// engine and placing produced files.
package compile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"themec/tree"
)

// loadDocument reads a theme configuration document from disk. Both
// JSON and YAML bodies are accepted, selected by file extension, and
// normalized to the same tree shape. JSON numbers are kept as
// json.Number so the version marker survives intact.
func loadDocument(path string) (tree.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read document: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeYAMLDocument(data)
	default:
		return decodeJSONDocument(data)
	}
}

func decodeJSONDocument(data []byte) (tree.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc tree.Node
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("unable to decode JSON document: %w", err)
	}
	return doc, nil
}

func decodeYAMLDocument(data []byte) (tree.Node, error) {
	var doc tree.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unable to decode YAML document: %w", err)
	}
	return doc, nil
}

// dumpDocument produces the canonical JSON form used by migrate,
// sanitize and merge outputs.
func dumpDocument(doc tree.Node) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("unable to encode document: %w", err)
	}
	return append(data, '\n'), nil
}
