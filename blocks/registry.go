// Package blocks maps block names to the CSS selectors the theme
// engine targets. A Registry holds ordered block registrations; a
// Resolver turns them into the per-name selector metadata the
// compiler, migrators and sanitizer consume, memoized for the process
// lifetime.
package blocks

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// Sentinel metadata names addressing the document root. Only
// pre-migration (version 0) documents use them as tree keys; resolved
// metadata always contains both.
const (
	Root     = "root"
	Defaults = "defaults"
)

// RootSelector is the selector both sentinels resolve to.
const RootSelector = ":root"

// Part is one sub-selector of a block registered with several
// addressable variants (heading levels, for instance). Name is the
// full variant block name.
type Part struct {
	Name     string `yaml:"name"`
	Selector string `yaml:"selector"`
}

// Registration describes one block as the registry supplies it: no
// selector (one is synthesized from the name), a single custom
// selector, or a list of per-variant sub-selectors.
type Registration struct {
	Name     string `yaml:"name"`
	Selector string `yaml:"selector,omitempty"`
	Parts    []Part `yaml:"parts,omitempty"`
}

// Registry is an ordered list of block registrations.
type Registry struct {
	regs []Registration
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a registration. Registrations resolving to the same
// metadata name are not deduplicated here; the later one wins at
// resolve time.
func (r *Registry) Register(reg Registration) {
	r.regs = append(r.regs, reg)
}

// All returns the registrations in registration order.
func (r *Registry) All() []Registration {
	return r.regs
}

type registryFile struct {
	Blocks []Registration `yaml:"blocks"`
}

//go:embed defaults.yml
var defaultRegistryYAML []byte

// DefaultRegistry returns a registry with the core block set built in.
func DefaultRegistry() *Registry {
	r, err := ParseRegistry(defaultRegistryYAML)
	if err != nil {
		// the embedded document is part of the build
		panic(fmt.Sprintf("blocks: embedded registry: %v", err))
	}
	return r
}

// ParseRegistry reads a registry definition from YAML. Unknown fields
// are rejected.
func ParseRegistry(data []byte) (*Registry, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var f registryFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode block registry: %w", err)
	}
	reg := NewRegistry()
	for _, b := range f.Blocks {
		if b.Name == "" {
			return nil, fmt.Errorf("block registry entry without a name")
		}
		reg.Register(b)
	}
	return reg, nil
}

// SynthesizeSelector derives the conventional class selector for a
// block that registered no selector of its own: ".wp-block-" plus the
// name without its leading "core/" prefix, slashes becoming hyphens.
func SynthesizeSelector(name string) string {
	trimmed := strings.TrimPrefix(name, "core/")
	return ".wp-block-" + strings.ReplaceAll(trimmed, "/", "-")
}
