package blocks

import (
	"strings"

	"go.uber.org/zap"
)

// Entry is the resolved metadata for one addressable name.
type Entry struct {
	Selector string
}

// Metadata maps block names (plus the root/defaults sentinels) to
// their selectors.
type Metadata map[string]Entry

// Resolver builds selector metadata from a registry and caches the
// result. The cache lives until Reset is called; callers that change
// the registry afterwards must Reset explicitly. Not safe for
// concurrent use without external synchronization.
type Resolver struct {
	reg *Registry
	log *zap.Logger

	cached Metadata
	order  []string
}

// NewResolver creates a resolver over reg.
func NewResolver(reg *Registry, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{reg: reg, log: log.Named("blocks")}
}

// Metadata resolves and memoizes the name→selector mapping. The
// sentinels always resolve to :root. Names colliding after selector
// synthesis follow registration order, last one wins.
func (r *Resolver) Metadata() Metadata {
	r.resolve()
	return r.cached
}

// Order returns the metadata names in resolution order: the sentinels
// first, then blocks as registered.
func (r *Resolver) Order() []string {
	r.resolve()
	return r.order
}

// Reset drops the memoized metadata so the next call re-reads the
// registry.
func (r *Resolver) Reset() {
	r.cached = nil
	r.order = nil
}

func (r *Resolver) resolve() {
	if r.cached != nil {
		return
	}
	md := Metadata{
		Root:     {Selector: RootSelector},
		Defaults: {Selector: RootSelector},
	}
	order := []string{Root, Defaults}

	add := func(name, selector string) {
		if _, seen := md[name]; seen {
			r.log.Debug("Block metadata overwritten", zap.String("name", name), zap.String("selector", selector))
		} else {
			order = append(order, name)
		}
		md[name] = Entry{Selector: selector}
	}

	for _, reg := range r.reg.All() {
		switch {
		case len(reg.Parts) > 0:
			selectors := make([]string, 0, len(reg.Parts))
			for _, p := range reg.Parts {
				add(p.Name, p.Selector)
				selectors = append(selectors, p.Selector)
			}
			// The parent block stays addressable too: the version-0
			// upgrade consolidates per-variant trees under it.
			parent := reg.Selector
			if parent == "" {
				parent = strings.Join(selectors, ", ")
			}
			add(reg.Name, parent)
		case reg.Selector != "":
			add(reg.Name, reg.Selector)
		default:
			add(reg.Name, SynthesizeSelector(reg.Name))
		}
	}

	r.cached = md
	r.order = order
	r.log.Debug("Resolved block metadata", zap.Int("entries", len(md)))
}
