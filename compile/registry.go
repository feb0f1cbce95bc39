package compile

import (
	"fmt"
	"os"

	"themec/blocks"
	"themec/state"
)

// BlockResolver builds the block metadata resolver for the current
// run: the embedded default registry, optionally extended by
// registrations from the configured registry file. Later registrations
// win over earlier ones.
func BlockResolver(env *state.LocalEnv) (*blocks.Resolver, error) {
	reg := blocks.DefaultRegistry()

	if path := env.Cfg.Document.BlockRegistryPath; len(path) > 0 {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read block registry from %q: %w", path, err)
		}
		extra, err := blocks.ParseRegistry(data)
		if err != nil {
			return nil, fmt.Errorf("unable to parse block registry from %q: %w", path, err)
		}
		for _, r := range extra.All() {
			reg.Register(r)
		}
	}
	return blocks.NewResolver(reg, env.Log), nil
}
