package compile

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"

	"themec/state"
)

// RunBlocks lists every resolved block with its CSS selector. Names
// are ordered naturally so core/heading parts read h2 before h10.
func RunBlocks(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)

	resolver, err := BlockResolver(env)
	if err != nil {
		return err
	}

	md := resolver.Metadata()
	names := make([]string, 0, len(md))
	for name := range md {
		names = append(names, name)
	}
	sort.Sort(natural.StringSlice(names))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%s\n", name, md[name].Selector)
	}
	return w.Flush()
}
