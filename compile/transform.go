package compile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"themec/state"
	"themec/theme"
	"themec/tree"
)

// RunMigrate converts a document of any supported version to the
// canonical version 1 JSON form.
func RunMigrate(ctx context.Context, cmd *cli.Command) error {
	return transformOne(ctx, cmd, "migrate", func(t *theme.Theme) tree.Node {
		return t.GetRawData()
	})
}

// RunSanitize migrates a document and strips everything the security
// filter rejects.
func RunSanitize(ctx context.Context, cmd *cli.Command) error {
	return transformOne(ctx, cmd, "sanitize", func(t *theme.Theme) tree.Node {
		t.RemoveInsecureProperties()
		return t.GetRawData()
	})
}

func transformOne(ctx context.Context, cmd *cli.Command, name string, f func(*theme.Theme) tree.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named(name)

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input document has been specified")
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many sources", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	resolver, err := BlockResolver(env)
	if err != nil {
		return err
	}

	doc, err := loadDocument(src)
	if err != nil {
		return err
	}

	return writeDocument(cmd.String("output"), f(theme.New(doc, resolver, env.Log)), env, log)
}

// RunMerge layers overlay documents over a base document, every input
// migrated to the canonical form first, and emits the merged JSON.
func RunMerge(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("merge")

	if cmd.Args().Len() < 2 {
		return errors.New("merge needs a base document and at least one overlay")
	}

	resolver, err := BlockResolver(env)
	if err != nil {
		return err
	}

	doc, err := loadDocument(cmd.Args().Get(0))
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.Args().Get(0), err)
	}
	base := theme.New(doc, resolver, env.Log)

	for _, src := range cmd.Args().Slice()[1:] {
		doc, err := loadDocument(src)
		if err != nil {
			return fmt.Errorf("%s: %w", src, err)
		}
		base.Merge(theme.New(doc, resolver, env.Log))
	}

	return writeDocument(cmd.String("output"), base.GetRawData(), env, log)
}

func writeDocument(fname string, doc tree.Node, env *state.LocalEnv, log *zap.Logger) error {
	data, err := dumpDocument(doc)
	if err != nil {
		return err
	}

	if len(fname) == 0 {
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(fname, data, 0644); err != nil {
		return fmt.Errorf("unable to write document: %w", err)
	}
	env.Rpt.StoreData(filepath.ToSlash(filepath.Join("output", filepath.Base(fname))), data)
	log.Info("Document produced", zap.String("destination", fname))
	return nil
}
