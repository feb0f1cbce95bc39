package compile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"themec/blocks"
	"themec/config"
	"themec/state"
	"themec/theme"
)

// Run compiles theme configuration documents into CSS stylesheets.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("compile")

	if cmd.Args().Len() == 0 {
		return errors.New("no input documents have been specified")
	}

	dst := cmd.String("output")
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}

	styles, pretty := outputShape(cmd, env, log)
	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	resolver, err := BlockResolver(env)
	if err != nil {
		return err
	}

	log.Info("Processing starting", zap.Int("documents", cmd.Args().Len()), zap.String("destination", dst), zap.String("styles", string(styles)))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	for _, src := range cmd.Args().Slice() {
		if er := ctx.Err(); er != nil {
			return multierr.Append(err, er)
		}
		if er := compileOne(src, dst, styles, pretty, resolver, env, log); er != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", src, er))
		}
	}
	return err
}

// outputShape resolves stylesheet mode and formatting from flags with
// configuration values as the baseline.
func outputShape(cmd *cli.Command, env *state.LocalEnv, log *zap.Logger) (theme.Style, bool) {
	styles := theme.Style(env.Cfg.Document.Stylesheet.Styles)
	if s := cmd.String("styles"); len(s) > 0 {
		switch v := theme.Style(s); v {
		case theme.StyleAll, theme.StyleBlockStyles, theme.StyleCSSVariables:
			styles = v
		default:
			log.Warn("Unknown styles mode requested, emitting everything", zap.String("styles", s))
			styles = theme.StyleAll
		}
	}
	pretty := env.Cfg.Document.Stylesheet.Pretty
	if cmd.Bool("pretty") {
		pretty = true
	}
	return styles, pretty
}

func compileOne(src, dst string, styles theme.Style, pretty bool, resolver *blocks.Resolver, env *state.LocalEnv, log *zap.Logger) error {
	doc, err := loadDocument(src)
	if err != nil {
		return err
	}
	if data, er := dumpDocument(doc); er == nil {
		env.Rpt.StoreData(filepath.ToSlash(filepath.Join("input", filepath.Base(src))), data)
	}

	opts := []theme.Option{}
	if pretty {
		opts = append(opts, theme.WithPretty())
	}
	t := theme.New(doc, resolver, env.Log, opts...)
	t.RemoveInsecureProperties()
	sheet := t.GetStylesheet(styles)

	values := Values{
		Context:    string(config.OutputNameTemplateFieldName),
		SourceFile: strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		Styles:     string(styles),
		Format:     "css",
		Pretty:     pretty,
	}
	out := buildOutputPath(src, dst, values, env)

	if !env.Overwrite {
		if _, err := os.Stat(out); err == nil {
			return fmt.Errorf("destination file already exists: %s", out)
		}
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(out, []byte(sheet), 0644); err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}
	env.Rpt.StoreData(filepath.ToSlash(filepath.Join("output", filepath.Base(out))), []byte(sheet))

	log.Info("Stylesheet produced", zap.String("source", src), zap.String("destination", out))
	return nil
}
