// Package cli wires the toc-cli commands.
package cli

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/goliatone/go-toc/internal/config"
	"github.com/goliatone/go-toc/internal/document/loader"
	pkgdocument "github.com/goliatone/go-toc/pkg/document"
	"github.com/goliatone/go-toc/pkg/extension"
	pkgtoc "github.com/goliatone/go-toc/pkg/toc"
)

type ctxKey string

const appKey ctxKey = "app"

// Option customises the root command, mostly for tests.
type Option func(*options)

type options struct {
	prompter PromptDriver
	loader   []pkgdocument.LoaderOption
}

// WithPrompter replaces the survey driver used by --interactive.
func WithPrompter(p PromptDriver) Option {
	return func(o *options) {
		o.prompter = p
	}
}

// WithLoaderOptions appends document loader options.
func WithLoaderOptions(opts ...pkgdocument.LoaderOption) Option {
	return func(o *options) {
		o.loader = append(o.loader, opts...)
	}
}

// app is the per-invocation state shared by subcommands.
type app struct {
	settings  config.Settings
	loader    pkgdocument.Loader
	extension *extension.Extension
}

// Execute builds the root command and runs it.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the Cobra root command and wires dependencies.
func NewRootCmd(opts ...Option) *cobra.Command {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	var (
		cfgPath     string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:           "toc-cli",
		Short:         "Heading anchors and tables of contents for HTML and Markdown",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			if err := config.Load(cmd.Context(), v); err != nil {
				return err
			}
			if err := bindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			if interactive {
				if err := promptRange(cmd, v, o.prompter); err != nil {
					return err
				}
			}

			settings, err := config.Resolve(v)
			if err != nil {
				return err
			}

			a := newApp(settings, cmd.InOrStdin(), o)
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, appKey, a))
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgPath, "config", "", "path to config file (yaml|toml|json)")
	flags.Int("top", pkgtoc.MinLevel, "shallowest heading level to include")
	flags.Int("depth", pkgtoc.MaxLevel, "deepest heading level to include")
	flags.Bool("ordered", false, "render menus with <ol>")
	flags.Bool("allow-http", false, "allow http(s) sources")
	flags.BoolVar(&interactive, "interactive", false, "prompt for top and depth")

	cmd.AddCommand(newAnchorsCmd())
	cmd.AddCommand(newMenuCmd())
	cmd.AddCommand(newRenderCmd())

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }

	return cmd
}

// flagKeys maps CLI flags onto configuration keys.
var flagKeys = map[string]string{
	"top":        "top",
	"depth":      "depth",
	"ordered":    "ordered",
	"allow-http": "allow_http",
	"format":     "format",
	"templates":  "templates",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return err
		}
	}
	return nil
}

func newApp(settings config.Settings, stdin io.Reader, o *options) *app {
	loaderOpts := []pkgdocument.LoaderOption{pkgdocument.WithStdin(stdin)}
	loaderOpts = append(loaderOpts, o.loader...)
	if settings.AllowHTTP {
		loaderOpts = append(loaderOpts, pkgdocument.WithHTTPFallback(settings.HTTPTimeout))
	}

	genOpts := []pkgtoc.Option{pkgtoc.WithClasses(settings.Classes)}
	if settings.Ordered {
		genOpts = append(genOpts, pkgtoc.WithOrderedLists())
	}

	return &app{
		settings:  settings,
		loader:    loader.New(pkgdocument.NewLoaderOptions(loaderOpts...)),
		extension: extension.New(extension.WithGenerator(pkgtoc.NewGenerator(genOpts...))),
	}
}

func getApp(cmd *cobra.Command) (*app, error) {
	if ctx := cmd.Context(); ctx != nil {
		if a, ok := ctx.Value(appKey).(*app); ok {
			return a, nil
		}
	}
	return nil, errors.New("cli: app not initialized")
}

// loadHTML resolves arg into a source and returns the document as HTML.
func (a *app) loadHTML(ctx context.Context, arg string) (pkgdocument.Document, string, error) {
	src, err := sourceFor(arg)
	if err != nil {
		return pkgdocument.Document{}, "", err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout())
	defer cancel()

	doc, err := a.loader.Load(ctx, src)
	if err != nil {
		return pkgdocument.Document{}, "", err
	}
	return doc, doc.HTML(), nil
}

func (a *app) timeout() time.Duration {
	if a.settings.HTTPTimeout > 0 {
		return a.settings.HTTPTimeout + time.Second
	}
	return time.Minute
}
