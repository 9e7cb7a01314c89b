package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-toc/pkg/render/template/gotemplate"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <template> [source]",
		Short: "Render a pongo2 template with the toc extension installed",
		Long: "Render a pongo2 template. The document HTML is bound to `content` and its " +
			"location to `source`; add_anchors, toc and toc_items are available.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			doc, html, err := a.loadHTML(cmd.Context(), argAt(args, 1))
			if err != nil {
				return err
			}

			name := args[0]
			opts := []gotemplate.Option{
				gotemplate.WithBaseDir(a.settings.Templates),
				gotemplate.WithExtensions(a.extension),
				gotemplate.WithGlobalData(map[string]any{"source": doc.Location()}),
			}
			if ext := filepath.Ext(name); ext != "" {
				opts = append(opts, gotemplate.WithExtension(ext))
			}
			engine, err := gotemplate.New(opts...)
			if err != nil {
				return err
			}
			defer engine.Close()

			_, err = engine.RenderTemplate(strings.TrimPrefix(name, "./"), map[string]any{
				"content": html,
			}, cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().StringP("templates", "t", ".", "template directory")
	return cmd
}
