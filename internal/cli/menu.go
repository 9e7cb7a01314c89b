package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-toc/internal/config"
	pkgtoc "github.com/goliatone/go-toc/pkg/toc"
)

func newMenuCmd() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "menu [source]",
		Short: "Print the table of contents of a document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			_, html, err := a.loadHTML(cmd.Context(), argAt(args, 0))
			if err != nil {
				return err
			}

			r := a.settings.Range
			out := cmd.OutOrStdout()
			if a.settings.Format == config.FormatHTML {
				menu, err := a.extension.TOC(html, r.Top, r.Depth)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, menu)
				return err
			}

			menu, err := a.extension.TOCItems(html, r.Top, r.Depth)
			if err != nil {
				return err
			}
			return writeMenu(out, menu, a.settings.Format, pretty)
		},
	}

	cmd.Flags().StringP("format", "f", config.FormatHTML, "output format: html, json, yaml or markdown")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent json or render markdown for the terminal")
	return cmd
}

func writeMenu(w io.Writer, menu *pkgtoc.MenuItem, format string, pretty bool) error {
	items := menu.Children
	if items == nil {
		items = []*pkgtoc.MenuItem{}
	}

	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		if pretty {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(items)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return err
		}
		return enc.Close()
	case config.FormatMarkdown:
		md := menuMarkdown(menu)
		if pretty {
			return writePretty(w, md)
		}
		_, err := io.WriteString(w, md)
		return err
	}
	return fmt.Errorf("cli: unsupported format %q", format)
}

// menuMarkdown renders the tree as a nested Markdown list. Placeholder items
// become empty list entries so their children keep the right depth.
func menuMarkdown(menu *pkgtoc.MenuItem) string {
	var b strings.Builder
	menu.Walk(func(item *pkgtoc.MenuItem) bool {
		b.WriteString(strings.Repeat("  ", item.Level-1))
		b.WriteString("-")
		if !item.IsPlaceholder() {
			fmt.Fprintf(&b, " [%s](%s)", escapeMarkdown(item.Label), item.URI)
		}
		b.WriteString("\n")
		return true
	})
	return b.String()
}

var markdownEscaper = strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`, `*`, `\*`, `_`, `\_`, "`", "\\`")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func writePretty(w io.Writer, md string) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("cli: create renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("cli: render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
