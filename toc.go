// Package toc exposes the "toc" template extension: heading anchors and
// tables of contents for pongo2 and html/template hosts.
package toc

import (
	htmltemplate "html/template"

	"github.com/goliatone/go-toc/pkg/extension"
	"github.com/goliatone/go-toc/pkg/render/template"
	"github.com/goliatone/go-toc/pkg/render/template/gotemplate"
	tplhtml "github.com/goliatone/go-toc/pkg/render/template/htmltemplate"
	pkgtoc "github.com/goliatone/go-toc/pkg/toc"
)

// MenuItem aliases the menu tree node returned by toc_items.
type MenuItem = pkgtoc.MenuItem

// Range aliases the top/depth heading selection.
type Range = pkgtoc.Range

// Extension aliases the template extension type.
type Extension = extension.Extension

// ErrInvalidRange is returned for top/depth pairs outside 1 <= top <= depth <= 6.
var ErrInvalidRange = pkgtoc.ErrInvalidRange

// NewExtension constructs the "toc" extension.
func NewExtension(options ...extension.Option) *Extension {
	return extension.New(options...)
}

// AddAnchors adds ids to the headings of markup. levels holds optional top
// and depth.
func AddAnchors(markup string, levels ...int) (string, error) {
	return extension.New().AddAnchors(markup, levels...)
}

// HTMLMenu renders the table of contents of markup as nested lists.
func HTMLMenu(markup string, levels ...int) (string, error) {
	return extension.New().TOC(markup, levels...)
}

// Menu returns the table of contents of markup as a tree.
func Menu(markup string, levels ...int) (*MenuItem, error) {
	return extension.New().TOCItems(markup, levels...)
}

// Register installs the toc extension on any template host.
func Register(host template.TemplateRenderer, options ...extension.Option) error {
	return host.AddExtension(extension.New(options...))
}

// NewTemplateEngine constructs a pongo2 engine with the toc extension
// installed. Close the engine before building another one: pongo2 filters
// are process-wide and add_anchors stays bound to the first engine until
// then.
func NewTemplateEngine(options ...gotemplate.Option) (*gotemplate.Engine, error) {
	opts := append([]gotemplate.Option{gotemplate.WithExtensions(extension.New())}, options...)
	return gotemplate.New(opts...)
}

// FuncMap returns html/template functions for the toc extension.
func FuncMap(options ...extension.Option) htmltemplate.FuncMap {
	return tplhtml.FuncMap(extension.New(options...))
}
