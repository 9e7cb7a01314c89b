// Package extension exposes the toc collaborators to template engines.
//
// The extension registers one filter (add_anchors) and three functions (toc,
// toc_items, add_anchors). Every entry takes (markup, top=1, depth=6) and
// forwards it untouched to a MarkupFixer or Generator; errors from those
// collaborators are returned as is.
package extension

import (
	"fmt"
	"reflect"

	"github.com/spf13/cast"

	"github.com/goliatone/go-toc/pkg/render/template"
	pkgtoc "github.com/goliatone/go-toc/pkg/toc"
)

// Name identifies the extension in host registries.
const Name = "toc"

// Registered filter and function names.
const (
	NameAddAnchors = "add_anchors"
	NameTOC        = "toc"
	NameTOCItems   = "toc_items"
)

// Level defaults applied when a template omits top or depth.
const (
	DefaultTop   = 1
	DefaultDepth = 6
)

// Option configures the extension before construction.
type Option func(*config)

type config struct {
	generator pkgtoc.Generator
	fixer     pkgtoc.MarkupFixer
}

// WithGenerator injects the collaborator backing toc and toc_items.
func WithGenerator(generator pkgtoc.Generator) Option {
	return func(cfg *config) {
		if !isNil(generator) {
			cfg.generator = generator
		}
	}
}

// WithFixer injects the collaborator backing add_anchors.
func WithFixer(fixer pkgtoc.MarkupFixer) Option {
	return func(cfg *config) {
		if !isNil(fixer) {
			cfg.fixer = fixer
		}
	}
}

// Extension implements template.Extension on top of a Generator and a
// MarkupFixer. Each instance owns its collaborators.
type Extension struct {
	generator pkgtoc.Generator
	fixer     pkgtoc.MarkupFixer
}

// Ensure Extension implements the host protocol.
var _ template.Extension = (*Extension)(nil)

// New constructs an Extension. Collaborators that are not supplied are
// created fresh for this instance.
func New(options ...Option) *Extension {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.generator == nil {
		cfg.generator = pkgtoc.NewGenerator()
	}
	if cfg.fixer == nil {
		cfg.fixer = pkgtoc.NewFixer()
	}
	return &Extension{generator: cfg.generator, fixer: cfg.fixer}
}

// Name returns "toc".
func (e *Extension) Name() string {
	return Name
}

// Filters returns the add_anchors filter.
func (e *Extension) Filters() []template.Filter {
	return []template.Filter{
		{Name: NameAddAnchors, Call: e.callAddAnchors, IsSafe: []string{template.SafeHTML}},
	}
}

// Functions returns toc, toc_items and add_anchors. Only toc_items yields
// structured data and is left unmarked so hosts escape whatever they print
// from it.
func (e *Extension) Functions() []template.Function {
	return []template.Function{
		{Name: NameTOC, Call: e.callTOC, IsSafe: []string{template.SafeHTML}},
		{Name: NameTOCItems, Call: e.callTOCItems},
		{Name: NameAddAnchors, Call: e.callAddAnchors, IsSafe: []string{template.SafeHTML}},
	}
}

// AddAnchors inserts heading ids. levels holds optional top and depth.
func (e *Extension) AddAnchors(markup string, levels ...int) (string, error) {
	top, depth, err := levelArgs(levels)
	if err != nil {
		return "", err
	}
	return e.fixer.Fix(markup, top, depth)
}

// TOC renders the table of contents as an HTML list.
func (e *Extension) TOC(markup string, levels ...int) (string, error) {
	top, depth, err := levelArgs(levels)
	if err != nil {
		return "", err
	}
	return e.generator.HTMLMenu(markup, top, depth)
}

// TOCItems returns the table of contents as a menu tree.
func (e *Extension) TOCItems(markup string, levels ...int) (*pkgtoc.MenuItem, error) {
	top, depth, err := levelArgs(levels)
	if err != nil {
		return nil, err
	}
	return e.generator.Menu(markup, top, depth)
}

func (e *Extension) callAddAnchors(input any, args ...any) (any, error) {
	markup, top, depth, err := callArgs(input, args)
	if err != nil {
		return nil, err
	}
	out, err := e.fixer.Fix(markup, top, depth)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Extension) callTOC(input any, args ...any) (any, error) {
	markup, top, depth, err := callArgs(input, args)
	if err != nil {
		return nil, err
	}
	out, err := e.generator.HTMLMenu(markup, top, depth)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Extension) callTOCItems(input any, args ...any) (any, error) {
	markup, top, depth, err := callArgs(input, args)
	if err != nil {
		return nil, err
	}
	menu, err := e.generator.Menu(markup, top, depth)
	if err != nil {
		return nil, err
	}
	return menu, nil
}

// callArgs coerces host values into (markup, top, depth). Nil arguments count
// as omitted.
func callArgs(input any, args []any) (string, int, int, error) {
	if len(args) > 2 {
		return "", 0, 0, fmt.Errorf("extension: expected at most 2 level arguments (top, depth), got %d", len(args))
	}

	markup, err := cast.ToStringE(input)
	if err != nil {
		return "", 0, 0, fmt.Errorf("extension: markup: %w", err)
	}

	levels := []int{DefaultTop, DefaultDepth}
	for i, arg := range args {
		if arg == nil {
			continue
		}
		level, err := cast.ToIntE(arg)
		if err != nil {
			return "", 0, 0, fmt.Errorf("extension: %s: %w", levelNames[i], err)
		}
		levels[i] = level
	}
	return markup, levels[0], levels[1], nil
}

var levelNames = [2]string{"top", "depth"}

func levelArgs(levels []int) (int, int, error) {
	switch len(levels) {
	case 0:
		return DefaultTop, DefaultDepth, nil
	case 1:
		return levels[0], DefaultDepth, nil
	case 2:
		return levels[0], levels[1], nil
	}
	return 0, 0, fmt.Errorf("extension: expected at most 2 level arguments (top, depth), got %d", len(levels))
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Func, reflect.Slice:
		return rv.IsNil()
	}
	return false
}
