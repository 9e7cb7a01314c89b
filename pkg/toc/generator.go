package toc

import (
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"
)

// Generator builds a table of contents from the headings of a piece of
// markup.
type Generator interface {
	HTMLMenu(markup string, top, depth int) (string, error)
	Menu(markup string, top, depth int) (*MenuItem, error)
}

// Option configures a TocGenerator.
type Option func(*TocGenerator)

// WithOrderedLists renders <ol> lists instead of <ul>.
func WithOrderedLists() Option {
	return func(g *TocGenerator) {
		g.ordered = true
	}
}

// WithClasses sets static CSS classes on the rendered lists, items and links.
// Theme tokens, when configured, take precedence.
func WithClasses(classes Classes) Option {
	return func(g *TocGenerator) {
		g.classes = classes
	}
}

// WithTheme resolves CSS classes from a go-theme selection on every render.
func WithTheme(selector theme.ThemeSelector, name, variant string) Option {
	return func(g *TocGenerator) {
		if selector == nil {
			return
		}
		g.theme = &themeRef{
			selector: selector,
			name:     strings.TrimSpace(name),
			variant:  strings.TrimSpace(variant),
		}
	}
}

// WithPolicy replaces the sanitizer applied to rendered HTML menus.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(g *TocGenerator) {
		if policy != nil {
			g.policy = policy
		}
	}
}

// TocGenerator is the default Generator.
type TocGenerator struct {
	ordered bool
	classes Classes
	theme   *themeRef
	policy  *bluemonday.Policy
}

var _ Generator = (*TocGenerator)(nil)

// NewGenerator constructs a TocGenerator.
func NewGenerator(options ...Option) *TocGenerator {
	g := &TocGenerator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	if g.policy == nil {
		g.policy = menuSanitizer()
	}
	return g
}

// Menu returns the heading tree of markup. Headings without an id are listed
// under the id Fixer would give them.
func (g *TocGenerator) Menu(markup string, top, depth int) (*MenuItem, error) {
	r, err := NewRange(top, depth)
	if err != nil {
		return nil, err
	}
	root := newRoot()
	if strings.TrimSpace(markup) == "" {
		return root, nil
	}

	p, err := parsePage(markup)
	if err != nil {
		return nil, err
	}

	last := root
	for _, h := range p.anchor(r) {
		level := r.relative(h.level)

		var parent *MenuItem
		switch {
		case level == 1:
			parent = root
		case level == last.Level:
			parent = last.parent
		case level > last.Level:
			parent = last
			for parent.Level < level-1 {
				parent = parent.addChild("", "", 0)
			}
		default:
			parent = last.parent
			for parent.Level > level-1 {
				parent = parent.parent
			}
		}

		last = parent.addChild(h.label(), h.id(), h.level)
	}
	return root, nil
}

// HTMLMenu renders the heading tree of markup as nested lists of links. A
// markup without headings renders as the empty string.
func (g *TocGenerator) HTMLMenu(markup string, top, depth int) (string, error) {
	menu, err := g.Menu(markup, top, depth)
	if err != nil {
		return "", err
	}
	if !menu.HasChildren() {
		return "", nil
	}

	classes, err := g.resolveClasses()
	if err != nil {
		return "", err
	}
	rendered, err := renderMenu(menu, g.listTag(), classes)
	if err != nil {
		return "", err
	}
	return g.policy.Sanitize(rendered), nil
}

func (g *TocGenerator) listTag() string {
	if g.ordered {
		return "ol"
	}
	return "ul"
}
