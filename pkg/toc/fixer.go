package toc

import "strings"

// MarkupFixer inserts anchor ids into the headings of a piece of markup.
type MarkupFixer interface {
	Fix(markup string, top, depth int) (string, error)
}

// Fixer is the default MarkupFixer.
type Fixer struct{}

var _ MarkupFixer = (*Fixer)(nil)

// NewFixer returns a Fixer.
func NewFixer() *Fixer {
	return &Fixer{}
}

// Fix adds an id to every heading between h{top} and h{depth} that has none.
// Existing ids are kept, so fixing already fixed markup is a no-op. Blank
// markup is returned unchanged.
func (f *Fixer) Fix(markup string, top, depth int) (string, error) {
	r, err := NewRange(top, depth)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(markup) == "" {
		return markup, nil
	}

	p, err := parsePage(markup)
	if err != nil {
		return "", err
	}
	p.anchor(r)
	return p.render()
}
