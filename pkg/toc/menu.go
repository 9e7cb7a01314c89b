package toc

import "net/url"

// MenuItem is a node of the heading tree. The root item has Level 0 and no
// target; placeholder items fill skipped heading levels and carry neither a
// label nor a target.
type MenuItem struct {
	Label        string      `json:"label" yaml:"label"`
	Target       string      `json:"target,omitempty" yaml:"target,omitempty"`
	URI          string      `json:"uri,omitempty" yaml:"uri,omitempty"`
	Level        int         `json:"level" yaml:"level"`
	HeadingLevel int         `json:"heading_level,omitempty" yaml:"heading_level,omitempty"`
	Children     []*MenuItem `json:"children,omitempty" yaml:"children,omitempty"`

	parent *MenuItem
}

func newRoot() *MenuItem {
	return &MenuItem{Label: "TOC"}
}

// addChild appends a child one level below m.
func (m *MenuItem) addChild(label, target string, headingLevel int) *MenuItem {
	child := &MenuItem{
		Label:        label,
		Target:       target,
		Level:        m.Level + 1,
		HeadingLevel: headingLevel,
		parent:       m,
	}
	if target != "" {
		child.URI = "#" + url.PathEscape(target)
	}
	m.Children = append(m.Children, child)
	return child
}

// Parent returns the enclosing item, nil for the root.
func (m *MenuItem) Parent() *MenuItem {
	if m == nil {
		return nil
	}
	return m.parent
}

// IsRoot reports whether m is the top of a tree.
func (m *MenuItem) IsRoot() bool {
	return m != nil && m.parent == nil
}

// IsPlaceholder reports whether m only exists to bridge a skipped level.
func (m *MenuItem) IsPlaceholder() bool {
	return m != nil && m.parent != nil && m.Target == "" && m.Label == ""
}

// HasChildren reports whether m has nested items.
func (m *MenuItem) HasChildren() bool {
	return m != nil && len(m.Children) > 0
}

// Len counts the descendants of m.
func (m *MenuItem) Len() int {
	if m == nil {
		return 0
	}
	total := 0
	for _, child := range m.Children {
		total += 1 + child.Len()
	}
	return total
}

// Walk visits the descendants of m depth first in document order. Returning
// false from fn skips the children of that item.
func (m *MenuItem) Walk(fn func(item *MenuItem) bool) {
	if m == nil || fn == nil {
		return
	}
	for _, child := range m.Children {
		if fn(child) {
			child.Walk(fn)
		}
	}
}

// Flatten lists the descendants of m in document order.
func (m *MenuItem) Flatten() []*MenuItem {
	out := make([]*MenuItem, 0, m.Len())
	m.Walk(func(item *MenuItem) bool {
		out = append(out, item)
		return true
	})
	return out
}
