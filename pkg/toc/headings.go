package toc

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// documentMarker detects markup that carries its own document structure and
// must be rendered back as a whole document instead of a fragment.
var documentMarker = regexp.MustCompile(`(?i)<(!doctype|html[\s>]|body[\s>])`)

// page is a parsed unit of markup: a full document or a body fragment.
type page struct {
	doc      *goquery.Document
	root     *html.Node
	fragment bool
}

type heading struct {
	sel   *goquery.Selection
	level int
}

func parsePage(markup string) (*page, error) {
	if documentMarker.MatchString(markup) {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
		if err != nil {
			return nil, fmt.Errorf("toc: parse document: %w", err)
		}
		return &page{doc: doc, root: doc.Nodes[0]}, nil
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return nil, fmt.Errorf("toc: parse fragment: %w", err)
	}
	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return &page{doc: goquery.NewDocumentFromNode(root), root: root, fragment: true}, nil
}

// headings returns the headings inside r in document order.
func (p *page) headings(r Range) []heading {
	var out []heading
	p.doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		level := headingLevel(goquery.NodeName(s))
		if level == 0 || !r.Contains(level) {
			return
		}
		out = append(out, heading{sel: s, level: level})
	})
	return out
}

// anchor gives every heading in r without an id a unique slug of its label
// and returns the headings it visited.
func (p *page) anchor(r Range) []heading {
	slugger := &UniqueSlugger{}
	p.doc.Find("[id]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		slugger.Reserve(strings.TrimSpace(id))
	})

	found := p.headings(r)
	for _, h := range found {
		if h.id() != "" {
			continue
		}
		h.sel.SetAttr("id", slugger.Slug(h.label()))
	}
	return found
}

func (p *page) render() (string, error) {
	var buf bytes.Buffer
	if !p.fragment {
		if err := html.Render(&buf, p.root); err != nil {
			return "", fmt.Errorf("toc: render document: %w", err)
		}
		return buf.String(), nil
	}
	for c := p.root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("toc: render fragment: %w", err)
		}
	}
	return buf.String(), nil
}

func (h heading) id() string {
	id, _ := h.sel.Attr("id")
	return strings.TrimSpace(id)
}

// label prefers the title attribute over the text content.
func (h heading) label() string {
	if title, ok := h.sel.Attr("title"); ok {
		if trimmed := collapseSpace(title); trimmed != "" {
			return trimmed
		}
	}
	return collapseSpace(h.sel.Text())
}

func headingLevel(tag string) int {
	if len(tag) != 2 || tag[0] != 'h' {
		return 0
	}
	level := int(tag[1] - '0')
	if level < MinLevel || level > MaxLevel {
		return 0
	}
	return level
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
