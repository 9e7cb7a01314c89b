package toc

import (
	"fmt"

	theme "github.com/goliatone/go-theme"
)

// Theme token keys read by WithTheme.
const (
	TokenListClass = "toc.list"
	TokenItemClass = "toc.item"
	TokenLinkClass = "toc.link"
)

// Classes holds the CSS classes put on rendered menus.
type Classes struct {
	List string
	Item string
	Link string
}

type themeRef struct {
	selector theme.ThemeSelector
	name     string
	variant  string
}

func (g *TocGenerator) resolveClasses() (Classes, error) {
	classes := g.classes
	if g.theme == nil {
		return classes, nil
	}

	selection, err := g.theme.selector.Select(g.theme.name, g.theme.variant)
	if err != nil {
		return Classes{}, fmt.Errorf("toc: select theme %q: %w", g.theme.name, err)
	}
	tokens := selectionTokens(selection)

	if v := tokens[TokenListClass]; v != "" {
		classes.List = v
	}
	if v := tokens[TokenItemClass]; v != "" {
		classes.Item = v
	}
	if v := tokens[TokenLinkClass]; v != "" {
		classes.Link = v
	}
	return classes, nil
}

// selectionTokens merges the manifest tokens with the selected variant's.
func selectionTokens(selection *theme.Selection) map[string]string {
	tokens := make(map[string]string)
	if selection == nil || selection.Manifest == nil {
		return tokens
	}
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
	}
	return tokens
}
