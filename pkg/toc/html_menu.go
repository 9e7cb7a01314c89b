package toc

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func renderMenu(menu *MenuItem, listTag string, classes Classes) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, menuList(menu.Children, listTag, classes)); err != nil {
		return "", fmt.Errorf("toc: render menu: %w", err)
	}
	return buf.String(), nil
}

func menuList(items []*MenuItem, listTag string, classes Classes) *html.Node {
	list := element(listTag, classes.List)
	for _, item := range items {
		li := element("li", classes.Item)
		if item.Target != "" {
			link := element("a", classes.Link)
			link.Attr = append(link.Attr, html.Attribute{Key: "href", Val: item.URI})
			link.AppendChild(&html.Node{Type: html.TextNode, Data: item.Label})
			li.AppendChild(link)
		}
		if item.HasChildren() {
			li.AppendChild(menuList(item.Children, listTag, classes))
		}
		list.AppendChild(li)
	}
	return list
}

func element(tag, class string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	if class != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
	}
	return n
}
