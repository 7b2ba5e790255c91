/*
Package mine extracts ranked brand names from rendered page markup and from
JSON network payloads observed during browser automation. Extraction order
encodes rank, so every miner preserves first-seen order and deduplicates
through brand.List.
*/
package mine

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"brandrank/internal/brand"
)

var (
	// The ranking page embeds its state as JSON inside a script tag. The
	// precise pattern anchors brandName to its enclosing brandsInfo object;
	// the loose pattern picks up any brandName field on pages where the
	// state shape has shifted.
	brandsInfoPattern = regexp.MustCompile(`brandsInfo"\s*:\s*\{[^}]*"brandName"\s*:\s*"([^"]+)"`)
	brandNamePattern  = regexp.MustCompile(`"brandName"\s*:\s*"([^"]+)"`)
)

// HTML mines brand names out of rendered markup. It tries the precise
// embedded-state pattern first, then the loose field pattern, then a DOM
// scan for brand_name elements. No match yields an empty slice, never an
// error: markup without brands is an upstream acquisition problem.
func HTML(markup string) []string {
	if markup == "" {
		return nil
	}
	if names := collectMatches(brandsInfoPattern, markup); len(names) > 0 {
		return names
	}
	if names := collectMatches(brandNamePattern, markup); len(names) > 0 {
		return names
	}
	return collectDOM(markup)
}

func collectMatches(p *regexp.Regexp, markup string) []string {
	list := brand.NewList()
	for _, m := range p.FindAllStringSubmatch(markup, -1) {
		if name, ok := brand.Normalize(m[1]); ok {
			list.Add(name)
		}
	}
	return list.Names()
}

// collectDOM walks the parsed document for elements carrying a brand_name
// class. Server-rendered variants of the ranking page expose the list this
// way when no embedded JSON state is present.
func collectDOM(markup string) []string {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil
	}
	list := brand.NewList()
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "brand_name") {
			if name, ok := brand.Normalize(nodeText(n)); ok {
				list.Add(name)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return list.Names()
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.TrimSpace(sb.String())
}
