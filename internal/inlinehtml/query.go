// Package inlinehtml recognises the small set of raw inline HTML tags the
// converter turns into inline styles (for example <ins> for underline).
package inlinehtml

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-mdraft/pkg/interfaces"
)

// Query implements interfaces.HTMLQuery on top of golang.org/x/net/html.
type Query struct{}

var _ interfaces.HTMLQuery = Query{}

// NewQuery returns the x/net/html backed fragment query.
func NewQuery() Query {
	return Query{}
}

// Query parses fragment as a full HTML document, the same way a browser
// DOMParser would, so stray end tags are dropped and implied elements added.
func (Query) Query(fragment string) (interfaces.HTMLDocument, error) {
	root, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("inlinehtml: parse fragment: %w", err)
	}
	return document{root: root}, nil
}

type document struct {
	root *html.Node
}

func (d document) First(tag string) (interfaces.HTMLElement, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return nil, false
	}
	if node := findElement(d.root, tag); node != nil {
		return element{node: node}, true
	}
	return nil, false
}

type element struct {
	node *html.Node
}

func (e element) Tag() string {
	return e.node.Data
}

func (e element) Attr(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, attr := range e.node.Attr {
		if attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}

// findElement walks the tree depth first, returning the first element named
// tag.
func findElement(n *html.Node, tag string) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
