// Package htmltag adapts golang.org/x/net/html parse trees to the
// tagtree.Tag interface, so TQL expressions can be matched against real
// parsed HTML documents.
package htmltag

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/tql-lang/tql/pkgs/tagtree"
)

// documentName is the synthetic name every compiled expression's
// implicit document root carries.
const documentName = "[document]"

// Tag wraps a golang.org/x/net/html.Node as a tagtree.Tag. Two Tag
// values wrap the same node iff they compare equal, since Parse builds
// the whole wrapper tree once (via wrapChildren), allocating exactly one
// Tag per element node.
type Tag struct {
	node     *html.Node
	isDoc    bool
	children []tagtree.Tag
	parent   *Tag
}

// Parse parses r's HTML and returns the synthetic document root whose
// children are the parsed document's top-level nodes.
func Parse(r io.Reader) (*Tag, error) {
	n, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	root := &Tag{node: n, isDoc: true}
	root.children = wrapChildren(n, root)
	return root, nil
}

func wrapChildren(n *html.Node, parent *Tag) []tagtree.Tag {
	var out []tagtree.Tag
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		t := &Tag{node: c, parent: parent}
		t.children = wrapChildren(c, t)
		out = append(out, t)
	}
	return out
}

func (t *Tag) Name() string {
	if t.isDoc {
		return documentName
	}
	return t.node.Data
}

func (t *Tag) Classes() []string {
	v, ok := t.Attr("class")
	if !ok || v == "" {
		return nil
	}
	return strings.Fields(v)
}

func (t *Tag) ID() (string, bool) {
	return t.Attr("id")
}

func (t *Tag) Attr(name string) (string, bool) {
	if t.isDoc {
		return "", false
	}
	for _, a := range t.node.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Text returns the node's own direct text content: the concatenation of
// its immediate TextNode children, not its descendants'.
func (t *Tag) Text() string {
	if t.isDoc {
		return ""
	}
	var b strings.Builder
	for c := t.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func (t *Tag) Children() []tagtree.Tag { return t.children }

func (t *Tag) Parent() (tagtree.Tag, bool) {
	if t.parent == nil {
		return nil, false
	}
	return t.parent, true
}

func (t *Tag) IsDocument() bool { return t.isDoc }

var _ tagtree.Tag = (*Tag)(nil)
