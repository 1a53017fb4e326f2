// Package tagtree defines the abstract tag-tree capability that the
// matcher traverses. TQL itself never depends on any concrete markup
// library; package htmltag supplies the golang.org/x/net/html-backed
// implementation used by consumers.
package tagtree

// Tag is a single node in the tree being queried: an element with a
// name, a class list, optional attributes, optional id, ordered
// children, and a parent/sibling chain the matcher walks for `>>`/`::`.
type Tag interface {
	// Name is the tag's element name, e.g. "div". The synthetic document
	// root (the implicit outermost node every compiled expression
	// matches against) has name "[document]".
	Name() string

	// Classes is the tag's class list, in source order; empty if none.
	Classes() []string

	// ID returns the tag's id attribute and whether it has one.
	ID() (string, bool)

	// Attr returns the named attribute's raw string value and whether
	// it is present. Attribute lookups used by extractors and filters
	// (".href", ".src", etc.) go through Attr.
	Attr(name string) (string, bool)

	// Text is the tag's own direct text content (not its descendants'),
	// used by the "txt" extractor and by bare-string/regex filters
	// against a tag.
	Text() string

	// Children returns the tag's direct children, in document order.
	Children() []Tag

	// Parent returns the tag's parent and whether it has one; the
	// document root has none.
	Parent() (Tag, bool)

	// IsDocument reports whether this tag is the synthetic document
	// root a compiled expression is matched against.
	IsDocument() bool
}

// FuncMap supplies the `$name` predicate functions a compiled
// expression's filters may reference. Each function receives the tag
// the filter is evaluated against and returns whether it passes.
type FuncMap map[string]func(Tag) bool

// Name, Classes, and ID satisfy ast.TagMatcher so any Tag can be used
// directly as a tag-predicate target without an adapter.
var _ interface {
	Name() string
	Classes() []string
	ID() (string, bool)
} = Tag(nil)
