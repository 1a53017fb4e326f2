// Package ast defines the TQL abstract syntax tree: the node variants of
// the grammar, the Mode that drives the validator's traversal discipline,
// and the Extractor/FilterExpr leaves attached by Extractors and Filter
// nodes. Matching itself lives in package match, which interprets these
// nodes and package validate checks them; this package holds data and
// each tag node's own TagMatch predicate.
package ast

import "fmt"

// Mode is the traversal dimension a node was validated in: DEPTH walks
// parent/child, BREADTH walks sibling/sibling.
type Mode int

const (
	Unset Mode = iota
	Depth
	Breadth
)

func (m Mode) Opposite() Mode {
	switch m {
	case Depth:
		return Breadth
	case Breadth:
		return Depth
	default:
		return Unset
	}
}

func (m Mode) String() string {
	switch m {
	case Depth:
		return "DEPTH"
	case Breadth:
		return "BREADTH"
	default:
		return "UNSET"
	}
}

// Node is any member of the TQL AST sum type. Every node tracks its own
// Mode, assigned exactly once by validate.Validate, and its Children for
// the validator's and pretty-printer's recursive traversal.
type Node interface {
	Children() []Node
	Mode() Mode
	SetMode(Mode)
	// HasExtractors reports whether this subtree contains an Extractors
	// node with at least one extractor; RepOp uses it to decide whether
	// to track grouping at all.
	HasExtractors() bool
	fmt.Stringer
}

// base carries the Mode field shared by every node, set once by the
// validator.
type base struct {
	mode Mode
}

func (b *base) Mode() Mode     { return b.mode }
func (b *base) SetMode(m Mode) { b.mode = m }

func hasExtractors(children []Node) bool {
	for _, c := range children {
		if c.HasExtractors() {
			return true
		}
	}
	return false
}

// ---- Tag expressions ----

// Tag is the sub-interface implemented by nodes that can appear in tag
// position (NameTag, ClassTag, IdTag, BothTag, NotTag). TagMatch tests
// whether a single host tag satisfies the predicate; it never traverses.
type Tag interface {
	Node
	TagMatch(n TagMatcher) bool
	// HasName/HasID drive BothTag's validation (name must be on the
	// left, at most one id).
	HasName() bool
	HasID() bool
}

// TagMatcher is the minimal capability Tag predicates need from a host
// tag: its name, class list, and id attribute. The full traversal
// capability set lives in package tagtree; this narrower interface keeps
// ast free of any dependency on it.
type TagMatcher interface {
	Name() string
	Classes() []string
	ID() (string, bool)
}

// NameTag matches by tag name, or any tag when Wild is set (the `@`
// wildcard).
type NameTag struct {
	base
	Name string
	Wild bool // true for `@`: match any name
}

func NewNameTag(name string) *NameTag          { return &NameTag{Name: name} }
func NewWildNameTag() *NameTag                 { return &NameTag{Wild: true} }
func (n *NameTag) Children() []Node            { return nil }
func (n *NameTag) HasExtractors() bool         { return false }
func (n *NameTag) HasName() bool               { return !n.Wild }
func (n *NameTag) HasID() bool                 { return false }
func (n *NameTag) TagMatch(t TagMatcher) bool  { return n.Wild || t.Name() == n.Name }
func (n *NameTag) String() string {
	if n.Wild {
		return "NameTag(@)"
	}
	return fmt.Sprintf("NameTag(%s)", n.Name)
}

// ClassTag requires class-list membership.
type ClassTag struct {
	base
	Class string
}

func NewClassTag(class string) *ClassTag     { return &ClassTag{Class: class} }
func (n *ClassTag) Children() []Node         { return nil }
func (n *ClassTag) HasExtractors() bool      { return false }
func (n *ClassTag) HasName() bool            { return false }
func (n *ClassTag) HasID() bool              { return false }
func (n *ClassTag) String() string           { return fmt.Sprintf("ClassTag(.%s)", n.Class) }
func (n *ClassTag) TagMatch(t TagMatcher) bool {
	for _, c := range t.Classes() {
		if c == n.Class {
			return true
		}
	}
	return false
}

// IdTag requires the `id` attribute to equal Id exactly.
type IdTag struct {
	base
	Id string
}

func NewIdTag(id string) *IdTag    { return &IdTag{Id: id} }
func (n *IdTag) Children() []Node  { return nil }
func (n *IdTag) HasExtractors() bool { return false }
func (n *IdTag) HasName() bool     { return false }
func (n *IdTag) HasID() bool       { return true }
func (n *IdTag) String() string    { return fmt.Sprintf("IdTag(#%s)", n.Id) }
func (n *IdTag) TagMatch(t TagMatcher) bool {
	id, ok := t.ID()
	return ok && id == n.Id
}

// BothTag is the conjunction of two tag predicates, built from adjacent
// tag atoms (e.g. `div.a#b` is BothTag(BothTag(NameTag(div), ClassTag(a)),
// IdTag(b))).
type BothTag struct {
	base
	Left, Right Tag
}

func NewBothTag(l, r Tag) *BothTag { return &BothTag{Left: l, Right: r} }
func (n *BothTag) Children() []Node {
	return []Node{n.Left, n.Right}
}
func (n *BothTag) HasExtractors() bool { return false }
func (n *BothTag) HasName() bool       { return n.Left.HasName() || n.Right.HasName() }
func (n *BothTag) HasID() bool         { return n.Left.HasID() || n.Right.HasID() }
func (n *BothTag) String() string      { return "BothTag" }
func (n *BothTag) TagMatch(t TagMatcher) bool {
	return n.Left.TagMatch(t) && n.Right.TagMatch(t)
}

// NotTag negates a tag predicate.
type NotTag struct {
	base
	Expr Tag
}

func NewNotTag(t Tag) *NotTag         { return &NotTag{Expr: t} }
func (n *NotTag) Children() []Node    { return []Node{n.Expr} }
func (n *NotTag) HasExtractors() bool { return false }
func (n *NotTag) HasName() bool       { return false }
func (n *NotTag) HasID() bool         { return false }
func (n *NotTag) String() string      { return "NotTag" }
func (n *NotTag) TagMatch(t TagMatcher) bool {
	return !n.Expr.TagMatch(t)
}

// ---- Extractors ----

// Extractor is a leaf extraction rule: "node", "txt", or ".attr".
type Extractor struct {
	Type string
}

func (e *Extractor) String() string { return fmt.Sprintf("Extractor(%s)", e.Type) }

// Extractors attaches an extraction tuple to the match produced by Expr.
type Extractors struct {
	base
	Expr       Node
	Extractors []*Extractor
}

func NewExtractors(expr Node, extractors []*Extractor) *Extractors {
	return &Extractors{Expr: expr, Extractors: extractors}
}
func (n *Extractors) Children() []Node    { return []Node{n.Expr} }
func (n *Extractors) HasExtractors() bool { return len(n.Extractors) > 0 || n.Expr.HasExtractors() }
func (n *Extractors) String() string      { return "Extractors" }

// ---- Filters ----

// FilterExpr is the sum type of side-predicate expressions usable inside
// `expr ~( filter )`.
type FilterExpr interface {
	fmt.Stringer
	filterExpr()
}

type ExtractorFilter struct{ Extractor *Extractor }

func (*ExtractorFilter) filterExpr()    {}
func (f *ExtractorFilter) String() string { return f.Extractor.String() }

// LiteralFilter holds a STRING or NUMBER literal; Value is string or int.
type LiteralFilter struct{ Value any }

func (*LiteralFilter) filterExpr()    {}
func (f *LiteralFilter) String() string { return fmt.Sprintf("Literal(%v)", f.Value) }

type FuncFilter struct{ Name string }

func (*FuncFilter) filterExpr()    {}
func (f *FuncFilter) String() string { return "$" + f.Name }

// OpFilter combines two FilterExpr with one of && || == != ~~ !~.
type OpFilter struct {
	Left  FilterExpr
	Op    string
	Right FilterExpr
}

func (*OpFilter) filterExpr()    {}
func (f *OpFilter) String() string { return fmt.Sprintf("(%s %s %s)", f.Left, f.Op, f.Right) }

// Filter attaches a boolean side-predicate to Expr's matches.
type Filter struct {
	base
	Expr   Node
	Filter FilterExpr
}

func NewFilter(expr Node, filter FilterExpr) *Filter {
	return &Filter{Expr: expr, Filter: filter}
}
func (n *Filter) Children() []Node    { return []Node{n.Expr} }
func (n *Filter) HasExtractors() bool { return n.Expr.HasExtractors() }
func (n *Filter) String() string      { return "Filter" }

// ---- Traversal & repetition ----

// TravOp is a binary traversal: left, then for each candidate reached by
// descending from left's position via Op, right.
type TravOp struct {
	base
	Left  Node
	Op    string // > >> : ::
	Right Node
}

func NewTravOp(l Node, op string, r Node) *TravOp { return &TravOp{Left: l, Op: op, Right: r} }
func (n *TravOp) Children() []Node                { return []Node{n.Left, n.Right} }
func (n *TravOp) HasExtractors() bool             { return hasExtractors(n.Children()) }
func (n *TravOp) String() string                  { return n.Op }

// RepOp repeats `expr trav_op` zero-or-more (`*`) or one-or-more (`+`)
// times.
type RepOp struct {
	base
	Expr   Node
	TravOp string // > >> : ::
	RepOp  string // + *
}

func NewRepOp(expr Node, travOp, repOp string) *RepOp {
	return &RepOp{Expr: expr, TravOp: travOp, RepOp: repOp}
}
func (n *RepOp) Children() []Node    { return []Node{n.Expr} }
func (n *RepOp) HasExtractors() bool { return n.Expr.HasExtractors() }
func (n *RepOp) String() string      { return n.TravOp + n.RepOp }

// MonOp is the `?` optionality operator.
type MonOp struct {
	base
	Expr Node
	Op   string // always "?"
}

func NewMonOp(expr Node) *MonOp       { return &MonOp{Expr: expr, Op: "?"} }
func (n *MonOp) Children() []Node     { return []Node{n.Expr} }
func (n *MonOp) HasExtractors() bool  { return n.Expr.HasExtractors() }
func (n *MonOp) String() string       { return n.Op }

// BinOp is the `|` alternation operator.
type BinOp struct {
	base
	Left, Right Node
	Op          string // always "|"
}

func NewBinOp(l, r Node) *BinOp    { return &BinOp{Left: l, Right: r, Op: "|"} }
func (n *BinOp) Children() []Node  { return []Node{n.Left, n.Right} }
func (n *BinOp) HasExtractors() bool { return hasExtractors(n.Children()) }
func (n *BinOp) String() string    { return n.Op }

// ModeSwitch flips the current traversal Mode for ChildExpr, inside a
// `{ ... }` region attached to TagExpr.
type ModeSwitch struct {
	base
	TagExpr   Node
	ChildExpr Node
	// OuterMode is the mode ModeSwitch itself was validated in (i.e.
	// TagExpr's mode); recorded by validate.Validate, which sets Mode()
	// to the same value. The matcher reads OuterMode to decide which
	// traversal step to take before ChildExpr.
	OuterMode Mode
}

func NewModeSwitch(tagExpr, childExpr Node) *ModeSwitch {
	return &ModeSwitch{TagExpr: tagExpr, ChildExpr: childExpr}
}
func (n *ModeSwitch) Children() []Node    { return []Node{n.TagExpr, n.ChildExpr} }
func (n *ModeSwitch) HasExtractors() bool { return hasExtractors(n.Children()) }
func (n *ModeSwitch) String() string      { return "ModeSwitch" }

// End is the `$` anchor.
type End struct{ base }

func NewEnd() *End              { return &End{} }
func (n *End) Children() []Node { return nil }
func (n *End) HasExtractors() bool { return false }
func (n *End) String() string   { return "$" }

// Document is the top-level wrapper produced by Compile.
type Document struct {
	base
	Expr Node
}

func NewDocument(expr Node) *Document { return &Document{Expr: expr} }
func (n *Document) Children() []Node  { return []Node{n.Expr} }
func (n *Document) HasExtractors() bool { return n.Expr.HasExtractors() }
func (n *Document) String() string    { return "Document" }
