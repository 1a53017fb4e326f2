package ast

import "testing"

type fakeTag struct {
	name    string
	classes []string
	id      string
	hasID   bool
}

func (f fakeTag) Name() string      { return f.name }
func (f fakeTag) Classes() []string { return f.classes }
func (f fakeTag) ID() (string, bool) { return f.id, f.hasID }

func TestNameTagMatch(t *testing.T) {
	div := NewNameTag("div")
	if !div.TagMatch(fakeTag{name: "div"}) {
		t.Fatal("expected div to match div")
	}
	if div.TagMatch(fakeTag{name: "span"}) {
		t.Fatal("expected div not to match span")
	}
}

func TestWildNameTagMatchesAnything(t *testing.T) {
	wild := NewWildNameTag()
	if !wild.TagMatch(fakeTag{name: "anything"}) {
		t.Fatal("expected wildcard to match any name")
	}
}

func TestClassTagMatch(t *testing.T) {
	c := NewClassTag("active")
	if !c.TagMatch(fakeTag{classes: []string{"foo", "active"}}) {
		t.Fatal("expected class match")
	}
	if c.TagMatch(fakeTag{classes: []string{"foo"}}) {
		t.Fatal("expected class mismatch")
	}
}

func TestIdTagMatch(t *testing.T) {
	idt := NewIdTag("main")
	if !idt.TagMatch(fakeTag{id: "main", hasID: true}) {
		t.Fatal("expected id match")
	}
	if idt.TagMatch(fakeTag{hasID: false}) {
		t.Fatal("expected id mismatch when tag has no id")
	}
}

func TestBothTagConjunction(t *testing.T) {
	both := NewBothTag(NewNameTag("div"), NewClassTag("active"))
	if !both.TagMatch(fakeTag{name: "div", classes: []string{"active"}}) {
		t.Fatal("expected conjunction to match")
	}
	if both.TagMatch(fakeTag{name: "div", classes: []string{"inactive"}}) {
		t.Fatal("expected conjunction to fail on class mismatch")
	}
	if !both.HasName() {
		t.Fatal("expected HasName true through BothTag")
	}
}

func TestNotTagNegation(t *testing.T) {
	nt := NewNotTag(NewNameTag("div"))
	if nt.TagMatch(fakeTag{name: "div"}) {
		t.Fatal("expected negation to reject div")
	}
	if !nt.TagMatch(fakeTag{name: "span"}) {
		t.Fatal("expected negation to accept span")
	}
}

func TestModeOpposite(t *testing.T) {
	if Depth.Opposite() != Breadth {
		t.Fatal("expected Depth's opposite to be Breadth")
	}
	if Breadth.Opposite() != Depth {
		t.Fatal("expected Breadth's opposite to be Depth")
	}
}
