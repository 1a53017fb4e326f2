package htmltag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixture = `<html><body>
<ul id="list">
  <li class="item first"><a href="/a">Alpha</a></li>
  <li class="item"><a href="/b">Beta</a></li>
</ul>
</body></html>`

func TestParseBuildsDocumentRoot(t *testing.T) {
	root, err := Parse(strings.NewReader(fixture))
	require.NoError(t, err)
	require.True(t, root.IsDocument())
	require.Equal(t, documentName, root.Name())
	_, hasParent := root.Parent()
	require.False(t, hasParent)
}

func TestParseExposesAttributesAndClasses(t *testing.T) {
	root, err := Parse(strings.NewReader(fixture))
	require.NoError(t, err)

	ul := findByID(t, root, "list")
	require.Equal(t, "ul", ul.Name())

	lis := ul.Children()
	require.Len(t, lis, 2)
	classes := lis[0].Classes()
	require.Contains(t, classes, "item")
	require.Contains(t, classes, "first")

	a := lis[0].Children()[0]
	href, ok := a.Attr("href")
	require.True(t, ok)
	require.Equal(t, "/a", href)
	require.Equal(t, "Alpha", a.Text())
}

func findByID(t *testing.T, n *Tag, id string) *Tag {
	t.Helper()
	var found *Tag
	var walk func(*Tag)
	walk = func(cur *Tag) {
		if found != nil {
			return
		}
		if v, ok := cur.ID(); ok && v == id {
			found = cur
			return
		}
		for _, c := range cur.children {
			walk(c.(*Tag))
		}
	}
	walk(n)
	require.NotNil(t, found, "id %q not found", id)
	return found
}
