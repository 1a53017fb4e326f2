package tql

import (
	"fmt"
	"strings"

	"github.com/tql-lang/tql/pkgs/ast"
)

// PPrint renders n as an indented tree, one node per line, each
// labeled with its Mode once validate.Validate has run.
func PPrint(n ast.Node) string {
	var b strings.Builder
	pprint(&b, n, 0)
	return b.String()
}

func pprint(b *strings.Builder, n ast.Node, depth int) {
	fmt.Fprintf(b, "%s%s [%s]\n", strings.Repeat("  ", depth), n, n.Mode())
	for _, c := range n.Children() {
		pprint(b, c, depth+1)
	}
}
