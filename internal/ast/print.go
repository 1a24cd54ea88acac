package ast

import (
	"fmt"
	"strings"
)

// Dump renders a node tree as an indented, deterministic text form for
// golden-file testing. It omits spans so the output is stable across
// re-formatting of the source.
func Dump(node Node) string {
	var b strings.Builder
	dump(&b, node, 0)
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func dump(b *strings.Builder, node Node, depth int) {
	if node == nil {
		indent(b, depth)
		b.WriteString("<nil>\n")
		return
	}
	indent(b, depth)
	fmt.Fprintf(b, "%T %s\n", node, node.String())
}

// DumpFile renders every top-level declaration of a file.
func DumpFile(f *File) string {
	var b strings.Builder
	fmt.Fprintf(&b, "file %s\n", f.Path)
	for _, d := range f.Decls {
		dump(&b, d, 1)
	}
	return b.String()
}
