// Package ast defines the surface syntax tree the checker and lowerer
// operate on. Lexing and parsing the source text into this tree is an
// external concern (a producer of AST nodes with spans) — this package only
// specifies the shape of that contract: every node the checker and lowerer
// need to see, nothing about how it was tokenized.
package ast

import (
	"fmt"
)

// Pos is a single position in a source file.
type Pos struct {
	File   string
	Line   int
	Column int
	Offset int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span is a half-open range in source code, [Start, End).
type Span struct {
	Start Pos
	End   Pos
}

// Node is the base interface every AST node satisfies.
type Node interface {
	Position() Span
	String() string
}

// File is a single parsed source file: an optional module declaration,
// its imports, and its top-level declarations in source order.
type File struct {
	Path    string
	Module  *ModuleDecl
	Imports []*ImportDecl
	Decls   []Decl
	Span    Span
}

func (f *File) Position() Span { return f.Span }
func (f *File) String() string { return fmt.Sprintf("file(%s)", f.Path) }

// ModuleDecl names the module a file belongs to.
type ModuleDecl struct {
	Path string
	Span Span
}

func (m *ModuleDecl) Position() Span { return m.Span }
func (m *ModuleDecl) String() string { return "module " + m.Path }

// ImportDecl imports symbols from another module. An empty Symbols list
// means a whole-module import.
type ImportDecl struct {
	Path    string
	Symbols []string
	Span    Span
}

func (i *ImportDecl) Position() Span { return i.Span }
func (i *ImportDecl) String() string { return "import " + i.Path }
