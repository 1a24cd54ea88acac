package ir

import (
	"fmt"
	"strings"
)

// Print renders a whole module as text: struct layouts, extern
// declarations, the string pool, and every function with its locals, temps
// and blocks. `--emit ir` does not use it; it prints IrModule.DumpIR. The
// format is stable enough for golden-file tests but is not a parseable
// assembly language; there is no MIR parser in this compiler.
func Print(m *IrModule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "; module %s\n", m.Name)

	for i, s := range m.Structs {
		fmt.Fprintf(&b, "struct #%d %s {\n", i, s.Name)
		for _, field := range s.Fields {
			fmt.Fprintf(&b, "  %s: %s\n", field.Name, field.Type)
		}
		b.WriteString("}\n")
	}

	for _, ext := range m.ExternFunctions {
		sig := FuncSignature{Params: ext.Params, ReturnType: ext.ReturnType}
		fmt.Fprintf(&b, "declare %s%s\n", ext.Name, sig)
	}

	for i, lit := range m.StringLiterals {
		fmt.Fprintf(&b, "str #%d = %q\n", i, lit)
	}

	for _, f := range m.Functions {
		printFunction(&b, f)
	}

	return b.String()
}

func printFunction(b *strings.Builder, f *IrFunction) {
	vis := ""
	if f.IsExported {
		vis = "pub "
	}
	async := ""
	if f.IsAsync {
		async = "async "
	}
	fmt.Fprintf(b, "%s%sfn @%s %s {\n", vis, async, f.Name, f.Signature())

	for i, l := range f.Locals {
		name := l.Name
		if name == "" {
			name = "_"
		}
		fmt.Fprintf(b, "  local _l%d: %s ; %s\n", i, l.Type, name)
	}
	for i, t := range f.Temps {
		fmt.Fprintf(b, "  temp _t%d: %s\n", i, t)
	}

	for _, block := range f.Blocks {
		fmt.Fprintf(b, "  bb%d:\n", block.Id)
		for _, instr := range block.Instructions {
			fmt.Fprintf(b, "    %s\n", instr)
		}
		if block.Terminator != nil {
			fmt.Fprintf(b, "    %s\n", block.Terminator)
		} else {
			b.WriteString("    <unterminated>\n")
		}
	}

	b.WriteString("}\n")
}
