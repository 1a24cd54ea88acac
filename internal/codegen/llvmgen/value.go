package llvmgen

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"github.com/zacolang/zaco/internal/ir"
)

// constOperand materializes a compile-time Constant as an LLVM constant
// value. A ConstStr constant is ambiguous on its own — the same Go type
// carries a function reference, a module-level global's name, and an
// interned literal string's payload (see resolveCallee's grounding
// comment in internal/lower) — so it is resolved against all three
// namespaces in turn before falling back to synthesising a fresh string
// global for it.
func (d *declared) constOperand(m llvm.Module, c ir.Constant) llvm.Value {
	switch c.Kind() {
	case ir.ConstI64:
		return llvm.ConstInt(llvm.Int64Type(), uint64(c.I64()), true)
	case ir.ConstF64:
		return llvm.ConstFloat(llvm.DoubleType(), c.F64())
	case ir.ConstBool:
		v := uint64(0)
		if c.Bool() {
			v = 1
		}
		return llvm.ConstInt(llvm.Int8Type(), v, false)
	case ir.ConstStr:
		return d.resolveName(m, c.Str())
	default: // ConstNull
		return llvm.ConstInt(llvm.Int64Type(), 0, false)
	}
}

// resolveName addresses a named reference as a machine-word i64: a
// function symbol, a module-level global, or (when neither matches) a
// literal string's backing byte buffer.
func (d *declared) resolveName(m llvm.Module, name string) llvm.Value {
	if fn, ok := d.funcVals[name]; ok {
		return llvm.ConstPtrToInt(fn, llvm.Int64Type())
	}
	if g, ok := d.globals[name]; ok {
		return llvm.ConstPtrToInt(g, llvm.Int64Type())
	}
	return d.stringAddress(m, name)
}

// stringAddress returns the i64 address of a byte buffer holding s, reusing
// an already-declared private global for identical text when one exists
// (almost always true: every literal string reaches here through the
// lowerer's module-wide string pool) and synthesising a fresh one
// otherwise, so a structurally valid MIR value never fails to compile for
// want of a backing symbol.
func (d *declared) stringAddress(m llvm.Module, s string) llvm.Value {
	if gv, ok := d.stringsByText[s]; ok {
		return llvm.ConstPtrToInt(gv, llvm.Int64Type())
	}
	cst := llvm.ConstString(s, true)
	gv := llvm.AddGlobal(m, cst.Type(), fmt.Sprintf("str.extra.%d", len(d.stringsByText)))
	gv.SetLinkage(llvm.PrivateLinkage)
	gv.SetInitializer(cst)
	gv.SetGlobalConstant(true)
	d.stringsByText[s] = gv
	return llvm.ConstPtrToInt(gv, llvm.Int64Type())
}
