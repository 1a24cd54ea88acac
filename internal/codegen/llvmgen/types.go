package llvmgen

import (
	"tinygo.org/x/go-llvm"

	"github.com/zacolang/zaco/internal/ir"
)

// mapType translates an MIR type to its LLVM machine representation, per
// the fixed type mapping: I64/F64 keep their natural width, Bool is a byte,
// and every pointer-bearing kind (Str, Ptr, Array, Struct, FuncPtr,
// Promise) maps to a plain 64-bit integer rather than an LLVM pointer
// type. The runtime tells heap representations apart at the byte level,
// never through LLVM's type system, so codegen treats every reference as
// an opaque machine word and never needs a typed pointer.
func mapType(t ir.IrType) llvm.Type {
	switch t.Kind() {
	case ir.KindI64:
		return llvm.Int64Type()
	case ir.KindF64:
		return llvm.DoubleType()
	case ir.KindBool:
		return llvm.Int8Type()
	case ir.KindVoid:
		return llvm.VoidType()
	default:
		return llvm.Int64Type()
	}
}

func mapTypes(ts []ir.IrType) []llvm.Type {
	out := make([]llvm.Type, len(ts))
	for i, t := range ts {
		out[i] = mapType(t)
	}
	return out
}

// mapSignature translates an MIR function signature to an LLVM function
// type. zaco has no variadic surface functions; only hand-declared runtime
// externs would ever need one, and none do.
func mapSignature(sig ir.FuncSignature) llvm.Type {
	return llvm.FunctionType(mapType(sig.ReturnType), mapTypes(sig.Params), false)
}
