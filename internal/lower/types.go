// Package lower translates the checked, ownership-annotated surface AST
// into MIR (internal/ir): CFG construction for control flow, explicit
// Clone instructions for `clone` (object literals are built through
// runtime calls, not an allocation instruction), and string-pool
// interning for literals. It is a single forward walk mirroring the
// checker's own shape, but it builds basic blocks instead of diagnostics.
package lower

import (
	"github.com/zacolang/zaco/internal/ast"
	"github.com/zacolang/zaco/internal/ir"
)

// convertIrType maps a surface type annotation to its MIR representation.
// MIR has no first-class union, object, interface, or generic type — those
// structural distinctions matter to the checker but not to codegen, which
// only needs to know a value's machine representation. Anything structural
// that isn't a named class lowers to an opaque heap Ptr; a named class
// lowers to its registered Struct type.
func (l *Lowerer) convertIrType(t ast.TypeAnnotation) ir.IrType {
	if t == nil {
		return ir.Ptr()
	}
	switch n := t.(type) {
	case *ast.PrimitiveType:
		return l.convertPrimitive(n.Kind)
	case *ast.ArrayType:
		return ir.Array(l.convertIrType(n.Elem))
	case *ast.TypeRefType:
		if id, ok := l.structIds[n.Name]; ok {
			return ir.Struct(id)
		}
		return ir.Ptr()
	case *ast.PromiseType:
		return ir.Promise(l.convertIrType(n.Inner))
	case *ast.FunctionType:
		params := make([]ir.IrType, len(n.Params))
		for i, p := range n.Params {
			params[i] = l.convertIrType(p)
		}
		return ir.FuncPtr(ir.FuncSignature{Params: params, ReturnType: l.convertIrType(n.Return)})
	default:
		// Union, Intersection, Object, Generic, Tuple, literal types: all
		// erase to an opaque heap pointer at the MIR level.
		return ir.Ptr()
	}
}

func (l *Lowerer) convertPrimitive(kind ast.PrimitiveKind) ir.IrType {
	switch kind {
	case ast.PrimNumber:
		return ir.F64()
	case ast.PrimBoolean:
		return ir.Bool()
	case ast.PrimString:
		return ir.Str()
	case ast.PrimVoid:
		return ir.Void()
	default:
		return ir.Ptr()
	}
}
