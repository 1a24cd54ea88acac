package checker

import (
	"github.com/zacolang/zaco/internal/ast"
	"github.com/zacolang/zaco/internal/checkenv"
	"github.com/zacolang/zaco/internal/types"
)

// convertAstType maps a surface type annotation to the checker's internal
// type lattice. Unresolved TypeRefs are left as-is; convertAstType never
// fails, since anything it can't resolve becomes a bare TypeRef that
// IsAssignable treats as an open generic parameter.
func convertAstType(t ast.TypeAnnotation) types.Type {
	if t == nil {
		return types.Unknown
	}
	switch n := t.(type) {
	case *ast.PrimitiveType:
		return convertPrimitive(n.Kind)
	case *ast.ArrayType:
		return &types.Array{Elem: convertAstType(n.Elem)}
	case *ast.TupleType:
		elems := make([]types.Type, len(n.Elems))
		for i, e := range n.Elems {
			elems[i] = convertAstType(e)
		}
		return &types.Tuple{Elems: elems}
	case *ast.UnionType:
		members := make([]types.Type, len(n.Members))
		for i, m := range n.Members {
			members[i] = convertAstType(m)
		}
		return &types.Union{Members: members}
	case *ast.IntersectionType:
		members := make([]types.Type, len(n.Members))
		for i, m := range n.Members {
			members[i] = convertAstType(m)
		}
		return &types.Intersection{Members: members}
	case *ast.FunctionType:
		params := make([]types.Type, len(n.Params))
		for i, p := range n.Params {
			params[i] = convertAstType(p)
		}
		return &types.Function{Params: params, Return: convertAstType(n.Return)}
	case *ast.ObjectType:
		props := make([]types.ObjectProperty, len(n.Properties))
		for i, p := range n.Properties {
			props[i] = types.ObjectProperty{Name: p.Name, Type: convertAstType(p.Type), Optional: p.Optional}
		}
		return &types.Object{Properties: props}
	case *ast.GenericType:
		var constraint types.Type
		if n.Constraint != nil {
			constraint = convertAstType(n.Constraint)
		}
		return &types.Generic{Name: n.Name, Constraint: constraint}
	case *ast.TypeRefType:
		args := make([]types.Type, len(n.TypeArgs))
		for i, a := range n.TypeArgs {
			args[i] = convertAstType(a)
		}
		return &types.TypeRef{Name: n.Name, TypeArgs: args}
	case *ast.PromiseType:
		return &types.Promise{Inner: convertAstType(n.Inner)}
	case *ast.LiteralTypeAnnotation:
		return convertLiteralType(n)
	default:
		return types.Unknown
	}
}

func convertPrimitive(kind ast.PrimitiveKind) types.Type {
	switch kind {
	case ast.PrimNumber:
		return types.Number
	case ast.PrimString:
		return types.StringT
	case ast.PrimBoolean:
		return types.Boolean
	case ast.PrimVoid:
		return types.Void
	case ast.PrimNull:
		return types.Null
	case ast.PrimUndefined:
		return types.Undefined
	case ast.PrimAny:
		return types.Any
	case ast.PrimNever:
		return types.Never
	case ast.PrimUnknown:
		return types.Unknown
	default:
		return types.Unknown
	}
}

func convertLiteralType(lit *ast.LiteralTypeAnnotation) types.Type {
	switch lit.Kind {
	case ast.LitString:
		return &types.Literal{Kind: types.LiteralString, Value: lit.Value}
	case ast.LitNumber:
		return &types.Literal{Kind: types.LiteralNumber, Value: lit.Value}
	case ast.LitBoolean:
		return &types.Literal{Kind: types.LiteralBoolean, Value: lit.Value}
	default:
		return types.Unknown
	}
}

// convertOwnership maps a surface ownership annotation to its initial
// ownership state. A binding with no explicit annotation defaults to
// Owned, matching ordinary by-value TypeScript semantics until ownership
// is explicitly taken away from it.
func convertOwnership(ann *ast.OwnershipAnnotation) checkenv.OwnershipState {
	if ann == nil {
		return checkenv.Owned
	}
	switch ann.Kind {
	case ast.OwnershipRef:
		return checkenv.Borrowed
	case ast.OwnershipMutRef:
		return checkenv.MutBorrowed
	default:
		return checkenv.Owned
	}
}
