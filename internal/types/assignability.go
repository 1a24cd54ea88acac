package types

// Resolver resolves a TypeRef name to its declared type, e.g. a type
// alias or interface name to its body. The checker environment implements
// this; assignability stays decoupled from it to avoid an import cycle.
type Resolver interface {
	ResolveTypeRef(name string) (Type, bool)
}

func resolve(ty Type, resolver Resolver) Type {
	ref, ok := ty.(*TypeRef)
	if !ok || resolver == nil {
		return ty
	}
	if resolved, ok := resolver.ResolveTypeRef(ref.Name); ok {
		return resolved
	}
	return ty
}

// IsAssignable reports whether a value of type from may be assigned to a
// binding of type to. Resolver may be nil, in which case TypeRefs are left
// unresolved (treated as open generic parameters, rule 3 below).
//
// The rules are applied in order; the first that matches decides the
// result:
//
//  1. Structural equality.
//  2. Any on either side is always compatible.
//  3. An unresolved TypeRef (a generic parameter like T or U) is
//     compatible with anything — the checker has no concrete type to
//     compare against yet.
//  4. Everything is assignable to Unknown.
//  5. Never is assignable to everything (the bottom type).
//  6. A literal widens to its base type (42 -> number, "x" -> string,
//     true -> boolean). Note this direction only: a bare number is not
//     assignable to the literal type 42.
//  7. Array is covariant in its element type.
//  8. Promise is covariant in its inner type.
//  9. If the source is a union, every member must be assignable to the
//     target.
//  10. If the target is a union, the source must be assignable to at
//      least one member.
//  11. Function types require equal arity; each parameter is checked
//      assignable in either direction (a simplified stand-in for true
//      contravariance) and the return type is covariant.
func IsAssignable(from, to Type, resolver Resolver) bool {
	from = resolve(from, resolver)
	to = resolve(to, resolver)

	if from.Equals(to) {
		return true
	}
	if from == Any || to == Any {
		return true
	}
	if _, ok := from.(*TypeRef); ok {
		return true
	}
	if _, ok := to.(*TypeRef); ok {
		return true
	}
	if to == Unknown {
		return true
	}
	if from == Never {
		return true
	}

	if lit, ok := from.(*Literal); ok {
		switch {
		case lit.Kind == LiteralNumber && to == Number:
			return true
		case lit.Kind == LiteralString && to == StringT:
			return true
		case lit.Kind == LiteralBoolean && to == Boolean:
			return true
		}
	}

	if fromArr, ok := from.(*Array); ok {
		if toArr, ok := to.(*Array); ok {
			return IsAssignable(fromArr.Elem, toArr.Elem, resolver)
		}
	}

	if fromProm, ok := from.(*Promise); ok {
		if toProm, ok := to.(*Promise); ok {
			return IsAssignable(fromProm.Inner, toProm.Inner, resolver)
		}
	}

	if fromUnion, ok := from.(*Union); ok {
		for _, m := range fromUnion.Members {
			if !IsAssignable(m, to, resolver) {
				return false
			}
		}
		return true
	}

	if toUnion, ok := to.(*Union); ok {
		for _, m := range toUnion.Members {
			if IsAssignable(from, m, resolver) {
				return true
			}
		}
		return false
	}

	if fromFn, ok := from.(*Function); ok {
		toFn, ok := to.(*Function)
		if !ok || len(fromFn.Params) != len(toFn.Params) {
			return false
		}
		for i, fp := range fromFn.Params {
			tp := toFn.Params[i]
			if !IsAssignable(tp, fp, resolver) && !IsAssignable(fp, tp, resolver) {
				return false
			}
		}
		return IsAssignable(fromFn.Return, toFn.Return, resolver)
	}

	return false
}
