package types

// Substitute replaces every Generic/TypeRef name in ty found in params
// with its concrete mapping, recursing through every composite type. It
// is a thin entry point over each type's own Substitute method, kept as a
// package-level function so call sites read `types.Substitute(t, params)`
// rather than reaching for a specific variant's method.
func Substitute(ty Type, params map[string]Type) Type {
	if len(params) == 0 {
		return ty
	}
	return ty.Substitute(params)
}

// UnionOf builds a union type from members, collapsing the empty list to
// Never and a singleton list to its one member so that callers building
// unions programmatically (e.g. widening the result of an if/else over
// branch types) never construct a degenerate Union{Members: nil} or
// Union{Members: [x]}.
func UnionOf(members ...Type) Type {
	return Flatten(members)
}
