package ast

// OwnershipKind is the ownership annotation written on a binding or
// parameter: `owned`, `&` (ref), `&mut` (mut ref), or nothing at all
// (inferred — defaults to Owned).
type OwnershipKind int

const (
	OwnershipInferred OwnershipKind = iota
	OwnershipOwned
	OwnershipRef
	OwnershipMutRef
)

// OwnershipAnnotation is the surface-syntax ownership marker attached to a
// variable declarator or function parameter.
type OwnershipAnnotation struct {
	Kind OwnershipKind
	Span Span
}
