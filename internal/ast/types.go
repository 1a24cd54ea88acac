package ast

// TypeAnnotation is the surface-syntax representation of a type, as written
// by the programmer. The checker converts a TypeAnnotation into an internal
// types.Type with convertAnnotation; this tree only records what was parsed.
type TypeAnnotation interface {
	Node
	typeAnnotationNode()
}

// PrimitiveKind enumerates the built-in primitive type names.
type PrimitiveKind int

const (
	PrimNumber PrimitiveKind = iota
	PrimString
	PrimBoolean
	PrimVoid
	PrimNull
	PrimUndefined
	PrimAny
	PrimNever
	PrimUnknown
)

// PrimitiveType is a bare primitive type name, e.g. `number`.
type PrimitiveType struct {
	Kind PrimitiveKind
	Span Span
}

func (t *PrimitiveType) Position() Span      { return t.Span }
func (t *PrimitiveType) String() string      { return primitiveNames[t.Kind] }
func (t *PrimitiveType) typeAnnotationNode() {}

var primitiveNames = map[PrimitiveKind]string{
	PrimNumber:    "number",
	PrimString:    "string",
	PrimBoolean:   "boolean",
	PrimVoid:      "void",
	PrimNull:      "null",
	PrimUndefined: "undefined",
	PrimAny:       "any",
	PrimNever:     "never",
	PrimUnknown:   "unknown",
}

// ArrayType is `T[]`.
type ArrayType struct {
	Elem TypeAnnotation
	Span Span
}

func (t *ArrayType) Position() Span      { return t.Span }
func (t *ArrayType) String() string      { return t.Elem.String() + "[]" }
func (t *ArrayType) typeAnnotationNode() {}

// TupleType is `[T1, T2, ...]`.
type TupleType struct {
	Elems []TypeAnnotation
	Span  Span
}

func (t *TupleType) Position() Span      { return t.Span }
func (t *TupleType) String() string      { return "tuple" }
func (t *TupleType) typeAnnotationNode() {}

// UnionType is `A | B | ...`.
type UnionType struct {
	Members []TypeAnnotation
	Span    Span
}

func (t *UnionType) Position() Span      { return t.Span }
func (t *UnionType) String() string      { return "union" }
func (t *UnionType) typeAnnotationNode() {}

// IntersectionType is `A & B & ...`.
type IntersectionType struct {
	Members []TypeAnnotation
	Span    Span
}

func (t *IntersectionType) Position() Span      { return t.Span }
func (t *IntersectionType) String() string      { return "intersection" }
func (t *IntersectionType) typeAnnotationNode() {}

// FunctionType is `(p1: T1, p2: T2) => R`.
type FunctionType struct {
	Params []TypeAnnotation
	Return TypeAnnotation
	Span   Span
}

func (t *FunctionType) Position() Span      { return t.Span }
func (t *FunctionType) String() string      { return "function type" }
func (t *FunctionType) typeAnnotationNode() {}

// ObjectTypeProperty is a single member of an object type literal.
type ObjectTypeProperty struct {
	Name     string
	Type     TypeAnnotation
	Optional bool
}

// ObjectType is `{ a: T1, b?: T2 }`.
type ObjectType struct {
	Properties []ObjectTypeProperty
	Span       Span
}

func (t *ObjectType) Position() Span      { return t.Span }
func (t *ObjectType) String() string      { return "object type" }
func (t *ObjectType) typeAnnotationNode() {}

// GenericType is a generic type parameter reference, e.g. `T`, with an
// optional constraint (`T extends Base`).
type GenericType struct {
	Name       string
	Constraint TypeAnnotation
	Span       Span
}

func (t *GenericType) Position() Span      { return t.Span }
func (t *GenericType) String() string      { return t.Name }
func (t *GenericType) typeAnnotationNode() {}

// TypeRefType is a named type reference with optional type arguments, e.g.
// `Array<number>` or a bare alias/interface/class name.
type TypeRefType struct {
	Name     string
	TypeArgs []TypeAnnotation
	Span     Span
}

func (t *TypeRefType) Position() Span      { return t.Span }
func (t *TypeRefType) String() string      { return t.Name }
func (t *TypeRefType) typeAnnotationNode() {}

// PromiseType is `Promise<T>`.
type PromiseType struct {
	Inner TypeAnnotation
	Span  Span
}

func (t *PromiseType) Position() Span      { return t.Span }
func (t *PromiseType) String() string      { return "Promise<" + t.Inner.String() + ">" }
func (t *PromiseType) typeAnnotationNode() {}

// LiteralKind enumerates literal-type kinds.
type LiteralKind int

const (
	LitString LiteralKind = iota
	LitNumber
	LitBoolean
)

// LiteralTypeAnnotation is a literal type such as `"ok"` or `42`.
type LiteralTypeAnnotation struct {
	Kind  LiteralKind
	Value any
	Span  Span
}

func (t *LiteralTypeAnnotation) Position() Span      { return t.Span }
func (t *LiteralTypeAnnotation) String() string      { return "literal" }
func (t *LiteralTypeAnnotation) typeAnnotationNode() {}
