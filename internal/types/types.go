// Package types implements the checker's internal type lattice: the
// closed sum of types the checker assigns to every expression, plus
// structural equality and generic substitution over it.
package types

import (
	"fmt"
	"strings"
)

// Type is the interface every member of the type lattice implements.
type Type interface {
	String() string
	Equals(Type) bool
	Substitute(map[string]Type) Type
}

// primitive is the shared representation for the nine types that carry no
// payload: Number, String, Boolean, Void, Null, Undefined, Any, Never, and
// Unknown.
type primitive struct{ name string }

func (t *primitive) String() string { return t.name }

func (t *primitive) Equals(other Type) bool {
	o, ok := other.(*primitive)
	return ok && o.name == t.name
}

func (t *primitive) Substitute(map[string]Type) Type { return t }

var (
	Number    Type = &primitive{"number"}
	StringT   Type = &primitive{"string"}
	Boolean   Type = &primitive{"boolean"}
	Void      Type = &primitive{"void"}
	Null      Type = &primitive{"null"}
	Undefined Type = &primitive{"undefined"}
	Any       Type = &primitive{"any"}
	Never     Type = &primitive{"never"}
	Unknown   Type = &primitive{"unknown"}
)

// Array is `T[]`.
type Array struct{ Elem Type }

func (t *Array) String() string { return t.Elem.String() + "[]" }

func (t *Array) Equals(other Type) bool {
	o, ok := other.(*Array)
	return ok && t.Elem.Equals(o.Elem)
}

func (t *Array) Substitute(subs map[string]Type) Type {
	return &Array{Elem: t.Elem.Substitute(subs)}
}

// Tuple is `[T, U, V]`.
type Tuple struct{ Elems []Type }

func (t *Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (t *Tuple) Equals(other Type) bool {
	o, ok := other.(*Tuple)
	if !ok || len(t.Elems) != len(o.Elems) {
		return false
	}
	for i, e := range t.Elems {
		if !e.Equals(o.Elems[i]) {
			return false
		}
	}
	return true
}

func (t *Tuple) Substitute(subs map[string]Type) Type {
	elems := make([]Type, len(t.Elems))
	for i, e := range t.Elems {
		elems[i] = e.Substitute(subs)
	}
	return &Tuple{Elems: elems}
}

// Union is `A | B | C`.
type Union struct{ Members []Type }

func (t *Union) String() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

func (t *Union) Equals(other Type) bool {
	o, ok := other.(*Union)
	if !ok || len(t.Members) != len(o.Members) {
		return false
	}
	for i, m := range t.Members {
		if !m.Equals(o.Members[i]) {
			return false
		}
	}
	return true
}

func (t *Union) Substitute(subs map[string]Type) Type {
	members := make([]Type, len(t.Members))
	for i, m := range t.Members {
		members[i] = m.Substitute(subs)
	}
	return &Union{Members: members}
}

// Flatten collapses a single-member union down to that member, and an
// empty union down to Never. Used wherever a union is built programmatically
// (e.g. widening over branches) rather than written directly in source.
func Flatten(members []Type) Type {
	if len(members) == 0 {
		return Never
	}
	if len(members) == 1 {
		return members[0]
	}
	return &Union{Members: members}
}

// Intersection is `A & B & C`.
type Intersection struct{ Members []Type }

func (t *Intersection) String() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " & ")
}

func (t *Intersection) Equals(other Type) bool {
	o, ok := other.(*Intersection)
	if !ok || len(t.Members) != len(o.Members) {
		return false
	}
	for i, m := range t.Members {
		if !m.Equals(o.Members[i]) {
			return false
		}
	}
	return true
}

func (t *Intersection) Substitute(subs map[string]Type) Type {
	members := make([]Type, len(t.Members))
	for i, m := range t.Members {
		members[i] = m.Substitute(subs)
	}
	return &Intersection{Members: members}
}

// Function is `(params) => Return`.
type Function struct {
	Params []Type
	Return Type
}

func (t *Function) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("(%s) => %s", strings.Join(parts, ", "), t.Return)
}

func (t *Function) Equals(other Type) bool {
	o, ok := other.(*Function)
	if !ok || len(t.Params) != len(o.Params) {
		return false
	}
	for i, p := range t.Params {
		if !p.Equals(o.Params[i]) {
			return false
		}
	}
	return t.Return.Equals(o.Return)
}

func (t *Function) Substitute(subs map[string]Type) Type {
	params := make([]Type, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.Substitute(subs)
	}
	return &Function{Params: params, Return: t.Return.Substitute(subs)}
}

// ObjectProperty is one `name: Type` slot of a structural Object type.
type ObjectProperty struct {
	Name     string
	Type     Type
	Optional bool
}

// Object is a structural record type: `{ a: number, b?: string }`.
type Object struct{ Properties []ObjectProperty }

func (t *Object) String() string {
	parts := make([]string, len(t.Properties))
	for i, p := range t.Properties {
		opt := ""
		if p.Optional {
			opt = "?"
		}
		parts[i] = fmt.Sprintf("%s%s: %s", p.Name, opt, p.Type)
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

func (t *Object) Equals(other Type) bool {
	o, ok := other.(*Object)
	if !ok || len(t.Properties) != len(o.Properties) {
		return false
	}
	for i, p := range t.Properties {
		op := o.Properties[i]
		if p.Name != op.Name || p.Optional != op.Optional || !p.Type.Equals(op.Type) {
			return false
		}
	}
	return true
}

func (t *Object) Substitute(subs map[string]Type) Type {
	props := make([]ObjectProperty, len(t.Properties))
	for i, p := range t.Properties {
		props[i] = ObjectProperty{Name: p.Name, Type: p.Type.Substitute(subs), Optional: p.Optional}
	}
	return &Object{Properties: props}
}

// Property looks up a named property, returning (type, true) if present.
func (t *Object) Property(name string) (Type, bool) {
	for _, p := range t.Properties {
		if p.Name == name {
			return p.Type, true
		}
	}
	return nil, false
}

// Class is a nominal type with fields and methods.
type Class struct {
	Name    string
	Fields  []ObjectProperty
	Methods []ObjectProperty
}

func (t *Class) String() string { return "class " + t.Name }

func (t *Class) Equals(other Type) bool {
	o, ok := other.(*Class)
	return ok && t.Name == o.Name
}

func (t *Class) Substitute(subs map[string]Type) Type {
	fields := make([]ObjectProperty, len(t.Fields))
	for i, f := range t.Fields {
		fields[i] = ObjectProperty{Name: f.Name, Type: f.Type.Substitute(subs), Optional: f.Optional}
	}
	methods := make([]ObjectProperty, len(t.Methods))
	for i, m := range t.Methods {
		methods[i] = ObjectProperty{Name: m.Name, Type: m.Type.Substitute(subs), Optional: m.Optional}
	}
	return &Class{Name: t.Name, Fields: fields, Methods: methods}
}

// Field looks up a named field on the class.
func (t *Class) Field(name string) (Type, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// Method looks up a named method on the class.
func (t *Class) Method(name string) (Type, bool) {
	for _, m := range t.Methods {
		if m.Name == name {
			return m.Type, true
		}
	}
	return nil, false
}

// Generic is a type parameter, e.g. `T` in `function id<T>(x: T): T`.
type Generic struct {
	Name       string
	Constraint Type // nil if unconstrained
}

func (t *Generic) String() string { return t.Name }

func (t *Generic) Equals(other Type) bool {
	o, ok := other.(*Generic)
	return ok && t.Name == o.Name
}

func (t *Generic) Substitute(subs map[string]Type) Type {
	if concrete, ok := subs[t.Name]; ok {
		return concrete
	}
	return t
}

// TypeRef is a named type reference with optional type arguments, e.g.
// `Box<number>` or a bare type-parameter name used before resolution.
type TypeRef struct {
	Name     string
	TypeArgs []Type
}

func (t *TypeRef) String() string {
	if len(t.TypeArgs) == 0 {
		return t.Name
	}
	args := make([]string, len(t.TypeArgs))
	for i, a := range t.TypeArgs {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", t.Name, strings.Join(args, ", "))
}

func (t *TypeRef) Equals(other Type) bool {
	o, ok := other.(*TypeRef)
	if !ok || t.Name != o.Name || len(t.TypeArgs) != len(o.TypeArgs) {
		return false
	}
	for i, a := range t.TypeArgs {
		if !a.Equals(o.TypeArgs[i]) {
			return false
		}
	}
	return true
}

// Substitute replaces a bare (no type-args) TypeRef whose name matches a
// substitution key, and otherwise substitutes inside its type arguments.
// A bare TypeRef is how a generic parameter name shows up before the
// checker has resolved it against a declared Generic.
func (t *TypeRef) Substitute(subs map[string]Type) Type {
	if len(t.TypeArgs) == 0 {
		if concrete, ok := subs[t.Name]; ok {
			return concrete
		}
		return t
	}
	args := make([]Type, len(t.TypeArgs))
	for i, a := range t.TypeArgs {
		args[i] = a.Substitute(subs)
	}
	return &TypeRef{Name: t.Name, TypeArgs: args}
}

// Promise is `Promise<T>`.
type Promise struct{ Inner Type }

func (t *Promise) String() string { return fmt.Sprintf("Promise<%s>", t.Inner) }

func (t *Promise) Equals(other Type) bool {
	o, ok := other.(*Promise)
	return ok && t.Inner.Equals(o.Inner)
}

func (t *Promise) Substitute(subs map[string]Type) Type {
	return &Promise{Inner: t.Inner.Substitute(subs)}
}

// LiteralKind tags which base type a Literal type widens to.
type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralBoolean
)

// Literal is a literal type, e.g. the type of `42` narrowed to exactly 42
// rather than widened to number.
type Literal struct {
	Kind  LiteralKind
	Value any
}

func (t *Literal) String() string { return fmt.Sprintf("%v", t.Value) }

func (t *Literal) Equals(other Type) bool {
	o, ok := other.(*Literal)
	return ok && t.Kind == o.Kind && t.Value == o.Value
}

func (t *Literal) Substitute(map[string]Type) Type { return t }

// Enum is a named enum type with an ordered member list.
type Enum struct {
	Name    string
	Members []string
}

func (t *Enum) String() string { return "enum " + t.Name }

func (t *Enum) Equals(other Type) bool {
	o, ok := other.(*Enum)
	return ok && t.Name == o.Name
}

func (t *Enum) Substitute(map[string]Type) Type { return t }

// Interface is a nominal structural contract: similar to Object but
// compared by name first, matching TypeScript's interface-identity rules.
type Interface struct {
	Name       string
	Properties []ObjectProperty
}

func (t *Interface) String() string { return "interface " + t.Name }

func (t *Interface) Equals(other Type) bool {
	o, ok := other.(*Interface)
	return ok && t.Name == o.Name
}

func (t *Interface) Substitute(subs map[string]Type) Type {
	props := make([]ObjectProperty, len(t.Properties))
	for i, p := range t.Properties {
		props[i] = ObjectProperty{Name: p.Name, Type: p.Type.Substitute(subs), Optional: p.Optional}
	}
	return &Interface{Name: t.Name, Properties: props}
}

// Property looks up a named property on the interface.
func (t *Interface) Property(name string) (Type, bool) {
	for _, p := range t.Properties {
		if p.Name == name {
			return p.Type, true
		}
	}
	return nil, false
}

// IsNumeric reports whether ty is Number or a numeric literal.
func IsNumeric(ty Type) bool {
	if ty == Number {
		return true
	}
	lit, ok := ty.(*Literal)
	return ok && lit.Kind == LiteralNumber
}

// IsString reports whether ty is StringT or a string literal.
func IsString(ty Type) bool {
	if ty == StringT {
		return true
	}
	lit, ok := ty.(*Literal)
	return ok && lit.Kind == LiteralString
}
