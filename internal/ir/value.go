package ir

import (
	"fmt"
	"strings"
)

// Value is an operand: a compile-time constant, or a reference to a local
// or temporary slot. MIR instructions read at most two values and write
// at most one place, keeping every instruction in three-address form.
type Value struct {
	kind  valueKind
	local LocalId
	temp  TempId
	cst   Constant
}

type valueKind int

const (
	ValueConst valueKind = iota
	ValueLocal
	ValueTemp
)

func ValueFromConstant(c Constant) Value { return Value{kind: ValueConst, cst: c} }
func ValueFromLocal(id LocalId) Value    { return Value{kind: ValueLocal, local: id} }
func ValueFromTemp(id TempId) Value      { return Value{kind: ValueTemp, temp: id} }

func (v Value) Kind() valueKind    { return v.kind }
func (v Value) Local() LocalId     { return v.local }
func (v Value) Temp() TempId       { return v.temp }
func (v Value) Constant() Constant { return v.cst }

func (v Value) String() string {
	switch v.kind {
	case ValueLocal:
		return fmt.Sprintf("_l%d", v.local)
	case ValueTemp:
		return fmt.Sprintf("_t%d", v.temp)
	default:
		return v.cst.String()
	}
}

// ProjectionKind selects how a Place refines its base into a field,
// element, or dereference access.
type ProjectionKind int

const (
	ProjField ProjectionKind = iota
	ProjIndex
	ProjDeref
)

// Projection is a single step in a Place's projection chain.
type Projection struct {
	Kind      ProjectionKind
	FieldName string // ProjField, retained for diagnostics
	FieldIdx  int    // ProjField
	IndexVal  Value  // ProjIndex
}

func FieldProjection(name string, idx int) Projection {
	return Projection{Kind: ProjField, FieldName: name, FieldIdx: idx}
}

func IndexProjection(index Value) Projection {
	return Projection{Kind: ProjIndex, IndexVal: index}
}

func DerefProjection() Projection {
	return Projection{Kind: ProjDeref}
}

func (p Projection) String() string {
	switch p.Kind {
	case ProjField:
		return "." + p.FieldName
	case ProjIndex:
		return fmt.Sprintf("[%s]", p.IndexVal)
	default:
		return ".*"
	}
}

// Place is an assignable location: a base value (almost always a local or
// temp) plus zero or more projections applied left to right.
type Place struct {
	Base        Value
	Projections []Projection
}

func PlaceFromValue(v Value) Place    { return Place{Base: v} }
func PlaceFromLocal(id LocalId) Place { return Place{Base: ValueFromLocal(id)} }
func PlaceFromTemp(id TempId) Place   { return Place{Base: ValueFromTemp(id)} }

// Project returns a new Place with proj appended to the projection chain.
func (p Place) Project(proj Projection) Place {
	next := make([]Projection, len(p.Projections)+1)
	copy(next, p.Projections)
	next[len(p.Projections)] = proj
	return Place{Base: p.Base, Projections: next}
}

func (p Place) String() string {
	var b strings.Builder
	b.WriteString(p.Base.String())
	for _, proj := range p.Projections {
		b.WriteString(proj.String())
	}
	return b.String()
}

// RValueKind discriminates the closed sum of pure computations an Assign
// instruction may compute. Effectful operations (calls, heap allocation,
// cloning, loads/stores) are instructions in their own right — see
// instruction.go — so that an rvalue is always safe to re-evaluate.
type RValueKind int

const (
	RValueUse RValueKind = iota
	RValueBinary
	RValueUnary
	RValueCast
	RValueStructInit
	RValueArrayInit
	RValueStrConcat
)

// RValue is the right-hand side of an Assign instruction.
type RValue struct {
	Kind RValueKind

	Use Value // RValueUse

	BinOp BinOp // RValueBinary
	Lhs   Value
	Rhs   Value

	UnOp  UnOp // RValueUnary
	Inner Value

	CastTarget IrType // RValueCast
	CastValue  Value

	StructType StructId // RValueStructInit
	FieldVals  []Value

	ArrayElems []Value // RValueArrayInit

	ConcatParts []Value // RValueStrConcat
}

func UseRValue(v Value) RValue { return RValue{Kind: RValueUse, Use: v} }

func BinaryRValue(op BinOp, lhs, rhs Value) RValue {
	return RValue{Kind: RValueBinary, BinOp: op, Lhs: lhs, Rhs: rhs}
}

func UnaryRValue(op UnOp, inner Value) RValue {
	return RValue{Kind: RValueUnary, UnOp: op, Inner: inner}
}

func CastRValue(v Value, target IrType) RValue {
	return RValue{Kind: RValueCast, CastValue: v, CastTarget: target}
}

func StructInitRValue(structId StructId, fields []Value) RValue {
	return RValue{Kind: RValueStructInit, StructType: structId, FieldVals: fields}
}

func ArrayInitRValue(elems []Value) RValue {
	return RValue{Kind: RValueArrayInit, ArrayElems: elems}
}

func StrConcatRValue(parts []Value) RValue {
	return RValue{Kind: RValueStrConcat, ConcatParts: parts}
}

func (r RValue) String() string {
	switch r.Kind {
	case RValueUse:
		return r.Use.String()
	case RValueBinary:
		return fmt.Sprintf("%s %s %s", r.Lhs, r.BinOp, r.Rhs)
	case RValueUnary:
		return fmt.Sprintf("%s%s", r.UnOp, r.Inner)
	case RValueCast:
		return fmt.Sprintf("cast %s as %s", r.CastValue, r.CastTarget)
	case RValueStructInit:
		fields := make([]string, len(r.FieldVals))
		for i, v := range r.FieldVals {
			fields[i] = v.String()
		}
		return fmt.Sprintf("struct#%d{%s}", r.StructType, strings.Join(fields, ", "))
	case RValueArrayInit:
		elems := make([]string, len(r.ArrayElems))
		for i, e := range r.ArrayElems {
			elems[i] = e.String()
		}
		return fmt.Sprintf("[%s]", strings.Join(elems, ", "))
	case RValueStrConcat:
		parts := make([]string, len(r.ConcatParts))
		for i, p := range r.ConcatParts {
			parts[i] = p.String()
		}
		return fmt.Sprintf("concat(%s)", strings.Join(parts, ", "))
	default:
		return "<unknown rvalue>"
	}
}
