package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssignabilityReflexive(t *testing.T) {
	for _, ty := range []Type{Number, StringT, Boolean, Void, Null, Undefined, Never, Unknown, Any} {
		assert.True(t, IsAssignable(ty, ty, nil), "%s should be assignable to itself", ty)
	}
}

func TestAnyIsCompatibleBothWays(t *testing.T) {
	assert.True(t, IsAssignable(Any, Number, nil))
	assert.True(t, IsAssignable(Number, Any, nil))
}

func TestUnknownAcceptsEverythingNeverAssignableToUnknownIsAsymmetric(t *testing.T) {
	assert.True(t, IsAssignable(Number, Unknown, nil))
	assert.False(t, IsAssignable(Unknown, Number, nil))
}

func TestNeverIsBottomType(t *testing.T) {
	assert.True(t, IsAssignable(Never, Number, nil))
	assert.True(t, IsAssignable(Never, StringT, nil))
	assert.False(t, IsAssignable(Number, Never, nil))
}

func TestLiteralWidensToBaseOneDirectionOnly(t *testing.T) {
	lit := &Literal{Kind: LiteralNumber, Value: 42.0}
	assert.True(t, IsAssignable(lit, Number, nil))
	assert.False(t, IsAssignable(Number, lit, nil))
}

func TestArrayCovariance(t *testing.T) {
	assert.True(t, IsAssignable(&Array{Elem: Number}, &Array{Elem: Number}, nil))
	assert.False(t, IsAssignable(&Array{Elem: Number}, &Array{Elem: StringT}, nil))
}

func TestPromiseCovariance(t *testing.T) {
	assert.True(t, IsAssignable(&Promise{Inner: Number}, &Promise{Inner: Number}, nil))
	assert.False(t, IsAssignable(&Promise{Inner: Number}, &Promise{Inner: StringT}, nil))
}

func TestUnionSourceRequiresAllMembersAssignable(t *testing.T) {
	src := &Union{Members: []Type{Number, StringT}}
	assert.True(t, IsAssignable(src, &Union{Members: []Type{Number, StringT, Boolean}}, nil))
	assert.False(t, IsAssignable(src, Number, nil))
}

func TestUnionTargetRequiresAnyMemberAssignable(t *testing.T) {
	dst := &Union{Members: []Type{Number, StringT}}
	assert.True(t, IsAssignable(Number, dst, nil))
	assert.False(t, IsAssignable(Boolean, dst, nil))
}

func TestUnionDistributesOverAssignability(t *testing.T) {
	abUnion := &Union{Members: []Type{Number, StringT}}
	assert.True(t, IsAssignable(Number, abUnion, nil))
	assert.True(t, IsAssignable(StringT, abUnion, nil))
	assert.True(t, IsAssignable(abUnion, &Union{Members: []Type{StringT, Number, Boolean}}, nil))
}

func TestFunctionAssignabilityChecksArityAndReturn(t *testing.T) {
	fa := &Function{Params: []Type{Number}, Return: StringT}
	fb := &Function{Params: []Type{Number}, Return: StringT}
	fc := &Function{Params: []Type{Number, Number}, Return: StringT}

	assert.True(t, IsAssignable(fa, fb, nil))
	assert.False(t, IsAssignable(fa, fc, nil))
}

func TestUnresolvedTypeRefCompatibleWithAnything(t *testing.T) {
	generic := &TypeRef{Name: "T"}
	assert.True(t, IsAssignable(generic, Number, nil))
	assert.True(t, IsAssignable(Number, generic, nil))
}

type fakeResolver map[string]Type

func (r fakeResolver) ResolveTypeRef(name string) (Type, bool) {
	t, ok := r[name]
	return t, ok
}

func TestResolvedTypeRefUsesUnderlyingType(t *testing.T) {
	resolver := fakeResolver{"UserId": Number}
	ref := &TypeRef{Name: "UserId"}
	assert.True(t, IsAssignable(ref, Number, resolver))
	assert.False(t, IsAssignable(ref, StringT, resolver))
}
