package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstituteGenericParam(t *testing.T) {
	generic := &Generic{Name: "T"}
	result := Substitute(generic, map[string]Type{"T": Number})
	assert.True(t, result.Equals(Number))
}

func TestSubstituteRecursesThroughArray(t *testing.T) {
	arr := &Array{Elem: &Generic{Name: "T"}}
	result := Substitute(arr, map[string]Type{"T": StringT})
	assert.Equal(t, "string[]", result.String())
}

func TestSubstituteIsNoopWithoutMapping(t *testing.T) {
	generic := &Generic{Name: "U"}
	result := Substitute(generic, map[string]Type{"T": Number})
	assert.Same(t, generic, result)
}

func TestSubstitutionIdempotentOnClosedTypes(t *testing.T) {
	closed := &Function{Params: []Type{Number, StringT}, Return: &Array{Elem: Boolean}}
	once := Substitute(closed, map[string]Type{"T": Number})
	twice := Substitute(once, map[string]Type{"T": Number})
	assert.True(t, once.Equals(twice))
}

func TestBareTypeRefSubstitutesLikeGeneric(t *testing.T) {
	ref := &TypeRef{Name: "T"}
	result := Substitute(ref, map[string]Type{"T": Boolean})
	assert.True(t, result.Equals(Boolean))
}

func TestTypeRefWithArgsSubstitutesInsideArgs(t *testing.T) {
	ref := &TypeRef{Name: "Box", TypeArgs: []Type{&Generic{Name: "T"}}}
	result := Substitute(ref, map[string]Type{"T": Number})
	assert.Equal(t, "Box<number>", result.String())
}

func TestUnionOfCollapsesDegenerateCases(t *testing.T) {
	assert.Equal(t, Never, UnionOf())
	assert.Equal(t, Number, UnionOf(Number))
	assert.Equal(t, "number | string", UnionOf(Number, StringT).String())
}
