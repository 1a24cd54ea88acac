package checkenv

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zacolang/zaco/internal/types"
)

func TestDeclareAndLookupAcrossScopes(t *testing.T) {
	e := New()
	e.Declare("x", VarInfo{Type: types.Number, Ownership: Owned, IsInitialized: true})

	e.PushScope()
	info, ok := e.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, types.Number, info.Type)

	e.Declare("y", VarInfo{Type: types.StringT, Ownership: Owned})
	_, ok = e.Lookup("y")
	assert.True(t, ok)

	e.PopScope()
	_, ok = e.Lookup("y")
	assert.False(t, ok, "y should not be visible after its scope is popped")

	_, ok = e.Lookup("x")
	assert.True(t, ok, "x declared in the outer scope should still be visible")
}

func TestShadowingInNestedScope(t *testing.T) {
	e := New()
	e.Declare("x", VarInfo{Type: types.Number})

	e.PushScope()
	e.Declare("x", VarInfo{Type: types.StringT})
	info, _ := e.Lookup("x")
	assert.Equal(t, types.StringT, info.Type)

	e.PopScope()
	info, _ = e.Lookup("x")
	assert.Equal(t, types.Number, info.Type)
}

func TestHasInCurrentScopeOnlyChecksInnermost(t *testing.T) {
	e := New()
	e.Declare("x", VarInfo{Type: types.Number})

	e.PushScope()
	assert.False(t, e.HasInCurrentScope("x"))
	e.Declare("x", VarInfo{Type: types.StringT})
	assert.True(t, e.HasInCurrentScope("x"))
}

func TestUpdateOwnershipMutatesBinding(t *testing.T) {
	e := New()
	e.Declare("x", VarInfo{Type: types.Number, Ownership: Owned})

	ok := e.UpdateOwnership("x", Moved)
	assert.True(t, ok)

	info, _ := e.Lookup("x")
	assert.Equal(t, Moved, info.Ownership)
	assert.False(t, info.Ownership.Usable())
}

func TestUpdateOwnershipFailsForUnknownBinding(t *testing.T) {
	e := New()
	assert.False(t, e.UpdateOwnership("missing", Moved))
}

func TestPopScopeNeverEmptiesTheOutermostScope(t *testing.T) {
	e := New()
	e.PopScope()
	e.PopScope()
	e.Declare("x", VarInfo{Type: types.Number})
	_, ok := e.Lookup("x")
	assert.True(t, ok)
}

func TestLookupTypePriorityOrder(t *testing.T) {
	e := New()
	e.DefineClass("Box", &types.Class{Name: "Box"})
	e.DefineTypeAlias("Box", types.Number)

	ty, ok := e.LookupType("Box")
	assert.True(t, ok)
	assert.Equal(t, types.Number, ty, "type aliases resolve before classes of the same name")
}

func TestResolveTypeRefSatisfiesTypesResolver(t *testing.T) {
	e := New()
	e.DefineTypeAlias("UserId", types.Number)

	var resolver types.Resolver = e
	assert.True(t, types.IsAssignable(&types.TypeRef{Name: "UserId"}, types.Number, resolver))
}

func TestExportsRoundTrip(t *testing.T) {
	e := New()
	e.ExportSymbol("add", &types.Function{Params: []types.Type{types.Number, types.Number}, Return: types.Number})

	ty, ok := e.Export("add")
	assert.True(t, ok)
	assert.Equal(t, 1, len(e.AllExports()))
	assert.IsType(t, &types.Function{}, ty)
}

func TestTypeParamsRoundTrip(t *testing.T) {
	e := New()
	e.DefineTypeParams("Box", []string{"T"})

	params, ok := e.TypeParams("Box")
	assert.True(t, ok)
	assert.Equal(t, []string{"T"}, params)
}
