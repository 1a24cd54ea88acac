package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveTypeStrings(t *testing.T) {
	tests := []struct {
		name string
		typ  IrType
		want string
	}{
		{"i64", I64(), "i64"},
		{"f64", F64(), "f64"},
		{"bool", Bool(), "bool"},
		{"void", Void(), "void"},
		{"ptr", Ptr(), "ptr"},
		{"str", Str(), "str"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestArrayAndPromiseNesting(t *testing.T) {
	arr := Array(I64())
	assert.Equal(t, "[i64]", arr.String())
	assert.True(t, arr.IsHeapAllocated())
	assert.Equal(t, I64(), arr.Elem())

	prom := Promise(Str())
	assert.Equal(t, "Promise<str>", prom.String())
	assert.Equal(t, Str(), prom.Elem())
}

func TestStructTypeIdentity(t *testing.T) {
	a := Struct(StructId(3))
	b := Struct(StructId(3))
	c := Struct(StructId(4))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestFuncPtrSignatureEquality(t *testing.T) {
	sigA := FuncSignature{Params: []IrType{I64(), Str()}, ReturnType: Bool()}
	sigB := FuncSignature{Params: []IrType{I64(), Str()}, ReturnType: Bool()}
	sigC := FuncSignature{Params: []IrType{I64()}, ReturnType: Bool()}

	assert.True(t, FuncPtr(sigA).Equal(FuncPtr(sigB)))
	assert.False(t, FuncPtr(sigA).Equal(FuncPtr(sigC)))
	assert.Equal(t, "fn(i64, str) -> bool", sigA.String())
}

func TestElemPanicsOnNonContainerType(t *testing.T) {
	require.Panics(t, func() {
		I64().Elem()
	})
}

func TestVoidIsNeverHeapAllocated(t *testing.T) {
	assert.False(t, Void().IsHeapAllocated())
	assert.Equal(t, 0, Void().SizeBytes())
}

func TestSizeBytesForPointerBearingKinds(t *testing.T) {
	for _, typ := range []IrType{Ptr(), Str(), Array(I64()), Struct(0), Promise(I64())} {
		assert.Equal(t, 8, typ.SizeBytes())
	}
}

func TestConstantConstructors(t *testing.T) {
	assert.Equal(t, "42", ConstantI64(42).String())
	assert.Equal(t, "true", ConstantBool(true).String())
	assert.Equal(t, `"hi"`, ConstantStr("hi").String())
	assert.Equal(t, "null", ConstantNull().String())
}
