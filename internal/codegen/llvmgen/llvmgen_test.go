package llvmgen

import (
	"os"
	"path/filepath"
	"testing"

	"tinygo.org/x/go-llvm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zacolang/zaco/internal/codegen"
	"github.com/zacolang/zaco/internal/ir"
)

func TestMapType(t *testing.T) {
	assert.Equal(t, llvm.IntegerTypeKind, mapType(ir.I64()).TypeKind())
	assert.Equal(t, int(64), mapType(ir.I64()).IntTypeWidth())
	assert.Equal(t, llvm.DoubleTypeKind, mapType(ir.F64()).TypeKind())
	assert.Equal(t, llvm.IntegerTypeKind, mapType(ir.Bool()).TypeKind())
	assert.Equal(t, int(8), mapType(ir.Bool()).IntTypeWidth())
	assert.Equal(t, llvm.VoidTypeKind, mapType(ir.Void()).TypeKind())
	// Every pointer-bearing kind is an opaque machine word, not an LLVM
	// pointer type.
	for _, typ := range []ir.IrType{ir.Str(), ir.Ptr(), ir.Array(ir.I64()), ir.Struct(0)} {
		assert.Equal(t, llvm.IntegerTypeKind, mapType(typ).TypeKind())
		assert.Equal(t, int(64), mapType(typ).IntTypeWidth())
	}
}

func buildConstFunctionModule(name string, retVal int64) *ir.IrModule {
	m := ir.NewModule(name)
	fnId := m.ReserveFuncId()
	fn := ir.NewFunction(fnId, "main", nil, nil, ir.I64())
	entry := fn.NewBlock()
	entry.SetTerminator(ir.Return(ir.ValueFromConstant(ir.ConstantI64(retVal))))
	m.AddFunction(fn)
	return m
}

// TestEmitObject exercises the full declare → codegen → verify → object
// emission path against a minimal single-function module.
func TestEmitObject(t *testing.T) {
	module := buildConstFunctionModule("emittest", 42)

	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.o")

	b := New()
	err := b.Emit(module, codegen.Options{OutputPath: outPath, Emit: codegen.EmitObject})
	require.NoError(t, err)

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestEmitRejectsEmitIR(t *testing.T) {
	module := buildConstFunctionModule("irtest", 0)
	b := New()
	err := b.Emit(module, codegen.Options{OutputPath: "unused", Emit: codegen.EmitIR})
	assert.Error(t, err)
}

func TestDeclareModuleDedupesStrings(t *testing.T) {
	module := ir.NewModule("strtest")
	module.InternString("hello")
	module.InternString("hello")
	module.StringLiterals = append(module.StringLiterals, "hello")

	ctx := llvm.NewContext()
	defer ctx.Dispose()
	m := ctx.NewModule("strtest")
	defer m.Dispose()

	d := declareModule(m, module)
	assert.Len(t, d.stringsByText, 1)
}
