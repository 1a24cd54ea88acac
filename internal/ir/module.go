package ir

import (
	"fmt"
	"strings"

	"github.com/zacolang/zaco/internal/textnorm"
)

// ExternFunction declares a function the module calls but does not define:
// either a runtime ABI entry point (see internal/runtimeabi) or a function
// exported from another module that the driver has not yet merged in.
type ExternFunction struct {
	Name       string
	Params     []IrType
	ReturnType IrType
}

// Global is a module-level variable: a name, a type, and an optional
// compile-time initializer.
type Global struct {
	Name string
	Type IrType
	Init *Constant
}

// IrModule is the complete MIR for one compiled unit: its functions,
// struct layouts, string pool, and extern declarations. The driver merges
// per-file IrModules into a single whole-program IrModule before handing
// it to codegen.
type IrModule struct {
	Name string

	Functions []*IrFunction
	Structs   []*IrStruct
	Globals   []Global

	StringLiterals  []string
	ExternFunctions []ExternFunction

	// NextFuncId and NextStructId are set by the lowerer after lowering a
	// single file's functions/structs. The driver reads them to compute
	// per-file id offsets when merging multiple modules into one program.
	NextFuncId   FuncId
	NextStructId StructId

	stringIndex map[string]int
	externIndex map[string]int
}

func NewModule(name string) *IrModule {
	return &IrModule{
		Name:        name,
		stringIndex: make(map[string]int),
		externIndex: make(map[string]int),
	}
}

// ReserveFuncId allocates the next function id without yet attaching a
// function body. The lowerer reserves ids for every declared function
// before lowering any body, so that forward references resolve.
func (m *IrModule) ReserveFuncId() FuncId {
	id := m.NextFuncId
	m.NextFuncId++
	return id
}

// ReserveStructId allocates the next struct id, mirroring ReserveFuncId.
func (m *IrModule) ReserveStructId() StructId {
	id := m.NextStructId
	m.NextStructId++
	return id
}

// AddFunction registers a completed function and returns its id. Its id
// must have already been obtained from ReserveFuncId.
func (m *IrModule) AddFunction(f *IrFunction) FuncId {
	m.Functions = append(m.Functions, f)
	return f.Id
}

// AddStruct registers a completed struct layout and returns its id. Its id
// must have already been obtained from ReserveStructId.
func (m *IrModule) AddStruct(s *IrStruct) StructId {
	m.Structs = append(m.Structs, s)
	return s.Id
}

// AddGlobal registers a module-level variable.
func (m *IrModule) AddGlobal(name string, t IrType, init *Constant) {
	m.Globals = append(m.Globals, Global{Name: name, Type: t, Init: init})
}

// AddExternFunction declares a function the module references but does
// not define.
func (m *IrModule) AddExternFunction(name string, params []IrType, returnType IrType) {
	if _, ok := m.externIndex[name]; ok {
		return
	}
	m.externIndex[name] = len(m.ExternFunctions)
	m.ExternFunctions = append(m.ExternFunctions, ExternFunction{Name: name, Params: params, ReturnType: returnType})
}

// InternString normalizes s to NFC and returns its index in the string
// pool, reusing an existing entry when one already holds the same
// normalized text.
func (m *IrModule) InternString(s string) int {
	normalized := textnorm.NFC(s)
	if idx, ok := m.stringIndex[normalized]; ok {
		return idx
	}
	idx := len(m.StringLiterals)
	m.StringLiterals = append(m.StringLiterals, normalized)
	m.stringIndex[normalized] = idx
	return idx
}

// Function returns the function with the given id, or nil.
func (m *IrModule) Function(id FuncId) *IrFunction {
	if int(id) < 0 || int(id) >= len(m.Functions) {
		return nil
	}
	return m.Functions[id]
}

// StructDef returns the struct with the given id, or nil.
func (m *IrModule) StructDef(id StructId) *IrStruct {
	if int(id) < 0 || int(id) >= len(m.Structs) {
		return nil
	}
	return m.Structs[id]
}

// FindFunction returns the first function with the given name, or nil.
func (m *IrModule) FindFunction(name string) *IrFunction {
	for _, f := range m.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// FindStruct returns the first struct with the given name, or nil.
func (m *IrModule) FindStruct(name string) *IrStruct {
	for _, s := range m.Structs {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func (m *IrModule) String() string {
	return fmt.Sprintf("module %s (%d funcs, %d structs, %d strings, %d externs)",
		m.Name, len(m.Functions), len(m.Structs), len(m.StringLiterals), len(m.ExternFunctions))
}

// DumpIR renders every function in the module through IrFunction.DumpIR,
// in declaration order, separated by a blank line. This backs `--emit ir`.
func (m *IrModule) DumpIR() string {
	var b strings.Builder
	for i, f := range m.Functions {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(f.DumpIR())
	}
	return b.String()
}
