package llvmgen

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"github.com/zacolang/zaco/internal/ir"
	"github.com/zacolang/zaco/internal/runtimeabi"
)

// declared is the full set of LLVM-level symbols produced by pass 1 of
// Backend.Emit, keyed the way pass 2 needs to look them up. Direct calls,
// whether to a module-defined function or a runtime extern, resolve
// through funcVals/funcTypes by the same bare name the Call instruction's
// callee constant carries. abiSpecs backs mustExtern: a handful of
// ownership operations (struct/array allocation, refcounting, string
// cloning and concatenation) call into the fixed runtime ABI directly
// rather than through a Call instruction the lowerer already declared, so
// pass 2 needs the ABI's own signatures on hand to declare them on demand.
type declared struct {
	funcVals      map[string]llvm.Value
	funcTypes     map[string]llvm.Type
	stringsByText map[string]llvm.Value
	globals       map[string]llvm.Value
	abiSpecs      map[string]runtimeabi.ExternSpec
}

// declareModule walks module and declares every function, extern, global,
// and string-pool entry as an LLVM symbol before any instruction is
// emitted. Every call site, jump target, and global reference in pass 2
// resolves against a symbol that already exists, so forward references —
// a call to a function defined later in the module, a reference to a
// global declared after the function that uses it — never need a second
// pass of their own.
func declareModule(m llvm.Module, module *ir.IrModule) *declared {
	d := &declared{
		funcVals:      make(map[string]llvm.Value),
		funcTypes:     make(map[string]llvm.Type),
		stringsByText: make(map[string]llvm.Value),
		globals:       make(map[string]llvm.Value),
		abiSpecs:      runtimeabi.ByName(),
	}

	// String literals are declared first: a global's compile-time
	// initializer or an extern's default value may itself be a literal
	// string, and resolveName must find it already declared.
	for i, s := range module.StringLiterals {
		if _, exists := d.stringsByText[s]; exists {
			continue
		}
		cst := llvm.ConstString(s, true)
		gv := llvm.AddGlobal(m, cst.Type(), fmt.Sprintf("str.%d", i))
		gv.SetLinkage(llvm.PrivateLinkage)
		gv.SetInitializer(cst)
		gv.SetGlobalConstant(true)
		d.stringsByText[s] = gv
	}

	for _, fn := range module.Functions {
		ftyp := mapSignature(fn.Signature())
		val := llvm.AddFunction(m, fn.Name, ftyp)
		if fn.IsExported || fn.Name == "main" {
			val.SetLinkage(llvm.ExternalLinkage)
		} else {
			val.SetLinkage(llvm.InternalLinkage)
		}
		d.funcVals[fn.Name] = val
		d.funcTypes[fn.Name] = ftyp
	}

	for _, ext := range module.ExternFunctions {
		if _, exists := d.funcVals[ext.Name]; exists {
			// Already defined by a merged-in function of the same name;
			// MergeModules is supposed to drop these, but a defensive
			// skip here costs nothing and keeps declare order-independent.
			continue
		}
		ftyp := llvm.FunctionType(mapType(ext.ReturnType), mapTypes(ext.Params), false)
		val := llvm.AddFunction(m, ext.Name, ftyp)
		val.SetLinkage(llvm.ExternalLinkage)
		d.funcVals[ext.Name] = val
		d.funcTypes[ext.Name] = ftyp
	}

	// Globals are declared in two passes so one global's initializer can
	// name another regardless of declaration order: every global symbol
	// exists (with a placeholder zero initializer) before any real
	// initializer is computed via resolveName.
	for _, g := range module.Globals {
		gv := llvm.AddGlobal(m, mapType(g.Type), "g."+g.Name)
		gv.SetLinkage(llvm.InternalLinkage)
		gv.SetInitializer(zeroValue(mapType(g.Type), g.Type))
		d.globals[g.Name] = gv
	}
	for _, g := range module.Globals {
		if g.Init == nil {
			continue
		}
		d.globals[g.Name].SetInitializer(d.constOperand(m, *g.Init))
	}

	return d
}

// zeroValue is the default initializer for a global of type t: every
// mapped kind is an integer (plain or pointer-bearing-as-i64) except F64.
func zeroValue(typ llvm.Type, t ir.IrType) llvm.Value {
	if t.Kind() == ir.KindF64 {
		return llvm.ConstFloat(typ, 0)
	}
	return llvm.ConstInt(typ, 0, false)
}
