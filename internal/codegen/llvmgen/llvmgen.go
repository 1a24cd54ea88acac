// Package llvmgen is the concrete codegen.Backend that lowers a finished
// MIR module to a native object file or executable via LLVM.
package llvmgen

import (
	"os"

	"tinygo.org/x/go-llvm"

	"github.com/zacolang/zaco/internal/codegen"
	"github.com/zacolang/zaco/internal/errs"
	"github.com/zacolang/zaco/internal/ir"
)

// Backend is stateless; every Emit call gets its own llvm.Context, module
// and builder, disposed before Emit returns.
type Backend struct{}

func New() *Backend { return &Backend{} }

// Emit declares every module-level symbol, codegens each function body,
// verifies the resulting module, and writes either an object file or a
// linked executable to opts.OutputPath. EmitIR never reaches here — it is
// served directly from IrModule.DumpIR above this boundary.
func (b *Backend) Emit(module *ir.IrModule, opts codegen.Options) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if ce, ok := r.(codegenError); ok {
				err = ce.err
				return
			}
			panic(r)
		}
	}()

	if opts.Emit == codegen.EmitIR {
		return errs.New("codegen", errs.UnsupportedType, "llvmgen does not serve EmitIR; call IrModule.DumpIR directly", nil)
	}

	ctx := llvm.NewContext()
	defer ctx.Dispose()

	m := ctx.NewModule(module.Name)
	defer m.Dispose()

	d := declareModule(m, module)

	builder := ctx.NewBuilder()
	defer builder.Dispose()

	for _, fn := range module.Functions {
		if !fn.EveryBlockTerminated() {
			return errs.Newf("codegen", errs.VerifierRejected, nil,
				"function %q has an unterminated block", fn.Name)
		}
		defineFunction(m, builder, d, module, fn)
	}

	if verr := llvm.VerifyModule(m, llvm.ReturnStatusAction); verr != nil {
		return errs.Newf("codegen", errs.VerifierRejected, nil, "module failed verification: %s", verr)
	}

	return b.emitTarget(m, opts)
}

// emitTarget sets up a host-default target machine, emits an object file,
// and, for an executable, links it against the zaco runtime.
func (b *Backend) emitTarget(m llvm.Module, opts codegen.Options) error {
	llvm.InitializeAllTargetInfos()
	llvm.InitializeAllTargetMCs()
	llvm.InitializeAllAsmParsers()
	llvm.InitializeAllAsmPrinters()
	llvm.InitializeAllTargets()

	triple := llvm.DefaultTargetTriple()
	target, err := llvm.GetTargetFromTriple(triple)
	if err != nil {
		return errs.Newf("codegen", errs.ObjectEmissionFailed, nil, "resolving target triple %q: %s", triple, err)
	}

	tm := target.CreateTargetMachine(triple, "generic", "",
		llvm.CodeGenLevelNone, llvm.RelocDefault, llvm.CodeModelDefault)
	defer tm.Dispose()

	td := tm.CreateTargetData()
	defer td.Dispose()
	m.SetDataLayout(td.String())
	m.SetTarget(tm.Triple())

	objPath := opts.OutputPath
	if opts.Emit == codegen.EmitExecutable {
		objPath = opts.OutputPath + ".o"
		defer os.Remove(objPath)
	}

	buf, err := tm.EmitToMemoryBuffer(m, llvm.ObjectFile)
	if err != nil {
		return errs.Newf("codegen", errs.ObjectEmissionFailed, nil, "emitting object code: %s", err)
	}
	defer buf.Dispose()
	if err := os.WriteFile(objPath, buf.Bytes(), 0o644); err != nil {
		return errs.Newf("codegen", errs.ObjectEmissionFailed, nil, "writing %q: %s", objPath, err)
	}

	if opts.Emit == codegen.EmitObject {
		return nil
	}
	return link(objPath, opts.OutputPath)
}
