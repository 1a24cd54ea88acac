// Package codegen defines the contract every native-code backend must
// satisfy to turn a whole-program IrModule into an object file or linked
// executable. internal/codegen/llvmgen is the only concrete implementation.
package codegen

import "github.com/zacolang/zaco/internal/ir"

// EmitKind selects what codegen produces from a verified module.
type EmitKind int

const (
	// EmitExecutable links an object file into a native executable.
	EmitExecutable EmitKind = iota
	// EmitObject stops after producing a single relocatable object file.
	EmitObject
	// EmitIR is handled entirely above the Backend boundary (see
	// ir.IrModule.DumpIR) and never reaches a Backend.
	EmitIR
)

// Options configures one Emit call.
type Options struct {
	// OutputPath is the path of the final artifact: the executable for
	// EmitExecutable, the object file for EmitObject.
	OutputPath string
	Emit       EmitKind
}

// Backend lowers a verified IrModule to native code. Implementations own
// their own target machine setup; Emit is expected to run the structural
// verifier before emitting anything, and to return a verifier error
// rather than hand a bad module to the target-specific emitter.
type Backend interface {
	Emit(module *ir.IrModule, opts Options) error
}
