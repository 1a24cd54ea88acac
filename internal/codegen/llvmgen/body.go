package llvmgen

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"github.com/zacolang/zaco/internal/errs"
	"github.com/zacolang/zaco/internal/ir"
)

// codegenError wraps a user-facing *errs.ReportError so it can cross the
// deep call stack inside a single function's codegen via panic/recover,
// the same way the lowerer uses a bare panic for an unrecoverable shape
// mismatch — except here the condition (an undeclared callee name) really
// is a data-dependent failure Backend.Emit must report, not a bug.
type codegenError struct{ err error }

// funcGen holds the per-function state pass 2 threads through instruction
// and terminator translation: one alloca per local and per temp (locals and
// temps are never SSA values here — the MIR itself isn't in SSA form, so
// every read is a load and every write a store, mirroring how the teacher's
// own stack-machine interpreter keeps a flat slot array rather than chasing
// def-use chains), and one LLVM basic block per MIR block, built before any
// instruction is emitted so jump and branch targets always resolve.
type funcGen struct {
	d      *declared
	m      llvm.Module
	module *ir.IrModule
	fn     *ir.IrFunction
	llFn   llvm.Value

	builder llvm.Builder

	localAddr []llvm.Value
	tempAddr  []llvm.Value
	blocks    []llvm.BasicBlock
}

func (g *funcGen) fail(code, format string, args ...any) {
	panic(codegenError{errs.Newf("codegen", code, nil, format, args...)})
}

// defineFunction emits fn's body: an entry block that allocates a stack
// slot for every local and temp and stores incoming parameters into their
// locals' slots, followed by one block per MIR block, translated in
// declaration order.
func defineFunction(m llvm.Module, builder llvm.Builder, d *declared, module *ir.IrModule, fn *ir.IrFunction) {
	llFn := d.funcVals[fn.Name]

	g := &funcGen{
		d: d, m: m, module: module, fn: fn, llFn: llFn, builder: builder,
		localAddr: make([]llvm.Value, len(fn.Locals)),
		tempAddr:  make([]llvm.Value, len(fn.Temps)),
		blocks:    make([]llvm.BasicBlock, len(fn.Blocks)),
	}

	entry := llvm.AddBasicBlock(llFn, "entry")
	builder.SetInsertPointAtEnd(entry)

	for i, loc := range fn.Locals {
		name := loc.Name
		if name == "" {
			name = fmt.Sprintf("l%d", i)
		}
		g.localAddr[i] = builder.CreateAlloca(mapType(loc.Type), name)
	}
	for i, t := range fn.Temps {
		g.tempAddr[i] = builder.CreateAlloca(mapType(t), fmt.Sprintf("t%d", i))
	}
	for i, localID := range fn.Params {
		builder.CreateStore(llFn.Param(i), g.localAddr[localID])
	}

	for _, blk := range fn.Blocks {
		g.blocks[blk.Id] = llvm.AddBasicBlock(llFn, fmt.Sprintf("bb%d", blk.Id))
	}
	builder.CreateBr(g.blocks[fn.EntryBlock])

	for _, blk := range fn.Blocks {
		builder.SetInsertPointAtEnd(g.blocks[blk.Id])
		for _, instr := range blk.Instructions {
			g.emitInstruction(instr)
		}
		g.emitTerminator(blk.Terminator)
	}
}

// typeOfBase returns the declared MIR type backing a Local or Temp value;
// every Dest/LoadPtr/StorePtr/CallDest operand this package sees is one of
// these two kinds, never a raw constant.
func (g *funcGen) typeOfBase(v ir.Value) ir.IrType {
	switch v.Kind() {
	case ir.ValueLocal:
		return g.fn.LocalType(v.Local())
	case ir.ValueTemp:
		return g.fn.TempType(v.Temp())
	default:
		return ir.Ptr()
	}
}

func (g *funcGen) slotAddr(v ir.Value) llvm.Value {
	switch v.Kind() {
	case ir.ValueLocal:
		return g.localAddr[v.Local()]
	case ir.ValueTemp:
		return g.tempAddr[v.Temp()]
	default:
		g.fail(errs.UnsupportedType, "cannot take the address of a constant value")
		return llvm.Value{}
	}
}

// operand materializes an MIR Value as an LLVM value: a constant is built
// directly, a Local or Temp is loaded from its alloca.
func (g *funcGen) operand(v ir.Value) llvm.Value {
	switch v.Kind() {
	case ir.ValueConst:
		return g.d.constOperand(g.m, v.Constant())
	case ir.ValueLocal:
		return g.builder.CreateLoad(mapType(g.fn.LocalType(v.Local())), g.localAddr[v.Local()], "")
	case ir.ValueTemp:
		return g.builder.CreateLoad(mapType(g.fn.TempType(v.Temp())), g.tempAddr[v.Temp()], "")
	default:
		g.fail(errs.UnsupportedType, "unknown value kind")
		return llvm.Value{}
	}
}

func (g *funcGen) store(dest ir.Place, val llvm.Value) {
	g.builder.CreateStore(val, g.slotAddr(dest.Base))
}

// mustExtern returns the declared LLVM symbol for a fixed runtime-ABI
// extern, declaring it on the fly against its spec in runtimeabi when pass
// 1 hasn't already (ownership operations like struct allocation or
// refcounting don't go through a Call instruction the lowerer declares
// itself, so pass 2 is often the first thing that needs these symbols).
func (g *funcGen) mustExtern(name string) (llvm.Value, llvm.Type) {
	if v, ok := g.d.funcVals[name]; ok {
		return v, g.d.funcTypes[name]
	}
	spec, ok := g.d.abiSpecs[name]
	if !ok {
		g.fail(errs.UndeclaredFunction, "no runtime ABI spec for %q", name)
	}
	ftyp := llvm.FunctionType(mapType(spec.Return), mapTypes(spec.Params), false)
	val := llvm.AddFunction(g.m, name, ftyp)
	val.SetLinkage(llvm.ExternalLinkage)
	g.d.funcVals[name] = val
	g.d.funcTypes[name] = ftyp
	return val, ftyp
}

func (g *funcGen) emitInstruction(instr ir.Instruction) {
	switch instr.Kind {
	case ir.InstrAssign:
		g.store(instr.Dest, g.rvalue(instr.Value))
	case ir.InstrCall:
		g.emitCall(instr)
	case ir.InstrAlloc:
		g.emitAlloc(instr)
	case ir.InstrFree:
		g.emitFree(instr)
	case ir.InstrRefCount:
		g.emitRefCount(instr)
	case ir.InstrClone:
		g.emitClone(instr)
	case ir.InstrStore:
		g.emitStore(instr)
	case ir.InstrLoad:
		g.emitLoad(instr)
	default:
		g.fail(errs.UnsupportedType, "unknown instruction kind")
	}
}

func (g *funcGen) emitCall(instr ir.Instruction) {
	args := make([]llvm.Value, len(instr.CallArgs))
	for i, a := range instr.CallArgs {
		args[i] = g.operand(a)
	}
	hasDest := instr.CallDest != nil
	var destType ir.IrType
	if hasDest {
		destType = g.typeOfBase(instr.CallDest.Base)
	}
	fnVal, fnTyp := g.resolveCallee(instr.Callee, args, destType, hasDest)
	result := g.builder.CreateCall(fnTyp, fnVal, args, "")
	if hasDest {
		g.store(*instr.CallDest, result)
	}
}

// resolveCallee finds the LLVM function and function type to call against.
// A direct call names its callee by symbol (see the grounding comment on
// ConstStr ambiguity in value.go): a module-defined function or an already-
// or newly-declared runtime extern. Anything else is an indirect call
// through a value computed at runtime — the lowerer's own fallback for
// first-class function references — and gets its function type rebuilt
// from the already-materialized argument and destination types, since no
// static signature exists to look up.
func (g *funcGen) resolveCallee(callee ir.Value, args []llvm.Value, destType ir.IrType, hasDest bool) (llvm.Value, llvm.Type) {
	if callee.Kind() == ir.ValueConst && callee.Constant().Kind() == ir.ConstStr {
		name := callee.Constant().Str()
		if fn, ok := g.d.funcVals[name]; ok {
			return fn, g.d.funcTypes[name]
		}
		if _, ok := g.d.abiSpecs[name]; ok {
			return g.mustExtern(name)
		}
		g.fail(errs.UndeclaredFunction, "call to undeclared function %q", name)
	}

	fnAddr := g.operand(callee)
	paramTypes := make([]llvm.Type, len(args))
	for i, a := range args {
		paramTypes[i] = a.Type()
	}
	retType := llvm.VoidType()
	if hasDest {
		retType = mapType(destType)
	}
	ftyp := llvm.FunctionType(retType, paramTypes, false)
	fnPtr := g.builder.CreateIntToPtr(fnAddr, llvm.PointerType(ftyp, 0), "")
	return fnPtr, ftyp
}

// allocSize is the byte count zaco_alloc is asked for: a struct's full
// layout size, or a type's own fixed slot size for anything else.
func allocSize(module *ir.IrModule, t ir.IrType) int {
	if t.Kind() == ir.KindStruct {
		if s := module.StructDef(t.StructID()); s != nil {
			return s.SizeBytes()
		}
	}
	return t.SizeBytes()
}

func (g *funcGen) emitAlloc(instr ir.Instruction) {
	fn, fnTyp := g.mustExtern("zaco_alloc")
	size := llvm.ConstInt(llvm.Int64Type(), uint64(allocSize(g.module, instr.AllocType)), false)
	addr := g.builder.CreateCall(fnTyp, fn, []llvm.Value{size}, "")
	g.store(instr.Dest, addr)
}

func (g *funcGen) emitFree(instr ir.Instruction) {
	fn, fnTyp := g.mustExtern("zaco_free")
	g.builder.CreateCall(fnTyp, fn, []llvm.Value{g.operand(instr.FreeValue)}, "")
}

func (g *funcGen) emitRefCount(instr ir.Instruction) {
	name := "zaco_rc_inc"
	if instr.RefCountDelta < 0 {
		name = "zaco_rc_dec"
	}
	fn, fnTyp := g.mustExtern(name)
	g.builder.CreateCall(fnTyp, fn, []llvm.Value{g.operand(instr.RefCountValue)}, "")
}

func (g *funcGen) emitClone(instr ir.Instruction) {
	fn, fnTyp := g.mustExtern("zaco_clone_str")
	result := g.builder.CreateCall(fnTyp, fn, []llvm.Value{g.operand(instr.CloneSource)}, "")
	g.store(instr.Dest, result)
}

// emitLoad reads through a computed address. The address itself is an MIR
// value carrying a plain i64 (the lowerer never represents addresses as
// LLVM pointers — see fieldAddress/elementAddress in internal/lower), so it
// needs an IntToPtr cast to the destination's type before a typed load can
// happen.
func (g *funcGen) emitLoad(instr ir.Instruction) {
	llTyp := mapType(g.typeOfBase(instr.Dest.Base))
	ptr := g.builder.CreateIntToPtr(g.operand(instr.LoadPtr), llvm.PointerType(llTyp, 0), "")
	g.store(instr.Dest, g.builder.CreateLoad(llTyp, ptr, ""))
}

func (g *funcGen) emitStore(instr ir.Instruction) {
	val := g.operand(instr.StoreValue)
	ptr := g.builder.CreateIntToPtr(g.operand(instr.StorePtr), llvm.PointerType(val.Type(), 0), "")
	g.builder.CreateStore(val, ptr)
}

func (g *funcGen) rvalue(r ir.RValue) llvm.Value {
	switch r.Kind {
	case ir.RValueUse:
		return g.operand(r.Use)
	case ir.RValueBinary:
		return g.binary(r.BinOp, g.operand(r.Lhs), g.operand(r.Rhs))
	case ir.RValueUnary:
		return g.unary(r.UnOp, g.operand(r.Inner))
	case ir.RValueCast:
		return g.cast(g.operand(r.CastValue), r.CastTarget)
	case ir.RValueStructInit:
		return g.structInit(r.StructType, r.FieldVals)
	case ir.RValueArrayInit:
		return g.arrayInit(r.ArrayElems)
	case ir.RValueStrConcat:
		return g.strConcat(r.ConcatParts)
	default:
		g.fail(errs.UnsupportedType, "unknown rvalue kind")
		return llvm.Value{}
	}
}

func (g *funcGen) binary(op ir.BinOp, lhs, rhs llvm.Value) llvm.Value {
	isFloat := lhs.Type().TypeKind() == llvm.DoubleTypeKind
	b := g.builder
	switch op {
	case ir.OpAdd:
		if isFloat {
			return b.CreateFAdd(lhs, rhs, "")
		}
		return b.CreateAdd(lhs, rhs, "")
	case ir.OpSub:
		if isFloat {
			return b.CreateFSub(lhs, rhs, "")
		}
		return b.CreateSub(lhs, rhs, "")
	case ir.OpMul:
		if isFloat {
			return b.CreateFMul(lhs, rhs, "")
		}
		return b.CreateMul(lhs, rhs, "")
	case ir.OpDiv:
		if isFloat {
			return b.CreateFDiv(lhs, rhs, "")
		}
		return b.CreateSDiv(lhs, rhs, "")
	case ir.OpMod:
		if isFloat {
			return b.CreateFRem(lhs, rhs, "")
		}
		return b.CreateSRem(lhs, rhs, "")
	case ir.OpEq:
		if isFloat {
			return g.asBool(b.CreateFCmp(llvm.FloatOEQ, lhs, rhs, ""))
		}
		return g.asBool(b.CreateICmp(llvm.IntEQ, lhs, rhs, ""))
	case ir.OpNe:
		if isFloat {
			return g.asBool(b.CreateFCmp(llvm.FloatONE, lhs, rhs, ""))
		}
		return g.asBool(b.CreateICmp(llvm.IntNE, lhs, rhs, ""))
	case ir.OpLt:
		if isFloat {
			return g.asBool(b.CreateFCmp(llvm.FloatOLT, lhs, rhs, ""))
		}
		return g.asBool(b.CreateICmp(llvm.IntSLT, lhs, rhs, ""))
	case ir.OpLe:
		if isFloat {
			return g.asBool(b.CreateFCmp(llvm.FloatOLE, lhs, rhs, ""))
		}
		return g.asBool(b.CreateICmp(llvm.IntSLE, lhs, rhs, ""))
	case ir.OpGt:
		if isFloat {
			return g.asBool(b.CreateFCmp(llvm.FloatOGT, lhs, rhs, ""))
		}
		return g.asBool(b.CreateICmp(llvm.IntSGT, lhs, rhs, ""))
	case ir.OpGe:
		if isFloat {
			return g.asBool(b.CreateFCmp(llvm.FloatOGE, lhs, rhs, ""))
		}
		return g.asBool(b.CreateICmp(llvm.IntSGE, lhs, rhs, ""))
	case ir.OpAnd, ir.OpBitAnd:
		return b.CreateAnd(lhs, rhs, "")
	case ir.OpOr, ir.OpBitOr:
		return b.CreateOr(lhs, rhs, "")
	case ir.OpBitXor:
		return b.CreateXor(lhs, rhs, "")
	case ir.OpShl:
		return b.CreateShl(lhs, rhs, "")
	case ir.OpShr:
		return b.CreateAShr(lhs, rhs, "")
	default:
		g.fail(errs.UnsupportedType, "unknown binary operator")
		return llvm.Value{}
	}
}

// asBool widens an i1 comparison result to i8, Bool's machine
// representation everywhere else a value is stored or passed.
func (g *funcGen) asBool(cmp llvm.Value) llvm.Value {
	return g.builder.CreateZExt(cmp, llvm.Int8Type(), "")
}

func (g *funcGen) unary(op ir.UnOp, v llvm.Value) llvm.Value {
	switch op {
	case ir.OpNeg:
		if v.Type().TypeKind() == llvm.DoubleTypeKind {
			return g.builder.CreateFNeg(v, "")
		}
		return g.builder.CreateNeg(v, "")
	case ir.OpNot:
		return g.builder.CreateXor(v, llvm.ConstInt(v.Type(), 1, false), "")
	case ir.OpBitNot:
		return g.builder.CreateNot(v, "")
	default:
		g.fail(errs.UnsupportedType, "unknown unary operator")
		return llvm.Value{}
	}
}

// cast converts v, already materialized as an LLVM value, to target's LLVM
// representation. Integer-to-integer casts only ever move between i64 and
// i8 (I64<->Bool coercions); everything pointer-bearing is already i64.
func (g *funcGen) cast(v llvm.Value, target ir.IrType) llvm.Value {
	dstTyp := mapType(target)
	srcKind, dstKind := v.Type().TypeKind(), dstTyp.TypeKind()
	switch {
	case srcKind == dstKind:
		return v
	case srcKind == llvm.DoubleTypeKind:
		return g.builder.CreateFPToSI(v, dstTyp, "")
	case dstKind == llvm.DoubleTypeKind:
		return g.builder.CreateSIToFP(v, dstTyp, "")
	default:
		srcBits, dstBits := v.Type().IntTypeWidth(), dstTyp.IntTypeWidth()
		switch {
		case dstBits > srcBits:
			return g.builder.CreateZExt(v, dstTyp, "")
		case dstBits < srcBits:
			return g.builder.CreateTrunc(v, dstTyp, "")
		default:
			return v
		}
	}
}

// structInit allocates a fresh struct on the heap via zaco_alloc and stores
// each field value at its layout offset, matching IrStruct's no-padding
// SizeBytes accounting.
func (g *funcGen) structInit(structID ir.StructId, fieldVals []ir.Value) llvm.Value {
	s := g.module.StructDef(structID)
	fn, fnTyp := g.mustExtern("zaco_alloc")
	size := llvm.ConstInt(llvm.Int64Type(), uint64(s.SizeBytes()), false)
	addr := g.builder.CreateCall(fnTyp, fn, []llvm.Value{size}, "")

	offset := int64(0)
	for i, f := range s.Fields {
		val := g.operand(fieldVals[i])
		fieldAddr := addr
		if offset != 0 {
			fieldAddr = g.builder.CreateAdd(addr, llvm.ConstInt(llvm.Int64Type(), uint64(offset), false), "")
		}
		ptr := g.builder.CreateIntToPtr(fieldAddr, llvm.PointerType(mapType(f.Type), 0), "")
		g.builder.CreateStore(val, ptr)
		offset += int64(f.Type.SizeBytes())
	}
	return addr
}

// arrayInit allocates len(elems) fixed 8-byte slots, matching
// elementAddress's per-element slot size in internal/lower.
func (g *funcGen) arrayInit(elems []ir.Value) llvm.Value {
	fn, fnTyp := g.mustExtern("zaco_alloc")
	size := llvm.ConstInt(llvm.Int64Type(), uint64(len(elems)*8), false)
	addr := g.builder.CreateCall(fnTyp, fn, []llvm.Value{size}, "")

	for i, e := range elems {
		val := g.operand(e)
		elemAddr := addr
		if i != 0 {
			elemAddr = g.builder.CreateAdd(addr, llvm.ConstInt(llvm.Int64Type(), uint64(i*8), false), "")
		}
		ptr := g.builder.CreateIntToPtr(elemAddr, llvm.PointerType(val.Type(), 0), "")
		g.builder.CreateStore(val, ptr)
	}
	return addr
}

// strConcat folds a run of string parts pairwise through the runtime's
// binary concat helper; the parser never produces a concat chain of one
// part (that's just the part itself), but an empty chain is handled for
// safety.
func (g *funcGen) strConcat(parts []ir.Value) llvm.Value {
	if len(parts) == 0 {
		return llvm.ConstInt(llvm.Int64Type(), 0, false)
	}
	fn, fnTyp := g.mustExtern("zaco_str_concat")
	acc := g.operand(parts[0])
	for _, p := range parts[1:] {
		acc = g.builder.CreateCall(fnTyp, fn, []llvm.Value{acc, g.operand(p)}, "")
	}
	return acc
}

func (g *funcGen) emitTerminator(t *ir.Terminator) {
	if t == nil {
		g.fail(errs.VerifierRejected, "block in %q has no terminator", g.fn.Name)
		return
	}
	switch t.Kind {
	case ir.TermReturn:
		g.builder.CreateRet(g.operand(t.ReturnValue))
	case ir.TermReturnVoid:
		g.builder.CreateRetVoid()
	case ir.TermJump:
		g.builder.CreateBr(g.blocks[t.Target])
	case ir.TermBranch:
		cond := g.operand(t.Cond)
		truthy := g.builder.CreateICmp(llvm.IntNE, cond, llvm.ConstInt(cond.Type(), 0, false), "")
		g.builder.CreateCondBr(truthy, g.blocks[t.IfTrue], g.blocks[t.IfFalse])
	case ir.TermUnreachable:
		g.builder.CreateUnreachable()
	default:
		g.fail(errs.UnsupportedType, "unknown terminator kind")
	}
}
