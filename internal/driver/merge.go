package driver

import (
	"github.com/zacolang/zaco/internal/errs"
	"github.com/zacolang/zaco/internal/ir"
)

// offsets records the running FuncId/StructId base a file's ids are
// shifted by when its IrModule is folded into the merged program module.
type offsets struct {
	funcBase   ir.FuncId
	structBase ir.StructId
}

// MergeModules concatenates per-file IrModules, computed in schedule
// order, into one whole-program IrModule. Every function and struct keeps
// its name; ids are renumbered to stay dense and unique across the merge.
// entryPath names the file whose "main" function becomes the program
// entry point — every other file's top-level code runs only if something
// reachable from main calls it.
func MergeModules(results []*FileResult, entryPath string) (*ir.IrModule, error) {
	merged := ir.NewModule("program")

	fileOffsets := make(map[string]offsets, len(results))
	for _, res := range results {
		fileOffsets[res.Path] = offsets{funcBase: merged.NextFuncId, structBase: merged.NextStructId}
		shiftModule(merged, res.Module, fileOffsets[res.Path])
	}

	dedupExterns(merged)

	var entry *FileResult
	for _, res := range results {
		if res.Path == entryPath {
			entry = res
		}
	}
	if entry == nil || entry.Module == nil || entry.Module.FindFunction("main") == nil {
		return nil, errs.Newf("driver", errs.RESUnterminatedDeclaration, nil,
			"entry file %q declares no main function", entryPath)
	}
	return merged, nil
}

// shiftModule appends src's functions, structs, globals, and string pool
// into dst, rewriting every embedded FuncId/StructId by off.
func shiftModule(dst, src *ir.IrModule, off offsets) {
	for _, s := range src.Structs {
		shifted := ir.NewStruct(s.Id+off.structBase, s.Name)
		for _, field := range s.Fields {
			shifted.AddField(field.Name, remapType(field.Type, off))
		}
		if s.DropFn != nil {
			fid := *s.DropFn + off.funcBase
			shifted.DropFn = &fid
		}
		dst.Structs = append(dst.Structs, shifted)
		dst.NextStructId++
	}

	for _, f := range src.Functions {
		dst.Functions = append(dst.Functions, shiftFunction(f, off))
		dst.NextFuncId++
	}

	for _, g := range src.Globals {
		dst.AddGlobal(g.Name, remapType(g.Type, off), g.Init)
	}

	for _, ext := range src.ExternFunctions {
		params := make([]ir.IrType, len(ext.Params))
		for i, p := range ext.Params {
			params[i] = remapType(p, off)
		}
		dst.AddExternFunction(ext.Name, params, remapType(ext.ReturnType, off))
	}

	for _, s := range src.StringLiterals {
		dst.InternString(s)
	}
}

func shiftFunction(f *ir.IrFunction, off offsets) *ir.IrFunction {
	out := &ir.IrFunction{
		Id:         f.Id + off.funcBase,
		Name:       f.Name,
		Params:     append([]ir.LocalId(nil), f.Params...),
		ReturnType: remapType(f.ReturnType, off),
		IsExported: f.IsExported,
		IsAsync:    f.IsAsync,
		EntryBlock: f.EntryBlock,
	}
	for _, l := range f.Locals {
		out.Locals = append(out.Locals, ir.LocalInfo{Type: remapType(l.Type, off), Name: l.Name})
	}
	for _, t := range f.Temps {
		out.Temps = append(out.Temps, remapType(t, off))
	}
	for _, b := range f.Blocks {
		out.Blocks = append(out.Blocks, shiftBlock(b, off))
	}
	return out
}

func shiftBlock(b *ir.Block, off offsets) *ir.Block {
	out := ir.NewBlock(b.Id)
	for _, instr := range b.Instructions {
		out.Push(shiftInstruction(instr, off))
	}
	if b.Terminator != nil {
		term := *b.Terminator
		out.SetTerminator(term)
	}
	return out
}

func shiftInstruction(instr ir.Instruction, off offsets) ir.Instruction {
	switch instr.Kind {
	case ir.InstrAssign:
		instr.Value = shiftRValue(instr.Value, off)
	case ir.InstrAlloc:
		instr.AllocType = remapType(instr.AllocType, off)
	}
	return instr
}

func shiftRValue(v ir.RValue, off offsets) ir.RValue {
	switch v.Kind {
	case ir.RValueCast:
		v.CastTarget = remapType(v.CastTarget, off)
	case ir.RValueStructInit:
		v.StructType += off.structBase
	}
	return v
}

// remapType rebuilds t with any embedded StructId shifted by off. Every
// other kind is structurally immutable across a merge, since only struct
// references carry a module-local id.
func remapType(t ir.IrType, off offsets) ir.IrType {
	switch t.Kind() {
	case ir.KindStruct:
		return ir.Struct(t.StructID() + off.structBase)
	case ir.KindArray:
		return ir.Array(remapType(t.Elem(), off))
	case ir.KindPromise:
		return ir.Promise(remapType(t.Elem(), off))
	case ir.KindFuncPtr:
		sig := t.Signature()
		params := make([]ir.IrType, len(sig.Params))
		for i, p := range sig.Params {
			params[i] = remapType(p, off)
		}
		return ir.FuncPtr(ir.FuncSignature{Params: params, ReturnType: remapType(sig.ReturnType, off)})
	default:
		return t
	}
}

// dedupExterns drops any extern declaration whose name now resolves to a
// real function definition in the merged module: a call that was extern
// from one file's point of view because its callee lived in another file
// is, after merging, just an ordinary direct call.
func dedupExterns(m *ir.IrModule) {
	kept := m.ExternFunctions[:0]
	for _, ext := range m.ExternFunctions {
		if m.FindFunction(ext.Name) != nil {
			continue
		}
		kept = append(kept, ext)
	}
	m.ExternFunctions = kept
}
