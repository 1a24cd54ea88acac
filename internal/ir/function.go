package ir

import (
	"fmt"
	"strings"
)

// LocalInfo records a local slot's static type and source name (empty for
// compiler-introduced temporaries promoted to locals).
type LocalInfo struct {
	Type IrType
	Name string
}

// IrFunction is a single compiled function: its signature, its locals and
// temporaries, and its basic blocks. EntryBlock is always the first block
// created for the function.
type IrFunction struct {
	Id         FuncId
	Name       string
	Params     []LocalId // prefix of Locals bound to parameters, in order
	ReturnType IrType
	IsExported bool
	IsAsync    bool
	EntryBlock BlockId

	Locals []LocalInfo
	Temps  []IrType
	Blocks []*Block

	nextBlock BlockId
}

// NewFunction creates a function and pre-declares its parameters as the
// first locals, matching the calling convention codegen assumes.
func NewFunction(id FuncId, name string, paramTypes []IrType, paramNames []string, returnType IrType) *IrFunction {
	f := &IrFunction{Id: id, Name: name, ReturnType: returnType}
	for i, t := range paramTypes {
		name := ""
		if i < len(paramNames) {
			name = paramNames[i]
		}
		f.Params = append(f.Params, f.AddLocal(t, name))
	}
	return f
}

// AddLocal allocates a new named local slot and returns its id.
func (f *IrFunction) AddLocal(t IrType, name string) LocalId {
	id := LocalId(len(f.Locals))
	f.Locals = append(f.Locals, LocalInfo{Type: t, Name: name})
	return id
}

// AddTemp allocates a new unnamed temporary slot and returns its id.
func (f *IrFunction) AddTemp(t IrType) TempId {
	id := TempId(len(f.Temps))
	f.Temps = append(f.Temps, t)
	return id
}

// NewBlock allocates and appends a fresh, unterminated basic block. The
// very first call establishes EntryBlock.
func (f *IrFunction) NewBlock() *Block {
	id := f.nextBlock
	f.nextBlock++
	b := NewBlock(id)
	if len(f.Blocks) == 0 {
		f.EntryBlock = id
	}
	f.Blocks = append(f.Blocks, b)
	return b
}

// Block returns the block with the given id, or nil if out of range.
func (f *IrFunction) Block(id BlockId) *Block {
	if int(id) < 0 || int(id) >= len(f.Blocks) {
		return nil
	}
	return f.Blocks[id]
}

// LocalType returns the static type of a local slot.
func (f *IrFunction) LocalType(id LocalId) IrType {
	return f.Locals[id].Type
}

// TempType returns the static type of a temporary slot.
func (f *IrFunction) TempType(id TempId) IrType {
	return f.Temps[id]
}

// Signature derives the function's call signature from its parameter
// locals and return type.
func (f *IrFunction) Signature() FuncSignature {
	params := make([]IrType, len(f.Params))
	for i, id := range f.Params {
		params[i] = f.LocalType(id)
	}
	return FuncSignature{Params: params, ReturnType: f.ReturnType}
}

// EveryBlockTerminated reports whether every block in the function has a
// terminator, the structural invariant codegen assumes before emission.
func (f *IrFunction) EveryBlockTerminated() bool {
	for _, b := range f.Blocks {
		if !b.IsTerminated() {
			return false
		}
	}
	return true
}

func (f *IrFunction) String() string {
	return fmt.Sprintf("fn %s%s", f.Name, f.Signature())
}

// DumpIR renders the function in the line-oriented diagnostic textual IR
// format: a `fn name(params) -> ret` header followed by one `bb<N>:` section
// per block, each instruction and terminator printed on its own indented
// line. This is the format `--emit ir` produces; it is not meant to be
// re-parsed.
func (f *IrFunction) DumpIR() string {
	var b strings.Builder
	fmt.Fprintf(&b, "fn %s%s\n", f.Name, f.Signature())
	for _, blk := range f.Blocks {
		fmt.Fprintf(&b, "bb%d:\n", blk.Id)
		for _, instr := range blk.Instructions {
			fmt.Fprintf(&b, "  %s\n", instr)
		}
		if blk.Terminator != nil {
			fmt.Fprintf(&b, "  %s\n", blk.Terminator)
		}
	}
	return b.String()
}

// StructFieldInfo names and types one field of a struct layout.
type StructFieldInfo struct {
	Name string
	Type IrType
}

// IrStruct is a struct layout: an ordered list of named, typed fields.
// Field order determines both projection indices and memory layout.
type IrStruct struct {
	Id     StructId
	Name   string
	Fields []StructFieldInfo
	// DropFn names a user-defined destructor run before the struct's
	// backing memory is freed, if one was declared.
	DropFn *FuncId
}

func NewStruct(id StructId, name string) *IrStruct {
	return &IrStruct{Id: id, Name: name}
}

// AddField appends a field and returns its index for use in FieldProjection.
func (s *IrStruct) AddField(name string, t IrType) int {
	idx := len(s.Fields)
	s.Fields = append(s.Fields, StructFieldInfo{Name: name, Type: t})
	return idx
}

// FieldIndex looks up a field's position by name, or -1 if not found.
func (s *IrStruct) FieldIndex(name string) int {
	for i, f := range s.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// SizeBytes is the struct's total layout size: the sum of its fields'
// sizes. Real alignment/padding is a codegen-backend concern; the MIR
// layer only needs a stable total for diagnostics and size estimation.
func (s *IrStruct) SizeBytes() int {
	total := 0
	for _, f := range s.Fields {
		total += f.Type.SizeBytes()
	}
	return total
}

func (s *IrStruct) String() string {
	return fmt.Sprintf("struct %s (%d fields)", s.Name, len(s.Fields))
}
