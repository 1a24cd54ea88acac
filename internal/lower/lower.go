package lower

import (
	"fmt"

	"github.com/zacolang/zaco/internal/ast"
	"github.com/zacolang/zaco/internal/ir"
)

// loopCtx records the jump targets `break` and `continue` resolve to while
// lowering the body of one enclosing loop. A stack of these is pushed and
// popped around each loop statement so nested loops target their own
// header/exit blocks rather than an outer loop's.
type loopCtx struct {
	breakTarget    ir.BlockId
	continueTarget ir.BlockId
}

// Lowerer turns one checked file's AST into an ir.IrModule. Struct and
// function ids are reserved across the whole file before any body is
// lowered, so mutually recursive declarations resolve without a prepass.
type Lowerer struct {
	Module *ir.IrModule

	structIds map[string]ir.StructId
	funcIds   map[string]ir.FuncId
	funcSigs  map[string]ir.FuncSignature
	globals   map[string]ir.IrType

	fn        *ir.IrFunction
	block     *ir.Block
	scopes    []map[string]ir.LocalId
	loopStack []loopCtx

	anonCounter int
}

func NewLowerer(moduleName string) *Lowerer {
	return &Lowerer{
		Module:    ir.NewModule(moduleName),
		structIds: make(map[string]ir.StructId),
		funcIds:   make(map[string]ir.FuncId),
		funcSigs:  make(map[string]ir.FuncSignature),
		globals:   make(map[string]ir.IrType),
	}
}

// LowerFile lowers every top-level declaration of f into l.Module.
func (l *Lowerer) LowerFile(f *ast.File) {
	l.reserveDecls(f.Decls)
	for _, decl := range f.Decls {
		l.lowerTopDecl(decl)
	}
}

// reserveDecls walks every declaration once to reserve struct ids and
// register function signatures before any body is lowered; struct fields
// are added later, by lowerClassDecl.
func (l *Lowerer) reserveDecls(decls []ast.Decl) {
	for _, decl := range decls {
		switch d := decl.(type) {
		case *ast.ClassDecl:
			l.reserveStruct(d)
		}
	}
	for _, decl := range decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			l.reserveFunc(d.Name, d)
		case *ast.ClassDecl:
			for _, m := range d.Methods {
				l.reserveFunc(d.Name+"."+m.Name, m.Func)
			}
		}
	}
}

func (l *Lowerer) reserveStruct(d *ast.ClassDecl) {
	id := l.Module.ReserveStructId()
	l.structIds[d.Name] = id
}

func (l *Lowerer) reserveFunc(name string, d *ast.FuncDecl) {
	id := l.Module.ReserveFuncId()
	l.funcIds[name] = id

	params := make([]ir.IrType, len(d.Params))
	for i, p := range d.Params {
		params[i] = l.paramIrType(p)
	}
	ret := l.convertIrType(d.Return)
	if d.IsAsync {
		ret = ir.Promise(ret)
	}
	l.funcSigs[name] = ir.FuncSignature{Params: params, ReturnType: ret}
}

func (l *Lowerer) paramIrType(p ast.Param) ir.IrType {
	if ident, ok := p.Pattern.(*ast.IdentPattern); ok {
		return l.convertIrType(ident.Type)
	}
	return ir.Ptr()
}

func (l *Lowerer) lowerTopDecl(decl ast.Decl) {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		l.lowerFuncDecl(d.Name, d)
	case *ast.ClassDecl:
		l.lowerClassDecl(d)
	case *ast.VarDecl:
		l.lowerTopVarDecl(d)
	}
}

func (l *Lowerer) lowerClassDecl(d *ast.ClassDecl) {
	id := l.structIds[d.Name]
	s := ir.NewStruct(id, d.Name)
	for _, f := range d.Fields {
		s.AddField(f.Name, l.convertIrType(f.Type))
	}
	l.Module.AddStruct(s)

	for _, m := range d.Methods {
		l.lowerFuncDecl(d.Name+"."+m.Name, m.Func)
	}
}

func (l *Lowerer) lowerTopVarDecl(d *ast.VarDecl) {
	for _, declarator := range d.Stmt.Declarations {
		ident, ok := declarator.Pattern.(*ast.IdentPattern)
		if !ok {
			continue
		}
		ty := l.convertIrType(ident.Type)
		l.globals[ident.Name] = ty

		var init *ir.Constant
		if lit, ok := declarator.Init.(*ast.Literal); ok {
			if c, ok := l.constantOf(lit); ok {
				init = &c
			}
		}
		l.Module.AddGlobal(ident.Name, ty, init)
	}
}

func (l *Lowerer) constantOf(lit *ast.Literal) (ir.Constant, bool) {
	switch lit.Kind {
	case ast.LitExprNumber:
		if f, ok := lit.Value.(float64); ok {
			return ir.ConstantF64(f), true
		}
	case ast.LitExprString:
		if s, ok := lit.Value.(string); ok {
			return ir.ConstantStr(s), true
		}
	case ast.LitExprBoolean:
		if b, ok := lit.Value.(bool); ok {
			return ir.ConstantBool(b), true
		}
	case ast.LitExprNull:
		return ir.ConstantNull(), true
	}
	return ir.Constant{}, false
}

// lowerFuncDecl builds the IrFunction for name (already reserved) and
// registers it in the module.
func (l *Lowerer) lowerFuncDecl(name string, d *ast.FuncDecl) {
	id := l.funcIds[name]
	sig := l.funcSigs[name]

	paramNames := make([]string, len(d.Params))
	for i, p := range d.Params {
		if ident, ok := p.Pattern.(*ast.IdentPattern); ok {
			paramNames[i] = ident.Name
		}
	}

	fn := ir.NewFunction(id, name, sig.Params, paramNames, sig.ReturnType)
	fn.IsExported = d.IsExported || name == "main"
	fn.IsAsync = d.IsAsync

	prevFn, prevBlock, prevScopes, prevLoops := l.fn, l.block, l.scopes, l.loopStack
	l.fn = fn
	l.scopes = []map[string]ir.LocalId{make(map[string]ir.LocalId)}
	l.loopStack = nil

	for i, name := range paramNames {
		if name != "" {
			l.declareLocal(name, fn.Params[i])
		}
	}

	l.block = fn.NewBlock()
	if d.Body != nil {
		l.lowerBlock(d.Body)
	}
	l.sealWithImplicitReturn()

	l.Module.AddFunction(fn)

	l.fn, l.block, l.scopes, l.loopStack = prevFn, prevBlock, prevScopes, prevLoops
}

// sealWithImplicitReturn terminates the current block if the body fell
// through without an explicit return, matching a bare `}` at the end of a
// void-returning function.
func (l *Lowerer) sealWithImplicitReturn() {
	if l.block.IsTerminated() {
		return
	}
	if l.fn.ReturnType.Kind() == ir.KindVoid {
		l.block.SetTerminator(ir.ReturnVoid())
	} else {
		l.block.SetTerminator(ir.Unreachable())
	}
}

func (l *Lowerer) pushScope() { l.scopes = append(l.scopes, make(map[string]ir.LocalId)) }
func (l *Lowerer) popScope()  { l.scopes = l.scopes[:len(l.scopes)-1] }

func (l *Lowerer) declareLocal(name string, id ir.LocalId) {
	l.scopes[len(l.scopes)-1][name] = id
}

func (l *Lowerer) lookupLocal(name string) (ir.LocalId, bool) {
	for i := len(l.scopes) - 1; i >= 0; i-- {
		if id, ok := l.scopes[i][name]; ok {
			return id, true
		}
	}
	return 0, false
}

// newBlock allocates a fresh block in the current function without
// switching the builder's cursor to it.
func (l *Lowerer) newBlock() *ir.Block { return l.fn.NewBlock() }

// setBlock moves the builder's cursor to b; subsequent emit/push calls
// target it.
func (l *Lowerer) setBlock(b *ir.Block) { l.block = b }

func (l *Lowerer) emit(instr ir.Instruction) { l.block.Push(instr) }

// assignTemp allocates a fresh temp of type t, emits `temp = rv`, and
// returns the temp as a Value. Every non-void RValue is materialized this
// way rather than reused in place, keeping the instruction stream strictly
// three-address.
func (l *Lowerer) assignTemp(t ir.IrType, rv ir.RValue) ir.Value {
	temp := l.fn.AddTemp(t)
	l.emit(ir.Assign(ir.PlaceFromTemp(temp), rv))
	return ir.ValueFromTemp(temp)
}

func (l *Lowerer) anonName(prefix string) string {
	l.anonCounter++
	return fmt.Sprintf("%s$%d", prefix, l.anonCounter)
}
