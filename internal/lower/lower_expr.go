package lower

import (
	"github.com/zacolang/zaco/internal/ast"
	"github.com/zacolang/zaco/internal/ir"
)

// lowerExprDiscard lowers an expression used only for its side effect,
// e.g. a bare call-expression statement. Calls get their result dropped
// (CallDest nil) rather than forced through a dead temp.
func (l *Lowerer) lowerExprDiscard(expr ast.Expr) {
	if call, ok := expr.(*ast.Call); ok {
		l.lowerCall(call, false)
		return
	}
	l.lowerExpr(expr)
}

// lowerExpr lowers expr and returns the Value holding its result.
func (l *Lowerer) lowerExpr(expr ast.Expr) ir.Value {
	switch e := expr.(type) {
	case *ast.Identifier:
		return l.lowerIdentifier(e)

	case *ast.Literal:
		return ir.ValueFromConstant(l.lowerLiteralConstant(e))

	case *ast.BinaryOp:
		return l.lowerBinaryOp(e)

	case *ast.UnaryOp:
		inner := l.lowerExpr(e.Expr)
		return l.assignTemp(l.unaryResultType(e.Op, inner), ir.UnaryRValue(unOpFor(e.Op), inner))

	case *ast.Conditional:
		return l.lowerConditional(e)

	case *ast.Call:
		return l.lowerCall(e, true)

	case *ast.Member:
		place := l.lowerPlace(e)
		return l.loadPlace(place, l.memberType(e))

	case *ast.Index:
		place := l.lowerPlace(e)
		return l.loadPlace(place, l.indexElemType(e))

	case *ast.Assignment:
		return l.lowerAssignment(e)

	case *ast.ArrayLiteral:
		return l.lowerArrayLiteral(e)

	case *ast.ObjectLiteral:
		return l.lowerObjectLiteral(e)

	case *ast.FunctionExpr:
		return l.lowerFunctionExpr(e)

	case *ast.Await:
		inner := l.lowerExpr(e.Expr)
		return l.callRuntime("zaco_promise_await", ir.Ptr(), inner)

	case *ast.Clone:
		return l.lowerClone(e)

	case *ast.Ref:
		return l.lowerRef(e)

	default:
		return ir.ValueFromConstant(ir.ConstantNull())
	}
}

func (l *Lowerer) lowerIdentifier(id *ast.Identifier) ir.Value {
	if local, ok := l.lookupLocal(id.Name); ok {
		return ir.ValueFromLocal(local)
	}
	if ty, ok := l.globals[id.Name]; ok {
		return l.callRuntime("zaco_global_get$"+id.Name, ty)
	}
	// Reference to another module's export: lowered to a string constant
	// carrying its name, which MergeModules leaves as it is.
	return ir.ValueFromConstant(ir.ConstantStr(id.Name))
}

func (l *Lowerer) lowerLiteralConstant(lit *ast.Literal) ir.Constant {
	switch lit.Kind {
	case ast.LitExprNumber:
		if f, ok := lit.Value.(float64); ok {
			return ir.ConstantF64(f)
		}
		return ir.ConstantF64(0)
	case ast.LitExprString:
		s, _ := lit.Value.(string)
		l.Module.InternString(s)
		return ir.ConstantStr(s)
	case ast.LitExprBoolean:
		b, _ := lit.Value.(bool)
		return ir.ConstantBool(b)
	default:
		return ir.ConstantNull()
	}
}

func binOpFor(op string) (ir.BinOp, bool) {
	switch op {
	case "+":
		return ir.OpAdd, true
	case "-":
		return ir.OpSub, true
	case "*":
		return ir.OpMul, true
	case "/":
		return ir.OpDiv, true
	case "%":
		return ir.OpMod, true
	case "==", "===":
		return ir.OpEq, true
	case "!=", "!==":
		return ir.OpNe, true
	case "<":
		return ir.OpLt, true
	case "<=":
		return ir.OpLe, true
	case ">":
		return ir.OpGt, true
	case ">=":
		return ir.OpGe, true
	case "&":
		return ir.OpBitAnd, true
	case "|":
		return ir.OpBitOr, true
	case "^":
		return ir.OpBitXor, true
	case "<<":
		return ir.OpShl, true
	case ">>":
		return ir.OpShr, true
	default:
		return 0, false
	}
}

func unOpFor(op string) ir.UnOp {
	switch op {
	case "!":
		return ir.OpNot
	case "~":
		return ir.OpBitNot
	default:
		return ir.OpNeg
	}
}

func (l *Lowerer) unaryResultType(op string, inner ir.Value) ir.IrType {
	if op == "!" {
		return ir.Bool()
	}
	return ir.F64()
}

func (l *Lowerer) lowerBinaryOp(e *ast.BinaryOp) ir.Value {
	switch e.Op {
	case "&&":
		return l.lowerLogicalAnd(e)
	case "||":
		return l.lowerLogicalOr(e)
	case "??":
		return l.lowerNullish(e)
	}

	lhs := l.lowerExpr(e.Left)
	rhs := l.lowerExpr(e.Right)

	if e.Op == "+" && (l.isStringOperand(e.Left, lhs) || l.isStringOperand(e.Right, rhs)) {
		return l.assignTemp(ir.Str(), ir.StrConcatRValue([]ir.Value{lhs, rhs}))
	}

	op, ok := binOpFor(e.Op)
	if !ok {
		op = ir.OpAdd
	}
	resultTy := ir.F64()
	switch op {
	case ir.OpEq, ir.OpNe, ir.OpLt, ir.OpLe, ir.OpGt, ir.OpGe:
		resultTy = ir.Bool()
	}
	return l.assignTemp(resultTy, ir.BinaryRValue(op, lhs, rhs))
}

// isStringOperand is a best-effort static check for string-typed operands,
// used only to decide whether `+` lowers to numeric add or StrConcat; it
// recognises string literals directly since the lowerer does not carry
// full inferred types the way the checker does.
func (l *Lowerer) isStringOperand(expr ast.Expr, _ ir.Value) bool {
	lit, ok := expr.(*ast.Literal)
	return ok && lit.Kind == ast.LitExprString
}

// lowerLogicalAnd lowers `a && b` with explicit blocks so b is only
// evaluated when a is truthy. Both paths assign the same result temp.
func (l *Lowerer) lowerLogicalAnd(e *ast.BinaryOp) ir.Value {
	lhs := l.lowerExpr(e.Left)
	result := l.fn.AddTemp(ir.Ptr())

	rhsBlock := l.newBlock()
	join := l.newBlock()

	l.emit(ir.Assign(ir.PlaceFromTemp(result), ir.UseRValue(lhs)))
	l.block.SetTerminator(ir.Branch(lhs, rhsBlock.Id, join.Id))

	l.setBlock(rhsBlock)
	rhs := l.lowerExpr(e.Right)
	l.emit(ir.Assign(ir.PlaceFromTemp(result), ir.UseRValue(rhs)))
	l.block.SetTerminator(ir.Jump(join.Id))

	l.setBlock(join)
	return ir.ValueFromTemp(result)
}

// lowerLogicalOr mirrors lowerLogicalAnd: b is evaluated only when a is
// falsy.
func (l *Lowerer) lowerLogicalOr(e *ast.BinaryOp) ir.Value {
	lhs := l.lowerExpr(e.Left)
	result := l.fn.AddTemp(ir.Ptr())

	rhsBlock := l.newBlock()
	join := l.newBlock()

	l.emit(ir.Assign(ir.PlaceFromTemp(result), ir.UseRValue(lhs)))
	l.block.SetTerminator(ir.Branch(lhs, join.Id, rhsBlock.Id))

	l.setBlock(rhsBlock)
	rhs := l.lowerExpr(e.Right)
	l.emit(ir.Assign(ir.PlaceFromTemp(result), ir.UseRValue(rhs)))
	l.block.SetTerminator(ir.Jump(join.Id))

	l.setBlock(join)
	return ir.ValueFromTemp(result)
}

// lowerNullish lowers `a ?? b`: b is evaluated only when a is null or
// undefined, tested via the runtime's is-nullish helper.
func (l *Lowerer) lowerNullish(e *ast.BinaryOp) ir.Value {
	lhs := l.lowerExpr(e.Left)
	result := l.fn.AddTemp(ir.Ptr())

	isNullish := l.callRuntime("zaco_is_nullish", ir.Bool(), lhs)
	rhsBlock := l.newBlock()
	join := l.newBlock()

	l.emit(ir.Assign(ir.PlaceFromTemp(result), ir.UseRValue(lhs)))
	l.block.SetTerminator(ir.Branch(isNullish, rhsBlock.Id, join.Id))

	l.setBlock(rhsBlock)
	rhs := l.lowerExpr(e.Right)
	l.emit(ir.Assign(ir.PlaceFromTemp(result), ir.UseRValue(rhs)))
	l.block.SetTerminator(ir.Jump(join.Id))

	l.setBlock(join)
	return ir.ValueFromTemp(result)
}

// lowerConditional lowers the ternary `cond ? then : else` with the same
// block shape as an if/else, yielding its result into a shared temp.
func (l *Lowerer) lowerConditional(e *ast.Conditional) ir.Value {
	cond := l.lowerExpr(e.Cond)
	result := l.fn.AddTemp(ir.Ptr())

	thenBlock := l.newBlock()
	elseBlock := l.newBlock()
	join := l.newBlock()

	l.block.SetTerminator(ir.Branch(cond, thenBlock.Id, elseBlock.Id))

	l.setBlock(thenBlock)
	thenVal := l.lowerExpr(e.Then)
	l.emit(ir.Assign(ir.PlaceFromTemp(result), ir.UseRValue(thenVal)))
	l.block.SetTerminator(ir.Jump(join.Id))

	l.setBlock(elseBlock)
	elseVal := l.lowerExpr(e.Else)
	l.emit(ir.Assign(ir.PlaceFromTemp(result), ir.UseRValue(elseVal)))
	l.block.SetTerminator(ir.Jump(join.Id))

	l.setBlock(join)
	return ir.ValueFromTemp(result)
}

func (l *Lowerer) lowerCall(e *ast.Call, wantResult bool) ir.Value {
	if v, ok := l.lowerConsoleCall(e); ok {
		return v
	}

	args := make([]ir.Value, len(e.Args))
	for i, arg := range e.Args {
		args[i] = l.lowerExpr(arg)
	}

	callee, retTy := l.resolveCallee(e.Callee)

	if !wantResult || retTy.Kind() == ir.KindVoid {
		l.emit(ir.Call(nil, callee, args))
		return ir.ValueFromConstant(ir.ConstantNull())
	}

	dest := ir.PlaceFromTemp(l.fn.AddTemp(retTy))
	l.emit(ir.Call(&dest, callee, args))
	return dest.Base
}

// resolveCallee returns the Value a Call instruction should invoke plus
// the statically known return type. A direct call to a module-level
// function or method is represented by its name as a string constant,
// which codegen resolves to the declared symbol; any other callee
// expression is lowered to a value and called indirectly, with an opaque
// Ptr return type since the lowerer does not carry full inferred types.
func (l *Lowerer) resolveCallee(callee ast.Expr) (ir.Value, ir.IrType) {
	if id, ok := callee.(*ast.Identifier); ok {
		if sig, ok := l.funcSigs[id.Name]; ok {
			return ir.ValueFromConstant(ir.ConstantStr(id.Name)), sig.ReturnType
		}
	}
	if m, ok := callee.(*ast.Member); ok {
		if ident, ok := m.Object.(*ast.Identifier); ok {
			qualified := ident.Name + "." + m.Property
			if sig, ok := l.funcSigs[qualified]; ok {
				return ir.ValueFromConstant(ir.ConstantStr(qualified)), sig.ReturnType
			}
		}
	}
	v := l.lowerExpr(callee)
	return v, ir.Ptr()
}

// consoleMethods are the console properties the host runtime provides, each
// taking one argument of any type. There is no import for console, so it is
// not resolvable through funcSigs the way an ordinary function call is.
var consoleMethods = map[string]bool{"log": true, "error": true, "warn": true, "info": true}

// lowerConsoleCall recognizes a call to console.log/error/warn/info and
// lowers it directly to the runtime print extern matching the argument's
// representation, since the native ABI needs a distinct entry point per
// representation rather than one function taking a boxed value. It reports
// ok=false for anything else so lowerCall falls back to its general path.
func (l *Lowerer) lowerConsoleCall(e *ast.Call) (ir.Value, bool) {
	m, ok := e.Callee.(*ast.Member)
	if !ok || len(e.Args) != 1 {
		return ir.Value{}, false
	}
	ident, ok := m.Object.(*ast.Identifier)
	if !ok || ident.Name != "console" || !consoleMethods[m.Property] {
		return ir.Value{}, false
	}
	if _, shadowed := l.lookupLocal(ident.Name); shadowed {
		return ir.Value{}, false
	}

	arg := l.lowerExpr(e.Args[0])
	name := "zaco_console_" + m.Property + "_" + l.consoleSuffix(arg)
	l.callRuntime(name, ir.Void(), arg)
	return ir.ValueFromConstant(ir.ConstantNull()), true
}

// consoleSuffix maps an already-lowered value to the runtime extern suffix
// matching its representation. Every heap/reference kind shares the opaque
// "ptr" entry point since the runtime tells them apart at the byte level,
// not the compiler.
func (l *Lowerer) consoleSuffix(v ir.Value) string {
	switch l.valueType(v).Kind() {
	case ir.KindI64:
		return "i64"
	case ir.KindF64:
		return "f64"
	case ir.KindBool:
		return "bool"
	case ir.KindStr:
		return "str"
	default:
		return "ptr"
	}
}

// valueType recovers the static IrType of an already-lowered value: the
// declared type of its local or temp slot, or the type implied by its
// constant kind.
func (l *Lowerer) valueType(v ir.Value) ir.IrType {
	switch v.Kind() {
	case ir.ValueLocal:
		return l.fn.LocalType(v.Local())
	case ir.ValueTemp:
		return l.fn.TempType(v.Temp())
	default:
		switch v.Constant().Kind() {
		case ir.ConstI64:
			return ir.I64()
		case ir.ConstF64:
			return ir.F64()
		case ir.ConstBool:
			return ir.Bool()
		case ir.ConstStr:
			return ir.Str()
		default:
			return ir.Ptr()
		}
	}
}

func (l *Lowerer) memberType(e *ast.Member) ir.IrType {
	if structId, ok := l.structOf(e.Object); ok {
		if s := l.Module.StructDef(structId); s != nil {
			if idx := s.FieldIndex(e.Property); idx >= 0 {
				return s.Fields[idx].Type
			}
		}
	}
	return ir.Ptr()
}

func (l *Lowerer) indexElemType(e *ast.Index) ir.IrType {
	return ir.Ptr()
}

// structOf returns the struct id backing obj's static type, when obj is an
// identifier whose declared type names a registered class.
func (l *Lowerer) structOf(obj ast.Expr) (ir.StructId, bool) {
	ident, ok := obj.(*ast.Identifier)
	if !ok {
		return 0, false
	}
	localId, ok := l.lookupLocal(ident.Name)
	if !ok {
		return 0, false
	}
	ty := l.fn.LocalType(localId)
	if ty.Kind() != ir.KindStruct {
		return 0, false
	}
	return ty.StructID(), true
}

// fieldAddress computes the address of field fieldIdx within a struct
// starting at base, as base plus the cumulative size of every preceding
// field — struct layout has no padding, so this mirrors IrStruct.SizeBytes's
// own accounting. idx < 0 (field not found on a registered struct, e.g. a
// plain object literal) addresses the struct itself, matching the prior
// behaviour of falling back to field 0.
func (l *Lowerer) fieldAddress(base ir.Value, structId ir.StructId, idx int) ir.Value {
	if idx <= 0 {
		return base
	}
	s := l.Module.StructDef(structId)
	if s == nil {
		return base
	}
	offset := int64(0)
	for _, f := range s.Fields[:idx] {
		offset += int64(f.Type.SizeBytes())
	}
	if offset == 0 {
		return base
	}
	return l.assignTemp(ir.Ptr(), ir.BinaryRValue(ir.OpAdd, base, ir.ValueFromConstant(ir.ConstantI64(offset))))
}

// elementAddress computes the address of array element idx starting at
// base: base plus idx scaled by the fixed per-element slot size. Every
// array element occupies one pointer-sized slot regardless of payload kind,
// matching the heap layout the runtime's array helpers assume.
func (l *Lowerer) elementAddress(base ir.Value, idx ir.Value) ir.Value {
	const elemSize = 8
	scaled := l.assignTemp(ir.I64(), ir.BinaryRValue(ir.OpMul, idx, ir.ValueFromConstant(ir.ConstantI64(elemSize))))
	return l.assignTemp(ir.Ptr(), ir.BinaryRValue(ir.OpAdd, base, scaled))
}

// lowerPlace lowers an lvalue expression to a Place. For Member and Index
// expressions the Place's Base already holds the fully-computed field or
// element address — Load/Store take a bare pointer Value, so the address
// arithmetic has to happen here rather than being deferred through a
// projection the instruction has nowhere to carry.
func (l *Lowerer) lowerPlace(expr ast.Expr) ir.Place {
	switch e := expr.(type) {
	case *ast.Identifier:
		if local, ok := l.lookupLocal(e.Name); ok {
			return ir.PlaceFromLocal(local)
		}
		return ir.PlaceFromValue(ir.ValueFromConstant(ir.ConstantStr(e.Name)))

	case *ast.Member:
		base := l.lowerPlace(e.Object).Base
		idx := -1
		var structId ir.StructId
		if sid, ok := l.structOf(e.Object); ok {
			structId = sid
			if s := l.Module.StructDef(sid); s != nil {
				idx = s.FieldIndex(e.Property)
			}
		}
		return ir.PlaceFromValue(l.fieldAddress(base, structId, idx))

	case *ast.Index:
		base := l.lowerPlace(e.Object).Base
		idxVal := l.lowerExpr(e.Index)
		return ir.PlaceFromValue(l.elementAddress(base, idxVal))

	default:
		v := l.lowerExpr(expr)
		return ir.PlaceFromValue(v)
	}
}

// loadPlace materializes a Place's current value into a temp via an
// explicit Load instruction, used whenever a field or index read appears
// in value position rather than as an assignment target.
func (l *Lowerer) loadPlace(place ir.Place, ty ir.IrType) ir.Value {
	dest := ir.PlaceFromTemp(l.fn.AddTemp(ty))
	l.emit(ir.Load(dest, place.Base))
	return dest.Base
}

func (l *Lowerer) lowerAssignment(e *ast.Assignment) ir.Value {
	value := l.lowerExpr(e.Value)

	if e.Op != "=" {
		current := l.lowerExpr(e.Target)
		op, ok := binOpFor(e.Op[:len(e.Op)-1])
		if ok {
			value = l.assignTemp(ir.F64(), ir.BinaryRValue(op, current, value))
		}
	}

	if ident, ok := e.Target.(*ast.Identifier); ok {
		if local, ok := l.lookupLocal(ident.Name); ok {
			l.emit(ir.Assign(ir.PlaceFromLocal(local), ir.UseRValue(value)))
			return value
		}
		name := "zaco_global_set$" + ident.Name
		l.Module.AddExternFunction(name, []ir.IrType{l.valueType(value)}, ir.Void())
		l.emit(ir.Call(nil, ir.ValueFromConstant(ir.ConstantStr(name)), []ir.Value{value}))
		return value
	}

	place := l.lowerPlace(e.Target)
	l.emit(ir.Store(place.Base, value))
	return value
}

func (l *Lowerer) lowerArrayLiteral(e *ast.ArrayLiteral) ir.Value {
	elems := make([]ir.Value, len(e.Elements))
	for i, el := range e.Elements {
		elems[i] = l.lowerExpr(el)
	}
	return l.assignTemp(ir.Array(ir.Ptr()), ir.ArrayInitRValue(elems))
}

func (l *Lowerer) lowerObjectLiteral(e *ast.ObjectLiteral) ir.Value {
	// Anonymous object literals have no registered struct layout; they
	// lower as an opaque heap blob built field-by-field at runtime rather
	// than a StructInit, since StructInit requires a known StructId.
	obj := l.callRuntime("zaco_object_new", ir.Ptr())
	l.Module.AddExternFunction("zaco_object_set", []ir.IrType{ir.Ptr(), ir.Str(), ir.Ptr()}, ir.Void())
	for _, prop := range e.Properties {
		val := l.lowerExpr(prop.Value)
		l.Module.InternString(prop.Key)
		key := ir.ValueFromConstant(ir.ConstantStr(prop.Key))
		l.emit(ir.Call(nil, ir.ValueFromConstant(ir.ConstantStr("zaco_object_set")), []ir.Value{obj, key, val}))
	}
	return obj
}

// lowerFunctionExpr lowers a function expression into its own top-level
// IrFunction with a synthesised name, since MIR has no closure-capture
// representation; the value produced is a string constant naming it, the
// same representation resolveCallee uses for a direct callee. Free variables are not
// captured — function expressions in this language are expected to be
// used as plain callbacks, not closures over enclosing locals.
func (l *Lowerer) lowerFunctionExpr(e *ast.FunctionExpr) ir.Value {
	name := l.anonName("lambda")

	params := make([]ir.IrType, len(e.Params))
	paramNames := make([]string, len(e.Params))
	for i, p := range e.Params {
		params[i] = l.paramIrType(p)
		if ident, ok := p.Pattern.(*ast.IdentPattern); ok {
			paramNames[i] = ident.Name
		}
	}
	ret := l.convertIrType(e.Return)
	if e.IsAsync {
		ret = ir.Promise(ret)
	}

	id := l.Module.ReserveFuncId()
	l.funcIds[name] = id
	l.funcSigs[name] = ir.FuncSignature{Params: params, ReturnType: ret}

	decl := &ast.FuncDecl{Name: name, Params: e.Params, Return: e.Return, Body: e.Body, IsAsync: e.IsAsync}
	l.lowerFuncDecl(name, decl)

	return ir.ValueFromConstant(ir.ConstantStr(name))
}

func (l *Lowerer) lowerClone(e *ast.Clone) ir.Value {
	source := l.lowerExpr(e.Expr)
	dest := ir.PlaceFromTemp(l.fn.AddTemp(ir.Ptr()))
	l.emit(ir.Clone(dest, source))
	return dest.Base
}

// lowerRef lowers `&expr`/`&mut expr`. Both forms yield the same pointer
// value at the MIR level; mutability is a checker-level distinction that
// has no separate runtime representation once ownership has been verified.
func (l *Lowerer) lowerRef(e *ast.Ref) ir.Value {
	return l.lowerExpr(e.Expr)
}
