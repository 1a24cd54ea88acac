package lower

import (
	"github.com/zacolang/zaco/internal/ast"
	"github.com/zacolang/zaco/internal/ir"
)

func (l *Lowerer) lowerBlock(block *ast.BlockStmt) {
	l.pushScope()
	for _, stmt := range block.Stmts {
		if l.block.IsTerminated() {
			// Dead code after a terminating statement (return/break/
			// continue/throw): lower it into a fresh block that stays
			// unreachable so later passes can prune it, rather than
			// panicking on a double terminator.
			l.setBlock(l.newBlock())
		}
		l.lowerStmt(stmt)
	}
	l.popScope()
}

func (l *Lowerer) lowerStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		l.lowerExprDiscard(s.Expr)

	case *ast.VarDeclStmt:
		l.lowerVarDeclStmt(s)

	case *ast.ReturnStmt:
		if s.Value == nil {
			l.block.SetTerminator(ir.ReturnVoid())
			return
		}
		v := l.lowerExpr(s.Value)
		l.block.SetTerminator(ir.Return(v))

	case *ast.IfStmt:
		l.lowerIf(s)

	case *ast.ForStmt:
		l.lowerFor(s)

	case *ast.ForOfStmt:
		l.lowerForOf(s)

	case *ast.ForInStmt:
		l.lowerForIn(s)

	case *ast.WhileStmt:
		l.lowerWhile(s)

	case *ast.DoWhileStmt:
		l.lowerDoWhile(s)

	case *ast.BlockStmt:
		l.lowerBlock(s)

	case *ast.BreakStmt:
		if len(l.loopStack) > 0 {
			l.block.SetTerminator(ir.Jump(l.loopStack[len(l.loopStack)-1].breakTarget))
		}

	case *ast.ContinueStmt:
		if len(l.loopStack) > 0 {
			l.block.SetTerminator(ir.Jump(l.loopStack[len(l.loopStack)-1].continueTarget))
		}

	case *ast.ThrowStmt:
		v := l.lowerExpr(s.Expr)
		l.Module.AddExternFunction("zaco_throw", []ir.IrType{ir.Ptr()}, ir.Void())
		l.emit(ir.Call(nil, ir.ValueFromConstant(ir.ConstantStr("zaco_throw")), []ir.Value{v}))
		l.block.SetTerminator(ir.Unreachable())

	case *ast.TryStmt:
		// The MIR has no unwinding model; try/catch/finally lower as a
		// straight-line sequence and a thrown value simply propagates as
		// an abnormal return from zaco_throw. Structured exception
		// dispatch is out of scope for this backend.
		l.lowerBlock(s.Block)
		if s.Catch != nil {
			l.lowerBlock(s.Catch.Body)
		}
		if s.Finally != nil {
			l.lowerBlock(s.Finally)
		}

	case *ast.SwitchStmt:
		l.lowerSwitch(s)

	case *ast.LabeledStmt:
		l.lowerStmt(s.Stmt)

	case *ast.EmptyStmt:
		// nothing to lower
	}
}

func (l *Lowerer) lowerIf(s *ast.IfStmt) {
	cond := l.lowerExpr(s.Cond)

	thenBlock := l.newBlock()
	var elseBlock *ir.Block
	join := l.newBlock()

	elseTarget := join.Id
	if s.Else != nil {
		elseBlock = l.newBlock()
		elseTarget = elseBlock.Id
	}
	l.block.SetTerminator(ir.Branch(cond, thenBlock.Id, elseTarget))

	l.setBlock(thenBlock)
	l.lowerStmt(s.Then)
	if !l.block.IsTerminated() {
		l.block.SetTerminator(ir.Jump(join.Id))
	}

	if s.Else != nil {
		l.setBlock(elseBlock)
		l.lowerStmt(s.Else)
		if !l.block.IsTerminated() {
			l.block.SetTerminator(ir.Jump(join.Id))
		}
	}

	l.setBlock(join)
}

func (l *Lowerer) lowerWhile(s *ast.WhileStmt) {
	header := l.newBlock()
	body := l.newBlock()
	exit := l.newBlock()

	l.block.SetTerminator(ir.Jump(header.Id))

	l.setBlock(header)
	cond := l.lowerExpr(s.Cond)
	l.block.SetTerminator(ir.Branch(cond, body.Id, exit.Id))

	l.loopStack = append(l.loopStack, loopCtx{breakTarget: exit.Id, continueTarget: header.Id})
	l.setBlock(body)
	l.lowerStmt(s.Body)
	if !l.block.IsTerminated() {
		l.block.SetTerminator(ir.Jump(header.Id))
	}
	l.loopStack = l.loopStack[:len(l.loopStack)-1]

	l.setBlock(exit)
}

func (l *Lowerer) lowerDoWhile(s *ast.DoWhileStmt) {
	body := l.newBlock()
	cond := l.newBlock()
	exit := l.newBlock()

	l.block.SetTerminator(ir.Jump(body.Id))

	l.loopStack = append(l.loopStack, loopCtx{breakTarget: exit.Id, continueTarget: cond.Id})
	l.setBlock(body)
	l.lowerStmt(s.Body)
	if !l.block.IsTerminated() {
		l.block.SetTerminator(ir.Jump(cond.Id))
	}
	l.loopStack = l.loopStack[:len(l.loopStack)-1]

	l.setBlock(cond)
	condVal := l.lowerExpr(s.Cond)
	l.block.SetTerminator(ir.Branch(condVal, body.Id, exit.Id))

	l.setBlock(exit)
}

func (l *Lowerer) lowerFor(s *ast.ForStmt) {
	l.pushScope()
	defer l.popScope()

	if s.Init != nil {
		switch init := s.Init.(type) {
		case ast.ForInitVarDecl:
			l.lowerVarDeclStmt(init.Decl)
		case ast.ForInitExpr:
			l.lowerExprDiscard(init.Expr)
		}
	}

	header := l.newBlock()
	body := l.newBlock()
	update := l.newBlock()
	exit := l.newBlock()

	l.block.SetTerminator(ir.Jump(header.Id))

	l.setBlock(header)
	if s.Cond != nil {
		cond := l.lowerExpr(s.Cond)
		l.block.SetTerminator(ir.Branch(cond, body.Id, exit.Id))
	} else {
		l.block.SetTerminator(ir.Jump(body.Id))
	}

	l.loopStack = append(l.loopStack, loopCtx{breakTarget: exit.Id, continueTarget: update.Id})
	l.setBlock(body)
	l.lowerStmt(s.Body)
	if !l.block.IsTerminated() {
		l.block.SetTerminator(ir.Jump(update.Id))
	}
	l.loopStack = l.loopStack[:len(l.loopStack)-1]

	l.setBlock(update)
	if s.Update != nil {
		l.lowerExprDiscard(s.Update)
	}
	l.block.SetTerminator(ir.Jump(header.Id))

	l.setBlock(exit)
}

// lowerForOf lowers `for (binding of iterable) body` to a synthesised
// iterator walk: call the runtime's iterator-next helper each pass through
// the header, branch on its done flag, and bind the yielded value before
// running the body.
func (l *Lowerer) lowerForOf(s *ast.ForOfStmt) {
	l.pushScope()
	defer l.popScope()

	iterable := l.lowerExpr(s.Iterable)
	iter := l.callRuntime("zaco_iter_new", ir.Ptr(), iterable)

	header := l.newBlock()
	body := l.newBlock()
	exit := l.newBlock()

	l.block.SetTerminator(ir.Jump(header.Id))

	l.setBlock(header)
	done := l.callRuntime("zaco_iter_done", ir.Bool(), iter)
	l.block.SetTerminator(ir.Branch(done, exit.Id, body.Id))

	l.loopStack = append(l.loopStack, loopCtx{breakTarget: exit.Id, continueTarget: header.Id})
	l.setBlock(body)
	value := l.callRuntime("zaco_iter_next", ir.Ptr(), iter)
	l.bindLoopVar(s.Binding, value)
	l.lowerStmt(s.Body)
	if !l.block.IsTerminated() {
		l.block.SetTerminator(ir.Jump(header.Id))
	}
	l.loopStack = l.loopStack[:len(l.loopStack)-1]

	l.setBlock(exit)
}

// lowerForIn lowers `for (binding in obj) body` the same way as for-of but
// over the object's own-key iterator rather than its value iterator.
func (l *Lowerer) lowerForIn(s *ast.ForInStmt) {
	l.pushScope()
	defer l.popScope()

	obj := l.lowerExpr(s.Object)
	iter := l.callRuntime("zaco_keys_iter_new", ir.Ptr(), obj)

	header := l.newBlock()
	body := l.newBlock()
	exit := l.newBlock()

	l.block.SetTerminator(ir.Jump(header.Id))

	l.setBlock(header)
	done := l.callRuntime("zaco_iter_done", ir.Bool(), iter)
	l.block.SetTerminator(ir.Branch(done, exit.Id, body.Id))

	l.loopStack = append(l.loopStack, loopCtx{breakTarget: exit.Id, continueTarget: header.Id})
	l.setBlock(body)
	key := l.callRuntime("zaco_iter_next", ir.Str(), iter)
	l.bindLoopVar(s.Binding, key)
	l.lowerStmt(s.Body)
	if !l.block.IsTerminated() {
		l.block.SetTerminator(ir.Jump(header.Id))
	}
	l.loopStack = l.loopStack[:len(l.loopStack)-1]

	l.setBlock(exit)
}

func (l *Lowerer) bindLoopVar(p ast.Pattern, v ir.Value) {
	ident, ok := p.(*ast.IdentPattern)
	if !ok {
		return
	}
	local := l.fn.AddLocal(l.convertIrType(ident.Type), ident.Name)
	l.emit(ir.Assign(ir.PlaceFromLocal(local), ir.UseRValue(v)))
	l.declareLocal(ident.Name, local)
}

// callRuntime emits a call to a declared runtime extern and returns its
// result in a fresh temp of returnType. The extern's param types are taken
// from the already-lowered args themselves, since codegen needs a real
// signature (not an empty one) to build a matching LLVM function type.
func (l *Lowerer) callRuntime(name string, returnType ir.IrType, args ...ir.Value) ir.Value {
	paramTypes := make([]ir.IrType, len(args))
	for i, a := range args {
		paramTypes[i] = l.valueType(a)
	}
	l.Module.AddExternFunction(name, paramTypes, returnType)
	dest := ir.PlaceFromTemp(l.fn.AddTemp(returnType))
	l.emit(ir.Call(&dest, ir.ValueFromConstant(ir.ConstantStr(name)), args))
	return dest.Base
}

func (l *Lowerer) lowerSwitch(s *ast.SwitchStmt) {
	discriminant := l.lowerExpr(s.Discriminant)
	exit := l.newBlock()

	for _, kase := range s.Cases {
		if kase.Test == nil {
			// default arm: fall straight into its body in place
			l.lowerCaseBody(kase.Consequent, exit)
			continue
		}
		testVal := l.lowerExpr(kase.Test)
		eq := l.assignTemp(ir.Bool(), ir.BinaryRValue(ir.OpEq, discriminant, testVal))

		matchBlock := l.newBlock()
		nextBlock := l.newBlock()
		l.block.SetTerminator(ir.Branch(eq, matchBlock.Id, nextBlock.Id))

		l.setBlock(matchBlock)
		l.lowerCaseBody(kase.Consequent, exit)

		l.setBlock(nextBlock)
	}

	if !l.block.IsTerminated() {
		l.block.SetTerminator(ir.Jump(exit.Id))
	}
	l.setBlock(exit)
}

func (l *Lowerer) lowerCaseBody(stmts []ast.Stmt, exit *ir.Block) {
	l.loopStack = append(l.loopStack, loopCtx{breakTarget: exit.Id, continueTarget: exit.Id})
	for _, stmt := range stmts {
		if l.block.IsTerminated() {
			break
		}
		l.lowerStmt(stmt)
	}
	l.loopStack = l.loopStack[:len(l.loopStack)-1]
	if !l.block.IsTerminated() {
		l.block.SetTerminator(ir.Jump(exit.Id))
	}
}
