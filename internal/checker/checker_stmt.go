package checker

import (
	"fmt"

	"github.com/zacolang/zaco/internal/ast"
	"github.com/zacolang/zaco/internal/checkenv"
	"github.com/zacolang/zaco/internal/errs"
	"github.com/zacolang/zaco/internal/types"
)

func (c *Checker) checkStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		c.checkExpr(s.Expr)

	case *ast.VarDeclStmt:
		c.checkVarDeclStmt(s, s.Span)

	case *ast.ReturnStmt:
		if s.Value == nil {
			return
		}
		retTy := c.checkExpr(s.Value)
		if c.currentReturnType == nil {
			return
		}
		effective := c.currentReturnType
		if promise, ok := effective.(*types.Promise); ok {
			effective = promise.Inner
		}
		if !types.IsAssignable(retTy, effective, c.Env) {
			c.reportTypeMismatch(effective, retTy, s.Span)
		}

	case *ast.IfStmt:
		c.checkExpr(s.Cond)
		c.checkStmt(s.Then)
		if s.Else != nil {
			c.checkStmt(s.Else)
		}

	case *ast.ForStmt:
		c.Env.PushScope()
		if s.Init != nil {
			switch init := s.Init.(type) {
			case ast.ForInitVarDecl:
				c.checkVarDeclStmt(init.Decl, s.Span)
			case ast.ForInitExpr:
				c.checkExpr(init.Expr)
			}
		}
		if s.Cond != nil {
			c.checkExpr(s.Cond)
		}
		if s.Update != nil {
			c.checkExpr(s.Update)
		}
		c.checkStmt(s.Body)
		c.Env.PopScope()

	case *ast.ForInStmt:
		c.Env.PushScope()
		c.checkExpr(s.Object)
		c.declareLoopBinding(s.Binding)
		c.checkStmt(s.Body)
		c.Env.PopScope()

	case *ast.ForOfStmt:
		c.Env.PushScope()
		c.checkExpr(s.Iterable)
		c.declareLoopBinding(s.Binding)
		c.checkStmt(s.Body)
		c.Env.PopScope()

	case *ast.WhileStmt:
		c.checkExpr(s.Cond)
		c.checkStmt(s.Body)

	case *ast.DoWhileStmt:
		c.checkStmt(s.Body)
		c.checkExpr(s.Cond)

	case *ast.BlockStmt:
		c.checkBlockStmt(s)

	case *ast.BreakStmt, *ast.ContinueStmt, *ast.EmptyStmt:
		// nothing to check

	case *ast.ThrowStmt:
		c.checkExpr(s.Expr)

	case *ast.TryStmt:
		c.checkBlockStmt(s.Block)
		if s.Catch != nil {
			c.Env.PushScope()
			if s.Catch.Param != nil {
				c.Env.Declare(s.Catch.Param.Name, checkenv.VarInfo{
					Type:          types.Unknown,
					Ownership:     checkenv.Owned,
					IsMutable:     true,
					IsInitialized: true,
				})
			}
			c.checkBlockStmt(s.Catch.Body)
			c.Env.PopScope()
		}
		if s.Finally != nil {
			c.checkBlockStmt(s.Finally)
		}

	case *ast.SwitchStmt:
		c.checkExpr(s.Discriminant)
		for _, kase := range s.Cases {
			if kase.Test != nil {
				c.checkExpr(kase.Test)
			}
			for _, sub := range kase.Consequent {
				c.checkStmt(sub)
			}
		}

	case *ast.LabeledStmt:
		c.checkStmt(s.Stmt)

	default:
		c.report(errs.GenericError, fmt.Sprintf("unsupported statement %T", stmt), stmt.Position())
	}
}

func (c *Checker) checkBlockStmt(block *ast.BlockStmt) {
	c.Env.PushScope()
	for _, stmt := range block.Stmts {
		c.checkStmt(stmt)
	}
	c.Env.PopScope()
}

// declareLoopBinding binds a for-in/for-of loop variable. The element type
// isn't tracked separately from the iterable's own type yet, so the binding
// is declared Unknown; narrowing it to the iterable's element type belongs
// to the lowerer once array/iterator element types are threaded through.
func (c *Checker) declareLoopBinding(p ast.Pattern) {
	if ident, ok := p.(*ast.IdentPattern); ok {
		c.Env.Declare(ident.Name, checkenv.VarInfo{
			Type:          types.Unknown,
			Ownership:     checkenv.Owned,
			IsMutable:     true,
			IsInitialized: true,
		})
	}
}

func (c *Checker) checkVarDeclStmt(decl *ast.VarDeclStmt, span ast.Span) {
	isConst := decl.Kind == ast.VarConst

	for _, declarator := range decl.Declarations {
		ident, ok := declarator.Pattern.(*ast.IdentPattern)
		if !ok {
			if declarator.Init != nil {
				c.checkExpr(declarator.Init)
			}
			if assign, ok := declarator.Pattern.(*ast.AssignmentPattern); ok && assign.Default != nil {
				c.checkExpr(assign.Default)
			}
			continue
		}

		var ty types.Type
		switch {
		case declarator.Init != nil:
			initTy := c.checkExpr(declarator.Init)
			if ident.Type != nil {
				annotated := convertAstType(ident.Type)
				if !types.IsAssignable(initTy, annotated, c.Env) {
					c.reportTypeMismatch(annotated, initTy, span)
				}
				ty = annotated
			} else {
				ty = initTy
			}
		case ident.Type != nil:
			ty = convertAstType(ident.Type)
		default:
			ty = types.Unknown
		}

		ownership := convertOwnership(ident.Ownership)

		if decl.Kind != ast.VarVar && c.Env.HasInCurrentScope(ident.Name) {
			c.report(errs.DuplicateDeclaration, "duplicate declaration of "+ident.Name, span)
			continue
		}

		c.Env.Declare(ident.Name, checkenv.VarInfo{
			Type:          ty,
			Ownership:     ownership,
			IsMutable:     !isConst,
			IsInitialized: declarator.Init != nil,
		})
	}
}

func (c *Checker) reportTypeMismatch(expected, found types.Type, span ast.Span) {
	c.Diags.Add(errs.Newf("checker", errs.TypeMismatch, &span,
		"type mismatch: expected %s, found %s", expected.String(), found.String()).
		WithData("expected", expected.String()).
		WithData("found", found.String()))
}
