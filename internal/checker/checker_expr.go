package checker

import (
	"fmt"

	"github.com/zacolang/zaco/internal/ast"
	"github.com/zacolang/zaco/internal/checkenv"
	"github.com/zacolang/zaco/internal/errs"
	"github.com/zacolang/zaco/internal/types"
)

// checkExpr infers and returns the type of expr, recording any diagnostics
// along the way. It never returns nil; unrecoverable expressions type as
// types.Unknown so the walk can keep going.
func (c *Checker) checkExpr(expr ast.Expr) types.Type {
	switch e := expr.(type) {
	case *ast.Identifier:
		return c.checkIdentifier(e)

	case *ast.Literal:
		return c.literalType(e)

	case *ast.BinaryOp:
		return c.checkBinaryOp(e)

	case *ast.UnaryOp:
		return c.checkExpr(e.Expr)

	case *ast.Conditional:
		c.checkExpr(e.Cond)
		thenTy := c.checkExpr(e.Then)
		elseTy := c.checkExpr(e.Else)
		return types.UnionOf(thenTy, elseTy)

	case *ast.Call:
		return c.checkCall(e)

	case *ast.Member:
		return c.checkMember(e)

	case *ast.Index:
		return c.checkIndex(e)

	case *ast.Assignment:
		return c.checkAssignment(e)

	case *ast.ArrayLiteral:
		return c.checkArrayLiteral(e)

	case *ast.ObjectLiteral:
		return c.checkObjectLiteral(e)

	case *ast.FunctionExpr:
		return c.checkFunctionExpr(e)

	case *ast.Await:
		inner := c.checkExpr(e.Expr)
		if promise, ok := inner.(*types.Promise); ok {
			return promise.Inner
		}
		return inner

	case *ast.Clone:
		return c.checkClone(e)

	case *ast.Ref:
		return c.checkRef(e)

	default:
		c.report(errs.GenericError, fmt.Sprintf("unsupported expression %T", expr), expr.Position())
		return types.Unknown
	}
}

func (c *Checker) literalType(lit *ast.Literal) types.Type {
	switch lit.Kind {
	case ast.LitExprNumber:
		return &types.Literal{Kind: types.LiteralNumber, Value: lit.Value}
	case ast.LitExprString:
		return &types.Literal{Kind: types.LiteralString, Value: lit.Value}
	case ast.LitExprBoolean:
		return &types.Literal{Kind: types.LiteralBoolean, Value: lit.Value}
	case ast.LitExprNull:
		return types.Null
	case ast.LitExprUndefined:
		return types.Undefined
	default:
		return types.Unknown
	}
}

func (c *Checker) checkIdentifier(id *ast.Identifier) types.Type {
	info, ok := c.Env.Lookup(id.Name)
	if !ok {
		c.report(errs.UndefinedVariable, "undefined variable "+id.Name, id.Span)
		return types.Unknown
	}
	c.checkUseOwnership(id.Name, info, id.Span)
	return info.Type
}

func (c *Checker) checkBinaryOp(e *ast.BinaryOp) types.Type {
	leftTy := c.checkExpr(e.Left)
	rightTy := c.checkExpr(e.Right)

	switch e.Op {
	case "&&", "||", "??":
		return types.UnionOf(leftTy, rightTy)
	case "==", "!=", "===", "!==", "<", "<=", ">", ">=":
		return types.Boolean
	case "+":
		if types.IsString(leftTy) || types.IsString(rightTy) {
			return types.StringT
		}
		return types.Number
	default:
		return types.Number
	}
}

func (c *Checker) checkCall(e *ast.Call) types.Type {
	calleeTy := c.checkExpr(e.Callee)
	argTys := make([]types.Type, len(e.Args))
	for i, arg := range e.Args {
		argTys[i] = c.checkExpr(arg)
	}

	fn, ok := calleeTy.(*types.Function)
	if !ok {
		if calleeTy == types.Any || calleeTy == types.Unknown {
			return types.Unknown
		}
		c.report(errs.NotCallable, "value is not callable", e.Span)
		return types.Unknown
	}

	if len(argTys) != len(fn.Params) {
		c.report(errs.ArityMismatch, fmt.Sprintf("expected %d arguments, got %d", len(fn.Params), len(argTys)), e.Span)
	}
	for i := 0; i < len(argTys) && i < len(fn.Params); i++ {
		if !types.IsAssignable(argTys[i], fn.Params[i], c.Env) {
			c.reportTypeMismatch(fn.Params[i], argTys[i], e.Args[i].Position())
		}
	}
	return fn.Return
}

// propertyLookup resolves prop against the set of named types that carry
// property tables: classes, interfaces, and structural object types.
func propertyLookup(ty types.Type, prop string) (types.Type, bool) {
	switch t := ty.(type) {
	case *types.Class:
		if fieldTy, ok := t.Field(prop); ok {
			return fieldTy, true
		}
		return t.Method(prop)
	case *types.Interface:
		return t.Property(prop)
	case *types.Object:
		return t.Property(prop)
	default:
		return nil, false
	}
}

func (c *Checker) checkMember(e *ast.Member) types.Type {
	objTy := c.checkExpr(e.Object)
	if objTy == types.Any || objTy == types.Unknown {
		return types.Unknown
	}
	propTy, ok := propertyLookup(objTy, e.Property)
	if !ok {
		c.report(errs.PropertyNotFound, "property "+e.Property+" not found on "+objTy.String(), e.Span)
		return types.Unknown
	}
	return propTy
}

func (c *Checker) checkIndex(e *ast.Index) types.Type {
	objTy := c.checkExpr(e.Object)
	c.checkExpr(e.Index)
	switch t := objTy.(type) {
	case *types.Array:
		return t.Elem
	case *types.Tuple:
		return types.UnionOf(t.Elems...)
	default:
		if objTy == types.Any || objTy == types.Unknown {
			return types.Unknown
		}
		c.report(errs.NotIndexable, "value is not indexable", e.Span)
		return types.Unknown
	}
}

func (c *Checker) checkAssignment(e *ast.Assignment) types.Type {
	valueTy := c.checkExpr(e.Value)

	if ident, ok := e.Target.(*ast.Identifier); ok {
		info, ok := c.Env.Lookup(ident.Name)
		if !ok {
			c.report(errs.UndefinedVariable, "undefined variable "+ident.Name, e.Span)
			return valueTy
		}
		if !info.IsMutable {
			c.report(errs.AssignToImmutable, "cannot assign to immutable binding "+ident.Name, e.Span)
		}
		if !types.IsAssignable(valueTy, info.Type, c.Env) {
			c.reportTypeMismatch(info.Type, valueTy, e.Span)
		}
		c.Env.UpdateOwnership(ident.Name, checkenv.Owned)
		return info.Type
	}

	targetTy := c.checkExpr(e.Target)
	if !types.IsAssignable(valueTy, targetTy, c.Env) {
		c.reportTypeMismatch(targetTy, valueTy, e.Span)
	}
	return targetTy
}

func (c *Checker) checkArrayLiteral(e *ast.ArrayLiteral) types.Type {
	if len(e.Elements) == 0 {
		return &types.Array{Elem: types.Unknown}
	}
	elemTys := make([]types.Type, len(e.Elements))
	for i, el := range e.Elements {
		elemTys[i] = c.checkExpr(el)
	}
	return &types.Array{Elem: types.UnionOf(elemTys...)}
}

func (c *Checker) checkObjectLiteral(e *ast.ObjectLiteral) types.Type {
	props := make([]types.ObjectProperty, len(e.Properties))
	for i, p := range e.Properties {
		props[i] = types.ObjectProperty{Name: p.Key, Type: c.checkExpr(p.Value)}
	}
	return &types.Object{Properties: props}
}

func (c *Checker) checkFunctionExpr(e *ast.FunctionExpr) types.Type {
	params := make([]types.Type, len(e.Params))
	c.Env.PushScope()
	for i, param := range e.Params {
		params[i] = c.patternType(param.Pattern)
		c.declarePattern(param.Pattern, params[i], param.Span)
	}

	ret := convertAstType(e.Return)
	if e.IsAsync {
		if _, ok := ret.(*types.Promise); !ok {
			ret = &types.Promise{Inner: ret}
		}
	}

	prevReturn, prevAsync := c.currentReturnType, c.inAsyncFunction
	c.currentReturnType = ret
	c.inAsyncFunction = e.IsAsync
	if e.Body != nil {
		c.checkBlockStmt(e.Body)
	}
	c.currentReturnType, c.inAsyncFunction = prevReturn, prevAsync
	c.Env.PopScope()

	return &types.Function{Params: params, Return: ret}
}
