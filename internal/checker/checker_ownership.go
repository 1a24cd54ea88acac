package checker

import (
	"github.com/zacolang/zaco/internal/ast"
	"github.com/zacolang/zaco/internal/checkenv"
	"github.com/zacolang/zaco/internal/errs"
	"github.com/zacolang/zaco/internal/types"
)

// heapAllocated reports whether a value of type ty lives on the heap and
// therefore participates in move/borrow tracking. Primitive-typed bindings
// are copied on every read and never change ownership state.
func heapAllocated(ty types.Type) bool {
	switch ty.(type) {
	case *types.Array, *types.Tuple, *types.Object, *types.Class, *types.Interface:
		return true
	}
	return types.IsString(ty)
}

// checkUseOwnership enforces the read side of move semantics: using a
// Moved or Dropped binding is an error, and reading an Owned heap-typed
// binding by plain identifier moves it out, matching non-Copy semantics.
// Borrowed/MutBorrowed bindings are read through without changing state —
// the borrow itself was already recorded when it was taken.
func (c *Checker) checkUseOwnership(name string, info *checkenv.VarInfo, span ast.Span) {
	if !info.Ownership.Usable() {
		c.report(errs.UseAfterMove, "use of moved or dropped binding "+name, span)
		return
	}
	if info.Ownership == checkenv.Owned && heapAllocated(info.Type) {
		c.Env.UpdateOwnership(name, checkenv.Moved)
	}
}

// checkClone type-checks `clone expr`: the source keeps its current
// ownership state (cloning borrows the value rather than consuming it),
// and the clone itself is always a fresh Owned value of the same type.
func (c *Checker) checkClone(e *ast.Clone) types.Type {
	if ident, ok := e.Expr.(*ast.Identifier); ok {
		info, ok := c.Env.Lookup(ident.Name)
		if !ok {
			c.report(errs.UndefinedVariable, "undefined variable "+ident.Name, e.Span)
			return types.Unknown
		}
		if !info.Ownership.Usable() {
			c.report(errs.UseAfterMove, "clone of moved or dropped binding "+ident.Name, e.Span)
		}
		return info.Type
	}
	return c.checkExpr(e.Expr)
}

// checkRef type-checks `&expr`/`&mut expr`: the target transitions to
// Borrowed or MutBorrowed. A mutable borrow conflicting with any other
// outstanding borrow of the same binding is rejected. The binding keeps its
// borrowed state afterwards: nothing returns it to Owned when the scope
// that took the borrow ends; only a later assignment to it does.
func (c *Checker) checkRef(e *ast.Ref) types.Type {
	ident, ok := e.Expr.(*ast.Identifier)
	if !ok {
		return c.checkExpr(e.Expr)
	}
	info, ok := c.Env.Lookup(ident.Name)
	if !ok {
		c.report(errs.UndefinedVariable, "undefined variable "+ident.Name, e.Span)
		return types.Unknown
	}
	if !info.Ownership.Usable() {
		c.report(errs.UseAfterMove, "borrow of moved or dropped binding "+ident.Name, e.Span)
		return info.Type
	}

	next := checkenv.Borrowed
	if e.Mutable {
		next = checkenv.MutBorrowed
		if info.Ownership == checkenv.Borrowed || info.Ownership == checkenv.MutBorrowed {
			c.report(errs.BorrowConflict, "mutable borrow conflicts with outstanding borrow of "+ident.Name, e.Span)
		}
	} else if info.Ownership == checkenv.MutBorrowed {
		c.report(errs.BorrowConflict, "borrow conflicts with outstanding mutable borrow of "+ident.Name, e.Span)
	}

	c.Env.UpdateOwnership(ident.Name, next)
	return info.Type
}
