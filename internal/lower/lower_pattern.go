package lower

import (
	"github.com/zacolang/zaco/internal/ast"
	"github.com/zacolang/zaco/internal/ir"
)

// lowerVarDeclStmt lowers one `let`/`const`/`var`/`using` statement inside a
// function body: each declarator's initializer is lowered once, then bound
// to its pattern. `var` redeclaration of an existing local simply rebinds
// the name in the current scope to a fresh local, matching the checker's
// permissive treatment of `var`.
func (l *Lowerer) lowerVarDeclStmt(s *ast.VarDeclStmt) {
	for _, decl := range s.Declarations {
		var value ir.Value
		hasValue := decl.Init != nil
		if hasValue {
			value = l.lowerExpr(decl.Init)
		}
		l.bindPattern(decl.Pattern, value, hasValue)
	}
}

// bindPattern destructures value (when present) into fresh locals per
// pattern, in source order. An absent value (uninitialised declarator)
// only reaches IdentPattern, since destructuring with no source has
// nothing to draw from.
func (l *Lowerer) bindPattern(p ast.Pattern, value ir.Value, hasValue bool) {
	switch pat := p.(type) {
	case *ast.IdentPattern:
		local := l.fn.AddLocal(l.convertIrType(pat.Type), pat.Name)
		if hasValue {
			l.emit(ir.Assign(ir.PlaceFromLocal(local), ir.UseRValue(value)))
		}
		l.declareLocal(pat.Name, local)

	case *ast.ArrayPattern:
		for i, el := range pat.Elements {
			if el.Rest {
				// Rest elements bind a null placeholder, not the
				// remaining tail: there is no runtime slice-from-index
				// helper to build it.
				l.bindPattern(el.Pattern, ir.ValueFromConstant(ir.ConstantNull()), true)
				continue
			}
			elemVal := l.projectIndex(value, i)
			l.bindPattern(el.Pattern, elemVal, true)
		}

	case *ast.ObjectPattern:
		for _, prop := range pat.Properties {
			fieldVal := l.projectField(value, prop.Key)
			l.bindPattern(prop.Value, fieldVal, true)
		}

	case *ast.AssignmentPattern:
		l.bindAssignmentPattern(pat, value, hasValue)
	}
}

// projectIndex loads element i out of an array-typed value: the element
// address is computed explicitly since Load takes a bare pointer Value,
// not a Place, so there is nowhere for an index projection to ride along.
func (l *Lowerer) projectIndex(value ir.Value, i int) ir.Value {
	addr := l.elementAddress(value, ir.ValueFromConstant(ir.ConstantI64(int64(i))))
	dest := ir.PlaceFromTemp(l.fn.AddTemp(ir.Ptr()))
	l.emit(ir.Load(dest, addr))
	return dest.Base
}

// projectField loads a named field out of a struct-typed value. Destructuring
// patterns carry no static struct id, so the field offset can't be resolved
// here; this loads straight from the struct's own address, matching the
// field-not-found fallback fieldAddress uses elsewhere.
func (l *Lowerer) projectField(value ir.Value, name string) ir.Value {
	dest := ir.PlaceFromTemp(l.fn.AddTemp(ir.Ptr()))
	l.emit(ir.Load(dest, value))
	return dest.Base
}

// bindAssignmentPattern evaluates pat.Default only when the source
// subfield is undefined, tested via the runtime's is-undefined helper, then
// binds whichever value won through the usual pattern path.
func (l *Lowerer) bindAssignmentPattern(pat *ast.AssignmentPattern, value ir.Value, hasValue bool) {
	if !hasValue {
		def := l.lowerExpr(pat.Default)
		l.bindPattern(pat.Target, def, true)
		return
	}

	isUndefined := l.callRuntime("zaco_is_undefined", ir.Bool(), value)
	result := l.fn.AddTemp(ir.Ptr())

	defBlock := l.newBlock()
	join := l.newBlock()

	l.emit(ir.Assign(ir.PlaceFromTemp(result), ir.UseRValue(value)))
	l.block.SetTerminator(ir.Branch(isUndefined, defBlock.Id, join.Id))

	l.setBlock(defBlock)
	def := l.lowerExpr(pat.Default)
	l.emit(ir.Assign(ir.PlaceFromTemp(result), ir.UseRValue(def)))
	l.block.SetTerminator(ir.Jump(join.Id))

	l.setBlock(join)
	l.bindPattern(pat.Target, ir.ValueFromTemp(result), true)
}
