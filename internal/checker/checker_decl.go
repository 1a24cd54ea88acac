package checker

import (
	"github.com/zacolang/zaco/internal/ast"
	"github.com/zacolang/zaco/internal/checkenv"
	"github.com/zacolang/zaco/internal/errs"
	"github.com/zacolang/zaco/internal/types"
)

func (c *Checker) checkDecl(decl ast.Decl) {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		c.checkFuncDecl(d)
	case *ast.ClassDecl:
		c.checkClassDecl(d)
	case *ast.InterfaceDecl:
		c.checkInterfaceDecl(d)
	case *ast.TypeAliasDecl:
		c.checkTypeAliasDecl(d)
	case *ast.EnumDecl:
		c.checkEnumDecl(d)
	case *ast.VarDecl:
		c.checkVarDeclStmt(d.Stmt, d.Span)
		if d.IsExported {
			c.exportDeclarators(d.Stmt)
		}
	}
}

func (c *Checker) funcType(d *ast.FuncDecl) *types.Function {
	params := make([]types.Type, len(d.Params))
	for i, p := range d.Params {
		params[i] = c.patternType(p.Pattern)
	}
	ret := convertAstType(d.Return)
	if d.IsAsync {
		if _, ok := ret.(*types.Promise); !ok {
			ret = &types.Promise{Inner: ret}
		}
	}
	return &types.Function{Params: params, Return: ret}
}

// patternType extracts the declared or inferred type of a parameter
// pattern. Only IdentPattern carries an explicit annotation at the
// parameter level; destructured parameters default to Unknown until the
// checker walks their declarators inside the function body.
func (c *Checker) patternType(p ast.Pattern) types.Type {
	if ident, ok := p.(*ast.IdentPattern); ok {
		return convertAstType(ident.Type)
	}
	return types.Unknown
}

func (c *Checker) checkFuncDecl(d *ast.FuncDecl) {
	fnType := c.funcType(d)
	c.Env.Declare(d.Name, checkenv.VarInfo{
		Type:          fnType,
		Ownership:     checkenv.Owned,
		IsMutable:     false,
		IsInitialized: true,
	})
	if d.IsExported {
		c.Env.ExportSymbol(d.Name, fnType)
	}

	c.Env.PushScope()
	for i, param := range d.Params {
		c.declarePattern(param.Pattern, fnType.Params[i], param.Span)
	}

	prevReturn, prevAsync := c.currentReturnType, c.inAsyncFunction
	c.currentReturnType = fnType.Return
	c.inAsyncFunction = d.IsAsync

	if d.Body != nil {
		c.checkBlockStmt(d.Body)
	}

	c.currentReturnType, c.inAsyncFunction = prevReturn, prevAsync
	c.Env.PopScope()
}

func (c *Checker) checkClassDecl(d *ast.ClassDecl) {
	fields := make([]types.ObjectProperty, len(d.Fields))
	for i, f := range d.Fields {
		fields[i] = types.ObjectProperty{Name: f.Name, Type: convertAstType(f.Type)}
	}
	methods := make([]types.ObjectProperty, len(d.Methods))
	for i, m := range d.Methods {
		methods[i] = types.ObjectProperty{Name: m.Name, Type: c.funcType(m.Func)}
	}
	classType := &types.Class{Name: d.Name, Fields: fields, Methods: methods}
	c.Env.DefineClass(d.Name, classType)

	if len(d.TypeParams) > 0 {
		names := make([]string, len(d.TypeParams))
		for i, tp := range d.TypeParams {
			names[i] = tp.Name
		}
		c.Env.DefineTypeParams(d.Name, names)
	}

	if d.IsExported {
		c.Env.ExportSymbol(d.Name, classType)
	}

	for _, m := range d.Methods {
		c.Env.PushScope()
		c.Env.Declare("this", checkenv.VarInfo{Type: classType, Ownership: checkenv.Owned, IsInitialized: true})
		mfType := c.funcType(m.Func)
		for i, param := range m.Func.Params {
			c.declarePattern(param.Pattern, mfType.Params[i], param.Span)
		}
		prevReturn, prevAsync := c.currentReturnType, c.inAsyncFunction
		c.currentReturnType = mfType.Return
		c.inAsyncFunction = m.Func.IsAsync
		if m.Func.Body != nil {
			c.checkBlockStmt(m.Func.Body)
		}
		c.currentReturnType, c.inAsyncFunction = prevReturn, prevAsync
		c.Env.PopScope()
	}
}

func (c *Checker) checkInterfaceDecl(d *ast.InterfaceDecl) {
	props := make([]types.ObjectProperty, len(d.Properties))
	for i, p := range d.Properties {
		props[i] = types.ObjectProperty{Name: p.Name, Type: convertAstType(p.Type), Optional: p.Optional}
	}
	ifaceType := &types.Interface{Name: d.Name, Properties: props}
	c.Env.DefineInterface(d.Name, ifaceType)
	if len(d.TypeParams) > 0 {
		names := make([]string, len(d.TypeParams))
		for i, tp := range d.TypeParams {
			names[i] = tp.Name
		}
		c.Env.DefineTypeParams(d.Name, names)
	}
	if d.IsExported {
		c.Env.ExportSymbol(d.Name, ifaceType)
	}
}

func (c *Checker) checkTypeAliasDecl(d *ast.TypeAliasDecl) {
	aliasType := convertAstType(d.Value)
	c.Env.DefineTypeAlias(d.Name, aliasType)
	if len(d.TypeParams) > 0 {
		names := make([]string, len(d.TypeParams))
		for i, tp := range d.TypeParams {
			names[i] = tp.Name
		}
		c.Env.DefineTypeParams(d.Name, names)
	}
	if d.IsExported {
		c.Env.ExportSymbol(d.Name, aliasType)
	}
}

func (c *Checker) checkEnumDecl(d *ast.EnumDecl) {
	enumType := &types.Enum{Name: d.Name, Members: d.Members}
	c.Env.DefineEnum(d.Name, enumType)
	if d.IsExported {
		c.Env.ExportSymbol(d.Name, enumType)
	}
}

func (c *Checker) exportDeclarators(stmt *ast.VarDeclStmt) {
	for _, decl := range stmt.Declarations {
		ident, ok := decl.Pattern.(*ast.IdentPattern)
		if !ok {
			continue
		}
		if info, ok := c.Env.Lookup(ident.Name); ok {
			c.Env.ExportSymbol(ident.Name, info.Type)
		}
	}
}

// declarePattern binds every identifier introduced by p to ty, used for
// function parameters where the pattern's own annotation (if any) has
// already been folded into ty by the caller.
func (c *Checker) declarePattern(p ast.Pattern, ty types.Type, span ast.Span) {
	switch pat := p.(type) {
	case *ast.IdentPattern:
		ownership := convertOwnership(pat.Ownership)
		c.Env.Declare(pat.Name, checkenv.VarInfo{
			Type:          ty,
			Ownership:     ownership,
			IsMutable:     true,
			IsInitialized: true,
		})
	case *ast.ArrayPattern:
		for _, el := range pat.Elements {
			c.declarePattern(el.Pattern, types.Unknown, span)
		}
	case *ast.ObjectPattern:
		for _, prop := range pat.Properties {
			c.declarePattern(prop.Value, types.Unknown, span)
		}
	case *ast.AssignmentPattern:
		c.declarePattern(pat.Target, ty, span)
	default:
		c.report(errs.GenericError, "unsupported binding pattern", span)
	}
}
