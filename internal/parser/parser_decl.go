package parser

import (
	"github.com/zacolang/zaco/internal/ast"
	"github.com/zacolang/zaco/internal/lexer"
)

func (p *Parser) parseImportDecl() *ast.ImportDecl {
	start := p.curPos()
	p.nextToken() // skip 'import'

	var symbols []string
	if p.curIs(lexer.LBRACE) {
		p.nextToken()
		for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
			symbols = append(symbols, p.curToken.Literal)
			p.nextToken()
			if p.curIs(lexer.COMMA) {
				p.nextToken()
			}
		}
		p.expect(lexer.RBRACE)
		p.expect(lexer.FROM)
	}

	path := p.curToken.Literal
	p.nextToken() // skip string literal
	p.skipSemicolon()
	return &ast.ImportDecl{Path: path, Symbols: symbols, Span: p.spanFrom(start)}
}

// parseDecl parses one top-level declaration, handling the `export` modifier
// uniformly across every declaration form.
func (p *Parser) parseDecl() ast.Decl {
	start := p.curPos()
	exported := false
	if p.curIs(lexer.EXPORT) {
		exported = true
		p.nextToken()
	}

	switch p.curToken.Type {
	case lexer.ASYNC:
		p.nextToken()
		d := p.parseFuncDecl(start, exported)
		d.IsAsync = true
		return d
	case lexer.FUNCTION:
		return p.parseFuncDecl(start, exported)
	case lexer.CLASS:
		return p.parseClassDecl(start, exported)
	case lexer.INTERFACE:
		return p.parseInterfaceDecl(start, exported)
	case lexer.TYPE:
		return p.parseTypeAliasDecl(start, exported)
	case lexer.ENUM:
		return p.parseEnumDecl(start, exported)
	case lexer.LET, lexer.CONST, lexer.VAR, lexer.USING:
		stmt := p.parseVarDeclStmt()
		p.skipSemicolon()
		return &ast.VarDecl{Stmt: stmt, IsExported: exported, Span: p.spanFrom(start)}
	case lexer.OWNED, lexer.AMP, lexer.AMPMUT:
		stmt := p.parseOwnedVarDeclStmt().(*ast.VarDeclStmt)
		return &ast.VarDecl{Stmt: stmt, IsExported: exported, Span: p.spanFrom(start)}
	default:
		p.errorf("expected a declaration, got %s (%q)", p.curToken.Type, p.curToken.Literal)
		return nil
	}
}

func (p *Parser) parseTypeParams() []ast.TypeParam {
	if !p.curIs(lexer.LT) {
		return nil
	}
	p.nextToken()
	var params []ast.TypeParam
	for !p.curIs(lexer.GT) && !p.curIs(lexer.EOF) {
		name := p.curToken.Literal
		p.nextToken()
		var constraint ast.TypeAnnotation
		if p.curIs(lexer.EXTENDS) {
			p.nextToken()
			constraint = p.parseTypeAnnotation()
		}
		params = append(params, ast.TypeParam{Name: name, Constraint: constraint})
		if p.curIs(lexer.COMMA) {
			p.nextToken()
		}
	}
	p.expect(lexer.GT)
	return params
}

func (p *Parser) parseFuncDecl(start ast.Pos, exported bool) *ast.FuncDecl {
	p.nextToken() // skip 'function'
	name := p.curToken.Literal
	p.nextToken()
	typeParams := p.parseTypeParams()
	params := p.parseParamList()

	var ret ast.TypeAnnotation
	if p.curIs(lexer.COLON) {
		p.nextToken()
		ret = p.parseTypeAnnotation()
	}
	body := p.parseBlockStmt()

	return &ast.FuncDecl{
		Name: name, TypeParams: typeParams, Params: params, Return: ret,
		Body: body, IsExported: exported, Span: p.spanFrom(start),
	}
}

func (p *Parser) parseClassDecl(start ast.Pos, exported bool) *ast.ClassDecl {
	p.nextToken() // skip 'class'
	name := p.curToken.Literal
	p.nextToken()
	typeParams := p.parseTypeParams()
	p.expect(lexer.LBRACE)

	var fields []ast.ClassField
	var methods []ast.ClassMethod
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		memberName := p.curToken.Literal
		p.nextToken()
		if p.curIs(lexer.LPAREN) {
			mstart := p.curPos()
			params := p.parseParamList()
			var ret ast.TypeAnnotation
			if p.curIs(lexer.COLON) {
				p.nextToken()
				ret = p.parseTypeAnnotation()
			}
			body := p.parseBlockStmt()
			methods = append(methods, ast.ClassMethod{
				Name: memberName,
				Func: &ast.FuncDecl{Name: memberName, Params: params, Return: ret, Body: body, Span: p.spanFrom(mstart)},
			})
			continue
		}
		p.expect(lexer.COLON)
		ty := p.parseTypeAnnotation()
		fields = append(fields, ast.ClassField{Name: memberName, Type: ty})
		p.skipSemicolon()
	}
	p.expect(lexer.RBRACE)

	return &ast.ClassDecl{
		Name: name, TypeParams: typeParams, Fields: fields, Methods: methods,
		IsExported: exported, Span: p.spanFrom(start),
	}
}

func (p *Parser) parseInterfaceDecl(start ast.Pos, exported bool) *ast.InterfaceDecl {
	p.nextToken() // skip 'interface'
	name := p.curToken.Literal
	p.nextToken()
	typeParams := p.parseTypeParams()
	p.expect(lexer.LBRACE)

	var props []ast.InterfaceProperty
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		propName := p.curToken.Literal
		p.nextToken()
		optional := false
		if p.curIs(lexer.QUESTION) {
			optional = true
			p.nextToken()
		}
		p.expect(lexer.COLON)
		ty := p.parseTypeAnnotation()
		props = append(props, ast.InterfaceProperty{Name: propName, Type: ty, Optional: optional})
		if p.curIs(lexer.COMMA) || p.curIs(lexer.SEMICOLON) {
			p.nextToken()
		}
	}
	p.expect(lexer.RBRACE)

	return &ast.InterfaceDecl{Name: name, TypeParams: typeParams, Properties: props, IsExported: exported, Span: p.spanFrom(start)}
}

func (p *Parser) parseTypeAliasDecl(start ast.Pos, exported bool) *ast.TypeAliasDecl {
	p.nextToken() // skip 'type'
	name := p.curToken.Literal
	p.nextToken()
	typeParams := p.parseTypeParams()
	p.expect(lexer.ASSIGN)
	value := p.parseTypeAnnotation()
	p.skipSemicolon()
	return &ast.TypeAliasDecl{Name: name, TypeParams: typeParams, Value: value, IsExported: exported, Span: p.spanFrom(start)}
}

func (p *Parser) parseEnumDecl(start ast.Pos, exported bool) *ast.EnumDecl {
	p.nextToken() // skip 'enum'
	name := p.curToken.Literal
	p.nextToken()
	p.expect(lexer.LBRACE)
	var members []string
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		members = append(members, p.curToken.Literal)
		p.nextToken()
		if p.curIs(lexer.COMMA) {
			p.nextToken()
		}
	}
	p.expect(lexer.RBRACE)
	return &ast.EnumDecl{Name: name, Members: members, IsExported: exported, Span: p.spanFrom(start)}
}
