package parser

import (
	"github.com/zacolang/zaco/internal/ast"
	"github.com/zacolang/zaco/internal/lexer"
)

var primitiveTypeNames = map[string]ast.PrimitiveKind{
	"number":    ast.PrimNumber,
	"string":    ast.PrimString,
	"boolean":   ast.PrimBoolean,
	"void":      ast.PrimVoid,
	"null":      ast.PrimNull,
	"undefined": ast.PrimUndefined,
	"any":       ast.PrimAny,
	"never":     ast.PrimNever,
	"unknown":   ast.PrimUnknown,
}

// parseTypeAnnotation parses a type, handling the union/intersection infix
// forms after an atomic type has been parsed.
func (p *Parser) parseTypeAnnotation() ast.TypeAnnotation {
	t := p.parseAtomicType()
	if t == nil {
		return nil
	}
	for p.curIs(lexer.PIPE) {
		p.nextToken()
		rhs := p.parseAtomicType()
		t = &ast.UnionType{Members: []ast.TypeAnnotation{t, rhs}}
	}
	for p.curIs(lexer.AMP) {
		p.nextToken()
		rhs := p.parseAtomicType()
		t = &ast.IntersectionType{Members: []ast.TypeAnnotation{t, rhs}}
	}
	return t
}

func (p *Parser) parseAtomicType() ast.TypeAnnotation {
	start := p.curPos()

	var base ast.TypeAnnotation
	switch {
	case p.curIs(lexer.VOID), p.curIs(lexer.NULL), p.curIs(lexer.UNDEFINED):
		kind := primitiveTypeNames[p.curToken.Literal]
		p.nextToken()
		base = &ast.PrimitiveType{Kind: kind, Span: p.spanFrom(start)}
	case p.curIs(lexer.IDENT):
		if kind, ok := primitiveTypeNames[p.curToken.Literal]; ok {
			p.nextToken()
			base = &ast.PrimitiveType{Kind: kind, Span: p.spanFrom(start)}
		} else {
			base = p.parseNamedOrPromiseType(start)
		}
	case p.curIs(lexer.LBRACKET):
		base = p.parseTupleOrArrayBaseType(start)
	case p.curIs(lexer.LBRACE):
		base = p.parseObjectType(start)
	case p.curIs(lexer.LPAREN):
		base = p.parseFunctionType(start)
	default:
		p.errorf("expected type, got %s (%q)", p.curToken.Type, p.curToken.Literal)
		return nil
	}

	for p.curIs(lexer.LBRACKET) && p.peekIs(lexer.RBRACKET) {
		p.nextToken()
		p.nextToken()
		base = &ast.ArrayType{Elem: base, Span: p.spanFrom(start)}
	}
	return base
}

func (p *Parser) parseTupleOrArrayBaseType(start ast.Pos) ast.TypeAnnotation {
	p.nextToken() // skip [
	var elems []ast.TypeAnnotation
	for !p.curIs(lexer.RBRACKET) && !p.curIs(lexer.EOF) {
		elems = append(elems, p.parseTypeAnnotation())
		if p.curIs(lexer.COMMA) {
			p.nextToken()
		}
	}
	p.expect(lexer.RBRACKET)
	return &ast.TupleType{Elems: elems, Span: p.spanFrom(start)}
}

func (p *Parser) parseObjectType(start ast.Pos) ast.TypeAnnotation {
	p.nextToken() // skip {
	var props []ast.ObjectTypeProperty
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		name := p.curToken.Literal
		p.nextToken()
		optional := false
		if p.curIs(lexer.QUESTION) {
			optional = true
			p.nextToken()
		}
		p.expect(lexer.COLON)
		ty := p.parseTypeAnnotation()
		props = append(props, ast.ObjectTypeProperty{Name: name, Type: ty, Optional: optional})
		if p.curIs(lexer.COMMA) || p.curIs(lexer.SEMICOLON) {
			p.nextToken()
		}
	}
	p.expect(lexer.RBRACE)
	return &ast.ObjectType{Properties: props, Span: p.spanFrom(start)}
}

func (p *Parser) parseFunctionType(start ast.Pos) ast.TypeAnnotation {
	p.nextToken() // skip (
	var params []ast.TypeAnnotation
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		if p.curIs(lexer.IDENT) && p.peekIs(lexer.COLON) {
			p.nextToken()
			p.nextToken()
		}
		params = append(params, p.parseTypeAnnotation())
		if p.curIs(lexer.COMMA) {
			p.nextToken()
		}
	}
	p.expect(lexer.RPAREN)
	p.expect(lexer.ARROW)
	ret := p.parseTypeAnnotation()
	return &ast.FunctionType{Params: params, Return: ret, Span: p.spanFrom(start)}
}

func (p *Parser) parseNamedOrPromiseType(start ast.Pos) ast.TypeAnnotation {
	name := p.curToken.Literal
	p.nextToken()
	var typeArgs []ast.TypeAnnotation
	if p.curIs(lexer.LT) {
		p.nextToken()
		for !p.curIs(lexer.GT) && !p.curIs(lexer.EOF) {
			typeArgs = append(typeArgs, p.parseTypeAnnotation())
			if p.curIs(lexer.COMMA) {
				p.nextToken()
			}
		}
		p.expect(lexer.GT)
	}
	if name == "Promise" && len(typeArgs) == 1 {
		return &ast.PromiseType{Inner: typeArgs[0], Span: p.spanFrom(start)}
	}
	return &ast.TypeRefType{Name: name, TypeArgs: typeArgs, Span: p.spanFrom(start)}
}
