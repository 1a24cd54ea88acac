package parser

import (
	"github.com/zacolang/zaco/internal/ast"
	"github.com/zacolang/zaco/internal/lexer"
)

// parseOwnershipPrefix consumes an optional `&`/`&mut`/`owned` marker
// preceding a binding pattern.
func (p *Parser) parseOwnershipPrefix() *ast.OwnershipAnnotation {
	start := p.curPos()
	switch {
	case p.curIs(lexer.AMP):
		p.nextToken()
		return &ast.OwnershipAnnotation{Kind: ast.OwnershipRef, Span: p.spanFrom(start)}
	case p.curIs(lexer.AMPMUT):
		p.nextToken()
		return &ast.OwnershipAnnotation{Kind: ast.OwnershipMutRef, Span: p.spanFrom(start)}
	case p.curIs(lexer.OWNED):
		p.nextToken()
		return &ast.OwnershipAnnotation{Kind: ast.OwnershipOwned, Span: p.spanFrom(start)}
	default:
		return nil
	}
}

// parsePattern parses a binding target: a plain identifier (optionally
// type- and ownership-annotated), or an array/object destructuring pattern.
func (p *Parser) parsePattern() ast.Pattern {
	ownership := p.parseOwnershipPrefix()

	switch {
	case p.curIs(lexer.LBRACKET):
		return p.parseArrayPattern()
	case p.curIs(lexer.LBRACE):
		return p.parseObjectPattern()
	default:
		return p.parseIdentPattern(ownership)
	}
}

func (p *Parser) parseIdentPattern(ownership *ast.OwnershipAnnotation) ast.Pattern {
	start := p.curPos()
	name := p.curToken.Literal
	p.nextToken()

	var typ ast.TypeAnnotation
	if p.curIs(lexer.COLON) {
		p.nextToken()
		typ = p.parseTypeAnnotation()
	}
	return &ast.IdentPattern{Name: name, Type: typ, Ownership: ownership, Span: p.spanFrom(start)}
}

func (p *Parser) parseArrayPattern() ast.Pattern {
	start := p.curPos()
	p.nextToken() // skip [
	var elems []ast.ArrayPatternElement
	for !p.curIs(lexer.RBRACKET) && !p.curIs(lexer.EOF) {
		rest := false
		if p.curIs(lexer.ELLIPSIS) {
			rest = true
			p.nextToken()
		}
		elems = append(elems, ast.ArrayPatternElement{Pattern: p.parsePattern(), Rest: rest})
		if p.curIs(lexer.COMMA) {
			p.nextToken()
		}
	}
	p.expect(lexer.RBRACKET)
	return &ast.ArrayPattern{Elements: elems, Span: p.spanFrom(start)}
}

func (p *Parser) parseObjectPattern() ast.Pattern {
	start := p.curPos()
	p.nextToken() // skip {
	var props []ast.ObjectPatternProperty
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		key := p.curToken.Literal
		p.nextToken()
		if p.curIs(lexer.COLON) {
			p.nextToken()
			props = append(props, ast.ObjectPatternProperty{Key: key, Value: p.parsePattern(), Shorthand: false})
		} else {
			props = append(props, ast.ObjectPatternProperty{
				Key:       key,
				Value:     &ast.IdentPattern{Name: key, Span: p.spanFrom(start)},
				Shorthand: true,
			})
		}
		if p.curIs(lexer.COMMA) {
			p.nextToken()
		}
	}
	p.expect(lexer.RBRACE)
	return &ast.ObjectPattern{Properties: props, Span: p.spanFrom(start)}
}

// parseParamList parses a parenthesized function parameter list, including
// each parameter's pattern, type annotation, and ownership marker.
func (p *Parser) parseParamList() []ast.Param {
	p.expect(lexer.LPAREN)
	var params []ast.Param
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		start := p.curPos()
		pat := p.parsePattern()
		params = append(params, ast.Param{Pattern: pat, Span: p.spanFrom(start)})
		if p.curIs(lexer.COMMA) {
			p.nextToken()
		}
	}
	p.expect(lexer.RPAREN)
	return params
}
