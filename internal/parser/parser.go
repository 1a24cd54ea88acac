// Package parser turns token streams from internal/lexer into internal/ast
// trees. Lexing and parsing are, per this compiler's own scope, "an external
// producer of AST nodes with spans" — this package is that producer: a
// pragmatic recursive-descent/Pratt parser for the ownership-annotated
// TypeScript-shaped surface syntax, not an exhaustive implementation of
// TypeScript grammar.
package parser

import (
	"fmt"

	"github.com/zacolang/zaco/internal/ast"
	"github.com/zacolang/zaco/internal/lexer"
)

// ParseError is a single syntax error with the offending token's position.
type ParseError struct {
	Message string
	Span    ast.Span
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Span.Start, e.Message)
}

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// Precedence levels, lowest to highest binding.
const (
	LOWEST int = iota
	ASSIGNMENT
	TERNARY
	NULLISH
	LOGICAL_OR
	LOGICAL_AND
	EQUALITY
	RELATIONAL
	ADDITIVE
	MULTIPLICATIVE
	UNARY
	CALL
	MEMBER
)

var precedences = map[lexer.TokenType]int{
	lexer.ASSIGN:       ASSIGNMENT,
	lexer.PLUS_ASSIGN:  ASSIGNMENT,
	lexer.MINUS_ASSIGN: ASSIGNMENT,
	lexer.STAR_ASSIGN:  ASSIGNMENT,
	lexer.SLASH_ASSIGN: ASSIGNMENT,
	lexer.QUESTION:     TERNARY,
	lexer.NULLISH:      NULLISH,
	lexer.OR:           LOGICAL_OR,
	lexer.AND:          LOGICAL_AND,
	lexer.EQ:           EQUALITY,
	lexer.NEQ:          EQUALITY,
	lexer.LT:           RELATIONAL,
	lexer.GT:           RELATIONAL,
	lexer.LTE:          RELATIONAL,
	lexer.GTE:          RELATIONAL,
	lexer.PLUS:         ADDITIVE,
	lexer.MINUS:        ADDITIVE,
	lexer.STAR:         MULTIPLICATIVE,
	lexer.SLASH:        MULTIPLICATIVE,
	lexer.PERCENT:      MULTIPLICATIVE,
	lexer.LPAREN:       CALL,
	lexer.DOT:          MEMBER,
	lexer.LBRACKET:     MEMBER,
}

// Parser consumes tokens from a Lexer and builds an ast.File via Pratt
// expression parsing plus recursive-descent statement/declaration parsing,
// the same split the teacher's own parser uses.
type Parser struct {
	l    *lexer.Lexer
	file string

	curToken  lexer.Token
	peekToken lexer.Token
	errors    []error

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
}

// New constructs a Parser over l. filename is used for diagnostics only.
func New(l *lexer.Lexer, filename string) *Parser {
	p := &Parser{l: l, file: filename}

	p.prefixParseFns = make(map[lexer.TokenType]prefixParseFn)
	p.registerPrefix(lexer.IDENT, p.parseIdentifier)
	p.registerPrefix(lexer.THIS, p.parseIdentifier)
	p.registerPrefix(lexer.NUMBER, p.parseNumberLiteral)
	p.registerPrefix(lexer.STRING, p.parseStringLiteral)
	p.registerPrefix(lexer.TEMPLATE, p.parseStringLiteral)
	p.registerPrefix(lexer.TRUE, p.parseBoolLiteral)
	p.registerPrefix(lexer.FALSE, p.parseBoolLiteral)
	p.registerPrefix(lexer.NULL, p.parseNullLiteral)
	p.registerPrefix(lexer.UNDEFINED, p.parseUndefinedLiteral)
	p.registerPrefix(lexer.MINUS, p.parseUnaryExpr)
	p.registerPrefix(lexer.NOT, p.parseUnaryExpr)
	p.registerPrefix(lexer.LPAREN, p.parseGroupedOrArrow)
	p.registerPrefix(lexer.LBRACKET, p.parseArrayLiteral)
	p.registerPrefix(lexer.LBRACE, p.parseObjectLiteral)
	p.registerPrefix(lexer.CLONE, p.parseCloneExpr)
	p.registerPrefix(lexer.AMP, p.parseRefExpr)
	p.registerPrefix(lexer.AMPMUT, p.parseRefExpr)
	p.registerPrefix(lexer.AWAIT, p.parseAwaitExpr)
	p.registerPrefix(lexer.FUNCTION, p.parseFunctionExprKeyword)
	p.registerPrefix(lexer.ASYNC, p.parseAsyncPrefix)
	p.registerPrefix(lexer.NEW, p.parseNewExpr)

	p.infixParseFns = make(map[lexer.TokenType]infixParseFn)
	for _, tt := range []lexer.TokenType{
		lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT,
		lexer.EQ, lexer.NEQ, lexer.LT, lexer.GT, lexer.LTE, lexer.GTE,
		lexer.AND, lexer.OR, lexer.NULLISH,
	} {
		p.registerInfix(tt, p.parseBinaryExpr)
	}
	p.registerInfix(lexer.LPAREN, p.parseCallExpr)
	p.registerInfix(lexer.DOT, p.parseMemberExpr)
	p.registerInfix(lexer.LBRACKET, p.parseIndexExpr)
	p.registerInfix(lexer.QUESTION, p.parseConditionalExpr)
	for _, tt := range []lexer.TokenType{
		lexer.ASSIGN, lexer.PLUS_ASSIGN, lexer.MINUS_ASSIGN,
		lexer.STAR_ASSIGN, lexer.SLASH_ASSIGN,
	} {
		p.registerInfix(tt, p.parseAssignExpr)
	}

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) registerPrefix(tt lexer.TokenType, fn prefixParseFn) { p.prefixParseFns[tt] = fn }
func (p *Parser) registerInfix(tt lexer.TokenType, fn infixParseFn)   { p.infixParseFns[tt] = fn }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curIs(tt lexer.TokenType) bool  { return p.curToken.Type == tt }
func (p *Parser) peekIs(tt lexer.TokenType) bool { return p.peekToken.Type == tt }

func (p *Parser) curPos() ast.Pos {
	return ast.Pos{File: p.file, Line: p.curToken.Line, Column: p.curToken.Column, Offset: p.curToken.Offset}
}

func (p *Parser) spanFrom(start ast.Pos) ast.Span {
	return ast.Span{Start: start, End: p.curPos()}
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.curIs(tt) {
		p.nextToken()
		return true
	}
	p.errorf("expected %s, got %s (%q)", tt, p.curToken.Type, p.curToken.Literal)
	return false
}

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, &ParseError{
		Message: fmt.Sprintf(format, args...),
		Span:    ast.Span{Start: p.curPos(), End: p.curPos()},
	})
}

// Errors returns every parse error accumulated so far.
func (p *Parser) Errors() []error { return p.errors }

// ParseFile parses a whole source file into an ast.File.
func (p *Parser) ParseFile() *ast.File {
	start := p.curPos()
	f := &ast.File{Path: p.file}

	for p.curIs(lexer.IMPORT) {
		f.Imports = append(f.Imports, p.parseImportDecl())
	}

	for !p.curIs(lexer.EOF) {
		decl := p.parseDecl()
		if decl != nil {
			f.Decls = append(f.Decls, decl)
		} else {
			p.nextToken()
		}
	}

	f.Span = p.spanFrom(start)
	return f
}

// Parse is the package-level convenience entry point: lex and parse src,
// returning either a well-formed ast.File or the accumulated parse errors.
func Parse(src, filename string) (*ast.File, error) {
	l := lexer.New(src, filename)
	p := New(l, filename)
	file := p.ParseFile()
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return file, nil
}

// parseExpr parses an expression, consuming tokens through the Pratt
// prefix/infix tables. On return curToken sits on the first token after the
// parsed expression — every caller (statement, declarator, argument list)
// relies on that to decide what follows without a further lookahead.
func (p *Parser) parseExpr(precedence int) ast.Expr {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.errorf("no prefix parse function for %s (%q)", p.curToken.Type, p.curToken.Literal)
		p.nextToken()
		return nil
	}
	left := prefix()

	for precedence < p.curPrecedence() {
		infix := p.infixParseFns[p.curToken.Type]
		if infix == nil {
			return left
		}
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expr {
	start := p.curPos()
	name := p.curToken.Literal
	p.nextToken()
	return &ast.Identifier{Name: name, Span: p.spanFrom(start)}
}

func (p *Parser) parseNumberLiteral() ast.Expr {
	start := p.curPos()
	var v float64
	fmt.Sscanf(p.curToken.Literal, "%g", &v)
	p.nextToken()
	return &ast.Literal{Kind: ast.LitExprNumber, Value: v, Span: p.spanFrom(start)}
}

func (p *Parser) parseStringLiteral() ast.Expr {
	start := p.curPos()
	lit := p.curToken.Literal
	p.nextToken()
	return &ast.Literal{Kind: ast.LitExprString, Value: lit, Span: p.spanFrom(start)}
}

func (p *Parser) parseBoolLiteral() ast.Expr {
	start := p.curPos()
	v := p.curIs(lexer.TRUE)
	p.nextToken()
	return &ast.Literal{Kind: ast.LitExprBoolean, Value: v, Span: p.spanFrom(start)}
}

func (p *Parser) parseNullLiteral() ast.Expr {
	start := p.curPos()
	p.nextToken()
	return &ast.Literal{Kind: ast.LitExprNull, Value: nil, Span: p.spanFrom(start)}
}

func (p *Parser) parseUndefinedLiteral() ast.Expr {
	start := p.curPos()
	p.nextToken()
	return &ast.Literal{Kind: ast.LitExprUndefined, Value: nil, Span: p.spanFrom(start)}
}

func (p *Parser) parseUnaryExpr() ast.Expr {
	start := p.curPos()
	op := p.curToken.Literal
	p.nextToken()
	operand := p.parseExpr(UNARY)
	return &ast.UnaryOp{Op: op, Expr: operand, Span: p.spanFrom(start)}
}

func (p *Parser) parseCloneExpr() ast.Expr {
	start := p.curPos()
	p.nextToken()
	inner := p.parseExpr(UNARY)
	return &ast.Clone{Expr: inner, Span: p.spanFrom(start)}
}

func (p *Parser) parseRefExpr() ast.Expr {
	start := p.curPos()
	mutable := p.curIs(lexer.AMPMUT)
	p.nextToken()
	inner := p.parseExpr(UNARY)
	return &ast.Ref{Mutable: mutable, Expr: inner, Span: p.spanFrom(start)}
}

func (p *Parser) parseAwaitExpr() ast.Expr {
	start := p.curPos()
	p.nextToken()
	inner := p.parseExpr(UNARY)
	return &ast.Await{Expr: inner, Span: p.spanFrom(start)}
}

func (p *Parser) parseNewExpr() ast.Expr {
	// `new Foo(args)` has no dedicated surface node; it lowers through the
	// same Call shape as a plain constructor invocation.
	p.nextToken()
	return p.parseExpr(CALL)
}

func (p *Parser) parseBinaryExpr(left ast.Expr) ast.Expr {
	start := left.Position().Start
	op := p.curToken.Literal
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpr(precedence)
	return &ast.BinaryOp{Op: op, Left: left, Right: right, Span: ast.Span{Start: start, End: p.curPos()}}
}

func (p *Parser) parseAssignExpr(left ast.Expr) ast.Expr {
	start := left.Position().Start
	op := p.curToken.Literal
	p.nextToken()
	value := p.parseExpr(ASSIGNMENT - 1)
	return &ast.Assignment{Op: op, Target: left, Value: value, Span: ast.Span{Start: start, End: p.curPos()}}
}

func (p *Parser) parseConditionalExpr(cond ast.Expr) ast.Expr {
	start := cond.Position().Start
	p.nextToken()
	then := p.parseExpr(ASSIGNMENT)
	p.expect(lexer.COLON)
	els := p.parseExpr(ASSIGNMENT)
	return &ast.Conditional{Cond: cond, Then: then, Else: els, Span: ast.Span{Start: start, End: p.curPos()}}
}

func (p *Parser) parseCallExpr(callee ast.Expr) ast.Expr {
	start := callee.Position().Start
	args := p.parseExprList(lexer.RPAREN)
	return &ast.Call{Callee: callee, Args: args, Span: ast.Span{Start: start, End: p.curPos()}}
}

func (p *Parser) parseExprList(end lexer.TokenType) []ast.Expr {
	var list []ast.Expr
	p.nextToken() // skip opening delimiter
	if p.curIs(end) {
		p.nextToken()
		return list
	}
	list = append(list, p.parseExpr(ASSIGNMENT))
	for p.curIs(lexer.COMMA) {
		p.nextToken()
		list = append(list, p.parseExpr(ASSIGNMENT))
	}
	if !p.curIs(end) {
		p.errorf("expected %s, got %s (%q)", end, p.curToken.Type, p.curToken.Literal)
		return list
	}
	p.nextToken()
	return list
}

func (p *Parser) parseMemberExpr(obj ast.Expr) ast.Expr {
	start := obj.Position().Start
	p.nextToken() // skip '.'
	name := p.curToken.Literal
	p.nextToken() // skip identifier
	return &ast.Member{Object: obj, Property: name, Span: ast.Span{Start: start, End: p.curPos()}}
}

func (p *Parser) parseIndexExpr(obj ast.Expr) ast.Expr {
	start := obj.Position().Start
	p.nextToken()
	idx := p.parseExpr(LOWEST)
	if !p.expect(lexer.RBRACKET) {
		return nil
	}
	return &ast.Index{Object: obj, Index: idx, Span: ast.Span{Start: start, End: p.curPos()}}
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	start := p.curPos()
	elems := p.parseExprList(lexer.RBRACKET)
	return &ast.ArrayLiteral{Elements: elems, Span: p.spanFrom(start)}
}

func (p *Parser) parseObjectLiteral() ast.Expr {
	start := p.curPos()
	p.nextToken() // skip {
	var props []ast.ObjectProperty
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		key := p.curToken.Literal
		p.nextToken()
		p.expect(lexer.COLON)
		value := p.parseExpr(ASSIGNMENT)
		props = append(props, ast.ObjectProperty{Key: key, Value: value})
		if p.curIs(lexer.COMMA) {
			p.nextToken()
		}
	}
	p.expect(lexer.RBRACE)
	return &ast.ObjectLiteral{Properties: props, Span: p.spanFrom(start)}
}

// parseGroupedOrArrow disambiguates `(expr)` from an arrow function
// parameter list `(a: T, b: U) => body` by scanning ahead for `=>` after the
// matching close paren.
func (p *Parser) parseGroupedOrArrow() ast.Expr {
	if p.looksLikeArrowParams() {
		return p.parseArrowFunction()
	}
	p.nextToken()
	expr := p.parseExpr(LOWEST)
	p.expect(lexer.RPAREN)
	return expr
}

func (p *Parser) looksLikeArrowParams() bool {
	save := *p.l
	saveCur, savePeek := p.curToken, p.peekToken
	defer func() { p.l = &save; p.curToken, p.peekToken = saveCur, savePeek }()

	depth := 0
	for {
		if p.curIs(lexer.LPAREN) {
			depth++
		} else if p.curIs(lexer.RPAREN) {
			depth--
			if depth == 0 {
				if !p.peekIs(lexer.COLON) {
					return p.peekIs(lexer.ARROW)
				}
				// `(params): Ret => body`: skip the return annotation to
				// find the `=>`.
				p.nextToken()
				for {
					p.nextToken()
					switch p.curToken.Type {
					case lexer.ARROW:
						return true
					case lexer.SEMICOLON, lexer.COMMA, lexer.RPAREN, lexer.RBRACE, lexer.LBRACE, lexer.EOF:
						return false
					}
				}
			}
		} else if p.curIs(lexer.EOF) {
			return false
		}
		p.nextToken()
	}
}

func (p *Parser) parseArrowFunction() ast.Expr {
	start := p.curPos()
	params := p.parseParamList()
	var ret ast.TypeAnnotation
	if p.curIs(lexer.COLON) {
		p.nextToken()
		ret = p.parseTypeAnnotation()
	}
	p.expect(lexer.ARROW)

	var body *ast.BlockStmt
	if p.curIs(lexer.LBRACE) {
		body = p.parseBlockStmt()
	} else {
		exprStart := p.curPos()
		expr := p.parseExpr(ASSIGNMENT)
		body = &ast.BlockStmt{
			Stmts: []ast.Stmt{&ast.ReturnStmt{Value: expr, Span: p.spanFrom(exprStart)}},
			Span:  p.spanFrom(exprStart),
		}
	}
	return &ast.FunctionExpr{Params: params, Return: ret, Body: body, Span: p.spanFrom(start)}
}

func (p *Parser) parseFunctionExprKeyword() ast.Expr {
	start := p.curPos()
	p.nextToken() // skip 'function'
	if p.curIs(lexer.IDENT) {
		p.nextToken() // skip optional name
	}
	params := p.parseParamList()
	var ret ast.TypeAnnotation
	if p.curIs(lexer.COLON) {
		p.nextToken()
		ret = p.parseTypeAnnotation()
	}
	body := p.parseBlockStmt()
	return &ast.FunctionExpr{Params: params, Return: ret, Body: body, Span: p.spanFrom(start)}
}

func (p *Parser) parseAsyncPrefix() ast.Expr {
	p.nextToken() // skip 'async'
	expr := p.parseExpr(UNARY)
	if fn, ok := expr.(*ast.FunctionExpr); ok {
		fn.IsAsync = true
	}
	return expr
}
