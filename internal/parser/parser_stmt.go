package parser

import (
	"github.com/zacolang/zaco/internal/ast"
	"github.com/zacolang/zaco/internal/lexer"
)

func (p *Parser) parseStmt() ast.Stmt {
	switch p.curToken.Type {
	case lexer.LBRACE:
		return p.parseBlockStmt()
	case lexer.LET, lexer.CONST, lexer.VAR, lexer.USING:
		s := p.parseVarDeclStmt()
		p.skipSemicolon()
		return s
	case lexer.OWNED, lexer.AMP, lexer.AMPMUT:
		// `owned let x = ...` — the ownership marker precedes the decl kind
		// keyword rather than the binding itself at statement level.
		return p.parseOwnedVarDeclStmt()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.DO:
		return p.parseDoWhileStmt()
	case lexer.FOR:
		return p.parseForStmt()
	case lexer.BREAK:
		return p.parseBreakStmt()
	case lexer.CONTINUE:
		return p.parseContinueStmt()
	case lexer.THROW:
		return p.parseThrowStmt()
	case lexer.TRY:
		return p.parseTryStmt()
	case lexer.SWITCH:
		return p.parseSwitchStmt()
	case lexer.SEMICOLON:
		start := p.curPos()
		p.nextToken()
		return &ast.EmptyStmt{Span: p.spanFrom(start)}
	case lexer.IDENT:
		if p.peekIs(lexer.COLON) {
			return p.parseLabeledStmt()
		}
		return p.parseExprStmt()
	default:
		return p.parseExprStmt()
	}
}

// skipSemicolon consumes one optional trailing `;`.
func (p *Parser) skipSemicolon() {
	if p.curIs(lexer.SEMICOLON) {
		p.nextToken()
	}
}

func (p *Parser) parseBlockStmt() *ast.BlockStmt {
	start := p.curPos()
	p.expect(lexer.LBRACE)
	var stmts []ast.Stmt
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		stmts = append(stmts, p.parseStmt())
	}
	p.expect(lexer.RBRACE)
	return &ast.BlockStmt{Stmts: stmts, Span: p.spanFrom(start)}
}

func (p *Parser) varDeclKind() ast.VarDeclKind {
	switch p.curToken.Type {
	case lexer.CONST:
		return ast.VarConst
	case lexer.VAR:
		return ast.VarVar
	case lexer.USING:
		return ast.VarUsing
	default:
		return ast.VarLet
	}
}

func (p *Parser) parseVarDeclStmt() *ast.VarDeclStmt {
	start := p.curPos()
	kind := p.varDeclKind()
	p.nextToken()

	var decls []ast.Declarator
	for {
		pat := p.parsePattern()
		var init ast.Expr
		if p.curIs(lexer.ASSIGN) {
			p.nextToken()
			init = p.parseExpr(ASSIGNMENT)
		}
		decls = append(decls, ast.Declarator{Pattern: pat, Init: init})
		if p.curIs(lexer.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	return &ast.VarDeclStmt{Kind: kind, Declarations: decls, Span: p.spanFrom(start)}
}

// parseOwnedVarDeclStmt handles `owned let x = ...;` / `&mut let x = ...;`
// forms where the ownership marker precedes the decl keyword itself; it is
// attached to every declarator's pattern in the statement.
func (p *Parser) parseOwnedVarDeclStmt() ast.Stmt {
	start := p.curPos()
	ownership := p.parseOwnershipPrefix()
	s := p.parseVarDeclStmt()
	for i := range s.Declarations {
		if ip, ok := s.Declarations[i].Pattern.(*ast.IdentPattern); ok && ip.Ownership == nil {
			ip.Ownership = ownership
		}
	}
	s.Span = p.spanFrom(start)
	p.skipSemicolon()
	return s
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.curPos()
	p.nextToken()
	var value ast.Expr
	if !p.curIs(lexer.SEMICOLON) && !p.curIs(lexer.RBRACE) {
		value = p.parseExpr(LOWEST)
	}
	p.skipSemicolon()
	return &ast.ReturnStmt{Value: value, Span: p.spanFrom(start)}
}

func (p *Parser) parseCondParen() ast.Expr {
	p.expect(lexer.LPAREN)
	cond := p.parseExpr(LOWEST)
	p.expect(lexer.RPAREN)
	return cond
}

func (p *Parser) parseIfStmt() ast.Stmt {
	start := p.curPos()
	p.nextToken() // skip 'if'
	cond := p.parseCondParen()
	then := p.parseStmt()
	var els ast.Stmt
	if p.curIs(lexer.ELSE) {
		p.nextToken()
		els = p.parseStmt()
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: els, Span: p.spanFrom(start)}
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	start := p.curPos()
	p.nextToken()
	cond := p.parseCondParen()
	body := p.parseStmt()
	return &ast.WhileStmt{Cond: cond, Body: body, Span: p.spanFrom(start)}
}

func (p *Parser) parseDoWhileStmt() ast.Stmt {
	start := p.curPos()
	p.nextToken() // skip 'do'
	body := p.parseStmt()
	p.expect(lexer.WHILE)
	cond := p.parseCondParen()
	p.skipSemicolon()
	return &ast.DoWhileStmt{Body: body, Cond: cond, Span: p.spanFrom(start)}
}

// parseForStmt disambiguates classic `for(init;cond;update)`, `for(x of e)`,
// and `for(x in e)` by scanning the loop header for `of`/`in`.
func (p *Parser) parseForStmt() ast.Stmt {
	start := p.curPos()
	p.nextToken() // skip 'for'
	isAwait := false
	if p.curIs(lexer.AWAIT) {
		isAwait = true
		p.nextToken()
	}
	p.expect(lexer.LPAREN)

	declKeyword := p.curToken.Type
	hasDecl := declKeyword == lexer.LET || declKeyword == lexer.CONST || declKeyword == lexer.VAR
	if hasDecl {
		p.nextToken()
	}
	binding := p.parsePattern()

	switch p.curToken.Type {
	case lexer.OF:
		p.nextToken()
		iterable := p.parseExpr(LOWEST)
		p.expect(lexer.RPAREN)
		body := p.parseStmt()
		return &ast.ForOfStmt{Binding: binding, Iterable: iterable, Body: body, IsAwait: isAwait, Span: p.spanFrom(start)}
	case lexer.IN:
		p.nextToken()
		obj := p.parseExpr(LOWEST)
		p.expect(lexer.RPAREN)
		body := p.parseStmt()
		return &ast.ForInStmt{Binding: binding, Object: obj, Body: body, Span: p.spanFrom(start)}
	default:
		return p.parseClassicForStmt(start, declKeyword, hasDecl, binding)
	}
}

func (p *Parser) parseClassicForStmt(start ast.Pos, declKeyword lexer.TokenType, hasDecl bool, binding ast.Pattern) ast.Stmt {
	var init ast.ForInit
	if hasDecl {
		var decls []ast.Declarator
		var initExpr ast.Expr
		if p.curIs(lexer.ASSIGN) {
			p.nextToken()
			initExpr = p.parseExpr(ASSIGNMENT)
		}
		decls = append(decls, ast.Declarator{Pattern: binding, Init: initExpr})
		for p.curIs(lexer.COMMA) {
			p.nextToken()
			pat := p.parsePattern()
			var di ast.Expr
			if p.curIs(lexer.ASSIGN) {
				p.nextToken()
				di = p.parseExpr(ASSIGNMENT)
			}
			decls = append(decls, ast.Declarator{Pattern: pat, Init: di})
		}
		kind := ast.VarLet
		if declKeyword == lexer.CONST {
			kind = ast.VarConst
		} else if declKeyword == lexer.VAR {
			kind = ast.VarVar
		}
		init = ast.ForInitVarDecl{Decl: &ast.VarDeclStmt{Kind: kind, Declarations: decls}}
	} else if ip, ok := binding.(*ast.IdentPattern); ok {
		// Re-read the identifier as an expression for a bare `for(i = 0; ...)`.
		init = ast.ForInitExpr{Expr: &ast.Identifier{Name: ip.Name, Span: ip.Span}}
	}
	p.expect(lexer.SEMICOLON)

	var cond ast.Expr
	if !p.curIs(lexer.SEMICOLON) {
		cond = p.parseExpr(LOWEST)
	}
	p.expect(lexer.SEMICOLON)

	var update ast.Expr
	if !p.curIs(lexer.RPAREN) {
		update = p.parseExpr(LOWEST)
	}
	p.expect(lexer.RPAREN)

	body := p.parseStmt()
	return &ast.ForStmt{Init: init, Cond: cond, Update: update, Body: body, Span: p.spanFrom(start)}
}

func (p *Parser) parseBreakStmt() ast.Stmt {
	start := p.curPos()
	p.nextToken()
	label := ""
	if p.curIs(lexer.IDENT) {
		label = p.curToken.Literal
		p.nextToken()
	}
	p.skipSemicolon()
	return &ast.BreakStmt{Label: label, Span: p.spanFrom(start)}
}

func (p *Parser) parseContinueStmt() ast.Stmt {
	start := p.curPos()
	p.nextToken()
	label := ""
	if p.curIs(lexer.IDENT) {
		label = p.curToken.Literal
		p.nextToken()
	}
	p.skipSemicolon()
	return &ast.ContinueStmt{Label: label, Span: p.spanFrom(start)}
}

func (p *Parser) parseThrowStmt() ast.Stmt {
	start := p.curPos()
	p.nextToken()
	expr := p.parseExpr(LOWEST)
	p.skipSemicolon()
	return &ast.ThrowStmt{Expr: expr, Span: p.spanFrom(start)}
}

func (p *Parser) parseTryStmt() ast.Stmt {
	start := p.curPos()
	p.nextToken() // skip 'try'
	block := p.parseBlockStmt()

	var catch *ast.CatchClause
	if p.curIs(lexer.CATCH) {
		p.nextToken()
		var param *ast.IdentPattern
		if p.curIs(lexer.LPAREN) {
			p.nextToken()
			name := p.curToken.Literal
			pstart := p.curPos()
			p.nextToken()
			param = &ast.IdentPattern{Name: name, Span: p.spanFrom(pstart)}
			p.expect(lexer.RPAREN)
		}
		body := p.parseBlockStmt()
		catch = &ast.CatchClause{Param: param, Body: body}
	}

	var finally *ast.BlockStmt
	if p.curIs(lexer.FINALLY) {
		p.nextToken()
		finally = p.parseBlockStmt()
	}

	return &ast.TryStmt{Block: block, Catch: catch, Finally: finally, Span: p.spanFrom(start)}
}

func (p *Parser) parseSwitchStmt() ast.Stmt {
	start := p.curPos()
	p.nextToken() // skip 'switch'
	p.expect(lexer.LPAREN)
	disc := p.parseExpr(LOWEST)
	p.expect(lexer.RPAREN)
	p.expect(lexer.LBRACE)

	var cases []ast.SwitchCase
	for p.curIs(lexer.CASE) || p.curIs(lexer.DEFAULT) {
		var test ast.Expr
		if p.curIs(lexer.CASE) {
			p.nextToken()
			test = p.parseExpr(LOWEST)
		} else {
			p.nextToken()
		}
		p.expect(lexer.COLON)
		var body []ast.Stmt
		for !p.curIs(lexer.CASE) && !p.curIs(lexer.DEFAULT) && !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
			body = append(body, p.parseStmt())
		}
		cases = append(cases, ast.SwitchCase{Test: test, Consequent: body})
	}
	p.expect(lexer.RBRACE)
	return &ast.SwitchStmt{Discriminant: disc, Cases: cases, Span: p.spanFrom(start)}
}

func (p *Parser) parseLabeledStmt() ast.Stmt {
	start := p.curPos()
	label := p.curToken.Literal
	p.nextToken() // skip identifier
	p.nextToken() // skip ':'
	inner := p.parseStmt()
	return &ast.LabeledStmt{Label: label, Stmt: inner, Span: p.spanFrom(start)}
}

func (p *Parser) parseExprStmt() ast.Stmt {
	start := p.curPos()
	expr := p.parseExpr(LOWEST)
	p.skipSemicolon()
	return &ast.ExprStmt{Expr: expr, Span: p.spanFrom(start)}
}
