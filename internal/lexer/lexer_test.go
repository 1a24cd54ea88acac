package lexer

import "testing"

func TestNextTokenCoversFunctionDeclarationAndOwnership(t *testing.T) {
	input := `function add(a: number, b: &number): number {
  return a + b;
}
let x: number = clone y;
import { f } from "./mod";
// comment
x.y && x.z || x ?? 1
`
	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{FUNCTION, "function"},
		{IDENT, "add"},
		{LPAREN, "("},
		{IDENT, "a"},
		{COLON, ":"},
		{IDENT, "number"},
		{COMMA, ","},
		{IDENT, "b"},
		{COLON, ":"},
		{AMP, "&"},
		{IDENT, "number"},
		{RPAREN, ")"},
		{COLON, ":"},
		{IDENT, "number"},
		{LBRACE, "{"},
		{RETURN, "return"},
		{IDENT, "a"},
		{PLUS, "+"},
		{IDENT, "b"},
		{SEMICOLON, ";"},
		{RBRACE, "}"},
		{LET, "let"},
		{IDENT, "x"},
		{COLON, ":"},
		{IDENT, "number"},
		{ASSIGN, "="},
		{CLONE, "clone"},
		{IDENT, "y"},
		{SEMICOLON, ";"},
		{IMPORT, "import"},
		{LBRACE, "{"},
		{IDENT, "f"},
		{RBRACE, "}"},
		{FROM, "from"},
		{STRING, "./mod"},
		{SEMICOLON, ";"},
		{IDENT, "x"},
		{DOT, "."},
		{IDENT, "y"},
		{AND, "&&"},
		{IDENT, "x"},
		{DOT, "."},
		{IDENT, "z"},
		{OR, "||"},
		{IDENT, "x"},
		{NULLISH, "??"},
		{NUMBER, "1"},
		{EOF, ""},
	}

	l := New(input, "test.ts")
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%s, got=%s (literal %q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNextTokenAmpMutIsDistinctFromAmp(t *testing.T) {
	l := New("&mut x, &y", "test.ts")
	if tok := l.NextToken(); tok.Type != AMPMUT {
		t.Fatalf("expected AMPMUT, got %s", tok.Type)
	}
	if tok := l.NextToken(); tok.Type != IDENT {
		t.Fatalf("expected IDENT, got %s", tok.Type)
	}
	if tok := l.NextToken(); tok.Type != COMMA {
		t.Fatalf("expected COMMA, got %s", tok.Type)
	}
	if tok := l.NextToken(); tok.Type != AMP {
		t.Fatalf("expected AMP, got %s", tok.Type)
	}
}

func TestNextTokenSkipsLineAndBlockComments(t *testing.T) {
	l := New("x /* block */ // line\n y", "test.ts")
	if tok := l.NextToken(); tok.Type != IDENT || tok.Literal != "x" {
		t.Fatalf("expected x, got %s %q", tok.Type, tok.Literal)
	}
	if tok := l.NextToken(); tok.Type != IDENT || tok.Literal != "y" {
		t.Fatalf("expected y, got %s %q", tok.Type, tok.Literal)
	}
}
