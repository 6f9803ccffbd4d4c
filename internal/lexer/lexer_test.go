package lexer

import (
	"testing"

	"github.com/Francis589-png/JUSUPLUSPLUS/pkg/token"
)

func TestTokenizeBasicProgram(t *testing.T) {
	input := `name is "Alice"
age = 20 + 5
say "Hello " + name
`
	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
	}{
		{token.IDENTIFIER, "name"},
		{token.KEYWORD, "is"},
		{token.STRING, "Alice"},
		{token.NEWLINE, "\n"},
		{token.IDENTIFIER, "age"},
		{token.OPERATOR, "="},
		{token.NUMBER, "20"},
		{token.OPERATOR, "+"},
		{token.NUMBER, "5"},
		{token.NEWLINE, "\n"},
		{token.KEYWORD, "say"},
		{token.STRING, "Hello "},
		{token.OPERATOR, "+"},
		{token.IDENTIFIER, "name"},
		{token.NEWLINE, "\n"},
		{token.EOF, ""},
	}

	toks, err := New(input).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() returned error: %v", err)
	}
	if len(toks) != len(tests) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(tests), toks)
	}
	for i, tt := range tests {
		if toks[i].Type != tt.expectedType {
			t.Errorf("token[%d]: type = %s, want %s (literal %q)", i, toks[i].Type, tt.expectedType, toks[i].Literal)
		}
		if toks[i].Literal != tt.expectedLiteral {
			t.Errorf("token[%d]: literal = %q, want %q", i, toks[i].Literal, tt.expectedLiteral)
		}
	}
}

func TestTokenizeAlwaysEndsNewlineThenEOF(t *testing.T) {
	inputs := []string{"", "x", "x\n", "x\n\n\n"}
	for _, in := range inputs {
		toks, err := New(in).Tokenize()
		if err != nil {
			t.Fatalf("Tokenize(%q) returned error: %v", in, err)
		}
		n := len(toks)
		if n < 2 {
			t.Fatalf("Tokenize(%q) produced too few tokens: %v", in, toks)
		}
		if toks[n-1].Type != token.EOF {
			t.Errorf("Tokenize(%q): last token = %s, want EOF", in, toks[n-1].Type)
		}
		if toks[n-2].Type != token.NEWLINE {
			t.Errorf("Tokenize(%q): second-to-last token = %s, want NEWLINE", in, toks[n-2].Type)
		}
	}
}

func TestTokenizeKeywords(t *testing.T) {
	input := "say if else for while function return is to in true false null end"
	toks, err := New(input).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() returned error: %v", err)
	}
	for i, word := range []string{"say", "if", "else", "for", "while", "function", "return", "is", "to", "in", "true", "false", "null", "end"} {
		if toks[i].Type != token.KEYWORD {
			t.Errorf("token[%d] (%q): type = %s, want KEYWORD", i, word, toks[i].Type)
		}
	}
}

func TestTokenizeTwoCharOperatorsGreedy(t *testing.T) {
	input := "a == b != c <= d >= e += f -= g *= h /= i"
	toks, err := New(input).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() returned error: %v", err)
	}
	var ops []string
	for _, tok := range toks {
		if tok.Type == token.OPERATOR {
			ops = append(ops, tok.Literal)
		}
	}
	want := []string{"==", "!=", "<=", ">=", "+=", "-=", "*=", "/="}
	if len(ops) != len(want) {
		t.Fatalf("got operators %v, want %v", ops, want)
	}
	for i, op := range want {
		if ops[i] != op {
			t.Errorf("operator[%d] = %q, want %q", i, ops[i], op)
		}
	}
}

func TestTokenizeComment(t *testing.T) {
	input := "x = 1 # this is a comment\ny = 2\n"
	toks, err := New(input).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() returned error: %v", err)
	}
	for _, tok := range toks {
		if tok.Type == token.IDENTIFIER && (tok.Literal == "this" || tok.Literal == "comment") {
			t.Fatalf("comment text leaked into tokens: %v", toks)
		}
	}
}

func TestTokenizeStringEscapes(t *testing.T) {
	input := `"line\nbreak\ttab\\back\"quote'"` + "\n"
	toks, err := New(input).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() returned error: %v", err)
	}
	want := "line\nbreak\ttab\\back\"quote'"
	if toks[0].Literal != want {
		t.Errorf("string literal = %q, want %q", toks[0].Literal, want)
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, err := New(`"unterminated`).Tokenize()
	if err == nil {
		t.Fatal("expected an error for an unterminated string")
	}
	lexErr, ok := err.(*LexError)
	if !ok {
		t.Fatalf("expected *LexError, got %T", err)
	}
	if lexErr.Line != 1 {
		t.Errorf("LexError.Line = %d, want 1", lexErr.Line)
	}
}

func TestTokenizeIllegalCharacter(t *testing.T) {
	_, err := New("x = @").Tokenize()
	if err == nil {
		t.Fatal("expected an error for an illegal character")
	}
}

func TestTokenizeFloatingPointNumber(t *testing.T) {
	toks, err := New("3.14").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() returned error: %v", err)
	}
	if toks[0].Type != token.NUMBER || toks[0].Literal != "3.14" {
		t.Errorf("got %v, want NUMBER(3.14)", toks[0])
	}
}

func TestTokenizeDottedIdentifierIsTwoIdentifiersAndAPunctuation(t *testing.T) {
	// The lexer emits `.` as PUNCTUATION; the parser is responsible for
	// folding `a.b.c` into a single dotted Identifier/CallExpression name.
	toks, err := New("math.sqrt").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() returned error: %v", err)
	}
	wantTypes := []token.TokenType{token.IDENTIFIER, token.PUNCTUATION, token.IDENTIFIER, token.NEWLINE, token.EOF}
	for i, want := range wantTypes {
		if toks[i].Type != want {
			t.Errorf("token[%d].Type = %s, want %s", i, toks[i].Type, want)
		}
	}
}
