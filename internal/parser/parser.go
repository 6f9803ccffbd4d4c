// Package parser implements the recursive-descent parser that turns a
// Jusu++ token vector into an AST.
package parser

import (
	"fmt"
	"strconv"

	"github.com/Francis589-png/JUSUPLUSPLUS/internal/ast"
	"github.com/Francis589-png/JUSUPLUSPLUS/pkg/token"
)

// ParseError is a syntax error detected while parsing, carrying the
// offending line for the "[Line N] message" reporting convention.
type ParseError struct {
	Message string
	Line    int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[Line %d] %s", e.Line, e.Message)
}

// Parser consumes a token vector with one-token lookahead plus a helper
// for inspecting the token that follows the current one.
type Parser struct {
	tokens []token.Token
	pos    int
}

// New creates a Parser over tokens, as produced by lexer.Tokenize.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses the full token stream into a Program.
func Parse(tokens []token.Token) (*ast.Program, error) {
	p := New(tokens)
	return p.ParseProgram()
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(offset int) token.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

// peekNext inspects the token immediately following the current one.
func (p *Parser) peekNext() token.Token {
	return p.peekAt(1)
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) errf(format string, args ...any) error {
	return &ParseError{Message: fmt.Sprintf(format, args...), Line: p.cur().Pos.Line}
}

func (p *Parser) skipNewlines() {
	for p.cur().Type == token.NEWLINE {
		p.advance()
	}
}

func (p *Parser) expectNewline() error {
	if p.cur().Type != token.NEWLINE && p.cur().Type != token.EOF {
		return p.errf("expected newline, got %q", p.cur().Literal)
	}
	p.skipNewlines()
	return nil
}

func (p *Parser) isPunct(lit string) bool {
	t := p.cur()
	return t.Type == token.PUNCTUATION && t.Literal == lit
}

func (p *Parser) isOp(lit string) bool {
	t := p.cur()
	return t.Type == token.OPERATOR && t.Literal == lit
}

func (p *Parser) isKeyword(lit string) bool {
	t := p.cur()
	return t.Type == token.KEYWORD && t.Literal == lit
}

func (p *Parser) expectPunct(lit string) error {
	if !p.isPunct(lit) {
		return p.errf("expected %q, got %q", lit, p.cur().Literal)
	}
	p.advance()
	return nil
}

func (p *Parser) expectKeyword(lit string) error {
	if !p.isKeyword(lit) {
		return p.errf("expected %q, got %q", lit, p.cur().Literal)
	}
	p.advance()
	return nil
}

func (p *Parser) expectIdentifier() (token.Token, error) {
	if p.cur().Type != token.IDENTIFIER {
		return token.Token{}, p.errf("expected identifier, got %q", p.cur().Literal)
	}
	return p.advance(), nil
}

// ParseProgram parses the top-level statement sequence, tolerating
// leading/trailing newlines between statements.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	p.skipNewlines()
	var statements []ast.Node
	for p.cur().Type != token.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
		p.skipNewlines()
	}
	return ast.NewProgram(statements), nil
}

func (p *Parser) parseStatement() (ast.Node, error) {
	t := p.cur()
	switch {
	case t.Type == token.KEYWORD && t.Literal == "say":
		return p.parseSayStatement()
	case t.Type == token.KEYWORD && t.Literal == "if":
		return p.parseIfStatement()
	case t.Type == token.KEYWORD && t.Literal == "function":
		return p.parseFunctionDeclaration()
	case t.Type == token.KEYWORD && t.Literal == "return":
		return p.parseReturnStatement()
	case t.Type == token.IDENTIFIER && (p.peekNext().Type == token.KEYWORD && p.peekNext().Literal == "is"):
		return p.parseAssignment()
	case t.Type == token.IDENTIFIER && p.peekNext().Type == token.OPERATOR && p.peekNext().Literal == "=":
		return p.parseAssignment()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseSayStatement() (ast.Node, error) {
	tok := p.advance() // consume 'say'
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectNewline(); err != nil {
		return nil, err
	}
	return ast.NewSayStatement(tok.Pos, expr), nil
}

func (p *Parser) parseAssignment() (ast.Node, error) {
	nameTok, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if p.isKeyword("is") || p.isOp("=") {
		p.advance()
	} else {
		return nil, p.errf("expected \"is\" or \"=\", got %q", p.cur().Literal)
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectNewline(); err != nil {
		return nil, err
	}
	return ast.NewAssignment(nameTok.Pos, nameTok.Literal, value), nil
}

func (p *Parser) parseIfStatement() (ast.Node, error) {
	tok := p.advance() // consume 'if'
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(":"); err != nil {
		return nil, err
	}
	if err := p.expectNewline(); err != nil {
		return nil, err
	}

	then, err := p.parseBlockUntil("else", "end")
	if err != nil {
		return nil, err
	}

	var els []ast.Node
	if p.isKeyword("else") {
		p.advance()
		if err := p.expectPunct(":"); err != nil {
			return nil, err
		}
		if err := p.expectNewline(); err != nil {
			return nil, err
		}
		els, err = p.parseBlockUntil("end")
		if err != nil {
			return nil, err
		}
	}

	if err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	if err := p.expectNewline(); err != nil {
		return nil, err
	}
	return ast.NewIfStatement(tok.Pos, cond, then, els), nil
}

// parseBlockUntil parses statements until the current token is one of the
// given keyword terminators (not consumed).
func (p *Parser) parseBlockUntil(terminators ...string) ([]ast.Node, error) {
	var body []ast.Node
	p.skipNewlines()
	for {
		if p.cur().Type == token.KEYWORD {
			for _, term := range terminators {
				if p.cur().Literal == term {
					return body, nil
				}
			}
		}
		if p.cur().Type == token.EOF {
			return nil, p.errf("unexpected end of input inside block")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
		p.skipNewlines()
	}
}

func (p *Parser) parseFunctionDeclaration() (ast.Node, error) {
	tok := p.advance() // consume 'function'
	nameTok, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var params []string
	for !p.isPunct(")") {
		paramTok, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		params = append(params, paramTok.Literal)
		if p.isPunct(",") {
			p.advance()
		} else {
			break
		}
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	if err := p.expectPunct(":"); err != nil {
		return nil, err
	}
	if err := p.expectNewline(); err != nil {
		return nil, err
	}
	body, err := p.parseBlockUntil("end")
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	if err := p.expectNewline(); err != nil {
		return nil, err
	}
	return ast.NewFunctionDeclaration(tok.Pos, nameTok.Literal, params, body), nil
}

func (p *Parser) parseReturnStatement() (ast.Node, error) {
	tok := p.advance() // consume 'return'
	if p.cur().Type == token.NEWLINE || p.cur().Type == token.EOF {
		if err := p.expectNewline(); err != nil {
			return nil, err
		}
		return ast.NewReturnStatement(tok.Pos, nil), nil
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectNewline(); err != nil {
		return nil, err
	}
	return ast.NewReturnStatement(tok.Pos, value), nil
}

func (p *Parser) parseExpressionStatement() (ast.Node, error) {
	tok := p.cur()
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectNewline(); err != nil {
		return nil, err
	}
	return ast.NewExpressionStatement(tok.Pos, expr), nil
}

// Expression precedence, lowest to highest:
//
//	comparison -> additive -> multiplicative -> primary

var comparisonOps = map[string]bool{"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true}
var additiveOps = map[string]bool{"+": true, "-": true}
var multiplicativeOps = map[string]bool{"*": true, "/": true}

func (p *Parser) parseExpression() (ast.Node, error) {
	return p.parseComparison()
}

func (p *Parser) parseComparison() (ast.Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.cur().Type == token.OPERATOR && comparisonOps[p.cur().Literal] {
		opTok := p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryExpression(opTok.Pos, opTok.Literal, left, right)
	}
	return left, nil
}

func (p *Parser) parseAdditive() (ast.Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.cur().Type == token.OPERATOR && additiveOps[p.cur().Literal] {
		opTok := p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryExpression(opTok.Pos, opTok.Literal, left, right)
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.cur().Type == token.OPERATOR && multiplicativeOps[p.cur().Literal] {
		opTok := p.advance()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryExpression(opTok.Pos, opTok.Literal, left, right)
	}
	return left, nil
}

func (p *Parser) parsePrimary() (ast.Node, error) {
	t := p.cur()
	switch {
	case t.Type == token.NUMBER:
		p.advance()
		v, err := strconv.ParseFloat(t.Literal, 64)
		if err != nil {
			return nil, p.errf("invalid number literal %q", t.Literal)
		}
		return ast.NewNumberLiteral(t.Pos, v), nil
	case t.Type == token.STRING:
		p.advance()
		return ast.NewStringLiteral(t.Pos, t.Literal), nil
	case t.Type == token.KEYWORD && (t.Literal == "true" || t.Literal == "false"):
		p.advance()
		return ast.NewBooleanLiteral(t.Pos, t.Literal == "true"), nil
	case t.Type == token.PUNCTUATION && t.Literal == "(":
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return expr, nil
	case t.Type == token.PUNCTUATION && t.Literal == "{":
		return p.parseObjectLiteral()
	case t.Type == token.PUNCTUATION && t.Literal == "[":
		return p.parseArrayLiteral()
	case t.Type == token.IDENTIFIER:
		return p.parseIdentifierOrCall()
	default:
		return nil, p.errf("unexpected token %q", t.Literal)
	}
}

func (p *Parser) parseIdentifierOrCall() (ast.Node, error) {
	tok, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	name := tok.Literal
	for p.isPunct(".") {
		p.advance()
		seg, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		name += "." + seg.Literal
	}
	if p.isPunct("(") {
		args, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		return ast.NewCallExpression(tok.Pos, name, args), nil
	}
	return ast.NewIdentifier(tok.Pos, name), nil
}

func (p *Parser) parseArguments() ([]ast.Node, error) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var args []ast.Node
	for !p.isPunct(")") {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.isPunct(",") {
			p.advance()
		} else {
			break
		}
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseObjectLiteral() (ast.Node, error) {
	tok := p.advance() // consume '{'
	var pairs []ast.ObjectPair
	for !p.isPunct("}") {
		var key string
		switch {
		case p.cur().Type == token.STRING:
			key = p.advance().Literal
		case p.cur().Type == token.IDENTIFIER || p.cur().Type == token.KEYWORD:
			key = p.advance().Literal
		default:
			return nil, p.errf("expected object key, got %q", p.cur().Literal)
		}
		if err := p.expectPunct(":"); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, ast.ObjectPair{Key: key, Value: value})
		if p.isPunct(",") {
			p.advance()
		} else {
			break
		}
	}
	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	return ast.NewObjectLiteral(tok.Pos, pairs), nil
}

func (p *Parser) parseArrayLiteral() (ast.Node, error) {
	tok := p.advance() // consume '['
	var elems []ast.Node
	for !p.isPunct("]") {
		elem, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
		if p.isPunct(",") {
			p.advance()
		} else {
			break
		}
	}
	if err := p.expectPunct("]"); err != nil {
		return nil, err
	}
	return ast.NewArrayLiteral(tok.Pos, elems), nil
}
