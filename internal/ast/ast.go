// Package ast defines the abstract syntax tree produced by the Jusu++
// parser and consumed by the interpreter and both compilers.
package ast

import "github.com/Francis589-png/JUSUPLUSPLUS/pkg/token"

// Kind identifies the concrete shape of a Node. The set is closed: every
// node produced by the parser carries exactly one of these tags.
type Kind int

const (
	KindProgram Kind = iota
	KindAssignment
	KindSayStatement
	KindIfStatement
	KindFunctionDeclaration
	KindReturnStatement
	KindExpressionStatement
	KindNumberLiteral
	KindStringLiteral
	KindBooleanLiteral
	KindIdentifier
	KindBinaryExpression
	KindCallExpression
	KindObjectLiteral
	KindArrayLiteral
)

// Node is any element of the AST. Every node knows its own Kind and
// (optionally) the source position it was parsed from.
type Node interface {
	Kind() Kind
	Pos() token.Position
}

type base struct {
	pos token.Position
}

func (b base) Pos() token.Position { return b.pos }

// Program is the root node: an ordered sequence of statements.
type Program struct {
	base
	Statements []Node
}

func (*Program) Kind() Kind { return KindProgram }

// NewProgram builds a Program node from its statements.
func NewProgram(statements []Node) *Program {
	return &Program{Statements: statements}
}

// Assignment binds Value to Name in the current environment.
type Assignment struct {
	base
	Name  string
	Value Node
}

func (*Assignment) Kind() Kind { return KindAssignment }

// NewAssignment builds an Assignment node at pos.
func NewAssignment(pos token.Position, name string, value Node) *Assignment {
	return &Assignment{base: base{pos}, Name: name, Value: value}
}

// SayStatement prints the evaluated Expression followed by a newline.
type SayStatement struct {
	base
	Expression Node
}

func (*SayStatement) Kind() Kind { return KindSayStatement }

// NewSayStatement builds a SayStatement node at pos.
func NewSayStatement(pos token.Position, expr Node) *SayStatement {
	return &SayStatement{base: base{pos}, Expression: expr}
}

// IfStatement is a conditional with an optional else branch.
type IfStatement struct {
	base
	Condition Node
	Then      []Node
	Else      []Node // nil when there is no else branch
}

func (*IfStatement) Kind() Kind { return KindIfStatement }

// NewIfStatement builds an IfStatement node at pos.
func NewIfStatement(pos token.Position, cond Node, then, els []Node) *IfStatement {
	return &IfStatement{base: base{pos}, Condition: cond, Then: then, Else: els}
}

// FunctionDeclaration binds a callable value to Name.
type FunctionDeclaration struct {
	base
	Name   string
	Params []string
	Body   []Node
}

func (*FunctionDeclaration) Kind() Kind { return KindFunctionDeclaration }

// NewFunctionDeclaration builds a FunctionDeclaration node at pos.
func NewFunctionDeclaration(pos token.Position, name string, params []string, body []Node) *FunctionDeclaration {
	return &FunctionDeclaration{base: base{pos}, Name: name, Params: params, Body: body}
}

// ReturnStatement unwinds the current call with an optional Value; a nil
// Value means the call returns null.
type ReturnStatement struct {
	base
	Value Node
}

func (*ReturnStatement) Kind() Kind { return KindReturnStatement }

// NewReturnStatement builds a ReturnStatement node at pos.
func NewReturnStatement(pos token.Position, value Node) *ReturnStatement {
	return &ReturnStatement{base: base{pos}, Value: value}
}

// ExpressionStatement evaluates Expression for its side effects and
// discards the result.
type ExpressionStatement struct {
	base
	Expression Node
}

func (*ExpressionStatement) Kind() Kind { return KindExpressionStatement }

// NewExpressionStatement builds an ExpressionStatement node at pos.
func NewExpressionStatement(pos token.Position, expr Node) *ExpressionStatement {
	return &ExpressionStatement{base: base{pos}, Expression: expr}
}

// NumberLiteral is a double-precision numeric constant.
type NumberLiteral struct {
	base
	Value float64
}

func (*NumberLiteral) Kind() Kind { return KindNumberLiteral }

// NewNumberLiteral builds a NumberLiteral node at pos.
func NewNumberLiteral(pos token.Position, value float64) *NumberLiteral {
	return &NumberLiteral{base: base{pos}, Value: value}
}

// StringLiteral is a text constant.
type StringLiteral struct {
	base
	Value string
}

func (*StringLiteral) Kind() Kind { return KindStringLiteral }

// NewStringLiteral builds a StringLiteral node at pos.
func NewStringLiteral(pos token.Position, value string) *StringLiteral {
	return &StringLiteral{base: base{pos}, Value: value}
}

// BooleanLiteral is a true/false constant.
type BooleanLiteral struct {
	base
	Value bool
}

func (*BooleanLiteral) Kind() Kind { return KindBooleanLiteral }

// NewBooleanLiteral builds a BooleanLiteral node at pos.
func NewBooleanLiteral(pos token.Position, value bool) *BooleanLiteral {
	return &BooleanLiteral{base: base{pos}, Value: value}
}

// Identifier names a binding, possibly dotted (e.g. "math.pi").
type Identifier struct {
	base
	Name string
}

func (*Identifier) Kind() Kind { return KindIdentifier }

// NewIdentifier builds an Identifier node at pos.
func NewIdentifier(pos token.Position, name string) *Identifier {
	return &Identifier{base: base{pos}, Name: name}
}

// BinaryExpression applies a two-operand operator.
type BinaryExpression struct {
	base
	Operator string
	Left     Node
	Right    Node
}

func (*BinaryExpression) Kind() Kind { return KindBinaryExpression }

// NewBinaryExpression builds a BinaryExpression node at pos.
func NewBinaryExpression(pos token.Position, op string, left, right Node) *BinaryExpression {
	return &BinaryExpression{base: base{pos}, Operator: op, Left: left, Right: right}
}

// CallExpression invokes Callee (possibly a dotted name) with Arguments.
type CallExpression struct {
	base
	Callee    string
	Arguments []Node
}

func (*CallExpression) Kind() Kind { return KindCallExpression }

// NewCallExpression builds a CallExpression node at pos.
func NewCallExpression(pos token.Position, callee string, args []Node) *CallExpression {
	return &CallExpression{base: base{pos}, Callee: callee, Arguments: args}
}

// ObjectPair is one key/value entry of an ObjectLiteral, keys rendered in
// source order.
type ObjectPair struct {
	Key   string
	Value Node
}

// ObjectLiteral is an ordered set of key/value pairs.
type ObjectLiteral struct {
	base
	Pairs []ObjectPair
}

func (*ObjectLiteral) Kind() Kind { return KindObjectLiteral }

// NewObjectLiteral builds an ObjectLiteral node at pos.
func NewObjectLiteral(pos token.Position, pairs []ObjectPair) *ObjectLiteral {
	return &ObjectLiteral{base: base{pos}, Pairs: pairs}
}

// ArrayLiteral is an ordered sequence of element expressions.
type ArrayLiteral struct {
	base
	Elements []Node
}

func (*ArrayLiteral) Kind() Kind { return KindArrayLiteral }

// NewArrayLiteral builds an ArrayLiteral node at pos.
func NewArrayLiteral(pos token.Position, elements []Node) *ArrayLiteral {
	return &ArrayLiteral{base: base{pos}, Elements: elements}
}
