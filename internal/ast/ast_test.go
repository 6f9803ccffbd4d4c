package ast

import (
	"testing"

	"github.com/Francis589-png/JUSUPLUSPLUS/pkg/token"
)

var zeroPos = token.Position{}

func TestNodeKindsAreDistinct(t *testing.T) {
	nodes := []Node{
		NewProgram(nil),
		NewAssignment(zeroPos, "x", NewNumberLiteral(zeroPos, 1)),
		NewSayStatement(zeroPos, NewStringLiteral(zeroPos, "x")),
		NewIfStatement(zeroPos, NewBooleanLiteral(zeroPos, true), nil, nil),
		NewFunctionDeclaration(zeroPos, "f", nil, nil),
		NewReturnStatement(zeroPos, nil),
		NewExpressionStatement(zeroPos, NewIdentifier(zeroPos, "x")),
		NewNumberLiteral(zeroPos, 1),
		NewStringLiteral(zeroPos, "x"),
		NewBooleanLiteral(zeroPos, true),
		NewIdentifier(zeroPos, "x"),
		NewBinaryExpression(zeroPos, "+", NewNumberLiteral(zeroPos, 1), NewNumberLiteral(zeroPos, 2)),
		NewCallExpression(zeroPos, "f", nil),
		NewObjectLiteral(zeroPos, nil),
		NewArrayLiteral(zeroPos, nil),
	}
	seen := map[Kind]bool{}
	for _, n := range nodes {
		if seen[n.Kind()] {
			t.Errorf("duplicate Kind() %v for node %T", n.Kind(), n)
		}
		seen[n.Kind()] = true
	}
}

func TestPrintObjectLiteral(t *testing.T) {
	lit := NewObjectLiteral(zeroPos, []ObjectPair{
		{Key: "name", Value: NewStringLiteral(zeroPos, "Alice")},
		{Key: "age", Value: NewNumberLiteral(zeroPos, 20)},
	})
	assign := NewAssignment(zeroPos, "x", lit)
	got := Print(assign)
	want := `x is {name: "Alice", age: 20}` + "\n"
	if got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
}

func TestPrintArrayLiteral(t *testing.T) {
	lit := NewArrayLiteral(zeroPos, []Node{
		NewNumberLiteral(zeroPos, 1),
		NewNumberLiteral(zeroPos, 2),
		NewNumberLiteral(zeroPos, 3),
	})
	assign := NewAssignment(zeroPos, "x", lit)
	got := Print(assign)
	want := "x is [1, 2, 3]\n"
	if got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
}

func TestPrintIfWithoutElse(t *testing.T) {
	ifStmt := NewIfStatement(zeroPos, NewBooleanLiteral(zeroPos, true),
		[]Node{NewSayStatement(zeroPos, NewStringLiteral(zeroPos, "yes"))}, nil)
	got := Print(ifStmt)
	want := "if true:\n    say \"yes\"\nend\n"
	if got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
}

func TestPrintNestedBinaryExpressionIsFullyParenthesized(t *testing.T) {
	expr := NewBinaryExpression(zeroPos, "+",
		NewNumberLiteral(zeroPos, 2),
		NewBinaryExpression(zeroPos, "*", NewNumberLiteral(zeroPos, 3), NewNumberLiteral(zeroPos, 4)))
	got := Print(NewSayStatement(zeroPos, expr))
	want := "say (2 + (3 * 4))\n"
	if got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
}
