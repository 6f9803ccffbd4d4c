package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders node back into Jusu++ source text. It is used to verify
// that parsing a syntactically valid program produces an AST that
// round-trips through re-parsing into an equivalent tree.
func Print(node Node) string {
	var sb strings.Builder
	printNode(&sb, node, 0)
	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("    ", depth))
}

func printNode(sb *strings.Builder, node Node, depth int) {
	switch n := node.(type) {
	case *Program:
		for _, s := range n.Statements {
			printNode(sb, s, depth)
		}
	case *Assignment:
		indent(sb, depth)
		fmt.Fprintf(sb, "%s is %s\n", n.Name, printExpr(n.Value))
	case *SayStatement:
		indent(sb, depth)
		fmt.Fprintf(sb, "say %s\n", printExpr(n.Expression))
	case *IfStatement:
		indent(sb, depth)
		fmt.Fprintf(sb, "if %s:\n", printExpr(n.Condition))
		for _, s := range n.Then {
			printNode(sb, s, depth+1)
		}
		if n.Else != nil {
			indent(sb, depth)
			sb.WriteString("else:\n")
			for _, s := range n.Else {
				printNode(sb, s, depth+1)
			}
		}
		indent(sb, depth)
		sb.WriteString("end\n")
	case *FunctionDeclaration:
		indent(sb, depth)
		fmt.Fprintf(sb, "function %s(%s):\n", n.Name, strings.Join(n.Params, ", "))
		for _, s := range n.Body {
			printNode(sb, s, depth+1)
		}
		indent(sb, depth)
		sb.WriteString("end\n")
	case *ReturnStatement:
		indent(sb, depth)
		if n.Value == nil {
			sb.WriteString("return\n")
		} else {
			fmt.Fprintf(sb, "return %s\n", printExpr(n.Value))
		}
	case *ExpressionStatement:
		indent(sb, depth)
		fmt.Fprintf(sb, "%s\n", printExpr(n.Expression))
	default:
		indent(sb, depth)
		fmt.Fprintf(sb, "%s\n", printExpr(node))
	}
}

func printExpr(node Node) string {
	switch n := node.(type) {
	case *NumberLiteral:
		return strconv.FormatFloat(n.Value, 'g', -1, 64)
	case *StringLiteral:
		return strconv.Quote(n.Value)
	case *BooleanLiteral:
		if n.Value {
			return "true"
		}
		return "false"
	case *Identifier:
		return n.Name
	case *BinaryExpression:
		return fmt.Sprintf("(%s %s %s)", printExpr(n.Left), n.Operator, printExpr(n.Right))
	case *CallExpression:
		args := make([]string, len(n.Arguments))
		for i, a := range n.Arguments {
			args[i] = printExpr(a)
		}
		return fmt.Sprintf("%s(%s)", n.Callee, strings.Join(args, ", "))
	case *ObjectLiteral:
		parts := make([]string, len(n.Pairs))
		for i, p := range n.Pairs {
			parts[i] = fmt.Sprintf("%s: %s", p.Key, printExpr(p.Value))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *ArrayLiteral:
		parts := make([]string, len(n.Elements))
		for i, e := range n.Elements {
			parts[i] = printExpr(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return ""
	}
}
