package ast

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented outline of node to w, one node per line.
func Fprint(w io.Writer, node Node) error {
	var err error
	depth := 0
	Inspect(node, func(n Node) bool {
		if err != nil {
			return false
		}
		if n == nil {
			depth--
			return false
		}
		_, err = fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), describe(n))
		depth++
		return true
	})
	return err
}

func describe(n Node) string {
	switch n := n.(type) {
	case *Program:
		return fmt.Sprintf("Program (%d statements)", len(n.Statements))
	case *BinaryExpression:
		return fmt.Sprintf("Binary %s", n.Token.Literal)
	case *UnaryExpression:
		return fmt.Sprintf("Unary %s", n.Token.Literal)
	case *LiteralExpression:
		return fmt.Sprintf("Literal %s", n.Token.Literal)
	case *VariableExpression:
		return fmt.Sprintf("Variable %s", n.Name)
	case *CallExpression:
		return fmt.Sprintf("Call %s (line %d)", n.Function, n.Token.Line)
	case *GroupingExpression:
		return "Grouping"
	case *ExpressionStatement:
		return fmt.Sprintf("ExpressionStatement (line %d)", n.Token.Line)
	case *VarStatement:
		return fmt.Sprintf("Var %s (line %d)", n.Name, n.Token.Line)
	case *BlockStatement:
		return fmt.Sprintf("Block (line %d)", n.Token.Line)
	case *IfStatement:
		return fmt.Sprintf("If (line %d, %d elif, else=%t)", n.Token.Line, len(n.Elifs), n.Alternative != nil)
	case *WhileStatement:
		return fmt.Sprintf("While (line %d)", n.Token.Line)
	case *FunctionStatement:
		return fmt.Sprintf("Function %s(%s) (line %d)", n.Name, strings.Join(n.Parameters, ", "), n.Token.Line)
	case *ReturnStatement:
		return fmt.Sprintf("Return (line %d)", n.Token.Line)
	case *AssignStatement:
		return fmt.Sprintf("Assign %s (line %d)", n.Name.Name, n.Token.Line)
	case *IncrementStatement:
		return fmt.Sprintf("Increment %s (line %d)", n.Name.Name, n.Token.Line)
	case *DecrementStatement:
		return fmt.Sprintf("Decrement %s (line %d)", n.Name.Name, n.Token.Line)
	case *EndOfFileStatement:
		return "EndOfFile"
	}
	return fmt.Sprintf("%T", n)
}
