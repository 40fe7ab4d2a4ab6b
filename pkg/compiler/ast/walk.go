package ast

import "fmt"

// A Visitor's Visit method is invoked for each node encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children
// of node with the visitor w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order. ElifClause branches are
// visited as their condition followed by their consequence.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		walkStatements(v, n.Statements)

	// Expressions
	case *BinaryExpression:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *UnaryExpression:
		Walk(v, n.Right)
	case *LiteralExpression, *VariableExpression:
		// leaves
	case *CallExpression:
		for _, a := range n.Arguments {
			Walk(v, a)
		}
	case *GroupingExpression:
		Walk(v, n.Expression)

	// Statements
	case *ExpressionStatement:
		Walk(v, n.Expression)
	case *VarStatement:
		if n.Value != nil {
			Walk(v, n.Value)
		}
	case *BlockStatement:
		walkStatements(v, n.Statements)
	case *IfStatement:
		Walk(v, n.Condition)
		Walk(v, n.Consequence)
		for _, e := range n.Elifs {
			Walk(v, e.Condition)
			Walk(v, e.Consequence)
		}
		if n.Alternative != nil {
			Walk(v, n.Alternative)
		}
	case *WhileStatement:
		Walk(v, n.Condition)
		Walk(v, n.Body)
	case *FunctionStatement:
		Walk(v, n.Body)
	case *ReturnStatement:
		if n.Value != nil {
			Walk(v, n.Value)
		}
	case *AssignStatement:
		Walk(v, n.Name)
		Walk(v, n.Value)
	case *IncrementStatement:
		Walk(v, n.Name)
	case *DecrementStatement:
		Walk(v, n.Name)
	case *EndOfFileStatement:
		// leaf

	default:
		panic(fmt.Sprintf("ast.Walk: unexpected node type %T", n))
	}

	v.Visit(nil)
}

func walkStatements(v Visitor, list []Statement) {
	for _, s := range list {
		Walk(v, s)
	}
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses an AST in depth-first order: It starts by calling
// f(node); node must not be nil. If f returns true, Inspect invokes f
// recursively for each of the non-nil children of node, followed by a
// call of f(nil).
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}
