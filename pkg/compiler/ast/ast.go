// Package ast defines the abstract syntax tree produced by the parser.
//
// The node set is closed: Statement and Expression carry unexported marker
// methods, so every traversal can switch exhaustively over the concrete
// types declared here.
package ast

import (
	"bytes"
	"strings"

	"github.com/zurustar/gamerscript/pkg/compiler/token"
)

type Node interface {
	TokenLiteral() string
	String() string
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

// Program is the root node
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Expressions

// BinaryExpression: left op right
type BinaryExpression struct {
	Token    token.Token // the operator token
	Left     Expression
	Operator token.TokenType
	Right    Expression
}

func (be *BinaryExpression) expressionNode()      {}
func (be *BinaryExpression) TokenLiteral() string { return be.Token.Literal }
func (be *BinaryExpression) String() string {
	return "(" + be.Left.String() + " " + be.Token.Literal + " " + be.Right.String() + ")"
}

// UnaryExpression: -right
type UnaryExpression struct {
	Token    token.Token // token.MINUS
	Operator token.TokenType
	Right    Expression
}

func (ue *UnaryExpression) expressionNode()      {}
func (ue *UnaryExpression) TokenLiteral() string { return ue.Token.Literal }
func (ue *UnaryExpression) String() string {
	return "(" + ue.Token.Literal + ue.Right.String() + ")"
}

// LiteralExpression is a number, string or boolean literal.
// The literal kind is the token type; string literals keep their quotes.
type LiteralExpression struct {
	Token token.Token
}

func (le *LiteralExpression) expressionNode()      {}
func (le *LiteralExpression) TokenLiteral() string { return le.Token.Literal }
func (le *LiteralExpression) String() string       { return le.Token.Literal }

// VariableExpression is a bare reference to a variable.
type VariableExpression struct {
	Token token.Token // token.IDENT
	Name  string
}

func (ve *VariableExpression) expressionNode()      {}
func (ve *VariableExpression) TokenLiteral() string { return ve.Token.Literal }
func (ve *VariableExpression) String() string       { return ve.Name }

// CallExpression: name(args...)
type CallExpression struct {
	Token     token.Token // the function name
	Function  string
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpression) String() string {
	args := make([]string, 0, len(ce.Arguments))
	for _, a := range ce.Arguments {
		args = append(args, a.String())
	}
	return ce.Function + "(" + strings.Join(args, ", ") + ")"
}

// GroupingExpression: ( expression )
type GroupingExpression struct {
	Token      token.Token // token.LPAREN
	Expression Expression
}

func (ge *GroupingExpression) expressionNode()      {}
func (ge *GroupingExpression) TokenLiteral() string { return ge.Token.Literal }
func (ge *GroupingExpression) String() string       { return ge.Expression.String() }

// Statements

// ExpressionStatement is a call or variable reference standing alone.
type ExpressionStatement struct {
	Token      token.Token // The first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExpressionStatement) String() string       { return es.Expression.String() }

// VarStatement: loot name [= value]
type VarStatement struct {
	Token token.Token // token.VAR
	Name  string
	Value Expression // nil when there is no initializer
}

func (vs *VarStatement) statementNode()       {}
func (vs *VarStatement) TokenLiteral() string { return vs.Token.Literal }
func (vs *VarStatement) String() string {
	if vs.Value == nil {
		return vs.Token.Literal + " " + vs.Name
	}
	return vs.Token.Literal + " " + vs.Name + " = " + vs.Value.String()
}

// BlockStatement represents a block of statements enclosed in braces.
type BlockStatement struct {
	Token      token.Token // token.LBRACE
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, s := range bs.Statements {
		out.WriteString(s.String())
		out.WriteString("; ")
	}
	out.WriteString("}")
	return out.String()
}

// ElifClause is one retry branch of an IfStatement.
type ElifClause struct {
	Token       token.Token // token.ELIF
	Condition   Expression
	Consequence Statement
}

// IfStatement: clutch cond stmt (retry cond stmt)* [ragequit stmt]
type IfStatement struct {
	Token       token.Token // token.IF
	Condition   Expression
	Consequence Statement
	Elifs       []*ElifClause
	Alternative Statement // nil when there is no else branch
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString(is.Token.Literal + " " + is.Condition.String() + " " + is.Consequence.String())
	for _, e := range is.Elifs {
		out.WriteString(" " + e.Token.Literal + " " + e.Condition.String() + " " + e.Consequence.String())
	}
	if is.Alternative != nil {
		out.WriteString(" ragequit " + is.Alternative.String())
	}
	return out.String()
}

// WhileStatement: farm cond stmt
type WhileStatement struct {
	Token     token.Token // token.WHILE
	Condition Expression
	Body      Statement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) String() string {
	return ws.Token.Literal + " " + ws.Condition.String() + " " + ws.Body.String()
}

// FunctionStatement: strat name(params) { body }
type FunctionStatement struct {
	Token      token.Token // token.FUNCTION
	Name       string
	Parameters []string
	Body       *BlockStatement
}

func (fs *FunctionStatement) statementNode()       {}
func (fs *FunctionStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *FunctionStatement) String() string {
	return fs.Token.Literal + " " + fs.Name + "(" + strings.Join(fs.Parameters, ", ") + ") " + fs.Body.String()
}

// ReturnStatement: spawn [value]
type ReturnStatement struct {
	Token token.Token // token.RETURN
	Value Expression  // nil for a bare return
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) String() string {
	if rs.Value == nil {
		return rs.Token.Literal
	}
	return rs.Token.Literal + " " + rs.Value.String()
}

// AssignStatement: name = value
type AssignStatement struct {
	Token token.Token // token.ASSIGN
	Name  *VariableExpression
	Value Expression
}

func (as *AssignStatement) statementNode()       {}
func (as *AssignStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignStatement) String() string {
	return as.Name.String() + " = " + as.Value.String()
}

// IncrementStatement: buff name
type IncrementStatement struct {
	Token token.Token // token.INCREMENT
	Name  *VariableExpression
}

func (is *IncrementStatement) statementNode()       {}
func (is *IncrementStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IncrementStatement) String() string       { return is.Token.Literal + " " + is.Name.String() }

// DecrementStatement: nerf name
type DecrementStatement struct {
	Token token.Token // token.DECREMENT
	Name  *VariableExpression
}

func (ds *DecrementStatement) statementNode()       {}
func (ds *DecrementStatement) TokenLiteral() string { return ds.Token.Literal }
func (ds *DecrementStatement) String() string       { return ds.Token.Literal + " " + ds.Name.String() }

// EndOfFileStatement is the terminal statement emitted when the parser
// reaches the end of the token stream.
type EndOfFileStatement struct {
	Token token.Token // token.EOF
}

func (es *EndOfFileStatement) statementNode()       {}
func (es *EndOfFileStatement) TokenLiteral() string { return es.Token.Literal }
func (es *EndOfFileStatement) String() string       { return "<eof>" }
