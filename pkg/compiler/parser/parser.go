// Package parser turns a GamerScript token stream into statements.
//
// It is a recursive-descent parser with one token of lookahead. Each
// precedence level has its own method, from equality (lowest) down to
// primary (highest). Parsing stops at the first error.
package parser

import (
	"github.com/zurustar/gamerscript/pkg/compiler/ast"
	"github.com/zurustar/gamerscript/pkg/compiler/token"
)

// Parser parses GamerScript tokens into an AST.
type Parser struct {
	tokens   []token.Token
	position int // index of the token after curToken

	curToken token.Token
}

// FilterTrivia drops whitespace and comment tokens.
func FilterTrivia(tokens []token.Token) []token.Token {
	filtered := make([]token.Token, 0, len(tokens))
	for _, tok := range tokens {
		if !tok.Type.IsTrivia() {
			filtered = append(filtered, tok)
		}
	}
	return filtered
}

// New creates a new Parser. Trivia is filtered out and a terminating EOF
// token is added when the stream lacks one.
func New(tokens []token.Token) *Parser {
	tokens = FilterTrivia(tokens)
	if n := len(tokens); n == 0 || tokens[n-1].Type != token.EOF {
		eof := token.Token{Type: token.EOF, Line: 1, Column: 1}
		if n > 0 {
			eof.Line = tokens[n-1].Line
			eof.Column = tokens[n-1].Column + len([]rune(tokens[n-1].Literal))
		}
		tokens = append(tokens, eof)
	}

	p := &Parser{tokens: tokens}
	p.nextToken()
	return p
}

// Parse parses the whole stream. The result always ends with exactly one
// EndOfFileStatement.
func (p *Parser) Parse() ([]ast.Statement, error) {
	var statements []ast.Statement
	for {
		p.skipNewlines()
		if p.curTokenIs(token.EOF) {
			return append(statements, &ast.EndOfFileStatement{Token: p.curToken}), nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
}

// ParseProgram parses the whole stream into a Program node.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	statements, err := p.Parse()
	if err != nil {
		return nil, err
	}
	return &ast.Program{Statements: statements}, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	p.skipNewlines()

	switch p.curToken.Type {
	case token.FUNCTION:
		return p.parseFunctionStatement()
	case token.VAR:
		return p.parseVarStatement()
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.INCREMENT, token.DECREMENT:
		return p.parseStepStatement()
	case token.EOF:
		return nil, newError(p.curToken, "expected statement, got end of input")
	default:
		return p.parseExpressionOrAssignment()
	}
}

// strat name(a, b) { ... }
func (p *Parser) parseFunctionStatement() (ast.Statement, error) {
	stmt := &ast.FunctionStatement{Token: p.curToken}
	p.nextToken()

	name, err := p.expect(token.IDENT, "expected function name")
	if err != nil {
		return nil, err
	}
	stmt.Name = name.Literal

	if _, err := p.expect(token.LPAREN, "expected '(' after function name"); err != nil {
		return nil, err
	}
	stmt.Parameters = []string{}
	if !p.curTokenIs(token.RPAREN) {
		for {
			param, err := p.expect(token.IDENT, "expected parameter name")
			if err != nil {
				return nil, err
			}
			stmt.Parameters = append(stmt.Parameters, param.Literal)
			if !p.curTokenIs(token.COMMA) {
				break
			}
			p.nextToken()
		}
	}
	if _, err := p.expect(token.RPAREN, "expected ')' after parameters"); err != nil {
		return nil, err
	}

	if !p.curTokenIs(token.LBRACE) {
		return nil, newError(p.curToken, "expected '{' before function body, got %s", describe(p.curToken))
	}
	body, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}
	stmt.Body = body

	return stmt, nil
}

// loot name [= value]
func (p *Parser) parseVarStatement() (ast.Statement, error) {
	stmt := &ast.VarStatement{Token: p.curToken}
	p.nextToken()

	name, err := p.expect(token.IDENT, "expected variable name")
	if err != nil {
		return nil, err
	}
	stmt.Name = name.Literal

	if p.curTokenIs(token.ASSIGN) {
		p.nextToken()
		if stmt.Value, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}

	if err := p.endStatement("variable declaration"); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseBlockStatement() (*ast.BlockStatement, error) {
	block := &ast.BlockStatement{Token: p.curToken}
	block.Statements = []ast.Statement{}
	p.nextToken() // consume {

	p.skipNewlines()
	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			return nil, newError(p.curToken, "expected '}' after block")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
		p.skipNewlines()
	}
	p.nextToken() // consume }

	return block, nil
}

// clutch cond stmt (retry cond stmt)* [ragequit stmt]
// retry and ragequit may start on the line after the previous branch.
func (p *Parser) parseIfStatement() (ast.Statement, error) {
	stmt := &ast.IfStatement{Token: p.curToken}
	p.nextToken()

	var err error
	if stmt.Condition, err = p.parseExpression(); err != nil {
		return nil, err
	}
	if stmt.Consequence, err = p.parseStatement(); err != nil {
		return nil, err
	}

	p.skipNewlines()
	for p.curTokenIs(token.ELIF) {
		clause := &ast.ElifClause{Token: p.curToken}
		p.nextToken()
		if clause.Condition, err = p.parseExpression(); err != nil {
			return nil, err
		}
		if clause.Consequence, err = p.parseStatement(); err != nil {
			return nil, err
		}
		stmt.Elifs = append(stmt.Elifs, clause)
		p.skipNewlines()
	}

	if p.curTokenIs(token.ELSE) {
		p.nextToken()
		if stmt.Alternative, err = p.parseStatement(); err != nil {
			return nil, err
		}
	}

	return stmt, nil
}

// farm cond stmt
func (p *Parser) parseWhileStatement() (ast.Statement, error) {
	stmt := &ast.WhileStatement{Token: p.curToken}
	p.nextToken()

	var err error
	if stmt.Condition, err = p.parseExpression(); err != nil {
		return nil, err
	}
	if stmt.Body, err = p.parseStatement(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// spawn [value]
func (p *Parser) parseReturnStatement() (ast.Statement, error) {
	stmt := &ast.ReturnStatement{Token: p.curToken}
	p.nextToken()

	if !p.atStatementEnd() {
		var err error
		if stmt.Value, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}

	if err := p.endStatement("return statement"); err != nil {
		return nil, err
	}
	return stmt, nil
}

// buff name / nerf name
func (p *Parser) parseStepStatement() (ast.Statement, error) {
	tok := p.curToken
	p.nextToken()

	name, err := p.expect(token.IDENT, "expected variable name after '"+tok.Literal+"'")
	if err != nil {
		return nil, err
	}
	target := &ast.VariableExpression{Token: name, Name: name.Literal}

	var stmt ast.Statement
	if tok.Type == token.INCREMENT {
		stmt = &ast.IncrementStatement{Token: tok, Name: target}
	} else {
		stmt = &ast.DecrementStatement{Token: tok, Name: target}
	}

	if err := p.endStatement(tok.Literal + " statement"); err != nil {
		return nil, err
	}
	return stmt, nil
}

// Only a variable followed by '=' assigns; only a variable or a call may
// stand alone as a statement.
func (p *Parser) parseExpressionOrAssignment() (ast.Statement, error) {
	start := p.curToken
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	switch e := expr.(type) {
	case *ast.VariableExpression:
		if p.curTokenIs(token.ASSIGN) {
			stmt := &ast.AssignStatement{Token: p.curToken, Name: e}
			p.nextToken()
			if stmt.Value, err = p.parseExpression(); err != nil {
				return nil, err
			}
			if err := p.endStatement("assignment"); err != nil {
				return nil, err
			}
			return stmt, nil
		}
	case *ast.CallExpression:
	default:
		return nil, newError(start, "invalid expression statement %s", expr.String())
	}

	if err := p.endStatement("expression"); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Token: start, Expression: expr}, nil
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseEquality()
}

// binaryLevel parses next ((op) next)* for one precedence level.
func (p *Parser) binaryLevel(next func() (ast.Expression, error), ops ...token.TokenType) (ast.Expression, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for p.curTokenIsAny(ops...) {
		op := p.curToken
		p.nextToken()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Token: op, Left: left, Operator: op.Type, Right: right}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expression, error) {
	return p.binaryLevel(p.parseComparison, token.EQ)
}

func (p *Parser) parseComparison() (ast.Expression, error) {
	return p.binaryLevel(p.parseTerm, token.GT, token.GTE, token.LT, token.LTE)
}

func (p *Parser) parseTerm() (ast.Expression, error) {
	return p.binaryLevel(p.parseFactor, token.PLUS, token.MINUS)
}

func (p *Parser) parseFactor() (ast.Expression, error) {
	return p.binaryLevel(p.parseUnary, token.ASTERISK, token.SLASH)
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	if !p.curTokenIs(token.MINUS) {
		return p.parsePrimary()
	}
	op := p.curToken
	p.nextToken()
	right, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpression{Token: op, Operator: op.Type, Right: right}, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.curToken

	switch tok.Type {
	case token.NUMBER, token.STRING, token.TRUE, token.FALSE:
		p.nextToken()
		return &ast.LiteralExpression{Token: tok}, nil
	case token.IDENT:
		p.nextToken()
		if p.curTokenIs(token.LPAREN) {
			return p.parseCallExpression(tok)
		}
		return &ast.VariableExpression{Token: tok, Name: tok.Literal}, nil
	case token.LPAREN:
		p.nextToken()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return &ast.GroupingExpression{Token: tok, Expression: inner}, nil
	}

	return nil, newError(tok, "unexpected token %s", describe(tok))
}

func (p *Parser) parseCallExpression(name token.Token) (ast.Expression, error) {
	call := &ast.CallExpression{Token: name, Function: name.Literal, Arguments: []ast.Expression{}}
	p.nextToken() // consume (

	if !p.curTokenIs(token.RPAREN) {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			call.Arguments = append(call.Arguments, arg)
			if !p.curTokenIs(token.COMMA) {
				break
			}
			p.nextToken()
		}
	}
	if _, err := p.expect(token.RPAREN, "expected ')' after arguments"); err != nil {
		return nil, err
	}
	return call, nil
}

// endStatement consumes the newline that ends a simple statement. End of
// input and a closing brace also end a statement; neither is consumed.
func (p *Parser) endStatement(what string) error {
	switch p.curToken.Type {
	case token.NEWLINE:
		p.nextToken()
		return nil
	case token.EOF, token.RBRACE:
		return nil
	}
	return newError(p.curToken, "expected newline after %s, got %s", what, describe(p.curToken))
}

func (p *Parser) atStatementEnd() bool {
	return p.curTokenIsAny(token.NEWLINE, token.EOF, token.RBRACE)
}

func (p *Parser) skipNewlines() {
	for p.curTokenIs(token.NEWLINE) {
		p.nextToken()
	}
}

// expect consumes the current token when it has type t.
func (p *Parser) expect(t token.TokenType, msg string) (token.Token, error) {
	tok := p.curToken
	if tok.Type != t {
		return tok, newError(tok, "%s, got %s", msg, describe(tok))
	}
	p.nextToken()
	return tok, nil
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) curTokenIsAny(types ...token.TokenType) bool {
	for _, t := range types {
		if p.curToken.Type == t {
			return true
		}
	}
	return false
}

// nextToken advances one token. Once the stream is exhausted curToken
// stays on the final EOF.
func (p *Parser) nextToken() {
	if p.position < len(p.tokens) {
		p.curToken = p.tokens[p.position]
		p.position++
	}
}
