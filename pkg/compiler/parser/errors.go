package parser

import (
	"fmt"

	"github.com/zurustar/gamerscript/pkg/compiler/token"
)

// ParseError reports the first grammar violation found by the parser.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

func newError(tok token.Token, format string, args ...any) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

// describe names a token the way error messages show it.
func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of input"
	case token.NEWLINE:
		return "newline"
	case token.IDENT, token.NUMBER, token.STRING:
		return fmt.Sprintf("%s %s", tok.Type, tok.Literal)
	}
	return fmt.Sprintf("'%s'", tok.Literal)
}
