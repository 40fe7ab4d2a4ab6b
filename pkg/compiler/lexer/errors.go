package lexer

import "fmt"

// ErrorKind classifies a lexical error.
type ErrorKind string

const (
	UnexpectedCharacter ErrorKind = "UNEXPECTED_CHARACTER"
	UnterminatedString  ErrorKind = "UNTERMINATED_STRING"
	UnterminatedComment ErrorKind = "UNTERMINATED_COMMENT"
	InvalidNumberFormat ErrorKind = "INVALID_NUMBER_FORMAT"
)

// LexError reports a character the lexer could not turn into a token.
// Line and Column are 1-indexed.
type LexError struct {
	Kind    ErrorKind
	Char    rune
	Message string
	Line    int
	Column  int
}

// Error implements the error interface.
func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

func newError(kind ErrorKind, ch rune, line, column int, message string) *LexError {
	return &LexError{Kind: kind, Char: ch, Message: message, Line: line, Column: column}
}
