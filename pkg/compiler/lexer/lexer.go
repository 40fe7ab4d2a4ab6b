// Package lexer provides lexical analysis for GamerScript sources.
//
// Trivia (whitespace and comments) is kept in the token stream so that
// renderers can reproduce the source; the parser filters it out.
package lexer

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/zurustar/gamerscript/pkg/compiler/token"
)

// TabLiteral is the literal of the WHITESPACE token produced for a tab.
const TabLiteral = "    "

const eof rune = -1

// Lexer tokenizes GamerScript source code.
type Lexer struct {
	input        []rune
	position     int  // current position in input
	readPosition int  // current reading position (after current char)
	ch           rune // current char
	line         int  // current line number
	column       int  // current column number
}

// lineEndings strips the characters that do not take part in line counting.
var lineEndings = strings.NewReplacer("\r", "", "\v", "", "\f", "")

// New creates a new Lexer.
func New(input string) *Lexer {
	l := &Lexer{
		input: []rune(lineEndings.Replace(input)),
		line:  1,
	}
	l.readChar()
	return l
}

// Tokenize scans the whole input and returns the token sequence, which
// always ends with a single EOF token.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() (token.Token, error) {
	line, column := l.line, l.column

	switch l.ch {
	case eof:
		return l.newToken(token.EOF, ""), nil
	case '\n':
		return l.single(token.NEWLINE), nil
	case ' ':
		return l.single(token.WHITESPACE), nil
	case '\t':
		tok := l.single(token.WHITESPACE)
		tok.Literal = TabLiteral
		return tok, nil
	case ',':
		return l.single(token.COMMA), nil
	case '+':
		return l.single(token.PLUS), nil
	case '-':
		return l.single(token.MINUS), nil
	case '*':
		return l.single(token.ASTERISK), nil
	case '/':
		return l.single(token.SLASH), nil
	case '(':
		return l.single(token.LPAREN), nil
	case ')':
		return l.single(token.RPAREN), nil
	case '{':
		return l.single(token.LBRACE), nil
	case '}':
		return l.single(token.RBRACE), nil
	case '=':
		return l.withEquals(token.ASSIGN, token.EQ), nil
	case '>':
		return l.withEquals(token.GT, token.GTE), nil
	case '<':
		return l.withEquals(token.LT, token.LTE), nil
	case '"':
		literal, err := l.readString()
		if err != nil {
			return token.Token{}, err
		}
		return token.Token{Type: token.STRING, Literal: literal, Line: line, Column: column}, nil
	}

	switch {
	case l.ch == 'x' && l.peekChar() == 'X':
		literal, err := l.readComment()
		if err != nil {
			return token.Token{}, err
		}
		return token.Token{Type: token.COMMENT, Literal: literal, Line: line, Column: column}, nil
	case isLetter(l.ch):
		literal := l.readIdentifier()
		return token.Token{Type: token.LookupIdent(literal), Literal: literal, Line: line, Column: column}, nil
	case isDigit(l.ch):
		literal := l.readNumber()
		// out-of-range literals parse to infinity
		if _, err := strconv.ParseFloat(literal, 64); errors.Is(err, strconv.ErrSyntax) {
			return token.Token{}, newError(InvalidNumberFormat, 0, line, column,
				"invalid number format '"+literal+"'")
		}
		return token.Token{Type: token.NUMBER, Literal: literal, Line: line, Column: column}, nil
	}

	return token.Token{}, newError(UnexpectedCharacter, l.ch, line, column,
		"unexpected character '"+string(l.ch)+"'")
}

// readChar reads the next character.
// The line counter advances when the reader moves past a newline, so a
// NEWLINE token still carries the line it terminates.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = eof
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return eof
	}
	return l.input[l.readPosition]
}

// single emits the current character as a token of the given type.
func (l *Lexer) single(tokenType token.TokenType) token.Token {
	tok := l.newToken(tokenType, string(l.ch))
	l.readChar()
	return tok
}

// withEquals emits the two-character form when the next character is '='.
func (l *Lexer) withEquals(short, long token.TokenType) token.Token {
	if l.peekChar() != '=' {
		return l.single(short)
	}
	tok := l.newToken(long, string(l.ch)+"=")
	l.readChar()
	l.readChar()
	return tok
}

// readIdentifier reads an identifier or keyword.
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return string(l.input[position:l.position])
}

// readNumber reads a run of digits and dots.
func (l *Lexer) readNumber() string {
	position := l.position
	for isDigit(l.ch) || l.ch == '.' {
		l.readChar()
	}
	return string(l.input[position:l.position])
}

// readString reads a string literal, quotes included.
// A backslash escapes the following character.
func (l *Lexer) readString() (string, error) {
	position, line, column := l.position, l.line, l.column
	l.readChar() // consume opening quote
	for {
		switch l.ch {
		case eof:
			return "", newError(UnterminatedString, '"', line, column, "unterminated string literal")
		case '\\':
			l.readChar()
			if l.ch == eof {
				return "", newError(UnterminatedString, '"', line, column, "unterminated string literal")
			}
		case '"':
			l.readChar() // consume closing quote
			return string(l.input[position:l.position]), nil
		}
		l.readChar()
	}
}

// readComment reads a block comment xX ... Xx, markers included.
func (l *Lexer) readComment() (string, error) {
	position, line, column := l.position, l.line, l.column
	l.readChar() // consume x
	l.readChar() // consume X
	for {
		if l.ch == eof {
			return "", newError(UnterminatedComment, 'x', line, column, "unterminated comment")
		}
		if l.ch == 'X' && l.peekChar() == 'x' {
			l.readChar()
			l.readChar()
			return string(l.input[position:l.position]), nil
		}
		l.readChar()
	}
}

// newToken creates a new token at the current position.
func (l *Lexer) newToken(tokenType token.TokenType, literal string) token.Token {
	return token.Token{Type: tokenType, Literal: literal, Line: l.line, Column: l.column}
}

func isLetter(ch rune) bool {
	return ch != eof && unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

// GetSource returns the normalized source code as a string.
func (l *Lexer) GetSource() string {
	return string(l.input)
}
