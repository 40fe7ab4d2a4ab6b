package compiler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/zurustar/gamerscript/pkg/compiler/lexer"
	"github.com/zurustar/gamerscript/pkg/compiler/parser"
)

// Compilation phases reported in CompileError.Phase.
const (
	PhaseLexer  = "lexer"
	PhaseParser = "parser"
)

// CompileError is a lexer or parser failure annotated with the source lines
// around it. Err holds the underlying *lexer.LexError or *parser.ParseError.
type CompileError struct {
	// Phase is PhaseLexer or PhaseParser.
	Phase string

	// Message is the human-readable error description.
	Message string

	// Line and Column are 1-indexed.
	Line   int
	Column int

	// Context holds up to two lines before and after the error line, with
	// a caret under the error column.
	Context string

	Err error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s error at line %d, column %d: %s\n%s",
			e.Phase, e.Line, e.Column, e.Message, e.Context)
	}
	return fmt.Sprintf("%s error at line %d, column %d: %s",
		e.Phase, e.Line, e.Column, e.Message)
}

// Unwrap returns the phase error.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// wrapError attaches source context to lexer and parser errors. Other
// errors are returned unchanged.
func wrapError(err error, source string) error {
	var lexErr *lexer.LexError
	if errors.As(err, &lexErr) {
		return &CompileError{
			Phase:   PhaseLexer,
			Message: lexErr.Message,
			Line:    lexErr.Line,
			Column:  lexErr.Column,
			Context: GenerateErrorContext(source, lexErr.Line, lexErr.Column),
			Err:     err,
		}
	}

	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) {
		return &CompileError{
			Phase:   PhaseParser,
			Message: parseErr.Message,
			Line:    parseErr.Line,
			Column:  parseErr.Column,
			Context: GenerateErrorContext(source, parseErr.Line, parseErr.Column),
			Err:     err,
		}
	}

	return err
}

// GenerateErrorContext renders the lines around an error location. The
// error line is marked with '>' and followed by a caret under column:
//
//	  1 | loot a = 1
//	> 2 | loot b = *
//	    |          ^
//	  3 | taunt(b)
//
// Line endings are normalized the way the lexer normalizes them, so line
// numbers agree with token positions.
func GenerateErrorContext(source string, line, column int) string {
	if source == "" || line <= 0 {
		return ""
	}

	lines := strings.Split(strings.NewReplacer("\r", "", "\v", "", "\f", "").Replace(source), "\n")
	if line > len(lines) {
		return ""
	}

	first := max(line-2, 1)
	last := min(line+2, len(lines))
	width := len(strconv.Itoa(last))

	var buf strings.Builder
	for n := first; n <= last; n++ {
		text := strings.ReplaceAll(lines[n-1], "\t", lexer.TabLiteral)
		if n != line {
			fmt.Fprintf(&buf, "  %*d | %s\n", width, n, text)
			continue
		}
		fmt.Fprintf(&buf, "> %*d | %s\n", width, n, text)
		fmt.Fprintf(&buf, "  %s | %s^\n", strings.Repeat(" ", width), strings.Repeat(" ", caretOffset(lines[n-1], column)))
	}
	return buf.String()
}

// caretOffset converts a 1-indexed rune column into a display offset,
// counting tabs at their rendered width.
func caretOffset(line string, column int) int {
	offset := 0
	for i, r := range []rune(line) {
		if i >= column-1 {
			break
		}
		if r == '\t' {
			offset += len(lexer.TabLiteral)
		} else {
			offset++
		}
	}
	if column-1 > len([]rune(line)) {
		offset += column - 1 - len([]rune(line))
	}
	return offset
}
