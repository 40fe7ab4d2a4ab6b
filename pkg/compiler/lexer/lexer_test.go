package lexer

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/zurustar/gamerscript/pkg/compiler/token"
)

func TestNextToken(t *testing.T) {
	input := "loot x = 10\n" +
		"strat add(a, b) {\n" +
		"\tspawn a + b\n" +
		"}\n" +
		"clutch x >= 5 { taunt(\"big\") } retry x <= 1 {} ragequit {}\n" +
		"xX note Xx farm x == nerfed { nerf x }\n" +
		"buff y - 2.5 * z / w < buffed > q"

	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
	}{
		{token.VAR, "loot"},
		{token.WHITESPACE, " "},
		{token.IDENT, "x"},
		{token.WHITESPACE, " "},
		{token.ASSIGN, "="},
		{token.WHITESPACE, " "},
		{token.NUMBER, "10"},
		{token.NEWLINE, "\n"},

		{token.FUNCTION, "strat"},
		{token.WHITESPACE, " "},
		{token.IDENT, "add"},
		{token.LPAREN, "("},
		{token.IDENT, "a"},
		{token.COMMA, ","},
		{token.WHITESPACE, " "},
		{token.IDENT, "b"},
		{token.RPAREN, ")"},
		{token.WHITESPACE, " "},
		{token.LBRACE, "{"},
		{token.NEWLINE, "\n"},

		{token.WHITESPACE, TabLiteral},
		{token.RETURN, "spawn"},
		{token.WHITESPACE, " "},
		{token.IDENT, "a"},
		{token.WHITESPACE, " "},
		{token.PLUS, "+"},
		{token.WHITESPACE, " "},
		{token.IDENT, "b"},
		{token.NEWLINE, "\n"},
		{token.RBRACE, "}"},
		{token.NEWLINE, "\n"},

		{token.IF, "clutch"},
		{token.WHITESPACE, " "},
		{token.IDENT, "x"},
		{token.WHITESPACE, " "},
		{token.GTE, ">="},
		{token.WHITESPACE, " "},
		{token.NUMBER, "5"},
		{token.WHITESPACE, " "},
		{token.LBRACE, "{"},
		{token.WHITESPACE, " "},
		{token.IDENT, "taunt"},
		{token.LPAREN, "("},
		{token.STRING, "\"big\""},
		{token.RPAREN, ")"},
		{token.WHITESPACE, " "},
		{token.RBRACE, "}"},
		{token.WHITESPACE, " "},
		{token.ELIF, "retry"},
		{token.WHITESPACE, " "},
		{token.IDENT, "x"},
		{token.WHITESPACE, " "},
		{token.LTE, "<="},
		{token.WHITESPACE, " "},
		{token.NUMBER, "1"},
		{token.WHITESPACE, " "},
		{token.LBRACE, "{"},
		{token.RBRACE, "}"},
		{token.WHITESPACE, " "},
		{token.ELSE, "ragequit"},
		{token.WHITESPACE, " "},
		{token.LBRACE, "{"},
		{token.RBRACE, "}"},
		{token.NEWLINE, "\n"},

		{token.COMMENT, "xX note Xx"},
		{token.WHITESPACE, " "},
		{token.WHILE, "farm"},
		{token.WHITESPACE, " "},
		{token.IDENT, "x"},
		{token.WHITESPACE, " "},
		{token.EQ, "=="},
		{token.WHITESPACE, " "},
		{token.FALSE, "nerfed"},
		{token.WHITESPACE, " "},
		{token.LBRACE, "{"},
		{token.WHITESPACE, " "},
		{token.DECREMENT, "nerf"},
		{token.WHITESPACE, " "},
		{token.IDENT, "x"},
		{token.WHITESPACE, " "},
		{token.RBRACE, "}"},
		{token.NEWLINE, "\n"},

		{token.INCREMENT, "buff"},
		{token.WHITESPACE, " "},
		{token.IDENT, "y"},
		{token.WHITESPACE, " "},
		{token.MINUS, "-"},
		{token.WHITESPACE, " "},
		{token.NUMBER, "2.5"},
		{token.WHITESPACE, " "},
		{token.ASTERISK, "*"},
		{token.WHITESPACE, " "},
		{token.IDENT, "z"},
		{token.WHITESPACE, " "},
		{token.SLASH, "/"},
		{token.WHITESPACE, " "},
		{token.IDENT, "w"},
		{token.WHITESPACE, " "},
		{token.LT, "<"},
		{token.WHITESPACE, " "},
		{token.TRUE, "buffed"},
		{token.WHITESPACE, " "},
		{token.GT, ">"},
		{token.WHITESPACE, " "},
		{token.IDENT, "q"},
		{token.EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestTokenizeEndsWithSingleEOF(t *testing.T) {
	for _, input := range []string{"", "\n", "loot x", "taunt(1)\n\n"} {
		tokens, err := New(input).Tokenize()
		if err != nil {
			t.Fatalf("Tokenize(%q) error: %v", input, err)
		}
		eofs := 0
		for _, tok := range tokens {
			if tok.Type == token.EOF {
				eofs++
			}
		}
		if eofs != 1 || tokens[len(tokens)-1].Type != token.EOF {
			t.Errorf("Tokenize(%q): want exactly one trailing EOF, got %v", input, tokens)
		}
	}
}

func TestLineNumbers(t *testing.T) {
	input := "loot a\r\n\"multi\nline\"\nxX one\ntwo Xx b\n\fc"
	tokens, err := New(input).Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]int{
		"loot":            1,
		"a":               1,
		"\"multi\nline\"": 2,
		"xX one\ntwo Xx":  4,
		"b":               5,
		"c":               6,
	}
	for _, tok := range tokens {
		if line, ok := want[tok.Literal]; ok && tok.Line != line {
			t.Errorf("token %q: line = %d, want %d", tok.Literal, tok.Line, line)
		}
	}

	// newline tokens carry the line they terminate
	var newlineLines []int
	for _, tok := range tokens {
		if tok.Type == token.NEWLINE {
			newlineLines = append(newlineLines, tok.Line)
		}
	}
	expected := []int{1, 3, 5}
	if len(newlineLines) != len(expected) {
		t.Fatalf("newline lines = %v, want %v", newlineLines, expected)
	}
	for i := range expected {
		if newlineLines[i] != expected[i] {
			t.Errorf("newline %d line = %d, want %d", i, newlineLines[i], expected[i])
		}
	}
}

func TestStringEscapes(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"plain"`, `"plain"`},
		{`"a\"b"`, `"a\"b"`},
		{`"a\\"`, `"a\\"`},
		{`"tab\tnew\n"`, `"tab\tnew\n"`},
		{`""`, `""`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, err := New(tt.input).NextToken()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tok.Type != token.STRING || tok.Literal != tt.expected {
				t.Errorf("got %v %q, want STRING %q", tok.Type, tok.Literal, tt.expected)
			}
		})
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		kind   ErrorKind
		line   int
		column int
	}{
		{"unexpected character", "loot x = 1\nloot y = @", UnexpectedCharacter, 2, 10},
		{"underscore", "my_var", UnexpectedCharacter, 1, 3},
		{"unterminated string", "taunt(\"abc", UnterminatedString, 1, 7},
		{"unterminated string after escape", `"abc\`, UnterminatedString, 1, 1},
		{"unterminated comment", "\n\nxX never closed\n", UnterminatedComment, 3, 1},
		{"malformed number", "loot n = 1.2.3", InvalidNumberFormat, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.input).Tokenize()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var lexErr *LexError
			if !errors.As(err, &lexErr) {
				t.Fatalf("expected *LexError, got %T", err)
			}
			if lexErr.Kind != tt.kind {
				t.Errorf("Kind = %s, want %s", lexErr.Kind, tt.kind)
			}
			if lexErr.Line != tt.line {
				t.Errorf("Line = %d, want %d", lexErr.Line, tt.line)
			}
			if lexErr.Column != tt.column {
				t.Errorf("Column = %d, want %d", lexErr.Column, tt.column)
			}
		})
	}
}

func TestHugeNumberLiteral(t *testing.T) {
	literal := "1" + strings.Repeat("0", 400)
	tok, err := New(literal).NextToken()
	if err != nil {
		t.Fatalf("NextToken() error = %v", err)
	}
	if tok.Type != token.NUMBER || tok.Literal != literal {
		t.Errorf("token = %s %q, want NUMBER", tok.Type, tok.Literal)
	}
}

func TestUnexpectedCharacterIsReported(t *testing.T) {
	_, err := New("loot x = $").Tokenize()
	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *LexError, got %v", err)
	}
	if lexErr.Char != '$' {
		t.Errorf("Char = %q, want '$'", lexErr.Char)
	}
}

func TestUnicodeIdentifier(t *testing.T) {
	tok, err := New("héros2").NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Type != token.IDENT || tok.Literal != "héros2" {
		t.Errorf("got %v %q", tok.Type, tok.Literal)
	}
}

func TestLexerProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("identifiers lex to a single word token", prop.ForAll(
		func(ident string) bool {
			tokens, err := New(ident).Tokenize()
			if err != nil || len(tokens) != 2 {
				return false
			}
			return tokens[0].Literal == ident && tokens[0].Type == token.LookupIdent(ident)
		},
		identifiers(),
	))

	properties.Property("non-negative numbers lex to their float value", prop.ForAll(
		func(f float64) bool {
			literal := strconv.FormatFloat(f, 'f', -1, 64)
			tokens, err := New(literal).Tokenize()
			if err != nil || len(tokens) != 2 || tokens[0].Type != token.NUMBER {
				return false
			}
			parsed, err := strconv.ParseFloat(tokens[0].Literal, 64)
			return err == nil && parsed == f
		},
		gen.Float64Range(0, 1e9),
	))

	properties.Property("concatenated literals reproduce the source", prop.ForAll(
		func(idents []string) bool {
			src := ""
			for i, id := range idents {
				if i > 0 {
					src += " \n"
				}
				src += id
			}
			tokens, err := New(src).Tokenize()
			if err != nil {
				return false
			}
			rebuilt := ""
			for _, tok := range tokens {
				rebuilt += tok.Literal
			}
			return rebuilt == src
		},
		gen.SliceOf(identifiers()),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// identifiers generates identifiers that do not open a comment.
func identifiers() gopter.Gen {
	return gen.Identifier().SuchThat(func(s string) bool {
		return !strings.HasPrefix(s, "xX")
	})
}
