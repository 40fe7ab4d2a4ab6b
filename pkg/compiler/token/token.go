// Package token defines the lexical tokens of GamerScript.
package token

// TokenType represents the type of a token.
//
// The constants are laid out in contiguous ranges (keywords, operators,
// delimiters, others) so the category of a token is a range test.
type TokenType int

const (
	// Keywords
	VAR TokenType = iota
	FUNCTION
	IF
	ELIF
	ELSE
	TRUE
	FALSE
	WHILE
	RETURN
	INCREMENT
	DECREMENT

	// Operators
	PLUS
	MINUS
	ASTERISK
	SLASH
	ASSIGN
	EQ
	GT
	GTE
	LT
	LTE

	// Delimiters
	COMMA
	LPAREN
	RPAREN
	LBRACE
	RBRACE

	// Others
	IDENT
	NUMBER
	STRING
	COMMENT
	NEWLINE
	WHITESPACE
	EOF
)

const (
	keywordsBegin   = VAR
	keywordsEnd     = DECREMENT
	operatorsBegin  = PLUS
	operatorsEnd    = LTE
	delimitersBegin = COMMA
	delimitersEnd   = RBRACE
)

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

var tokenTypeNames = [...]string{
	VAR:       "loot",
	FUNCTION:  "strat",
	IF:        "clutch",
	ELIF:      "retry",
	ELSE:      "ragequit",
	TRUE:      "buffed",
	FALSE:     "nerfed",
	WHILE:     "farm",
	RETURN:    "spawn",
	INCREMENT: "buff",
	DECREMENT: "nerf",

	PLUS:     "+",
	MINUS:    "-",
	ASTERISK: "*",
	SLASH:    "/",
	ASSIGN:   "=",
	EQ:       "==",
	GT:       ">",
	GTE:      ">=",
	LT:       "<",
	LTE:      "<=",

	COMMA:  ",",
	LPAREN: "(",
	RPAREN: ")",
	LBRACE: "{",
	RBRACE: "}",

	IDENT:      "IDENT",
	NUMBER:     "NUMBER",
	STRING:     "STRING",
	COMMENT:    "COMMENT",
	NEWLINE:    "NEWLINE",
	WHITESPACE: "WHITESPACE",
	EOF:        "EOF",
}

// String returns a string representation of the token type.
func (t TokenType) String() string {
	if t >= 0 && int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "UNKNOWN"
}

// IsKeyword returns true if the token type is a keyword.
func (t TokenType) IsKeyword() bool {
	return t >= keywordsBegin && t <= keywordsEnd
}

// IsOperator returns true if the token type is an operator.
func (t TokenType) IsOperator() bool {
	return t >= operatorsBegin && t <= operatorsEnd
}

// IsDelimiter returns true if the token type is a delimiter.
func (t TokenType) IsDelimiter() bool {
	return t >= delimitersBegin && t <= delimitersEnd
}

// IsTrivia returns true for tokens kept for rendering but ignored by the parser.
func (t TokenType) IsTrivia() bool {
	return t == WHITESPACE || t == COMMENT
}

// keywords maps keyword spellings to their TokenType.
// Keywords are case-sensitive.
var keywords = map[string]TokenType{
	"loot":     VAR,
	"strat":    FUNCTION,
	"dlc":      FUNCTION,
	"clutch":   IF,
	"retry":    ELIF,
	"ragequit": ELSE,
	"buffed":   TRUE,
	"nerfed":   FALSE,
	"farm":     WHILE,
	"spawn":    RETURN,
	"buff":     INCREMENT,
	"nerf":     DECREMENT,
}

// LookupIdent checks if the given identifier is a keyword.
// If it is, it returns the keyword's TokenType, otherwise IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
