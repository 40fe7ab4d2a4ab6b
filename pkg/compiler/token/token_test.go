package token

import "testing"

func TestTokenTypeString(t *testing.T) {
	tests := []struct {
		tokenType TokenType
		expected  string
	}{
		{VAR, "loot"},
		{FUNCTION, "strat"},
		{IF, "clutch"},
		{ELIF, "retry"},
		{ELSE, "ragequit"},
		{WHILE, "farm"},
		{RETURN, "spawn"},
		{PLUS, "+"},
		{EQ, "=="},
		{LTE, "<="},
		{COMMA, ","},
		{RBRACE, "}"},
		{IDENT, "IDENT"},
		{NEWLINE, "NEWLINE"},
		{EOF, "EOF"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.tokenType.String(); got != tt.expected {
				t.Errorf("TokenType.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestTokenTypeStringUnknown(t *testing.T) {
	if got := TokenType(9999).String(); got != "UNKNOWN" {
		t.Errorf("Unknown TokenType.String() = %q, want %q", got, "UNKNOWN")
	}
	if got := TokenType(-1).String(); got != "UNKNOWN" {
		t.Errorf("Negative TokenType.String() = %q, want %q", got, "UNKNOWN")
	}
}

func TestTokenTypeCategories(t *testing.T) {
	tests := []struct {
		tokenType TokenType
		keyword   bool
		operator  bool
		delimiter bool
		trivia    bool
	}{
		{VAR, true, false, false, false},
		{DECREMENT, true, false, false, false},
		{TRUE, true, false, false, false},
		{PLUS, false, true, false, false},
		{LTE, false, true, false, false},
		{ASSIGN, false, true, false, false},
		{COMMA, false, false, true, false},
		{RBRACE, false, false, true, false},
		{IDENT, false, false, false, false},
		{NUMBER, false, false, false, false},
		{COMMENT, false, false, false, true},
		{WHITESPACE, false, false, false, true},
		{NEWLINE, false, false, false, false},
		{EOF, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.tokenType.String(), func(t *testing.T) {
			if got := tt.tokenType.IsKeyword(); got != tt.keyword {
				t.Errorf("IsKeyword() = %v, want %v", got, tt.keyword)
			}
			if got := tt.tokenType.IsOperator(); got != tt.operator {
				t.Errorf("IsOperator() = %v, want %v", got, tt.operator)
			}
			if got := tt.tokenType.IsDelimiter(); got != tt.delimiter {
				t.Errorf("IsDelimiter() = %v, want %v", got, tt.delimiter)
			}
			if got := tt.tokenType.IsTrivia(); got != tt.trivia {
				t.Errorf("IsTrivia() = %v, want %v", got, tt.trivia)
			}
		})
	}
}

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected TokenType
	}{
		{"loot", VAR},
		{"strat", FUNCTION},
		{"dlc", FUNCTION},
		{"clutch", IF},
		{"retry", ELIF},
		{"ragequit", ELSE},
		{"buffed", TRUE},
		{"nerfed", FALSE},
		{"farm", WHILE},
		{"spawn", RETURN},
		{"buff", INCREMENT},
		{"nerf", DECREMENT},
		{"taunt", IDENT},
		{"Loot", IDENT},
		{"x", IDENT},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := LookupIdent(tt.input); got != tt.expected {
				t.Errorf("LookupIdent(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
