package token

import (
	"strings"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		expected string
		kind     Kind
	}{
		{"EOF", Eof},
		{"ILLEGAL", Illegal},
		{"(", LeftParen},
		{")", RightParen},
		{"{", LeftBrace},
		{"}", RightBrace},
		{"!=", BangEqual},
		{"==", EqualEqual},
		{"IDENTIFIER", Identifier},
		{"while", While},
		{"strcmp", Strcmp},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestKindStringUnknown(t *testing.T) {
	got := Kind(10_000).String()
	if got != "Kind(10000)" {
		t.Errorf("Kind.String() for out-of-range kind = %q", got)
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		lexeme   string
		wantKind Kind
		wantOK   bool
	}{
		{"var", Var, true},
		{"and", And, true},
		{"or", Or, true},
		{"break", Break, true},
		{"class", Class, true},
		{"Var", Identifier, false}, // case-sensitive: capitalized is not a keyword
		{"myVariable", Identifier, false},
	}

	for _, tt := range tests {
		t.Run(tt.lexeme, func(t *testing.T) {
			kind, ok := Lookup(tt.lexeme)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.lexeme, ok, tt.wantOK)
			}
			if ok && kind != tt.wantKind {
				t.Errorf("Lookup(%q) = %v, want %v", tt.lexeme, kind, tt.wantKind)
			}
		})
	}
}

func TestAllKeywordsCovered(t *testing.T) {
	// Every reserved keyword Kind must round-trip
	// through Lookup using its own canonical spelling.
	reserved := []Kind{
		And, Or, True, False, Nil, Var, If, Else, While, For, Break, Print,
		Return, Class, Super, This, Fun, Strcmp,
	}

	for _, kind := range reserved {
		spelling := kind.String()
		got, ok := Lookup(spelling)
		if !ok {
			t.Errorf("keyword %v (%q) not found by Lookup", kind, spelling)
			continue
		}
		if got != kind {
			t.Errorf("Lookup(%q) = %v, want %v", spelling, got, kind)
		}
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: Number, Lexeme: "42", Literal: Literal{Kind: NumberLiteral, Num: 42}, Pos: Position{Line: 1, Column: 1, Length: 2}}
	if got := tok.String(); !strings.Contains(got, "NUMBER") || !strings.Contains(got, `"42"`) {
		t.Errorf("Token.String() = %q, want it to mention kind and lexeme", got)
	}

	noLit := Token{Kind: Semicolon, Lexeme: ";", Pos: Position{Line: 1, Column: 5, Length: 1}}
	if got, want := noLit.String(), `; ";"`; got != want {
		t.Errorf("Token.String() = %q, want %q", got, want)
	}
}

func TestPositionString(t *testing.T) {
	pos := Position{Line: 3, Column: 7, Length: 1}
	if got, want := pos.String(), "line 3 column 7"; got != want {
		t.Errorf("Position.String() = %q, want %q", got, want)
	}
}
