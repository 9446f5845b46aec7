// Package lexer implements the scanner: a pure function from source text
// to a finite ordered sequence of tokens, ending with an end-of-input
// marker.
//
// # Unicode and Column Positions
//
// The lexer handles UTF-8 encoded source code correctly. Column positions
// are reported as rune counts, not byte offsets. Identifier characters
// follow Unicode's alphabetic/digit categories plus '_'.
package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/loxscript/loxscript/internal/token"
	"golang.org/x/text/unicode/norm"
)

// Error is a single scan error pinned to a source location (used to build
// "Scan error").
type Error struct {
	Message string
	Pos     token.Position
}

// Error implements the error interface.
func (e Error) Error() string {
	return e.Message + " at " + e.Pos.String()
}

// Lexer scans a fixed source string into a token stream. It is a
// one-shot consumer: construct with New, then call NextToken until it
// returns an Eof token.
type Lexer struct {
	input        string
	errors       []Error
	position     int
	readPosition int
	line         int
	column       int
	ch           rune
}

// New creates a Lexer over input. Strips a leading UTF-8 BOM if present.
func New(input string) *Lexer {
	if len(input) >= 3 && input[0] == 0xEF && input[1] == 0xBB && input[2] == 0xBF {
		input = input[3:]
	}

	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// Errors returns every scan error accumulated so far.
func (l *Lexer) Errors() []Error {
	return l.errors
}

// ScanAll tokenizes the entire input and returns the resulting token
// sequence, which always ends with exactly one Eof token.
// If any scan error occurred, the second return value holds them.
func (l *Lexer) ScanAll() ([]token.Token, []Error) {
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.Eof {
			break
		}
	}
	return tokens, l.errors
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.column++
	} else {
		r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.position = l.readPosition
		l.readPosition += size
		l.column++
		if r == utf8.RuneError && size == 1 {
			l.addError("invalid UTF-8 encoding", l.currentPos(1))
		}
	}
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) currentPos(length int) token.Position {
	return token.Position{Line: l.line, Column: l.column, Length: length}
}

func (l *Lexer) addError(msg string, pos token.Position) {
	l.errors = append(l.errors, Error{Message: msg, Pos: pos})
}

// NextToken scans and returns the next token, advancing the cursor.
// Once Eof has been returned, further calls keep returning Eof.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	pos := l.currentPos(1)

	if l.ch == 0 {
		return token.Token{Kind: token.Eof, Pos: pos}
	}

	switch {
	case isDigit(l.ch):
		return l.readNumber()
	case isIdentStart(l.ch):
		return l.readIdentifier()
	case l.ch == '"':
		return l.readString()
	}

	ch := l.ch
	switch ch {
	case '(':
		return l.simple(token.LeftParen, pos)
	case ')':
		return l.simple(token.RightParen, pos)
	case '{':
		return l.simple(token.LeftBrace, pos)
	case '}':
		return l.simple(token.RightBrace, pos)
	case ',':
		return l.simple(token.Comma, pos)
	case '.':
		return l.simple(token.Dot, pos)
	case ';':
		return l.simple(token.Semicolon, pos)
	case '+':
		return l.simple(token.Plus, pos)
	case '-':
		return l.simple(token.Minus, pos)
	case '*':
		return l.simple(token.Star, pos)
	case '/':
		return l.simple(token.Slash, pos)
	case '!':
		return l.oneOrTwo(pos, '=', token.Bang, token.BangEqual)
	case '=':
		return l.oneOrTwo(pos, '=', token.Equal, token.EqualEqual)
	case '<':
		return l.oneOrTwo(pos, '=', token.Less, token.LessEqual)
	case '>':
		return l.oneOrTwo(pos, '=', token.Greater, token.GreaterEqual)
	}

	l.addError("unexpected character '"+string(ch)+"'", pos)
	lexeme := string(ch)
	l.readChar()
	return token.Token{Kind: token.Illegal, Lexeme: lexeme, Pos: withLength(pos, 1)}
}

// simple emits a fixed one-character token and advances past it.
func (l *Lexer) simple(kind token.Kind, pos token.Position) token.Token {
	lexeme := string(l.ch)
	l.readChar()
	return token.Token{Kind: kind, Lexeme: lexeme, Pos: withLength(pos, len(lexeme))}
}

// oneOrTwo implements the `!`, `=`, `<`, `>` dispatch:
// peek one character; if it is `=`, consume and emit the two-character
// variant, otherwise emit the one-character variant.
func (l *Lexer) oneOrTwo(pos token.Position, second rune, oneKind, twoKind token.Kind) token.Token {
	first := l.ch
	l.readChar()
	if l.ch == second {
		lexeme := string(first) + string(second)
		l.readChar()
		return token.Token{Kind: twoKind, Lexeme: lexeme, Pos: withLength(pos, len(lexeme))}
	}
	lexeme := string(first)
	return token.Token{Kind: oneKind, Lexeme: lexeme, Pos: withLength(pos, len(lexeme))}
}

// skipWhitespaceAndComments discards whitespace and `//` line comments
// `\n` advances the line counter and resets the column.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch l.ch {
		case ' ', '\t', '\r':
			l.readChar()
		case '\n':
			l.line++
			l.column = 0
			l.readChar()
		case '/':
			if l.peekChar() == '/' {
				for l.ch != '\n' && l.ch != 0 {
					l.readChar()
				}
				continue
			}
			return
		default:
			return
		}
	}
}

// readNumber scans a decimal digit run, optionally followed by a
// fractional part. Numbers may not begin or end with '.': "1." scans as
// two tokens, NUMBER("1") then DOT(".").
func (l *Lexer) readNumber() token.Token {
	pos := l.currentPos(1)
	start := l.position

	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	lexeme := l.input[start:l.position]
	n, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		l.addError("malformed number literal '"+lexeme+"'", pos)
	}
	return token.Token{
		Kind:    token.Number,
		Lexeme:  lexeme,
		Literal: token.Literal{Kind: token.NumberLiteral, Num: n},
		Pos:     withLength(pos, len(lexeme)),
	}
}

// readIdentifier scans an identifier or reserved keyword. Identifiers
// are NFC-normalized before being returned so that two source spellings
// of the same character sequence (e.g. a precomposed 'é' versus 'e' plus
// a combining acute accent) resolve to the same Environment key.
func (l *Lexer) readIdentifier() token.Token {
	pos := l.currentPos(1)
	start := l.position

	for isIdentPart(l.ch) {
		l.readChar()
	}

	length := utf8.RuneCountInString(l.input[start:l.position])
	lexeme := norm.NFC.String(l.input[start:l.position])

	if kind, ok := token.Lookup(lexeme); ok {
		return token.Token{Kind: kind, Lexeme: lexeme, Pos: withLength(pos, length)}
	}
	return token.Token{Kind: token.Identifier, Lexeme: lexeme, Pos: withLength(pos, length)}
}

// readString scans a string literal. The literal value is the verbatim
// text between the quotes — no escape processing (the
// source leaves escape handling an open question, so this implementation
// passes characters through unchanged). An EOF before the closing quote
// is an unterminated-string scan error.
func (l *Lexer) readString() token.Token {
	pos := l.currentPos(1)
	l.readChar() // opening quote

	var sb strings.Builder
	for l.ch != '"' && l.ch != 0 {
		if l.ch == '\n' {
			l.line++
			l.column = 0
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}

	if l.ch == 0 {
		l.addError("unterminated string", pos)
		return token.Token{
			Kind:    token.Illegal,
			Lexeme:  sb.String(),
			Literal: token.Literal{Kind: token.StringLiteral, Str: sb.String()},
			Pos:     pos,
		}
	}

	l.readChar() // closing quote
	text := sb.String()
	return token.Token{
		Kind:    token.String,
		Lexeme:  text,
		Literal: token.Literal{Kind: token.StringLiteral, Str: text},
		Pos:     withLength(pos, utf8.RuneCountInString(text)+2),
	}
}

func withLength(pos token.Position, length int) token.Position {
	pos.Length = length
	return pos
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// isIdentStart reports whether r may begin an identifier: a Unicode
// letter or '_'. Identifiers may not begin with a digit.
func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// isIdentPart reports whether r may continue an identifier: a Unicode
// letter, a Unicode digit, or '_'.
func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
