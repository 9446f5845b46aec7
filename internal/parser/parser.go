// Package parser implements a recursive-descent parser with one-token
// lookahead and panic-mode error recovery.
package parser

import (
	"fmt"

	"github.com/loxscript/loxscript/internal/ast"
	"github.com/loxscript/loxscript/internal/loxerrors"
	"github.com/loxscript/loxscript/internal/token"
	"github.com/loxscript/loxscript/internal/value"
)

// syncKeywords are the statement-starting keywords synchronize() scans
// forward to after a parse error.
var syncKeywords = map[token.Kind]bool{
	token.Class:  true,
	token.Var:    true,
	token.For:    true,
	token.If:     true,
	token.While:  true,
	token.Print:  true,
	token.Return: true,
	token.Fun:    true,
}

// Parser turns a token stream into an ordered statement sequence.
type Parser struct {
	tokens  []token.Token
	current int
	source  string
	file    string
	strict  bool // file mode is strict, interactive mode is lenient
	inLoop  int  // nesting depth of while/for, for break validity

	errors []*loxerrors.Error
}

// New creates a Parser over tokens already produced by the lexer.
// source and file are used only to render diagnostics; file may be
// empty for stdin/REPL input.
func New(tokens []token.Token, strict bool, source, file string) *Parser {
	return &Parser{tokens: tokens, strict: strict, source: source, file: file}
}

// Errors returns every parse error accumulated so far.
func (p *Parser) Errors() []*loxerrors.Error {
	return p.errors
}

// Parse parses the whole token stream. If any statement fails to
// parse, the returned slice is empty and every error is available via
// Errors(); no partial program is ever returned alongside errors.
func (p *Parser) Parse() []ast.Statement {
	var statements []ast.Statement
	for !p.isAtEnd() {
		stmt := p.declaration()
		if stmt != nil {
			statements = append(statements, stmt)
		}
	}
	if len(p.errors) > 0 {
		return nil
	}
	return statements
}

// --- token cursor helpers ---

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == token.Eof
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(kind token.Kind) bool {
	if p.isAtEnd() {
		return kind == token.Eof
	}
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past an expected token kind, or records a parse
// error and panics with parseError to unwind to the nearest recovery
// point.
func (p *Parser) consume(kind token.Kind, message string) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	panic(p.errorAt(p.peek(), message))
}

// parseError is the sentinel panic value used to unwind a failed
// production up to synchronize(); the error itself is already recorded
// in p.errors by the time it is thrown.
type parseError struct{}

func (p *Parser) errorAt(tok token.Token, message string) parseError {
	p.errors = append(p.errors, loxerrors.New(loxerrors.Parse, tok.Pos, message, p.source, p.file))
	return parseError{}
}

// synchronize discards tokens until it reaches a likely statement
// boundary: the token after a consumed ';', or a statement-starting
// keyword.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == token.Semicolon {
			return
		}
		if syncKeywords[p.peek().Kind] {
			return
		}
		p.advance()
	}
}

// --- declarations & statements ---

// declaration parses one top-level statement. A parseError panic
// raised anywhere below is caught here, turned into a synchronize()
// call, and reported to Parse's loop as a nil statement (dropped, per
// A failing statement discards the whole program but
// parsing still continues far enough to collect every error).
func (p *Parser) declaration() (stmt ast.Statement) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()

	if p.match(token.Var) {
		return p.varDecl()
	}
	return p.statement()
}

func (p *Parser) varDecl() ast.Statement {
	name := p.consume(token.Identifier, "expect variable name")

	var initializer ast.Expression
	if p.match(token.Equal) {
		initializer = p.expression()
	}

	p.consumeStatementEnd("expect ';' after variable declaration")
	return &ast.VarStmt{Name: name, Initializer: initializer}
}

func (p *Parser) statement() ast.Statement {
	switch {
	case p.match(token.Print):
		return p.printStmt()
	case p.match(token.If):
		return p.ifStmt()
	case p.match(token.While):
		return p.whileStmt()
	case p.match(token.For):
		return p.forStmt()
	case p.match(token.Break):
		return p.breakStmt()
	case p.match(token.LeftBrace):
		return p.block()
	default:
		return p.exprStmt()
	}
}

func (p *Parser) printStmt() ast.Statement {
	keyword := p.previous()
	expr := p.expression()
	p.consumeStatementEnd("expect ';' after value")
	return &ast.PrintStmt{Keyword: keyword, Expression: expr}
}

func (p *Parser) exprStmt() ast.Statement {
	expr := p.expression()
	p.consumeStatementEnd("expect ';' after expression")
	return &ast.ExpressionStmt{Expression: expr}
}

func (p *Parser) block() *ast.BlockStmt {
	lbrace := p.previous()
	var statements []ast.Statement
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		stmt := p.declaration()
		if stmt != nil {
			statements = append(statements, stmt)
		}
	}
	p.consume(token.RightBrace, "expect '}' after block")
	return &ast.BlockStmt{LBrace: lbrace, Statements: statements}
}

func (p *Parser) ifStmt() ast.Statement {
	keyword := p.previous()
	p.consume(token.LeftParen, "expect '(' after 'if'")
	condition := p.expression()
	p.consume(token.RightParen, "expect ')' after if condition")

	thenBranch := p.statement()
	var elseBranch ast.Statement
	if p.match(token.Else) {
		elseBranch = p.statement()
	}
	return &ast.IfStmt{Keyword: keyword, Condition: condition, Then: thenBranch, Else: elseBranch}
}

func (p *Parser) whileStmt() ast.Statement {
	keyword := p.previous()
	p.consume(token.LeftParen, "expect '(' after 'while'")
	condition := p.expression()
	p.consume(token.RightParen, "expect ')' after while condition")

	p.inLoop++
	body := p.statement()
	p.inLoop--

	return &ast.WhileStmt{Keyword: keyword, Condition: condition, Body: body}
}

// forStmt desugars the C-style for loop into a Block wrapping a While,
// so parsing continues at the next statement boundary.
func (p *Parser) forStmt() ast.Statement {
	keyword := p.previous()
	p.consume(token.LeftParen, "expect '(' after 'for'")

	var initializer ast.Statement
	switch {
	case p.match(token.Semicolon):
		initializer = nil
	case p.match(token.Var):
		initializer = p.varDecl()
	default:
		initializer = p.exprStmt()
	}

	var condition ast.Expression
	if !p.check(token.Semicolon) {
		condition = p.expression()
	}
	p.consume(token.Semicolon, "expect ';' after loop condition")

	var increment ast.Expression
	if !p.check(token.RightParen) {
		increment = p.expression()
	}
	p.consume(token.RightParen, "expect ')' after for clauses")

	p.inLoop++
	body := p.statement()
	p.inLoop--

	if condition == nil {
		condition = &ast.LiteralExpr{Token: keyword, Value: value.Bool(true)}
	}

	var incrStmt ast.Statement
	if increment != nil {
		incrStmt = &ast.ExpressionStmt{Expression: increment}
	}

	loopBody := ast.NewBlock(keyword, body, incrStmt)
	whileLoop := &ast.WhileStmt{Keyword: keyword, Condition: condition, Body: loopBody}

	return ast.NewBlock(keyword, initializer, whileLoop)
}

func (p *Parser) breakStmt() ast.Statement {
	keyword := p.previous()
	if p.inLoop == 0 {
		panic(p.errorAt(keyword, "'break' outside a loop"))
	}
	p.consumeStatementEnd("expect ';' after 'break'")
	return &ast.BreakStmt{Keyword: keyword}
}

// consumeStatementEnd enforces that in strict (file) mode a
// missing ';' is an error; in lenient (interactive) mode it is silently
// synthesized wherever a ';' is expected, whatever token comes next.
func (p *Parser) consumeStatementEnd(message string) {
	if p.match(token.Semicolon) {
		return
	}
	if !p.strict {
		return
	}
	panic(p.errorAt(p.peek(), message))
}

// --- expressions, lowest to highest precedence ---

func (p *Parser) expression() ast.Expression {
	return p.assignment()
}

func (p *Parser) assignment() ast.Expression {
	expr := p.logicOr()

	if p.match(token.Equal) {
		equals := p.previous()
		value := p.assignment()

		if name, ok := expr.(*ast.VariableExpr); ok {
			return &ast.AssignExpr{Name: name.Name, Value: value}
		}
		p.errorAt(equals, "invalid assignment target")
		return expr
	}
	return expr
}

func (p *Parser) logicOr() ast.Expression {
	expr := p.logicAnd()
	for p.match(token.Or) {
		op := p.previous()
		right := p.logicAnd()
		expr = &ast.LogicalExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) logicAnd() ast.Expression {
	expr := p.equality()
	for p.match(token.And) {
		op := p.previous()
		right := p.equality()
		expr = &ast.LogicalExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expression {
	expr := p.comparison()
	for p.match(token.BangEqual, token.EqualEqual) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.BinaryExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expression {
	expr := p.term()
	for p.match(token.Greater, token.GreaterEqual, token.Less, token.LessEqual) {
		op := p.previous()
		right := p.term()
		expr = &ast.BinaryExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expression {
	expr := p.factor()
	for p.match(token.Minus, token.Plus) {
		op := p.previous()
		right := p.factor()
		expr = &ast.BinaryExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expression {
	expr := p.unary()
	for p.match(token.Slash, token.Star) {
		op := p.previous()
		right := p.unary()
		expr = &ast.BinaryExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expression {
	if p.match(token.Bang, token.Minus) {
		op := p.previous()
		right := p.unary()
		return &ast.UnaryExpr{Operator: op, Right: right}
	}
	return p.primary()
}

func (p *Parser) primary() ast.Expression {
	switch {
	case p.match(token.False):
		return &ast.LiteralExpr{Token: p.previous(), Value: value.Bool(false)}
	case p.match(token.True):
		return &ast.LiteralExpr{Token: p.previous(), Value: value.Bool(true)}
	case p.match(token.Nil):
		return &ast.LiteralExpr{Token: p.previous(), Value: value.Nil}
	case p.match(token.Number):
		tok := p.previous()
		return &ast.LiteralExpr{Token: tok, Value: value.Number(tok.Literal.Num)}
	case p.match(token.String):
		tok := p.previous()
		return &ast.LiteralExpr{Token: tok, Value: value.String(tok.Literal.Str)}
	case p.match(token.Identifier):
		return &ast.VariableExpr{Name: p.previous()}
	case p.match(token.Strcmp):
		return p.strcmpExpr()
	case p.match(token.LeftParen):
		lparen := p.previous()
		expr := p.expression()
		p.consume(token.RightParen, "expect ')' after expression")
		return &ast.GroupingExpr{LParen: lparen, Expression: expr}
	}

	panic(p.errorAt(p.peek(), fmt.Sprintf("expect expression, got %s", p.peek().Kind)))
}

// strcmpExpr parses the `strcmp(a, b)` builtin call addendum to the
// grammar.
func (p *Parser) strcmpExpr() ast.Expression {
	keyword := p.previous()
	p.consume(token.LeftParen, "expect '(' after 'strcmp'")
	left := p.expression()
	p.consume(token.Comma, "expect ',' between strcmp arguments")
	right := p.expression()
	p.consume(token.RightParen, "expect ')' after strcmp arguments")
	return &ast.StrcmpExpr{Keyword: keyword, Left: left, Right: right}
}
