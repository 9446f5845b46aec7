package ast

import (
	"strings"

	"github.com/loxscript/loxscript/internal/token"
)

// ExpressionStmt evaluates an expression for its side effect and
// discards the value (Statement → ExpressionStatement).
type ExpressionStmt struct {
	Expression Expression
}

func (s *ExpressionStmt) statementNode()     {}
func (s *ExpressionStmt) Pos() token.Position { return s.Expression.Pos() }
func (s *ExpressionStmt) String() string      { return parenthesize("expr", s.Expression.String()) }

// PrintStmt evaluates an expression and writes its canonical string form
// followed by a newline to the output sink (Statement → PrintStatement).
type PrintStmt struct {
	Keyword    token.Token
	Expression Expression
}

func (s *PrintStmt) statementNode()     {}
func (s *PrintStmt) Pos() token.Position { return s.Keyword.Pos }
func (s *PrintStmt) String() string      { return parenthesize("print", s.Expression.String()) }

// VarStmt declares a new binding in the innermost scope, initialized
// either from an expression or to Nil (Statement → VarDeclaration).
type VarStmt struct {
	Name        token.Token
	Initializer Expression // nil if absent
}

func (s *VarStmt) statementNode()     {}
func (s *VarStmt) Pos() token.Position { return s.Name.Pos }
func (s *VarStmt) String() string {
	if s.Initializer == nil {
		return parenthesize("var", s.Name.Lexeme)
	}
	return parenthesize("var", s.Name.Lexeme, "=", s.Initializer.String())
}

// BlockStmt is an ordered sequence of statements executed in a freshly
// pushed scope (Statement → Block).
type BlockStmt struct {
	LBrace     token.Token
	Statements []Statement
}

func (s *BlockStmt) statementNode()     {}
func (s *BlockStmt) Pos() token.Position { return s.LBrace.Pos }
func (s *BlockStmt) String() string {
	var sb strings.Builder
	sb.WriteString("(block")
	for _, stmt := range s.Statements {
		sb.WriteByte(' ')
		sb.WriteString(stmt.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// IfStmt executes Then when Condition is truthy, else Else if present
// (Statement → If).
type IfStmt struct {
	Keyword   token.Token
	Condition Expression
	Then      Statement
	Else      Statement // nil if absent
}

func (s *IfStmt) statementNode()     {}
func (s *IfStmt) Pos() token.Position { return s.Keyword.Pos }
func (s *IfStmt) String() string {
	if s.Else == nil {
		return parenthesize("if", s.Condition.String(), s.Then.String())
	}
	return parenthesize("if", s.Condition.String(), s.Then.String(), s.Else.String())
}

// WhileStmt repeatedly executes Body while Condition is truthy and the
// loop has not been broken out of (Statement → While).
type WhileStmt struct {
	Keyword   token.Token
	Condition Expression
	Body      Statement
}

func (s *WhileStmt) statementNode()     {}
func (s *WhileStmt) Pos() token.Position { return s.Keyword.Pos }
func (s *WhileStmt) String() string {
	return parenthesize("while", s.Condition.String(), s.Body.String())
}

// BreakStmt exits the innermost enclosing loop (Statement → Break).
type BreakStmt struct {
	Keyword token.Token
}

func (s *BreakStmt) statementNode()     {}
func (s *BreakStmt) Pos() token.Position { return s.Keyword.Pos }
func (s *BreakStmt) String() string      { return "(break)" }

// NewBlock is a small constructor used by the parser's for-loop
// desugaring to assemble a Block from parts that may be
// nil/absent without every call site re-checking for nil slices.
func NewBlock(pos token.Token, stmts ...Statement) *BlockStmt {
	out := make([]Statement, 0, len(stmts))
	for _, s := range stmts {
		if s != nil {
			out = append(out, s)
		}
	}
	return &BlockStmt{LBrace: pos, Statements: out}
}
