package ast

import (
	"fmt"
	"strings"

	"github.com/loxscript/loxscript/internal/token"
	"github.com/loxscript/loxscript/internal/value"
)

// LiteralExpr wraps a compile-time constant (Expression →
// Literal(Value)).
type LiteralExpr struct {
	Token token.Token
	Value value.Value
}

func (e *LiteralExpr) expressionNode()     {}
func (e *LiteralExpr) Pos() token.Position { return e.Token.Pos }
func (e *LiteralExpr) String() string {
	if e.Value.Kind == value.KindString {
		return fmt.Sprintf("%q", e.Value.Str)
	}
	return e.Value.String()
}

// VariableExpr reads a binding from the environment (Expression → Variable).
type VariableExpr struct {
	Name token.Token
}

func (e *VariableExpr) expressionNode()     {}
func (e *VariableExpr) Pos() token.Position { return e.Name.Pos }
func (e *VariableExpr) String() string      { return e.Name.Lexeme }

// AssignExpr assigns to an existing binding and evaluates to the assigned
// value (Expression → Assignment).
type AssignExpr struct {
	Name  token.Token
	Value Expression
}

func (e *AssignExpr) expressionNode()     {}
func (e *AssignExpr) Pos() token.Position { return e.Name.Pos }
func (e *AssignExpr) String() string {
	return fmt.Sprintf("(= %s %s)", e.Name.Lexeme, e.Value.String())
}

// GroupingExpr is a parenthesized sub-expression (Expression → Grouping).
type GroupingExpr struct {
	LParen     token.Token
	Expression Expression
}

func (e *GroupingExpr) expressionNode()     {}
func (e *GroupingExpr) Pos() token.Position { return e.LParen.Pos }
func (e *GroupingExpr) String() string {
	return fmt.Sprintf("(group %s)", e.Expression.String())
}

// UnaryExpr applies a prefix operator to its operand (Expression → Unary).
type UnaryExpr struct {
	Operator token.Token
	Right    Expression
}

func (e *UnaryExpr) expressionNode()     {}
func (e *UnaryExpr) Pos() token.Position { return e.Operator.Pos }
func (e *UnaryExpr) String() string {
	return fmt.Sprintf("(%s %s)", e.Operator.Lexeme, e.Right.String())
}

// BinaryExpr applies an arithmetic or comparison operator to both
// operands, both of which are always evaluated (Expression → Binary).
type BinaryExpr struct {
	Left     Expression
	Operator token.Token
	Right    Expression
}

func (e *BinaryExpr) expressionNode()     {}
func (e *BinaryExpr) Pos() token.Position { return e.Operator.Pos }
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Operator.Lexeme, e.Left.String(), e.Right.String())
}

// LogicalExpr is `and`/`or`: distinct from BinaryExpr because it
// short-circuits and returns the raw operand, not a coerced boolean
// (Expression → Logical).
type LogicalExpr struct {
	Left     Expression
	Operator token.Token
	Right    Expression
}

func (e *LogicalExpr) expressionNode()     {}
func (e *LogicalExpr) Pos() token.Position { return e.Operator.Pos }
func (e *LogicalExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Operator.Lexeme, e.Left.String(), e.Right.String())
}

// StrcmpExpr is a fixed-arity builtin
// call, `strcmp(a, b)`, giving golang.org/x/text/collate a component to
// exercise without introducing user-defined functions.
type StrcmpExpr struct {
	Keyword token.Token
	Left    Expression
	Right   Expression
}

func (e *StrcmpExpr) expressionNode()     {}
func (e *StrcmpExpr) Pos() token.Position { return e.Keyword.Pos }
func (e *StrcmpExpr) String() string {
	return fmt.Sprintf("(strcmp %s %s)", e.Left.String(), e.Right.String())
}

// parenthesize renders head and parts as one space-separated,
// parenthesized list; used by the statement printers in stmt.go.
func parenthesize(head string, parts ...string) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(head)
	for _, p := range parts {
		sb.WriteByte(' ')
		sb.WriteString(p)
	}
	sb.WriteByte(')')
	return sb.String()
}
