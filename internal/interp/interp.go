// Package interp implements the tree-walking evaluator: structural
// recursion over the AST against a live environment, producing output
// and optionally runtime errors.
package interp

import (
	"fmt"
	"io"

	"github.com/loxscript/loxscript/internal/ast"
	"github.com/loxscript/loxscript/internal/environment"
	"github.com/loxscript/loxscript/internal/loxerrors"
	"github.com/loxscript/loxscript/internal/token"
	"github.com/loxscript/loxscript/internal/value"
)

// Interpreter walks a statement sequence against a single, persistent
// environment. A zero Interpreter is not usable; construct with New.
type Interpreter struct {
	env    *environment.Environment
	out    io.Writer
	source string
	file   string

	breakFlag bool
}

// New creates an Interpreter whose print output goes to out. The
// environment starts as a single root scope that persists for the
// life of the Interpreter, so a REPL can carry bindings across lines
// so that variables defined on one prompt line are visible on the next.
func New(out io.Writer) *Interpreter {
	return &Interpreter{env: environment.New(), out: out}
}

// Run executes an ordered statement sequence. SetSource should be
// called first if diagnostics should point into real source text.
func (it *Interpreter) Run(statements []ast.Statement) error {
	for _, stmt := range statements {
		if err := it.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SetSource attaches the source text and file name used to render
// runtime error diagnostics (loxerrors.Error.Format).
func (it *Interpreter) SetSource(source, file string) {
	it.source = source
	it.file = file
}

func (it *Interpreter) runtimeError(pos token.Position, format string, args ...interface{}) error {
	return loxerrors.New(loxerrors.Runtime, pos, fmt.Sprintf(format, args...), it.source, it.file)
}

// --- statements ---

func (it *Interpreter) execute(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := it.eval(s.Expression)
		return err

	case *ast.PrintStmt:
		v, err := it.eval(s.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(it.out, v.String())
		return nil

	case *ast.VarStmt:
		v := value.Nil
		if s.Initializer != nil {
			var err error
			v, err = it.eval(s.Initializer)
			if err != nil {
				return err
			}
		}
		it.env.Define(s.Name.Lexeme, v)
		return nil

	case *ast.BlockStmt:
		return it.executeBlock(s.Statements)

	case *ast.IfStmt:
		cond, err := it.eval(s.Condition)
		if err != nil {
			return err
		}
		if cond.Truthy() {
			return it.execute(s.Then)
		}
		if s.Else != nil {
			return it.execute(s.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := it.eval(s.Condition)
			if err != nil {
				return err
			}
			if !cond.Truthy() || it.breakFlag {
				break
			}
			if err := it.execute(s.Body); err != nil {
				return err
			}
			if it.breakFlag {
				break
			}
		}
		it.breakFlag = false
		return nil

	case *ast.BreakStmt:
		it.breakFlag = true
		return nil

	default:
		return it.runtimeError(stmt.Pos(), "unhandled statement type %T", stmt)
	}
}

// executeBlock pushes a fresh scope, runs stmts in order — stopping at
// the first error or once breakFlag is set — and always pops the
// scope afterward, even on an error return (
// "a mechanism that guarantees release on every exit path").
func (it *Interpreter) executeBlock(stmts []ast.Statement) (err error) {
	it.env = it.env.Push()
	defer func() { it.env = it.env.Pop() }()

	for _, stmt := range stmts {
		if err = it.execute(stmt); err != nil {
			return err
		}
		if it.breakFlag {
			return nil
		}
	}
	return nil
}

// --- expressions ---

func (it *Interpreter) eval(expr ast.Expression) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return e.Value, nil

	case *ast.VariableExpr:
		v, ok := it.env.Get(e.Name.Lexeme)
		if !ok {
			return value.Nil, it.runtimeError(e.Pos(), "undefined variable %q", e.Name.Lexeme)
		}
		return v, nil

	case *ast.AssignExpr:
		v, err := it.eval(e.Value)
		if err != nil {
			return value.Nil, err
		}
		if err := it.env.Assign(e.Name.Lexeme, v); err != nil {
			return value.Nil, it.runtimeError(e.Pos(), "undefined variable %q", e.Name.Lexeme)
		}
		return v, nil

	case *ast.GroupingExpr:
		return it.eval(e.Expression)

	case *ast.UnaryExpr:
		return it.evalUnary(e)

	case *ast.BinaryExpr:
		return it.evalBinary(e)

	case *ast.LogicalExpr:
		return it.evalLogical(e)

	case *ast.StrcmpExpr:
		return it.evalStrcmp(e)

	default:
		return value.Nil, it.runtimeError(expr.Pos(), "unhandled expression type %T", expr)
	}
}

func (it *Interpreter) evalUnary(e *ast.UnaryExpr) (value.Value, error) {
	right, err := it.eval(e.Right)
	if err != nil {
		return value.Nil, err
	}

	switch e.Operator.Kind {
	case token.Minus:
		if right.Kind != value.KindNumber {
			return value.Nil, it.runtimeError(e.Pos(), "operand of unary '-' must be a number")
		}
		return value.Number(-right.Num), nil
	case token.Bang:
		return value.Bool(!right.Truthy()), nil
	default:
		return value.Nil, it.runtimeError(e.Pos(), "unhandled unary operator %q", e.Operator.Lexeme)
	}
}

func (it *Interpreter) evalBinary(e *ast.BinaryExpr) (value.Value, error) {
	left, err := it.eval(e.Left)
	if err != nil {
		return value.Nil, err
	}
	right, err := it.eval(e.Right)
	if err != nil {
		return value.Nil, err
	}

	switch e.Operator.Kind {
	case token.EqualEqual:
		return value.Bool(left.Equal(right)), nil
	case token.BangEqual:
		return value.Bool(!left.Equal(right)), nil
	}

	if left.Kind != value.KindNumber || right.Kind != value.KindNumber {
		return value.Nil, it.runtimeError(e.Pos(), "invalid expression: %s %s %s",
			left.TypeName(), e.Operator.Lexeme, right.TypeName())
	}

	switch e.Operator.Kind {
	case token.Plus:
		return value.Number(left.Num + right.Num), nil
	case token.Minus:
		return value.Number(left.Num - right.Num), nil
	case token.Star:
		return value.Number(left.Num * right.Num), nil
	case token.Slash:
		return value.Number(left.Num / right.Num), nil // IEEE-754: division by zero yields inf/nan, not an error
	case token.Less:
		return value.Bool(left.Num < right.Num), nil
	case token.LessEqual:
		return value.Bool(left.Num <= right.Num), nil
	case token.Greater:
		return value.Bool(left.Num > right.Num), nil
	case token.GreaterEqual:
		return value.Bool(left.Num >= right.Num), nil
	default:
		return value.Nil, it.runtimeError(e.Pos(), "unhandled binary operator %q", e.Operator.Lexeme)
	}
}

// evalLogical implements short-circuit `and`/`or`, returning the raw
// operand value rather than a coerced boolean.
func (it *Interpreter) evalLogical(e *ast.LogicalExpr) (value.Value, error) {
	left, err := it.eval(e.Left)
	if err != nil {
		return value.Nil, err
	}

	if e.Operator.Kind == token.Or {
		if left.Truthy() {
			return left, nil
		}
		return it.eval(e.Right)
	}

	// and
	if !left.Truthy() {
		return left, nil
	}
	return it.eval(e.Right)
}
