package parser

import (
	"testing"

	"github.com/loxscript/loxscript/internal/ast"
	"github.com/loxscript/loxscript/internal/lexer"
)

// parse lexes and parses src in strict mode, failing the test on any
// parse error.
func parse(t *testing.T, src string) []ast.Statement {
	t.Helper()
	tokens, lexErrs := lexer.New(src).ScanAll()
	if len(lexErrs) != 0 {
		t.Fatalf("unexpected scan errors: %v", lexErrs)
	}
	p := New(tokens, true, src, "")
	stmts := p.Parse()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	return stmts
}

func TestBinaryPrecedenceRoundTrip(t *testing.T) {
	stmts := parse(t, "print 2 + 2 * 5;")
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	printStmt, ok := stmts[0].(*ast.PrintStmt)
	if !ok {
		t.Fatalf("statement = %T, want *ast.PrintStmt", stmts[0])
	}
	if got, want := printStmt.Expression.String(), "(+ 2 (* 2 5))"; got != want {
		t.Errorf("expression String() = %q, want %q", got, want)
	}
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	stmts := parse(t, "a = b = 3;")
	exprStmt := stmts[0].(*ast.ExpressionStmt)
	outer, ok := exprStmt.Expression.(*ast.AssignExpr)
	if !ok {
		t.Fatalf("expression = %T, want *ast.AssignExpr", exprStmt.Expression)
	}
	if outer.Name.Lexeme != "a" {
		t.Errorf("outer assignment target = %q, want a", outer.Name.Lexeme)
	}
	if _, ok := outer.Value.(*ast.AssignExpr); !ok {
		t.Errorf("outer assignment value = %T, want nested *ast.AssignExpr", outer.Value)
	}
}

func TestLogicOperatorsProduceLogicalExpr(t *testing.T) {
	stmts := parse(t, "print nil or \"hello\";")
	printStmt := stmts[0].(*ast.PrintStmt)
	if _, ok := printStmt.Expression.(*ast.LogicalExpr); !ok {
		t.Fatalf("expression = %T, want *ast.LogicalExpr", printStmt.Expression)
	}
}

func TestInvalidAssignmentTargetIsReported(t *testing.T) {
	tokens, _ := lexer.New("1 = 2;").ScanAll()
	p := New(tokens, true, "1 = 2;", "")
	p.Parse()
	if len(p.Errors()) == 0 {
		t.Fatal("expected an invalid-assignment-target error")
	}
}

func TestBreakOutsideLoopIsParseError(t *testing.T) {
	tokens, _ := lexer.New("break;").ScanAll()
	p := New(tokens, true, "break;", "")
	p.Parse()
	if len(p.Errors()) == 0 {
		t.Fatal("expected a parse error for break outside a loop")
	}
}

func TestBreakInsideWhileIsValid(t *testing.T) {
	parse(t, "while (true) { break; }")
}

func TestForLoopDesugarsToBlockWhile(t *testing.T) {
	stmts := parse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}

	outer, ok := stmts[0].(*ast.BlockStmt)
	if !ok {
		t.Fatalf("statement = %T, want *ast.BlockStmt", stmts[0])
	}
	if len(outer.Statements) != 2 {
		t.Fatalf("outer block has %d statements, want 2 (init, while)", len(outer.Statements))
	}
	if _, ok := outer.Statements[0].(*ast.VarStmt); !ok {
		t.Errorf("outer.Statements[0] = %T, want *ast.VarStmt", outer.Statements[0])
	}
	whileStmt, ok := outer.Statements[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("outer.Statements[1] = %T, want *ast.WhileStmt", outer.Statements[1])
	}

	body, ok := whileStmt.Body.(*ast.BlockStmt)
	if !ok {
		t.Fatalf("while body = %T, want *ast.BlockStmt", whileStmt.Body)
	}
	if len(body.Statements) != 2 {
		t.Fatalf("while body has %d statements, want 2 (body, increment)", len(body.Statements))
	}
}

func TestForLoopWithoutConditionDefaultsToTrue(t *testing.T) {
	stmts := parse(t, "for (;;) { break; }")
	outer := stmts[0].(*ast.BlockStmt)
	// initializer omitted -> outer block has just the while
	if len(outer.Statements) != 1 {
		t.Fatalf("outer block has %d statements, want 1 (no initializer)", len(outer.Statements))
	}
	whileStmt, ok := outer.Statements[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("outer.Statements[0] = %T, want *ast.WhileStmt", outer.Statements[0])
	}
	lit, ok := whileStmt.Condition.(*ast.LiteralExpr)
	if !ok || lit.String() != "true" {
		t.Errorf("condition = %#v, want literal true", whileStmt.Condition)
	}
}

func TestBlockScopeNesting(t *testing.T) {
	stmts := parse(t, `var a = "global a";
	{ var a = "local a"; print a; }
	print a;`)
	if len(stmts) != 3 {
		t.Fatalf("got %d statements, want 3", len(stmts))
	}
	if _, ok := stmts[1].(*ast.BlockStmt); !ok {
		t.Errorf("stmts[1] = %T, want *ast.BlockStmt", stmts[1])
	}
}

func TestLenientModeSynthesizesMissingSemicolon(t *testing.T) {
	tokens, _ := lexer.New("print 1").ScanAll()
	p := New(tokens, false, "print 1", "")
	stmts := p.Parse()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected errors in lenient mode: %v", p.Errors())
	}
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
}

func TestStrictModeRequiresSemicolon(t *testing.T) {
	tokens, _ := lexer.New("print 1").ScanAll()
	p := New(tokens, true, "print 1", "")
	p.Parse()
	if len(p.Errors()) == 0 {
		t.Fatal("expected a missing-semicolon error in strict mode")
	}
}

func TestStrcmpCallParses(t *testing.T) {
	stmts := parse(t, `print strcmp("a", "b");`)
	printStmt := stmts[0].(*ast.PrintStmt)
	if _, ok := printStmt.Expression.(*ast.StrcmpExpr); !ok {
		t.Fatalf("expression = %T, want *ast.StrcmpExpr", printStmt.Expression)
	}
}

func TestAllStatementsFailDropsWholeProgram(t *testing.T) {
	tokens, _ := lexer.New("var ;").ScanAll()
	p := New(tokens, true, "var ;", "")
	stmts := p.Parse()
	if stmts != nil {
		t.Errorf("Parse() = %v, want nil when a statement fails to parse", stmts)
	}
	if len(p.Errors()) == 0 {
		t.Fatal("expected at least one parse error")
	}
}
