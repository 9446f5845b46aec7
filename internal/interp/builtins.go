package interp

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/loxscript/loxscript/internal/ast"
	"github.com/loxscript/loxscript/internal/value"
)

// collator is a package-level root-locale collator (language.Und, i.e.
// "undetermined"), built on golang.org/x/text/collate + golang.org/x/text/language,
// fixed to one locale since the grammar gives strcmp exactly two
// arguments with no locale parameter.
var collator = collate.New(language.Und)

// evalStrcmp implements the `strcmp(a, b)` builtin: a locale-aware
// string comparison returning Number(-1), Number(0), or
// Number(1).
func (it *Interpreter) evalStrcmp(e *ast.StrcmpExpr) (value.Value, error) {
	left, err := it.eval(e.Left)
	if err != nil {
		return value.Nil, err
	}
	right, err := it.eval(e.Right)
	if err != nil {
		return value.Nil, err
	}

	if left.Kind != value.KindString || right.Kind != value.KindString {
		return value.Nil, it.runtimeError(e.Pos(), "strcmp() expects two strings, got %s and %s",
			left.TypeName(), right.TypeName())
	}

	result := collator.CompareString(left.Str, right.Str)
	switch {
	case result < 0:
		return value.Number(-1), nil
	case result > 0:
		return value.Number(1), nil
	default:
		return value.Number(0), nil
	}
}
