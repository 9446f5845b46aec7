package environment

import (
	"testing"

	"github.com/loxscript/loxscript/internal/value"
)

func TestDefineAndGet(t *testing.T) {
	env := New()
	env.Define("x", value.Number(42))

	got, ok := env.Get("x")
	if !ok {
		t.Fatal("variable 'x' not found after definition")
	}
	if got.Num != 42 {
		t.Errorf("Get(x) = %v, want 42", got)
	}
}

func TestGetUndefined(t *testing.T) {
	env := New()
	if _, ok := env.Get("missing"); ok {
		t.Error("expected undefined variable lookup to return ok=false")
	}
}

func TestRedefineInSameScopeOverwrites(t *testing.T) {
	env := New()
	env.Define("x", value.Number(1))
	env.Define("x", value.Number(2))

	got, _ := env.Get("x")
	if got.Num != 2 {
		t.Errorf("Get(x) = %v, want 2 after redefinition", got)
	}
}

func TestInnerScopeSeesOuterBinding(t *testing.T) {
	outer := New()
	outer.Define("x", value.Number(1))

	inner := outer.Push()
	got, ok := inner.Get("x")
	if !ok || got.Num != 1 {
		t.Errorf("inner.Get(x) = %v, %v; want 1, true", got, ok)
	}
}

func TestInnerScopeShadowsOuterBinding(t *testing.T) {
	outer := New()
	outer.Define("x", value.Number(1))

	inner := outer.Push()
	inner.Define("x", value.Number(2))

	got, _ := inner.Get("x")
	if got.Num != 2 {
		t.Errorf("inner.Get(x) = %v, want 2 (shadowed)", got)
	}

	outerGot, _ := outer.Get("x")
	if outerGot.Num != 1 {
		t.Errorf("outer.Get(x) = %v, want 1 (unaffected by shadowing)", outerGot)
	}
}

func TestAssignUpdatesNearestDefiningScope(t *testing.T) {
	outer := New()
	outer.Define("x", value.Number(1))
	inner := outer.Push()

	if err := inner.Assign("x", value.Number(99)); err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}

	got, _ := outer.Get("x")
	if got.Num != 99 {
		t.Errorf("outer.Get(x) = %v, want 99 after inner assign", got)
	}
	if _, ok := inner.store["x"]; ok {
		t.Error("Assign should not create a new binding in the inner scope")
	}
}

func TestAssignUndefinedVariableFails(t *testing.T) {
	env := New()
	if err := env.Assign("missing", value.Number(1)); err == nil {
		t.Error("expected error assigning to an undefined variable")
	}
}

func TestPopDiscardsInnerBindings(t *testing.T) {
	outer := New()
	inner := outer.Push()
	inner.Define("local", value.Number(1))

	back := inner.Pop()
	if back != outer {
		t.Fatal("Pop did not return the enclosing scope")
	}
	if _, ok := back.Get("local"); ok {
		t.Error("binding from popped scope leaked into the outer scope")
	}
}

func TestPopRootPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected Pop on the root scope to panic")
		}
	}()
	New().Pop()
}
