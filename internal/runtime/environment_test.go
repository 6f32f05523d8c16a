package runtime

import (
	"testing"
)

func mustGet(t *testing.T, env *Environment, name string) Value {
	t.Helper()
	v, ok := env.Get(name)
	if !ok {
		t.Fatalf("expected %q to be bound", name)
	}
	return v
}

func TestEnvironmentLocalBinding(t *testing.T) {
	env := NewEnvironment()
	env.AddLevel()
	env.Set("k", Int(2), true)

	if got := mustGet(t, env, "k"); got != Int(2) {
		t.Fatalf("expected=%v, got=%v", Int(2), got)
	}

	env.PopLevel()
	if env.Has("k") {
		t.Fatalf("local binding survived its frame")
	}
}

func TestEnvironmentNonLocalOverwritesNearest(t *testing.T) {
	env := NewEnvironment()
	env.Set("x", Int(1), false)

	env.AddLevel()
	env.Set("x", Int(10), true)
	env.AddLevel()
	env.Set("x", Int(20), false)

	if got := mustGet(t, env, "x"); got != Int(20) {
		t.Fatalf("expected=%v, got=%v", Int(20), got)
	}

	env.PopLevel()
	if got := mustGet(t, env, "x"); got != Int(20) {
		t.Fatalf("middle frame: expected=%v, got=%v", Int(20), got)
	}

	env.PopLevel()
	if got := mustGet(t, env, "x"); got != Int(1) {
		t.Fatalf("global frame: expected=%v, got=%v", Int(1), got)
	}
}

func TestEnvironmentNonLocalCreatesGlobal(t *testing.T) {
	env := NewEnvironment()
	env.AddLevel()
	env.AddLevel()
	env.Set("g", String("v"), false)
	env.PopLevel()
	env.PopLevel()

	if got := mustGet(t, env, "g"); got != String("v") {
		t.Fatalf("expected=%v, got=%v", String("v"), got)
	}
}

func TestEnvironmentGlobalFrameIsPermanent(t *testing.T) {
	env := NewEnvironment()
	env.Set("a", Bool(true), true)

	env.PopLevel()
	env.PopLevel()

	if env.Depth() != 0 {
		t.Fatalf("expected depth 0, got %d", env.Depth())
	}
	if !env.Has("a") {
		t.Fatalf("global binding lost after popping past the global frame")
	}
}

func TestEnvironmentDepthAndGlobals(t *testing.T) {
	env := NewEnvironment()
	env.Set("b", Int(1), false)
	env.Set("a", Int(2), false)

	env.AddLevel()
	env.AddLevel()
	env.Set("inner", Int(3), true)

	if env.Depth() != 2 {
		t.Fatalf("expected depth 2, got %d", env.Depth())
	}

	globals := env.Globals()
	if len(globals) != 2 || globals[0] != "a" || globals[1] != "b" {
		t.Fatalf("expected=[a b], got=%v", globals)
	}
}

func TestEnvironmentUnbound(t *testing.T) {
	env := NewEnvironment()
	if v, ok := env.Get("missing"); ok || v != nil {
		t.Fatalf("expected unbound, got %v, %v", v, ok)
	}
}

func TestEnvironmentClear(t *testing.T) {
	env := NewEnvironment()
	env.Set("g", Int(1), false)
	env.AddLevel()
	env.AddLevel()
	env.Set("l", Int(2), true)

	env.Clear()

	if d := env.Depth(); d != 0 {
		t.Fatalf("expected=%d, got=%d", 0, d)
	}
	if env.Has("g") || env.Has("l") {
		t.Fatalf("Clear kept bindings: %v", env.Globals())
	}
	env.Set("g", Int(3), false)
	if v := mustGet(t, env, "g"); v != Int(3) {
		t.Fatalf("expected=%v, got=%v", Int(3), v)
	}
}
