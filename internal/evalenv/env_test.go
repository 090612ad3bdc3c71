package evalenv

import (
	"testing"

	"github.com/chainscript/ride/internal/object"
	"github.com/chainscript/ride/internal/rtype"
)

func TestLookupAndShadowChain(t *testing.T) {
	env := Empty.Extend("x", rtype.Int{}, object.Int(1))
	if !env.Bound("x") {
		t.Fatal("expected x to be bound")
	}
	if env.Bound("y") {
		t.Fatal("did not expect y to be bound")
	}

	typ, val, ok := env.Lookup("x")
	if !ok || !rtype.Equal(typ, rtype.Int{}) || val.(object.Int) != 1 {
		t.Fatalf("Lookup(x) = %v, %v, %v; want Int, Int(1), true", typ, val, ok)
	}

	inner := env.Extend("y", rtype.Boolean{}, object.Boolean(true))
	if !inner.Bound("x") {
		t.Fatal("inner scope should still see outer binding x")
	}
	if !inner.Bound("y") {
		t.Fatal("inner scope should see its own binding y")
	}
	if env.Bound("y") {
		t.Fatal("outer scope must not see inner's binding (no leakage)")
	}
}

func TestTypeOnlyBinding(t *testing.T) {
	env := Empty.Extend("x", rtype.Int{}, nil)
	typ, val, ok := env.Lookup("x")
	if !ok || !rtype.Equal(typ, rtype.Int{}) || val != nil {
		t.Fatalf("Lookup(x) = %v, %v, %v; want Int, nil, true", typ, val, ok)
	}
}
