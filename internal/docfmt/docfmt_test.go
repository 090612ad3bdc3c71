package docfmt

import (
	"encoding/base64"
	"testing"

	"github.com/chainscript/ride/internal/ast"
)

func TestBuildSum(t *testing.T) {
	n := Node{Op: "SUM", Args: []Node{
		{Op: "CONST_INT", Value: 1},
		{Op: "CONST_INT", Value: 2},
	}}
	expr, err := Build(n)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	sum, ok := expr.(ast.Sum)
	if !ok {
		t.Fatalf("got %T, want ast.Sum", expr)
	}
	if sum.A.(ast.ConstInt).Value != 1 || sum.B.(ast.ConstInt).Value != 2 {
		t.Errorf("got %+v", sum)
	}
}

func TestBuildBlockWithLet(t *testing.T) {
	n := Node{
		Op:  "BLOCK",
		Let: &Let{Name: "x", Value: Node{Op: "CONST_INT", Value: 7}},
		Body: &Node{
			Op:   "SUM",
			Args: []Node{{Op: "REF", Name: "x"}, {Op: "CONST_INT", Value: 1}},
		},
	}
	expr, err := Build(n)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	block, ok := expr.(ast.Block)
	if !ok {
		t.Fatalf("got %T, want ast.Block", expr)
	}
	if block.Binding == nil || block.Binding.Name != "x" {
		t.Errorf("got %+v", block)
	}
}

func TestBuildUnknownOp(t *testing.T) {
	_, err := Build(Node{Op: "NOPE"})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestBuildMissingArg(t *testing.T) {
	_, err := Build(Node{Op: "SUM", Args: []Node{{Op: "CONST_INT", Value: 1}}})
	if err == nil {
		t.Fatal("expected error for missing second argument")
	}
}

func TestBuildConstByteVector(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("hi"))
	expr, err := Build(Node{Op: "CONST_BYTEVECTOR", Bytes: encoded})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if string(expr.(ast.ConstByteVector).Value) != "hi" {
		t.Errorf("got %+v", expr)
	}
}

func TestBuildDomainFixture(t *testing.T) {
	id := base64.StdEncoding.EncodeToString([]byte("id"))
	proof := base64.StdEncoding.EncodeToString([]byte("sig"))
	d, err := BuildDomain(Fixture{
		Height: 10,
		ID:     id,
		Proofs: []string{proof, ""},
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if d.Height() != 10 {
		t.Errorf("got height %d, want 10", d.Height())
	}
	if string(d.ID()) != "id" {
		t.Errorf("got id %q, want %q", d.ID(), "id")
	}
	if p, ok := d.Proof(0); !ok || string(p) != "sig" {
		t.Errorf("got proof(0) = %q, %v", p, ok)
	}
	if _, ok := d.Proof(1); ok {
		t.Error("expected proof(1) absent")
	}
}
