// Package docfmt builds ast.Expression trees and domain.Static fixtures
// from a small YAML/JSON document shape used by cmd/ridectl. It is a host
// convenience, not a scripting-language surface syntax: every Node maps
// one-to-one onto a term constructor internal/ast already exposes (spec
// §4.1), the same way a host embedding this module directly would build a
// tree by calling those constructors from Go.
package docfmt

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/chainscript/ride/internal/ast"
	"github.com/chainscript/ride/internal/domain"
)

// Node is the wire shape of one expression term.
type Node struct {
	Op    string  `yaml:"op" json:"op"`
	Value int64   `yaml:"value,omitempty" json:"value,omitempty"`
	Bytes string  `yaml:"bytes,omitempty" json:"bytes,omitempty"` // base64
	Name  string  `yaml:"name,omitempty" json:"name,omitempty"`
	Index uint8   `yaml:"index,omitempty" json:"index,omitempty"`
	Args  []Node  `yaml:"args,omitempty" json:"args,omitempty"`
	Let   *Let    `yaml:"let,omitempty" json:"let,omitempty"`
	Body  *Node   `yaml:"body,omitempty" json:"body,omitempty"`
}

// Let is a BLOCK's optional binding.
type Let struct {
	Name  string `yaml:"name" json:"name"`
	Value Node   `yaml:"value" json:"value"`
}

// Fixture is the wire shape of a domain.Static, base64-encoding every
// byte-vector field.
type Fixture struct {
	Height    int64    `yaml:"height" json:"height"`
	ID        string   `yaml:"id" json:"id"`
	Type      int64    `yaml:"type" json:"type"`
	SenderPK  string   `yaml:"senderPk" json:"senderPk"`
	BodyBytes string   `yaml:"bodyBytes" json:"bodyBytes"`
	Proofs    []string `yaml:"proofs" json:"proofs"` // "" marks an absent proof
}

// BuildDomain converts f to a domain.Static, decoding every base64 field.
func BuildDomain(f Fixture) (domain.Static, error) {
	id, err := decode(f.ID)
	if err != nil {
		return domain.Static{}, fmt.Errorf("id: %w", err)
	}
	senderPK, err := decode(f.SenderPK)
	if err != nil {
		return domain.Static{}, fmt.Errorf("senderPk: %w", err)
	}
	body, err := decode(f.BodyBytes)
	if err != nil {
		return domain.Static{}, fmt.Errorf("bodyBytes: %w", err)
	}
	proofs := make([][]byte, len(f.Proofs))
	for i, p := range f.Proofs {
		if p == "" {
			continue
		}
		b, err := decode(p)
		if err != nil {
			return domain.Static{}, fmt.Errorf("proofs[%d]: %w", i, err)
		}
		proofs[i] = b
	}
	return domain.Static{
		HeightValue:   f.Height,
		IDValue:       id,
		TypeValue:     f.Type,
		SenderPKValue: senderPK,
		BodyValue:     body,
		Proofs:        proofs,
	}, nil
}

func decode(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(s)
}

// Build converts a Node into the ast.Expression it denotes.
func Build(n Node) (ast.Expression, error) {
	op := strings.ToUpper(n.Op)
	switch op {
	case "CONST_INT":
		return ast.ConstInt{Value: n.Value}, nil
	case "CONST_BYTEVECTOR":
		b, err := decode(n.Bytes)
		if err != nil {
			return nil, fmt.Errorf("CONST_BYTEVECTOR: %w", err)
		}
		return ast.ConstByteVector{Value: b}, nil
	case "TRUE":
		return ast.True{}, nil
	case "FALSE":
		return ast.False{}, nil
	case "NONE":
		return ast.None{}, nil
	case "HEIGHT":
		return ast.Height{}, nil
	case "REF":
		if n.Name == "" {
			return nil, fmt.Errorf("REF: missing name")
		}
		return ast.Ref{Name: n.Name}, nil
	case "TX_FIELD":
		sel, err := txFieldSelector(n.Name)
		if err != nil {
			return nil, err
		}
		return ast.TxField{Selector: sel, Index: n.Index}, nil
	case "SOME":
		inner, err := buildArg(n, 0)
		if err != nil {
			return nil, err
		}
		return ast.Some{Inner: inner}, nil
	case "IS_DEFINED":
		opt, err := buildArg(n, 0)
		if err != nil {
			return nil, err
		}
		return ast.IsDefined{Opt: opt}, nil
	case "GET":
		opt, err := buildArg(n, 0)
		if err != nil {
			return nil, err
		}
		return ast.Get{Opt: opt}, nil
	case "SUM", "GE", "GT", "EQ", "AND", "OR":
		a, err := buildArg(n, 0)
		if err != nil {
			return nil, err
		}
		b, err := buildArg(n, 1)
		if err != nil {
			return nil, err
		}
		switch op {
		case "SUM":
			return ast.Sum{A: a, B: b}, nil
		case "GE":
			return ast.GE{A: a, B: b}, nil
		case "GT":
			return ast.GT{A: a, B: b}, nil
		case "EQ":
			return ast.Eq{A: a, B: b}, nil
		case "AND":
			return ast.And{A: a, B: b}, nil
		default:
			return ast.Or{A: a, B: b}, nil
		}
	case "IF":
		cond, err := buildArg(n, 0)
		if err != nil {
			return nil, err
		}
		then, err := buildArg(n, 1)
		if err != nil {
			return nil, err
		}
		els, err := buildArg(n, 2)
		if err != nil {
			return nil, err
		}
		return ast.If{Cond: cond, Then: then, Else: els}, nil
	case "SIG_VERIFY":
		msg, err := buildArg(n, 0)
		if err != nil {
			return nil, err
		}
		sig, err := buildArg(n, 1)
		if err != nil {
			return nil, err
		}
		pk, err := buildArg(n, 2)
		if err != nil {
			return nil, err
		}
		return ast.SigVerify{Msg: msg, Sig: sig, Pk: pk}, nil
	case "BLOCK":
		if n.Body == nil {
			return nil, fmt.Errorf("BLOCK: missing body")
		}
		body, err := Build(*n.Body)
		if err != nil {
			return nil, err
		}
		if n.Let == nil {
			return ast.Block{Body: body}, nil
		}
		value, err := Build(n.Let.Value)
		if err != nil {
			return nil, err
		}
		return ast.Block{Binding: &ast.Let{Name: n.Let.Name, Value: value}, Body: body}, nil
	default:
		return nil, fmt.Errorf("unknown op %q", n.Op)
	}
}

func buildArg(n Node, i int) (ast.Expression, error) {
	if i >= len(n.Args) {
		return nil, fmt.Errorf("%s: expected at least %d args, got %d", n.Op, i+1, len(n.Args))
	}
	return Build(n.Args[i])
}

func txFieldSelector(name string) (ast.TxFieldSelector, error) {
	switch strings.ToLower(name) {
	case "id":
		return ast.TxID, nil
	case "type":
		return ast.TxType, nil
	case "senderpk":
		return ast.TxSenderPK, nil
	case "bodybytes":
		return ast.TxBodyBytes, nil
	case "proof":
		return ast.TxProof, nil
	default:
		return 0, fmt.Errorf("TX_FIELD: unknown field %q", name)
	}
}
