// Package evalenv is the lexical environment shared by internal/resolver
// and internal/evaluator: an immutable mapping from name to (type,
// value-slot), extended one LET at a time.
//
// It is grounded on funvibe-funxy/internal/evaluator.Environment's
// outer-chain shape, but drops that type's mutability (Set/Update) and its
// sync.RWMutex — this language never mutates a binding after creation and
// an Env is never shared across goroutines for writing, only ever
// extended into a new, independent chain, so no locking is needed (see
// SPEC_FULL.md §9).
package evalenv

import (
	"github.com/chainscript/ride/internal/object"
	"github.com/chainscript/ride/internal/rtype"
)

// Env is one frame of the binding chain, or nil for the empty environment.
type Env struct {
	name  string
	typ   rtype.Type
	value object.Value // nil during type-only resolution, or for a
	outer *Env         // binding whose value hasn't been computed yet
}

// Empty is the environment with no bindings.
var Empty *Env

// Extend returns a new environment with name bound to (typ, value) in
// front of e. value may be nil when only the type is known yet (the
// resolver's BLOCK rule — see spec §4.2).
func (e *Env) Extend(name string, typ rtype.Type, value object.Value) *Env {
	return &Env{name: name, typ: typ, value: value, outer: e}
}

// Lookup walks the chain outward and returns the nearest binding for name.
func (e *Env) Lookup(name string) (typ rtype.Type, value object.Value, ok bool) {
	for env := e; env != nil; env = env.outer {
		if env.name == name {
			return env.typ, env.value, true
		}
	}
	return nil, nil, false
}

// Bound reports whether name has any binding, at any depth of the chain —
// this is what the evaluator's shadow-prohibition check (spec §4.3) means
// by "already defined in the scope".
func (e *Env) Bound(name string) bool {
	_, _, ok := e.Lookup(name)
	return ok
}
