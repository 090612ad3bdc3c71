// Package rtype is the closed value-type algebra of the scripting language:
// INT, BOOLEAN, BYTEVECTOR and OPTION(T), plus the unification rule that
// decides when two types are compatible.
//
// Unlike the Hindley-Milner type system it is modeled on
// (funvibe/funxy's internal/typesystem), this algebra has no type
// variables, no substitutions and no inference: every type is either one of
// the three leaves or an Option wrapping another Type, so Unify is a plain
// structural recursion.
package rtype

import "fmt"

// Type is the interface every value type satisfies. The unexported marker
// method closes the set to the types defined in this package.
type Type interface {
	String() string
	rtype()
}

// Int is the type of 64-bit signed integers.
type Int struct{}

func (Int) String() string { return "Int" }
func (Int) rtype()         {}

// Boolean is the type of the two boolean literals.
type Boolean struct{}

func (Boolean) String() string { return "Boolean" }
func (Boolean) rtype()         {}

// ByteVector is the type of immutable byte sequences.
type ByteVector struct{}

func (ByteVector) String() string { return "ByteVector" }
func (ByteVector) rtype()         {}

// Option is the type of zero-or-one values of Inner. Inner == nil denotes
// NOTHING, the type of the literal NONE; NOTHING unifies with any Option's
// inner type (see Unify).
type Option struct {
	Inner Type
}

func (o Option) String() string {
	if o.Inner == nil {
		return "Option[Nothing]"
	}
	return fmt.Sprintf("Option[%s]", o.Inner.String())
}
func (Option) rtype() {}

// Equal reports strict type equality: unlike Unify, Option(NOTHING) equals
// only Option(NOTHING) and does not absorb another Option's inner type.
func Equal(a, b Type) bool {
	switch at := a.(type) {
	case Int:
		_, ok := b.(Int)
		return ok
	case Boolean:
		_, ok := b.(Boolean)
		return ok
	case ByteVector:
		_, ok := b.(ByteVector)
		return ok
	case Option:
		bt, ok := b.(Option)
		if !ok {
			return false
		}
		if at.Inner == nil || bt.Inner == nil {
			return at.Inner == nil && bt.Inner == nil
		}
		return Equal(at.Inner, bt.Inner)
	default:
		return false
	}
}

// Unify returns the more-specific common type of a and b, or ok=false when
// the two types are incompatible.
//
// The only non-trivial case is Option: Option(NOTHING) — the type of NONE —
// unifies with any Option(T), yielding Option(T); otherwise both inner
// types must themselves unify.
func Unify(a, b Type) (Type, bool) {
	aOpt, aIsOpt := a.(Option)
	bOpt, bIsOpt := b.(Option)

	switch {
	case aIsOpt && bIsOpt:
		switch {
		case aOpt.Inner == nil && bOpt.Inner == nil:
			return Option{Inner: nil}, true
		case aOpt.Inner == nil:
			return Option{Inner: bOpt.Inner}, true
		case bOpt.Inner == nil:
			return Option{Inner: aOpt.Inner}, true
		default:
			inner, ok := Unify(aOpt.Inner, bOpt.Inner)
			if !ok {
				return nil, false
			}
			return Option{Inner: inner}, true
		}
	case aIsOpt || bIsOpt:
		return nil, false
	default:
		if Equal(a, b) {
			return a, true
		}
		return nil, false
	}
}
