// Package object is the runtime value representation: a tagged union over
// the four value types in internal/rtype, grounded on the *Object
// interface of funvibe/funxy's internal/evaluator (object_primitives.go,
// object_advanced.go) but closed to exactly the shapes this language's
// type system admits — there is no Float, BigInt, List, Record or Function
// value here because the spec defines none.
package object

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/chainscript/ride/internal/rtype"
)

// Value is the interface every runtime value satisfies.
type Value interface {
	Type() rtype.Type
	Inspect() string
	value()
}

// Int is a 64-bit signed integer value.
type Int int64

func (Int) Type() rtype.Type  { return rtype.Int{} }
func (i Int) Inspect() string { return fmt.Sprintf("%d", int64(i)) }
func (Int) value()            {}

// Boolean is a boolean value.
type Boolean bool

func (Boolean) Type() rtype.Type { return rtype.Boolean{} }
func (b Boolean) Inspect() string {
	if b {
		return "true"
	}
	return "false"
}
func (Boolean) value() {}

// Bytes is an immutable byte-vector value. Construct via NewBytes, which
// copies its input so a caller mutating the original slice afterward can't
// observe through (or corrupt) a bound Value.
type Bytes struct {
	data []byte
}

// NewBytes copies b into a new immutable Bytes value.
func NewBytes(b []byte) Bytes {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Bytes{data: cp}
}

func (Bytes) Type() rtype.Type { return rtype.ByteVector{} }
func (b Bytes) Inspect() string {
	return fmt.Sprintf("base64:%s", base64.StdEncoding.EncodeToString(b.data))
}
func (Bytes) value() {}

// Raw returns the underlying bytes. Callers must not mutate the returned
// slice; it aliases the Value's storage.
func (b Bytes) Raw() []byte { return b.data }

// Equal reports byte-wise equality.
func (b Bytes) Equal(other Bytes) bool { return bytes.Equal(b.data, other.data) }

// Compare returns -1, 0 or 1 the way bytes.Compare does.
func (b Bytes) Compare(other Bytes) int { return bytes.Compare(b.data, other.data) }

// Option is an optional value of some inner type. OptType always carries
// the value's static type, NONE included; OptType.Inner == nil denotes
// OPTION(NOTHING), the type of the bare literal NONE.
type Option struct {
	OptType rtype.Option // static type this value was produced at
	Inner   Value        // nil means NONE
}

// Some wraps v as SOME(v) of type OPTION(v.Type()).
func Some(v Value) Option {
	return Option{OptType: rtype.Option{Inner: v.Type()}, Inner: v}
}

// None constructs NONE typed as OPTION(inner). inner may be nil to denote
// OPTION(NOTHING), the type of the bare literal NONE.
func None(inner rtype.Type) Option {
	return Option{OptType: rtype.Option{Inner: inner}, Inner: nil}
}

func (o Option) Type() rtype.Type { return o.OptType }

func (o Option) Inspect() string {
	if o.Inner == nil {
		return "None"
	}
	return fmt.Sprintf("Some(%s)", o.Inner.Inspect())
}
func (Option) value() {}

// IsDefined reports whether this is SOME(_).
func (o Option) IsDefined() bool { return o.Inner != nil }
