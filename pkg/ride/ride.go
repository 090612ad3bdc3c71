// Package ride is the public entry point of the evaluator: resolve a
// term's type, evaluate it, and convert the result to the caller's
// requested Go type. It is the only package a host (a transaction
// validator) is meant to import; everything else lives under internal/.
package ride

import (
	"fmt"

	"github.com/chainscript/ride/internal/ast"
	"github.com/chainscript/ride/internal/diag"
	"github.com/chainscript/ride/internal/domain"
	"github.com/chainscript/ride/internal/evalenv"
	"github.com/chainscript/ride/internal/evaluator"
	"github.com/chainscript/ride/internal/object"
	"github.com/chainscript/ride/internal/resolver"
)

// Context is the evaluation environment a host supplies for one call.
type Context struct {
	// Domain is the transaction/chain view read by HEIGHT and TX_FIELD.
	// Required whenever expr can reach one of those terms.
	Domain domain.Domain
	// Verify checks SIG_VERIFY's signature. Nil selects DefaultVerifier.
	Verify domain.Verifier
	// Env is the top-level definition environment REF resolves against.
	// Nil means no predefined names.
	Env *evalenv.Env
}

// DefaultVerifier is used when Context.Verify is nil: Ed25519 signature
// verification, the curve this scripting language's source chain uses.
var DefaultVerifier domain.Verifier = domain.Ed25519Verifier{}

// Evaluate resolves expr's type and, if that succeeds, evaluates it under
// ctx, converting the result to T. Supported T are int64, bool, []byte,
// and Option[E] for one of those three element types. A resolution,
// evaluation or conversion failure returns a non-nil error (a
// *diag.Diagnostic). A tree that is not built from the grammar's terms —
// a nil subterm, or a TxField selector outside the defined constants —
// panics instead.
func Evaluate[T any](ctx Context, expr ast.Expression) (T, error) {
	var zero T

	env := ctx.Env
	if env == nil {
		env = evalenv.Empty
	}
	if _, err := resolver.Resolve(env, expr); err != nil {
		return zero, err
	}

	verify := ctx.Verify
	if verify == nil {
		verify = DefaultVerifier
	}
	value, err := evaluator.Eval(evaluator.Context{Domain: ctx.Domain, Verify: verify}, env, expr)
	if err != nil {
		return zero, err
	}

	converted, ok := convert[T](value)
	if !ok {
		return zero, diag.Runtimef("cannot convert result of type %s to %T", value.Type(), zero)
	}
	return converted, nil
}

// Option is the result shape for an OPTION(T)-typed expression evaluated
// through Evaluate[Option[E]].
type Option[E any] struct {
	Defined bool
	Value   E
}

func convert[T any](v object.Value) (T, bool) {
	var zero T
	switch any(zero).(type) {
	case int64:
		i, ok := v.(object.Int)
		if !ok {
			return zero, false
		}
		return any(int64(i)).(T), true
	case bool:
		b, ok := v.(object.Boolean)
		if !ok {
			return zero, false
		}
		return any(bool(b)).(T), true
	case []byte:
		b, ok := v.(object.Bytes)
		if !ok {
			return zero, false
		}
		return any(append([]byte(nil), b.Raw()...)).(T), true
	default:
		return convertOption[T](v)
	}
}

// convertOption handles T == Option[E] for each supported element type E,
// since Go generics can't type-switch on a generic instantiation directly.
func convertOption[T any](v object.Value) (T, bool) {
	var zero T
	opt, ok := v.(object.Option)
	if !ok {
		return zero, false
	}
	switch any(zero).(type) {
	case Option[int64]:
		if !opt.IsDefined() {
			return any(Option[int64]{}).(T), true
		}
		i, ok := opt.Inner.(object.Int)
		if !ok {
			return zero, false
		}
		return any(Option[int64]{Defined: true, Value: int64(i)}).(T), true
	case Option[bool]:
		if !opt.IsDefined() {
			return any(Option[bool]{}).(T), true
		}
		b, ok := opt.Inner.(object.Boolean)
		if !ok {
			return zero, false
		}
		return any(Option[bool]{Defined: true, Value: bool(b)}).(T), true
	case Option[[]byte]:
		if !opt.IsDefined() {
			return any(Option[[]byte]{}).(T), true
		}
		b, ok := opt.Inner.(object.Bytes)
		if !ok {
			return zero, false
		}
		return any(Option[[]byte]{Defined: true, Value: append([]byte(nil), b.Raw()...)}).(T), true
	default:
		return zero, false
	}
}

// String renders o the way fmt would for a plain value, for logging.
func (o Option[E]) String() string {
	if !o.Defined {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.Value)
}
