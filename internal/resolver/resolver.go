// Package resolver implements static type resolution (spec §4.2): a pure
// function from (environment, expression) to either a resolved
// internal/rtype.Type or an internal/diag.Diagnostic.
//
// Resolve is trampolined per spec §5: instead of recursing through Go's
// call stack, it drives an explicit two-stack machine — a control stack of
// pending frames and a value stack of already-resolved types — the same
// separation MongooseMoo-barn/vm.VM uses between its Frames call stack and
// its Stack operand stack. A chain of N nested BLOCKs therefore resolves
// with a bounded number of live Go stack frames (the driver loop itself),
// independent of N.
package resolver

import (
	"fmt"

	"github.com/chainscript/ride/internal/ast"
	"github.com/chainscript/ride/internal/diag"
	"github.com/chainscript/ride/internal/evalenv"
	"github.com/chainscript/ride/internal/rtype"
)

// Resolve returns the static type of expr under env, or a Diagnostic
// describing why resolution failed.
func Resolve(env *evalenv.Env, expr ast.Expression) (rtype.Type, *diag.Diagnostic) {
	m := &machine{control: []frame{evalFrame{env: env, expr: expr}}}
	return m.run()
}

// frame is one element of the control stack. Each variant's resume method
// either produces a value (via the machine's value stack) or pushes more
// frames and returns control to the driver loop.
type frame interface {
	resume(m *machine)
}

type machine struct {
	control []frame
	values  []rtype.Type
	err     *diag.Diagnostic
}

func (m *machine) push(f frame)       { m.control = append(m.control, f) }
func (m *machine) pushValue(t rtype.Type) { m.values = append(m.values, t) }

func (m *machine) popValue() rtype.Type {
	n := len(m.values) - 1
	v := m.values[n]
	m.values = m.values[:n]
	return v
}

func (m *machine) run() (rtype.Type, *diag.Diagnostic) {
	for len(m.control) > 0 {
		n := len(m.control) - 1
		f := m.control[n]
		m.control = m.control[:n]
		f.resume(m)
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.popValue(), nil
}

// evalFrame resolves expr under env once popped.
type evalFrame struct {
	env  *evalenv.Env
	expr ast.Expression
}

func (f evalFrame) resume(m *machine) {
	if m.err != nil {
		return // a prior sibling already failed; skip this descent entirely
	}

	if t, ok := ast.PredefinedType(f.expr); ok {
		switch e := f.expr.(type) {
		case ast.Sum:
			m.push(combineArgTypes{want: []rtype.Type{rtype.Int{}, rtype.Int{}}, result: t})
			m.push(evalFrame{env: f.env, expr: e.B})
			m.push(evalFrame{env: f.env, expr: e.A})
		case ast.GE:
			m.push(combineArgTypes{want: []rtype.Type{rtype.Int{}, rtype.Int{}}, result: t})
			m.push(evalFrame{env: f.env, expr: e.B})
			m.push(evalFrame{env: f.env, expr: e.A})
		case ast.GT:
			m.push(combineArgTypes{want: []rtype.Type{rtype.Int{}, rtype.Int{}}, result: t})
			m.push(evalFrame{env: f.env, expr: e.B})
			m.push(evalFrame{env: f.env, expr: e.A})
		case ast.And:
			m.push(combineArgTypes{want: []rtype.Type{rtype.Boolean{}, rtype.Boolean{}}, result: t})
			m.push(evalFrame{env: f.env, expr: e.B})
			m.push(evalFrame{env: f.env, expr: e.A})
		case ast.Or:
			m.push(combineArgTypes{want: []rtype.Type{rtype.Boolean{}, rtype.Boolean{}}, result: t})
			m.push(evalFrame{env: f.env, expr: e.B})
			m.push(evalFrame{env: f.env, expr: e.A})
		case ast.IsDefined:
			m.push(combineIsDefined{})
			m.push(evalFrame{env: f.env, expr: e.Opt})
		case ast.SigVerify:
			m.push(combineArgTypes{
				want:   []rtype.Type{rtype.ByteVector{}, rtype.ByteVector{}, rtype.ByteVector{}},
				result: t,
			})
			m.push(evalFrame{env: f.env, expr: e.Pk})
			m.push(evalFrame{env: f.env, expr: e.Sig})
			m.push(evalFrame{env: f.env, expr: e.Msg})
		default:
			// Leaf: CONST_INT, CONST_BYTEVECTOR, TRUE, FALSE, NONE, HEIGHT, TX_FIELD.
			m.pushValue(t)
		}
		return
	}

	switch e := f.expr.(type) {
	case ast.Ref:
		typ, _, ok := f.env.Lookup(e.Name)
		if !ok {
			m.err = diag.Typef("Typecheck failed: Cannot resolve type of %s", e.Name)
			return
		}
		m.pushValue(typ)

	case ast.Block:
		if e.Binding == nil {
			m.push(evalFrame{env: f.env, expr: e.Body})
			return
		}
		m.push(bindAndContinue{env: f.env, name: e.Binding.Name, body: e.Body})
		m.push(evalFrame{env: f.env, expr: e.Binding.Value})

	case ast.If:
		m.push(combineIf{})
		m.push(evalFrame{env: f.env, expr: e.Else})
		m.push(evalFrame{env: f.env, expr: e.Then})

	case ast.Eq:
		m.push(combineEq{})
		m.push(evalFrame{env: f.env, expr: e.B})
		m.push(evalFrame{env: f.env, expr: e.A})

	case ast.Get:
		m.push(combineGet{})
		m.push(evalFrame{env: f.env, expr: e.Opt})

	case ast.Some:
		m.push(combineSome{})
		m.push(evalFrame{env: f.env, expr: e.Inner})

	default:
		panic(fmt.Sprintf("resolver: unhandled expression %T", f.expr))
	}
}

// combineArgTypes checks that the n most recently evaluated argument types
// match want (in evaluation order) and, if so, yields result.
type combineArgTypes struct {
	want   []rtype.Type
	result rtype.Type
}

func (c combineArgTypes) resume(m *machine) {
	if m.err != nil {
		return
	}
	got := make([]rtype.Type, len(c.want))
	for i := len(c.want) - 1; i >= 0; i-- {
		got[i] = m.popValue()
	}
	for i, w := range c.want {
		if !rtype.Equal(got[i], w) {
			m.err = diag.Typef("Typecheck failed: expected %s, got %s", w, got[i])
			return
		}
	}
	m.pushValue(c.result)
}

type combineIsDefined struct{}

func (combineIsDefined) resume(m *machine) {
	if m.err != nil {
		return
	}
	got := m.popValue()
	if _, ok := got.(rtype.Option); !ok {
		m.err = diag.Typef("Typecheck failed: IS_DEFINED called on %s, but only call on OPTION[_] is allowed", got)
		return
	}
	m.pushValue(rtype.Boolean{})
}

type combineIf struct{}

func (combineIf) resume(m *machine) {
	if m.err != nil {
		return
	}
	te := m.popValue()
	tt := m.popValue()
	unified, ok := rtype.Unify(tt, te)
	if !ok {
		m.err = diag.Typef("Typecheck failed for IF: RType(%s) differs from LType(%s)", te, tt)
		return
	}
	m.pushValue(unified)
}

type combineEq struct{}

func (combineEq) resume(m *machine) {
	if m.err != nil {
		return
	}
	tb := m.popValue()
	ta := m.popValue()
	if _, ok := rtype.Unify(ta, tb); !ok {
		m.err = diag.Typef("Typecheck failed for EQ: types %s and %s do not unify", ta, tb)
		return
	}
	m.pushValue(rtype.Boolean{})
}

type combineGet struct{}

func (combineGet) resume(m *machine) {
	if m.err != nil {
		m.err = diag.Typef("Typecheck failed: %s", m.err.Message)
		return
	}
	got := m.popValue()
	opt, ok := got.(rtype.Option)
	if !ok {
		m.err = diag.Typef("Typecheck failed: GET called on %s, but only call on OPTION[_] is allowed", got)
		return
	}
	if opt.Inner == nil {
		m.err = diag.Typef("Typecheck failed: GET called on OPTION[NOTHING], but only call on OPTION[_] is allowed")
		return
	}
	m.pushValue(opt.Inner)
}

type combineSome struct{}

func (combineSome) resume(m *machine) {
	if m.err != nil {
		m.err = diag.Typef("Typecheck failed: %s", m.err.Message)
		return
	}
	got := m.popValue()
	m.pushValue(rtype.Option{Inner: got})
}

// bindAndContinue finishes a BLOCK(Some(LET(name, value)), body) once
// value's type is known: it extends env (without a value — the resolver
// never needs one, spec §3) and queues body for resolution in the
// extended scope. The evaluator, not the resolver, rejects redefinition
// (spec §4.2's rationale).
type bindAndContinue struct {
	env  *evalenv.Env
	name string
	body ast.Expression
}

func (b bindAndContinue) resume(m *machine) {
	if m.err != nil {
		return
	}
	valueType := m.popValue()
	extended := b.env.Extend(b.name, valueType, nil)
	m.push(evalFrame{env: extended, expr: b.body})
}
