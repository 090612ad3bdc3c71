// Package evaluator executes a well-typed expression tree against a
// Context, per spec §4.3. Eval is trampolined the same way
// internal/resolver.Resolve is (see that package's doc comment): an
// explicit two-stack machine rather than Go recursion, so a chain of N
// nested BLOCKs or LETs evaluates in O(1) native stack frames.
package evaluator

import (
	"github.com/chainscript/ride/internal/ast"
	"github.com/chainscript/ride/internal/diag"
	"github.com/chainscript/ride/internal/domain"
	"github.com/chainscript/ride/internal/evalenv"
	"github.com/chainscript/ride/internal/object"
	"github.com/chainscript/ride/internal/resolver"
	"github.com/chainscript/ride/internal/rtype"
)

// Context carries the two host collaborators an evaluation can read:
// the transaction/chain view and the signature primitive. It holds no
// mutable state and is safe to reuse across concurrent evaluations.
type Context struct {
	Domain domain.Domain
	Verify domain.Verifier
}

// Eval evaluates expr under env and ctx.
func Eval(ctx Context, env *evalenv.Env, expr ast.Expression) (object.Value, *diag.Diagnostic) {
	m := &machine{ctx: ctx, control: []frame{evalFrame{env: env, expr: expr}}}
	return m.run()
}

type frame interface {
	resume(m *machine)
}

type machine struct {
	ctx     Context
	control []frame
	values  []object.Value
	err     *diag.Diagnostic
}

func (m *machine) push(f frame)             { m.control = append(m.control, f) }
func (m *machine) pushValue(v object.Value) { m.values = append(m.values, v) }

func (m *machine) popValue() object.Value {
	n := len(m.values) - 1
	v := m.values[n]
	m.values = m.values[:n]
	return v
}

func (m *machine) run() (object.Value, *diag.Diagnostic) {
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

type evalFrame struct {
	env  *evalenv.Env
	expr ast.Expression
}

func (f evalFrame) resume(m *machine) {
	if m.err != nil {
		return
	}

	switch e := f.expr.(type) {
	case ast.ConstInt:
		m.pushValue(object.Int(e.Value))
	case ast.ConstByteVector:
		m.pushValue(object.NewBytes(e.Value))
	case ast.True:
		m.pushValue(object.Boolean(true))
	case ast.False:
		m.pushValue(object.Boolean(false))
	case ast.None:
		m.pushValue(object.None(nil))
	case ast.Height:
		m.pushValue(object.Int(m.ctx.Domain.Height()))
	case ast.TxField:
		m.pushValue(evalTxField(m.ctx.Domain, e))

	case ast.Ref:
		_, val, ok := f.env.Lookup(e.Name)
		if !ok || val == nil {
			m.err = diag.Runtimef("Definition '%s' not found", e.Name)
			return
		}
		m.pushValue(val)

	case ast.Sum:
		m.push(combineArith{op: opSum})
		m.push(evalFrame{env: f.env, expr: e.B})
		m.push(evalFrame{env: f.env, expr: e.A})
	case ast.GE:
		m.push(combineArith{op: opGE})
		m.push(evalFrame{env: f.env, expr: e.B})
		m.push(evalFrame{env: f.env, expr: e.A})
	case ast.GT:
		m.push(combineArith{op: opGT})
		m.push(evalFrame{env: f.env, expr: e.B})
		m.push(evalFrame{env: f.env, expr: e.A})

	case ast.And:
		m.push(shortCircuit{op: opAnd, env: f.env, b: e.B})
		m.push(evalFrame{env: f.env, expr: e.A})
	case ast.Or:
		m.push(shortCircuit{op: opOr, env: f.env, b: e.B})
		m.push(evalFrame{env: f.env, expr: e.A})

	case ast.If:
		if _, err := resolver.Resolve(f.env, e); err != nil {
			m.err = err
			return
		}
		m.push(ifSelect{env: f.env, then: e.Then, els: e.Else})
		m.push(evalFrame{env: f.env, expr: e.Cond})

	case ast.Eq:
		if _, err := resolver.Resolve(f.env, e); err != nil {
			m.err = err
			return
		}
		m.push(combineEq{})
		m.push(evalFrame{env: f.env, expr: e.B})
		m.push(evalFrame{env: f.env, expr: e.A})

	case ast.IsDefined:
		m.push(combineIsDefined{})
		m.push(evalFrame{env: f.env, expr: e.Opt})

	case ast.Get:
		m.push(combineGet{})
		m.push(evalFrame{env: f.env, expr: e.Opt})

	case ast.Some:
		m.push(combineSome{})
		m.push(evalFrame{env: f.env, expr: e.Inner})

	case ast.SigVerify:
		m.push(combineSigVerify{})
		m.push(evalFrame{env: f.env, expr: e.Pk})
		m.push(evalFrame{env: f.env, expr: e.Sig})
		m.push(evalFrame{env: f.env, expr: e.Msg})

	case ast.Block:
		if e.Binding == nil {
			m.push(evalFrame{env: f.env, expr: e.Body})
			return
		}
		binding := e.Binding
		declaredType, err := resolver.Resolve(f.env, binding.Value)
		if err != nil {
			m.err = err
			return
		}
		if f.env.Bound(binding.Name) {
			m.err = diag.Runtimef("Value '%s' already defined in the scope", binding.Name)
			return
		}
		m.push(extendEnvAndEval{env: f.env, name: binding.Name, declaredType: declaredType, body: e.Body})
		m.push(evalFrame{env: f.env, expr: binding.Value})
	}
}

func evalTxField(d domain.Domain, f ast.TxField) object.Value {
	switch f.Selector {
	case ast.TxID:
		return object.NewBytes(d.ID())
	case ast.TxType:
		return object.Int(d.Type())
	case ast.TxSenderPK:
		return object.NewBytes(d.SenderPK())
	case ast.TxBodyBytes:
		return object.NewBytes(d.BodyBytes())
	case ast.TxProof:
		proof, ok := d.Proof(f.Index)
		if !ok {
			return object.None(rtype.ByteVector{})
		}
		return object.Some(object.NewBytes(proof))
	default:
		panic("evaluator: unhandled TX_FIELD selector")
	}
}

type arithOp int

const (
	opSum arithOp = iota
	opGE
	opGT
)

type combineArith struct{ op arithOp }

func (c combineArith) resume(m *machine) {
	if m.err != nil {
		return
	}
	b := m.popValue()
	a := m.popValue()
	av, err := asInt(a)
	if err != nil {
		m.err = err
		return
	}
	bv, err := asInt(b)
	if err != nil {
		m.err = err
		return
	}
	switch c.op {
	case opSum:
		m.pushValue(object.Int(int64(av) + int64(bv)))
	case opGE:
		m.pushValue(object.Boolean(av >= bv))
	case opGT:
		m.pushValue(object.Boolean(av > bv))
	}
}

type logicalOp int

const (
	opAnd logicalOp = iota
	opOr
)

// shortCircuit decides, once the left operand of AND/OR has a value,
// whether to produce a result immediately or evaluate the right operand.
type shortCircuit struct {
	op  logicalOp
	env *evalenv.Env
	b   ast.Expression
}

func (s shortCircuit) resume(m *machine) {
	if m.err != nil {
		return
	}
	left := m.popValue()
	lv, err := asBoolean(left)
	if err != nil {
		m.err = err
		return
	}
	switch s.op {
	case opAnd:
		if !bool(lv) {
			m.pushValue(object.Boolean(false))
			return
		}
	case opOr:
		if bool(lv) {
			m.pushValue(object.Boolean(true))
			return
		}
	}
	m.push(evalFrame{env: s.env, expr: s.b})
}

// ifSelect decides, once IF's condition has a value, which single branch
// to evaluate. The other branch is never pushed, so it's never evaluated.
type ifSelect struct {
	env       *evalenv.Env
	then, els ast.Expression
}

func (i ifSelect) resume(m *machine) {
	if m.err != nil {
		return
	}
	cond := m.popValue()
	cv, err := asBoolean(cond)
	if err != nil {
		m.err = err
		return
	}
	if bool(cv) {
		m.push(evalFrame{env: i.env, expr: i.then})
	} else {
		m.push(evalFrame{env: i.env, expr: i.els})
	}
}

type combineEq struct{}

func (combineEq) resume(m *machine) {
	if m.err != nil {
		return
	}
	b := m.popValue()
	a := m.popValue()
	m.pushValue(object.Boolean(valuesEqual(a, b)))
}

func valuesEqual(a, b object.Value) bool {
	switch av := a.(type) {
	case object.Int:
		bv, ok := b.(object.Int)
		return ok && av == bv
	case object.Boolean:
		bv, ok := b.(object.Boolean)
		return ok && av == bv
	case object.Bytes:
		bv, ok := b.(object.Bytes)
		return ok && av.Equal(bv)
	case object.Option:
		bv, ok := b.(object.Option)
		if !ok {
			return false
		}
		if av.IsDefined() != bv.IsDefined() {
			return false
		}
		if !av.IsDefined() {
			return true
		}
		return valuesEqual(av.Inner, bv.Inner)
	default:
		return false
	}
}

type combineIsDefined struct{}

func (combineIsDefined) resume(m *machine) {
	if m.err != nil {
		return
	}
	got := m.popValue()
	opt, err := asOption(got)
	if err != nil {
		m.err = err
		return
	}
	m.pushValue(object.Boolean(opt.IsDefined()))
}

type combineGet struct{}

func (combineGet) resume(m *machine) {
	if m.err != nil {
		return
	}
	got := m.popValue()
	opt, err := asOption(got)
	if err != nil {
		m.err = err
		return
	}
	if !opt.IsDefined() {
		m.err = diag.Runtimef("get(NONE)")
		return
	}
	m.pushValue(opt.Inner)
}

type combineSome struct{}

func (combineSome) resume(m *machine) {
	if m.err != nil {
		return
	}
	m.pushValue(object.Some(m.popValue()))
}

type combineSigVerify struct{}

func (combineSigVerify) resume(m *machine) {
	if m.err != nil {
		return
	}
	pk := m.popValue()
	sig := m.popValue()
	msg := m.popValue()

	pkBytes, err := asBytes(pk)
	if err != nil {
		m.err = err
		return
	}
	sigBytes, err := asBytes(sig)
	if err != nil {
		m.err = err
		return
	}
	msgBytes, err := asBytes(msg)
	if err != nil {
		m.err = err
		return
	}
	ok := m.ctx.Verify.Verify(sigBytes.Raw(), msgBytes.Raw(), pkBytes.Raw())
	m.pushValue(object.Boolean(ok))
}

// extendEnvAndEval finishes a BLOCK(Some(LET(name, value)), body) once
// value has a result: it extends env with the binding (spec §4.3's step 4)
// and queues body for evaluation in the extended scope.
type extendEnvAndEval struct {
	env          *evalenv.Env
	name         string
	declaredType rtype.Type
	body         ast.Expression
}

func (e extendEnvAndEval) resume(m *machine) {
	if m.err != nil {
		return
	}
	value := m.popValue()
	extended := e.env.Extend(e.name, e.declaredType, value)
	m.push(evalFrame{env: extended, expr: e.body})
}

func asInt(v object.Value) (object.Int, *diag.Diagnostic) {
	i, ok := v.(object.Int)
	if !ok {
		return 0, diag.Runtimef("expected INT value, got %s", v.Type())
	}
	return i, nil
}

func asBoolean(v object.Value) (object.Boolean, *diag.Diagnostic) {
	b, ok := v.(object.Boolean)
	if !ok {
		return false, diag.Runtimef("expected BOOLEAN value, got %s", v.Type())
	}
	return b, nil
}

func asBytes(v object.Value) (object.Bytes, *diag.Diagnostic) {
	b, ok := v.(object.Bytes)
	if !ok {
		return object.Bytes{}, diag.Runtimef("expected BYTEVECTOR value, got %s", v.Type())
	}
	return b, nil
}

func asOption(v object.Value) (object.Option, *diag.Diagnostic) {
	o, ok := v.(object.Option)
	if !ok {
		return object.Option{}, diag.Runtimef("expected OPTION value, got %s", v.Type())
	}
	return o, nil
}
