// Package expression evaluates the SystemVerilog style expressions used in
// IP-XACT documents for widths, addresses, counts and presence conditions.
package expression

import (
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// maxBits bounds the magnitude of the integer part of any intermediate result.
const maxBits = 1024

// divisionPrecision is the number of fractional digits of a real quotient.
const divisionPrecision = 16

type value struct {
	d    decimal.Decimal
	real bool
}

func valueOf(n int64) value {
	return value{d: decimal.NewFromInt(n)}
}

func boolValue(b bool) value {
	if b {
		return valueOf(1)
	}
	return valueOf(0)
}

func (v value) truthy() bool {
	return !v.d.IsZero()
}

func (v value) isInteger() bool {
	return !v.real || v.d.Equal(v.d.Truncate(0))
}

func (v value) bigInt() *big.Int {
	return v.d.BigInt()
}

func integer(n *big.Int) value {
	return value{d: decimal.NewFromBigInt(n, 0)}
}

// Resolver looks up the raw expression bound to an identifier.
type Resolver interface {
	Resolve(id string) (string, bool)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(id string) (string, bool)

// Resolve calls f(id).
func (f ResolverFunc) Resolve(id string) (string, bool) { return f(id) }

// NoParameters resolves nothing.
var NoParameters Resolver = ResolverFunc(func(string) (string, bool) { return "", false })

// Evaluator evaluates expressions against a Resolver. It holds no state
// between calls and may be shared between goroutines if its Resolver can.
type Evaluator struct {
	resolver Resolver
}

// New returns an evaluator resolving identifiers through r.
// It panics if r is nil.
func New(r Resolver) *Evaluator {
	if r == nil {
		panic("expression: nil resolver")
	}
	return &Evaluator{resolver: r}
}

// Evaluate computes the value of expr.
func (e *Evaluator) Evaluate(expr string) (decimal.Decimal, error) {
	v, err := e.newEvaluation().expr(expr)
	if err != nil {
		return decimal.Zero, err
	}
	return v.d, nil
}

// EvaluateString computes the value of expr and formats it as a decimal string.
func (e *Evaluator) EvaluateString(expr string) (string, error) {
	d, err := e.Evaluate(expr)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

// EvaluateInt computes the value of expr, which must be a whole number
// that fits in an int64.
func (e *Evaluator) EvaluateInt(expr string) (int64, error) {
	v, err := e.newEvaluation().expr(expr)
	if err != nil {
		return 0, err
	}
	if !v.isInteger() {
		return 0, &Error{Kind: ErrDomain, Expr: expr, Pos: -1, Detail: v.d.String()}
	}
	n := v.bigInt()
	if !n.IsInt64() {
		return 0, &Error{Kind: ErrOverflow, Expr: expr, Pos: -1, Detail: v.d.String()}
	}
	return n.Int64(), nil
}

// EvaluateUint computes the value of expr, which must be a whole number
// in the range of a 64-bit address.
func (e *Evaluator) EvaluateUint(expr string) (uint64, error) {
	v, err := e.newEvaluation().expr(expr)
	if err != nil {
		return 0, err
	}
	if !v.isInteger() || v.d.IsNegative() {
		return 0, &Error{Kind: ErrDomain, Expr: expr, Pos: -1, Detail: v.d.String()}
	}
	n := v.bigInt()
	if !n.IsUint64() {
		return 0, &Error{Kind: ErrOverflow, Expr: expr, Pos: -1, Detail: v.d.String()}
	}
	return n.Uint64(), nil
}

// Valid reports whether expr evaluates without error.
func (e *Evaluator) Valid(expr string) bool {
	_, err := e.Evaluate(expr)
	return err == nil
}

// Check verifies the syntax of expr without resolving identifiers.
func Check(expr string) error {
	_, err := parse(expr)
	return err
}

// Identifiers returns the distinct identifiers expr refers to, in order
// of first appearance.
func Identifiers(expr string) ([]string, error) {
	n, err := parse(expr)
	if err != nil {
		return nil, err
	}
	var ids []string
	seen := make(map[string]bool)
	walkIdents(n, func(id *identNode) {
		if !seen[id.name] {
			seen[id.name] = true
			ids = append(ids, id.name)
		}
	})
	return ids, nil
}

func (e *Evaluator) newEvaluation() *evaluation {
	return &evaluation{
		resolver: e.resolver,
		active:   make(map[string]bool),
		done:     make(map[string]value),
	}
}

// evaluation is the state of one top level Evaluate call.
type evaluation struct {
	resolver Resolver
	active   map[string]bool  // Identifiers being resolved
	done     map[string]value // Identifiers already resolved
}

type frame struct {
	ev  *evaluation
	src string
}

func (ev *evaluation) expr(src string) (value, error) {
	tree, err := parse(src)
	if err != nil {
		return value{}, err
	}
	var unknown *identNode
	walkIdents(tree, func(id *identNode) {
		if unknown != nil {
			return
		}
		if _, ok := ev.done[id.name]; ok {
			return
		}
		if _, ok := ev.resolver.Resolve(id.name); !ok {
			unknown = id
		}
	})
	if unknown != nil {
		return value{}, &Error{Kind: ErrUnknownIdentifier, Expr: src, Pos: unknown.pos, Detail: unknown.name}
	}
	f := frame{ev: ev, src: src}
	return f.eval(tree)
}

func (f frame) fail(kind ErrorKind, n node, detail string) error {
	return &Error{Kind: kind, Expr: f.src, Pos: n.position(), Detail: detail}
}

func (f frame) checked(v value, n node, op string) (value, error) {
	if !inRange(v.d) {
		return value{}, f.fail(ErrOverflow, n, op)
	}
	return v, nil
}

func (f frame) eval(n node) (value, error) {
	switch n := n.(type) {
	case *numberNode:
		return f.checked(n.val, n, "literal")
	case *identNode:
		return f.ident(n)
	case *unaryNode:
		x, err := f.eval(n.x)
		if err != nil {
			return value{}, err
		}
		return f.unary(n, x)
	case *binaryNode:
		return f.binary(n)
	case *ternaryNode:
		c, err := f.eval(n.cond)
		if err != nil {
			return value{}, err
		}
		if c.truthy() {
			return f.eval(n.then)
		}
		return f.eval(n.els)
	case *callNode:
		return f.call(n)
	}
	panic("expression: unknown node type")
}

func (f frame) ident(n *identNode) (value, error) {
	if v, ok := f.ev.done[n.name]; ok {
		return v, nil
	}
	if f.ev.active[n.name] {
		return value{}, f.fail(ErrCircularReference, n, n.name)
	}
	raw, ok := f.ev.resolver.Resolve(n.name)
	if !ok {
		return value{}, f.fail(ErrUnknownIdentifier, n, n.name)
	}
	f.ev.active[n.name] = true
	v, err := f.ev.expr(raw)
	delete(f.ev.active, n.name)
	if err != nil {
		return value{}, fmt.Errorf("resolving %s in %s: %w", quote(n.name), quote(f.src), err)
	}
	f.ev.done[n.name] = v
	return v, nil
}

func (f frame) unary(n *unaryNode, x value) (value, error) {
	switch n.op {
	case "+":
		return x, nil
	case "-":
		return value{d: x.d.Neg(), real: x.real}, nil
	case "!":
		return boolValue(!x.truthy()), nil
	case "~":
		if !x.isInteger() {
			return value{}, f.fail(ErrDomain, n, n.op)
		}
		return integer(new(big.Int).Not(x.bigInt())), nil
	}
	return value{}, f.fail(ErrSyntax, n, n.op)
}

func (f frame) binary(n *binaryNode) (value, error) {
	l, err := f.eval(n.l)
	if err != nil {
		return value{}, err
	}

	switch n.op {
	case "&&":
		if !l.truthy() {
			return valueOf(0), nil
		}
		r, err := f.eval(n.r)
		if err != nil {
			return value{}, err
		}
		return boolValue(r.truthy()), nil
	case "||":
		if l.truthy() {
			return valueOf(1), nil
		}
		r, err := f.eval(n.r)
		if err != nil {
			return value{}, err
		}
		return boolValue(r.truthy()), nil
	}

	r, err := f.eval(n.r)
	if err != nil {
		return value{}, err
	}
	fractional := l.real || r.real

	switch n.op {
	case "+":
		return f.checked(value{d: l.d.Add(r.d), real: fractional}, n, n.op)
	case "-":
		return f.checked(value{d: l.d.Sub(r.d), real: fractional}, n, n.op)
	case "*":
		return f.checked(value{d: l.d.Mul(r.d), real: fractional}, n, n.op)
	case "/":
		if r.d.IsZero() {
			return value{}, f.fail(ErrDivisionByZero, n, n.op)
		}
		if fractional {
			return f.checked(value{d: l.d.DivRound(r.d, divisionPrecision), real: true}, n, n.op)
		}
		q, _ := l.d.QuoRem(r.d, 0)
		return f.checked(value{d: q}, n, n.op)
	case "%":
		if fractional {
			return value{}, f.fail(ErrDomain, n, n.op)
		}
		if r.d.IsZero() {
			return value{}, f.fail(ErrDivisionByZero, n, n.op)
		}
		_, rem := l.d.QuoRem(r.d, 0)
		return value{d: rem}, nil
	case "**":
		return f.power(n, l, r)
	case "<<", ">>":
		return f.shift(n, l, r)
	case "&", "|", "^":
		if !l.isInteger() || !r.isInteger() {
			return value{}, f.fail(ErrDomain, n, n.op)
		}
		a, b := l.bigInt(), r.bigInt()
		switch n.op {
		case "&":
			return integer(a.And(a, b)), nil
		case "|":
			return integer(a.Or(a, b)), nil
		}
		return integer(a.Xor(a, b)), nil
	case "==", "===":
		return boolValue(l.d.Equal(r.d)), nil
	case "!=", "!==":
		return boolValue(!l.d.Equal(r.d)), nil
	case "<":
		return boolValue(l.d.LessThan(r.d)), nil
	case "<=":
		return boolValue(l.d.LessThanOrEqual(r.d)), nil
	case ">":
		return boolValue(l.d.GreaterThan(r.d)), nil
	case ">=":
		return boolValue(l.d.GreaterThanOrEqual(r.d)), nil
	}
	return value{}, f.fail(ErrSyntax, n, n.op)
}

func (f frame) shift(n *binaryNode, l, r value) (value, error) {
	if !l.isInteger() || !r.isInteger() {
		return value{}, f.fail(ErrDomain, n, n.op)
	}
	amount := r.bigInt()
	if amount.Sign() < 0 {
		return value{}, f.fail(ErrDomain, n, n.op)
	}
	x := l.bigInt()
	if n.op == ">>" {
		if !amount.IsInt64() || amount.Int64() > maxBits {
			if x.Sign() < 0 {
				return valueOf(-1), nil
			}
			return valueOf(0), nil
		}
		return integer(x.Rsh(x, uint(amount.Int64()))), nil
	}
	if x.Sign() == 0 {
		return valueOf(0), nil
	}
	if !amount.IsInt64() || amount.Int64()+int64(x.BitLen()) > maxBits {
		return value{}, f.fail(ErrOverflow, n, n.op)
	}
	return integer(x.Lsh(x, uint(amount.Int64()))), nil
}

func (f frame) power(n node, base, exp value) (value, error) {
	op := "**"
	if c, ok := n.(*callNode); ok {
		op = c.fn
	}
	if base.d.IsZero() && exp.d.IsNegative() {
		return value{}, f.fail(ErrDivisionByZero, n, op)
	}

	if !base.real && !exp.real {
		b, e := base.bigInt(), exp.bigInt()
		if e.Sign() < 0 {
			// Whole number result of a negative power truncates toward zero.
			switch {
			case b.CmpAbs(big.NewInt(1)) != 0:
				return valueOf(0), nil
			case b.Sign() > 0 || e.Bit(0) == 0:
				return valueOf(1), nil
			}
			return valueOf(-1), nil
		}
		if b.CmpAbs(big.NewInt(1)) > 0 && (!e.IsInt64() || e.Int64() > maxBits) {
			return value{}, f.fail(ErrOverflow, n, op)
		}
		return f.checked(integer(new(big.Int).Exp(b, e, nil)), n, op)
	}

	bf, _ := base.d.Float64()
	ef, _ := exp.d.Float64()
	res := math.Pow(bf, ef)
	switch {
	case math.IsNaN(res):
		return value{}, f.fail(ErrDomain, n, op)
	case math.IsInf(res, 0):
		return value{}, f.fail(ErrOverflow, n, op)
	}
	return f.checked(value{d: decimal.NewFromFloat(res), real: true}, n, op)
}

func (f frame) call(n *callNode) (value, error) {
	args := make([]value, len(n.args))
	for i, a := range n.args {
		v, err := f.eval(a)
		if err != nil {
			return value{}, err
		}
		args[i] = v
	}

	switch n.fn {
	case "$pow":
		return f.power(n, args[0], args[1])
	case "$clog2":
		x := args[0].d.Truncate(0).BigInt()
		if x.Sign() < 0 {
			return value{}, f.fail(ErrDomain, n, n.fn)
		}
		if x.Cmp(big.NewInt(1)) <= 0 {
			return valueOf(0), nil
		}
		x.Sub(x, big.NewInt(1))
		return valueOf(int64(x.BitLen())), nil
	case "$sqrt":
		x := args[0].d.Truncate(0).BigInt()
		if x.Sign() < 0 {
			return value{}, f.fail(ErrDomain, n, n.fn)
		}
		root := new(big.Int).Sqrt(x)
		if new(big.Int).Mul(root, root).Cmp(x) == 0 {
			return integer(root), nil
		}
		xf, _ := new(big.Float).SetInt(x).Float64()
		return value{d: decimal.NewFromFloat(math.Sqrt(xf)), real: true}, nil
	}
	return value{}, f.fail(ErrSyntax, n, n.fn)
}

// inRange reports whether the integer part of d fits in maxBits bits.
func inRange(d decimal.Decimal) bool {
	digits := int64(len(d.Coefficient().String())) + int64(d.Exponent())
	if d.IsNegative() {
		digits--
	}
	switch {
	case digits <= 300:
		return true
	case digits > 320:
		return false
	}
	return d.Abs().BigInt().BitLen() <= maxBits
}
