package formula

import (
	"math"
	"strconv"
)

// Expr is a node of a parsed formula. The set of implementations is closed:
// Number, Variable, Unary and Binary.
type Expr interface {
	eval(env map[string]float64) (float64, error)
	walk(fn func(Expr))
	String() string
}

type Op byte

const (
	OpAdd Op = '+'
	OpSub Op = '-'
	OpMul Op = '*'
	OpDiv Op = '/'
	OpPow Op = '^'
)

type Number struct {
	Value float64
}

type Variable struct {
	Name string
	Pos  int
}

type Unary struct {
	Op      Op
	Operand Expr
}

type Binary struct {
	Op    Op
	Left  Expr
	Right Expr
	Pos   int
}

func (n *Number) eval(map[string]float64) (float64, error) { return n.Value, nil }
func (n *Number) walk(fn func(Expr))                       { fn(n) }
func (n *Number) String() string                           { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

func (v *Variable) eval(env map[string]float64) (float64, error) {
	val, ok := env[v.Name]
	if !ok {
		return 0, &Error{Kind: KindUnknownVariable, Detail: v.Name, Pos: v.Pos}
	}
	return val, nil
}
func (v *Variable) walk(fn func(Expr)) { fn(v) }
func (v *Variable) String() string     { return v.Name }

func (u *Unary) eval(env map[string]float64) (float64, error) {
	x, err := u.Operand.eval(env)
	if err != nil {
		return 0, err
	}
	if u.Op == OpSub {
		return -x, nil
	}
	return x, nil
}
func (u *Unary) walk(fn func(Expr)) {
	fn(u)
	u.Operand.walk(fn)
}
func (u *Unary) String() string { return "(" + string(u.Op) + u.Operand.String() + ")" }

func (b *Binary) eval(env map[string]float64) (float64, error) {
	l, err := b.Left.eval(env)
	if err != nil {
		return 0, err
	}
	r, err := b.Right.eval(env)
	if err != nil {
		return 0, err
	}

	var out float64
	switch b.Op {
	case OpAdd:
		out = l + r
	case OpSub:
		out = l - r
	case OpMul:
		out = l * r
	case OpDiv:
		if r == 0 {
			return 0, &Error{Kind: KindEvaluation, Detail: "division by zero", Pos: b.Pos}
		}
		out = l / r
	case OpPow:
		out = math.Pow(l, r)
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, &Error{Kind: KindEvaluation, Detail: "result is not a finite number", Pos: b.Pos}
	}
	return out, nil
}
func (b *Binary) walk(fn func(Expr)) {
	fn(b)
	b.Left.walk(fn)
	b.Right.walk(fn)
}
func (b *Binary) String() string {
	return "(" + b.Left.String() + " " + string(b.Op) + " " + b.Right.String() + ")"
}
