package infix

import (
	"math"
	"strconv"
)

// Bindings maps variable names to values for evaluation. A nil Bindings is
// valid and binds nothing.
type Bindings map[string]float64

// Eval returns the constant's value. It never fails.
func (c Constant) Eval(Bindings) (float64, error) {
	return c.value, nil
}

// Eval looks up the variable's value. If vars has no value for the
// variable, the error is an *UnboundVariableError.
func (v Variable) Eval(vars Bindings) (float64, error) {
	x, ok := vars[v.name]
	if !ok {
		return 0, &UnboundVariableError{Name: v.name}
	}
	return x, nil
}

// Eval evaluates both operands, left first, then applies the operator.
//
// The operators have the usual meanings with these details: ** is math.Pow;
// % is math.Mod, i.e. truncated, so the result has the sign of the left
// operand; and // is division rounded toward negative infinity. Division,
// floor division, and modulo with a zero right operand fail with
// *DivisionByZeroError, as does raising zero to a negative power. A power
// with finite operands that has no real value, e.g. (0-8)**0.5, fails with
// *DomainError.
func (b *BinaryOp) Eval(vars Bindings) (float64, error) {
	l, err := b.left.Eval(vars)
	if err != nil {
		return 0, err
	}
	r, err := b.right.Eval(vars)
	if err != nil {
		return 0, err
	}
	return apply(b.op, l, r)
}

// apply computes l op r.
func apply(op Op, l, r float64) (float64, error) {
	switch op {
	case OpAdd:
		return l + r, nil
	case OpSub:
		return l - r, nil
	case OpMul:
		return l * r, nil
	case OpDiv:
		if r == 0 {
			return 0, &DivisionByZeroError{Op: op, Left: l}
		}
		return l / r, nil
	case OpFloorDiv:
		if r == 0 {
			return 0, &DivisionByZeroError{Op: op, Left: l}
		}
		return math.Floor(l / r), nil
	case OpMod:
		if r == 0 {
			return 0, &DivisionByZeroError{Op: op, Left: l}
		}
		return math.Mod(l, r), nil
	case OpPow:
		if l == 0 && r < 0 {
			return 0, &DivisionByZeroError{Op: op, Left: l}
		}
		v := math.Pow(l, r)
		if math.IsNaN(v) && !math.IsNaN(l) && !math.IsNaN(r) {
			return 0, &DomainError{Op: op, X: l, Y: r}
		}
		return v, nil
	default:
		panic("infix: invalid operator " + op.String())
	}
}

// Eval is a shortcut to evaluate an expression.
func Eval(e Expr, vars Bindings) (float64, error) {
	return e.Eval(vars)
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, vars Bindings) (float64, error) {
	e, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return e.Eval(vars)
}

// UnboundVariableError is an error from a lookup for a variable that is
// missing from the bindings.
type UnboundVariableError struct {
	// Name is the name that was missing.
	Name string
}

func (err *UnboundVariableError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// DivisionByZeroError is an error from dividing by zero, including floor
// division, modulo, and raising zero to a negative power.
type DivisionByZeroError struct {
	// Op is the operator that divided by zero.
	Op Op
	// Left is the value of the left operand.
	Left float64
}

func (err *DivisionByZeroError) Error() string {
	if err.Op == OpPow {
		return "division by zero: 0 ** negative"
	}
	return "division by zero: " + strconv.FormatFloat(err.Left, 'g', -1, 64) + " " + err.Op.String() + " 0"
}

// DomainError is an error returned when an operator has no real result for
// its operands.
type DomainError struct {
	// Op is the operator.
	Op Op
	// X and Y are the left and right operands.
	X, Y float64
}

func (err *DomainError) Error() string {
	return strconv.FormatFloat(err.X, 'g', -1, 64) + " " + err.Op.String() + " " + strconv.FormatFloat(err.Y, 'g', -1, 64) + " outside domain"
}
