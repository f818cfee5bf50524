package infix

import (
	"math"
	"slices"
)

// Comparison reports how the operators, constants, and variables of two
// expressions line up. Index 0 of each pair describes the first expression
// and index 1 the second.
type Comparison struct {
	// Ops is the operator symbols of each expression, in the order they
	// appear in the rendered expression.
	Ops [2][]string
	// Consts is the constant literals of each expression, in order. They
	// are collected from the tree rather than the rendered text, so a
	// negative constant appears as -3 rather than as the operator and
	// constants of (0 - 3).
	Consts [2][]string
	// Vars is the variable names of each expression, in order, with
	// repetitions.
	Vars [2][]string

	// SameOps, SameConsts, and SameVars report whether the corresponding
	// sequences are equal.
	SameOps, SameConsts, SameVars bool
}

// CompareOperators compares the sequences of operators, constants, and
// variables in a and b. It is a diagnostic for telling how two expressions
// which might evaluate the same differ in form. Two expressions which are
// Equal always have the same sequences, but the converse does not hold:
// parentheses do not appear in any sequence, so a-b-c and a-(b-c) compare
// the same.
func CompareOperators(a, b Expr) Comparison {
	var c Comparison
	for i, e := range [2]Expr{a, b} {
		walk(e, func(n Expr) {
			switch n := n.(type) {
			case Constant:
				c.Consts[i] = append(c.Consts[i], n.literal())
			case Variable:
				c.Vars[i] = append(c.Vars[i], n.name)
			case *BinaryOp:
				c.Ops[i] = append(c.Ops[i], n.op.String())
			}
		})
	}
	c.SameOps = slices.Equal(c.Ops[0], c.Ops[1])
	c.SameConsts = slices.Equal(c.Consts[0], c.Consts[1])
	c.SameVars = slices.Equal(c.Vars[0], c.Vars[1])
	return c
}

// SameValue evaluates a and b with the same bindings and reports whether the
// results are equal. NaN results are equal to each other. If either
// evaluation fails, the error is returned.
func SameValue(a, b Expr, vars Bindings) (bool, error) {
	x, err := a.Eval(vars)
	if err != nil {
		return false, err
	}
	y, err := b.Eval(vars)
	if err != nil {
		return false, err
	}
	return x == y || math.IsNaN(x) && math.IsNaN(y), nil
}
