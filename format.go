package infix

import (
	"math"
	"strconv"
	"strings"
)

// String renders the constant so that it lexes back to the same value. Since
// there is no unary minus, a negative constant c renders as (0 - |c|).
func (c Constant) String() string {
	if math.Signbit(c.value) && !math.IsNaN(c.value) {
		return "(0 - " + Constant{value: -c.value, integer: c.integer}.literal() + ")"
	}
	return c.literal()
}

// literal renders the constant's value as a number token, including a sign
// if it is negative.
func (c Constant) literal() string {
	switch {
	case math.IsNaN(c.value):
		return "nan"
	case math.IsInf(c.value, 1):
		return "inf"
	case math.IsInf(c.value, -1):
		return "-inf"
	}
	// Exponent notation would be split at its sign by the lexer, so always
	// write plain decimals.
	s := strconv.FormatFloat(c.value, 'f', -1, 64)
	if !c.integer && !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func (v Variable) String() string {
	return v.name
}

func (b *BinaryOp) String() string {
	var s strings.Builder
	b.fmt(&s)
	return s.String()
}

func (b *BinaryOp) fmt(s *strings.Builder) {
	this := binop(b.op)
	fmtoperand(s, b.left, this, false)
	s.WriteByte(' ')
	s.WriteString(b.op.String())
	s.WriteByte(' ')
	fmtoperand(s, b.right, this, true)
}

// fmtoperand writes one operand of an operator, parenthesized if leaving
// the parentheses out would cause it to parse differently.
func fmtoperand(s *strings.Builder, e Expr, parent operator, right bool) {
	b, ok := e.(*BinaryOp)
	if !ok {
		s.WriteString(e.String())
		return
	}
	if !needsParens(binop(b.op), parent, right) {
		b.fmt(s)
		return
	}
	s.WriteByte('(')
	b.fmt(s)
	s.WriteByte(')')
}

// needsParens reports whether an operand with top-level operator child must
// be grouped when it appears on the given side of parent.
func needsParens(child, parent operator, right bool) bool {
	if child.prec != parent.prec {
		return child.prec < parent.prec
	}
	// Equal precedence means the same associativity. Grouping is implicit
	// only on the side the operator associates toward.
	return right != parent.right
}
