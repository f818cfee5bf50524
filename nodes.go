package infix

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// Expr is a node in an expression tree. The implementations are exactly
// Constant, Variable, and *BinaryOp. Trees are immutable once constructed,
// so they are safe to share among goroutines.
type Expr interface {
	// Eval computes the value of the expression with the given variable
	// values.
	Eval(vars Bindings) (float64, error)
	// String renders the expression in infix notation with only the
	// parentheses needed to parse it back to the same tree.
	String() string
	// Equal reports whether the expression is structurally identical to
	// another. It does not consider commutativity, so a+b is not equal to
	// b+a.
	Equal(other Expr) bool

	isExpr()
}

// Op is a binary operator.
type Op int8

const (
	opNone Op = iota

	OpAdd      // +
	OpSub      // -
	OpMul      // *
	OpDiv      // /
	OpPow      // **
	OpMod      // %
	OpFloorDiv // //
)

var opSymbols = [...]string{"", "+", "-", "*", "/", "**", "%", "//"}

// String returns the operator's symbol.
func (op Op) String() string {
	if !op.valid() {
		return "Op(" + strconv.Itoa(int(op)) + ")"
	}
	return opSymbols[op]
}

func (op Op) valid() bool {
	return op > opNone && int(op) < len(opSymbols)
}

// Constant is a numeric leaf.
type Constant struct {
	value   float64
	integer bool
}

// Int creates an integer constant.
func Int(v int64) Constant {
	return Constant{value: float64(v), integer: true}
}

// Float creates a real constant. It renders with a decimal point even when
// v is integral.
func Float(v float64) Constant {
	return Constant{value: v}
}

// Value returns the constant's value.
func (c Constant) Value() float64 {
	return c.value
}

// IsInt reports whether the constant was created as an integer.
func (c Constant) IsInt() bool {
	return c.integer
}

// Variable is a leaf whose value is supplied at evaluation time.
type Variable struct {
	name string
}

// Var creates a variable. Panics if name could not be parsed back as a
// variable, i.e. if it is empty, contains whitespace or split symbols, or is
// a number.
func Var(name string) Variable {
	toks := Tokenize(name)
	if len(toks) != 1 || toks[0].Kind != TokenIdent || toks[0].Text != name {
		panic("infix: invalid variable name " + strconv.Quote(name))
	}
	return Variable{name: name}
}

// Name returns the variable's name.
func (v Variable) Name() string {
	return v.name
}

// BinaryOp applies an operator to two subexpressions.
type BinaryOp struct {
	op          Op
	left, right Expr
}

// NewBinaryOp creates an operator node. Panics if op is not a valid operator
// or either operand is nil.
func NewBinaryOp(op Op, left, right Expr) *BinaryOp {
	if !op.valid() {
		panic("infix: invalid operator " + op.String())
	}
	if left == nil || right == nil {
		panic("infix: nil operand to " + op.String())
	}
	return &BinaryOp{op: op, left: left, right: right}
}

// Op returns the node's operator.
func (b *BinaryOp) Op() Op {
	return b.op
}

// Left returns the left operand.
func (b *BinaryOp) Left() Expr {
	return b.left
}

// Right returns the right operand.
func (b *BinaryOp) Right() Expr {
	return b.right
}

func (Constant) isExpr()  {}
func (Variable) isExpr()  {}
func (*BinaryOp) isExpr() {}

// Equal reports whether other is a constant with the same value. Integer and
// real constants with the same value are equal, and NaN equals NaN.
func (c Constant) Equal(other Expr) bool {
	o, ok := other.(Constant)
	if !ok {
		return false
	}
	return c.value == o.value || math.IsNaN(c.value) && math.IsNaN(o.value)
}

// Equal reports whether other is a variable with the same name.
func (v Variable) Equal(other Expr) bool {
	o, ok := other.(Variable)
	return ok && v.name == o.name
}

// Equal reports whether other applies the same operator to equal operands in
// the same order.
func (b *BinaryOp) Equal(other Expr) bool {
	o, ok := other.(*BinaryOp)
	if !ok || o == nil {
		return false
	}
	if b == o {
		return true
	}
	return b.op == o.op && b.left.Equal(o.left) && b.right.Equal(o.right)
}

// Vars returns the sorted names of the variables used in an expression.
func Vars(e Expr) []string {
	var names []string
	walk(e, func(n Expr) {
		if v, ok := n.(Variable); ok {
			names = append(names, v.name)
		}
	})
	slices.Sort(names)
	return slices.Compact(names)
}

// walk visits every node of e in order: left subtree, node, right subtree.
func walk(e Expr, visit func(Expr)) {
	switch e := e.(type) {
	case Constant, Variable:
		visit(e)
	case *BinaryOp:
		walk(e.left, visit)
		visit(e)
		walk(e.right, visit)
	default:
		panic("infix: invalid expression node " + typename(e))
	}
}

// Tree creates a fully bracketed representation of an expression, with
// alternating round and square brackets grouping each node. It is meant for
// inspecting the shape of parsed trees; the result generally does not parse.
func Tree(e Expr) string {
	var b strings.Builder
	tree(&b, e, false)
	return b.String()
}

func tree(b *strings.Builder, e Expr, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch e := e.(type) {
	case Constant:
		b.WriteString(e.literal())
	case Variable:
		b.WriteString(e.name)
	case *BinaryOp:
		tree(b, e.left, !square)
		b.WriteByte(' ')
		b.WriteString(e.op.String())
		b.WriteByte(' ')
		tree(b, e.right, !square)
	default:
		panic("infix: invalid expression node " + typename(e) + " after writing " + b.String())
	}
}

// typename describes a value for panic messages without importing fmt.
func typename(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	return strconv.Quote(e.String())
}
