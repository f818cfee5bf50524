package infix

import "strconv"

// Expr = num | name | Add | Sub | Mul | Div | Mod | FloorDiv | Pow | '(' Expr ')'
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// Mod = Expr '%' Expr
// FloorDiv = Expr '//' Expr
// Pow = Expr '**' Expr

// Parse parses an expression. Errors are of type *SyntaxError.
//
// Parsing uses the Shunting-Yard algorithm: tokens are first reordered into
// postfix order, and then the postfix sequence is assembled into a tree with
// a stack of operands.
func Parse(src string) (Expr, error) {
	toks := Tokenize(src)
	rpn, err := postfix(toks)
	if err != nil {
		return nil, err
	}
	return assemble(rpn), nil
}

// MustParse is like Parse but panics if the expression cannot be parsed.
func MustParse(src string) Expr {
	e, err := Parse(src)
	if err != nil {
		panic("infix: Parse(" + strconv.Quote(src) + "): " + err.Error())
	}
	return e
}

// rpnItem is an element of a postfix sequence. Exactly one of leaf and op is
// set.
type rpnItem struct {
	leaf Expr
	op   operator
}

// stackItem is an element of the operator stack. An item with op.op ==
// opNone is an open parenthesis.
type stackItem struct {
	op   operator
	tok  int
	text string
}

// postfix converts a token sequence in infix order to postfix order. It
// tracks whether each token must begin an operand or continue with an
// operator, so the result always assembles into exactly one tree.
func postfix(toks []Token) ([]rpnItem, error) {
	out := make([]rpnItem, 0, len(toks))
	var stack []stackItem
	depth := 0
	operand := true
	for i, tok := range toks {
		switch tok.Kind {
		case TokenNum, TokenIdent, TokenOpen:
			if !operand {
				return nil, &SyntaxError{Index: i, Token: tok.Text, Problem: "missing operator before operand"}
			}
		}
		switch tok.Kind {
		case TokenNum:
			out = append(out, rpnItem{leaf: Constant{value: tok.Value, integer: tok.Int}})
			operand = false
		case TokenIdent:
			out = append(out, rpnItem{leaf: Variable{name: tok.Text}})
			operand = false
		case TokenOp:
			prec := binop(opsym(tok.Text))
			if prec.op == opNone {
				return nil, &SyntaxError{Index: i, Token: tok.Text, Problem: "unknown operator"}
			}
			if operand {
				return nil, &SyntaxError{Index: i, Token: tok.Text, Problem: "missing operand"}
			}
			// Pop operators that bind at least as tightly as this one, except
			// that equal precedence stays on the stack for right-associative
			// operators.
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.op.op == opNone || prec.moreBinding(top.op) {
					break
				}
				out = append(out, rpnItem{op: top.op})
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, stackItem{op: prec, tok: i, text: tok.Text})
			operand = true
		case TokenOpen:
			stack = append(stack, stackItem{op: openprec, tok: i, text: tok.Text})
			depth++
		case TokenClose:
			if depth == 0 {
				return nil, &SyntaxError{Index: i, Token: tok.Text, Problem: "close parenthesis with no open parenthesis"}
			}
			if operand {
				if toks[i-1].Kind == TokenOp {
					return nil, &SyntaxError{Index: i - 1, Token: toks[i-1].Text, Problem: "missing operand"}
				}
				return nil, &SyntaxError{Index: i, Token: tok.Text, Problem: "no expression in parentheses"}
			}
			for {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.op.op == opNone {
					break
				}
				out = append(out, rpnItem{op: top.op})
			}
			depth--
		case TokenSep:
			return nil, &SyntaxError{Index: i, Token: tok.Text, Problem: "unexpected separator"}
		default:
			panic("infix: unknown token: " + tok.String())
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.op.op == opNone {
			return nil, &SyntaxError{Index: top.tok, Token: top.text, Problem: "open parenthesis with no close parenthesis"}
		}
		out = append(out, rpnItem{op: top.op})
	}
	if operand {
		n := len(toks)
		if n == 0 {
			return nil, &SyntaxError{Index: 0, Problem: "no expression"}
		}
		return nil, &SyntaxError{Index: n - 1, Token: toks[n-1].Text, Problem: "missing operand"}
	}
	return out, nil
}

// assemble builds an expression tree from a postfix sequence produced by
// postfix.
func assemble(rpn []rpnItem) Expr {
	stack := make([]Expr, 0, len(rpn)/2+1)
	for _, it := range rpn {
		if it.leaf != nil {
			stack = append(stack, it.leaf)
			continue
		}
		if len(stack) < 2 {
			panic("infix: operator " + it.op.op.String() + " without operands")
		}
		r := stack[len(stack)-1]
		l := stack[len(stack)-2]
		stack = stack[:len(stack)-2]
		stack = append(stack, &BinaryOp{op: it.op.op, left: l, right: r})
	}
	if len(stack) != 1 {
		panic("infix: postfix sequence left " + strconv.Itoa(len(stack)) + " operands")
	}
	return stack[0]
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the operator to use when this precedence is selected.
	op Op
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// opsym maps an operator token to its Op, or opNone if there is none.
func opsym(text string) Op {
	switch text {
	case "+":
		return OpAdd
	case "-":
		return OpSub
	case "*":
		return OpMul
	case "/":
		return OpDiv
	case "**":
		return OpPow
	case "%":
		return OpMod
	case "//":
		return OpFloorDiv
	default:
		return opNone
	}
}

// binop gets the precedence for an operator. If op is not a binary
// operator, then the result has an op of opNone.
func binop(op Op) operator {
	switch op {
	case OpAdd, OpSub:
		return operator{1, false, op}
	case OpMul, OpDiv, OpMod, OpFloorDiv:
		return operator{5, false, op}
	case OpPow:
		return operator{15, true, op}
	default:
		return operator{}
	}
}

// openprec marks an open parenthesis on the operator stack.
var openprec = operator{-128, false, opNone}
