package infix

import (
	"errors"
	"strings"
	"testing"
)

func TestOpPrecsExist(t *testing.T) {
	for op := OpAdd; op <= OpFloorDiv; op++ {
		if b := binop(op); b.op != op {
			t.Errorf("no precedence for %v", op)
		}
		if got := opsym(op.String()); got != op {
			t.Errorf("symbol %q maps to %v, not %v", op.String(), got, op)
		}
	}
}

func TestOpTable(t *testing.T) {
	// Only exponentiation associates to the right, and it binds tightest.
	pow := binop(OpPow)
	if !pow.right {
		t.Error("** is not right-associative")
	}
	for _, op := range []Op{OpAdd, OpSub, OpMul, OpDiv, OpMod, OpFloorDiv} {
		p := binop(op)
		if p.right {
			t.Errorf("%v is right-associative", op)
		}
		if !pow.moreBinding(p) || p.moreBinding(pow) {
			t.Errorf("%v binds at least as tightly as **", op)
		}
	}
	for _, op := range []Op{OpMul, OpDiv, OpMod, OpFloorDiv} {
		if binop(op).prec != binop(OpMul).prec {
			t.Errorf("%v has a different precedence from *", op)
		}
		if !binop(op).moreBinding(binop(OpAdd)) {
			t.Errorf("%v does not bind more tightly than +", op)
		}
	}
	if binop(OpSub).prec != binop(OpAdd).prec {
		t.Error("- has a different precedence from +")
	}
}

func TestParseTrees(t *testing.T) {
	cases := []struct {
		name string
		a, b string
	}{
		{"paren", "(x)", "x"},
		{"multi", "((((x))))", "x"},

		{"add", "x+y", "((x)+(y))"},
		{"sub", "x-y", "((x)-(y))"},
		{"mul", "x*y", "((x)*(y))"},
		{"div", "x/y", "((x)/(y))"},
		{"pow", "x**y", "((x)**(y))"},
		{"mod", "x%y", "((x)%(y))"},
		{"floordiv", "x//y", "((x)//(y))"},
		{"spaced-pow", "x * * y", "x**y"},

		{"add4", "w+x+y+z", "((w+x)+y)+z"},
		{"sub4", "w-x-y-z", "((w-x)-y)-z"},
		{"mul4", "w*x*y*z", "((w*x)*y)*z"},
		{"div4", "w/x/y/z", "((w/x)/y)/z"},
		{"mod4", "w%x%y%z", "((w%x)%y)%z"},
		{"floordiv4", "w//x//y//z", "((w//x)//y)//z"},
		{"pow4", "w**x**y**z", "w**(x**(y**z))"},

		{"mixed-mul", "w*x/y%z//v", "(((w*x)/y)%z)//v"},
		{"mixed-add", "w+x-y+z", "((w+x)-y)+z"},
		{"desc", "w**x*y+z", "((w**x)*y)+z"},
		{"asc", "w+x*y**z", "w+(x*(y**z))"},
		{"descasc", "w**x*y+z+a*b**c", "(((w**x)*y)+z)+(a*(b**c))"},
		{"ascdesc", "w+x*y**z**a*b+c", "(w+((x*(y**(z**a)))*b))+c"},
		{"group", "(w+x)*(y-z)", "(w+x)*(y-z)"},
		{"group-pow", "(w**x)**y", "(w**x)**y"},
		{"nested", "((w+x)*y)**(z-a)", "((w+x)*y)**(z-a)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.a)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.a, err)
			}
			b, err := Parse(c.b)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.b, err)
			}
			if !a.Equal(b) {
				t.Errorf("mismatched AST:\n\t%q parses %v\n\t%q parses %v", c.a, Tree(a), c.b, Tree(b))
			}
		})
	}
}

func TestParseExact(t *testing.T) {
	x, y := Var("x"), Var("y")
	cases := []struct {
		name string
		src  string
		e    Expr
	}{
		{"int", "3", Int(3)},
		{"real", "2.5", Float(2.5)},
		{"var", "x", x},
		{"prec", "1+2*3", Add(Int(1), Mul(Int(2), Int(3)))},
		{"right-assoc", "2**3**2", Pow(Int(2), Pow(Int(3), Int(2)))},
		{"left-assoc", "10-3-2", Sub(Sub(Int(10), Int(3)), Int(2))},
		{"vars", "x+y*2", Add(x, Mul(y, Int(2)))},
		{"paren", "(x+y)*2", Mul(Add(x, y), Int(2))},
		{"floormod", "7//2%3", Mod(FloorDiv(Int(7), Int(2)), Int(3))},
		{"div", "x/y", Div(x, y)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := Parse(c.src)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.src, err)
			}
			if !e.Equal(c.e) {
				t.Errorf("%q parsed as %v, want %v", c.src, Tree(e), Tree(c.e))
			}
		})
	}
}

func TestParseConstantKinds(t *testing.T) {
	e := MustParse("2 + 2.0")
	b := e.(*BinaryOp)
	l, r := b.Left().(Constant), b.Right().(Constant)
	if !l.IsInt() {
		t.Errorf("2 parsed as non-integer")
	}
	if r.IsInt() {
		t.Errorf("2.0 parsed as integer")
	}
	if !l.Equal(r) {
		t.Errorf("2 and 2.0 are not equal constants")
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		index int
		token string
		msg   string
	}{
		{"empty", "", 0, "", "no expression"},
		{"blank", "   ", 0, "", "no expression"},
		{"empty-parens", "()", 1, ")", "no expression"},
		{"empty-inner-parens", "1*(())", 4, ")", "no expression"},
		{"open", "(1+2", 0, "(", "open parenthesis"},
		{"open-nested", "((1+2)", 0, "(", "open parenthesis"},
		{"close", "1+2)", 3, ")", "close parenthesis"},
		{"close-first", ")", 0, ")", "close parenthesis"},
		{"close-nested", "(1+2))*3", 5, ")", "close parenthesis"},
		{"comma", "1,2", 1, ",", "separator"},
		{"trailing-op", "1+", 1, "+", "missing operand"},
		{"leading-op", "*2", 0, "*", "missing operand"},
		{"unary-minus", "-x", 0, "-", "missing operand"},
		{"op-op", "x*-y", 2, "-", "missing operand"},
		{"triple-star", "2***3", 2, "*", "missing operand"},
		{"op-close", "(1+)", 2, "+", "missing operand"},
		{"op-open", "1+(", 2, "(", "open parenthesis"},
		{"two-operands", "1 2", 1, "2", "missing operator"},
		{"adjacent-groups", "(1)(2)", 3, "(", "missing operator"},
		{"three-operands", "x y z", 1, "y", "missing operator"},
		{"postfix-order", "1 2 +", 1, "2", "missing operator"},
		{"postfix-vars", "x y -", 1, "y", "missing operator"},
		{"prefix-order", "+ 1 2", 0, "+", "missing operand"},
		{"postfix-group", "(1 2) +", 2, "2", "missing operator"},
		{"postfix-tail", "1 + 2 3 *", 3, "3", "missing operator"},
		{"operand-after-group", "(1+2) 3", 5, "3", "missing operator"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := Parse(c.src)
			if err == nil {
				t.Fatalf("%q parsed to %v with no error", c.src, Tree(e))
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("%q gave %#v, not a *SyntaxError", c.src, err)
			}
			if se.Index != c.index || se.Pos() != c.index {
				t.Errorf("%q: wrong error index: want %d, got %d (%v)", c.src, c.index, se.Index, err)
			}
			if se.Token != c.token {
				t.Errorf("%q: wrong error token: want %q, got %q", c.src, c.token, se.Token)
			}
			if !strings.Contains(err.Error(), c.msg) {
				t.Errorf("%q: error %q doesn't mention %q", c.src, err.Error(), c.msg)
			}
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse of invalid input didn't panic")
		}
	}()
	MustParse("(")
}

func TestTree(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"x", "(x)"},
		{"2.50", "(2.5)"},
		{"1+2*3", "([1] + [(2) * (3)])"},
		{"2**3**2", "([2] ** [(3) ** (2)])"},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			if got := Tree(MustParse(c.src)); got != c.want {
				t.Errorf("wrong tree for %q: want %q, got %q", c.src, c.want, got)
			}
		})
	}
}

func BenchmarkParse(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Parse("w+x*y**z**a*b+c-(d//e%f)/g"); err != nil {
			b.Fatal(err)
		}
	}
}
