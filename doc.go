// Package infix parses arithmetic expressions into trees, evaluates them, and
// finds their roots.
//
// Expressions are written in ordinary infix notation with numbers,
// variables, parentheses, and the operators + - * / ** % //. "**" is
// exponentiation and binds tightest, associating to the right, so
// "2 ** 3 ** 2" is 512. Next come * / % and //, then + and -, all
// associating to the left. There is no unary minus; write "0 - x" instead.
//
// Trees can also be built directly with Int, Float, Var, and the operator
// functions Add, Sub, Mul, Div, Pow, Mod, and FloorDiv. Every tree renders
// back to text with String, and that text parses to a tree with the same
// value.
//
// FindRoot and FindAllRoots locate zeros of an expression in one variable
// by bisection.
package infix
