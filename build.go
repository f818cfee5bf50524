package infix

// Add creates the expression a + b.
func Add(a, b Expr) Expr { return NewBinaryOp(OpAdd, a, b) }

// Sub creates the expression a - b.
func Sub(a, b Expr) Expr { return NewBinaryOp(OpSub, a, b) }

// Mul creates the expression a * b.
func Mul(a, b Expr) Expr { return NewBinaryOp(OpMul, a, b) }

// Div creates the expression a / b.
func Div(a, b Expr) Expr { return NewBinaryOp(OpDiv, a, b) }

// Pow creates the expression a ** b.
func Pow(a, b Expr) Expr { return NewBinaryOp(OpPow, a, b) }

// Mod creates the expression a % b.
func Mod(a, b Expr) Expr { return NewBinaryOp(OpMod, a, b) }

// FloorDiv creates the expression a // b.
func FloorDiv(a, b Expr) Expr { return NewBinaryOp(OpFloorDiv, a, b) }
