package infix

import "strconv"

// SyntaxError is an error indicating input that does not form an expression:
// an unknown token, unbalanced parentheses, or operators and operands that
// do not pair up.
type SyntaxError struct {
	// Index is the index of the offending token in the result of Tokenize.
	// Errors detected at the end of the input have Index equal to the
	// number of tokens.
	Index int
	// Token is the text of the offending token, or the empty string at the
	// end of the input.
	Token string
	// Problem describes what is wrong.
	Problem string
}

func (err *SyntaxError) Error() string {
	msg := "syntax error at token " + strconv.Itoa(err.Index) + ": " + err.Problem
	if err.Token == "" {
		return msg
	}
	return msg + " " + strconv.Quote(err.Token)
}

// Pos returns the index of the token that caused the error.
func (err *SyntaxError) Pos() int {
	return err.Index
}
