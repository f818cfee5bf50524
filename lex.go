package infix

import (
	"strconv"
	"strings"
	"unicode"
)

// Token is a lexical token of an expression.
type Token struct {
	// Kind is the category of the token.
	Kind TokenKind
	// Text is the token exactly as it appeared in the input, except that
	// merged operators like ** are written without any separating space.
	Text string
	// Int indicates that a number token is a base-10 integer literal.
	Int bool
	// Value is the numeric value of a number token.
	Value float64
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text
}

// TokenKind is the category of a Token.
type TokenKind int

const (
	tokenNone TokenKind = iota
	// TokenNum is an integer or real number.
	TokenNum
	// TokenIdent is a variable name.
	TokenIdent
	// TokenOp is a binary operator.
	TokenOp
	// TokenOpen is an open parenthesis.
	TokenOpen
	// TokenClose is a close parenthesis.
	TokenClose
	// TokenSep is a comma. No expression accepts one, but the lexer splits
	// on it.
	TokenSep
)

var tokenKindNames = [...]string{"None", "Num", "Ident", "Op", "Open", "Close", "Sep"}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// SplitSymbols contains the runes which always form tokens by themselves.
// Multi-character operators are formed by adjacent split tokens: "**" and
// "* *" both lex as exponentiation.
const SplitSymbols = "+-*/(),%"

// Tokenize splits src into tokens. It never fails; a sequence of runes which
// is neither whitespace, a split symbol, nor a number is an identifier.
// Since '-' is a split symbol, a literal like 1e-5 lexes as the identifier
// "1e", the operator "-", and the number 5.
func Tokenize(src string) []Token {
	var b strings.Builder
	b.Grow(len(src) + len(src)/2)
	for _, r := range src {
		if strings.ContainsRune(SplitSymbols, r) {
			b.WriteByte(' ')
			b.WriteRune(r)
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(r)
	}
	raw := strings.FieldsFunc(b.String(), unicode.IsSpace)
	toks := make([]Token, 0, len(raw))
	for _, s := range raw {
		if k := len(toks) - 1; k >= 0 && (s == "*" || s == "/") && toks[k].Text == s {
			// Adjacent * * is **, and / / is //. Only a single-character
			// operator merges, so * * * is ** then *.
			toks[k].Text += s
			continue
		}
		toks = append(toks, classify(s))
	}
	return toks
}

// classify determines the kind of a single raw token.
func classify(s string) Token {
	switch s {
	case "+", "-", "*", "/", "%":
		return Token{Kind: TokenOp, Text: s}
	case "(":
		return Token{Kind: TokenOpen, Text: s}
	case ")":
		return Token{Kind: TokenClose, Text: s}
	case ",":
		return Token{Kind: TokenSep, Text: s}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if ne, _ := err.(*strconv.NumError); ne == nil || ne.Err != strconv.ErrRange {
			return Token{Kind: TokenIdent, Text: s}
		}
		// Out of range literals are still numbers. ParseFloat returns the
		// appropriately signed infinity or zero for them.
	}
	tok := Token{Kind: TokenNum, Text: s, Value: v}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		tok.Int = true
	}
	return tok
}
