package lexer_test

import (
	"testing"

	"github.com/mna/gobc/lang/lexer"
	"github.com/mna/gobc/lang/token"
	"github.com/stretchr/testify/require"
)

func toks(t *testing.T, src string) []token.Token {
	t.Helper()
	lxs, err := lexer.ScanAll([]byte(src))
	require.NoError(t, err)
	out := make([]token.Token, len(lxs))
	for i, lx := range lxs {
		out[i] = lx.Tok
	}
	return out
}

func TestPunctuation(t *testing.T) {
	cases := []struct {
		src  string
		want []token.Token
	}{
		{":=", []token.Token{token.DEFINE, token.EOF}},
		{"==", []token.Token{token.EQ, token.EOF}},
		{"!=", []token.Token{token.NEQ, token.EOF}},
		{"<=", []token.Token{token.LE, token.EOF}},
		{">=", []token.Token{token.GE, token.EOF}},
		{"<<", []token.Token{token.LTLT, token.EOF}},
		{">>", []token.Token{token.GTGT, token.EOF}},
		{"<<=", []token.Token{token.LTLT_EQ, token.EOF}},
		{">>=", []token.Token{token.GTGT_EQ, token.EOF}},
		{"&^", []token.Token{token.AMPCARET, token.EOF}},
		{"&^=", []token.Token{token.AMPCARET_EQ, token.EOF}},
		{"&&", []token.Token{token.ANDAND, token.EOF}},
		{"||", []token.Token{token.OROR, token.EOF}},
		{"++", []token.Token{token.INC, token.EOF}},
		{"--", []token.Token{token.DEC, token.EOF}},
		{"...", []token.Token{token.ELLIPSIS, token.EOF}},
		{"<-", []token.Token{token.ARROW, token.EOF}},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			require.Equal(t, c.want, toks(t, c.src))
		})
	}
}

func TestAutoSemicolon(t *testing.T) {
	got := toks(t, "x := 1\ny := 2\n")
	want := []token.Token{
		token.IDENT, token.DEFINE, token.INT, token.SEMI,
		token.IDENT, token.DEFINE, token.INT, token.SEMI,
		token.EOF,
	}
	require.Equal(t, want, got)
}

func TestNoAutoSemicolonAfterOperator(t *testing.T) {
	got := toks(t, "x :=\n1\n")
	want := []token.Token{token.IDENT, token.DEFINE, token.INT, token.SEMI, token.EOF}
	require.Equal(t, want, got)
}

func TestKeywordsAndIdents(t *testing.T) {
	lxs, err := lexer.ScanAll([]byte("package main\nfunc main() {}"))
	require.NoError(t, err)
	require.Equal(t, token.PACKAGE, lxs[0].Tok)
	require.Equal(t, token.IDENT, lxs[1].Tok)
	require.Equal(t, "main", lxs[1].Lit)
}

func TestNumberLiterals(t *testing.T) {
	lxs, err := lexer.ScanAll([]byte("123 1.5"))
	require.NoError(t, err)
	require.Equal(t, token.INT, lxs[0].Tok)
	require.Equal(t, "123", lxs[0].Lit)
	require.Equal(t, token.FLOAT, lxs[1].Tok)
	require.Equal(t, "1.5", lxs[1].Lit)
}

func TestStringLiteral(t *testing.T) {
	lxs, err := lexer.ScanAll([]byte(`"hello\nworld"`))
	require.NoError(t, err)
	require.Equal(t, token.STRING, lxs[0].Tok)
	require.Equal(t, "hello\nworld", lxs[0].Lit)
}

func TestLineComment(t *testing.T) {
	got := toks(t, "x := 1 // comment\n")
	want := []token.Token{token.IDENT, token.DEFINE, token.INT, token.SEMI, token.EOF}
	require.Equal(t, want, got)
}

func TestBlockComment(t *testing.T) {
	got := toks(t, "x /* c */ := 1\n")
	want := []token.Token{token.IDENT, token.DEFINE, token.INT, token.SEMI, token.EOF}
	require.Equal(t, want, got)
}

func TestUnterminatedString(t *testing.T) {
	_, err := lexer.ScanAll([]byte(`"oops`))
	require.Error(t, err)
}

func TestUnclosedComment(t *testing.T) {
	_, err := lexer.ScanAll([]byte("/* oops"))
	require.Error(t, err)
}

func TestUnknownCharacter(t *testing.T) {
	_, err := lexer.ScanAll([]byte("$"))
	require.Error(t, err)
}
