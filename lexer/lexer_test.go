package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/yulc/lexer"
)

func allLexemes(t *testing.T, src string) []lexer.Lexeme {
	t.Helper()
	l := lexer.New(src)
	var out []lexer.Lexeme
	for {
		lex, err := l.Next()
		require.NoError(t, err)
		out = append(out, lex)
		if lex.IsEOF() {
			return out
		}
	}
}

func TestLexerKeywordsAndSymbols(t *testing.T) {
	lexemes := allLexemes(t, `object "Test" { code { } }`)
	kinds := make([]lexer.Kind, len(lexemes))
	for i, lex := range lexemes {
		kinds[i] = lex.Kind
	}
	require.Equal(t, []lexer.Kind{
		lexer.KindKeyword, lexer.KindLiteral, lexer.KindSymbol,
		lexer.KindKeyword, lexer.KindSymbol, lexer.KindSymbol,
		lexer.KindSymbol, lexer.KindEndOfFile,
	}, kinds)
}

func TestLexerStripsComments(t *testing.T) {
	lexemes := allLexemes(t, "let x // trailing comment\n:= /* block */ 1")
	require.Equal(t, lexer.KeywordLet, lexemes[0].Keyword)
	require.Equal(t, "x", lexemes[1].Identifier)
	require.Equal(t, lexer.SymbolAssignment, lexemes[2].Symbol)
	require.Equal(t, "1", lexemes[3].Literal.Value)
}

func TestLexerUnterminatedComment(t *testing.T) {
	l := lexer.New("let x /* never closed")
	_, err := l.Next()
	require.NoError(t, err)
	_, err = l.Next()
	require.NoError(t, err)
	_, err = l.Next()
	require.ErrorIs(t, err, lexer.ErrUnterminatedComment)
}

func TestLexerHexString(t *testing.T) {
	lexemes := allLexemes(t, `hex"deadbeef"`)
	require.Equal(t, lexer.KindLiteral, lexemes[0].Kind)
	require.True(t, lexemes[0].Literal.IsHexString)
	require.Equal(t, "deadbeef", lexemes[0].Literal.Value)
}

func TestLexerIntUintBitwidth(t *testing.T) {
	lexemes := allLexemes(t, "uint256 uint int8 bool")
	require.Equal(t, lexer.KeywordUInt, lexemes[0].Keyword)
	require.Equal(t, 256, lexemes[0].Bits)
	require.Equal(t, lexer.KeywordUInt, lexemes[1].Keyword)
	require.Equal(t, 256, lexemes[1].Bits)
	require.Equal(t, lexer.KeywordInt, lexemes[2].Keyword)
	require.Equal(t, 8, lexemes[2].Bits)
	require.Equal(t, lexer.KeywordBool, lexemes[3].Keyword)
}

func TestLexerPeekIsIdempotent(t *testing.T) {
	l := lexer.New("let x")
	first, err := l.Peek()
	require.NoError(t, err)
	second, err := l.Peek()
	require.NoError(t, err)
	require.Equal(t, first, second)
	consumed, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, first, consumed)
}

func TestLexerDecimalAndHexLiterals(t *testing.T) {
	lexemes := allLexemes(t, "42 0xFF")
	require.Equal(t, "42", lexemes[0].Literal.Value)
	require.False(t, lexemes[0].Literal.IsHex)
	require.Equal(t, "FF", lexemes[1].Literal.Value)
	require.True(t, lexemes[1].Literal.IsHex)
}
