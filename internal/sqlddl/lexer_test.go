package sqlddl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexer_Tokenize(t *testing.T) {
	t.Run("Should tokenize a simple create table", func(t *testing.T) {
		lexer := newLexer("CREATE TABLE t (id INT);")
		tokens := lexer.tokenize()
		kinds := make([]TokenKind, 0, len(tokens))
		for _, token := range tokens {
			kinds = append(kinds, token.Kind)
		}
		assert.Equal(t, []TokenKind{
			TokenIdent, TokenIdent, TokenIdent, TokenLParen,
			TokenIdent, TokenIdent, TokenRParen, TokenSemicolon, TokenEOF,
		}, kinds)
		assert.Empty(t, lexer.lineComments)
	})
	t.Run("Should record line comments by line number", func(t *testing.T) {
		src := "CREATE TABLE t (\n  id INT, -- the key\n  name VARCHAR(10)\n);"
		lexer := newLexer(src)
		lexer.tokenize()
		assert.Equal(t, "the key", lexer.lineComments[2])
	})
	t.Run("Should unescape doubled quotes in string literals", func(t *testing.T) {
		lexer := newLexer("INSERT INTO t VALUES ('it''s fine');")
		tokens := lexer.tokenize()
		var literal *Token
		for i := range tokens {
			if tokens[i].Kind == TokenString {
				literal = &tokens[i]
				break
			}
		}
		require.NotNil(t, literal)
		assert.Equal(t, "it's fine", literal.Text)
	})
	t.Run("Should tokenize decimal and exponent numbers", func(t *testing.T) {
		lexer := newLexer("VALUES (12.5, 1e3)")
		tokens := lexer.tokenize()
		var numbers []string
		for _, token := range tokens {
			if token.Kind == TokenNumber {
				numbers = append(numbers, token.Text)
			}
		}
		assert.Equal(t, []string{"12.5", "1e3"}, numbers)
	})
	t.Run("Should skip block comments", func(t *testing.T) {
		lexer := newLexer("/* header */ CREATE /* inline */ TABLE t (id INT)")
		tokens := lexer.tokenize()
		assert.Equal(t, "CREATE", tokens[0].Text)
		assert.Equal(t, "TABLE", tokens[1].Text)
	})
	t.Run("Should track line and column positions", func(t *testing.T) {
		lexer := newLexer("CREATE\nTABLE t")
		tokens := lexer.tokenize()
		assert.Equal(t, 1, tokens[0].Line)
		assert.Equal(t, 2, tokens[1].Line)
		assert.Equal(t, 1, tokens[1].Col)
	})
	t.Run("Should read quoted identifiers", func(t *testing.T) {
		lexer := newLexer(`CREATE TABLE "My Table" (id INT)`)
		tokens := lexer.tokenize()
		assert.Equal(t, TokenQuotedIdent, tokens[2].Kind)
		assert.Equal(t, "My Table", tokens[2].Text)
	})
	t.Run("Should emit unknown characters as operator tokens", func(t *testing.T) {
		lexer := newLexer("a > b")
		tokens := lexer.tokenize()
		assert.Equal(t, TokenOperator, tokens[1].Kind)
		assert.Equal(t, ">", tokens[1].Text)
	})
}
