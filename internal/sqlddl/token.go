package sqlddl

import "fmt"

// TokenKind classifies a lexed token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIdent
	TokenQuotedIdent
	TokenString
	TokenNumber
	TokenLParen
	TokenRParen
	TokenComma
	TokenSemicolon
	TokenDot
	TokenOperator
)

// Token is a single lexical unit with its source position.
type Token struct {
	Kind TokenKind
	// Text is the token value. Quoted identifiers and strings are unquoted.
	Text string
	Line int
	Col  int
}

func (t Token) String() string {
	if t.Kind == TokenEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.Text)
}

// Position points at a location in the source text.
type Position struct {
	Line int
	Col  int
}

// SyntaxError reports a parse failure with its source position.
type SyntaxError struct {
	Pos Position
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Pos.Line, e.Pos.Col, e.Msg)
}

func syntaxErrorf(tok Token, format string, args ...any) error {
	return &SyntaxError{
		Pos: Position{Line: tok.Line, Col: tok.Col},
		Msg: fmt.Sprintf(format, args...),
	}
}
