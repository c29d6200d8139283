package sqlddl

import (
	"strings"
	"unicode"
)

// lexer splits SQL text into tokens. Line comments are not emitted as tokens;
// they are collected per line so the parser can attach trailing comments to
// column definitions as descriptions.
type lexer struct {
	src  []rune
	pos  int
	line int
	col  int

	// lineComments maps a source line to the text of the -- comment that
	// ends it.
	lineComments map[int]string
}

func newLexer(src string) *lexer {
	return &lexer{
		src:          []rune(src),
		line:         1,
		col:          1,
		lineComments: map[int]string{},
	}
}

// tokenize consumes the whole input. Lexing is total: unknown characters
// become single-rune operator tokens so the parser owns all error reporting.
func (l *lexer) tokenize() []Token {
	var tokens []Token
	for {
		tok := l.next()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

func (l *lexer) next() Token {
	l.skipSpaceAndComments()
	if l.pos >= len(l.src) {
		return Token{Kind: TokenEOF, Line: l.line, Col: l.col}
	}
	start := Token{Line: l.line, Col: l.col}
	ch := l.src[l.pos]
	switch {
	case isIdentStart(ch):
		start.Kind = TokenIdent
		start.Text = l.readWhile(isIdentPart)
		return start
	case unicode.IsDigit(ch):
		start.Kind = TokenNumber
		start.Text = l.readNumber()
		return start
	case ch == '\'':
		start.Kind = TokenString
		start.Text = l.readString()
		return start
	case ch == '"':
		start.Kind = TokenQuotedIdent
		start.Text = l.readQuoted('"')
		return start
	case ch == '`':
		start.Kind = TokenQuotedIdent
		start.Text = l.readQuoted('`')
		return start
	case ch == '[':
		start.Kind = TokenQuotedIdent
		start.Text = l.readBracketed()
		return start
	case ch == '(':
		start.Kind = TokenLParen
		start.Text = "("
		l.advance()
		return start
	case ch == ')':
		start.Kind = TokenRParen
		start.Text = ")"
		l.advance()
		return start
	case ch == ',':
		start.Kind = TokenComma
		start.Text = ","
		l.advance()
		return start
	case ch == ';':
		start.Kind = TokenSemicolon
		start.Text = ";"
		l.advance()
		return start
	case ch == '.':
		// A dot between digits was already consumed by readNumber; here it
		// is always a name qualifier.
		start.Kind = TokenDot
		start.Text = "."
		l.advance()
		return start
	default:
		start.Kind = TokenOperator
		start.Text = string(ch)
		l.advance()
		return start
	}
}

func (l *lexer) skipSpaceAndComments() {
	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.advance()
		case ch == '-' && l.peekAt(1) == '-':
			l.readLineComment()
		case ch == '/' && l.peekAt(1) == '*':
			l.readBlockComment()
		default:
			return
		}
	}
}

func (l *lexer) readLineComment() {
	line := l.line
	l.advance() // -
	l.advance() // -
	var sb strings.Builder
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		sb.WriteRune(l.src[l.pos])
		l.advance()
	}
	text := strings.TrimSpace(sb.String())
	if text != "" {
		l.lineComments[line] = text
	}
}

func (l *lexer) readBlockComment() {
	l.advance() // /
	l.advance() // *
	for l.pos < len(l.src) {
		if l.src[l.pos] == '*' && l.peekAt(1) == '/' {
			l.advance()
			l.advance()
			return
		}
		l.advance()
	}
}

func (l *lexer) readWhile(pred func(rune) bool) string {
	var sb strings.Builder
	for l.pos < len(l.src) && pred(l.src[l.pos]) {
		sb.WriteRune(l.src[l.pos])
		l.advance()
	}
	return sb.String()
}

func (l *lexer) readNumber() string {
	var sb strings.Builder
	seenDot := false
	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		if unicode.IsDigit(ch) {
			sb.WriteRune(ch)
			l.advance()
			continue
		}
		if ch == '.' && !seenDot {
			seenDot = true
			sb.WriteRune(ch)
			l.advance()
			continue
		}
		if (ch == 'e' || ch == 'E') && l.pos+1 < len(l.src) {
			next := l.src[l.pos+1]
			if unicode.IsDigit(next) || next == '+' || next == '-' {
				sb.WriteRune(ch)
				l.advance()
				sb.WriteRune(l.src[l.pos])
				l.advance()
				continue
			}
		}
		break
	}
	return sb.String()
}

// readString reads a single-quoted literal. Doubled quotes escape.
func (l *lexer) readString() string {
	l.advance() // opening quote
	var sb strings.Builder
	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		if ch == '\'' {
			if l.peekAt(1) == '\'' {
				sb.WriteRune('\'')
				l.advance()
				l.advance()
				continue
			}
			l.advance()
			break
		}
		sb.WriteRune(ch)
		l.advance()
	}
	return sb.String()
}

func (l *lexer) readQuoted(quote rune) string {
	l.advance() // opening quote
	var sb strings.Builder
	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		if ch == quote {
			if l.peekAt(1) == quote {
				sb.WriteRune(quote)
				l.advance()
				l.advance()
				continue
			}
			l.advance()
			break
		}
		sb.WriteRune(ch)
		l.advance()
	}
	return sb.String()
}

func (l *lexer) readBracketed() string {
	l.advance() // [
	var sb strings.Builder
	for l.pos < len(l.src) && l.src[l.pos] != ']' {
		sb.WriteRune(l.src[l.pos])
		l.advance()
	}
	if l.pos < len(l.src) {
		l.advance() // ]
	}
	return sb.String()
}

func (l *lexer) peekAt(offset int) rune {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *lexer) advance() {
	if l.pos >= len(l.src) {
		return
	}
	if l.src[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isIdentPart(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' || ch == '$' || ch == '#'
}
