package sqlddl

import (
	"strconv"
	"strings"
)

// Parse parses a SQL source into a script. Only CREATE TABLE and INSERT
// statements are materialized; every other statement is skipped.
func Parse(src string) (*Script, error) {
	lex := newLexer(src)
	p := &parser{
		tokens:   lex.tokenize(),
		comments: lex.lineComments,
	}
	return p.parseScript()
}

type parser struct {
	tokens   []Token
	pos      int
	comments map[int]string
}

func (p *parser) parseScript() (*Script, error) {
	script := &Script{}
	for {
		tok := p.peek()
		switch {
		case tok.Kind == TokenEOF:
			return script, nil
		case tok.Kind == TokenSemicolon:
			p.advance()
		case p.isKeyword(tok, "CREATE"):
			if p.lookaheadHas("TABLE", 4) {
				ct, err := p.parseCreateTable()
				if err != nil {
					return nil, err
				}
				script.Statements = append(script.Statements, ct)
			} else {
				p.skipStatement()
			}
		case p.isKeyword(tok, "INSERT"):
			ins, err := p.parseInsert()
			if err != nil {
				return nil, err
			}
			script.Statements = append(script.Statements, ins)
		default:
			p.skipStatement()
		}
	}
}

// lookaheadHas reports whether the keyword appears within the next n tokens.
func (p *parser) lookaheadHas(keyword string, n int) bool {
	for i := 0; i <= n; i++ {
		tok := p.peekAt(i)
		if tok.Kind == TokenEOF {
			return false
		}
		if p.isKeyword(tok, keyword) {
			return true
		}
	}
	return false
}

func (p *parser) parseCreateTable() (*CreateTable, error) {
	start := p.peek()
	p.advance() // CREATE
	// Consume modifiers up to TABLE: MULTISET, SET, OR REPLACE,
	// GLOBAL TEMPORARY and the like.
	for !p.isKeyword(p.peek(), "TABLE") {
		if p.peek().Kind == TokenEOF {
			return nil, syntaxErrorf(p.peek(), "expected TABLE after CREATE")
		}
		p.advance()
	}
	p.advance() // TABLE
	if p.isKeyword(p.peek(), "IF") {
		// IF NOT EXISTS
		p.advance()
		if err := p.expectKeyword("NOT"); err != nil {
			return nil, err
		}
		if err := p.expectKeyword("EXISTS"); err != nil {
			return nil, err
		}
	}
	name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	ct := &CreateTable{
		Name: name,
		Pos:  Position{Line: start.Line, Col: start.Col},
	}
	// Teradata places table options between the name and the column list
	// (",NO FALLBACK" etc.); skip them.
	for p.peek().Kind != TokenLParen {
		if p.peek().Kind == TokenEOF || p.peek().Kind == TokenSemicolon {
			return nil, syntaxErrorf(p.peek(), "expected column list for table %s", name)
		}
		p.advance()
	}
	p.advance() // (
	for {
		tok := p.peek()
		if tok.Kind == TokenEOF {
			return nil, syntaxErrorf(tok, "unterminated column list for table %s", name)
		}
		parsedColumn := false
		if p.isTableConstraintStart(tok) {
			constraint, err := p.parseTableConstraint()
			if err != nil {
				return nil, err
			}
			ct.Constraints = append(ct.Constraints, *constraint)
		} else {
			column, err := p.parseColumn()
			if err != nil {
				return nil, err
			}
			ct.Columns = append(ct.Columns, *column)
			parsedColumn = true
		}
		sep := p.peek()
		// The description comment trails either the separator or, when the
		// separator starts a new line, the column's own last token.
		endLine := sep.Line
		if p.pos > 0 {
			endLine = p.tokens[p.pos-1].Line
		}
		if sep.Kind == TokenComma {
			p.advance()
			if parsedColumn {
				p.attachTrailingComment(ct, sep.Line, endLine)
			}
			continue
		}
		if sep.Kind == TokenRParen {
			p.advance()
			if parsedColumn {
				p.attachTrailingComment(ct, sep.Line, endLine)
			}
			break
		}
		return nil, syntaxErrorf(sep, "expected ',' or ')' in table %s, got %s", name, sep)
	}
	p.parsePostTableClauses(ct)
	return ct, nil
}

// attachTrailingComment assigns a trailing "--" comment on the given line to
// the most recently parsed column, unless the column already has one from a
// COMMENT constraint.
func (p *parser) attachTrailingComment(ct *CreateTable, lines ...int) {
	if len(ct.Columns) == 0 {
		return
	}
	last := &ct.Columns[len(ct.Columns)-1]
	if last.Comment != "" {
		return
	}
	for _, line := range lines {
		if text, ok := p.comments[line]; ok {
			last.Comment = text
			return
		}
	}
}

// parsePostTableClauses consumes everything between the closing paren and the
// end of the statement. A Teradata UNIQUE PRIMARY INDEX names the table's
// primary key columns.
func (p *parser) parsePostTableClauses(ct *CreateTable) {
	unique := false
	for {
		tok := p.peek()
		if tok.Kind == TokenEOF || tok.Kind == TokenSemicolon {
			return
		}
		switch {
		case p.isKeyword(tok, "UNIQUE"):
			unique = true
			p.advance()
		case p.isKeyword(tok, "PRIMARY"):
			p.advance()
			if !p.isKeyword(p.peek(), "INDEX") {
				continue
			}
			p.advance()
			// Optional index name.
			if p.peek().Kind == TokenIdent && !p.isKeyword(p.peek(), "ALL") {
				if p.peekAt(1).Kind == TokenLParen {
					p.advance()
				}
			}
			if p.peek().Kind == TokenLParen {
				cols := p.parseParenNameList()
				if unique {
					ct.Constraints = append(ct.Constraints, TableConstraint{
						PrimaryKeyColumns: cols,
						Pos:               Position{Line: tok.Line, Col: tok.Col},
					})
				}
			}
			unique = false
		case tok.Kind == TokenLParen:
			p.skipBalanced()
		default:
			unique = false
			p.advance()
		}
	}
}

func (p *parser) isTableConstraintStart(tok Token) bool {
	return p.isKeyword(tok, "CONSTRAINT") ||
		p.isKeyword(tok, "PRIMARY") ||
		p.isKeyword(tok, "UNIQUE") ||
		p.isKeyword(tok, "FOREIGN") ||
		p.isKeyword(tok, "CHECK") ||
		p.isKeyword(tok, "KEY") ||
		p.isKeyword(tok, "INDEX")
}

func (p *parser) parseTableConstraint() (*TableConstraint, error) {
	start := p.peek()
	constraint := &TableConstraint{Pos: Position{Line: start.Line, Col: start.Col}}
	if p.isKeyword(p.peek(), "CONSTRAINT") {
		p.advance()
		nameTok := p.peek()
		if nameTok.Kind != TokenIdent && nameTok.Kind != TokenQuotedIdent {
			return nil, syntaxErrorf(nameTok, "expected constraint name, got %s", nameTok)
		}
		constraint.Name = nameTok.Text
		p.advance()
	}
	switch {
	case p.isKeyword(p.peek(), "PRIMARY"):
		p.advance()
		if err := p.expectKeyword("KEY"); err != nil {
			return nil, err
		}
		constraint.PrimaryKeyColumns = p.parseParenNameList()
	case p.isKeyword(p.peek(), "CHECK"):
		p.advance()
		check, err := p.parseCheckExpression()
		if err != nil {
			return nil, err
		}
		constraint.Check = check
	default:
		// UNIQUE, FOREIGN KEY, KEY, INDEX: consume up to the next
		// top-level comma or closing paren.
		p.skipConstraintBody()
	}
	return constraint, nil
}

// skipConstraintBody consumes tokens, balancing parens, until the enclosing
// list's comma or closing paren.
func (p *parser) skipConstraintBody() {
	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenComma, TokenRParen, TokenEOF, TokenSemicolon:
			return
		case TokenLParen:
			p.skipBalanced()
		default:
			p.advance()
		}
	}
}

// columnConstraintKeywords end a DEFAULT expression.
var columnConstraintKeywords = map[string]bool{
	"NOT": true, "NULL": true, "PRIMARY": true, "UNIQUE": true,
	"CHECK": true, "COMMENT": true, "REFERENCES": true, "CONSTRAINT": true,
	"CHARACTER": true, "FORMAT": true, "TITLE": true, "CASESPECIFIC": true,
	"COMPRESS": true,
}

func (p *parser) parseColumn() (*Column, error) {
	nameTok := p.peek()
	if nameTok.Kind != TokenIdent && nameTok.Kind != TokenQuotedIdent {
		return nil, syntaxErrorf(nameTok, "expected column name, got %s", nameTok)
	}
	p.advance()
	typeSpec, err := p.parseTypeSpec()
	if err != nil {
		return nil, err
	}
	column := &Column{
		Name: nameTok.Text,
		Type: typeSpec,
		Pos:  Position{Line: nameTok.Line, Col: nameTok.Col},
	}
	if err := p.parseColumnConstraints(column); err != nil {
		return nil, err
	}
	return column, nil
}

func (p *parser) parseColumnConstraints(column *Column) error {
	for {
		tok := p.peek()
		switch {
		case tok.Kind == TokenComma || tok.Kind == TokenRParen ||
			tok.Kind == TokenEOF || tok.Kind == TokenSemicolon:
			return nil
		case p.isKeyword(tok, "NOT"):
			p.advance()
			next := p.peek()
			switch {
			case p.isKeyword(next, "NULL"):
				column.NotNull = true
				p.advance()
			case p.isKeyword(next, "CASESPECIFIC"):
				p.advance()
			default:
				p.advance()
			}
		case p.isKeyword(tok, "NULL"):
			p.advance()
		case p.isKeyword(tok, "PRIMARY"):
			p.advance()
			if err := p.expectKeyword("KEY"); err != nil {
				return err
			}
			column.PrimaryKey = true
		case p.isKeyword(tok, "UNIQUE"):
			p.advance()
		case p.isKeyword(tok, "DEFAULT"):
			p.advance()
			column.Default = p.readExpressionText()
		case p.isKeyword(tok, "CHECK"):
			p.advance()
			check, err := p.parseCheckExpression()
			if err != nil {
				return err
			}
			column.Check = check
		case p.isKeyword(tok, "COMMENT") || p.isKeyword(tok, "TITLE"):
			p.advance()
			strTok := p.peek()
			if strTok.Kind != TokenString {
				return syntaxErrorf(strTok, "expected string after %s", strings.ToUpper(tok.Text))
			}
			column.Comment = strTok.Text
			p.advance()
		case p.isKeyword(tok, "CHARACTER"):
			// CHARACTER SET LATIN
			p.advance()
			if p.isKeyword(p.peek(), "SET") {
				p.advance()
				p.advance()
			}
		case p.isKeyword(tok, "CASESPECIFIC"):
			p.advance()
		case p.isKeyword(tok, "FORMAT"):
			p.advance()
			if p.peek().Kind == TokenString {
				p.advance()
			}
		case p.isKeyword(tok, "COMPRESS"):
			p.advance()
			if p.peek().Kind == TokenLParen {
				p.skipBalanced()
			} else if p.peek().Kind == TokenString || p.peek().Kind == TokenNumber {
				p.advance()
			}
		case p.isKeyword(tok, "CONSTRAINT"):
			// Named column constraint: consume the name, the keyword that
			// follows is handled on the next iteration.
			p.advance()
			p.advance()
		case p.isKeyword(tok, "REFERENCES"):
			p.advance()
			if _, err := p.parseQualifiedName(); err != nil {
				return err
			}
			if p.peek().Kind == TokenLParen {
				p.skipBalanced()
			}
		case tok.Kind == TokenLParen:
			p.skipBalanced()
		default:
			// Dialect noise (AUTO_INCREMENT, COLLATE x, ENABLE, ...).
			p.advance()
		}
	}
}

// readExpressionText consumes a DEFAULT expression and returns its raw form.
func (p *parser) readExpressionText() string {
	var parts []string
	for {
		tok := p.peek()
		switch {
		case tok.Kind == TokenComma || tok.Kind == TokenRParen ||
			tok.Kind == TokenEOF || tok.Kind == TokenSemicolon:
			return strings.Join(parts, " ")
		case tok.Kind == TokenIdent && columnConstraintKeywords[strings.ToUpper(tok.Text)]:
			return strings.Join(parts, " ")
		case tok.Kind == TokenLParen:
			parts = append(parts, p.readBalancedText())
		case tok.Kind == TokenString:
			parts = append(parts, "'"+tok.Text+"'")
			p.advance()
		default:
			parts = append(parts, tok.Text)
			p.advance()
		}
	}
}

// parseCheckExpression reads the parenthesised expression after CHECK.
func (p *parser) parseCheckExpression() (*CheckConstraint, error) {
	if p.peek().Kind != TokenLParen {
		return nil, syntaxErrorf(p.peek(), "expected '(' after CHECK")
	}
	tokens := p.collectBalanced()
	check := &CheckConstraint{
		Raw:     joinTokens(tokens),
		Between: parseBetween(tokens),
	}
	return check, nil
}

// parseBetween recognizes "col BETWEEN low AND high" in a token stream.
func parseBetween(tokens []Token) *BetweenCheck {
	// Strip one level of wrapping parens.
	for len(tokens) >= 2 && tokens[0].Kind == TokenLParen && tokens[len(tokens)-1].Kind == TokenRParen {
		tokens = tokens[1 : len(tokens)-1]
	}
	idx := -1
	for i, tok := range tokens {
		if tok.Kind == TokenIdent && strings.EqualFold(tok.Text, "BETWEEN") {
			idx = i
			break
		}
	}
	if idx != 1 || (tokens[0].Kind != TokenIdent && tokens[0].Kind != TokenQuotedIdent) {
		return nil
	}
	rest := tokens[idx+1:]
	low, n := parseSignedNumber(rest)
	if n == 0 || len(rest) <= n {
		return nil
	}
	rest = rest[n:]
	if rest[0].Kind != TokenIdent || !strings.EqualFold(rest[0].Text, "AND") {
		return nil
	}
	rest = rest[1:]
	high, n := parseSignedNumber(rest)
	if n == 0 || len(rest) != n {
		return nil
	}
	return &BetweenCheck{
		Column: tokens[0].Text,
		Low:    low,
		High:   high,
	}
}

func parseSignedNumber(tokens []Token) (float64, int) {
	if len(tokens) == 0 {
		return 0, 0
	}
	sign := 1.0
	n := 0
	if tokens[0].Kind == TokenOperator && (tokens[0].Text == "-" || tokens[0].Text == "+") {
		if tokens[0].Text == "-" {
			sign = -1.0
		}
		n = 1
	}
	if len(tokens) <= n || tokens[n].Kind != TokenNumber {
		return 0, 0
	}
	v, err := strconv.ParseFloat(tokens[n].Text, 64)
	if err != nil {
		return 0, 0
	}
	return sign * v, n + 1
}

// multiword type suffix handling for TIMESTAMP/TIME.
func (p *parser) parseTimeZoneSuffix(spec *TypeSpec) {
	if !p.isKeyword(p.peek(), "WITH") {
		return
	}
	local := false
	offset := 1
	if p.isKeyword(p.peekAt(offset), "LOCAL") {
		local = true
		offset++
	}
	if !p.isKeyword(p.peekAt(offset), "TIME") || !p.isKeyword(p.peekAt(offset+1), "ZONE") {
		return
	}
	for i := 0; i < offset+2; i++ {
		p.advance()
	}
	spec.WithTimeZone = true
	spec.WithLocalTimeZone = local
}

func (p *parser) parseTypeSpec() (TypeSpec, error) {
	tok := p.peek()
	if tok.Kind != TokenIdent {
		return TypeSpec{}, syntaxErrorf(tok, "expected column type, got %s", tok)
	}
	p.advance()
	name := strings.ToUpper(tok.Text)
	spec := TypeSpec{Name: name}
	switch name {
	case "DOUBLE":
		if p.isKeyword(p.peek(), "PRECISION") {
			p.advance()
			spec.Name = "DOUBLE PRECISION"
		}
	case "LONG":
		if p.isKeyword(p.peek(), "VARCHAR") || p.isKeyword(p.peek(), "RAW") {
			spec.Name = "LONG " + strings.ToUpper(p.peek().Text)
			p.advance()
		}
	case "NATIONAL":
		// NATIONAL CHAR [VARYING] / NATIONAL CHARACTER [VARYING]
		if p.isKeyword(p.peek(), "CHAR") || p.isKeyword(p.peek(), "CHARACTER") {
			p.advance()
			if p.isKeyword(p.peek(), "VARYING") {
				p.advance()
				spec.Name = "NVARCHAR"
			} else {
				spec.Name = "NCHAR"
			}
		}
	case "CHARACTER":
		if p.isKeyword(p.peek(), "VARYING") {
			p.advance()
			spec.Name = "CHARACTER VARYING"
		}
	case "INTERVAL":
		return p.parseIntervalType()
	}
	spec.Params = p.parseTypeParams()
	if spec.Name == "TIMESTAMP" || spec.Name == "TIME" {
		p.parseTimeZoneSuffix(&spec)
	}
	return spec, nil
}

// parseIntervalType parses INTERVAL YEAR(2) TO MONTH and friends. Precision
// parameters are dropped from the canonical name.
func (p *parser) parseIntervalType() (TypeSpec, error) {
	unitTok := p.peek()
	if unitTok.Kind != TokenIdent {
		return TypeSpec{}, syntaxErrorf(unitTok, "expected interval unit, got %s", unitTok)
	}
	p.advance()
	name := "INTERVAL " + strings.ToUpper(unitTok.Text)
	p.parseTypeParams() // leading precision
	if p.isKeyword(p.peek(), "TO") {
		p.advance()
		toTok := p.peek()
		if toTok.Kind != TokenIdent {
			return TypeSpec{}, syntaxErrorf(toTok, "expected interval unit after TO, got %s", toTok)
		}
		p.advance()
		name += " TO " + strings.ToUpper(toTok.Text)
		p.parseTypeParams() // trailing precision
	}
	return TypeSpec{Name: name}, nil
}

// parseTypeParams reads an optional parenthesised parameter list. Multiword
// parameters such as Oracle's "30 CHAR" stay joined.
func (p *parser) parseTypeParams() []string {
	if p.peek().Kind != TokenLParen {
		return nil
	}
	p.advance() // (
	var params []string
	var current []string
	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenRParen, TokenEOF:
			p.advance()
			if len(current) > 0 {
				params = append(params, strings.Join(current, " "))
			}
			return params
		case TokenComma:
			p.advance()
			params = append(params, strings.Join(current, " "))
			current = nil
		default:
			current = append(current, tok.Text)
			p.advance()
		}
	}
}

func (p *parser) parseInsert() (*Insert, error) {
	start := p.peek()
	p.advance() // INSERT
	if err := p.expectKeyword("INTO"); err != nil {
		return nil, err
	}
	name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	ins := &Insert{
		Table: name,
		Pos:   Position{Line: start.Line, Col: start.Col},
	}
	if p.peek().Kind == TokenLParen {
		ins.Columns = p.parseParenNameList()
	}
	if err := p.expectKeyword("VALUES"); err != nil {
		return nil, err
	}
	for {
		row, err := p.parseValueTuple()
		if err != nil {
			return nil, err
		}
		ins.Rows = append(ins.Rows, row)
		if p.peek().Kind == TokenComma {
			p.advance()
			continue
		}
		break
	}
	return ins, nil
}

func (p *parser) parseValueTuple() ([]Value, error) {
	if p.peek().Kind != TokenLParen {
		return nil, syntaxErrorf(p.peek(), "expected '(' to start VALUES tuple")
	}
	p.advance()
	var row []Value
	for {
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		row = append(row, value)
		sep := p.peek()
		if sep.Kind == TokenComma {
			p.advance()
			continue
		}
		if sep.Kind == TokenRParen {
			p.advance()
			return row, nil
		}
		return nil, syntaxErrorf(sep, "expected ',' or ')' in VALUES tuple, got %s", sep)
	}
}

func (p *parser) parseValue() (Value, error) {
	tok := p.peek()
	switch {
	case tok.Kind == TokenString:
		p.advance()
		return Value{Kind: ValueString, Text: tok.Text}, nil
	case tok.Kind == TokenNumber:
		p.advance()
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return Value{}, syntaxErrorf(tok, "invalid number %s", tok)
		}
		return Value{Kind: ValueNumber, Text: tok.Text, Number: v}, nil
	case tok.Kind == TokenOperator && (tok.Text == "-" || tok.Text == "+"):
		p.advance()
		numTok := p.peek()
		if numTok.Kind != TokenNumber {
			return Value{}, syntaxErrorf(numTok, "expected number after sign, got %s", numTok)
		}
		p.advance()
		v, err := strconv.ParseFloat(numTok.Text, 64)
		if err != nil {
			return Value{}, syntaxErrorf(numTok, "invalid number %s", numTok)
		}
		if tok.Text == "-" {
			v = -v
		}
		return Value{Kind: ValueNumber, Text: tok.Text + numTok.Text, Number: v}, nil
	case p.isKeyword(tok, "NULL"):
		p.advance()
		return Value{Kind: ValueNull, Text: "NULL"}, nil
	case tok.Kind == TokenIdent:
		p.advance()
		// Typed literal: DATE '2024-01-01', TIMESTAMP '...'.
		if p.peek().Kind == TokenString {
			strTok := p.peek()
			p.advance()
			return Value{
				Kind: ValueExpr,
				Text: strings.ToUpper(tok.Text) + " '" + strTok.Text + "'",
			}, nil
		}
		// Function call.
		if p.peek().Kind == TokenLParen {
			return Value{Kind: ValueExpr, Text: tok.Text + p.readBalancedText()}, nil
		}
		// Bare keyword (CURRENT_TIMESTAMP, TRUE, ...).
		return Value{Kind: ValueExpr, Text: tok.Text}, nil
	default:
		return Value{}, syntaxErrorf(tok, "unexpected value %s", tok)
	}
}

// parseParenNameList reads "(a, b, c)" and returns the names. It tolerates
// missing parens by returning nil.
func (p *parser) parseParenNameList() []string {
	if p.peek().Kind != TokenLParen {
		return nil
	}
	p.advance()
	var names []string
	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenIdent, TokenQuotedIdent:
			names = append(names, tok.Text)
			p.advance()
		case TokenComma:
			p.advance()
		case TokenRParen, TokenEOF:
			p.advance()
			return names
		default:
			p.advance()
		}
	}
}

func (p *parser) parseQualifiedName() (string, error) {
	tok := p.peek()
	if tok.Kind != TokenIdent && tok.Kind != TokenQuotedIdent {
		return "", syntaxErrorf(tok, "expected name, got %s", tok)
	}
	name := tok.Text
	p.advance()
	for p.peek().Kind == TokenDot {
		p.advance()
		part := p.peek()
		if part.Kind != TokenIdent && part.Kind != TokenQuotedIdent {
			return "", syntaxErrorf(part, "expected name after '.', got %s", part)
		}
		name = part.Text // keep only the last segment
		p.advance()
	}
	return name, nil
}

// skipStatement advances past the next semicolon.
func (p *parser) skipStatement() {
	for {
		tok := p.peek()
		if tok.Kind == TokenEOF {
			return
		}
		p.advance()
		if tok.Kind == TokenSemicolon {
			return
		}
	}
}

// skipBalanced consumes a parenthesised group, assuming the current token is
// the opening paren.
func (p *parser) skipBalanced() {
	p.collectBalanced()
}

// collectBalanced consumes a parenthesised group and returns its tokens,
// including the outer parens.
func (p *parser) collectBalanced() []Token {
	var tokens []Token
	depth := 0
	for {
		tok := p.peek()
		if tok.Kind == TokenEOF {
			return tokens
		}
		tokens = append(tokens, tok)
		p.advance()
		switch tok.Kind {
		case TokenLParen:
			depth++
		case TokenRParen:
			depth--
			if depth == 0 {
				return tokens
			}
		}
	}
}

func (p *parser) readBalancedText() string {
	return joinTokens(p.collectBalanced())
}

func joinTokens(tokens []Token) string {
	var sb strings.Builder
	for i, tok := range tokens {
		text := tok.Text
		if tok.Kind == TokenString {
			text = "'" + text + "'"
		}
		if i > 0 && needsSpace(tokens[i-1], tok) {
			sb.WriteString(" ")
		}
		sb.WriteString(text)
	}
	return sb.String()
}

func needsSpace(prev, cur Token) bool {
	if prev.Kind == TokenLParen || cur.Kind == TokenRParen || cur.Kind == TokenComma {
		return false
	}
	if cur.Kind == TokenLParen && prev.Kind == TokenIdent {
		return false
	}
	return true
}

func (p *parser) expectKeyword(keyword string) error {
	tok := p.peek()
	if !p.isKeyword(tok, keyword) {
		return syntaxErrorf(tok, "expected %s, got %s", keyword, tok)
	}
	p.advance()
	return nil
}

func (p *parser) isKeyword(tok Token, keyword string) bool {
	return tok.Kind == TokenIdent && strings.EqualFold(tok.Text, keyword)
}

func (p *parser) peek() Token {
	return p.peekAt(0)
}

func (p *parser) peekAt(offset int) Token {
	if p.pos+offset >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos+offset]
}

func (p *parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}
