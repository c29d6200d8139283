package sqlddl

import "strings"

// Script is a parsed SQL source: the statements the fixture corpus uses,
// in source order.
type Script struct {
	Statements []Statement
}

// Tables returns all CREATE TABLE statements in source order.
func (s *Script) Tables() []*CreateTable {
	var tables []*CreateTable
	for _, stmt := range s.Statements {
		if ct, ok := stmt.(*CreateTable); ok {
			tables = append(tables, ct)
		}
	}
	return tables
}

// Inserts returns all INSERT statements targeting the given table.
// An empty table name matches every INSERT.
func (s *Script) Inserts(table string) []*Insert {
	var inserts []*Insert
	for _, stmt := range s.Statements {
		ins, ok := stmt.(*Insert)
		if !ok {
			continue
		}
		if table == "" || strings.EqualFold(ins.Table, table) {
			inserts = append(inserts, ins)
		}
	}
	return inserts
}

// Statement is a single parsed SQL statement.
type Statement interface {
	stmt()
}

// CreateTable is a parsed CREATE TABLE statement.
type CreateTable struct {
	// Name is the unqualified table name.
	Name        string
	Columns     []Column
	Constraints []TableConstraint
	Pos         Position
}

func (*CreateTable) stmt() {}

// Column finds a column by name, case-insensitively.
func (ct *CreateTable) Column(name string) *Column {
	for i := range ct.Columns {
		if strings.EqualFold(ct.Columns[i].Name, name) {
			return &ct.Columns[i]
		}
	}
	return nil
}

// PrimaryKeyColumns returns the names of all primary key columns, whether
// declared on the column or at table level.
func (ct *CreateTable) PrimaryKeyColumns() []string {
	var names []string
	for _, col := range ct.Columns {
		if col.PrimaryKey {
			names = append(names, col.Name)
		}
	}
	for _, constraint := range ct.Constraints {
		for _, name := range constraint.PrimaryKeyColumns {
			if ct.Column(name) != nil && !containsFold(names, name) {
				names = append(names, name)
			}
		}
	}
	return names
}

// Checks returns every check constraint on the table, column-level first.
func (ct *CreateTable) Checks() []CheckConstraint {
	var checks []CheckConstraint
	for _, col := range ct.Columns {
		if col.Check != nil {
			checks = append(checks, *col.Check)
		}
	}
	for _, constraint := range ct.Constraints {
		if constraint.Check != nil {
			checks = append(checks, *constraint.Check)
		}
	}
	return checks
}

// Column is a single column definition.
type Column struct {
	Name       string
	Type       TypeSpec
	NotNull    bool
	PrimaryKey bool
	Default    string
	Check      *CheckConstraint
	// Comment is the column description, from a COMMENT/TITLE constraint or
	// a trailing line comment.
	Comment string
	Pos     Position
}

// TypeSpec is a column type as written in the source.
type TypeSpec struct {
	// Name is the canonical upper-case type name, including multiword types
	// such as "DOUBLE PRECISION" and "INTERVAL DAY TO SECOND".
	Name string
	// Params are the raw parenthesised parameters, e.g. ["10", "2"].
	Params []string
	// WithTimeZone and WithLocalTimeZone mark the TIMESTAMP/TIME suffixes.
	WithTimeZone      bool
	WithLocalTimeZone bool
}

// Base returns the lower-case first word of the type name.
func (t TypeSpec) Base() string {
	name := strings.ToLower(t.Name)
	if idx := strings.IndexByte(name, ' '); idx > 0 {
		return name[:idx]
	}
	return name
}

// IsInterval reports whether the type is an INTERVAL type.
func (t TypeSpec) IsInterval() bool {
	return strings.HasPrefix(t.Name, "INTERVAL")
}

// SQL renders the type the way it appears in a contract's physical type.
func (t TypeSpec) SQL() string {
	var sb strings.Builder
	sb.WriteString(t.Name)
	if len(t.Params) > 0 {
		sb.WriteString("(")
		sb.WriteString(strings.Join(t.Params, ","))
		sb.WriteString(")")
	}
	if t.WithLocalTimeZone {
		sb.WriteString(" WITH LOCAL TIME ZONE")
	} else if t.WithTimeZone {
		sb.WriteString(" WITH TIME ZONE")
	}
	return sb.String()
}

// TableConstraint is a table-level constraint.
type TableConstraint struct {
	Name              string
	PrimaryKeyColumns []string
	Check             *CheckConstraint
	Pos               Position
}

// CheckConstraint holds the raw text of a CHECK expression plus its
// structured form when the expression is a simple range check.
type CheckConstraint struct {
	Raw string
	// Between is non-nil when the expression has the shape
	// "col BETWEEN low AND high".
	Between *BetweenCheck
}

// BetweenCheck is a parsed "col BETWEEN low AND high" expression.
type BetweenCheck struct {
	Column string
	Low    float64
	High   float64
}

// Contains reports whether v satisfies the range.
func (b *BetweenCheck) Contains(v float64) bool {
	return v >= b.Low && v <= b.High
}

// Insert is a parsed INSERT statement with one or more value tuples.
type Insert struct {
	Table   string
	Columns []string
	Rows    [][]Value
	Pos     Position
}

func (*Insert) stmt() {}

// ValueKind classifies an inserted literal.
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueString
	ValueNumber
	// ValueExpr covers anything that is not a plain literal: function calls,
	// typed literals, CURRENT_TIMESTAMP and friends. Text holds the raw form.
	ValueExpr
)

// Value is a single literal in an INSERT tuple.
type Value struct {
	Kind   ValueKind
	Text   string
	Number float64
}

// IsNull reports whether the value is a SQL NULL.
func (v Value) IsNull() bool {
	return v.Kind == ValueNull
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
