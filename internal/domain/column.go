package domain

// ColumnMetadata is the dialect-independent description of a column extracted
// from a CREATE TABLE statement. It carries everything both contract output
// formats need.

type ColumnMetadata struct {
	Name         string
	LogicalType  string
	PhysicalType string
	Description  string
	MaxLength    *int
	Precision    *int
	Scale        *int
	PrimaryKey   bool
	Required     bool
}

// TableMetadata is a parsed table together with its column metadata, in
// definition order.
type TableMetadata struct {
	Name    string
	Columns []ColumnMetadata
}

// Field converts the column metadata into a contract field for the given
// dialect.
func (m ColumnMetadata) Field(dialect Dialect) Field {
	field := Field{
		Type:        m.LogicalType,
		Description: m.Description,
		Required:    m.Required,
		PrimaryKey:  m.PrimaryKey,
		MaxLength:   m.MaxLength,
		Precision:   m.Precision,
		Scale:       m.Scale,
	}
	if m.PhysicalType != "" {
		field.Config = map[string]string{
			dialect.PhysicalTypeKey(): m.PhysicalType,
		}
	}
	return field
}

// SchemaProperty converts the column metadata into an ODCS schema property.
func (m ColumnMetadata) SchemaProperty() SchemaProperty {
	prop := SchemaProperty{
		Name:         m.Name,
		LogicalType:  m.LogicalType,
		PhysicalType: m.PhysicalType,
		Description:  m.Description,
		PrimaryKey:   m.PrimaryKey,
		Required:     m.Required,
	}
	options := map[string]int{}
	if m.MaxLength != nil {
		options["maxLength"] = *m.MaxLength
	}
	if m.Precision != nil {
		options["precision"] = *m.Precision
	}
	if m.Scale != nil {
		options["scale"] = *m.Scale
	}
	if len(options) > 0 {
		prop.LogicalTypeOptions = options
	}
	return prop
}
