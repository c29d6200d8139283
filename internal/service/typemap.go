package service

import (
	"strconv"
	"strings"

	"github.com/dcx-tools/dcx/internal/domain"
	"github.com/dcx-tools/dcx/internal/sqlddl"
)

// exactTypeMap maps normalized SQL types to logical types when the whole
// name matches.
var exactTypeMap = map[string]string{
	"date":             "date",
	"time":             "string",
	"datetimeoffset":   "timestamp_tz",
	"uniqueidentifier": "string", // SQL Server
	"json":             "string",
	"xml":              "string",
	"clob":             "text",
	"nclob":            "text",
	"blob":             "bytes",
	"bfile":            "bytes",
	"byte":             "bytes", // Teradata
	"real":             "float", // 32-bit float
	"number":           "number",
}

// prefixTypeMap maps normalized SQL types to logical types by prefix.
// Order matters: longer prefixes must come before shorter ones.
var prefixTypeMap = []struct {
	prefix  string
	logical string
}{
	{"bigint", "long"},
	{"tinyint", "int"},
	{"smallint", "int"},
	{"integer", "int"},
	{"int", "int"},
	{"nvarchar", "string"},
	{"varchar", "string"},
	{"nchar", "string"},
	{"ntext", "string"},
	{"char", "string"},
	{"text", "string"},
	{"string", "string"},
	{"varbinary", "bytes"},
	{"binary", "bytes"},
	{"raw", "bytes"},
	{"double", "double"},
	{"float", "float"},
	{"numeric", "decimal"},
	{"decimal", "decimal"},
	{"bool", "boolean"},
	{"bit", "boolean"},
	{"timestamp", "timestamp"}, // resolved by mapTimestamp
}

// teradataTypeRenames normalizes type names the way a Teradata engine stores
// them: large objects and national character types collapse onto their
// Teradata representations.
var teradataTypeRenames = map[string]string{
	"NUMBER":        "DECIMAL",
	"CLOB":          "TEXT",
	"NCLOB":         "TEXT",
	"BLOB":          "VARBINARY",
	"BFILE":         "VARBINARY",
	"BYTEINT":       "TINYINT",
	"REAL":          "FLOAT",
	"NVARCHAR":      "VARCHAR",
	"NCHAR":         "CHAR",
	"BINARY_FLOAT":  "FLOAT",
	"BINARY_DOUBLE": "DOUBLE PRECISION",
}

// oracleTypeRenames maps Oracle's binary float names onto their canonical
// SQL forms.
var oracleTypeRenames = map[string]string{
	"BINARY_FLOAT":  "FLOAT",
	"BINARY_DOUBLE": "DOUBLE PRECISION",
}

// RenderPhysicalType returns the physical type string recorded in the
// contract's config block for the given dialect.
func RenderPhysicalType(spec sqlddl.TypeSpec, dialect domain.Dialect) string {
	rendered := spec
	switch dialect {
	case domain.DialectTeradata:
		if name, ok := teradataTypeRenames[spec.Name]; ok {
			rendered.Name = name
		}
		if rendered.WithLocalTimeZone {
			// Teradata has no local-timezone timestamp variant.
			rendered.WithLocalTimeZone = false
			rendered.WithTimeZone = true
		}
	case domain.DialectOracle:
		if name, ok := oracleTypeRenames[spec.Name]; ok {
			rendered.Name = name
			rendered.Params = nil
		}
		if spec.Name == "TIMESTAMP" {
			// Oracle keeps timestamp precision out of the physical type;
			// the local-timezone variant has its own name.
			rendered.Params = nil
			if spec.WithLocalTimeZone {
				rendered.Name = "TIMESTAMPLTZ"
				rendered.WithTimeZone = false
				rendered.WithLocalTimeZone = false
			}
		}
	}
	return rendered.SQL()
}

// MapLogicalType maps a physical SQL type string to a logical contract type.
// Unknown types map to variant.
func MapLogicalType(physical string, dialect domain.Dialect) string {
	if physical == "" {
		return "variant"
	}
	normalized := strings.ToLower(strings.TrimSpace(physical))
	// INTERVAL before the "int" prefix.
	if strings.HasPrefix(normalized, "interval") {
		return "variant"
	}
	// Teradata DECIMAL without parameters is a NUMBER.
	if normalized == "decimal" && dialect == domain.DialectTeradata {
		return "number"
	}
	if logical, ok := exactTypeMap[normalized]; ok {
		return logical
	}
	for _, entry := range prefixTypeMap {
		if strings.HasPrefix(normalized, entry.prefix) {
			if entry.prefix == "timestamp" {
				return mapTimestamp(normalized)
			}
			return entry.logical
		}
	}
	switch normalized {
	case "datetime", "datetime2", "smalldatetime":
		return "timestamp_ntz"
	}
	return "variant"
}

// mapTimestamp resolves the timestamp family to timezone-aware or naive.
func mapTimestamp(normalized string) string {
	switch normalized {
	case "timestamp", "timestampntz", "timestamp_ntz":
		return "timestamp_ntz"
	case "timestamptz", "timestamp_tz", "timestamp with time zone":
		return "timestamp_tz"
	}
	if strings.HasPrefix(normalized, "timestampltz") {
		return "timestamp_tz"
	}
	if strings.HasSuffix(normalized, "time zone") {
		return "timestamp_tz"
	}
	return "timestamp_ntz"
}

// maxLengthBases are the types whose first parameter is a character length.
var maxLengthBases = map[string]bool{
	"varchar": true, "char": true, "nvarchar": true, "nchar": true,
}

// precisionBases are the types whose parameters are precision and scale.
var precisionBases = map[string]bool{
	"decimal": true, "numeric": true, "float": true, "number": true,
}

// TypeMaxLength extracts the declared maximum length from a character type,
// or nil when not applicable.
func TypeMaxLength(spec sqlddl.TypeSpec) *int {
	if !maxLengthBases[spec.Base()] || len(spec.Params) == 0 {
		return nil
	}
	return leadingInt(spec.Params[0])
}

// TypePrecisionScale extracts precision and scale from a numeric type.
// A single parameter means scale zero.
func TypePrecisionScale(spec sqlddl.TypeSpec) (*int, *int) {
	if !precisionBases[spec.Base()] {
		return nil, nil
	}
	switch len(spec.Params) {
	case 1:
		precision := leadingInt(spec.Params[0])
		if precision == nil {
			return nil, nil
		}
		zero := 0
		return precision, &zero
	case 2:
		precision := leadingInt(spec.Params[0])
		scale := leadingInt(spec.Params[1])
		if precision == nil || scale == nil {
			return nil, nil
		}
		return precision, scale
	default:
		return nil, nil
	}
}

// leadingInt parses the first whitespace-separated field as an integer,
// covering parameters such as Oracle's "30 CHAR".
func leadingInt(param string) *int {
	field := param
	if idx := strings.IndexByte(field, ' '); idx > 0 {
		field = field[:idx]
	}
	v, err := strconv.Atoi(field)
	if err != nil {
		return nil
	}
	return &v
}
