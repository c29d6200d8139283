package domain

import (
	"fmt"
	"strings"
)

// Dialect identifies the SQL dialect of an imported source.
type Dialect string

const (
	DialectTeradata   Dialect = "teradata"
	DialectOracle     Dialect = "oracle"
	DialectPostgres   Dialect = "postgres"
	DialectMySQL      Dialect = "mysql"
	DialectSQLServer  Dialect = "sqlserver"
	DialectBigQuery   Dialect = "bigquery"
	DialectSnowflake  Dialect = "snowflake"
	DialectRedshift   Dialect = "redshift"
	DialectDatabricks Dialect = "databricks"
	DialectUnknown    Dialect = ""
)

// dialectConfig maps a dialect to its server type and the key used for the
// physical type in a field's config block.
type dialectConfig struct {
	serverType      string
	physicalTypeKey string
}

var dialectConfigs = map[Dialect]dialectConfig{
	DialectTeradata:   {serverType: "teradata", physicalTypeKey: "teradataType"},
	DialectOracle:     {serverType: "oracle", physicalTypeKey: "oracleType"},
	DialectPostgres:   {serverType: "postgres", physicalTypeKey: "postgresType"},
	DialectMySQL:      {serverType: "mysql", physicalTypeKey: "mysqlType"},
	DialectSQLServer:  {serverType: "sqlserver", physicalTypeKey: "sqlserverType"},
	DialectBigQuery:   {serverType: "bigquery", physicalTypeKey: "bigqueryType"},
	DialectSnowflake:  {serverType: "snowflake", physicalTypeKey: "snowflakeType"},
	DialectRedshift:   {serverType: "redshift", physicalTypeKey: "redshiftType"},
	DialectDatabricks: {serverType: "databricks", physicalTypeKey: "databricksType"},
}

// ParseDialect converts a user-supplied dialect name to a Dialect.
// "tsql" is accepted as an alias for sqlserver.
func ParseDialect(name string) (Dialect, error) {
	if name == "" {
		return DialectUnknown, nil
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "tsql" {
		return DialectSQLServer, nil
	}
	d := Dialect(normalized)
	if _, ok := dialectConfigs[d]; !ok {
		return DialectUnknown, fmt.Errorf("unsupported dialect: %s", name)
	}
	return d, nil
}

// KnownDialects returns the names of all supported dialects.
func KnownDialects() []string {
	names := make([]string, 0, len(dialectConfigs))
	for d := range dialectConfigs {
		names = append(names, string(d))
	}
	return names
}

// ServerType returns the contract server type for the dialect, or empty when
// the dialect is unknown.
func (d Dialect) ServerType() string {
	if cfg, ok := dialectConfigs[d]; ok {
		return cfg.serverType
	}
	return ""
}

// PhysicalTypeKey returns the config key that carries the column's physical
// type for the dialect. Unknown dialects fall back to the generic key.
func (d Dialect) PhysicalTypeKey() string {
	if cfg, ok := dialectConfigs[d]; ok {
		return cfg.physicalTypeKey
	}
	return "physicalType"
}
