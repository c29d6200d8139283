package service

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcx-tools/dcx/internal/domain"
)

func intp(v int) *int { return &v }

func readFixture(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func teradataField(logical, physical string) domain.Field {
	return domain.Field{
		Type:   logical,
		Config: map[string]string{"teradataType": physical},
	}
}

func TestImportService_ImportDataContract_Teradata(t *testing.T) {
	svc := NewImportService(nil)
	ctx := context.Background()
	t.Run("Should import the Teradata testcase fixture", func(t *testing.T) {
		sql := readFixture(t, "../../testdata/fixtures/teradata/testcase.sql")
		contract, err := svc.ImportDataContract(ctx, sql, ImportOptions{
			Dialect: domain.DialectTeradata,
			ID:      "my-data-contract-id",
		})
		require.NoError(t, err)

		expected := domain.NewDataContract("my-data-contract-id", "My Data Contract", "0.0.1")
		expected.AddServer("teradata")
		fields := map[string]domain.Field{}
		describe := func(name string, field domain.Field, description string) {
			field.Description = description
			fields[name] = field
		}
		pk := teradataField("number", "DECIMAL")
		pk.PrimaryKey = true
		describe("CTC_ID", pk, "Primary key")
		desc := teradataField("string", "VARCHAR(30)")
		desc.Required = true
		desc.MaxLength = intp(30)
		describe("DESCRIPTION", desc, "Description")
		amount := teradataField("decimal", "DECIMAL(10)")
		amount.Precision = intp(10)
		amount.Scale = intp(0)
		describe("AMOUNT", amount, "Amount purchased")
		describe("QUALITY", teradataField("number", "DECIMAL"), "Percentage of checks passed")
		describe("CUSTOM_ATTRIBUTES", teradataField("string", "TEXT"), "Custom attributes")
		varcharField := teradataField("string", "VARCHAR(100)")
		varcharField.MaxLength = intp(100)
		describe("FIELD_VARCHAR", varcharField, "Variable-length string")
		describe("FIELD_NVARCHAR", varcharField, "Variable-length Unicode string (Teradata uses VARCHAR)")
		describe("FIELD_NUMBER", teradataField("number", "DECIMAL"), "Number")
		describe("FIELD_FLOAT", teradataField("float", "FLOAT"), "Float")
		describe("FIELD_DATE", teradataField("date", "DATE"), "Date and Time down to day precision")
		describe("FIELD_BINARY_FLOAT", teradataField("float", "FLOAT"), "32-bit floating point number")
		describe("FIELD_BINARY_DOUBLE", teradataField("double", "DOUBLE PRECISION"), "64-bit floating point number")
		describe("FIELD_TIMESTAMP", teradataField("timestamp_ntz", "TIMESTAMP(6)"),
			"Timestamp with fractional second precision of 6, no timezones")
		describe("FIELD_TIMESTAMP_TZ", teradataField("timestamp_tz", "TIMESTAMP(6) WITH TIME ZONE"),
			"Timestamp with fractional second precision of 6, with timezones (TZ)")
		describe("FIELD_TIMESTAMP_LTZ", teradataField("timestamp_tz", "TIMESTAMP(6) WITH TIME ZONE"),
			"Timestamp with fractional second precision of 6, with timezone support")
		describe("FIELD_RAW", teradataField("int", "TINYINT"), "Large raw binary data")
		rowidField := teradataField("string", "VARCHAR(18)")
		rowidField.MaxLength = intp(18)
		describe("FIELD_ROWID", rowidField, "Base 64 string representing a unique row address")
		describe("FIELD_UROWID", rowidField, "Base 64 string representing the logical address")
		charField := teradataField("string", "CHAR(10)")
		charField.MaxLength = intp(10)
		describe("FIELD_CHAR", charField, "Fixed-length string")
		describe("FIELD_NCHAR", charField, "Fixed-length Unicode string (Teradata uses CHAR)")
		describe("FIELD_CLOB", teradataField("string", "TEXT"), "Character large object")
		describe("FIELD_NCLOB", teradataField("string", "TEXT"), "National character large object (Teradata uses CLOB)")
		describe("FIELD_BLOB", teradataField("bytes", "VARBINARY"), "Binary large object")
		describe("FIELD_BFILE", teradataField("bytes", "VARBINARY"), "Binary file (Teradata uses BLOB)")
		expected.AddModel("checks_testcase", domain.Model{Type: "table", Fields: fields})

		if diff := cmp.Diff(expected, contract); diff != "" {
			t.Errorf("contract mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("Should drop Teradata INTERVAL columns", func(t *testing.T) {
		sql := readFixture(t, "../../testdata/fixtures/teradata/testcase.sql")
		contract, err := svc.ImportDataContract(ctx, sql, ImportOptions{
			Dialect: domain.DialectTeradata,
			ID:      "my-data-contract-id",
		})
		require.NoError(t, err)
		model := contract.Models["checks_testcase"]
		_, hasYear := model.Fields["FIELD_INTERVAL_YEAR"]
		_, hasDay := model.Fields["FIELD_INTERVAL_DAY"]
		assert.False(t, hasYear)
		assert.False(t, hasDay)
	})
	t.Run("Should import the constraints fixture with required fields", func(t *testing.T) {
		sql := readFixture(t, "../../testdata/fixtures/teradata/data_constraints.sql")
		contract, err := svc.ImportDataContract(ctx, sql, ImportOptions{
			Dialect: domain.DialectTeradata,
			ID:      "my-data-contract-id",
		})
		require.NoError(t, err)

		expected := domain.NewDataContract("my-data-contract-id", "My Data Contract", "0.0.1")
		expected.AddServer("teradata")
		id := teradataField("number", "DECIMAL")
		id.Required = true
		createdBy := teradataField("string", "VARCHAR(30)")
		createdBy.Required = true
		createdBy.MaxLength = intp(30)
		createDate := teradataField("timestamp_ntz", "TIMESTAMP")
		createDate.Required = true
		changedBy := teradataField("string", "VARCHAR(30)")
		changedBy.MaxLength = intp(30)
		expected.AddModel("customer_location", domain.Model{
			Type: "table",
			Fields: map[string]domain.Field{
				"id":          id,
				"created_by":  createdBy,
				"create_date": createDate,
				"changed_by":  changedBy,
				"change_date": teradataField("timestamp_ntz", "TIMESTAMP"),
			},
		})
		if diff := cmp.Diff(expected, contract); diff != "" {
			t.Errorf("contract mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestImportService_ImportDataContract_Oracle(t *testing.T) {
	svc := NewImportService(nil)
	ctx := context.Background()
	t.Run("Should import the Oracle field showcase fixture", func(t *testing.T) {
		sql := readFixture(t, "../../testdata/fixtures/oracle/ddl.sql")
		contract, err := svc.ImportDataContract(ctx, sql, ImportOptions{
			Dialect: domain.DialectOracle,
			ID:      "my-data-contract-id",
		})
		require.NoError(t, err)
		require.Contains(t, contract.Servers, "oracle")
		model, ok := contract.Models["field_showcase"]
		require.True(t, ok)

		field := func(name string) domain.Field {
			f, ok := model.Fields[name]
			require.True(t, ok, "missing field %s", name)
			return f
		}
		pk := field("field_primary_key")
		assert.True(t, pk.PrimaryKey)
		assert.Equal(t, "int", pk.Type)
		assert.Equal(t, "INT", pk.Config["oracleType"])
		assert.True(t, field("field_not_null").Required)
		assert.Equal(t, "VARCHAR2", field("field_varchar").Config["oracleType"])
		assert.Nil(t, field("field_varchar").MaxLength)
		assert.Equal(t, "number", field("field_number").Type)
		assert.Equal(t, "float", field("field_binary_float").Type)
		assert.Equal(t, "FLOAT", field("field_binary_float").Config["oracleType"])
		assert.Equal(t, "double", field("field_binary_double").Type)
		assert.Equal(t, "DOUBLE PRECISION", field("field_binary_double").Config["oracleType"])
		assert.Equal(t, "timestamp_ntz", field("field_timestamp").Type)
		assert.Equal(t, "TIMESTAMP", field("field_timestamp").Config["oracleType"])
		assert.Equal(t, "timestamp_tz", field("field_timestamp_tz").Type)
		assert.Equal(t, "TIMESTAMP WITH TIME ZONE", field("field_timestamp_tz").Config["oracleType"])
		assert.Equal(t, "timestamp_tz", field("field_timestamp_ltz").Type)
		assert.Equal(t, "TIMESTAMPLTZ", field("field_timestamp_ltz").Config["oracleType"])
		assert.Equal(t, "variant", field("field_interval_year").Type)
		assert.Equal(t, "INTERVAL YEAR TO MONTH", field("field_interval_year").Config["oracleType"])
		assert.Equal(t, "variant", field("field_interval_day").Type)
		assert.Equal(t, "bytes", field("field_raw").Type)
		assert.Equal(t, "variant", field("field_rowid").Type)
		assert.Equal(t, "variant", field("field_urowid").Type)
		nchar := field("field_nchar")
		assert.Equal(t, "NCHAR(10)", nchar.Config["oracleType"])
		require.NotNil(t, nchar.MaxLength)
		assert.Equal(t, 10, *nchar.MaxLength)
		assert.Equal(t, "text", field("field_clob").Type)
		assert.Equal(t, "CLOB", field("field_clob").Config["oracleType"])
		assert.Equal(t, "bytes", field("field_bfile").Type)
		assert.Empty(t, field("field_bfile").Description)
	})
}

func TestImportService_ImportOpenDataContract(t *testing.T) {
	svc := NewImportService(nil)
	ctx := context.Background()
	t.Run("Should build an ODCS document from the Teradata fixture", func(t *testing.T) {
		sql := readFixture(t, "../../testdata/fixtures/teradata/testcase.sql")
		contract, err := svc.ImportOpenDataContract(ctx, sql, ImportOptions{
			Dialect: domain.DialectTeradata,
			ID:      "my-data-contract-id",
		})
		require.NoError(t, err)
		assert.Equal(t, "v3.0.2", contract.APIVersion)
		assert.Equal(t, "DataContract", contract.Kind)
		assert.Equal(t, "draft", contract.Status)
		require.Len(t, contract.Servers, 1)
		assert.Equal(t, "teradata", contract.Servers[0].Type)
		require.Len(t, contract.Schema, 1)
		schema := contract.Schema[0]
		assert.Equal(t, "checks_testcase", schema.Name)
		byName := map[string]domain.SchemaProperty{}
		for _, prop := range schema.Properties {
			byName[prop.Name] = prop
		}
		desc, ok := byName["DESCRIPTION"]
		require.True(t, ok)
		assert.Equal(t, "string", desc.LogicalType)
		assert.Equal(t, "VARCHAR(30)", desc.PhysicalType)
		assert.True(t, desc.Required)
		assert.Equal(t, map[string]int{"maxLength": 30}, desc.LogicalTypeOptions)
		amount := byName["AMOUNT"]
		assert.Equal(t, map[string]int{"precision": 10, "scale": 0}, amount.LogicalTypeOptions)
		assert.True(t, byName["CTC_ID"].PrimaryKey)
	})
}

func TestImportService_Errors(t *testing.T) {
	svc := NewImportService(nil)
	ctx := context.Background()
	t.Run("Should fail when the source has no CREATE TABLE", func(t *testing.T) {
		_, err := svc.ImportDataContract(ctx, "SELECT 1;", ImportOptions{Dialect: domain.DialectTeradata})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no CREATE TABLE statement found")
	})
	t.Run("Should wrap parse errors", func(t *testing.T) {
		_, err := svc.ImportDataContract(ctx, "CREATE TABLE t (id ,)", ImportOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error parsing SQL")
	})
	t.Run("Should generate a urn ID when none is given", func(t *testing.T) {
		contract, err := svc.ImportDataContract(ctx, "CREATE TABLE t (id INT);", ImportOptions{})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(contract.ID, "urn:datacontract:"))
	})
	t.Run("Should fall back to the generic physical type key for unknown dialects", func(t *testing.T) {
		contract, err := svc.ImportDataContract(ctx, "CREATE TABLE t (id INT);", ImportOptions{})
		require.NoError(t, err)
		assert.Empty(t, contract.Servers)
		assert.Equal(t, "INT", contract.Models["t"].Fields["id"].Config["physicalType"])
	})
}
