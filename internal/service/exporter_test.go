package service

import (
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dcx-tools/dcx/internal/domain"
)

func sampleContract() *domain.DataContract {
	contract := domain.NewDataContract("my-data-contract-id", "Checks Testcases", "1.0.0")
	contract.AddServer("teradata")
	contract.AddModel("checks_testcase", domain.Model{
		Type: "table",
		Fields: map[string]domain.Field{
			"CTC_ID": {
				Type:        "number",
				PrimaryKey:  true,
				Description: "Primary key",
				Config:      map[string]string{"teradataType": "DECIMAL"},
			},
			"DESCRIPTION": {
				Type:        "string",
				Required:    true,
				MaxLength:   intp(30),
				Description: "Description",
				Config:      map[string]string{"teradataType": "VARCHAR(30)"},
			},
		},
	})
	return contract
}

func TestExportService_ExportDataContract(t *testing.T) {
	svc := NewExportService()
	ctx := context.Background()
	t.Run("Should render YAML that round-trips", func(t *testing.T) {
		data, err := svc.ExportDataContract(ctx, sampleContract(), FormatYAML)
		require.NoError(t, err)
		assert.Contains(t, string(data), "dataContractSpecification: 1.2.1")
		var decoded domain.DataContract
		require.NoError(t, yaml.Unmarshal(data, &decoded))
		assert.Equal(t, "my-data-contract-id", decoded.ID)
		assert.Equal(t, "DECIMAL",
			decoded.Models["checks_testcase"].Fields["CTC_ID"].Config["teradataType"])
	})
	t.Run("Should render indented JSON", func(t *testing.T) {
		data, err := svc.ExportDataContract(ctx, sampleContract(), FormatJSON)
		require.NoError(t, err)
		var decoded domain.DataContract
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "Checks Testcases", decoded.Info.Title)
		assert.Contains(t, string(data), "\n  ")
	})
	t.Run("Should render Confluence storage format with a stable footer", func(t *testing.T) {
		fixed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
		svc := &exportService{now: func() time.Time { return fixed }}
		data, err := svc.ExportDataContract(ctx, sampleContract(), FormatConfluence)
		require.NoError(t, err)
		html := string(data)
		assert.Contains(t, html, "<h1>Checks Testcases</h1>")
		assert.Contains(t, html, "<h2>Model: checks_testcase</h2>")
		assert.Contains(t, html, "<td>CTC_ID</td>")
		assert.Contains(t, html, "on 30 Aug 2026 12:00:00 UTC")
		assert.Contains(t, html, "Generated by dcx")
	})
	t.Run("Should reject unknown formats", func(t *testing.T) {
		_, err := svc.ExportDataContract(ctx, sampleContract(), ExportFormat("pdf"))
		require.Error(t, err)
	})
}

func TestExportService_ExportOpenDataContract(t *testing.T) {
	svc := NewExportService()
	ctx := context.Background()
	contract := domain.NewOpenDataContract("my-data-contract-id", "checks", "1.0.0")
	contract.AddServer("teradata")
	t.Run("Should render ODCS YAML", func(t *testing.T) {
		data, err := svc.ExportOpenDataContract(ctx, contract, FormatYAML)
		require.NoError(t, err)
		assert.Contains(t, string(data), "apiVersion: v3.0.2")
		assert.Contains(t, string(data), "kind: DataContract")
	})
	t.Run("Should reject Confluence for ODCS", func(t *testing.T) {
		_, err := svc.ExportOpenDataContract(ctx, contract, FormatConfluence)
		require.Error(t, err)
	})
}

func TestParseExportFormat(t *testing.T) {
	t.Run("Should accept the supported formats", func(t *testing.T) {
		for _, name := range []string{"yaml", "json", "confluence"} {
			format, err := ParseExportFormat(name)
			require.NoError(t, err)
			assert.Equal(t, ExportFormat(name), format)
		}
	})
	t.Run("Should reject unknown formats", func(t *testing.T) {
		_, err := ParseExportFormat("xml")
		require.Error(t, err)
	})
}
