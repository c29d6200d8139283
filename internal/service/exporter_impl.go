package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/dcx-tools/dcx/internal/domain"
	"github.com/dcx-tools/dcx/pkg/version"
)

// exportService is the implementation of the ExportService interface.
type exportService struct {
	// now is injectable so the Confluence footer is stable in tests.
	now func() time.Time
}

// NewExportService creates a new ExportService.
func NewExportService() ExportService {
	return &exportService{now: time.Now}
}

// ExportDataContract renders a data contract specification.
func (s *exportService) ExportDataContract(
	ctx context.Context,
	contract *domain.DataContract,
	format ExportFormat,
) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch format {
	case FormatYAML:
		return marshalYAML(contract)
	case FormatJSON:
		return marshalJSON(contract)
	case FormatConfluence:
		return s.renderConfluence(contract)
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ExportOpenDataContract renders an ODCS document. Confluence export is only
// defined for the data contract specification.
func (s *exportService) ExportOpenDataContract(
	ctx context.Context,
	contract *domain.OpenDataContract,
	format ExportFormat,
) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch format {
	case FormatYAML:
		return marshalYAML(contract)
	case FormatJSON:
		return marshalJSON(contract)
	default:
		return nil, fmt.Errorf("unsupported export format for ODCS: %s", format)
	}
}

func marshalYAML(doc any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode contract as YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish YAML encoding: %w", err)
	}
	return buf.Bytes(), nil
}

func marshalJSON(doc any) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode contract as JSON: %w", err)
	}
	return data, nil
}

// confluenceTemplate renders a contract as Confluence Storage Format: one
// property table per model, plus a generator footer.
var confluenceTemplate = template.Must(template.New("confluence").Parse(`<h1>{{.Title}}</h1>
<table>
<tbody>
<tr><th>Contract ID</th><td>{{.ID}}</td></tr>
<tr><th>Version</th><td>{{.Version}}</td></tr>
{{- range .Servers}}
<tr><th>Server</th><td>{{.}}</td></tr>
{{- end}}
</tbody>
</table>
{{- range .Models}}
<h2>Model: {{.Name}}</h2>
<table>
<tbody>
<tr><th>Field</th><th>Type</th><th>Required</th><th>Primary Key</th><th>Description</th></tr>
{{- range .Fields}}
<tr><td>{{.Name}}</td><td>{{.Type}}</td><td>{{if .Required}}yes{{else}}no{{end}}</td><td>{{if .PrimaryKey}}yes{{else}}no{{end}}</td><td>{{.Description}}</td></tr>
{{- end}}
</tbody>
</table>
{{- end}}
<p><em>Generated by dcx {{.GeneratorVersion}} on {{.FormattedDate}}</em></p>
`))

type confluencePage struct {
	Title            string
	ID               string
	Version          string
	Servers          []string
	Models           []confluenceModel
	GeneratorVersion string
	FormattedDate    string
}

type confluenceModel struct {
	Name   string
	Fields []confluenceField
}

type confluenceField struct {
	Name        string
	Type        string
	Required    bool
	PrimaryKey  bool
	Description string
}

func (s *exportService) renderConfluence(contract *domain.DataContract) ([]byte, error) {
	page := confluencePage{
		Title:            contract.Info.Title,
		ID:               contract.ID,
		Version:          contract.Info.Version,
		GeneratorVersion: version.Summary(),
		FormattedDate:    s.now().UTC().Format("02 Jan 2006 15:04:05 UTC"),
	}
	for name := range contract.Servers {
		page.Servers = append(page.Servers, name)
	}
	sort.Strings(page.Servers)
	modelNames := make([]string, 0, len(contract.Models))
	for name := range contract.Models {
		modelNames = append(modelNames, name)
	}
	sort.Strings(modelNames)
	for _, name := range modelNames {
		model := contract.Models[name]
		cm := confluenceModel{Name: name}
		fieldNames := make([]string, 0, len(model.Fields))
		for fieldName := range model.Fields {
			fieldNames = append(fieldNames, fieldName)
		}
		sort.Strings(fieldNames)
		for _, fieldName := range fieldNames {
			field := model.Fields[fieldName]
			cm.Fields = append(cm.Fields, confluenceField{
				Name:        fieldName,
				Type:        field.Type,
				Required:    field.Required,
				PrimaryKey:  field.PrimaryKey,
				Description: field.Description,
			})
		}
		page.Models = append(page.Models, cm)
	}
	var buf bytes.Buffer
	if err := confluenceTemplate.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("failed to render Confluence export: %w", err)
	}
	return buf.Bytes(), nil
}
