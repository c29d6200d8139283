package domain

// CurrentSpecVersion is the data contract specification version emitted by
// the importer.
const CurrentSpecVersion = "1.2.1"

// DataContract is the root document of the data contract specification.

type DataContract struct {
	SpecVersion string            `yaml:"dataContractSpecification" json:"dataContractSpecification"`
	ID          string            `yaml:"id" json:"id"`
	Info        Info              `yaml:"info" json:"info"`
	Servers     map[string]Server `yaml:"servers,omitempty" json:"servers,omitempty"`
	Models      map[string]Model  `yaml:"models,omitempty" json:"models,omitempty"`
}

// Info carries the contract title and version.
type Info struct {
	Title   string `yaml:"title" json:"title"`
	Version string `yaml:"version" json:"version"`
}

// Server describes a platform the contract data lives on.
type Server struct {
	Type string `yaml:"type" json:"type"`
}

// Model is a single table (or view) described by the contract.
type Model struct {
	Type        string           `yaml:"type" json:"type"`
	Description string           `yaml:"description,omitempty" json:"description,omitempty"`
	Fields      map[string]Field `yaml:"fields" json:"fields"`
}

// Field describes one column of a model.
type Field struct {
	Type        string            `yaml:"type,omitempty" json:"type,omitempty"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool              `yaml:"required,omitempty" json:"required,omitempty"`
	PrimaryKey  bool              `yaml:"primaryKey,omitempty" json:"primaryKey,omitempty"`
	MaxLength   *int              `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	Precision   *int              `yaml:"precision,omitempty" json:"precision,omitempty"`
	Scale       *int              `yaml:"scale,omitempty" json:"scale,omitempty"`
	Config      map[string]string `yaml:"config,omitempty" json:"config,omitempty"`
}

// NewDataContract creates an empty contract shell with the given identity.
func NewDataContract(id, title, version string) *DataContract {
	return &DataContract{
		SpecVersion: CurrentSpecVersion,
		ID:          id,
		Info: Info{
			Title:   title,
			Version: version,
		},
		Servers: map[string]Server{},
		Models:  map[string]Model{},
	}
}

// AddServer registers a server by type, keyed by its type name.
func (c *DataContract) AddServer(serverType string) {
	if serverType == "" {
		return
	}
	if c.Servers == nil {
		c.Servers = map[string]Server{}
	}
	c.Servers[serverType] = Server{Type: serverType}
}

// AddModel registers a table model under its name.
func (c *DataContract) AddModel(name string, model Model) {
	if c.Models == nil {
		c.Models = map[string]Model{}
	}
	c.Models[name] = model
}
