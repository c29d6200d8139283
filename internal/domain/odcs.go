package domain

// ODCSAPIVersion is the Open Data Contract Standard version emitted by the
// importer.
const ODCSAPIVersion = "v3.0.2"

// OpenDataContract is the root document of the Open Data Contract Standard.

type OpenDataContract struct {
	APIVersion string         `yaml:"apiVersion" json:"apiVersion"`
	Kind       string         `yaml:"kind" json:"kind"`
	ID         string         `yaml:"id" json:"id"`
	Name       string         `yaml:"name,omitempty" json:"name,omitempty"`
	Version    string         `yaml:"version" json:"version"`
	Status     string         `yaml:"status,omitempty" json:"status,omitempty"`
	Servers    []ODCSServer   `yaml:"servers,omitempty" json:"servers,omitempty"`
	Schema     []SchemaObject `yaml:"schema,omitempty" json:"schema,omitempty"`
}

// ODCSServer describes a platform entry in an ODCS document.
type ODCSServer struct {
	Server string `yaml:"server" json:"server"`
	Type   string `yaml:"type" json:"type"`
}

// SchemaObject is a single table in an ODCS document.
type SchemaObject struct {
	Name       string           `yaml:"name" json:"name"`
	Properties []SchemaProperty `yaml:"properties,omitempty" json:"properties,omitempty"`
}

// SchemaProperty describes one column of a schema object.
type SchemaProperty struct {
	Name               string         `yaml:"name" json:"name"`
	LogicalType        string         `yaml:"logicalType,omitempty" json:"logicalType,omitempty"`
	PhysicalType       string         `yaml:"physicalType,omitempty" json:"physicalType,omitempty"`
	Description        string         `yaml:"description,omitempty" json:"description,omitempty"`
	PrimaryKey         bool           `yaml:"primaryKey,omitempty" json:"primaryKey,omitempty"`
	Required           bool           `yaml:"required,omitempty" json:"required,omitempty"`
	LogicalTypeOptions map[string]int `yaml:"logicalTypeOptions,omitempty" json:"logicalTypeOptions,omitempty"`
}

// NewOpenDataContract creates an empty ODCS shell with the given identity.
func NewOpenDataContract(id, name, version string) *OpenDataContract {
	return &OpenDataContract{
		APIVersion: ODCSAPIVersion,
		Kind:       "DataContract",
		ID:         id,
		Name:       name,
		Version:    version,
		Status:     "draft",
	}
}

// AddServer appends a server entry, keyed by its type name.
func (c *OpenDataContract) AddServer(serverType string) {
	if serverType == "" {
		return
	}
	c.Servers = append(c.Servers, ODCSServer{Server: serverType, Type: serverType})
}

// AddSchema appends a schema object.
func (c *OpenDataContract) AddSchema(obj SchemaObject) {
	c.Schema = append(c.Schema, obj)
}
