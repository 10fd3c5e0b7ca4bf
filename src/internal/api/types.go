package api

// DataResponse wraps successful responses with a "data" field.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// ConfigResponse is the typed configuration: section to key to value.
type ConfigResponse map[string]map[string]interface{}

// SectionResponse is one section of the typed configuration.
type SectionResponse map[string]interface{}

// SchemaResponse is the schema: section to key to type name.
type SchemaResponse map[string]map[string]string
