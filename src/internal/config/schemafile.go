package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/maksimkurb/configurator/src/internal/coerce"
	"github.com/maksimkurb/configurator/src/internal/errors"
)

// Schema declaration formats accepted by ParseSchema.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// LoadSchema reads a schema declaration file mapping section to key to type
// name. The format follows the extension: .toml, .yaml/.yml or .json.
//
//	[network]
//	port = "integer"
//	enabled = "boolean"
func LoadSchema(path string) (Schema, error) {
	format, ok := formatForPath(path)
	if !ok {
		return nil, errors.NewSchemaError("unsupported schema file extension: "+path, nil)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewSchemaError("failed to read schema file "+path, err)
	}

	return ParseSchema(content, format)
}

// ParseSchema decodes and validates a schema declaration in the given format.
// Unknown type names fail with UnknownType.
func ParseSchema(content []byte, format string) (Schema, error) {
	var decl schemaDecl
	var err error

	switch format {
	case FormatTOML:
		err = toml.Unmarshal(content, &decl.Sections)
	case FormatYAML:
		err = yaml.Unmarshal(content, &decl.Sections)
	case FormatJSON:
		err = json.Unmarshal(content, &decl.Sections)
	default:
		return nil, errors.NewSchemaError("unsupported schema format: "+format, nil)
	}
	if err != nil {
		return nil, errors.NewSchemaError("failed to decode "+format+" schema", err)
	}

	if err := decl.validate(); err != nil {
		return nil, err
	}

	schema := make(Schema, len(decl.Sections))
	for _, section := range sortedKeys(decl.Sections) {
		names := decl.Sections[section]
		keys := make(map[string]coerce.Type, len(names))
		for _, key := range sortedKeys(names) {
			t, err := coerce.ParseType(names[key])
			if err != nil {
				return nil, locate(err, section, key)
			}
			keys[key] = t
		}
		schema[section] = keys
	}
	return schema, nil
}

func formatForPath(path string) (string, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	}
	return "", false
}
