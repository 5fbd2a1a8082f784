package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"nikki/internal/domain"
)

// schemaFile is the YAML layout of a custom schema:
//
//	version: 3
//	fields:
//	  - name: 日付
//	    type: date
//	  - name: 満足度
//	    type: bounded_int
//	    min: 1
//	    max: 5
//	    default: "3"
type schemaFile struct {
	Version int         `yaml:"version"`
	Fields  []fieldFile `yaml:"fields"`
}

type fieldFile struct {
	Name    string   `yaml:"name"`
	Type    string   `yaml:"type"`
	Min     int      `yaml:"min"`
	Max     int      `yaml:"max"`
	Options []string `yaml:"options"`
	Default string   `yaml:"default"`
}

// LoadSchemaFile reads and validates a YAML schema
func LoadSchemaFile(path string) (domain.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Schema{}, fmt.Errorf("failed to read schema: %w", err)
	}
	return ParseSchema(data)
}

// ParseSchema decodes a YAML schema. An enum field without options gets the
// built-in weather list.
func ParseSchema(data []byte) (domain.Schema, error) {
	var sf schemaFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return domain.Schema{}, fmt.Errorf("failed to parse schema: %w", err)
	}

	schema := domain.Schema{Version: sf.Version}
	for _, f := range sf.Fields {
		field := domain.Field{
			Name:    f.Name,
			Type:    domain.FieldType(f.Type),
			Min:     f.Min,
			Max:     f.Max,
			Options: f.Options,
			Default: f.Default,
		}
		if field.Type == domain.FieldEnum && len(field.Options) == 0 {
			field.Options = domain.WeatherOptions
		}
		schema.Fields = append(schema.Fields, field)
	}

	if err := schema.Validate(); err != nil {
		return domain.Schema{}, fmt.Errorf("invalid schema: %w", err)
	}
	return schema, nil
}
