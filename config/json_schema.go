package config

import (
	"errors"

	"github.com/invopop/jsonschema"
)

var (
	ErrGeneratedSchemaIsNil = errors.New("generated JSON Schema is nil")
)

// JSONSchema returns the JSON Schema for the config file. Property names follow
// the mapstructure keys used in config.yaml.
func JSONSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		FieldNameTag:              "mapstructure",
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := r.Reflect(&Config{})

	if schema == nil {
		return nil, ErrGeneratedSchemaIsNil
	}
	schema.Title = "zep-extract configuration"

	return schema.MarshalJSON()
}
