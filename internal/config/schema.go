package config

import (
	"github.com/invopop/jsonschema"
)

// Schema reflects the configuration file format into a JSON schema, for
// editor completion and validation.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{}
	schema := r.Reflect(&Config{})
	schema.ID = "https://raw.githubusercontent.com/yousefs-portfolio/devops-dash-sub001/main/schema.json"
	schema.Title = "DevOps Dash Configuration"
	schema.Description = "Configuration for the DevOps Dash terminal dashboard."
	return schema
}
