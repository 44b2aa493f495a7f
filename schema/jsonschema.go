package schema

import _ "embed"

// ConfigJSONSchema is the JSON Schema (draft-07) describing the Config
// mapping. Tooling uses it to lint configuration files before a call.
//
//go:embed config.schema.json
var ConfigJSONSchema []byte
