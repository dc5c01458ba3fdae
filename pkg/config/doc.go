// Package config loads vscroll documents, such as the user configuration
// and scroll traces, from YAML.
//
// A [Loader] checks the raw document against the kind's JSON schema, decodes
// it, applies defaults, and finally runs the kind's own validation. Errors
// carry the document source so that they can be printed with context.
package config
