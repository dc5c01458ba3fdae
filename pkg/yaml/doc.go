// Package yaml wraps [github.com/goccy/go-yaml] with the decoding and
// encoding options used by vscroll, JSON schema validation, and errors that
// point into the YAML source.
package yaml
