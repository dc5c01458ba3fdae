// Package v1beta1 contains the v1beta1 file formats of vscroll.
package v1beta1

import (
	"errors"
	"fmt"
	"slices"

	"github.com/invopop/jsonschema"
)

// APIVersion is the API version of all v1beta1 kinds.
const APIVersion = "vscroll.jacobcolvin.com/v1beta1"

var (
	// ValidAPIVersions contains all accepted API versions.
	ValidAPIVersions = []string{APIVersion}

	ErrUnknownAPIVersion = errors.New("unknown apiVersion")
	ErrUnknownKind       = errors.New("unknown kind")
)

// TypeMeta identifies the format of a file.
type TypeMeta struct {
	// APIVersion is the version of the file format.
	APIVersion string `json:"apiVersion" jsonschema:"title=API Version"`
	// Kind is the type of the file.
	Kind string `json:"kind" jsonschema:"title=Kind"`
}

// NewTypeMeta returns a [TypeMeta] for kind at [APIVersion].
func NewTypeMeta(kind string) TypeMeta {
	return TypeMeta{APIVersion: APIVersion, Kind: kind}
}

func (tm TypeMeta) GetAPIVersion() string {
	return tm.APIVersion
}

func (tm TypeMeta) GetKind() string {
	return tm.Kind
}

// Check verifies the API version, and that the kind is one of kinds.
func (tm TypeMeta) Check(kinds ...string) error {
	if !slices.Contains(ValidAPIVersions, tm.APIVersion) {
		return fmt.Errorf("%w: %q", ErrUnknownAPIVersion, tm.APIVersion)
	}

	if !slices.Contains(kinds, tm.Kind) {
		return fmt.Errorf("%w: %q, expected one of %q", ErrUnknownKind, tm.Kind, kinds)
	}

	return nil
}

// Object is implemented by all v1beta1 kinds.
type Object interface {
	GetAPIVersion() string
	GetKind() string
	EnsureDefaults()
	Validate() error
}

// ExtendSchemaWithEnums restricts the apiVersion and kind properties of jss
// to the given values. It panics if either property is missing.
func ExtendSchemaWithEnums(jss *jsonschema.Schema, apiVersions, kinds []string) {
	restrict := func(name string, values []string) {
		prop, ok := jss.Properties.Get(name)
		if !ok {
			panic(name + " property not found in schema")
		}

		for _, v := range values {
			prop.Enum = append(prop.Enum, v)
		}

		jss.Properties.Set(name, prop)
	}

	restrict("apiVersion", apiVersions)
	restrict("kind", kinds)
}
