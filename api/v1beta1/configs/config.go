// Package configs provides the Configuration kind, the user configuration of
// vscroll.
package configs

import (
	"fmt"

	"github.com/invopop/jsonschema"

	_ "embed"

	"github.com/macropower/vscroll/api"
	"github.com/macropower/vscroll/api/v1beta1"
	"github.com/macropower/vscroll/pkg/ui"
	"github.com/macropower/vscroll/pkg/yaml"
)

//go:generate go run ../../../internal/schemagen -kind config -o configs.v1beta1.json

// Kind is the kind of [Config].
const Kind = "Configuration"

var (
	//go:embed config.yaml
	defaultConfigYAML []byte

	//go:embed configs.v1beta1.json
	schemaJSON []byte

	// ValidKinds contains the valid kind values for configurations.
	ValidKinds = []string{Kind}

	// DefaultValidator validates configurations against the JSON schema.
	DefaultValidator = yaml.MustNewValidator("/configs.v1beta1.json", schemaJSON)

	_ v1beta1.Object = (*Config)(nil)
)

// Config is the user configuration.
//
//nolint:recvcheck // Must satisfy the jsonschema interface.
type Config struct {
	// Scrolling tunes the virtual scrolling engine.
	Scrolling *v1beta1.Scrolling `json:"scrolling,omitempty" jsonschema:"title=Scrolling"`
	// Grid describes the grid shown by the interactive workspace.
	Grid *v1beta1.Grid `json:"grid,omitempty" jsonschema:"title=Grid"`
	// UI configures the interactive workspace.
	UI               *ui.Config `json:"ui,omitempty" jsonschema:"title=UI"`
	v1beta1.TypeMeta `json:",inline"`
}

// New creates a [Config] with default values.
func New() *Config {
	c := &Config{TypeMeta: v1beta1.NewTypeMeta(Kind)}
	c.EnsureDefaults()

	return c
}

// DefaultGrid is the grid used when the configuration has none: a week of
// half-hour slots for three resources, in terminal cells.
func DefaultGrid() *v1beta1.Grid {
	return &v1beta1.Grid{
		RowCount:   48,
		CellCount:  7,
		GroupCount: 3,
		CellWidth:  12,
		CellHeight: 1,
	}
}

// EnsureDefaults initializes nil fields to their default values.
func (c *Config) EnsureDefaults() {
	if c.Scrolling == nil {
		c.Scrolling = &v1beta1.Scrolling{}
	}

	c.Scrolling.EnsureDefaults()

	if c.Grid == nil {
		c.Grid = DefaultGrid()
	}

	if c.UI == nil {
		c.UI = ui.NewConfig()
	} else {
		c.UI.EnsureDefaults()
	}
}

// Validate checks the values that the schema cannot.
func (c *Config) Validate() error {
	err := c.TypeMeta.Check(ValidKinds...)
	if err != nil {
		return fmt.Errorf("validate type: %w", err)
	}

	if c.Grid != nil {
		err = c.Grid.Validate()
		if err != nil {
			return fmt.Errorf("validate grid: %w", err)
		}
	}

	if c.UI != nil {
		err = c.UI.Validate()
		if err != nil {
			return fmt.Errorf("validate ui: %w", err)
		}
	}

	return nil
}

func (c Config) JSONSchemaExtend(jss *jsonschema.Schema) {
	v1beta1.ExtendSchemaWithEnums(jss, v1beta1.ValidAPIVersions, ValidKinds)
}

// MarshalYAML serializes the config to YAML.
func (c Config) MarshalYAML() ([]byte, error) {
	type alias Config

	b, err := yaml.Marshal(alias(c))
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	return b, nil
}

// Write writes the config to path if no file exists there.
func (c Config) Write(path string) error {
	b, err := c.MarshalYAML()
	if err != nil {
		return err
	}

	err = api.WriteIfNotExists(path, b)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// DefaultYAML returns the embedded default configuration.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultConfigYAML...)
}

// Schema returns the embedded JSON schema.
func Schema() []byte {
	return append([]byte(nil), schemaJSON...)
}

// WriteDefault writes the embedded default config.yaml to path.
func WriteDefault(path string, force bool) error {
	err := api.WriteDefaultFile(path, defaultConfigYAML, force, "configuration")
	if err != nil {
		return fmt.Errorf("write default config: %w", err)
	}

	return nil
}

// GetPath returns the path of the user configuration file.
func GetPath() string {
	return api.GetConfigPath("config.yaml")
}
