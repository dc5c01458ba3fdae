package v1beta1

import (
	"fmt"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
)

// Immediate is the [Duration] spelling of a negative duration.
const Immediate = "immediate"

// Duration is a [time.Duration] written as a Go duration string ("15ms"), or
// "immediate" for any negative duration.
type Duration struct {
	time.Duration
}

// NewDuration returns a pointer to a [Duration].
func NewDuration(d time.Duration) *Duration {
	return &Duration{Duration: d}
}

func (d Duration) MarshalText() ([]byte, error) {
	if d.Duration < 0 {
		return []byte(Immediate), nil
	}

	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if strings.EqualFold(s, Immediate) {
		d.Duration = -1

		return nil
	}

	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration: %w", err)
	}

	d.Duration = v

	return nil
}

func (Duration) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Title:       "Duration",
		Description: `A duration such as "15ms", or "immediate".`,
		Pattern:     `^(immediate|-?([0-9]+(\.[0-9]+)?(ns|us|µs|ms|s|m|h))+|0)$`,
	}
}
