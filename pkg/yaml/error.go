package yaml

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/printer"
	"github.com/goccy/go-yaml/token"
)

// Error is a YAML error located by a [yaml.Path] or a [token.Token]. When
// Source is set, Error renders the surrounding source lines.
type Error struct {
	Err    error
	Path   *yaml.Path
	Token  *token.Token
	Source []byte
}

// ErrorOpt configures an [Error].
type ErrorOpt func(e *Error)

func NewError(err error, opts ...ErrorOpt) *Error {
	e := &Error{Err: err}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

func WithPath(path *yaml.Path) ErrorOpt {
	return func(e *Error) {
		e.Path = path
	}
}

func WithToken(tk *token.Token) ErrorOpt {
	return func(e *Error) {
		e.Token = tk
	}
}

func WithSource(source []byte) ErrorOpt {
	return func(e *Error) {
		e.Source = source
	}
}

// AttachSource sets the source of any [*Error] in err's chain. Other errors
// are returned unchanged.
func AttachSource(err error, source []byte) error {
	var yamlErr *Error
	if errors.As(err, &yamlErr) {
		yamlErr.Source = source
	}

	return err
}

// NewPathBuilder returns a builder for [yaml.Path]s.
func NewPathBuilder() *yaml.PathBuilder {
	return &yaml.PathBuilder{}
}

func (e Error) Error() string {
	if e.Err == nil {
		return ""
	}

	switch {
	case e.Token != nil:
		var pp printer.Printer

		pos := e.Token.Position

		return fmt.Sprintf("[%d:%d] %v:\n%s", pos.Line, pos.Column, e.Err,
			strings.TrimRight(pp.PrintErrorToken(e.Token, false), "\n"))

	case e.Path != nil && len(e.Source) > 0:
		annotated, err := e.Path.AnnotateSource(e.Source, false)
		if err != nil {
			return fmt.Sprintf("error at %s: %v", e.Path, e.Err)
		}

		return fmt.Sprintf("error at %s: %v:\n%s", e.Path, e.Err,
			strings.TrimRight(string(annotated), "\n"))

	case e.Path != nil:
		return fmt.Sprintf("error at %s: %v", e.Path, e.Err)
	}

	return e.Err.Error()
}

func (e Error) Unwrap() error {
	return e.Err
}
