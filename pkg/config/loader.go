package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/macropower/vscroll/api"
	"github.com/macropower/vscroll/api/v1beta1"
	"github.com/macropower/vscroll/pkg/yaml"
)

// ErrEmptyDocument is returned when the data holds no YAML document.
var ErrEmptyDocument = errors.New("empty document")

// Validator validates decoded data against a schema.
type Validator interface {
	Validate(data any) error
}

// LoaderOpt configures a [Loader].
type LoaderOpt func(*loaderOptions)

type loaderOptions struct {
	validator Validator
	path      string
}

// WithValidator replaces the default validator. A nil validator disables
// schema validation.
func WithValidator(v Validator) LoaderOpt {
	return func(o *loaderOptions) {
		o.validator = v
	}
}

// WithPath records the path the data was read from, for error messages.
func WithPath(path string) LoaderOpt {
	return func(o *loaderOptions) {
		o.path = path
	}
}

// Loader loads documents of type T.
type Loader[T v1beta1.Object] struct {
	validator Validator
	newFunc   func() T
	path      string
	data      []byte
}

// NewLoaderFromBytes creates a [Loader] for data. newFunc constructs an empty
// T, e.g. [configs.New].
func NewLoaderFromBytes[T v1beta1.Object](
	data []byte,
	newFunc func() T,
	defaultValidator Validator,
	opts ...LoaderOpt,
) *Loader[T] {
	options := &loaderOptions{validator: defaultValidator}
	for _, opt := range opts {
		opt(options)
	}

	return &Loader[T]{
		data:      data,
		newFunc:   newFunc,
		validator: options.validator,
		path:      options.path,
	}
}

// NewLoaderFromFile creates a [Loader] for the file at path.
func NewLoaderFromFile[T v1beta1.Object](
	path string,
	newFunc func() T,
	defaultValidator Validator,
	opts ...LoaderOpt,
) (*Loader[T], error) {
	data, err := api.ReadFile(path)
	if err != nil {
		return nil, err //nolint:wrapcheck // Return the original error.
	}

	opts = append([]LoaderOpt{WithPath(path)}, opts...)

	return NewLoaderFromBytes(data, newFunc, defaultValidator, opts...), nil
}

// Data returns the raw document.
func (l *Loader[T]) Data() []byte {
	return l.data
}

// Validate checks the document against the schema.
func (l *Loader[T]) Validate() error {
	var doc any

	err := l.decode(&doc)
	if err != nil {
		return err
	}

	if l.validator == nil {
		return nil
	}

	err = l.validator.Validate(doc)
	if err != nil {
		return l.wrap(yaml.AttachSource(err, l.data))
	}

	return nil
}

// Load decodes the document and applies defaults. It does not check the
// schema; see [Loader.Validate] and [Loader.LoadValid].
//
//nolint:ireturn // Generic type parameter return is intentional.
func (l *Loader[T]) Load() (T, error) {
	obj := l.newFunc()

	err := l.decode(obj)
	if err != nil {
		var zero T
		return zero, err
	}

	obj.EnsureDefaults()

	return obj, nil
}

// LoadValid validates the document against the schema, loads it, and runs
// the object's own validation.
//
//nolint:ireturn // Generic type parameter return is intentional.
func (l *Loader[T]) LoadValid() (T, error) {
	var zero T

	err := l.Validate()
	if err != nil {
		return zero, err
	}

	obj, err := l.Load()
	if err != nil {
		return zero, err
	}

	err = obj.Validate()
	if err != nil {
		return zero, l.wrap(fmt.Errorf("invalid %s: %w", obj.GetKind(), err))
	}

	return obj, nil
}

func (l *Loader[T]) decode(v any) error {
	err := yaml.NewDecoder(bytes.NewReader(l.data)).Decode(v)
	if errors.Is(err, io.EOF) {
		return l.wrap(ErrEmptyDocument)
	}

	if err != nil {
		return l.wrap(yaml.AttachSource(err, l.data))
	}

	return nil
}

func (l *Loader[T]) wrap(err error) error {
	if l.path == "" {
		return err
	}

	return fmt.Errorf("%s: %w", l.path, err)
}
