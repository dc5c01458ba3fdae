package expr

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

// ErrNotBool is returned when an expectation does not evaluate to a bool.
var ErrNotBool = errors.New("expression did not evaluate to a bool")

// Protect CEL environment creation and compilation from concurrent access.
var celMutex sync.Mutex

// Environment provides a thread-safe wrapper around a [*cel.Env].
type Environment struct {
	env *cel.Env
}

// NewEnvironment creates a new [Environment].
func NewEnvironment(opts ...cel.EnvOption) (*Environment, error) {
	env, err := createEnvironment(opts...)
	if err != nil {
		return nil, err
	}

	return &Environment{env: env}, nil
}

// MustNewEnvironment creates a new [Environment] and panics on error.
func MustNewEnvironment(opts ...cel.EnvOption) *Environment {
	env, err := NewEnvironment(opts...)
	if err != nil {
		panic(err)
	}

	return env
}

func createEnvironment(opts ...cel.EnvOption) (*cel.Env, error) {
	celMutex.Lock()
	defer celMutex.Unlock()

	opts = append(opts, cel.Lib(&lib{}))

	celEnv, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}

	return celEnv, nil
}

// Compile compiles a CEL expression and returns a program.
//
//nolint:ireturn // Following CEL's function signature.
func (e *Environment) Compile(expression string) (cel.Program, error) {
	celMutex.Lock()
	defer celMutex.Unlock()

	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile expression: %w", issues.Err())
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("create program: %w", err)
	}

	return program, nil
}

// Expectation is a compiled boolean expression.
type Expectation struct {
	program    cel.Program
	expression string
}

// CompileExpectation compiles expression, which must evaluate to a bool.
func (e *Environment) CompileExpectation(expression string) (*Expectation, error) {
	program, err := e.Compile(expression)
	if err != nil {
		return nil, err
	}

	return &Expectation{program: program, expression: expression}, nil
}

func (x *Expectation) String() string {
	return x.expression
}

// Eval evaluates the expectation against vars.
func (x *Expectation) Eval(vars map[string]any) (bool, error) {
	out, _, err := x.program.Eval(vars)
	if err != nil {
		return false, fmt.Errorf("evaluate %q: %w", x.expression, err)
	}

	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q returned %s", ErrNotBool, x.expression, out.Type().TypeName())
	}

	return b, nil
}
