// Package celguard builds navigate preconditions from CEL expressions.
//
// Expressions see two variables:
//
//	path    string               the navigated base path
//	params  map(string, string)  the navigated query parameters
//
// and must evaluate to a bool. True lets the route run; false, or an
// evaluation error, redirects.
//
//	c, err := celguard.New(celguard.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	admin, err := c.Precondition("admin", `params.role == "admin"`, "/forbidden")
//	if err != nil {
//	    return err
//	}
//	r.RegisterPrecondition(admin)
package celguard

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
	"go.uber.org/zap"

	"github.com/bjaus/navigate"
)

// ErrNotBool is returned for expressions that do not evaluate to a bool.
var ErrNotBool = errors.New("celguard: expression must evaluate to bool")

// Compiler compiles expressions against the precondition environment.
type Compiler struct {
	env    *cel.Env
	logger *zap.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger used to report evaluation errors.
func WithLogger(l *zap.Logger) Option {
	return func(c *Compiler) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Compiler.
func New(opts ...Option) (*Compiler, error) {
	c := &Compiler{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}

	env, err := cel.NewEnv(
		cel.Variable("path", cel.StringType),
		cel.Variable("params", cel.MapType(cel.StringType, cel.StringType)),
	)
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}
	c.env = env
	return c, nil
}

// Precondition compiles expr and returns a precondition that redirects to
// redirect whenever expr does not evaluate to true.
func (c *Compiler) Precondition(id, expr, redirect string) (navigate.Precondition, error) {
	prg, err := c.compile(expr)
	if err != nil {
		return navigate.Precondition{}, fmt.Errorf("precondition %q: %w", id, err)
	}

	log := c.logger.With(zap.String("precondition", id))
	return navigate.Precondition{
		ID: id,
		Action: func(path string) string {
			if eval(log, prg, path) {
				return path
			}
			return redirect
		},
	}, nil
}

// MustPrecondition is like Precondition but panics on compile errors.
// Useful for expressions fixed at build time.
func (c *Compiler) MustPrecondition(id, expr, redirect string) navigate.Precondition {
	p, err := c.Precondition(id, expr, redirect)
	if err != nil {
		panic(err)
	}
	return p
}

func (c *Compiler) compile(expr string) (cel.Program, error) {
	ast, issues := c.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("%w: %q has type %s", ErrNotBool, expr, ast.OutputType())
	}
	prg, err := c.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expr, err)
	}
	return prg, nil
}

func eval(log *zap.Logger, prg cel.Program, path string) bool {
	base, _ := navigate.StripQuery(path)
	out, _, err := prg.Eval(map[string]any{
		"path":   base,
		"params": map[string]string(navigate.DecodeQuery(path)),
	})
	if err != nil {
		log.Warn("CEL evaluation error", zap.String("path", path), zap.Error(err))
		return false
	}
	ok, isBool := out.Value().(bool)
	return isBool && ok
}
