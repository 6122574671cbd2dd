package navigate

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// DefaultMaxRedirects bounds the number of precondition redirects followed
// from a single Dispatch call.
const DefaultMaxRedirects = 16

const tracerName = "github.com/bjaus/navigate"

// Router dispatches paths to registered routes after resolving their
// preconditions.
//
// Usage:
//  1. Create a router with New
//  2. Register preconditions with RegisterPrecondition
//  3. Register routes with Register or MassAdd
//  4. Dispatch paths with Route or Dispatch
//
// Router is not safe for concurrent use. It is meant to be owned by the
// goroutine that drives navigation; guard it externally if it must be
// shared.
type Router struct {
	*registry

	hooks        hooks
	observer     Observer
	logger       *zap.Logger
	tracer       trace.Tracer
	maxRedirects int
}

// Option configures a Router.
type Option func(*Router)

// New creates a Router with the given options.
//
// Example:
//
//	r := navigate.New(
//	    navigate.WithLogger(logger),
//	    navigate.WithOnNotFound(func(ctx context.Context, path string) {
//	        logger.Warn("dead link", zap.String("path", path))
//	    }),
//	)
func New(opts ...Option) *Router {
	r := &Router{
		registry:     newRegistry(),
		logger:       zap.NewNop(),
		tracer:       noop.NewTracerProvider().Tracer(tracerName),
		maxRedirects: DefaultMaxRedirects,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithTracer sets the tracer used to record one span per dispatched path.
// Nil is ignored.
func WithTracer(t trace.Tracer) Option {
	return func(r *Router) {
		if t != nil {
			r.tracer = t
		}
	}
}

// WithMaxRedirects sets how many precondition redirects a single Dispatch
// may follow before failing with ErrRedirectLoop. Values below zero are
// ignored; zero disables redirects entirely.
func WithMaxRedirects(n int) Option {
	return func(r *Router) {
		if n >= 0 {
			r.maxRedirects = n
		}
	}
}

// WithObserver sets the initial Observer. See SetObserver.
func WithObserver(o Observer) Option {
	return func(r *Router) {
		r.SetObserver(o)
	}
}

// SetObserver attaches o as the Router's single Observer, replacing any
// previous one. Pass nil to detach; a typed nil such as
// (*navmetrics.Observer)(nil) also detaches.
func (r *Router) SetObserver(o Observer) {
	r.observer = attachable(o)
}

// Route dispatches path and reports whether the route's operation ran and
// succeeded. It is Dispatch with a background context and the error
// discarded; use Dispatch to learn why a dispatch failed.
func (r *Router) Route(path string) bool {
	return r.Dispatch(context.Background(), path) == nil
}

// Dispatch looks up the route for path, resolves its preconditions and runs
// its operation.
//
// The dispatch flow:
//  1. Strip the query from path and look up the route; report NotFound and
//     return a *NotFoundError if there is none
//  2. Resolve the route's preconditions in declared order; the first one to
//     redirect dispatches its redirect target and fails this dispatch with a
//     *PreconditionError
//  3. Report WillRoute, run the operation with the base path and decoded
//     query parameters, report DidRoute
//
// Operation failures and panics are returned as *OperationError. Redirects
// that revisit a path with the same params, or exceed the WithMaxRedirects
// bound, stop with ErrRedirectLoop wrapped in the *PreconditionError.
func (r *Router) Dispatch(ctx context.Context, path string) error {
	c := &chain{
		id:      uuid.New().String(),
		visited: make(map[string]struct{}),
	}
	return r.dispatch(ctx, path, c)
}

// chain tracks one Dispatch call across its redirects. visited holds
// canonical paths, so a redirect back to a route with different params is
// followed.
type chain struct {
	id      string
	visited map[string]struct{}
	hops    int
}

func (r *Router) dispatch(ctx context.Context, path string, c *chain) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := basePath(path)
	c.visited[canonicalPath(path)] = struct{}{}

	ctx, span := r.tracer.Start(ctx, "navigate.Dispatch", trace.WithAttributes(
		attribute.String("navigate.path", path),
		attribute.String("navigate.dispatch_id", c.id),
		attribute.Int("navigate.hop", c.hops),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	log := r.logger.With(
		zap.String("dispatch_id", c.id),
		zap.String("path", path),
		zap.Int("hop", c.hops),
	)

	route, found := r.lookup(key)
	if !found {
		log.Warn("no route for path")
		r.callNotFound(ctx, path)
		return &NotFoundError{Path: path}
	}
	span.SetAttributes(attribute.String("navigate.route", route.Path))

	params := DecodeQuery(path)
	if err := r.resolve(ctx, log, route, params, c); err != nil {
		return err
	}

	r.callWillRoute(ctx, path)
	err = r.invoke(ctx, route, key, params)
	if err != nil {
		log.Error("operation failed", zap.Error(err))
		r.callOperationError(ctx, path, err)
	}
	r.callDidRoute(ctx, path)

	if err == nil {
		log.Debug("routed")
	}
	return err
}

// invoke runs the route's operation, converting errors and panics into an
// *OperationError.
func (r *Router) invoke(ctx context.Context, route Route, path string, params Params) (err error) {
	if route.Operation == nil {
		return nil
	}
	defer func() {
		if p := recover(); p != nil {
			err = &OperationError{Path: path, Panic: p}
		}
	}()
	if opErr := route.Operation(ctx, path, params); opErr != nil {
		return &OperationError{Path: path, Err: opErr}
	}
	return nil
}
