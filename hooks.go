package navigate

import (
	"context"
	"reflect"
)

// Observer receives dispatch lifecycle notifications. A Router holds at most
// one Observer (see Router.SetObserver); use Observers to attach several.
//
// The Router never manages an Observer's lifetime. When the owner of an
// Observer goes away it should detach it with SetObserver(nil).
type Observer interface {
	// WillRoute is called just before a route's operation runs.
	WillRoute(path string)

	// DidRoute is called after a route's operation returns.
	DidRoute(path string)

	// NotFound is called when no route is registered for path.
	NotFound(path string)

	// PreconditionFailed is called after precondition id redirected path
	// and the redirect has been dispatched.
	PreconditionFailed(id, path string)
}

// ObserverFuncs is an Observer built from optional functions. Nil fields are
// skipped.
type ObserverFuncs struct {
	OnWillRoute          func(path string)
	OnDidRoute           func(path string)
	OnNotFound           func(path string)
	OnPreconditionFailed func(id, path string)
}

func (o ObserverFuncs) WillRoute(path string) {
	if o.OnWillRoute != nil {
		o.OnWillRoute(path)
	}
}

func (o ObserverFuncs) DidRoute(path string) {
	if o.OnDidRoute != nil {
		o.OnDidRoute(path)
	}
}

func (o ObserverFuncs) NotFound(path string) {
	if o.OnNotFound != nil {
		o.OnNotFound(path)
	}
}

func (o ObserverFuncs) PreconditionFailed(id, path string) {
	if o.OnPreconditionFailed != nil {
		o.OnPreconditionFailed(id, path)
	}
}

// Observers returns an Observer that notifies each of obs in order. Nil
// entries, including typed nil pointers, are dropped.
func Observers(obs ...Observer) Observer {
	m := make(multiObserver, 0, len(obs))
	for _, o := range obs {
		if o = attachable(o); o != nil {
			m = append(m, o)
		}
	}
	return m
}

// attachable returns o, or nil when o is nil or a nil pointer, map, slice
// or func held in a non-nil interface.
func attachable(o Observer) Observer {
	if o == nil {
		return nil
	}
	switch v := reflect.ValueOf(o); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface:
		if v.IsNil() {
			return nil
		}
	}
	return o
}

type multiObserver []Observer

func (m multiObserver) WillRoute(path string) {
	for _, o := range m {
		o.WillRoute(path)
	}
}

func (m multiObserver) DidRoute(path string) {
	for _, o := range m {
		o.DidRoute(path)
	}
}

func (m multiObserver) NotFound(path string) {
	for _, o := range m {
		o.NotFound(path)
	}
}

func (m multiObserver) PreconditionFailed(id, path string) {
	for _, o := range m {
		o.PreconditionFailed(id, path)
	}
}

// OnWillRouteFunc is called just before a route's operation runs.
type OnWillRouteFunc func(ctx context.Context, path string)

// OnDidRouteFunc is called after a route's operation returns.
type OnDidRouteFunc func(ctx context.Context, path string)

// OnNotFoundFunc is called when no route is registered for the path.
type OnNotFoundFunc func(ctx context.Context, path string)

// OnPreconditionFailedFunc is called after a precondition redirected.
// redirect is the path that was dispatched instead.
type OnPreconditionFailedFunc func(ctx context.Context, id, path, redirect string)

// OnOperationErrorFunc is called when a route's operation fails or panics.
type OnOperationErrorFunc func(ctx context.Context, path string, err error)

// hooks holds all configured hook functions.
type hooks struct {
	onWillRoute          []OnWillRouteFunc
	onDidRoute           []OnDidRouteFunc
	onNotFound           []OnNotFoundFunc
	onPreconditionFailed []OnPreconditionFailedFunc
	onOperationError     []OnOperationErrorFunc
}

// WithOnWillRoute adds a hook called just before an operation runs.
// Multiple hooks are called in order, before the Observer.
//
// Example:
//
//	navigate.WithOnWillRoute(func(ctx context.Context, path string) {
//	    analytics.Screen(path)
//	})
func WithOnWillRoute(fn OnWillRouteFunc) Option {
	return func(r *Router) {
		r.hooks.onWillRoute = append(r.hooks.onWillRoute, fn)
	}
}

// WithOnDidRoute adds a hook called after an operation returns.
// Multiple hooks are called in order, before the Observer.
func WithOnDidRoute(fn OnDidRouteFunc) Option {
	return func(r *Router) {
		r.hooks.onDidRoute = append(r.hooks.onDidRoute, fn)
	}
}

// WithOnNotFound adds a hook called when no route matches.
// Multiple hooks are called in order, before the Observer.
//
// Example:
//
//	navigate.WithOnNotFound(func(ctx context.Context, path string) {
//	    r.Route("/not-found")
//	})
func WithOnNotFound(fn OnNotFoundFunc) Option {
	return func(r *Router) {
		r.hooks.onNotFound = append(r.hooks.onNotFound, fn)
	}
}

// WithOnPreconditionFailed adds a hook called after a precondition
// redirected and the redirect was dispatched.
// Multiple hooks are called in order, before the Observer.
func WithOnPreconditionFailed(fn OnPreconditionFailedFunc) Option {
	return func(r *Router) {
		r.hooks.onPreconditionFailed = append(r.hooks.onPreconditionFailed, fn)
	}
}

// WithOnOperationError adds a hook called when an operation returns an error
// or panics. err is an *OperationError.
func WithOnOperationError(fn OnOperationErrorFunc) Option {
	return func(r *Router) {
		r.hooks.onOperationError = append(r.hooks.onOperationError, fn)
	}
}

func (r *Router) callWillRoute(ctx context.Context, path string) {
	for _, fn := range r.hooks.onWillRoute {
		fn(ctx, path)
	}
	if r.observer != nil {
		r.observer.WillRoute(path)
	}
}

func (r *Router) callDidRoute(ctx context.Context, path string) {
	for _, fn := range r.hooks.onDidRoute {
		fn(ctx, path)
	}
	if r.observer != nil {
		r.observer.DidRoute(path)
	}
}

func (r *Router) callNotFound(ctx context.Context, path string) {
	for _, fn := range r.hooks.onNotFound {
		fn(ctx, path)
	}
	if r.observer != nil {
		r.observer.NotFound(path)
	}
}

func (r *Router) callPreconditionFailed(ctx context.Context, id, path, redirect string) {
	for _, fn := range r.hooks.onPreconditionFailed {
		fn(ctx, id, path, redirect)
	}
	if r.observer != nil {
		r.observer.PreconditionFailed(id, path)
	}
}

func (r *Router) callOperationError(ctx context.Context, path string, err error) {
	for _, fn := range r.hooks.onOperationError {
		fn(ctx, path, err)
	}
}
