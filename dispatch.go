package navigate

import "context"

// Operation runs when a route is dispatched. It receives the base path
// (query removed) and the decoded query parameters.
//
// Example:
//
//	func showProfile(ctx context.Context, path string, p navigate.Params) error {
//	    return screens.Push(ctx, profile.New(p["user"]))
//	}
type Operation func(ctx context.Context, path string, params Params) error

// Proc adapts a fire-and-forget function to an Operation that never fails.
//
//	r.Register(navigate.Route{
//	    Path:      "/home",
//	    Operation: navigate.Proc(func(path string, p navigate.Params) { showHome() }),
//	})
func Proc(fn func(path string, params Params)) Operation {
	return func(_ context.Context, path string, params Params) error {
		fn(path, params)
		return nil
	}
}

// Route binds a path to the operation that runs when it is dispatched.
//
// Routes are values: registering a route with an existing Path replaces the
// previous registration.
type Route struct {
	// Path is the exact lookup key. It must not carry a query string.
	Path string

	// Preconditions lists the IDs of the preconditions that must pass
	// before Operation runs. They are evaluated in this order. IDs with no
	// registered precondition are ignored.
	Preconditions []string

	// Operation is invoked with the base path and decoded parameters.
	Operation Operation
}

// PreconditionAction inspects the path being navigated to (including its
// query string) and returns the path that should be routed to instead.
// Returning a path with the same base path means the precondition is
// satisfied; any other path is a redirect.
//
// Actions should be free of side effects: they run on every dispatch of
// every route that names them.
type PreconditionAction func(path string) string

// Precondition is a named check guarding one or more routes.
//
// Example:
//
//	r.RegisterPrecondition(navigate.Precondition{
//	    ID: "signed-in",
//	    Action: func(path string) string {
//	        if session.Active() {
//	            return path
//	        }
//	        return "/login"
//	    },
//	})
type Precondition struct {
	// ID is referenced from Route.Preconditions.
	ID string

	// Action decides whether the route may run.
	Action PreconditionAction
}
