// Package navigate provides a path-based dispatch engine for in-process
// navigation.
//
// Callers register string paths together with an operation to run and the
// names of preconditions that must pass first. Dispatching a path (which may
// carry a query string) finds the route, resolves its preconditions, and
// either runs the operation or follows the redirect a failed precondition
// supplied.
//
// # Quick Start
//
// Register routes and dispatch to them:
//
//	r := navigate.New()
//
//	r.Register(navigate.Route{
//	    Path: "/profile",
//	    Operation: func(ctx context.Context, path string, p navigate.Params) error {
//	        return screens.Push(ctx, profile.New(p["user"]))
//	    },
//	})
//
//	r.Route("/profile?user=42")
//
// Route reports success as a bool. Dispatch returns the error instead:
//
//	if err := r.Dispatch(ctx, "/profile?user=42"); errors.Is(err, navigate.ErrNotFound) {
//	    // ...
//	}
//
// # Paths and Query Parameters
//
// Routes are matched by exact base path: the path with its query string
// removed. Query parameters are decoded and handed to the operation:
//
//	navigate.EncodeQuery("/home", navigate.Params{"alert": "Pizza is here!"})
//	// "/home?alert=Pizza%20is%20here%21"
//
//	navigate.DecodeQuery("/home?alert=Pizza%20is%20here%21")
//	// Params{"alert": "Pizza is here!"}
//
//	navigate.StripQuery("/home?alert=x")
//	// "/home"
//
// Malformed paths never produce errors; they decode to empty values.
//
// # Preconditions
//
// A precondition receives the path being navigated to and returns the path
// that should be navigated to instead. Returning a path with the same base
// path means it is satisfied:
//
//	r.RegisterPrecondition(navigate.Precondition{
//	    ID: "signed-in",
//	    Action: func(path string) string {
//	        if session.Active() {
//	            return path
//	        }
//	        return "/login?next=" + url.QueryEscape(path)
//	    },
//	})
//
//	r.Register(navigate.Route{
//	    Path:          "/settings",
//	    Preconditions: []string{"signed-in"},
//	    Operation:     showSettings,
//	})
//
// Preconditions run in the order the route lists them. The first one to
// redirect ends the dispatch: the redirect target is dispatched in its
// place (with its own preconditions), observers are told which
// precondition failed, and the original route is not retried.
//
// Redirects are bounded. A redirect back to a path already visited during
// the same dispatch with the same query parameters, or a chain longer than
// WithMaxRedirects, stops with ErrRedirectLoop. Returning to a route with
// new parameters, such as a freshly issued token, is followed.
//
// Guard builds preconditions from composable conditions over the query
// parameters:
//
//	r.RegisterPrecondition(navigate.Guard("staff-order",
//	    navigate.And(
//	        navigate.HasValues("order"),
//	        navigate.ParamIn("role", "admin", "editor"),
//	    ),
//	    "/orders",
//	))
//
// HasParams only asks that a parameter be present; HasValues also rejects
// empty values such as "?order=".
//
// A condition field may reach into a JSON-valued parameter:
// "filter.kind" reads "kind" from ?filter={"kind":"open"}.
//
// The celguard subpackage builds preconditions from CEL expressions.
//
// # Observers and Hooks
//
// A Router holds a single Observer, notified of WillRoute, DidRoute,
// NotFound and PreconditionFailed. The most recent SetObserver wins; use
// Observers to fan out. The Router never manages an Observer's lifetime.
//
// Hooks are configured with options and may be stacked:
//
//	r := navigate.New(
//	    navigate.WithOnNotFound(func(ctx context.Context, path string) {
//	        logger.Warn("dead link", zap.String("path", path))
//	    }),
//	    navigate.WithOnOperationError(func(ctx context.Context, path string, err error) {
//	        crash.Report(err)
//	    }),
//	)
//
// Hooks run before the Observer. The navmetrics subpackage provides an
// Observer that records Prometheus counters.
//
// # Manifests
//
// Route tables can be declared in JSON or YAML and bound to operations by
// name:
//
//	err := navigate.LoadManifest(r, data, navigate.Operations{
//	    "home":  showHome,
//	    "login": showLogin,
//	})
//
// # Logging and Tracing
//
// WithLogger takes a *zap.Logger; WithTracer an OpenTelemetry tracer. Each
// hop of a dispatch gets a span, and every log line and span carries the
// dispatch_id shared by the original path and its redirects.
//
// # Thread Safety
//
// Router is not safe for concurrent use. Registration and dispatch are
// expected to happen on one goroutine, typically the one driving the UI.
package navigate
