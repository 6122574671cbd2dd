package navigate

import "sort"

// registry holds the routes and preconditions known to a Router. Its
// exported methods are promoted onto Router.
type registry struct {
	routes        map[string]Route
	preconditions map[string]Precondition
}

func newRegistry() *registry {
	return &registry{
		routes:        make(map[string]Route),
		preconditions: make(map[string]Precondition),
	}
}

// Register adds route under route.Path, replacing any existing route with
// the same path.
func (r *registry) Register(route Route) {
	r.routes[route.Path] = route
}

// RegisterPrecondition adds p under p.ID, replacing any existing
// precondition with the same ID.
func (r *registry) RegisterPrecondition(p Precondition) {
	r.preconditions[p.ID] = p
}

// UnregisterPrecondition removes the precondition with the given ID. Routes
// that still name it behave as if it were never registered.
func (r *registry) UnregisterPrecondition(id string) {
	delete(r.preconditions, id)
}

// Unregister removes the route registered at path. It is a no-op when no
// such route exists.
func (r *registry) Unregister(path string) {
	delete(r.routes, path)
}

// UnregisterRoute removes route by its Path.
func (r *registry) UnregisterRoute(route Route) {
	r.Unregister(route.Path)
}

// HasRoute reports whether a route is registered for path. Any query string
// on path is ignored, so a full dispatch target may be passed.
func (r *registry) HasRoute(path string) bool {
	_, ok := r.routes[basePath(path)]
	return ok
}

// HasPrecondition reports whether a precondition is registered under id.
func (r *registry) HasPrecondition(id string) bool {
	_, ok := r.preconditions[id]
	return ok
}

// MassAdd registers each route in turn.
func (r *registry) MassAdd(routes ...Route) {
	for _, route := range routes {
		r.Register(route)
	}
}

// MassRemove unregisters each path in turn.
func (r *registry) MassRemove(paths ...string) {
	for _, p := range paths {
		r.Unregister(p)
	}
}

// MassRemoveRoutes unregisters each route in turn.
func (r *registry) MassRemoveRoutes(routes ...Route) {
	for _, route := range routes {
		r.UnregisterRoute(route)
	}
}

// Paths returns the registered route paths in sorted order.
func (r *registry) Paths() []string {
	paths := make([]string, 0, len(r.routes))
	for p := range r.routes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (r *registry) lookup(path string) (Route, bool) {
	route, ok := r.routes[path]
	return route, ok
}

// preconditionsFor returns the registered preconditions named by route, in
// declared order, skipping unknown and repeated IDs.
func (r *registry) preconditionsFor(route Route) []Precondition {
	if len(route.Preconditions) == 0 {
		return nil
	}
	out := make([]Precondition, 0, len(route.Preconditions))
	seen := make(map[string]struct{}, len(route.Preconditions))
	for _, id := range route.Preconditions {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if p, ok := r.preconditions[id]; ok {
			out = append(out, p)
		}
	}
	return out
}
