package navigate

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// resolve evaluates the route's preconditions against the navigated path,
// route.Path re-encoded with params. A precondition fails when the base path
// it returns differs from route.Path. The first failure dispatches the
// returned path, notifies observers and stops; later preconditions are not
// evaluated and the original route is not retried.
func (r *Router) resolve(ctx context.Context, log *zap.Logger, route Route, params Params, c *chain) error {
	navigated, _ := EncodeQuery(route.Path, params)

	for _, p := range r.preconditionsFor(route) {
		if p.Action == nil {
			continue
		}

		redirect := p.Action(navigated)
		if basePath(redirect) == route.Path {
			continue
		}

		log.Info("precondition redirected",
			zap.String("precondition", p.ID),
			zap.String("redirect", redirect),
		)

		redirectErr := r.redirect(ctx, log, redirect, c)
		r.callPreconditionFailed(ctx, p.ID, navigated, redirect)

		return &PreconditionError{
			ID:       p.ID,
			Path:     navigated,
			Redirect: redirect,
			Err:      redirectErr,
		}
	}

	return nil
}

// redirect dispatches target as the next hop of c, refusing targets already
// visited in this chain and chains longer than the configured bound. A
// target is visited only if both its base path and its params were seen.
func (r *Router) redirect(ctx context.Context, log *zap.Logger, target string, c *chain) error {
	key := canonicalPath(target)
	if _, seen := c.visited[key]; seen {
		log.Warn("redirect loop", zap.String("redirect", target))
		return fmt.Errorf("%w: %q already visited", ErrRedirectLoop, key)
	}
	if c.hops >= r.maxRedirects {
		log.Warn("redirect limit reached",
			zap.String("redirect", target),
			zap.Int("max_redirects", r.maxRedirects),
		)
		return fmt.Errorf("%w: more than %d redirects", ErrRedirectLoop, r.maxRedirects)
	}

	c.hops++
	return r.dispatch(ctx, target, c)
}
