// Package navmetrics provides a Prometheus-backed navigate.Observer.
//
//	obs, err := navmetrics.New(navmetrics.WithNamespace("shop"))
//	if err != nil {
//	    return err
//	}
//	r.SetObserver(obs)
//
// Route paths are recorded without their query strings. Paths that matched
// no route are counted without a label, since they are caller controlled.
package navmetrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bjaus/navigate"
)

const subsystem = "navigate"

// Observer counts dispatch lifecycle events.
type Observer struct {
	routes               *prometheus.CounterVec
	completed            *prometheus.CounterVec
	notFound             prometheus.Counter
	preconditionFailures *prometheus.CounterVec
}

var _ navigate.Observer = (*Observer)(nil)

type config struct {
	namespace  string
	registerer prometheus.Registerer
}

// Option configures an Observer.
type Option func(*config)

// WithNamespace sets the metric namespace.
func WithNamespace(ns string) Option {
	return func(c *config) {
		c.namespace = ns
	}
}

// WithRegisterer sets where metrics are registered. Defaults to
// prometheus.DefaultRegisterer.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *config) {
		if reg != nil {
			c.registerer = reg
		}
	}
}

// New creates an Observer and registers its metrics. Metrics already
// registered by an earlier Observer with the same namespace are shared.
func New(opts ...Option) (*Observer, error) {
	cfg := config{registerer: prometheus.DefaultRegisterer}
	for _, opt := range opts {
		opt(&cfg)
	}

	o := &Observer{
		routes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.namespace,
				Subsystem: subsystem,
				Name:      "routes_total",
				Help:      "Total number of route operations started",
			},
			[]string{"path"},
		),
		completed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.namespace,
				Subsystem: subsystem,
				Name:      "routes_completed_total",
				Help:      "Total number of route operations that returned",
			},
			[]string{"path"},
		),
		notFound: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.namespace,
				Subsystem: subsystem,
				Name:      "not_found_total",
				Help:      "Total number of dispatches with no matching route",
			},
		),
		preconditionFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.namespace,
				Subsystem: subsystem,
				Name:      "precondition_failures_total",
				Help:      "Total number of dispatches redirected by a precondition",
			},
			[]string{"precondition"},
		),
	}

	var err error
	if o.routes, err = register(cfg.registerer, o.routes); err != nil {
		return nil, err
	}
	if o.completed, err = register(cfg.registerer, o.completed); err != nil {
		return nil, err
	}
	if o.notFound, err = register(cfg.registerer, o.notFound); err != nil {
		return nil, err
	}
	if o.preconditionFailures, err = register(cfg.registerer, o.preconditionFailures); err != nil {
		return nil, err
	}
	return o, nil
}

// register registers c, returning the existing collector when an identical
// one is already registered.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// WillRoute implements navigate.Observer.
func (o *Observer) WillRoute(path string) {
	o.routes.WithLabelValues(label(path)).Inc()
}

// DidRoute implements navigate.Observer.
func (o *Observer) DidRoute(path string) {
	o.completed.WithLabelValues(label(path)).Inc()
}

// NotFound implements navigate.Observer.
func (o *Observer) NotFound(string) {
	o.notFound.Inc()
}

// PreconditionFailed implements navigate.Observer.
func (o *Observer) PreconditionFailed(id, _ string) {
	o.preconditionFailures.WithLabelValues(id).Inc()
}

func label(path string) string {
	p, _ := navigate.StripQuery(path)
	return p
}
