// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/thrust/blob/master/LICENSE.txt.

// Package metrics provides a middleware recording Prometheus metrics for every request, labelled by
// route pattern rather than raw path to keep the cardinality bounded.
package metrics

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tigerwill90/thrust"
)

// Option configures the metrics [Collector].
type Option func(*config)

type config struct {
	namespace string
	buckets   []float64
}

// WithNamespace sets the metrics namespace. Default: "thrust".
func WithNamespace(namespace string) Option {
	return func(cfg *config) {
		cfg.namespace = namespace
	}
}

// WithBuckets sets the buckets, in seconds, of the request duration histogram.
// Default: prometheus.DefBuckets.
func WithBuckets(buckets ...float64) Option {
	return func(cfg *config) {
		if len(buckets) > 0 {
			cfg.buckets = buckets
		}
	}
}

// Collector holds the request metrics.
type Collector struct {
	requests *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
	gatherer prometheus.Gatherer
}

// New creates the request metrics and registers them with reg. A nil reg uses a new dedicated registry,
// avoiding conflicts with the global one.
func New(reg *prometheus.Registry, opts ...Option) (*Collector, error) {
	cfg := &config{namespace: "thrust", buckets: prometheus.DefBuckets}
	for _, opt := range opts {
		opt(cfg)
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	col := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "requests_total",
			Help:      "Number of requests resolved, by method, route pattern and status code.",
		}, []string{"method", "route", "code"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "chain_failures_total",
			Help:      "Number of middleware chains aborted with an error, by method and route pattern.",
		}, []string{"method", "route"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.namespace,
			Name:      "request_duration_seconds",
			Help:      "Duration of the middleware chain, by method and route pattern.",
			Buckets:   cfg.buckets,
		}, []string{"method", "route"}),
		gatherer: reg,
	}

	for _, c := range []prometheus.Collector{col.requests, col.failures, col.duration} {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				return nil, fmt.Errorf("metrics: collector already registered: %w", err)
			}
			return nil, err
		}
	}
	return col, nil
}

// Middleware returns a middleware observing the rest of the chain. Failures are counted and the error is
// returned unchanged.
func (col *Collector) Middleware() thrust.MiddlewareFunc {
	return func(c *thrust.Context, next thrust.Next) error {
		start := time.Now()
		err := next()

		method := c.Request().Method
		route := c.Pattern()
		col.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		if err != nil {
			col.failures.WithLabelValues(method, route).Inc()
			return err
		}
		col.requests.WithLabelValues(method, route, strconv.Itoa(c.Status())).Inc()
		return nil
	}
}

// Handler returns a terminal middleware exposing the gathered metrics in the Prometheus text format.
func (col *Collector) Handler() thrust.MiddlewareFunc {
	return thrust.WrapH(promhttp.HandlerFor(col.gatherer, promhttp.HandlerOpts{}))
}
