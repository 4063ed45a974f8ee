// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/thrust/blob/master/LICENSE.txt.

// Package requestid provides a middleware assigning a unique id to every request.
package requestid

import (
	"context"

	"github.com/google/uuid"
	"github.com/tigerwill90/thrust"
)

type ctxKey struct{}

// Option configures the request id middleware.
type Option func(*config)

type config struct {
	generator     func() string
	header        string
	allowClientID bool
}

func defaultConfig() *config {
	return &config{
		header:        thrust.HeaderXRequestID,
		generator:     newUUID,
		allowClientID: true,
	}
}

// newUUID returns a time-ordered UUID v7, falling back to a random v4 if the clock sequence cannot be read.
func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// WithHeader sets the header carrying the request id. Default: "X-Request-Id".
func WithHeader(name string) Option {
	return func(cfg *config) {
		if name != "" {
			cfg.header = name
		}
	}
}

// WithGenerator sets the function generating new request ids. Default: UUID v7.
func WithGenerator(generator func() string) Option {
	return func(cfg *config) {
		if generator != nil {
			cfg.generator = generator
		}
	}
}

// WithAllowClientID controls whether a request id provided by the client in the request header is reused.
// Default: true.
func WithAllowClientID(allow bool) Option {
	return func(cfg *config) {
		cfg.allowClientID = allow
	}
}

// New returns a middleware that sets a request id on the response header and stores it in the request
// context, where later middleware can read it with [FromContext].
func New(opts ...Option) thrust.MiddlewareFunc {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(c *thrust.Context, next thrust.Next) error {
		var id string
		if cfg.allowClientID {
			id = c.RequestHeader(cfg.header)
		}
		if id == "" {
			id = cfg.generator()
		}

		c.SetHeader(cfg.header, id)
		if req := c.Request(); req != nil {
			c.SetRequest(req.WithContext(context.WithValue(req.Context(), ctxKey{}, id)))
		}
		return next()
	}
}

// FromContext returns the request id stored in ctx, or an empty string.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Get returns the request id of the request held by c, or an empty string.
func Get(c *thrust.Context) string {
	return FromContext(c.Ctx())
}
