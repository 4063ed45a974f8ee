// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/thrust/blob/master/LICENSE.txt.

package thrust

import (
	"fmt"
	"log/slog"
	"strings"
)

// Option configures an [App].
type Option interface {
	apply(*App) error
}

type optionFunc func(*App) error

func (o optionFunc) apply(app *App) error {
	return o(app)
}

// WithWildcardMarker sets the segment text parsed as a wildcard in route patterns and middleware prefixes.
// The default marker is "*". The marker cannot be empty, contain a slash or start with ':'.
func WithWildcardMarker(marker string) Option {
	return optionFunc(func(app *App) error {
		if marker == "" || strings.IndexByte(marker, '/') >= 0 || marker[0] == paramDelim {
			return fmt.Errorf("%w: invalid wildcard marker %q", ErrInvalidConfig, marker)
		}
		app.parser.WildcardMarker = marker
		return nil
	})
}

// WithNoMethod enable to returns a 405 Method Not Allowed response, with the "Allow" header set, instead of a
// 404 Not Found when the path matches a route for other methods only. By default, this option is disabled.
func WithNoMethod(enable bool) Option {
	return optionFunc(func(app *App) error {
		app.handleMethodNotAllowed = enable
		return nil
	})
}

// WithLogHandler sets the slog.Handler used to report chain failures from [App.ServeHTTP]. By default,
// failures are logged to os.Stderr with a human-readable handler.
func WithLogHandler(handler slog.Handler) Option {
	return optionFunc(func(app *App) error {
		if handler == nil {
			return fmt.Errorf("%w: log handler cannot be nil", ErrInvalidConfig)
		}
		app.logger = slog.New(handler)
		return nil
	})
}

// WithMiddleware attaches middleware to the root prefix, so they run first for every route, in the order
// provided. It's a shortcut for [App.UseMiddleware] with the "/" prefix.
func WithMiddleware(mws ...MiddlewareFunc) Option {
	return optionFunc(func(app *App) error {
		for _, mw := range mws {
			if mw == nil {
				return fmt.Errorf("%w: middleware cannot be nil", ErrInvalidConfig)
			}
		}
		app.mws = append(app.mws, prefixMiddleware{prefix: "/", segments: []Segment{}, chain: append(Chain(nil), mws...)})
		return nil
	})
}
