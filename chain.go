// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/thrust/blob/master/LICENSE.txt.

package thrust

// Next is a one-shot continuation that runs the remainder of the chain and returns its error, if any.
// It must be called at most once. Calling it a second time is a programming error and panics with
// [ErrNextCalledTwice]. Calling Next from the last element of a chain is a no-op.
type Next func() error

// MiddlewareFunc is a unit of request processing. It receives the [Context] of the current request and the
// continuation for the rest of the chain. A MiddlewareFunc that returns without calling next short-circuits
// the chain: no later middleware runs and the Context, as left by this middleware, becomes the response.
// Returning an error aborts the chain; the error is returned unchanged by [Chain.Run].
//
// MiddlewareFunc functions should be thread-safe, as they will be called concurrently.
type MiddlewareFunc func(c *Context, next Next) error

// Chain is an ordered sequence of middleware. The last element is the terminal handler of a route.
// A chain is immutable once its route is registered.
type Chain []MiddlewareFunc

// Run executes the chain on c. Middleware run sequentially, strictly in order, and never concurrently with
// each other. Before each element is dispatched the request context is checked: if the request is cancelled,
// Run stops and returns the context error.
func (ch Chain) Run(c *Context) error {
	return ch.run(c, 0)
}

func (ch Chain) run(c *Context, i int) error {
	if i >= len(ch) {
		return nil
	}
	if err := c.Ctx().Err(); err != nil {
		return err
	}

	called := false
	return ch[i](c, func() error {
		if called {
			panic(ErrNextCalledTwice)
		}
		called = true
		return ch.run(c, i+1)
	})
}

// Compose returns a single MiddlewareFunc running mws in order. The next continuation of the composed
// middleware is invoked when the last of mws calls its own next.
func Compose(mws ...MiddlewareFunc) MiddlewareFunc {
	switch len(mws) {
	case 0:
		return func(c *Context, next Next) error { return next() }
	case 1:
		return mws[0]
	}

	chain := append(Chain(nil), mws...)
	return func(c *Context, next Next) error {
		return chain.compose(c, 0, next)
	}
}

func (ch Chain) compose(c *Context, i int, next Next) error {
	if i >= len(ch) {
		return next()
	}

	called := false
	return ch[i](c, func() error {
		if called {
			panic(ErrNextCalledTwice)
		}
		called = true
		return ch.compose(c, i+1, next)
	})
}
