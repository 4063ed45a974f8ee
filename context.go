// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/thrust/blob/master/LICENSE.txt.

package thrust

import (
	"bytes"
	netcontext "context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Context holds the mutable state of a single request while it flows through a middleware chain: the request,
// the captured params, the parsed query (if any) and the response in progress. Be aware that the Context API is
// not thread-safe and its lifetime should be limited to the duration of the chain execution, as the underlying
// implementation may be reused as soon as [App.Resolve] returns.
type Context struct {
	req    *http.Request
	route  *Route
	app    *App
	params Params
	query  url.Values
	header http.Header
	reason string
	body   bytes.Buffer
	status int
}

// NewContext returns a Context for r with the provided params, detached from any [App]. It is mostly useful to
// test middleware in isolation.
func NewContext(r *http.Request, params Params) *Context {
	c := new(Context)
	c.reset(nil, r, nil, params)
	return c
}

func (c *Context) reset(app *App, r *http.Request, route *Route, params Params) {
	c.app = app
	c.req = r
	c.route = route
	c.params = params
	c.query = nil
	c.header = make(http.Header)
	c.reason = ""
	c.body.Reset()
	c.status = http.StatusOK
}

// Request returns the current *http.Request.
func (c *Context) Request() *http.Request {
	return c.req
}

// SetRequest sets the *http.Request.
func (c *Context) SetRequest(r *http.Request) {
	c.req = r
}

// Ctx returns the context associated with the current request.
func (c *Context) Ctx() netcontext.Context {
	if c.req == nil {
		return netcontext.Background()
	}
	return c.req.Context()
}

// Route returns the matched [Route], or nil for a detached Context.
func (c *Context) Route() *Route {
	return c.route
}

// Pattern returns the registered pattern of the matched route.
func (c *Context) Pattern() string {
	if c.route == nil {
		return ""
	}
	return c.route.pattern
}

// App returns the [App] serving the request, or nil for a detached Context.
func (c *Context) App() *App {
	return c.app
}

// Params returns the params captured while matching the route.
func (c *Context) Params() Params {
	return c.params
}

// Param retrieve a captured param by name.
// It's a helper for c.Params().Get(name).
func (c *Context) Param(name string) string {
	return c.params.Get(name)
}

// QueryParams returns the parsed query values. They are nil until the [QueryParams] middleware
// (or [Context.SetQueryParams]) populated them; the query string is never parsed implicitly.
func (c *Context) QueryParams() url.Values {
	return c.query
}

// QueryParam returns the first query value associated with the given key.
func (c *Context) QueryParam(name string) string {
	return c.query.Get(name)
}

// SetQueryParams sets the parsed query values.
func (c *Context) SetQueryParams(values url.Values) {
	c.query = values
}

// Status returns the status code of the response in progress. It defaults to 200.
func (c *Context) Status() int {
	return c.status
}

// SetStatus sets the status code of the response in progress.
func (c *Context) SetStatus(code int) {
	c.status = code
}

// SetReason sets a custom reason phrase for the response status.
func (c *Context) SetReason(reason string) {
	c.reason = reason
}

// Header returns the response headers in progress.
func (c *Context) Header() http.Header {
	return c.header
}

// SetHeader sets the response header for the given key to the specified value.
func (c *Context) SetHeader(key, value string) {
	c.header.Set(key, value)
}

// RequestHeader retrieves the value of the request header for the given key.
func (c *Context) RequestHeader(key string) string {
	if c.req == nil {
		return ""
	}
	return c.req.Header.Get(key)
}

// Body replaces the response body with s.
func (c *Context) Body(s string) {
	c.body.Reset()
	c.body.WriteString(s)
}

// Write appends p to the response body. It never returns an error.
func (c *Context) Write(p []byte) (int, error) {
	return c.body.Write(p)
}

// WriteString appends s to the response body. It never returns an error.
func (c *Context) WriteString(s string) (int, error) {
	return c.body.WriteString(s)
}

// Bytes returns the response body written so far. The slice is only valid until the next write.
func (c *Context) Bytes() []byte {
	return c.body.Bytes()
}

// String sets the status code and replaces the body with a formatted string.
func (c *Context) String(code int, format string, values ...any) (err error) {
	if c.header.Get(HeaderContentType) == "" {
		c.header.Set(HeaderContentType, MIMETextPlainCharsetUTF8)
	}
	c.status = code
	c.body.Reset()
	_, err = fmt.Fprintf(&c.body, format, values...)
	return
}

// Blob sets the status code and content type and replaces the body with buf.
func (c *Context) Blob(code int, contentType string, buf []byte) (err error) {
	c.header.Set(HeaderContentType, contentType)
	c.status = code
	c.body.Reset()
	_, err = c.body.Write(buf)
	return
}

// Stream sets the status code and content type and replaces the body with the content of r.
func (c *Context) Stream(code int, contentType string, r io.Reader) (err error) {
	c.header.Set(HeaderContentType, contentType)
	c.status = code
	c.body.Reset()
	_, err = c.body.ReadFrom(r)
	return
}

// Redirect sets a redirect response with the given status code and location.
func (c *Context) Redirect(code int, location string) error {
	if code < http.StatusMultipleChoices || code > http.StatusPermanentRedirect {
		return ErrInvalidRedirectCode
	}
	c.header.Set(HeaderLocation, location)
	c.status = code
	return nil
}

// Writer returns an http.ResponseWriter writing into the response in progress. It allows running
// net/http handlers inside a chain (see [WrapH]).
func (c *Context) Writer() http.ResponseWriter {
	return &responseWriter{c: c}
}

// Response converts the state of the Context into a [Response]. The body is copied, so the Response
// remains valid once the Context is released.
func (c *Context) Response() *Response {
	return newResponse(c.status, c.reason, c.header, bytes.Clone(c.body.Bytes()))
}

// WrapF is an adapter for wrapping http.HandlerFunc and returns a terminal MiddlewareFunc.
// The route parameters are being accessed by the wrapped handler through the request context.
func WrapF(f http.HandlerFunc) MiddlewareFunc {
	return WrapH(f)
}

// WrapH is an adapter for wrapping http.Handler and returns a terminal MiddlewareFunc.
// The route parameters are being accessed by the wrapped handler through the request context.
func WrapH(h http.Handler) MiddlewareFunc {
	return func(c *Context, _ Next) error {
		req := c.Request()
		if len(c.Params()) > 0 {
			ctx := netcontext.WithValue(c.Ctx(), paramsKey, c.Params().Clone())
			req = req.WithContext(ctx)
		}
		h.ServeHTTP(c.Writer(), req)
		return nil
	}
}
