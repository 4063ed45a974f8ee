// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/thrust/blob/master/LICENSE.txt.

// Package thrusttest provides utilities to drive synthetic requests through a [thrust.App].
package thrusttest

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/tigerwill90/thrust"
)

// Header is a single request header.
type Header struct {
	Key   string
	Value string
}

// Response is a simplified view of a [thrust.Response] meant for assertions.
type Response struct {
	// Headers maps each header key to its last value.
	Headers map[string]string
	// Reason is the status reason phrase, "Ok" for the canonical success status.
	Reason string
	// Body is the response body.
	Body string
	// Status is the status code.
	Status int
}

// ErrIncompleteRequest is returned when the synthetic request cannot be fully decoded.
var ErrIncompleteRequest = errors.New("incomplete request")

// Request builds a raw HTTP/1.1 request from method, target, headers and body, decodes it, and drives it
// through [thrust.App.Match] and [thrust.App.Resolve]. The target may carry a query string.
func Request(app *thrust.App, method, target string, headers []Header, body string) (*Response, error) {
	var sb strings.Builder
	sb.WriteString(method)
	sb.WriteByte(' ')
	sb.WriteString(target)
	sb.WriteString(" HTTP/1.1\r\n")
	sb.WriteString("Host: localhost:8080\r\n")
	for _, h := range headers {
		sb.WriteString(h.Key)
		sb.WriteString(": ")
		sb.WriteString(h.Value)
		sb.WriteString("\r\n")
	}
	if body != "" {
		sb.WriteString("Content-Length: ")
		sb.WriteString(strconv.Itoa(len(body)))
		sb.WriteString("\r\n")
	}
	sb.WriteString("\r\n")
	sb.WriteString(body)

	req, err := thrust.Decode([]byte(sb.String()))
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrIncompleteRequest
	}

	m := app.Match(req.Method, req.RequestURI)
	resp, err := app.Resolve(req, m)
	if err != nil {
		return nil, err
	}
	return NewResponse(resp), nil
}

// NewResponse converts a [thrust.Response] into its simplified view.
func NewResponse(resp *thrust.Response) *Response {
	headers := make(map[string]string)
	for k, v := range resp.Header() {
		if len(v) > 0 {
			headers[k] = v[len(v)-1]
		}
	}
	return &Response{
		Headers: headers,
		Reason:  resp.Status.Reason(),
		Body:    string(resp.Body),
		Status:  resp.Status.Code(),
	}
}

// Get issues a GET request without body.
func Get(app *thrust.App, target string, headers ...Header) (*Response, error) {
	return Request(app, http.MethodGet, target, headers, "")
}

// Delete issues a DELETE request without body.
func Delete(app *thrust.App, target string, headers ...Header) (*Response, error) {
	return Request(app, http.MethodDelete, target, headers, "")
}

// Post issues a POST request with the given body.
func Post(app *thrust.App, target, body string, headers ...Header) (*Response, error) {
	return Request(app, http.MethodPost, target, headers, body)
}

// Put issues a PUT request with the given body.
func Put(app *thrust.App, target, body string, headers ...Header) (*Response, error) {
	return Request(app, http.MethodPut, target, headers, body)
}

// Patch issues a PATCH request with the given body.
func Patch(app *thrust.App, target, body string, headers ...Header) (*Response, error) {
	return Request(app, http.MethodPatch, target, headers, body)
}
