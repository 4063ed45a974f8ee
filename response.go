// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/thrust/blob/master/LICENSE.txt.

package thrust

import (
	"bufio"
	"bytes"
	"io"
	"net/http"
	"net/textproto"
	"slices"
	"strconv"
)

// StatusMessage is the status line of a [Response]: either the canonical [StatusOk] or a custom code and
// reason created with [CustomStatus].
type StatusMessage struct {
	reason string
	code   int
	custom bool
}

// StatusOk is the canonical success status.
var StatusOk = StatusMessage{code: http.StatusOK, reason: "Ok"}

// CustomStatus returns a StatusMessage with the given code and reason phrase. An empty reason
// falls back to the standard status text.
func CustomStatus(code int, reason string) StatusMessage {
	if reason == "" {
		reason = http.StatusText(code)
	}
	return StatusMessage{code: code, reason: reason, custom: true}
}

// Code returns the numeric status code.
func (s StatusMessage) Code() int {
	return s.code
}

// Reason returns the reason phrase.
func (s StatusMessage) Reason() string {
	return s.reason
}

// IsOk reports whether s is the canonical [StatusOk].
func (s StatusMessage) IsOk() bool {
	return !s.custom
}

func (s StatusMessage) String() string {
	return strconv.Itoa(s.code) + " " + s.reason
}

// Response is the final result of a request, ready to be serialized.
type Response struct {
	// Status is the status line of the response.
	Status StatusMessage
	// HeaderRaw is the formatted header block, one "Key: Value\r\n" line per value, keys in
	// lexicographical order.
	HeaderRaw []byte
	// Body is the response body.
	Body []byte
}

func newResponse(code int, reason string, header http.Header, body []byte) *Response {
	status := StatusOk
	if code != http.StatusOK || reason != "" {
		status = CustomStatus(code, reason)
	}
	return &Response{
		Status:    status,
		HeaderRaw: formatHeader(header),
		Body:      body,
	}
}

// NotFound returns the response used when no route matches the request.
func NotFound() *Response {
	return &Response{
		Status:    CustomStatus(http.StatusNotFound, ""),
		HeaderRaw: formatHeader(http.Header{HeaderContentType: {MIMETextPlainCharsetUTF8}}),
		Body:      []byte(http.StatusText(http.StatusNotFound)),
	}
}

// Header parses HeaderRaw and returns the corresponding headers.
func (r *Response) Header() http.Header {
	if len(r.HeaderRaw) == 0 {
		return http.Header{}
	}
	// The trailing CRLF terminates the MIME header block.
	tp := textproto.NewReader(bufio.NewReader(io.MultiReader(bytes.NewReader(r.HeaderRaw), bytes.NewReader(crlf))))
	h, err := tp.ReadMIMEHeader()
	if err != nil {
		return http.Header{}
	}
	return http.Header(h)
}

// Encode writes the response as an HTTP/1.1 message to w, adding a Content-Length header.
func (r *Response) Encode(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString("HTTP/1.1 ")
	buf.WriteString(r.Status.String())
	buf.Write(crlf)
	buf.Write(r.HeaderRaw)
	buf.WriteString(HeaderContentLength)
	buf.WriteString(": ")
	buf.WriteString(strconv.Itoa(len(r.Body)))
	buf.Write(crlf)
	buf.Write(crlf)
	buf.Write(r.Body)
	_, err := buf.WriteTo(w)
	return err
}

// WriteTo writes the response to an http.ResponseWriter.
func (r *Response) WriteTo(w http.ResponseWriter) error {
	dst := w.Header()
	for k, v := range r.Header() {
		dst[k] = v
	}
	w.WriteHeader(r.Status.Code())
	_, err := w.Write(r.Body)
	return err
}

var crlf = []byte("\r\n")

func formatHeader(h http.Header) []byte {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var buf bytes.Buffer
	for _, k := range keys {
		for _, v := range h[k] {
			buf.WriteString(k)
			buf.WriteString(": ")
			buf.WriteString(v)
			buf.Write(crlf)
		}
	}
	return buf.Bytes()
}
