// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/thrust/blob/master/LICENSE.txt.

package thrust

import (
	"net/http"
)

var _ http.ResponseWriter = (*responseWriter)(nil)

// responseWriter exposes the response in progress of a Context as an http.ResponseWriter.
// Only the first WriteHeader is recorded, and Write implies a 200 when no status was written.
type responseWriter struct {
	c       *Context
	written bool
}

func (w *responseWriter) Header() http.Header {
	return w.c.header
}

func (w *responseWriter) WriteHeader(code int) {
	if !w.written {
		w.written = true
		w.c.status = code
	}
}

func (w *responseWriter) Write(buf []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	return w.c.body.Write(buf)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	return w.c.body.WriteString(s)
}
