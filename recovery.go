// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/thrust/blob/master/LICENSE.txt.

package thrust

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"strings"

	"github.com/tigerwill90/thrust/internal/slogpretty"
)

// RecoveryFunc is a function type that defines how to handle panics that occur during the
// execution of a chain. The returned error, if any, is returned by the recovery middleware.
type RecoveryFunc func(c *Context, err any) error

// Recovery is a middleware that captures panics of the rest of the chain and recovers from them, logging the
// panic with the default handler and answering with a 500 Internal Server Error.
// Note that the middleware check if the panic is caused by http.ErrAbortHandler and re-panic if true.
func Recovery() MiddlewareFunc {
	return CustomRecoveryWithLogHandler(slogpretty.DefaultHandler, DefaultHandleRecovery)
}

// CustomRecovery is like [Recovery] but calls handle with the Context and the value recovered from the panic.
func CustomRecovery(handle RecoveryFunc) MiddlewareFunc {
	return CustomRecoveryWithLogHandler(slogpretty.DefaultHandler, handle)
}

// CustomRecoveryWithLogHandler is like [CustomRecovery] but logs the recovered panic, including the stack
// trace, with the provided slog.Handler.
func CustomRecoveryWithLogHandler(handler slog.Handler, handle RecoveryFunc) MiddlewareFunc {
	log := slog.New(handler)
	return func(c *Context, next Next) (err error) {
		defer func() {
			if val := recover(); val != nil {
				if abortErr, ok := val.(error); ok && errors.Is(abortErr, http.ErrAbortHandler) {
					panic(abortErr)
				}
				log.LogAttrs(c.Ctx(), slog.LevelError, "panic recovered",
					slog.String("path", c.Pattern()),
					slog.String("error", fmt.Sprint(val)),
					slog.String("stack", string(debug.Stack())),
				)
				err = handle(c, val)
			}
		}()
		return next()
	}
}

// DefaultHandleRecovery is a default implementation of the RecoveryFunc. It discards anything the chain
// wrote so far and sets a 500 Internal Server Error response. If the panic is caused by a broken
// connection, nothing can be sent back and the recovered error is returned instead, aborting the chain.
func DefaultHandleRecovery(c *Context, err any) error {
	if connIsBroken(err) {
		return err.(error)
	}
	c.Header().Del(HeaderLocation)
	return c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

func connIsBroken(err any) bool {
	if ne, ok := err.(*net.OpError); ok {
		var se *os.SyscallError
		if errors.As(ne, &se) {
			seStr := strings.ToLower(se.Error())
			return strings.Contains(seStr, "broken pipe") || strings.Contains(seStr, "connection reset by peer")
		}
	}
	return false
}
