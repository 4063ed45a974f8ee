// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/thrust/blob/master/LICENSE.txt.

package thrust

import (
	"log/slog"
	"time"

	"github.com/tigerwill90/thrust/internal/netutil"
	"github.com/tigerwill90/thrust/internal/slogpretty"
)

// LoggerWithHandler returns middleware that logs request information using the provided slog.Handler.
// It logs details such as the remote IP (from X-Real-Ip, X-Forwarded-For or the connection), HTTP method,
// request path, status code and latency, and the error if the rest of the chain failed. The error is
// returned unchanged.
func LoggerWithHandler(handler slog.Handler) MiddlewareFunc {
	log := slog.New(handler)
	return func(c *Context, next Next) error {
		start := time.Now()
		err := next()
		latency := time.Since(start)

		req := c.Request()
		status := c.Status()
		lvl := level(status)
		if err != nil {
			lvl = slog.LevelError
		}

		attrs := []slog.Attr{
			slog.Int("status", status),
			slog.String("method", req.Method),
			slog.String("path", req.URL.String()),
			slog.Duration("latency", roundLatency(latency)),
		}
		if lvl == slog.LevelDebug {
			if location := c.Header().Get(HeaderLocation); location != "" {
				attrs = append(attrs, slog.String("location", location))
			}
		}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}

		log.LogAttrs(c.Ctx(), lvl, remoteIP(c), attrs...)
		return err
	}
}

// Logger returns middleware that logs request information to os.Stdout and os.Stderr.
// It logs details such as the remote IP (from X-Real-Ip, X-Forwarded-For or the connection), HTTP method, request path, status code and latency.
func Logger() MiddlewareFunc {
	return LoggerWithHandler(slogpretty.DefaultHandler)
}

func remoteIP(c *Context) string {
	req := c.Request()
	if ip := netutil.RemoteHost(req.Header.Get(HeaderXRealIP)); ip != "" {
		return ip
	}
	if ip := netutil.FirstForwarded(req.Header.Get(HeaderXForwardedFor)); ip != "" {
		return ip
	}
	if ip := netutil.RemoteHost(req.RemoteAddr); ip != "" {
		return ip
	}
	return "unknown"
}

func level(status int) slog.Level {
	switch {
	case status >= 200 && status < 300:
		return slog.LevelInfo
	case status >= 300 && status < 400:
		return slog.LevelDebug
	case status >= 400 && status < 500:
		return slog.LevelWarn
	case status >= 500:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func roundLatency(d time.Duration) time.Duration {
	switch {
	case d < 1*time.Microsecond:
		return d.Round(100 * time.Nanosecond)
	case d < 1*time.Millisecond:
		return d.Round(10 * time.Microsecond)
	case d < 10*time.Millisecond:
		return d.Round(100 * time.Microsecond)
	case d < 100*time.Millisecond:
		return d.Round(1 * time.Millisecond)
	case d < 1*time.Second:
		return d.Round(10 * time.Millisecond)
	case d < 10*time.Second:
		return d.Round(100 * time.Millisecond)
	default:
		return d.Round(1 * time.Second)
	}
}
