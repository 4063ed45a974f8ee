// The code in this package is derivative of https://gitlab.com/greyxor/slogor.
// Mount of this source code is governed by a MIT license that can be found
// at https://gitlab.com/greyxor/slogor/-/blob/main/LICENSE?ref_type=heads.

package slogpretty

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/tigerwill90/thrust/internal/ansi"
)

const (
	maxBufferSize     = 16 << 10 // 16384
	initialBufferSize = 1024
)

var _ slog.Handler = (*Handler)(nil)

var logBufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, initialBufferSize)
		return &b
	},
}

var (
	// DefaultHandler writes records below the error level to os.Stdout and others to os.Stderr.
	DefaultHandler = New(os.Stdout, os.Stderr, slog.LevelDebug)
	timeFormat     = fmt.Sprintf("%s %s", time.DateOnly, time.TimeOnly)
)

func freeBuf(b *[]byte) {
	if cap(*b) <= maxBufferSize {
		*b = (*b)[:0]
		logBufPool.Put(b)
	}
}

type groupOrAttr struct {
	attr  slog.Attr
	group string
}

// Handler is a human-readable, colored slog.Handler. The "stack" attribute, if any, is printed
// on its own lines after the record.
type Handler struct {
	we  io.Writer
	wo  io.Writer
	lvl slog.Leveler
	goa []groupOrAttr
}

// New returns a Handler writing records at or above lvl. Records below the error level go to wo,
// the others to we. Writes are serialized.
func New(wo, we io.Writer, lvl slog.Leveler) *Handler {
	return &Handler{
		wo:  &lockedWriter{w: wo},
		we:  &lockedWriter{w: we},
		lvl: lvl,
	}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl.Level()
}

func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	bufp := logBufPool.Get().(*[]byte)
	buf := *bufp

	defer func() {
		*bufp = buf
		freeBuf(bufp)
	}()

	buf = append(buf, "[THRUST] "...)

	if !record.Time.IsZero() {
		buf = append(buf, ansi.Faint...)
		buf = append(buf, record.Time.Format(timeFormat)...)
		buf = append(buf, ansi.NormalIntensity...)
		buf = append(buf, ' ')
	}

	buf = append(buf, "| "...)
	buf = appendLevel(buf, record.Level)
	buf = append(buf, ansi.Reset...)
	buf = append(buf, " | "...)

	if record.Message == "unknown" {
		// The remote address could not be determined.
		buf = append(buf, ansi.FgRed...)
		buf = append(buf, record.Message...)
		buf = append(buf, ansi.Reset...)
	} else {
		buf = append(buf, record.Message...)
	}
	buf = append(buf, " | "...)

	var stack string
	prefix := ""
	for _, goa := range h.goa {
		if goa.group != "" {
			prefix += goa.group + "."
			continue
		}
		attr := goa.attr
		attr.Key = prefix + attr.Key
		buf = appendAttr(record.Level, buf, attr)
	}

	record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == "stack" {
			stack = attr.Value.String()
			return true
		}
		attr.Key = prefix + attr.Key
		buf = appendAttr(record.Level, buf, attr)
		return true
	})

	// Replace the latest space by an EOL.
	buf[len(buf)-1] = '\n'
	if stack != "" {
		buf = append(buf, ansi.Faint...)
		buf = append(buf, stack...)
		buf = append(buf, ansi.Reset...)
		if stack[len(stack)-1] != '\n' {
			buf = append(buf, '\n')
		}
	}

	w := h.wo
	if record.Level >= slog.LevelError {
		w = h.we
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("failed to write buffer: %w", err)
	}
	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	goa := make([]groupOrAttr, 0, len(h.goa)+len(attrs))
	goa = append(goa, h.goa...)
	for _, attr := range attrs {
		goa = append(goa, groupOrAttr{attr: attr})
	}
	return &Handler{we: h.we, wo: h.wo, lvl: h.lvl, goa: goa}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	goa := make([]groupOrAttr, 0, len(h.goa)+1)
	goa = append(goa, h.goa...)
	goa = append(goa, groupOrAttr{group: name})
	return &Handler{we: h.we, wo: h.wo, lvl: h.lvl, goa: goa}
}

// appendLevel writes the level with its color, right padded to the longest level name.
func appendLevel(buf []byte, level slog.Level) []byte {
	switch {
	case level >= slog.LevelError:
		buf = append(buf, ansi.FgRed...)
	case level >= slog.LevelWarn:
		buf = append(buf, ansi.FgYellow...)
	case level >= slog.LevelInfo:
		buf = append(buf, ansi.FgGreen...)
	default:
		buf = append(buf, ansi.FgMagenta...)
	}
	s := level.String()
	buf = append(buf, s...)
	for i := len(s); i < 5; i++ {
		buf = append(buf, ' ')
	}
	return buf
}

// appendAttr appends the attribute to the buffer.
func appendAttr(level slog.Level, buf []byte, attr slog.Attr) []byte {
	attr.Value = attr.Value.Resolve()

	if attr.Equal(slog.Attr{}) {
		return buf
	}

	buf = append(buf, ansi.Faint...)
	buf = append(buf, ansi.Bold...)
	buf = append(buf, attr.Key...)
	buf = append(buf, '=')
	buf = append(buf, ansi.NormalIntensity...)

	padded := false
	switch attr.Key {
	case "method":
		buf = append(buf, ansi.BgBlue...)
		padded = true
	case "status":
		buf = append(buf, levelColor(level)...)
		padded = true
	case "location":
		buf = append(buf, ansi.FgYellow...)
	case "latency":
		buf = append(buf, latencyColor(attr.Value.Duration())...)
	case "error":
		buf = append(buf, ansi.FgRed...)
	default:
		buf = append(buf, ansi.FgCyan...)
	}

	if padded {
		buf = append(buf, ' ')
		buf = append(buf, attr.Value.String()...)
		buf = append(buf, ' ')
	} else {
		buf = append(buf, attr.Value.String()...)
	}
	buf = append(buf, ansi.Reset...)
	buf = append(buf, ' ')

	return buf
}

type lockedWriter struct {
	w io.Writer
	sync.Mutex
}

func (w *lockedWriter) Write(p []byte) (n int, err error) {
	w.Lock()
	n, err = w.w.Write(p)
	w.Unlock()
	return
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return ansi.BgRed
	case level >= slog.LevelWarn:
		return ansi.BgYellow
	case level >= slog.LevelInfo:
		return ansi.BgBlue
	default:
		return ansi.BgMagenta
	}
}

func latencyColor(d time.Duration) string {
	if d < 100*time.Millisecond {
		return ansi.FgGreen
	}
	if d < 500*time.Millisecond {
		return ansi.FgYellow
	}
	return ansi.FgRed
}
