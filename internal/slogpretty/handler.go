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

	"github.com/tigerwill90/trie/internal/ansi"
)

var _ slog.Handler = (*Handler)(nil)

// DefaultHandler reports info and above, errors on stderr and everything else on stdout.
var DefaultHandler = New(&lockedWriter{w: os.Stdout}, &lockedWriter{w: os.Stderr}, slog.LevelInfo)

var timeFormat = fmt.Sprintf("%s %s", time.DateOnly, time.TimeOnly)

// Handler renders trie diagnostics as single colored lines:
//
//	[TRIE] 2024-06-26 00:00:00 | WARN  | overriding route | pattern=/users/:id previous=/users/:id
type Handler struct {
	out   io.Writer
	err   io.Writer
	level slog.Leveler
	// Attrs added with WithAttrs, keys already qualified by their group.
	attrs  []slog.Attr
	prefix string
}

// New returns a Handler writing records below slog.LevelError to out and the others to err.
func New(out, err io.Writer, level slog.Leveler) *Handler {
	return &Handler{out: out, err: err, level: level}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	buf := make([]byte, 0, 256)
	buf = append(buf, "[TRIE] "...)

	if !record.Time.IsZero() {
		buf = append(buf, ansi.Faint...)
		buf = record.Time.AppendFormat(buf, timeFormat)
		buf = append(buf, ansi.NormalIntensity...)
		buf = append(buf, ' ')
	}

	lvl := record.Level.String()
	buf = append(buf, "| "...)
	buf = append(buf, levelColor(record.Level)...)
	buf = fmt.Appendf(buf, "%-5s", lvl)
	buf = append(buf, ansi.Reset...)
	buf = append(buf, " | "...)
	buf = append(buf, record.Message...)
	buf = append(buf, " |"...)

	for _, attr := range h.attrs {
		buf = appendAttr(buf, attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		attr.Key = h.prefix + attr.Key
		buf = appendAttr(buf, attr)
		return true
	})
	buf = append(buf, '\n')

	w := h.out
	if record.Level >= slog.LevelError {
		w = h.err
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("failed to write log record: %w", err)
	}
	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	nh.attrs = append(nh.attrs, h.attrs...)
	for _, attr := range attrs {
		attr.Key = h.prefix + attr.Key
		nh.attrs = append(nh.attrs, attr)
	}
	return &nh
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	nh.prefix = h.prefix + name + "."
	return &nh
}

func appendAttr(buf []byte, attr slog.Attr) []byte {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return buf
	}

	buf = append(buf, ' ')
	buf = append(buf, ansi.Faint...)
	buf = append(buf, ansi.Bold...)
	buf = append(buf, attr.Key...)
	buf = append(buf, '=')
	buf = append(buf, ansi.NormalIntensity...)

	switch attr.Key {
	case "pattern":
		buf = append(buf, ansi.FgGreen...)
	case "previous":
		buf = append(buf, ansi.FgYellow...)
	case "error":
		buf = append(buf, ansi.FgRed...)
	default:
		buf = append(buf, ansi.FgCyan...)
	}

	buf = append(buf, attr.Value.String()...)
	return append(buf, ansi.Reset...)
}

type lockedWriter struct {
	w  io.Writer
	mu sync.Mutex
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.w.Write(p)
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return ansi.FgRed
	case level >= slog.LevelWarn:
		return ansi.FgYellow
	case level >= slog.LevelInfo:
		return ansi.FgGreen
	default:
		return ansi.FgMagenta
	}
}
