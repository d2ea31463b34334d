package multievent

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"
)

const bracketTimeFormat = "2006/01/02 15:04:05"

// BracketHandler writes one line per record:
//
//	[2025/01/22 10:53:11] [INFO] [reader] Read 1200 events in 410 groups
//
// Attribute values are bracketed in order and their keys are dropped, so the
// "module" attribute of Logger.Info becomes the tag in front of the message.
// Attributes added with WithAttrs come before the record's own.
type BracketHandler struct {
	level  slog.Leveler
	mu     *sync.Mutex
	out    io.Writer
	prefix []byte
}

func NewBracketHandler(out io.Writer, opts *slog.HandlerOptions) *BracketHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &BracketHandler{level: level, mu: &sync.Mutex{}, out: out}
}

func (h *BracketHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *BracketHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	prefix := bytes.Clone(h.prefix)
	for _, a := range attrs {
		prefix = appendBracketed(prefix, a.Value)
	}
	return &BracketHandler{level: h.level, mu: h.mu, out: h.out, prefix: prefix}
}

// WithGroup is a no-op: keys are never printed, so groups do not show.
func (h *BracketHandler) WithGroup(string) slog.Handler {
	return h
}

func (h *BracketHandler) Handle(_ context.Context, r slog.Record) error {
	buf := make([]byte, 0, 128)
	buf = append(buf, '[')
	buf = r.Time.AppendFormat(buf, bracketTimeFormat)
	buf = append(buf, "] ["...)
	buf = append(buf, r.Level.String()...)
	buf = append(buf, "] "...)
	buf = append(buf, h.prefix...)
	r.Attrs(func(a slog.Attr) bool {
		buf = appendBracketed(buf, a.Value)
		return true
	})
	buf = append(buf, r.Message...)
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf)
	return err
}

func appendBracketed(buf []byte, v slog.Value) []byte {
	buf = append(buf, '[')
	buf = append(buf, v.Resolve().String()...)
	return append(buf, "] "...)
}
