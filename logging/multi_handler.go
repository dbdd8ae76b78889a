package logging

import (
	"context"
	"log/slog"
	"sync"
)

// MultiHandler fans every record out to all wrapped handlers, typically
// the console handler plus the sqlite handler.
type MultiHandler struct {
	mu       *sync.Mutex
	handlers []slog.Handler
}

func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers, mu: &sync.Mutex{}}
}

func (h *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return true
}

func (h *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, destHandler := range h.handlers {
		if err := destHandler.Handle(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (h *MultiHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.handlers = make([]slog.Handler, len(h.handlers))
	for i, inner := range h.handlers {
		h2.handlers[i] = inner.WithGroup(name)
	}
	return &h2
}

func (h *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	h2.handlers = make([]slog.Handler, len(h.handlers))
	for i, inner := range h.handlers {
		h2.handlers[i] = inner.WithAttrs(attrs)
	}
	return &h2
}
