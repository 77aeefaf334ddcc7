package extensions

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	tracked "github.com/pumped-fn/tracked-go"
)

// TraceInspector logs every created view and every committed change.
//
// Usage:
//
//	// Human-readable formatted output
//	insp := extensions.NewTraceInspector(extensions.NewHumanHandler(os.Stdout, slog.LevelDebug))
//
//	// Structured JSON logging
//	insp := extensions.NewTraceInspector(slog.NewJSONHandler(os.Stdout, nil))
//
//	// Silent (for testing)
//	insp := extensions.NewTraceInspector(extensions.NewSilentHandler())
//
//	realm := tracked.New(tracked.WithInspector(insp))
type TraceInspector struct {
	tracked.BaseInspector
	logger *slog.Logger
}

// NewTraceInspector creates a tracing inspector over logHandler.
func NewTraceInspector(logHandler slog.Handler) *TraceInspector {
	return &TraceInspector{logger: slog.New(logHandler)}
}

// OnWrap logs one created view at debug level.
func (i *TraceInspector) OnWrap(kind tracked.Kind, access tracked.WrapKind) {
	i.logger.Debug("view created",
		"kind", string(kind),
		"access", string(access),
	)
}

// OnChange logs one committed change at info level.
func (i *TraceInspector) OnChange(change tracked.Change, subscribers int) {
	i.logger.Info("change committed",
		"op", string(change.Op),
		"kind", string(change.Target.Kind()),
		"key", keyString(change.Key),
		"subscribers", subscribers,
	)
}

var _ tracked.Inspector = (*TraceInspector)(nil)

// SilentHandler is a slog.Handler that discards all log output.
// Useful for testing when you don't want log output.
type SilentHandler struct{}

// NewSilentHandler creates a new silent log handler.
func NewSilentHandler() *SilentHandler {
	return &SilentHandler{}
}

func (h *SilentHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return false
}

func (h *SilentHandler) Handle(ctx context.Context, record slog.Record) error {
	return nil
}

func (h *SilentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

func (h *SilentHandler) WithGroup(name string) slog.Handler {
	return h
}

// HumanHandler is a slog.Handler that formats records for human readability,
// one line for the message and one indented line per attribute.
type HumanHandler struct {
	writer io.Writer
	level  slog.Level
}

// NewHumanHandler creates a new human-readable log handler.
func NewHumanHandler(writer io.Writer, level slog.Level) *HumanHandler {
	return &HumanHandler{
		writer: writer,
		level:  level,
	}
}

func (h *HumanHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *HumanHandler) Handle(ctx context.Context, record slog.Record) error {
	if _, err := fmt.Fprintf(h.writer, "[%s] %s\n", record.Level, record.Message); err != nil {
		return err
	}
	var writeErr error
	record.Attrs(func(a slog.Attr) bool {
		if _, err := fmt.Fprintf(h.writer, "  %s: %v\n", a.Key, a.Value); err != nil {
			writeErr = err
			return false
		}
		return true
	})
	return writeErr
}

func (h *HumanHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	// For simplicity, return self (could create new handler with attrs if needed)
	return h
}

func (h *HumanHandler) WithGroup(name string) slog.Handler {
	// For simplicity, return self (could create new handler with group if needed)
	return h
}
