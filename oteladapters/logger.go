// Package oteladapters provides OpenTelemetry adapters for the tracked
// observability interfaces, for users who want plug-and-play observability
// without implementing the interfaces themselves.
package oteladapters

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log"

	tracked "github.com/pumped-fn/tracked-go"
)

// SlogBridgeLogger implements tracked.Logger using the OpenTelemetry slog
// bridge. This is the recommended implementation: it works with Go's
// standard log/slog package and ships records through the global
// OpenTelemetry LoggerProvider.
type SlogBridgeLogger struct {
	logger *slog.Logger
}

// NewSlogBridgeLogger creates a logger named name backed by the global
// OpenTelemetry LoggerProvider.
func NewSlogBridgeLogger(name string) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: otelslog.NewLogger(name)}
}

// NewSlogBridgeLoggerWithHandler creates a logger over the provided
// slog.Handler as-is, without OpenTelemetry integration. Use
// NewSlogBridgeLogger for OpenTelemetry export.
func NewSlogBridgeLoggerWithHandler(handler slog.Handler) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: slog.New(handler)}
}

func (l *SlogBridgeLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

func (l *SlogBridgeLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l *SlogBridgeLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l *SlogBridgeLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// Ensure SlogBridgeLogger implements tracked.Logger.
var _ tracked.Logger = (*SlogBridgeLogger)(nil)

// OTelLogger implements tracked.Logger using the OpenTelemetry logging API
// directly. This provides more control over log record creation but requires
// manual setup of the logger.
type OTelLogger struct {
	logger log.Logger
}

// NewOTelLogger creates a logger that emits OpenTelemetry log records
// through logger.
func NewOTelLogger(logger log.Logger) *OTelLogger {
	return &OTelLogger{logger: logger}
}

func (l *OTelLogger) Debug(msg string, args ...any) {
	l.emit(log.SeverityDebug, msg, args...)
}

func (l *OTelLogger) Info(msg string, args ...any) {
	l.emit(log.SeverityInfo, msg, args...)
}

func (l *OTelLogger) Warn(msg string, args ...any) {
	l.emit(log.SeverityWarn, msg, args...)
}

func (l *OTelLogger) Error(msg string, args ...any) {
	l.emit(log.SeverityError, msg, args...)
}

// emit creates and emits a log record with the given severity. Args come in
// key-value pairs like slog.
func (l *OTelLogger) emit(severity log.Severity, msg string, args ...any) {
	record := log.Record{}
	record.SetSeverity(severity)
	record.SetBody(log.StringValue(msg))

	for i := 0; i+1 < len(args); i += 2 {
		if key, ok := args[i].(string); ok {
			record.AddAttributes(log.String(key, stringValue(args[i+1])))
		}
	}

	l.logger.Emit(context.Background(), record)
}

// stringValue converts any value to string for OpenTelemetry attributes.
func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return slog.AnyValue(v).String()
}

// Ensure OTelLogger implements tracked.Logger.
var _ tracked.Logger = (*OTelLogger)(nil)
