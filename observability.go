package tracked

import (
	"fmt"
	"time"
)

// Metric names emitted through MetricsCollector.
const (
	MetricWrapsCreated     = "tracked_wraps_total"
	MetricMisuse           = "tracked_misuse_total"
	MetricReadonlyRejects  = "tracked_readonly_rejects_total"
	MetricTriggers         = "tracked_triggers_total"
	MetricEffectRuns       = "tracked_effect_runs_total"
	MetricEffectRunSeconds = "tracked_effect_run_seconds"
)

// Logger interface for diagnostics: misuse warnings, readonly write
// rejections, and wrap lifecycle events. A nil logger silences all of them.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// MetricsCollector interface for collecting wrap, trigger and effect
// measurements. Implementations must be safe for concurrent use.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// Inspector receives lifecycle callbacks from a realm. Implementations must
// not mutate tracked state from inside a callback; they run synchronously on
// the wrapping or triggering call stack.
type Inspector interface {
	// OnWrap is called once per created view.
	OnWrap(kind Kind, access WrapKind)
	// OnChange is called once per committed mutation, with the number of
	// subscribers that will be notified.
	OnChange(change Change, subscribers int)
}

// BaseInspector is a no-op Inspector for embedding, so implementations only
// override the callbacks they care about.
type BaseInspector struct{}

func (BaseInspector) OnWrap(Kind, WrapKind) {}
func (BaseInspector) OnChange(Change, int)  {}

var _ Inspector = BaseInspector{}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}

func (r *Realm) logWarn(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}

func (r *Realm) logDebug(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}

func (r *Realm) count(metric string, labels map[string]string) {
	if r.metrics != nil {
		r.metrics.IncrementCounter(metric, labels)
	}
}

func (r *Realm) recordDuration(metric string, d time.Duration, labels map[string]string) {
	if r.metrics != nil {
		r.metrics.RecordDuration(metric, d, labels)
	}
}

// warnMisuse reports a non-fatal caller mistake, such as wrapping a scalar.
// Production realms run without a logger and stay silent; the call itself is
// always a no-op for the caller.
func (r *Realm) warnMisuse(op string, v any) {
	r.logWarn("value cannot be observed", "op", op, "type", typeName(v))
	r.count(MetricMisuse, map[string]string{"op": op})
}

// rejectWrite reports a write through a readonly view.
func (r *Realm) rejectWrite(raw Composite, op Op, key any) {
	r.logWarn("write rejected on readonly view",
		"op", string(op), "kind", string(raw.Kind()), "key", keyLabel(key))
	r.count(MetricReadonlyRejects, map[string]string{"op": string(op)})
}

// observeWrap records one created view.
func (r *Realm) observeWrap(view *proxy) {
	kind := view.target.Kind()
	r.logDebug("view created", "kind", string(kind), "access", string(view.access))
	r.count(MetricWrapsCreated, map[string]string{
		"kind":   string(kind),
		"access": string(view.access),
	})
	if r.inspector != nil {
		r.inspector.OnWrap(kind, view.access)
	}
}

// observeChange records one committed mutation.
func (r *Realm) observeChange(change Change, subscribers int) {
	r.count(MetricTriggers, map[string]string{
		"op":   string(change.Op),
		"kind": string(change.Target.Kind()),
	})
	if r.inspector != nil {
		r.inspector.OnChange(change, subscribers)
	}
	if r.journal != nil {
		r.journal.record(change, subscribers)
	}
}
