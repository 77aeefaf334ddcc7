package tracked

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Realm is one isolated reactivity universe: an identity registry, the
// annotation marks, the per-container dependency tables, the effect stack
// and the instrumentation hooks. Views created by one realm are plain values
// to every other realm.
type Realm struct {
	id string

	wrapMu   sync.Mutex
	registry *identityRegistry
	marks    marks
	slots    *slotTable

	depMu sync.Mutex
	stack []*Effect

	tags *identMap
	pool *subscriberPool

	logger    Logger
	metrics   MetricsCollector
	inspector Inspector
	scheduler func(run func())
	journal   *Journal

	seq atomic.Uint64
}

// Option is a modifier for realms
type Option func(*Realm)

// WithLogger returns an option that routes diagnostics to l.
func WithLogger(l Logger) Option {
	return func(r *Realm) {
		r.logger = l
	}
}

// WithMetrics returns an option that records measurements through m.
func WithMetrics(m MetricsCollector) Option {
	return func(r *Realm) {
		r.metrics = m
	}
}

// WithInspector returns an option that registers lifecycle callbacks.
func WithInspector(i Inspector) Option {
	return func(r *Realm) {
		r.inspector = i
	}
}

// WithJournal returns an option that keeps a bounded in-memory history of
// committed changes, readable through Realm.Journal.
func WithJournal(limit int) Option {
	return func(r *Realm) {
		r.journal = newJournal(limit, &r.seq)
	}
}

// WithScheduler returns an option that hands effect re-runs to submit
// instead of running them inline on the triggering call stack. Initial
// effect runs still happen inline inside Watch.
func WithScheduler(submit func(run func())) Option {
	return func(r *Realm) {
		r.scheduler = submit
	}
}

// New creates a realm with optional configuration.
func New(opts ...Option) *Realm {
	r := &Realm{
		id:       uuid.NewString(),
		registry: newIdentityRegistry(),
		marks:    newMarks(),
		slots:    newSlotTable(),
		tags:     newIdentMap(),
		pool:     newSubscriberPool(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// ID returns the realm's unique identifier.
func (r *Realm) ID() string { return r.id }

// Log returns the realm's logger, nil when none is configured.
func (r *Realm) Log() Logger { return r.logger }

// Journal returns the realm's change journal, nil unless enabled with
// WithJournal.
func (r *Realm) Journal() *Journal { return r.journal }

var defaultRealm = New()

// Default returns the package-level realm backing the top-level functions.
func Default() *Realm { return defaultRealm }

// Mutable returns the mutable view of v in the default realm.
func Mutable(v any) any { return defaultRealm.Mutable(v) }

// Readonly returns the readonly view of v in the default realm.
func Readonly(v any) any { return defaultRealm.Readonly(v) }

// Unwrap returns the container behind a default-realm view, or v unchanged.
func Unwrap(v any) any { return defaultRealm.Unwrap(v) }

// IsTracked reports whether v is a default-realm view.
func IsTracked(v any) bool { return defaultRealm.IsTracked(v) }

// IsReadonly reports whether v is a default-realm readonly view.
func IsReadonly(v any) bool { return defaultRealm.IsReadonly(v) }

// MarkReadonly marks v in the default realm. See Realm.MarkReadonly.
func MarkReadonly(v any) any { return defaultRealm.MarkReadonly(v) }

// MarkUntracked marks v in the default realm. See Realm.MarkUntracked.
func MarkUntracked(v any) any { return defaultRealm.MarkUntracked(v) }

// Watch runs fn as an effect in the default realm. See Realm.Watch.
func Watch(fn func(), opts ...EffectOption) *Effect { return defaultRealm.Watch(fn, opts...) }

// NewComputed creates a computed value in the default realm.
func NewComputed(fn func() any) *Computed { return defaultRealm.Computed(fn) }
