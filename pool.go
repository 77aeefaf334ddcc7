package tracked

import (
	"sync"
	"sync/atomic"
)

// subscriberPool recycles the fan-out buffers trigger uses to snapshot
// subscribers, keeping steady-state triggering allocation free.
type subscriberPool struct {
	pool sync.Pool

	gets atomic.Uint64
	puts atomic.Uint64
}

// PoolStats reports fan-out buffer reuse.
type PoolStats struct {
	Gets uint64
	Puts uint64
}

func newSubscriberPool() *subscriberPool {
	return &subscriberPool{
		pool: sync.Pool{
			New: func() any {
				buf := make([]Subscriber, 0, 8)
				return &buf
			},
		},
	}
}

func (p *subscriberPool) get() []Subscriber {
	p.gets.Add(1)
	buf := p.pool.Get().(*[]Subscriber)
	return (*buf)[:0]
}

func (p *subscriberPool) put(buf []Subscriber) {
	p.puts.Add(1)
	buf = buf[:0]
	p.pool.Put(&buf)
}

func (p *subscriberPool) stats() PoolStats {
	return PoolStats{Gets: p.gets.Load(), Puts: p.puts.Load()}
}

// PoolStats reports the realm's fan-out buffer reuse counters.
func (r *Realm) PoolStats() PoolStats {
	return r.pool.stats()
}
