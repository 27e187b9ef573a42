// internal/query/cache.go
package query

import (
	"context"
	"net/url"
	"sync"
)

// Cache is the shared, tag-invalidated store of query results. Keys are
// derived from a query definition's name plus its canonically encoded
// parameters, so two subscriptions with semantically identical params
// resolve to the same entry. At most one fetch is in flight per key;
// concurrent subscribers share it.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	baseCtx context.Context
}

type entry struct {
	def    Definition
	params url.Values

	status Status
	data   any
	err    error

	// gen increments on every fetch start; a completing fetch is
	// applied only if its generation is still current (most-recent-wins).
	gen      uint64
	inflight bool
	stale    bool

	subs    map[int]chan Result
	nextSub int
}

// NewCache creates an empty cache. Fetches inherit ctx, so cancelling
// it stops all background activity.
func NewCache(ctx context.Context) *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		baseCtx: ctx,
	}
}

// Subscription is one observer of a cache entry. Updates delivers
// result snapshots; the channel conflates, so a slow reader always
// sees the latest state rather than a backlog.
type Subscription struct {
	cache  *Cache
	key    string
	id     int
	ch     chan Result
	closed bool
}

// Updates returns the stream of result snapshots for this subscription.
func (s *Subscription) Updates() <-chan Result {
	return s.ch
}

// Current returns the entry's state at this moment.
func (s *Subscription) Current() Result {
	s.cache.mu.Lock()
	defer s.cache.mu.Unlock()
	e, ok := s.cache.entries[s.key]
	if !ok {
		return Result{Status: StatusIdle}
	}
	return e.result()
}

// Close detaches the subscription. The entry and its data are retained
// for fast re-subscription, but no refetch happens while unobserved.
func (s *Subscription) Close() {
	s.cache.mu.Lock()
	defer s.cache.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if e, ok := s.cache.entries[s.key]; ok {
		delete(e.subs, s.id)
	}
}

func key(def Definition, params url.Values) string {
	// url.Values.Encode sorts by key, giving an order-stable encoding.
	return def.Name + "?" + params.Encode()
}

// Subscribe attaches an observer to the entry for (def, params),
// creating it and starting a fetch on first use. A stale entry (marked
// by an invalidation that found no subscribers) refetches now, and so
// does an entry whose last fetch failed: errors are never replayed to
// a new subscriber as if they were cached values.
func (c *Cache) Subscribe(def Definition, params url.Values) *Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := key(def, params)
	e, ok := c.entries[k]
	if !ok {
		e = &entry{
			def:    def,
			params: cloneValues(params),
			subs:   make(map[int]chan Result),
		}
		c.entries[k] = e
	}

	sub := &Subscription{
		cache: c,
		key:   k,
		id:    e.nextSub,
		ch:    make(chan Result, 1),
	}
	e.subs[sub.id] = sub.ch
	e.nextSub++

	if e.stale || (!e.inflight && (e.status == StatusIdle || e.status == StatusError)) {
		c.startFetch(e)
	} else {
		push(sub.ch, e.result())
	}
	return sub
}

// Invalidate marks every entry providing any of the given tags as
// stale. Entries with at least one subscriber refetch immediately;
// unobserved entries defer the refetch to their next subscription.
func (c *Cache) Invalidate(tags ...Tag) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		if !e.def.provides(tags) {
			continue
		}
		e.stale = true
		if len(e.subs) > 0 {
			c.startFetch(e)
		}
	}
}

// startFetch launches a fetch for e. Caller must hold c.mu. Starting a
// new fetch bumps the generation, so a previous in-flight fetch for the
// same key is discarded when it completes.
func (c *Cache) startFetch(e *entry) {
	e.gen++
	gen := e.gen
	e.inflight = true
	e.stale = false
	e.status = StatusLoading
	e.broadcast()

	go func() {
		data, err := e.def.Fetch(c.baseCtx, e.params)

		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != e.gen {
			// Superseded by a later fetch; drop this result.
			return
		}
		e.inflight = false
		if err != nil {
			e.status = StatusError
			e.err = err
		} else {
			e.status = StatusSuccess
			e.data = data
			e.err = nil
		}
		e.broadcast()
	}()
}

func (e *entry) result() Result {
	r := Result{Status: e.status}
	switch e.status {
	case StatusSuccess:
		r.Data = e.data
	case StatusLoading:
		// Keep last-good data visible while a refetch runs.
		r.Data = e.data
	case StatusError:
		r.Err = e.err
	}
	return r
}

func (e *entry) broadcast() {
	r := e.result()
	for _, ch := range e.subs {
		push(ch, r)
	}
}

// push conflates: an unread older snapshot is replaced by the new one.
func push(ch chan Result, r Result) {
	for {
		select {
		case ch <- r:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
