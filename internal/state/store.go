package state

import (
	"sync"
	"time"
)

// Listener observes committed aggregates. Listeners must treat the
// state as read-only and must not mutate the store from inside the
// callback; further mutations are scheduled as separate dispatches.
type Listener func(*GameState)

// Store is the observable container owning the match aggregate. One
// store exists per session, constructed by the composition root and
// passed down explicitly.
type Store struct {
	mu    sync.Mutex
	state *GameState
	subs  []*subscription
}

type subscription struct {
	fn Listener
}

// NewStore wraps an initial aggregate.
func NewStore(initial *GameState) *Store {
	return &Store{state: initial}
}

// Get returns the current aggregate. Callers must not mutate it.
func (st *Store) Get() *GameState {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state
}

// Set replaces the aggregate wholesale. A value reference-equal to
// the current state is a no-op; otherwise every current subscriber is
// notified synchronously, in registration order, before Set returns.
func (st *Store) Set(next *GameState) {
	st.mu.Lock()
	if next == st.state {
		st.mu.Unlock()
		return
	}
	st.state = next
	listeners := st.snapshotLocked()
	st.mu.Unlock()

	for _, l := range listeners {
		l.fn(next)
	}
}

// Patch commits a mutation against a deep copy of the current state,
// bumping Revision and UpdatedAt. The copy guarantees the previous
// aggregate stays immutable for readers that captured it.
func (st *Store) Patch(mutate func(*GameState)) {
	st.mu.Lock()
	next := st.state.Clone()
	st.mu.Unlock()

	mutate(next)
	next.Revision++
	next.UpdatedAt = time.Now().UnixMilli()
	st.Set(next)
}

// Subscribe registers a listener and immediately replays the current
// state to it, so late subscribers never miss the current snapshot.
// The returned function unsubscribes.
func (st *Store) Subscribe(fn Listener) func() {
	sub := &subscription{fn: fn}

	st.mu.Lock()
	st.subs = append(st.subs, sub)
	current := st.state
	st.mu.Unlock()

	fn(current)

	return func() {
		st.mu.Lock()
		defer st.mu.Unlock()
		for i, s := range st.subs {
			if s == sub {
				st.subs = append(st.subs[:i], st.subs[i+1:]...)
				return
			}
		}
	}
}

func (st *Store) snapshotLocked() []*subscription {
	out := make([]*subscription, len(st.subs))
	copy(out, st.subs)
	return out
}
