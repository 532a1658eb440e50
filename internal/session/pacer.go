package session

import (
	"sync"
	"time"
)

// pacer runs at most one delayed transition. Scheduling stops the
// previous timer first, so a superseded transition never fires late
// into a different phase.
type pacer struct {
	mu    sync.Mutex
	timer *time.Timer
}

// schedule runs fn after d. A non-positive d runs fn synchronously.
func (p *pacer) schedule(d time.Duration, fn func()) {
	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	if d <= 0 {
		p.mu.Unlock()
		fn()
		return
	}
	p.timer = time.AfterFunc(d, fn)
	p.mu.Unlock()
}

// stop cancels any scheduled transition.
func (p *pacer) stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}
