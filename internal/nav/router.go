// Package nav models navigation as explicit messages into a router,
// and implements the hand-off gate protocol on top of it: a phase
// that carries secret information is split into a public "…/gate"
// route and the real phase route, and the real route is reachable
// only through the gate's confirm. The router consults the gate state
// machine synchronously on every transition, so a route change can
// never race a stale confirm handler.
package nav

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/a2m-m/CurtainCall-sub000/internal/state"
)

// ErrNoPendingGate is returned by Confirm when no gate is open.
var ErrNoPendingGate = errors.New("no pending hand-off gate")

// GateCopy is the public text a gate route renders: a hand-off
// message and optional markdown notes. It contains no secret state.
type GateCopy struct {
	Message string
	Notes   string
}

// GateInfo describes the currently pending gate to the view layer.
// There is deliberately no dismiss operation: the only ways out are
// Confirm and a route change.
type GateInfo struct {
	Message string
	Notes   string
	Route   state.Route // the gate route being shown
}

// pendingGate is the GatePending state of the gate machine.
type pendingGate struct {
	info    GateInfo
	confirm func()
}

// Router owns the current route, the secret-route registry and the
// gate state machine. All exported methods are safe for use from the
// single event loop; callbacks run outside the router lock.
type Router struct {
	mu      sync.Mutex
	log     *logrus.Entry
	current state.Route
	history []state.Route

	// real phase route -> its gate route, plus the gate's public copy.
	secret map[state.Route]state.Route
	copy   map[state.Route]GateCopy

	pending *pendingGate
	armed   state.Route // set by a gate confirm, consumed by one navigation
	guard   bool

	onChange      []*routeListener
	onBlockedBack func()
}

type routeListener struct {
	fn func(state.Route)
}

// NewRouter starts at the home route.
func NewRouter(log *logrus.Entry) *Router {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Router{
		log:     log,
		current: state.PhaseRoute(state.PhaseHome),
		secret:  make(map[state.Route]state.Route),
		copy:    make(map[state.Route]GateCopy),
	}
}

// RegisterSecretPhase registers both route forms for a secrecy-bearing
// phase and the public copy its gate shows. Navigating to the real
// route without a confirmed gate is rewritten to the gate route.
func (r *Router) RegisterSecretPhase(p state.Phase, gc GateCopy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	real := state.PhaseRoute(p)
	r.secret[real] = state.GateRoute(p)
	r.copy[real] = gc
}

// Current returns the current route.
func (r *Router) Current() state.Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// OnChange registers a route-change listener and returns an
// unsubscribe function.
func (r *Router) OnChange(fn func(state.Route)) func() {
	sub := &routeListener{fn: fn}
	r.mu.Lock()
	r.onChange = append(r.onChange, sub)
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, s := range r.onChange {
			if s == sub {
				r.onChange = append(r.onChange[:i], r.onChange[i+1:]...)
				return
			}
		}
	}
}

// SetBlockedBackNotice installs the hook fired when the back guard
// swallows a navigation attempt.
func (r *Router) SetBlockedBackNotice(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onBlockedBack = fn
}

// SetGuard enables or disables the back-navigation guard. It is held
// active for the whole duration of a match.
func (r *Router) SetGuard(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guard = active
}

// Navigate transitions to a route. Any pending gate is torn down
// first, without running its confirm callback. If the target is a
// registered secret route that was not armed by a gate confirm, the
// navigation is rewritten to the phase's gate route and a gate opens
// whose confirm performs the real navigation.
func (r *Router) Navigate(route state.Route) {
	r.mu.Lock()
	r.teardownLocked("navigation superseded")

	if gateRoute, isSecret := r.secret[route]; isSecret && route != r.armed {
		real := route
		info := GateInfo{
			Message: r.copy[real].Message,
			Notes:   r.copy[real].Notes,
			Route:   gateRoute,
		}
		r.pending = &pendingGate{
			info:    info,
			confirm: func() { r.navigateArmed(real) },
		}
		route = gateRoute
		r.log.WithFields(logrus.Fields{"route": real, "gate": gateRoute}).
			Debug("secret route intercepted by hand-off gate")
	}
	if route == r.armed {
		r.armed = ""
	}

	r.history = append(r.history, r.current)
	r.current = route
	listeners := r.listenersLocked()
	r.mu.Unlock()

	for _, l := range listeners {
		l.fn(route)
	}
}

// OpenGate opens a hand-off gate over the current route with a
// caller-supplied confirm action ("run the next game-state
// transition"). A gate already pending is torn down first; only one
// gate may be active at a time.
func (r *Router) OpenGate(gc GateCopy, onConfirm func()) {
	r.mu.Lock()
	r.teardownLocked("replaced by a newer gate")
	r.pending = &pendingGate{
		info:    GateInfo{Message: gc.Message, Notes: gc.Notes, Route: r.current},
		confirm: onConfirm,
	}
	r.mu.Unlock()
}

// Pending reports the open gate, if any.
func (r *Router) Pending() (GateInfo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending == nil {
		return GateInfo{}, false
	}
	return r.pending.info, true
}

// Confirm fires the pending gate's confirm action and tears the gate
// down. The callback runs after teardown, outside the router lock, so
// it may navigate.
func (r *Router) Confirm() error {
	r.mu.Lock()
	if r.pending == nil {
		r.mu.Unlock()
		return ErrNoPendingGate
	}
	confirm := r.pending.confirm
	r.pending = nil
	r.mu.Unlock()

	if confirm != nil {
		confirm()
	}
	return nil
}

// Back handles a history navigation attempt. While the guard is
// active the attempt is swallowed: the current route is re-asserted
// (which also cancels any pending gate, like any other route change)
// and the blocked-back notice fires. Without the guard it pops the
// route history.
func (r *Router) Back() {
	r.mu.Lock()
	if r.guard {
		r.teardownLocked("back navigation blocked")
		current := r.current
		listeners := r.listenersLocked()
		notice := r.onBlockedBack
		r.mu.Unlock()

		for _, l := range listeners {
			l.fn(current)
		}
		if notice != nil {
			notice()
		}
		return
	}

	if len(r.history) == 0 {
		r.mu.Unlock()
		return
	}
	prev := r.history[len(r.history)-1]
	r.history = r.history[:len(r.history)-1]
	r.mu.Unlock()
	r.Navigate(prev)
}

// teardownLocked cancels a pending gate without running its confirm.
func (r *Router) teardownLocked(reason string) {
	if r.pending == nil {
		return
	}
	r.log.WithFields(logrus.Fields{"gate": r.pending.info.Route, "reason": reason}).
		Debug("hand-off gate torn down")
	r.pending = nil
}

// navigateArmed arms the secret route so exactly one navigation to it
// passes the gate rewrite, then navigates.
func (r *Router) navigateArmed(route state.Route) {
	r.mu.Lock()
	r.armed = route
	r.mu.Unlock()
	r.Navigate(route)
}

func (r *Router) listenersLocked() []*routeListener {
	out := make([]*routeListener, len(r.onChange))
	copy(out, r.onChange)
	return out
}
