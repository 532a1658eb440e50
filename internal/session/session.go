// Package session is the composition root of a match: it owns the
// observable store, the router with its hand-off gates, and the
// persistence subscriber, and exposes the phase action dispatchers
// views call into. Dispatchers validate phase and actor before
// patching state; everything behind them is a pure data transform.
package session

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/a2m-m/CurtainCall-sub000/engine"
	"github.com/a2m-m/CurtainCall-sub000/internal/nav"
	"github.com/a2m-m/CurtainCall-sub000/internal/persist"
	"github.com/a2m-m/CurtainCall-sub000/internal/state"
)

// DefaultPacingDelay separates a watch resolution from the spotlight
// hand-off so the reveal is readable on a shared screen.
const DefaultPacingDelay = 700 * time.Millisecond

// Options configures New. Zero values select an in-memory storage,
// the standard rank rules and the default pacing delay.
type Options struct {
	Storage persist.Storage
	Log     *logrus.Entry
	Rules   *engine.Rules
	// PlayerNames maps player ids to display names.
	PlayerNames map[string]string
	// PacingDelay is the watch-to-spotlight pause. Negative disables
	// pacing entirely (transitions run synchronously).
	PacingDelay time.Duration
}

// Session wires store, router, saver and ledger together and
// serializes all dispatches behind one mutex, so state transitions
// never interleave even when views dispatch from timer callbacks.
type Session struct {
	mu     sync.Mutex
	log    *logrus.Entry
	rules  *engine.Rules
	store  *state.Store
	router *nav.Router
	saver  *persist.Saver
	ledger *persist.Ledger
	pacer  *pacer
	pacing time.Duration
	names  map[string]string
}

// New builds a session at the home phase with no match running.
func New(opts Options) *Session {
	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	storage := opts.Storage
	if storage == nil {
		storage = persist.NewMemoryStorage()
	}
	rules := opts.Rules
	if rules == nil {
		rules = engine.NewRules()
	}
	pacing := opts.PacingDelay
	if pacing == 0 {
		pacing = DefaultPacingDelay
	}

	s := &Session{
		log:    log,
		rules:  rules,
		store:  state.NewStore(state.NewMatch(uuid.NewString(), opts.PlayerNames)),
		router: nav.NewRouter(log),
		saver:  persist.NewSaver(storage, log),
		ledger: persist.NewLedger(storage, log),
		pacer:  &pacer{},
		pacing: pacing,
		names:  opts.PlayerNames,
	}

	// The device changes hands entering these phases, so their real
	// routes sit behind a gate. Action and spotlight continue with
	// the holder who already passed the previous gate.
	s.router.RegisterSecretPhase(state.PhaseScout, nav.GateCopy{
		Message: "Hand the device to the active player.",
		Notes:   "The next screen shows their hand.",
	})
	s.router.RegisterSecretPhase(state.PhaseWatch, nav.GateCopy{
		Message: "Hand the device to the watcher.",
		Notes:   "They judge the staged pair with a clap or a boo.",
	})
	s.router.RegisterSecretPhase(state.PhaseSpotlight, nav.GateCopy{
		Message: "Hand the device back for the spotlight reveal.",
	})

	s.router.OnChange(s.syncRoute)

	// Persistence rides the store subscription, so every committed
	// revision of a running match reaches storage in commit order.
	// The unstarted home aggregate is not worth resuming to.
	s.store.Subscribe(func(st *state.GameState) {
		if st.Phase == state.PhaseHome {
			return
		}
		s.saver.Save(st)
	})

	return s
}

// State returns the current aggregate. Callers must treat it as
// read-only; all mutation goes through dispatchers.
func (s *Session) State() *state.GameState {
	return s.store.Get()
}

// Subscribe registers a state listener with immediate replay and
// returns its unsubscribe function.
func (s *Session) Subscribe(fn state.Listener) func() {
	return s.store.Subscribe(fn)
}

// Router exposes navigation and the gate surface to views.
func (s *Session) Router() *nav.Router {
	return s.router
}

// Results returns the persisted result history, newest first.
func (s *Session) Results() []persist.ResultEntry {
	return s.ledger.List()
}

// DeleteResult removes one result-history entry.
func (s *Session) DeleteResult(id string) {
	s.ledger.Delete(id)
}

// HasSave reports whether a resumable save exists.
func (s *Session) HasSave() bool {
	return s.saver.HasLatestSave()
}

// SaveMetadata returns the latest save's derived metadata, or nil.
func (s *Session) SaveMetadata() *persist.SaveMeta {
	return s.saver.LatestSaveMetadata()
}

// syncRoute keeps the aggregate's route (and phase, for real phase
// routes) in step with the router. Gate routes update the route only.
func (s *Session) syncRoute(route state.Route) {
	if s.store.Get().Route == route {
		return
	}
	phase, real := phaseForRoute(route)
	s.store.Patch(func(st *state.GameState) {
		st.Route = route
		if real {
			st.Phase = phase
		}
	})
}

// phaseForRoute maps a real phase route back to its phase.
func phaseForRoute(route state.Route) (state.Phase, bool) {
	for _, p := range state.Phases {
		if state.PhaseRoute(p) == route {
			return p, true
		}
	}
	return "", false
}

// realRoute strips a gate suffix so a saved gate route resumes to the
// phase route, which the router re-gates on navigation.
func realRoute(route state.Route) state.Route {
	return state.Route(strings.TrimSuffix(string(route), "/gate"))
}

// requirePhase rejects a dispatch issued outside its phase.
func (s *Session) requirePhase(st *state.GameState, op string, want ...state.Phase) error {
	for _, p := range want {
		if st.Phase == p {
			return nil
		}
	}
	s.log.WithFields(logrus.Fields{
		"op":    op,
		"phase": st.Phase,
	}).Warn("dispatch rejected: wrong phase")
	return ErrWrongPhase
}
