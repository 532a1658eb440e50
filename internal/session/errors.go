package session

import "errors"

// Dispatch rejection sentinels. A rejected dispatch is a view-layer
// mistake (wrong button enabled, stale snapshot), so it is logged and
// returned, never panicked on.
var (
	ErrWrongPhase  = errors.New("dispatch not valid in current phase")
	ErrNotInHand   = errors.New("card not in hand")
	ErrSameCard    = errors.New("actor and kuroko must be different cards")
	ErrNoWatchPair = errors.New("no complete stage pair to judge")
	ErrNoSetCards  = errors.New("set pile is exhausted")
	ErrNoSave      = errors.New("no resumable save")
)
