package engine

import (
	"errors"
	"fmt"
	"sync"
)

// Well-known rank rule ids.
const (
	RuleStandard = "standard"
	RuleCustom   = "custom"
)

// ErrUnknownRule is returned when activating a rule id that was never
// registered.
var ErrUnknownRule = errors.New("unknown rank rule")

// ResolverFunc maps a rank symbol to its numeric point value.
type ResolverFunc func(Rank) int

// StandardValue is the default rank valuation: A=1 through 10=10,
// J=11, Q=12, K=13, JOKER=0. Unknown symbols resolve to 0.
func StandardValue(r Rank) int {
	switch r {
	case RankAce:
		return 1
	case RankTwo:
		return 2
	case RankThree:
		return 3
	case RankFour:
		return 4
	case RankFive:
		return 5
	case RankSix:
		return 6
	case RankSeven:
		return 7
	case RankEight:
		return 8
	case RankNine:
		return 9
	case RankTen:
		return 10
	case RankJack:
		return 11
	case RankQueen:
		return 12
	case RankKing:
		return 13
	case RankJoker:
		return 0
	}
	return 0
}

// Rules is a registry of rank valuation rules with one active
// selection. It is an explicitly constructed value owned by the
// composition root, not a package-level mutable global, so tests can
// hold isolated instances.
type Rules struct {
	mu    sync.RWMutex
	funcs map[string]ResolverFunc
	order []string
	activ string
}

// NewRules returns a registry seeded with the standard rule, active.
func NewRules() *Rules {
	r := &Rules{funcs: make(map[string]ResolverFunc)}
	r.Register(RuleStandard, StandardValue)
	r.activ = RuleStandard
	return r
}

// Register adds or replaces a rule under the given id. Registering
// does not activate the rule.
func (r *Rules) Register(id string, fn ResolverFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.funcs[id]; !exists {
		r.order = append(r.order, id)
	}
	r.funcs[id] = fn
}

// SetActive makes the given rule the one used by Resolve. Activating
// an unregistered id fails with ErrUnknownRule and leaves the current
// selection untouched.
func (r *Rules) SetActive(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.funcs[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRule, id)
	}
	r.activ = id
	return nil
}

// Active returns the id of the currently active rule.
func (r *Rules) Active() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.activ
}

// List returns all registered rule ids in registration order.
func (r *Rules) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Resolve maps a rank to its value under the active rule. Changing
// the active rule affects subsequent Resolve calls only; Card.Value
// snapshots taken at deck build time are immutable.
func (r *Rules) Resolve(rank Rank) int {
	r.mu.RLock()
	fn := r.funcs[r.activ]
	r.mu.RUnlock()
	return fn(rank)
}

// CustomTable builds a ResolverFunc from an override table. Ranks
// missing from the table fall back to the standard valuation.
func CustomTable(values map[Rank]int) ResolverFunc {
	table := make(map[Rank]int, len(values))
	for k, v := range values {
		table[k] = v
	}
	return func(r Rank) int {
		if v, ok := table[r]; ok {
			return v
		}
		return StandardValue(r)
	}
}
