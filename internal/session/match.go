package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/a2m-m/CurtainCall-sub000/engine"
	"github.com/a2m-m/CurtainCall-sub000/internal/persist"
	"github.com/a2m-m/CurtainCall-sub000/internal/state"
)

// StartOptions configures StartMatch. A nil Seed deals from the
// clock; a set Seed reproduces the deal exactly and is recorded in
// the match metadata.
type StartOptions struct {
	Seed  *int64
	Names map[string]string
}

// StartMatch deals a fresh match and moves it to standby. Lumina
// always opens; the standby screen hands the device over through the
// scout gate.
func (s *Session) StartMatch(opts StartOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.store.Get()
	if err := s.requirePhase(cur, "start_match", state.PhaseHome, state.PhaseCurtainCall); err != nil {
		return err
	}

	seed := time.Now().UnixNano()
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	deal, err := engine.DealInitialSetup(engine.DealOptions{
		PlayerOrder: []string{engine.PlayerLumina, engine.PlayerNox},
		Rules:       s.rules,
		Rand:        engine.SeededSource(seed),
	})
	if err != nil {
		s.log.WithError(err).Error("start_match: deal aborted")
		return err
	}

	names := opts.Names
	if names == nil {
		names = s.names
	}
	next := state.NewMatch(uuid.NewString(), names)
	next.Phase = state.PhaseStandby
	next.Route = state.PhaseRoute(state.PhaseStandby)
	next.FirstPlayer = engine.PlayerLumina
	next.ActivePlayer = engine.PlayerLumina
	next.Turn = state.TurnState{Count: 1}
	next.Set.Cards = deal.Set
	next.Meta.Composition = state.Composition{
		DeckSize: len(deal.Deck),
		SetSize:  len(deal.Set),
		HandSize: len(deal.Hands[engine.PlayerLumina]),
	}
	next.Meta.Seed = opts.Seed
	for id, hand := range deal.Hands {
		next.Player(id).Hand = state.HandState{Cards: hand, Capacity: len(hand)}
	}
	state.AppendHistory(next, state.HistorySetup, "", map[string]any{
		"deckSize": len(deal.Deck),
		"setSize":  len(deal.Set),
	})
	state.AppendHistory(next, state.HistoryStandby, next.FirstPlayer, nil)

	s.pacer.stop()
	s.store.Set(next)
	s.router.SetGuard(true)
	s.router.Navigate(state.PhaseRoute(state.PhaseStandby))
	s.log.WithFields(logrus.Fields{
		"match": next.MatchID,
		"first": next.FirstPlayer,
	}).Info("match started")
	return nil
}

// ConfirmHandoff confirms the pending hand-off gate, completing the
// navigation it intercepted.
func (s *Session) ConfirmHandoff() error {
	return s.router.Confirm()
}

// Resume restores the latest save. It must be dispatched from the
// resume gate; the restored route re-gates itself when it carries
// secrets, so resuming never skips a hand-off confirmation.
func (s *Session) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	loaded, err := s.saver.Load(persist.LoadOptions{CurrentRoute: s.router.Current()})
	if err != nil {
		return err
	}
	if loaded == nil {
		return ErrNoSave
	}

	s.store.Set(loaded)
	s.router.SetGuard(true)
	s.router.Navigate(realRoute(loaded.Route))
	s.log.WithFields(logrus.Fields{
		"match": loaded.MatchID,
		"phase": loaded.Phase,
	}).Info("match resumed")
	return nil
}

// OpenResumeGate navigates to the resume gate route, the only place
// Resume may be dispatched from.
func (s *Session) OpenResumeGate() {
	s.router.Navigate(persist.ResumeGateRoute)
}

// AbandonMatch discards the running match and its save and returns
// to home.
func (s *Session) AbandonMatch() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.store.Get()
	if cur.Phase == state.PhaseHome {
		return s.requirePhase(cur, "abandon_match")
	}

	s.pacer.stop()
	s.saver.Clear()
	s.router.SetGuard(false)
	s.store.Set(state.NewMatch(uuid.NewString(), s.names))
	s.router.Navigate(state.PhaseRoute(state.PhaseHome))
	s.log.WithField("match", cur.MatchID).Info("match abandoned")
	return nil
}
