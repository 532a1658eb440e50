package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/a2m-m/CurtainCall-sub000/engine"
	"github.com/a2m-m/CurtainCall-sub000/internal/persist"
	"github.com/a2m-m/CurtainCall-sub000/internal/state"
)

// Watch declarations.
const (
	DeclarationClap = "clap"
	DeclarationBoo  = "boo"
)

// Scout takes one card from the opponent's hand into the active
// player's hand and records the scouter, then moves on to the action
// phase with the same device holder.
func (s *Session) Scout(cardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.store.Get()
	if err := s.requirePhase(cur, "scout", state.PhaseScout); err != nil {
		return err
	}
	active := cur.ActivePlayer
	opponent := engine.Opponent(active)
	if !handHolds(cur.Player(opponent), cardID) {
		s.log.WithFields(logrus.Fields{"card": cardID, "from": opponent}).
			Warn("scout rejected: card not in opponent hand")
		return fmt.Errorf("%w: %q", ErrNotInHand, cardID)
	}

	s.store.Patch(func(st *state.GameState) {
		taken := removeFromHand(st.Player(opponent), cardID)
		taken.FaceUp = false
		to := st.Player(active)
		to.Hand.Cards = append(to.Hand.Cards, taken)
		to.Hand.LastDrawnID = taken.ID
		st.Scout = state.ScoutScratch{TakenCardID: taken.ID}
		st.Turn.LastScoutPlayer = active
		state.AppendHistory(st, state.HistoryScout, active, map[string]any{"cardId": taken.ID})
	})
	s.router.Navigate(state.PhaseRoute(state.PhaseAction))
	return nil
}

// StagePairAction places an actor card face-up and a kuroko card
// face-down from the active player's hand as a new stage pair, then
// hands off to the watcher through the watch gate. The judgement
// stays pending until the watcher declares.
func (s *Session) StagePairAction(actorID, kurokoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.store.Get()
	if err := s.requirePhase(cur, "stage_pair", state.PhaseAction); err != nil {
		return err
	}
	if actorID == kurokoID {
		return ErrSameCard
	}
	active := cur.ActivePlayer
	hand := cur.Player(active)
	for _, id := range []string{actorID, kurokoID} {
		if !handHolds(hand, id) {
			s.log.WithFields(logrus.Fields{"card": id, "player": active}).
				Warn("stage_pair rejected: card not in hand")
			return fmt.Errorf("%w: %q", ErrNotInHand, id)
		}
	}

	pairID := uuid.NewString()
	s.store.Patch(func(st *state.GameState) {
		p := st.Player(active)
		actor := removeFromHand(p, actorID)
		actor.FaceUp = true
		kuroko := removeFromHand(p, kurokoID)
		kuroko.FaceUp = false
		p.Stage = append(p.Stage, engine.StagePair{
			ID:        pairID,
			Actor:     &actor,
			Kuroko:    &kuroko,
			Origin:    engine.OriginAction,
			Judgement: engine.JudgementPending,
			CreatedAt: time.Now().UnixMilli(),
		})
		st.Action = state.ActionScratch{ActorCardID: actorID, KurokoCardID: kurokoID}
		st.Turn.Presenter = active
		st.Turn.Watcher = engine.Opponent(active)
		state.AppendHistory(st, state.HistoryAction, active, map[string]any{
			"pairId":  pairID,
			"actorId": actorID,
		})
	})
	s.router.Navigate(state.PhaseRoute(state.PhaseWatch))
	return nil
}

// PinWatchPair pins the pair the watcher is judging, overriding the
// latest-pair default.
func (s *Session) PinWatchPair(pairID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.store.Get()
	if err := s.requirePhase(cur, "pin_pair", state.PhaseWatch); err != nil {
		return err
	}
	if engine.FindPairByID(cur.WatchView(), pairID) == nil {
		return fmt.Errorf("%w: no pair %q", ErrNoWatchPair, pairID)
	}
	s.store.Patch(func(st *state.GameState) {
		st.Watch.PinnedPairID = pairID
	})
	return nil
}

// DeclareClap accepts the staged pair: its cards promote to the
// pair owner's kami either way, and the judgement goes on record.
func (s *Session) DeclareClap() error {
	return s.resolveWatch(DeclarationClap)
}

// DeclareBoo challenges the staged pair. A correct challenge (the
// pair is a mismatch) hands both cards to the watcher and swaps the
// active player; a wrong one promotes the pair like a clap.
func (s *Session) DeclareBoo() error {
	return s.resolveWatch(DeclarationBoo)
}

func (s *Session) resolveWatch(declaration string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.store.Get()
	if err := s.requirePhase(cur, "declare_"+declaration, state.PhaseWatch); err != nil {
		return err
	}
	pair := engine.ResolveActiveWatchPair(cur.WatchView(), cur.Watch.PinnedPairID)
	if !pair.Complete() {
		s.log.WithField("declaration", declaration).Warn("watch rejected: no judgeable pair")
		return ErrNoWatchPair
	}

	watcher := engine.ResolveWatcher(cur.TurnView())
	verdict := engine.JudgePair(*pair.Actor, *pair.Kuroko)
	booSuccess := declaration == DeclarationBoo && verdict == engine.JudgementMismatch
	pairID := pair.ID

	s.store.Patch(func(st *state.GameState) {
		judged, owner := findStagePair(st, pairID)
		judged.Judgement = verdict
		judged.Kuroko.FaceUp = true

		actor, kuroko := *judged.Actor, *judged.Kuroko
		actor.FaceUp, kuroko.FaceUp = true, true
		switch {
		case booSuccess:
			// The watcher takes the pair and the turn.
			w := st.Player(watcher)
			w.BooCount++
			w.Kami = append(w.Kami, actor, kuroko)
			o := st.Player(owner)
			o.Taken = append(o.Taken, actor, kuroko)
			st.ActivePlayer = watcher
		case declaration == DeclarationBoo:
			st.Player(watcher).BooCount++
			o := st.Player(owner)
			o.Kami = append(o.Kami, actor, kuroko)
		default:
			st.Player(watcher).ClapCount++
			o := st.Player(owner)
			o.Kami = append(o.Kami, actor, kuroko)
		}
		st.Watch.Declaration = declaration
		state.AppendHistory(st, state.HistoryWatch, watcher, map[string]any{
			"declaration": declaration,
			"verdict":     string(verdict),
			"pairId":      pairID,
		})
	})

	s.pacer.schedule(s.pacing, func() {
		s.router.Navigate(state.PhaseRoute(state.PhaseSpotlight))
	})
	return nil
}

// RevealSetCard turns over the next set card. It lands in the kami of
// whoever won the watch (the current active player); the joker is
// tagged as the spotlight bonus.
func (s *Session) RevealSetCard() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.store.Get()
	if err := s.requirePhase(cur, "reveal_set_card", state.PhaseSpotlight); err != nil {
		return err
	}
	if len(cur.Set.Cards) == 0 {
		return ErrNoSetCards
	}

	s.store.Patch(func(st *state.GameState) {
		entry := st.Set.Cards[0]
		st.Set.Cards = st.Set.Cards[1:]

		card := entry.Card
		card.FaceUp = true
		recipient := st.ActivePlayer
		presenter := engine.ResolvePresenter(st.TurnView())

		opened := state.OpenedEntry{Card: card, By: recipient, At: time.Now().UnixMilli()}
		if recipient != presenter {
			opened.ReassignedTo = recipient
		}
		detail := map[string]any{"cardId": card.ID, "setId": entry.ID}
		if card.IsJoker() {
			opened.Bonus = state.BonusJoker
			detail["bonus"] = string(state.BonusJoker)
		}
		st.Set.Opened = append(st.Set.Opened, opened)
		st.Player(recipient).Kami = append(st.Player(recipient).Kami, card)
		state.AppendHistory(st, state.HistorySpotlight, recipient, detail)
	})
	s.router.Navigate(state.PhaseRoute(state.PhaseIntermission))
	return nil
}

// AdvanceIntermission closes the round: the next active player is the
// opponent of whoever scouted, the turn counter advances, the
// phase-scoped scratch clears. When the set pile or a hand is
// exhausted the match heads to curtain call instead of a new round.
func (s *Session) AdvanceIntermission() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.store.Get()
	if err := s.requirePhase(cur, "advance_intermission", state.PhaseIntermission); err != nil {
		return err
	}
	next := engine.ResolveNextIntermissionActivePlayer(cur.TurnView())
	terminal := len(cur.Set.Cards) == 0 ||
		len(cur.Player(engine.PlayerLumina).Hand.Cards) == 0 ||
		len(cur.Player(engine.PlayerNox).Hand.Cards) == 0

	s.store.Patch(func(st *state.GameState) {
		st.ActivePlayer = next
		st.Turn = state.TurnState{Count: st.Turn.Count + 1}
		st.Scout = state.ScoutScratch{}
		st.Action = state.ActionScratch{}
		st.Watch = state.WatchScratch{}
		state.AppendHistory(st, state.HistoryIntermission, "", map[string]any{
			"nextActive": next,
			"terminal":   terminal,
		})
	})

	if terminal {
		s.router.Navigate(state.PhaseRoute(state.PhaseCurtainCall))
	} else {
		s.router.Navigate(state.PhaseRoute(state.PhaseScout))
	}
	return nil
}

// FinishCurtainCall computes both score breakdowns, records the final
// summary in the match history and the result ledger, and releases
// the back guard. The save is cleared; a finished match is not
// resumable.
func (s *Session) FinishCurtainCall() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.store.Get()
	if err := s.requirePhase(cur, "finish_curtain_call", state.PhaseCurtainCall); err != nil {
		return err
	}

	now := time.Now().UnixMilli()
	s.store.Patch(func(st *state.GameState) {
		scores := make(map[string]engine.Score, len(st.Players))
		for id, p := range st.Players {
			sc := engine.ComputeScore(p.Kami, p.Hand.Cards)
			p.Score = &sc
			scores[id] = sc
		}
		winner := ""
		lumina, nox := scores[engine.PlayerLumina], scores[engine.PlayerNox]
		if lumina.Final > nox.Final {
			winner = engine.PlayerLumina
		} else if nox.Final > lumina.Final {
			winner = engine.PlayerNox
		}
		st.CurtainCall = &state.CurtainCallSummary{
			Scores:    scores,
			Winner:    winner,
			DecidedAt: now,
		}
		state.AppendHistory(st, state.HistoryCurtainCall, "", nil)
		state.AppendHistory(st, state.HistoryResult, winner, map[string]any{
			"luminaFinal": lumina.Final,
			"noxFinal":    nox.Final,
		})
	})

	fin := s.store.Get()
	detail, err := json.Marshal(fin.CurtainCall)
	if err != nil {
		s.log.WithError(err).Warn("curtain call: summary marshal failed")
	}
	s.ledger.Append(persist.ResultEntry{
		ID:      uuid.NewString(),
		Summary: resultSummary(fin),
		Detail:  string(detail),
		SavedAt: now,
	})
	s.saver.Clear()
	s.router.SetGuard(false)
	s.log.WithFields(logrus.Fields{
		"match":  fin.MatchID,
		"winner": fin.CurtainCall.Winner,
	}).Info("match finished")
	return nil
}

// resultSummary formats the one-line ledger summary.
func resultSummary(st *state.GameState) string {
	lumina := st.Player(engine.PlayerLumina)
	nox := st.Player(engine.PlayerNox)
	line := fmt.Sprintf("%s %d - %s %d",
		lumina.Name, lumina.Score.Final, nox.Name, nox.Score.Final)
	if st.CurtainCall.Winner == "" {
		return line + " (draw)"
	}
	return line
}

// handHolds reports whether the player's hand contains the card.
func handHolds(p *state.PlayerState, cardID string) bool {
	if p == nil {
		return false
	}
	for _, c := range p.Hand.Cards {
		if c.ID == cardID {
			return true
		}
	}
	return false
}

// removeFromHand removes and returns the card. Callers must have
// checked membership; a miss returns the zero card.
func removeFromHand(p *state.PlayerState, cardID string) engine.Card {
	for i, c := range p.Hand.Cards {
		if c.ID == cardID {
			p.Hand.Cards = append(p.Hand.Cards[:i], p.Hand.Cards[i+1:]...)
			if p.Hand.LastDrawnID == cardID {
				p.Hand.LastDrawnID = ""
			}
			return c
		}
	}
	return engine.Card{}
}

// findStagePair locates a pair by id in either player's stage and
// returns it with its owner. Callers resolve the id from the same
// aggregate, so a miss cannot happen within one dispatch.
func findStagePair(st *state.GameState, pairID string) (*engine.StagePair, string) {
	for _, id := range []string{engine.PlayerLumina, engine.PlayerNox} {
		p := st.Player(id)
		if p == nil {
			continue
		}
		for i := range p.Stage {
			if p.Stage[i].ID == pairID {
				return &p.Stage[i], id
			}
		}
	}
	return nil, ""
}
