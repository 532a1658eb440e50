package state

import (
	"fmt"

	"github.com/a2m-m/CurtainCall-sub000/engine"
)

// Redacted returns a deep copy of the aggregate tailored to one
// observer, with every piece of secret information stripped: the
// other player's hand, face-down kuroko cards on either stage while
// their judgement is pending, the face-down set pile, and the kuroko
// scratch id. Card ids encode suit and rank, so hidden cards carry an
// opaque positional placeholder instead of their real id. Views that
// render before a hand-off gate passes read this instead of the raw
// aggregate, so inspecting their output leaks nothing.
func Redacted(s *GameState, forPlayer string) *GameState {
	out := s.Clone()

	for id, p := range out.Players {
		if id != forPlayer {
			for i := range p.Hand.Cards {
				p.Hand.Cards[i] = hiddenCard("hand", id, i)
			}
			p.Hand.LastDrawnID = ""
		}
		for i := range p.Stage {
			pair := &p.Stage[i]
			if pair.Kuroko != nil && !pair.Kuroko.FaceUp && pair.Judgement == engine.JudgementPending && id != forPlayer {
				hidden := hiddenCard("kuroko", id, i)
				pair.Kuroko = &hidden
			}
		}
	}

	for i := range out.Set.Cards {
		out.Set.Cards[i].Card = hiddenCard("set", "", out.Set.Cards[i].Position)
	}

	// The staged kuroko's id is the presenter's secret until the
	// judgement lands.
	if engine.ResolvePresenter(out.TurnView()) != forPlayer {
		out.Action.KurokoCardID = ""
	}

	return out
}

// hiddenCard replaces a secret card with an opaque placeholder. Only
// the position survives; suit, rank, value and the real id (which
// spells out suit and rank) do not.
func hiddenCard(kind, owner string, pos int) engine.Card {
	if owner == "" {
		return engine.Card{ID: fmt.Sprintf("hidden-%s-%d", kind, pos)}
	}
	return engine.Card{ID: fmt.Sprintf("hidden-%s-%s-%d", kind, owner, pos)}
}
