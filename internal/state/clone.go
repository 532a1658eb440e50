package state

import "github.com/a2m-m/CurtainCall-sub000/engine"

// Schema-aware deep copies. Every field of every persisted struct is
// copied here explicitly, so adding a field without extending its
// clone shows up in the persistence round-trip tests instead of as a
// silently shared slice.

func cloneCards(cards []engine.Card) []engine.Card {
	if cards == nil {
		return nil
	}
	out := make([]engine.Card, len(cards))
	copy(out, cards)
	return out
}

func cloneCardPtr(c *engine.Card) *engine.Card {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func clonePairs(pairs []engine.StagePair) []engine.StagePair {
	if pairs == nil {
		return nil
	}
	out := make([]engine.StagePair, len(pairs))
	for i, p := range pairs {
		p.Actor = cloneCardPtr(p.Actor)
		p.Kuroko = cloneCardPtr(p.Kuroko)
		out[i] = p
	}
	return out
}

// Clone deep-copies a player seat.
func (p *PlayerState) Clone() *PlayerState {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Hand.Cards = cloneCards(p.Hand.Cards)
	cp.Stage = clonePairs(p.Stage)
	cp.Taken = cloneCards(p.Taken)
	cp.Kami = cloneCards(p.Kami)
	if p.Score != nil {
		sc := *p.Score
		cp.Score = &sc
	}
	return &cp
}

func cloneSet(s SetState) SetState {
	out := SetState{}
	if s.Cards != nil {
		out.Cards = make([]engine.SetCardEntry, len(s.Cards))
		copy(out.Cards, s.Cards)
	}
	if s.Opened != nil {
		out.Opened = make([]OpenedEntry, len(s.Opened))
		copy(out.Opened, s.Opened)
	}
	return out
}

func cloneHistory(entries []HistoryEntry) []HistoryEntry {
	if entries == nil {
		return nil
	}
	out := make([]HistoryEntry, len(entries))
	for i, e := range entries {
		if e.Detail != nil {
			detail := make(map[string]any, len(e.Detail))
			for k, v := range e.Detail {
				detail[k] = v
			}
			e.Detail = detail
		}
		out[i] = e
	}
	return out
}

// Clone deep-copies the whole aggregate.
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Players = make(map[string]*PlayerState, len(s.Players))
	for id, p := range s.Players {
		cp.Players[id] = p.Clone()
	}
	cp.Set = cloneSet(s.Set)
	cp.History = cloneHistory(s.History)
	if s.Meta.Seed != nil {
		seed := *s.Meta.Seed
		cp.Meta.Seed = &seed
	}
	if s.Resume != nil {
		r := *s.Resume
		cp.Resume = &r
	}
	if s.CurtainCall != nil {
		cc := *s.CurtainCall
		cc.Scores = make(map[string]engine.Score, len(s.CurtainCall.Scores))
		for id, sc := range s.CurtainCall.Scores {
			cc.Scores[id] = sc
		}
		cp.CurtainCall = &cc
	}
	return &cp
}
