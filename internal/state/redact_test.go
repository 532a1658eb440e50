package state

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a2m-m/CurtainCall-sub000/engine"
)

func matchWithSecrets(t *testing.T) *GameState {
	t.Helper()
	s := NewMatch("match-secret", nil)
	s.ActivePlayer = engine.PlayerLumina
	s.Players[engine.PlayerLumina].Hand.Cards = []engine.Card{
		{ID: "spades-A", Suit: engine.SuitSpades, Rank: engine.RankAce, Value: 1},
	}
	s.Players[engine.PlayerNox].Hand.Cards = []engine.Card{
		{ID: "hearts-K", Suit: engine.SuitHearts, Rank: engine.RankKing, Value: 13},
	}
	s.Players[engine.PlayerNox].Hand.LastDrawnID = "hearts-K"
	s.Players[engine.PlayerNox].Stage = []engine.StagePair{{
		ID:        "pair-1",
		Actor:     &engine.Card{ID: "clubs-2", Suit: engine.SuitClubs, Rank: engine.RankTwo, Value: 2, FaceUp: true},
		Kuroko:    &engine.Card{ID: "clubs-3", Suit: engine.SuitClubs, Rank: engine.RankThree, Value: 3},
		Origin:    engine.OriginAction,
		Judgement: engine.JudgementPending,
	}}
	s.Set.Cards = []engine.SetCardEntry{{
		ID: 1, Position: 0,
		Card: engine.Card{ID: "diamonds-7", Suit: engine.SuitDiamonds, Rank: engine.RankSeven, Value: 7},
	}}
	s.Turn.Presenter = engine.PlayerNox
	s.Action.KurokoCardID = "clubs-3"
	return s
}

// assertUnrecoverable checks that nothing about the original card can
// be read back out of its redacted stand-in. The real card id spells
// out suit and rank, so the id must not survive in any splittable
// form.
func assertUnrecoverable(t *testing.T, hidden, original engine.Card) {
	t.Helper()
	assert.Empty(t, hidden.Suit)
	assert.Empty(t, hidden.Rank)
	assert.Zero(t, hidden.Value)
	assert.Empty(t, hidden.Note)
	assert.NotEqual(t, original.ID, hidden.ID)
	for _, part := range strings.Split(hidden.ID, "-") {
		assert.NotEqual(t, string(original.Suit), part, "id part recovers the suit")
		assert.NotEqual(t, string(original.Rank), part, "id part recovers the rank")
	}
}

func TestRedactedHidesOpponentHand(t *testing.T) {
	s := matchWithSecrets(t)
	king := s.Players[engine.PlayerNox].Hand.Cards[0]
	view := Redacted(s, engine.PlayerLumina)

	nox := view.Players[engine.PlayerNox]
	require.Len(t, nox.Hand.Cards, 1, "hand size stays observable")
	assertUnrecoverable(t, nox.Hand.Cards[0], king)
	assert.Empty(t, nox.Hand.LastDrawnID)

	// Own hand stays fully visible.
	assert.Equal(t, engine.RankAce, view.Players[engine.PlayerLumina].Hand.Cards[0].Rank)
}

func TestRedactedHidesFaceDownKurokoAndSetPile(t *testing.T) {
	s := matchWithSecrets(t)
	kuroko := *s.Players[engine.PlayerNox].Stage[0].Kuroko
	setCard := s.Set.Cards[0].Card
	view := Redacted(s, engine.PlayerLumina)

	pair := view.Players[engine.PlayerNox].Stage[0]
	assert.Equal(t, engine.RankTwo, pair.Actor.Rank, "face-up actor stays visible")
	assertUnrecoverable(t, *pair.Kuroko, kuroko)

	require.Len(t, view.Set.Cards, 1)
	assertUnrecoverable(t, view.Set.Cards[0].Card, setCard)
}

func TestRedactedClearsKurokoScratchForWatcher(t *testing.T) {
	s := matchWithSecrets(t)

	watcher := Redacted(s, engine.PlayerLumina)
	assert.Empty(t, watcher.Action.KurokoCardID, "scratch id is the presenter's secret")

	presenter := Redacted(s, engine.PlayerNox)
	assert.Equal(t, "clubs-3", presenter.Action.KurokoCardID)
}

func TestRedactedShowsOwnKurokoAndJudgedPairs(t *testing.T) {
	s := matchWithSecrets(t)

	// The pair's owner keeps seeing their own kuroko.
	own := Redacted(s, engine.PlayerNox)
	assert.Equal(t, engine.RankThree, own.Players[engine.PlayerNox].Stage[0].Kuroko.Rank)

	// Once judged, the kuroko is public.
	s.Players[engine.PlayerNox].Stage[0].Judgement = engine.JudgementMatch
	judged := Redacted(s, engine.PlayerLumina)
	assert.Equal(t, engine.RankThree, judged.Players[engine.PlayerNox].Stage[0].Kuroko.Rank)
}

func TestRedactedDoesNotTouchOriginal(t *testing.T) {
	s := matchWithSecrets(t)
	_ = Redacted(s, engine.PlayerLumina)
	assert.Equal(t, engine.RankKing, s.Players[engine.PlayerNox].Hand.Cards[0].Rank)
	assert.Equal(t, engine.RankSeven, s.Set.Cards[0].Card.Rank)
	assert.Equal(t, "clubs-3", s.Action.KurokoCardID)
}
