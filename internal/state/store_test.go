package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a2m-m/CurtainCall-sub000/engine"
)

func newTestStore() *Store {
	return NewStore(NewMatch("match-1", nil))
}

func TestSubscribeReplaysCurrentState(t *testing.T) {
	st := newTestStore()
	var seen []*GameState
	st.Subscribe(func(s *GameState) { seen = append(seen, s) })

	require.Len(t, seen, 1)
	assert.Same(t, st.Get(), seen[0])
}

func TestSetNotifiesInRegistrationOrder(t *testing.T) {
	st := newTestStore()
	var order []string
	st.Subscribe(func(s *GameState) { order = append(order, "first") })
	st.Subscribe(func(s *GameState) { order = append(order, "second") })
	order = nil // drop the replay calls

	next := st.Get().Clone()
	st.Set(next)

	require.Equal(t, []string{"first", "second"}, order)
	assert.Same(t, next, st.Get())
}

func TestSetSameReferenceIsNoOp(t *testing.T) {
	st := newTestStore()
	calls := 0
	st.Subscribe(func(s *GameState) { calls++ })
	require.Equal(t, 1, calls) // replay

	st.Set(st.Get())
	assert.Equal(t, 1, calls, "identical reference must not notify")
}

func TestPatchProducesNewReferenceAndBumpsRevision(t *testing.T) {
	st := newTestStore()
	before := st.Get()
	calls := 0
	st.Subscribe(func(s *GameState) { calls++ })

	st.Patch(func(s *GameState) { s.Phase = PhaseStandby })

	after := st.Get()
	assert.NotSame(t, before, after)
	assert.Equal(t, PhaseStandby, after.Phase)
	assert.Equal(t, before.Revision+1, after.Revision)
	assert.Equal(t, PhaseHome, before.Phase, "previous aggregate must stay untouched")
	assert.Equal(t, 2, calls)
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	st := newTestStore()
	calls := 0
	unsub := st.Subscribe(func(s *GameState) { calls++ })
	unsub()

	st.Patch(func(s *GameState) { s.Turn.Count++ })
	assert.Equal(t, 1, calls, "only the replay call expected")
}

func TestCloneIsDeep(t *testing.T) {
	st := newTestStore()
	st.Patch(func(s *GameState) {
		s.Players[engine.PlayerLumina].Hand.Cards = []engine.Card{{ID: "spades-A", Value: 1}}
		s.Players[engine.PlayerLumina].Stage = []engine.StagePair{{
			ID:    "pair-1",
			Actor: &engine.Card{ID: "hearts-3", Value: 3},
		}}
		AppendHistory(s, HistorySetup, "", map[string]any{"k": "v"})
	})

	original := st.Get()
	cp := original.Clone()
	cp.Players[engine.PlayerLumina].Hand.Cards[0].FaceUp = true
	cp.Players[engine.PlayerLumina].Stage[0].Actor.Note = "marked"
	cp.History[0].Detail["k"] = "changed"

	lumina := original.Players[engine.PlayerLumina]
	assert.False(t, lumina.Hand.Cards[0].FaceUp)
	assert.Empty(t, lumina.Stage[0].Actor.Note)
	assert.Equal(t, "v", original.History[0].Detail["k"])
}
