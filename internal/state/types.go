// Package state holds the normalized match aggregate and the
// observable store that owns it. All mutation happens by whole-object
// replacement or by patching a fresh copy; nothing mutates the
// current aggregate in place, which is what makes the store's
// identity-based dirty check correct and lets subscribers read
// without copying.
package state

import (
	"time"

	"github.com/a2m-m/CurtainCall-sub000/engine"
)

// Phase is one step of the fixed match sequence.
type Phase string

const (
	PhaseHome         Phase = "home"
	PhaseStandby      Phase = "standby"
	PhaseScout        Phase = "scout"
	PhaseAction       Phase = "action"
	PhaseWatch        Phase = "watch"
	PhaseSpotlight    Phase = "spotlight"
	PhaseIntermission Phase = "intermission"
	PhaseCurtainCall  Phase = "curtaincall"
)

// Phases lists the match sequence in order.
var Phases = []Phase{
	PhaseHome, PhaseStandby, PhaseScout, PhaseAction,
	PhaseWatch, PhaseSpotlight, PhaseIntermission, PhaseCurtainCall,
}

// Route is a hash-style route string ("#/scout", "#/scout/gate").
type Route string

// PhaseRoute returns the real route for a phase.
func PhaseRoute(p Phase) Route { return Route("#/" + string(p)) }

// GateRoute returns the hand-off gate route for a phase. The gate
// route renders only public copy; the real route is reachable only
// through the gate's confirm.
func GateRoute(p Phase) Route { return PhaseRoute(p) + "/gate" }

// HandState is one player's hand.
type HandState struct {
	Cards       []engine.Card `json:"cards"`
	Capacity    int           `json:"capacity"`
	LastDrawnID string        `json:"lastDrawnId,omitempty"`
}

// PlayerState is everything owned by one seat.
type PlayerState struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Role      string             `json:"role"` // mirrors ID
	Hand      HandState          `json:"hand"`
	Stage     []engine.StagePair `json:"stage"`
	BooCount  int                `json:"booCount"`
	ClapCount int                `json:"clapCount"`
	Taken     []engine.Card      `json:"taken"` // cards taken by the opponent's boo
	Kami      []engine.Card      `json:"kami"`
	Score     *engine.Score      `json:"score,omitempty"` // populated at curtain call only
}

// BonusKind tags a special set reveal.
type BonusKind string

// BonusJoker marks the joker reveal during spotlight.
const BonusJoker BonusKind = "joker"

// OpenedEntry is one record of the append-only set reveal log.
type OpenedEntry struct {
	Card         engine.Card `json:"card"`
	By           string      `json:"by"`
	At           int64       `json:"at"`
	ReassignedTo string      `json:"reassignedTo,omitempty"`
	Bonus        BonusKind   `json:"bonus,omitempty"`
}

// SetState is the shared face-down pile plus its reveal log. A card
// id appears in at most one of Cards and Opened.
type SetState struct {
	Cards  []engine.SetCardEntry `json:"cards"`
	Opened []OpenedEntry         `json:"opened"`
}

// TurnState is the turn/phase bookkeeping the resolution helpers read.
// Presenter and Watcher may be unset on legacy saves; consumers go
// through engine.ResolvePresenter/ResolveWatcher.
type TurnState struct {
	Count           int    `json:"count"`
	Presenter       string `json:"presenter,omitempty"`
	Watcher         string `json:"watcher,omitempty"`
	LastScoutPlayer string `json:"lastScoutPlayer,omitempty"`
}

// HistoryType classifies a history entry.
type HistoryType string

const (
	HistorySetup        HistoryType = "setup"
	HistoryStandby      HistoryType = "standby"
	HistoryScout        HistoryType = "scout"
	HistoryAction       HistoryType = "action"
	HistoryWatch        HistoryType = "watch"
	HistorySpotlight    HistoryType = "spotlight"
	HistoryIntermission HistoryType = "intermission"
	HistoryCurtainCall  HistoryType = "curtaincall"
	HistoryResult       HistoryType = "result"
)

// HistoryEntry is one record of the append-only match log.
type HistoryEntry struct {
	Type   HistoryType    `json:"type"`
	Actor  string         `json:"actor,omitempty"`
	At     int64          `json:"at"`
	Detail map[string]any `json:"detail,omitempty"`
}

// Composition records the card counts the match was dealt with.
type Composition struct {
	DeckSize int `json:"deckSize"`
	SetSize  int `json:"setSize"`
	HandSize int `json:"handSize"`
}

// MatchMeta is immutable match metadata.
type MatchMeta struct {
	CreatedAt   int64       `json:"createdAt"`
	Composition Composition `json:"composition"`
	Seed        *int64      `json:"seed,omitempty"`
}

// ResumeSnapshot is the last known position, used to gate restoration.
type ResumeSnapshot struct {
	Phase        Phase  `json:"phase"`
	ActivePlayer string `json:"activePlayer"`
	Route        Route  `json:"route"`
	SavedAt      int64  `json:"savedAt"`
}

// Phase-scoped scratch state. Cleared when the phase completes.
type (
	ScoutScratch struct {
		TakenCardID string `json:"takenCardId,omitempty"`
	}
	ActionScratch struct {
		ActorCardID  string `json:"actorCardId,omitempty"`
		KurokoCardID string `json:"kurokoCardId,omitempty"`
	}
	WatchScratch struct {
		PinnedPairID string `json:"pinnedPairId,omitempty"`
		Declaration  string `json:"declaration,omitempty"` // "clap" or "boo"
	}
)

// CurtainCallSummary is the final result of a finished match.
type CurtainCallSummary struct {
	Scores    map[string]engine.Score `json:"scores"`
	Winner    string                  `json:"winner,omitempty"` // empty on a draw
	DecidedAt int64                   `json:"decidedAt"`
}

// GameState is the single normalized aggregate for one match.
type GameState struct {
	MatchID      string                  `json:"matchId"`
	Phase        Phase                   `json:"phase"`
	Route        Route                   `json:"route"`
	Revision     int64                   `json:"revision"`
	UpdatedAt    int64                   `json:"updatedAt"`
	Players      map[string]*PlayerState `json:"players"`
	FirstPlayer  string                  `json:"firstPlayer"`
	ActivePlayer string                  `json:"activePlayer"`
	Turn         TurnState               `json:"turn"`
	Set          SetState                `json:"set"`
	History      []HistoryEntry          `json:"history"`
	Meta         MatchMeta               `json:"meta"`
	Resume       *ResumeSnapshot         `json:"resume,omitempty"`
	Scout        ScoutScratch            `json:"scout"`
	Action       ActionScratch           `json:"action"`
	Watch        WatchScratch            `json:"watch"`
	CurtainCall  *CurtainCallSummary     `json:"curtainCall,omitempty"`
}

// NewMatch returns a fresh aggregate at the home phase with empty
// player containers. Display names default to the player ids.
func NewMatch(matchID string, names map[string]string) *GameState {
	now := time.Now().UnixMilli()
	players := make(map[string]*PlayerState, 2)
	for _, id := range []string{engine.PlayerLumina, engine.PlayerNox} {
		name := names[id]
		if name == "" {
			name = id
		}
		players[id] = &PlayerState{ID: id, Name: name, Role: id}
	}
	return &GameState{
		MatchID:   matchID,
		Phase:     PhaseHome,
		Route:     PhaseRoute(PhaseHome),
		UpdatedAt: now,
		Players:   players,
		Meta:      MatchMeta{CreatedAt: now},
	}
}

// Player returns the seat for id, or nil.
func (s *GameState) Player(id string) *PlayerState {
	return s.Players[id]
}

// TurnView adapts the aggregate for the engine turn helpers.
func (s *GameState) TurnView() engine.TurnView {
	return engine.TurnView{
		Presenter:       s.Turn.Presenter,
		Watcher:         s.Turn.Watcher,
		LastScoutPlayer: s.Turn.LastScoutPlayer,
		ActivePlayer:    s.ActivePlayer,
	}
}

// WatchView adapts the aggregate for the engine stage-pair lookups,
// from the watcher's perspective: the opponent-first precedence then
// lands on the presenter's latest action pair.
func (s *GameState) WatchView() engine.StageView {
	watcher := engine.ResolveWatcher(s.TurnView())
	view := engine.StageView{}
	if p := s.Player(watcher); p != nil {
		view.ActiveStage = p.Stage
	}
	if p := s.Player(engine.Opponent(watcher)); p != nil {
		view.OpponentStage = p.Stage
	}
	return view
}
