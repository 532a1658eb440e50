package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/a2m-m/CurtainCall-sub000/internal/state"
)

// stateVersion tags the persisted game-state envelope.
const stateVersion = 1

// ResumeGateRoute is the only route from which a save may be
// restored. Resumption outside this gate would mount a secret phase
// view without a hand-off confirmation.
var ResumeGateRoute = state.Route("#/resume/gate")

// ErrOutsideResumeGate signals a caller trying to load a save from
// anywhere but the resume gate. This is a contract violation by the
// caller, not a runtime condition, so it surfaces loudly.
var ErrOutsideResumeGate = errors.New("load permitted only from the resume gate")

// SaveMeta is the derived metadata stored next to the state.
type SaveMeta struct {
	SavedAt      int64       `json:"savedAt"`
	Phase        state.Phase `json:"phase"`
	ActivePlayer string      `json:"activePlayer"`
	Turn         int         `json:"turn"`
	Route        state.Route `json:"route"`
	Revision     int64       `json:"revision"`
}

type stateEnvelope struct {
	Version int              `json:"version"`
	State   *state.GameState `json:"state"`
	Meta    SaveMeta         `json:"meta"`
}

// LoadOptions controls Saver.Load.
type LoadOptions struct {
	CurrentRoute state.Route
	// AllowUnsafe bypasses the resume-gate guard. Test and internal
	// use only.
	AllowUnsafe bool
}

// Saver persists the match aggregate. Save is wired as a store
// subscriber, so it sees every committed revision in commit order;
// the signature dedupe keeps notify storms from producing redundant
// writes.
type Saver struct {
	mu      sync.Mutex
	storage Storage
	log     *logrus.Entry
	lastSig string
}

// NewSaver wraps a storage adapter.
func NewSaver(storage Storage, log *logrus.Entry) *Saver {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Saver{storage: storage, log: log}
}

// Save durably writes the aggregate under a versioned envelope.
// Unchanged signatures are skipped. Failures are logged, never
// returned; a failed write leaves the prior save untouched.
func (sv *Saver) Save(s *state.GameState) {
	if s == nil {
		return
	}
	sig := fmt.Sprintf("%s:%d:%d", s.MatchID, s.Revision, s.UpdatedAt)

	sv.mu.Lock()
	defer sv.mu.Unlock()
	if sig == sv.lastSig {
		return
	}

	now := time.Now().UnixMilli()
	cp := s.Clone()
	if cp.Resume == nil {
		cp.Resume = &state.ResumeSnapshot{
			Phase:        cp.Phase,
			ActivePlayer: cp.ActivePlayer,
			Route:        cp.Route,
			SavedAt:      now,
		}
	}

	env := stateEnvelope{
		Version: stateVersion,
		State:   cp,
		Meta: SaveMeta{
			SavedAt:      now,
			Phase:        cp.Phase,
			ActivePlayer: cp.ActivePlayer,
			Turn:         cp.Turn.Count,
			Route:        cp.Route,
			Revision:     cp.Revision,
		},
	}

	payload, err := json.Marshal(env)
	if err != nil {
		sv.log.WithError(err).WithField("match", s.MatchID).Warn("save: marshal failed")
		return
	}
	if err := sv.storage.Write(stateKey, payload); err != nil {
		sv.log.WithError(err).WithField("match", s.MatchID).Warn("save: write failed")
		return
	}
	sv.lastSig = sig
}

// Load restores the saved aggregate. It returns (nil, nil) when no
// usable save exists: absent keys and corrupt payloads are both
// treated as "no save". Calling from any route other than the resume
// gate fails with ErrOutsideResumeGate unless AllowUnsafe is set.
func (sv *Saver) Load(opts LoadOptions) (*state.GameState, error) {
	if !opts.AllowUnsafe && opts.CurrentRoute != ResumeGateRoute {
		return nil, fmt.Errorf("%w (current route %q)", ErrOutsideResumeGate, opts.CurrentRoute)
	}

	env, ok := sv.readEnvelope()
	if !ok {
		return nil, nil
	}
	return env.State, nil
}

// Clear removes the latest save and resets the dedupe signature.
func (sv *Saver) Clear() {
	sv.mu.Lock()
	defer sv.mu.Unlock()
	if err := sv.storage.Delete(stateKey); err != nil {
		sv.log.WithError(err).Warn("clear: delete failed")
		return
	}
	sv.lastSig = ""
}

// HasLatestSave reports whether a usable save exists.
func (sv *Saver) HasLatestSave() bool {
	_, ok := sv.readEnvelope()
	return ok
}

// LatestSaveMetadata returns the derived metadata of the latest save,
// or nil when none exists.
func (sv *Saver) LatestSaveMetadata() *SaveMeta {
	env, ok := sv.readEnvelope()
	if !ok {
		return nil
	}
	meta := env.Meta
	return &meta
}

// readEnvelope reads and validates the persisted envelope. Any defect
// (storage error, bad JSON, wrong version, missing substructure) is
// logged and reported as "no save".
func (sv *Saver) readEnvelope() (stateEnvelope, bool) {
	payload, err := sv.storage.Read(stateKey)
	if errors.Is(err, ErrNotFound) {
		return stateEnvelope{}, false
	}
	if err != nil {
		sv.log.WithError(err).Warn("load: read failed")
		return stateEnvelope{}, false
	}

	var env stateEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		sv.log.WithError(err).Warn("load: corrupt payload ignored")
		return stateEnvelope{}, false
	}
	if env.Version != stateVersion || env.State == nil ||
		env.State.MatchID == "" || len(env.State.Players) == 0 {
		sv.log.WithField("version", env.Version).Warn("load: unusable envelope ignored")
		return stateEnvelope{}, false
	}
	return env, true
}
