package persist

import (
	"encoding/json"
	"errors"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	ledgerVersion = 1
	// MaxLedgerEntries bounds the result history; the oldest entry by
	// savedAt is evicted past this.
	MaxLedgerEntries = 50
)

// ResultEntry is one finished-match record.
type ResultEntry struct {
	ID      string `json:"id"`
	Summary string `json:"summary"`
	Detail  string `json:"detail,omitempty"`
	SavedAt int64  `json:"savedAt"`
}

// Raw entries so one malformed record doesn't poison the whole read.
type ledgerEnvelope struct {
	Version int               `json:"version"`
	Entries []json.RawMessage `json:"entries"`
}

// Ledger is the bounded, newest-first result history.
type Ledger struct {
	mu      sync.Mutex
	storage Storage
	log     *logrus.Entry
}

// NewLedger wraps a storage adapter.
func NewLedger(storage Storage, log *logrus.Entry) *Ledger {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Ledger{storage: storage, log: log}
}

// Append adds an entry, evicting the oldest past MaxLedgerEntries.
// Best-effort: failures are logged.
func (l *Ledger) Append(entry ResultEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.readEntries()
	entries = append(entries, entry)
	sortNewestFirst(entries)
	if len(entries) > MaxLedgerEntries {
		entries = entries[:MaxLedgerEntries]
	}
	l.writeEntries(entries)
}

// List returns all entries sorted newest-first. Malformed stored
// entries are silently filtered out.
func (l *Ledger) List() []ResultEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	entries := l.readEntries()
	sortNewestFirst(entries)
	return entries
}

// Delete removes the entry with the given id, if present.
func (l *Ledger) Delete(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.readEntries()
	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	sortNewestFirst(kept)
	l.writeEntries(kept)
}

func sortNewestFirst(entries []ResultEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SavedAt > entries[j].SavedAt
	})
}

func (l *Ledger) readEntries() []ResultEntry {
	payload, err := l.storage.Read(ledgerKey)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		l.log.WithError(err).Warn("ledger: read failed")
		return nil
	}

	var env ledgerEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		l.log.WithError(err).Warn("ledger: corrupt envelope ignored")
		return nil
	}
	if env.Version != ledgerVersion {
		l.log.WithField("version", env.Version).Warn("ledger: unknown version ignored")
		return nil
	}

	entries := make([]ResultEntry, 0, len(env.Entries))
	for _, raw := range env.Entries {
		var e ResultEntry
		if err := json.Unmarshal(raw, &e); err != nil || e.ID == "" || e.SavedAt == 0 {
			// Drop the one bad record, keep the rest.
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

func (l *Ledger) writeEntries(entries []ResultEntry) {
	raws := make([]json.RawMessage, 0, len(entries))
	for _, e := range entries {
		raw, err := json.Marshal(e)
		if err != nil {
			l.log.WithError(err).WithField("entry", e.ID).Warn("ledger: marshal failed")
			continue
		}
		raws = append(raws, raw)
	}
	payload, err := json.Marshal(ledgerEnvelope{Version: ledgerVersion, Entries: raws})
	if err != nil {
		l.log.WithError(err).Warn("ledger: marshal failed")
		return
	}
	if err := l.storage.Write(ledgerKey, payload); err != nil {
		l.log.WithError(err).Warn("ledger: write failed")
	}
}
