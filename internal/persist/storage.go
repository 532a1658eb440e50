// Package persist serializes the match aggregate, the result-history
// ledger and the settings to durable local storage. All writes are
// best-effort: storage failures are logged and swallowed, a corrupt
// payload reads back as "no save". The one loud exception is the
// resume-gate guard, which is a programming-contract violation and
// returns an error on purpose.
package persist

import "errors"

// ErrNotFound is returned by Storage.Read when the key is absent.
var ErrNotFound = errors.New("key not found")

// Storage is the durable key/value port. Implementations: sqlite
// (production) and memory (tests, ephemeral runs).
type Storage interface {
	Read(key string) ([]byte, error)
	Write(key string, value []byte) error
	Delete(key string) error
}

// Storage keys. Game state, result history and settings are versioned
// independently under separate keys.
const (
	stateKey    = "curtaincall:state:latest"
	ledgerKey   = "curtaincall:results"
	settingsKey = "curtaincall:settings"
)
