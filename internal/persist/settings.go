package persist

import (
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/a2m-m/CurtainCall-sub000/engine"
)

const settingsVersion = 1

// RankSettings selects the active rank-value rule, optionally with a
// custom numeric override table.
type RankSettings struct {
	RuleID string              `json:"ruleId"`
	Values map[engine.Rank]int `json:"values,omitempty"`
}

// SoundSettings holds the sound toggle.
type SoundSettings struct {
	Effects bool `json:"effects"`
}

// Settings is the player-facing configuration, persisted separately
// from game state with its own version number.
type Settings struct {
	Players map[string]string `json:"players"`
	Rank    RankSettings      `json:"rank"`
	Sound   SoundSettings     `json:"sound"`
}

type settingsEnvelope struct {
	Version  int      `json:"version"`
	Settings Settings `json:"settings"`
}

// DefaultSettings returns the out-of-the-box configuration.
func DefaultSettings() Settings {
	return Settings{
		Players: map[string]string{},
		Rank:    RankSettings{RuleID: engine.RuleStandard},
		Sound:   SoundSettings{Effects: true},
	}
}

// SettingsStore persists Settings under its own key.
type SettingsStore struct {
	storage Storage
	log     *logrus.Entry
}

// NewSettingsStore wraps a storage adapter.
func NewSettingsStore(storage Storage, log *logrus.Entry) *SettingsStore {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &SettingsStore{storage: storage, log: log}
}

// Load reads the persisted settings; absent or corrupt payloads yield
// the defaults.
func (ss *SettingsStore) Load() Settings {
	payload, err := ss.storage.Read(settingsKey)
	if errors.Is(err, ErrNotFound) {
		return DefaultSettings()
	}
	if err != nil {
		ss.log.WithError(err).Warn("settings: read failed, using defaults")
		return DefaultSettings()
	}

	var env settingsEnvelope
	if err := json.Unmarshal(payload, &env); err != nil || env.Version != settingsVersion {
		ss.log.Warn("settings: unusable envelope, using defaults")
		return DefaultSettings()
	}
	if env.Settings.Players == nil {
		env.Settings.Players = map[string]string{}
	}
	if env.Settings.Rank.RuleID == "" {
		env.Settings.Rank.RuleID = engine.RuleStandard
	}
	return env.Settings
}

// Save writes the settings. Best-effort: failures are logged.
func (ss *SettingsStore) Save(s Settings) {
	payload, err := json.Marshal(settingsEnvelope{Version: settingsVersion, Settings: s})
	if err != nil {
		ss.log.WithError(err).Warn("settings: marshal failed")
		return
	}
	if err := ss.storage.Write(settingsKey, payload); err != nil {
		ss.log.WithError(err).Warn("settings: write failed")
	}
}

// ApplyRankRule activates the configured rank rule on the registry,
// registering the custom override table first when present. An
// unknown rule id is never silently accepted: it logs a warning and
// the registry keeps the standard rule.
func ApplyRankRule(s Settings, rules *engine.Rules, log *logrus.Entry) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if len(s.Rank.Values) > 0 {
		rules.Register(engine.RuleCustom, engine.CustomTable(s.Rank.Values))
	}
	if err := rules.SetActive(s.Rank.RuleID); err != nil {
		log.WithError(err).WithField("rule", s.Rank.RuleID).
			Warn("settings: unknown rank rule, falling back to standard")
		_ = rules.SetActive(engine.RuleStandard)
	}
}
