package state

import "time"

// AppendHistory appends a typed entry to the match log. The log is
// append-only; nothing in the codebase removes or reorders entries.
func AppendHistory(s *GameState, t HistoryType, actor string, detail map[string]any) {
	s.History = append(s.History, HistoryEntry{
		Type:   t,
		Actor:  actor,
		At:     time.Now().UnixMilli(),
		Detail: detail,
	})
}
