package engine

// The two fixed player identities of a match.
const (
	PlayerLumina = "lumina"
	PlayerNox    = "nox"
)

// Opponent returns the fixed two-player complement. Unknown ids map
// to the empty string so stale fields never masquerade as players.
func Opponent(player string) string {
	switch player {
	case PlayerLumina:
		return PlayerNox
	case PlayerNox:
		return PlayerLumina
	}
	return ""
}

// validPlayer reports whether id is one of the two player identities.
func validPlayer(id string) bool {
	return id == PlayerLumina || id == PlayerNox
}

// TurnView is the slice of game state the turn-resolution helpers
// read. Fields may be empty or stale (legacy saves); the resolvers
// tolerate that via documented fallback chains.
type TurnView struct {
	Presenter       string // turn.presenter as recorded, possibly unset
	Watcher         string // turn.watcher as recorded, possibly unset
	LastScoutPlayer string
	ActivePlayer    string
}

// ResolvePresenter returns the player presenting the current stage
// pair: the recorded presenter if valid, else whoever scouted last,
// else the active player.
func ResolvePresenter(v TurnView) string {
	if validPlayer(v.Presenter) {
		return v.Presenter
	}
	if validPlayer(v.LastScoutPlayer) {
		return v.LastScoutPlayer
	}
	return v.ActivePlayer
}

// ResolveWatcher returns the player judging the watch phase: the
// recorded watcher if valid, else the presenter's opponent.
func ResolveWatcher(v TurnView) string {
	if validPlayer(v.Watcher) {
		return v.Watcher
	}
	return Opponent(ResolvePresenter(v))
}

// ResolveNextIntermissionActivePlayer returns who acts first after
// the intermission. Turn order is anchored to who scouted this round,
// not to who most recently acted: whichever player scouted must hand
// the device to their opponent going into the next round, even when a
// boo success already swapped the nominal active player.
func ResolveNextIntermissionActivePlayer(v TurnView) string {
	if validPlayer(v.LastScoutPlayer) {
		return Opponent(v.LastScoutPlayer)
	}
	return Opponent(ResolvePresenter(v))
}
