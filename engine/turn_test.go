package engine

import "testing"

func TestOpponent(t *testing.T) {
	if Opponent(PlayerLumina) != PlayerNox {
		t.Error("opponent of lumina should be nox")
	}
	if Opponent(PlayerNox) != PlayerLumina {
		t.Error("opponent of nox should be lumina")
	}
	if Opponent("stale") != "" {
		t.Error("unknown ids must not resolve to a player")
	}
}

// TestResolvePresenterFallbacks covers the precedence chain:
// turn.presenter, then lastScoutPlayer, then activePlayer.
func TestResolvePresenterFallbacks(t *testing.T) {
	cases := []struct {
		name string
		view TurnView
		want string
	}{
		{"explicit presenter", TurnView{Presenter: PlayerNox, LastScoutPlayer: PlayerLumina, ActivePlayer: PlayerLumina}, PlayerNox},
		{"fallback to scouter", TurnView{LastScoutPlayer: PlayerNox, ActivePlayer: PlayerLumina}, PlayerNox},
		{"fallback to active", TurnView{ActivePlayer: PlayerLumina}, PlayerLumina},
		{"invalid presenter ignored", TurnView{Presenter: "ghost", LastScoutPlayer: PlayerNox, ActivePlayer: PlayerLumina}, PlayerNox},
	}
	for _, c := range cases {
		if got := ResolvePresenter(c.view); got != c.want {
			t.Errorf("%s: got %q, want %q", c.name, got, c.want)
		}
	}
}

func TestResolveWatcher(t *testing.T) {
	v := TurnView{Watcher: PlayerLumina, Presenter: PlayerLumina}
	if got := ResolveWatcher(v); got != PlayerLumina {
		t.Errorf("explicit watcher: got %q", got)
	}
	v = TurnView{Presenter: PlayerLumina}
	if got := ResolveWatcher(v); got != PlayerNox {
		t.Errorf("watcher should default to presenter's opponent, got %q", got)
	}
}

// TestNextIntermissionAnchoredToScouter: the next active player is the
// opponent of whoever scouted, even after a boo success swapped the
// nominal active player.
func TestNextIntermissionAnchoredToScouter(t *testing.T) {
	// lumina scouted; boo succeeded and swapped active to nox.
	v := TurnView{LastScoutPlayer: PlayerLumina, ActivePlayer: PlayerNox}
	if got := ResolveNextIntermissionActivePlayer(v); got != PlayerNox {
		t.Fatalf("next active = %q, want %q (opponent of scouter)", got, PlayerNox)
	}

	// No scouter recorded: fall back to the presenter's opponent.
	v = TurnView{Presenter: PlayerNox, ActivePlayer: PlayerNox}
	if got := ResolveNextIntermissionActivePlayer(v); got != PlayerLumina {
		t.Fatalf("next active = %q, want %q", got, PlayerLumina)
	}
}
