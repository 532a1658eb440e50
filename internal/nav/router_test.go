package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a2m-m/CurtainCall-sub000/internal/state"
)

func newTestRouter() *Router {
	r := NewRouter(nil)
	r.RegisterSecretPhase(state.PhaseScout, GateCopy{Message: "hand the device to the scout"})
	r.RegisterSecretPhase(state.PhaseWatch, GateCopy{Message: "hand the device to the watcher"})
	return r
}

func TestNavigateToSecretRouteOpensGate(t *testing.T) {
	r := newTestRouter()
	r.Navigate(state.PhaseRoute(state.PhaseScout))

	// The real phase route never mounted: we are on the gate route.
	assert.Equal(t, state.GateRoute(state.PhaseScout), r.Current())
	info, open := r.Pending()
	require.True(t, open)
	assert.Equal(t, "hand the device to the scout", info.Message)
	assert.Equal(t, state.GateRoute(state.PhaseScout), info.Route)
}

func TestConfirmReachesRealRoute(t *testing.T) {
	r := newTestRouter()
	r.Navigate(state.PhaseRoute(state.PhaseScout))

	require.NoError(t, r.Confirm())
	assert.Equal(t, state.PhaseRoute(state.PhaseScout), r.Current())
	_, open := r.Pending()
	assert.False(t, open, "gate must be torn down after confirm")

	// The arming is consumed: a later direct navigation re-gates.
	r.Navigate(state.PhaseRoute(state.PhaseHome))
	r.Navigate(state.PhaseRoute(state.PhaseScout))
	assert.Equal(t, state.GateRoute(state.PhaseScout), r.Current())
}

func TestRouteChangeCancelsPendingGate(t *testing.T) {
	r := newTestRouter()
	confirmed := false
	r.OpenGate(GateCopy{Message: "next round"}, func() { confirmed = true })

	r.Navigate(state.PhaseRoute(state.PhaseHome))

	_, open := r.Pending()
	assert.False(t, open)
	assert.False(t, confirmed, "interrupted gate must not run its confirm")
	assert.ErrorIs(t, r.Confirm(), ErrNoPendingGate)
}

func TestOpeningGateTearsDownPreviousGate(t *testing.T) {
	r := newTestRouter()
	firstConfirmed := false
	r.OpenGate(GateCopy{Message: "first"}, func() { firstConfirmed = true })
	r.OpenGate(GateCopy{Message: "second"}, nil)

	info, open := r.Pending()
	require.True(t, open)
	assert.Equal(t, "second", info.Message)

	require.NoError(t, r.Confirm())
	assert.False(t, firstConfirmed, "replaced gate's confirm must never fire")
}

func TestNonSecretRoutesPassThrough(t *testing.T) {
	r := newTestRouter()
	r.Navigate(state.PhaseRoute(state.PhaseIntermission))
	assert.Equal(t, state.PhaseRoute(state.PhaseIntermission), r.Current())
	_, open := r.Pending()
	assert.False(t, open)
}

func TestBackGuardReassertsRoute(t *testing.T) {
	r := newTestRouter()
	r.Navigate(state.PhaseRoute(state.PhaseIntermission))
	r.SetGuard(true)

	noticed := false
	r.SetBlockedBackNotice(func() { noticed = true })
	var changes []state.Route
	r.OnChange(func(route state.Route) { changes = append(changes, route) })

	r.Back()

	assert.Equal(t, state.PhaseRoute(state.PhaseIntermission), r.Current())
	assert.True(t, noticed)
	require.Len(t, changes, 1)
	assert.Equal(t, state.PhaseRoute(state.PhaseIntermission), changes[0])
}

func TestBackDoesNotBypassPendingGate(t *testing.T) {
	r := newTestRouter()
	r.SetGuard(true)
	r.Navigate(state.PhaseRoute(state.PhaseWatch))
	_, open := r.Pending()
	require.True(t, open)

	r.Back()

	// The gate was cancelled, not confirmed: still on the gate route,
	// no secret route reached.
	assert.Equal(t, state.GateRoute(state.PhaseWatch), r.Current())
	_, open = r.Pending()
	assert.False(t, open)
}

func TestBackWithoutGuardPopsHistory(t *testing.T) {
	r := newTestRouter()
	r.Navigate(state.PhaseRoute(state.PhaseStandby))
	r.Navigate(state.PhaseRoute(state.PhaseIntermission))

	r.Back()
	assert.Equal(t, state.PhaseRoute(state.PhaseStandby), r.Current())
}

func TestOnChangeUnsubscribe(t *testing.T) {
	r := newTestRouter()
	calls := 0
	unsub := r.OnChange(func(state.Route) { calls++ })
	r.Navigate(state.PhaseRoute(state.PhaseStandby))
	unsub()
	r.Navigate(state.PhaseRoute(state.PhaseIntermission))
	assert.Equal(t, 1, calls)
}
