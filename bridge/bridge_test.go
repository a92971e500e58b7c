package bridge_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/nxbridge/bridge"
	"github.com/Alia5/nxbridge/evdev"
	nxtest "github.com/Alia5/nxbridge/internal/testing"
	"github.com/Alia5/nxbridge/mapper"
	"github.com/Alia5/nxbridge/procon"
)

func TestConnectWaitsForConnected(t *testing.T) {
	ep := nxtest.NewFakeEndpoint(
		bridge.SessionStatus{Lifecycle: bridge.Connecting},
		bridge.SessionStatus{Lifecycle: bridge.Connecting},
		bridge.SessionStatus{Lifecycle: bridge.Connected},
	)
	b := bridge.New(ep, nxtest.NewScriptedSource(), mapper.DefaultTables(), nil)

	err := b.Connect(context.Background(), bridge.ProController)
	assert.NoError(t, err)
	assert.NoError(t, b.Cleanup())
	assert.Len(t, ep.Released(), 1)
}

func TestConnectCrashedSession(t *testing.T) {
	ep := nxtest.NewFakeEndpoint(
		bridge.SessionStatus{Lifecycle: bridge.Connecting},
		bridge.SessionStatus{Lifecycle: bridge.Crashed, Errors: "bluetooth adapter vanished"},
	)
	b := bridge.New(ep, nxtest.NewScriptedSource(), mapper.DefaultTables(), nil)

	err := b.Connect(context.Background(), bridge.ProController)
	var connErr *bridge.ConnectError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "bluetooth adapter vanished", connErr.Detail)
	assert.Contains(t, connErr.Error(), "bluetooth adapter vanished")

	// No loop was started; nothing was pushed.
	assert.Empty(t, ep.Pushes())
}

func TestConnectHonorsContext(t *testing.T) {
	// The endpoint never leaves connecting; cancellation must end the poll.
	ep := nxtest.NewFakeEndpoint(bridge.SessionStatus{Lifecycle: bridge.Connecting})
	b := bridge.New(ep, nxtest.NewScriptedSource(), mapper.DefaultTables(), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := b.Connect(ctx, bridge.JoyConLeft)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStartRequiresConnect(t *testing.T) {
	ep := nxtest.NewFakeEndpoint()
	b := bridge.New(ep, nxtest.NewScriptedSource(), mapper.DefaultTables(), nil)
	assert.ErrorIs(t, b.Start(), bridge.ErrNotConnected)
}

func TestBridgeTranslatesToEndpoint(t *testing.T) {
	ep := nxtest.NewFakeEndpoint()
	src := nxtest.NewScriptedSource([]evdev.Event{
		{Type: evdev.EventKey, Code: "BTN_EAST", Value: 1},
		{Type: evdev.EventAbsolute, Code: "ABS_HAT0Y", Value: -1},
	})
	b := bridge.New(ep, src, mapper.DefaultTables(), nil)

	require.NoError(t, b.Connect(context.Background(), bridge.ProController))
	require.NoError(t, b.Start())

	waitFor(t, func() bool { return len(ep.Pushes()) == 2 })
	require.NoError(t, b.Cleanup())

	pushes := ep.Pushes()
	require.Len(t, pushes, 2)
	assert.Equal(t, procon.ButtonA, pushes[0].Buttons)
	assert.Equal(t, procon.ButtonA|procon.ButtonDPadUp, pushes[1].Buttons)
	assert.Len(t, ep.Released(), 1)
}

func TestCleanupIdempotent(t *testing.T) {
	ep := nxtest.NewFakeEndpoint()
	b := bridge.New(ep, nxtest.NewScriptedSource(), mapper.DefaultTables(), nil)

	// Without ever connecting, cleanup has nothing to release.
	assert.NoError(t, b.Cleanup())
	assert.Empty(t, ep.Released())

	require.NoError(t, b.Connect(context.Background(), bridge.ProController))
	require.NoError(t, b.Start())
	assert.NoError(t, b.Cleanup())
	assert.NoError(t, b.Cleanup())
	assert.Len(t, ep.Released(), 1)
}
