package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Alia5/nxbridge/evdev"
	"github.com/Alia5/nxbridge/mapper"
	"github.com/Alia5/nxbridge/procon"
)

// pollInterval is how often Connect re-reads the endpoint's session state
// while waiting for the controller to pair.
const pollInterval = 100 * time.Millisecond

// ErrNotConnected is returned by Start before a successful Connect.
var ErrNotConnected = errors.New("no connected controller session")

// Bridge is the top-level lifecycle: it owns the controller session at the
// endpoint and starts/stops the input loop. Connect, Start and Cleanup are
// called from a single control goroutine; only the loop's worker touches
// the snapshot.
type Bridge struct {
	endpoint Endpoint
	src      evdev.Source
	tables   mapper.Tables
	logger   *slog.Logger

	session    SessionID
	hasSession bool
	loop       *Loop
}

// New creates a bridge for one physical device and one endpoint.
func New(endpoint Endpoint, src evdev.Source, tables mapper.Tables, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{endpoint: endpoint, src: src, tables: tables, logger: logger}
}

// Connect creates a controller session and polls the endpoint until it
// reports the session connected. A crashed session fails with a
// *ConnectError carrying the endpoint's detail; ctx cancellation aborts
// the wait.
func (b *Bridge) Connect(ctx context.Context, kind ControllerKind) error {
	id, err := b.endpoint.CreateSession(kind)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	b.session = id
	b.hasSession = true

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		status, err := b.endpoint.GetState(id)
		if err != nil {
			return fmt.Errorf("query session state: %w", err)
		}
		switch status.Lifecycle {
		case Connected:
			b.logger.Info("controller session connected", "session", string(id), "kind", string(kind))
			return nil
		case Crashed:
			return &ConnectError{Detail: status.Errors}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Start begins translating input. Must be called after a successful
// Connect; the session is fixed before the worker spawns, so the worker
// never races the control goroutine.
func (b *Bridge) Start() error {
	if !b.hasSession {
		return ErrNotConnected
	}
	if b.loop != nil {
		return nil
	}
	id := b.session
	sink := mapper.SinkFunc(func(s procon.Snapshot) error {
		return b.endpoint.PushInput(id, s)
	})
	b.loop = NewLoop(b.src, mapper.NewEngine(b.tables, sink, b.logger), b.logger)
	b.loop.Start()
	return nil
}

// Cleanup stops the input loop (joining its worker) and releases the
// session. Safe to call without a session or after a failed Connect.
func (b *Bridge) Cleanup() error {
	if b.loop != nil {
		b.loop.Stop()
		b.loop = nil
	}
	if !b.hasSession {
		return nil
	}
	b.hasSession = false
	if err := b.endpoint.ReleaseSession(b.session); err != nil {
		return fmt.Errorf("release session: %w", err)
	}
	return nil
}
