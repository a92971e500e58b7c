// Package nxclient is the TCP client for a local virtual-controller daemon
// implementing the session API consumed by the bridge.
package nxclient

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/Alia5/nxbridge/bridge"
	"github.com/Alia5/nxbridge/procon"
)

// Client implements bridge.Endpoint against a daemon address. Each call
// opens its own connection, so one producer pushing input and the control
// goroutine polling state never contend.
type Client struct{ transport *Transport }

// New constructs a client for the daemon at addr (host:port).
func New(addr string) *Client { return &Client{transport: NewTransport(addr)} }

// WithTransport constructs a client over a custom transport, primarily for
// tests with a mock responder.
func WithTransport(t *Transport) *Client { return &Client{transport: t} }

type createSessionResponse struct {
	SessionID string `json:"sessionId"`
}

type sessionStateResponse struct {
	Lifecycle string `json:"lifecycle"`
	Errors    string `json:"errors,omitempty"`
}

type releaseSessionResponse struct {
	SessionID string `json:"sessionId"`
}

// CreateSession asks the daemon to start advertising a new controller.
func (c *Client) CreateSession(kind bridge.ControllerKind) (bridge.SessionID, error) {
	const path = "session/create"
	raw, err := c.transport.DoCtx(context.Background(), path, []byte(kind), nil)
	if err != nil {
		return "", err
	}
	resp, err := parse[createSessionResponse](raw)
	if err != nil {
		return "", err
	}
	return bridge.SessionID(resp.SessionID), nil
}

// GetState reports the session's connection lifecycle.
func (c *Client) GetState(id bridge.SessionID) (bridge.SessionStatus, error) {
	const path = "session/{id}/state"
	raw, err := c.transport.DoCtx(context.Background(), path, nil, map[string]string{"id": string(id)})
	if err != nil {
		return bridge.SessionStatus{}, err
	}
	resp, err := parse[sessionStateResponse](raw)
	if err != nil {
		return bridge.SessionStatus{}, err
	}
	return bridge.SessionStatus{
		Lifecycle: bridge.Lifecycle(resp.Lifecycle),
		Errors:    resp.Errors,
	}, nil
}

// PushInput sends the full controller state as the hex form of the 8-byte
// input report; raw report bytes could collide with the protocol's null
// terminator. Fails when the session is not connected.
func (c *Client) PushInput(id bridge.SessionID, snap procon.Snapshot) error {
	const path = "session/{id}/input"
	report, err := snap.MarshalBinary()
	if err != nil {
		return err
	}
	payload := []byte(hex.EncodeToString(report))
	raw, err := c.transport.DoCtx(context.Background(), path, payload, map[string]string{"id": string(id)})
	if err != nil {
		return err
	}
	// Success is an empty line; anything else is a problem response.
	if raw != "" {
		if _, err := parse[struct{}](raw); err != nil {
			return fmt.Errorf("push input: %w", err)
		}
	}
	return nil
}

// ReleaseSession tears the virtual controller down.
func (c *Client) ReleaseSession(id bridge.SessionID) error {
	const path = "session/{id}/release"
	raw, err := c.transport.DoCtx(context.Background(), path, nil, map[string]string{"id": string(id)})
	if err != nil {
		return err
	}
	if raw == "" {
		return nil
	}
	if _, err := parse[releaseSessionResponse](raw); err != nil {
		return err
	}
	return nil
}
