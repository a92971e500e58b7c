// Package bridge runs the input loop and the session lifecycle that tie a
// physical gamepad to a virtual controller endpoint.
package bridge

import (
	"github.com/Alia5/nxbridge/procon"
)

// ControllerKind selects which controller the endpoint should emulate.
type ControllerKind string

const (
	ProController ControllerKind = "pro-controller"
	JoyConLeft    ControllerKind = "joycon-l"
	JoyConRight   ControllerKind = "joycon-r"
)

// SessionID identifies one virtual controller session at the endpoint.
type SessionID string

// Lifecycle is the endpoint-reported connection state of a session.
type Lifecycle string

const (
	Connecting Lifecycle = "connecting"
	Connected  Lifecycle = "connected"
	Crashed    Lifecycle = "crashed"
)

// SessionStatus is one connection-state report from the endpoint.
type SessionStatus struct {
	Lifecycle Lifecycle
	// Errors carries the endpoint's reported error detail when the session
	// crashed.
	Errors string
}

// Endpoint is the virtual controller subsystem. It owns the sessions and
// the transport; PushInput must be safe for concurrent invocation from one
// producer while the control goroutine reads session state.
type Endpoint interface {
	CreateSession(kind ControllerKind) (SessionID, error)
	GetState(id SessionID) (SessionStatus, error)
	PushInput(id SessionID, snap procon.Snapshot) error
	ReleaseSession(id SessionID) error
}
