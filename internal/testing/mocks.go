// Package testing holds shared fakes for the bridge, mapper and endpoint
// tests.
package testing

import (
	"fmt"
	"sync"
	"time"

	"github.com/Alia5/nxbridge/bridge"
	"github.com/Alia5/nxbridge/evdev"
	"github.com/Alia5/nxbridge/procon"
)

// ScriptedSource replays a fixed sequence of event batches. Once the
// script is exhausted it keeps returning empty batches after a short wait,
// so a loop reading from it stays responsive to its stop signal.
type ScriptedSource struct {
	mu      sync.Mutex
	batches [][]evdev.Event
	idle    time.Duration
}

func NewScriptedSource(batches ...[]evdev.Event) *ScriptedSource {
	return &ScriptedSource{batches: batches, idle: time.Millisecond}
}

func (s *ScriptedSource) PullEvents() ([]evdev.Event, error) {
	s.mu.Lock()
	if len(s.batches) > 0 {
		batch := s.batches[0]
		s.batches = s.batches[1:]
		s.mu.Unlock()
		return batch, nil
	}
	s.mu.Unlock()
	time.Sleep(s.idle)
	return nil, nil
}

// FailingSource always returns the given error.
type FailingSource struct{ Err error }

func (s *FailingSource) PullEvents() ([]evdev.Event, error) {
	return nil, s.Err
}

// FakeEndpoint implements bridge.Endpoint in memory. GetState pops one
// status per call; the final status repeats. Pushes are recorded.
type FakeEndpoint struct {
	mu       sync.Mutex
	statuses []bridge.SessionStatus
	pushes   []procon.Snapshot
	released []bridge.SessionID
	PushErr  error
	nextID   int
}

func NewFakeEndpoint(statuses ...bridge.SessionStatus) *FakeEndpoint {
	if len(statuses) == 0 {
		statuses = []bridge.SessionStatus{{Lifecycle: bridge.Connected}}
	}
	return &FakeEndpoint{statuses: statuses}
}

func (f *FakeEndpoint) CreateSession(kind bridge.ControllerKind) (bridge.SessionID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := bridge.SessionID(fmt.Sprintf("%s-%d", kind, f.nextID))
	f.nextID++
	return id, nil
}

func (f *FakeEndpoint) GetState(id bridge.SessionID) (bridge.SessionStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.statuses[0]
	if len(f.statuses) > 1 {
		f.statuses = f.statuses[1:]
	}
	return st, nil
}

func (f *FakeEndpoint) PushInput(id bridge.SessionID, snap procon.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PushErr != nil {
		return f.PushErr
	}
	f.pushes = append(f.pushes, snap)
	return nil
}

func (f *FakeEndpoint) ReleaseSession(id bridge.SessionID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released = append(f.released, id)
	return nil
}

// Pushes returns a copy of the recorded pushes.
func (f *FakeEndpoint) Pushes() []procon.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]procon.Snapshot, len(f.pushes))
	copy(out, f.pushes)
	return out
}

// Released returns the sessions released so far.
func (f *FakeEndpoint) Released() []bridge.SessionID {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]bridge.SessionID, len(f.released))
	copy(out, f.released)
	return out
}
