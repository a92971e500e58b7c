package bridge

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Alia5/nxbridge/evdev"
	"github.com/Alia5/nxbridge/internal/log"
	"github.com/Alia5/nxbridge/mapper"
)

// retryDelay is the pause after a failed pull or apply cycle, so a broken
// device or session does not spin the worker.
const retryDelay = 100 * time.Millisecond

// Loop pulls raw events from a device source and feeds them to the
// translation engine on a dedicated goroutine. Errors are contained: a bad
// read or a rejected push is logged and retried after a short pause, never
// escalated.
type Loop struct {
	src    evdev.Source
	engine *mapper.Engine
	logger *slog.Logger

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewLoop wires a source to an engine. The loop is the sole writer to the
// engine's snapshot once started.
func NewLoop(src evdev.Source, engine *mapper.Engine, logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{src: src, engine: engine, logger: logger}
}

// Start spawns the worker. Calling Start on a running loop is a no-op.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stop != nil {
		return
	}
	l.stop = make(chan struct{})
	l.done = make(chan struct{})
	go l.run(l.stop, l.done)
}

// Stop signals the worker and blocks until it has exited. No push can
// occur after Stop returns. Safe to call on a stopped loop.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stop == nil {
		return
	}
	close(l.stop)
	<-l.done
	l.stop = nil
	l.done = nil
}

func (l *Loop) run(stop, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-stop:
			return
		default:
		}

		events, err := l.src.PullEvents()
		if err != nil {
			l.logger.Error("input read failed", "error", err)
			if !l.pause(stop) {
				return
			}
			continue
		}

		for _, ev := range events {
			select {
			case <-stop:
				return
			default:
			}
			l.logger.Log(context.Background(), log.LevelTrace, "raw event", "event", ev.String())
			if err := l.engine.Apply(ev); err != nil {
				// The session may come back; keep translating.
				l.logger.Error("state push failed", "error", err)
				if !l.pause(stop) {
					return
				}
			}
		}
	}
}

// pause waits the retry delay unless stopped first. Returns false when the
// loop should exit.
func (l *Loop) pause(stop chan struct{}) bool {
	select {
	case <-stop:
		return false
	case <-time.After(retryDelay):
		return true
	}
}
