package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/Alia5/nxbridge/bridge"
	"github.com/Alia5/nxbridge/evdev"
	"github.com/Alia5/nxbridge/internal/log"
	"github.com/Alia5/nxbridge/mapper"
	"github.com/Alia5/nxbridge/nxclient"
)

// Run bridges one physical gamepad to a virtual controller session.
type Run struct {
	Device     string `help:"Input device node to read" default:"/dev/input/event0" env:"NXBRIDGE_DEVICE"`
	Addr       string `help:"Virtual controller daemon address" default:"localhost:3489" env:"NXBRIDGE_ADDR"`
	Controller string `help:"Controller kind to emulate" enum:"pro-controller,joycon-l,joycon-r" default:"pro-controller"`
	Mappings   string `help:"Mapping override file (json, yaml or toml)"`
	Test       bool   `help:"Print raw input events instead of bridging (for discovering mappings)"`
}

// Run is called by kong when the run command is executed.
func (r *Run) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dev, err := evdev.Open(r.Device)
	if err != nil {
		return err
	}
	defer func() { _ = dev.Close() }()
	logger.Info("opened input device", "path", dev.Path(), "name", dev.Name())

	src := evdev.Source(dev)
	if rawLogger != nil {
		src = loggingSource{src: src, raw: rawLogger}
	}

	if r.Test {
		return r.testLoop(ctx, src)
	}

	tables := mapper.DefaultTables()
	if r.Mappings != "" {
		tables, err = mapper.LoadTables(r.Mappings)
		if err != nil {
			return fmt.Errorf("load mappings: %w", err)
		}
		logger.Info("loaded mapping overrides", "file", r.Mappings)
	}

	b := bridge.New(nxclient.New(r.Addr), src, tables, logger)
	defer func() {
		if err := b.Cleanup(); err != nil {
			logger.Error("cleanup failed", "error", err)
		}
	}()

	logger.Info("connecting controller", "kind", r.Controller, "addr", r.Addr)
	if err := b.Connect(ctx, bridge.ControllerKind(r.Controller)); err != nil {
		return err
	}
	if err := b.Start(); err != nil {
		return err
	}
	logger.Info("input processing started")

	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}

// loggingSource mirrors every pulled event to the raw log before handing
// it on.
type loggingSource struct {
	src evdev.Source
	raw log.RawLogger
}

func (s loggingSource) PullEvents() ([]evdev.Event, error) {
	events, err := s.src.PullEvents()
	for _, ev := range events {
		s.raw.Log(ev.String())
	}
	return events, err
}

// testLoop dumps every raw event so users can work out their pad's codes
// before writing a mapping file. No endpoint is involved.
func (r *Run) testLoop(ctx context.Context, src evdev.Source) error {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println("Test mode: showing raw controller inputs. Press Ctrl+C to exit.")
	}

	events := make(chan evdev.Event)
	errs := make(chan error, 1)
	go func() {
		for {
			batch, err := src.PullEvents()
			if err != nil {
				errs <- err
				return
			}
			for _, ev := range batch {
				select {
				case events <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errs:
			return err
		case ev := <-events:
			fmt.Printf("Event: %s\n", ev)
		}
	}
}
