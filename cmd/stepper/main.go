// cmd/stepper turns a 4-phase stepper continuously in the configured
// direction.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rpizw-go/config"
	"rpizw-go/internal/board"
	"rpizw-go/internal/loop"
)

func main() {
	cfgPath := flag.String("config", "", "board config (YAML); defaults when empty")
	fake := flag.Bool("fake", false, "use the in-memory host platform")
	flag.Parse()

	if err := run(*cfgPath, *fake); err != nil {
		log.Fatal(err)
	}
}

func run(cfgPath string, fake bool) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	b, err := board.Open(cfg, fake)
	if err != nil {
		return err
	}
	defer b.Close()

	s, err := b.Stepper()
	if err != nil {
		return fmt.Errorf("init stepper: %w", err)
	}
	log.Printf("stepper: %d phases, start %d, %s, settle %s",
		s.Len(), s.Position(), s.Dir(), cfg.Stepper.Settle())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	steps := 0
	err = loop.Run(ctx, func(context.Context) (time.Duration, error) {
		if err := s.Step(); err != nil {
			return 0, fmt.Errorf("step %d: %w", steps, err)
		}
		steps++
		return 0, nil
	})
	log.Printf("stepper: %d steps, stopped at phase %d", steps, s.Position())
	return err
}
