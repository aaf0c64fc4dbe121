// cmd/breathe fades an LED up and down on a PWM output.
package main

import (
	"context"
	"errors"
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
	"rpizw-go/x/ramp"
)

// One breath: 0.00 -> 0.99 then 0.98 -> 0.01, in 0.01 increments.
const (
	upFrom, upTo     = 0.0, 0.99
	downFrom, downTo = 0.98, 0.01
	upSteps          = 99
	downSteps        = 97
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

	led, err := b.LED()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tick := loop.Ticker(ctx)
	every := cfg.LED.Interval()
	err = loop.Run(ctx, func(context.Context) (time.Duration, error) {
		if err := ramp.Linear(upFrom, upTo, upSteps, every, tick, led.SetDuty); err != nil {
			return 0, err
		}
		return 0, ramp.Linear(downFrom, downTo, downSteps, every, tick, led.SetDuty)
	})
	if err != nil && !errors.Is(err, ramp.ErrCancelled) {
		return err
	}
	return led.SetDuty(0)
}
