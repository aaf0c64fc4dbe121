// cmd/motor drives a DC motor from a potentiometer on the ADC: mid-scale
// coasts, either end runs full speed in that direction.
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
	"rpizw-go/drivers/ads7830"
	"rpizw-go/drivers/motor"
	"rpizw-go/errcode"
	"rpizw-go/internal/board"
	"rpizw-go/internal/loop"
	"rpizw-go/x/ramp"
)

const (
	knobCentre = 128

	stopSteps = 10
	stopEvery = 20 * time.Millisecond
)

func main() {
	cfgPath := flag.String("config", "", "board config (YAML); defaults when empty")
	fake := flag.Bool("fake", false, "use the in-memory host platform")
	flag.Parse()

	if err := run(*cfgPath, *fake); err != nil {
		log.Fatal(err)
	}
}

// knob maps a raw ADC value to a signed speed in [-1, 1).
func knob(c ads7830.Conversion) float64 {
	return float64(int(c.Value)-knobCentre) / knobCentre
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

	adc, ch, err := b.ADC()
	if err != nil {
		return fmt.Errorf("init adc: %w", err)
	}
	m, err := b.Motor()
	if err != nil {
		return fmt.Errorf("init motor: %w", err)
	}
	log.Printf("motor on %s bridge, braked", m.IC())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return drive(ctx, adc, ch, m, cfg.Motor.Interval())
}

// drive follows the knob until ctx ends, then winds the motor down to a
// coast. A failed read or write coasts at once.
func drive(ctx context.Context, adc *ads7830.Device, ch ads7830.Channel, m *motor.Motor, every time.Duration) error {
	cmd, duty := motor.Coast, 0.0
	err := loop.Run(ctx, func(context.Context) (time.Duration, error) {
		c, err := adc.Read(ch)
		if err != nil {
			return 0, errcode.Wrap(errcode.MapDriverErr(err), "read adc "+ch.String(), err)
		}
		if !c.Ready {
			log.Println("would block")
			return 0, nil
		}
		cmd, duty = motor.FromSigned(knob(c))
		log.Printf("adc %d -> %s %.2f", c.Value, cmd, duty)
		if err := m.Run(cmd, duty); err != nil {
			return 0, fmt.Errorf("run motor: %w", err)
		}
		return every, nil
	})
	if err != nil {
		if cerr := m.Run(motor.Coast, 0); cerr != nil {
			log.Printf("coast after failure: %v", cerr)
		}
		return err
	}

	// Wind down rather than cutting drive at full duty.
	log.Println("stopping motor")
	always := func(d time.Duration) bool { time.Sleep(d); return true }
	if err := ramp.Linear(duty, 0, stopSteps, stopEvery, always, func(d float64) error {
		return m.Run(cmd, d)
	}); err != nil {
		return err
	}
	return m.Run(motor.Coast, 0)
}
