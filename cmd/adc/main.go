// cmd/adc polls one ADS7830 channel and logs the raw value and voltage.
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
	"rpizw-go/errcode"
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

	adc, ch, err := b.ADC()
	if err != nil {
		return fmt.Errorf("init adc: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return loop.Run(ctx, func(context.Context) (time.Duration, error) {
		c, err := adc.Read(ch)
		if err != nil {
			return 0, errcode.Wrap(errcode.MapDriverErr(err), "read adc "+ch.String(), err)
		}
		if !c.Ready {
			log.Println("would block")
			return 0, nil
		}
		log.Printf("adc %s value %d, voltage %.3f V", ch, c.Value, c.Volts(cfg.ADC.VRef))
		return cfg.ADC.Interval(), nil
	})
}
