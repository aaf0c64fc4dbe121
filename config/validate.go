// config/validate.go
package config

import (
	"errors"
	"fmt"

	"rpizw-go/errcode"
	"rpizw-go/x/mathx"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	// ---- adc ----
	a := cfg.ADC
	if !mathx.Between(a.Address, 0x08, 0x77) {
		add("adc: address %#x outside 7-bit device range", a.Address)
	}
	if _, err := ParseReference(a.Reference); err != nil {
		add("adc: %v", err)
	}
	if _, err := ParseChannel(a.Channel); err != nil {
		add("adc: %v", err)
	}
	if a.VRef <= 0 {
		add("adc: vref must be positive, got %v", a.VRef)
	}
	if a.IntervalMs < 0 {
		add("adc: interval_ms must not be negative")
	}

	// ---- motor ----
	m := cfg.Motor
	if _, err := ParseIC(m.IC); err != nil {
		add("motor: %v", err)
	}
	if dup := firstDuplicate([]string{m.In1, m.In2, m.PWM}); dup != "" {
		add("motor: pin %q used twice", dup)
	}
	if m.IntervalMs < 0 {
		add("motor: interval_ms must not be negative")
	}

	// ---- stepper ----
	s := cfg.Stepper
	if len(s.Pins) == 0 {
		add("stepper: at least one phase pin required")
	} else if !mathx.Between(s.Start, 0, len(s.Pins)-1) {
		add("stepper: start %d outside [0,%d)", s.Start, len(s.Pins))
	}
	if dup := firstDuplicate(s.Pins); dup != "" {
		add("stepper: pin %q used twice", dup)
	}
	for i, p := range s.Pins {
		if p == "" {
			add("stepper: pin %d has no name", i)
		}
	}
	if _, err := ParseDir(s.Dir); err != nil {
		add("stepper: %v", err)
	}
	if s.SettleMs < 0 {
		add("stepper: settle_ms must not be negative")
	}

	// ---- led ----
	if cfg.LED.IntervalMs < 0 {
		add("led: interval_ms must not be negative")
	}

	if len(errs) == 0 {
		return nil
	}
	return &errcode.E{C: errcode.InvalidConfig, Err: errors.Join(errs...)}
}

func firstDuplicate(names []string) string {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if seen[n] {
			return n
		}
		seen[n] = true
	}
	return ""
}
