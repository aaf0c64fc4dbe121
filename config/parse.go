// config/parse.go
package config

import (
	"fmt"

	"rpizw-go/drivers/ads7830"
	"rpizw-go/drivers/motor"
	"rpizw-go/drivers/stepper"
	"rpizw-go/x/strx"
)

// ParseChannel accepts the selector names printed by ads7830.Channel.String.
func ParseChannel(s string) (ads7830.Channel, error) {
	k := strx.Key(s)
	for _, ch := range ads7830.Channels() {
		if ch.String() == k {
			return ch, nil
		}
	}
	return 0, fmt.Errorf("unknown adc channel %q", s)
}

func ParseReference(s string) (ads7830.Reference, error) {
	switch strx.Key(s) {
	case "internal", "int":
		return ads7830.RefInternal, nil
	case "external", "ext":
		return ads7830.RefExternal, nil
	}
	return 0, fmt.Errorf("unknown adc reference %q", s)
}

func ParseIC(s string) (motor.IC, error) {
	switch strx.Key(s) {
	case "l298", "l298n":
		return motor.L298, nil
	case "tb6612fng", "tb6612":
		return motor.TB6612FNG, nil
	}
	return 0, fmt.Errorf("unknown bridge ic %q", s)
}

func ParseDir(s string) (stepper.Dir, error) {
	switch strx.Key(s) {
	case "cw", "clockwise":
		return stepper.CW, nil
	case "ccw", "counterclockwise", "counter-clockwise":
		return stepper.CCW, nil
	}
	return 0, fmt.Errorf("unknown stepper direction %q", s)
}

// ---- Typed views used by the commands (call after Validate) ----

// Device returns the driver config and channel.
func (a ADCConfig) Device() (ads7830.Config, ads7830.Channel, error) {
	ref, err := ParseReference(a.Reference)
	if err != nil {
		return ads7830.Config{}, 0, err
	}
	ch, err := ParseChannel(a.Channel)
	if err != nil {
		return ads7830.Config{}, 0, err
	}
	return ads7830.Config{Address: a.Address, Reference: ref}, ch, nil
}

// Device returns the stepper driver config.
func (s StepperConfig) Device() (stepper.Config, error) {
	d, err := ParseDir(s.Dir)
	if err != nil {
		return stepper.Config{}, err
	}
	return stepper.Config{Start: s.Start, Dir: d, Settle: s.Settle()}, nil
}
