// Package board turns a validated config into live drivers on either the
// periph.io platform or the in-memory host platform.
package board

import (
	"fmt"

	"rpizw-go/config"
	"rpizw-go/drivers/ads7830"
	"rpizw-go/drivers/motor"
	"rpizw-go/drivers/stepper"
	"rpizw-go/halcore"
	"rpizw-go/platform"
)

type provider interface {
	halcore.PinFactory
	halcore.I2CBusFactory
	Close() error
}

// Board owns the platform resources for one process.
type Board struct {
	cfg  *config.Config
	prov provider
	// Host is set when running on the in-memory platform.
	Host *platform.Host
}

// Open selects the platform. fake forces the host platform regardless of cfg.
func Open(cfg *config.Config, fake bool) (*Board, error) {
	if fake || cfg.Platform.Fake {
		h := platform.NewHost()
		return &Board{cfg: cfg, prov: h, Host: h}, nil
	}
	p, err := platform.NewPeriph()
	if err != nil {
		return nil, err
	}
	return &Board{cfg: cfg, prov: p}, nil
}

func (b *Board) Close() error { return b.prov.Close() }

// ADC returns the configured converter and the channel to sample.
func (b *Board) ADC() (*ads7830.Device, ads7830.Channel, error) {
	dc, ch, err := b.cfg.ADC.Device()
	if err != nil {
		return nil, 0, err
	}
	bus, err := b.prov.ByID(b.cfg.Platform.I2CBus)
	if err != nil {
		return nil, 0, err
	}
	return ads7830.New(bus, dc), ch, nil
}

// Motor claims the motor pins and returns a braked motor.
func (b *Board) Motor() (*motor.Motor, error) {
	m := b.cfg.Motor
	ic, err := config.ParseIC(m.IC)
	if err != nil {
		return nil, err
	}
	in1, err := b.prov.Output(m.In1)
	if err != nil {
		return nil, fmt.Errorf("motor in1: %w", err)
	}
	in2, err := b.prov.Output(m.In2)
	if err != nil {
		return nil, fmt.Errorf("motor in2: %w", err)
	}
	pwm, err := b.prov.PWM(m.PWM, m.PWMHz)
	if err != nil {
		return nil, fmt.Errorf("motor pwm: %w", err)
	}
	return motor.New(ic, in1, in2, pwm)
}

// Stepper claims the phase pins in wiring order.
func (b *Board) Stepper() (*stepper.Stepper, error) {
	sc, err := b.cfg.Stepper.Device()
	if err != nil {
		return nil, err
	}
	pins := make([]halcore.OutputPin, 0, len(b.cfg.Stepper.Pins))
	for _, name := range b.cfg.Stepper.Pins {
		p, err := b.prov.Output(name)
		if err != nil {
			return nil, fmt.Errorf("stepper: %w", err)
		}
		pins = append(pins, p)
	}
	return stepper.New(pins, sc)
}

// LED returns the LED PWM output, enabled at zero duty.
func (b *Board) LED() (halcore.PWM, error) {
	l := b.cfg.LED
	pwm, err := b.prov.PWM(l.PWM, l.PWMHz)
	if err != nil {
		return nil, fmt.Errorf("led: %w", err)
	}
	if err := pwm.SetDuty(0); err != nil {
		return nil, err
	}
	if err := pwm.Enable(); err != nil {
		return nil, err
	}
	return pwm, nil
}
