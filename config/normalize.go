// config/normalize.go
package config

import "rpizw-go/x/strx"

// Defaults match the reference wiring on a Raspberry Pi Zero W.
const (
	DefaultI2CBus      = "1"
	DefaultADCAddress  = 0x4b
	DefaultVRef        = 3.3
	DefaultADCInterval = 100

	DefaultMotorPWMHz    = 120
	DefaultMotorInterval = 100

	DefaultStepperSettle = 3

	DefaultLEDPWMHz    = 100
	DefaultLEDInterval = 30
)

var defaultStepperPins = []string{"GPIO18", "GPIO23", "GPIO24", "GPIO25"}

// Normalize fills unset fields with defaults. Set fields are kept as-is.
func Normalize(cfg *Config) {
	cfg.Platform.I2CBus = strx.Coalesce(cfg.Platform.I2CBus, DefaultI2CBus)

	a := &cfg.ADC
	if a.Address == 0 {
		a.Address = DefaultADCAddress
	}
	a.Reference = strx.Coalesce(strx.Key(a.Reference), "internal")
	a.Channel = strx.Coalesce(strx.Key(a.Channel), "single0")
	if a.VRef == 0 {
		a.VRef = DefaultVRef
	}
	if a.IntervalMs == 0 {
		a.IntervalMs = DefaultADCInterval
	}

	m := &cfg.Motor
	m.IC = strx.Coalesce(strx.Key(m.IC), "l298")
	m.In1 = strx.Coalesce(m.In1, "GPIO27")
	m.In2 = strx.Coalesce(m.In2, "GPIO17")
	m.PWM = strx.Coalesce(m.PWM, "GPIO18")
	if m.PWMHz == 0 {
		m.PWMHz = DefaultMotorPWMHz
	}
	if m.IntervalMs == 0 {
		m.IntervalMs = DefaultMotorInterval
	}

	s := &cfg.Stepper
	if len(s.Pins) == 0 {
		s.Pins = append([]string(nil), defaultStepperPins...)
	}
	s.Dir = strx.Coalesce(strx.Key(s.Dir), "ccw")
	if s.SettleMs == 0 {
		s.SettleMs = DefaultStepperSettle
	}

	l := &cfg.LED
	l.PWM = strx.Coalesce(l.PWM, "GPIO18")
	if l.PWMHz == 0 {
		l.PWMHz = DefaultLEDPWMHz
	}
	if l.IntervalMs == 0 {
		l.IntervalMs = DefaultLEDInterval
	}
}
