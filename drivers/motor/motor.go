// Package motor drives one DC motor through a dual H-bridge channel: two
// direction inputs and one PWM speed input.
//
// Direction is re-asserted on every Run; the driver keeps no notion of a
// current direction. The bridge IC only affects construction.
package motor

import (
	"rpizw-go/errcode"
	"rpizw-go/halcore"
	"rpizw-go/x/mathx"
)

// IC identifies the bridge chip wired to the motor.
type IC uint8

const (
	L298 IC = iota
	TB6612FNG
)

func (ic IC) String() string {
	switch ic {
	case L298:
		return "l298"
	case TB6612FNG:
		return "tb6612fng"
	default:
		return "unknown"
	}
}

// Command is a bridge direction state.
type Command uint8

const (
	ClockWise        Command = iota // IN1 high, IN2 low
	CounterClockWise                // IN1 low, IN2 high
	Coast                           // both low, free spin
	Brake                           // both high, short brake
)

func (c Command) String() string {
	switch c {
	case ClockWise:
		return "cw"
	case CounterClockWise:
		return "ccw"
	case Coast:
		return "coast"
	case Brake:
		return "brake"
	default:
		return "unknown"
	}
}

// levels returns the IN1/IN2 levels for c.
func (c Command) levels() (in1, in2 bool) {
	switch c {
	case ClockWise:
		return true, false
	case CounterClockWise:
		return false, true
	case Coast:
		return false, false
	default:
		return true, true
	}
}

// Motor owns two direction pins and one PWM output.
type Motor struct {
	in1 halcore.OutputPin
	in2 halcore.OutputPin
	pwm halcore.PWM
	ic  IC
}

// New takes ownership of the pins, puts the bridge in brake and enables PWM.
func New(ic IC, in1, in2 halcore.OutputPin, pwm halcore.PWM) (*Motor, error) {
	// Both supported chips brake with IN1=IN2=high.
	switch ic {
	case L298, TB6612FNG:
		if err := in1.High(); err != nil {
			return nil, err
		}
		if err := in2.High(); err != nil {
			return nil, err
		}
	default:
		return nil, errcode.InvalidParams
	}
	if err := pwm.Enable(); err != nil {
		return nil, err
	}
	return &Motor{in1: in1, in2: in2, pwm: pwm, ic: ic}, nil
}

// NewL298 creates a Motor on an L298 bridge.
func NewL298(in1, in2 halcore.OutputPin, pwm halcore.PWM) (*Motor, error) {
	return New(L298, in1, in2, pwm)
}

// NewTB6612FNG creates a Motor on a TB6612FNG bridge.
func NewTB6612FNG(in1, in2 halcore.OutputPin, pwm halcore.PWM) (*Motor, error) {
	return New(TB6612FNG, in1, in2, pwm)
}

func (m *Motor) IC() IC { return m.ic }

// Run sets the direction pins for cmd, then the PWM duty. duty is clamped to
// [0, 1] and NaN runs at 0. The first failing write is returned and later writes are skipped.
func (m *Motor) Run(cmd Command, duty float64) error {
	l1, l2 := cmd.levels()
	if err := halcore.SetLevel(m.in1, l1); err != nil {
		return err
	}
	if err := halcore.SetLevel(m.in2, l2); err != nil {
		return err
	}
	return m.pwm.SetDuty(mathx.Unit(duty))
}

// FromSigned maps a signed speed in [-1, 1] to a command and duty. Positive
// is clockwise, negative counter-clockwise, zero coasts.
func FromSigned(v float64) (Command, float64) {
	v = mathx.Clamp(v, -1, 1)
	switch {
	case v > 0:
		return ClockWise, v
	case v < 0:
		return CounterClockWise, -v
	default:
		return Coast, 0
	}
}
