// halcore/types.go
package halcore

import (
	"tinygo.org/x/drivers"
)

// ---- Buses ----

// I2C is the bus capability used by I²C drivers (tinygo.org/x/drivers.I2C).
//
// NOTE: Tx MUST perform a write followed by a repeated-start read when both
// w and r are provided, without releasing the bus.
//
// A bus that knows the addressed device is not yet prepared to answer reports
// it with an error matching errcode.NotReady. Any other error is a bus fault.
type I2C = drivers.I2C

// I2CBusFactory supplies configured I²C buses by id.
type I2CBusFactory interface {
	ByID(id string) (I2C, error)
}

// ---- GPIO abstractions ----

// OutputPin is a digital output. Each level change may fail.
type OutputPin interface {
	High() error
	Low() error
}

// PWM is a single PWM output. Duty is a fraction in [0, 1].
type PWM interface {
	Enable() error
	SetDuty(fraction float64) error
}

// PinFactory supplies outputs by platform pin name (e.g. "GPIO17").
type PinFactory interface {
	Output(name string) (OutputPin, error)
	PWM(name string, freqHz uint32) (PWM, error)
}

// SetLevel drives p high or low.
func SetLevel(p OutputPin, high bool) error {
	if high {
		return p.High()
	}
	return p.Low()
}
