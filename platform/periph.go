// platform/periph.go
package platform

import (
	"errors"
	"strconv"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"rpizw-go/errcode"
	"rpizw-go/halcore"
	"rpizw-go/x/mathx"
)

// Periph provides buses and pins of the running board through periph.io.
// Pins are addressed by periph names (e.g. "GPIO17"); buses by i2creg names
// (e.g. "1" for /dev/i2c-1, "" for the first bus found).
type Periph struct {
	buses map[string]i2c.BusCloser
}

// NewPeriph loads the periph host drivers.
func NewPeriph() (*Periph, error) {
	if _, err := host.Init(); err != nil {
		return nil, errcode.Wrap(errcode.Error, "host.init", err)
	}
	return &Periph{buses: make(map[string]i2c.BusCloser)}, nil
}

// ByID opens (once) and returns the named I²C bus.
func (p *Periph) ByID(id string) (halcore.I2C, error) {
	if b, ok := p.buses[id]; ok {
		return b, nil
	}
	b, err := i2creg.Open(id)
	if err != nil {
		return nil, &errcode.E{C: errcode.UnknownBus, Op: "i2c.open", Msg: strconv.Quote(id), Err: err}
	}
	p.buses[id] = b
	return b, nil
}

// Output returns name configured as a digital output.
func (p *Periph) Output(name string) (halcore.OutputPin, error) {
	pin, err := lookup(name)
	if err != nil {
		return nil, err
	}
	return &periphOut{name: name, pin: pin}, nil
}

// PWM returns name as a hardware PWM output running at freqHz. The output
// stays idle until Enable.
func (p *Periph) PWM(name string, freqHz uint32) (halcore.PWM, error) {
	if freqHz == 0 {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "pwm", Msg: "zero frequency"}
	}
	pin, err := lookup(name)
	if err != nil {
		return nil, err
	}
	return &periphPWM{name: name, pin: pin, freq: physic.Frequency(freqHz) * physic.Hertz}, nil
}

// Close releases every opened bus.
func (p *Periph) Close() error {
	var errs []error
	for id, b := range p.buses {
		errs = append(errs, b.Close())
		delete(p.buses, id)
	}
	return errors.Join(errs...)
}

func lookup(name string) (gpio.PinIO, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, &errcode.E{C: errcode.UnknownPin, Op: "gpio", Msg: strconv.Quote(name)}
	}
	return pin, nil
}

// ---- GPIO output ----

type periphOut struct {
	name string
	pin  gpio.PinOut
}

func (o *periphOut) High() error { return pinFault("gpio.out", o.name, o.pin.Out(gpio.High)) }
func (o *periphOut) Low() error  { return pinFault("gpio.out", o.name, o.pin.Out(gpio.Low)) }

// ---- PWM ----

type periphPWM struct {
	name    string
	pin     gpio.PinOut
	freq    physic.Frequency
	duty    gpio.Duty
	enabled bool
}

func (w *periphPWM) Enable() error {
	w.enabled = true
	return pinFault("pwm.enable", w.name, w.pin.PWM(w.duty, w.freq))
}

// SetDuty stores the duty and applies it if the output is enabled.
func (w *periphPWM) SetDuty(fraction float64) error {
	w.duty = toDuty(fraction)
	if !w.enabled {
		return nil
	}
	return pinFault("pwm.duty", w.name, w.pin.PWM(w.duty, w.freq))
}

func toDuty(fraction float64) gpio.Duty {
	return gpio.Duty(mathx.Unit(fraction)*float64(gpio.DutyMax) + 0.5)
}
