// Package ads7830 provides a driver for the ADS7830 8-channel, 8-bit
// analog-to-digital converter on an I²C bus.
//
// Each conversion is a single combined transaction: one command byte is
// written and one result byte is read back with a repeated start.
//
//	adc := ads7830.New(bus, ads7830.Config{Address: 0x4b})
//	c, err := adc.Read(ads7830.Single0)
//	if err == nil && c.Ready {
//		v := c.Volts(3.3)
//	}
//
// A conversion that is not ready yet is not an error; the caller decides when
// to retry. The driver has no internal retry loop.
//
// Concurrency: methods are not safe for concurrent use from multiple goroutines.
package ads7830

import (
	"errors"
	"strconv"

	"rpizw-go/errcode"
	"rpizw-go/halcore"
)

// Command byte layout.
const (
	cmdStart     = 1 << 7 // start bit; overlaps the SD bit of the code
	chanShift    = 4      // SD, C2..C0 occupy bits 7..4
	refShift     = 3      // PD1: internal reference on
	cmdConverter = 1 << 2 // PD0: converter stays powered between conversions
)

// Reference selects the voltage reference mode.
type Reference uint8

const (
	RefInternal Reference = 0
	RefExternal Reference = 1
)

func (r Reference) String() string {
	if r == RefExternal {
		return "external"
	}
	return "internal"
}

// Config is fixed for the lifetime of a Device.
type Config struct {
	// Address is the 7-bit bus address, 0x48..0x4B depending on A1/A0.
	// It is used as given; board defaults live in the config package.
	Address   uint16
	Reference Reference
}

// Device is an ADS7830 on an I²C bus.
type Device struct {
	bus  halcore.I2C
	addr uint16
	ref  Reference

	// Fixed buffers to avoid per-call heap allocations.
	w [1]byte
	r [1]byte
}

// New creates a Device. It does not touch the bus.
func New(bus halcore.I2C, cfg Config) *Device {
	return &Device{
		bus:  bus,
		addr: cfg.Address,
		ref:  cfg.Reference,
	}
}

// Introspection.
func (d *Device) Address() uint16      { return d.addr }
func (d *Device) Reference() Reference { return d.ref }

// CommandByte builds the command byte selecting ch with reference mode ref.
func CommandByte(ch Channel, ref Reference) byte {
	return cmdStart | ch.Code()<<chanShift | byte(ref&1)<<refShift | cmdConverter
}

// Read performs one conversion on ch.
//
// If the bus reports that the device is not prepared to answer, Read returns
// a Conversion with Ready=false and a nil error. Any other bus error is
// returned as-is. A selector outside Channels() fails with InvalidParams
// before the bus is touched.
func (d *Device) Read(ch Channel) (Conversion, error) {
	if !ch.Valid() {
		return Conversion{}, &errcode.E{C: errcode.InvalidParams, Op: "ads7830.read", Msg: "unknown channel " + strconv.Itoa(int(ch))}
	}
	d.w[0] = CommandByte(ch, d.ref)
	if err := d.bus.Tx(d.addr, d.w[:], d.r[:]); err != nil {
		if errors.Is(err, errcode.NotReady) {
			return Conversion{}, nil
		}
		return Conversion{}, err
	}
	return Conversion{Value: d.r[0], Ready: true}, nil
}
