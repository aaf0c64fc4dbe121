package ads7830

import (
	"errors"
	"math"
	"testing"

	"tinygo.org/x/drivers"

	"rpizw-go/errcode"
)

// Compile-time check.
var _ drivers.I2C = (*fakeI2C)(nil)

// Records each transaction and answers with a scripted byte or error.
type fakeI2C struct {
	calls int
	addr  uint16
	w     []byte
	rn    int
	reply byte
	err   error
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	f.calls++
	f.addr = addr
	f.w = append([]byte(nil), w...)
	f.rn = len(r)
	if f.err != nil {
		return f.err
	}
	if len(r) > 0 {
		r[0] = f.reply
	}
	return nil
}

func TestChannelCodeTable(t *testing.T) {
	want := map[Channel]uint8{
		Diff01: 0b0000, Diff23: 0b0001, Diff45: 0b0010, Diff67: 0b0011,
		Diff10: 0b0100, Diff32: 0b0101, Diff54: 0b0110, Diff76: 0b0111,
		Single0: 0b1000, Single1: 0b1100, Single2: 0b1001, Single3: 0b1101,
		Single4: 0b1010, Single5: 0b1110, Single6: 0b1011, Single7: 0b1111,
	}
	if len(want) != int(numChannels) {
		t.Fatalf("table covers %d selectors, want %d", len(want), numChannels)
	}
	seen := make(map[uint8]Channel)
	for _, ch := range Channels() {
		got := ch.Code()
		if got != want[ch] {
			t.Errorf("%s: code %04b, want %04b", ch, got, want[ch])
		}
		if got > 0x0F {
			t.Errorf("%s: code %#x exceeds 4 bits", ch, got)
		}
		if prev, dup := seen[got]; dup {
			t.Errorf("%s and %s share code %04b", prev, ch, got)
		}
		seen[got] = ch
	}
}

func TestCommandByteSingle0Internal(t *testing.T) {
	cmd := CommandByte(Single0, RefInternal)
	if cmd&0x80 == 0 {
		t.Fatalf("start bit not set: %08b", cmd)
	}
	if got := (cmd >> 4) & 0x0F; got != Single0.Code() {
		t.Fatalf("channel bits = %04b, want %04b", got, Single0.Code())
	}
	if cmd&0x08 != 0 {
		t.Fatalf("reference bit set for internal: %08b", cmd)
	}
	if cmd&0x04 == 0 {
		t.Fatalf("converter power bit not set: %08b", cmd)
	}
	if cmd&0x03 != 0 {
		t.Fatalf("low bits not zero: %08b", cmd)
	}
	if cmd != 0x84 {
		t.Fatalf("cmd = %#02x, want 0x84", cmd)
	}
}

func TestCommandByteAllChannels(t *testing.T) {
	for _, ref := range []Reference{RefInternal, RefExternal} {
		for _, ch := range Channels() {
			want := byte(0x80) | ch.Code()<<4 | byte(ref)<<3 | 0x04
			if got := CommandByte(ch, ref); got != want {
				t.Errorf("%s/%s: %08b, want %08b", ch, ref, got, want)
			}
		}
	}
	if got := CommandByte(Single7, RefExternal); got != 0xFC {
		t.Fatalf("single7/external = %#02x, want 0xfc", got)
	}
}

func TestReadReady(t *testing.T) {
	bus := &fakeI2C{reply: 0x7F}
	d := New(bus, Config{Address: 0x4b})

	c, err := d.Read(Single3)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !c.Ready || c.Value != 0x7F {
		t.Fatalf("got %+v, want ready 0x7f", c)
	}
	if bus.calls != 1 {
		t.Fatalf("transactions = %d, want 1", bus.calls)
	}
	if bus.addr != 0x4b {
		t.Fatalf("addr = %#x, want 0x4b", bus.addr)
	}
	if len(bus.w) != 1 || bus.w[0] != CommandByte(Single3, RefInternal) {
		t.Fatalf("write = % x", bus.w)
	}
	if bus.rn != 1 {
		t.Fatalf("read len = %d, want 1", bus.rn)
	}
}

func TestReadNotReady(t *testing.T) {
	cases := []error{
		errcode.NotReady,
		&errcode.E{C: errcode.NotReady, Op: "i2c.tx"},
	}
	for _, e := range cases {
		d := New(&fakeI2C{err: e}, Config{})
		c, err := d.Read(Single0)
		if err != nil {
			t.Fatalf("%v: unexpected error %v", e, err)
		}
		if c.Ready {
			t.Fatalf("%v: conversion reported ready", e)
		}
	}
}

func TestReadBusFaultPassesThrough(t *testing.T) {
	nack := errors.New("i2c: nack")
	d := New(&fakeI2C{err: nack}, Config{})
	_, err := d.Read(Diff01)
	if err != nack {
		t.Fatalf("err = %v, want the bus error unchanged", err)
	}
}

func TestConstructionValuesKept(t *testing.T) {
	d := New(&fakeI2C{}, Config{Address: 0x4a, Reference: RefExternal})
	for i := 0; i < 2; i++ {
		if d.Address() != 0x4a {
			t.Fatalf("Address = %#x", d.Address())
		}
		if d.Reference() != RefExternal {
			t.Fatalf("Reference = %s", d.Reference())
		}
	}
	for _, addr := range []uint16{0, 0x48, 0x4b} {
		if got := New(&fakeI2C{}, Config{Address: addr}).Address(); got != addr {
			t.Fatalf("Address = %#x, want %#x", got, addr)
		}
	}
}

func TestReadUnknownChannel(t *testing.T) {
	bus := &fakeI2C{reply: 9}
	d := New(bus, Config{Address: 0x4b})
	for _, ch := range []Channel{numChannels, Channel(42), Channel(255)} {
		c, err := d.Read(ch)
		if !errors.Is(err, errcode.InvalidParams) {
			t.Fatalf("Read(%d) err = %v, want invalid_params", ch, err)
		}
		if c.Ready {
			t.Fatalf("Read(%d) = %+v", ch, c)
		}
	}
	if bus.calls != 0 {
		t.Fatalf("bus touched %d times", bus.calls)
	}
}

func TestReadUsesStoredReference(t *testing.T) {
	bus := &fakeI2C{}
	d := New(bus, Config{Reference: RefExternal})
	if _, err := d.Read(Single0); err != nil {
		t.Fatal(err)
	}
	if bus.w[0]&0x08 == 0 {
		t.Fatalf("reference bit missing: %08b", bus.w[0])
	}
}

func TestVolts(t *testing.T) {
	cases := []struct {
		v    uint8
		want float64
	}{
		{0, 0},
		{255, 3.3},
		{128, 128.0 / 255 * 3.3},
	}
	for _, tc := range cases {
		got := Conversion{Value: tc.v, Ready: true}.Volts(3.3)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("v=%d: %f, want %f", tc.v, got, tc.want)
		}
	}
	if mv := (Conversion{Value: 255}).MilliVolts(3300); mv != 3300 {
		t.Fatalf("MilliVolts(255) = %d", mv)
	}
	if mv := (Conversion{Value: 0}).MilliVolts(3300); mv != 0 {
		t.Fatalf("MilliVolts(0) = %d", mv)
	}
}
