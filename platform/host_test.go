package platform

import (
	"errors"
	"math"
	"testing"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"tinygo.org/x/drivers"

	"rpizw-go/errcode"
)

// Compile-time check.
var _ drivers.I2C = (*HostI2C)(nil)

func TestHostStablePins(t *testing.T) {
	h := NewHost()
	a, err := h.Output("GPIO17")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := h.Output("GPIO17")
	if a != b {
		t.Fatal("same name returned different pins")
	}
	if err := a.High(); err != nil {
		t.Fatal(err)
	}
	p, ok := h.Pin("GPIO17")
	if !ok || !p.Level() || p.Writes() != 1 {
		t.Fatalf("pin state ok=%v level=%v writes=%d", ok, p.Level(), p.Writes())
	}
}

func TestHostPinClaimConflict(t *testing.T) {
	h := NewHost()
	if _, err := h.PWM("GPIO18", 120); err != nil {
		t.Fatal(err)
	}
	_, err := h.Output("GPIO18")
	if !errors.Is(err, errcode.PinInUse) {
		t.Fatalf("err = %v", err)
	}
	if _, err := h.PWM("GPIO19", 0); !errors.Is(err, errcode.InvalidParams) {
		t.Fatalf("zero freq err = %v", err)
	}
}

func TestFakePinFail(t *testing.T) {
	boom := errors.New("boom")
	p := &FakePin{name: "GPIO17"}
	p.Fail(boom)
	err := p.Low()
	if !errors.Is(err, boom) || errcode.Of(err) != errcode.PinFault {
		t.Fatalf("err = %v", err)
	}
	p.Fail(nil)
	if err := p.High(); err != nil || !p.Level() || p.Writes() != 1 {
		t.Fatalf("err=%v level=%v writes=%d", err, p.Level(), p.Writes())
	}
}

func TestHostI2CRecordsAndSweeps(t *testing.T) {
	b := &HostI2C{}
	r := make([]byte, 1)
	var seen []byte
	for i := 0; i < 3; i++ {
		if err := b.Tx(0x4b, []byte{0x84}, r); err != nil {
			t.Fatal(err)
		}
		seen = append(seen, r[0])
	}
	if b.LastTx.Addr != 0x4b || len(b.LastTx.W) != 1 || b.LastTx.W[0] != 0x84 || b.LastTx.Rn != 1 {
		t.Fatalf("last tx %+v", b.LastTx)
	}
	if b.Count != 3 || seen[0] != 0 || seen[1] != 5 || seen[2] != 10 {
		t.Fatalf("count=%d seen=%v", b.Count, seen)
	}
}

func TestHostI2CReply(t *testing.T) {
	b := &HostI2C{Reply: func(uint16, []byte, []byte) error { return errcode.NotReady }}
	if err := b.Tx(0x48, []byte{0}, make([]byte, 1)); !errors.Is(err, errcode.NotReady) {
		t.Fatalf("err = %v", err)
	}
}

func TestToDuty(t *testing.T) {
	if toDuty(0) != 0 || toDuty(1) != gpio.DutyMax || toDuty(2) != gpio.DutyMax {
		t.Fatal("end points")
	}
	if toDuty(math.NaN()) != 0 || toDuty(-1) != 0 {
		t.Fatal("NaN and negative must map to zero duty")
	}
	if d := toDuty(0.5); d != gpio.DutyHalf {
		t.Fatalf("half = %d, want %d", d, gpio.DutyHalf)
	}
}

func TestFakePWMFail(t *testing.T) {
	boom := errors.New("boom")
	w := &FakePWM{name: "GPIO18"}
	w.Fail(boom)
	if err := w.Enable(); errcode.Of(err) != errcode.PinFault || !errors.Is(err, boom) {
		t.Fatalf("enable err = %v", err)
	}
	if err := w.SetDuty(0.5); errcode.MapDriverErr(err) != errcode.PinFault {
		t.Fatalf("duty err = %v", err)
	}
	if w.Enabled() || w.Duty() != 0 {
		t.Fatal("failed calls must not change state")
	}
}

// Out fails; every other gpio.PinOut method is left nil.
type failingPinOut struct {
	gpio.PinOut
	err error
}

func (f failingPinOut) Out(gpio.Level) error                  { return f.err }
func (f failingPinOut) PWM(gpio.Duty, physic.Frequency) error { return f.err }

func TestPeriphWritesReportPinFault(t *testing.T) {
	eio := errors.New("write /sys/class/gpio: EIO")
	out := &periphOut{name: "GPIO27", pin: failingPinOut{err: eio}}
	for _, err := range []error{out.High(), out.Low()} {
		if !errors.Is(err, errcode.PinFault) || !errors.Is(err, eio) {
			t.Fatalf("err = %v", err)
		}
	}
	w := &periphPWM{name: "GPIO18", pin: failingPinOut{err: eio}, freq: physic.KiloHertz}
	if err := w.SetDuty(0.5); err != nil {
		t.Fatalf("duty before enable: %v", err)
	}
	if err := w.Enable(); errcode.Of(err) != errcode.PinFault {
		t.Fatalf("enable err = %v", err)
	}
	if err := w.SetDuty(0.5); errcode.Of(err) != errcode.PinFault {
		t.Fatalf("duty err = %v", err)
	}

	ok := &periphOut{name: "GPIO27", pin: failingPinOut{}}
	if err := ok.High(); err != nil {
		t.Fatalf("nil write error became %v", err)
	}
}
