// platform/host.go
package platform

import (
	"strconv"
	"sync"

	"rpizw-go/errcode"
	"rpizw-go/halcore"
)

// ----------------------------- I²C (host) ------------------------------------

// HostI2C implements drivers.I2C without hardware. Reply scripts the answer;
// when nil every read byte follows a triangle sweep 0..255..0.
type HostI2C struct {
	mu     sync.Mutex
	Reply  func(addr uint16, w, r []byte) error
	LastTx struct {
		Addr uint16
		W    []byte
		Rn   int
	}
	Count int

	level byte
	down  bool
}

func (h *HostI2C) Tx(addr uint16, w, r []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.LastTx.Addr = addr
	h.LastTx.W = append([]byte(nil), w...)
	h.LastTx.Rn = len(r)
	h.Count++
	if h.Reply != nil {
		return h.Reply(addr, w, r)
	}
	for i := range r {
		r[i] = h.sweep()
	}
	return nil
}

func (h *HostI2C) sweep() byte {
	const step = 5
	v := h.level
	switch {
	case !h.down && h.level > 255-step:
		h.down = true
	case h.down && h.level < step:
		h.down = false
	}
	if h.down {
		h.level -= step
	} else {
		h.level += step
	}
	return v
}

// ----------------------------- GPIO (host) -----------------------------------

// FakePin records its level and the number of writes.
type FakePin struct {
	mu     sync.Mutex
	name   string
	high   bool
	writes int
	fail   error
}

func (p *FakePin) set(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail != nil {
		return pinFault("gpio.out", p.name, p.fail)
	}
	p.high = level
	p.writes++
	return nil
}

func (p *FakePin) High() error { return p.set(true) }
func (p *FakePin) Low() error  { return p.set(false) }

// Level reports the last written level.
func (p *FakePin) Level() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.high
}

func (p *FakePin) Writes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writes
}

// Fail makes every following write fail with PinFault wrapping err (nil
// clears it).
func (p *FakePin) Fail(err error) {
	p.mu.Lock()
	p.fail = err
	p.mu.Unlock()
}

// FakePWM records enable state and the last duty.
type FakePWM struct {
	mu      sync.Mutex
	name    string
	freqHz  uint32
	enabled bool
	duty    float64
	fail    error
}

func (w *FakePWM) Enable() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fail != nil {
		return pinFault("pwm.enable", w.name, w.fail)
	}
	w.enabled = true
	return nil
}

func (w *FakePWM) SetDuty(fraction float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fail != nil {
		return pinFault("pwm.duty", w.name, w.fail)
	}
	w.duty = fraction
	return nil
}

func (w *FakePWM) Enabled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.enabled
}

func (w *FakePWM) Duty() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.duty
}

func (w *FakePWM) FreqHz() uint32 { return w.freqHz }

// Fail makes every following call fail with PinFault wrapping err (nil
// clears it).
func (w *FakePWM) Fail(err error) {
	w.mu.Lock()
	w.fail = err
	w.mu.Unlock()
}

// ----------------------------- Factory (host) --------------------------------

// Host hands out stable fakes per name. A pin name is either an output or a
// PWM, never both.
type Host struct {
	mu    sync.Mutex
	buses map[string]*HostI2C
	outs  map[string]*FakePin
	pwms  map[string]*FakePWM
}

var (
	_ halcore.I2CBusFactory = (*Host)(nil)
	_ halcore.PinFactory    = (*Host)(nil)
	_ halcore.I2CBusFactory = (*Periph)(nil)
	_ halcore.PinFactory    = (*Periph)(nil)
)

func NewHost() *Host {
	return &Host{
		buses: make(map[string]*HostI2C),
		outs:  make(map[string]*FakePin),
		pwms:  make(map[string]*FakePWM),
	}
}

func (h *Host) ByID(id string) (halcore.I2C, error) {
	return h.Bus(id), nil
}

// Bus exposes the underlying *HostI2C for tests.
func (h *Host) Bus(id string) *HostI2C {
	h.mu.Lock()
	defer h.mu.Unlock()
	b, ok := h.buses[id]
	if !ok {
		b = &HostI2C{}
		h.buses[id] = b
	}
	return b
}

func (h *Host) Output(name string) (halcore.OutputPin, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.pwms[name]; ok {
		return nil, inUse(name)
	}
	p, ok := h.outs[name]
	if !ok {
		p = &FakePin{name: name}
		h.outs[name] = p
	}
	return p, nil
}

func (h *Host) PWM(name string, freqHz uint32) (halcore.PWM, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.outs[name]; ok {
		return nil, inUse(name)
	}
	if freqHz == 0 {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "pwm", Msg: "zero frequency"}
	}
	w, ok := h.pwms[name]
	if !ok {
		w = &FakePWM{name: name, freqHz: freqHz}
		h.pwms[name] = w
	}
	return w, nil
}

// Pin exposes the underlying *FakePin for tests.
func (h *Host) Pin(name string) (*FakePin, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.outs[name]
	return p, ok
}

// PWMOut exposes the underlying *FakePWM for tests.
func (h *Host) PWMOut(name string) (*FakePWM, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	w, ok := h.pwms[name]
	return w, ok
}

func (h *Host) Close() error { return nil }

func inUse(name string) error {
	return &errcode.E{C: errcode.PinInUse, Op: "gpio", Msg: strconv.Quote(name)}
}

// pinFault tags a failed pin write with the pin name. A nil err stays nil.
func pinFault(op, name string, err error) error {
	if err == nil {
		return nil
	}
	return &errcode.E{C: errcode.PinFault, Op: op, Msg: strconv.Quote(name), Err: err}
}
