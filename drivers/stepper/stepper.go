// Package stepper drives a unipolar stepper motor one full step at a time by
// energising its phase pins in wiring order.
//
// Exactly one phase is high between calls. Every Step is synchronous and
// blocks for the settle delay after the phase change.
package stepper

import (
	"time"

	"rpizw-go/errcode"
	"rpizw-go/halcore"
)

// Dir is the rotation direction.
type Dir uint8

const (
	CCW Dir = iota // towards lower pin indices
	CW             // towards higher pin indices
)

func (d Dir) String() string {
	if d == CW {
		return "cw"
	}
	return "ccw"
}

// Reverse returns the opposite direction.
func (d Dir) Reverse() Dir {
	if d == CW {
		return CCW
	}
	return CW
}

// Config sets the initial state.
type Config struct {
	// Start is the index of the phase energised at construction.
	Start int
	Dir   Dir
	// Settle is how long a phase stays energised before the next change.
	Settle time.Duration
}

// Stepper owns its phase pins.
type Stepper struct {
	pins   []halcore.OutputPin
	pos    int
	dir    Dir
	settle time.Duration

	sleep func(time.Duration)
}

// New takes ownership of pins (hardware wiring order), drives every phase low,
// energises cfg.Start and waits one settle interval.
func New(pins []halcore.OutputPin, cfg Config) (*Stepper, error) {
	if len(pins) == 0 || cfg.Start < 0 || cfg.Start >= len(pins) {
		return nil, errcode.InvalidParams
	}
	s := &Stepper{
		pins:   append([]halcore.OutputPin(nil), pins...),
		pos:    cfg.Start,
		dir:    cfg.Dir,
		settle: cfg.Settle,
		sleep:  time.Sleep,
	}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Stepper) init() error {
	for _, p := range s.pins {
		if err := p.Low(); err != nil {
			return err
		}
	}
	if err := s.pins[s.pos].High(); err != nil {
		return err
	}
	s.sleep(s.settle)
	return nil
}

// Introspection.
func (s *Stepper) Position() int { return s.pos }
func (s *Stepper) Dir() Dir      { return s.dir }
func (s *Stepper) Len() int      { return len(s.pins) }

// SetDir changes direction for subsequent steps. No pin is touched.
func (s *Stepper) SetDir(d Dir) { s.dir = d }

// next returns the neighbouring index in the current direction, wrapping at
// both ends.
func (s *Stepper) next() int {
	n := len(s.pins)
	if s.dir == CW {
		return (s.pos + 1) % n
	}
	return (s.pos + n - 1) % n
}

// Step de-energises the current phase, energises the next one and waits the
// settle delay. On failure the position is not advanced and no sleep happens.
func (s *Stepper) Step() error {
	next := s.next()
	if err := s.pins[s.pos].Low(); err != nil {
		return err
	}
	if err := s.pins[next].High(); err != nil {
		return err
	}
	s.pos = next
	s.sleep(s.settle)
	return nil
}

// Steps performs n single steps, stopping at the first failure.
func (s *Stepper) Steps(n int) error {
	for i := 0; i < n; i++ {
		if err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}
