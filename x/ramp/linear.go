package ramp

import (
	"errors"
	"time"

	"rpizw-go/x/mathx"
)

// ErrCancelled is returned when Tick stops a ramp early.
var ErrCancelled = errors.New("ramp: cancelled")

// Set applies one duty level in [0, 1].
type Set func(duty float64) error

// Tick waits for d and reports whether to continue (false => cancelled).
type Tick func(d time.Duration) bool

// Linear drives duty from 'from' to 'to' in steps equal increments
// (steps+1 levels, both ends included). Each level is followed by one tick.
// steps<=0 snaps to 'to'. Levels are clamped to [0, 1].
func Linear(from, to float64, steps int, every time.Duration, tick Tick, set Set) error {
	if steps <= 0 {
		return set(mathx.Clamp(to, 0, 1))
	}
	span := to - from
	for i := 0; i <= steps; i++ {
		lvl := from + span*float64(i)/float64(steps)
		if err := set(mathx.Clamp(lvl, 0, 1)); err != nil {
			return err
		}
		if !tick(every) {
			return ErrCancelled
		}
	}
	return nil
}
