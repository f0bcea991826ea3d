// Package clock turns wall time into the whole time units the ledger counts
// in (days by default).
package clock

import (
	"sync/atomic"
	"time"
)

type Clock interface {
	Now() uint64
}

// Units counts whole units elapsed since Epoch.
type Units struct {
	Epoch time.Time
	Unit  time.Duration
	wall  func() time.Time
}

func NewUnits(epoch time.Time, unit time.Duration) *Units {
	if unit <= 0 {
		unit = 24 * time.Hour
	}
	return &Units{Epoch: epoch, Unit: unit, wall: time.Now}
}

func (u *Units) Now() uint64 {
	d := u.wall().Sub(u.Epoch)
	if d < 0 {
		return 0
	}
	return uint64(d / u.Unit)
}

// Manual is a settable clock for tests and replays.
type Manual struct{ now atomic.Uint64 }

func NewManual(start uint64) *Manual {
	m := &Manual{}
	m.now.Store(start)
	return m
}

func (m *Manual) Now() uint64      { return m.now.Load() }
func (m *Manual) Set(t uint64)     { m.now.Store(t) }
func (m *Manual) Advance(d uint64) { m.now.Add(d) }
