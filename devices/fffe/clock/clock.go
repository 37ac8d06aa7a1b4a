// Package clock implements the virtual time base and the rate dividers
// which derive instruction and timer cycles from it.
package clock

import (
	"math/bits"
	"time"
)

// Default rates in herz.
const (
	CPURate   = 500 // Instruction execution rate.
	TimerRate = 60  // Delay and sound timer decrement rate.
)

// Clock is a monotonic virtual time source advancing by 1/rate per tick.
// Time is derived from the tick count, so it never accumulates rounding drift.
type Clock struct {
	rate  uint64
	ticks uint64
}

// New creates a clock ticking at the given rate in herz.
func New(rate int) *Clock {
	if rate < 1 {
		rate = 1
	}
	return &Clock{rate: uint64(rate)}
}

// Rate returns the tick rate in herz.
func (c *Clock) Rate() int {
	return int(c.rate)
}

// Tick advances virtual time by one period.
func (c *Clock) Tick() {
	c.ticks++
}

// Ticks returns the number of ticks since the last reset.
func (c *Clock) Ticks() uint64 {
	return c.ticks
}

// Now returns the elapsed virtual time.
func (c *Clock) Now() time.Duration {
	return time.Duration(mulDiv(c.ticks, uint64(time.Second), c.rate))
}

// Reset rewinds virtual time to zero.
func (c *Clock) Reset() {
	c.ticks = 0
}

// SetTicks moves virtual time to the given tick count.
func (c *Clock) SetTicks(n uint64) {
	c.ticks = n
}

// Divider reports when a logical cycle at its own rate has elapsed.
// The cycle count is recomputed from absolute time on every call.
type Divider struct {
	rate   uint64
	cycles uint64
}

// NewDivider creates a divider for the given rate in herz.
func NewDivider(rate int) *Divider {
	if rate < 1 {
		rate = 1
	}
	return &Divider{rate: uint64(rate)}
}

// Rate returns the divider rate in herz.
func (d *Divider) Rate() int {
	return int(d.rate)
}

// Tick updates the cycle count for the given time and returns true if it
// differs from the previous count.
func (d *Divider) Tick(now time.Duration) bool {
	if now < 0 {
		now = 0
	}

	previous := d.cycles
	d.cycles = mulDiv(uint64(now), d.rate, uint64(time.Second))
	return d.cycles != previous
}

// Cycles returns the cycle count computed by the last Tick.
func (d *Divider) Cycles() uint64 {
	return d.cycles
}

// Reset sets the cycle count back to zero.
func (d *Divider) Reset() {
	d.cycles = 0
}

// SetCycles overrides the cycle count. The next Tick reports a cycle
// only if its time maps to a different count.
func (d *Divider) SetCycles(n uint64) {
	d.cycles = n
}

// mulDiv returns floor(a*b/c) without intermediate overflow.
func mulDiv(a, b, c uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi >= c {
		return ^uint64(0)
	}
	q, _ := bits.Div64(hi, lo, c)
	return q
}
