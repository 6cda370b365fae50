package behavior

import "github.com/phanxgames/arcade"

// Cooldown gates an action so it can run at most once per Duration seconds
// of scene time.
type Cooldown struct {
	Duration float64

	clock *arcade.Clock
	last  float64
	used  bool
	uses  int
}

// NewCooldown creates a ready cooldown measured on clock.
func NewCooldown(clock *arcade.Clock, duration float64) *Cooldown {
	return &Cooldown{Duration: duration, clock: clock}
}

// Ready reports whether Trigger would succeed.
func (c *Cooldown) Ready() bool {
	return c.Remaining() == 0
}

// Trigger starts the cooldown if it is ready and reports whether it did.
func (c *Cooldown) Trigger() bool {
	if !c.Ready() {
		return false
	}
	c.last = c.clock.Now()
	c.used = true
	c.uses++
	return true
}

// Remaining returns the seconds until the cooldown is ready.
func (c *Cooldown) Remaining() float64 {
	if !c.used {
		return 0
	}
	return max(c.Duration-(c.clock.Now()-c.last), 0)
}

// Progress returns how far the cooldown has recovered, in [0, 1].
func (c *Cooldown) Progress() float64 {
	if c.Duration <= 0 {
		return 1
	}
	return 1 - c.Remaining()/c.Duration
}

// Uses returns the number of successful triggers.
func (c *Cooldown) Uses() int {
	return c.uses
}

// Reset makes the cooldown ready immediately.
func (c *Cooldown) Reset() {
	c.used = false
}
