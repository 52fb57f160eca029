package session

import (
	"fmt"
	"time"
)

// TickInterval is how often a running countdown is decremented.
const TickInterval = time.Second

// Countdown is the remaining time budget of a timed session. It is tied
// to a session id so ticks scheduled for an older session are ignored.
type Countdown struct {
	SessionID string        `json:"sessionId"`
	Remaining time.Duration `json:"remainingNs"`
}

// NewCountdown starts a budget for the session with the given id.
func NewCountdown(sessionID string, budget time.Duration) Countdown {
	return Countdown{SessionID: sessionID, Remaining: budget}
}

// Tick removes one TickInterval from the budget, stopping at zero.
func (c Countdown) Tick() Countdown {
	c.Remaining -= TickInterval
	if c.Remaining < 0 {
		c.Remaining = 0
	}
	return c
}

// Expired reports whether the budget is used up.
func (c Countdown) Expired() bool {
	return c.Remaining <= 0
}

// String renders the remaining time as mm:ss.
func (c Countdown) String() string {
	secs := int(c.Remaining / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
