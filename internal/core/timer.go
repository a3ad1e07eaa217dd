package core

import "time"

// maxBacklog bounds how many ticks a stalled loop may replay.
const maxBacklog = 5

// FixedStep paces a loop at a fixed tick rate. Time owed to the loop is
// banked and spent one tick per ShouldStep call.
type FixedStep struct {
	interval time.Duration
	owed     time.Duration
	prev     time.Time
	now      func() time.Time
}

// NewFixedStep returns a pacer for tps ticks per second. The first call to
// ShouldStep always fires.
func NewFixedStep(tps int) *FixedStep {
	p := &FixedStep{now: time.Now}
	p.SetTPS(tps)
	p.owed = p.interval
	return p
}

// SetTPS changes the rate; non-positive values select 60.
func (p *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	p.interval = time.Second / time.Duration(tps)
}

// Interval is the length of one tick.
func (p *FixedStep) Interval() time.Duration { return p.interval }

// ShouldStep banks the time since the previous call and reports whether a
// whole tick is owed.
func (p *FixedStep) ShouldStep() bool {
	t := p.now()
	if !p.prev.IsZero() {
		p.owed += t.Sub(p.prev)
	}
	p.prev = t
	if limit := maxBacklog * p.interval; p.owed > limit {
		p.owed = limit
	}
	if p.owed < p.interval {
		return false
	}
	p.owed -= p.interval
	return true
}

// Until reports how long until the next tick is owed.
func (p *FixedStep) Until() time.Duration {
	if p.owed >= p.interval {
		return 0
	}
	return p.interval - p.owed
}
