package core

import "time"

// FrameGate throttles per-frame work to a target rate. A call that arrives
// before the interval has elapsed is skipped and does not move the mark; a
// late call runs once, so there are never catch-up frames.
type FrameGate struct {
	interval time.Duration
	last     time.Time
}

// NewFrameGate constructs a FrameGate targeting the given frames per second.
func NewFrameGate(fps int) *FrameGate {
	g := &FrameGate{}
	g.SetFPS(fps)
	return g
}

// SetFPS changes the frame rate. It is safe to call from the main loop.
func (g *FrameGate) SetFPS(fps int) {
	if fps <= 0 {
		fps = 60
	}
	g.interval = time.Second / time.Duration(fps)
}

// Interval reports the minimum spacing between frames.
func (g *FrameGate) Interval() time.Duration { return g.interval }

// Ready reports whether a frame should run at now and, if so, records now as
// the last frame time. The first call always runs.
func (g *FrameGate) Ready(now time.Time) bool {
	if !g.last.IsZero() && now.Sub(g.last) < g.interval {
		return false
	}
	g.last = now
	return true
}

// maxCatchUp bounds how many ticks Interval.Due reports after a stall.
const maxCatchUp = 20

// Interval is a periodic driver that only fires while started. Start is
// idempotent: at most one schedule is active.
type Interval struct {
	period  time.Duration
	next    time.Time
	running bool
}

// NewInterval creates a stopped interval with the given period.
func NewInterval(period time.Duration) *Interval {
	if period <= 0 {
		period = 50 * time.Millisecond
	}
	return &Interval{period: period}
}

// Period returns the tick spacing.
func (i *Interval) Period() time.Duration { return i.period }

// Start schedules the first tick one period after now. It returns false and
// leaves the schedule alone when already running.
func (i *Interval) Start(now time.Time) bool {
	if i.running {
		return false
	}
	i.running = true
	i.next = now.Add(i.period)
	return true
}

// Stop clears the schedule.
func (i *Interval) Stop() {
	i.running = false
	i.next = time.Time{}
}

// Running reports whether the interval is started.
func (i *Interval) Running() bool { return i.running }

// Due returns how many ticks elapsed up to now and advances the schedule past
// them. After a long stall the count is capped and the schedule resyncs to now.
func (i *Interval) Due(now time.Time) int {
	if !i.running {
		return 0
	}
	n := 0
	for !now.Before(i.next) {
		n++
		i.next = i.next.Add(i.period)
		if n == maxCatchUp {
			if !now.Before(i.next) {
				i.next = now.Add(i.period)
			}
			break
		}
	}
	return n
}
