package engine

// Animator owns the timing of a running transform. Tick is the only place
// the previous frame timestamp is read or written.
type Animator struct {
	running bool
	hasLast bool
	last    float64
	speed   float64
}

// NewAnimator creates a stopped animator advancing speed units per
// millisecond.
func NewAnimator(speed float64) *Animator {
	return &Animator{speed: speed}
}

// Start begins a run. The next tick measures no elapsed time.
func (a *Animator) Start() {
	a.running = true
	a.hasLast = false
}

// Stop ends the run.
func (a *Animator) Stop() {
	a.running = false
	a.hasLast = false
}

// Running reports whether a run is in progress.
func (a *Animator) Running() bool { return a.running }

// SetSpeed changes the step per millisecond. Negative speeds run the
// transform backwards.
func (a *Animator) SetSpeed(speed float64) { a.speed = speed }

// Speed returns the step per millisecond.
func (a *Animator) Speed() float64 { return a.speed }

// Tick records the frame timestamp ts (milliseconds) and returns the step to
// apply for this frame: speed times the time since the previous frame, and 0
// on the first frame of a run. ok is false when the animator is stopped.
func (a *Animator) Tick(ts float64) (step float64, ok bool) {
	if !a.running {
		return 0, false
	}
	elapsed := 0.0
	if a.hasLast {
		elapsed = ts - a.last
	}
	a.last = ts
	a.hasLast = true
	return a.speed * elapsed, true
}
