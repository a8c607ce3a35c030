package object

// Shield protects the ship while it has ticks remaining.
type Shield struct {
	Remaining int // Ticks left; the shield is active while positive
}

// Active reports whether the shield currently protects the ship.
func (s Shield) Active() bool {
	return s.Remaining > 0
}

// Activate sets the shield to the full duration. Collecting a second power
// while shielded refreshes the timer rather than extending it.
func (s *Shield) Activate(duration int) {
	s.Remaining = duration
}

// Tick counts down one tick while the shield is active.
func (s *Shield) Tick() {
	if s.Remaining > 0 {
		s.Remaining--
	}
}
