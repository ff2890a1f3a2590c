package sim

// Autopilot decides when to flap from a snapshot alone. It is used by the
// headless simulator and the zen variant's demo mode.
type Autopilot struct {
	// Margin is how far above the bottom edge of the gap the character's
	// bottom may sink before flapping.
	Margin float64
}

// NewAutopilot returns an autopilot with the default margin.
func NewAutopilot() *Autopilot {
	return &Autopilot{Margin: 12}
}

// Decide reports whether to flap this tick.
func (a *Autopilot) Decide(sn Snapshot) bool {
	if sn.GameOver {
		return false
	}
	c := sn.Character
	bottom := c.Y + c.H

	gapBottom, ok := nextGapBottom(sn)
	if !ok {
		return c.Y > 0.6*sn.Floor() && c.Velocity >= 0
	}
	return bottom > gapBottom-a.Margin && c.Velocity >= 0
}

// nextGapBottom returns the top edge of the nearest bottom obstacle whose
// right edge is still ahead of the character.
func nextGapBottom(sn Snapshot) (float64, bool) {
	var (
		nearest float64
		gap     float64
		found   bool
	)
	for _, o := range sn.Obstacles {
		if o.Direction != DirectionBottom || o.X+o.W <= sn.Character.X {
			continue
		}
		if !found || o.X < nearest {
			nearest, gap, found = o.X, o.Y, true
		}
	}
	return gap, found
}
