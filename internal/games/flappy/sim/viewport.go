package sim

// Viewport is the visible world area reported by the presentation layer.
type Viewport struct {
	Width        float64
	Height       float64
	GroundHeight float64
}

// Playfield returns the height above the ground strip, never negative.
func (v Viewport) Playfield() float64 {
	return max(v.Height-v.GroundHeight, 0)
}

// valid reports whether the viewport can host a simulation.
func (v Viewport) valid() bool {
	return v.Width > 0 && v.Height > 0 && v.GroundHeight >= 0
}
