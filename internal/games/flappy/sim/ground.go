package sim

// Ground is two equal segments scrolling left. When a segment's right edge
// passes the left side of the viewport it jumps to just right of the other
// one, so the strip looks endless.
type Ground struct {
	segments [2]float64
	width    float64
}

func newGround(width float64) *Ground {
	return &Ground{
		segments: [2]float64{0, width},
		width:    width,
	}
}

// Update scrolls both segments by speed*frames and wraps them.
func (g *Ground) Update(speed, frames float64) {
	if g.width <= 0 {
		return
	}
	dx := speed * frames
	g.segments[0] -= dx
	g.segments[1] -= dx

	for i := range g.segments {
		if g.segments[i]+g.width <= 0 {
			g.segments[i] = g.segments[1-i] + g.width
		}
	}
}

// Resize scales segment positions to a new segment width.
func (g *Ground) Resize(width float64) {
	if width <= 0 {
		return
	}
	if g.width > 0 {
		ratio := width / g.width
		g.segments[0] *= ratio
		g.segments[1] *= ratio
	} else {
		g.segments = [2]float64{0, width}
	}
	g.width = width
}

// Offsets returns the x positions of the two segments.
func (g *Ground) Offsets() [2]float64 {
	return g.segments
}

// SegmentWidth returns the width of one segment.
func (g *Ground) SegmentWidth() float64 {
	return g.width
}
