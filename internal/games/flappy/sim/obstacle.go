package sim

import "github.com/vovakirdan/tui-flappy/internal/core"

// Direction tells which edge an obstacle is mounted on.
type Direction int

const (
	DirectionTop    Direction = iota // Hangs from the top of the viewport
	DirectionBottom                  // Stands on the ground
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirectionTop:
		return "top"
	case DirectionBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Obstacle is a single vertical barrier. X is its horizontal centre.
// The vertical position is derived from the direction, the viewport, the
// ground and the per-instance offset; it is recomputed on every move.
type Obstacle struct {
	session   *Session
	direction Direction
	x, y      float64
	h         float64 // at least Obstacles.Height, stretched to reach its edge
	shift     float64 // fraction in [0, 1) of the usable offset range
	active    bool
}

func newObstacle(s *Session, dir Direction) *Obstacle {
	o := &Obstacle{session: s, direction: dir}
	o.reroll()
	return o
}

// reroll draws a new random offset fraction from the session RNG.
func (o *Obstacle) reroll() {
	o.shift = o.session.rng.Float64()
}

// Update moves the obstacle left by speed*frames and refreshes its
// vertical position.
func (o *Obstacle) Update(speed, frames float64) {
	o.x -= speed * frames
	o.place()
}

// Reset moves the obstacle to spawnX. The random offset is kept.
func (o *Obstacle) Reset(spawnX float64) {
	o.x = spawnX
	o.place()
}

// Offset returns how far the obstacle reaches toward the centre beyond its
// base reach, in world units.
func (o *Obstacle) Offset() float64 {
	_, span := o.session.obstacleReach()
	return o.shift * span
}

// place recomputes y from the current viewport.
//
// The playfield (viewport minus ground) is split so that, with both
// obstacles at zero offset, the gap is Gap + 2*span; each obstacle then
// extends up to span further toward the centre, so the gap never drops
// below Gap and its centre moves by at most span/2.
//
// The obstacle always stays mounted: when edge exceeds Obstacles.Height it
// is stretched so the top one still covers y=0 and the bottom one the ground.
func (o *Obstacle) place() {
	base, _ := o.session.obstacleReach()
	edge := base + o.Offset()
	o.h = max(o.session.cfg.Obstacles.Height, edge)

	switch o.direction {
	case DirectionTop:
		o.y = edge - o.h
	default:
		o.y = o.session.viewport.Playfield() - edge
	}
}

// Box returns the collision box. ok is false when the obstacle is not
// active or has no usable geometry.
func (o *Obstacle) Box() (box core.Box, ok bool) {
	if !o.active {
		return core.Box{}, false
	}
	w := o.session.cfg.Obstacles.Width
	box = core.NewBox(o.x-w/2, o.y, w, o.h)
	return box, box.Valid()
}

// X returns the horizontal centre.
func (o *Obstacle) X() float64 { return o.x }

// Y returns the top edge.
func (o *Obstacle) Y() float64 { return o.y }

// Height returns the vertical extent.
func (o *Obstacle) Height() float64 { return o.h }

// Direction returns the mounting edge.
func (o *Obstacle) Direction() Direction { return o.direction }

// Active reports whether the obstacle is on screen as part of a live pair.
func (o *Obstacle) Active() bool { return o.active }
