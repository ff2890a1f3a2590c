package sim

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Character is the player-controlled body. Its horizontal position is fixed
// relative to the viewport; only the vertical axis is simulated.
type Character struct {
	session *Session

	x, y     float64
	velocity float64
	rotation float64
	target   float64 // rotation the character is easing toward
	width    float64
	height   float64
	alive    bool
}

func newCharacter(s *Session) *Character {
	c := &Character{
		session: s,
		width:   s.cfg.Character.Width,
		height:  s.cfg.Character.Height,
		alive:   true,
	}
	c.x = s.viewport.Width * s.cfg.Character.XFraction
	c.y = s.viewport.Height / 2
	c.y = core.ClampF(c.y, 0, c.FloorY())
	return c
}

// Flap sets the velocity to the flap impulse, overriding whatever it was.
// It has no effect once the run is over.
func (c *Character) Flap() {
	if c.session.GameOver() {
		return
	}
	c.velocity = c.session.cfg.Physics.FlapImpulse
	c.session.emit(FlapEvent{Tick: c.session.tick})
}

// Update applies gravity, integrates position, eases rotation and clamps
// the character to [0, FloorY]. Touching the floor ends the run; touching
// the ceiling does not.
func (c *Character) Update(frames float64) {
	phys := c.session.cfg.Physics
	look := c.session.cfg.Character

	gravity := phys.Gravity
	if c.session.GameOver() {
		gravity *= phys.GameOverGravityFactor
	}

	c.velocity += gravity * frames
	c.y += c.velocity * frames

	c.target = core.ClampF(c.velocity*look.RotationFactor, -look.MaxRotation, look.MaxRotation)
	blend := 1 - math.Pow(1-core.ClampF(look.RotationBlend, 0, 1), frames)
	c.rotation = core.Lerp(c.rotation, c.target, blend)

	if c.y < 0 {
		c.y = 0
		c.velocity = 0
	}

	floor := c.FloorY()
	if c.y >= floor {
		c.y = floor
		c.velocity = 0
		if !c.session.GameOver() {
			c.session.endRun(CauseGround)
		}
	}
}

// HandleCollision ends the run. Position and velocity are left alone so the
// character keeps falling under gravity.
func (c *Character) HandleCollision() {
	c.session.endRun(CauseObstacle)
}

// FloorY is the lowest allowed top edge: viewport height minus character
// height minus ground height, never below zero.
func (c *Character) FloorY() float64 {
	vp := c.session.viewport
	return max(vp.Height-c.height-vp.GroundHeight, 0)
}

// Box returns the character's collision box.
func (c *Character) Box() core.Box {
	return core.NewBox(c.x, c.y, c.width, c.height)
}

// X returns the left edge.
func (c *Character) X() float64 { return c.x }

// Y returns the top edge.
func (c *Character) Y() float64 { return c.y }

// Velocity returns the vertical velocity in units per frame (positive = down).
func (c *Character) Velocity() float64 { return c.velocity }

// Rotation returns the current rotation in radians.
func (c *Character) Rotation() float64 { return c.rotation }

// Alive reports whether the run is still in progress for this character.
func (c *Character) Alive() bool { return c.alive }

// relayout repositions the character after a viewport change.
func (c *Character) relayout() {
	c.x = c.session.viewport.Width * c.session.cfg.Character.XFraction
	c.y = core.ClampF(c.y, 0, c.FloorY())
}
