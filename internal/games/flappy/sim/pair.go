package sim

// ObstaclePair couples a top and a bottom obstacle that share one horizontal
// position. It is the unit of spawning, scoring and recycling.
type ObstaclePair struct {
	session *Session
	top     *Obstacle
	bottom  *Obstacle
	passed  bool
	active  bool
}

func newObstaclePair(s *Session) *ObstaclePair {
	p := &ObstaclePair{
		session: s,
		top:     newObstacle(s, DirectionTop),
		bottom:  newObstacle(s, DirectionBottom),
	}
	p.top.Reset(s.spawnX())
	p.bottom.Reset(s.spawnX())
	return p
}

// Init marks the pair active at the spawn point. Called on pool checkout.
func (p *ObstaclePair) Init() {
	if p.session.cfg.Obstacles.RerollOffsets {
		p.top.reroll()
		p.bottom.reroll()
	}
	p.active = true
	p.passed = false
	p.top.active = true
	p.bottom.active = true
	p.top.Reset(p.session.spawnX())
	p.bottom.Reset(p.session.spawnX())
}

// Update scores the pair once the character reaches its leading edge, then
// moves both obstacles at the current obstacle speed.
func (p *ObstaclePair) Update(frames float64) {
	if !p.active {
		return
	}

	halfWidth := p.session.cfg.Obstacles.Width / 2
	if !p.passed && p.session.character.X() >= p.X()-halfWidth {
		p.passed = true
		p.session.addScore()
	}

	speed := p.session.obstacleSpeed()
	p.top.Update(speed, frames)
	p.bottom.Update(speed, frames)
}

// Reset deactivates the pair, clears the passed flag and moves both
// obstacles back to the spawn point. Called on pool return.
func (p *ObstaclePair) Reset() {
	p.active = false
	p.passed = false
	p.top.active = false
	p.bottom.active = false
	p.top.Reset(p.session.spawnX())
	p.bottom.Reset(p.session.spawnX())
}

// X returns the shared horizontal centre.
func (p *ObstaclePair) X() float64 { return p.top.x }

// offscreen reports whether the pair has fully left the left edge.
func (p *ObstaclePair) offscreen() bool {
	return p.X() <= -p.session.cfg.Obstacles.Width
}

// setX moves both obstacles to x, keeping them aligned.
func (p *ObstaclePair) setX(x float64) {
	p.top.x = x
	p.bottom.x = x
	p.relayout()
}

// relayout recomputes the derived vertical positions.
func (p *ObstaclePair) relayout() {
	p.top.place()
	p.bottom.place()
}

// Active reports whether the pair is in the session's active list.
func (p *ObstaclePair) Active() bool { return p.active }

// Passed reports whether the pair has been scored.
func (p *ObstaclePair) Passed() bool { return p.passed }

// Top returns the top-mounted obstacle.
func (p *ObstaclePair) Top() *Obstacle { return p.top }

// Bottom returns the bottom-mounted obstacle.
func (p *ObstaclePair) Bottom() *Obstacle { return p.bottom }
