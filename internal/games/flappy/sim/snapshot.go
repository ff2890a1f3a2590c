package sim

import "github.com/samber/lo"

// CharacterView is the read-only character state handed to renderers.
type CharacterView struct {
	X, Y     float64
	W, H     float64
	Rotation float64
	Velocity float64
	Alive    bool
}

// ObstacleView is one obstacle as a renderer sees it. X is the left edge.
type ObstacleView struct {
	X, Y      float64
	W, H      float64
	Direction Direction
	Passed    bool
}

// GroundView carries the two scrolling segment offsets.
type GroundView struct {
	Offsets      [2]float64
	Y            float64
	SegmentWidth float64
}

// Snapshot is a copy of everything a renderer needs for one frame. It
// shares no memory with the session.
type Snapshot struct {
	Tick           uint64
	State          State
	Viewport       Viewport
	Character      CharacterView
	Obstacles      []ObstacleView
	Ground         GroundView
	Score          int
	GameOver       bool
	Cause          Cause
	Difficulty     float64
	SpawnThreshold float64
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	c := s.character
	w := s.cfg.Obstacles.Width

	obstacles := lo.FlatMap(s.active, func(p *ObstaclePair, _ int) []ObstacleView {
		return lo.Map([]*Obstacle{p.top, p.bottom}, func(o *Obstacle, _ int) ObstacleView {
			return ObstacleView{
				X:         o.x - w/2,
				Y:         o.y,
				W:         w,
				H:         o.h,
				Direction: o.direction,
				Passed:    p.passed,
			}
		})
	})

	return Snapshot{
		Tick:     s.tick,
		State:    s.state,
		Viewport: s.viewport,
		Character: CharacterView{
			X:        c.x,
			Y:        c.y,
			W:        c.width,
			H:        c.height,
			Rotation: c.rotation,
			Velocity: c.velocity,
			Alive:    c.alive,
		},
		Obstacles: obstacles,
		Ground: GroundView{
			Offsets:      s.ground.Offsets(),
			Y:            s.viewport.Playfield(),
			SegmentWidth: s.ground.SegmentWidth(),
		},
		Score:          s.score,
		GameOver:       s.GameOver(),
		Cause:          s.cause,
		Difficulty:     s.difficulty,
		SpawnThreshold: s.spawnThreshold,
	}
}

// Floor returns the lowest top edge the character can reach in this frame.
func (sn Snapshot) Floor() float64 {
	return max(sn.Viewport.Height-sn.Character.H-sn.Viewport.GroundHeight, 0)
}
