package core

// DefaultTickRate is the simulation rate used when none is configured.
const DefaultTickRate = 60

// RuntimeConfig is what the platform hands a game on Reset: the screen in
// cells, the fixed tick rate and the seed of the run.
type RuntimeConfig struct {
	ScreenW  int
	ScreenH  int
	TickRate int   // Fixed simulation ticks per second
	Seed     int64 // 0 asks the platform for a time-based seed
}

// DefaultConfig returns an 80x24 screen at DefaultTickRate.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: DefaultTickRate}
}

// Normalized returns c with a usable tick rate.
func (c RuntimeConfig) Normalized() RuntimeConfig {
	if c.TickRate <= 0 {
		c.TickRate = DefaultTickRate
	}
	return c
}

// TickSeconds is the length of one tick in seconds.
func (c RuntimeConfig) TickSeconds() float64 {
	return 1 / float64(c.Normalized().TickRate)
}

// GameState is the summary a game reports after every step.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
}
