package flappy

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy/sim"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// ReplayResult is the outcome of re-simulating a journal entry.
type ReplayResult struct {
	Score int
	Ticks uint64
	Cause string
	// Match is true when the re-simulated score, cause and final tick
	// equal the recorded ones.
	Match bool
}

// Replay re-simulates a recorded run headlessly, feeding the recorded
// flaps back in on the same ticks.
func Replay(run storage.Run) (ReplayResult, error) {
	if run.TickRate <= 0 {
		return ReplayResult{}, fmt.Errorf("flappy: run %d: invalid tick rate %d", run.ID, run.TickRate)
	}
	if run.ScreenW <= 0 || run.ScreenH <= 0 {
		return ReplayResult{}, fmt.Errorf("flappy: run %d: invalid screen %dx%d", run.ID, run.ScreenW, run.ScreenH)
	}
	if len(run.Config) == 0 {
		return ReplayResult{}, errors.New("flappy: run has no config")
	}
	cfg, err := config.Parse(run.Config)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("flappy: run %d: %w", run.ID, err)
	}

	flaps := slices.Clone(run.Flaps)
	slices.Sort(flaps)

	s := sim.NewSession(cfg, ScreenViewport(cfg, run.ScreenW, run.ScreenH), run.Seed)
	defer s.Close()

	dt := 1 / float64(run.TickRate)
	next := 0
	for s.Tick() < run.Ticks && !s.GameOver() {
		tick := s.Tick() + 1
		for next < len(flaps) && flaps[next] < tick {
			next++
		}
		if next < len(flaps) && flaps[next] == tick {
			s.RequestFlap()
		}
		s.Update(dt)
	}

	res := ReplayResult{
		Score: s.Score(),
		Ticks: s.Tick(),
	}
	if s.GameOver() {
		res.Cause = s.Cause().String()
	}
	res.Match = res.Score == run.Score && res.Cause == run.Cause && res.Ticks == run.Ticks
	return res, nil
}
