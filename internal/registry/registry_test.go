package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

type stubGame struct {
	id, title string
}

func (g stubGame) ID() string { return g.id }
func (g stubGame) Title() string { return g.title }
func (g stubGame) Reset(core.RuntimeConfig) {}
func (g stubGame) Resize(int, int) {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen) {}
func (g stubGame) State() core.GameState { return core.GameState{} }

func register(t *testing.T, id, title string) {
	t.Helper()
	Register(id, func() Game { return stubGame{id: id, title: title} })
	t.Cleanup(func() {
		mu.Lock()
		delete(entries, id)
		mu.Unlock()
	})
}

func TestRegisterAndCreate(t *testing.T) {
	register(t, "test_b", "Bee")
	register(t, "test_a", "Ay")

	if !Exists("test_a") {
		t.Error("Exists(test_a) = false, expected true")
	}

	g, err := Create("test_b")
	if err != nil {
		t.Fatalf("Create(test_b) failed: %v", err)
	}
	if g.Title() != "Bee" {
		t.Errorf("Title() = %q, expected %q", g.Title(), "Bee")
	}

	var ids []string
	for _, info := range List() {
		if info.ID == "test_a" || info.ID == "test_b" {
			ids = append(ids, info.ID)
		}
	}
	if len(ids) != 2 || ids[0] != "test_a" || ids[1] != "test_b" {
		t.Errorf("List() order = %v, expected [test_a test_b]", ids)
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("no_such_game")
	if !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Create() error = %v, expected ErrUnknownGame", err)
	}
	if Exists("no_such_game") {
		t.Error("Exists(no_such_game) = true, expected false")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	register(t, "test_dup", "Dup")

	defer func() {
		if recover() == nil {
			t.Error("Register() of a duplicate ID did not panic")
		}
	}()
	Register("test_dup", func() Game { return stubGame{id: "test_dup"} })
}
