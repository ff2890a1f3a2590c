package sim

import (
	"sync"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// InputController turns jump actions from an input source into flap
// requests on a session. It holds the subscription so it can be torn down
// when the session is replaced.
type InputController struct {
	session *Session

	mu          sync.Mutex
	unsubscribe func()
}

// NewInputController creates a controller bound to s.
func NewInputController(s *Session) *InputController {
	return &InputController{session: s}
}

// Connect subscribes to src, dropping any previous subscription first.
func (ic *InputController) Connect(src core.InputSource) {
	ic.Disconnect()

	unsub := src.Subscribe(ic.handle)

	ic.mu.Lock()
	ic.unsubscribe = unsub
	ic.mu.Unlock()
}

// Disconnect drops the current subscription. Safe to call repeatedly.
func (ic *InputController) Disconnect() {
	ic.mu.Lock()
	unsub := ic.unsubscribe
	ic.unsubscribe = nil
	ic.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

// Connected reports whether the controller is subscribed.
func (ic *InputController) Connected() bool {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return ic.unsubscribe != nil
}

func (ic *InputController) handle(a core.Action) {
	if a != core.ActionJump || ic.session.GameOver() {
		return
	}
	ic.session.RequestFlap()
}
