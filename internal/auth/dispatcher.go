package auth

import (
	"sync"

	"go.uber.org/zap"
)

// State is the slice of the session the dispatcher reads.
type State interface {
	IsAuthenticated() bool
}

// PromptFunc surfaces a login prompt labeled with the description of the
// action that was deferred (e.g. "add a new item").
type PromptFunc func(description string)

// pendingAction is a deferred gated action: the user-facing description plus
// a thunk with the original call's arguments already bound. It lives in
// exactly one place (Dispatcher.pending) and is replaced atomically, so a
// stale closure can never fire twice or out-of-date.
type pendingAction struct {
	description string
	run         func() error
}

// Dispatcher wraps mutating actions with an authentication precondition.
// While unauthenticated, an invoked gated action is held (at most one at a
// time, last invocation wins) until login succeeds (Resume) or the user
// dismisses the prompt (Dismiss). The dispatcher introduces no error kind
// of its own: a wrapped action's failure reaches the caller exactly as a
// direct call's would.
type Dispatcher struct {
	state  State
	logger *zap.Logger

	mu      sync.Mutex
	prompt  PromptFunc
	pending *pendingAction
}

// NewDispatcher creates a dispatcher reading the given auth state.
func NewDispatcher(state State, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{state: state, logger: logger}
}

// SetPrompt installs the login-prompt callback. The TUI installs one that
// posts a message into the program loop; tests install a recorder.
func (d *Dispatcher) SetPrompt(prompt PromptFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.prompt = prompt
}

// Gated wraps an argument-less action. The returned function reports
// whether the action actually ran; when it did, the second value is the
// action's own result. When it did not, the action is held and the login
// prompt has been surfaced.
func (d *Dispatcher) Gated(description string, action func() error) func() (bool, error) {
	return func() (bool, error) {
		return d.invoke(description, action)
	}
}

// Gated1 wraps an action taking one argument. The argument passed to the
// returned function is captured with the hold, so resumption runs the
// action with exactly the value from the original invocation.
func Gated1[A any](d *Dispatcher, description string, action func(A) error) func(A) (bool, error) {
	return func(arg A) (bool, error) {
		return d.invoke(description, func() error { return action(arg) })
	}
}

func (d *Dispatcher) invoke(description string, thunk func() error) (bool, error) {
	if d.state.IsAuthenticated() {
		return true, thunk()
	}

	d.mu.Lock()
	if d.pending != nil {
		d.logger.Debug("replacing pending gated action",
			zap.String("old", d.pending.description),
			zap.String("new", description),
		)
	}
	d.pending = &pendingAction{description: description, run: thunk}
	prompt := d.prompt
	d.mu.Unlock()

	if prompt != nil {
		prompt(description)
	}
	return false, nil
}

// Pending returns the description of the held action, if any.
func (d *Dispatcher) Pending() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending == nil {
		return "", false
	}
	return d.pending.description, true
}

// Resume runs the held action after a successful login. The hold is cleared
// before the action runs, so it fires at most once even if the action
// itself triggers further dispatch. Resuming with nothing held is a no-op.
func (d *Dispatcher) Resume() (bool, error) {
	d.mu.Lock()
	p := d.pending
	d.pending = nil
	d.mu.Unlock()

	if p == nil {
		return false, nil
	}

	d.logger.Debug("resuming gated action", zap.String("description", p.description))
	return true, p.run()
}

// Dismiss discards the held action without running it. Reports whether
// anything was held.
func (d *Dispatcher) Dismiss() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending == nil {
		return false
	}
	d.logger.Debug("dismissed gated action", zap.String("description", d.pending.description))
	d.pending = nil
	return true
}
