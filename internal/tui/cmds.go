package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Amreshcodee/itemhub/internal/auth"
	"github.com/Amreshcodee/itemhub/internal/model"
)

type (
	// itemsFetchedMsg signals that a fetch finished and the store state
	// should be re-read.
	itemsFetchedMsg struct{ err error }

	// mutationDoneMsg reports the outcome of a gated mutation. ran is
	// false when the action was held for authentication.
	mutationDoneMsg struct {
		op  string
		ran bool
		err error
	}

	// promptLoginMsg is sent by the dispatcher when an action needs a
	// logged-in user.
	promptLoginMsg struct{ description string }

	// authDoneMsg reports a login or registration attempt.
	authDoneMsg struct {
		result   auth.Result
		register bool
	}

	// resumeDoneMsg reports re-running the held action after login.
	resumeDoneMsg struct {
		ran bool
		err error
	}

	// sessionRestoredMsg signals that startup session restoration finished.
	sessionRestoredMsg struct{}

	// logoutDoneMsg signals that logout finished.
	logoutDoneMsg struct{}

	// searchDebounceMsg fires after the debounce delay for a search edit.
	searchDebounceMsg struct{ seq int }
)

func backgroundContext() context.Context { return context.Background() }

func (m Model) fetchCmd() tea.Cmd {
	st := m.store
	return func() tea.Msg {
		return itemsFetchedMsg{err: st.Fetch(backgroundContext())}
	}
}

func (m Model) restoreCmd() tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		sess.Restore(backgroundContext())
		return sessionRestoredMsg{}
	}
}

func (m Model) createCmd(draft model.Draft) tea.Cmd {
	run := m.gatedCreate
	return func() tea.Msg {
		ran, err := run(draft)
		return mutationDoneMsg{op: "create", ran: ran, err: err}
	}
}

func (m Model) updateCmd(id string, draft model.Draft) tea.Cmd {
	run := m.gatedUpdate
	return func() tea.Msg {
		ran, err := run(updateArgs{id: id, draft: draft})
		return mutationDoneMsg{op: "update", ran: ran, err: err}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	run := m.gatedDelete
	return func() tea.Msg {
		ran, err := run(id)
		return mutationDoneMsg{op: "delete", ran: ran, err: err}
	}
}

func (m Model) loginCmd(username, password string) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		return authDoneMsg{result: sess.Login(backgroundContext(), username, password)}
	}
}

func (m Model) registerCmd(username, password string) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		return authDoneMsg{result: sess.Register(backgroundContext(), username, password), register: true}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		_ = sess.Logout(backgroundContext())
		return logoutDoneMsg{}
	}
}

func (m Model) resumeCmd() tea.Cmd {
	disp := m.dispatcher
	return func() tea.Msg {
		ran, err := disp.Resume()
		return resumeDoneMsg{ran: ran, err: err}
	}
}

func debounceCmd(delay time.Duration, seq int) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
}
