// Package tui implements the interactive terminal client for the item
// catalog.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Amreshcodee/itemhub/internal/api"
	"github.com/Amreshcodee/itemhub/internal/auth"
	"github.com/Amreshcodee/itemhub/internal/config"
	"github.com/Amreshcodee/itemhub/internal/model"
	"github.com/Amreshcodee/itemhub/internal/store"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalForm
	modalConfirmDelete
	modalLogin
	modalRegister
)

// updateArgs carries the target and draft of an item update through the
// gated dispatcher.
type updateArgs struct {
	id    string
	draft model.Draft
}

// Model is the root bubbletea model.
type Model struct {
	cfg        *config.Config
	store      *store.Store
	session    *auth.Session
	dispatcher *auth.Dispatcher
	logger     *zap.Logger

	gatedCreate func(model.Draft) (bool, error)
	gatedUpdate func(updateArgs) (bool, error)
	gatedDelete func(string) (bool, error)

	width  int
	height int

	modal modalKind
	// loginReturn is the modal to restore when a login prompt that
	// overlaid another dialog is dismissed.
	loginReturn modalKind
	cursor      int
	status      string

	search        textinput.Model
	searchFocused bool
	searchSeq     int

	form     formModel
	confirm  confirmModel
	login    loginModel
	register registerModel
}

func newModel(cfg *config.Config, st *store.Store, sess *auth.Session, disp *auth.Dispatcher, logger *zap.Logger) Model {
	search := textinput.New()
	search.Placeholder = "search items"
	search.CharLimit = 120

	m := Model{
		cfg:        cfg,
		store:      st,
		session:    sess,
		dispatcher: disp,
		logger:     logger,
		search:     search,
	}

	m.gatedCreate = auth.Gated1(disp, "add item", func(d model.Draft) error {
		return st.Create(backgroundContext(), d)
	})
	m.gatedUpdate = auth.Gated1(disp, "update item", func(a updateArgs) error {
		return st.Update(backgroundContext(), a.id, a.draft)
	})
	m.gatedDelete = auth.Gated1(disp, "delete item", func(id string) error {
		return st.Delete(backgroundContext(), id)
	})

	return m
}

// Init kicks off session restoration and the initial fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.restoreCmd(), m.fetchCmd(), textinput.Blink)
}

// Run wires the client, the sync layer and the dispatcher together and
// runs the interactive program until the user quits.
func Run(cfg *config.Config, logger *zap.Logger) error {
	client, err := api.New(cfg.BaseURL, logger)
	if err != nil {
		return fmt.Errorf("creating api client: %w", err)
	}

	sess := auth.NewSession(client, logger)
	disp := auth.NewDispatcher(sess, logger)
	st := store.New(client, logger)

	applyColorProfilePreference()

	p := tea.NewProgram(newModel(cfg, st, sess, disp, logger), tea.WithAltScreen())

	// The dispatcher prompts for login from inside command goroutines, so
	// deliver the prompt through the program's message loop.
	disp.SetPrompt(func(description string) {
		p.Send(promptLoginMsg{description: description})
	})

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	return nil
}
