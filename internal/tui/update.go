package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Amreshcodee/itemhub/internal/catalog"
	"github.com/Amreshcodee/itemhub/internal/model"
)

// prevModal tracking lets a login prompt overlay an open form and return
// to it when the prompt is dismissed.

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case itemsFetchedMsg:
		m.clampCursor()
		return m, nil

	case searchDebounceMsg:
		if msg.seq == m.searchSeq {
			return m, m.fetchCmd()
		}
		return m, nil

	case promptLoginMsg:
		if m.modal != modalLogin {
			m.loginReturn = m.modal
		}
		m.login = newLoginModel(msg.description)
		m.modal = modalLogin
		return m, nil

	case mutationDoneMsg:
		return m.handleMutationDone(msg)

	case authDoneMsg:
		return m.handleAuthDone(msg)

	case resumeDoneMsg:
		if msg.ran && msg.err == nil {
			m.modal = modalNone
			m.loginReturn = modalNone
			return m, nil
		}
		// The held action failed or could not run. Return to the dialog
		// it came from so the user can retry; the store notice explains.
		m.modal = m.loginReturn
		m.loginReturn = modalNone
		m.confirm.busy = false
		return m, nil

	case sessionRestoredMsg:
		return m, nil

	case logoutDoneMsg:
		m.status = "Logged out"
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	if !msg.ran {
		// Held for authentication; the login prompt is on its way.
		m.confirm.busy = false
		return m, nil
	}

	if msg.err != nil {
		// The store notice carries the user-facing message. Keep the
		// dialog open so the input is not lost.
		m.confirm.busy = false
		return m, nil
	}

	m.modal = modalNone
	m.loginReturn = modalNone
	m.clampCursor()
	return m, nil
}

func (m Model) handleAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	m.login.busy = false
	m.register.busy = false

	if !msg.result.Success {
		if msg.register {
			m.register.errMsg = msg.result.Message
		} else {
			m.login.errMsg = msg.result.Message
		}
		return m, nil
	}

	if user, ok := m.session.CurrentUser(); ok {
		m.status = "Logged in as " + user.Username
	}

	if _, pending := m.dispatcher.Pending(); pending {
		m.modal = modalNone
		return m, m.resumeCmd()
	}

	m.modal = m.loginReturn
	m.loginReturn = modalNone
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits, regardless of focus.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.modal {
	case modalForm:
		return m.handleFormKey(msg)
	case modalConfirmDelete:
		return m.handleConfirmKey(msg)
	case modalLogin:
		return m.handleLoginKey(msg)
	case modalRegister:
		return m.handleRegisterKey(msg)
	}

	if m.searchFocused {
		return m.handleSearchKey(msg)
	}

	return m.handleBrowseKey(msg)
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.modal = modalNone
		return m, nil
	}

	cmd, draft := m.form.update(msg)
	if draft == nil {
		return m, cmd
	}

	if m.form.editingID == "" {
		return m, m.createCmd(*draft)
	}
	return m, m.updateCmd(m.form.editingID, *draft)
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm.busy {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.modal = modalNone
		return m, nil
	case "tab", "left", "right":
		m.confirm.toggle()
		return m, nil
	case "enter":
		if m.confirm.focus == confirmFocusConfirm {
			m.confirm.busy = true
			return m, m.deleteCmd(m.confirm.itemID)
		}
		m.modal = modalNone
		return m, nil
	}

	return m, nil
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.login.busy {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		// Dismissing the prompt discards any held action.
		m.dispatcher.Dismiss()
		m.modal = m.loginReturn
		m.loginReturn = modalNone
		return m, nil
	case "ctrl+r":
		m.register = newRegisterModel()
		m.modal = modalRegister
		return m, nil
	}

	cmd, submitted := m.login.update(msg)
	if submitted {
		m.login.busy = true
		return m, m.loginCmd(m.login.username.Value(), m.login.password.Value())
	}
	return m, cmd
}

func (m Model) handleRegisterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.register.busy {
		return m, nil
	}

	if msg.String() == "esc" {
		if _, pending := m.dispatcher.Pending(); pending {
			m.modal = modalLogin
		} else {
			m.modal = m.loginReturn
			m.loginReturn = modalNone
		}
		return m, nil
	}

	cmd, submitted := m.register.update(msg)
	if submitted {
		m.register.busy = true
		return m, m.registerCmd(m.register.username.Value(), m.register.password.Value())
	}
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searchFocused = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	if !m.store.SetSearch(m.search.Value()) {
		return m, cmd
	}

	if m.cfg.SearchDebounce > 0 {
		m.searchSeq++
		return m, tea.Batch(cmd, debounceCmd(m.cfg.SearchDebounce, m.searchSeq))
	}
	return m, tea.Batch(cmd, m.fetchCmd())
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.searchFocused = true
		m.search.Focus()
		return m, nil
	case "down", "j":
		if m.cursor < len(m.orderedItems())-1 {
			m.cursor++
		}
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "a":
		m.form = newFormModel("", model.Draft{})
		m.modal = modalForm
		return m, nil
	case "e", "enter":
		if item, ok := m.selectedItem(); ok {
			m.form = newFormModel(item.ID, model.DraftFromItem(item))
			m.modal = modalForm
		}
		return m, nil
	case "d":
		if item, ok := m.selectedItem(); ok {
			m.confirm = newConfirmModel(item.ID, item.Name)
			m.modal = modalConfirmDelete
		}
		return m, nil
	case "l":
		if !m.session.IsAuthenticated() {
			m.login = newLoginModel("")
			m.loginReturn = modalNone
			m.modal = modalLogin
		}
		return m, nil
	case "r":
		if !m.session.IsAuthenticated() {
			m.register = newRegisterModel()
			m.loginReturn = modalNone
			m.modal = modalRegister
		}
		return m, nil
	case "o":
		if m.session.IsAuthenticated() {
			return m, m.logoutCmd()
		}
		return m, nil
	case "g":
		return m, m.fetchCmd()
	}

	return m, nil
}

// orderedItems flattens the collection in category-section order so the
// cursor walks the list exactly as it is rendered.
func (m Model) orderedItems() []model.Item {
	items := m.store.State().Items
	groups := catalog.GroupByCategory(items)

	out := make([]model.Item, 0, len(items))
	for _, cat := range catalog.DistinctCategories(items) {
		out = append(out, groups[cat]...)
	}
	return out
}

func (m Model) selectedItem() (model.Item, bool) {
	items := m.orderedItems()
	if m.cursor < 0 || m.cursor >= len(items) {
		return model.Item{}, false
	}
	return items[m.cursor], true
}

func (m *Model) clampCursor() {
	if n := len(m.orderedItems()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
