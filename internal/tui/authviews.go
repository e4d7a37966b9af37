package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Amreshcodee/itemhub/internal/model"
)

// loginModel is the login dialog. reason is shown when a held action
// triggered the prompt.
type loginModel struct {
	username textinput.Model
	password textinput.Model
	focus    int
	reason   string
	errMsg   string
	busy     bool
}

func newLoginModel(reason string) loginModel {
	username := textinput.New()
	username.Placeholder = "Username"
	username.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword

	return loginModel{username: username, password: password, reason: reason}
}

func (l *loginModel) setFocus(i int) {
	l.focus = i
	if i == 0 {
		l.username.Focus()
		l.password.Blur()
	} else {
		l.username.Blur()
		l.password.Focus()
	}
}

// update handles a key press. The second return is true when the user
// submitted the dialog.
func (l *loginModel) update(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "down":
		l.setFocus((l.focus + 1) % 2)
		return nil, false
	case "shift+tab", "up":
		l.setFocus((l.focus + 1) % 2)
		return nil, false
	case "enter":
		if strings.TrimSpace(l.username.Value()) == "" || l.password.Value() == "" {
			l.errMsg = "Username and password are required"
			return nil, false
		}
		return nil, true
	}

	var cmd tea.Cmd
	if l.focus == 0 {
		l.username, cmd = l.username.Update(msg)
	} else {
		l.password, cmd = l.password.Update(msg)
	}
	return cmd, false
}

func (l loginModel) view(width int) string {
	var b strings.Builder
	b.WriteString(styleTitle().Render("Log in"))
	b.WriteString("\n\n")

	if l.reason != "" {
		b.WriteString(styleMuted().Render("Log in to " + l.reason))
		b.WriteString("\n\n")
	}

	b.WriteString(l.username.View())
	b.WriteString("\n")
	b.WriteString(l.password.View())
	b.WriteString("\n")

	if l.errMsg != "" {
		b.WriteString(styleError().Render(l.errMsg))
		b.WriteString("\n")
	}
	if l.busy {
		b.WriteString(styleMuted().Render("Logging in…"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleMuted().Render("enter: log in   ctrl+r: register instead   esc: cancel"))

	return styleModalBorder().Width(min(width-4, 50)).Render(b.String())
}

// registerModel is the account creation dialog.
type registerModel struct {
	username textinput.Model
	password textinput.Model
	confirm  textinput.Model
	focus    int
	errMsg   string
	busy     bool
}

func newRegisterModel() registerModel {
	username := textinput.New()
	username.Placeholder = "Username"
	username.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword

	confirm := textinput.New()
	confirm.Placeholder = "Confirm password"
	confirm.EchoMode = textinput.EchoPassword

	return registerModel{username: username, password: password, confirm: confirm}
}

func (r *registerModel) inputs() []*textinput.Model {
	return []*textinput.Model{&r.username, &r.password, &r.confirm}
}

func (r *registerModel) setFocus(i int) {
	r.focus = i
	for j, in := range r.inputs() {
		if j == i {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

// update handles a key press. The second return is true when the user
// submitted a valid registration.
func (r *registerModel) update(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "down":
		r.setFocus((r.focus + 1) % 3)
		return nil, false
	case "shift+tab", "up":
		r.setFocus((r.focus + 2) % 3)
		return nil, false
	case "enter":
		reg := model.Registration{
			Username: r.username.Value(),
			Password: r.password.Value(),
			Confirm:  r.confirm.Value(),
		}
		if msg := reg.Validate(); msg != "" {
			r.errMsg = msg
			return nil, false
		}
		return nil, true
	}

	var cmd tea.Cmd
	in := r.inputs()[r.focus]
	*in, cmd = in.Update(msg)
	return cmd, false
}

func (r registerModel) view(width int) string {
	var b strings.Builder
	b.WriteString(styleTitle().Render("Create account"))
	b.WriteString("\n\n")

	b.WriteString(r.username.View())
	b.WriteString("\n")
	b.WriteString(r.password.View())
	b.WriteString("\n")
	b.WriteString(r.confirm.View())
	b.WriteString("\n")

	if r.errMsg != "" {
		b.WriteString(styleError().Render(r.errMsg))
		b.WriteString("\n")
	}
	if r.busy {
		b.WriteString(styleMuted().Render("Creating account…"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleMuted().Render("enter: register   esc: cancel"))

	return styleModalBorder().Width(min(width-4, 50)).Render(b.String())
}
