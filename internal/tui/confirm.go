package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type confirmFocus int

const (
	confirmFocusCancel confirmFocus = iota
	confirmFocusConfirm
)

// confirmModel is the delete confirmation dialog. busy is set while the
// delete is in flight so the dialog stays up until the refreshed collection
// arrives.
type confirmModel struct {
	itemID   string
	itemName string
	focus    confirmFocus
	busy     bool
}

func newConfirmModel(itemID, itemName string) confirmModel {
	return confirmModel{itemID: itemID, itemName: itemName}
}

func (c *confirmModel) toggle() {
	if c.focus == confirmFocusCancel {
		c.focus = confirmFocusConfirm
	} else {
		c.focus = confirmFocusCancel
	}
}

func (c confirmModel) view(width int) string {
	btnBase := lipgloss.NewStyle().Padding(0, 1)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render("Delete")
	cancel := btnBase.Render("Cancel")
	if c.focus == confirmFocusConfirm {
		confirm = btnActive.Render("Delete")
	} else {
		cancel = btnActive.Render("Cancel")
	}

	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, " ", cancel)

	body := fmt.Sprintf("Delete %q?", c.itemName)
	if c.busy {
		body = fmt.Sprintf("Deleting %q…", c.itemName)
	}

	content := strings.Join([]string{
		styleTitle().Render("Confirm delete"),
		"",
		body,
		"",
		controls,
		"",
		styleMuted().Render("tab: focus   enter: select   esc: cancel"),
	}, "\n")

	return styleModalBorder().Width(min(width-4, 50)).Render(content)
}
