package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Amreshcodee/itemhub/internal/catalog"
	"github.com/Amreshcodee/itemhub/internal/model"
)

func (m Model) View() string {
	if m.width == 0 {
		return "loading…"
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.searchView())
	b.WriteString("\n\n")
	b.WriteString(m.listView())
	b.WriteString("\n")
	b.WriteString(m.footerView())

	base := b.String()

	var overlay string
	switch m.modal {
	case modalForm:
		overlay = m.form.view(m.width)
	case modalConfirmDelete:
		overlay = m.confirm.view(m.width)
	case modalLogin:
		overlay = m.login.view(m.width)
	case modalRegister:
		overlay = m.register.view(m.width)
	}

	if overlay != "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
	}

	return base
}

func (m Model) headerView() string {
	title := styleTitle().Render("Item Catalog")

	who := "browsing as guest"
	if user, ok := m.session.CurrentUser(); ok {
		who = "logged in as " + user.Username
	}

	right := styleMuted().Render(who)
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return title + strings.Repeat(" ", gap) + right
}

func (m Model) searchView() string {
	label := "search: "
	if m.searchFocused {
		label = styleTitle().Render("search: ")
	} else {
		label = styleMuted().Render(label)
	}
	return label + m.search.View()
}

func (m Model) listView() string {
	state := m.store.State()

	if state.Loading && len(state.Items) == 0 {
		return styleMuted().Render("Loading items…")
	}

	var b strings.Builder

	if state.Err != "" {
		b.WriteString(styleError().Render(state.Err))
		b.WriteString("\n\n")
	}

	if len(state.Items) == 0 {
		if m.store.Search() != "" {
			b.WriteString(styleMuted().Render("No items match your search."))
		} else {
			b.WriteString(styleMuted().Render("No items yet."))
		}
		return b.String()
	}

	groups := catalog.GroupByCategory(state.Items)
	idx := 0
	for _, cat := range catalog.DistinctCategories(state.Items) {
		b.WriteString(styleCategory().Render(cat))
		b.WriteString("\n")
		for _, item := range groups[cat] {
			b.WriteString(m.itemRow(item, idx == m.cursor))
			b.WriteString("\n")
			idx++
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func (m Model) itemRow(item model.Item, selected bool) string {
	price := strconv.FormatFloat(item.Price, 'f', 2, 64)
	row := fmt.Sprintf("  %-30s %10s  %s", truncate(item.Name, 30), price, truncate(item.Description, 40))

	if maxW := m.width - 2; maxW > 0 && len(row) > maxW {
		row = row[:maxW]
	}

	if selected {
		return styleSelected().Render(row)
	}
	return row
}

func (m Model) footerView() string {
	help := "a: add   e: edit   d: delete   /: search   g: refresh   q: quit"
	if m.session.IsAuthenticated() {
		help += "   o: log out"
	} else {
		help += "   l: log in   r: register"
	}

	if m.status != "" {
		return m.status + "\n" + styleMuted().Render(help)
	}
	return styleMuted().Render(help)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
