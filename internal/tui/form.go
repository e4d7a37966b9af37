package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Amreshcodee/itemhub/internal/model"
)

// Field order in the item form.
var formFields = []string{
	model.FieldName,
	model.FieldDescription,
	model.FieldPrice,
	model.FieldCategory,
}

var formLabels = map[string]string{
	model.FieldName:        "Name",
	model.FieldDescription: "Description",
	model.FieldPrice:       "Price",
	model.FieldCategory:    "Category",
}

// formModel is the add/edit item dialog. An empty editingID means the form
// creates a new item.
type formModel struct {
	editingID string
	inputs    []textinput.Model
	focus     int
	errors    map[string]string
}

func newFormModel(editingID string, draft model.Draft) formModel {
	f := formModel{
		editingID: editingID,
		inputs:    make([]textinput.Model, len(formFields)),
		errors:    map[string]string{},
	}

	values := map[string]string{
		model.FieldName:        draft.Name,
		model.FieldDescription: draft.Description,
		model.FieldPrice:       draft.Price,
		model.FieldCategory:    draft.Category,
	}

	for i, field := range formFields {
		in := textinput.New()
		in.Placeholder = formLabels[field]
		in.SetValue(values[field])
		if i == 0 {
			in.Focus()
		}
		f.inputs[i] = in
	}

	return f
}

func (f formModel) draft() model.Draft {
	return model.Draft{
		Name:        f.inputs[0].Value(),
		Description: f.inputs[1].Value(),
		Price:       f.inputs[2].Value(),
		Category:    f.inputs[3].Value(),
	}
}

func (f *formModel) setFocus(i int) {
	f.focus = i
	for j := range f.inputs {
		if j == i {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

// update handles a key press inside the form. The second return is a draft
// to submit when the user confirmed a valid form.
func (f *formModel) update(msg tea.KeyMsg) (tea.Cmd, *model.Draft) {
	switch msg.String() {
	case "tab", "down":
		f.setFocus((f.focus + 1) % len(f.inputs))
		return nil, nil
	case "shift+tab", "up":
		f.setFocus((f.focus + len(f.inputs) - 1) % len(f.inputs))
		return nil, nil
	case "enter":
		draft := f.draft()
		f.errors = draft.Validate()
		if len(f.errors) > 0 {
			return nil, nil
		}
		return nil, &draft
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	f.errors = f.draft().Validate()
	return cmd, nil
}

func (f formModel) view(width int) string {
	title := "Add item"
	if f.editingID != "" {
		title = "Edit item"
	}

	var b strings.Builder
	b.WriteString(styleTitle().Render(title))
	b.WriteString("\n\n")

	for i, field := range formFields {
		b.WriteString(formLabels[field])
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
		if msg, ok := f.errors[field]; ok {
			b.WriteString(styleError().Render(msg))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styleMuted().Render("tab: next field   enter: save   esc: cancel"))

	return styleModalBorder().Width(min(width-4, 60)).Render(b.String())
}
