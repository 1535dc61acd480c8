package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lu-zhengda/contactsync/internal/app"
	"github.com/lu-zhengda/contactsync/internal/domain"
)

type field int

const (
	fieldUsername field = iota
	fieldGroup
	fieldDirection
	fieldPlugin
	fieldDisabled
	fieldSkipContacts
	fieldUpdateGoogle
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldUsername:     "Account",
	fieldGroup:        "Group",
	fieldDirection:    "Direction",
	fieldPlugin:       "Plugin",
	fieldDisabled:     "Disabled",
	fieldSkipContacts: "Skip contacts without email",
	fieldUpdateGoogle: "Local changes win conflicts",
}

var plugins = []string{domain.DefaultPlugin}

// formModel edits the preferences of the selected address book. The values
// live in the controller; the form only tracks the focused field.
type formModel struct {
	ctx     context.Context
	ctrl    *app.Controller
	cursor  field
	width   int
	height  int
	focused bool
}

func newForm(ctx context.Context, ctrl *app.Controller) formModel {
	return formModel{ctx: ctx, ctrl: ctrl}
}

// SetSize updates the form dimensions.
func (f *formModel) SetSize(w, h int) {
	f.width = w
	f.height = h
}

// Update handles key events on the focused field.
func (f formModel) Update(msg tea.Msg) (formModel, tea.Cmd) {
	if !f.focused || !f.ctrl.Enabled() {
		return f, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Up):
		f.cursor = (f.cursor + fieldCount - 1) % fieldCount
	case key.Matches(keyMsg, keys.Down):
		f.cursor = (f.cursor + 1) % fieldCount
	case key.Matches(keyMsg, keys.Left):
		return f, f.change(-1)
	case key.Matches(keyMsg, keys.Right), key.Matches(keyMsg, keys.Toggle):
		return f, f.change(1)
	}
	return f, nil
}

// change moves the focused field to its next (step 1) or previous (step -1) value.
func (f formModel) change(step int) tea.Cmd {
	form := f.ctrl.Form()
	switch f.cursor {
	case fieldUsername:
		names := f.ctrl.Usernames()
		next := names[cycle(indexOf(names, form.Username), step, len(names))]
		return fetchGroups(f.ctx, f.ctrl.SetUsername(f.ctx, next))
	case fieldGroup:
		catalog := f.ctrl.Catalog()
		f.ctrl.SetGroupIndex(cycle(catalog.SelectedIndex(), step, len(catalog.Entries())))
	case fieldDirection:
		f.ctrl.SetDirection(domain.Direction(cycle(int(form.Direction), step, 3)))
	case fieldPlugin:
		f.ctrl.SetPlugin(plugins[cycle(indexOf(plugins, form.Plugin), step, len(plugins))])
	case fieldDisabled:
		f.ctrl.SetDisabled(!form.Disabled)
	case fieldSkipContacts:
		f.ctrl.SetSkipContactsWithoutEmail(!form.SkipContactsWithoutEmail)
	case fieldUpdateGoogle:
		f.ctrl.SetUpdateGoogleInConflicts(!form.UpdateGoogleInConflicts)
	}
	return nil
}

// View renders the form.
func (f formModel) View() string {
	var b strings.Builder

	ab := f.ctrl.SelectedAddressBook()
	if ab == nil {
		b.WriteString(titleStyle.Render("Account"))
		b.WriteString("\n\n")
		b.WriteString(mutedTextStyle.Render("Select an address book to edit its sync settings."))
		return b.String()
	}

	title := titleStyle.Render(ab.Name)
	if f.ctrl.Unsaved() {
		title += unsavedStyle.Render("  (unsaved)")
	}
	b.WriteString(title)
	b.WriteString("\n\n")

	form := f.ctrl.Form()
	values := [fieldCount]string{
		fieldUsername:     form.Username,
		fieldGroup:        f.ctrl.Catalog().Selected().Label,
		fieldDirection:    form.Direction.String(),
		fieldPlugin:       form.Plugin,
		fieldDisabled:     checkbox(form.Disabled),
		fieldSkipContacts: checkbox(form.SkipContactsWithoutEmail),
		fieldUpdateGoogle: checkbox(form.UpdateGoogleInConflicts),
	}

	labelWidth := 0
	for _, l := range fieldLabels {
		labelWidth = max(labelWidth, lipgloss.Width(l))
	}
	for i := field(0); i < fieldCount; i++ {
		line := fmt.Sprintf("%-*s  ‹ %s ›", labelWidth, fieldLabels[i], values[i])
		padded := lipgloss.NewStyle().Width(max(f.width, 20)).Render(line)
		if f.focused && i == f.cursor {
			padded = selectedStyle.Render(padded)
		}
		b.WriteString(padded)
		b.WriteString("\n")
	}

	if remote := f.ctrl.Catalog().RemoteTitles(); len(remote) > 0 {
		b.WriteString("\n")
		b.WriteString(mutedTextStyle.Render(fmt.Sprintf("%d groups from %s", len(remote), form.Username)))
	}
	return b.String()
}

func checkbox(v bool) string {
	if v {
		return "[x]"
	}
	return "[ ]"
}

// cycle steps i within [0, n), wrapping at both ends. A negative i starts at 0.
func cycle(i, step, n int) int {
	if n == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	return ((i+step)%n + n) % n
}

func indexOf(values []string, v string) int {
	for i, s := range values {
		if s == v {
			return i
		}
	}
	return -1
}
