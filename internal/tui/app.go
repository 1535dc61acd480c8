package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/lu-zhengda/contactsync/internal/app"
	"github.com/lu-zhengda/contactsync/internal/store"
)

type pane int

const (
	paneSidebar pane = iota
	paneForm
)

type modalKind int

const (
	modalNone modalKind = iota
	modalConfirmUnsaved
	modalConfirmReset
	modalNewAddressBook
	modalNote
)

// --- async result messages ---

// groupsFetchedMsg carries the result of a group fetch back to the event loop.
type groupsFetchedMsg struct {
	res app.GroupsResult
}

// SettingsReader reads global settings.
type SettingsReader interface {
	GetSetting(ctx context.Context, key string) (string, error)
}

// --- root model ---

type model struct {
	ctx      context.Context
	ctrl     *app.Controller
	prompter *Prompter

	sidebar sidebarModel
	form    formModel

	activePane pane
	statusBar  statusBar

	modal        *huh.Form
	modalKind    modalKind
	modalConfirm *bool
	modalInput   *string

	// answers collected by modals for the controller call they precede
	answers []bool
	closing bool

	initCmd tea.Cmd

	width  int
	height int
}

// newModel creates the root model. ctrl must already be loaded.
func newModel(ctx context.Context, ctrl *app.Controller, prompter *Prompter) model {
	sidebar := newSidebar()
	sidebar.focused = true
	sidebar.SetAddressBooks(ctrl.AddressBooks(), -1)

	return model{
		ctx:        ctx,
		ctrl:       ctrl,
		prompter:   prompter,
		sidebar:    sidebar,
		form:       newForm(ctx, ctrl),
		activePane: paneSidebar,
		statusBar:  newStatusBar(),
	}
}

func (m model) Init() tea.Cmd {
	return m.initCmd
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// --- window resize ---
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.width = msg.Width
		m.resizeSubModels()
		return m, nil

	// --- async result messages ---
	case groupsFetchedMsg:
		// Stale and failed fetches are dropped by the controller without a word.
		if m.ctrl.ApplyGroups(msg.res) {
			m.statusBar.setMessage(fmt.Sprintf("Loaded %d groups for %s",
				len(m.ctrl.Catalog().RemoteTitles()), msg.res.Username))
		}
		return m, nil

	// --- sub-model emitted messages ---
	case addressBookSelectedMsg:
		return m, m.selectAddressBook(msg.index)
	}

	if m.modal != nil {
		return m.updateModal(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	// Global keys (when no modal).
	switch {
	case key.Matches(keyMsg, keys.Quit):
		return m.requestClose()

	case key.Matches(keyMsg, keys.Tab):
		if m.activePane == paneSidebar {
			m.setFocus(paneForm)
		} else {
			m.setFocus(paneSidebar)
		}
		return m, nil

	case key.Matches(keyMsg, keys.Save):
		return m.requestSave()

	case key.Matches(keyMsg, keys.New):
		input := ""
		m.modalInput = &input
		return m.openModal(modalNewAddressBook, huh.NewInput().
			Title("New address book").
			Placeholder("Name").
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("name is required")
				}
				return nil
			}).
			Value(m.modalInput))

	case key.Matches(keyMsg, keys.Explain) && m.activePane == paneForm:
		m.ctrl.ExplainDirection()
		return m.showAlerts()

	case key.Matches(keyMsg, keys.Refresh) && m.activePane == paneForm && m.ctrl.Enabled():
		username := m.ctrl.Form().Username
		m.statusBar.setMessage(fmt.Sprintf("Fetching groups for %s...", username))
		return m, fetchGroups(m.ctx, m.ctrl.RefreshGroupsForUsername(m.ctx, username))
	}

	// Delegate to focused sub-model.
	var cmd tea.Cmd
	switch m.activePane {
	case paneSidebar:
		m.sidebar, cmd = m.sidebar.Update(msg)
	case paneForm:
		m.form, cmd = m.form.Update(msg)
	}
	return m, cmd
}

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	contentHeight := m.height - 3 // reserve space for status bar

	if m.modal != nil {
		box := modalStyle.Width(min(m.width-4, 72)).Render(m.modal.View())
		main := lipgloss.Place(m.width, contentHeight+2, lipgloss.Center, lipgloss.Center, box)
		return lipgloss.JoinVertical(lipgloss.Left, main, m.statusBar.View())
	}

	sidebarWidth, formWidth := m.layoutWidths()

	sidebarView := sidebarStyle.
		Width(sidebarWidth).
		Height(contentHeight).
		Render(m.sidebar.View())

	formView := formStyle.
		Width(formWidth).
		Height(contentHeight).
		Render(m.form.View())

	main := lipgloss.JoinHorizontal(lipgloss.Top, sidebarView, formView)
	return lipgloss.JoinVertical(lipgloss.Left, main, m.statusBar.View())
}

// --- controller actions ---

// selectAddressBook loads the book at index into the form and starts the
// fetch of its groups.
func (m *model) selectAddressBook(index int) tea.Cmd {
	cmd, err := m.ctrl.SelectAccount(m.ctx, index)
	if err != nil {
		m.statusBar.setError(fmt.Sprintf("Error: %v", err))
		return nil
	}
	m.sidebar.active = index
	m.setFocus(paneForm)
	if cmd != nil {
		m.statusBar.setMessage(fmt.Sprintf("Fetching groups for %s...", m.ctrl.Form().Username))
	} else {
		m.statusBar.setMessage(fmt.Sprintf("Editing %s", m.ctrl.SelectedAddressBook().Name))
	}
	return fetchGroups(m.ctx, cmd)
}

// requestSave saves right away, or first asks about a reset when one is due.
func (m model) requestSave() (tea.Model, tea.Cmd) {
	pending, err := m.ctrl.ResetPending(m.ctx)
	if errors.Is(err, app.ErrNoSelection) {
		m.statusBar.setMessage("Select an address book first")
		return m, nil
	}
	if err != nil {
		m.statusBar.setError(fmt.Sprintf("Error: %v", err))
		return m, nil
	}
	m.answers = nil
	if pending {
		return m.openConfirm(modalConfirmReset, app.PromptConfirmReset)
	}
	return m.save()
}

func (m model) save() (tea.Model, tea.Cmd) {
	m.prompter.Queue(m.answers...)
	m.answers = nil
	if _, err := m.ctrl.SaveSelectedAccount(m.ctx); err != nil {
		m.prompter.Drain()
		m.statusBar.setError(fmt.Sprintf("Error: %v", err))
		return m, nil
	}
	m.refreshSidebar()
	return m.showAlerts()
}

// requestClose quits, offering to save unsaved changes first.
func (m model) requestClose() (tea.Model, tea.Cmd) {
	m.answers = nil
	m.closing = true
	if m.ctrl.Unsaved() {
		return m.openConfirm(modalConfirmUnsaved, app.PromptUnsavedChanges)
	}
	return m.close()
}

func (m model) close() (tea.Model, tea.Cmd) {
	m.prompter.Queue(m.answers...)
	m.answers = nil
	m.ctrl.Close(m.ctx)
	m.prompter.Drain()
	return m, tea.Quit
}

// showAlerts puts single-line alerts on the status bar and opens a note for
// longer ones.
func (m model) showAlerts() (tea.Model, tea.Cmd) {
	alerts := m.prompter.Drain()
	if len(alerts) == 0 {
		return m, nil
	}
	text := strings.Join(alerts, "\n")
	if !strings.Contains(text, "\n") {
		m.statusBar.setMessage(text)
		return m, nil
	}
	return m.openModal(modalNote, huh.NewNote().Title("contactsync").Description(text).Next(true))
}

func (m *model) refreshSidebar() {
	active := -1
	if ab := m.ctrl.SelectedAddressBook(); ab != nil {
		active = m.ctrl.IndexOf(ab.Name)
	}
	m.sidebar.SetAddressBooks(m.ctrl.AddressBooks(), active)
}

// --- modals ---

func (m model) openConfirm(kind modalKind, prompt string) (tea.Model, tea.Cmd) {
	answer := false
	m.modalConfirm = &answer
	return m.openModal(kind, huh.NewConfirm().
		Title(prompt).
		Affirmative("Yes").
		Negative("No").
		Value(m.modalConfirm))
}

func (m model) openModal(kind modalKind, f huh.Field) (tea.Model, tea.Cmd) {
	m.modal = huh.NewForm(huh.NewGroup(f)).WithShowHelp(false)
	m.modalKind = kind
	return m, m.modal.Init()
}

func (m model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	mdl, cmd := m.modal.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.modal = f
	}

	switch m.modal.State {
	case huh.StateAborted:
		m.modal = nil
		m.closing = false
		m.answers = nil
		m.statusBar.setMessage("Cancelled")
		return m, nil
	case huh.StateCompleted:
		kind := m.modalKind
		m.modal = nil
		m.modalKind = modalNone
		return m.modalDone(kind)
	}
	return m, cmd
}

// modalDone continues the action a modal was opened for.
func (m model) modalDone(kind modalKind) (tea.Model, tea.Cmd) {
	switch kind {
	case modalConfirmUnsaved:
		answer := *m.modalConfirm
		m.answers = append(m.answers, answer)
		if answer {
			if pending, err := m.ctrl.ResetPending(m.ctx); err == nil && pending {
				return m.openConfirm(modalConfirmReset, app.PromptConfirmReset)
			}
		}
		return m.close()

	case modalConfirmReset:
		m.answers = append(m.answers, *m.modalConfirm)
		if m.closing {
			return m.close()
		}
		return m.save()

	case modalNewAddressBook:
		ab, err := m.ctrl.NewAddressBook(m.ctx, strings.TrimSpace(*m.modalInput))
		if err != nil {
			m.statusBar.setError(fmt.Sprintf("Error: %v", err))
			return m, nil
		}
		m.refreshSidebar()
		m.statusBar.setMessage(fmt.Sprintf("Address book %s ready", ab.Name))
		return m, nil
	}
	return m, nil
}

// --- focus management ---

func (m *model) setFocus(p pane) {
	m.activePane = p
	m.sidebar.focused = p == paneSidebar
	m.form.focused = p == paneForm
	m.statusBar.formFocus = p == paneForm
}

// --- layout helpers ---

func (m model) layoutWidths() (sidebarWidth, formWidth int) {
	sidebarWidth = m.width / 4
	if sidebarWidth < 20 {
		sidebarWidth = 20
	}
	formWidth = m.width - sidebarWidth - 2
	return
}

func (m *model) resizeSubModels() {
	sidebarWidth, formWidth := m.layoutWidths()
	contentHeight := m.height - 3

	// sidebarStyle: Border(2h + 2v) + Padding(2h + 2v) = 4h, 4v
	m.sidebar.SetSize(sidebarWidth-4, contentHeight-4)
	// formStyle: Border(2h + 2v) + Padding(4h + 2v) = 6h, 4v
	m.form.SetSize(formWidth-6, contentHeight-4)
}

// --- async commands ---

// fetchGroups runs a group fetch off the event loop. Its result comes back
// as a groupsFetchedMsg and is applied in Update.
func fetchGroups(ctx context.Context, gc app.GroupsCmd) tea.Cmd {
	if gc == nil {
		return nil
	}
	return func() tea.Msg {
		return groupsFetchedMsg{res: gc(ctx)}
	}
}

// Run starts the Bubble Tea TUI application. When defaultBook names an
// address book it is selected on start.
func Run(ctx context.Context, ctrl *app.Controller, prompter *Prompter, settings SettingsReader, defaultBook string) error {
	if err := ctrl.Load(ctx); err != nil {
		return err
	}

	m := newModel(ctx, ctrl, prompter)
	if text, err := settings.GetSetting(ctx, store.SettingStatusBarText); err == nil && text != "" {
		m.statusBar.setMessage(text)
	}
	if defaultBook != "" {
		if idx := ctrl.IndexOf(defaultBook); idx >= 0 {
			m.initCmd = m.selectAddressBook(idx)
		}
	}

	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := prog.Run()
	return err
}
