package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lu-zhengda/contactsync/internal/domain"
)

// addressBookSelectedMsg is sent when the user selects an address book via Enter.
type addressBookSelectedMsg struct {
	index int
}

// sidebarModel displays a navigable list of address books.
type sidebarModel struct {
	books   []domain.AddressBook
	cursor  int
	active  int
	width   int
	height  int
	focused bool
}

// newSidebar creates a sidebar with nothing selected.
func newSidebar() sidebarModel {
	return sidebarModel{active: -1}
}

// SetAddressBooks updates the list displayed in the sidebar.
func (s *sidebarModel) SetAddressBooks(books []domain.AddressBook, active int) {
	s.books = books
	s.active = active
	if active >= 0 {
		s.cursor = active
	}
	if s.cursor >= len(books) {
		s.cursor = max(len(books)-1, 0)
	}
}

// SetSize updates the sidebar dimensions.
func (s *sidebarModel) SetSize(w, h int) {
	s.width = w
	s.height = h
}

// Update handles key events for sidebar navigation.
func (s sidebarModel) Update(msg tea.Msg) (sidebarModel, tea.Cmd) {
	if !s.focused || len(s.books) == 0 {
		return s, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			s.cursor--
			if s.cursor < 0 {
				s.cursor = len(s.books) - 1
			}
		case key.Matches(msg, keys.Down):
			s.cursor++
			if s.cursor >= len(s.books) {
				s.cursor = 0
			}
		case key.Matches(msg, keys.Enter):
			idx := s.cursor
			return s, func() tea.Msg {
				return addressBookSelectedMsg{index: idx}
			}
		}
	}

	return s, nil
}

// View renders the sidebar.
func (s sidebarModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Address books"))
	b.WriteString("\n\n")

	if len(s.books) == 0 {
		b.WriteString(mutedTextStyle.Render("None yet. Press n to create one."))
		return b.String()
	}

	for i, ab := range s.books {
		b.WriteString(s.renderLine(ab.Name, i))
		b.WriteString("\n")
	}
	return b.String()
}

// renderLine renders a single address book line with cursor highlighting and active marker.
func (s sidebarModel) renderLine(name string, idx int) string {
	prefix := "  "
	if idx == s.active {
		prefix = "▶ "
	}

	line := fmt.Sprintf("%s%s", prefix, truncate(name, max(s.width, 10)-2))

	// Pad to width so highlight covers the full line.
	padded := lipgloss.NewStyle().Width(max(s.width, 10)).Render(line)

	if s.focused && idx == s.cursor {
		return selectedStyle.Render(padded)
	}
	return padded
}

// truncate shortens s to fit within maxLen.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-1] + "…"
}
