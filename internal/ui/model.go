// Package ui renders short-lived notifications on top of a bubbletea view.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vres-cli/vres/style"
)

// Lifetime is how long a notification stays visible.
const Lifetime = 3 * time.Second

// Model holds the notification currently shown, if any.
type Model struct {
	notification string

	// generation discards clear messages that belong to an older notification.
	generation int
}

// NotifyMsg carries the text of a notification.
type NotifyMsg string

// ClearNotificationMsg hides the notification of the given generation.
type ClearNotificationMsg struct {
	generation int
}

// Notify returns a tea.Cmd that shows msg until it expires.
func Notify(msg string) tea.Cmd {
	return func() tea.Msg {
		return NotifyMsg(msg)
	}
}

// Update shows new notifications and hides expired ones. Other messages are ignored.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotifyMsg:
		m.notification = string(msg)
		m.generation++

		generation := m.generation
		return tea.Tick(Lifetime, func(time.Time) tea.Msg {
			return ClearNotificationMsg{generation: generation}
		})
	case ClearNotificationMsg:
		if msg.generation == m.generation {
			m.notification = ""
		}
	}
	return nil
}

// View appends the notification to the last line of content.
func (m *Model) View(content string) string {
	if m.notification == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + style.Faint(m.notification)
	return strings.Join(lines, "\n")
}
