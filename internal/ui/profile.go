package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tansen/vitrine/internal/api"
)

// profileState backs the profile view and its username/email form.
type profileState struct {
	username textinput.Model
	email    textinput.Model
	focus    int // 0 username, 1 email
	errText  string
	saved    bool
	pending  bool
}

func newProfileState(user api.User) profileState {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.SetValue(user.Username)

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128
	email.SetValue(user.Email)

	return profileState{username: username, email: email}
}

func (s *profileState) focusCmd() tea.Cmd {
	s.username.Blur()
	s.email.Blur()
	if s.focus == 0 {
		return s.username.Focus()
	}
	return s.email.Focus()
}

func (m Model) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.profile

	switch msg.String() {
	case "esc":
		m.currentView = viewProducts
		return m, nil

	case "tab", "down", "shift+tab", "up":
		s.focus = 1 - s.focus
		return m, s.focusCmd()

	case "enter":
		if s.pending {
			return m, nil
		}
		username := strings.TrimSpace(s.username.Value())
		email := strings.TrimSpace(s.email.Value())
		switch {
		case username == "":
			s.errText = "Username is required"
		case !validEmail(email):
			s.errText = "Enter a valid email address"
		default:
			s.errText = ""
			s.saved = false
			s.pending = true
			return m, m.saveProfileCmd(username, email)
		}
		return m, nil
	}

	var cmd tea.Cmd
	if s.focus == 0 {
		s.username, cmd = s.username.Update(msg)
	} else {
		s.email, cmd = s.email.Update(msg)
	}
	return m, cmd
}

func (m Model) handleProfileSaved(msg profileSavedMsg) (tea.Model, tea.Cmd) {
	s := &m.profile
	s.pending = false
	if msg.err != nil {
		s.errText = msg.err.Error()
		return m, nil
	}
	s.saved = true
	s.errText = ""
	return m, nil
}

func (m Model) renderProfile() string {
	snap := m.session.Snapshot()
	s := m.profile

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Profile"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render("role: " + snap.User.Role))
	b.WriteString("\n\n")

	if s.focus == 0 {
		b.WriteString(m.styles.Accent.Render("› Username"))
	} else {
		b.WriteString(m.styles.Muted.Render("  Username"))
	}
	b.WriteString("\n  " + s.username.View() + "\n\n")

	if s.focus == 1 {
		b.WriteString(m.styles.Accent.Render("› Email"))
	} else {
		b.WriteString(m.styles.Muted.Render("  Email"))
	}
	b.WriteString("\n  " + s.email.View() + "\n\n")

	switch {
	case s.errText != "":
		b.WriteString(m.styles.Danger.Render(s.errText))
		b.WriteString("\n")
	case s.pending:
		b.WriteString(m.styles.Muted.Render("saving…"))
		b.WriteString("\n")
	case s.saved:
		b.WriteString(m.styles.Success.Render("Profile updated"))
		b.WriteString("\n")
	}

	return m.styles.Box.Render(b.String())
}
