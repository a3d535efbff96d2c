package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tansen/vitrine/internal/session"
)

type authMode int

const (
	authLogin authMode = iota
	authRegister
)

const (
	authFieldUsername = iota
	authFieldEmail
	authFieldPassword
	authFieldCount
)

// authState backs the combined login/register form.
type authState struct {
	mode      authMode
	inputs    [authFieldCount]textinput.Model
	focus     int
	fieldErrs map[string]string
	formErr   string
	pending   bool
}

func newAuthState() authState {
	var s authState
	s.fieldErrs = make(map[string]string)

	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128

	s.inputs[authFieldUsername] = username
	s.inputs[authFieldEmail] = email
	s.inputs[authFieldPassword] = password
	s.focus = s.firstField()
	return s
}

func (s *authState) firstField() int {
	if s.mode == authRegister {
		return authFieldUsername
	}
	return authFieldEmail
}

func (s *authState) fields() []int {
	if s.mode == authRegister {
		return []int{authFieldUsername, authFieldEmail, authFieldPassword}
	}
	return []int{authFieldEmail, authFieldPassword}
}

func (s *authState) focusCmd() tea.Cmd {
	for i := range s.inputs {
		s.inputs[i].Blur()
	}
	return s.inputs[s.focus].Focus()
}

func (s *authState) cycle(delta int) tea.Cmd {
	fields := s.fields()
	pos := 0
	for i, f := range fields {
		if f == s.focus {
			pos = i
		}
	}
	pos = (pos + delta + len(fields)) % len(fields)
	s.focus = fields[pos]
	return s.focusCmd()
}

func (s *authState) toggleMode() tea.Cmd {
	if s.mode == authLogin {
		s.mode = authRegister
	} else {
		s.mode = authLogin
	}
	s.fieldErrs = make(map[string]string)
	s.formErr = ""
	s.focus = s.firstField()
	return s.focusCmd()
}

// validate applies the client-side checks that block submission before any
// network call.
func (s *authState) validate() bool {
	s.fieldErrs = make(map[string]string)
	s.formErr = ""

	email := strings.TrimSpace(s.inputs[authFieldEmail].Value())
	password := s.inputs[authFieldPassword].Value()

	if s.mode == authRegister {
		if strings.TrimSpace(s.inputs[authFieldUsername].Value()) == "" {
			s.fieldErrs["username"] = "Username is required"
		}
		if len(password) < 6 {
			s.fieldErrs["password"] = "Password must be at least 6 characters"
		}
	}
	if email == "" {
		s.fieldErrs["email"] = "Email is required"
	} else if !validEmail(email) {
		s.fieldErrs["email"] = "Enter a valid email address"
	}
	if password == "" {
		s.fieldErrs["password"] = "Password is required"
	}

	return len(s.fieldErrs) == 0
}

// applyError attaches a failed submission to the form: recognizable field
// errors land on their field, everything else on the form-level line.
func (s *authState) applyError(err error) {
	s.pending = false
	var authErr *session.AuthError
	if errors.As(err, &authErr) && authErr.Field != "" {
		s.fieldErrs[authErr.Field] = authErr.Message
		return
	}
	s.formErr = err.Error()
}

func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.auth

	switch msg.String() {
	case "tab", "down":
		return m, s.cycle(1)
	case "shift+tab", "up":
		return m, s.cycle(-1)
	case "ctrl+s":
		return m, s.toggleMode()
	case "enter":
		if s.pending {
			return m, nil
		}
		if !s.validate() {
			return m, nil
		}
		s.pending = true
		email := strings.TrimSpace(s.inputs[authFieldEmail].Value())
		password := s.inputs[authFieldPassword].Value()
		if s.mode == authRegister {
			username := strings.TrimSpace(s.inputs[authFieldUsername].Value())
			return m, m.registerCmd(username, email, password)
		}
		return m, m.loginCmd(email, password)
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return m, cmd
}

func (m Model) renderAuth() string {
	s := m.auth

	var b strings.Builder
	if s.mode == authRegister {
		b.WriteString(m.styles.Title.Render("Create account"))
	} else {
		b.WriteString(m.styles.Title.Render("Sign in"))
	}
	b.WriteString("\n\n")

	labels := map[int]string{
		authFieldUsername: "Username",
		authFieldEmail:    "Email",
		authFieldPassword: "Password",
	}
	errKeys := map[int]string{
		authFieldUsername: "username",
		authFieldEmail:    "email",
		authFieldPassword: "password",
	}

	for _, field := range s.fields() {
		label := labels[field]
		if field == s.focus {
			b.WriteString(m.styles.Accent.Render("› " + label))
		} else {
			b.WriteString(m.styles.Muted.Render("  " + label))
		}
		b.WriteString("\n  ")
		b.WriteString(s.inputs[field].View())
		if msg, ok := s.fieldErrs[errKeys[field]]; ok {
			b.WriteString("\n  ")
			b.WriteString(m.styles.Danger.Render(msg))
		}
		b.WriteString("\n\n")
	}

	if s.formErr != "" {
		b.WriteString(m.styles.Danger.Render(s.formErr))
		b.WriteString("\n\n")
	}
	if s.pending {
		b.WriteString(m.styles.Muted.Render("submitting…"))
		b.WriteString("\n")
	}

	if s.mode == authRegister {
		b.WriteString(m.styles.Muted.Render("ctrl+s: already have an account? sign in"))
	} else {
		b.WriteString(m.styles.Muted.Render("ctrl+s: new here? create an account"))
	}

	return m.styles.Box.Render(b.String())
}
