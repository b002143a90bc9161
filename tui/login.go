// File: travelgo/tui/login.go
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"travelgo/session"
	"travelgo/utils"
)

// loginView collects credentials. It serves both direct logins and the
// detour taken when booking without a session.
type loginView struct {
	session *session.Manager

	username textinput.Model
	password textinput.Model
	focus    int
	busy     bool
}

func newLoginView(sess *session.Manager) *loginView {
	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = 60
	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	return &loginView{session: sess, username: username, password: password}
}

func (l *loginView) reset() {
	l.username.SetValue("")
	l.password.SetValue("")
	l.busy = false
	l.focus = 0
	l.username.Blur()
	l.password.Blur()
}

func (l *loginView) focusCmd() tea.Cmd {
	l.focus = 0
	l.password.Blur()
	return l.username.Focus()
}

func (l *loginView) inputs() []*textinput.Model {
	return []*textinput.Model{&l.username, &l.password}
}

func (l *loginView) handleKey(a *App, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if l.busy {
		return a, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		a.screen = screenHome
		return a, nil
	case tea.KeyTab, tea.KeyDown, tea.KeyShiftTab, tea.KeyUp:
		l.focus = 1 - l.focus
		inputs := l.inputs()
		var cmd tea.Cmd
		for i, in := range inputs {
			if i == l.focus {
				cmd = in.Focus()
			} else {
				in.Blur()
			}
		}
		return a, cmd
	case tea.KeyEnter:
		if l.focus == 0 {
			l.focus = 1
			l.username.Blur()
			return a, l.password.Focus()
		}
		return l.submit(a)
	}

	// ctrl+r from either field jumps to registration.
	if msg.String() == "ctrl+r" {
		return a.switchTo(screenRegister)
	}

	inputs := l.inputs()
	var cmd tea.Cmd
	*inputs[l.focus], cmd = inputs[l.focus].Update(msg)
	return a, cmd
}

func (l *loginView) submit(a *App) (tea.Model, tea.Cmd) {
	username := strings.TrimSpace(l.username.Value())
	password := l.password.Value()
	if username == "" || password == "" {
		n := utils.WarningNotice("Missing fields", "Enter both username and password.")
		a.notice = &n
		return a, nil
	}

	l.busy = true
	return a, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		user, err := l.session.Login(ctx, username, password)
		return loginMsg{user: user, err: err}
	}
}

func (l *loginView) view() string {
	status := ""
	if l.busy {
		status = "\n" + subtitleStyle.Render("Signing in...")
	}
	body := titleStyle.Render("Sign in") + "\n" +
		l.username.View() + "\n" +
		l.password.View() + "\n" + status +
		helpStyle.Render("Enter Submit  Ctrl+r Register  Esc Back")
	return activePanelStyle.Render(body)
}
