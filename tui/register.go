// File: travelgo/tui/register.go
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"travelgo/api"
	"travelgo/utils"
)

// registerView is the customer account creation form.
type registerView struct {
	client *api.Client

	firstName textinput.Model
	lastName  textinput.Model
	username  textinput.Model
	email     textinput.Model
	password  textinput.Model
	confirm   textinput.Model
	focus     int
	busy      bool
}

func newRegisterView(client *api.Client) *registerView {
	mk := func(placeholder string) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 120
		return in
	}
	password := mk("Password")
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	confirm := mk("Confirm password")
	confirm.EchoMode = textinput.EchoPassword
	confirm.EchoCharacter = '•'

	return &registerView{
		client:    client,
		firstName: mk("First name"),
		lastName:  mk("Last name"),
		username:  mk("Username"),
		email:     mk("Email"),
		password:  password,
		confirm:   confirm,
	}
}

func (r *registerView) inputs() []*textinput.Model {
	return []*textinput.Model{
		&r.firstName, &r.lastName, &r.username, &r.email, &r.password, &r.confirm,
	}
}

func (r *registerView) reset() {
	for _, in := range r.inputs() {
		in.SetValue("")
		in.Blur()
	}
	r.focus = 0
	r.busy = false
}

func (r *registerView) focusCmd() tea.Cmd {
	r.focus = 0
	return r.firstName.Focus()
}

func (r *registerView) setFocus(i int) tea.Cmd {
	inputs := r.inputs()
	n := len(inputs)
	r.focus = ((i % n) + n) % n
	var cmd tea.Cmd
	for idx, in := range inputs {
		if idx == r.focus {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return cmd
}

func (r *registerView) handleKey(a *App, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if r.busy {
		return a, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		a.screen = screenLogin
		return a, a.login.focusCmd()
	case tea.KeyTab, tea.KeyDown:
		return a, r.setFocus(r.focus + 1)
	case tea.KeyShiftTab, tea.KeyUp:
		return a, r.setFocus(r.focus - 1)
	case tea.KeyEnter:
		if r.focus < len(r.inputs())-1 {
			return a, r.setFocus(r.focus + 1)
		}
		return r.submit(a)
	}

	inputs := r.inputs()
	var cmd tea.Cmd
	*inputs[r.focus], cmd = inputs[r.focus].Update(msg)
	return a, cmd
}

func (r *registerView) submit(a *App) (tea.Model, tea.Cmd) {
	form := api.RegisterForm{
		FirstName: strings.TrimSpace(r.firstName.Value()),
		LastName:  strings.TrimSpace(r.lastName.Value()),
		Username:  strings.TrimSpace(r.username.Value()),
		Email:     strings.TrimSpace(r.email.Value()),
		Password:  r.password.Value(),
	}

	if form.FirstName == "" || form.LastName == "" || form.Username == "" || form.Password == "" {
		n := utils.WarningNotice("Missing fields", "Fill in every field before submitting.")
		a.notice = &n
		return a, nil
	}
	if r.password.Value() != r.confirm.Value() {
		n := utils.WarningNotice("Passwords do not match", "Re-enter the password confirmation.")
		a.notice = &n
		return a, nil
	}

	r.busy = true
	return a, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		user, err := r.client.Register(ctx, form)
		return registerMsg{user: user, err: err}
	}
}

func (r *registerView) handleResult(a *App, msg registerMsg) (tea.Model, tea.Cmd) {
	r.busy = false
	if msg.err != nil {
		n := utils.ErrorNotice("Registration failed", "The account could not be created.", msg.err)
		a.notice = &n
		return a, nil
	}
	n := utils.SuccessNotice("Account created", "Sign in with your new credentials.")
	a.notice = &n
	a.screen = screenLogin
	a.login.reset()
	a.login.username.SetValue(msg.user.Username)
	return a, a.login.focusCmd()
}

func (r *registerView) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Create account") + "\n")
	for _, in := range r.inputs() {
		b.WriteString(in.View() + "\n")
	}
	if r.busy {
		b.WriteString(subtitleStyle.Render("Creating account...") + "\n")
	}
	b.WriteString(helpStyle.Render("Tab Next  Enter Submit  Esc Back"))
	return activePanelStyle.Render(b.String())
}
