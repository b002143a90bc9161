// File: travelgo/tui/profile.go
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"travelgo/api"
	"travelgo/models"
	"travelgo/session"
	"travelgo/utils"
)

// profileView shows the account, its order history and the profile
// editing form. Logout also lives here.
type profileView struct {
	client  *api.Client
	session *session.Manager

	orders  []models.Booking
	cursor  int
	loading bool

	editOpen  bool
	editFocus int
	firstName textinput.Model
	lastName  textinput.Model
	email     textinput.Model
	busy      bool
}

func newProfileView(client *api.Client, sess *session.Manager) *profileView {
	mk := func(placeholder string) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 120
		return in
	}
	return &profileView{
		client:    client,
		session:   sess,
		firstName: mk("First name"),
		lastName:  mk("Last name"),
		email:     mk("Email"),
	}
}

func (p *profileView) enter() tea.Cmd {
	p.editOpen = false
	p.loading = true
	p.cursor = 0
	return p.loadOrders()
}

func (p *profileView) loadOrders() tea.Cmd {
	token := p.session.Token()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		orders, err := p.client.Bookings(ctx, token)
		return bookingsMsg{orders: orders, err: err}
	}
}

func (p *profileView) editing() bool {
	return p.editOpen
}

func (p *profileView) handleMsg(a *App, msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case bookingsMsg:
		p.loading = false
		if msg.err == nil {
			p.orders = msg.orders
		}
		return a, nil

	case orderCancelledMsg:
		if msg.err != nil {
			n := utils.ErrorNotice("Could not cancel", "The order was not cancelled.", msg.err)
			a.notice = &n
			return a, nil
		}
		n := utils.SuccessNotice("Order cancelled", fmt.Sprintf("Order #%d was cancelled and slots were released.", msg.id))
		a.notice = &n
		return a, p.loadOrders()

	case profileSavedMsg:
		p.busy = false
		if msg.err != nil {
			n := utils.ErrorNotice("Update failed", "Your profile was not updated.", msg.err)
			a.notice = &n
			return a, nil
		}
		p.editOpen = false
		p.session.SetUser(msg.user)
		n := utils.SuccessNotice("Profile updated", "Your changes were saved.")
		a.notice = &n
		return a, nil
	}
	return a, nil
}

func (p *profileView) handleKey(a *App, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if p.editOpen {
		return p.handleEditKey(a, msg)
	}

	switch msg.String() {
	case "e":
		user := p.session.CurrentUser()
		if user == nil {
			return a, nil
		}
		p.firstName.SetValue(user.FirstName)
		p.lastName.SetValue(user.LastName)
		p.email.SetValue(user.Email)
		p.editOpen = true
		return a, p.setEditFocus(0)
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
		return a, nil
	case "down", "j":
		if p.cursor < len(p.orders)-1 {
			p.cursor++
		}
		return a, nil
	case "x":
		return p.cancelSelected(a)
	case "r":
		p.loading = true
		return a, p.loadOrders()
	case "L":
		if err := p.session.Logout(); err != nil {
			n := utils.ErrorNotice("Logout failed", "Could not clear the stored credential.", err)
			a.notice = &n
		}
		return a, nil
	}
	return a, nil
}

func (p *profileView) cancelSelected(a *App) (tea.Model, tea.Cmd) {
	if p.cursor >= len(p.orders) {
		return a, nil
	}
	order := p.orders[p.cursor]
	if order.Status == models.BookingCancelled {
		n := utils.WarningNotice("Already cancelled", "This order is already cancelled.")
		a.notice = &n
		return a, nil
	}
	token := p.session.Token()
	return a, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		err := p.client.CancelBooking(ctx, token, order.ID)
		return orderCancelledMsg{id: order.ID, err: err}
	}
}

func (p *profileView) editInputs() []*textinput.Model {
	return []*textinput.Model{&p.firstName, &p.lastName, &p.email}
}

func (p *profileView) setEditFocus(i int) tea.Cmd {
	inputs := p.editInputs()
	n := len(inputs)
	p.editFocus = ((i % n) + n) % n
	var cmd tea.Cmd
	for idx, in := range inputs {
		if idx == p.editFocus {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return cmd
}

func (p *profileView) handleEditKey(a *App, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if p.busy {
		return a, nil
	}
	switch msg.Type {
	case tea.KeyEsc:
		p.editOpen = false
		return a, nil
	case tea.KeyTab, tea.KeyDown:
		return a, p.setEditFocus(p.editFocus + 1)
	case tea.KeyShiftTab, tea.KeyUp:
		return a, p.setEditFocus(p.editFocus - 1)
	case tea.KeyEnter:
		return p.saveProfile(a)
	}
	inputs := p.editInputs()
	var cmd tea.Cmd
	*inputs[p.editFocus], cmd = inputs[p.editFocus].Update(msg)
	return a, cmd
}

func (p *profileView) saveProfile(a *App) (tea.Model, tea.Cmd) {
	form := api.ProfileForm{
		FirstName: strings.TrimSpace(p.firstName.Value()),
		LastName:  strings.TrimSpace(p.lastName.Value()),
		Email:     strings.TrimSpace(p.email.Value()),
	}
	token := p.session.Token()
	p.busy = true
	return a, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		user, err := p.client.UpdateProfile(ctx, token, form)
		return profileSavedMsg{user: user, err: err}
	}
}

func (p *profileView) view(a *App) string {
	user := p.session.CurrentUser()
	if user == nil {
		return subtitleStyle.Render("Not signed in.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(user.DisplayName()) + "\n")
	b.WriteString(subtitleStyle.Render("@"+user.Username+" · "+user.Email) + "\n\n")

	if p.editOpen {
		body := titleStyle.Render("Edit profile") + "\n" +
			p.firstName.View() + "\n" +
			p.lastName.View() + "\n" +
			p.email.View() + "\n" +
			helpStyle.Render("Tab Next  Enter Save  Esc Cancel")
		b.WriteString(activePanelStyle.Render(body))
		return b.String()
	}

	b.WriteString(valueStyle.Render("My orders") + "\n")
	if p.loading {
		b.WriteString(subtitleStyle.Render("Loading...") + "\n")
	} else if len(p.orders) == 0 {
		b.WriteString(subtitleStyle.Render("No orders yet.") + "\n")
	}
	for i, order := range p.orders {
		name := fmt.Sprintf("service #%d", order.Service)
		if order.ServiceDetail != nil {
			name = order.ServiceDetail.Name
		}
		line := fmt.Sprintf("#%d %s · x%d · %s · %s",
			order.ID, name, order.Quantity,
			utils.FormatVND(order.TotalPrice), renderStatus(order.Status))
		if i == p.cursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString(helpStyle.Render("e Edit profile  x Cancel order  r Reload  L Log out"))
	return b.String()
}

func renderStatus(status models.BookingStatus) string {
	switch status {
	case models.BookingConfirmed:
		return okStyle.Render(string(status))
	case models.BookingCancelled:
		return errStyle.Render(string(status))
	default:
		return subtitleStyle.Render(string(status))
	}
}
