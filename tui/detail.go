// File: travelgo/tui/detail.go
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"travelgo/api"
	"travelgo/booking"
	"travelgo/models"
	"travelgo/session"
	"travelgo/utils"
)

// detailView shows one listing: description, ratings, the booking modal
// and the entry points for commenting and chatting with the provider.
type detailView struct {
	client  *api.Client
	session *session.Manager
	flow    *booking.Flow

	svc      *models.TravelService
	comments []models.Comment
	loading  bool
	loadErr  error

	bookingOpen bool

	composeOpen  bool
	composeRate  int
	composeInput textinput.Model
}

func newDetailView(client *api.Client, sess *session.Manager, flow *booking.Flow) *detailView {
	input := textinput.New()
	input.Placeholder = "Share your experience"
	input.CharLimit = 500
	input.Width = 50
	return &detailView{
		client:       client,
		session:      sess,
		flow:         flow,
		composeInput: input,
		composeRate:  5,
	}
}

func (d *detailView) load(id int64) tea.Cmd {
	d.loading = true
	d.loadErr = nil
	d.bookingOpen = false
	d.composeOpen = false
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		svc, err := d.client.Service(ctx, id)
		if err != nil {
			return detailMsg{err: err}
		}
		// Comment load failures degrade to an empty list; the listing
		// itself is still bookable.
		comments, err := d.client.Comments(ctx, id)
		if err != nil {
			comments = nil
		}
		return detailMsg{svc: svc, comments: comments}
	}
}

func (d *detailView) editing() bool {
	return d.composeOpen
}

func (d *detailView) handleMsg(a *App, msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case detailMsg:
		d.loading = false
		d.loadErr = msg.err
		if msg.err == nil {
			d.svc = msg.svc
			d.comments = msg.comments
		}
		return a, nil

	case commentPostedMsg:
		if msg.err != nil {
			n := utils.ErrorNotice("Could not post review", "Try again in a moment.", msg.err)
			a.notice = &n
			return a, nil
		}
		d.comments = append([]models.Comment{*msg.comment}, d.comments...)
		d.composeOpen = false
		d.composeInput.SetValue("")
		return a, nil
	}
	return a, nil
}

func (d *detailView) handleKey(a *App, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if d.composeOpen {
		return d.handleComposeKey(a, msg)
	}
	if d.bookingOpen {
		return d.handleBookingKey(a, msg)
	}

	switch msg.String() {
	case "esc", "backspace":
		a.screen = screenHome
		return a, nil
	case "b":
		if d.svc == nil {
			return a, nil
		}
		d.flow.Begin(*d.svc)
		d.bookingOpen = true
		return a, nil
	case "c":
		if d.session.CurrentUser() == nil {
			n := utils.WarningNotice("Login required", "Log in to leave a review.")
			a.notice = &n
			return a, nil
		}
		d.composeOpen = true
		d.composeRate = 5
		return a, d.composeInput.Focus()
	case "m":
		if d.svc == nil {
			return a, nil
		}
		user := d.session.CurrentUser()
		if user == nil {
			n := utils.WarningNotice("Login required", "Log in to message the provider.")
			a.notice = &n
			return a, nil
		}
		partner := models.ChatUser{
			ID:     d.svc.Provider.ID,
			Name:   strings.TrimSpace(d.svc.Provider.LastName + " " + d.svc.Provider.FirstName),
			Avatar: d.svc.Provider.Avatar,
		}
		return a, func() tea.Msg { return gotoChatMsg{partner: partner} }
	}
	return a, nil
}

func (d *detailView) handleBookingKey(a *App, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		d.flow.Cancel()
		d.bookingOpen = false
		return a, nil
	case "+", "=", "up", "k":
		if _, err := d.flow.AdjustQuantity(1); err != nil {
			var capErr *booking.CapacityError
			if errors.As(err, &capErr) {
				n := utils.WarningNotice("No more slots", fmt.Sprintf("Only %d slots are available.", capErr.Slots))
				a.notice = &n
			}
		}
		return a, nil
	case "-", "down", "j":
		d.flow.AdjustQuantity(-1)
		return a, nil
	case "enter":
		return d.advanceBooking(a)
	}
	return a, nil
}

// advanceBooking walks the flow one step per enter press: open the
// confirmation, then commit, then retry after a failure.
func (d *detailView) advanceBooking(a *App) (tea.Model, tea.Cmd) {
	switch d.flow.State() {
	case booking.StateIdle:
		_, err := d.flow.OpenConfirmation()
		if err == booking.ErrLoginRequired {
			// Parked in AwaitingAuth with the draft intact. The session
			// broadcast after login brings the user straight back here.
			a.screen = screenLogin
			a.login.reset()
			return a, a.login.focusCmd()
		}
		return a, nil
	case booking.StateConfirming:
		return a, d.confirm()
	case booking.StateFailed:
		if d.flow.Retry() {
			return a, d.confirm()
		}
		return a, nil
	}
	return a, nil
}

func (d *detailView) confirm() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		booked, err := d.flow.Confirm(ctx)
		return bookingCommitMsg{booking: booked, err: err}
	}
}

func (d *detailView) handleCommit(a *App, msg bookingCommitMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		n := utils.ErrorNotice("Booking failed", "The booking was not committed. Press enter to retry or esc to cancel.", msg.err)
		a.notice = &n
		return a, nil
	}
	d.bookingOpen = false
	n := utils.SuccessNotice("Booking confirmed",
		fmt.Sprintf("Order #%d · %s", msg.booking.ID, utils.FormatVND(msg.booking.TotalPrice)))
	a.notice = &n

	// A committed booking lands back on the catalog, refreshed so the
	// decremented capacity shows.
	a.screen = screenHome
	a.home.loading = true
	a.engine.Refresh()
	return a, nil
}

func (d *detailView) handleComposeKey(a *App, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		d.composeOpen = false
		return a, nil
	case tea.KeyUp:
		if d.composeRate < 5 {
			d.composeRate++
		}
		return a, nil
	case tea.KeyDown:
		if d.composeRate > 1 {
			d.composeRate--
		}
		return a, nil
	case tea.KeyEnter:
		text := strings.TrimSpace(d.composeInput.Value())
		if text == "" {
			n := utils.WarningNotice("Empty review", "Write a few words before posting.")
			a.notice = &n
			return a, nil
		}
		return a, d.postComment(d.composeRate, text)
	}
	var cmd tea.Cmd
	d.composeInput, cmd = d.composeInput.Update(msg)
	return a, cmd
}

func (d *detailView) postComment(rate int, text string) tea.Cmd {
	svcID := d.svc.ID
	token := d.session.Token()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		created, err := d.client.AddComment(ctx, token, svcID, rate, text)
		return commentPostedMsg{comment: created, err: err}
	}
}

func (d *detailView) view(a *App) string {
	if d.loading {
		return subtitleStyle.Render("Loading listing...")
	}
	if d.loadErr != nil {
		return errStyle.Render("Could not load the listing. Press esc to go back.")
	}
	if d.svc == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(d.svc.Name) + "\n")
	b.WriteString(priceStyle.Render(utils.FormatVND(d.svc.Price)))
	b.WriteString(subtitleStyle.Render(" · " + d.svc.Location))
	if d.svc.SlotsAvailable != nil {
		b.WriteString(subtitleStyle.Render(fmt.Sprintf(" · %d slots left", *d.svc.SlotsAvailable)))
	}
	b.WriteString("\n\n")
	b.WriteString(d.svc.Description)
	b.WriteString("\n\n")

	if d.bookingOpen {
		b.WriteString(d.renderBookingModal())
		return b.String()
	}
	if d.composeOpen {
		b.WriteString(d.renderComposeModal())
		return b.String()
	}

	b.WriteString(valueStyle.Render("Reviews") + "\n")
	if len(d.comments) == 0 {
		b.WriteString(subtitleStyle.Render("No reviews yet.") + "\n")
	}
	for _, c := range d.comments {
		b.WriteString(fmt.Sprintf("%s %s\n  %s\n",
			starRating(c.Rate),
			subtitleStyle.Render(c.User.DisplayName()),
			c.Comment,
		))
	}

	b.WriteString(helpStyle.Render("b Book  c Review  m Message provider  Esc Back"))
	return b.String()
}

func (d *detailView) renderBookingModal() string {
	draft := d.flow.Draft()
	if draft == nil {
		return ""
	}
	var status string
	switch d.flow.State() {
	case booking.StateConfirming:
		status = okStyle.Render("Press enter to confirm")
	case booking.StateFailed:
		status = errStyle.Render("Failed. Enter to retry, esc to cancel")
	default:
		status = subtitleStyle.Render("Enter to continue")
	}
	body := titleStyle.Render("Book "+draft.Tour.Name) + "\n" +
		fmt.Sprintf("Quantity  %s\n", valueStyle.Render(fmt.Sprintf("%d", draft.Quantity))) +
		fmt.Sprintf("Total     %s\n", priceStyle.Render(utils.FormatVND(draft.Total()))) +
		subtitleStyle.Render("Payment   cash on arrival") + "\n\n" +
		status + "\n" +
		helpStyle.Render("+/- Quantity  Enter Continue  Esc Cancel")
	return activePanelStyle.Render(body)
}

func (d *detailView) renderComposeModal() string {
	body := titleStyle.Render("Write a review") + "\n" +
		starRating(d.composeRate) + "\n" +
		d.composeInput.View() + "\n" +
		helpStyle.Render("↑↓ Rating  Enter Post  Esc Cancel")
	return activePanelStyle.Render(body)
}
