// File: travelgo/tui/provider.go
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"travelgo/api"
	"travelgo/models"
	"travelgo/provider"
	"travelgo/session"
	"travelgo/utils"
)

// providerView hosts the provider navigation tree: the revenue
// dashboard, listing management and incoming orders.
type providerView struct {
	client    *api.Client
	dashboard *provider.Dashboard
	listings  *provider.Listings

	stats     provider.Stats
	orders    []models.Booking
	tours     []models.TravelService
	cursor    int
	loading   bool
	loadErr   error

	// Tour form state; editID zero means a new listing.
	editID    int64
	formFocus int
	name      textinput.Model
	desc      textinput.Model
	price     textinput.Model
	location  textinput.Model
	category  textinput.Model
	startDate textinput.Model
	busy      bool
}

func newProviderView(client *api.Client, sess *session.Manager) *providerView {
	mk := func(placeholder string, width int) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 500
		in.Width = width
		return in
	}
	return &providerView{
		client:    client,
		dashboard: provider.NewDashboard(client, sess),
		listings:  provider.NewListings(client, sess),
		name:      mk("Name", 40),
		desc:      mk("Description", 60),
		price:     mk("Price (VND)", 15),
		location:  mk("Location", 40),
		category:  mk("Category id", 6),
		startDate: mk("Start date (YYYY-MM-DD)", 12),
	}
}

func (p *providerView) loadStats() tea.Cmd {
	p.loading = true
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		orders, err := p.dashboard.Orders(ctx)
		if err != nil {
			return statsMsg{err: err}
		}
		return statsMsg{stats: provider.Aggregate(orders), orders: orders}
	}
}

func (p *providerView) loadTours() tea.Cmd {
	p.loading = true
	p.cursor = 0
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		tours, err := p.listings.MyTours(ctx)
		return toursMsg{tours: tours, err: err}
	}
}

func (p *providerView) loadOrders() tea.Cmd {
	p.loading = true
	p.cursor = 0
	return p.loadStats()
}

func (p *providerView) handleMsg(a *App, msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statsMsg:
		p.loading = false
		p.loadErr = msg.err
		if msg.err == nil {
			p.stats = msg.stats
			p.orders = msg.orders
		}
		return a, nil

	case toursMsg:
		p.loading = false
		p.loadErr = msg.err
		if msg.err == nil {
			p.tours = msg.tours
		}
		return a, nil

	case tourSavedMsg:
		p.busy = false
		if msg.err != nil {
			n := utils.ErrorNotice("Save failed", "The listing was not saved.", msg.err)
			a.notice = &n
			return a, nil
		}
		n := utils.SuccessNotice("Listing saved", msg.svc.Name)
		a.notice = &n
		a.screen = screenProviderTours
		return a, p.loadTours()

	case tourDeletedMsg:
		if msg.err != nil {
			n := utils.ErrorNotice("Delete failed", "Listings with bookings cannot be deleted.", msg.err)
			a.notice = &n
			return a, nil
		}
		n := utils.SuccessNotice("Listing deleted", fmt.Sprintf("Listing #%d was removed.", msg.id))
		a.notice = &n
		return a, p.loadTours()
	}
	return a, nil
}

func (p *providerView) handleKey(a *App, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case screenTourForm:
		return p.handleFormKey(a, msg)
	case screenProviderTours:
		return p.handleToursKey(a, msg)
	case screenProviderOrders:
		return p.handleOrdersKey(a, msg)
	}

	// Dashboard.
	if msg.String() == "r" {
		return a, p.loadStats()
	}
	return a, nil
}

func (p *providerView) handleToursKey(a *App, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.tours)-1 {
			p.cursor++
		}
	case "n":
		p.openForm(nil)
		a.screen = screenTourForm
		return a, p.setFormFocus(0)
	case "enter", "e":
		if p.cursor < len(p.tours) {
			tour := p.tours[p.cursor]
			p.openForm(&tour)
			a.screen = screenTourForm
			return a, p.setFormFocus(0)
		}
	case "d":
		if p.cursor < len(p.tours) {
			id := p.tours[p.cursor].ID
			return a, func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
				defer cancel()
				err := p.listings.Delete(ctx, id)
				return tourDeletedMsg{id: id, err: err}
			}
		}
	case "r":
		return a, p.loadTours()
	}
	return a, nil
}

func (p *providerView) handleOrdersKey(a *App, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.orders)-1 {
			p.cursor++
		}
	case "r":
		return a, p.loadOrders()
	}
	return a, nil
}

func (p *providerView) formInputs() []*textinput.Model {
	return []*textinput.Model{
		&p.name, &p.desc, &p.price, &p.location, &p.category, &p.startDate,
	}
}

func (p *providerView) openForm(tour *models.TravelService) {
	for _, in := range p.formInputs() {
		in.SetValue("")
		in.Blur()
	}
	p.editID = 0
	p.busy = false
	if tour == nil {
		return
	}
	p.editID = tour.ID
	p.name.SetValue(tour.Name)
	p.desc.SetValue(tour.Description)
	p.price.SetValue(strconv.FormatFloat(tour.Price, 'f', -1, 64))
	p.location.SetValue(tour.Location)
	if tour.Category != nil {
		p.category.SetValue(strconv.FormatInt(tour.Category.ID, 10))
	}
	if !tour.StartDate.IsZero() {
		p.startDate.SetValue(tour.StartDate.Format("2006-01-02"))
	}
}

func (p *providerView) setFormFocus(i int) tea.Cmd {
	inputs := p.formInputs()
	n := len(inputs)
	p.formFocus = ((i % n) + n) % n
	var cmd tea.Cmd
	for idx, in := range inputs {
		if idx == p.formFocus {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return cmd
}

func (p *providerView) handleFormKey(a *App, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if p.busy {
		return a, nil
	}
	switch msg.Type {
	case tea.KeyEsc:
		a.screen = screenProviderTours
		return a, nil
	case tea.KeyTab, tea.KeyDown:
		return a, p.setFormFocus(p.formFocus + 1)
	case tea.KeyShiftTab, tea.KeyUp:
		return a, p.setFormFocus(p.formFocus - 1)
	case tea.KeyEnter:
		if p.formFocus < len(p.formInputs())-1 {
			return a, p.setFormFocus(p.formFocus + 1)
		}
		return p.submitForm(a)
	}
	inputs := p.formInputs()
	var cmd tea.Cmd
	*inputs[p.formFocus], cmd = inputs[p.formFocus].Update(msg)
	return a, cmd
}

func (p *providerView) submitForm(a *App) (tea.Model, tea.Cmd) {
	form := api.TourForm{
		Name:        strings.TrimSpace(p.name.Value()),
		Description: strings.TrimSpace(p.desc.Value()),
		Price:       strings.TrimSpace(p.price.Value()),
		Location:    strings.TrimSpace(p.location.Value()),
		StartDate:   strings.TrimSpace(p.startDate.Value()),
	}
	if form.Name == "" || form.Price == "" {
		n := utils.WarningNotice("Missing fields", "A listing needs at least a name and a price.")
		a.notice = &n
		return a, nil
	}
	if cat := strings.TrimSpace(p.category.Value()); cat != "" {
		id, err := strconv.ParseInt(cat, 10, 64)
		if err != nil {
			n := utils.WarningNotice("Invalid category", "The category id must be a number.")
			a.notice = &n
			return a, nil
		}
		form.CategoryID = id
	}

	p.busy = true
	editID := p.editID
	return a, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		svc, err := p.listings.Save(ctx, editID, form)
		return tourSavedMsg{svc: svc, err: err}
	}
}

func (p *providerView) view(a *App) string {
	switch a.screen {
	case screenProviderTours:
		return p.viewTours()
	case screenTourForm:
		return p.viewForm()
	case screenProviderOrders:
		return p.viewOrders()
	default:
		return p.viewStats()
	}
}

func (p *providerView) viewStats() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Dashboard") + "\n")
	if p.loading {
		b.WriteString(subtitleStyle.Render("Loading...") + "\n")
		return b.String()
	}
	if p.loadErr != nil {
		b.WriteString(errStyle.Render("Could not load the dashboard. Press r to retry."))
		return b.String()
	}

	revenue := panelStyle.Render("Revenue\n" + priceStyle.Render(utils.FormatVND(p.stats.Revenue)))
	orders := panelStyle.Render(fmt.Sprintf("Orders\n%s", valueStyle.Render(strconv.Itoa(p.stats.Orders))))
	customers := panelStyle.Render(fmt.Sprintf("Customers\n%s", valueStyle.Render(strconv.Itoa(p.stats.Customers))))
	b.WriteString(revenue + orders + customers + "\n")
	b.WriteString(helpStyle.Render("r Reload"))
	return b.String()
}

func (p *providerView) viewTours() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("My tours") + "\n")
	if p.loading {
		b.WriteString(subtitleStyle.Render("Loading...") + "\n")
		return b.String()
	}
	if len(p.tours) == 0 {
		b.WriteString(subtitleStyle.Render("No listings yet. Press n to create one.") + "\n")
	}
	for i, tour := range p.tours {
		line := fmt.Sprintf("%s · %s · %s", tour.Name, utils.FormatVND(tour.Price), tour.Location)
		if i == p.cursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString(helpStyle.Render("n New  Enter Edit  d Delete  r Reload"))
	return b.String()
}

func (p *providerView) viewForm() string {
	title := "New listing"
	if p.editID > 0 {
		title = fmt.Sprintf("Edit listing #%d", p.editID)
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n")
	for _, in := range p.formInputs() {
		b.WriteString(in.View() + "\n")
	}
	if p.busy {
		b.WriteString(subtitleStyle.Render("Saving...") + "\n")
	}
	b.WriteString(helpStyle.Render("Tab Next  Enter Save  Esc Back"))
	return activePanelStyle.Render(b.String())
}

func (p *providerView) viewOrders() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Incoming orders") + "\n")
	if p.loading {
		b.WriteString(subtitleStyle.Render("Loading...") + "\n")
		return b.String()
	}
	if len(p.orders) == 0 {
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
	b.WriteString(helpStyle.Render("r Reload"))
	return b.String()
}
