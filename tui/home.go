// File: travelgo/tui/home.go
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"travelgo/catalog"
	"travelgo/models"
	"travelgo/utils"
)

// homeView is the public catalog: debounced search, category chips and
// the advanced filter modal.
type homeView struct {
	engine *catalog.Engine

	search  textinput.Model
	spinner spinner.Model

	categories []models.Category
	catIndex   int // 0 means all categories

	services []models.TravelService
	cursor   int
	loading  bool
	loadErr  error

	// Filter modal state. Edits go to the engine's staged copy and are
	// promoted only on apply.
	filterOpen  bool
	filterFocus int
	minPrice    textinput.Model
	maxPrice    textinput.Model
	location    textinput.Model
}

func newHomeView(engine *catalog.Engine) *homeView {
	search := textinput.New()
	search.Placeholder = "Search tours, hotels, destinations"
	search.CharLimit = 120
	search.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	minPrice := textinput.New()
	minPrice.Placeholder = "Min price (VND)"
	minPrice.CharLimit = 12
	maxPrice := textinput.New()
	maxPrice.Placeholder = "Max price (VND)"
	maxPrice.CharLimit = 12
	location := textinput.New()
	location.Placeholder = "Location"
	location.CharLimit = 60

	return &homeView{
		engine:   engine,
		search:   search,
		spinner:  sp,
		minPrice: minPrice,
		maxPrice: maxPrice,
		location: location,
		loading:  true,
	}
}

func (h *homeView) loadCategories(engine *catalog.Engine) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		cats, err := engine.LoadCategories(ctx)
		return categoriesMsg{cats: cats, err: err}
	}
}

func (h *homeView) applyUpdate(u catalog.Update) {
	h.loading = false
	h.loadErr = u.Err
	if u.Err == nil {
		h.services = u.Services
		if h.cursor >= len(h.services) {
			h.cursor = 0
		}
	}
}

func (h *homeView) editing() bool {
	return h.search.Focused() || h.filterOpen
}

func (h *homeView) handleMsg(a *App, msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case categoriesMsg:
		// A category load failure leaves the chips empty; the service
		// list is independent and keeps working.
		if msg.err == nil {
			h.categories = msg.cats
		}
		return a, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		h.spinner, cmd = h.spinner.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (h *homeView) handleKey(a *App, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if h.filterOpen {
		return h.handleFilterKey(a, msg)
	}

	if h.search.Focused() {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			h.search.Blur()
			return a, nil
		default:
			var cmd tea.Cmd
			h.search, cmd = h.search.Update(msg)
			h.loading = true
			h.engine.SetQuery(h.search.Value())
			return a, cmd
		}
	}

	switch msg.String() {
	case "/":
		return a, h.search.Focus()
	case "f":
		h.openFilter()
		return a, h.focusFilter(0)
	case "r":
		h.loading = true
		h.engine.Refresh()
		return a, nil
	case "left", "h":
		h.cycleCategory(-1)
		return a, nil
	case "right", "l":
		h.cycleCategory(1)
		return a, nil
	case "up", "k":
		if h.cursor > 0 {
			h.cursor--
		}
		return a, nil
	case "down", "j":
		if h.cursor < len(h.services)-1 {
			h.cursor++
		}
		return a, nil
	case "enter":
		if h.cursor < len(h.services) {
			svc := h.services[h.cursor]
			a.screen = screenDetail
			return a, a.detail.load(svc.ID)
		}
		return a, nil
	}
	return a, nil
}

func (h *homeView) cycleCategory(delta int) {
	if len(h.categories) == 0 {
		return
	}
	h.catIndex += delta
	if h.catIndex < 0 {
		h.catIndex = len(h.categories)
	}
	if h.catIndex > len(h.categories) {
		h.catIndex = 0
	}
	h.loading = true
	if h.catIndex == 0 {
		h.engine.SetCategory("")
		return
	}
	h.engine.SetCategory(strconv.FormatInt(h.categories[h.catIndex-1].ID, 10))
}

func (h *homeView) openFilter() {
	h.engine.StageFilter()
	staged := h.engine.Staged()
	h.minPrice.SetValue(staged.MinPrice)
	h.maxPrice.SetValue(staged.MaxPrice)
	h.location.SetValue(staged.Location)
	h.filterOpen = true
	h.filterFocus = 0
}

func (h *homeView) filterInputs() []*textinput.Model {
	return []*textinput.Model{&h.minPrice, &h.maxPrice, &h.location}
}

func (h *homeView) focusFilter(i int) tea.Cmd {
	inputs := h.filterInputs()
	h.filterFocus = i
	var cmd tea.Cmd
	for idx, in := range inputs {
		if idx == i {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return cmd
}

func (h *homeView) handleFilterKey(a *App, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		// Discarding the modal leaves the active filter untouched.
		h.filterOpen = false
		return a, nil
	case tea.KeyTab, tea.KeyDown:
		return a, h.focusFilter((h.filterFocus + 1) % 3)
	case tea.KeyShiftTab, tea.KeyUp:
		return a, h.focusFilter((h.filterFocus + 2) % 3)
	case tea.KeyEnter:
		h.engine.EditStaged(func(f *catalog.SearchFilter) {
			f.MinPrice = strings.TrimSpace(h.minPrice.Value())
			f.MaxPrice = strings.TrimSpace(h.maxPrice.Value())
			f.Location = strings.TrimSpace(h.location.Value())
		})
		h.engine.ApplyStaged()
		h.filterOpen = false
		h.loading = true
		return a, nil
	}

	inputs := h.filterInputs()
	var cmd tea.Cmd
	*inputs[h.filterFocus], cmd = inputs[h.filterFocus].Update(msg)
	return a, cmd
}

func (h *homeView) view(a *App) string {
	var b strings.Builder

	b.WriteString(h.search.View())
	if h.loading {
		b.WriteString("  " + h.spinner.View())
	}
	b.WriteString("\n\n")

	b.WriteString(h.renderChips())
	b.WriteString("\n\n")

	if h.filterOpen {
		b.WriteString(h.renderFilterModal())
		return b.String()
	}

	if h.loadErr != nil {
		b.WriteString(errStyle.Render("Could not load the catalog. Press r to retry."))
		return b.String()
	}
	if !h.loading && len(h.services) == 0 {
		b.WriteString(subtitleStyle.Render("No results. Adjust the search or filters."))
		return b.String()
	}

	for i, svc := range h.services {
		line := fmt.Sprintf("%s  %s · %s",
			svc.Name,
			priceStyle.Render(utils.FormatVND(svc.Price)),
			svc.Location,
		)
		if svc.AvgRating != nil {
			line += subtitleStyle.Render(fmt.Sprintf(" · %.1f★", *svc.AvgRating))
		}
		if i == h.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("/ Search  ←→ Category  f Filters  ↑↓ Move  Enter Open"))
	return b.String()
}

func (h *homeView) renderChips() string {
	chips := []string{}
	style := chipStyle
	if h.catIndex == 0 {
		style = chipActiveStyle
	}
	chips = append(chips, style.Render("All"))
	for i, cat := range h.categories {
		style = chipStyle
		if h.catIndex == i+1 {
			style = chipActiveStyle
		}
		chips = append(chips, style.Render(cat.Name))
	}
	return strings.Join(chips, " ")
}

func (h *homeView) renderFilterModal() string {
	body := titleStyle.Render("Filters") + "\n" +
		h.minPrice.View() + "\n" +
		h.maxPrice.View() + "\n" +
		h.location.View() + "\n" +
		helpStyle.Render("Tab Next  Enter Apply  Esc Discard")
	return activePanelStyle.Render(body)
}
