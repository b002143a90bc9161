// File: travelgo/tui/app.go
package tui

import (
	"time"

	"cloud.google.com/go/firestore"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"travelgo/api"
	"travelgo/booking"
	"travelgo/catalog"
	"travelgo/config"
	"travelgo/models"
	"travelgo/provider"
	"travelgo/session"
	"travelgo/utils"
)

type screen int

const (
	screenHome screen = iota
	screenDetail
	screenLogin
	screenRegister
	screenProfile
	screenChat
	screenProviderStats
	screenProviderTours
	screenTourForm
	screenProviderOrders
)

// Messages delivered into the update loop.
type (
	sessionMsg  session.Event
	catalogMsg  catalog.Update
	gotoChatMsg struct{ partner models.ChatUser }

	categoriesMsg struct {
		cats []models.Category
		err  error
	}
	detailMsg struct {
		svc      *models.TravelService
		comments []models.Comment
		err      error
	}
	loginMsg struct {
		user *models.User
		err  error
	}
	registerMsg struct {
		user *models.User
		err  error
	}
	profileSavedMsg struct {
		user *models.User
		err  error
	}
	bookingsMsg struct {
		orders []models.Booking
		err    error
	}
	bookingCommitMsg struct {
		booking *models.Booking
		err     error
	}
	orderCancelledMsg struct {
		id  int64
		err error
	}
	commentPostedMsg struct {
		comment *models.Comment
		err     error
	}
	toursMsg struct {
		tours []models.TravelService
		err   error
	}
	tourSavedMsg struct {
		svc *models.TravelService
		err error
	}
	tourDeletedMsg struct {
		id  int64
		err error
	}
	statsMsg struct {
		stats  provider.Stats
		orders []models.Booking
		err    error
	}
	chatStreamMsg struct {
		msgs []models.Message
		ok   bool
	}
	chatSentMsg struct {
		msgs []models.Message
		err  error
	}
)

// App is the root model. It owns the shared services and routes input
// and messages to the active view; the visible navigation tree follows
// the session role.
type App struct {
	client  *api.Client
	session *session.Manager
	engine  *catalog.Engine
	flow    *booking.Flow

	events    <-chan session.Event
	catalogCh chan catalog.Update

	screen screen
	width  int
	height int
	notice *utils.Notice

	home     *homeView
	detail   *detailView
	login    *loginView
	register *registerView
	profile  *profileView
	chat     *chatView
	prov     *providerView
}

// New wires the root model. fsClient may be nil; chat entry points are
// hidden then.
func New(client *api.Client, sess *session.Manager, fsClient *firestore.Client) *App {
	a := &App{
		client:    client,
		session:   sess,
		catalogCh: make(chan catalog.Update, 8),
		screen:    screenHome,
	}
	quiet := time.Duration(config.AppConfig.SearchDebounceMs) * time.Millisecond
	a.engine = catalog.NewEngine(client, quiet, func(u catalog.Update) {
		a.catalogCh <- u
	})
	a.flow = booking.NewFlow(client, sess)
	a.events = sess.Subscribe()

	a.home = newHomeView(a.engine)
	a.detail = newDetailView(client, sess, a.flow)
	a.login = newLoginView(sess)
	a.register = newRegisterView(client)
	a.profile = newProfileView(client, sess)
	a.chat = newChatView(fsClient, sess)
	a.prov = newProviderView(client, sess)

	// A restored provider session starts on its own navigation tree.
	if sess.IsProvider() {
		a.screen = screenProviderStats
	}
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	a.engine.Refresh()
	cmds := []tea.Cmd{
		a.waitSession(),
		a.waitCatalog(),
		a.home.loadCategories(a.engine),
		a.home.spinner.Tick,
	}
	if a.screen == screenProviderStats {
		cmds = append(cmds, a.prov.loadStats())
	}
	return tea.Batch(cmds...)
}

func (a *App) waitSession() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-a.events
		if !ok {
			return nil
		}
		return sessionMsg(ev)
	}
}

func (a *App) waitCatalog() tea.Cmd {
	return func() tea.Msg {
		u, ok := <-a.catalogCh
		if !ok {
			return nil
		}
		return catalogMsg(u)
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case sessionMsg:
		return a.handleSession(session.Event(msg))

	case catalogMsg:
		a.home.applyUpdate(catalog.Update(msg))
		return a, a.waitCatalog()

	case gotoChatMsg:
		if !a.chat.available() {
			n := utils.WarningNotice("Chat unavailable", "Chat is not configured on this installation.")
			a.notice = &n
			return a, nil
		}
		a.screen = screenChat
		return a, a.chat.open(msg.partner)

	case chatStreamMsg:
		if !msg.ok {
			return a, nil
		}
		a.chat.msgs = msg.msgs
		return a, a.chat.wait()

	case loginMsg:
		return a.handleLogin(msg)

	case registerMsg:
		return a.register.handleResult(a, msg)

	case bookingCommitMsg:
		return a.detail.handleCommit(a, msg)
	}

	// Remaining messages belong to one view each.
	switch a.screen {
	case screenHome:
		return a.home.handleMsg(a, msg)
	case screenDetail:
		return a.detail.handleMsg(a, msg)
	case screenProfile:
		return a.profile.handleMsg(a, msg)
	case screenChat:
		return a.chat.handleMsg(a, msg)
	case screenProviderStats, screenProviderTours, screenTourForm, screenProviderOrders:
		return a.prov.handleMsg(a, msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, a.quit()
	}

	// A blocking notice eats the next key.
	if a.notice != nil {
		a.notice = nil
		return a, nil
	}

	if !a.activeEditing() {
		switch msg.String() {
		case "q":
			return a, a.quit()
		case "1", "2", "3", "4":
			return a.switchTab(msg.String())
		}
	}

	switch a.screen {
	case screenHome:
		return a.home.handleKey(a, msg)
	case screenDetail:
		return a.detail.handleKey(a, msg)
	case screenLogin:
		return a.login.handleKey(a, msg)
	case screenRegister:
		return a.register.handleKey(a, msg)
	case screenProfile:
		return a.profile.handleKey(a, msg)
	case screenChat:
		return a.chat.handleKey(a, msg)
	default:
		return a.prov.handleKey(a, msg)
	}
}

// switchTab maps number keys onto the role-specific navigation tree.
func (a *App) switchTab(key string) (tea.Model, tea.Cmd) {
	if a.session.IsProvider() {
		switch key {
		case "1":
			return a.switchTo(screenProviderStats)
		case "2":
			return a.switchTo(screenProviderTours)
		case "3":
			return a.switchTo(screenProviderOrders)
		case "4":
			return a.switchTo(screenProfile)
		}
		return a, nil
	}
	switch key {
	case "1":
		return a.switchTo(screenHome)
	case "2":
		return a.switchTo(screenProfile)
	}
	return a, nil
}

func (a *App) switchTo(s screen) (tea.Model, tea.Cmd) {
	// Leaving the chat releases the stream subscription.
	if a.screen == screenChat && s != screenChat {
		a.chat.close()
	}

	a.screen = s
	switch s {
	case screenProfile:
		if a.session.CurrentUser() == nil {
			a.screen = screenLogin
			a.login.reset()
			return a, a.login.focusCmd()
		}
		return a, a.profile.enter()
	case screenLogin:
		a.login.reset()
		return a, a.login.focusCmd()
	case screenRegister:
		a.register.reset()
		return a, a.register.focusCmd()
	case screenProviderStats:
		return a, a.prov.loadStats()
	case screenProviderTours:
		return a, a.prov.loadTours()
	case screenProviderOrders:
		return a, a.prov.loadOrders()
	}
	return a, nil
}

func (a *App) handleSession(ev session.Event) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{a.waitSession()}

	if ev.User == nil {
		if a.screen == screenChat {
			a.chat.close()
		}
		// The provider tree has no public screens; logging out there
		// falls back to the login surface. Customers land on the
		// public catalog.
		switch a.screen {
		case screenProviderStats, screenProviderTours, screenTourForm, screenProviderOrders:
			a.screen = screenLogin
			a.login.reset()
			cmds = append(cmds, a.login.focusCmd())
		default:
			a.screen = screenHome
		}
		return a, tea.Batch(cmds...)
	}

	// A login that interrupted a booking resumes the flow in place.
	if a.flow.ResumeAfterLogin() {
		a.screen = screenDetail
		a.detail.bookingOpen = true
		return a, tea.Batch(cmds...)
	}

	if ev.User.IsProvider() {
		a.screen = screenProviderStats
		cmds = append(cmds, a.prov.loadStats())
	} else if a.screen == screenLogin || a.screen == screenRegister {
		a.screen = screenHome
	}
	return a, tea.Batch(cmds...)
}

func (a *App) handleLogin(msg loginMsg) (tea.Model, tea.Cmd) {
	a.login.busy = false
	if msg.err != nil {
		n := utils.ErrorNotice("Login failed", "Check your username and password.", msg.err)
		a.notice = &n
		return a, nil
	}
	// Routing happens on the session broadcast; nothing more here.
	return a, nil
}

func (a *App) activeEditing() bool {
	switch a.screen {
	case screenHome:
		return a.home.editing()
	case screenDetail:
		return a.detail.editing()
	case screenLogin, screenRegister:
		return true
	case screenProfile:
		return a.profile.editing()
	case screenChat:
		return true
	case screenTourForm:
		return true
	default:
		return false
	}
}

func (a *App) quit() tea.Cmd {
	a.engine.Close()
	a.chat.close()
	return tea.Quit
}

// View implements tea.Model.
func (a *App) View() string {
	var content string
	switch a.screen {
	case screenHome:
		content = a.home.view(a)
	case screenDetail:
		content = a.detail.view(a)
	case screenLogin:
		content = a.login.view()
	case screenRegister:
		content = a.register.view()
	case screenProfile:
		content = a.profile.view(a)
	case screenChat:
		content = a.chat.view(a)
	default:
		content = a.prov.view(a)
	}

	if a.notice != nil {
		content += "\n\n" + a.renderNotice()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(),
		content,
		a.renderFooter(),
	)
}

func (a *App) renderHeader() string {
	title := titleStyle.Render("TravelGo")
	who := subtitleStyle.Render("guest")
	if user := a.session.CurrentUser(); user != nil {
		role := "customer"
		if user.IsProvider() {
			role = "provider"
		}
		who = subtitleStyle.Render(user.DisplayName() + " · " + role)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", who)
}

func (a *App) renderFooter() string {
	var tabs string
	if a.session.IsProvider() {
		tabs = "1 Stats  2 My tours  3 Orders  4 Profile"
	} else {
		tabs = "1 Explore  2 Profile"
	}
	return helpStyle.Render(tabs + "  ·  q Quit")
}

func (a *App) renderNotice() string {
	style := panelStyle
	switch a.notice.Level {
	case utils.NoticeError:
		style = style.BorderForeground(colDanger)
	case utils.NoticeSuccess:
		style = style.BorderForeground(colOK)
	case utils.NoticeWarning:
		style = style.BorderForeground(colAccent)
	}
	body := valueStyle.Render(a.notice.Title) + "\n" + a.notice.Message +
		"\n" + subtitleStyle.Render("press any key")
	return style.Render(body)
}

// Run starts the terminal UI and blocks until exit.
func Run(client *api.Client, sess *session.Manager, fsClient *firestore.Client) error {
	app := New(client, sess, fsClient)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		utils.GetLogger().Error("tui: program exited", zap.Error(err))
		return err
	}
	return nil
}
