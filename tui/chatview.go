// File: travelgo/tui/chatview.go
package tui

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"travelgo/chat"
	"travelgo/models"
	"travelgo/session"
	"travelgo/utils"
)

// chatView is a live two-party conversation. The room subscription is
// acquired on entry and released on every exit path.
type chatView struct {
	fsClient *firestore.Client
	session  *session.Manager

	room    *chat.Room
	partner models.ChatUser
	updates <-chan []models.Message
	msgs    []models.Message
	input   textinput.Model
}

func newChatView(fsClient *firestore.Client, sess *session.Manager) *chatView {
	input := textinput.New()
	input.Placeholder = "Message"
	input.CharLimit = 1000
	input.Width = 50
	return &chatView{fsClient: fsClient, session: sess, input: input}
}

func (c *chatView) available() bool {
	return c.fsClient != nil
}

func (c *chatView) open(partner models.ChatUser) tea.Cmd {
	c.close()

	user := c.session.CurrentUser()
	if user == nil {
		return nil
	}
	c.partner = partner
	c.room = chat.NewRoom(c.fsClient, user.ID, partner.ID)
	c.msgs = nil
	c.input.SetValue("")

	updates, err := c.room.Open(context.Background())
	if err != nil {
		utils.GetLogger().Sugar().Warnf("chat: could not open room: %v", err)
		c.room = nil
		return nil
	}
	c.updates = updates
	return tea.Batch(c.input.Focus(), c.wait())
}

func (c *chatView) wait() tea.Cmd {
	updates := c.updates
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		msgs, ok := <-updates
		return chatStreamMsg{msgs: msgs, ok: ok}
	}
}

func (c *chatView) close() {
	if c.room != nil {
		c.room.Close()
		c.room = nil
		c.updates = nil
	}
}

func (c *chatView) handleMsg(a *App, msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case chatSentMsg:
		if msg.err != nil {
			n := utils.ErrorNotice("Message not sent", "The message could not be delivered.", msg.err)
			a.notice = &n
		}
		c.msgs = msg.msgs
		return a, nil
	}
	return a, nil
}

func (c *chatView) handleKey(a *App, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		c.close()
		a.screen = screenDetail
		return a, nil
	case tea.KeyEnter:
		return c.send(a)
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return a, cmd
}

func (c *chatView) send(a *App) (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(c.input.Value())
	if text == "" || c.room == nil {
		return a, nil
	}
	user := c.session.CurrentUser()
	if user == nil {
		return a, nil
	}
	sender := models.ChatUser{ID: user.ID, Name: user.DisplayName(), Avatar: user.Avatar}
	c.input.SetValue("")

	room := c.room
	return a, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		msgs, err := room.Send(ctx, sender, text)
		return chatSentMsg{msgs: msgs, err: err}
	}
}

func (c *chatView) view(a *App) string {
	var b strings.Builder
	name := c.partner.Name
	if name == "" {
		name = "Provider"
	}
	b.WriteString(titleStyle.Render("Chat with "+name) + "\n\n")

	if c.room == nil {
		b.WriteString(subtitleStyle.Render("Chat is unavailable.") + "\n")
		return b.String()
	}

	user := a.session.CurrentUser()
	// The buffer is newest first; render oldest first like a transcript.
	for i := len(c.msgs) - 1; i >= 0; i-- {
		m := c.msgs[i]
		who := m.Sender.Name
		if user != nil && m.Sender.ID == user.ID {
			who = "you"
		}
		line := subtitleStyle.Render(who+":") + " " + m.Text
		if m.Pending {
			line = pendingStyle.Render(who + ": " + m.Text + " …")
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + c.input.View() + "\n")
	b.WriteString(helpStyle.Render("Enter Send  Esc Leave room"))
	return b.String()
}
