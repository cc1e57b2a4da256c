package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"watches-backend/pkg/kanban"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

type keyMap struct {
	Left, Right, Up, Down key.Binding
	MoveLeft, MoveRight   key.Binding
	MoveUp, MoveDown      key.Binding
	Refresh, Quit         key.Binding
}

var keys = keyMap{
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "column")),
	Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "column")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "card")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "card")),
	MoveLeft:  key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("⇧←", "move left")),
	MoveRight: key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("⇧→", "move right")),
	MoveUp:    key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("⇧↑", "move up")),
	MoveDown:  key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("⇧↓", "move down")),
	Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Up, k.MoveRight, k.MoveLeft, k.Refresh, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.MoveLeft, k.MoveRight, k.MoveUp, k.MoveDown},
		{k.Refresh, k.Quit},
	}
}

var (
	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	activeColumnStyle = columnStyle.BorderForeground(lipgloss.Color("63"))
	titleStyle        = lipgloss.NewStyle().Bold(true)
	cardStyle         = lipgloss.NewStyle()
	selectedCardStyle = lipgloss.NewStyle().Reverse(true)
	pendingCardStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	infoStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

type (
	// boardChangedMsg tells the model to re-read the reconciler state.
	boardChangedMsg struct{}
	moveFailedMsg   struct{ err *kanban.RemoteMoveError }
	loadedMsg       struct{ err error }
)

type boardModel struct {
	ctx  context.Context
	rec  *kanban.Reconciler
	help help.Model

	state kanban.State
	col   int
	row   int
	width int

	// flash is shown until the next key press.
	flash    string
	flashErr bool
	loading  bool
}

func newBoardModel(ctx context.Context, rec *kanban.Reconciler) boardModel {
	return boardModel{
		ctx:     ctx,
		rec:     rec,
		help:    help.New(),
		state:   rec.State(),
		loading: true,
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.load()
}

func (m boardModel) load() tea.Cmd {
	rec, ctx := m.rec, m.ctx
	return func() tea.Msg {
		return loadedMsg{err: rec.Load(ctx)}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case boardChangedMsg:
		m.state = m.rec.State()
		m.clampCursor()
		return m, nil

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.setFlash(fmt.Sprintf("refresh failed: %v", msg.err), true)
		}
		m.state = m.rec.State()
		m.clampCursor()
		return m, nil

	case moveFailedMsg:
		m.state = m.rec.State()
		m.followCard(msg.err.CardID)
		m.setFlash(fmt.Sprintf("move of %s to %s failed, board restored: %v", m.label(msg.err.CardID), msg.err.To, msg.err.Err), true)
		return m, nil

	case tea.KeyMsg:
		m.flash = ""
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Refresh):
			m.loading = true
			return m, m.load()
		case key.Matches(msg, keys.MoveLeft):
			m.moveSelected(m.col-1, 0)
		case key.Matches(msg, keys.MoveRight):
			m.moveSelected(m.col+1, 0)
		case key.Matches(msg, keys.MoveUp):
			m.moveSelected(m.col, m.row-1)
		case key.Matches(msg, keys.MoveDown):
			m.moveSelected(m.col, m.row+1)
		case key.Matches(msg, keys.Left):
			m.col--
			m.clampCursor()
		case key.Matches(msg, keys.Right):
			m.col++
			m.clampCursor()
		case key.Matches(msg, keys.Up):
			m.row--
			m.clampCursor()
		case key.Matches(msg, keys.Down):
			m.row++
			m.clampCursor()
		}
		return m, nil
	}
	return m, nil
}

func (m *boardModel) selected() (kanban.Card, bool) {
	cards := m.state.Column(kanban.Statuses[m.col])
	if m.row < 0 || m.row >= len(cards) {
		return kanban.Card{}, false
	}
	return cards[m.row], true
}

// moveSelected starts an optimistic move of the selected card. The board is
// redrawn from the reconciler state, which already holds the move.
func (m *boardModel) moveSelected(col, index int) {
	if col < 0 || col >= len(kanban.Statuses) || index < 0 {
		return
	}
	c, ok := m.selected()
	if !ok {
		return
	}
	src, dst := kanban.Statuses[m.col], kanban.Statuses[col]

	if _, err := m.rec.Move(m.ctx, c.ID, src, dst, index); err != nil {
		if errors.Is(err, kanban.ErrMoveInFlight) {
			m.setFlash(fmt.Sprintf("%s is still being saved", m.label(c.ID)), false)
		} else {
			m.setFlash(err.Error(), true)
		}
		return
	}
	m.state = m.rec.State()
	m.followCard(c.ID)
}

func (m *boardModel) followCard(cardID string) {
	if status, idx, ok := m.state.Find(cardID); ok {
		for i, s := range kanban.Statuses {
			if s == status {
				m.col = i
			}
		}
		m.row = idx
	}
	m.clampCursor()
}

func (m *boardModel) clampCursor() {
	m.col = max(0, min(m.col, len(kanban.Statuses)-1))
	n := len(m.state.Column(kanban.Statuses[m.col]))
	m.row = max(0, min(m.row, n-1))
}

func (m *boardModel) setFlash(text string, isErr bool) {
	m.flash = text
	m.flashErr = isErr
}

func (m boardModel) label(cardID string) string {
	if c, ok := m.state.Card(cardID); ok {
		if s, ok := summaryOf(c); ok {
			return s.OrderNumber
		}
	}
	return cardID
}

func (m boardModel) View() string {
	colWidth := 28
	if m.width > 0 {
		colWidth = max(18, m.width/len(kanban.Statuses)-4)
	}

	cols := make([]string, 0, len(kanban.Statuses))
	for ci, status := range kanban.Statuses {
		cards := m.state.Column(status)
		lines := []string{titleStyle.Render(fmt.Sprintf("%s (%d)", strings.ToUpper(string(status)), len(cards)))}
		for ri, c := range cards {
			text := truncate(cardLine(c), colWidth)
			style := cardStyle
			if m.rec.Pending(c.ID) {
				style = pendingCardStyle
				text = truncate("… "+cardLine(c), colWidth)
			}
			if ci == m.col && ri == m.row {
				style = selectedCardStyle
			}
			lines = append(lines, style.Render(text))
		}

		style := columnStyle
		if ci == m.col {
			style = activeColumnStyle
		}
		cols = append(cols, style.Width(colWidth).Render(strings.Join(lines, "\n")))
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	b.WriteString("\n")
	switch {
	case m.flash != "" && m.flashErr:
		b.WriteString(errorStyle.Render(m.flash))
	case m.flash != "":
		b.WriteString(infoStyle.Render(m.flash))
	case m.loading:
		b.WriteString(infoStyle.Render("loading…"))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	return b.String()
}

func cardLine(c kanban.Card) string {
	if s, ok := summaryOf(c); ok {
		return fmt.Sprintf("%s %s", s.OrderNumber, s.CustomerName)
	}
	return c.ID
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.requireToken(); err != nil {
				return err
			}
			ctx, cancel := context.WithCancel(commandContext(cmd))
			defer cancel()

			client := opts.client()
			p, rec := newBoardProgram(ctx, func(listeners ...kanban.Option) *kanban.Reconciler {
				return opts.reconciler(client, listeners...)
			}, tea.WithAltScreen())
			_, err := p.Run()
			cancel()
			rec.Wait()
			if errors.Is(err, tea.ErrProgramKilled) {
				return nil
			}
			return err
		},
	}
}

// newBoardProgram builds the reconciler with listeners that forward board
// changes to the program. Move runs inside Update and calls OnChange before
// returning, so the listeners hand messages to the event loop asynchronously.
func newBoardProgram(ctx context.Context, newRec func(...kanban.Option) *kanban.Reconciler, opts ...tea.ProgramOption) (*tea.Program, *kanban.Reconciler) {
	var p *tea.Program
	send := func(msg tea.Msg) { go p.Send(msg) }

	rec := newRec(
		kanban.OnChange(func(kanban.State) { send(boardChangedMsg{}) }),
		kanban.OnError(func(err *kanban.RemoteMoveError) { send(moveFailedMsg{err: err}) }),
	)
	p = tea.NewProgram(newBoardModel(ctx, rec), append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...)
	return p, rec
}
