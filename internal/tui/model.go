// Package tui renders a parsed hand as a step-through table view. It is a
// thin consumer of the parser and replayer: every keypress maps to an
// index change and a fresh GameState render.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"

	"github.com/cardsharp/handreplay/internal/cards"
	"github.com/cardsharp/handreplay/internal/config"
	"github.com/cardsharp/handreplay/internal/handhistory"
	"github.com/cardsharp/handreplay/internal/replay"
)

// autoplayTickMsg fires when the autoplay interval elapses.
type autoplayTickMsg struct{}

// Model is the Bubble Tea model for the replay viewer
type Model struct {
	hand   *handhistory.HandReplay
	cursor *replay.Cursor
	state  replay.GameState

	logViewport viewport.Model
	actionLog   []string

	autoplay bool
	interval time.Duration
	clock    quartz.Clock

	plainCards bool
	quitting   bool
	err        error

	width  int
	height int
}

// New creates a viewer for one parsed hand. The clock drives autoplay so
// tests can substitute a mock.
func New(hand *handhistory.HandReplay, cfg *config.Config, clock quartz.Clock) Model {
	cursor := replay.NewCursor(hand)

	index := 0
	if cfg.Replay.StartAtEnd {
		index = cursor.Len()
	}
	state, err := cursor.Seek(index)

	vp := viewport.New(60, 12)

	plain := cfg.Replay.PlainCards || termenv.ColorProfile() == termenv.Ascii

	m := Model{
		hand:        hand,
		cursor:      cursor,
		state:       state,
		logViewport: vp,
		interval:    time.Duration(cfg.Replay.AutoplayIntervalMS) * time.Millisecond,
		clock:       clock,
		plainCards:  plain,
		err:         err,
	}
	m.rebuildLog()
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logViewport.Width = msg.Width - 4
		m.logViewport.Height = max(6, msg.Height-18)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "right", "l", " ":
			m.seek(m.cursor.Index() + 1)
			return m, nil
		case "left", "h":
			m.seek(m.cursor.Index() - 1)
			return m, nil
		case "home", "g":
			m.seek(0)
			return m, nil
		case "end", "G":
			m.seek(m.cursor.Len())
			return m, nil
		case "p":
			m.autoplay = !m.autoplay
			if m.autoplay {
				return m, m.tickCmd()
			}
			return m, nil
		}

	case autoplayTickMsg:
		if !m.autoplay {
			return m, nil
		}
		m.seek(m.cursor.Index() + 1)
		if m.cursor.AtEnd() {
			m.autoplay = false
			return m, nil
		}
		return m, m.tickCmd()
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m *Model) seek(index int) {
	if index < 0 {
		index = 0
	}
	if index > m.cursor.Len() {
		index = m.cursor.Len()
	}
	state, err := m.cursor.Seek(index)
	if err != nil {
		m.err = err
		return
	}
	m.state = state
	m.rebuildLog()
}

func (m *Model) tickCmd() tea.Cmd {
	timer := m.clock.NewTimer(m.interval)
	return func() tea.Msg {
		<-timer.C
		return autoplayTickMsg{}
	}
}

// rebuildLog refreshes the applied-action pane up to the current index.
func (m *Model) rebuildLog() {
	m.actionLog = m.actionLog[:0]
	street := handhistory.Street("")
	for i := 0; i < m.state.ActionIndex && i < len(m.hand.Actions); i++ {
		action := m.hand.Actions[i]
		if action.Street != street {
			street = action.Street
			m.actionLog = append(m.actionLog, HandInfoStyle.Render("--- "+strings.ToUpper(string(street))+" ---"))
		}
		m.actionLog = append(m.actionLog, fmt.Sprintf("%s %s", action.Player, action.Description))
	}
	m.logViewport.SetContent(strings.Join(m.actionLog, "\n"))
	m.logViewport.GotoBottom()
}

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return fmt.Sprintf("error: %v\n", m.err)
	}

	var b strings.Builder

	title := fmt.Sprintf(" Hand %s — %s %s ", m.hand.HandID, m.hand.TableName, m.hand.Stakes)
	b.WriteString(HeaderStyle.Render(title))
	b.WriteString("\n\n")

	board := "(no board)"
	if len(m.state.BoardCards) > 0 {
		board = m.renderCards(m.state.BoardCards)
	}
	table := fmt.Sprintf("Board: %s\nPot: %s   Street: %s",
		board,
		PotStyle.Render(fmt.Sprintf("$%.2f", m.state.Pot)),
		string(m.state.Street))
	b.WriteString(TableStyle.Render(table))
	b.WriteString("\n")

	for _, p := range m.state.Players {
		b.WriteString(m.renderPlayer(p))
		b.WriteString("\n")
	}

	if m.state.CurrentAction != nil {
		next := m.state.CurrentAction
		b.WriteString(ActionStyle.Render(fmt.Sprintf("Next: %s %s", next.Player, next.Description)))
	} else {
		b.WriteString(HandInfoStyle.Render(m.outcomeLine()))
	}
	b.WriteString("\n")

	b.WriteString(LogPaneStyle.Render(m.logViewport.View()))
	b.WriteString("\n")

	status := fmt.Sprintf("action %d/%d", m.state.ActionIndex, m.state.TotalActions)
	if m.autoplay {
		status += "  [autoplay]"
	}
	status += "  ←/→ step  g/G ends  p autoplay  q quit"
	b.WriteString(StatusStyle.Render(status))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderPlayer(p handhistory.PlayerState) string {
	nameStyle := lipgloss.NewStyle()
	if p.IsHero {
		nameStyle = HeroStyle
	}
	if !p.IsActive {
		nameStyle = FoldedStyle
	}

	line := fmt.Sprintf("Seat %d %-14s %-12s $%.2f", p.Seat, nameStyle.Render(p.Name), p.Position, p.Stack)
	if p.CurrentBet > 0 {
		line += fmt.Sprintf("  bet $%.2f", p.CurrentBet)
	}
	if p.CardsVisible && len(p.HoleCards) > 0 {
		line += "  " + m.renderCards(p.HoleCards)
	}
	if !p.IsActive {
		line += "  (folded)"
	}
	return line
}

func (m Model) renderCards(raw []string) string {
	if m.plainCards {
		return strings.Join(raw, " ")
	}
	parts := make([]string, 0, len(raw))
	for _, s := range raw {
		card, err := cards.Parse(s)
		if err != nil {
			parts = append(parts, s)
			continue
		}
		style := BlackCardStyle
		if card.IsRed() {
			style = RedCardStyle
		}
		parts = append(parts, style.Render(card.String()))
	}
	return strings.Join(parts, " ")
}

func (m Model) outcomeLine() string {
	if m.hand.Winner == "" {
		return "End of hand"
	}
	line := fmt.Sprintf("End of hand — %s wins $%.2f", m.hand.Winner, m.hand.FinalPot)
	if m.hand.WinningHand != "" {
		line += " with " + m.hand.WinningHand
	}
	return line
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
