// Package tui is a terminal front end over the same game state the web
// server uses.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jaminalder/tictactoe-timetravel/internal/domain"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	winningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	currentStyle = lipgloss.NewStyle().Bold(true)
	helpStyle    = lipgloss.NewStyle().Faint(true)
)

// Model is the bubbletea model for one local game.
type Model struct {
	state    domain.GameState
	order    domain.Order
	selected int
	quitting bool
}

// New returns a model at game start with the centre cell selected.
func New() Model {
	return Model{state: domain.New(), selected: 4}
}

// State returns the current game state.
func (m Model) State() domain.GameState { return m.state }

// Order returns the move list order.
func (m Model) Order() domain.Order { return m.order }

// Selected returns the board index under the cursor.
func (m Model) Selected() int { return m.selected }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k := key.String(); k {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.selected >= 3 {
			m.selected -= 3
		}
	case "down", "j":
		if m.selected < 6 {
			m.selected += 3
		}
	case "left", "h":
		if m.selected%3 > 0 {
			m.selected--
		}
	case "right", "l":
		if m.selected%3 < 2 {
			m.selected++
		}
	case "enter", " ":
		m.state = m.state.ApplyMove(m.selected)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.selected = int(k[0] - '1')
		m.state = m.state.ApplyMove(m.selected)
	case "[":
		m.state = m.state.JumpTo(m.state.Cursor - 1)
	case "]":
		m.state = m.state.JumpTo(m.state.Cursor + 1)
	case "g":
		m.state = m.state.JumpTo(0)
	case "G":
		m.state = m.state.JumpTo(len(m.state.History) - 1)
	case "o":
		m.order = m.order.Toggle()
	case "n":
		m.state = domain.New()
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Tic-tac-toe"))
	b.WriteString("\n\n")

	res, won := m.state.Winner()
	board := m.state.Current().Board
	for r := 0; r < 3; r++ {
		if r > 0 {
			b.WriteString("───┼───┼───\n")
		}
		for c := 0; c < 3; c++ {
			if c > 0 {
				b.WriteString("│")
			}
			i := r*3 + c
			b.WriteString(m.renderCell(i, board[i], won && res.Line.Contains(i)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.state.Status())
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Moves (%s):\n", m.order)
	for _, mv := range m.state.Moves(m.order) {
		line := mv.Label
		if mv.Description != "" {
			line += "  " + mv.Description
		}
		if mv.Current {
			b.WriteString("> " + currentStyle.Render(line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("arrows move · enter/1-9 play · [ ] step · g/G ends · o order · n new · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderCell(i int, c domain.Cell, winning bool) string {
	mark := c.String()
	if mark == "" {
		mark = " "
	}
	if winning {
		mark = winningStyle.Render(mark)
	}
	if i == m.selected {
		return "[" + mark + "]"
	}
	return " " + mark + " "
}
