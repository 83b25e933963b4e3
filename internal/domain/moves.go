package domain

import "fmt"

// Order controls the display order of the move list.
type Order uint8

const (
	Ascending Order = iota
	Descending
)

// Toggle returns the opposite order.
func (o Order) Toggle() Order {
	if o == Ascending {
		return Descending
	}
	return Ascending
}

func (o Order) String() string {
	if o == Descending {
		return "descending"
	}
	return "ascending"
}

// MoveEntry is one row of the rendered move list.
type MoveEntry struct {
	Step        int
	Label       string
	Description string
	Current     bool
}

// Moves describes every step in the history, listed in the given order.
// The history itself is left untouched.
func (g GameState) Moves(order Order) []MoveEntry {
	out := make([]MoveEntry, len(g.History))
	for step, snap := range g.History {
		e := MoveEntry{Step: step, Label: "Go to game start", Current: step == g.Cursor}
		if step > 0 {
			e.Label = fmt.Sprintf("Go to move #%d", step)
			e.Description = fmt.Sprintf("%s @ location: %d, %d", snap.Player, Row(snap.LastMove), Col(snap.LastMove))
		}
		pos := step
		if order == Descending {
			pos = len(g.History) - 1 - step
		}
		out[pos] = e
	}
	return out
}

// Winner evaluates the board at the cursor.
func (g GameState) Winner() (Result, bool) {
	return Evaluate(g.Current().Board)
}

// Status is the line shown above the move list.
func (g GameState) Status() string {
	if res, ok := g.Winner(); ok {
		return "Winner: " + res.Winner.String()
	}
	return "Next player: " + g.Next().String()
}
