package domain

// Cell represents a board cell state.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

// String returns the mark shown for the cell, or "" when empty.
func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// Board is a fixed 3x3 board stored row-major.
type Board [9]Cell

// Snapshot is one board state plus the move that produced it.
// LastMove is -1 and Player is Empty for the starting snapshot.
type Snapshot struct {
	Board    Board
	LastMove int
	Player   Cell
}

// HasMove reports whether the snapshot was produced by a move.
func (s Snapshot) HasMove() bool { return s.LastMove >= 0 }

// GameState is the full history of a match and the step currently shown.
// Transitions return a new value; a GameState is never mutated in place.
type GameState struct {
	History []Snapshot
	Cursor  int
}

// New returns a game at the start with X to move.
func New() GameState {
	return GameState{History: []Snapshot{{LastMove: -1}}}
}

// Current returns the snapshot at the cursor.
func (g GameState) Current() Snapshot {
	return g.History[g.Cursor]
}

// Next returns the player to move at the cursor.
func (g GameState) Next() Cell {
	if g.Cursor%2 == 0 {
		return X
	}
	return O
}

// ApplyMove plays the next player's mark at index. The state is returned
// unchanged when index is off the board, the cell is taken or the current
// board already has a winner. Steps after the cursor are dropped.
func (g GameState) ApplyMove(index int) GameState {
	if index < 0 || index >= len(Board{}) {
		return g
	}
	cur := g.Current()
	if cur.Board[index] != Empty {
		return g
	}
	if _, won := Evaluate(cur.Board); won {
		return g
	}

	// fresh backing array so the receiver's history stays intact
	history := make([]Snapshot, g.Cursor+1, g.Cursor+2)
	copy(history, g.History[:g.Cursor+1])

	board := cur.Board
	board[index] = g.Next()
	history = append(history, Snapshot{Board: board, LastMove: index, Player: g.Next()})
	return GameState{History: history, Cursor: g.Cursor + 1}
}

// JumpTo moves the cursor to step without discarding later steps.
// Out-of-range steps leave the state unchanged.
func (g GameState) JumpTo(step int) GameState {
	if step < 0 || step >= len(g.History) {
		return g
	}
	return GameState{History: g.History, Cursor: step}
}

// Row returns the 1-based row of a board index.
func Row(index int) int { return index/3 + 1 }

// Col returns the 1-based column of a board index.
func Col(index int) int { return index%3 + 1 }
