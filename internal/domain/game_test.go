package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helper to apply a sequence of moves that must all be accepted
func playMoves(t *testing.T, g GameState, moves ...int) GameState {
	t.Helper()
	for i, m := range moves {
		next := g.ApplyMove(m)
		require.Equal(t, g.Cursor+1, next.Cursor, "move %d (cell %d) was rejected", i, m)
		g = next
	}
	return g
}

func TestNewGameInitialState(t *testing.T) {
	g := New()
	require.Len(t, g.History, 1)
	assert.Equal(t, 0, g.Cursor)
	assert.Equal(t, X, g.Next())
	assert.Equal(t, Board{}, g.Current().Board)
	assert.False(t, g.Current().HasMove())
	assert.Equal(t, Empty, g.Current().Player)
	_, won := g.Winner()
	assert.False(t, won)
}

func TestApplyMovePlacesMarkAndFlipsTurn(t *testing.T) {
	g := New().ApplyMove(4)

	require.Len(t, g.History, 2)
	assert.Equal(t, 1, g.Cursor)
	assert.Equal(t, X, g.Current().Board[4])
	assert.Equal(t, 4, g.Current().LastMove)
	assert.Equal(t, X, g.Current().Player)
	assert.Equal(t, O, g.Next())
	// start snapshot untouched
	assert.Equal(t, Board{}, g.History[0].Board)
}

func TestApplyMoveOccupiedIsNoop(t *testing.T) {
	g := playMoves(t, New(), 0)
	before := g
	assert.Equal(t, before, g.ApplyMove(0))
}

func TestApplyMoveOutOfBoundsIsNoop(t *testing.T) {
	g := playMoves(t, New(), 0)
	for _, idx := range []int{-1, 9, 42} {
		assert.Equal(t, g, g.ApplyMove(idx), "index %d", idx)
	}
}

func TestApplyMoveAfterWinIsNoop(t *testing.T) {
	// X wins on the top row
	g := playMoves(t, New(), 0, 3, 1, 4, 2)
	_, won := g.Winner()
	require.True(t, won)
	assert.Equal(t, g, g.ApplyMove(8))
}

func TestBranchOverwritesFuture(t *testing.T) {
	g := playMoves(t, New(), 0, 1)
	g = g.JumpTo(0)
	require.Len(t, g.History, 3, "jump must not truncate")

	g = g.ApplyMove(4)
	require.Len(t, g.History, 2)
	assert.Equal(t, 1, g.Cursor)
	assert.Equal(t, X, g.History[1].Board[4])
	assert.Equal(t, Empty, g.History[1].Board[1])
	assert.Equal(t, Empty, g.History[1].Board[0])

	fresh := New().ApplyMove(4)
	assert.Equal(t, fresh.Current().Board, g.Current().Board)
}

func TestApplyMoveDoesNotMutateReceiver(t *testing.T) {
	full := playMoves(t, New(), 0, 1, 2)
	jumped := full.JumpTo(1)
	_ = jumped.ApplyMove(8)

	require.Len(t, jumped.History, 4)
	assert.Equal(t, 1, jumped.History[2].LastMove)
	assert.Equal(t, O, jumped.History[2].Board[1])
	assert.Equal(t, 2, full.History[3].LastMove)
}

func TestJumpTo(t *testing.T) {
	g := playMoves(t, New(), 0, 1, 2)

	j := g.JumpTo(1)
	assert.Equal(t, 1, j.Cursor)
	assert.Equal(t, O, j.Next())
	assert.Len(t, j.History, 4)

	j = g.JumpTo(2)
	assert.Equal(t, X, j.Next())
	assert.Equal(t, Board{X, O}, j.Current().Board)

	for _, step := range []int{-1, 4, 100} {
		assert.Equal(t, g, g.JumpTo(step), "step %d", step)
	}
}

func TestJumpForwardAfterJumpBack(t *testing.T) {
	g := playMoves(t, New(), 0, 1, 2)
	g = g.JumpTo(0).JumpTo(3)
	assert.Equal(t, 3, g.Cursor)
	assert.Equal(t, Board{X, O, X}, g.Current().Board)
}

func TestRowCol(t *testing.T) {
	cases := []struct{ idx, row, col int }{
		{0, 1, 1}, {1, 1, 2}, {2, 1, 3},
		{3, 2, 1}, {4, 2, 2}, {5, 2, 3},
		{6, 3, 1}, {7, 3, 2}, {8, 3, 3},
	}
	for _, c := range cases {
		assert.Equal(t, c.row, Row(c.idx), "row of %d", c.idx)
		assert.Equal(t, c.col, Col(c.idx), "col of %d", c.idx)
	}
}

func TestWinConditionsForX(t *testing.T) {
	for _, line := range Lines {
		fillers := cellsOff(line)
		// X, O, X, O, X with X on the line
		g := playMoves(t, New(), line[0], fillers[0], line[1], fillers[1], line[2])
		res, won := g.Winner()
		require.True(t, won, "expected X to win on line %v", line)
		assert.Equal(t, X, res.Winner)
		assert.Equal(t, line, res.Line)
		assert.Equal(t, "Winner: X", g.Status())
	}
}

func TestWinConditionsForO(t *testing.T) {
	for _, line := range Lines {
		f := xFillersFor(t, line)
		g := playMoves(t, New(), f[0], line[0], f[1], line[1], f[2], line[2])
		res, won := g.Winner()
		require.True(t, won, "expected O to win on line %v", line)
		assert.Equal(t, O, res.Winner)
		assert.Equal(t, line, res.Line)
		assert.Equal(t, 6, g.Cursor)
	}
}

func TestDrawNoWinner(t *testing.T) {
	g := playMoves(t, New(), 0, 1, 2, 4, 3, 5, 7, 6, 8)
	assert.Equal(t, Board{X, O, X, X, O, O, O, X, X}, g.Current().Board)
	_, won := g.Winner()
	assert.False(t, won)
	assert.Equal(t, "Next player: O", g.Status())
	// nothing left to play
	for i := 0; i < 9; i++ {
		assert.Equal(t, g, g.ApplyMove(i))
	}
}

func TestStatusFollowsCursor(t *testing.T) {
	g := playMoves(t, New(), 0, 3, 1, 4, 2)
	assert.Equal(t, "Winner: X", g.Status())
	assert.Equal(t, "Next player: O", g.JumpTo(3).Status())
	assert.Equal(t, "Next player: X", g.JumpTo(0).Status())
}

func cellsOff(line Line) []int {
	var out []int
	for i := 0; i < 9; i++ {
		if !line.Contains(i) {
			out = append(out, i)
		}
	}
	return out
}

// xFillersFor picks three cells off the line that do not form a line themselves.
func xFillersFor(t *testing.T, line Line) [3]int {
	t.Helper()
	off := cellsOff(line)
	for a := 0; a < len(off); a++ {
		for b := a + 1; b < len(off); b++ {
			for c := b + 1; c < len(off); c++ {
				var board Board
				board[off[a]], board[off[b]], board[off[c]] = X, X, X
				if _, won := Evaluate(board); !won {
					return [3]int{off[a], off[b], off[c]}
				}
			}
		}
	}
	t.Fatalf("no filler set for line %v", line)
	return [3]int{}
}
