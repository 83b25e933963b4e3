package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovesLabelsAndDescriptions(t *testing.T) {
	g := playMoves(t, New(), 4, 0, 8)
	moves := g.Moves(Ascending)
	require.Len(t, moves, 4)

	assert.Equal(t, MoveEntry{Step: 0, Label: "Go to game start"}, moves[0])
	assert.Equal(t, MoveEntry{Step: 1, Label: "Go to move #1", Description: "X @ location: 2, 2"}, moves[1])
	assert.Equal(t, MoveEntry{Step: 2, Label: "Go to move #2", Description: "O @ location: 1, 1"}, moves[2])
	assert.Equal(t, MoveEntry{Step: 3, Label: "Go to move #3", Description: "X @ location: 3, 3", Current: true}, moves[3])
}

func TestMovesMarksCursor(t *testing.T) {
	g := playMoves(t, New(), 4, 0, 8).JumpTo(1)
	for _, m := range g.Moves(Ascending) {
		assert.Equal(t, m.Step == 1, m.Current, "step %d", m.Step)
	}
}

func TestMovesOrderToggle(t *testing.T) {
	g := playMoves(t, New(), 0, 1, 2, 3)
	snapshot := append([]Snapshot(nil), g.History...)

	order := Ascending
	asc := g.Moves(order)

	order = order.Toggle()
	require.Equal(t, Descending, order)
	desc := g.Moves(order)
	require.Len(t, desc, len(asc))
	for i := range asc {
		assert.Equal(t, asc[i], desc[len(desc)-1-i])
	}
	assert.Equal(t, snapshot, g.History, "toggling must not touch history")

	order = order.Toggle()
	assert.Equal(t, asc, g.Moves(order))
}

func TestOrderString(t *testing.T) {
	assert.Equal(t, "ascending", Ascending.String())
	assert.Equal(t, "descending", Descending.String())
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "", Empty.String())
	assert.Equal(t, "X", X.String())
	assert.Equal(t, "O", O.String())
}
