package domain

// Line is a triple of board indices.
type Line [3]int

// Lines lists every winning triple in evaluation order.
var Lines = [8]Line{
	// rows
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	// cols
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	// diags
	{0, 4, 8}, {2, 4, 6},
}

// Result describes a won board.
type Result struct {
	Winner Cell
	Line   Line
}

// Evaluate returns the first line in Lines held entirely by one player.
func Evaluate(b Board) (Result, bool) {
	for _, ln := range Lines {
		a := b[ln[0]]
		if a != Empty && a == b[ln[1]] && a == b[ln[2]] {
			return Result{Winner: a, Line: ln}, true
		}
	}
	return Result{}, false
}

// Contains reports whether index is part of the line.
func (l Line) Contains(index int) bool {
	return l[0] == index || l[1] == index || l[2] == index
}
