package entity

const (
	BoardSize = 5

	// FreeSpace is the sentinel stored in the centre cell of every board.
	FreeSpace = 0
	FreeRow   = 2
	FreeCol   = 2

	ColumnSpan = 15
	MaxNumber  = BoardSize * ColumnSpan
)

// Board holds the numbers of a player's card, indexed [row][col].
type Board [BoardSize][BoardSize]int

// Marked holds the daubed cells of a player's card, indexed [row][col].
type Marked [BoardSize][BoardSize]bool

// NewMarked returns a grid with only the free space marked.
func NewMarked() Marked {
	var marked Marked
	marked[FreeRow][FreeCol] = true

	return marked
}

func IsFreeSpace(row, col int) bool {
	return row == FreeRow && col == FreeCol
}

func InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// ColumnRange returns the inclusive range of numbers allowed in a column.
func ColumnRange(col int) (int, int) {
	low := col*ColumnSpan + 1
	return low, low + ColumnSpan - 1
}
