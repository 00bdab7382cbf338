package bingo

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/bingo-backend/internal/entity"
)

func newTestSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1)) //nolint: gosec // deterministic test randomness
}

// fixedSource replays values in order, then counts upwards.
type fixedSource struct {
	values []int
	pos    int
}

func (that *fixedSource) IntN(n int) int {
	v := that.pos
	if that.pos < len(that.values) {
		v = that.values[that.pos]
	}
	that.pos++

	return v % n
}

func TestGenerateBoard(t *testing.T) {
	t.Run("Columns hold distinct numbers from their range", func(t *testing.T) {
		for seed := range uint64(50) {
			// Given: a seeded source
			src := newTestSource(seed)

			// When: a board is generated
			board := GenerateBoard(src)

			// Then: every column respects its range without duplicates
			for col := range entity.BoardSize {
				low, high := entity.ColumnRange(col)
				seen := make(map[int]bool)

				for row := range entity.BoardSize {
					if entity.IsFreeSpace(row, col) {
						continue
					}

					num := board[row][col]
					require.GreaterOrEqual(t, num, low)
					require.LessOrEqual(t, num, high)
					require.False(t, seen[num], "duplicate %d in column %d", num, col)
					seen[num] = true
				}

				require.Len(t, seen, countCells(col))
			}
		}
	})

	t.Run("Centre is the free space", func(t *testing.T) {
		board := GenerateBoard(newTestSource(7))

		assert.Equal(t, entity.FreeSpace, board[entity.FreeRow][entity.FreeCol])
	})

	t.Run("Rejection sampling skips repeated draws", func(t *testing.T) {
		// Given: a source that repeats 0 before moving on
		src := &fixedSource{values: []int{0, 0, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}}

		// When: a board is generated
		board := GenerateBoard(src)

		// Then: the first column still holds five distinct numbers
		assert.Equal(t, []int{1, 2, 3, 4, 5}, []int{board[0][0], board[1][0], board[2][0], board[3][0], board[4][0]})
	})
}

func countCells(col int) int {
	if col == entity.FreeCol {
		return entity.BoardSize - 1
	}

	return entity.BoardSize
}

func TestGenerateGameID(t *testing.T) {
	t.Run("Six upper-case letters", func(t *testing.T) {
		src := newTestSource(3)

		for range 100 {
			id := GenerateGameID(src)

			require.Len(t, id, entity.GameIDLength)
			for _, r := range id {
				require.True(t, r >= 'A' && r <= 'Z', "unexpected rune %q", r)
			}
		}
	})

	t.Run("Maps draws onto the alphabet", func(t *testing.T) {
		src := &fixedSource{values: []int{0, 1, 2, 23, 24, 25}}

		assert.Equal(t, "ABCXYZ", GenerateGameID(src))
	})
}

func TestNormalizeGameID(t *testing.T) {
	t.Run("Upper-cases and trims", func(t *testing.T) {
		assert.Equal(t, "ABCDEF", NormalizeGameID("  abcDef \n"))
	})
}

func TestCheckWin(t *testing.T) {
	t.Run("Fresh grid is not a win", func(t *testing.T) {
		assert.False(t, CheckWin(entity.NewMarked()))
	})

	t.Run("Every row, column and diagonal wins", func(t *testing.T) {
		// Given: the twelve lines
		require.Len(t, winLines, 12)

		for _, line := range winLines {
			// When: only that line is marked
			var marked entity.Marked
			for _, cell := range line {
				marked[cell[0]][cell[1]] = true
			}

			// Then: it is a win
			assert.True(t, CheckWin(marked), "line %v", line)
		}
	})

	t.Run("Free space completes the centre row", func(t *testing.T) {
		// Given: the centre row marked except the free space, which is pre-marked
		marked := entity.NewMarked()
		for col := range entity.BoardSize {
			if col != entity.FreeCol {
				marked[entity.FreeRow][col] = true
			}
		}

		// Then: it is a win
		assert.True(t, CheckWin(marked))
	})

	t.Run("Four in a row is not a win", func(t *testing.T) {
		var marked entity.Marked
		for col := range entity.BoardSize - 1 {
			marked[0][col] = true
		}

		assert.False(t, CheckWin(marked))
	})

	t.Run("Scattered marks are not a win", func(t *testing.T) {
		marked := entity.NewMarked()
		marked[0][1] = true
		marked[1][3] = true
		marked[3][0] = true
		marked[4][4] = true

		assert.False(t, CheckWin(marked))
	})
}
