package bingo

import (
	"math/rand/v2"
	"strings"

	"github.com/rocketscienceinc/bingo-backend/internal/entity"
)

const gameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Source is the randomness used by the rules. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n) //nolint: gosec // game randomness, not security
}

// DefaultSource draws from the runtime's goroutine-safe generator.
func DefaultSource() Source {
	return globalSource{}
}

// GenerateBoard builds a card whose column c holds five distinct numbers from
// [15c+1, 15c+15]. The centre cell is the free space.
func GenerateBoard(src Source) entity.Board {
	var board entity.Board

	for col := range entity.BoardSize {
		low, _ := entity.ColumnRange(col)
		used := make(map[int]bool, entity.BoardSize)

		for row := range entity.BoardSize {
			if entity.IsFreeSpace(row, col) {
				continue
			}

			num := low + src.IntN(entity.ColumnSpan)
			for used[num] {
				num = low + src.IntN(entity.ColumnSpan)
			}

			used[num] = true
			board[row][col] = num
		}
	}

	board[entity.FreeRow][entity.FreeCol] = entity.FreeSpace

	return board
}

// GenerateGameID returns six independent uniform letters A-Z.
func GenerateGameID(src Source) string {
	var sb strings.Builder
	sb.Grow(entity.GameIDLength)

	for range entity.GameIDLength {
		sb.WriteByte(gameIDAlphabet[src.IntN(len(gameIDAlphabet))])
	}

	return sb.String()
}

// NormalizeGameID upper-cases and trims user input.
func NormalizeGameID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// CheckWin reports whether any row, column or diagonal is fully marked.
func CheckWin(marked entity.Marked) bool {
	for _, line := range winLines {
		complete := true
		for _, cell := range line {
			if !marked[cell[0]][cell[1]] {
				complete = false
				break
			}
		}

		if complete {
			return true
		}
	}

	return false
}

// winLines lists the twelve bingo lines as [row, col] pairs.
var winLines = buildWinLines()

func buildWinLines() [][entity.BoardSize][2]int {
	lines := make([][entity.BoardSize][2]int, 0, 2*entity.BoardSize+2)

	for i := range entity.BoardSize {
		var row, col [entity.BoardSize][2]int
		for j := range entity.BoardSize {
			row[j] = [2]int{i, j}
			col[j] = [2]int{j, i}
		}
		lines = append(lines, row, col)
	}

	var diag, anti [entity.BoardSize][2]int
	for i := range entity.BoardSize {
		diag[i] = [2]int{i, i}
		anti[i] = [2]int{i, entity.BoardSize - 1 - i}
	}

	return append(lines, diag, anti)
}
