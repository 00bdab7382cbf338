package bingo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
)

func newFullGame(t *testing.T) *entity.Game {
	t.Helper()

	src := newTestSource(11)
	game := entity.NewGame("ABCDEF", "p1", NewPlayerState(entity.CreatorSeat, src))
	game.Apply((&entity.GameUpdate{}).AddPlayer("p2", NewPlayerState(entity.JoinerSeat, src)))

	return game
}

func TestNewPlayerState(t *testing.T) {
	t.Run("Names follow the seat", func(t *testing.T) {
		src := newTestSource(1)

		assert.Equal(t, "Player 1", NewPlayerState(entity.CreatorSeat, src).Name)
		assert.Equal(t, "Player 2", NewPlayerState(entity.JoinerSeat, src).Name)
	})

	t.Run("Only the free space starts marked", func(t *testing.T) {
		player := NewPlayerState(entity.CreatorSeat, newTestSource(1))

		assert.Equal(t, entity.NewMarked(), player.Marked)
	})
}

func TestDrawNumber(t *testing.T) {
	t.Run("Never repeats a called number", func(t *testing.T) {
		// Given: a source and an empty history
		src := newTestSource(5)
		var called []int

		// When: all 75 numbers are drawn
		for range entity.MaxNumber {
			n, err := DrawNumber(src, called)
			require.NoError(t, err)
			require.NotContains(t, called, n)
			require.True(t, n >= 1 && n <= entity.MaxNumber)
			called = append(called, n)
		}

		// Then: the 76th draw is exhausted
		_, err := DrawNumber(src, called)
		assert.ErrorIs(t, err, apperror.ErrExhausted)
	})

	t.Run("Picks from the complement", func(t *testing.T) {
		// Given: everything but 42 called
		called := make([]int, 0, entity.MaxNumber-1)
		for n := 1; n <= entity.MaxNumber; n++ {
			if n != 42 {
				called = append(called, n)
			}
		}

		// When: a number is drawn
		n, err := DrawNumber(newTestSource(9), called)

		// Then: it is the only one left
		require.NoError(t, err)
		assert.Equal(t, 42, n)
	})
}

func TestCallNumber(t *testing.T) {
	t.Run("Caller holding the turn passes it on", func(t *testing.T) {
		// Given: a full game on p1's turn
		game := newFullGame(t)

		// When: p1 calls
		update, err := CallNumber(game, "p1", newTestSource(2))

		// Then: a number is drawn and p2 gets the turn
		require.NoError(t, err)
		assert.NotZero(t, update.CalledNumber)
		assert.Equal(t, "p2", update.CurrentPlayer)
	})

	t.Run("Caller without the turn is rejected", func(t *testing.T) {
		game := newFullGame(t)

		_, err := CallNumber(game, "p2", newTestSource(2))

		assert.ErrorIs(t, err, apperror.ErrInvalidState)
	})

	t.Run("Calling alone is rejected", func(t *testing.T) {
		game := entity.NewGame("ABCDEF", "p1", NewPlayerState(entity.CreatorSeat, newTestSource(1)))

		_, err := CallNumber(game, "p1", newTestSource(2))

		assert.ErrorIs(t, err, apperror.ErrInvalidState)
	})

	t.Run("Calling after a win is rejected", func(t *testing.T) {
		game := newFullGame(t)
		game.Winner = "p2"

		_, err := CallNumber(game, "p1", newTestSource(2))

		assert.ErrorIs(t, err, apperror.ErrInvalidState)
	})

	t.Run("Calling with every number used is exhausted", func(t *testing.T) {
		game := newFullGame(t)
		for n := 1; n <= entity.MaxNumber; n++ {
			game.CalledNumbers = append(game.CalledNumbers, n)
		}

		_, err := CallNumber(game, "p1", newTestSource(2))

		assert.ErrorIs(t, err, apperror.ErrExhausted)
	})
}

func TestMarkCell(t *testing.T) {
	t.Run("Called number is marked", func(t *testing.T) {
		// Given: a game where p2's top-left number was called
		game := newFullGame(t)
		game.CalledNumbers = []int{game.Players["p2"].Board[0][0]}

		// When: p2 marks it, even though it is p1's turn
		update, err := MarkCell(game, "p2", 0, 0)

		// Then: only p2's grid changes and nobody wins
		require.NoError(t, err)
		require.Contains(t, update.MarkedGrids, "p2")
		assert.True(t, update.MarkedGrids["p2"][0][0])
		assert.Empty(t, update.Winner)
	})

	t.Run("Uncalled number is rejected", func(t *testing.T) {
		game := newFullGame(t)

		_, err := MarkCell(game, "p1", 0, 0)

		assert.ErrorIs(t, err, apperror.ErrNotCalled)
	})

	t.Run("Free space needs no call", func(t *testing.T) {
		game := newFullGame(t)

		update, err := MarkCell(game, "p1", entity.FreeRow, entity.FreeCol)

		require.NoError(t, err)
		assert.Nil(t, update)
	})

	t.Run("Marking twice is a no-op", func(t *testing.T) {
		// Given: an already marked cell
		game := newFullGame(t)
		game.CalledNumbers = []int{game.Players["p1"].Board[0][0]}
		game.Players["p1"].Marked[0][0] = true

		// When: it is marked again
		update, err := MarkCell(game, "p1", 0, 0)

		// Then: nothing is written
		require.NoError(t, err)
		assert.Nil(t, update)
	})

	t.Run("Out of bounds is rejected", func(t *testing.T) {
		game := newFullGame(t)

		_, err := MarkCell(game, "p1", 5, 0)

		assert.ErrorIs(t, err, apperror.ErrInvalidCell)
	})

	t.Run("Stranger is rejected", func(t *testing.T) {
		game := newFullGame(t)

		_, err := MarkCell(game, "p3", 0, 0)

		assert.ErrorIs(t, err, apperror.ErrInvalidState)
	})

	t.Run("Completing a line declares the winner", func(t *testing.T) {
		// Given: p1 has four cells of the top row marked and all five called
		game := newFullGame(t)
		board := game.Players["p1"].Board
		for col := range entity.BoardSize {
			game.CalledNumbers = append(game.CalledNumbers, board[0][col])
		}
		for col := range entity.BoardSize - 1 {
			game.Players["p1"].Marked[0][col] = true
		}

		// When: the last cell is marked
		update, err := MarkCell(game, "p1", 0, entity.BoardSize-1)

		// Then: the same update declares p1 the winner
		require.NoError(t, err)
		assert.Equal(t, "p1", update.Winner)
	})

	t.Run("Marking after a win is rejected", func(t *testing.T) {
		game := newFullGame(t)
		game.Winner = "p2"
		game.CalledNumbers = []int{game.Players["p1"].Board[0][0]}

		_, err := MarkCell(game, "p1", 0, 0)

		assert.ErrorIs(t, err, apperror.ErrInvalidState)
	})
}
