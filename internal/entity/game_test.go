package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame() *Game {
	game := NewGame("ABCDEF", "p1", &PlayerState{Name: "Player 1", Seat: CreatorSeat, Marked: NewMarked()})
	game.Players["p2"] = &PlayerState{Name: "Player 2", Seat: JoinerSeat, Marked: NewMarked()}

	return game
}

func TestNewGame(t *testing.T) {
	t.Run("Creator holds the first turn", func(t *testing.T) {
		// Given: a creator
		creator := &PlayerState{Name: "Player 1", Seat: CreatorSeat}

		// When: a game is created
		game := NewGame("ABCDEF", "p1", creator)

		// Then: the creator is the only player and holds the turn
		assert.Equal(t, "p1", game.CurrentPlayer)
		assert.Len(t, game.Players, 1)
		assert.Empty(t, game.CalledNumbers)
		assert.False(t, game.IsFinished())
		assert.False(t, game.IsFull())
	})
}

func TestNewMarked(t *testing.T) {
	t.Run("Only the free space is marked", func(t *testing.T) {
		// When: a marked grid is initialized
		marked := NewMarked()

		// Then: the centre is true and everything else false
		for row := range BoardSize {
			for col := range BoardSize {
				assert.Equal(t, IsFreeSpace(row, col), marked[row][col], "row %d col %d", row, col)
			}
		}
	})
}

func TestColumnRange(t *testing.T) {
	t.Run("Columns cover 1 to 75 in spans of 15", func(t *testing.T) {
		for col, want := range [][2]int{{1, 15}, {16, 30}, {31, 45}, {46, 60}, {61, 75}} {
			low, high := ColumnRange(col)
			assert.Equal(t, want[0], low)
			assert.Equal(t, want[1], high)
		}
	})
}

func TestGame_PlayerIDs(t *testing.T) {
	t.Run("Returns ids in join order", func(t *testing.T) {
		// Given: a game where the joiner sorts before the creator
		game := NewGame("ABCDEF", "zeta", &PlayerState{Seat: CreatorSeat})
		game.Players["alpha"] = &PlayerState{Seat: JoinerSeat}

		// When: the ids are listed
		ids := game.PlayerIDs()

		// Then: the creator comes first
		assert.Equal(t, []string{"zeta", "alpha"}, ids)
	})
}

func TestGame_Opponent(t *testing.T) {
	t.Run("Returns the other player", func(t *testing.T) {
		game := newTestGame()

		opponent, ok := game.Opponent("p1")

		require.True(t, ok)
		assert.Equal(t, "p2", opponent)
	})

	t.Run("Reports no opponent while waiting", func(t *testing.T) {
		game := NewGame("ABCDEF", "p1", &PlayerState{Seat: CreatorSeat})

		_, ok := game.Opponent("p1")

		assert.False(t, ok)
	})
}

func TestGame_Apply(t *testing.T) {
	t.Run("Appends a called number once and advances the turn", func(t *testing.T) {
		// Given: a full game
		game := newTestGame()

		// When: the same call is applied twice
		update := &GameUpdate{CalledNumber: 7, CurrentPlayer: "p2"}
		game.Apply(update)
		game.Apply(update)

		// Then: the number is recorded once
		assert.Equal(t, []int{7}, game.CalledNumbers)
		assert.Equal(t, "p2", game.CurrentPlayer)
		assert.Equal(t, 7, game.LastCalled())
	})

	t.Run("Replaces only the target player's marks", func(t *testing.T) {
		// Given: a full game
		game := newTestGame()
		marked := NewMarked()
		marked[0][0] = true

		// When: p1's grid is updated
		game.Apply((&GameUpdate{}).SetMarked("p1", marked))

		// Then: p2 is untouched
		assert.True(t, game.Players["p1"].Marked[0][0])
		assert.False(t, game.Players["p2"].Marked[0][0])
	})

	t.Run("Nil update is a no-op", func(t *testing.T) {
		game := newTestGame()

		game.Apply(nil)

		assert.Len(t, game.Players, 2)
		assert.Empty(t, game.CalledNumbers)
	})
}

func TestGame_Clone(t *testing.T) {
	t.Run("Clone does not share state", func(t *testing.T) {
		// Given: a game and its clone
		game := newTestGame()
		clone := game.Clone()

		// When: the clone is mutated
		clone.CalledNumbers = append(clone.CalledNumbers, 5)
		clone.Players["p1"].Marked[0][0] = true

		// Then: the original is unchanged
		assert.Empty(t, game.CalledNumbers)
		assert.False(t, game.Players["p1"].Marked[0][0])
	})
}

func TestGameUpdate_IsEmpty(t *testing.T) {
	t.Run("Nil and zero updates are empty", func(t *testing.T) {
		var update *GameUpdate

		assert.True(t, update.IsEmpty())
		assert.True(t, (&GameUpdate{}).IsEmpty())
		assert.False(t, (&GameUpdate{Winner: "p1"}).IsEmpty())
	})
}

func TestValidPlayerID(t *testing.T) {
	assert.True(t, ValidPlayerID("11111111-2222-3333-4444-555555555555"))
	assert.False(t, ValidPlayerID(""))
	assert.False(t, ValidPlayerID("x.y"))
}
