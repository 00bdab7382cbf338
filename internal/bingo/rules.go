package bingo

import (
	"fmt"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
)

var playerNames = map[int]string{
	entity.CreatorSeat: "Player 1",
	entity.JoinerSeat:  "Player 2",
}

// NewPlayerState deals a fresh card for the given seat.
func NewPlayerState(seat int, src Source) *entity.PlayerState {
	name, ok := playerNames[seat]
	if !ok {
		name = fmt.Sprintf("Player %d", seat)
	}

	return &entity.PlayerState{
		Name:   name,
		Seat:   seat,
		Board:  GenerateBoard(src),
		Marked: entity.NewMarked(),
	}
}

// ValidateCall checks that callerID may call the next number.
func ValidateCall(game *entity.Game, callerID string) error {
	switch {
	case game.IsFinished():
		return fmt.Errorf("%w: game already won by %s", apperror.ErrInvalidState, game.Winner)
	case len(game.Players) < entity.MaxPlayers:
		return fmt.Errorf("%w: waiting for opponent", apperror.ErrInvalidState)
	case game.CurrentPlayer != callerID:
		return fmt.Errorf("%w: it's not your turn", apperror.ErrInvalidState)
	}

	return nil
}

// DrawNumber picks uniformly from the numbers that have not been called yet.
func DrawNumber(src Source, called []int) (int, error) {
	seen := make(map[int]bool, len(called))
	for _, n := range called {
		seen[n] = true
	}

	available := make([]int, 0, entity.MaxNumber)
	for n := 1; n <= entity.MaxNumber; n++ {
		if !seen[n] {
			available = append(available, n)
		}
	}

	if len(available) == 0 {
		return 0, apperror.ErrExhausted
	}

	return available[src.IntN(len(available))], nil
}

// CallNumber draws the next number and passes the turn to the opponent.
func CallNumber(game *entity.Game, callerID string, src Source) (*entity.GameUpdate, error) {
	if err := ValidateCall(game, callerID); err != nil {
		return nil, err
	}

	number, err := DrawNumber(src, game.CalledNumbers)
	if err != nil {
		return nil, err
	}

	next, ok := game.Opponent(callerID)
	if !ok {
		return nil, fmt.Errorf("%w: no opponent", apperror.ErrInvalidState)
	}

	return &entity.GameUpdate{CalledNumber: number, CurrentPlayer: next}, nil
}

// MarkCell daubs a cell on the player's card. A nil update means the cell was
// already marked. Completing a line also declares the player the winner.
func MarkCell(game *entity.Game, playerID string, row, col int) (*entity.GameUpdate, error) {
	if game.IsFinished() {
		return nil, fmt.Errorf("%w: game already won by %s", apperror.ErrInvalidState, game.Winner)
	}

	if !entity.InBounds(row, col) {
		return nil, fmt.Errorf("%w: row %d col %d", apperror.ErrInvalidCell, row, col)
	}

	player, ok := game.Player(playerID)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not playing this game", apperror.ErrInvalidState, playerID)
	}

	number := player.Board[row][col]
	if number != entity.FreeSpace && !game.IsCalled(number) {
		return nil, fmt.Errorf("%w: %d", apperror.ErrNotCalled, number)
	}

	if player.Marked[row][col] {
		return nil, nil
	}

	marked := player.Marked
	marked[row][col] = true

	update := (&entity.GameUpdate{}).SetMarked(playerID, marked)
	if CheckWin(marked) {
		update.Winner = playerID
	}

	return update, nil
}
