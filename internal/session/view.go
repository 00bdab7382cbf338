package session

import (
	"slices"
	"strconv"

	"github.com/rocketscienceinc/bingo-backend/internal/entity"
)

type Status string

const (
	StatusWaiting      Status = "waiting"
	StatusYourTurn     Status = "your_turn"
	StatusOpponentTurn Status = "opponent_turn"
	StatusWon          Status = "won"
	StatusLost         Status = "lost"
)

const freeLabel = "FREE"

type Cell struct {
	Number int    `json:"number"`
	Label  string `json:"label"`
	Marked bool   `json:"marked"`
	Free   bool   `json:"free,omitempty"`
	// Markable is true when the number is called but the cell is not yet marked.
	Markable bool `json:"markable,omitempty"`
}

// View is an immutable, per-player rendering of one game snapshot.
type View struct {
	GameID        string                                     `json:"gameId"`
	PlayerID      string                                     `json:"playerId"`
	PlayerName    string                                     `json:"playerName,omitempty"`
	OpponentName  string                                     `json:"opponentName,omitempty"`
	Status        Status                                     `json:"status"`
	StatusText    string                                     `json:"statusText"`
	WinnerName    string                                     `json:"winnerName,omitempty"`
	CalledNumbers []int                                      `json:"calledNumbers"`
	LastCalled    int                                        `json:"lastCalled,omitempty"`
	CanCall       bool                                       `json:"canCall"`
	Board         [entity.BoardSize][entity.BoardSize]Cell `json:"board"`
}

func NewView(game *entity.Game, playerID string) View {
	view := View{
		GameID:        game.ID,
		PlayerID:      playerID,
		CalledNumbers: slices.Clone(game.CalledNumbers),
		LastCalled:    game.LastCalled(),
	}

	if view.CalledNumbers == nil {
		view.CalledNumbers = []int{}
	}

	if opponentID, ok := game.Opponent(playerID); ok {
		view.OpponentName = game.Players[opponentID].Name
	}

	if winner, ok := game.Player(game.Winner); ok {
		view.WinnerName = winner.Name
	}

	player, seated := game.Player(playerID)
	if seated {
		view.PlayerName = player.Name
		view.Board = renderBoard(game, player)
	}

	switch {
	case game.IsFinished():
		view.Status = StatusLost
		if game.Winner == playerID {
			view.Status = StatusWon
		}
		view.StatusText = view.WinnerName + " wins!"
	case len(game.Players) < entity.MaxPlayers:
		view.Status = StatusWaiting
		view.StatusText = "Waiting for opponent..."
	case game.CurrentPlayer == playerID:
		view.Status = StatusYourTurn
		view.StatusText = "Your turn!"
		view.CanCall = len(game.CalledNumbers) < entity.MaxNumber
	default:
		view.Status = StatusOpponentTurn
		view.StatusText = "Waiting for opponent..."
	}

	return view
}

func renderBoard(game *entity.Game, player *entity.PlayerState) [entity.BoardSize][entity.BoardSize]Cell {
	var cells [entity.BoardSize][entity.BoardSize]Cell

	for row := range entity.BoardSize {
		for col := range entity.BoardSize {
			number := player.Board[row][col]
			cell := Cell{
				Number: number,
				Label:  strconv.Itoa(number),
				Marked: player.Marked[row][col],
			}

			if entity.IsFreeSpace(row, col) {
				cell.Free = true
				cell.Label = freeLabel
			} else {
				cell.Markable = !cell.Marked && !game.IsFinished() && game.IsCalled(number)
			}

			cells[row][col] = cell
		}
	}

	return cells
}
