package repository

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
	"github.com/rocketscienceinc/bingo-backend/internal/repository/storage"
)

const (
	fieldPlayers       = "players"
	fieldCalledNumbers = "calledNumbers"
	fieldCurrentPlayer = "currentPlayer"
	fieldWinner        = "winner"
	fieldCreatedAt     = "createdAt"
	fieldMarked        = "marked"
)

// gameDocument is the stored shape of a game. Grids are slices so that a
// document with the wrong dimensions is rejected instead of silently padded.
type gameDocument struct {
	Players       map[string]playerDocument `json:"players"`
	CalledNumbers []int                     `json:"calledNumbers"`
	CurrentPlayer *string                   `json:"currentPlayer"`
	Winner        *string                   `json:"winner"`
	CreatedAt     time.Time                 `json:"createdAt"`
}

type playerDocument struct {
	Name   string   `json:"name"`
	Seat   int      `json:"seat"`
	Board  [][]int  `json:"board"`
	Marked [][]bool `json:"marked"`
}

func decodeGame(id string, doc storage.Document) (*entity.Game, error) {
	var stored gameDocument
	if err := doc.Decode(&stored); err != nil {
		return nil, fmt.Errorf("%w: game %s: %w", apperror.ErrDeserialization, id, err)
	}

	game, err := stored.toEntity(id)
	if err != nil {
		return nil, fmt.Errorf("%w: game %s: %w", apperror.ErrDeserialization, id, err)
	}

	return game, nil
}

func (that gameDocument) toEntity(id string) (*entity.Game, error) {
	if that.Players == nil {
		return nil, fmt.Errorf("missing %s", fieldPlayers)
	}

	if len(that.Players) > entity.MaxPlayers {
		return nil, fmt.Errorf("%d players stored, at most %d allowed", len(that.Players), entity.MaxPlayers)
	}

	if that.CreatedAt.IsZero() {
		return nil, fmt.Errorf("missing %s", fieldCreatedAt)
	}

	game := &entity.Game{
		ID:            id,
		Players:       make(map[string]*entity.PlayerState, len(that.Players)),
		CalledNumbers: make([]int, 0, len(that.CalledNumbers)),
		CreatedAt:     that.CreatedAt,
	}

	for playerID, stored := range that.Players {
		player, err := stored.toEntity()
		if err != nil {
			return nil, fmt.Errorf("player %s: %w", playerID, err)
		}
		game.Players[playerID] = player
	}

	seen := make(map[int]bool, len(that.CalledNumbers))
	for _, number := range that.CalledNumbers {
		if number < 1 || number > entity.MaxNumber {
			return nil, fmt.Errorf("called number %d out of range", number)
		}

		if seen[number] {
			return nil, fmt.Errorf("called number %d repeated", number)
		}

		seen[number] = true
		game.CalledNumbers = append(game.CalledNumbers, number)
	}

	if that.CurrentPlayer != nil && *that.CurrentPlayer != "" {
		if !game.HasPlayer(*that.CurrentPlayer) {
			return nil, fmt.Errorf("current player %s is not in the game", *that.CurrentPlayer)
		}
		game.CurrentPlayer = *that.CurrentPlayer
	}

	if that.Winner != nil && *that.Winner != "" {
		if !game.HasPlayer(*that.Winner) {
			return nil, fmt.Errorf("winner %s is not in the game", *that.Winner)
		}
		game.Winner = *that.Winner
	}

	return game, nil
}

func (that playerDocument) toEntity() (*entity.PlayerState, error) {
	if len(that.Board) != entity.BoardSize || len(that.Marked) != entity.BoardSize {
		return nil, fmt.Errorf("grid must have %d rows", entity.BoardSize)
	}

	player := &entity.PlayerState{Name: that.Name, Seat: that.Seat}

	for row := range entity.BoardSize {
		if len(that.Board[row]) != entity.BoardSize || len(that.Marked[row]) != entity.BoardSize {
			return nil, fmt.Errorf("row %d must have %d cells", row, entity.BoardSize)
		}

		copy(player.Board[row][:], that.Board[row])
		copy(player.Marked[row][:], that.Marked[row])
	}

	return player, nil
}

func newPlayerDocument(player *entity.PlayerState) playerDocument {
	return playerDocument{
		Name:   player.Name,
		Seat:   player.Seat,
		Board:  boardRows(player.Board),
		Marked: markedRows(player.Marked),
	}
}

func boardRows(board entity.Board) [][]int {
	rows := make([][]int, entity.BoardSize)
	for i := range board {
		rows[i] = board[i][:]
	}

	return rows
}

func markedRows(marked entity.Marked) [][]bool {
	rows := make([][]bool, entity.BoardSize)
	for i := range marked {
		rows[i] = marked[i][:]
	}

	return rows
}

// newGameFields is the initial document written on create.
func newGameFields(game *entity.Game) map[string]any {
	players := make(map[string]playerDocument, len(game.Players))
	for id, player := range game.Players {
		players[id] = newPlayerDocument(player)
	}

	var winner *string
	if game.Winner != "" {
		winner = &game.Winner
	}

	return map[string]any{
		fieldPlayers:       players,
		fieldCalledNumbers: append([]int{}, game.CalledNumbers...),
		fieldCurrentPlayer: game.CurrentPlayer,
		fieldWinner:        winner,
		fieldCreatedAt:     storage.ServerTimestamp,
	}
}

// updateMutations maps a game update onto field-scoped store writes.
func updateMutations(update *entity.GameUpdate) []storage.Mutation {
	if update.IsEmpty() {
		return nil
	}

	var mutations []storage.Mutation

	for id, player := range update.NewPlayers {
		mutations = append(mutations, storage.Set(fieldPlayers+"."+id, newPlayerDocument(player)))
	}

	for id, marked := range update.MarkedGrids {
		mutations = append(mutations, storage.Set(fieldPlayers+"."+id+"."+fieldMarked, markedRows(marked)))
	}

	if update.CalledNumber != 0 {
		mutations = append(mutations, storage.ArrayUnion(fieldCalledNumbers, update.CalledNumber))
	}

	if update.CurrentPlayer != "" {
		mutations = append(mutations, storage.Set(fieldCurrentPlayer, update.CurrentPlayer))
	}

	if update.Winner != "" {
		mutations = append(mutations, storage.Set(fieldWinner, update.Winner))
	}

	return mutations
}
