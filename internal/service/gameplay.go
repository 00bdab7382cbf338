package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/bingo"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
)

type GamePlayService interface {
	JoinGame(ctx context.Context, gameID, joinerID string) (*entity.Game, error)
	CallNumber(ctx context.Context, gameID, callerID string) (*entity.Game, int, error)
	MarkCell(ctx context.Context, gameID, playerID string, row, col int) (*entity.Game, error)
}

type gamePlayService struct {
	logger *slog.Logger

	gameService GameService
	src         bingo.Source
}

func NewGamePlayService(logger *slog.Logger, gameService GameService, src bingo.Source) GamePlayService {
	if src == nil {
		src = bingo.DefaultSource()
	}

	return &gamePlayService{
		logger:      logger.With("component", "gameplay-service"),
		gameService: gameService,
		src:         src,
	}
}

// JoinGame seats joinerID as the second player. Rejoining is a no-op.
func (that *gamePlayService) JoinGame(ctx context.Context, gameID, joinerID string) (*entity.Game, error) {
	log := that.logger.With("method", "JoinGame", "gameID", gameID, "playerID", joinerID)

	if err := checkPlayerID(joinerID); err != nil {
		return nil, err
	}

	joined := false
	game, err := that.gameService.UpdateGame(ctx, gameID, func(game *entity.Game) (*entity.GameUpdate, error) {
		joined = false

		if game.HasPlayer(joinerID) {
			return nil, nil
		}

		if game.IsFull() {
			return nil, fmt.Errorf("%w: game id %s", apperror.ErrGameFull, gameID)
		}

		joined = true
		player := bingo.NewPlayerState(entity.JoinerSeat, that.src)

		return (&entity.GameUpdate{}).AddPlayer(joinerID, player), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to join game: %w", err)
	}

	if joined {
		log.Info("player joined game")
	} else {
		log.Debug("player rejoined game")
	}

	return game, nil
}

// CallNumber draws a number for the caller and hands the turn to the opponent
// in one atomic write.
func (that *gamePlayService) CallNumber(ctx context.Context, gameID, callerID string) (*entity.Game, int, error) {
	log := that.logger.With("method", "CallNumber", "gameID", gameID, "playerID", callerID)

	var number int
	game, err := that.gameService.UpdateGame(ctx, gameID, func(game *entity.Game) (*entity.GameUpdate, error) {
		update, err := bingo.CallNumber(game, callerID, that.src)
		if err != nil {
			return nil, err
		}

		number = update.CalledNumber

		return update, nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to call number: %w", err)
	}

	log.Info("number called", "number", number, "next", game.CurrentPlayer)

	return game, number, nil
}

// MarkCell daubs a cell and, when it completes a line, declares the winner in
// the same conditional write.
func (that *gamePlayService) MarkCell(ctx context.Context, gameID, playerID string, row, col int) (*entity.Game, error) {
	log := that.logger.With("method", "MarkCell", "gameID", gameID, "playerID", playerID)

	if err := checkPlayerID(playerID); err != nil {
		return nil, err
	}

	game, err := that.gameService.UpdateGame(ctx, gameID, func(game *entity.Game) (*entity.GameUpdate, error) {
		return bingo.MarkCell(game, playerID, row, col)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to mark cell: %w", err)
	}

	log.Debug("cell marked", "row", row, "col", col)

	if game.Winner == playerID {
		log.Info("bingo", "winner", playerID)
	}

	return game, nil
}
