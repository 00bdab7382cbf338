package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/bingo-backend/internal/bingo"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
	"github.com/rocketscienceinc/bingo-backend/internal/repository/storage"
)

const defaultRequestTimeout = 5 * time.Second

// GameUseCase is the surface consumed by the presentation layer.
type GameUseCase interface {
	GetOrCreatePlayer(ctx context.Context, sessionID string) (*entity.Player, error)

	CreateGame(ctx context.Context, playerID string) (*entity.Game, error)
	JoinGame(ctx context.Context, gameID, playerID string) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)

	CallNumber(ctx context.Context, gameID, playerID string) (*entity.Game, int, error)
	MarkCell(ctx context.Context, gameID, playerID string, row, col int) (*entity.Game, error)

	WatchGame(ctx context.Context, gameID string, onChange func(game *entity.Game, err error)) (storage.Subscription, error)
}

type playerService interface {
	GetOrCreatePlayer(ctx context.Context, sessionID string) (*entity.Player, error)
	AssignGame(ctx context.Context, playerID, gameID string) error
}

type gameService interface {
	CreateGame(ctx context.Context, creatorID string) (*entity.Game, error)
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	WatchGame(ctx context.Context, id string, onChange func(game *entity.Game, err error)) (storage.Subscription, error)
}

type gamePlayService interface {
	JoinGame(ctx context.Context, gameID, joinerID string) (*entity.Game, error)
	CallNumber(ctx context.Context, gameID, callerID string) (*entity.Game, int, error)
	MarkCell(ctx context.Context, gameID, playerID string, row, col int) (*entity.Game, error)
}

type gameUseCase struct {
	logger *slog.Logger

	playerService   playerService
	gameService     gameService
	gamePlayService gamePlayService

	requestTimeout time.Duration
}

func NewGameUseCase(
	logger *slog.Logger,
	playerService playerService,
	gameService gameService,
	gamePlayService gamePlayService,
	requestTimeout time.Duration,
) GameUseCase {
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	return &gameUseCase{
		logger:          logger.With("component", "game-usecase"),
		playerService:   playerService,
		gameService:     gameService,
		gamePlayService: gamePlayService,
		requestTimeout:  requestTimeout,
	}
}

func (that *gameUseCase) GetOrCreatePlayer(ctx context.Context, sessionID string) (*entity.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, that.requestTimeout)
	defer cancel()

	player, err := that.playerService.GetOrCreatePlayer(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("could not get or create player: %w", err)
	}

	return player, nil
}

func (that *gameUseCase) CreateGame(ctx context.Context, playerID string) (*entity.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, that.requestTimeout)
	defer cancel()

	game, err := that.gameService.CreateGame(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("could not create game: %w", err)
	}

	that.assignGame(ctx, playerID, game.ID)

	return game, nil
}

func (that *gameUseCase) JoinGame(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, that.requestTimeout)
	defer cancel()

	game, err := that.gamePlayService.JoinGame(ctx, bingo.NormalizeGameID(gameID), playerID)
	if err != nil {
		return nil, fmt.Errorf("could not join game: %w", err)
	}

	that.assignGame(ctx, playerID, game.ID)

	return game, nil
}

func (that *gameUseCase) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, that.requestTimeout)
	defer cancel()

	game, err := that.gameService.GetGameByID(ctx, bingo.NormalizeGameID(gameID))
	if err != nil {
		return nil, fmt.Errorf("could not get game: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) CallNumber(ctx context.Context, gameID, playerID string) (*entity.Game, int, error) {
	ctx, cancel := context.WithTimeout(ctx, that.requestTimeout)
	defer cancel()

	game, number, err := that.gamePlayService.CallNumber(ctx, bingo.NormalizeGameID(gameID), playerID)
	if err != nil {
		return nil, 0, fmt.Errorf("could not call number: %w", err)
	}

	return game, number, nil
}

func (that *gameUseCase) MarkCell(ctx context.Context, gameID, playerID string, row, col int) (*entity.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, that.requestTimeout)
	defer cancel()

	game, err := that.gamePlayService.MarkCell(ctx, bingo.NormalizeGameID(gameID), playerID, row, col)
	if err != nil {
		return nil, fmt.Errorf("could not mark cell: %w", err)
	}

	return game, nil
}

// WatchGame streams snapshots until the subscription is closed or ctx ends.
func (that *gameUseCase) WatchGame(ctx context.Context, gameID string, onChange func(game *entity.Game, err error)) (storage.Subscription, error) {
	sub, err := that.gameService.WatchGame(ctx, bingo.NormalizeGameID(gameID), onChange)
	if err != nil {
		return nil, fmt.Errorf("could not watch game: %w", err)
	}

	return sub, nil
}

// assignGame remembers the player's game. The game itself is already stored,
// so a failure here is only logged.
func (that *gameUseCase) assignGame(ctx context.Context, playerID, gameID string) {
	if err := that.playerService.AssignGame(ctx, playerID, gameID); err != nil {
		that.logger.Warn("failed to assign game to player", "playerID", playerID, "gameID", gameID, "error", err)
	}
}
