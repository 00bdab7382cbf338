package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/bingo"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
	"github.com/rocketscienceinc/bingo-backend/internal/repository"
	"github.com/rocketscienceinc/bingo-backend/internal/repository/storage"
)

const defaultIDAttempts = 5

type GameService interface {
	CreateGame(ctx context.Context, creatorID string) (*entity.Game, error)
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	UpdateGame(ctx context.Context, id string, fn repository.UpdateFunc) (*entity.Game, error)
	WatchGame(ctx context.Context, id string, onChange func(game *entity.Game, err error)) (storage.Subscription, error)
}

type gameRepo interface {
	Create(ctx context.Context, game *entity.Game) (*entity.Game, error)
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, id string, fn repository.UpdateFunc) (*entity.Game, error)
	Subscribe(ctx context.Context, id string, onChange func(game *entity.Game, err error)) (storage.Subscription, error)
}

type gameService struct {
	logger     *slog.Logger
	gameRepo   gameRepo
	src        bingo.Source
	idAttempts int
}

func NewGameService(logger *slog.Logger, gameRepo gameRepo, src bingo.Source, idAttempts int) GameService {
	if src == nil {
		src = bingo.DefaultSource()
	}

	if idAttempts <= 0 {
		idAttempts = defaultIDAttempts
	}

	return &gameService{
		logger:     logger.With("component", "game-service"),
		gameRepo:   gameRepo,
		src:        src,
		idAttempts: idAttempts,
	}
}

// CreateGame deals the creator's card and stores a new game under a random id.
// A colliding id is never overwritten; another id is drawn instead.
func (that *gameService) CreateGame(ctx context.Context, creatorID string) (*entity.Game, error) {
	log := that.logger.With("method", "CreateGame", "playerID", creatorID)

	if err := checkPlayerID(creatorID); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= that.idAttempts; attempt++ {
		gameID := bingo.GenerateGameID(that.src)
		game := entity.NewGame(gameID, creatorID, bingo.NewPlayerState(entity.CreatorSeat, that.src))

		created, err := that.gameRepo.Create(ctx, game)
		if errors.Is(err, apperror.ErrGameAlreadyExists) {
			log.Warn("game id already taken", "gameID", gameID, "attempt", attempt)
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("failed to create game from storage: %w", err)
		}

		log.Info("game created", "gameID", created.ID)

		return created, nil
	}

	return nil, fmt.Errorf("%w: no free game id after %d attempts", apperror.ErrGameAlreadyExists, that.idAttempts)
}

func checkPlayerID(id string) error {
	if !entity.ValidPlayerID(id) {
		return fmt.Errorf("%w: invalid player id %q", apperror.ErrInvalidState, id)
	}

	return nil
}

func (that *gameService) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}

	return game, nil
}

func (that *gameService) UpdateGame(ctx context.Context, id string, fn repository.UpdateFunc) (*entity.Game, error) {
	game, err := that.gameRepo.Update(ctx, id, fn)
	if err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

func (that *gameService) WatchGame(ctx context.Context, id string, onChange func(game *entity.Game, err error)) (storage.Subscription, error) {
	sub, err := that.gameRepo.Subscribe(ctx, id, onChange)
	if err != nil {
		return nil, fmt.Errorf("failed to watch game: %w", err)
	}

	return sub, nil
}
