package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
)

// PlayerService is the identity provider: it hands out stable anonymous
// session ids and remembers which game each one is in.
type PlayerService interface {
	GetOrCreatePlayer(ctx context.Context, sessionID string) (*entity.Player, error)
	AssignGame(ctx context.Context, playerID, gameID string) error
}

type playerRepo interface {
	Create(ctx context.Context, player *entity.Player) (*entity.Player, error)
	GetByID(ctx context.Context, id string) (*entity.Player, error)
	SetGame(ctx context.Context, playerID, gameID string) error
}

type playerService struct {
	logger     *slog.Logger
	playerRepo playerRepo
}

func NewPlayerService(logger *slog.Logger, playerRepo playerRepo) PlayerService {
	return &playerService{
		logger:     logger.With("component", "player-service"),
		playerRepo: playerRepo,
	}
}

// GetOrCreatePlayer returns the player behind sessionID. An empty or malformed
// id gets a fresh one; a well-formed unknown id is registered as is.
func (that *playerService) GetOrCreatePlayer(ctx context.Context, sessionID string) (*entity.Player, error) {
	log := that.logger.With("method", "GetOrCreatePlayer")

	if _, err := uuid.Parse(sessionID); err != nil {
		if sessionID != "" {
			log.Debug("discarding malformed session id", "sessionID", sessionID)
		}

		return that.createPlayer(ctx, uuid.NewString())
	}

	player, err := that.playerRepo.GetByID(ctx, sessionID)
	if errors.Is(err, apperror.ErrPlayerNotFound) {
		return that.createPlayer(ctx, sessionID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

func (that *playerService) AssignGame(ctx context.Context, playerID, gameID string) error {
	if err := that.playerRepo.SetGame(ctx, playerID, gameID); err != nil {
		return fmt.Errorf("failed to assign game to player: %w", err)
	}

	return nil
}

func (that *playerService) createPlayer(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.Create(ctx, &entity.Player{ID: id})
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	that.logger.Info("player registered", "playerID", player.ID)

	return player, nil
}
