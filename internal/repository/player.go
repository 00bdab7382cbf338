package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
	"github.com/rocketscienceinc/bingo-backend/internal/repository/storage"
)

const (
	DefaultPlayerCollection = "players"

	fieldPlayerGameID = "gameId"
)

type PlayerRepository interface {
	Create(ctx context.Context, player *entity.Player) (*entity.Player, error)
	GetByID(ctx context.Context, id string) (*entity.Player, error)
	SetGame(ctx context.Context, playerID, gameID string) error
}

type playerRecord struct {
	ID        string    `json:"id"`
	GameID    string    `json:"gameId"`
	CreatedAt time.Time `json:"createdAt"`
}

type dbPlayer struct {
	store      storage.DocumentStore
	collection string
}

func NewPlayerRepository(store storage.DocumentStore, collection string) PlayerRepository {
	if collection == "" {
		collection = DefaultPlayerCollection
	}

	return &dbPlayer{
		store:      store,
		collection: collection,
	}
}

func (that *dbPlayer) Create(ctx context.Context, player *entity.Player) (*entity.Player, error) {
	err := that.store.Create(ctx, that.collection, player.ID, map[string]any{
		"id":              player.ID,
		fieldPlayerGameID: player.GameID,
		fieldCreatedAt:    storage.ServerTimestamp,
	})
	if err != nil && !errors.Is(err, storage.ErrDocumentExists) {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return that.GetByID(ctx, player.ID)
}

func (that *dbPlayer) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	doc, err := that.store.Get(ctx, that.collection, id)
	if errors.Is(err, storage.ErrDocumentNotFound) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrPlayerNotFound, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by ID: %w", err)
	}

	var record playerRecord
	if err = doc.Decode(&record); err != nil {
		return nil, fmt.Errorf("%w: player %s: %w", apperror.ErrDeserialization, id, err)
	}

	return &entity.Player{
		ID:        record.ID,
		GameID:    record.GameID,
		CreatedAt: record.CreatedAt,
	}, nil
}

func (that *dbPlayer) SetGame(ctx context.Context, playerID, gameID string) error {
	err := that.store.UpdateFields(ctx, that.collection, playerID, storage.Set(fieldPlayerGameID, gameID))
	if errors.Is(err, storage.ErrDocumentNotFound) {
		return fmt.Errorf("%w: %s", apperror.ErrPlayerNotFound, playerID)
	}

	if err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}
