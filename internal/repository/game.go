package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
	"github.com/rocketscienceinc/bingo-backend/internal/repository/storage"
)

const DefaultGameCollection = "bingoGames"

// UpdateFunc decides the change to apply to the freshly read game. Returning a
// nil or empty update writes nothing.
type UpdateFunc func(game *entity.Game) (*entity.GameUpdate, error)

type GameRepository interface {
	Create(ctx context.Context, game *entity.Game) (*entity.Game, error)
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, id string, fn UpdateFunc) (*entity.Game, error)
	Subscribe(ctx context.Context, id string, onChange func(game *entity.Game, err error)) (storage.Subscription, error)
}

type dbGame struct {
	store      storage.DocumentStore
	collection string
}

func NewGameRepository(store storage.DocumentStore, collection string) GameRepository {
	if collection == "" {
		collection = DefaultGameCollection
	}

	return &dbGame{
		store:      store,
		collection: collection,
	}
}

// Create stores a new game and returns it as persisted, with the server
// assigned creation time.
func (that *dbGame) Create(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	err := that.store.Create(ctx, that.collection, game.ID, newGameFields(game))
	if errors.Is(err, storage.ErrDocumentExists) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameAlreadyExists, game.ID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return that.GetByID(ctx, game.ID)
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	doc, err := that.store.Get(ctx, that.collection, id)
	if errors.Is(err, storage.ErrDocumentNotFound) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrNotFound, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return decodeGame(id, doc)
}

func (that *dbGame) Update(ctx context.Context, id string, fn UpdateFunc) (*entity.Game, error) {
	var result *entity.Game

	err := that.store.RunTransaction(ctx, that.collection, id, func(doc storage.Document) ([]storage.Mutation, error) {
		game, err := decodeGame(id, doc)
		if err != nil {
			return nil, err
		}

		update, err := fn(game.Clone())
		if err != nil {
			return nil, err
		}

		game.Apply(update)
		result = game

		return updateMutations(update), nil
	})

	if errors.Is(err, storage.ErrDocumentNotFound) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrNotFound, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return result, nil
}

// Subscribe decodes every snapshot of the game. A nil game with a nil error
// means the game does not exist.
func (that *dbGame) Subscribe(ctx context.Context, id string, onChange func(game *entity.Game, err error)) (storage.Subscription, error) {
	sub, err := that.store.Subscribe(ctx, that.collection, id, func(doc storage.Document, err error) {
		if err != nil {
			onChange(nil, err)
			return
		}

		if doc == nil {
			onChange(nil, nil)
			return
		}

		onChange(decodeGame(id, doc))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to game: %w", err)
	}

	return sub, nil
}
