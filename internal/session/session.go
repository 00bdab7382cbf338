package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
	"github.com/rocketscienceinc/bingo-backend/internal/repository/storage"
)

type gameUseCase interface {
	CreateGame(ctx context.Context, playerID string) (*entity.Game, error)
	JoinGame(ctx context.Context, gameID, playerID string) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	CallNumber(ctx context.Context, gameID, playerID string) (*entity.Game, int, error)
	MarkCell(ctx context.Context, gameID, playerID string, row, col int) (*entity.Game, error)
	WatchGame(ctx context.Context, gameID string, onChange func(game *entity.Game, err error)) (storage.Subscription, error)
}

// ViewFunc receives every re-rendered snapshot of the session's game.
type ViewFunc func(view View, err error)

// Session binds one player to at most one game at a time and turns store
// snapshots into views for that player.
type Session struct {
	logger  *slog.Logger
	useCase gameUseCase

	playerID string

	mu     sync.Mutex
	gameID string
	sub    storage.Subscription
}

func New(logger *slog.Logger, useCase gameUseCase, playerID string) *Session {
	return &Session{
		logger:   logger.With("component", "session", "playerID", playerID),
		useCase:  useCase,
		playerID: playerID,
	}
}

func (that *Session) PlayerID() string {
	return that.playerID
}

func (that *Session) GameID() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.gameID
}

func (that *Session) CreateGame(ctx context.Context) (View, error) {
	game, err := that.useCase.CreateGame(ctx, that.playerID)
	if err != nil {
		return View{}, fmt.Errorf("failed to create game: %w", err)
	}

	that.switchGame(game.ID)

	return NewView(game, that.playerID), nil
}

func (that *Session) JoinGame(ctx context.Context, gameID string) (View, error) {
	game, err := that.useCase.JoinGame(ctx, gameID, that.playerID)
	if err != nil {
		return View{}, fmt.Errorf("failed to join game: %w", err)
	}

	that.switchGame(game.ID)

	return NewView(game, that.playerID), nil
}

// Resume reattaches the session to a game the player already sits in.
func (that *Session) Resume(ctx context.Context, gameID string) (View, error) {
	game, err := that.useCase.GetGame(ctx, gameID)
	if err != nil {
		return View{}, fmt.Errorf("failed to resume game: %w", err)
	}

	if !game.HasPlayer(that.playerID) {
		return View{}, fmt.Errorf("%w: player is not in game %s", apperror.ErrInvalidState, game.ID)
	}

	that.switchGame(game.ID)

	return NewView(game, that.playerID), nil
}

func (that *Session) Refresh(ctx context.Context) (View, error) {
	gameID, err := that.currentGame()
	if err != nil {
		return View{}, err
	}

	game, err := that.useCase.GetGame(ctx, gameID)
	if err != nil {
		return View{}, fmt.Errorf("failed to refresh game: %w", err)
	}

	return NewView(game, that.playerID), nil
}

func (that *Session) CallNumber(ctx context.Context) (View, int, error) {
	gameID, err := that.currentGame()
	if err != nil {
		return View{}, 0, err
	}

	game, number, err := that.useCase.CallNumber(ctx, gameID, that.playerID)
	if err != nil {
		return View{}, 0, fmt.Errorf("failed to call number: %w", err)
	}

	return NewView(game, that.playerID), number, nil
}

func (that *Session) MarkCell(ctx context.Context, row, col int) (View, error) {
	gameID, err := that.currentGame()
	if err != nil {
		return View{}, err
	}

	game, err := that.useCase.MarkCell(ctx, gameID, that.playerID, row, col)
	if err != nil {
		return View{}, fmt.Errorf("failed to mark cell: %w", err)
	}

	return NewView(game, that.playerID), nil
}

// Watch subscribes to the current game, replacing any earlier subscription.
// The first view is delivered right away; a deleted game yields ErrNotFound.
func (that *Session) Watch(ctx context.Context, onView ViewFunc) error {
	gameID, err := that.currentGame()
	if err != nil {
		return err
	}

	sub, err := that.useCase.WatchGame(ctx, gameID, func(game *entity.Game, err error) {
		switch {
		case err != nil:
			onView(View{}, err)
		case game == nil:
			onView(View{}, fmt.Errorf("%w: %s", apperror.ErrNotFound, gameID))
		default:
			onView(NewView(game, that.playerID), nil)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to watch game: %w", err)
	}

	that.mu.Lock()
	previous := that.sub
	that.sub = sub
	that.mu.Unlock()

	that.closeSubscription(previous)

	return nil
}

func (that *Session) Close() error {
	that.mu.Lock()
	sub := that.sub
	that.sub = nil
	that.mu.Unlock()

	if sub == nil {
		return nil
	}

	if err := sub.Close(); err != nil {
		return fmt.Errorf("failed to close subscription: %w", err)
	}

	return nil
}

func (that *Session) currentGame() (string, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.gameID == "" {
		return "", fmt.Errorf("%w: no active game", apperror.ErrInvalidState)
	}

	return that.gameID, nil
}

// switchGame drops the subscription of the previous game, if any.
func (that *Session) switchGame(gameID string) {
	that.mu.Lock()
	var stale storage.Subscription
	if that.gameID != gameID {
		stale = that.sub
		that.sub = nil
	}
	that.gameID = gameID
	that.mu.Unlock()

	that.closeSubscription(stale)
}

func (that *Session) closeSubscription(sub storage.Subscription) {
	if sub == nil {
		return
	}

	if err := sub.Close(); err != nil {
		that.logger.Warn("failed to close subscription", "error", err)
	}
}
