package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/bingo-backend/internal/config"
	"github.com/rocketscienceinc/bingo-backend/internal/repository"
	"github.com/rocketscienceinc/bingo-backend/internal/repository/storage"
	"github.com/rocketscienceinc/bingo-backend/internal/service"
	"github.com/rocketscienceinc/bingo-backend/internal/transport/rest"
	"github.com/rocketscienceinc/bingo-backend/internal/transport/websocket"
	"github.com/rocketscienceinc/bingo-backend/internal/usecase"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	store, err := newStore(ctx, logger, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = store.Close(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	playerRepo := repository.NewPlayerRepository(store, conf.Game.PlayersCollection)
	gameRepo := repository.NewGameRepository(store, conf.Game.Collection)

	playerService := service.NewPlayerService(logger, playerRepo)
	gameService := service.NewGameService(logger, gameRepo, nil, conf.Game.IDAttempts)
	gamePlayService := service.NewGamePlayService(logger, gameService, nil)

	gameUseCase := usecase.NewGameUseCase(logger, playerService, gameService, gamePlayService, conf.Game.RequestTimeout)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(ctx, logger, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameUseCase)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func newStore(ctx context.Context, logger *slog.Logger, conf *config.Config) (storage.DocumentStore, error) {
	if conf.Storage.Driver == config.StorageMemory {
		logger.Warn("using in-memory storage, games are lost on restart")
		return storage.NewMemoryStore(), nil
	}

	client, err := storage.NewRedisClient(ctx, storage.RedisOptions{
		Addr:     conf.Redis.GetRedisAddr(),
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return storage.NewRedisStore(logger, client, conf.Game.TxRetries), nil
}
