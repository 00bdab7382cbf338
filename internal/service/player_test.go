package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
	mockedService "github.com/rocketscienceinc/bingo-backend/mocks/service"
)

func echoPlayer(_ context.Context, player *entity.Player) (*entity.Player, error) {
	return player, nil
}

func TestPlayerService_GetOrCreatePlayer(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a new player when the session id is empty", func(t *testing.T) {
		// Given: an empty player repository
		mockPlayerRepo := mockedService.NewMockplayerRepo(t)
		playerService := NewPlayerService(newTestLogger(), mockPlayerRepo)

		mockPlayerRepo.EXPECT().
			Create(mock.Anything, mock.AnythingOfType("*entity.Player")).
			RunAndReturn(echoPlayer).
			Once()

		// When: a player is requested without an id
		player, err := playerService.GetOrCreatePlayer(ctx, "")

		// Then: a fresh uuid is issued
		require.NoError(t, err)
		_, err = uuid.Parse(player.ID)
		assert.NoError(t, err)
	})

	t.Run("Replaces a malformed session id", func(t *testing.T) {
		mockPlayerRepo := mockedService.NewMockplayerRepo(t)
		playerService := NewPlayerService(newTestLogger(), mockPlayerRepo)

		mockPlayerRepo.EXPECT().
			Create(mock.Anything, mock.AnythingOfType("*entity.Player")).
			RunAndReturn(echoPlayer).
			Once()

		player, err := playerService.GetOrCreatePlayer(ctx, "not-a-uuid")

		require.NoError(t, err)
		assert.NotEqual(t, "not-a-uuid", player.ID)
	})

	t.Run("Returns the existing player", func(t *testing.T) {
		mockPlayerRepo := mockedService.NewMockplayerRepo(t)
		playerService := NewPlayerService(newTestLogger(), mockPlayerRepo)

		id := uuid.NewString()
		existing := &entity.Player{ID: id, GameID: "ABCDEF"}
		mockPlayerRepo.EXPECT().
			GetByID(mock.Anything, id).
			Return(existing, nil).
			Once()

		player, err := playerService.GetOrCreatePlayer(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, existing, player)
	})

	t.Run("Registers an unknown but well-formed id", func(t *testing.T) {
		mockPlayerRepo := mockedService.NewMockplayerRepo(t)
		playerService := NewPlayerService(newTestLogger(), mockPlayerRepo)

		id := uuid.NewString()
		mockPlayerRepo.EXPECT().
			GetByID(mock.Anything, id).
			Return(nil, apperror.ErrPlayerNotFound).
			Once()
		mockPlayerRepo.EXPECT().
			Create(mock.Anything, &entity.Player{ID: id}).
			RunAndReturn(echoPlayer).
			Once()

		player, err := playerService.GetOrCreatePlayer(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, id, player.ID)
	})

	t.Run("Returns error if the repository fails", func(t *testing.T) {
		mockPlayerRepo := mockedService.NewMockplayerRepo(t)
		playerService := NewPlayerService(newTestLogger(), mockPlayerRepo)

		id := uuid.NewString()
		mockPlayerRepo.EXPECT().
			GetByID(mock.Anything, id).
			Return(nil, errRedisDown).
			Once()

		player, err := playerService.GetOrCreatePlayer(ctx, id)

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, player)
	})
}

func TestPlayerService_AssignGame(t *testing.T) {
	t.Run("Stores the game id", func(t *testing.T) {
		mockPlayerRepo := mockedService.NewMockplayerRepo(t)
		playerService := NewPlayerService(newTestLogger(), mockPlayerRepo)

		mockPlayerRepo.EXPECT().
			SetGame(mock.Anything, "p1", "ABCDEF").
			Return(nil).
			Once()

		assert.NoError(t, playerService.AssignGame(context.Background(), "p1", "ABCDEF"))
	})
}
