package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
)

func TestPlayerRepository_Create(t *testing.T) {
	t.Run("Create registers the player", func(t *testing.T) {
		ctx := context.Background()
		playerRepo := NewPlayerRepository(newTestStore(t), "")

		// When: a player is created
		player, err := playerRepo.Create(ctx, &entity.Player{ID: "123"})

		// Then: it is stored with a creation time and no game
		require.NoError(t, err)
		assert.Equal(t, "123", player.ID)
		assert.Empty(t, player.GameID)
		assert.True(t, testNow.Equal(player.CreatedAt))
	})

	t.Run("Create keeps an existing player", func(t *testing.T) {
		ctx := context.Background()
		playerRepo := NewPlayerRepository(newTestStore(t), "")

		// Given: a player already in a game
		_, err := playerRepo.Create(ctx, &entity.Player{ID: "123"})
		require.NoError(t, err)
		require.NoError(t, playerRepo.SetGame(ctx, "123", "ABCDEF"))

		// When: the player is created again
		player, err := playerRepo.Create(ctx, &entity.Player{ID: "123"})

		// Then: the stored record wins
		require.NoError(t, err)
		assert.Equal(t, "ABCDEF", player.GameID)
	})
}

func TestPlayerRepository_GetByID(t *testing.T) {
	t.Run("GetByID_NotFound", func(t *testing.T) {
		playerRepo := NewPlayerRepository(newTestStore(t), "")

		_, err := playerRepo.GetByID(context.Background(), "9999999")

		assert.ErrorIs(t, err, apperror.ErrPlayerNotFound)
	})

	t.Run("GetByID_Malformed", func(t *testing.T) {
		store := newTestStore(t)
		store.Put(DefaultPlayerCollection, "123", []byte(`{"id":"123","unexpected":true}`))
		playerRepo := NewPlayerRepository(store, "")

		_, err := playerRepo.GetByID(context.Background(), "123")

		assert.ErrorIs(t, err, apperror.ErrDeserialization)
	})
}

func TestPlayerRepository_SetGame(t *testing.T) {
	t.Run("SetGame on an unknown player fails", func(t *testing.T) {
		playerRepo := NewPlayerRepository(newTestStore(t), "")

		err := playerRepo.SetGame(context.Background(), "nobody", "ABCDEF")

		assert.ErrorIs(t, err, apperror.ErrPlayerNotFound)
	})
}
