package repository

import (
	"context"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
	"github.com/rocketscienceinc/tictactoe-console/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playedGame(t *testing.T) *entity.Game {
	t.Helper()

	game := entity.NewGame("123", true)
	require.NoError(t, game.ApplyMove(entity.Move{Row: 1, Col: 1}, entity.MarkX))
	require.NoError(t, game.ApplyMove(entity.Move{Row: 0, Col: 0}, entity.MarkO))

	return game
}

func TestGameRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Redis, time.Hour)

	// Given: a game with two moves played
	game := playedGame(t)

	// When: CreateOrUpdate is called
	err := gameRepo.CreateOrUpdate(ctx, game)

	// Then: no error is returned and the key expires
	require.NoError(t, err)

	ttl, err := st.Redis.TTL(ctx, gameKeyPrefix+game.ID).Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Redis, 0)

		// Given: a stored game
		game := playedGame(t)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: GetByID is called with its ID
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)

		// Then: the board, turn and history round-trip
		require.NoError(t, err)
		require.Equal(t, game, retrievedGame)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Redis, 0)

		// When: GetByID is called with an unknown ID
		retrievedGame, err := gameRepo.GetByID(ctx, "9999999")

		// Then: ErrGameNotFound is returned
		require.ErrorIs(t, err, ErrGameNotFound)
		assert.Nil(t, retrievedGame)
	})
}

func TestGameRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Redis, 0)

		// Given: a stored game
		game := playedGame(t)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: DeleteByID is called
		err := gameRepo.DeleteByID(ctx, game.ID)

		// Then: the game is gone
		require.NoError(t, err)

		_, err = gameRepo.GetByID(ctx, game.ID)
		require.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Redis, 0)

		// When: DeleteByID is called with an unknown ID
		err := gameRepo.DeleteByID(ctx, "9999999")

		// Then: ErrGameNotFound is returned
		require.ErrorIs(t, err, ErrGameNotFound)
	})
}

func TestMemoryGameRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores a copy of the game", func(t *testing.T) {
		// Given: a stored game
		gameRepo := NewMemoryGameRepository()
		game := playedGame(t)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: the caller keeps playing on its own copy
		require.NoError(t, game.ApplyMove(entity.Move{Row: 2, Col: 2}, entity.MarkX))

		// Then: the stored game still has two moves
		stored, err := gameRepo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Len(t, stored.Moves, 2)
		assert.Equal(t, entity.MarkEmpty, stored.Board.At(entity.Move{Row: 2, Col: 2}))
	})

	t.Run("Round-trips a game", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()
		game := playedGame(t)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		stored, err := gameRepo.GetByID(ctx, game.ID)

		require.NoError(t, err)
		assert.Equal(t, game, stored)
	})

	t.Run("Not found", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()

		_, err := gameRepo.GetByID(ctx, "missing")
		require.ErrorIs(t, err, ErrGameNotFound)

		err = gameRepo.DeleteByID(ctx, "missing")
		require.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("Delete removes the game", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()
		game := playedGame(t)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		require.NoError(t, gameRepo.DeleteByID(ctx, game.ID))

		_, err := gameRepo.GetByID(ctx, game.ID)
		assert.ErrorIs(t, err, ErrGameNotFound)
	})
}
