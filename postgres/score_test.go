package postgres_test

import (
	"context"
	"dsmovie/movie"
	"dsmovie/postgres"
	"dsmovie/score"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func mariaID(t testing.TB, db *gorm.DB) int64 {
	t.Helper()
	var id int64
	require.NoError(t, db.Raw("SELECT id FROM users WHERE username = ?", "maria@gmail.com").Scan(&id).Error)
	require.NotZero(t, id)
	return id
}

func TestScoreRepository(t *testing.T) {
	db := CreateConnection(t, "scores", "scores", "123456")
	MigrateTestDatabase(t, db, "../migrations")
	movies := postgres.NewMovieRepository(db)
	r := postgres.NewScoreRepository(db)
	ctx := context.Background()

	m, err := movies.Save(ctx, movie.Movie{Title: "The Witcher"})
	require.NoError(t, err)
	userID := mariaID(t, db)

	t.Run("should report no prior score", func(t *testing.T) {
		_, ok, err := r.Find(ctx, m.ID, userID)

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("should keep one row per movie and user", func(t *testing.T) {
		_, err := r.UpsertAndFlush(ctx, score.Score{MovieID: m.ID, UserID: userID, Value: 4})
		require.NoError(t, err)
		_, err = r.UpsertAndFlush(ctx, score.Score{MovieID: m.ID, UserID: userID, Value: 2})
		require.NoError(t, err)

		found, ok, err := r.Find(ctx, m.ID, userID)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 2.0, found.Value)

		var count int64
		require.NoError(t, db.Model(&postgres.ScoreModel{}).Where("movie_id = ?", m.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("should reject a score for an unknown movie", func(t *testing.T) {
		_, err := r.UpsertAndFlush(ctx, score.Score{MovieID: 999999, UserID: userID, Value: 2})

		assert.Error(t, err)
	})
}
