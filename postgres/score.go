package postgres

import (
	"context"
	"dsmovie/score"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScoreModel represents the database model for scores
type ScoreModel struct {
	MovieID int64   `gorm:"primaryKey;autoIncrement:false"`
	UserID  int64   `gorm:"primaryKey;autoIncrement:false"`
	Value   float64 `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ScoreModel) TableName() string {
	return "scores"
}

// ScoreRepository implements score.Repository interface
type ScoreRepository struct {
	db *gorm.DB
}

// NewScoreRepository creates a new score repository
func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

func (r *ScoreRepository) Find(ctx context.Context, movieID, userID int64) (score.Score, bool, error) {
	var model ScoreModel
	err := conn(ctx, r.db).
		Where("movie_id = ? AND user_id = ?", movieID, userID).
		Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return score.Score{}, false, nil
		}
		return score.Score{}, false, err
	}
	return toDomainScore(model), true, nil
}

// UpsertAndFlush writes s with INSERT ... ON CONFLICT so a resubmission
// replaces the value of the existing pair.
func (r *ScoreRepository) UpsertAndFlush(ctx context.Context, s score.Score) (score.Score, error) {
	model := ScoreModel{MovieID: s.MovieID, UserID: s.UserID, Value: s.Value}
	err := conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "movie_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&model).Error
	if err != nil {
		return score.Score{}, err
	}
	return toDomainScore(model), nil
}

func toDomainScore(model ScoreModel) score.Score {
	return score.Score{
		MovieID: model.MovieID,
		UserID:  model.UserID,
		Value:   model.Value,
	}
}
