package postgres

import (
	"context"
	"dsmovie/movie"
	"dsmovie/page"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MovieModel represents the database model for movies
type MovieModel struct {
	ID         int64   `gorm:"primaryKey"`
	Title      string  `gorm:"not null"`
	ScoreSum   float64 `gorm:"column:score_sum;not null;default:0"`
	ScoreCount int     `gorm:"column:score_count;not null;default:0"`
	Image      string  `gorm:"not null;default:''"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// MovieRepository implements movie.Repository and score.MovieRepository.
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) FindByID(ctx context.Context, id int64) (movie.Movie, bool, error) {
	var model MovieModel
	err := conn(ctx, r.db).Where("id = ?", id).Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return movie.Movie{}, false, nil
		}
		return movie.Movie{}, false, err
	}
	return toDomainMovie(model), true, nil
}

// FindByIDForUpdate reads the movie with SELECT ... FOR UPDATE so concurrent
// score submissions for the same movie are serialized.
func (r *MovieRepository) FindByIDForUpdate(ctx context.Context, id int64) (movie.Movie, bool, error) {
	var model MovieModel
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return movie.Movie{}, false, nil
		}
		return movie.Movie{}, false, err
	}
	return toDomainMovie(model), true, nil
}

// SearchByTitle does a case-insensitive substring match. An empty title
// matches every movie.
func (r *MovieRepository) SearchByTitle(ctx context.Context, title string, p page.Request) (page.Page[movie.Movie], error) {
	byTitle := func(db *gorm.DB) *gorm.DB {
		db = db.Model(&MovieModel{})
		if title == "" {
			return db
		}
		return db.Where(`LOWER(title) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(title))+"%")
	}

	var total int64
	if err := conn(ctx, r.db).Scopes(byTitle).Count(&total).Error; err != nil {
		return page.Page[movie.Movie]{}, err
	}
	if total == 0 {
		return page.Empty[movie.Movie](p), nil
	}

	var models []MovieModel
	err := conn(ctx, r.db).Scopes(byTitle).
		Order("id").
		Offset(p.Offset()).
		Limit(p.Limit()).
		Find(&models).Error
	if err != nil {
		return page.Page[movie.Movie]{}, err
	}

	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = toDomainMovie(model)
	}
	return page.New(movies, p, total), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Save inserts m when it has no id yet, otherwise overwrites every column.
func (r *MovieRepository) Save(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	model := toModelMovie(m)
	db := conn(ctx, r.db)

	if model.ID == 0 {
		if err := db.Create(&model).Error; err != nil {
			return movie.Movie{}, err
		}
		return toDomainMovie(model), nil
	}

	result := db.Model(&MovieModel{ID: model.ID}).
		Select("title", "score_sum", "score_count", "image").
		Updates(&model)
	if result.Error != nil {
		return movie.Movie{}, result.Error
	}
	if result.RowsAffected == 0 {
		return movie.Movie{}, movie.ErrReferenceMissing
	}
	return toDomainMovie(model), nil
}

func (r *MovieRepository) GetReference(ctx context.Context, id int64) (movie.Movie, error) {
	m, ok, err := r.FindByID(ctx, id)
	if err != nil {
		return movie.Movie{}, err
	}
	if !ok {
		return movie.Movie{}, movie.ErrReferenceMissing
	}
	return m, nil
}

func (r *MovieRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&MovieModel{}).Where("id = ?", id).Limit(1).Count(&count).Error
	return count > 0, err
}

func (r *MovieRepository) DeleteByID(ctx context.Context, id int64) error {
	err := conn(ctx, r.db).Delete(&MovieModel{}, id).Error
	if err != nil {
		if isForeignKeyViolation(err) {
			return movie.ErrDependentRows
		}
		return err
	}
	return nil
}

func toDomainMovie(model MovieModel) movie.Movie {
	return movie.Movie{
		ID:       model.ID,
		Title:    model.Title,
		ScoreSum: model.ScoreSum,
		Count:    model.ScoreCount,
		Image:    model.Image,
	}
}

func toModelMovie(m movie.Movie) MovieModel {
	return MovieModel{
		ID:         m.ID,
		Title:      m.Title,
		ScoreSum:   m.ScoreSum,
		ScoreCount: m.Count,
		Image:      m.Image,
	}
}
