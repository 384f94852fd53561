package score

import (
	"context"
	"dsmovie/movie"
	"dsmovie/txn"
	"dsmovie/user"
)

type Service interface {
	SaveScore(ctx context.Context, in Input) (movie.Detail, error)
}

// Authenticator resolves the user behind the current request.
type Authenticator interface {
	Authenticated(ctx context.Context) (user.User, error)
}

// MovieRepository is the part of the movie store the score flow needs.
type MovieRepository interface {
	// FindByIDForUpdate locks the movie row until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id int64) (movie.Movie, bool, error)
	Save(ctx context.Context, m movie.Movie) (movie.Movie, error)
}

type Repository interface {
	Find(ctx context.Context, movieID, userID int64) (Score, bool, error)
	// UpsertAndFlush inserts s or overwrites the value of the existing
	// (MovieID, UserID) row, and writes it to the store immediately.
	UpsertAndFlush(ctx context.Context, s Score) (Score, error)
}

type Usecase struct {
	auth   Authenticator
	movies MovieRepository
	r      Repository
	tx     txn.Transactor
}

func NewUsecase(auth Authenticator, movies MovieRepository, r Repository, tx txn.Transactor) *Usecase {
	if tx == nil {
		tx = txn.Passthrough{}
	}
	return &Usecase{
		auth:   auth,
		movies: movies,
		r:      r,
		tx:     tx,
	}
}

func (uc *Usecase) SaveScore(ctx context.Context, in Input) (movie.Detail, error) {
	var result movie.Detail
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		u, err := uc.auth.Authenticated(ctx)
		if err != nil {
			return err
		}

		m, ok, err := uc.movies.FindByIDForUpdate(ctx, in.MovieID)
		if err != nil {
			return err
		}
		if !ok {
			return movie.ErrMovieNotFound
		}

		if err := in.Validate(); err != nil {
			return err
		}

		prev, replaced, err := uc.r.Find(ctx, m.ID, u.ID)
		if err != nil {
			return err
		}
		if _, err := uc.r.UpsertAndFlush(ctx, Score{MovieID: m.ID, UserID: u.ID, Value: in.Value}); err != nil {
			return err
		}

		m.ApplyScore(prev.Value, replaced, in.Value)
		saved, err := uc.movies.Save(ctx, m)
		if err != nil {
			return err
		}
		result = movie.NewDetail(saved)
		return nil
	})
	return result, err
}
