package movie

import (
	"context"
	"dsmovie/page"
	"dsmovie/txn"
	"errors"
	"strings"
)

type Service interface {
	FindAll(ctx context.Context, title string, p page.Request) (page.Page[Summary], error)
	FindByID(ctx context.Context, id int64) (Detail, error)
	Insert(ctx context.Context, in Input) (Detail, error)
	Update(ctx context.Context, id int64, in Input) (Detail, error)
	Delete(ctx context.Context, id int64) error
}

type Repository interface {
	FindByID(ctx context.Context, id int64) (Movie, bool, error)
	SearchByTitle(ctx context.Context, title string, p page.Request) (page.Page[Movie], error)
	Save(ctx context.Context, m Movie) (Movie, error)
	// GetReference fails fast with ErrReferenceMissing when id is absent.
	GetReference(ctx context.Context, id int64) (Movie, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	// DeleteByID returns ErrDependentRows when scores still reference the movie.
	DeleteByID(ctx context.Context, id int64) error
}

type Usecase struct {
	r  Repository
	tx txn.Transactor
}

func NewUsecase(r Repository, tx txn.Transactor) *Usecase {
	if tx == nil {
		tx = txn.Passthrough{}
	}
	return &Usecase{r: r, tx: tx}
}

func (uc *Usecase) FindAll(ctx context.Context, title string, p page.Request) (page.Page[Summary], error) {
	var result page.Page[Summary]
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		movies, err := uc.r.SearchByTitle(ctx, strings.TrimSpace(title), p)
		if err != nil {
			return err
		}
		result = page.Map(movies, NewSummary)
		return nil
	})
	if err != nil {
		return page.Empty[Summary](p), err
	}
	return result, nil
}

func (uc *Usecase) FindByID(ctx context.Context, id int64) (Detail, error) {
	var result Detail
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		m, ok, err := uc.r.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrMovieNotFound
		}
		result = NewDetail(m)
		return nil
	})
	return result, err
}

func (uc *Usecase) Insert(ctx context.Context, in Input) (Detail, error) {
	if err := in.Validate(); err != nil {
		return Detail{}, err
	}
	in = in.normalized()

	var result Detail
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		saved, err := uc.r.Save(ctx, Movie{
			Title: in.Title,
			Image: in.Image,
		})
		if err != nil {
			return err
		}
		result = NewDetail(saved)
		return nil
	})
	return result, err
}

func (uc *Usecase) Update(ctx context.Context, id int64, in Input) (Detail, error) {
	var result Detail
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		m, err := uc.r.GetReference(ctx, id)
		if err != nil {
			if errors.Is(err, ErrReferenceMissing) {
				return ErrMovieNotFound
			}
			return err
		}

		if err := in.Validate(); err != nil {
			return err
		}
		in = in.normalized()
		m.Title = in.Title
		m.Image = in.Image

		saved, err := uc.r.Save(ctx, m)
		if err != nil {
			if errors.Is(err, ErrReferenceMissing) {
				return ErrMovieNotFound
			}
			return err
		}
		result = NewDetail(saved)
		return nil
	})
	return result, err
}

func (uc *Usecase) Delete(ctx context.Context, id int64) error {
	return uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := uc.r.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrMovieNotFound
		}

		if err := uc.r.DeleteByID(ctx, id); err != nil {
			if errors.Is(err, ErrDependentRows) {
				return ErrIntegrityViolation
			}
			return err
		}
		return nil
	})
}
