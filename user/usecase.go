package user

import (
	"context"
	"strings"
)

type Service interface {
	Authenticated(ctx context.Context) (User, error)
	LoadUserByUsername(ctx context.Context, username string) (Details, error)
}

type Repository interface {
	// FindByUsername reports ok=false when no user has that username.
	FindByUsername(ctx context.Context, username string) (User, bool, error)
	SearchUserAndRolesByUsername(ctx context.Context, username string) ([]DetailsRow, error)
}

// SecurityContext exposes the username bound to the current request.
type SecurityContext interface {
	CurrentUsername(ctx context.Context) (string, error)
}

type Usecase struct {
	r   Repository
	sec SecurityContext
}

func NewUsecase(r Repository, sec SecurityContext) *Usecase {
	return &Usecase{
		r:   r,
		sec: sec,
	}
}

func (uc *Usecase) Authenticated(ctx context.Context) (User, error) {
	username, err := uc.sec.CurrentUsername(ctx)
	if err != nil {
		return User{}, ErrAuthenticationResolution
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return User{}, ErrAuthenticationResolution
	}

	u, ok, err := uc.r.FindByUsername(ctx, username)
	if err != nil {
		return User{}, err
	}
	if !ok {
		return User{}, ErrAuthenticationResolution
	}
	return u, nil
}

func (uc *Usecase) LoadUserByUsername(ctx context.Context, username string) (Details, error) {
	rows, err := uc.r.SearchUserAndRolesByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return Details{}, err
	}
	if len(rows) == 0 {
		return Details{}, ErrUserNotFound
	}
	return newDetails(rows), nil
}
