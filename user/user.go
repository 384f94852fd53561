package user

import (
	"dsmovie/errs"
	"errors"
	"sort"
)

const (
	RoleClient = "ROLE_CLIENT"
	RoleAdmin  = "ROLE_ADMIN"
)

var (
	ErrAuthenticationResolution = errs.Errorf(errs.EUNAUTHORIZED, "user: invalid user")
	ErrUserNotFound             = errs.Errorf(errs.EUNAUTHORIZED, "user: user not found")
)

// ErrNoUsername is returned by a SecurityContext that has nobody logged in.
var ErrNoUsername = errors.New("user: no username in security context")

type Role struct {
	ID        int64
	Authority string
}

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Roles        []Role
}

// HasRole reports whether u was granted authority.
func (u User) HasRole(authority string) bool {
	for _, r := range u.Roles {
		if r.Authority == authority {
			return true
		}
	}
	return false
}

// DetailsRow is one row of the user-with-roles projection. A user with n
// roles yields n rows sharing Username and Password.
type DetailsRow struct {
	Username  string
	Password  string
	RoleID    int64
	Authority string
}

// Details is the credential record used by the authentication layer.
type Details struct {
	Username     string
	PasswordHash string
	Roles        []string
}

// newDetails folds projection rows into a single record. rows must not be empty.
func newDetails(rows []DetailsRow) Details {
	seen := make(map[string]struct{}, len(rows))
	roles := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Authority == "" {
			continue
		}
		if _, ok := seen[row.Authority]; ok {
			continue
		}
		seen[row.Authority] = struct{}{}
		roles = append(roles, row.Authority)
	}
	sort.Strings(roles)

	return Details{
		Username:     rows[0].Username,
		PasswordHash: rows[0].Password,
		Roles:        roles,
	}
}

// HasAnyRole reports whether d holds at least one of authorities.
func (d Details) HasAnyRole(authorities ...string) bool {
	for _, have := range d.Roles {
		for _, want := range authorities {
			if have == want {
				return true
			}
		}
	}
	return false
}
