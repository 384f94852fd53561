// Package auth carries the authenticated principal through a request.
package auth

import (
	"context"
	"dsmovie/errs"
	"dsmovie/user"
	"errors"
	"strings"
)

var ErrNoPrincipal = errors.New("auth: no principal in context")

// Principal is the identity bound to one request.
type Principal struct {
	Username    string
	Authorities []string
}

// HasAnyAuthority reports whether p was granted at least one of authorities.
func (p Principal) HasAnyAuthority(authorities ...string) bool {
	for _, have := range p.Authorities {
		for _, want := range authorities {
			if have == want {
				return true
			}
		}
	}
	return false
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext extracts the principal stored by WithPrincipal.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// ContextSecurity resolves the current username from the request context.
type ContextSecurity struct{}

func (ContextSecurity) CurrentUsername(ctx context.Context) (string, error) {
	p, ok := PrincipalFromContext(ctx)
	if !ok {
		return "", ErrNoPrincipal
	}
	if strings.TrimSpace(p.Username) == "" {
		return "", user.ErrNoUsername
	}
	return p.Username, nil
}

var ErrAccessDenied = errs.Errorf(errs.EFORBIDDEN, "auth: access denied")
