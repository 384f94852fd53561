package httpserver

import (
	"dsmovie/auth"
	"dsmovie/errs"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// ErrInvalidToken is returned for a missing, malformed or unverifiable
// bearer token.
var ErrInvalidToken = errs.Errorf(errs.EUNAUTHORIZED, "missing or invalid token")

// authenticate validates the HS256 bearer token and stores the parsed
// *jwt.Token under the "user" key.
func (s *Server) authenticate() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(s.Config.Auth.JWTSecret),
		SigningMethod: echojwt.AlgorithmHS256,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			s.Logger.Debugw("rejected bearer token", "error", err, "request_id", requestID(c))
			return ErrInvalidToken
		},
	})
}

// loadPrincipal resolves the token subject against the user store, so roles
// always reflect the current grants rather than what the token claims.
func (s *Server) loadPrincipal(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.UserService == nil {
			return errs.Errorf(errs.ENOTIMPLEMENTED, "user service not configured")
		}

		token, _ := c.Get("user").(*jwt.Token)
		claims, err := auth.ClaimsFromToken(token)
		if err != nil {
			return errs.Errorf(errs.EUNAUTHORIZED, "invalid token claims")
		}
		username, err := claims.LoginName()
		if err != nil {
			return errs.Errorf(errs.EUNAUTHORIZED, "invalid token claims")
		}

		ctx := c.Request().Context()
		details, err := s.UserService.LoadUserByUsername(ctx, username)
		if err != nil {
			return err
		}

		ctx = auth.WithPrincipal(ctx, auth.Principal{
			Username:    details.Username,
			Authorities: details.Roles,
		})
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// requireAnyRole rejects principals holding none of roles.
func requireAnyRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := auth.PrincipalFromContext(c.Request().Context())
			if !ok {
				return errs.Errorf(errs.EUNAUTHORIZED, "authentication required")
			}
			if !p.HasAnyAuthority(roles...) {
				return auth.ErrAccessDenied
			}
			return next(c)
		}
	}
}
