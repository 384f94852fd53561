package httpserver

import (
	"dsmovie/errs"
	"net/http"

	"github.com/labstack/echo/v4"
)

type UserResponse struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

func (s *Server) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/me", s.handleCurrentUser)
}

// handleCurrentUser godoc
// @Summary Current User
// @Description Return the authenticated user and its roles
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /api/users/me [get]
func (s *Server) handleCurrentUser(c echo.Context) error {
	if s.UserService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "user service not configured")
	}

	u, err := s.UserService.Authenticated(c.Request().Context())
	if err != nil {
		return err
	}

	roles := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		roles[i] = r.Authority
	}
	return writeSuccess(c, http.StatusOK, UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Roles:    roles,
	})
}
