package httpserver

import (
	"dsmovie/errs"
	"dsmovie/user"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterScoreRoutes(g *echo.Group) {
	g.PUT("/scores", s.handleSaveScore, requireAnyRole(user.RoleClient, user.RoleAdmin))
}

// handleSaveScore godoc
// @Summary Save Score
// @Description Create or replace the caller's score for a movie and return the updated movie
// @Tags scores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body ScoreRequest true "Score payload"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/scores [put]
func (s *Server) handleSaveScore(c echo.Context) error {
	if s.ScoreService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "score service not configured")
	}

	var req ScoreRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := s.ScoreService.SaveScore(c.Request().Context(), req.ToInput())
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, result)
}
