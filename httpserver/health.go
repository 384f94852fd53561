package httpserver

import (
	"context"
	"dsmovie/pkg/sentry"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether a backing store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

func WithDatabase(db Pinger) Option {
	return func(s *Server) {
		s.DB = db
	}
}

func (s *Server) RegisterHealthRoutes() {
	s.Router.GET("/healthcheck", s.healthCheck)
}

// healthCheck godoc
// @Summary Health Check
// @Description Check if server is alive and the database answers
// @Tags health
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /healthcheck [get]
func (s *Server) healthCheck(c echo.Context) error {
	if s.DB != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := s.DB.PingContext(ctx); err != nil {
			s.Logger.Warnw("database ping failed", "error", err)
			sentry.WithContext(c).Warning("database ping failed: " + err.Error())
			return c.JSON(http.StatusServiceUnavailable, APIResponse{
				Code:    errorCode(err, http.StatusServiceUnavailable),
				Message: "database unavailable",
				Result:  map[string]string{"status": "DOWN"},
			})
		}
	}

	return writeSuccess(c, http.StatusOK, map[string]string{
		"status": "OK",
	})
}
