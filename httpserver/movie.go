package httpserver

import (
	"dsmovie/errs"
	"dsmovie/page"
	"dsmovie/user"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

var errInvalidMovieID = errs.Errorf(errs.EINVALID, "invalid movie id")

func (s *Server) RegisterPublicMovieRoutes(g *echo.Group) {
	g.GET("/movies", s.handleListMovies)
	g.GET("/movies/:id", s.handleGetMovie)
}

func (s *Server) RegisterPrivateMovieRoutes(g *echo.Group) {
	admin := requireAnyRole(user.RoleAdmin)
	g.POST("/movies", s.handleInsertMovie, admin)
	g.PUT("/movies/:id", s.handleUpdateMovie, admin)
	g.DELETE("/movies/:id", s.handleDeleteMovie, admin)
}

// handleListMovies godoc
// @Summary List Movies
// @Description Paged movie listing filtered by a case-insensitive title substring
// @Tags movies
// @Produce json
// @Param title query string false "Title filter"
// @Param page query int false "Zero-based page number"
// @Param size query int false "Page size (1-100), default 12"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /api/movies [get]
func (s *Server) handleListMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	var q PageQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid pagination parameters")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}
	if q.Size == 0 {
		q.Size = s.pageSize()
	}

	result, err := s.MovieService.FindAll(c.Request().Context(), q.Title, page.Of(q.Page, q.Size))
	if err != nil {
		return err
	}

	return writePage(c, http.StatusOK, result)
}

// handleGetMovie godoc
// @Summary Get Movie
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id} [get]
func (s *Server) handleGetMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	id, err := movieID(c)
	if err != nil {
		return err
	}

	result, err := s.MovieService.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, result)
}

// handleInsertMovie godoc
// @Summary Create Movie
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body MovieRequest true "Movie payload"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Router /api/movies [post]
func (s *Server) handleInsertMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	var req MovieRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := s.MovieService.Insert(c.Request().Context(), req.ToInput())
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/movies/%d", result.ID))
	return writeSuccess(c, http.StatusCreated, result)
}

// handleUpdateMovie godoc
// @Summary Update Movie
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Movie ID"
// @Param payload body MovieRequest true "Movie payload"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id} [put]
func (s *Server) handleUpdateMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	id, err := movieID(c)
	if err != nil {
		return err
	}

	var req MovieRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := s.MovieService.Update(c.Request().Context(), id, req.ToInput())
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, result)
}

// handleDeleteMovie godoc
// @Summary Delete Movie
// @Tags movies
// @Security BearerAuth
// @Param id path int true "Movie ID"
// @Success 204
// @Failure 404 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /api/movies/{id} [delete]
func (s *Server) handleDeleteMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	id, err := movieID(c)
	if err != nil {
		return err
	}

	if err := s.MovieService.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func movieID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidMovieID
	}
	return id, nil
}
