package httpserver

import (
	"dsmovie/movie"
	"dsmovie/score"
)

type MovieRequest struct {
	Title string `json:"title" validate:"required,notblank,min=5,max=80"`
	Image string `json:"image" validate:"omitempty,url,max=2048"`
}

func (r MovieRequest) ToInput() movie.Input {
	return movie.Input{
		Title: r.Title,
		Image: r.Image,
	}
}

type ScoreRequest struct {
	MovieID int64 `json:"movieId" validate:"required,gt=0"`
	// Score is a pointer so an explicit 0 is told apart from a missing field.
	Score *float64 `json:"score" validate:"required,min=0,max=5"`
}

func (r ScoreRequest) ToInput() score.Input {
	return score.Input{
		MovieID: r.MovieID,
		Value:   *r.Score,
	}
}

type PageQuery struct {
	Title string `query:"title"`
	Page  int    `query:"page" validate:"min=0"`
	Size  int    `query:"size" validate:"min=0,max=100"`
}
