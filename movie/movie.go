package movie

import (
	"dsmovie/errs"
	"errors"
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	MinTitleLength = 5
	MaxTitleLength = 80
)

var (
	ErrMovieNotFound      = errs.Errorf(errs.ENOTFOUND, "movie: resource not found")
	ErrIntegrityViolation = errs.Errorf(errs.ECONFLICT, "movie: integrity violation, movie has dependent scores")
	ErrInvalidTitle       = errs.Errorf(errs.EINVALID, "movie: title must be between %d and %d characters", MinTitleLength, MaxTitleLength)
	ErrInvalidImage       = errs.Errorf(errs.EINVALID, "movie: image must be an absolute http(s) url")
)

// Signals returned by a Repository. The usecase translates them into the
// application errors above.
var (
	ErrReferenceMissing = errors.New("movie: referenced row does not exist")
	ErrDependentRows    = errors.New("movie: row is referenced by dependent records")
)

// Movie is a catalog entry together with its rating accumulators.
// The average is always derived from ScoreSum and Count.
type Movie struct {
	ID       int64
	Title    string
	ScoreSum float64
	Count    int
	Image    string
}

// Average returns ScoreSum/Count, or 0 when nobody rated the movie yet.
func (m Movie) Average() float64 {
	if m.Count == 0 {
		return 0
	}
	return m.ScoreSum / float64(m.Count)
}

// ApplyScore merges one user's score into the accumulators. When replaced is
// true the user had already rated the movie with prev, so only the value
// changes and the count stays the same.
func (m *Movie) ApplyScore(prev float64, replaced bool, next float64) {
	if replaced {
		m.ScoreSum += next - prev
		return
	}
	m.ScoreSum += next
	m.Count++
}

// Input is the caller-supplied part of a movie. Rating fields are never
// accepted from callers.
type Input struct {
	Title string
	Image string
}

func (in Input) Validate() error {
	n := utf8.RuneCountInString(strings.TrimSpace(in.Title))
	if n < MinTitleLength || n > MaxTitleLength {
		return ErrInvalidTitle
	}

	image := strings.TrimSpace(in.Image)
	if image == "" {
		return nil
	}
	u, err := url.ParseRequestURI(image)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidImage
	}
	return nil
}

func (in Input) normalized() Input {
	return Input{
		Title: strings.TrimSpace(in.Title),
		Image: strings.TrimSpace(in.Image),
	}
}

// Detail is the outward projection of a single movie.
type Detail struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
	Count int     `json:"count"`
	Image string  `json:"image"`
}

// Summary is the projection used in paged listings.
type Summary struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
	Count int     `json:"count"`
	Image string  `json:"image"`
}

func NewDetail(m Movie) Detail {
	return Detail{
		ID:    m.ID,
		Title: m.Title,
		Score: m.Average(),
		Count: m.Count,
		Image: m.Image,
	}
}

func NewSummary(m Movie) Summary {
	return Summary{
		ID:    m.ID,
		Title: m.Title,
		Score: m.Average(),
		Count: m.Count,
		Image: m.Image,
	}
}
