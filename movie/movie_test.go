package movie_test

import (
	"dsmovie/movie"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovie_ApplyScore(t *testing.T) {
	t.Run("should follow a resubmission without double counting", func(t *testing.T) {
		m := movie.Movie{ID: 1, Title: "The Witcher"}

		m.ApplyScore(0, false, 4.0)
		assert.Equal(t, 4.0, m.ScoreSum)
		assert.Equal(t, 1, m.Count)
		assert.Equal(t, 4.0, m.Average())

		m.ApplyScore(4.0, true, 2.0)
		assert.Equal(t, 2.0, m.ScoreSum)
		assert.Equal(t, 1, m.Count)
		assert.Equal(t, 2.0, m.Average())

		m.ApplyScore(0, false, 5.0)
		assert.Equal(t, 7.0, m.ScoreSum)
		assert.Equal(t, 2, m.Count)
		assert.Equal(t, 3.5, m.Average())
	})

	t.Run("should return zero average when unrated", func(t *testing.T) {
		assert.Zero(t, movie.Movie{ID: 1}.Average())
	})
}

func TestInput_Validate(t *testing.T) {
	tests := []struct {
		name  string
		input movie.Input
		want  error
	}{
		{name: "valid without image", input: movie.Input{Title: "The Witcher"}, want: nil},
		{name: "valid with image", input: movie.Input{Title: "The Witcher", Image: "https://img.example.com/witcher.jpg"}, want: nil},
		{name: "title too short", input: movie.Input{Title: "Up"}, want: movie.ErrInvalidTitle},
		{name: "blank title", input: movie.Input{Title: "      "}, want: movie.ErrInvalidTitle},
		{name: "title too long", input: movie.Input{Title: strings.Repeat("a", movie.MaxTitleLength+1)}, want: movie.ErrInvalidTitle},
		{name: "relative image", input: movie.Input{Title: "The Witcher", Image: "/witcher.jpg"}, want: movie.ErrInvalidImage},
		{name: "non http image", input: movie.Input{Title: "The Witcher", Image: "ftp://example.com/witcher.jpg"}, want: movie.ErrInvalidImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.input.Validate())
		})
	}
}

func TestNewDetail(t *testing.T) {
	m := movie.Movie{ID: 3, Title: "Matrix Resurrections", ScoreSum: 9, Count: 2, Image: "https://img.example.com/m.jpg"}

	d := movie.NewDetail(m)

	assert.Equal(t, movie.Detail{ID: 3, Title: "Matrix Resurrections", Score: 4.5, Count: 2, Image: "https://img.example.com/m.jpg"}, d)
}
