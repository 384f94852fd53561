package score

import (
	"dsmovie/errs"
	"math"
)

const (
	MinValue = 0.0
	MaxValue = 5.0
)

var ErrInvalidScore = errs.Errorf(errs.EINVALID, "score: value must be between %.1f and %.1f", MinValue, MaxValue)

// Score is one user's rating of one movie. (MovieID, UserID) is unique.
type Score struct {
	MovieID int64
	UserID  int64
	Value   float64
}

// Input is a score submission. The user comes from the security context.
type Input struct {
	MovieID int64
	Value   float64
}

func (in Input) Validate() error {
	if math.IsNaN(in.Value) || in.Value < MinValue || in.Value > MaxValue {
		return ErrInvalidScore
	}
	return nil
}
