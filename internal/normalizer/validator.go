package normalizer

import (
	"errors"
	"fmt"
	"net/url"

	"leaderswiki/internal/models"
)

// Validation errors.
var (
	ErrMissingName         = errors.New("leader has neither first nor last name")
	ErrMissingWikipediaURL = errors.New("leader has no wikipedia URL")
	ErrInvalidWikipediaURL = errors.New("leader wikipedia URL is not a valid absolute URL")
)

// Validator applies defensive checks to leader records as returned by the
// upstream. Failures are reported to the caller as warnings, never as reasons
// to abort the run.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks one leader record.
func (v *Validator) Validate(leader models.Leader) error {
	if leader.FirstName == "" && leader.LastName == "" {
		return ErrMissingName
	}

	if leader.WikipediaURL == "" {
		return ErrMissingWikipediaURL
	}

	parsed, err := url.Parse(leader.WikipediaURL)
	if err != nil || !parsed.IsAbs() {
		return fmt.Errorf("%w: %q", ErrInvalidWikipediaURL, leader.WikipediaURL)
	}

	return nil
}
