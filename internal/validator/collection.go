// Package validator checks saved leader collections for structural problems.
package validator

import (
	"errors"
	"fmt"
	"net/url"

	"leaderswiki/internal/models"
)

// Collection validation errors.
var (
	ErrEmptyCountryCode = errors.New("empty country code")
	ErrInvalidURL       = errors.New("wikipedia URL does not parse")
)

// Result holds the outcome of validating one collection.
type Result struct {
	Errors   []error
	Warnings []string
}

// IsValid reports whether no structural errors were found.
func (r *Result) IsValid() bool {
	return len(r.Errors) == 0
}

// String summarizes the result.
func (r *Result) String() string {
	if r.IsValid() {
		return fmt.Sprintf("valid (%d warnings)", len(r.Warnings))
	}

	return fmt.Sprintf("invalid: %d errors, %d warnings", len(r.Errors), len(r.Warnings))
}

// ValidateCollection checks a loaded collection: country codes are non-empty,
// wikipedia URLs parse, and leaders without a biography are reported as
// warnings (an empty biography is legal, a hole in coverage worth noticing).
func ValidateCollection(collection *models.Collection) *Result {
	result := &Result{}

	for _, code := range collection.Codes() {
		if code == "" {
			result.Errors = append(result.Errors, ErrEmptyCountryCode)
		}

		leaders, _ := collection.Get(code)

		for i, leader := range leaders {
			if leader.WikipediaURL != "" {
				parsed, err := url.Parse(leader.WikipediaURL)
				if err != nil || !parsed.IsAbs() {
					result.Errors = append(result.Errors,
						fmt.Errorf("%w: %s[%d] %q", ErrInvalidURL, code, i, leader.WikipediaURL))
				}
			}

			if leader.Biography == "" {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("%s[%d] %s has no biography", code, i, leader.FullName()))
			}
		}
	}

	return result
}
