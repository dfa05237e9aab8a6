// Package models defines data structures shared by the fetcher, extractor and store.
package models

// Leader represents one historical political leader as returned by the
// country-leaders API, augmented with the biography extracted from Wikipedia.
//
// The upstream field set is treated as a black box: fields it does not send
// stay empty, fields it sends that are not listed here are ignored.
type Leader struct {
	ID           string `json:"id,omitempty"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	BirthDate    string `json:"birth_date,omitempty"`
	DeathDate    string `json:"death_date,omitempty"`
	PlaceOfBirth string `json:"place_of_birth,omitempty"`
	StartMandate string `json:"start_mandate"`
	EndMandate   string `json:"end_mandate"`
	WikipediaURL string `json:"wikipedia_url"`
	// Biography is always present in the persisted record: either the first
	// informative paragraph of the leader's Wikipedia page or "".
	Biography string `json:"biography"`
}

// FullName returns "First Last" with missing parts dropped.
func (l Leader) FullName() string {
	switch {
	case l.FirstName == "":
		return l.LastName
	case l.LastName == "":
		return l.FirstName
	}

	return l.FirstName + " " + l.LastName
}
