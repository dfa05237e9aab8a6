// Package normalizer turns raw extracted paragraphs into clean biography
// fields on leader records.
package normalizer

import (
	"leaderswiki/internal/models"
)

// Processor combines record validation and biography cleanup.
type Processor struct {
	validator   *Validator
	transformer *Transformer
}

// NewProcessor creates a new processor instance.
func NewProcessor() *Processor {
	return &Processor{
		validator:   NewValidator(),
		transformer: NewTransformer(),
	}
}

// Attach cleans the raw paragraph and sets it as the leader's biography. The
// biography field is always written, so a leader without a usable paragraph
// carries an explicit "" rather than a missing field. The returned error is a
// validation warning about the record itself; the biography is attached
// either way.
func (p *Processor) Attach(leader *models.Leader, rawParagraph string) error {
	leader.Biography = p.transformer.CleanBiography(rawParagraph)

	return p.validator.Validate(*leader)
}
