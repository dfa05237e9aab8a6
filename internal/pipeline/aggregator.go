// Package pipeline orchestrates the fetch-extract-normalize run.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"leaderswiki/internal/leadersapi"
	"leaderswiki/internal/logger"
	"leaderswiki/internal/models"
	"leaderswiki/internal/normalizer"
)

// Fetcher lists countries and leaders from the leaders API.
type Fetcher interface {
	Countries(ctx context.Context) ([]string, error)
	Leaders(ctx context.Context, country string) ([]models.Leader, error)
}

// Extractor retrieves the first informative paragraph of a Wikipedia page.
type Extractor interface {
	FirstParagraph(ctx context.Context, pageURL string) (string, error)
}

// Aggregator builds the country-to-leaders collection. Countries and leaders
// are processed one at a time, in API order; each Wikipedia fetch completes
// before the next leader is touched.
type Aggregator struct {
	fetcher   Fetcher
	extractor Extractor
	processor *normalizer.Processor
	log       *logger.Logger
}

// NewAggregator creates an aggregator over the given collaborators.
func NewAggregator(fetcher Fetcher, extractor Extractor, log *logger.Logger) *Aggregator {
	return &Aggregator{
		fetcher:   fetcher,
		extractor: extractor,
		processor: normalizer.NewProcessor(),
		log:       log,
	}
}

// Build runs the full aggregation: countries, then per country the leaders,
// each enriched with a biography. Auth failures that survive a cookie refresh
// abort the build; everything per-leader degrades to an empty biography.
func (a *Aggregator) Build(ctx context.Context) (*models.Collection, error) {
	countries, err := a.fetcher.Countries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}

	a.log.Info("countries listed", "count", len(countries))

	collection := models.NewCollection()

	for _, country := range countries {
		leaders, err := a.fetcher.Leaders(ctx, country)
		if err != nil {
			if errors.Is(err, leadersapi.ErrUpstreamAuth) {
				return nil, err
			}

			// Non-auth failure for one country degrades to an empty leader
			// list so the country keeps its key and the run continues.
			a.log.Warn("failed to fetch leaders, storing empty list", "country", country, "err", err)
			collection.Set(country, nil)

			continue
		}

		a.enrich(ctx, country, leaders)
		collection.Set(country, leaders)

		a.log.Info("country processed", "country", country, "leaders", len(leaders))
	}

	return collection, nil
}

// enrich attaches a biography to every leader of one country, in place.
func (a *Aggregator) enrich(ctx context.Context, country string, leaders []models.Leader) {
	for i := range leaders {
		leader := &leaders[i]
		log := a.log.With("country", country, "leader", leader.FullName())

		paragraph := ""

		if leader.WikipediaURL != "" {
			extracted, err := a.extractor.FirstParagraph(ctx, leader.WikipediaURL)
			if err != nil {
				// A single unreachable page must not abort the run.
				log.Warn("biography extraction failed", "url", leader.WikipediaURL, "err", err)
			} else {
				paragraph = extracted
			}
		}

		if err := a.processor.Attach(leader, paragraph); err != nil {
			log.Warn("leader record incomplete", "err", err)
		}

		if leader.Biography == "" {
			log.Debug("no biography available")
		}
	}
}
