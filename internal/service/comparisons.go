package service

import (
	"context"

	"github.com/rs/zerolog"

	"riftbound-tracker/internal/compare"
	"riftbound-tracker/internal/domain"
)

type ComparisonService struct {
	decks      *DeckService
	collection *CollectionService
	logger     zerolog.Logger
}

func NewComparisonService(decks *DeckService, collection *CollectionService, logger zerolog.Logger) *ComparisonService {
	return &ComparisonService{decks: decks, collection: collection, logger: logger}
}

// Comparisons loads the current snapshots and classifies every deck against
// the inventory, in snapshot order. Pure recomputation over the engine;
// nothing is cached between calls.
func (s *ComparisonService) Comparisons(ctx context.Context, maxMissing int) ([]domain.DeckComparison, error) {
	snapshot, err := s.decks.Decks(ctx)
	if err != nil {
		return nil, err
	}

	inv, err := s.collection.Inventory(ctx)
	if err != nil {
		return nil, err
	}

	results, err := compare.Many(snapshot.Decks, inv, maxMissing)
	if err != nil {
		s.logger.Error().Err(err).Msg("comparison batch failed")
		return nil, err
	}

	s.logger.Debug().
		Int("decks", len(results)).
		Int("max_missing", maxMissing).
		Msg("comparisons computed")
	return results, nil
}
