package service

import (
	"context"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"riftbound-tracker/internal/config"
	"riftbound-tracker/internal/constants"
	"riftbound-tracker/internal/domain"
	"riftbound-tracker/internal/inventory"
	"riftbound-tracker/internal/scraper"
	"riftbound-tracker/internal/store"
)

type CollectionService struct {
	browser *scraper.CollectionScraper
	store   *store.Store
	user    string
	logger  zerolog.Logger
}

func NewCollectionService(browser *scraper.CollectionScraper, st *store.Store, cfg *config.Config, logger zerolog.Logger) *CollectionService {
	return &CollectionService{browser: browser, store: st, user: cfg.Site.User, logger: logger}
}

// RefreshCollection scrapes the collection page and replaces the collection
// snapshot. Both the raw rows and the folded counts are persisted: the
// counts are what comparisons read, the rows keep the finish-level detail.
func (s *CollectionService) RefreshCollection(ctx context.Context) (*domain.CollectionSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ScrapeTimeout)
	defer cancel()

	rows, err := s.browser.ScrapeCollection(ctx)
	if err != nil {
		return nil, err
	}

	runID, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate run id: %w", err)
	}

	snapshot := &domain.CollectionSnapshot{
		User:      s.user,
		RunID:     runID,
		ScrapedAt: time.Now().UTC(),
		Cards:     rows,
		Counts:    inventory.FromRecords(rows),
	}
	if err := s.store.SaveCollection(snapshot); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("run_id", runID).
		Int("names", len(snapshot.Counts)).
		Msg("collection refresh completed")
	return snapshot, nil
}

// Collection returns the persisted collection snapshot.
func (s *CollectionService) Collection(ctx context.Context) (*domain.CollectionSnapshot, error) {
	return s.store.LoadCollection()
}

// Inventory builds the engine's inventory from the persisted collection
// file. A scraped snapshot carries a counts mapping, which wins; anything
// else (an older file with only raw rows, or a hand-authored mapping or
// record array) goes through the normalizer's shape dispatch.
func (s *CollectionService) Inventory(ctx context.Context) (domain.Inventory, error) {
	raw, err := s.store.LoadCollectionValue()
	if err != nil {
		return nil, err
	}

	if obj, ok := raw.(map[string]any); ok {
		if counts, ok := obj["counts"].(map[string]any); ok {
			return inventory.Normalize(counts)
		}
	}
	return inventory.Normalize(raw)
}
