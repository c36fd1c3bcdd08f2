package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"riftbound-tracker/internal/constants"
	"riftbound-tracker/internal/deck"
	"riftbound-tracker/internal/domain"
	"riftbound-tracker/internal/scraper"
	"riftbound-tracker/internal/store"
)

type DeckService struct {
	site   *scraper.SiteClient
	store  *store.Store
	logger zerolog.Logger
}

func NewDeckService(site *scraper.SiteClient, st *store.Store, logger zerolog.Logger) *DeckService {
	return &DeckService{site: site, store: st, logger: logger}
}

// RefreshDecks scrapes the deck index, downloads every deck's export text,
// parses it, and replaces the deck snapshot. Strict on purpose: a single
// malformed export fails the refresh, so the snapshot never mixes decks from
// different scrape runs or silently drops one.
func (s *DeckService) RefreshDecks(ctx context.Context) (*domain.DeckSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ScrapeTimeout)
	defer cancel()

	listings, err := s.site.FetchDeckListings(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("decks", len(listings)).Msg("fetching deck exports")

	records := make([]domain.DeckRecord, len(listings))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(constants.ExportFetchConcurrency)

	for i, listing := range listings {
		i, listing := i, listing
		g.Go(func() error {
			exportText, err := s.site.FetchExportText(gCtx, listing.Slug)
			if err != nil {
				return err
			}
			parsed, err := deck.Parse(exportText)
			if err != nil {
				return fmt.Errorf("deck %q: %w", listing.Slug, err)
			}
			records[i] = domain.DeckRecord{
				Slug:       listing.Slug,
				Label:      listing.Label,
				URL:        listing.URL,
				ExportText: exportText,
				Parsed:     parsed,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("deck refresh failed")
		return nil, err
	}

	snapshot := &domain.DeckSnapshot{ScrapedAt: time.Now().UTC(), Decks: records}
	if err := s.store.SaveDecks(snapshot); err != nil {
		return nil, err
	}

	s.logger.Info().Int("decks", len(records)).Msg("deck refresh completed")
	return snapshot, nil
}

// Decks returns the persisted deck snapshot.
func (s *DeckService) Decks(ctx context.Context) (*domain.DeckSnapshot, error) {
	return s.store.LoadDecks()
}
