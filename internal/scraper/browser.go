package scraper

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"riftbound-tracker/internal/config"
	"riftbound-tracker/internal/constants"
	"riftbound-tracker/internal/domain"
)

// collectionRowsJS reads the rendered collection grid. The grid is built
// client-side, which is why this goes through a browser instead of the HTTP
// client.
const collectionRowsJS = `
Array.from(document.querySelectorAll(".collection-grid .card-row")).map((row) => ({
  name: (row.querySelector(".card-name")?.textContent ?? "").trim(),
  count: Number(row.querySelector(".card-count")?.textContent ?? "0"),
}))`

// CollectionScraper drives a headless browser over the logged-in collection
// page and returns one row per card entry, finishes included.
type CollectionScraper struct {
	url    string
	logger zerolog.Logger
}

func NewCollectionScraper(cfg *config.Config, logger zerolog.Logger) *CollectionScraper {
	return &CollectionScraper{url: cfg.Site.CollectionURL, logger: logger}
}

func (s *CollectionScraper) ScrapeCollection(ctx context.Context) ([]domain.CardRow, error) {
	browserCtx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, constants.BrowserTimeout)
	defer cancelTimeout()

	s.logger.Info().Str("url", s.url).Msg("scraping collection page")

	var rows []domain.CardRow
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(s.url),
		chromedp.WaitVisible(".collection-grid", chromedp.ByQuery),
		chromedp.Evaluate(collectionRowsJS, &rows),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scrape collection: %w", err)
	}

	s.logger.Info().Int("rows", len(rows)).Msg("collection scraped")
	return rows, nil
}
