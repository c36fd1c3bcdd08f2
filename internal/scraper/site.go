// Package scraper holds the external-site collaborators: an HTTP client for
// the deck site's index and export endpoints, and a browser-driven scrape of
// the collection page. Both produce raw inputs for the core packages and
// contain no classification logic of their own.
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"riftbound-tracker/internal/config"
	"riftbound-tracker/internal/constants"
)

// DeckListing is one deck discovered on the site's deck index page.
type DeckListing struct {
	Slug  string
	Label string
	URL   string
}

type SiteClient struct {
	baseURL string
	client  *fasthttp.Client
	logger  zerolog.Logger
}

func NewSiteClient(cfg *config.Config, logger zerolog.Logger) *SiteClient {
	return &SiteClient{
		baseURL: strings.TrimSuffix(cfg.Site.BaseURL, "/"),
		client: &fasthttp.Client{
			MaxConnsPerHost:     16,
			ReadTimeout:         constants.SiteRequestTimeout,
			WriteTimeout:        constants.SiteRequestTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger: logger,
	}
}

// FetchDeckListings scrapes the deck index page. Tiles without a usable link
// are skipped; an index with no tiles at all is an error since it usually
// means the page layout changed.
func (c *SiteClient) FetchDeckListings(ctx context.Context) ([]DeckListing, error) {
	body, err := c.get(ctx, c.baseURL+"/decks")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch deck index: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse deck index: %w", err)
	}

	var listings []DeckListing
	doc.Find("a.deck-tile").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}
		slug := path.Base(href)
		label := strings.TrimSpace(sel.Find(".deck-name").Text())
		if label == "" {
			label = slug
		}
		listings = append(listings, DeckListing{
			Slug:  slug,
			Label: label,
			URL:   c.baseURL + "/decks/" + slug,
		})
	})

	if len(listings) == 0 {
		return nil, fmt.Errorf("deck index yielded no decks")
	}

	c.logger.Debug().Int("count", len(listings)).Msg("deck index scraped")
	return listings, nil
}

// FetchExportText downloads the plain-text export for one deck.
func (c *SiteClient) FetchExportText(ctx context.Context, slug string) (string, error) {
	body, err := c.get(ctx, c.baseURL+"/decks/"+slug+"/export")
	if err != nil {
		return "", fmt.Errorf("failed to fetch export for %q: %w", slug, err)
	}
	return string(body), nil
}

func (c *SiteClient) get(ctx context.Context, url string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := c.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("site returned status %d", resp.StatusCode())
	}

	// Body buffer is reused once the response is released.
	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, nil
}
