// Package compare classifies decks against an owned-card inventory.
//
// The engine is pure: it performs no I/O, holds no state, and yields
// identical output for identical input. Callers recompute freely as the
// inventory, deck set, or tolerance changes.
package compare

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"riftbound-tracker/internal/deck"
	"riftbound-tracker/internal/domain"
)

// MissingDataError reports a deck record that carries neither a parsed deck
// nor raw export text, leaving nothing to compare.
type MissingDataError struct {
	Slug string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("compare: deck %q has neither parsed data nor export text", e.Slug)
}

// One compares a single deck record against the inventory. A record without
// parsed data is parsed from its export text first; parse failures propagate
// unchanged. maxMissing is the inclusive "close" tolerance: zero is legal
// and leaves no room between buildable and unbuildable.
func One(rec domain.DeckRecord, inv domain.Inventory, maxMissing int) (domain.DeckComparison, error) {
	parsed := rec.Parsed
	if parsed == nil {
		if rec.ExportText == "" {
			return domain.DeckComparison{}, &MissingDataError{Slug: rec.Slug}
		}
		d, err := deck.Parse(rec.ExportText)
		if err != nil {
			return domain.DeckComparison{}, err
		}
		parsed = d
	}

	result := domain.DeckComparison{
		Slug:  rec.Slug,
		Label: rec.Label,
		URL:   rec.URL,
		Deck:  parsed,
	}

	// Bucket-major, source order within a bucket. Downstream reporting
	// depends on this ordering.
	for _, bucket := range domain.Buckets {
		for _, entry := range parsed.Entries(bucket) {
			owned := inv[entry.Name]
			if owned >= entry.Count {
				continue
			}
			missing := entry.Count - owned
			result.MissingCards = append(result.MissingCards, domain.MissingCard{
				Name:     entry.Name,
				Bucket:   bucket,
				Required: entry.Count,
				Owned:    owned,
				Missing:  missing,
			})
			result.TotalMissing += missing
		}
	}

	result.Status = classify(result.TotalMissing, maxMissing)
	return result, nil
}

// Many compares each deck record independently, preserving input order.
// Comparisons share only the read-only inventory, so they run concurrently;
// any failure aborts the batch rather than silently shrinking the result
// set.
func Many(recs []domain.DeckRecord, inv domain.Inventory, maxMissing int) ([]domain.DeckComparison, error) {
	results := make([]domain.DeckComparison, len(recs))

	g := new(errgroup.Group)
	for i, rec := range recs {
		i, rec := i, rec
		g.Go(func() error {
			result, err := One(rec, inv, maxMissing)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func classify(totalMissing, maxMissing int) domain.Status {
	switch {
	case totalMissing == 0:
		return domain.StatusBuildable
	case totalMissing <= maxMissing:
		return domain.StatusClose
	default:
		return domain.StatusUnbuildable
	}
}
