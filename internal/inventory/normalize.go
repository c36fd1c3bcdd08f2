// Package inventory folds the accepted collection-data shapes into the
// canonical name -> owned-count mapping the comparison engine reads.
package inventory

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"riftbound-tracker/internal/domain"
)

// ErrUnsupportedFormat reports a collection payload whose shape matches none
// of the accepted forms.
var ErrUnsupportedFormat = errors.New("inventory: unsupported collection format")

// Normalize converts a decoded JSON value into an Inventory. Accepted
// shapes, in precedence order:
//
//  1. a sequence of records carrying "name" and "count" fields — counts for
//     repeated names are summed (one row per finish or condition);
//  2. an object whose "cards" field is such a sequence;
//  3. any other plain object, read directly as name -> count.
//
// Names are trimmed so they match the parser's trimmed deck names; counts
// are coerced numerically and floor-clamped to zero. Records without a name,
// and values that are not coercible, are skipped rather than failing the
// whole payload. Output keys are never empty.
func Normalize(source any) (domain.Inventory, error) {
	switch v := source.(type) {
	case []any:
		return fromSequence(v), nil
	case map[string]any:
		if cards, ok := v["cards"].([]any); ok {
			return fromSequence(cards), nil
		}
		return fromMapping(v), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// FromRecords folds typed scraper rows into an Inventory, summing repeated
// names and clamping negative counts to zero.
func FromRecords(rows []domain.CardRow) domain.Inventory {
	inv := make(domain.Inventory, len(rows))
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}
		inv[name] += max(row.Count, 0)
	}
	return inv
}

func fromSequence(items []any) domain.Inventory {
	inv := make(domain.Inventory, len(items))
	for _, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			continue
		}
		rawName, ok := record["name"].(string)
		if !ok {
			continue
		}
		name := strings.TrimSpace(rawName)
		if name == "" {
			continue
		}
		count, ok := coerceCount(record["count"])
		if !ok {
			continue
		}
		inv[name] += count
	}
	return inv
}

func fromMapping(mapping map[string]any) domain.Inventory {
	inv := make(domain.Inventory, len(mapping))
	for rawName, value := range mapping {
		name := strings.TrimSpace(rawName)
		if name == "" {
			continue
		}
		count, ok := coerceCount(value)
		if !ok {
			continue
		}
		inv[name] = count
	}
	return inv
}

// coerceCount converts a decoded JSON value to a non-negative integer count.
// Non-finite and non-numeric values are rejected.
func coerceCount(value any) (int, bool) {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return max(int(math.Floor(f)), 0), true
}
