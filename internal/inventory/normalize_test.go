package inventory

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"riftbound-tracker/internal/domain"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestNormalizeRecordsSumsDuplicates(t *testing.T) {
	inv, err := Normalize(decode(t, `[
		{"name":"Card A","count":2},
		{"name":"Card A","count":1},
		{"name":"Card B","count":4}
	]`))
	require.NoError(t, err)
	require.Equal(t, domain.Inventory{"Card A": 3, "Card B": 4}, inv)
}

func TestNormalizeRecordsSkipsBadRows(t *testing.T) {
	inv, err := Normalize(decode(t, `[
		{"count":2},
		{"name":"","count":2},
		{"name":"Card A","count":"oops"},
		{"name":"Card A"},
		{"name":"Card B","count":"3"},
		"not a record"
	]`))
	require.NoError(t, err)
	require.Equal(t, domain.Inventory{"Card B": 3}, inv)
}

func TestNormalizeRecordsCoercion(t *testing.T) {
	inv, err := Normalize(decode(t, `[
		{"name":"Floored","count":2.9},
		{"name":"Clamped","count":-5},
		{"name":"Stringy","count":"7"}
	]`))
	require.NoError(t, err)
	require.Equal(t, domain.Inventory{"Floored": 2, "Clamped": 0, "Stringy": 7}, inv)
}

func TestNormalizeCardsField(t *testing.T) {
	inv, err := Normalize(decode(t, `{
		"user":"someone",
		"cards":[{"name":"Card A","count":1},{"name":"Card A","count":2}]
	}`))
	require.NoError(t, err)
	require.Equal(t, domain.Inventory{"Card A": 3}, inv)
}

func TestNormalizePlainMapping(t *testing.T) {
	inv, err := Normalize(decode(t, `{
		"Acceptable Losses": 2,
		"Fleeting Thought": 2,
		"": 9,
		"Bad": "zzz"
	}`))
	require.NoError(t, err)
	require.Equal(t, domain.Inventory{"Acceptable Losses": 2, "Fleeting Thought": 2}, inv)
}

func TestNormalizeTrimsNames(t *testing.T) {
	// Deck names come out of the parser trimmed; inventory keys must match
	// them exactly, and whitespace-only names are no names at all.
	inv, err := Normalize(decode(t, `{" Card A ": 2, "   ": 9, "Card B": 1}`))
	require.NoError(t, err)
	require.Equal(t, domain.Inventory{"Card A": 2, "Card B": 1}, inv)

	inv, err = Normalize(decode(t, `[
		{"name":"  Card A","count":2},
		{"name":"Card A  ","count":1},
		{"name":"  ","count":5}
	]`))
	require.NoError(t, err)
	require.Equal(t, domain.Inventory{"Card A": 3}, inv)
}

func TestNormalizeIdempotentOnMapping(t *testing.T) {
	once, err := Normalize(decode(t, `{"Card A": 3, "Card B": 1}`))
	require.NoError(t, err)

	// Feed the normalized mapping back through as a decoded JSON value.
	again := make(map[string]any, len(once))
	for name, count := range once {
		again[name] = float64(count)
	}
	twice, err := Normalize(again)
	require.NoError(t, err)
	require.Equal(t, once, twice)
}

func TestNormalizeUnsupportedShapes(t *testing.T) {
	for _, raw := range []string{`"just a string"`, `42`, `true`, `null`} {
		_, err := Normalize(decode(t, raw))
		require.ErrorIs(t, err, ErrUnsupportedFormat, raw)
	}
}

func TestFromRecords(t *testing.T) {
	inv := FromRecords([]domain.CardRow{
		{Name: "Card A", Count: 2},
		{Name: " Card A ", Count: 1},
		{Name: "Card B", Count: -3},
		{Name: "", Count: 5},
		{Name: "   ", Count: 5},
	})
	require.Equal(t, domain.Inventory{"Card A": 3, "Card B": 0}, inv)
}
