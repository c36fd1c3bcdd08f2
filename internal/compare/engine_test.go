package compare

import (
	"testing"

	"github.com/stretchr/testify/require"

	"riftbound-tracker/internal/deck"
	"riftbound-tracker/internal/domain"
)

const sampleExport = "3 Acceptable Losses\n2 Fleeting Thought\n\nSideboard:\n1 Acceptable Losses"

func sampleRecord(t *testing.T) domain.DeckRecord {
	t.Helper()
	parsed, err := deck.Parse(sampleExport)
	require.NoError(t, err)
	return domain.DeckRecord{Slug: "sample", Label: "Sample", Parsed: parsed}
}

func TestOneReportsOnlyShortfalls(t *testing.T) {
	inv := domain.Inventory{"Acceptable Losses": 2, "Fleeting Thought": 2}

	result, err := One(sampleRecord(t), inv, 4)
	require.NoError(t, err)

	// The sideboard copy is covered (owned 2 >= required 1), so only the
	// main-deck shortfall appears.
	require.Equal(t, []domain.MissingCard{{
		Name:     "Acceptable Losses",
		Bucket:   domain.BucketMain,
		Required: 3,
		Owned:    2,
		Missing:  1,
	}}, result.MissingCards)
	require.Equal(t, 1, result.TotalMissing)
	require.Equal(t, domain.StatusClose, result.Status)
}

func TestOneBuildableIffNothingMissing(t *testing.T) {
	rec := sampleRecord(t)

	result, err := One(rec, domain.Inventory{"Acceptable Losses": 4, "Fleeting Thought": 2}, 4)
	require.NoError(t, err)
	require.Equal(t, 0, result.TotalMissing)
	require.Equal(t, domain.StatusBuildable, result.Status)
	require.Empty(t, result.MissingCards)

	result, err = One(rec, domain.Inventory{}, 100)
	require.NoError(t, err)
	require.NotZero(t, result.TotalMissing)
	require.NotEqual(t, domain.StatusBuildable, result.Status)
}

func TestOneAbsentCardsDefaultToZeroOwned(t *testing.T) {
	result, err := One(sampleRecord(t), domain.Inventory{}, 10)
	require.NoError(t, err)
	require.Equal(t, 6, result.TotalMissing)
	for _, card := range result.MissingCards {
		require.Zero(t, card.Owned)
		require.Equal(t, card.Required, card.Missing)
	}
}

func TestOneZeroToleranceDegeneratesClose(t *testing.T) {
	result, err := One(sampleRecord(t), domain.Inventory{"Acceptable Losses": 2, "Fleeting Thought": 2}, 0)
	require.NoError(t, err)
	require.Equal(t, 1, result.TotalMissing)
	require.Equal(t, domain.StatusUnbuildable, result.Status)
}

func TestOneRaisingToleranceNeverDemotes(t *testing.T) {
	rank := map[domain.Status]int{
		domain.StatusUnbuildable: 0,
		domain.StatusClose:       1,
		domain.StatusBuildable:   2,
	}

	rec := sampleRecord(t)
	inv := domain.Inventory{"Fleeting Thought": 1}

	prev := -1
	for maxMissing := 0; maxMissing <= 8; maxMissing++ {
		result, err := One(rec, inv, maxMissing)
		require.NoError(t, err)
		require.GreaterOrEqual(t, rank[result.Status], prev)
		prev = rank[result.Status]
	}
}

func TestOneOrderingContract(t *testing.T) {
	parsed, err := deck.Parse(
		"2 Swift Strike\n1 Grand Plaza\n1 Calm Rune\nSideboard\n1 Quick Parry\n1 Rune of Fury")
	require.NoError(t, err)

	result, err := One(domain.DeckRecord{Slug: "order", Parsed: parsed}, domain.Inventory{}, 0)
	require.NoError(t, err)

	// Bucket-major order, source order within a bucket.
	var buckets []domain.Bucket
	var names []string
	for _, card := range result.MissingCards {
		buckets = append(buckets, card.Bucket)
		names = append(names, card.Name)
	}
	require.Equal(t, []domain.Bucket{
		domain.BucketMain,
		domain.BucketBattlefields,
		domain.BucketRunes,
		domain.BucketRunes,
		domain.BucketSideboard,
	}, buckets)
	require.Equal(t, []string{"Swift Strike", "Grand Plaza", "Calm Rune", "Rune of Fury", "Quick Parry"}, names)
}

func TestOneParsesRawExportOnDemand(t *testing.T) {
	rec := domain.DeckRecord{Slug: "raw", ExportText: sampleExport}

	result, err := One(rec, domain.Inventory{"Acceptable Losses": 2, "Fleeting Thought": 2}, 4)
	require.NoError(t, err)
	require.Equal(t, 1, result.TotalMissing)
	require.NotNil(t, result.Deck)
}

func TestOnePropagatesParseError(t *testing.T) {
	_, err := One(domain.DeckRecord{Slug: "bad", ExportText: "Nx Fake"}, domain.Inventory{}, 4)
	var parseErr *deck.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestOneMissingData(t *testing.T) {
	_, err := One(domain.DeckRecord{Slug: "empty"}, domain.Inventory{}, 4)
	var missingErr *MissingDataError
	require.ErrorAs(t, err, &missingErr)
	require.Equal(t, "empty", missingErr.Slug)
}

func TestManyPreservesOrder(t *testing.T) {
	recs := []domain.DeckRecord{
		{Slug: "a", ExportText: "1 Swift Strike"},
		{Slug: "b", ExportText: "2 Quick Parry"},
		{Slug: "c", ExportText: "3 Acceptable Losses"},
	}

	results, err := Many(recs, domain.Inventory{"Quick Parry": 2}, 1)
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.Equal(t, "a", results[0].Slug)
	require.Equal(t, "b", results[1].Slug)
	require.Equal(t, "c", results[2].Slug)
	require.Equal(t, domain.StatusClose, results[0].Status)
	require.Equal(t, domain.StatusBuildable, results[1].Status)
	require.Equal(t, domain.StatusUnbuildable, results[2].Status)
}

func TestManyAbortsOnAnyFailure(t *testing.T) {
	recs := []domain.DeckRecord{
		{Slug: "ok", ExportText: "1 Swift Strike"},
		{Slug: "broken", ExportText: "Nx Fake"},
	}

	results, err := Many(recs, domain.Inventory{}, 4)
	require.Error(t, err)
	require.Nil(t, results)
}

func TestManyIsDeterministic(t *testing.T) {
	recs := []domain.DeckRecord{sampleRecord(t), sampleRecord(t)}
	inv := domain.Inventory{"Acceptable Losses": 1}

	first, err := Many(recs, inv, 4)
	require.NoError(t, err)
	second, err := Many(recs, inv, 4)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
