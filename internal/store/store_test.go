package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"riftbound-tracker/internal/config"
	"riftbound-tracker/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := &config.Config{Data: config.DataConfig{Dir: t.TempDir()}}
	st, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	return st
}

func TestDeckSnapshotRoundTrip(t *testing.T) {
	st := newTestStore(t)

	parsed := &domain.Deck{
		Main:  []domain.CardEntry{{Name: "Swift Strike", Count: 3}},
		Runes: []domain.CardEntry{{Name: "Calm Rune", Count: 2}},
	}
	saved := &domain.DeckSnapshot{
		ScrapedAt: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
		Decks: []domain.DeckRecord{{
			Slug:       "aggro-jinx",
			Label:      "Aggro Jinx",
			URL:        "https://decks.riftmaster.gg/decks/aggro-jinx",
			ExportText: "3 Swift Strike\n2 Calm Rune",
			Parsed:     parsed,
		}},
	}
	require.NoError(t, st.SaveDecks(saved))

	loaded, err := st.LoadDecks()
	require.NoError(t, err)
	require.Equal(t, saved, loaded)
}

func TestCollectionSnapshotRoundTrip(t *testing.T) {
	st := newTestStore(t)

	saved := &domain.CollectionSnapshot{
		User:      "someone",
		RunID:     "run-1",
		ScrapedAt: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
		Cards:     []domain.CardRow{{Name: "Swift Strike", Count: 2}},
		Counts:    map[string]int{"Swift Strike": 2},
	}
	require.NoError(t, st.SaveCollection(saved))

	loaded, err := st.LoadCollection()
	require.NoError(t, err)
	require.Equal(t, saved, loaded)
}

func TestLoadMissingSnapshots(t *testing.T) {
	st := newTestStore(t)

	_, err := st.LoadDecks()
	require.ErrorIs(t, err, ErrNoSnapshot)

	_, err = st.LoadCollection()
	require.ErrorIs(t, err, ErrNoSnapshot)
}

func TestWriteLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{Data: config.DataConfig{Dir: dir}}
	st, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, st.SaveDecks(&domain.DeckSnapshot{ScrapedAt: time.Now().UTC()}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "decks.json", entries[0].Name())
}

func TestNewCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	cfg := &config.Config{Data: config.DataConfig{Dir: dir}}

	_, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}
