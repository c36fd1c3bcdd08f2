// Package store persists scrape results as flat JSON snapshots. There is no
// database: decks and the collection each live in a single file under the
// configured data directory, and the file contents double as the dashboard's
// wire format.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"riftbound-tracker/internal/config"
	"riftbound-tracker/internal/domain"
)

const (
	decksFile      = "decks.json"
	collectionFile = "collection.json"
)

// ErrNoSnapshot reports a snapshot that has not been written yet.
var ErrNoSnapshot = errors.New("store: snapshot not found")

type Store struct {
	dir    string
	logger zerolog.Logger
}

func New(cfg *config.Config, logger zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	logger.Info().Str("dir", cfg.Data.Dir).Msg("snapshot store ready")
	return &Store{dir: cfg.Data.Dir, logger: logger}, nil
}

func (s *Store) SaveDecks(snapshot *domain.DeckSnapshot) error {
	if err := s.write(decksFile, snapshot); err != nil {
		return err
	}
	s.logger.Info().Int("decks", len(snapshot.Decks)).Msg("deck snapshot saved")
	return nil
}

func (s *Store) LoadDecks() (*domain.DeckSnapshot, error) {
	var snapshot domain.DeckSnapshot
	if err := s.read(decksFile, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (s *Store) SaveCollection(snapshot *domain.CollectionSnapshot) error {
	if err := s.write(collectionFile, snapshot); err != nil {
		return err
	}
	s.logger.Info().
		Str("user", snapshot.User).
		Int("rows", len(snapshot.Cards)).
		Int("names", len(snapshot.Counts)).
		Msg("collection snapshot saved")
	return nil
}

func (s *Store) LoadCollection() (*domain.CollectionSnapshot, error) {
	var snapshot domain.CollectionSnapshot
	if err := s.read(collectionFile, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// LoadCollectionValue reads the collection file without imposing the typed
// snapshot shape. Hand-authored files may be a plain name -> count mapping
// or a bare record array; shape dispatch belongs to the inventory
// normalizer, not the store.
func (s *Store) LoadCollectionValue() (any, error) {
	var v any
	if err := s.read(collectionFile, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// write marshals v and replaces the named snapshot atomically, so a crash
// mid-write never leaves a truncated file behind.
func (s *Store) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

func (s *Store) read(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNoSnapshot, name)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}
