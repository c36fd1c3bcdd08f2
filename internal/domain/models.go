package domain

import (
	"time"
)

// Bucket is one of the four named card-list partitions of a deck.
type Bucket string

const (
	BucketMain         Bucket = "main"
	BucketBattlefields Bucket = "battlefields"
	BucketRunes        Bucket = "runes"
	BucketSideboard    Bucket = "sideboard"
)

// Buckets lists the buckets in their contract order. Flattened requirement
// lists and missing-card reports follow this order.
var Buckets = []Bucket{BucketMain, BucketBattlefields, BucketRunes, BucketSideboard}

// CardEntry is one line of a deck list.
type CardEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Deck is a parsed deck export: four ordered card lists, one per bucket.
// Every data line of the source text appears in exactly one bucket.
type Deck struct {
	Main         []CardEntry `json:"main"`
	Battlefields []CardEntry `json:"battlefields"`
	Runes        []CardEntry `json:"runes"`
	Sideboard    []CardEntry `json:"sideboard"`
}

// Entries returns the bucket's card list.
func (d *Deck) Entries(b Bucket) []CardEntry {
	switch b {
	case BucketMain:
		return d.Main
	case BucketBattlefields:
		return d.Battlefields
	case BucketRunes:
		return d.Runes
	case BucketSideboard:
		return d.Sideboard
	}
	return nil
}

// Append adds an entry to the named bucket.
func (d *Deck) Append(b Bucket, e CardEntry) {
	switch b {
	case BucketMain:
		d.Main = append(d.Main, e)
	case BucketBattlefields:
		d.Battlefields = append(d.Battlefields, e)
	case BucketRunes:
		d.Runes = append(d.Runes, e)
	case BucketSideboard:
		d.Sideboard = append(d.Sideboard, e)
	}
}

// TotalCards sums entry counts across all four buckets.
func (d *Deck) TotalCards() int {
	total := 0
	for _, b := range Buckets {
		for _, e := range d.Entries(b) {
			total += e.Count
		}
	}
	return total
}

// Inventory maps a card's display name (exact, case-sensitive, trimmed) to
// the owned copy count across all finishes and conditions.
type Inventory map[string]int

// DeckRecord is a persisted deck as written by the scraper: the raw export
// text plus, when parsing succeeded, the structured deck.
type DeckRecord struct {
	Slug       string `json:"slug"`
	Label      string `json:"label"`
	URL        string `json:"url"`
	ExportText string `json:"exportText"`
	Parsed     *Deck  `json:"parsed,omitempty"`
}

// CardRow is one scraped collection row. The same card may appear in several
// rows (one per finish or condition); normalization sums them.
type CardRow struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CollectionSnapshot is the persisted owned-card collection.
type CollectionSnapshot struct {
	User      string         `json:"user"`
	RunID     string         `json:"runId,omitempty"`
	ScrapedAt time.Time      `json:"scrapedAt"`
	Cards     []CardRow      `json:"cards,omitempty"`
	Counts    map[string]int `json:"counts,omitempty"`
}

// DeckSnapshot is the persisted set of scraped decks.
type DeckSnapshot struct {
	ScrapedAt time.Time    `json:"scrapedAt"`
	Decks     []DeckRecord `json:"decks"`
}

// Status classifies a deck against the caller's missing-card tolerance.
type Status string

const (
	StatusBuildable   Status = "buildable"
	StatusClose       Status = "close"
	StatusUnbuildable Status = "unbuildable"
)

// MissingCard is one requirement the inventory cannot fully cover.
type MissingCard struct {
	Name     string `json:"name"`
	Bucket   Bucket `json:"bucket"`
	Required int    `json:"required"`
	Owned    int    `json:"owned"`
	Missing  int    `json:"missing"`
}

// DeckComparison is the comparison engine's output for a single deck.
// MissingCards is ordered bucket-major (main, battlefields, runes, sideboard)
// and by source order within a bucket.
type DeckComparison struct {
	Slug         string        `json:"slug"`
	Label        string        `json:"label"`
	URL          string        `json:"url"`
	Deck         *Deck         `json:"deck"`
	MissingCards []MissingCard `json:"missingCards"`
	TotalMissing int           `json:"totalMissing"`
	Status       Status        `json:"status"`
}
