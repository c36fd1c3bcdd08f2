package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"riftbound-tracker/internal/config"
	"riftbound-tracker/internal/logger"
	"riftbound-tracker/internal/scraper"
	"riftbound-tracker/internal/service"
	"riftbound-tracker/internal/store"
)

var (
	scrapeDecksOnly      *bool
	scrapeCollectionOnly *bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape the deck site and refresh the local snapshots.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.New()

		cfg, err := config.Load(log)
		if err != nil {
			return err
		}
		log = logger.WithLevel(cfg.Log.Level)

		st, err := store.New(cfg, log)
		if err != nil {
			return err
		}

		ctx := cmd.Context()

		if !*scrapeCollectionOnly {
			decks := service.NewDeckService(scraper.NewSiteClient(cfg, log), st, log)
			snapshot, err := decks.RefreshDecks(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("scraped %d decks\n", len(snapshot.Decks))
		}

		if !*scrapeDecksOnly {
			collection := service.NewCollectionService(scraper.NewCollectionScraper(cfg, log), st, cfg, log)
			snapshot, err := collection.RefreshCollection(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("scraped %d collection rows (%d distinct cards)\n", len(snapshot.Cards), len(snapshot.Counts))
		}

		return nil
	},
}

func init() {
	scrapeDecksOnly = scrapeCmd.Flags().Bool("decks-only", false, "Only refresh the deck snapshot.")
	scrapeCollectionOnly = scrapeCmd.Flags().Bool("collection-only", false, "Only refresh the collection snapshot.")
	scrapeCmd.MarkFlagsMutuallyExclusive("decks-only", "collection-only")
	rootCmd.AddCommand(scrapeCmd)
}
