package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"riftbound-tracker/internal/config"
	"riftbound-tracker/internal/logger"
	"riftbound-tracker/internal/scraper"
	"riftbound-tracker/internal/service"
	"riftbound-tracker/internal/store"
)

var (
	compareMaxMissing *int
	compareVerbose    *bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare scraped decks against the collection snapshot.",
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

		maxMissing := cfg.Compare.MaxMissing
		if cmd.Flags().Changed("max-missing") {
			maxMissing = *compareMaxMissing
		}
		if maxMissing < 0 {
			return fmt.Errorf("max-missing must be >= 0")
		}

		decks := service.NewDeckService(scraper.NewSiteClient(cfg, log), st, log)
		collection := service.NewCollectionService(scraper.NewCollectionScraper(cfg, log), st, cfg, log)
		comparisons := service.NewComparisonService(decks, collection, log)

		results, err := comparisons.Comparisons(cmd.Context(), maxMissing)
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Deck", "Missing", "Status"})
		for _, result := range results {
			t.AppendRow(table.Row{result.Label, result.TotalMissing, result.Status})
		}
		t.Render()

		if *compareVerbose {
			for _, result := range results {
				if len(result.MissingCards) == 0 {
					continue
				}
				fmt.Printf("\n%s:\n", result.Label)
				for _, card := range result.MissingCards {
					fmt.Printf("  %-9s %s: need %d, have %d, missing %d\n",
						card.Bucket, card.Name, card.Required, card.Owned, card.Missing)
				}
			}
		}

		return nil
	},
}

func init() {
	compareMaxMissing = compareCmd.Flags().Int("max-missing", 4, "Inclusive missing-card tolerance for the close status.")
	compareVerbose = compareCmd.Flags().BoolP("verbose", "v", false, "Print the per-card shortfall for each deck.")
	rootCmd.AddCommand(compareCmd)
}
