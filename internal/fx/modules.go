package fx

import (
	"riftbound-tracker/internal/config"
	"riftbound-tracker/internal/logger"
	"riftbound-tracker/internal/scraper"
	"riftbound-tracker/internal/server"
	"riftbound-tracker/internal/service"
	"riftbound-tracker/internal/store"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	// config.Load bootstraps on the default logger; everything after it
	// logs at the configured level.
	fx.Decorate(func(cfg *config.Config, _ zerolog.Logger) zerolog.Logger {
		return logger.WithLevel(cfg.Log.Level)
	}),
	fx.Provide(store.New),
	// scrapers
	fx.Provide(scraper.NewSiteClient),
	fx.Provide(scraper.NewCollectionScraper),
	// svc
	fx.Provide(service.NewDeckService),
	fx.Provide(service.NewCollectionService),
	fx.Provide(service.NewComparisonService),
	// server
	fx.Provide(server.NewDashboardServer),
)
