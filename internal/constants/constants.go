package constants

import "time"

const (
	SiteRequestTimeout = 10 * time.Second
	BrowserTimeout     = 45 * time.Second
	ScrapeTimeout      = 2 * time.Minute
)

const (
	// ExportFetchConcurrency bounds parallel export-text downloads during a
	// deck refresh.
	ExportFetchConcurrency = 4
)

const (
	ShutdownTimeout = 5 * time.Second
)
