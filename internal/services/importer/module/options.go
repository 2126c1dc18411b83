package module

import (
	"time"

	"shopfeed/internal/platform/config"
)

// Options holds configuration options for the importer service
type Options struct {
	ScaleFactor   int
	LookupTimeout time.Duration
	FindTimeout   time.Duration
	FetchTimeout  time.Duration

	// Browser integration
	ChromeURL string

	// Push integration; empty endpoint disables dispatch
	NotifyEndpoint string
	NotifyKey      string
}

// FromConfig reads the importer options from config with CORE_IMPORT_ prefix
func FromConfig(cfg config.Conf) Options {
	imp := cfg.Prefix("CORE_IMPORT_")
	return Options{
		ScaleFactor:    imp.MayInt("SCALE_FACTOR", 7),
		LookupTimeout:  imp.MayDuration("LOOKUP_TIMEOUT", 45*time.Second),
		FindTimeout:    imp.MayDuration("FIND_TIMEOUT", 5*time.Second),
		FetchTimeout:   imp.MayDuration("FETCH_TIMEOUT", 15*time.Second),
		ChromeURL:      imp.MayString("CHROME_URL", ""),
		NotifyEndpoint: imp.MayString("NOTIFY_ENDPOINT", ""),
		NotifyKey:      imp.MayString("NOTIFY_KEY", ""),
	}
}
