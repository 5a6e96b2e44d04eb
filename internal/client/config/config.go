package config

import "time"

// Config holds runtime settings for the decretos CLI.
//
// Units: the intervals are time.Duration values (e.g., 3*time.Second).
type Config struct {
	// RecordsEndpointPA/FL are the per-partition endpoints of the
	// spreadsheet-backed API; EmployeesEndpoint serves the roster.
	RecordsEndpointPA string
	RecordsEndpointFL string
	EmployeesEndpoint string

	// SheetID is sent with every request as the sheetId parameter.
	SheetID string

	// BearerToken authenticates requests; the actor email stamped on sync
	// events is derived from it.
	BearerToken string

	// BackupDSN is the sqlite DSN of the local last-known-good store.
	BackupDSN string

	OnlineCheckInterval time.Duration
	RetryDelay          time.Duration
	DebounceWindow      time.Duration
	RequestTimeout      time.Duration

	// ValidatePush asks the remote to validate rows on push.
	ValidatePush bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackupDSN = "decretos.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.RetryDelay = 30 * time.Second
	c.DebounceWindow = 900 * time.Millisecond
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
