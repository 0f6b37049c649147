package config

import "time"

// Store kinds.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config holds runtime settings for the supply-chain CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API.
//   - StoreKind: where the session is kept, StoreSQLite or StoreMemory.
//   - StorePath: SQLite file of the local session store.
//   - RequestTimeout: upper bound of one API request.
//   - OnlineCheckInterval: how often the client checks backend reachability.
//   - LogLevel: debug, info, warn or error.
//   - LogFormat: console (zerolog) or text (slog key=value lines).
type Config struct {
	APIBaseURL          string
	StoreKind           string
	StorePath           string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	LogLevel            string
	LogFormat           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000"
	c.StoreKind = StoreSQLite
	c.StorePath = "scmclient.db"
	c.RequestTimeout = 30 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.LogLevel = "warn"
	c.LogFormat = "console"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment (and .env file) and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
