package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/dmitrijs2005/scmclient/internal/flagx"
	"github.com/joho/godotenv"
)

const (
	envAPIURL         = "SCM_API_URL"
	envStore          = "SCM_STORE"
	envStorePath      = "SCM_STORE_PATH"
	envRequestTimeout = "SCM_REQUEST_TIMEOUT"
	envLogLevel       = "SCM_LOG_LEVEL"
	envLogFormat      = "SCM_LOG_FORMAT"
)

// parseEnv loads the .env file, if any, into the process environment and
// overlays Config with the SCM_* variables. A missing default ./.env is
// fine; a missing file named with -e is not. It panics on errors.
func parseEnv(cfg *Config) {
	if path := flagx.EnvFileFlag(os.Args[1:]); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	setString(&cfg.APIBaseURL, os.Getenv(envAPIURL))
	setString(&cfg.StoreKind, os.Getenv(envStore))
	setString(&cfg.StorePath, os.Getenv(envStorePath))
	setString(&cfg.LogLevel, os.Getenv(envLogLevel))
	setString(&cfg.LogFormat, os.Getenv(envLogFormat))

	if v := os.Getenv(envRequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
}
