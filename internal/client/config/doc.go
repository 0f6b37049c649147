// Package config loads runtime configuration for the supply-chain CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables, optionally seeded from a .env file (see parseEnv).
//     The file is ./.env unless -e or -env names another one; variables
//     already set in the environment win over the file.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend API
//	-s string   path of the local session store
//	-store kind sqlite or memory
//	-t int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-l string   log level
//
// Environment
//
//	SCM_API_URL, SCM_STORE, SCM_STORE_PATH, SCM_REQUEST_TIMEOUT, SCM_LOG_LEVEL
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be either strings like "3s"
// or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:5000",
//	  "store": "sqlite",
//	  "store_path": "scmclient.db",
//	  "request_timeout": "30s",
//	  "online_check_interval": "3s",
//	  "log_level": "info"
//	}
package config
