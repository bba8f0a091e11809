// Package config handles runtime configuration: defaults, JSON file overlay,
// environment overlay, and command-line flags, in that order of precedence
// (later sources win).
package config

import "time"

// Backend selects the remote data service implementation.
const (
	BackendSupabase = "supabase"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config holds runtime settings for the CMS server and the adminctl tool.
//
// Fields:
//   - Addr: HTTP listen address of the CMS server.
//   - Backend: one of supabase, sqlite, postgres.
//   - SupabaseURL / SupabaseAnonKey: project endpoint and anon key
//     (supabase backend only).
//   - DatabaseDSN: sqlite file path or Postgres DSN (sqlite/postgres backends).
//   - AuthSecret: HMAC secret for session tokens minted by the sqldb auth
//     subsystem. Do not ship the default.
//   - AuthTokenTTL: lifetime of minted session tokens.
//   - GeminiAPIKey / GeminiModel: AI copy-generation collaborator settings;
//     an empty key disables generation.
//   - RemoteWriteTimeout: per-write deadline for fire-and-forget persistence.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	Addr               string
	Backend            string
	SupabaseURL        string
	SupabaseAnonKey    string
	DatabaseDSN        string
	AuthSecret         string
	AuthTokenTTL       time.Duration
	GeminiAPIKey       string
	GeminiModel        string
	RemoteWriteTimeout time.Duration
	LogLevel           string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.Backend = BackendSQLite
	c.DatabaseDSN = "data/sitecms.db"
	c.AuthSecret = "dev-only-secret"
	c.AuthTokenTTL = time.Hour
	c.GeminiModel = "gemini-2.5-flash"
	c.RemoteWriteTimeout = 10 * time.Second
	c.LogLevel = "info"
}

// Load constructs a Config, applies defaults, then overlays JSON file values
// (if a -c/-config flag is present), environment variables, and finally
// command-line flags.
func Load() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
