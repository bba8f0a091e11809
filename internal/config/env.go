package config

import "os"

// parseEnv overlays cfg with environment variables. Service credentials use
// their conventional variable names; server settings use the SITECMS_ prefix.
func parseEnv(cfg *Config) {
	setString(&cfg.Addr, os.Getenv("SITECMS_ADDR"))
	setString(&cfg.Backend, os.Getenv("SITECMS_BACKEND"))
	setString(&cfg.DatabaseDSN, os.Getenv("SITECMS_DATABASE_DSN"))
	setString(&cfg.AuthSecret, os.Getenv("SITECMS_AUTH_SECRET"))
	setString(&cfg.LogLevel, os.Getenv("SITECMS_LOG_LEVEL"))
	setString(&cfg.SupabaseURL, os.Getenv("SUPABASE_URL"))
	setString(&cfg.SupabaseAnonKey, os.Getenv("SUPABASE_ANON_KEY"))
	setString(&cfg.GeminiAPIKey, os.Getenv("GEMINI_API_KEY"))
}
