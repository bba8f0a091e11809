package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/hanifgold/sitecms/internal/flagx"
)

// jsonConfig is a DTO used only for JSON unmarshalling. Durations are given
// as strings like "10s".
type jsonConfig struct {
	Addr               string `json:"addr"`
	Backend            string `json:"backend"`
	SupabaseURL        string `json:"supabase_url"`
	SupabaseAnonKey    string `json:"supabase_anon_key"`
	DatabaseDSN        string `json:"database_dsn"`
	AuthSecret         string `json:"auth_secret"`
	AuthTokenTTL       string `json:"auth_token_ttl"`
	GeminiAPIKey       string `json:"gemini_api_key"`
	GeminiModel        string `json:"gemini_model"`
	RemoteWriteTimeout string `json:"remote_write_timeout"`
	LogLevel           string `json:"log_level"`
}

// parseJSON overlays cfg with values from the JSON file named by the
// -c/-config flag. Absent file path means no overlay. A present but broken
// file is a startup error and panics, matching the fail-fast policy for
// configuration mistakes.
func parseJSON(cfg *Config) {
	path := flagx.JSONConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("config file: %v", err))
	}
	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(fmt.Sprintf("config file %s: %v", path, err))
	}

	setString(&cfg.Addr, jc.Addr)
	setString(&cfg.Backend, jc.Backend)
	setString(&cfg.SupabaseURL, jc.SupabaseURL)
	setString(&cfg.SupabaseAnonKey, jc.SupabaseAnonKey)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.AuthSecret, jc.AuthSecret)
	setString(&cfg.GeminiAPIKey, jc.GeminiAPIKey)
	setString(&cfg.GeminiModel, jc.GeminiModel)
	setString(&cfg.LogLevel, jc.LogLevel)
	setDuration(&cfg.AuthTokenTTL, jc.AuthTokenTTL)
	setDuration(&cfg.RemoteWriteTimeout, jc.RemoteWriteTimeout)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v string) {
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Sprintf("config duration %q: %v", v, err))
	}
	*dst = d
}
