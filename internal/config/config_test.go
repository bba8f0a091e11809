package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	old := os.Args
	os.Args = args
	t.Cleanup(func() { os.Args = old })
}

func TestLoadDefaults(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, time.Hour, cfg.AuthTokenTTL)
	assert.Equal(t, 10*time.Second, cfg.RemoteWriteTimeout)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
}

func TestParseJSONOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"addr": ":9090",
		"backend": "supabase",
		"supabase_url": "https://example.supabase.co",
		"auth_token_ttl": "30m"
	}`), 0o600))

	setArgs(t, "test", "-c", path)

	var cfg Config
	cfg.LoadDefaults()
	parseJSON(&cfg)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, BackendSupabase, cfg.Backend)
	assert.Equal(t, "https://example.supabase.co", cfg.SupabaseURL)
	assert.Equal(t, 30*time.Minute, cfg.AuthTokenTTL)
	// untouched fields keep their defaults
	assert.Equal(t, "data/sitecms.db", cfg.DatabaseDSN)
}

func TestParseEnvOverlay(t *testing.T) {
	t.Setenv("SITECMS_ADDR", ":7000")
	t.Setenv("SUPABASE_ANON_KEY", "anon-key")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, "anon-key", cfg.SupabaseAnonKey)
}

func TestParseFlagsOverlay(t *testing.T) {
	setArgs(t, "test", "-a", ":6000", "-b", "postgres", "-unrelated", "x")

	var cfg Config
	cfg.LoadDefaults()
	parseFlags(&cfg)

	assert.Equal(t, ":6000", cfg.Addr)
	assert.Equal(t, BackendPostgres, cfg.Backend)
}
