package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hanifgold/sitecms/internal/config"
	"github.com/hanifgold/sitecms/internal/copygen"
	"github.com/hanifgold/sitecms/internal/logging"
	"github.com/hanifgold/sitecms/internal/remote"
	"github.com/hanifgold/sitecms/internal/remote/sqldb"
	"github.com/hanifgold/sitecms/internal/remote/supabase"
	"github.com/hanifgold/sitecms/internal/server"
	"github.com/hanifgold/sitecms/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()
	cfg := config.Load()
	log := logging.NewText(cfg.LogLevel)

	rc, err := buildRemote(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("remote init: %w", err)
	}
	defer rc.Close()

	st := store.New(rc, log)
	st.SetWriteTimeout(cfg.RemoteWriteTimeout)
	st.Start(ctx)
	defer st.Close()

	var gen copygen.Generator
	if cfg.GeminiAPIKey != "" {
		g, err := copygen.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, log)
		if err != nil {
			return fmt.Errorf("copy generator init: %w", err)
		}
		gen = g
	} else {
		log.Info(ctx, "copy generation disabled, no api key configured")
	}

	srv := server.New(cfg.Addr, st, gen, log)
	return srv.Run(ctx)
}

func buildRemote(ctx context.Context, cfg *config.Config, log logging.Logger) (remote.Client, error) {
	switch cfg.Backend {
	case config.BackendSupabase:
		if cfg.SupabaseURL == "" || cfg.SupabaseAnonKey == "" {
			return nil, fmt.Errorf("supabase backend requires url and anon key")
		}
		return supabase.New(cfg.SupabaseURL, cfg.SupabaseAnonKey, log), nil
	case config.BackendSQLite:
		return sqldb.Open(ctx, sqldb.DialectSQLite, cfg.DatabaseDSN, cfg.AuthSecret, cfg.AuthTokenTTL, log)
	case config.BackendPostgres:
		return sqldb.Open(ctx, sqldb.DialectPostgres, cfg.DatabaseDSN, cfg.AuthSecret, cfg.AuthTokenTTL, log)
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
