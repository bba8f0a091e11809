// adminctl manages admin accounts for self-hosted backends. The supabase
// backend keeps its accounts in the hosted project; manage those through
// its dashboard instead.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/hanifgold/sitecms/internal/cli"
	"github.com/hanifgold/sitecms/internal/config"
	"github.com/hanifgold/sitecms/internal/logging"
	"github.com/hanifgold/sitecms/internal/remote/sqldb"
)

const usage = `usage: adminctl <command>

commands:
  signup    create an admin account
  login     verify admin credentials
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]

	ctx := context.Background()
	cfg := config.Load()
	log := logging.NewText("warn")

	var dialect sqldb.Dialect
	switch cfg.Backend {
	case config.BackendSQLite:
		dialect = sqldb.DialectSQLite
	case config.BackendPostgres:
		dialect = sqldb.DialectPostgres
	default:
		return fmt.Errorf("backend %q does not manage accounts locally", cfg.Backend)
	}

	rc, err := sqldb.Open(ctx, dialect, cfg.DatabaseDSN, cfg.AuthSecret, cfg.AuthTokenTTL, log)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer rc.Close()

	reader := bufio.NewReader(os.Stdin)
	email, err := cli.PromptText(reader, "Email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := cli.PromptPassword("Password", os.Stdout)
	if err != nil {
		return err
	}

	switch command {
	case "signup":
		if err := rc.SignUp(ctx, email, password); err != nil {
			return fmt.Errorf("signup failed: %w", err)
		}
		fmt.Println("account created")
	case "login":
		if err := rc.SignInWithPassword(ctx, email, password); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		fmt.Println("credentials ok")
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	return nil
}
