// Command legacy-migrate copies the legacy familienkasse tables into the current
// database and assigns every migrated account to one user.
//
// Usage:
//
//	legacy-migrate [target-user-id]
//
// Without an argument the only registered user is used.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SscSPs/familienkasse/internal/core/domain"
	"github.com/SscSPs/familienkasse/internal/core/services"
	"github.com/SscSPs/familienkasse/internal/platform/config"
	"github.com/SscSPs/familienkasse/internal/platform/database"
	"github.com/SscSPs/familienkasse/internal/platform/logging"
	"github.com/SscSPs/familienkasse/internal/repositories/database/pgsql"
)

const maxListedUsers = 5

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	var target string
	if len(os.Args) > 1 {
		target = os.Args[1]
	}

	if err := run(cfg, target); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, target string) error {
	if cfg.LegacyDatabaseURL == "" {
		return services.ErrLegacySourceNotConfigured
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, slog.Default()); err != nil {
		return err
	}

	repos := pgsql.NewRepositoryProvider(pool)
	if target == "" {
		target, err = soleUserID(ctx, repos.UserRepo)
		if err != nil {
			return err
		}
	}
	if _, err := repos.UserRepo.FindUserByID(ctx, target); err != nil {
		return fmt.Errorf("target user %s: %w", target, err)
	}

	svc := services.NewMigrationService(repos.AccountRepo, repos.TransactionRepo, repos.MigrationLogRepo,
		pgsql.NewLegacySourceOpener(cfg.LegacyDatabaseURL))

	fmt.Printf("Migrating legacy data to user %s\n", target)
	result := svc.RunMigration(ctx, target)

	fmt.Println("Migration summary")
	fmt.Printf("  log id:        %s\n", result.LogID)
	fmt.Printf("  accounts:      %d migrated, %d skipped\n", result.AccountsMigrated, result.AccountsSkipped)
	fmt.Printf("  transactions:  %d migrated, %d skipped\n", result.TransactionsMigrated, result.TransactionsSkipped)
	for _, e := range result.Errors {
		fmt.Printf("  error: %s\n", e)
	}
	if !result.Success {
		return errors.New("migration failed")
	}
	return nil
}

type userLister interface {
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// soleUserID returns the id of the only registered user. With several users it
// lists a few of them so the caller can pass one explicitly.
func soleUserID(ctx context.Context, users userLister) (string, error) {
	list, err := users.FindUsers(ctx, maxListedUsers+1, 0)
	if err != nil {
		return "", fmt.Errorf("failed to list users: %w", err)
	}
	switch len(list) {
	case 0:
		return "", errors.New("no users found; register a user first")
	case 1:
		return list[0].UserID, nil
	}

	fmt.Fprintln(os.Stderr, "Several users exist, pass the target user id as argument:")
	for i, u := range list {
		if i == maxListedUsers {
			fmt.Fprintln(os.Stderr, "  ...")
			break
		}
		fmt.Fprintf(os.Stderr, "  %s  %s <%s>\n", u.UserID, u.Name, u.Email)
	}
	return "", errors.New("target user id required")
}
