package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"blogapi/app/config"
	"blogapi/app/fixtures"
	"blogapi/app/repositories"
	"blogapi/app/services"

	"github.com/rs/zerolog"
)

const defaultSeedCount = 10

// HandleCommand runs a store or server subcommand and returns an exit code.
func HandleCommand(cfg *config.Config, logger zerolog.Logger, args []string) int {
	if len(args) < 1 {
		printHelp()
		return 1
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "serve":
		if err := RunAppServer(cfg, logger); err != nil {
			logger.Error().Err(err).Msg("server error")
			return 1
		}
		return 0
	case "seed":
		return seed(cfg, logger, rest)
	case "clean":
		return clean(cfg, rest)
	case "backup":
		return backup(cfg, rest)
	case "restore":
		if len(rest) < 1 {
			fmt.Fprintln(stdout, "Error: backup file path required for restore")
			return 1
		}
		return restore(cfg, rest[0])
	case "help":
		printHelp()
		return 0
	default:
		fmt.Fprintf(stdout, "Unknown command: %s\n\n", cmd)
		printHelp()
		return 1
	}
}

// printHelp prints help for the store and server subcommands.
func printHelp() {
	helpText := `Usage: blogapi <command> [options]

Commands:
  serve                 Run the blog post API
  seed [count]          Insert fake posts (default 10)
  clean [-y]            Drop every post
  backup [file]         Write a backup of the badger database
  restore <file>        Load a badger backup into the database
  version               Show version information
  help                  Display this help message
`
	fmt.Fprintln(stdout, helpText)
}

func withStore(cfg *config.Config, fn func(ctx context.Context, store repositories.Store) int) int {
	ctx := context.Background()
	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		fmt.Fprintf(stdout, "Failed to open store: %v\n", err)
		return 1
	}
	defer store.Close()
	return fn(ctx, store)
}

// seed creates fake posts in one batch through the post service.
func seed(cfg *config.Config, logger zerolog.Logger, args []string) int {
	n := defaultSeedCount
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			fmt.Fprintf(stdout, "Error: invalid seed count %q\n", args[0])
			return 1
		}
		n = v
	}

	return withStore(cfg, func(ctx context.Context, store repositories.Store) int {
		svc := services.NewPostService(store, logger)
		posts, err := fixtures.Seed(ctx, svc, fixtures.NewGenerator(0), n)
		if err != nil {
			fmt.Fprintf(stdout, "Failed to seed posts: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Seeded %d posts\n", len(posts))
		return 0
	})
}

// clean drops every post after confirmation.
func clean(cfg *config.Config, args []string) int {
	if !(len(args) > 0 && args[0] == "-y") &&
		!confirm("Are you sure you want to drop every post? This cannot be undone.") {
		fmt.Fprintln(stdout, "Operation cancelled")
		return 0
	}

	return withStore(cfg, func(ctx context.Context, store repositories.Store) int {
		if err := fixtures.Teardown(ctx, store); err != nil {
			fmt.Fprintf(stdout, "Failed to clean database: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, "Database cleaned successfully")
		return 0
	})
}

// badgerOnly opens the configured store and hands it over when it is badger.
func badgerOnly(cfg *config.Config, fn func(store *repositories.BadgerStore) int) int {
	if cfg.Store.Driver != config.DriverBadger {
		fmt.Fprintf(stdout, "Error: backup and restore need the %s driver (configured: %s)\n", config.DriverBadger, cfg.Store.Driver)
		return 1
	}
	return withStore(cfg, func(_ context.Context, store repositories.Store) int {
		return fn(store.(*repositories.BadgerStore))
	})
}

// backup writes a backup of the database.
func backup(cfg *config.Config, args []string) int {
	backupFile := filepath.Join("data", "backups", fmt.Sprintf("backup_%d.db", time.Now().Unix()))
	if len(args) > 0 {
		backupFile = args[0]
	}

	return badgerOnly(cfg, func(store *repositories.BadgerStore) int {
		if err := os.MkdirAll(filepath.Dir(backupFile), 0755); err != nil {
			fmt.Fprintf(stdout, "Failed to create backup directory: %v\n", err)
			return 1
		}
		f, err := os.Create(backupFile)
		if err != nil {
			fmt.Fprintf(stdout, "Failed to create backup file: %v\n", err)
			return 1
		}
		defer f.Close()

		if err := store.Backup(f); err != nil {
			fmt.Fprintf(stdout, "Failed to backup database: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Database backed up successfully to %s\n", backupFile)
		return 0
	})
}

// restore loads a backup into the database.
func restore(cfg *config.Config, backupFile string) int {
	fi, err := os.Stat(backupFile)
	if err != nil {
		fmt.Fprintf(stdout, "Backup file does not exist: %s\n", backupFile)
		return 1
	}
	if fi.Size() == 0 {
		fmt.Fprintf(stdout, "Backup file is empty: %s\n", backupFile)
		return 1
	}

	return badgerOnly(cfg, func(store *repositories.BadgerStore) int {
		f, err := os.Open(backupFile)
		if err != nil {
			fmt.Fprintf(stdout, "Failed to open backup file: %v\n", err)
			return 1
		}
		defer f.Close()

		if err := store.Restore(f); err != nil {
			fmt.Fprintf(stdout, "Failed to restore database: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, "Database restored successfully")
		return 0
	})
}
