package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"blogapi/app/config"
	"blogapi/app/repositories"
)

// Overridable in tests
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
)

const connectTimeout = 10 * time.Second

// openStore opens the store selected by the config.
func openStore(ctx context.Context, cfg config.StoreConfig) (repositories.Store, error) {
	switch cfg.Driver {
	case config.DriverBadger:
		return repositories.OpenBadger(repositories.BadgerOptions{
			Path:     cfg.BadgerPath,
			InMemory: cfg.BadgerInMemory,
		})
	case config.DriverMongo:
		ctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		return repositories.OpenMongo(ctx, repositories.MongoOptions{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		})
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// confirm asks a yes/no question on stdout and reads the answer from stdin.
func confirm(question string) bool {
	fmt.Fprintf(stdout, "%s [y/N] ", question)
	var response string
	fmt.Fscanln(stdin, &response)
	return response == "y" || response == "Y"
}
