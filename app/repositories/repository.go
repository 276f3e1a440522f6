package repositories

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore owns a badger database and serves posts from it.
type BadgerStore struct {
	*BadgerPostRepository
	db       *badger.DB
	dbPath   string
	isTestDB bool
}

// BadgerOptions configures OpenBadger.
type BadgerOptions struct {
	Path     string
	InMemory bool
}

// OpenBadger opens the database described by opts. An empty path (or "test_db")
// without InMemory opens a throwaway database in a temp directory that Close removes.
func OpenBadger(opts BadgerOptions) (*BadgerStore, error) {
	path := opts.Path
	isTest := false
	if !opts.InMemory && (path == "" || path == "test_db") {
		tempPath, err := os.MkdirTemp("", "blogapi_test_db_")
		if err != nil {
			return nil, fmt.Errorf("error creating temp dir: %w", err)
		}
		path = tempPath
		isTest = true
	}

	bopts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}
	if isTest {
		bopts = bopts.WithSyncWrites(false).WithNumGoroutines(1)
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", path, err)
	}

	return &BadgerStore{
		BadgerPostRepository: NewBadgerPostRepository(db),
		db:                   db,
		dbPath:               path,
		isTestDB:             isTest,
	}, nil
}

// Ping reports whether the database is still open.
func (s *BadgerStore) Ping(_ context.Context) error {
	if s.db.IsClosed() {
		return errors.New("badger database is closed")
	}
	return nil
}

// Backup writes a full backup of the database to w.
func (s *BadgerStore) Backup(w io.Writer) error {
	_, err := s.db.Backup(w, 0)
	return err
}

// Restore loads a backup produced by Backup.
func (s *BadgerStore) Restore(r io.Reader) error {
	return s.db.Load(r, 16)
}

func (s *BadgerStore) Close() error {
	if err := s.db.Close(); err != nil {
		return err
	}

	// Clean up test database
	if s.isTestDB {
		if err := os.RemoveAll(s.dbPath); err != nil {
			return fmt.Errorf("failed to cleanup test database: %w", err)
		}
	}
	return nil
}
