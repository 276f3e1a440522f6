package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"blogapi/app/config"
	"blogapi/app/repositories"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T, f func()) string {
	t.Helper()
	var buf bytes.Buffer
	oldStdout := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = oldStdout })

	f()
	return buf.String()
}

func mockStdin(t *testing.T, input string) {
	t.Helper()
	oldStdin := stdin
	stdin = strings.NewReader(input)
	t.Cleanup(func() { stdin = oldStdin })
}

func setupTestConfig(t *testing.T) *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "blogapi", Environment: "test", Port: "0", LogLevel: "debug"},
		Store: config.StoreConfig{
			Driver:     config.DriverBadger,
			BadgerPath: filepath.Join(t.TempDir(), "badger"),
		},
	}
}

func countPosts(t *testing.T, cfg *config.Config) int {
	t.Helper()
	store, err := repositories.OpenBadger(repositories.BadgerOptions{Path: cfg.Store.BadgerPath})
	require.NoError(t, err)
	defer store.Close()

	posts, err := store.FindAll(context.Background())
	require.NoError(t, err)
	return len(posts)
}

func TestHandleCommand(t *testing.T) {
	cfg := setupTestConfig(t)

	tests := []struct {
		name           string
		args           []string
		expectedOutput string
		expectedExit   int
	}{
		{
			name:           "no arguments",
			args:           []string{},
			expectedOutput: "Usage: blogapi <command>",
			expectedExit:   1,
		},
		{
			name:           "help",
			args:           []string{"help"},
			expectedOutput: "Commands:",
			expectedExit:   0,
		},
		{
			name:           "unknown command",
			args:           []string{"frobnicate"},
			expectedOutput: "Unknown command: frobnicate",
			expectedExit:   1,
		},
		{
			name:           "restore without file",
			args:           []string{"restore"},
			expectedOutput: "Error: backup file path required for restore",
			expectedExit:   1,
		},
		{
			name:           "restore missing file",
			args:           []string{"restore", filepath.Join(t.TempDir(), "nope.db")},
			expectedOutput: "Backup file does not exist",
			expectedExit:   1,
		},
		{
			name:           "seed with bad count",
			args:           []string{"seed", "many"},
			expectedOutput: `invalid seed count "many"`,
			expectedExit:   1,
		},
		{
			name:           "seed",
			args:           []string{"seed", "3"},
			expectedOutput: "Seeded 3 posts",
			expectedExit:   0,
		},
		{
			name:           "clean with flag",
			args:           []string{"clean", "-y"},
			expectedOutput: "Database cleaned successfully",
			expectedExit:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var code int
			output := captureOutput(t, func() {
				code = HandleCommand(cfg, zerolog.Nop(), tt.args)
			})
			assert.Contains(t, output, tt.expectedOutput)
			assert.Equal(t, tt.expectedExit, code)
		})
	}
}

func TestSeedDefaultCount(t *testing.T) {
	cfg := setupTestConfig(t)

	output := captureOutput(t, func() {
		assert.Equal(t, 0, HandleCommand(cfg, zerolog.Nop(), []string{"seed"}))
	})
	assert.Contains(t, output, "Seeded 10 posts")
	assert.Equal(t, 10, countPosts(t, cfg))
}

func TestCleanConfirmation(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		cfg := setupTestConfig(t)
		captureOutput(t, func() { HandleCommand(cfg, zerolog.Nop(), []string{"seed", "2"}) })

		mockStdin(t, "n\n")
		output := captureOutput(t, func() {
			assert.Equal(t, 0, HandleCommand(cfg, zerolog.Nop(), []string{"clean"}))
		})
		assert.Contains(t, output, "Operation cancelled")
		assert.Equal(t, 2, countPosts(t, cfg))
	})

	t.Run("accepted", func(t *testing.T) {
		cfg := setupTestConfig(t)
		captureOutput(t, func() { HandleCommand(cfg, zerolog.Nop(), []string{"seed", "2"}) })

		mockStdin(t, "y\n")
		output := captureOutput(t, func() {
			assert.Equal(t, 0, HandleCommand(cfg, zerolog.Nop(), []string{"clean"}))
		})
		assert.Contains(t, output, "Database cleaned successfully")
		assert.Equal(t, 0, countPosts(t, cfg))
	})
}

func TestBackupAndRestore(t *testing.T) {
	cfg := setupTestConfig(t)
	backupFile := filepath.Join(t.TempDir(), "backups", "posts.db")

	captureOutput(t, func() { HandleCommand(cfg, zerolog.Nop(), []string{"seed", "4"}) })

	output := captureOutput(t, func() {
		assert.Equal(t, 0, HandleCommand(cfg, zerolog.Nop(), []string{"backup", backupFile}))
	})
	assert.Contains(t, output, "Database backed up successfully to "+backupFile)

	fi, err := os.Stat(backupFile)
	require.NoError(t, err)
	assert.Greater(t, fi.Size(), int64(0))

	captureOutput(t, func() { HandleCommand(cfg, zerolog.Nop(), []string{"clean", "-y"}) })
	require.Equal(t, 0, countPosts(t, cfg))

	output = captureOutput(t, func() {
		assert.Equal(t, 0, HandleCommand(cfg, zerolog.Nop(), []string{"restore", backupFile}))
	})
	assert.Contains(t, output, "Database restored successfully")
	assert.Equal(t, 4, countPosts(t, cfg))
}

func TestRestoreEmptyFile(t *testing.T) {
	cfg := setupTestConfig(t)
	empty := filepath.Join(t.TempDir(), "empty.db")
	require.NoError(t, os.WriteFile(empty, nil, 0644))

	output := captureOutput(t, func() {
		assert.Equal(t, 1, HandleCommand(cfg, zerolog.Nop(), []string{"restore", empty}))
	})
	assert.Contains(t, output, "Backup file is empty")
}

func TestBackupNeedsBadger(t *testing.T) {
	cfg := setupTestConfig(t)
	cfg.Store.Driver = config.DriverMongo

	output := captureOutput(t, func() {
		assert.Equal(t, 1, HandleCommand(cfg, zerolog.Nop(), []string{"backup", filepath.Join(t.TempDir(), "b.db")}))
	})
	assert.Contains(t, output, "backup and restore need the badger driver")
}

func TestOpenStoreUnknownDriver(t *testing.T) {
	_, err := openStore(context.Background(), config.StoreConfig{Driver: "sqlite"})
	assert.EqualError(t, err, `unknown store driver "sqlite"`)
}
