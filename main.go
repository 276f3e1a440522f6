package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"blogapi/app/config"
	"blogapi/app/logger"
	"blogapi/service"

	"github.com/joho/godotenv"
)

const CliVersion = "1.0.0"

var stdout io.Writer = os.Stdout

func main() {
	os.Exit(run(os.Args[1:]))
}

// run dispatches a command line and returns the process exit code.
func run(args []string) int {
	if len(args) < 1 {
		printHelp()
		return 1
	}

	cmd := strings.ToLower(args[0])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Fprintf(stdout, "blogapi version %s\n", CliVersion)
	case "serve", "seed", "clean", "backup", "restore":
		// A missing .env is fine, the environment may already be set.
		_ = godotenv.Load()

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(stdout, "Error: %v\n", err)
			return 1
		}
		log := logger.Init(cfg.App.Environment, cfg.App.LogLevel)

		return service.HandleCommand(cfg, log, append([]string{cmd}, args[1:]...))
	default:
		fmt.Fprintf(stdout, "Unknown command: %s\n\n", args[0])
		printHelp()
		return 1
	}
	return 0
}

func printHelp() {
	helpText := `Usage: blogapi <command> [options]
Commands:
  help                Display this help message.
  version             Show version information.
  serve               Run the blog post API (configured through the environment or .env).
  seed [count]        Insert fake posts into the configured store (default 10).
  clean [-y]          Drop every post from the configured store.
  backup [file]       Write a backup of the badger database.
  restore <file>      Load a badger backup into the database.
`
	fmt.Fprintln(stdout, helpText)
}
