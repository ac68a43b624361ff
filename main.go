package main

import (
	"fmt"
	"os"

	"github.com/mrlokans/quotekeeper/internal/cli"
	"github.com/mrlokans/quotekeeper/internal/config"
	"github.com/mrlokans/quotekeeper/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

// command is implemented by every CLI subcommand.
type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	name := os.Args[1]
	args := os.Args[2:]

	var cmd command
	switch name {
	case "show":
		cmd = cli.NewShowCommand()
	case "add":
		cmd = cli.NewAddCommand()
	case "import":
		cmd = cli.NewImportCommand()
	case "export":
		cmd = cli.NewExportCommand()
	case "categories":
		cmd = cli.NewCategoriesCommand()
	case "sync":
		cmd = cli.NewSyncCommand()

	case "version":
		fmt.Printf("quotekeeper %s (%s)\n", Version, Commit)
		return

	case "-h", "--help", "help":
		printUsage()
		return

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve        Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  show         Print a random quote\n")
	fmt.Fprintf(os.Stderr, "  add          Add a quote\n")
	fmt.Fprintf(os.Stderr, "  import       Import quotes from a JSON file\n")
	fmt.Fprintf(os.Stderr, "  export       Export all quotes as JSON\n")
	fmt.Fprintf(os.Stderr, "  categories   List categories and change the saved selection\n")
	fmt.Fprintf(os.Stderr, "  sync         Run one sync with the remote quote endpoint\n")
	fmt.Fprintf(os.Stderr, "  version      Print version information\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
