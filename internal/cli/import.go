package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/quotekeeper/internal/config"
)

// ImportCommand appends quotes from a JSON file.
type ImportCommand struct {
	DatabasePath string
	FilePath     string

	Out io.Writer
}

func NewImportCommand() *ImportCommand {
	return &ImportCommand{}
}

func (cmd *ImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the quotes database")
	fs.StringVar(&cmd.FilePath, "file", "", "Path to a JSON file with a quote or a list of quotes (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import quotes from JSON. The file holds either one {\"text\", \"category\"}\n")
		fmt.Fprintf(os.Stderr, "object or an array of them. Nothing is imported if any record is invalid.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}
	return nil
}

func (cmd *ImportCommand) Run() error {
	out := stdoutIfNil(cmd.Out)

	payload, err := os.ReadFile(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	db, store, err := openStore(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	added, err := store.ImportQuotes(payload)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", cmd.FilePath, err)
	}

	fmt.Fprintf(out, "Imported %d quotes (%d quotes total)\n", added, store.Len())
	return nil
}
