package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/quotekeeper/internal/config"
)

// ExportCommand writes the collection as indented JSON.
type ExportCommand struct {
	DatabasePath string
	FilePath     string // empty means Out

	Out io.Writer
}

func NewExportCommand() *ExportCommand {
	return &ExportCommand{}
}

func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the quotes database")
	fs.StringVar(&cmd.FilePath, "file", "", "Write to this file instead of standard output")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export all quotes as a JSON array.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *ExportCommand) Run() error {
	out := stdoutIfNil(cmd.Out)

	db, store, err := openStore(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	data, err := store.ExportQuotes()
	if err != nil {
		return err
	}

	if cmd.FilePath == "" {
		_, err := fmt.Fprintln(out, string(data))
		return err
	}

	if err := os.WriteFile(cmd.FilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	fmt.Fprintf(out, "Exported %d quotes to %s\n", store.Len(), cmd.FilePath)
	return nil
}
