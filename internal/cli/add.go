package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/quotekeeper/internal/config"
)

// AddCommand appends a single quote to the collection.
type AddCommand struct {
	DatabasePath string
	Text         string
	Category     string

	Out io.Writer
}

func NewAddCommand() *AddCommand {
	return &AddCommand{}
}

func (cmd *AddCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the quotes database")
	fs.StringVar(&cmd.Text, "text", "", "Quote text (required)")
	fs.StringVar(&cmd.Category, "category", "", "Quote category (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s add -text <text> -category <category> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Add a quote to the collection.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s add -text \"Simplicity is prerequisite for reliability.\" -category Engineering\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *AddCommand) Run() error {
	out := stdoutIfNil(cmd.Out)

	db, store, err := openStore(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	quote, err := store.AddQuote(cmd.Text, cmd.Category)
	if err != nil {
		return fmt.Errorf("failed to add quote: %w", err)
	}

	fmt.Fprintf(out, "Added quote to %q (%d quotes total)\n", quote.Category, store.Len())
	return nil
}
