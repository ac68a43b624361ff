package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/quotekeeper/internal/config"
	"github.com/mrlokans/quotekeeper/internal/quotes"
)

// ShowCommand prints one random quote.
type ShowCommand struct {
	DatabasePath string
	Category     string

	Out io.Writer
}

func NewShowCommand() *ShowCommand {
	return &ShowCommand{}
}

func (cmd *ShowCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the quotes database")
	fs.StringVar(&cmd.Category, "category", "", "Only pick from this category (default: the saved selection)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s show [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print a random quote.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *ShowCommand) Run() error {
	out := stdoutIfNil(cmd.Out)

	db, store, err := openStore(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	category := cmd.Category
	if category == "" {
		category = store.SelectedCategory()
	}

	quote, ok := store.PickQuote(quotes.NewMemoryStore(), category)
	if !ok {
		fmt.Fprintf(out, "No quotes available in category %q\n", category)
		return nil
	}

	fmt.Fprintf(out, "%q\n  (%s)\n", quote.Text, quote.Category)
	return nil
}
