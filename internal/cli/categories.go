package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/mrlokans/quotekeeper/internal/config"
)

// CategoriesCommand lists categories and optionally changes the selection.
type CategoriesCommand struct {
	DatabasePath string
	Select       string

	Out io.Writer
}

func NewCategoriesCommand() *CategoriesCommand {
	return &CategoriesCommand{}
}

func (cmd *CategoriesCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("categories", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the quotes database")
	fs.StringVar(&cmd.Select, "select", "", "Save this category as the default filter")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s categories [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List quote categories. The saved selection is marked with '*'.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *CategoriesCommand) Run() error {
	out := stdoutIfNil(cmd.Out)

	db, store, err := openStore(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	categories := store.Categories()

	if cmd.Select != "" {
		if !slices.Contains(categories, cmd.Select) {
			return fmt.Errorf("unknown category: %s", cmd.Select)
		}
		if err := store.SaveSelectedCategory(cmd.Select); err != nil {
			return err
		}
	}

	selected := store.SelectedCategory()
	for _, category := range categories {
		marker := " "
		if category == selected {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s\n", marker, category)
	}
	return nil
}
