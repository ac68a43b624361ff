package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mrlokans/quotekeeper/internal/config"
	"github.com/mrlokans/quotekeeper/internal/quotesync"
	"github.com/mrlokans/quotekeeper/internal/remote"
	"github.com/mrlokans/quotekeeper/internal/settingsstore"
)

// SyncCommand runs a single sync round against the remote endpoint.
type SyncCommand struct {
	DatabasePath string
	Endpoint     string
	Limit        int
	Category     string
	Timeout      time.Duration

	Out io.Writer
}

func NewSyncCommand() *SyncCommand {
	return &SyncCommand{}
}

func (cmd *SyncCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the quotes database")
	fs.StringVar(&cmd.Endpoint, "endpoint", remote.DefaultEndpoint, "Remote quote endpoint")
	fs.IntVar(&cmd.Limit, "limit", quotesync.DefaultFetchLimit, "Number of remote quotes to fetch")
	fs.StringVar(&cmd.Category, "category", quotesync.DefaultCategory, "Category assigned to fetched quotes")
	fs.DurationVar(&cmd.Timeout, "timeout", 30*time.Second, "Timeout for the whole sync")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s sync [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Fetch quotes from the remote endpoint, push the local collection,\n")
		fmt.Fprintf(os.Stderr, "and append the fetched quotes locally.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *SyncCommand) Run() error {
	out := stdoutIfNil(cmd.Out)

	db, store, err := openStore(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	client := remote.NewClient(cmd.Endpoint, cmd.Timeout)
	syncer := quotesync.NewSyncer(store, client, settingsstore.New(db.Settings()), quotesync.Config{
		FetchLimit: cmd.Limit,
		Category:   cmd.Category,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cmd.Timeout)
	defer cancel()

	fmt.Fprintf(out, "Syncing with %s\n", client.Endpoint())

	report, err := syncer.Sync(ctx)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	fmt.Fprintf(out, "Fetched %d, merged %d, %d quotes total\n", report.Fetched, report.Merged, report.Total)
	return nil
}
