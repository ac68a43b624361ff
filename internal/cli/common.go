package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mrlokans/quotekeeper/internal/database"
	"github.com/mrlokans/quotekeeper/internal/quotes"
)

// openStore opens the database at dbPath and loads the quote collection.
// The caller must close the returned database.
func openStore(dbPath string) (*database.Database, *quotes.Store, error) {
	absDBPath, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	db, err := database.NewQuietDatabase(absDBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return db, quotes.NewStore(db.Settings()), nil
}

func stdoutIfNil(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
