package cli

import (
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/julianstephens/skilltrack/internal/migration"
	"github.com/julianstephens/skilltrack/internal/storage/postgres"
	"github.com/julianstephens/skilltrack/internal/storage/sqlite"
	"github.com/julianstephens/skilltrack/migrations"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *Context) error {
	db, dialect, err := storeDB(ctx)
	if err != nil {
		return err
	}

	subFS, err := fs.Sub(migrations.FS, dialect)
	if err != nil {
		return fmt.Errorf("failed to access %s migrations: %w", dialect, err)
	}

	count, err := migration.NewRunner(db, subFS).Apply(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}

// storeDB returns the raw connection and migration dialect for the active
// storage backend.
func storeDB(ctx *Context) (*sql.DB, string, error) {
	switch s := ctx.Store.(type) {
	case *sqlite.Store:
		if s.DB() == nil {
			return nil, "", fmt.Errorf("database connection is nil")
		}
		return s.DB(), "sqlite", nil
	case *postgres.Store:
		if s.DB() == nil {
			return nil, "", fmt.Errorf("database connection is nil")
		}
		return s.DB(), "postgres", nil
	default:
		return nil, "", fmt.Errorf("unsupported storage backend")
	}
}
