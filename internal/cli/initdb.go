package cli

import (
	"flag"
	"fmt"

	"schulbib/internal/config"
	"schulbib/internal/database"
)

// InitDBCommand rebuilds the database from scratch: all tables are
// dropped, recreated and seeded with the fixed demo rows. Existing data
// is lost.
type InitDBCommand struct {
	fs     *flag.FlagSet
	dbPath string
}

// NewInitDBCommand creates the init-db command.
func NewInitDBCommand() *InitDBCommand {
	cmd := &InitDBCommand{
		fs: flag.NewFlagSet("init-db", flag.ContinueOnError),
	}
	cmd.fs.StringVar(&cmd.dbPath, "db", config.DefaultDatabasePath, "Path to the SQLite database")
	return cmd
}

// ParseFlags parses command-line flags.
func (cmd *InitDBCommand) ParseFlags(args []string) error {
	return cmd.fs.Parse(args)
}

// Run drops, recreates and seeds the database.
func (cmd *InitDBCommand) Run() error {
	db, err := database.NewDatabase(cmd.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Reset(); err != nil {
		return err
	}
	if err := db.Seed(); err != nil {
		return err
	}

	fmt.Printf("Database %s rebuilt and seeded.\n", cmd.dbPath)
	return nil
}
