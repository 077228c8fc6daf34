package cli

import (
	"flag"
	"fmt"

	"schulbib/internal/auth"
	"schulbib/internal/config"
	"schulbib/internal/database"
	"schulbib/internal/database/librarians"
)

// CreateLibrarianCommand creates a librarian account out-of-band. The
// web application itself never creates librarians.
type CreateLibrarianCommand struct {
	fs        *flag.FlagSet
	dbPath    string
	login     string
	password  string
	firstName string
	lastName  string
	email     string
}

// NewCreateLibrarianCommand creates the create-librarian command.
func NewCreateLibrarianCommand() *CreateLibrarianCommand {
	cmd := &CreateLibrarianCommand{
		fs: flag.NewFlagSet("create-librarian", flag.ContinueOnError),
	}
	cmd.fs.StringVar(&cmd.dbPath, "db", config.DefaultDatabasePath, "Path to the SQLite database")
	cmd.fs.StringVar(&cmd.login, "login", "", "Unique login name (required)")
	cmd.fs.StringVar(&cmd.password, "password", "", "Password (required, stored as bcrypt hash)")
	cmd.fs.StringVar(&cmd.firstName, "first-name", "", "First name")
	cmd.fs.StringVar(&cmd.lastName, "last-name", "", "Last name")
	cmd.fs.StringVar(&cmd.email, "email", "", "Email address")
	return cmd
}

// ParseFlags parses command-line flags.
func (cmd *CreateLibrarianCommand) ParseFlags(args []string) error {
	return cmd.fs.Parse(args)
}

// Run creates the librarian account.
func (cmd *CreateLibrarianCommand) Run() error {
	db, err := database.NewDatabase(cmd.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	cfg := config.NewConfig()
	service := auth.NewService(librarians.NewRepository(db.DB), cfg.Auth)

	librarian, err := service.CreateLibrarian(cmd.firstName, cmd.lastName, cmd.email, cmd.login, cmd.password)
	if err != nil {
		return err
	}

	fmt.Printf("Created librarian %s (ID %d).\n", librarian.Login, librarian.ID)
	return nil
}
