package database

import (
	"fmt"
	"log"

	"schulbib/internal/entities"
)

// demoBorrowers, demoLibrarians and demoBooks are the fixed demo rows
// installed by the init-db command. The librarian digest is the hex
// SHA-256 of the demo password "admin123".
var (
	demoBorrowers = []entities.Borrower{
		{FirstName: "Phillipp", LastName: "Schlichting", Class: ptr("4ITM"), Email: ptr("phillipp.schlichting@school.at")},
		{FirstName: "Paul", LastName: "Berger", Class: ptr("3ITM"), Email: ptr("paul.berger@school.at")},
	}

	demoLibrarian = entities.Librarian{
		FirstName:    "Max",
		LastName:     "Mustermann",
		Email:        "max.mustermann@school.at",
		Login:        "admin",
		PasswordHash: "240be518fabd2724ddb6f04eeb1da5967448d7e831c08c8fa822809f74c720a9",
	}

	demoBooks = []entities.Book{
		{
			ISBN:            "978-3-12345-000-1",
			Title:           "Elektrotechnik - Grundlagen + E-Book",
			Description:     ptr("Grundlagen der Elektrotechnik für HTL-Schüler:innen."),
			Author:          ptr("Verlag Jugend & Volk GmbH"),
			Publisher:       ptr("Verlag Jugend & Volk GmbH"),
			Category:        ptr("Bildung"),
			Price:           fptr(20.00),
			TotalCopies:     2,
			AvailableCopies: 2,
		},
		{
			ISBN:            "978-3-12345-000-2",
			Title:           "Exel",
			Description:     ptr("Einführung in das wundevolle EXEL."),
			Author:          ptr("Bill Gates"),
			Publisher:       ptr("Microsoft"),
			Category:        ptr("Informationstechnologie"),
			Price:           fptr(49.99),
			TotalCopies:     4,
			AvailableCopies: 4,
		},
		{
			ISBN:            "978-3-12345-000-3",
			Title:           "Mann & Kuh",
			Description:     ptr("Eine Herzzerreisende Geschichte über einen Mann und einer Kuh."),
			Author:          ptr("Julian Bittner"),
			Publisher:       ptr("Fantasy World"),
			Category:        ptr("Wissenschaft"),
			Price:           fptr(30.00),
			TotalCopies:     1,
			AvailableCopies: 1,
		},
	}
)

// Reset drops all application tables (including the session store) and
// recreates them empty. Safe to run repeatedly.
func (d *Database) Reset() error {
	tables := []any{
		&entities.Loan{},
		&entities.Book{},
		&entities.Borrower{},
		&entities.Librarian{},
	}
	for _, table := range tables {
		if err := d.DB.Migrator().DropTable(table); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	if err := d.DB.Exec("DROP TABLE IF EXISTS sessions").Error; err != nil {
		return fmt.Errorf("failed to drop sessions table: %w", err)
	}

	if err := d.DB.AutoMigrate(
		&entities.Borrower{},
		&entities.Librarian{},
		&entities.Book{},
		&entities.Loan{},
	); err != nil {
		return fmt.Errorf("failed to recreate tables: %w", err)
	}
	return nil
}

// Seed installs the fixed demo rows: two borrowers, the admin librarian
// and three fully available books.
func (d *Database) Seed() error {
	for i := range demoBorrowers {
		borrower := demoBorrowers[i]
		if err := d.DB.Create(&borrower).Error; err != nil {
			return fmt.Errorf("failed to seed borrower: %w", err)
		}
	}

	librarian := demoLibrarian
	if err := d.DB.Create(&librarian).Error; err != nil {
		return fmt.Errorf("failed to seed librarian: %w", err)
	}

	for i := range demoBooks {
		book := demoBooks[i]
		if err := d.DB.Create(&book).Error; err != nil {
			return fmt.Errorf("failed to seed book: %w", err)
		}
	}

	log.Printf("Seeded %d borrowers, 1 librarian, %d books", len(demoBorrowers), len(demoBooks))
	return nil
}

func ptr(s string) *string {
	return &s
}

func fptr(f float64) *float64 {
	return &f
}
