package entities

import "time"

// Book is one catalog entry. TotalCopies counts the physical copies the
// library owns, AvailableCopies the ones currently on the shelf; the two
// only drift apart through loans.
type Book struct {
	ID              uint     `gorm:"primaryKey" json:"id"`
	ISBN            string   `gorm:"index;size:20" json:"isbn"`
	Title           string   `gorm:"index;size:512" json:"title"`
	Description     *string  `gorm:"type:text" json:"description,omitempty"`
	Author          *string  `gorm:"index;size:256" json:"author,omitempty"`
	Publisher       *string  `gorm:"size:256" json:"publisher,omitempty"`
	Category        *string  `gorm:"index;size:100" json:"category,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	TotalCopies     int      `json:"total_copies"`
	AvailableCopies int      `json:"available_copies"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Borrower is a registered library user, typically a student.
type Borrower struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	FirstName string  `gorm:"size:100" json:"first_name"`
	LastName  string  `gorm:"index;size:100" json:"last_name"`
	Class     *string `gorm:"index;size:20" json:"class,omitempty"`
	Email     *string `gorm:"size:255" json:"email,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Librarian is a staff account allowed into the admin area.
type Librarian struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	FirstName    string `gorm:"size:100" json:"first_name"`
	LastName     string `gorm:"size:100" json:"last_name"`
	Email        string `gorm:"size:255" json:"email,omitempty"`
	Login        string `gorm:"uniqueIndex;size:100" json:"login"`
	PasswordHash string `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// Loan links a book to a borrower and the librarian who issued it. Dates
// are stored as ISO "YYYY-MM-DD" strings; a NULL return date marks the
// loan as outstanding.
type Loan struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	BookID      uint    `gorm:"index" json:"book_id"`
	BorrowerID  uint    `gorm:"index" json:"borrower_id"`
	LibrarianID uint    `gorm:"index" json:"librarian_id"`
	LoanDate    string  `gorm:"size:10" json:"loan_date"`
	ReturnDate  *string `gorm:"size:10" json:"return_date,omitempty"`

	Book      Book      `gorm:"foreignKey:BookID" json:"-"`
	Borrower  Borrower  `gorm:"foreignKey:BorrowerID" json:"-"`
	Librarian Librarian `gorm:"foreignKey:LibrarianID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// Returned reports whether the loan has been closed.
func (l *Loan) Returned() bool {
	return l.ReturnDate != nil
}
