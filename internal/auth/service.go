package auth

import (
	"errors"
	"fmt"

	"schulbib/internal/config"
	"schulbib/internal/database/librarians"
	"schulbib/internal/entities"
)

// ErrInvalidCredentials is returned for an unknown login name and for a
// wrong password alike. Callers must not distinguish the two cases in
// anything user-visible.
var ErrInvalidCredentials = errors.New("invalid credentials")

var (
	ErrLoginRequired    = errors.New("login name is required")
	ErrPasswordRequired = errors.New("password is required")
)

// Service handles librarian authentication and account creation.
type Service struct {
	librarians *librarians.Repository
	config     config.Auth
}

// NewService creates a new authentication service.
func NewService(repo *librarians.Repository, cfg config.Auth) *Service {
	return &Service{
		librarians: repo,
		config:     cfg,
	}
}

// Authenticate validates credentials and returns the librarian. A missing
// account and a wrong password both collapse into ErrInvalidCredentials.
func (s *Service) Authenticate(login, password string) (*entities.Librarian, error) {
	librarian, err := s.librarians.GetByLogin(login)
	if err != nil {
		if errors.Is(err, librarians.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up librarian: %w", err)
	}

	if err := CheckPassword(password, librarian.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return librarian, nil
}

// CreateLibrarian creates a librarian account with a bcrypt password hash.
// Only reachable from the CLI; the web UI never creates librarians.
func (s *Service) CreateLibrarian(firstName, lastName, email, login, password string) (*entities.Librarian, error) {
	if login == "" {
		return nil, ErrLoginRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	hash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	librarian := &entities.Librarian{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		Login:        login,
		PasswordHash: hash,
	}
	if err := s.librarians.Create(librarian); err != nil {
		return nil, err
	}
	return librarian, nil
}

// GetLibrarianByID resolves a session's librarian ID back to the account.
func (s *Service) GetLibrarianByID(id uint) (*entities.Librarian, error) {
	return s.librarians.GetByID(id)
}
