package repository

import (
	"context"
	"errors"

	"till/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrStaffNotFound is a domain-specific error returned when a staff member is not found.
var ErrStaffNotFound = errors.New("staff not found")

// ErrDuplicateUsername is returned when creating a staff member whose
// username is already taken.
var ErrDuplicateUsername = errors.New("username already exists")

// StaffRepository persists operator accounts.
type StaffRepository interface {
	// FindByID retrieves a single staff member by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error)

	// FindByUsername retrieves a single staff member by login name.
	FindByUsername(ctx context.Context, username string) (*entity.Staff, error)

	// Create persists a new staff account.
	Create(ctx context.Context, staff *entity.Staff) error
}
