// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"till/internal/domain/entity"
	domainerrors "till/internal/domain/errors"
	"till/internal/domain/repository"
	"till/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// staffRepository implements the repository.StaffRepository interface.
type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository is the constructor for staffRepository.
func NewStaffRepository(db *gorm.DB) repository.StaffRepository {
	return &staffRepository{
		db: db,
	}
}

// FindByID retrieves a single staff member by their unique ID.
func (repo *staffRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error) {
	var staffM model.StaffModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&staffM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStaffNotFound
		}

		return nil, errors.Wrap(err, "failed to find staff by ID")
	}

	return toStaffDomain(&staffM), nil
}

// FindByUsername retrieves a single staff member by login name.
func (repo *staffRepository) FindByUsername(ctx context.Context, username string) (*entity.Staff, error) {
	var staffM model.StaffModel

	if err := repo.db.WithContext(ctx).
		Where("username = ?", username).
		First(&staffM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStaffNotFound
		}

		return nil, errors.Wrap(err, "failed to find staff by username")
	}

	return toStaffDomain(&staffM), nil
}

// Create persists a new staff account.
func (repo *staffRepository) Create(ctx context.Context, staff *entity.Staff) error {
	staffM := fromStaffDomain(staff)

	if err := repo.db.WithContext(ctx).Create(staffM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateUsername
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create staff")
	}

	// Update the entity with generated values
	staff.ID = staffM.ID
	staff.CreatedAt = staffM.CreatedAt
	staff.UpdatedAt = staffM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

// toStaffDomain converts a GORM StaffModel to a domain Staff entity.
func toStaffDomain(data *model.StaffModel) *entity.Staff {
	if data == nil {
		return nil
	}

	return &entity.Staff{
		ID:           data.ID,
		Username:     data.Username,
		PasswordHash: data.PasswordHash,
		Name:         data.Name,
		Email:        data.Email,
		Phone:        data.Phone,
		Role:         entity.StaffRole(data.Role),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromStaffDomain converts a domain Staff entity to a GORM StaffModel.
func fromStaffDomain(data *entity.Staff) *model.StaffModel {
	if data == nil {
		return nil
	}

	return &model.StaffModel{
		ID:           data.ID,
		Username:     data.Username,
		PasswordHash: data.PasswordHash,
		Name:         data.Name,
		Email:        data.Email,
		Phone:        data.Phone,
		Role:         string(data.Role),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
