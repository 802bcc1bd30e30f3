package impl

import (
	"context"
	"log/slog"
	"strings"

	"till/config"
	"till/internal/domain/entity"
	domainerrors "till/internal/domain/errors"
	"till/internal/domain/repository"
	"till/internal/domain/service"
	"till/internal/usecase"

	"github.com/pkg/errors"
)

const defaultMinPasswordLength = 8

// staffService implements the StaffUsecase interface.
type staffService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	tokens    service.TokenService
	cfg       *config.Config
	logger    *slog.Logger
}

// NewStaffService is the constructor for staffService.
func NewStaffService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	tokens service.TokenService,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.StaffUsecase {
	return &staffService{
		txManager: txManager,
		hasher:    hasher,
		tokens:    tokens,
		cfg:       cfg,
		logger:    logger,
	}
}

// AddStaff validates and creates an operator account with a bcrypt-hashed
// password.
func (srv *staffService) AddStaff(ctx context.Context, input *usecase.AddStaffInput) (*entity.Staff, error) {
	if strings.TrimSpace(input.Username) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("username is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name is required")
	}
	if len(input.Password) < srv.minPasswordLength() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("password is too short")
	}
	if !input.Role.Valid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("role must be admin or cashier")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	staff := &entity.Staff{
		Username:     strings.TrimSpace(input.Username),
		PasswordHash: hash,
		Name:         strings.TrimSpace(input.Name),
		Email:        input.Email,
		Phone:        input.Phone,
		Role:         input.Role,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.StaffRepo().Create(ctx, staff); err != nil {
			if errors.Is(err, repository.ErrDuplicateUsername) {
				return domainerrors.ErrUsernameTaken.WithDetails("username " + staff.Username)
			}

			return errors.Wrap(err, "failed to create staff")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to add staff")
	}
	srv.logger.Info("Staff account created", "staffID", staff.ID, "role", staff.Role)

	return staff, nil
}

// Authenticate verifies credentials and issues an access token. Unknown
// usernames and wrong passwords report the same error so login responses
// do not leak which usernames exist.
func (srv *staffService) Authenticate(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	var staff *entity.Staff

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.StaffRepo().FindByUsername(ctx, input.Username)
		if err != nil {
			if errors.Is(err, repository.ErrStaffNotFound) {
				return domainerrors.ErrInvalidCredentials
			}

			return errors.Wrap(err, "failed to find staff")
		}
		staff = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to authenticate")
	}

	if !srv.hasher.Check(input.Password, staff.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := srv.tokens.GenerateToken(staff.ID, string(staff.Role))
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}
	srv.logger.Debug("Staff authenticated", "staffID", staff.ID)

	return &usecase.LoginOutput{
		AccessToken: token,
		Staff:       staff,
	}, nil
}

func (srv *staffService) minPasswordLength() int {
	if srv.cfg != nil && srv.cfg.Auth != nil && srv.cfg.Auth.MinPasswordLength > 0 {
		return srv.cfg.Auth.MinPasswordLength
	}

	return defaultMinPasswordLength
}
