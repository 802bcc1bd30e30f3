package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"till/config"
	"till/internal/domain/entity"
	domainerrors "till/internal/domain/errors"
	"till/internal/domain/repository"
	mockRepo "till/internal/mocks/repository"
	mockSvc "till/internal/mocks/service"
	"till/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// staffServiceFixtures holds all test dependencies for staff service tests.
type staffServiceFixtures struct {
	service   usecase.StaffUsecase
	staffRepo *mockRepo.MockStaffRepository
	hasher    *mockSvc.MockPasswordHasher
	tokens    *mockSvc.MockTokenService
}

func createTestStaffService(t *testing.T) staffServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	staffRepo := mockRepo.NewMockStaffRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokens := mockSvc.NewMockTokenService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	factory.EXPECT().StaffRepo().Return(staffRepo).Maybe()
	txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		}).
		Maybe()

	cfg := &config.Config{Auth: &config.AuthConfig{MinPasswordLength: 8}}
	service := NewStaffService(txManager, hasher, tokens, cfg, logger)

	return staffServiceFixtures{
		service:   service,
		staffRepo: staffRepo,
		hasher:    hasher,
		tokens:    tokens,
	}
}

func TestStaffService_AddStaff_Success(t *testing.T) {
	fx := createTestStaffService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().Hash("correct horse battery").Return("$2a$10$hashed", nil)
	fx.staffRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Staff")).
		RunAndReturn(func(_ context.Context, staff *entity.Staff) error {
			staff.ID = uuid.New()
			return nil
		})

	staff, err := fx.service.AddStaff(ctx, &usecase.AddStaffInput{
		Username: " amara ",
		Password: "correct horse battery",
		Name:     "Amara Osei",
		Role:     entity.RoleCashier,
	})
	require.NoError(t, err)
	assert.Equal(t, "amara", staff.Username)
	assert.Equal(t, "$2a$10$hashed", staff.PasswordHash)
	assert.NotEqual(t, uuid.Nil, staff.ID)
}

func TestStaffService_AddStaff_Validation(t *testing.T) {
	fx := createTestStaffService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input *usecase.AddStaffInput
	}{
		{"missing username", &usecase.AddStaffInput{
			Password: "long enough pw", Name: "Amara Osei", Role: entity.RoleCashier,
		}},
		{"missing name", &usecase.AddStaffInput{
			Username: "amara", Password: "long enough pw", Role: entity.RoleCashier,
		}},
		{"short password", &usecase.AddStaffInput{
			Username: "amara", Password: "short", Name: "Amara Osei", Role: entity.RoleCashier,
		}},
		{"unknown role", &usecase.AddStaffInput{
			Username: "amara", Password: "long enough pw", Name: "Amara Osei", Role: entity.StaffRole("owner"),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.service.AddStaff(ctx, tc.input)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}
}

func TestStaffService_AddStaff_DuplicateUsername(t *testing.T) {
	fx := createTestStaffService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().Hash("long enough pw").Return("$2a$10$hashed", nil)
	fx.staffRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Staff")).
		Return(repository.ErrDuplicateUsername)

	_, err := fx.service.AddStaff(ctx, &usecase.AddStaffInput{
		Username: "amara",
		Password: "long enough pw",
		Name:     "Amara Osei",
		Role:     entity.RoleAdmin,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
}

func TestStaffService_Authenticate_Success(t *testing.T) {
	fx := createTestStaffService(t)
	ctx := context.Background()
	staff := &entity.Staff{
		ID:           uuid.New(),
		Username:     "amara",
		PasswordHash: "$2a$10$hashed",
		Name:         "Amara Osei",
		Role:         entity.RoleAdmin,
	}

	fx.staffRepo.EXPECT().FindByUsername(ctx, "amara").Return(staff, nil)
	fx.hasher.EXPECT().Check("correct horse battery", "$2a$10$hashed").Return(true)
	fx.tokens.EXPECT().GenerateToken(staff.ID, "admin").Return("signed-token", nil)

	output, err := fx.service.Authenticate(ctx, &usecase.LoginInput{
		Username: "amara",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, "signed-token", output.AccessToken)
	assert.Same(t, staff, output.Staff)
}

func TestStaffService_Authenticate_UnknownUsername(t *testing.T) {
	fx := createTestStaffService(t)
	ctx := context.Background()

	fx.staffRepo.EXPECT().FindByUsername(ctx, "nobody").Return(nil, repository.ErrStaffNotFound)

	_, err := fx.service.Authenticate(ctx, &usecase.LoginInput{
		Username: "nobody",
		Password: "whatever password",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestStaffService_Authenticate_WrongPassword(t *testing.T) {
	fx := createTestStaffService(t)
	ctx := context.Background()
	staff := &entity.Staff{
		ID:           uuid.New(),
		Username:     "amara",
		PasswordHash: "$2a$10$hashed",
		Role:         entity.RoleCashier,
	}

	fx.staffRepo.EXPECT().FindByUsername(ctx, "amara").Return(staff, nil)
	fx.hasher.EXPECT().Check("wrong password", "$2a$10$hashed").Return(false)

	_, err := fx.service.Authenticate(ctx, &usecase.LoginInput{
		Username: "amara",
		Password: "wrong password",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}
