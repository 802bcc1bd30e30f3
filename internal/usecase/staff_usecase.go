package usecase

import (
	"context"

	"till/internal/domain/entity"
)

// StaffUsecase covers operator accounts: creation (admin only at the API
// layer) and credential verification for login.
type StaffUsecase interface {
	AddStaff(ctx context.Context, input *AddStaffInput) (*entity.Staff, error)
	Authenticate(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}

// AddStaffInput defines the data required to create a staff account.
type AddStaffInput struct {
	Username string           `json:"username"`
	Password string           `json:"password"`
	Name     string           `json:"name"`
	Email    string           `json:"email,omitempty"`
	Phone    string           `json:"phone,omitempty"`
	Role     entity.StaffRole `json:"role"`
}

// LoginInput defines the credentials for a login attempt.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginOutput carries the issued access token and the authenticated staff member.
type LoginOutput struct {
	AccessToken string        `json:"access_token"`
	Staff       *entity.Staff `json:"staff"`
}
