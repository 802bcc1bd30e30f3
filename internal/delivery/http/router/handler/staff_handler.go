package handler

import (
	"log/slog"
	"net/http"

	"till/internal/delivery/http/response"
	"till/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// StaffHandler holds dependencies for operator account endpoints.
type StaffHandler struct {
	uc     usecase.StaffUsecase
	logger *slog.Logger
}

// NewStaffHandler is the constructor for StaffHandler, injected by Fx.
func NewStaffHandler(uc usecase.StaffUsecase, logger *slog.Logger) *StaffHandler {
	return &StaffHandler{
		uc:     uc,
		logger: logger,
	}
}

// staffResponse strips the password hash from staff payloads.
type staffResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
}

// AddStaff creates an operator account. Admin only.
func (h *StaffHandler) AddStaff(c echo.Context) error {
	var input *usecase.AddStaffInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid staff input")
	}

	staff, err := h.uc.AddStaff(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, staffResponse{
		ID:       staff.ID.String(),
		Username: staff.Username,
		Name:     staff.Name,
		Email:    staff.Email,
		Phone:    staff.Phone,
		Role:     string(staff.Role),
	}, "Staff created")
}

// Login verifies credentials and issues an access token.
func (h *StaffHandler) Login(c echo.Context) error {
	var input *usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	output, err := h.uc.Authenticate(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"access_token": output.AccessToken,
		"staff": staffResponse{
			ID:       output.Staff.ID.String(),
			Username: output.Staff.Username,
			Name:     output.Staff.Name,
			Email:    output.Staff.Email,
			Phone:    output.Staff.Phone,
			Role:     string(output.Staff.Role),
		},
	}, "Login successful")
}
