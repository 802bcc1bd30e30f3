package handler

import (
	"log/slog"
	"net/http"

	"till/internal/delivery/http/response"
	"till/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CustomerHandler holds dependencies for loyalty customer endpoints.
type CustomerHandler struct {
	uc     usecase.LoyaltyUsecase
	logger *slog.Logger
}

// NewCustomerHandler is the constructor for CustomerHandler, injected by Fx.
func NewCustomerHandler(uc usecase.LoyaltyUsecase, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{
		uc:     uc,
		logger: logger,
	}
}

// creditPointsRequest is the request body for a manual point adjustment.
type creditPointsRequest struct {
	Points int `json:"points"`
}

// RegisterCustomer enrols a new loyalty customer.
func (h *CustomerHandler) RegisterCustomer(c echo.Context) error {
	var input *usecase.RegisterCustomerInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid customer input")
	}

	customer, err := h.uc.RegisterCustomer(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, customer, "Customer registered")
}

// GetCustomer returns a loyalty customer with tier and point balance.
func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid customer id")
	}

	customer, err := h.uc.GetCustomer(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, customer, "")
}

// CreditPoints adds points to a customer's balance, applying the VIP
// promotion rule.
func (h *CustomerHandler) CreditPoints(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid customer id")
	}

	var req *creditPointsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid points input")
	}

	customer, err := h.uc.CreditPoints(c.Request().Context(), id, req.Points)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, customer, "Points credited")
}
