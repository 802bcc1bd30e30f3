// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"till/internal/delivery/http/middleware"
	"till/internal/delivery/http/response"
	"till/internal/domain/entity"
	"till/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// SaleHandler holds dependencies for the till endpoints.
type SaleHandler struct {
	uc     usecase.SaleUsecase
	logger *slog.Logger
}

// NewSaleHandler is the constructor for SaleHandler, injected by Fx.
func NewSaleHandler(uc usecase.SaleUsecase, logger *slog.Logger) *SaleHandler {
	return &SaleHandler{
		uc:     uc,
		logger: logger,
	}
}

// startSaleRequest is the request body for opening a sale. The cashier is
// taken from the access token, never from the body.
type startSaleRequest struct {
	CustomerID    *uuid.UUID `json:"customer_id,omitempty"`
	PaymentMethod string     `json:"payment_method,omitempty"`
}

// addItemRequest is the request body for adding a cart line.
type addItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// checkoutRequest is the request body for committing the open sale.
type checkoutRequest struct {
	CashTendered decimal.Decimal `json:"cash_tendered"`
}

// StartSale opens a new in-progress sale for the authenticated cashier.
func (h *SaleHandler) StartSale(c echo.Context) error {
	var req *startSaleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid start sale input")
	}

	cashierID, ok := c.Get(middleware.ContextKeyStaffID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Cashier identity missing")
	}

	input := &usecase.StartSaleInput{
		CashierID:     cashierID,
		CustomerID:    req.CustomerID,
		PaymentMethod: entity.PaymentMethod(req.PaymentMethod),
	}

	sale, err := h.uc.StartSale(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, sale, "Sale started")
}

// AddItem adds quantity units of a product to the open cart.
func (h *SaleHandler) AddItem(c echo.Context) error {
	var req *addItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid add item input")
	}

	if err := h.uc.AddItemToCart(c.Request().Context(), req.ProductID, req.Quantity); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, h.uc.CurrentSale(), "Item added")
}

// RemoveItem drops a product's line from the open cart.
func (h *SaleHandler) RemoveItem(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	if err := h.uc.RemoveItemFromCart(c.Request().Context(), productID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, h.uc.CurrentSale(), "Item removed")
}

// Checkout commits the open sale and returns the receipt totals.
func (h *SaleHandler) Checkout(c echo.Context) error {
	var req *checkoutRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout input")
	}

	output, err := h.uc.Checkout(c.Request().Context(), req.CashTendered)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Sale completed")
}

// CancelSale discards the open sale with no side effects.
func (h *SaleHandler) CancelSale(c echo.Context) error {
	h.uc.CancelSale()

	return response.Success(c, http.StatusOK, nil, "Sale cancelled")
}

// CurrentSale returns the open cart, or 404 when none is in progress.
func (h *SaleHandler) CurrentSale(c echo.Context) error {
	sale := h.uc.CurrentSale()
	if sale == nil {
		return response.NotFound(c, "NO_ACTIVE_SALE", "No sale in progress")
	}

	return response.Success(c, http.StatusOK, sale, "")
}

// GetSale returns a committed sale, header plus line items.
func (h *SaleHandler) GetSale(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid sale id")
	}

	record, err := h.uc.GetSale(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}
	if record == nil {
		return response.NotFound(c, "SALE_NOT_FOUND", "Sale not found")
	}

	return response.Success(c, http.StatusOK, record, "")
}

// Refund restores stock for a committed sale and marks it refunded.
func (h *SaleHandler) Refund(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid sale id")
	}

	if err := h.uc.Refund(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Sale refunded")
}
