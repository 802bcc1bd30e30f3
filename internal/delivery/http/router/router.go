// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"till/internal/delivery/http/middleware"
	"till/internal/delivery/http/router/handler"
	"till/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	SaleHandler     *handler.SaleHandler
	CatalogHandler  *handler.CatalogHandler
	CustomerHandler *handler.CustomerHandler
	StaffHandler    *handler.StaffHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	saleHandler     *handler.SaleHandler
	catalogHandler  *handler.CatalogHandler
	customerHandler *handler.CustomerHandler
	staffHandler    *handler.StaffHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		saleHandler:     params.SaleHandler,
		catalogHandler:  params.CatalogHandler,
		customerHandler: params.CustomerHandler,
		staffHandler:    params.StaffHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", r.staffHandler.Login)
	}

	// Staff management requires the admin role
	staffGroup := e.Group("/staff")
	staffGroup.Use(r.authMiddleware.Authenticate)
	staffGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		staffGroup.POST("", r.staffHandler.AddStaff)
	}

	// Catalog routes: reads are open to any operator, writes require admin
	productGroup := e.Group("/products")
	productGroup.Use(r.authMiddleware.Authenticate)
	{
		productGroup.GET("", r.catalogHandler.SearchProducts)
		productGroup.GET("/low-stock", r.catalogHandler.LowStockProducts)
		productGroup.GET("/categories", r.catalogHandler.Categories)
		productGroup.GET("/:id", r.catalogHandler.GetProduct)
		productGroup.POST("", r.catalogHandler.CreateProduct, r.authMiddleware.RequireRole(entity.RoleAdmin))
		productGroup.PATCH("/:id", r.catalogHandler.UpdateProduct, r.authMiddleware.RequireRole(entity.RoleAdmin))
		productGroup.POST("/:id/restock", r.catalogHandler.RestockProduct, r.authMiddleware.RequireRole(entity.RoleAdmin))
	}

	// Loyalty customer routes
	customerGroup := e.Group("/customers")
	customerGroup.Use(r.authMiddleware.Authenticate)
	{
		customerGroup.POST("", r.customerHandler.RegisterCustomer)
		customerGroup.GET("/:id", r.customerHandler.GetCustomer)
		customerGroup.POST("/:id/points", r.customerHandler.CreditPoints)
	}

	// Till routes: the in-progress sale and committed sale records
	saleGroup := e.Group("/sale")
	saleGroup.Use(r.authMiddleware.Authenticate)
	{
		saleGroup.POST("/start", r.saleHandler.StartSale)
		saleGroup.GET("", r.saleHandler.CurrentSale)
		saleGroup.DELETE("", r.saleHandler.CancelSale)
		saleGroup.POST("/items", r.saleHandler.AddItem)
		saleGroup.DELETE("/items/:productId", r.saleHandler.RemoveItem)
		saleGroup.POST("/checkout", r.saleHandler.Checkout)
	}

	salesGroup := e.Group("/sales")
	salesGroup.Use(r.authMiddleware.Authenticate)
	{
		salesGroup.GET("/:id", r.saleHandler.GetSale)
		salesGroup.POST("/:id/refund", r.saleHandler.Refund, r.authMiddleware.RequireRole(entity.RoleAdmin))
	}
}
