// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"crm/internal/delivery/http/middleware"
	"crm/internal/delivery/http/router/handler"
	"crm/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler          *handler.AuthHandler
	CustomerHandler      *handler.CustomerHandler
	OrderHandler         *handler.OrderHandler
	ProductHandler       *handler.ProductHandler
	TagHandler           *handler.TagHandler
	CommunicationHandler *handler.CommunicationHandler
	TaskHandler          *handler.TaskHandler
	BulkHandler          *handler.BulkHandler
	AuthMiddleware       *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
//
// Writes require admin or manager (plus sales for orders, tasks and
// communications); deletes require admin; reports require admin or manager.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	auth := r.params.AuthMiddleware
	managers := auth.RequireRole(entity.RoleAdmin, entity.RoleManager)
	writers := auth.RequireRole(entity.RoleAdmin, entity.RoleManager, entity.RoleSales)
	admins := auth.RequireRole(entity.RoleAdmin)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.params.AuthHandler.Register)
		authGroup.POST("/login", r.params.AuthHandler.Login)
		authGroup.GET("/me", r.params.AuthHandler.Me, auth.Authenticate)
		authGroup.POST("/password", r.params.AuthHandler.ChangePassword, auth.Authenticate)
	}

	api := e.Group("/api", auth.Authenticate)

	customers := api.Group("/customers")
	{
		customers.GET("", r.params.CustomerHandler.List)
		customers.GET("/:id", r.params.CustomerHandler.Get)
		customers.POST("", r.params.CustomerHandler.Create, managers)
		customers.PUT("/:id", r.params.CustomerHandler.Update, managers)
		customers.DELETE("/:id", r.params.CustomerHandler.Delete, admins)
		customers.GET("/analytics", r.params.CustomerHandler.Analytics, managers)
		customers.POST("/:id/tags", r.params.CustomerHandler.AddTag, managers)
		customers.GET("/:id/interactions", r.params.CustomerHandler.InteractionHistory)
		customers.GET("/:customerId/purchases/total", r.params.OrderHandler.CustomerTotalPurchases)
		customers.GET("/:customerId/communications/summary", r.params.CommunicationHandler.CustomerSummary)
	}

	orders := api.Group("/orders")
	{
		orders.GET("", r.params.OrderHandler.List)
		orders.GET("/:id", r.params.OrderHandler.Get)
		orders.POST("", r.params.OrderHandler.Create, writers)
		orders.PATCH("/:id/status", r.params.OrderHandler.UpdateStatus, writers)
		orders.DELETE("/:id", r.params.OrderHandler.Delete, admins)
		orders.POST("/query", r.params.OrderHandler.Query)
		orders.GET("/report", r.params.OrderHandler.Report, managers)
	}

	products := api.Group("/products")
	{
		products.GET("", r.params.ProductHandler.List)
		products.GET("/:id", r.params.ProductHandler.Get)
		products.POST("", r.params.ProductHandler.Create, managers)
		products.PUT("/:id", r.params.ProductHandler.Update, managers)
		products.DELETE("/:id", r.params.ProductHandler.Delete, admins)
		products.POST("/:id/tags/:tagId", r.params.ProductHandler.AddTag, managers)
		products.DELETE("/:id/tags/:tagId", r.params.ProductHandler.RemoveTag, managers)
	}

	tags := api.Group("/tags")
	{
		tags.GET("", r.params.TagHandler.List)
		tags.GET("/:id", r.params.TagHandler.Get)
		tags.POST("", r.params.TagHandler.Create, managers)
		tags.PUT("/:id", r.params.TagHandler.Update, managers)
		tags.DELETE("/:id", r.params.TagHandler.Delete, admins)
	}

	communications := api.Group("/communications")
	{
		communications.GET("", r.params.CommunicationHandler.List)
		communications.GET("/:id", r.params.CommunicationHandler.Get)
		communications.POST("", r.params.CommunicationHandler.Create, writers)
		communications.PATCH("/:id/status", r.params.CommunicationHandler.UpdateStatus, writers)
		communications.DELETE("/:id", r.params.CommunicationHandler.Delete, admins)
		communications.POST("/:id/tags/:tagId", r.params.CommunicationHandler.AddTag, writers)
		communications.DELETE("/:id/tags/:tagId", r.params.CommunicationHandler.RemoveTag, writers)
		communications.POST("/follow-ups", r.params.CommunicationHandler.ScheduleFollowUp, writers)
		communications.GET("/report", r.params.CommunicationHandler.Report, managers)
		communications.GET("/effectiveness", r.params.CommunicationHandler.Effectiveness, managers)
	}

	tasks := api.Group("/tasks")
	{
		tasks.GET("", r.params.TaskHandler.List)
		tasks.GET("/:id", r.params.TaskHandler.Get)
		tasks.POST("", r.params.TaskHandler.Create, writers)
		tasks.PUT("/:id", r.params.TaskHandler.Update, writers)
		tasks.DELETE("/:id", r.params.TaskHandler.Delete, admins)
		tasks.GET("/productivity", r.params.TaskHandler.TeamProductivity, managers)
	}

	bulk := api.Group("/bulk")
	{
		bulk.POST("/tags", r.params.BulkHandler.CreateTags, managers)
		bulk.PATCH("/orders/status", r.params.BulkHandler.UpdateOrders, writers)
		bulk.GET("/search", r.params.BulkHandler.SearchByTag)
	}
}
