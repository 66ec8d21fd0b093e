// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"kakilima/internal/delivery/http/middleware"
	"kakilima/internal/delivery/http/router/handler"
	"kakilima/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	VendorHandler  *handler.VendorHandler
	OrderHandler   *handler.OrderHandler
	ReviewHandler  *handler.ReviewHandler
	DeviceHandler  *handler.DeviceHandler
	AdminHandler   *handler.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	vendorHandler  *handler.VendorHandler
	orderHandler   *handler.OrderHandler
	reviewHandler  *handler.ReviewHandler
	deviceHandler  *handler.DeviceHandler
	adminHandler   *handler.AdminHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		vendorHandler:  params.VendorHandler,
		orderHandler:   params.OrderHandler,
		reviewHandler:  params.ReviewHandler,
		deviceHandler:  params.DeviceHandler,
		adminHandler:   params.AdminHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register/buyer", r.userHandler.RegisterBuyer)
		authGroup.POST("/register/vendor", r.userHandler.RegisterVendor)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/refresh", r.userHandler.RefreshToken)
	}

	// Public vendor reads: the stall page, the map query, reviews, the QR.
	vendorGroup := e.Group("/vendors")
	{
		vendorGroup.GET("/nearby", r.vendorHandler.NearbyVendors)
		vendorGroup.GET("/:id", r.vendorHandler.GetVendor)
		vendorGroup.GET("/:id/qr", r.vendorHandler.StallQR)
		vendorGroup.GET("/:id/reviews", r.reviewHandler.ListVendorReviews)
		vendorGroup.GET("/:id/rating", r.reviewHandler.VendorRating)
	}

	// Routes for the authenticated user's own account.
	meGroup := e.Group("/me")
	meGroup.Use(r.authMiddleware.Authenticate)
	{
		meGroup.GET("/profile", r.userHandler.GetProfile)
		meGroup.PATCH("/profile", r.userHandler.UpdateProfile)
		meGroup.POST("/devices", r.deviceHandler.RegisterDevice)
		meGroup.GET("/favorites", r.reviewHandler.ListFavorites)
		meGroup.POST("/favorites/:vendorID", r.reviewHandler.AddFavorite)
		meGroup.DELETE("/favorites/:vendorID", r.reviewHandler.RemoveFavorite)
	}

	// Vendor-side stall management, restricted to the "vendor" role.
	stallGroup := e.Group("/vendor")
	stallGroup.Use(r.authMiddleware.Authenticate)
	stallGroup.Use(r.authMiddleware.RequireRole(entity.RoleVendor.String()))
	{
		stallGroup.GET("", r.vendorHandler.GetOwnVendor)
		stallGroup.PATCH("", r.vendorHandler.UpdateVendor)
		stallGroup.PUT("/status", r.vendorHandler.SetStatus)
		stallGroup.POST("/menu", r.vendorHandler.UpsertMenuItem)
		stallGroup.DELETE("/menu/:itemID", r.vendorHandler.DeleteMenuItem)
		stallGroup.GET("/orders", r.orderHandler.ListVendorOrders)
	}

	// Order routes for buyers and vendors.
	orderGroup := e.Group("/orders")
	orderGroup.Use(r.authMiddleware.Authenticate)
	{
		orderGroup.POST("", r.orderHandler.PlaceOrder)
		orderGroup.GET("", r.orderHandler.ListBuyerOrders)
		orderGroup.GET("/:id", r.orderHandler.GetOrder)
		orderGroup.PUT("/:id/status", r.orderHandler.UpdateStatus)
	}

	// Review submission requires a logged-in buyer.
	reviewGroup := e.Group("/reviews")
	reviewGroup.Use(r.authMiddleware.Authenticate)
	{
		reviewGroup.POST("", r.reviewHandler.SubmitReview)
	}

	// Moderation and analytics, restricted to the "admin" role.
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin.String()))
	{
		adminGroup.GET("/users", r.adminHandler.ListUsers)
		adminGroup.PUT("/users/:id/active", r.adminHandler.SetUserActive)
		adminGroup.GET("/vendors", r.adminHandler.ListVendors)
		adminGroup.PUT("/vendors/:id/suspended", r.adminHandler.SetVendorSuspended)
		adminGroup.GET("/stats/orders", r.adminHandler.DailyOrderStats)
		adminGroup.GET("/stats/trend", r.adminHandler.OrderTrend)
		adminGroup.GET("/map/heatmap", r.adminHandler.Heatmap)
		adminGroup.GET("/map/clusters", r.adminHandler.Clusters)
	}
}
