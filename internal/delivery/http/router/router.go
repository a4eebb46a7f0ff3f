// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"notevault/internal/delivery/http/middleware"
	"notevault/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	NoteHandler    *handler.NoteHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	noteHandler    *handler.NoteHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		noteHandler:    params.NoteHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// User routes; profile requires authentication, logout only
	// acknowledges so it works with or without a token.
	userGroup := api.Group("/users")
	{
		userGroup.POST("/register", r.userHandler.Register)
		userGroup.POST("/login", r.userHandler.Login)
		userGroup.POST("/logout", r.userHandler.Logout)
		userGroup.GET("/profile", r.userHandler.GetProfile, r.authMiddleware.Authenticate)
		userGroup.PUT("/profile", r.userHandler.UpdateProfile, r.authMiddleware.Authenticate)
	}

	// Note routes all require authentication
	noteGroup := api.Group("/notes")
	noteGroup.Use(r.authMiddleware.Authenticate)
	{
		noteGroup.GET("", r.noteHandler.List)
		noteGroup.POST("", r.noteHandler.Create)
		noteGroup.GET("/:id", r.noteHandler.Get)
		noteGroup.PUT("/:id", r.noteHandler.Update)
		noteGroup.DELETE("/:id", r.noteHandler.Delete)
	}
}
