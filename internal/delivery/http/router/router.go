// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"pinboard/internal/delivery/http/middleware"
	"pinboard/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler       *handler.AuthHandler
	PostHandler       *handler.PostHandler
	SessionMiddleware *middleware.SessionMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler       *handler.AuthHandler
	postHandler       *handler.PostHandler
	sessionMiddleware *middleware.SessionMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:       params.AuthHandler,
		postHandler:       params.PostHandler,
		sessionMiddleware: params.SessionMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Every route below sees a resolved session, anonymous or bound.
	e.Use(r.sessionMiddleware.Load)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.POST("/forgot-password", r.authHandler.ForgotPassword)
		authGroup.POST("/change-password", r.authHandler.ChangePassword)
		authGroup.GET("/me", r.authHandler.Me)
	}

	// Post routes; reads are public, mutations require a logged-in user
	postGroup := e.Group("/posts")
	{
		postGroup.GET("", r.postHandler.List)
		postGroup.GET("/:id", r.postHandler.Get)
		postGroup.POST("", r.postHandler.Create, r.sessionMiddleware.RequireUser)
		postGroup.PUT("/:id", r.postHandler.Update, r.sessionMiddleware.RequireUser)
		postGroup.DELETE("/:id", r.postHandler.Delete, r.sessionMiddleware.RequireUser)
	}
}
