// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"picstream/internal/delivery/http/middleware"
	"picstream/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	PostHandler    *handler.PostHandler
	CommentHandler *handler.CommentHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// Router holds all the handlers that need to be registered.
type Router struct {
	userHandler    *handler.UserHandler
	postHandler    *handler.PostHandler
	commentHandler *handler.CommentHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *Router {
	return &Router{
		userHandler:    params.UserHandler,
		postHandler:    params.PostHandler,
		commentHandler: params.CommentHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *Router) RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Root)
	e.GET("/health", handler.HealthCheck)

	// Public routes
	e.POST("/users/register", r.userHandler.Register)
	e.POST("/token", r.userHandler.Login)
	e.GET("/posts", r.postHandler.List)
	e.GET("/posts/:post_id/comments", r.commentHandler.List)

	// Protected routes; the guard rejects unauthenticated calls before any
	// business logic runs.
	auth := r.authMiddleware.Authenticate
	e.POST("/create", r.postHandler.Create, auth)
	e.PUT("/:post_id", r.postHandler.Update, auth)
	e.DELETE("/:post_id", r.postHandler.Delete, auth)
	e.GET("/me", r.postHandler.Mine, auth)
	e.POST("/posts/:post_id/comments", r.commentHandler.Add, auth)
}
