package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/burnboard/middleware"
	"github.com/burnboard/services"
)

// API groups the v1 handlers around their services.
type API struct {
	auth     *services.AuthService
	projects *services.ProjectService
}

// NewAPI creates the v1 API surface.
func NewAPI(auth *services.AuthService, projects *services.ProjectService) *API {
	return &API{
		auth:     auth,
		projects: projects,
	}
}

// RegisterRoutes registers all v1 API routes
func (a *API) RegisterRoutes(router *gin.RouterGroup) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// Auth endpoints
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", a.Register)
		authGroup.POST("/login", a.Login)
		authGroup.POST("/logout", a.Logout)
		authGroup.POST("/verify-email", a.VerifyEmail)
		authGroup.POST("/forgot-password", a.ForgotPassword)
		authGroup.POST("/reset-password", a.ResetPassword)
		// Session required from here on
		authGroup.GET("/me", middleware.AuthMiddleware(), a.GetCurrentUser)
		authGroup.POST("/resend-verification", middleware.AuthMiddleware(), a.ResendVerification)
	}

	// Profile endpoints - protected by AuthMiddleware
	profileGroup := router.Group("/profile")
	profileGroup.Use(middleware.AuthMiddleware())
	{
		profileGroup.PUT("", a.UpdateProfile)
		profileGroup.PUT("/password", a.UpdatePassword)
	}

	// Project endpoints - protected by AuthMiddleware
	projectGroup := router.Group("/projects")
	projectGroup.Use(middleware.AuthMiddleware())
	{
		projectGroup.GET("", a.ListProjects)
		projectGroup.POST("", a.CreateProject)
		projectGroup.GET("/:id", a.GetProject)
		projectGroup.PUT("/:id", a.UpdateProject)
		projectGroup.DELETE("/:id", a.DeleteProject)
		projectGroup.GET("/:id/stats", a.GetProjectStats)

		projectGroup.POST("/:id/milestones", a.AddMilestone)
		projectGroup.PUT("/:id/milestones/:milestoneId", a.UpdateMilestone)
		projectGroup.DELETE("/:id/milestones/:milestoneId", a.DeleteMilestone)
	}
}
