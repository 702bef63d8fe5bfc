package routes

import (
	"helphub-api/handlers"
	"helphub-api/middleware"
	"helphub-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)
		public.GET("/categories", handlers.ListCategories)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
	}

	// ── PIN (requester) routes ─────────────────────────────────────
	pin := r.Group("/api/pin")
	pin.Use(middleware.AuthRequired(), middleware.ActiveRequired(), middleware.RoleRequired(models.RolePIN))
	{
		pin.POST("/requests", handlers.CreateRequest)
		pin.GET("/requests", handlers.GetMyRequests)
		pin.GET("/requests/:id", handlers.GetRequestDetail)
		pin.POST("/requests/:id/review", handlers.SubmitReview)
	}

	// ── CSR routes ─────────────────────────────────────────────────
	csr := r.Group("/api/csr")
	csr.Use(middleware.AuthRequired(), middleware.ActiveRequired(), middleware.RoleRequired(models.RoleCSR))
	{
		csr.GET("/requests", handlers.GetAllRequests)
		csr.GET("/requests/:id/volunteers", handlers.GetEligibleVolunteers)
		csr.PUT("/requests/:id/accept", handlers.AcceptRequest)
		csr.PUT("/requests/:id/assign", handlers.AssignRequest)
		csr.PUT("/requests/:id/complete", handlers.CompleteRequest)
		csr.DELETE("/requests/:id", handlers.DeleteRequest)
		csr.POST("/requests/:id/shortlist", handlers.ShortlistRequest)
		csr.GET("/shortlist", handlers.GetShortlist)
	}

	// ── Volunteer routes ───────────────────────────────────────────
	volunteer := r.Group("/api/volunteer")
	volunteer.Use(middleware.AuthRequired(), middleware.ActiveRequired(), middleware.RoleRequired(models.RoleVolunteer))
	{
		volunteer.GET("/tasks", handlers.GetMyTasks)
		volunteer.PUT("/tasks/:id/start", handlers.StartTask)
		volunteer.PUT("/tasks/:id/decline", handlers.DeclineTask)
		volunteer.PUT("/tasks/:id/complete", handlers.CompleteTask)
	}

	// ── Platform Manager routes ────────────────────────────────────
	platform := r.Group("/api/platform")
	platform.Use(middleware.AuthRequired(), middleware.ActiveRequired(), middleware.RoleRequired(models.RolePlatformManager))
	{
		platform.POST("/categories", handlers.CreateCategory)
		platform.PUT("/categories/:id", handlers.UpdateCategory)
		platform.DELETE("/categories/:id", handlers.DeleteCategory)
		platform.GET("/stats", handlers.GetPlatformStats)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.ActiveRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/users", handlers.AdminGetAllUsers)
		admin.PUT("/users/:id/activate", handlers.AdminActivateUser)
		admin.PUT("/users/:id/suspend", handlers.AdminSuspendUser)
		admin.PUT("/users/:id", handlers.AdminUpdateUser)
		admin.DELETE("/users/:id", handlers.AdminDeleteUser)
		admin.GET("/requests", handlers.GetAllRequests)
		admin.DELETE("/requests/:id", handlers.DeleteRequest)
	}
}
