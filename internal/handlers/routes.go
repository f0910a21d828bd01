package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/services"
)

// RegisterRoutes mounts the health check and every /api route on r.
// Session middleware must already be installed on r.
func RegisterRoutes(r gin.IRouter, userService *services.UserService, taskService *services.TaskService) {
	authHandler := NewAuthHandler(userService)
	userHandler := NewUserHandler(userService)
	taskHandler := NewTaskHandler(taskService, userService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Task Tracker API is running",
		})
	})

	requireID := middleware.RequireUUIDParam("id")

	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Signup is public, everything else needs a session
		api.POST("/users", userHandler.CreateUser)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth(), requireID)
		{
			users.GET("/:id", userHandler.GetUser)
			users.PATCH("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", requireID, middleware.RequireTaskAccess(taskService), taskHandler.GetTask)
			tasks.PATCH("/:id", requireID, taskHandler.UpdateTask)
			tasks.DELETE("/:id", requireID, taskHandler.DeleteTask)
		}
	}
}
