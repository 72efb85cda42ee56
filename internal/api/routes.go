package api

import (
	"net/http"

	"nutriwings/health-app/internal/domain"
	"nutriwings/health-app/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every handler under /api/v1. All routes except
// registration, login and ping require a valid JWT; template writes
// additionally require the admin role.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	dietService service.DietService,
	recoveryService service.RecoveryService,
	workoutService service.WorkoutService,
	strengthService service.StrengthService,
	templateService service.TemplateService,
) {
	authHandler := NewAuthHandler(authService)
	dietHandler := NewDietHandler(dietService)
	recoveryHandler := NewRecoveryHandler(recoveryService)
	workoutHandler := NewWorkoutHandler(workoutService)
	strengthHandler := NewStrengthHandler(strengthService)
	templateHandler := NewTemplateHandler(templateService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")

	authGroup := apiV1.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(jwtSecret))
	{
		// --- Profile ---
		protected.GET("/profile", authHandler.GetProfile)
		protected.PUT("/profile", authHandler.UpdateProfile)

		// --- Diet log ---
		dietGroup := protected.Group("/diet")
		{
			dietGroup.POST("", dietHandler.LogDiet)
			dietGroup.GET("", dietHandler.GetHistory)
			dietGroup.GET("/stats", dietHandler.Stats)
			dietGroup.GET("/calories/monthly", dietHandler.MonthlyCalories)
			dietGroup.GET("/calories/recommended", dietHandler.RecommendedCalories)
			dietGroup.POST("/upload-url", dietHandler.UploadURL)
			dietGroup.GET("/:dietId", dietHandler.GetDiet)
			dietGroup.PUT("/:dietId", dietHandler.UpdateDiet)
			dietGroup.DELETE("/:dietId", dietHandler.DeleteDiet)
		}

		// --- Sleep and water ---
		sleepGroup := protected.Group("/sleep")
		{
			sleepGroup.POST("/start", recoveryHandler.StartSleep)
			sleepGroup.POST("/stop", recoveryHandler.StopSleep)
			sleepGroup.POST("", recoveryHandler.LogSleep)
			sleepGroup.GET("/latest", recoveryHandler.LatestSleep)
			sleepGroup.GET("/today", recoveryHandler.TodaySleep)
			sleepGroup.DELETE("/:entryId", recoveryHandler.DeleteSleep)
		}
		waterGroup := protected.Group("/water")
		{
			waterGroup.POST("", recoveryHandler.AddWater)
			waterGroup.GET("/today", recoveryHandler.TodayWater)
			waterGroup.DELETE("/:entryId", recoveryHandler.DeleteWater)
		}

		// --- Workout sessions ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", workoutHandler.SaveSession)
			workoutGroup.GET("", workoutHandler.History)
			workoutGroup.GET("/:sessionId", workoutHandler.GetSession)
			workoutGroup.PUT("/:sessionId/actions", workoutHandler.UpdateAction)
			workoutGroup.DELETE("/:sessionId/actions", workoutHandler.DeleteAction)
			workoutGroup.DELETE("/:sessionId", workoutHandler.DeleteSession)
		}

		// --- Strength score ---
		strengthGroup := protected.Group("/strength")
		{
			strengthGroup.GET("/daily-score/:userId", strengthHandler.DailyScore)
			strengthGroup.GET("/daily-score/:userId/:date", strengthHandler.ScoreByDate)
			strengthGroup.GET("/dates/:userId", strengthHandler.ScoreDates)
			strengthGroup.GET("/metrics", strengthHandler.Metrics)
		}

		// --- Template catalog ---
		templateGroup := protected.Group("/templates")
		{
			templateGroup.GET("", templateHandler.ListTemplates)
			templateGroup.POST("", RoleMiddleware(domain.RoleAdmin), templateHandler.CreateTemplate)
			templateGroup.POST("/upload-url", RoleMiddleware(domain.RoleAdmin), templateHandler.UploadURL)
			templateGroup.PUT("/:templateId", RoleMiddleware(domain.RoleAdmin), templateHandler.UpdateTemplate)
			templateGroup.DELETE("/:templateId", RoleMiddleware(domain.RoleAdmin), templateHandler.DeleteTemplate)
		}
	}
}
