// Package server assembles the gin router shared by cmd/api and the
// router-level tests.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"finboard/internal/app"
	"finboard/internal/handlers"
	"finboard/internal/middleware"
	"finboard/internal/validator"

	_ "finboard/internal/docs" // Import swagger docs
)

// NewRouter builds the JSON API under /api/v1 and the server-rendered pages.
func NewRouter(a *app.App) *gin.Engine {
	authHandler := handlers.NewAuthHandler(a.Accounts, a.Profiles, a.Audit, a.Tokens)
	configHandler := handlers.NewConfigHandler(a.Config.Project)
	profileHandler := handlers.NewProfileHandler(a.Profiles, a.Audit)
	goalHandler := handlers.NewGoalHandler(a.Goals, a.Audit)
	expenseHandler := handlers.NewExpenseHandler(a.Expenses, a.Audit)
	analysisHandler := handlers.NewAnalysisHandler(a.Analysis)
	pageHandler := handlers.NewPageHandler(handlers.PageDeps{
		Accounts:     a.Accounts,
		Profiles:     a.Profiles,
		Goals:        a.Goals,
		Expenses:     a.Expenses,
		Analysis:     a.Analysis,
		Audit:        a.Audit,
		Tokens:       a.Tokens,
		SecureCookie: a.Config.Env == "production",
	})

	validator.Register()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(a.Config.CORSOrigin))
	router.Use(middleware.SessionResolver(a.Tokens))
	router.Use(middleware.BootstrapProfile(a.Profiles))
	router.SetHTMLTemplate(handlers.Templates())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	v1.GET("/session", authHandler.GetSession)
	v1.GET("/client-config", configHandler.GetClientConfig)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.RequireAPI())

	protected.GET("/profile", profileHandler.GetProfile)
	protected.PUT("/profile", profileHandler.UpdateProfile)

	goals := protected.Group("/goals")
	goals.GET("", goalHandler.ListGoals)
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("/:id", goalHandler.GetGoal)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	expenses := protected.Group("/expenses")
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.POST("", expenseHandler.CreateExpense)

	protected.GET("/analysis", analysisHandler.GetAnalysis)
	protected.POST("/advice", analysisHandler.GetAdvice)

	// Pages
	router.GET("/", pageHandler.Home)
	router.GET("/login", pageHandler.LoginForm)
	router.POST("/login", pageHandler.Login)
	router.POST("/logout", pageHandler.Logout)

	pages := router.Group("/")
	pages.Use(middleware.RequirePage(pageHandler.Loading))
	pages.GET("/dashboard", pageHandler.Dashboard)
	pages.GET("/goals", pageHandler.Goals)
	pages.POST("/goals", pageHandler.CreateGoal)
	pages.POST("/goals/:id", pageHandler.UpdateGoal)
	pages.POST("/goals/:id/delete", pageHandler.DeleteGoal)
	pages.GET("/advice", pageHandler.Advice)
	pages.POST("/advice", pageHandler.AskAdvice)

	return router
}
