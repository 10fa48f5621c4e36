// Package server wires handlers into the HTTP router.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	apperrors "painel/internal/errors"
	"painel/internal/handlers"
	"painel/internal/middleware"
	"painel/internal/services"
)

// Deps holds everything the router serves.
type Deps struct {
	Transactions services.TransactionServicer
	Goals        services.GoalServicer
	Dashboard    services.DashboardServicer
	Reports      services.ReportServicer
	Celebrations handlers.BurstSubscriber

	// APIKey guards the mutating routes when set.
	APIKey string
	// RequestLogging turns on per-request access logs.
	RequestLogging bool
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(d Deps) *gin.Engine {
	transactionHandler := handlers.NewTransactionHandler(d.Transactions)
	goalHandler := handlers.NewGoalHandler(d.Goals)
	dashboardHandler := handlers.NewDashboardHandler(d.Dashboard)
	reportHandler := handlers.NewReportHandler(d.Reports)
	celebrationHandler := handlers.NewCelebrationHandler(d.Celebrations)

	router := gin.New()
	router.Use(gin.Recovery())
	if d.RequestLogging {
		router.Use(middleware.RequestLogging())
	}
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+middleware.APIKeyHeader)
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	guarded := middleware.APIKeyMiddleware(d.APIKey)

	// Transaction routes
	transactions := v1.Group("/transactions")
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.POST("", guarded, transactionHandler.CreateTransaction)
	transactions.PUT("/:id", guarded, transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", guarded, transactionHandler.DeleteTransaction)

	// Goal routes
	goals := v1.Group("/goals")
	goals.GET("", goalHandler.GetGoals)
	goals.PUT("/:category", guarded, goalHandler.UpdateGoal)

	// Dashboard routes
	dashboard := v1.Group("/dashboard")
	dashboard.GET("", dashboardHandler.GetDashboard)
	dashboard.GET("/today", dashboardHandler.GetToday)

	// Report routes
	reports := v1.Group("/reports")
	reports.GET("/monthly", reportHandler.GetMonthlyReport)
	reports.GET("/monthly/export", reportHandler.ExportMonthlyReport)

	v1.GET("/celebrations/stream", celebrationHandler.Stream)

	router.NoRoute(func(c *gin.Context) {
		middleware.AbortWithError(c, apperrors.ErrNotFound)
	})

	return router
}
