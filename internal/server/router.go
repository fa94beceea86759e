package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/money-transfers-service/internal/server/handler"
	"github.com/money-transfers-service/internal/server/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	accountHandler *handler.AccountHandler,
	transferHandler *handler.TransferHandler,
) {
	// CorrelationID must run first so the request logger can tag its output.
	r.Use(middleware.CorrelationID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))

	v1 := r.Group("/api/v1")
	{
		accounts := v1.Group("/accounts")
		{
			accounts.POST("", accountHandler.Open)
			accounts.GET("/:number", accountHandler.Show)
			accounts.GET("/:number/balance", accountHandler.Balance)
			accounts.POST("/:number/deposit", accountHandler.Deposit)
			accounts.POST("/:number/withdraw", accountHandler.Withdraw)
			accounts.POST("/:number/close", accountHandler.Close)
		}

		v1.POST("/transfers", transferHandler.Create)
		v1.GET("/transactions/:id", transferHandler.GetByID)
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
