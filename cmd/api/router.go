package api

import (
	"net/http"

	emailDelivery "maildash-backend/internal/email/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, emailHandler *emailDelivery.EmailHandler) {
	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Email routes
		emails := api.Group("/emails")
		{
			emails.GET("", emailHandler.ListEmails)
			emails.GET("/export", emailHandler.ExportCSV)
			emails.POST("/ingest", emailHandler.IngestEmails)
			emails.POST("/:id/resummarize", emailHandler.ResummarizeEmail)
			emails.DELETE("/:id", emailHandler.DeleteEmail)
		}
	}
}
