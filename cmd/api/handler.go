package api

import (
	"log"

	emailDelivery "maildash-backend/internal/email/delivery"
	emailUsecasePkg "maildash-backend/internal/email/usecase"
	"maildash-backend/pkg/config"
	"maildash-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	emailUsecase emailUsecasePkg.EmailUsecase
	config       *config.Config
	metrics      *metrics.ServerMetrics
	emailHandler *emailDelivery.EmailHandler
}

func NewHandler(emailUc emailUsecasePkg.EmailUsecase, cfg *config.Config, serverMetrics *metrics.ServerMetrics) *Handler {
	emailHandler := emailDelivery.NewEmailHandler(emailUc)
	log.Println("Email handler initialized")

	return &Handler{
		emailUsecase: emailUc,
		config:       cfg,
		metrics:      serverMetrics,
		emailHandler: emailHandler,
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	return h.Engine().Run(addr)
}

// Engine builds the configured gin engine. Split out from Start so tests
// can serve it without binding a port.
func (h *Handler) Engine() *gin.Engine {
	r := gin.Default()

	r.Use(corsMiddleware(h.config.AllowedOrigin))
	r.Use(requestIDMiddleware())
	if h.metrics != nil {
		r.Use(h.metrics.Middleware())
		r.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	SetupRoutes(r, h.emailHandler)

	return r
}

// corsMiddleware answers preflight requests and stamps the configured
// allowed origin on every response.
func corsMiddleware(allowedOrigin string) gin.HandlerFunc {
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}

	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// requestIDMiddleware propagates an inbound X-Request-ID or mints one.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.Request.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}
