package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with an id, taken from the X-Request-ID header when
// present, and logs the request once it is served.
func RequestID(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)

		started := time.Now()
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"request_id": id,
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"elapsed":    time.Since(started),
		})
		if err := c.Errors.Last(); err != nil {
			entry.WithError(err.Err).Warn("request failed")
			return
		}
		entry.Debug("request served")
	}
}

// RegisterProductRoutes registers the product endpoints.
func RegisterProductRoutes(r *gin.Engine, h *ProductHandler) {
	products := r.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/top", h.TopProducts)
		products.GET("/search", h.SearchProducts)
	}
}

// NewRouter builds the engine with product routes, /metrics and /healthz.
func NewRouter(h *ProductHandler, gatherer prometheus.Gatherer, logger logrus.FieldLogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(logger))

	RegisterProductRoutes(r, h)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}
