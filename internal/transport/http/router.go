package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Gunvolt24/activity-consumer/internal/ports"
	"github.com/Gunvolt24/activity-consumer/pkg/httpx"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

// Handler — HTTP-обработчики сервисного API консьюмера.
type Handler struct {
	service ports.EventReadService
	log     ports.Logger
}

func NewHandler(service ports.EventReadService, log ports.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// NewRouter — сервисные маршруты: ping, метрики и отладочная выдача
// последних обработанных событий. otelServiceName != "" включает
// трассировку запросов через otelgin.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	api.GET("/events/recent", h.listRecentEvents)

	return r
}

// listRecentEvents — GET /api/v1/events/recent?limit=N.
func (h *Handler) listRecentEvents(c *gin.Context) {
	limit := httpx.ParseLimit(c, defaultRecentLimit, maxRecentLimit)

	events := h.service.RecentEvents(c.Request.Context(), limit)
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}
