package httpx

import (
	"time"

	"github.com/Gunvolt24/activity-consumer/internal/ports"
	"github.com/Gunvolt24/activity-consumer/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
)

// RequestLogger — middleware для логирования HTTP-запросов.
// X-Request-ID из заголовка прокидывается в контекст через ctxmeta.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// не логируем служебные маршруты
		switch c.FullPath() {
		case "/metrics", "/ping":
			c.Next()
			return
		}

		if rid := c.GetHeader("X-Request-ID"); rid != "" {
			c.Request = c.Request.WithContext(ctxmeta.WithRequestID(c.Request.Context(), rid))
		}

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		ctx := c.Request.Context()
		if rid, ok := ctxmeta.RequestIDFromContext(ctx); ok {
			log.Infof(ctx, "request method=%s path=%s status=%d duration=%s request_id=%s",
				c.Request.Method, c.FullPath(), c.Writer.Status(), duration, rid)
			return
		}
		log.Infof(ctx, "request method=%s path=%s status=%d duration=%s",
			c.Request.Method, c.FullPath(), c.Writer.Status(), duration)
	}
}
