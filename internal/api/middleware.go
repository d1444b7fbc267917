package api

import (
	"github.com/gin-gonic/gin"

	"github.com/rshade/feedprint/internal/logging"
)

// RequestIDHeader carries the request's trace id in both directions.
const RequestIDHeader = "X-Request-ID"

// requestIDMiddleware reuses an incoming X-Request-ID or generates a ULID,
// echoes it on the response and stores it in the request context.
func (s *Server) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = logging.NewTraceID()
		}
		c.Header(RequestIDHeader, id)

		ctx := logging.ContextWithTraceID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(s.logger.WithContext(ctx))
		c.Next()
	}
}

func (s *Server) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := s.clock.Now()
		c.Next()

		l := logging.FromContext(c.Request.Context())
		evt := l.Info()
		if c.Writer.Status() >= 500 {
			evt = l.Error()
		}
		evt.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", s.clock.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request completed")
	}
}

// metricsMiddleware records request counts and latency by route template,
// so path parameters never become label values.
func (s *Server) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := s.clock.Now()
		c.Next()
		s.metrics.ObserveRequest(c.FullPath(), c.Writer.Status(), s.clock.Since(start))
	}
}
