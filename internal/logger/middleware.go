package logger

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestIDMiddleware injects an X-Request-ID header (generated when absent)
// and stores it in the request context for FromCtx.
func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()

		reqID := req.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}

		ctx := WithRequestID(req.Context(), reqID)
		c.SetRequest(req.WithContext(ctx))
		c.Response().Header().Set("X-Request-ID", reqID)

		return next(c)
	}
}

func LoggingMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		req := c.Request()
		FromCtx(req.Context()).Info("incoming request",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", c.Response().Status),
			zap.String("ip", c.RealIP()),
			zap.Duration("duration_ms", time.Since(start)),
		)

		return err
	}
}
