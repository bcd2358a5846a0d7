package middleware

import (
	"ecommerceRecommender/business/recommendation"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const HeaderRequestID = "X-Request-ID"

// TraceID tags every request with an id, taken from X-Request-ID when the
// client sends one. The id is echoed back and stored in the request context.
func TraceID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			tid := req.Header.Get(HeaderRequestID)
			if tid == "" || len(tid) > 128 {
				tid = uuid.NewString()
			}

			c.SetRequest(req.WithContext(recommendation.WithTraceID(req.Context(), tid)))
			c.Response().Header().Set(HeaderRequestID, tid)
			c.Set("trace_id", tid)

			return next(c)
		}
	}
}
