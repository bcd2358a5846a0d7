package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"ecommerceRecommender/pkg/logger"
	jsonres "ecommerceRecommender/pkg/response"

	"github.com/labstack/echo/v4"
)

var statusCodes = map[int]string{
	http.StatusBadRequest:          "BAD_REQUEST",
	http.StatusUnauthorized:        "UNAUTHORIZED",
	http.StatusForbidden:           "FORBIDDEN",
	http.StatusNotFound:            "NOT_FOUND",
	http.StatusMethodNotAllowed:    "METHOD_NOT_ALLOWED",
	http.StatusConflict:            "CONFLICT",
	http.StatusTooManyRequests:     "TOO_MANY_REQUESTS",
	http.StatusInternalServerError: "INTERNAL_SERVER_ERROR",
}

// ErrorHandler renders errors that escape handlers in the JSON error envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := http.StatusText(status)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		message = fmt.Sprint(he.Message)
	} else {
		logger.Error("unhandled error",
			"method", c.Request().Method,
			"path", c.Path(),
			"trace_id", c.Get("trace_id"),
			"error", err,
		)
	}

	code, ok := statusCodes[status]
	if !ok {
		code = "ERROR"
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, jsonres.Error(code, message, nil))
	}
	if err != nil {
		logger.Error("failed to write error response", "error", err)
	}
}
