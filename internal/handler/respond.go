package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/procurehub/procurement-gateway/internal/logger"
)

// responseError logs the underlying cause and returns the structured
// error body; msg is what the caller sees, err stays server-side.
func responseError(c echo.Context, status int, msg string, err error) error {
	if err != nil {
		logger.ErrorLog(c.Request().Context(), msg, err)
	}
	return c.JSON(status, ErrorResponse{Error: msg})
}
