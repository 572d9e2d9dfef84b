package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/porcinet/herdbook/internal/api/shared/errors"
	"github.com/porcinet/herdbook/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, errors.NewBadRequestError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, err error) {
	if apiErr, ok := err.(*errors.APIError); ok {
		c.JSON(http.StatusBadRequest, apiErr)
		return
	}
	c.JSON(http.StatusBadRequest, errors.NewValidationError(err.Error()))
}

// respondServiceError maps an engine error to its status code. Server side failures are logged.
func respondServiceError(c *gin.Context, err error, fields ...zap.Field) {
	status, apiErr := errors.FromDomain(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorCtx(c.Request.Context(), err, append(fields, zap.String("path", c.Request.URL.Path))...)
	}
	c.JSON(status, apiErr)
}
