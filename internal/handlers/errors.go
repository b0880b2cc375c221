package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/credit_tracking_app/internal/apperrors"
	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
	"github.com/SscSPs/credit_tracking_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error to an HTTP response. failureMsg is shown for
// unexpected errors, whose details are only logged.
func respondError(c *gin.Context, logger *slog.Logger, err error, failureMsg string) {
	var ingestErr *apperrors.IngestError
	switch {
	case errors.As(err, &ingestErr):
		logger.Warn("Upload rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Row: ingestErr.Row, Column: ingestErr.Column})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Invalid request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Info("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	default:
		logger.Error(failureMsg, slog.String("error", err.Error()))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: failureMsg + ", please retry"})
	}
}

// respondBindError answers a request whose parameters failed binding.
func respondBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request parameters", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request parameters",
		Details: dto.ValidationErrorDetails(err),
	})
}

// pathDate parses a YYYY-MM-DD path parameter, answering 400 when it is malformed.
func pathDate(c *gin.Context, logger *slog.Logger, name string) (time.Time, bool) {
	raw := c.Param(name)
	d, err := domain.ParseDate(raw)
	if err != nil {
		logger.Warn("Invalid date in path", slog.String(name, raw))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid date format. Use YYYY-MM-DD"})
		return time.Time{}, false
	}
	return d, true
}
