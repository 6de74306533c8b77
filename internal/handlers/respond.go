package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-seeker-api/internal/dtos"
	"github.com/justsurfingit/job-seeker-api/internal/logger"
	"github.com/justsurfingit/job-seeker-api/internal/services"
)

const (
	msgInvalidID  = "Invalid id"
	msgNotFound   = "result not found"
	msgAdded      = "result added successfully"
	msgAddFailed  = "Failed to add result"
	msgBadPayload = "Invalid JSON format"
)

func respondError(c *gin.Context, status int, message string, err error) {
	resp := dtos.ErrorResponse{
		Success:       false,
		Message:       message,
		CorrelationID: logger.CorrelationID(c.Request.Context()),
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(status, resp)
}

// respondServiceError maps the service error taxonomy onto HTTP. notFound is
// the message used for a 404, failure the one used for a 500.
func respondServiceError(c *gin.Context, err error, notFound, failure string) {
	ctx := c.Request.Context()
	switch {
	case errors.Is(err, services.ErrInvalidID):
		respondError(c, http.StatusBadRequest, msgInvalidID, nil)
	case errors.Is(err, services.ErrNotFound):
		respondError(c, http.StatusNotFound, notFound, nil)
	case errors.Is(err, services.ErrNotAcknowledged):
		slog.ErrorContext(ctx, "write not acknowledged", "path", c.FullPath())
		respondError(c, http.StatusInternalServerError, failure, nil)
	default:
		slog.ErrorContext(ctx, failure, "path", c.FullPath(), "error", err)
		respondError(c, http.StatusInternalServerError, failure, err)
	}
}
