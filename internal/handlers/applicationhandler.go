package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-seeker-api/internal/dtos"
	"github.com/justsurfingit/job-seeker-api/internal/models"
	"github.com/justsurfingit/job-seeker-api/internal/services"
)

type ApplicationHandler struct {
	ApplicationService *services.ApplicationService
}

func NewApplicationHandler(a *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{ApplicationService: a}
}

// Submit is POST /job-applications
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var app models.Application
	if err := c.ShouldBindJSON(&app); err != nil {
		respondError(c, http.StatusBadRequest, msgBadPayload, err)
		return
	}

	res, err := h.ApplicationService.Submit(c.Request.Context(), app)
	if err != nil {
		respondServiceError(c, err, msgNotFound, msgAddFailed)
		return
	}
	slog.InfoContext(c.Request.Context(), "application submitted", "id", res.InsertedID, "job_id", app.JobID)
	c.JSON(http.StatusOK, dtos.MutationResponse{Success: true, Message: msgAdded, InsertedID: res.InsertedID})
}

// ListByApplicant is GET /applied-job/:email
func (h *ApplicationHandler) ListByApplicant(c *gin.Context) {
	apps, err := h.ApplicationService.ListByApplicant(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondServiceError(c, err, msgNotFound, "Error fetching result details")
		return
	}
	c.JSON(http.StatusOK, apps)
}

// Withdraw is DELETE /applied-job/:id
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	res, err := h.ApplicationService.Withdraw(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, msgNotFound, "Error deleting application")
		return
	}
	c.JSON(http.StatusOK, res)
}
