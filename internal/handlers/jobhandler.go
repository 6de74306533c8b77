package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-seeker-api/internal/dtos"
	"github.com/justsurfingit/job-seeker-api/internal/models"
	"github.com/justsurfingit/job-seeker-api/internal/services"
)

// JobExtractor is satisfied by services.LLMService.
type JobExtractor interface {
	ExtractJob(ctx context.Context, rawHTML, sourceURL string) (models.Job, error)
}

type JobHandler struct {
	JobService *services.JobService
	Extractor  JobExtractor
}

// NewJobHandler creates the handler with dependencies. extractor may be nil
// when no LLM is configured.
func NewJobHandler(j *services.JobService, extractor JobExtractor) *JobHandler {
	return &JobHandler{
		JobService: j,
		Extractor:  extractor,
	}
}

// ListByOwner is GET /jobs/:email
func (h *JobHandler) ListByOwner(c *gin.Context) {
	jobs, err := h.JobService.ListByOwner(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondServiceError(c, err, msgNotFound, "Error fetching jobs")
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// ListPreview is GET /jobs
func (h *JobHandler) ListPreview(c *gin.Context) {
	jobs, err := h.JobService.ListPreview(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, msgNotFound, "Error fetching jobs")
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// ListAll is GET /allJob
func (h *JobHandler) ListAll(c *gin.Context) {
	jobs, err := h.JobService.ListAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, msgNotFound, "Error fetching jobs")
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// GetJob is GET /jobDetails/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.JobService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, msgNotFound, "Error fetching result details")
		return
	}
	c.JSON(http.StatusOK, job)
}

// CreateJob is POST /addJob
func (h *JobHandler) CreateJob(c *gin.Context) {
	var job models.Job
	if err := c.ShouldBindJSON(&job); err != nil {
		respondError(c, http.StatusBadRequest, msgBadPayload, err)
		return
	}

	res, err := h.JobService.Create(c.Request.Context(), job)
	if err != nil {
		respondServiceError(c, err, msgNotFound, msgAddFailed)
		return
	}
	slog.InfoContext(c.Request.Context(), "job created", "id", res.InsertedID)
	c.JSON(http.StatusOK, dtos.MutationResponse{Success: true, Message: msgAdded, InsertedID: res.InsertedID})
}

// UpdateJob is PUT /jobs/:id
func (h *JobHandler) UpdateJob(c *gin.Context) {
	id := c.Param("id")
	slog.DebugContext(c.Request.Context(), "updating job", "id", id)

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		respondError(c, http.StatusBadRequest, msgBadPayload, err)
		return
	}

	res, err := h.JobService.Update(c.Request.Context(), id, fields)
	if err != nil {
		respondServiceError(c, err, "Job not found or no changes made", "Error updating job")
		return
	}
	c.JSON(http.StatusOK, dtos.UpdateResponse{Message: "Job updated successfully", Result: res})
}

// DeleteJob is DELETE /jobs/:id
func (h *JobHandler) DeleteJob(c *gin.Context) {
	res, err := h.JobService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, msgNotFound, "Error deleting job")
		return
	}
	c.JSON(http.StatusOK, res)
}

// ParseJob is the POST /jobs/extract endpoint
func (h *JobHandler) ParseJob(c *gin.Context) {
	var req dtos.JobExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgBadPayload, err)
		return
	}

	job, err := h.Extractor.ExtractJob(c.Request.Context(), req.RawHTML, req.URL)
	if err != nil {
		if errors.Is(err, services.ErrEmptyContent) {
			respondError(c, http.StatusBadRequest, "raw_html is empty", nil)
			return
		}
		slog.ErrorContext(c.Request.Context(), "job extraction failed", "error", err)
		respondError(c, http.StatusInternalServerError, "AI Extraction failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    job,
	})
}
