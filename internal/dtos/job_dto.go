package dtos

import "github.com/justsurfingit/job-seeker-api/internal/store"

type JobExtractionRequest struct {
	RawHTML string `json:"raw_html" binding:"required"`
	URL     string `json:"url"`
}

// MutationResponse answers /addJob and /job-applications.
type MutationResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	InsertedID string `json:"insertedId,omitempty"`
}

type UpdateResponse struct {
	Message string             `json:"message"`
	Result  store.UpdateResult `json:"result"`
}

// ErrorResponse is the single failure envelope of the API.
type ErrorResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	Error         string `json:"error,omitempty"`
	CorrelationID string `json:"correlationId,omitempty"`
}
