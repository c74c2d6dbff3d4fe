package api

import (
	"github.com/insightdelivered/statement-scorer/internal/models"
	"github.com/insightdelivered/statement-scorer/internal/writer"
)

const successMessage = "Statement processed successfully"

// ScoreResponse is the JSON response from the /api/processScore endpoint.
type ScoreResponse struct {
	Message string         `json:"message"`
	Data    writer.Summary `json:"data"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse is the body of /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func newScoreResponse(r *models.Report) ScoreResponse {
	return ScoreResponse{Message: successMessage, Data: writer.NewSummary(r)}
}
