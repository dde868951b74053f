package quoteapi

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/inada-mfg/quote-cli/internal/model"
)

// UploadResponse is the envelope from POST /quotes/upload.
type UploadResponse struct {
	Success bool               `json:"success"`
	Data    model.UploadResult `json:"data"`
	Message string             `json:"message,omitempty"`
	Errors  []string           `json:"errors,omitempty"`
}

// BatchResponse is the envelope from POST /quotes/batch.
type BatchResponse struct {
	Success bool                    `json:"success"`
	Data    []model.QuotationResult `json:"data"`
	Message string                  `json:"message,omitempty"`
	Errors  []string                `json:"errors,omitempty"`
}

// QuoteResponse is the envelope from GET /quotes/{id}.
type QuoteResponse struct {
	Success bool                  `json:"success"`
	Data    model.QuotationResult `json:"data"`
	Message string                `json:"message,omitempty"`
	Errors  []string              `json:"errors,omitempty"`
}

// ListResponse is the paginated envelope from GET /quotes.
type ListResponse struct {
	Success    bool                    `json:"success"`
	Data       []model.QuotationResult `json:"data"`
	Pagination model.Pagination        `json:"pagination"`
	Message    string                  `json:"message,omitempty"`
}

// StatusUpdateResult is the confirmation payload of a status update.
type StatusUpdateResult struct {
	Message string            `json:"message"`
	Status  model.QuoteStatus `json:"status"`
}

// StatusUpdateResponse is the envelope from PUT /quotes/{id}/status.
type StatusUpdateResponse struct {
	Success bool               `json:"success"`
	Data    StatusUpdateResult `json:"data"`
	Message string             `json:"message,omitempty"`
	Errors  []string           `json:"errors,omitempty"`
}

// LoginResult carries the bearer token issued by the session provider.
type LoginResult struct {
	Token string `json:"token"`
}

// LoginResponse is the envelope from POST /auth/login.
type LoginResponse struct {
	Success bool        `json:"success"`
	Data    LoginResult `json:"data"`
	Message string      `json:"message,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// APIError is returned when the backend responds with a non-2xx status.
// Message holds the server-reported message when the body carried one.
type APIError struct {
	StatusCode int
	Body       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("quoteapi: HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("quoteapi: HTTP %d: %s", e.StatusCode, e.Body)
}

// serverMessage extracts the message/error field from an error body.
func serverMessage(body []byte) string {
	var payload struct {
		Message string   `json:"message"`
		Error   string   `json:"error"`
		Errors  []string `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	if payload.Error != "" {
		return payload.Error
	}
	return strings.Join(payload.Errors, ", ")
}
