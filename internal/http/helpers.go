package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotekeeper/internal/quotes"
	"github.com/mrlokans/quotekeeper/internal/remote"
	"github.com/mrlokans/quotekeeper/internal/scheduler"
)

// Machine-readable error codes returned in ErrorResponse.Code.
const (
	CodeInvalidRequest    = "invalid_request"
	CodeValidation        = "validation_error"
	CodeMalformedPayload  = "malformed_payload"
	CodeInvalidShape      = "invalid_shape"
	CodeUnknownCategory   = "unknown_category"
	CodeNetworkFailure    = "network_failure"
	CodeRemoteUnavailable = "remote_unavailable"
	CodeSyncInProgress    = "sync_in_progress"
	CodePayloadTooLarge   = "payload_too_large"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"` // machine-readable error code
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message, code string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: code})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondError sends an error response with the given status code.
func respondError(c *gin.Context, status int, message, code string) {
	c.JSON(status, ErrorResponse{Error: message, Code: code})
}

// --- Success Response Helpers ---

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// respondQuoteError maps quote store and sync errors onto HTTP responses.
// Anything unrecognised is treated as an internal error.
func respondQuoteError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, quotes.ErrValidation):
		respondBadRequest(c, err.Error(), CodeValidation)
	case errors.Is(err, quotes.ErrMalformedPayload):
		respondBadRequest(c, err.Error(), CodeMalformedPayload)
	case errors.Is(err, quotes.ErrInvalidShape):
		respondBadRequest(c, err.Error(), CodeInvalidShape)
	case errors.Is(err, scheduler.ErrSyncInProgress):
		respondError(c, http.StatusConflict, err.Error(), CodeSyncInProgress)
	case errors.Is(err, remote.ErrNetworkFailure):
		respondError(c, http.StatusBadGateway, err.Error(), CodeNetworkFailure)
	case errors.Is(err, remote.ErrRemoteUnavailable):
		respondError(c, http.StatusBadGateway, err.Error(), CodeRemoteUnavailable)
	default:
		respondInternalError(c, err, context)
	}
}
