package sessions

import (
	"errors"
	"net/http"

	"github.com/emendhq/emend/internal/modification"
	"github.com/emendhq/emend/internal/workflow"
)

// Domain errors for session operations.
var (
	ErrNotFound    = errors.New("session not found")
	ErrNoArtifact  = errors.New("session has no assembled artifact")
	ErrInvalidBody = errors.New("invalid request body")
)

// MapHTTPStatus maps session domain errors to appropriate HTTP status codes.
// Errors from the extraction pipeline and the modification layer fall through
// to their own mappers.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNoArtifact) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidBody) {
		return http.StatusBadRequest
	}
	if status := workflow.MapHTTPStatus(err); status != http.StatusInternalServerError {
		return status
	}
	return modification.MapHTTPStatus(err)
}
