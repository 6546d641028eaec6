package workflow

import (
	"errors"
	"net/http"

	"github.com/emendhq/emend/internal/extraction"
)

// Pipeline errors. Each wraps the underlying failure so callers can
// distinguish the stage that failed.
var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrConvertFailed    = errors.New("document conversion failed")
	ErrStructureFailed  = errors.New("question group structuring failed")
)

// MapHTTPStatus maps workflow errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrDocumentNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrConvertFailed) || errors.Is(err, ErrStructureFailed) {
		return http.StatusBadGateway
	}
	return extraction.MapHTTPStatus(err)
}
