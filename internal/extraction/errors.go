package extraction

import (
	"errors"
	"net/http"
)

// Domain errors for extraction operations.
var (
	ErrConvertFailed = errors.New("document conversion failed")
	ErrEmptyContent  = errors.New("document produced no content")
)

// MapHTTPStatus maps extraction errors to appropriate HTTP status codes.
// Conversion failures originate from the external extraction service and
// surface as a bad gateway rather than an internal error.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrConvertFailed) {
		return http.StatusBadGateway
	}
	if errors.Is(err, ErrEmptyContent) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
