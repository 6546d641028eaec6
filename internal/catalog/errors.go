package catalog

import (
	"errors"
	"net/http"
)

// Domain errors for catalog lookups.
var (
	ErrTagNotFound      = errors.New("tag not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidCatalog   = errors.New("invalid catalog data")
)

// MapHTTPStatus maps catalog domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrTagNotFound) || errors.Is(err, ErrCategoryNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
