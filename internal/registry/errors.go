package registry

import (
	"errors"
	"net/http"
)

// Domain errors for registry operations.
var (
	ErrUnknownItem   = errors.New("unknown item")
	ErrInvalidItemID = errors.New("invalid item id")
	ErrLocked        = errors.New("item is locked")
	ErrTagConflict   = errors.New("tag conflicts with current selection")
)

// MapHTTPStatus maps registry domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrUnknownItem) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidItemID) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrLocked) || errors.Is(err, ErrTagConflict) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
