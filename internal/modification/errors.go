package modification

import (
	"errors"
	"net/http"

	"github.com/emendhq/emend/internal/registry"
)

// ErrRewriteFailed indicates the external rewriting call failed. The item's
// state is left unchanged and the operation may be retried.
var ErrRewriteFailed = errors.New("rewrite request failed")

// MapHTTPStatus maps modification errors to appropriate HTTP status codes.
// Registry errors keep their own mapping; rewrite failures surface as a bad
// gateway since they originate from the external rewriting service.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrRewriteFailed) {
		return http.StatusBadGateway
	}
	return registry.MapHTTPStatus(err)
}
