package httpadapter

import (
	"net/http"

	"github.com/radicado-io/petition-classifier/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrExtractionExhausted):
		return http.StatusUnprocessableEntity
	case domain.IsKind(err, domain.ErrMalformedVerdict):
		return http.StatusBadGateway
	case domain.IsKind(err, domain.ErrOracleTransport):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
