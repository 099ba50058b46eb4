package httpadapter

import (
	"net/http"

	"github.com/kirillkom/pitchdeck-parser/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrDeckNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrDocumentOpen), domain.IsKind(err, domain.ErrEmptyText):
		return http.StatusUnprocessableEntity
	case domain.IsKind(err, domain.ErrRemoteFetch):
		return http.StatusBadGateway
	case domain.IsKind(err, domain.ErrStorageUnavailable), domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
