package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-blog-api/internal/service"
	"github.com/MKhiriev/go-blog-api/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrAllFieldsRequired:   http.StatusBadRequest,
	service.ErrInvalidEmailFormat:  http.StatusBadRequest,
	service.ErrPasswordTooShort:    http.StatusBadRequest,
	service.ErrNoFieldsToUpdate:    http.StatusBadRequest,
	service.ErrTitleAndBlogNeeded:  http.StatusBadRequest,
	service.ErrTitleTooLong:        http.StatusBadRequest,
	service.ErrCommentRequired:     http.StatusBadRequest,
	service.ErrCommentTooLong:      http.StatusBadRequest,

	service.ErrInvalidCredentials:    http.StatusUnauthorized,
	service.ErrTokenExpired:          http.StatusUnauthorized,
	service.ErrTokenMalformed:        http.StatusUnauthorized,
	service.ErrTokenSignatureInvalid: http.StatusUnauthorized,
	service.ErrTokenInvalid:          http.StatusUnauthorized,

	store.ErrEmailAlreadyExists:    http.StatusConflict,
	store.ErrUserNameAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:        http.StatusNotFound,
	store.ErrPostNotFound:          http.StatusNotFound,
	store.ErrCommentNotFound:       http.StatusNotFound,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// codeFromStatus picks the machine-readable envelope code for a status.
// Only conflicts carry a code; everything else relies on the status itself.
func codeFromStatus(status int) string {
	if status == http.StatusConflict {
		return "CONFLICT"
	}
	return ""
}
