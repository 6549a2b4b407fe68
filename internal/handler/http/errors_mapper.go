package http

import (
	"errors"
	"net/http"

	"github.com/avdeevsm/go-vault-core/internal/service"
	"github.com/avdeevsm/go-vault-core/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidKeyFormat:        http.StatusBadRequest,
	service.ErrEntryPayloadInvalid:     http.StatusBadRequest,
	service.ErrResetNotConfirmed:       http.StatusBadRequest,
	service.ErrInvalidResetToken:       http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrInvalidKey:              http.StatusForbidden,
	service.ErrSessionRequired:         http.StatusForbidden,
	service.ErrKeyMismatch:             http.StatusForbidden,
	service.ErrRotationIneffective:     http.StatusConflict,
	service.ErrTooManyUnlockAttempts:   http.StatusTooManyRequests,
	service.ErrTooManyResetRequests:    http.StatusTooManyRequests,

	store.ErrLoginAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrEntryNotFound:      http.StatusNotFound,
	store.ErrEntryNotSaved:      http.StatusInternalServerError,
	store.ErrTokenNotFound:      http.StatusBadRequest,
	store.ErrTokenAlreadyUsed:   http.StatusBadRequest,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
