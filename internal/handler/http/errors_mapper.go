package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-cred-vault/internal/service"
	"github.com/MKhiriev/go-cred-vault/internal/store"
	"github.com/MKhiriev/go-cred-vault/internal/validators"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrInvalidTOTPCode:         http.StatusUnauthorized,
	service.ErrTOTPNotEnrolled:         http.StatusNotFound,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrEmptyToken:              http.StatusBadRequest,

	validators.ErrInvalidMasterUsername:      http.StatusBadRequest,
	validators.ErrInvalidMasterPassword:      http.StatusBadRequest,
	validators.ErrInvalidApplicationName:     http.StatusBadRequest,
	validators.ErrInvalidApplicationUsername: http.StatusBadRequest,
	validators.ErrInvalidApplicationPassword: http.StatusBadRequest,
	validators.ErrInjectionRisk:              http.StatusBadRequest,

	store.ErrUsernameAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:        http.StatusNotFound,
	store.ErrEntryNotFound:         http.StatusNotFound,
	store.ErrNoFieldsToUpdate:      http.StatusBadRequest,

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
