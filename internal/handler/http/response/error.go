package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/sge-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/sge-backend-go/internal/pkg/validator"
	"github.com/rs/zerolog/log"
)

// StatusOf returns the HTTP status for an error kind.
func StatusOf(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return http.StatusUnprocessableEntity
	case apperror.KindNotClockedIn, apperror.KindInsufficientLeaveDays, apperror.KindInvalidStatusTransition:
		return http.StatusBadRequest
	case apperror.KindEmployeeNotFound, apperror.KindNoClockInFound, apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindAlreadyClockedIn, apperror.KindAlreadyClockedOut,
		apperror.KindDuplicateRecord, apperror.KindConflictingLeaveRequest:
		return http.StatusConflict
	case apperror.KindUnauthorized:
		return http.StatusUnauthorized
	case apperror.KindForbidden:
		return http.StatusForbidden
	case apperror.KindMultipleRecordsFound, apperror.KindUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		log.Error().Err(err).Msg("unhandled error")
		InternalServerError(w, "An unexpected error occurred")
		return
	}

	status := StatusOf(appErr.Kind)
	if status == http.StatusInternalServerError {
		// Integrity failures are reported without their internals.
		log.Error().Err(err).Str("code", appErr.Kind.Code()).Msg("internal error")
		Error(w, status, appErr.Kind.Code(), "An unexpected error occurred", nil)
		return
	}

	Error(w, status, appErr.Kind.Code(), appErr.Message, appErr.Details)
}
